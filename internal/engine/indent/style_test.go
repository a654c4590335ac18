package indent

import "testing"

func TestStyleAsString(t *testing.T) {
	if Tabs.AsString() != "\t" {
		t.Errorf("Tabs.AsString() = %q, want tab", Tabs.AsString())
	}
	if got := Spaces(4).AsString(); got != "    " {
		t.Errorf("Spaces(4).AsString() = %q, want 4 spaces", got)
	}
	if got := Spaces(0).AsString(); got != " " {
		t.Errorf("Spaces(0) should clamp to 1, got %q", got)
	}
	if got := Spaces(12).AsString(); got != "        " {
		t.Errorf("Spaces(12) should clamp to 8, got %q", got)
	}
}

func TestFromString(t *testing.T) {
	if s := FromString("    "); s.IsTabs() || s.Width() != 4 {
		t.Errorf("FromString(4 spaces) = %+v, want Spaces(4)", s)
	}
	if s := FromString("\t"); !s.IsTabs() {
		t.Errorf("FromString(tab) should be Tabs")
	}
}

func TestRenderClampsNegative(t *testing.T) {
	if got := Spaces(2).Render(-3); got != "" {
		t.Errorf("Render(-3) = %q, want empty", got)
	}
	if got := Spaces(2).Render(2); got != "    " {
		t.Errorf("Render(2) = %q, want 4 spaces", got)
	}
}

func TestLevelForLine(t *testing.T) {
	if got := LevelForLine("        fn new", 4); got != 2 {
		t.Errorf("LevelForLine(8 spaces, tabWidth=4) = %d, want 2", got)
	}
	if got := LevelForLine("\t\t\tfn new", 4); got != 3 {
		t.Errorf("LevelForLine(3 tabs, tabWidth=4) = %d, want 3", got)
	}
	if got := LevelForLine("\t    \tfn new", 4); got != 3 {
		t.Errorf("LevelForLine(mixed, tabWidth=4) = %d, want 3 (12 width / 4)", got)
	}
}
