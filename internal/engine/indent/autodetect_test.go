package indent

import (
	"testing"

	"github.com/velum-editor/velum/internal/engine/rope"
)

func TestAutoDetectFourSpaces(t *testing.T) {
	text := rope.FromString(
		"mod test {\n" +
			"    fn hello() {\n" +
			"        1 + 1;\n" +
			"    }\n" +
			"}\n",
	)
	style, ok := AutoDetect(text)
	if !ok {
		t.Fatal("AutoDetect returned no decision, want Spaces(4)")
	}
	if style.IsTabs() || style.Width() != 4 {
		t.Errorf("AutoDetect = %+v, want Spaces(4)", style)
	}
}

func TestAutoDetectTabs(t *testing.T) {
	text := rope.FromString(
		"mod test {\n" +
			"\tfn hello() {\n" +
			"\t\t1 + 1;\n" +
			"\t}\n" +
			"}\n",
	)
	style, ok := AutoDetect(text)
	if !ok {
		t.Fatal("AutoDetect returned no decision, want Tabs")
	}
	if !style.IsTabs() {
		t.Errorf("AutoDetect = %+v, want Tabs", style)
	}
}

func TestAutoDetectNoDecisionOnMixedAmbiguousInput(t *testing.T) {
	// One 2-space increase and one 4-space increase: neither dominates
	// the other by the 66% margin, so the detector must not guess.
	text := rope.FromString(
		"a\n" +
			"  b\n" +
			"c\n" +
			"    d\n",
	)
	if _, ok := AutoDetect(text); ok {
		t.Error("AutoDetect should return no decision for evenly split histogram")
	}
}

func TestAutoDetectIgnoresBlankLines(t *testing.T) {
	text := rope.FromString(
		"a\n" +
			"\n" +
			"    b\n" +
			"    c\n",
	)
	style, ok := AutoDetect(text)
	if !ok {
		t.Fatal("AutoDetect returned no decision, want Spaces(4)")
	}
	if style.IsTabs() || style.Width() != 4 {
		t.Errorf("AutoDetect = %+v, want Spaces(4)", style)
	}
}
