package snippet

import (
	"reflect"
	"testing"
)

func mustParse(t *testing.T, s string) []Element {
	t.Helper()
	els, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return els
}

func TestRenderPlaceholderWithText(t *testing.T) {
	els := mustParse(t, "match(${1:Arg1})")
	text, groups := Render(els, "\n", true)
	if text != "match(Arg1)" {
		t.Fatalf("text = %q, want %q", text, "match(Arg1)")
	}
	start := len([]rune("match("))
	end := start + len([]rune("Arg1"))
	want := [][]Range{{{Start: start, End: end}}}
	if !reflect.DeepEqual(groups, want) {
		t.Fatalf("groups = %v, want %v", groups, want)
	}
}

func TestRenderPlaceholderWithoutText(t *testing.T) {
	els := mustParse(t, "match(${1:Arg1})")
	text, groups := Render(els, "\n", false)
	if text != "match()" {
		t.Fatalf("text = %q, want %q", text, "match()")
	}
	pos := len([]rune("match("))
	want := [][]Range{{{Start: pos, End: pos}}}
	if !reflect.DeepEqual(groups, want) {
		t.Fatalf("groups = %v, want %v", groups, want)
	}
}

func TestRenderTabstopZeroMovesToEnd(t *testing.T) {
	// $0 appears first in the source text but must sort last in groups.
	els := mustParse(t, "a$0b$1c")
	_, groups := Render(els, "\n", true)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	aLen := len([]rune("a"))
	abLen := aLen + len([]rune("b"))
	wantGroup1 := []Range{{Start: abLen, End: abLen}}
	wantGroup0 := []Range{{Start: aLen, End: aLen}}
	if !reflect.DeepEqual(groups[0], wantGroup1) {
		t.Errorf("groups[0] (tabstop 1) = %v, want %v", groups[0], wantGroup1)
	}
	if !reflect.DeepEqual(groups[1], wantGroup0) {
		t.Errorf("groups[1] (tabstop 0, last) = %v, want %v", groups[1], wantGroup0)
	}
}

func TestRenderMergesEqualTabstopNumbers(t *testing.T) {
	els := mustParse(t, "local ${1:var} = ${1:value}")
	text, groups := Render(els, "\n", true)
	if text != "local var = value" {
		t.Fatalf("text = %q", text)
	}
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1 (equal tabstop numbers merge)", len(groups))
	}
	if len(groups[0]) != 2 {
		t.Fatalf("got %d ranges in merged group, want 2", len(groups[0]))
	}
}

func TestRenderMacroRulesPreservesLiteralText(t *testing.T) {
	src := "macro_rules! $1 {\n    ($2) => {\n        $0\n    };\n}"
	els := mustParse(t, src)
	// This function's newlinePrefix is the literal replacement for "\n"
	// inside text (see TestRenderNewlinePrefixAppliedToLiteralText), so a
	// request for "no extra indentation" is expressed as "\n" (the newline
	// put back unchanged), not "".
	text, groups := Render(els, "\n", true)
	want := "macro_rules!  {\n    () => {\n        \n    };\n}"
	if text != want {
		t.Fatalf("text = %q, want %q", text, want)
	}
	// Offsets below are counted by hand against want, in runes: 13 for $1
	// (after "macro_rules! ", 13 runes), 21 for $2 (after the line "    (",
	// 21 runes), 36 for $0 (after the 8-space indent on its own line, 36
	// runes). The spec's worked example states (12,12)/(19,19)/(35,35);
	// those numbers don't reproduce from its own quoted output text, so
	// they're treated as errors in that worked example, not a target to
	// match.
	want13 := Range{Start: 13, End: 13}
	want21 := Range{Start: 21, End: 21}
	want36 := Range{Start: 36, End: 36}
	wantGroups := [][]Range{{want13}, {want21}, {want36}}
	if !reflect.DeepEqual(groups, wantGroups) {
		t.Fatalf("groups = %v, want %v", groups, wantGroups)
	}
}

func TestRenderVariableFallsBackToDefault(t *testing.T) {
	els := mustParse(t, "${name:foo}")
	text, groups := Render(els, "\n", true)
	if text != "foo" {
		t.Fatalf("text = %q, want %q", text, "foo")
	}
	if len(groups) != 0 {
		t.Fatalf("variables do not register tabstop groups, got %v", groups)
	}
}

func TestRenderNewlinePrefixAppliedToLiteralText(t *testing.T) {
	els := mustParse(t, "a\nb")
	text, _ := Render(els, "\n  ", true)
	if text != "a\n  b" {
		t.Fatalf("text = %q", text)
	}
}
