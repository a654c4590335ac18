package fold

import (
	"testing"

	"github.com/velum-editor/velum/internal/engine/rope"
	"github.com/velum-editor/velum/internal/engine/selection"
)

func lineSpan(t *testing.T, text rope.Rope, line uint32) (CharOffset, CharOffset) {
	t.Helper()
	start, err := text.LineToChar(line)
	if err != nil {
		t.Fatalf("LineToChar(%d): %v", line, err)
	}
	end, err := text.LineEndCharIndex(line)
	if err != nil {
		t.Fatalf("LineEndCharIndex(%d): %v", line, err)
	}
	return start, end
}

func TestAddSingleLineFoldNoShift(t *testing.T) {
	text := rope.FromString("abc\ndef\nghi")
	start, end := lineSpan(t, text, 1)

	points := []Points{NewPoints(text, Selection(), start, start, end)}
	c := FromPoints(text, points)

	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
	f := c.Fold(0)
	if f.Start.Line != 1 || f.End.Line != 1 {
		t.Fatalf("block = [%d,%d], want [1,1]", f.Start.Line, f.End.Line)
	}
}

// TestNormalizeExtendsBlockPastInterferingText reproduces the doc example:
// folding a function whose opening brace shares the header's line pushes
// the block start down a line, and whose closing brace shares a line with
// nothing else keeps the block end on the brace's own line.
func TestNormalizeExtendsBlockPastInterferingText(t *testing.T) {
	text := rope.FromString("fn f(a: u32) -> u32 {\n    a + a\n}")

	targetStart, err := text.LineEndCharIndex(0)
	if err != nil {
		t.Fatal(err)
	}
	targetEnd, err := text.LineToChar(2)
	if err != nil {
		t.Fatal(err)
	}
	header := CharOffset(0)

	points := []Points{NewPoints(text, TextObject("function"), header, targetStart, targetEnd)}
	c := FromPoints(text, points)

	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
	f := c.Fold(0)
	if f.Start.Line != 1 {
		t.Errorf("Start.Line = %d, want 1 (brace shares header's line)", f.Start.Line)
	}
	if f.End.Line != 2 {
		t.Errorf("End.Line = %d, want 2 (closing brace's own line)", f.End.Line)
	}
}

// TestNormalizeDropsPartialOverlapNotSelf is the regression test for the
// corrected overlap check: two folds whose [header, target-end] spans
// cross without either containing the other must drop the earlier one. A
// self-referencing overlap check (comparing a fold's span against its own
// span) can never detect this, since a span always contains itself.
func TestNormalizeDropsPartialOverlapNotSelf(t *testing.T) {
	text := rope.FromString("aaaa\nbbbb\ncccc\ndddd")

	line1Start, line1End := lineSpan(t, text, 1)
	line2Start, line2End := lineSpan(t, text, 2)

	// A: header inside line 0, target spans all of line 1.
	aHeader := CharOffset(1)
	aStart, aEnd := line1Start, line1End

	// B: header inside line 1 (so B's range starts before A's range
	// ends), target spans all of line 2. Neither span contains the
	// other: A ends at line1End, B starts before that and ends later.
	bHeader := line1Start + 1
	bStart, bEnd := line2Start, line2End

	points := []Points{
		NewPoints(text, Selection(), aHeader, aStart, aEnd),
		NewPoints(text, Selection(), bHeader, bStart, bEnd),
	}
	c := FromPoints(text, points)

	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (the earlier, partially-overlapped fold must be dropped)", c.Len())
	}
	f := c.Fold(0)
	if f.Start.Line != 2 {
		t.Fatalf("surviving fold Start.Line = %d, want 2 (fold B)", f.Start.Line)
	}
}

func TestNormalizeKeepsProperContainment(t *testing.T) {
	text := rope.FromString("outer1\ninner1\ninner2\nouterN")

	innerStart, innerEnd := lineSpan(t, text, 1)
	outerStart := innerStart
	_, outerEnd := lineSpan(t, text, 2)

	points := []Points{
		NewPoints(text, Selection(), CharOffset(0), outerStart, outerEnd),
		NewPoints(text, Selection(), innerStart, innerStart, innerEnd),
	}
	c := FromPoints(text, points)

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (proper containment must not be dropped)", c.Len())
	}

	outer := c.Fold(0)
	inner := c.Fold(1)
	if outer.Start.Line != 1 || outer.End.Line != 2 {
		t.Errorf("outer block = [%d,%d], want [1,2]", outer.Start.Line, outer.End.Line)
	}
	if inner.Start.Line != 1 || inner.End.Line != 1 {
		t.Errorf("inner block = [%d,%d], want [1,1]", inner.Start.Line, inner.End.Line)
	}

	super, ok := c.SuperFold(inner)
	if !ok {
		t.Fatal("inner fold has no super fold, want outer")
	}
	if super.Start.Target != outer.Start.Target || super.End.Target != outer.End.Target {
		t.Errorf("super fold = %+v, want outer %+v", super, outer)
	}

	if _, ok := c.SuperFold(outer); ok {
		t.Error("outer fold should be superest (no super fold)")
	}
	if !outer.IsSuperest() {
		t.Error("outer.IsSuperest() = false, want true")
	}
	if inner.IsSuperest() {
		t.Error("inner.IsSuperest() = true, want false")
	}
}

func TestRemoveBySelectionDropsTouchedFold(t *testing.T) {
	text := rope.FromString("abc\ndef\nghi")
	start, end := lineSpan(t, text, 1)

	c := FromPoints(text, []Points{NewPoints(text, Selection(), start, start, end)})
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}

	cursor, _ := text.LineToChar(1)
	sel := selection.Cursor(cursor)
	c.RemoveBySelection(text, sel)

	if !c.IsEmpty() {
		t.Fatalf("Len() = %d, want 0 after removing by selection on the folded line", c.Len())
	}
}

func TestRemoveBySelectionLeavesUntouchedFold(t *testing.T) {
	text := rope.FromString("abc\ndef\nghi\njkl")
	start, end := lineSpan(t, text, 1)

	c := FromPoints(text, []Points{NewPoints(text, Selection(), start, start, end)})

	cursor, _ := text.LineToChar(3)
	sel := selection.Cursor(cursor)
	c.RemoveBySelection(text, sel)

	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (selection on an unfolded line must not remove anything)", c.Len())
	}
}

func TestObjectCompare(t *testing.T) {
	if Selection().Compare(TextObject("function")) >= 0 {
		t.Error("Selection must sort before any TextObject")
	}
	if TextObject("a").Compare(TextObject("b")) >= 0 {
		t.Error("TextObject(\"a\") must sort before TextObject(\"b\")")
	}
	if Selection().String() != "something" {
		t.Errorf("Selection().String() = %q, want %q", Selection().String(), "something")
	}
	if TextObject("function").String() != "function" {
		t.Errorf("TextObject(\"function\").String() = %q, want %q", TextObject("function").String(), "function")
	}
}
