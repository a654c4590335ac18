// Package selection implements the char-offset Range/Selection model: an
// ordered multi-range cursor set with a primary index, operating purely in
// terms of a rope's char-offset space (see rope.CharOffset). It is
// deliberately independent of the byte-offset cursor/buffer command layer
// in the sibling cursor package, which serves a different, simpler
// single-document editing API.
package selection

import (
	"fmt"

	"github.com/velum-editor/velum/internal/engine/rope"
)

// CharOffset is an alias for rope.CharOffset for convenience.
type CharOffset = rope.CharOffset

// Range is an ordered (anchor, head) pair of char offsets in one rope.
// Direction is forward when head >= anchor, backward otherwise. An empty
// range has anchor == head. A range may sit between graphemes.
type Range struct {
	Anchor CharOffset
	Head   CharOffset
}

// NewRange creates a range from anchor to head.
func NewRange(anchor, head CharOffset) Range {
	return Range{Anchor: anchor, Head: head}
}

// Point creates a zero-extent range (cursor) at offset.
func Point(offset CharOffset) Range {
	return Range{Anchor: offset, Head: offset}
}

// IsEmpty reports whether the range has no extent.
func (r Range) IsEmpty() bool {
	return r.Anchor == r.Head
}

// IsForward reports whether head >= anchor.
func (r Range) IsForward() bool {
	return r.Head >= r.Anchor
}

// IsBackward reports whether head < anchor.
func (r Range) IsBackward() bool {
	return r.Head < r.Anchor
}

// From returns the lower bound of the range.
func (r Range) From() CharOffset {
	if r.Anchor <= r.Head {
		return r.Anchor
	}
	return r.Head
}

// To returns the upper bound of the range.
func (r Range) To() CharOffset {
	if r.Anchor >= r.Head {
		return r.Anchor
	}
	return r.Head
}

// Len returns the range's extent in char offsets.
func (r Range) Len() CharOffset {
	return r.To() - r.From()
}

// Cursor returns the grapheme the range's cursor logically sits on: the
// grapheme before head for forward ranges (so the cursor appears to sit
// "on" the last selected character), head itself otherwise.
func (r Range) Cursor(doc rope.Rope) CharOffset {
	if r.IsForward() && r.Head > r.Anchor {
		b, err := doc.CharToByte(r.Head)
		if err != nil {
			return r.Head
		}
		prevByte := doc.PrevGraphemeBoundary(b)
		c, err := doc.ByteToChar(prevByte)
		if err != nil {
			return r.Head
		}
		return c
	}
	return r.Head
}

// LineRange returns the inclusive [startLine, endLine] pair the range
// spans in doc.
func (r Range) LineRange(doc rope.Rope) (start, end uint32, err error) {
	fromByte, err := doc.CharToByte(r.From())
	if err != nil {
		return 0, 0, err
	}
	toByte, err := doc.CharToByte(r.To())
	if err != nil {
		return 0, 0, err
	}
	start = doc.OffsetToPoint(fromByte).Line
	end = doc.OffsetToPoint(toByte).Line
	return start, end, nil
}

// Flip returns a range with anchor and head swapped.
func (r Range) Flip() Range {
	return Range{Anchor: r.Head, Head: r.Anchor}
}

// WithAnchorHead returns a new range at the given offsets.
func (r Range) WithAnchorHead(anchor, head CharOffset) Range {
	return Range{Anchor: anchor, Head: head}
}

// Contains reports whether offset falls within [From(), To()).
func (r Range) Contains(offset CharOffset) bool {
	return offset >= r.From() && offset < r.To()
}

// Overlaps reports whether r and other share any char offset.
func (r Range) Overlaps(other Range) bool {
	return r.From() < other.To() && other.From() < r.To()
}

// Touches reports whether r and other overlap or are directly adjacent.
func (r Range) Touches(other Range) bool {
	return r.From() <= other.To() && other.From() <= r.To()
}

// Merge returns the smallest forward range covering both r and other.
func (r Range) Merge(other Range) Range {
	from := r.From()
	if other.From() < from {
		from = other.From()
	}
	to := r.To()
	if other.To() > to {
		to = other.To()
	}
	return Range{Anchor: from, Head: to}
}

// Clamp returns a range with both endpoints clamped to [0, maxOffset].
func (r Range) Clamp(maxOffset CharOffset) Range {
	clamp := func(v CharOffset) CharOffset {
		if v < 0 {
			return 0
		}
		if v > maxOffset {
			return maxOffset
		}
		return v
	}
	return Range{Anchor: clamp(r.Anchor), Head: clamp(r.Head)}
}

// Equals reports whether r and other have identical anchor and head.
func (r Range) Equals(other Range) bool {
	return r.Anchor == other.Anchor && r.Head == other.Head
}

func (r Range) String() string {
	if r.IsEmpty() {
		return fmt.Sprintf("Cursor(%d)", r.Head)
	}
	dir := "->"
	if r.IsBackward() {
		dir = "<-"
	}
	return fmt.Sprintf("Range(%d%s%d)", r.Anchor, dir, r.Head)
}
