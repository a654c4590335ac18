package selection

import (
	"errors"
	"regexp"
	"sort"

	"github.com/velum-editor/velum/internal/engine/rope"
)

// ErrEmptySelection is returned by operations that would otherwise produce
// a selection with zero ranges; a Selection is always non-empty.
var ErrEmptySelection = errors.New("selection: cannot be empty")

// Bias resolves ties when mapping a position through a ChangeSet at a
// deletion boundary.
type Bias int

const (
	// BiasBefore resolves to the earlier position (used for an anchor).
	BiasBefore Bias = iota
	// BiasAfter resolves to the later position (used for a head).
	BiasAfter
)

// Mapper rewrites a single char offset through some edit, given a bias that
// decides which side of text inserted exactly at the offset the result
// lands on. transaction.ChangeSet implements
// this interface; selection depends only on the interface to avoid an
// import cycle with the transaction engine.
type Mapper interface {
	MapPos(pos CharOffset, bias Bias) CharOffset
}

// Selection is a non-empty ordered list of Ranges plus a primary index.
// After normalization, ranges are sorted by From(). A constructor does not
// merge or drop ranges: overlapping ranges and exact duplicates are kept as
// given. MergeConsecutive merges touching or overlapping ranges on request.
// The primary index is always valid (0 <= primary < len(ranges)).
type Selection struct {
	ranges  []Range
	primary int
}

// New creates a selection from the given ranges, sorting them by From()
// (overlapping ranges are not merged) and clamping the primary index into
// range. Panics if
// ranges is empty, mirroring the invariant that a Selection is never empty.
func New(ranges []Range, primary int) Selection {
	if len(ranges) == 0 {
		panic("selection: New requires at least one range")
	}
	cp := make([]Range, len(ranges))
	copy(cp, ranges)
	s := Selection{ranges: cp, primary: primary}
	s.normalize()
	return s
}

// Single creates a selection containing exactly one range.
func Single(r Range) Selection {
	return Selection{ranges: []Range{r}, primary: 0}
}

// Cursor creates a selection containing a single zero-extent range.
func Cursor(offset CharOffset) Selection {
	return Single(Point(offset))
}

// Len returns the number of ranges in the selection.
func (s Selection) Len() int {
	return len(s.ranges)
}

// Primary returns the primary range.
func (s Selection) Primary() Range {
	return s.ranges[s.primary]
}

// PrimaryIndex returns the index of the primary range.
func (s Selection) PrimaryIndex() int {
	return s.primary
}

// Ranges returns a copy of all ranges, sorted by From().
func (s Selection) Ranges() []Range {
	out := make([]Range, len(s.ranges))
	copy(out, s.ranges)
	return out
}

// Get returns the range at index i.
func (s Selection) Get(i int) Range {
	return s.ranges[i]
}

// Transform returns a new selection with f applied to every range. The
// primary index is preserved positionally: f is expected to preserve
// relative ordering (the common case for move/extend operations), so no
// resort is performed. Callers whose f could reorder ranges should rebuild
// the selection via New instead.
func (s Selection) Transform(f func(Range) Range) Selection {
	out := make([]Range, len(s.ranges))
	for i, r := range s.ranges {
		out[i] = f(r)
	}
	return Selection{ranges: out, primary: s.primary}
}

// Map rewrites every range's anchor and head through mapper, using
// BiasBefore for the anchor and BiasAfter for the head: text inserted
// exactly at the anchor ends up after the anchor, and text inserted exactly
// at the head ends up before the head.
func (s Selection) Map(mapper Mapper) Selection {
	out := make([]Range, len(s.ranges))
	for i, r := range s.ranges {
		out[i] = Range{
			Anchor: mapper.MapPos(r.Anchor, BiasBefore),
			Head:   mapper.MapPos(r.Head, BiasAfter),
		}
	}
	return Selection{ranges: out, primary: s.primary}
}

// SplitOnMatches replaces each range with the set of non-overlapping
// regex matches within that range. A range whose sub-text has no matches
// is dropped unless doing so would empty the selection entirely, in which
// case it collapses to its anchor instead.
func (s Selection) SplitOnMatches(doc rope.Rope, re *regexp.Regexp) Selection {
	var out []Range
	for _, r := range s.ranges {
		fromByte, err1 := doc.CharToByte(r.From())
		toByte, err2 := doc.CharToByte(r.To())
		if err1 != nil || err2 != nil {
			continue
		}
		text := doc.Slice(fromByte, toByte)
		locs := re.FindAllStringIndex(text, -1)
		if len(locs) == 0 {
			continue
		}
		for _, loc := range locs {
			startChar, e1 := doc.ByteToChar(fromByte + rope.ByteOffset(loc[0]))
			endChar, e2 := doc.ByteToChar(fromByte + rope.ByteOffset(loc[1]))
			if e1 != nil || e2 != nil {
				continue
			}
			out = append(out, Range{Anchor: startChar, Head: endChar})
		}
	}
	if len(out) == 0 {
		// Would otherwise empty the selection: collapse the primary range
		// to its anchor instead of discarding everything.
		out = []Range{Point(s.Primary().Anchor)}
	}
	sel := Selection{ranges: out, primary: 0}
	sel.normalize()
	return sel
}

// MergeConsecutive merges touching ranges, keeping the outermost anchor
// and head of each merged group.
func (s Selection) MergeConsecutive() Selection {
	sorted := s.Ranges()
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].From() != sorted[j].From() {
			return sorted[i].From() < sorted[j].From()
		}
		return sorted[i].To() < sorted[j].To()
	})
	var merged []Range
	for _, r := range sorted {
		if len(merged) > 0 && r.Touches(merged[len(merged)-1]) {
			merged[len(merged)-1] = merged[len(merged)-1].Merge(r)
			continue
		}
		merged = append(merged, r)
	}
	return Selection{ranges: merged, primary: 0}
}

// Clamp clamps every range's endpoints to [0, maxOffset].
func (s Selection) Clamp(maxOffset CharOffset) Selection {
	out := make([]Range, len(s.ranges))
	for i, r := range s.ranges {
		out[i] = r.Clamp(maxOffset)
	}
	sel := Selection{ranges: out, primary: s.primary}
	sel.normalize()
	return sel
}

// Equals reports whether two selections have identical ranges (in sorted
// order) and the same primary index.
func (s Selection) Equals(other Selection) bool {
	if s.primary != other.primary || len(s.ranges) != len(other.ranges) {
		return false
	}
	for i := range s.ranges {
		if !s.ranges[i].Equals(other.ranges[i]) {
			return false
		}
	}
	return true
}

// normalize sorts ranges by From() and clamps the primary index into
// bounds. It does not merge touching or overlapping ranges and does not
// remove duplicates; callers that want merging call MergeConsecutive
// explicitly.
func (s *Selection) normalize() {
	if s.primary < 0 {
		s.primary = 0
	}
	if s.primary >= len(s.ranges) {
		s.primary = len(s.ranges) - 1
	}
	if len(s.ranges) <= 1 {
		return
	}
	primaryRange := s.ranges[s.primary]
	sort.SliceStable(s.ranges, func(i, j int) bool {
		return s.ranges[i].From() < s.ranges[j].From()
	})
	for i, r := range s.ranges {
		if r.Equals(primaryRange) {
			s.primary = i
			break
		}
	}
}
