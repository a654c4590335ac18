package transaction

import (
	"strings"

	"github.com/velum-editor/velum/internal/engine/rope"
	"github.com/velum-editor/velum/internal/engine/selection"
)

// CharOffset is an alias for rope.CharOffset for convenience.
type CharOffset = rope.CharOffset

// OpKind identifies a single ChangeSet operation.
type OpKind uint8

const (
	OpRetain OpKind = iota
	OpDelete
	OpInsert
)

// Op is a single retain/delete/insert step. N is meaningful for retain and
// delete (a char count); Text is meaningful for insert.
type Op struct {
	Kind OpKind
	N    CharOffset
	Text string
}

// ChangeSet is a sequence of (retain, delete, insert) ops that, applied to
// a rope of baseLen chars, yields a new rope of length len(baseLen) -
// deleted + inserted. Composition is associative and total when lengths
// align; see Compose.
type ChangeSet struct {
	ops     []Op
	baseLen CharOffset // required input length
	tgtLen  CharOffset // resulting output length
}

// BaseLen returns the length, in chars, this ChangeSet expects its input
// rope to have.
func (cs ChangeSet) BaseLen() CharOffset { return cs.baseLen }

// TargetLen returns the length, in chars, of the rope produced by Apply.
func (cs ChangeSet) TargetLen() CharOffset { return cs.tgtLen }

// IsNoOp reports whether the ChangeSet consists only of retains (or is
// empty), in which case Apply returns an identical rope and Invert returns
// an identity ChangeSet.
func (cs ChangeSet) IsNoOp() bool {
	for _, op := range cs.ops {
		if op.Kind != OpRetain {
			return false
		}
	}
	return true
}

// Ops returns a copy of the underlying operation sequence.
func (cs ChangeSet) Ops() []Op {
	out := make([]Op, len(cs.ops))
	copy(out, cs.ops)
	return out
}

// Apply applies the ChangeSet to doc, returning the resulting rope. Fails
// with ErrLengthMismatch if doc's char length differs from BaseLen().
func (cs ChangeSet) Apply(doc rope.Rope) (rope.Rope, error) {
	if doc.CharLen() != cs.baseLen {
		return rope.Rope{}, ErrLengthMismatch
	}
	text := doc.String()
	starts := runeByteStarts(text)

	var b strings.Builder
	pos := CharOffset(0)
	for _, op := range cs.ops {
		switch op.Kind {
		case OpRetain:
			if op.N == 0 {
				continue
			}
			start := starts[pos]
			end := starts[pos+op.N]
			b.WriteString(text[start:end])
			pos += op.N
		case OpDelete:
			pos += op.N
		case OpInsert:
			b.WriteString(op.Text)
		}
	}
	return rope.FromString(b.String()), nil
}

// runeByteStarts returns, for each rune index 0..N (inclusive), the byte
// offset at which that rune begins (with index N mapping to len(s)).
func runeByteStarts(s string) []int {
	starts := make([]int, 0, len(s)+1)
	for i := range s {
		starts = append(starts, i)
	}
	starts = append(starts, len(s))
	return starts
}

// MapPos rewrites a char offset in the base document to its corresponding
// offset in the target document, implementing selection.Mapper. bias
// matters only for text inserted exactly at pos: BiasBefore keeps the
// result before that text (used for an anchor), BiasAfter moves it past the
// text (used for a head). A position inside a deleted span maps to the
// point where the span was, whatever the bias.
func (cs ChangeSet) MapPos(pos CharOffset, bias selection.Bias) CharOffset {
	var basePos, tgtPos CharOffset
	for _, op := range cs.ops {
		switch op.Kind {
		case OpRetain:
			if pos < basePos+op.N {
				return tgtPos + (pos - basePos)
			}
			basePos += op.N
			tgtPos += op.N
		case OpDelete:
			if pos < basePos+op.N {
				return tgtPos
			}
			basePos += op.N
		case OpInsert:
			n := CharOffset(len([]rune(op.Text)))
			if pos == basePos {
				// An anchor (BiasBefore) resolves toward from(): it stops
				// before text inserted at this boundary. A head
				// (BiasAfter) resolves toward to(): it skips past
				// whatever was inserted here and keeps scanning in case
				// more operations sit at the same boundary.
				if bias == selection.BiasBefore {
					return tgtPos
				}
				tgtPos += n
				continue
			}
			tgtPos += n
		}
	}
	return tgtPos + (pos - basePos)
}

// Compose returns a ChangeSet equivalent to applying cs then other:
// cs.Compose(other).Apply(r) == other.Apply(cs.Apply(r)).
// Fails with ErrLengthMismatch if cs.TargetLen() != other.BaseLen().
func (cs ChangeSet) Compose(other ChangeSet) (ChangeSet, error) {
	if cs.tgtLen != other.baseLen {
		return ChangeSet{}, ErrLengthMismatch
	}
	b := NewBuilder(cs.baseLen)

	aOps := cs.ops
	bOps := other.ops
	ai, bi := 0, 0

	var aRem, bRem Op
	var aHasRem, bHasRem bool

	nextA := func() (Op, bool) {
		if aHasRem {
			aHasRem = false
			return aRem, true
		}
		if ai >= len(aOps) {
			return Op{}, false
		}
		op := aOps[ai]
		ai++
		return op, true
	}
	nextB := func() (Op, bool) {
		if bHasRem {
			bHasRem = false
			return bRem, true
		}
		if bi >= len(bOps) {
			return Op{}, false
		}
		op := bOps[bi]
		bi++
		return op, true
	}

	a, aOK := nextA()
	bop, bOK := nextB()

	for aOK || bOK {
		if aOK && a.Kind == OpDelete {
			b.Delete(a.N)
			a, aOK = nextA()
			continue
		}
		if bOK && bop.Kind == OpInsert {
			b.Insert(bop.Text)
			bop, bOK = nextB()
			continue
		}
		if !aOK {
			// Only inserts from b should remain at this point; anything
			// else means the lengths didn't line up.
			break
		}
		if !bOK {
			break
		}

		switch {
		case a.Kind == OpRetain && bop.Kind == OpRetain:
			n := minCO(a.N, bop.N)
			b.Retain(n)
			a, bop, aOK, bOK = shrink(a, bop, n, nextA, nextB)
		case a.Kind == OpRetain && bop.Kind == OpDelete:
			n := minCO(a.N, bop.N)
			b.Delete(n)
			a, bop, aOK, bOK = shrink(a, bop, n, nextA, nextB)
		case a.Kind == OpInsert && bop.Kind == OpRetain:
			aRunes := []rune(a.Text)
			n := minCO(CharOffset(len(aRunes)), bop.N)
			b.Insert(string(aRunes[:n]))
			a.Text = string(aRunes[n:])
			bop.N -= n
			if a.Text == "" {
				a, aOK = nextA()
			} else {
				aRem, aHasRem = a, true
			}
			if bop.N == 0 {
				bop, bOK = nextB()
			} else {
				bRem, bHasRem = bop, true
			}
		case a.Kind == OpInsert && bop.Kind == OpDelete:
			aRunes := []rune(a.Text)
			n := minCO(CharOffset(len(aRunes)), bop.N)
			a.Text = string(aRunes[n:])
			bop.N -= n
			if a.Text == "" {
				a, aOK = nextA()
			} else {
				aRem, aHasRem = a, true
			}
			if bop.N == 0 {
				bop, bOK = nextB()
			} else {
				bRem, bHasRem = bop, true
			}
		default:
			// Unreachable given the guards above.
			a, aOK = nextA()
			bop, bOK = nextB()
		}
	}

	return b.Build(), nil
}

func shrink(a, bop Op, n CharOffset, nextA, nextB func() (Op, bool)) (Op, Op, bool, bool) {
	a.N -= n
	bop.N -= n
	aOK, bOK := true, true
	var na, nb Op
	if a.N == 0 {
		na, aOK = nextA()
	} else {
		na = a
	}
	if bop.N == 0 {
		nb, bOK = nextB()
	} else {
		nb = bop
	}
	return na, nb, aOK, bOK
}

func minCO(a, b CharOffset) CharOffset {
	if a < b {
		return a
	}
	return b
}

// Invert returns the ChangeSet that undoes cs, computed against the rope
// cs was originally built to apply to (doc must have length BaseLen()).
func (cs ChangeSet) Invert(doc rope.Rope) (ChangeSet, error) {
	if doc.CharLen() != cs.baseLen {
		return ChangeSet{}, ErrLengthMismatch
	}
	text := doc.String()
	starts := runeByteStarts(text)

	b := NewBuilder(cs.tgtLen)
	pos := CharOffset(0)
	for _, op := range cs.ops {
		switch op.Kind {
		case OpRetain:
			b.Retain(op.N)
			pos += op.N
		case OpDelete:
			start := starts[pos]
			end := starts[pos+op.N]
			b.Insert(text[start:end])
			pos += op.N
		case OpInsert:
			b.Delete(CharOffset(len([]rune(op.Text))))
		}
	}
	return b.Build(), nil
}
