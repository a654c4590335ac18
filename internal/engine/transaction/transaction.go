package transaction

import (
	"sort"

	"github.com/velum-editor/velum/internal/engine/rope"
	"github.com/velum-editor/velum/internal/engine/selection"
)

// Identity returns a no-op ChangeSet over a document of the given length:
// applying it returns an identical rope, and its inverse is itself.
func Identity(length CharOffset) ChangeSet {
	return NewBuilder(length).Build()
}

// RangeEdit is the (start, end, optional insert) result a ChangeByRanges
// callback returns for one selection range.
type RangeEdit struct {
	Start  CharOffset
	End    CharOffset
	Insert string // empty means no insertion
	HasIns bool
}

// ChangeByRanges builds a ChangeSet from per-range edits produced by f.
// For each range (processed in sorted order by From()), f must return a
// RangeEdit with range.From() <= Start <= End <= range.To(); the resulting
// intervals must be non-overlapping across the whole selection or
// ErrOverlappingEdits is returned.
func ChangeByRanges(doc rope.Rope, sel selection.Selection, f func(r selection.Range) RangeEdit) (ChangeSet, error) {
	baseLen := doc.CharLen()
	ranges := sel.Ranges()
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].From() < ranges[j].From() })

	type edit struct {
		start, end CharOffset
		insert     string
		hasIns     bool
	}
	edits := make([]edit, 0, len(ranges))
	for _, r := range ranges {
		re := f(r)
		if re.Start < r.From() || re.End < re.Start || re.End > r.To() {
			return ChangeSet{}, ErrOverlappingEdits
		}
		edits = append(edits, edit{start: re.Start, end: re.End, insert: re.Insert, hasIns: re.HasIns})
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].start < edits[j].start })
	for i := 1; i < len(edits); i++ {
		if edits[i].start < edits[i-1].end {
			return ChangeSet{}, ErrOverlappingEdits
		}
	}

	b := NewBuilder(baseLen)
	pos := CharOffset(0)
	for _, e := range edits {
		b.Retain(e.start - pos)
		b.Delete(e.end - e.start)
		if e.hasIns {
			b.Insert(e.insert)
		}
		pos = e.end
	}
	return b.Build(), nil
}

// Transaction bundles a ChangeSet with an optional post-application
// selection. When no selection is supplied, applying the transaction maps
// the input selection through the ChangeSet instead.
type Transaction struct {
	Changes   ChangeSet
	Selection *selection.Selection // nil means "map the input selection"
}

// New creates a Transaction from a ChangeSet with no explicit
// post-selection.
func New(cs ChangeSet) Transaction {
	return Transaction{Changes: cs}
}

// WithSelection returns a copy of t carrying an explicit post-application
// selection.
func (t Transaction) WithSelection(sel selection.Selection) Transaction {
	t.Selection = &sel
	return t
}

// Apply applies t to (doc, sel), returning the resulting rope and
// selection. If t carries no explicit selection, the input selection is
// mapped through the ChangeSet.
func (t Transaction) Apply(doc rope.Rope, sel selection.Selection) (rope.Rope, selection.Selection, error) {
	newDoc, err := t.Changes.Apply(doc)
	if err != nil {
		return rope.Rope{}, selection.Selection{}, err
	}
	if t.Selection != nil {
		return newDoc, *t.Selection, nil
	}
	return newDoc, sel.Map(t.Changes), nil
}

// Invert computes the inverse Transaction relative to the pre-apply
// (doc, sel) pair: applying t then its inverse restores doc exactly, and
// the inverse's selection is the pre-apply selection.
func (t Transaction) Invert(doc rope.Rope, sel selection.Selection) (Transaction, error) {
	inv, err := t.Changes.Invert(doc)
	if err != nil {
		return Transaction{}, err
	}
	return Transaction{Changes: inv, Selection: &sel}, nil
}
