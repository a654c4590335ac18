// Package history provides undo/redo as a revision tree over rope
// documents and selections, per SPEC_FULL.md §4.2's "revision tree, not a
// linear stack" requirement.
//
// # Revisions
//
// Each Revision holds the Transaction (forward ChangeSet) needed to move
// forward from its parent, and the precomputed inverse needed to move back.
// Revisions form a tree, not a line: undoing then making a new edit doesn't
// discard the abandoned branch, it just stops being the current path.
//
// # Typical use
//
//	h := history.NewRevisionHistory(1000)
//	rev, err := h.Commit(preDoc, preSel, txn)
//	doc, sel, err := h.Undo(doc, sel)
//	doc, sel, err = h.Redo(doc, sel)
//
// # Grouping
//
// Multiple transactions can be grouped into one undo step:
//
//	h.BeginGroup(preDoc, preSel)
//	h.AddToGroup(txn1)
//	h.AddToGroup(txn2)
//	h.EndGroup()
//
// # Time travel
//
// EarlierSteps/LaterSteps/EarlierDuration/LaterDuration/JumpToTimestamp
// walk the revision tree by step count or wall-clock time instead of a
// single Undo/Redo, for jump-to-point-in-history navigation.
package history
