package history

import (
	"errors"
	"sync"
	"time"

	"github.com/velum-editor/velum/internal/engine/rope"
	"github.com/velum-editor/velum/internal/engine/selection"
	"github.com/velum-editor/velum/internal/engine/transaction"
)

// RevisionHistory state, mirroring the editor's notion of "what is the
// history doing right now": idle, recording a group of transactions that
// will commit as one revision, or mid-traversal.
type RevisionState int

const (
	StateIdle RevisionState = iota
	StateRecording
	StateUndoing
	StateRedoing
)

var (
	// ErrAtRoot is returned by Undo when the current revision is the root;
	// it is a no-op, not a hard failure.
	ErrAtRoot = errors.New("history: already at root revision")
	// ErrNoForwardChild is returned by Redo when the current revision has
	// no recorded child to move to; also a no-op.
	ErrNoForwardChild = errors.New("history: no forward revision to redo")
)

// Revision is one committed node in the history tree. It owns the forward
// Transaction that produced it from its parent's document state, and the
// precomputed inverse Transaction (computed against the parent's rope and
// selection at commit time, per the rule that undo never has to reconstruct
// an old document to compute its own inverse).
type Revision struct {
	id        uint64
	parent    *Revision
	lastChild *Revision // most recently visited/created child, for redo
	children  []*Revision

	forward   transaction.Transaction
	inverse   transaction.Transaction
	timestamp time.Time
}

// ID returns the revision's monotonically increasing identifier.
func (r *Revision) ID() uint64 { return r.id }

// Timestamp returns when the revision was committed.
func (r *Revision) Timestamp() time.Time { return r.timestamp }

// RevisionHistory is a tree of revisions keyed by monotonically increasing
// id. Every node's parent link, followed to the end, reaches the root.
// Undo walks to the parent; redo walks to the most recently visited child.
type RevisionHistory struct {
	mu sync.Mutex

	root    *Revision
	current *Revision
	nextID  uint64
	state   RevisionState

	recording   bool
	groupTxns   []transaction.Transaction
	groupBase   rope.Rope
	groupSel    selection.Selection
	groupActive bool

	maxRevisions int
}

// NewRevisionHistory creates a history tree rooted at an empty revision
// representing the document's initial state. maxRevisions bounds how many
// nodes are retained from the root forward; 0 means unbounded.
func NewRevisionHistory(maxRevisions int) *RevisionHistory {
	root := &Revision{id: 0, timestamp: time.Now()}
	return &RevisionHistory{
		root:         root,
		current:      root,
		nextID:       1,
		state:        StateIdle,
		maxRevisions: maxRevisions,
	}
}

// Current returns the revision the history is positioned at.
func (h *RevisionHistory) Current() *Revision {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// State returns the current recording/traversal state.
func (h *RevisionHistory) State() RevisionState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// AtRoot reports whether the history is positioned at the root revision.
func (h *RevisionHistory) AtRoot() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current == h.root
}

// BeginGroup opens a Recording group: subsequent AddToGroup calls
// accumulate transactions until EndGroup composes them into a single node.
// Commit is not affected by an open group and still creates its own
// revision.
func (h *RevisionHistory) BeginGroup(preDoc rope.Rope, preSel selection.Selection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.groupActive {
		return
	}
	h.groupActive = true
	h.state = StateRecording
	h.groupTxns = nil
	h.groupBase = preDoc
	h.groupSel = preSel
}

// AddToGroup records a transaction as part of the currently open group.
// The caller is responsible for having already applied txn to the document;
// this only tracks it for eventual composition.
func (h *RevisionHistory) AddToGroup(txn transaction.Transaction) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.groupActive {
		return
	}
	h.groupTxns = append(h.groupTxns, txn)
}

// CancelGroup discards an open group without committing a revision. Any
// document mutations already applied by the caller are left in place; this
// only affects bookkeeping.
func (h *RevisionHistory) CancelGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.groupActive = false
	h.groupTxns = nil
	h.state = StateIdle
}

// EndGroup composes every transaction recorded since BeginGroup into one
// ChangeSet and commits it as a single revision. An empty group is a no-op.
func (h *RevisionHistory) EndGroup() (*Revision, error) {
	h.mu.Lock()
	if !h.groupActive {
		h.mu.Unlock()
		return nil, nil
	}
	txns := h.groupTxns
	base := h.groupBase
	preSel := h.groupSel
	h.groupActive = false
	h.groupTxns = nil
	h.state = StateIdle
	h.mu.Unlock()

	if len(txns) == 0 {
		return nil, nil
	}
	composed := txns[0].Changes
	for _, t := range txns[1:] {
		var err error
		composed, err = composed.Compose(t.Changes)
		if err != nil {
			return nil, err
		}
	}
	final := transaction.New(composed)
	if last := txns[len(txns)-1]; last.Selection != nil {
		final = final.WithSelection(*last.Selection)
	}
	return h.Commit(base, preSel, final)
}

// Commit appends a new revision as a child of the current one. preDoc and
// preSel are the document and selection txn was applied against; they are
// used to precompute txn's inverse now, so Undo never needs to reconstruct
// an earlier document state.
func (h *RevisionHistory) Commit(preDoc rope.Rope, preSel selection.Selection, txn transaction.Transaction) (*Revision, error) {
	inv, err := txn.Invert(preDoc, preSel)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	node := &Revision{
		id:        h.nextID,
		parent:    h.current,
		forward:   txn,
		inverse:   inv,
		timestamp: time.Now(),
	}
	h.nextID++
	h.current.children = append(h.current.children, node)
	h.current.lastChild = node
	h.current = node

	h.enforceLimitLocked()
	return node, nil
}

// enforceLimitLocked detaches the oldest chain of single-child ancestors
// once the tree grows past maxRevisions, advancing the root forward so the
// undo/redo-eligible history stays bounded. Callers hold h.mu.
func (h *RevisionHistory) enforceLimitLocked() {
	if h.maxRevisions <= 0 {
		return
	}
	depth := 0
	for n := h.current; n != h.root; n = n.parent {
		depth++
	}
	for depth > h.maxRevisions && len(h.root.children) == 1 {
		h.root = h.root.children[0]
		h.root.parent = nil
		depth--
	}
}

// Undo applies the current revision's precomputed inverse to (doc, sel),
// moves current to its parent, and returns the resulting document and
// selection. A no-op (returns ErrAtRoot) when already at the root.
func (h *RevisionHistory) Undo(doc rope.Rope, sel selection.Selection) (rope.Rope, selection.Selection, error) {
	h.mu.Lock()
	if h.current == h.root {
		h.mu.Unlock()
		return doc, sel, ErrAtRoot
	}
	node := h.current
	h.state = StateUndoing
	h.mu.Unlock()

	newDoc, newSel, err := node.inverse.Apply(doc, sel)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = StateIdle
	if err != nil {
		return doc, sel, err
	}
	h.current = node.parent
	return newDoc, newSel, nil
}

// Redo re-applies the most recently visited child's forward transaction. A
// no-op (returns ErrNoForwardChild) when the current revision has no child.
func (h *RevisionHistory) Redo(doc rope.Rope, sel selection.Selection) (rope.Rope, selection.Selection, error) {
	h.mu.Lock()
	if h.current.lastChild == nil {
		h.mu.Unlock()
		return doc, sel, ErrNoForwardChild
	}
	node := h.current.lastChild
	h.state = StateRedoing
	h.mu.Unlock()

	newDoc, newSel, err := node.forward.Apply(doc, sel)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = StateIdle
	if err != nil {
		return doc, sel, err
	}
	h.current = node
	return newDoc, newSel, nil
}

// EarlierSteps walks n revisions toward the root, applying each inverse in
// turn. Stops early (without error) if the root is reached first.
func (h *RevisionHistory) EarlierSteps(doc rope.Rope, sel selection.Selection, n int) (rope.Rope, selection.Selection, error) {
	for i := 0; i < n; i++ {
		newDoc, newSel, err := h.Undo(doc, sel)
		if err == ErrAtRoot {
			return doc, sel, nil
		}
		if err != nil {
			return doc, sel, err
		}
		doc, sel = newDoc, newSel
	}
	return doc, sel, nil
}

// LaterSteps walks n revisions away from the root via lastChild links,
// applying each forward transaction in turn. Stops early (without error)
// if there is no further forward child.
func (h *RevisionHistory) LaterSteps(doc rope.Rope, sel selection.Selection, n int) (rope.Rope, selection.Selection, error) {
	for i := 0; i < n; i++ {
		newDoc, newSel, err := h.Redo(doc, sel)
		if err == ErrNoForwardChild {
			return doc, sel, nil
		}
		if err != nil {
			return doc, sel, err
		}
		doc, sel = newDoc, newSel
	}
	return doc, sel, nil
}

// EarlierDuration walks toward the root while the revision being undone was
// committed within d of the current revision's timestamp.
func (h *RevisionHistory) EarlierDuration(doc rope.Rope, sel selection.Selection, d time.Duration) (rope.Rope, selection.Selection, error) {
	h.mu.Lock()
	threshold := h.current.timestamp.Add(-d)
	h.mu.Unlock()

	for {
		h.mu.Lock()
		if h.current == h.root || h.current.timestamp.Before(threshold) {
			h.mu.Unlock()
			return doc, sel, nil
		}
		h.mu.Unlock()

		newDoc, newSel, err := h.Undo(doc, sel)
		if err == ErrAtRoot {
			return doc, sel, nil
		}
		if err != nil {
			return doc, sel, err
		}
		doc, sel = newDoc, newSel
	}
}

// LaterDuration walks away from the root while the forward child's
// timestamp stays within d of the current revision's timestamp.
func (h *RevisionHistory) LaterDuration(doc rope.Rope, sel selection.Selection, d time.Duration) (rope.Rope, selection.Selection, error) {
	for {
		h.mu.Lock()
		child := h.current.lastChild
		withinWindow := child != nil && !child.timestamp.After(h.current.timestamp.Add(d))
		h.mu.Unlock()
		if !withinWindow {
			return doc, sel, nil
		}

		newDoc, newSel, err := h.Redo(doc, sel)
		if err == ErrNoForwardChild {
			return doc, sel, nil
		}
		if err != nil {
			return doc, sel, err
		}
		doc, sel = newDoc, newSel
	}
}

// JumpToTimestamp walks toward the root until reaching the most recent
// revision committed at or before t (or the root, if none qualifies).
func (h *RevisionHistory) JumpToTimestamp(doc rope.Rope, sel selection.Selection, t time.Time) (rope.Rope, selection.Selection, error) {
	for {
		h.mu.Lock()
		atTarget := h.current == h.root || !h.current.timestamp.After(t)
		h.mu.Unlock()
		if atTarget {
			return doc, sel, nil
		}
		newDoc, newSel, err := h.Undo(doc, sel)
		if err == ErrAtRoot {
			return doc, sel, nil
		}
		if err != nil {
			return doc, sel, err
		}
		doc, sel = newDoc, newSel
	}
}
