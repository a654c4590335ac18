package history

import (
	"testing"
	"time"

	"github.com/velum-editor/velum/internal/engine/rope"
	"github.com/velum-editor/velum/internal/engine/selection"
	"github.com/velum-editor/velum/internal/engine/transaction"
)

func insertTxn(baseLen transaction.CharOffset, at transaction.CharOffset, text string) transaction.Transaction {
	b := transaction.NewBuilder(baseLen)
	b.Retain(at)
	b.Insert(text)
	return transaction.New(b.Build())
}

func TestRevisionHistoryUndoRedo(t *testing.T) {
	doc := rope.FromString("abc")
	sel := selection.Cursor(0)
	h := NewRevisionHistory(0)

	txn1 := insertTxn(doc.CharLen(), 3, "X")
	doc1, sel1, err := txn1.Apply(doc, sel)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, err := h.Commit(doc, sel, txn1); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if doc1.String() != "abcX" {
		t.Fatalf("doc1 = %q", doc1.String())
	}

	txn2 := insertTxn(doc1.CharLen(), 4, "Y")
	doc2, sel2, err := txn2.Apply(doc1, sel1)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, err := h.Commit(doc1, sel1, txn2); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if doc2.String() != "abcXY" {
		t.Fatalf("doc2 = %q", doc2.String())
	}

	// Undo back to doc1.
	back1, _, err := h.Undo(doc2, sel2)
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if back1.String() != doc1.String() {
		t.Fatalf("Undo() = %q, want %q", back1.String(), doc1.String())
	}

	// Undo back to doc (root).
	back0, _, err := h.Undo(back1, sel1)
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if back0.String() != "abc" {
		t.Fatalf("Undo() = %q, want %q", back0.String(), "abc")
	}

	if !h.AtRoot() {
		t.Fatal("expected history to be at root")
	}
	if _, _, err := h.Undo(back0, sel); err != ErrAtRoot {
		t.Fatalf("Undo at root = %v, want ErrAtRoot", err)
	}

	// Redo forward again.
	fwd1, _, err := h.Redo(back0, sel)
	if err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if fwd1.String() != doc1.String() {
		t.Fatalf("Redo() = %q, want %q", fwd1.String(), doc1.String())
	}
	fwd2, _, err := h.Redo(fwd1, sel1)
	if err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if fwd2.String() != doc2.String() {
		t.Fatalf("Redo() = %q, want %q", fwd2.String(), doc2.String())
	}
	if _, _, err := h.Redo(fwd2, sel2); err != ErrNoForwardChild {
		t.Fatalf("Redo with no child = %v, want ErrNoForwardChild", err)
	}
}

func TestRevisionHistoryGroupCommitsOneNode(t *testing.T) {
	doc := rope.FromString("abc")
	sel := selection.Cursor(0)
	h := NewRevisionHistory(0)

	h.BeginGroup(doc, sel)
	txn1 := insertTxn(doc.CharLen(), 0, "1")
	doc1, sel1, _ := txn1.Apply(doc, sel)
	h.AddToGroup(txn1)

	txn2 := insertTxn(doc1.CharLen(), 0, "2")
	doc2, _, _ := txn2.Apply(doc1, sel1)
	h.AddToGroup(txn2)

	rev, err := h.EndGroup()
	if err != nil {
		t.Fatalf("EndGroup: %v", err)
	}
	if rev == nil {
		t.Fatal("EndGroup returned nil revision")
	}
	if rev.parent != h.root {
		t.Fatal("grouped commit should be a single child of root")
	}
	if len(h.root.children) != 1 {
		t.Fatalf("root has %d children, want 1", len(h.root.children))
	}

	undone, _, err := h.Undo(doc2, sel)
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if undone.String() != "abc" {
		t.Fatalf("Undo() = %q, want %q", undone.String(), "abc")
	}
}

func TestRevisionHistoryBranching(t *testing.T) {
	doc := rope.FromString("abc")
	sel := selection.Cursor(0)
	h := NewRevisionHistory(0)

	txnA := insertTxn(doc.CharLen(), 3, "A")
	docA, selA, _ := txnA.Apply(doc, sel)
	h.Commit(doc, sel, txnA)

	// Undo back to root, then commit a different branch.
	back, backSel, err := h.Undo(docA, selA)
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}

	txnB := insertTxn(back.CharLen(), 3, "B")
	docB, _, _ := txnB.Apply(back, backSel)
	h.Commit(back, backSel, txnB)

	if docB.String() != "abcB" {
		t.Fatalf("docB = %q", docB.String())
	}
	// lastChild now points at the B branch, not the original A branch.
	if h.root.lastChild == nil || h.root.lastChild != h.current {
		t.Fatal("expected lastChild to point at the most recently committed branch")
	}
}

func TestRevisionHistoryParentLinksReachRoot(t *testing.T) {
	doc := rope.FromString("a")
	sel := selection.Cursor(0)
	h := NewRevisionHistory(0)

	cur := doc
	curSel := sel
	for i := 0; i < 5; i++ {
		txn := insertTxn(cur.CharLen(), cur.CharLen(), "x")
		next, nextSel, _ := txn.Apply(cur, curSel)
		h.Commit(cur, curSel, txn)
		cur, curSel = next, nextSel
		time.Sleep(time.Millisecond)
	}

	n := h.current
	for n.parent != nil {
		n = n.parent
	}
	if n != h.root {
		t.Fatal("walking parent links from a leaf did not reach the root")
	}
}
