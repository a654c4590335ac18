package syntax

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/velum-editor/velum/internal/engine/rope"
	"github.com/velum-editor/velum/internal/engine/transaction"
)

// EditsFromChangeSet translates cs, applied to oldText, into the ordered
// tree_sitter.InputEdit sequence Tree.Edit needs before an incremental
// reparse. Edits are expressed left-to-right in the coordinate space each
// edit sees at the moment it's applied: an edit's StartByte/OldEndByte are
// oldText's own byte offsets shifted by every insert/delete already
// accounted for, and its NewEndByte lands in the final document's byte
// space, matching how ts_tree_edit expects a sequence of edits applied in
// order to shift every node that follows each one.
func EditsFromChangeSet(oldText rope.Rope, cs transaction.ChangeSet) []tree_sitter.InputEdit {
	var edits []tree_sitter.InputEdit

	oldChar := rope.CharOffset(0)
	shift := int64(0)

	toPoint := func(b rope.ByteOffset) tree_sitter.Point {
		p := oldText.OffsetToPoint(b)
		return tree_sitter.Point{Row: p.Line, Column: p.Column}
	}

	for _, op := range cs.Ops() {
		switch op.Kind {
		case transaction.OpRetain:
			oldChar += op.N

		case transaction.OpDelete:
			startByte, err := oldText.CharToByte(oldChar)
			if err != nil {
				oldChar += op.N
				continue
			}
			endByte, err := oldText.CharToByte(oldChar + op.N)
			if err != nil {
				oldChar += op.N
				continue
			}
			startPoint := toPoint(startByte)
			edits = append(edits, tree_sitter.InputEdit{
				StartByte:      uint(int64(startByte) + shift),
				OldEndByte:     uint(int64(endByte) + shift),
				NewEndByte:     uint(int64(startByte) + shift),
				StartPosition:  startPoint,
				OldEndPosition: toPoint(endByte),
				NewEndPosition: startPoint,
			})
			shift -= int64(endByte - startByte)
			oldChar += op.N

		case transaction.OpInsert:
			atByte, err := oldText.CharToByte(oldChar)
			if err != nil {
				continue
			}
			startPoint := toPoint(atByte)
			newEndPoint := advancePoint(startPoint, op.Text)
			insLen := int64(len(op.Text))
			edits = append(edits, tree_sitter.InputEdit{
				StartByte:      uint(int64(atByte) + shift),
				OldEndByte:     uint(int64(atByte) + shift),
				NewEndByte:     uint(int64(atByte) + shift + insLen),
				StartPosition:  startPoint,
				OldEndPosition: startPoint,
				NewEndPosition: newEndPoint,
			})
			shift += insLen
		}
	}

	return edits
}

// advancePoint returns the point reached after text is written starting at
// start: newlines reset the column and advance the row; everything else
// advances the column by its byte length.
func advancePoint(start tree_sitter.Point, text string) tree_sitter.Point {
	row, col := start.Row, start.Column
	for {
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			col += uint32(len(text))
			break
		}
		row++
		col = 0
		text = text[idx+1:]
	}
	return tree_sitter.Point{Row: row, Column: col}
}

// ApplyEdits calls tree.Edit for every edit, in order, preparing tree for
// an incremental reparse against the new text.
func ApplyEdits(tree *tree_sitter.Tree, edits []tree_sitter.InputEdit) {
	for _, e := range edits {
		tree.Edit(&e)
	}
}
