package indent

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/velum-editor/velum/internal/engine/rope"
)

// addedIndent is the indent contributed by a single node for a single
// line. Unlike the running total, indent and outdent on the same node set
// don't cancel arithmetically -- they're ORed and only reconciled into a
// signed delta once a line's contributions are fully combined.
type addedIndent struct {
	indent  bool
	outdent bool
}

func (a *addedIndent) combineWith(other addedIndent) {
	a.indent = a.indent || other.indent
	a.outdent = a.outdent || other.outdent
}

func (a addedIndent) delta() int {
	switch {
	case a.indent && !a.outdent:
		return 1
	case a.outdent && !a.indent:
		return -1
	default:
		return 0
	}
}

// firstInLine computes, for node and every ancestor up to the root, whether
// that node is the first meaningful node on its line. Index 0 is the root;
// the last entry is node itself.
func firstInLine(node tree_sitter.Node, bytePos uint, newLine bool) []bool {
	var raw []*bool
	cur := node
	for {
		prev := cur.PrevSibling()
		if prev != nil {
			first := prev.EndPosition().Row != cur.StartPosition().Row ||
				(newLine && cur.StartByte() >= bytePos && prev.StartByte() < bytePos)
			raw = append(raw, &first)
		} else {
			raw = append(raw, nil)
		}
		parent := cur.Parent()
		if parent == nil {
			break
		}
		cur = *parent
	}

	result := make([]bool, len(raw))
	parentIsFirst := true
	for i := len(raw) - 1; i >= 0; i-- {
		if raw[i] != nil {
			result[i] = *raw[i]
			parentIsFirst = *raw[i]
		} else {
			result[i] = parentIsFirst
		}
	}
	return result
}

func addedIndentFor(query *Query, node tree_sitter.Node) (line, next addedIndent) {
	indentLine, indentNext := query.Indent.ContainsMatch(node)
	outdentLine, outdentNext := query.Outdent.ContainsMatch(node)
	return addedIndent{indent: indentLine, outdent: outdentLine},
		addedIndent{indent: indentNext, outdent: outdentNext}
}

// ForPos computes the indent level for position pos in text, using the
// smallest syntax node containing pos as the starting point and walking its
// ancestors to the root. When newLine is true, pos is treated as the point
// where a new line will be inserted: the node/line-below bookkeeping is
// shifted so contributions from the text after pos land on the new line
// instead of the current one. Returns ok=false if root has no node at pos.
func ForPos(query *Query, root tree_sitter.Node, style Style, text rope.Rope, line uint32, pos rope.CharOffset, newLine bool) (string, bool) {
	bytePosOff, err := text.CharToByte(pos)
	if err != nil {
		return "", false
	}
	bytePos := uint(bytePosOff)

	node := root.DescendantForByteRange(bytePos, bytePos)
	if node == nil {
		return "", false
	}

	firsts := firstInLine(*node, bytePos, newLine)

	total := 0
	indentForLine := addedIndent{}
	indentForLineBelow := addedIndent{}

	cur := *node
	for {
		nodeIndents, nextIndents := addedIndentFor(query, cur)
		if firsts[len(firsts)-1] {
			indentForLine.combineWith(nodeIndents)
		} else {
			indentForLineBelow.combineWith(nodeIndents)
		}
		indentForLineBelow.combineWith(nextIndents)

		parent := cur.Parent()
		if parent == nil {
			total += indentForLineBelow.delta()
			total += indentForLine.delta()
			break
		}

		nodeLine := uint32(cur.StartPosition().Row)
		parentLine := uint32(parent.StartPosition().Row)
		if nodeLine == line && newLine {
			if cur.StartByte() >= bytePos {
				nodeLine++
			}
			if parent.StartByte() >= bytePos {
				parentLine++
			}
		}

		if nodeLine != parentLine {
			newLineOffset := uint32(0)
			if newLine {
				newLineOffset = 1
			}
			if nodeLine < line+newLineOffset {
				total += indentForLineBelow.delta()
			}
			if nodeLine == parentLine+1 {
				indentForLineBelow = indentForLine
			} else {
				total += indentForLine.delta()
				indentForLineBelow = addedIndent{}
			}
			indentForLine = addedIndent{}
		}

		cur = *parent
		firsts = firsts[:len(firsts)-1]
	}

	return style.Render(total), true
}

// ForNewLine returns the indentation for a newly inserted line after
// lineBeforeEndPos on lineBefore. It prefers the syntax-tree-driven result
// from ForPos; if no query/tree is available, or the position has no
// syntax node, it falls back to copying currentLine's existing indent
// level.
func ForNewLine(query *Query, root tree_sitter.Node, haveSyntax bool, style Style, tabWidth int, text rope.Rope, lineBefore uint32, lineBeforeEndPos rope.CharOffset, currentLineText string) string {
	if haveSyntax && query != nil {
		if out, ok := ForPos(query, root, style, text, lineBefore, lineBeforeEndPos, true); ok {
			return out
		}
	}
	return style.Render(LevelForLine(currentLineText, tabWidth))
}
