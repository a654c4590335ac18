package fold

import (
	"unicode"

	"github.com/velum-editor/velum/internal/engine/rope"
)

// CharOffset is a char (rune) index into a rope, matching rope.CharOffset.
type CharOffset = rope.CharOffset

// noSuperLink marks a StartFoldPoint with no super fold.
const noSuperLink = -1

// StartFoldPoint is the start of a fold.
type StartFoldPoint struct {
	Object Object

	// Header is the first char of the header fragment.
	Header CharOffset
	// Target is the first char of the target span.
	Target CharOffset

	// Byte is the first byte of the block.
	Byte rope.ByteOffset
	// Char is the first char of the block.
	Char CharOffset
	// Line is the first line of the block.
	Line uint32

	link      int // index of this fold's EndFoldPoint in Container.endPoints
	superLink int // index of the super fold's StartFoldPoint, or noSuperLink
}

// IsSuperest reports whether this fold has no enclosing fold.
func (s *StartFoldPoint) IsSuperest() bool {
	return s.superLink == noSuperLink
}

func newStartFoldPoint(text rope.Rope, object Object, header, target CharOffset) StartFoldPoint {
	s := StartFoldPoint{Object: object, Header: header, Target: target, superLink: noSuperLink}
	s.setBlock(text, s.blockLine(text))
	return s
}

// blockLine returns the first line of the block: the target's line, pushed
// one line later if the target's own line has non-whitespace text before
// the target (that text must stay visible, so the fold cannot swallow it).
func (s *StartFoldPoint) blockLine(text rope.Rope) uint32 {
	byteOff, _ := text.CharToByte(s.Target)
	truncate := false
	it := text.GraphemesReverse(byteOff)
	for it.Next() {
		g := it.Cluster()
		if isLineEndingGrapheme(g) {
			break
		}
		if hasNonWhitespace(g) {
			truncate = true
		}
	}
	line, _ := text.CharToLine(s.Target)
	if truncate {
		return line + 1
	}
	return line
}

func (s *StartFoldPoint) setBlock(text rope.Rope, line uint32) {
	s.Byte = text.LineStartOffset(line)
	s.Char, _ = text.LineToChar(line)
	s.Line = line
}

// EndFoldPoint is the end of a fold.
type EndFoldPoint struct {
	// Target is the last char of the target span.
	Target CharOffset

	// Byte is the last grapheme-aligned byte of the block.
	Byte rope.ByteOffset
	// Char is the last grapheme-aligned char of the block.
	Char CharOffset
	// Line is the last line of the block.
	Line uint32

	link int // index of this fold's StartFoldPoint in Container.startPoints
}

func newEndFoldPoint(text rope.Rope, target CharOffset) EndFoldPoint {
	e := EndFoldPoint{Target: target}
	e.setBlock(text, e.blockLine(text))
	return e
}

// blockLine returns the last line of the block: the target's line, pulled
// one line earlier if the target's own line has non-whitespace text after
// the target.
func (e *EndFoldPoint) blockLine(text rope.Rope) uint32 {
	byteOff, _ := text.CharToByte(e.Target)
	line, _ := text.CharToLine(e.Target)
	endChar, _ := text.LineEndCharIndex(line)

	it := text.GraphemesAt(byteOff)
	if e.Target != endChar {
		it.Next()
	}

	truncate := false
	for it.Next() {
		g := it.Cluster()
		if isLineEndingGrapheme(g) {
			break
		}
		if hasNonWhitespace(g) {
			truncate = true
		}
	}
	if truncate {
		return line - 1
	}
	return line
}

func (e *EndFoldPoint) setBlock(text rope.Rope, line uint32) {
	e.Byte = text.LineEndOffset(line)
	e.Char, _ = text.LineEndCharIndex(line)
	e.Line = line
}

// Fold is a matched pair of fold points, read together.
type Fold struct {
	Start StartFoldPoint
	End   EndFoldPoint
}

// StartIdx returns the index of Start within Container.startPoints.
func (f Fold) StartIdx() int {
	return f.End.link
}

// EndIdx returns the index of End within Container.endPoints.
func (f Fold) EndIdx() int {
	return f.Start.link
}

// IsSuperest reports whether this fold has no enclosing fold.
func (f Fold) IsSuperest() bool {
	return f.Start.IsSuperest()
}

func isLineEndingGrapheme(g string) bool {
	switch g {
	case "\n", "\r\n", "\r", "\f", "\v":
		return true
	}
	for _, r := range g {
		switch r {
		case '', ' ', ' ':
			return true
		}
	}
	return false
}

func hasNonWhitespace(g string) bool {
	for _, r := range g {
		if !unicode.IsSpace(r) {
			return true
		}
	}
	return false
}
