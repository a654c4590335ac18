package rope

import "unicode/utf8"

// CharOffset is a position counted in Unicode scalar values (runes) rather
// than UTF-8 bytes. Selections and the transaction engine operate in this
// space; the rope itself is addressable by byte, char, and line and never
// conflates the three.
type CharOffset int64

// CharLen returns the rope's length in Unicode scalar values.
func (r Rope) CharLen() CharOffset {
	var n CharOffset
	it := r.Chunks()
	for it.Next() {
		n += CharOffset(utf8.RuneCountInString(it.Chunk().String()))
	}
	return n
}

// ByteToChar converts a byte offset to a char offset.
// Fails with ErrOutOfBounds if offset is outside [0, Len()].
func (r Rope) ByteToChar(offset ByteOffset) (CharOffset, error) {
	if offset < 0 || offset > r.Len() {
		return 0, ErrOutOfBounds
	}
	var chars CharOffset
	var seen ByteOffset
	it := r.Chunks()
	for it.Next() {
		chunk := it.Chunk().String()
		chunkLen := ByteOffset(len(chunk))
		if seen+chunkLen >= offset {
			chars += CharOffset(utf8.RuneCountInString(chunk[:offset-seen]))
			return chars, nil
		}
		chars += CharOffset(utf8.RuneCountInString(chunk))
		seen += chunkLen
	}
	if offset == seen {
		return chars, nil
	}
	return 0, ErrOutOfBounds
}

// CharToByte converts a char offset to a byte offset.
// Fails with ErrOutOfBounds if offset is outside [0, CharLen()].
func (r Rope) CharToByte(offset CharOffset) (ByteOffset, error) {
	if offset < 0 {
		return 0, ErrOutOfBounds
	}
	var chars CharOffset
	var bytes ByteOffset
	it := r.Chunks()
	for it.Next() {
		chunk := it.Chunk().String()
		for i, rn := range chunk {
			if chars == offset {
				return bytes + ByteOffset(i), nil
			}
			chars++
			_ = rn
		}
		bytes += ByteOffset(len(chunk))
	}
	if chars == offset {
		return bytes, nil
	}
	return 0, ErrOutOfBounds
}

// CharToLine converts a char offset to its containing line number.
func (r Rope) CharToLine(offset CharOffset) (uint32, error) {
	b, err := r.CharToByte(offset)
	if err != nil {
		return 0, err
	}
	p := r.OffsetToPoint(b)
	return p.Line, nil
}

// LineToChar converts a line number to the char offset of its first
// character.
func (r Rope) LineToChar(line uint32) (CharOffset, error) {
	if line >= r.LineCount() {
		return 0, ErrOutOfBounds
	}
	b := r.LineStartOffset(line)
	return r.ByteToChar(b)
}

// LineEndCharIndex returns the char offset just past the last character of
// the given line, excluding its terminator.
func (r Rope) LineEndCharIndex(line uint32) (CharOffset, error) {
	if line >= r.LineCount() {
		return 0, ErrOutOfBounds
	}
	b := r.LineEndOffset(line)
	return r.ByteToChar(b)
}
