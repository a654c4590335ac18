package rope

import (
	"github.com/rivo/uniseg"
)

// GraphemeIterator walks a rope one extended grapheme cluster at a time.
//
// The iterator is a finite lazy sequence driven by a mutable cursor: it is
// not restartable after consumption. Callers that need to resume from an
// earlier position should capture a fresh iterator via Rope.Graphemes or
// Rope.GraphemesAt rather than attempt to rewind this one.
type GraphemeIterator struct {
	text     string
	offset   ByteOffset // absolute byte offset of the start of text within the rope
	pos      int        // byte offset into text of the next cluster to yield
	reverse  bool
	cur      string
	curStart ByteOffset
	done     bool
}

// Graphemes returns a forward grapheme iterator starting at the beginning
// of the rope.
func (r Rope) Graphemes() *GraphemeIterator {
	return r.GraphemesAt(0)
}

// GraphemesAt returns a forward grapheme iterator starting at the given
// byte offset. The offset must land on a grapheme boundary; callers that
// are unsure should snap via Rope.PrevGraphemeBoundary first.
func (r Rope) GraphemesAt(offset ByteOffset) *GraphemeIterator {
	return &GraphemeIterator{
		text:   r.Slice(offset, r.Len()),
		offset: offset,
	}
}

// GraphemesReverse returns a reverse grapheme iterator starting just
// before the given byte offset and walking toward the start of the rope.
func (r Rope) GraphemesReverse(offset ByteOffset) *GraphemeIterator {
	return &GraphemeIterator{
		text:    r.Slice(0, offset),
		offset:  0,
		pos:     int(offset),
		reverse: true,
	}
}

// Next advances to the next grapheme cluster. Returns false when iteration
// is complete.
func (it *GraphemeIterator) Next() bool {
	if it.done {
		return false
	}
	if it.reverse {
		if it.pos <= 0 {
			it.done = true
			return false
		}
		head := it.text[:it.pos]
		// uniseg has no reverse API; find the last boundary by scanning
		// forward from the start of the remaining prefix and remembering
		// the last cluster before it.Next() returns.
		last := ""
		lastStart := 0
		rest := head
		off := 0
		for len(rest) > 0 {
			cluster, r, _, _ := uniseg.FirstGraphemeClusterInString(rest, -1)
			if cluster == "" {
				break
			}
			last = cluster
			lastStart = off
			rest = r
			off += len(cluster)
		}
		if last == "" {
			it.done = true
			return false
		}
		it.cur = last
		it.curStart = it.offset + ByteOffset(lastStart)
		it.pos = lastStart
		return true
	}

	if it.pos >= len(it.text) {
		it.done = true
		return false
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(it.text[it.pos:], -1)
	if cluster == "" {
		it.done = true
		return false
	}
	it.cur = cluster
	it.curStart = it.offset + ByteOffset(it.pos)
	it.pos += len(cluster)
	return true
}

// Cluster returns the current grapheme cluster's text.
func (it *GraphemeIterator) Cluster() string {
	return it.cur
}

// Offset returns the absolute byte offset of the current cluster's start.
func (it *GraphemeIterator) Offset() ByteOffset {
	return it.curStart
}

// NextGraphemeBoundary returns the byte offset of the first grapheme
// boundary strictly after offset, or the rope's length if offset is at or
// past the last boundary.
func (r Rope) NextGraphemeBoundary(offset ByteOffset) ByteOffset {
	if offset >= r.Len() {
		return r.Len()
	}
	tail := r.Slice(offset, r.Len())
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(tail, -1)
	if cluster == "" {
		return r.Len()
	}
	return offset + ByteOffset(len(cluster))
}

// PrevGraphemeBoundary returns the byte offset of the first grapheme
// boundary strictly before offset, or 0 if offset is at or before the
// first boundary.
func (r Rope) PrevGraphemeBoundary(offset ByteOffset) ByteOffset {
	if offset <= 0 {
		return 0
	}
	head := r.Slice(0, offset)
	var lastStart int
	rest := head
	off := 0
	for len(rest) > 0 {
		cluster, tail, _, _ := uniseg.FirstGraphemeClusterInString(rest, -1)
		if cluster == "" {
			break
		}
		if off+len(cluster) >= len(head) {
			lastStart = off
			break
		}
		rest = tail
		off += len(cluster)
		lastStart = off
	}
	return ByteOffset(lastStart)
}

// GraphemeAt returns the single grapheme cluster that contains offset.
func (r Rope) GraphemeAt(offset ByteOffset) string {
	if offset >= r.Len() {
		return ""
	}
	tail := r.Slice(offset, r.Len())
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(tail, -1)
	return cluster
}
