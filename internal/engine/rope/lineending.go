package rope

import "strings"

// LineEnding identifies which line terminator sequence a buffer uses.
// Detection recognizes the full Unicode set of line-breaking sequences;
// only LF, CRLF, and CR are used when inserting new terminators, matching
// the terminal-editor convention that a document picks a single insertion
// style even if it tolerates a mixture on read.
type LineEnding uint8

const (
	LineEndingLF LineEnding = iota
	LineEndingCRLF
	LineEndingCR
	LineEndingNEL // U+0085 NEXT LINE
	LineEndingLS  // U+2028 LINE SEPARATOR
	LineEndingPS  // U+2029 PARAGRAPH SEPARATOR
	LineEndingFF  // U+000C FORM FEED
	LineEndingVT  // U+000B VERTICAL TAB
)

// Recognized non-ASCII line-breaking code points.
const (
	runeNEL = ''
	runeLS  = ' '
	runePS  = ' '
)

// Sequence returns the literal byte sequence for this line ending.
func (e LineEnding) Sequence() string {
	switch e {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	case LineEndingNEL:
		return string(rune(runeNEL))
	case LineEndingLS:
		return string(rune(runeLS))
	case LineEndingPS:
		return string(rune(runePS))
	case LineEndingFF:
		return "\f"
	case LineEndingVT:
		return "\v"
	default:
		return "\n"
	}
}

// String returns a human-readable name for the line ending.
func (e LineEnding) String() string {
	switch e {
	case LineEndingLF:
		return "LF"
	case LineEndingCRLF:
		return "CRLF"
	case LineEndingCR:
		return "CR"
	case LineEndingNEL:
		return "NEL"
	case LineEndingLS:
		return "LS"
	case LineEndingPS:
		return "PS"
	case LineEndingFF:
		return "FF"
	case LineEndingVT:
		return "VT"
	default:
		return "unknown"
	}
}

// PlatformDefaultLineEnding is the line ending assigned to a new buffer
// that has never been loaded from disk.
const PlatformDefaultLineEnding = LineEndingLF

// DetectLineEnding finds the line ending of the first terminated line in s.
// Returns (ending, true) if a terminator was found, otherwise
// (PlatformDefaultLineEnding, false) so a fresh buffer keeps the platform
// default rather than silently adopting one from a zero-length scan.
func DetectLineEnding(s string) (LineEnding, bool) {
	for i, r := range s {
		switch r {
		case '\n':
			return LineEndingLF, true
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				return LineEndingCRLF, true
			}
			return LineEndingCR, true
		case rune(runeNEL):
			return LineEndingNEL, true
		case rune(runeLS):
			return LineEndingLS, true
		case rune(runePS):
			return LineEndingPS, true
		case '\f':
			return LineEndingFF, true
		case '\v':
			return LineEndingVT, true
		}
	}
	return PlatformDefaultLineEnding, false
}

// DetectLineEnding finds the line ending of the first terminated line in
// the rope's content without materializing the whole document; it scans
// chunk by chunk and stops at the first match. A CRLF split across a
// chunk boundary is still recognized via a one-byte carry.
func (r Rope) DetectLineEnding() (LineEnding, bool) {
	it := r.Chunks()
	carryCR := false
	for it.Next() {
		chunk := it.Chunk().String()
		if carryCR && len(chunk) > 0 && chunk[0] == '\n' {
			return LineEndingCRLF, true
		}
		if carryCR {
			return LineEndingCR, true
		}
		if n := len(chunk); n > 0 && chunk[n-1] == '\r' {
			if ending, ok := DetectLineEnding(chunk[:n-1]); ok {
				return ending, true
			}
			carryCR = true
			continue
		}
		if ending, ok := DetectLineEnding(chunk); ok {
			return ending, true
		}
	}
	if carryCR {
		return LineEndingCR, true
	}
	return PlatformDefaultLineEnding, false
}

// HasMixedLineEndings reports whether s contains more than one distinct
// line terminator sequence among LF, CRLF, and CR.
func HasMixedLineEndings(s string) bool {
	seen := map[LineEnding]bool{}
	i := 0
	for i < len(s) {
		switch s[i] {
		case '\n':
			seen[LineEndingLF] = true
			i++
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				seen[LineEndingCRLF] = true
				i += 2
			} else {
				seen[LineEndingCR] = true
				i++
			}
		default:
			i++
		}
		if len(seen) > 1 {
			return true
		}
	}
	return false
}

// NormalizeLineEndings rewrites every recognized LF/CRLF/CR terminator in
// s to the given ending's sequence. This only ever runs on save, and only
// when the caller opts in; the document never normalizes silently.
func NormalizeLineEndings(s string, to LineEnding) string {
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	seq := to.Sequence()
	for i < len(s) {
		switch {
		case s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n':
			b.WriteString(seq)
			i += 2
		case s[i] == '\r' || s[i] == '\n':
			b.WriteString(seq)
			i++
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String()
}
