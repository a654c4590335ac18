package indent

import "github.com/velum-editor/velum/internal/engine/rope"

const autoDetectLineLimit = 1000

func isLineEndingRune(r rune) bool {
	switch r {
	case '\n', '\r', '\f', '\v', rune(0x0085), rune(0x2028), rune(0x2029):
		return true
	}
	return false
}

// isWhitespaceRune matches horizontal whitespace only; line-ending runes
// are handled separately by isLineEndingRune so the two predicates stay
// disjoint.
func isWhitespaceRune(r rune) bool {
	return r == ' ' || r == '\t'
}

// AutoDetect builds a histogram of indentation increases between
// consecutive non-blank lines (tab vs. N spaces, tabs weighted 2x) and
// returns the most frequent bucket's style, or ok=false ("no decision")
// when the next-most-frequent bucket is within 66% of the winner's count.
func AutoDetect(text rope.Rope) (style Style, ok bool) {
	var histogram [9]int // index 0 = tabs, 1..8 = spaces

	prevIsTabs := false
	prevLeading := 0

	lines := text.Lines()
	lineNo := 0
outer:
	for lines.Next() && lineNo < autoDetectLineLimit {
		lineNo++
		line := lines.Text()

		runes := []rune(line)
		if len(runes) == 0 {
			prevIsTabs = false
			prevLeading = 0
			continue
		}

		var isTabs bool
		switch runes[0] {
		case '\t':
			isTabs = true
		case ' ':
			isTabs = false
		default:
			if isLineEndingRune(runes[0]) {
				continue outer
			}
			prevIsTabs = false
			prevLeading = 0
			continue outer
		}

		leading := 1
		countDone := false
		for _, c := range runes[1:] {
			switch {
			case c == '\t' && isTabs && !countDone:
				leading++
			case c == ' ' && !isTabs && !countDone:
				leading++
			case isLineEndingRune(c):
				continue outer
			case isWhitespaceRune(c):
				countDone = true
			default:
				// stop counting leading whitespace, line is non-blank
				goto doneCounting
			}
			if leading > 256 {
				continue outer
			}
		}
	doneCounting:

		if (prevIsTabs == isTabs || prevLeading == 0) && prevLeading < leading {
			if isTabs {
				histogram[0]++
			} else {
				amount := leading - prevLeading
				if amount <= 8 {
					histogram[amount]++
				}
			}
		}

		prevIsTabs = isTabs
		prevLeading = leading
	}

	histogram[0] *= 2

	best, bestFreq := 0, histogram[0]
	for i := 1; i < len(histogram); i++ {
		if histogram[i] > bestFreq {
			best, bestFreq = i, histogram[i]
		}
	}

	secondFreq := 0
	for i, freq := range histogram {
		if i == best {
			continue
		}
		if freq > secondFreq {
			secondFreq = freq
		}
	}

	if bestFreq >= 1 && float64(secondFreq)/float64(bestFreq) < 0.66 {
		if best == 0 {
			return Tabs, true
		}
		return Spaces(uint8(best)), true
	}
	return Style{}, false
}

// LevelForLine returns the existing line's indent level (its leading
// whitespace width divided by tabWidth), used to derive a new line's
// indentation when no syntax tree is available.
func LevelForLine(line string, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 1
	}
	width := 0
	for _, c := range line {
		switch c {
		case '\t':
			width += tabWidth
		case ' ':
			width++
		default:
			return width / tabWidth
		}
	}
	return width / tabWidth
}
