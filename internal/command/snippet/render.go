package snippet

import (
	"sort"
	"strings"
)

// Range is a half-open [Start, End) span of char offsets into a rendered
// snippet's text.
type Range struct {
	Start, End int
}

// Render walks a parsed snippet's AST and produces the text that should be
// inserted plus the tabstop groups within it: each group is every Range
// registered under a given tabstop number, in the order encountered.
// Groups are ordered by ascending tabstop number except tabstop 0, which
// always comes last (it marks the final cursor position per the LSP
// snippet spec). newlinePrefix replaces '\n' inside literal text so
// multi-line snippets stay indented to the insertion point; when
// includePlaceholderText is false, placeholder bodies are skipped and
// only their (empty) tabstop range is recorded.
func Render(elements []Element, newlinePrefix string, includePlaceholderText bool) (string, [][]Range) {
	var b strings.Builder
	offset := 0
	var hits []tabstopHit

	renderElements(elements, &b, &offset, &hits, newlinePrefix, includePlaceholderText)

	sort.SliceStable(hits, func(i, j int) bool {
		return sortKey(hits[i].num) < sortKey(hits[j].num)
	})

	var groups [][]Range
	var prevNum int
	havePrev := false
	for _, h := range hits {
		if havePrev && h.num == prevNum {
			groups[len(groups)-1] = append(groups[len(groups)-1], h.r)
			continue
		}
		groups = append(groups, []Range{h.r})
		prevNum = h.num
		havePrev = true
	}

	return b.String(), groups
}

type tabstopHit struct {
	num int
	r   Range
}

// sortKey maps tabstop 0 to the largest possible key so it sorts last.
func sortKey(n int) int {
	if n == 0 {
		return int(^uint(0) >> 1)
	}
	return n
}

func renderElements(elements []Element, b *strings.Builder, offset *int, hits *[]tabstopHit, newlinePrefix string, includePlaceholderText bool) {
	for _, el := range elements {
		switch el.Kind {
		case Text:
			text := el.TextValue
			if strings.Contains(text, "\n") {
				text = strings.ReplaceAll(text, "\n", newlinePrefix)
			}
			*offset += len([]rune(text))
			b.WriteString(text)

		case Variable:
			// Variable substitution (environment/clipboard/selection lookup)
			// happens outside this parser's scope; fall back to the
			// snippet's own default text, recursively rendered, or nothing.
			if el.Default != nil {
				renderElements(el.Default, b, offset, hits, newlinePrefix, includePlaceholderText)
			}

		case Tabstop:
			// Regex transforms are only meaningful once a real capture
			// exists, which this renderer never produces, so Transform is
			// not evaluated here.
			*hits = append(*hits, tabstopHit{num: el.Num, r: Range{Start: *offset, End: *offset}})

		case Placeholder:
			start := *offset
			if includePlaceholderText {
				renderElements(el.Value, b, offset, hits, newlinePrefix, includePlaceholderText)
			}
			*hits = append(*hits, tabstopHit{num: el.Num, r: Range{Start: start, End: *offset}})

		case Choice:
			// No choice is selected at render time; record a zero-width
			// tabstop the way a plain Tabstop would.
			*hits = append(*hits, tabstopHit{num: el.Num, r: Range{Start: *offset, End: *offset}})
		}
	}
}
