package snippet

import "strings"

// Parse parses the full snippet grammar out of s. It never fails to make
// progress on malformed input: unknown escapes, unterminated `${...` and a
// lone `$` all fall back to literal text (see anything). Parse returns an
// error when the top-level production matches nothing, which with the
// fallbacks above happens only for empty input, or when input is left
// unconsumed; ParseError.Remainder holds the unconsumed suffix ("" for
// empty input).
func Parse(s string) ([]Element, error) {
	elements, rest, ok := snippet(s)
	if !ok || rest != "" {
		return nil, &ParseError{Remainder: rest}
	}
	return elements, nil
}

// Every parse function below follows the same shape: given the remaining
// input, it returns (value, rest, ok). On ok == false the input is
// returned unconsumed so callers can backtrack to the next alternative,
// mirroring the combinator parser this is ported from.

func snippet(s string) ([]Element, string, bool) {
	var out []Element
	for {
		el, rest, ok := anything(s, textEscapeChars, false)
		// text() never fails, even on empty input, so a zero-consumption
		// success must stop the loop rather than spin forever.
		if !ok || rest == s {
			break
		}
		out = append(out, el)
		s = rest
	}
	if len(out) == 0 {
		return nil, s, false
	}
	return out, s, true
}

// anything is `any` in the grammar: tabstop | placeholder | choice |
// variable | a lone '$' | text. endAtBrace controls whether '}' also
// terminates a run of plain text (true inside a placeholder/variable
// default, false at the top level).
func anything(s string, escapeChars string, endAtBrace bool) (Element, string, bool) {
	if el, rest, ok := tabstop(s); ok {
		return el, rest, true
	}
	if el, rest, ok := placeholder(s); ok {
		return el, rest, true
	}
	if el, rest, ok := choice(s); ok {
		return el, rest, true
	}
	if el, rest, ok := variable(s); ok {
		return el, rest, true
	}
	if rest, ok := literal(s, "$"); ok {
		return Element{Kind: Text, TextValue: "$"}, rest, true
	}
	termChars := "$"
	if endAtBrace {
		termChars = "$}"
	}
	txt, rest := text(s, escapeChars, termChars)
	return Element{Kind: Text, TextValue: txt}, rest, true
}

const textEscapeChars = "\\}$"
const choiceTextEscapeChars = "\\|,"

// text consumes characters until an unescaped rune in termChars is found
// (or input ends), unescaping any run's worth of `\c` where c is in
// escapeChars. A backslash not followed by an escapable char is kept
// literally and reprocessed as plain text on the next rune.
func text(s, escapeChars, termChars string) (string, string) {
	var b strings.Builder
	runes := []rune(s)
	i := 0
	for i < len(runes) {
		c := runes[i]
		if c == '\\' {
			if i+1 < len(runes) && strings.ContainsRune(escapeChars, runes[i+1]) {
				b.WriteRune(runes[i+1])
				i += 2
				continue
			}
			b.WriteRune('\\')
			i++
			continue
		}
		if strings.ContainsRune(termChars, c) {
			return b.String(), string(runes[i:])
		}
		b.WriteRune(c)
		i++
	}
	return b.String(), ""
}

// literal consumes the exact prefix lit from s.
func literal(s, lit string) (string, bool) {
	if strings.HasPrefix(s, lit) {
		return s[len(lit):], true
	}
	return s, false
}

// digit is `int`: one or more ascii digits.
func digit(s string) (int, string, bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, s, false
	}
	n := 0
	for _, c := range s[:i] {
		n = n*10 + int(c-'0')
	}
	return n, s[i:], true
}

// varName is `var`: [_a-zA-Z][_a-zA-Z0-9]*.
func varName(s string) (string, string, bool) {
	runes := []rune(s)
	if len(runes) == 0 {
		return "", s, false
	}
	isAlpha := func(c rune) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
	isAlnum := func(c rune) bool { return isAlpha(c) || (c >= '0' && c <= '9') }
	if !(runes[0] == '_' || isAlpha(runes[0])) {
		return "", s, false
	}
	i := 1
	for i < len(runes) && (runes[i] == '_' || isAlnum(runes[i])) {
		i++
	}
	return string(runes[:i]), string(runes[i:]), true
}

func caseChange(s string) (CaseChange, string, bool) {
	switch {
	case strings.HasPrefix(s, "upcase"):
		return Upcase, s[len("upcase"):], true
	case strings.HasPrefix(s, "downcase"):
		return Downcase, s[len("downcase"):], true
	case strings.HasPrefix(s, "capitalize"):
		return Capitalize, s[len("capitalize"):], true
	case strings.HasPrefix(s, "pascalcase"):
		return PascalCase, s[len("pascalcase"):], true
	case strings.HasPrefix(s, "camelcase"):
		return CamelCase, s[len("camelcase"):], true
	default:
		return 0, s, false
	}
}

// format is one replacement-template item inside a regex transform.
func format(s string) (FormatItem, string, bool) {
	// '$' int
	if rest, ok := literal(s, "$"); ok {
		if n, rest2, ok := digit(rest); ok {
			return FormatItem{Kind: FormatCapture, Index: n}, rest2, true
		}
	}
	if rest, ok := literal(s, "${"); ok {
		if n, rest2, ok := digit(rest); ok {
			// '${' int ':/' case '}'
			if rest3, ok := literal(rest2, ":/"); ok {
				if cc, rest4, ok := caseChange(rest3); ok {
					if rest5, ok := literal(rest4, "}"); ok {
						return FormatItem{Kind: FormatCaseChange, Index: n, Change: cc}, rest5, true
					}
				}
			}
			// '${' int ':+' if '}'
			if rest3, ok := literal(rest2, ":+"); ok {
				ifText, rest4 := text(rest3, textEscapeChars, "}")
				if rest5, ok := literal(rest4, "}"); ok {
					return FormatItem{Kind: FormatConditional, Index: n, If: ifText}, rest5, true
				}
			}
			// '${' int ':?' if ':' else '}'
			if rest3, ok := literal(rest2, ":?"); ok {
				ifText, rest4 := text(rest3, textEscapeChars, ":")
				if rest5, ok := literal(rest4, ":"); ok {
					elseText, rest6 := text(rest5, textEscapeChars, "}")
					if rest7, ok := literal(rest6, "}"); ok {
						return FormatItem{Kind: FormatConditional, Index: n, If: ifText, Else: elseText}, rest7, true
					}
				}
			}
			// '${' int ':-' else '}' | '${' int ':' else '}'
			if rest3, ok := literal(rest2, ":"); ok {
				rest3 = strings.TrimPrefix(rest3, "-")
				elseText, rest4 := text(rest3, textEscapeChars, "}")
				if rest5, ok := literal(rest4, "}"); ok {
					return FormatItem{Kind: FormatConditional, Index: n, Else: elseText}, rest5, true
				}
			}
			// '${' int '}'
			if rest3, ok := literal(rest2, "}"); ok {
				return FormatItem{Kind: FormatCapture, Index: n}, rest3, true
			}
		}
	}
	return FormatItem{}, s, false
}

// regex is the `/regex/replacement/options` transform suffix. The leading
// '/' is consumed by this function.
func regex(s string) (Transform, string, bool) {
	rest, ok := literal(s, "/")
	if !ok {
		return Transform{}, s, false
	}
	value, rest := text(rest, "/", "/")
	rest, ok = literal(rest, "/")
	if !ok {
		return Transform{}, s, false
	}

	var replacement []FormatItem
	for {
		if item, r2, ok := format(rest); ok {
			replacement = append(replacement, item)
			rest = r2
			continue
		}
		if r2, ok := literal(rest, "$"); ok {
			replacement = append(replacement, FormatItem{Kind: FormatText, Text: "$"})
			rest = r2
			continue
		}
		txt, r2 := text(rest, "\\/", "/$")
		if r2 == rest {
			break
		}
		replacement = append(replacement, FormatItem{Kind: FormatText, Text: txt})
		rest = r2
	}

	rest, ok = literal(rest, "/")
	if !ok {
		return Transform{}, s, false
	}
	options, rest := text(rest, "", "}")
	return Transform{Regex: value, Replacement: replacement, Options: options}, rest, true
}

// tabstop is `'$' int | '${' int [regex] '}'`.
func tabstop(s string) (Element, string, bool) {
	if rest, ok := literal(s, "$"); ok {
		if n, rest2, ok := digit(rest); ok {
			return Element{Kind: Tabstop, Num: n}, rest2, true
		}
	}
	rest, ok := literal(s, "${")
	if !ok {
		return Element{}, s, false
	}
	n, rest, ok := digit(rest)
	if !ok {
		return Element{}, s, false
	}
	var transform *Transform
	if tr, r2, ok := regex(rest); ok {
		tr := tr
		transform = &tr
		rest = r2
	}
	rest, ok = literal(rest, "}")
	if !ok {
		return Element{}, s, false
	}
	return Element{Kind: Tabstop, Num: n, Transform: transform}, rest, true
}

// placeholder is `'${' int ':' any* '}'`.
func placeholder(s string) (Element, string, bool) {
	rest, ok := literal(s, "${")
	if !ok {
		return Element{}, s, false
	}
	n, rest, ok := digit(rest)
	if !ok {
		return Element{}, s, false
	}
	rest, ok = literal(rest, ":")
	if !ok {
		return Element{}, s, false
	}
	var value []Element
	for {
		el, r2, ok := anything(rest, textEscapeChars, true)
		if !ok || r2 == rest {
			break
		}
		value = append(value, el)
		rest = r2
	}
	rest, ok = literal(rest, "}")
	if !ok {
		return Element{}, s, false
	}
	return Element{Kind: Placeholder, Num: n, Value: value}, rest, true
}

// choice is `'${' int '|' text (',' text)* '|}'`.
func choice(s string) (Element, string, bool) {
	rest, ok := literal(s, "${")
	if !ok {
		return Element{}, s, false
	}
	n, rest, ok := digit(rest)
	if !ok {
		return Element{}, s, false
	}
	rest, ok = literal(rest, "|")
	if !ok {
		return Element{}, s, false
	}
	var choices []string
	first, rest := text(rest, choiceTextEscapeChars, "|,")
	choices = append(choices, first)
	for {
		r2, ok := literal(rest, ",")
		if !ok {
			break
		}
		item, r3 := text(r2, choiceTextEscapeChars, "|,")
		choices = append(choices, item)
		rest = r3
	}
	rest, ok = literal(rest, "|}")
	if !ok {
		return Element{}, s, false
	}
	return Element{Kind: Choice, Num: n, Choices: choices}, rest, true
}

// variable is `'$' var | '${' var '}' | '${' var ':' any* '}' | '${' var regex '}'`.
func variable(s string) (Element, string, bool) {
	if rest, ok := literal(s, "$"); ok {
		if name, rest2, ok := varName(rest); ok {
			return Element{Kind: Variable, Name: name}, rest2, true
		}
	}
	rest, ok := literal(s, "${")
	if !ok {
		return Element{}, s, false
	}
	name, rest, ok := varName(rest)
	if !ok {
		return Element{}, s, false
	}
	if rest2, ok := literal(rest, "}"); ok {
		return Element{Kind: Variable, Name: name}, rest2, true
	}
	if rest2, ok := literal(rest, ":"); ok {
		var def []Element
		for {
			el, r3, ok := anything(rest2, textEscapeChars, true)
			if !ok || r3 == rest2 {
				break
			}
			def = append(def, el)
			rest2 = r3
		}
		if rest3, ok := literal(rest2, "}"); ok {
			return Element{Kind: Variable, Name: name, Default: def}, rest3, true
		}
		return Element{}, s, false
	}
	if tr, rest2, ok := regex(rest); ok {
		if rest3, ok := literal(rest2, "}"); ok {
			tr := tr
			return Element{Kind: Variable, Name: name, Transform: &tr}, rest3, true
		}
	}
	return Element{}, s, false
}
