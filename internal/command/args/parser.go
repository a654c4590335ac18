package args

// Parser is an iterator over an input string yielding one argument per
// Next call. It splits on whitespace but respects quoted substrings
// (double quote, single quote, backtick), with per-mode escaping rules.
type Parser struct {
	input    string
	idx      int
	start    int
	mode     ParseMode
	finished bool
}

// NewParser creates a Parser over input in Raw mode.
func NewParser(input string) *Parser {
	return &Parser{input: input}
}

// WithMode returns p with mode set, for chaining after NewParser.
func (p *Parser) WithMode(mode ParseMode) *Parser {
	p.mode = mode
	return p
}

// SetMode changes the parse mode mid-stream.
func (p *Parser) SetMode(mode ParseMode) {
	p.mode = mode
}

// IsEmpty reports whether the input string is empty.
func (p *Parser) IsEmpty() bool {
	return p.input == ""
}

// Raw returns the input exactly as given.
func (p *Parser) Raw() string {
	return p.input
}

// Rest returns the unconsumed remainder of the input exactly as given.
func (p *Parser) Rest() string {
	return p.input[p.idx:]
}

// Next returns the next argument, or ok=false once input is exhausted.
func (p *Parser) Next() (string, bool) {
	if p.input == "" {
		return "", false
	}

	switch p.mode {
	case Raw:
		if p.finished {
			return "", false
		}
		p.start, p.idx, p.finished = len(p.input), len(p.input), true
		return p.input, true
	case Literal:
		if p.finished {
			return "", false
		}
		p.start, p.idx, p.finished = len(p.input), len(p.input), true
		return unescape(p.input, true, false), true
	case LiteralUnescapeBackslash:
		if p.finished {
			return "", false
		}
		p.start, p.idx, p.finished = len(p.input), len(p.input), true
		return unescape(p.input, true, true), true
	case UnescapeBackslash:
		if p.finished {
			return "", false
		}
		p.start, p.idx, p.finished = len(p.input), len(p.input), true
		return unescape(p.input, false, true), true
	}

	bytes := p.input
	inQuotes := false
	var quote byte
	isEscaped := false

	finishParams := func(arg string) string {
		switch p.mode {
		case RawParams:
			return arg
		case LiteralParams:
			return unescape(arg, true, false)
		case LiteralUnescapeBackslashParams:
			return unescape(arg, true, true)
		case UnescapeBackslashParams:
			return unescape(arg, false, true)
		}
		return arg
	}

	for p.idx < len(bytes) {
		c := bytes[p.idx]
		switch {
		case (c == '"' || c == '\'' || c == '`') && !isEscaped:
			if inQuotes {
				if c == quote {
					if p.mode == RawParams {
						// Include the opening and closing quote in the
						// returned value. start was advanced to just past
						// the opening quote when it was consumed below, so
						// start-1 recovers its position; start is always
						// >= 1 here because entering a quote always moves
						// idx (and therefore start) forward by at least one
						// byte first.
						arg := p.input[p.start-1 : p.idx+1]
						p.idx++
						p.start = p.idx
						return arg, true
					}
					arg := p.input[p.start:p.idx]
					p.idx++
					p.start = p.idx
					return finishParams(arg), true
				}
				// Mismatched quote style: not a closer, just a character.
				p.idx++
				continue
			}
			if p.idx == len(bytes)-1 {
				// A bare quote as the last character of the input: return
				// it as its own one-character argument.
				arg := p.input[p.idx:]
				p.idx = len(bytes)
				p.start = len(bytes)
				if p.mode == RawParams {
					return arg, true
				}
				return finishParams(arg), true
			}
			inQuotes = true
			quote = c
			if p.start < p.idx {
				arg := p.input[p.start:p.idx]
				p.idx++
				p.start = p.idx
				if p.mode == RawParams {
					return arg, true
				}
				return finishParams(arg), true
			}
			p.idx++
			p.start = p.idx
		case (c == ' ' || c == '\t') && !inQuotes && !isEscaped:
			if p.start < p.idx {
				arg := p.input[p.start:p.idx]
				p.idx++
				p.start = p.idx
				if p.mode == RawParams {
					return arg, true
				}
				return finishParams(arg), true
			}
			p.idx++
			p.start = p.idx
		default:
			if !isEscaped && c == '\\' {
				isEscaped = true
			} else {
				isEscaped = false
			}
			p.idx++
		}
	}

	if p.start < len(bytes) {
		var arg string
		if p.mode == RawParams {
			start := p.start
			if inQuotes {
				start--
			}
			arg = p.input[start:]
		} else {
			arg = finishParams(p.input[p.start:])
		}
		p.start = len(bytes)
		return arg, true
	}

	return "", false
}

// Collect drains the parser into a slice.
func (p *Parser) Collect() []string {
	var out []string
	for {
		v, ok := p.Next()
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}
