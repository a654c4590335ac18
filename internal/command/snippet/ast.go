package snippet

import "fmt"

// CaseChange names a `/upcase`, `/downcase`, `/capitalize`, `/pascalcase` or
// `/camelcase` format directive inside a variable's regex transform.
type CaseChange uint8

const (
	Upcase CaseChange = iota
	Downcase
	Capitalize
	PascalCase
	CamelCase
)

// FormatKind discriminates the cases of a regex transform's replacement
// text: literal text, a bare capture group reference, a capture group with
// a case change applied, or a conditional (if/else) on whether a capture
// group matched.
type FormatKind uint8

const (
	FormatText FormatKind = iota
	FormatCapture
	FormatCaseChange
	FormatConditional
)

// FormatItem is one element of a Transform's replacement template.
type FormatItem struct {
	Kind FormatKind

	Text string // FormatText

	Index  int        // FormatCapture, FormatCaseChange, FormatConditional
	Change CaseChange // FormatCaseChange

	If, Else string // FormatConditional
}

// Transform is the `/regex/replacement/options` suffix attached to a
// tabstop or variable.
type Transform struct {
	Regex       string
	Replacement []FormatItem
	Options     string
}

// Kind discriminates the cases of Element.
type Kind uint8

const (
	Text Kind = iota
	Tabstop
	Placeholder
	Choice
	Variable
)

// Element is one node of a parsed snippet's AST. Which fields are
// meaningful depends on Kind:
//
//	Text        -> TextValue
//	Tabstop     -> Num, Transform (may be nil)
//	Placeholder -> Num, Value
//	Choice      -> Num, Choices
//	Variable    -> Name, Default (may be nil), Transform (may be nil)
type Element struct {
	Kind Kind

	TextValue string

	Num       int
	Transform *Transform

	Value []Element // Placeholder

	Choices []string // Choice

	Name    string    // Variable
	Default []Element // Variable, may be nil
}

func (e Element) String() string {
	switch e.Kind {
	case Text:
		return fmt.Sprintf("Text(%q)", e.TextValue)
	case Tabstop:
		return fmt.Sprintf("Tabstop(%d)", e.Num)
	case Placeholder:
		return fmt.Sprintf("Placeholder(%d, %v)", e.Num, e.Value)
	case Choice:
		return fmt.Sprintf("Choice(%d, %v)", e.Num, e.Choices)
	case Variable:
		return fmt.Sprintf("Variable(%s)", e.Name)
	default:
		return "Element(?)"
	}
}

// ParseError is returned by Parse when input is left over after the
// grammar's top-level `one_or_more(any)` production stops matching.
type ParseError struct {
	Remainder string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("snippet: parse error, remainder %q", e.Remainder)
}
