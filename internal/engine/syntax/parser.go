package syntax

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/velum-editor/velum/internal/engine/rope"
	"github.com/velum-editor/velum/internal/engine/transaction"
)

// Tree owns one parsed tree_sitter.Tree for one document version. The
// document's text is kept alongside it since tree-sitter nodes only carry
// byte ranges, not content; callers read node text back out of Text.
type Tree struct {
	Language *Language
	Version  uint64
	Text     rope.Rope
	inner    *tree_sitter.Tree
}

// Root returns the tree's root node.
func (t *Tree) Root() tree_sitter.Node {
	return t.inner.RootNode()
}

// Close releases the underlying tree-sitter tree. Safe to call once per
// Tree obtained from Parse/Reparse; clones handed out by Cache.Get own
// their own tree and must be closed independently.
func (t *Tree) Close() {
	if t == nil || t.inner == nil {
		return
	}
	t.inner.Close()
	t.inner = nil
}

// Clone returns a Tree sharing no mutable state with t; both must be
// Closed independently.
func (t *Tree) Clone() *Tree {
	clone := &Tree{Language: t.Language, Version: t.Version, Text: t.Text}
	if t.inner != nil {
		clone.inner = t.inner.Clone()
	}
	return clone
}

// Parser parses source text into Trees for a registered Language. One
// Parser is not safe for concurrent use; callers pool them per goroutine or
// guard with a mutex, matching the teacher's single-writer buffer model.
type Parser struct {
	inner *tree_sitter.Parser
}

// NewParser creates a fresh, language-less tree-sitter parser.
func NewParser() *Parser {
	return &Parser{inner: tree_sitter.NewParser()}
}

// Close releases the parser's native resources.
func (p *Parser) Close() {
	if p == nil || p.inner == nil {
		return
	}
	p.inner.Close()
	p.inner = nil
}

// Parse parses text from scratch under lang, with no incremental reuse.
func (p *Parser) Parse(lang *Language, version uint64, text rope.Rope) (*Tree, error) {
	if err := p.inner.SetLanguage(lang.Grammar); err != nil {
		return nil, fmt.Errorf("syntax: set language %q: %w", lang.Name, err)
	}
	content := []byte(text.String())
	tree := p.inner.Parse(content, nil)
	if tree == nil {
		return nil, fmt.Errorf("syntax: parse failed for language %q", lang.Name)
	}
	return &Tree{Language: lang, Version: version, Text: text, inner: tree}, nil
}

// Reparse incrementally reparses newText, reusing prev's tree. It derives
// the edits from cs (EditsFromChangeSet) and applies them to prev's tree
// itself, so callers do not call ApplyEdits first; prev is consumed (its
// native tree is handed to tree-sitter) and must not be used or Closed
// afterward.
func (p *Parser) Reparse(prev *Tree, cs transaction.ChangeSet, version uint64, newText rope.Rope) (*Tree, error) {
	if prev == nil {
		return nil, fmt.Errorf("syntax: Reparse called with no previous tree")
	}
	if prev.inner == nil {
		return p.Parse(prev.Language, version, newText)
	}
	edits := EditsFromChangeSet(prev.Text, cs)
	ApplyEdits(prev.inner, edits)

	if err := p.inner.SetLanguage(prev.Language.Grammar); err != nil {
		return nil, fmt.Errorf("syntax: set language %q: %w", prev.Language.Name, err)
	}
	content := []byte(newText.String())
	tree := p.inner.Parse(content, prev.inner)
	if tree == nil {
		return nil, fmt.Errorf("syntax: reparse failed for language %q", prev.Language.Name)
	}
	prev.inner.Close()
	return &Tree{Language: prev.Language, Version: version, Text: newText, inner: tree}, nil
}
