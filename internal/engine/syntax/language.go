package syntax

import (
	"fmt"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/velum-editor/velum/internal/engine/indent"
)

// Language pairs a compiled tree-sitter grammar with the indent query used
// to walk its trees. IndentQuery is nil for languages that only need
// highlighting/folding support and never drive the indent engine.
type Language struct {
	Name        string
	Grammar     *tree_sitter.Language
	IndentQuery *indent.Query
}

// Registry holds the set of languages known to this process, keyed by
// name. Callers add grammars with Register; cmd/velum does not create a
// Registry.
type Registry struct {
	mu   sync.RWMutex
	byID map[string]*Language
}

// NewRegistry returns an empty language registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Language)}
}

// Register adds or replaces a language.
func (r *Registry) Register(lang *Language) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[lang.Name] = lang
}

// Lookup returns the language registered under name.
func (r *Registry) Lookup(name string) (*Language, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lang, ok := r.byID[name]
	if !ok {
		return nil, fmt.Errorf("syntax: language %q not registered", name)
	}
	return lang, nil
}

// Names returns every registered language name.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byID))
	for name := range r.byID {
		names = append(names, name)
	}
	return names
}
