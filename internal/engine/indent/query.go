package indent

import (
	"sort"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Node is one matcher in a query scope. A zero-value Kind ("") matches any
// node kind (the query's "wildcard" entries); scopes keep wildcard entries
// sorted first so ContainsMatch can check them independently of the
// kind-keyed binary search.
type Node struct {
	Kind string

	// KindNotIn rejects the match if the node's own kind appears here.
	KindNotIn []string
	// ParentKindIn requires the node's parent kind to appear here.
	ParentKindIn []string
	// FieldNameIn requires the node's field name (as seen from its
	// parent) to appear here.
	FieldNameIn []string
}

// Simple builds a Node matcher with no extra predicates.
func Simple(kind string) Node {
	return Node{Kind: kind}
}

// Matches reports whether n matches node, given node's already-equal kind
// (or n.Kind == "" for a wildcard entry).
func (n Node) Matches(node tree_sitter.Node) bool {
	if len(n.KindNotIn) > 0 {
		kind := node.Kind()
		for _, k := range n.KindNotIn {
			if k == kind {
				return false
			}
		}
	}
	if len(n.ParentKindIn) > 0 {
		parent := node.Parent()
		if parent == nil {
			return false
		}
		parentKind := parent.Kind()
		found := false
		for _, k := range n.ParentKindIn {
			if k == parentKind {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(n.FieldNameIn) > 0 {
		parent := node.Parent()
		if parent == nil {
			return false
		}
		fieldName := fieldNameOf(*parent, node)
		if fieldName == "" {
			return false
		}
		found := false
		for _, name := range n.FieldNameIn {
			if name == fieldName {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func fieldNameOf(parent, child tree_sitter.Node) string {
	cursor := parent.Walk()
	defer cursor.Close()
	if !cursor.GotoFirstChild() {
		return ""
	}
	for {
		if cursor.Node().StartByte() == child.StartByte() && cursor.Node().Kind() == child.Kind() {
			return cursor.FieldName()
		}
		if !cursor.GotoNextSibling() {
			return ""
		}
	}
}

// Scope is a sorted list of Node matchers for one named capture ("all" or
// "tail"), kept sorted by Kind with wildcard ("") entries first so
// ContainsMatch can binary search the kind-specific run.
type Scope []Node

// NewScope sorts nodes into query order and returns the Scope.
func NewScope(nodes []Node) Scope {
	s := make(Scope, len(nodes))
	copy(s, nodes)
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Kind < s[j].Kind
	})
	return s
}

// ContainsMatch reports whether any entry in the scope matches node: either
// a kind-specific entry whose Kind equals node's own kind, or any wildcard
// entry.
func (s Scope) ContainsMatch(node tree_sitter.Node) bool {
	kind := node.Kind()
	first := sort.Search(len(s), func(i int) bool { return s[i].Kind >= kind })
	for i := first; i < len(s) && s[i].Kind == kind; i++ {
		if s[i].Matches(node) {
			return true
		}
	}
	for i := 0; i < len(s) && s[i].Kind == ""; i++ {
		if s[i].Matches(node) {
			return true
		}
	}
	return false
}

// Scopes pairs the "all" and "tail" scopes for one of indent/outdent.
type Scopes struct {
	All  Scope
	Tail Scope
}

// ContainsMatch reports (matchForLine, matchForNextLine) for node.
func (s Scopes) ContainsMatch(node tree_sitter.Node) (line, next bool) {
	return s.All.ContainsMatch(node), s.Tail.ContainsMatch(node)
}

// Query is a compiled indent query for one language: which node scopes add
// an indent, and which add an outdent.
type Query struct {
	Indent  Scopes
	Outdent Scopes
}
