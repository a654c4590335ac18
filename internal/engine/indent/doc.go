// Package indent computes the indentation for an existing or hypothetical
// new line from a compiled, language-specific Query walked against a
// tree-sitter syntax tree, plus a standalone histogram-based auto-detector
// that needs no syntax tree at all.
//
// The tree walk (ForPos) and the query-matching rules (Query, Scopes)
// mirror Helix's indent.rs: every ancestor of the node under the query
// position contributes an indent/outdent to either its own line or the
// line below, contributions on the same line saturate instead of stacking,
// and the final level is rendered in the document's Style.
package indent
