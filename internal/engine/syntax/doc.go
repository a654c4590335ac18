// Package syntax maintains an incremental, per-document tree-sitter parse
// tree. A Language pairs a compiled grammar with its indent query; a Tree
// owns the parsed tree_sitter.Tree for one document version; a Cache keyed
// by document identity and version lets repeated lookups for the same
// version (e.g. several indent queries against an unedited buffer) clone a
// cached tree instead of reparsing.
package syntax
