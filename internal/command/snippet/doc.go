// Package snippet parses LSP/VSCode-style snippet syntax (tabstops,
// placeholders, choices, variables and their regex transforms) and renders
// a parsed snippet into insertable text plus tabstop ranges.
package snippet
