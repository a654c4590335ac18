// Package trust implements the workspace trust store described in spec
// §4.7: a persistent key/value store from canonical workspace path to trust
// level, plus profile resolution (trusted/untrusted/per-workspace override)
// for the dangerous features a workspace may or may not be allowed to use
// (LSP servers, DAP, shell commands, workspace-local config).
package trust
