package syntax

import (
	"os"
	"path/filepath"
)

// RuntimeEnvVar is the environment variable read once at startup to locate
// compiled grammars and indent/highlight query files outside the binary
// itself, matching the External Interface spec.md §6 names.
const RuntimeEnvVar = "HELIX_RUNTIME"

// RuntimeSearchPath returns the grammar/query search path from HELIX_RUNTIME,
// split on the OS path list separator (":" on Unix, ";" on Windows). An
// unset or empty variable yields a nil slice; callers fall back to
// languages registered programmatically instead of loaded from disk.
func RuntimeSearchPath() []string {
	val, ok := os.LookupEnv(RuntimeEnvVar)
	if !ok || val == "" {
		return nil
	}
	return filepath.SplitList(val)
}

// QueryPath searches RuntimeSearchPath's directories, in order, for
// queries/<lang>/<name>.scm and returns the first one that exists.
func QueryPath(searchPath []string, lang, name string) (string, bool) {
	for _, dir := range searchPath {
		candidate := filepath.Join(dir, "queries", lang, name+".scm")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}
