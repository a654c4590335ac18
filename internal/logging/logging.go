// Package logging provides the minimal leveled logging the spec's failure
// semantics require (§4.6.4, §4.7), in the teacher's plain-function style:
// no structured logging library, just formatted writes to an injectable
// io.Writer defaulting to os.Stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu  sync.Mutex
	out io.Writer = os.Stderr
)

// SetOutput redirects all subsequent log output to w. Passing nil restores
// the default (os.Stderr). Intended for tests that want to capture output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	out = w
}

func write(level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, "%s %s %s\n", time.Now().Format(time.RFC3339), level, fmt.Sprintf(format, args...))
}

// Infof logs an informational message, for expected, non-actionable events
// such as "file-watcher not available".
func Infof(format string, args ...any) { write("INFO", format, args...) }

// Warnf logs a warning: something unexpected that the caller recovered
// from without losing correctness.
func Warnf(format string, args ...any) { write("WARN", format, args...) }

// Errorf logs an error: an operation failed and the caller's subsequent
// state is degraded (e.g. a root that failed to start watching).
func Errorf(format string, args ...any) { write("ERROR", format, args...) }
