package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestInfofWritesLevelAndMessage(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Infof("file-watcher not available: %v", "no inotify")

	got := buf.String()
	if !strings.Contains(got, "INFO") {
		t.Errorf("output %q missing INFO level", got)
	}
	if !strings.Contains(got, "file-watcher not available: no inotify") {
		t.Errorf("output %q missing formatted message", got)
	}
}

func TestErrorfWritesLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Errorf("failed to watch %s", "/tmp/x")

	if got := buf.String(); !strings.Contains(got, "ERROR") {
		t.Errorf("output %q missing ERROR level", got)
	}
}

func TestWarnfWritesLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Warnf("retrying %s", "op")

	if got := buf.String(); !strings.Contains(got, "WARN") {
		t.Errorf("output %q missing WARN level", got)
	}
}

func TestSetOutputNilRestoresStderr(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetOutput(nil)

	Infof("goes to stderr now, not buf")

	if buf.Len() != 0 {
		t.Errorf("buf should be untouched after SetOutput(nil), got %q", buf.String())
	}
}
