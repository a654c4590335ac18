// Package main is the entry point for the velum editor core: it loads a
// file into a buffer, opens the workspace trust store and watcher, and
// reports what it found. It does not render anything; velum's engines are
// a library for a terminal UI to drive, not a UI themselves.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/velum-editor/velum/internal/config"
	"github.com/velum-editor/velum/internal/engine/buffer"
	"github.com/velum-editor/velum/internal/engine/syntax"
	"github.com/velum-editor/velum/internal/logging"
	"github.com/velum-editor/velum/internal/project/watcher"
	"github.com/velum-editor/velum/internal/workspace/trust"
)

var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	configPath    string
	workspacePath string
	watchVCS      bool
	files         []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	// HELIX_RUNTIME is read once here, at startup, per spec.md §6's External
	// Interfaces. This entry point only reports whether it is set; it loads
	// no grammars or queries from it.
	runtimeSearchPath := syntax.RuntimeSearchPath()
	if len(runtimeSearchPath) == 0 {
		logging.Infof("%s not set; using only programmatically registered languages", syntax.RuntimeEnvVar)
	}

	cfg := config.New(config.WithProjectConfigDir(opts.configPath))
	if err := cfg.Load(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		return 1
	}
	defer cfg.Close()

	store := trust.NewStore(trust.TrustFile(opts.configPath))
	if err := store.Load(); err != nil {
		logging.Errorf("loading trust store: %v", err)
	}
	workspaceTrust := trust.NewWorkspaceTrust(store, trust.DefaultConfig())

	if workspaceTrust.IsPending(opts.workspacePath) {
		fmt.Fprintf(os.Stderr, "workspace %s is not yet trusted; LSP, DAP and shell commands are disabled until it is\n", opts.workspacePath)
	}

	pw := watcher.NewProjectWatcher(opts.workspacePath, false, opts.watchVCS, func(change watcher.FileSystemDidChange) {
		for _, ev := range change.Events {
			logging.Infof("%s %s", ev.Kind, ev.Path)
		}
	})
	defer pw.Close()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		select {
		case <-signals:
			close(done)
		case <-done:
		}
	}()

	for _, path := range opts.files {
		if err := openFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
			return 1
		}
	}

	if pw.HasExtraWatchedPaths() {
		go pollExtraPaths(pw, done)
	}

	return 0
}

func pollExtraPaths(pw *watcher.ProjectWatcher, done <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			pw.PollExtra()
		case <-done:
			return
		}
	}
}

func openFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	text := string(data)
	buf := buffer.NewBufferFromString(text, buffer.WithTabWidth(4), buffer.WithDetectedLineEnding(text))

	fmt.Printf("%s: %d lines, %d bytes, line ending %s\n", path, buf.LineCount(), buf.Len(), buf.LineEnding())
	return nil
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", defaultConfigDir(), "Path to configuration directory")
	flag.StringVar(&opts.configPath, "c", defaultConfigDir(), "Path to configuration directory (shorthand)")
	flag.StringVar(&opts.workspacePath, "workspace", "", "Workspace/project directory")
	flag.StringVar(&opts.workspacePath, "w", "", "Workspace/project directory (shorthand)")
	flag.BoolVar(&opts.watchVCS, "watch-vcs", false, "Show the .git directory and .git/HEAD to the watcher (other .git contents stay ignored)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "velum - the velum editor core\n\n")
		fmt.Fprintf(os.Stderr, "Usage: velum [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("velum %s (%s)\n", version, commit)
		os.Exit(0)
	}

	opts.files = flag.Args()

	if opts.workspacePath == "" {
		if len(opts.files) > 0 {
			if abs, err := filepath.Abs(opts.files[0]); err == nil {
				opts.workspacePath = filepath.Dir(abs)
			}
		} else if cwd, err := os.Getwd(); err == nil {
			opts.workspacePath = cwd
		}
	}

	return opts
}

func defaultConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "velum")
	}
	return ".velum"
}
