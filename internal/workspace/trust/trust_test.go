package trust

import (
	"path/filepath"
	"testing"
)

func TestWorkspaceTrustDefaultPromptIsPending(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "trust.toml"))
	wt := NewWorkspaceTrust(store, DefaultConfig())
	dir := t.TempDir()

	if !wt.IsPending(dir) {
		t.Fatal("IsPending() = false for an unrecorded workspace under DefaultPrompt")
	}
	if wt.IsTrusted(dir) {
		t.Fatal("IsTrusted() = true for an unrecorded workspace")
	}
}

func TestWorkspaceTrustDefaultTrustAutoTrusts(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "trust.toml"))
	config := DefaultConfig()
	config.Default = DefaultTrust
	wt := NewWorkspaceTrust(store, config)
	dir := t.TempDir()

	if !wt.IsTrusted(dir) {
		t.Fatal("IsTrusted() = false under DefaultTrust for an unrecorded workspace")
	}
	if wt.IsPending(dir) {
		t.Fatal("IsPending() = true under DefaultTrust, want false")
	}
}

func TestWorkspaceTrustRecordedDecisionOverridesDefault(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "trust.toml"))
	config := DefaultConfig()
	config.Default = DefaultTrust
	wt := NewWorkspaceTrust(store, config)
	dir := t.TempDir()

	store.Set(dir, LevelUntrusted)
	if wt.IsTrusted(dir) {
		t.Fatal("IsTrusted() = true for a workspace explicitly recorded as untrusted")
	}
}

func TestWorkspaceTrustAllAllowedMethods(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "trust.toml"))
	wt := NewWorkspaceTrust(store, DefaultConfig())
	dir := t.TempDir()

	store.Set(dir, LevelTrusted)
	if !wt.LSPAllowed(dir) || !wt.DAPAllowed(dir) || !wt.ShellAllowed(dir) || !wt.WorkspaceConfigAllowed(dir) {
		t.Fatal("trusted workspace should allow lsp, dap, shell commands and workspace config")
	}

	store.Set(dir, LevelUntrusted)
	if wt.LSPAllowed(dir) || wt.DAPAllowed(dir) || wt.ShellAllowed(dir) || wt.WorkspaceConfigAllowed(dir) {
		t.Fatal("untrusted workspace should deny lsp, dap, shell commands and workspace config")
	}
}

func TestWorkspaceTrustOverrideAppliesRegardlessOfLevel(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "trust.toml"))
	config := DefaultConfig()
	dir := t.TempDir()
	shellOn := true
	config.Workspaces = []Override{{Path: dir, ShellCommands: &shellOn}}
	wt := NewWorkspaceTrust(store, config)

	store.Set(dir, LevelUntrusted)
	if !wt.ShellAllowed(dir) {
		t.Fatal("override should allow shell commands even though the workspace is untrusted")
	}
	if wt.LSPAllowed(dir) {
		t.Fatal("override did not set lsp; it should fall through to the untrusted profile (false)")
	}
}

func TestWorkspaceTrustForgetClearsDecision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trust.toml")
	store := NewStore(path)
	wt := NewWorkspaceTrust(store, DefaultConfig())
	dir := t.TempDir()

	if err := wt.Trust(dir); err != nil {
		t.Fatalf("Trust(): %v", err)
	}
	if !wt.IsTrusted(dir) {
		t.Fatal("IsTrusted() = false right after Trust()")
	}

	if err := wt.Forget(dir); err != nil {
		t.Fatalf("Forget(): %v", err)
	}
	if wt.IsTrusted(dir) {
		t.Fatal("IsTrusted() = true after Forget()")
	}
}

func TestWorkspaceTrustNestedWorkspaceResolution(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "trust.toml"))
	wt := NewWorkspaceTrust(store, DefaultConfig())
	root := t.TempDir()
	nested := filepath.Join(root, "nested", "child")

	store.Set(root, LevelUntrusted)
	if wt.IsTrusted(nested) {
		t.Fatal("nested workspace should inherit untrusted from its ancestor root")
	}

	store.Set(filepath.Join(root, "nested"), LevelTrusted)
	if !wt.IsTrusted(nested) {
		t.Fatal("nested workspace should inherit trusted from the nearer ancestor override")
	}
}
