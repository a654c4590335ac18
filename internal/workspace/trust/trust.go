package trust

// WorkspaceTrust combines a persistent Store with a Config to answer the
// runtime questions the rest of the editor actually asks: is this
// workspace trusted, and which dangerous features may it use.
type WorkspaceTrust struct {
	store  *Store
	config Config
}

// NewWorkspaceTrust builds a WorkspaceTrust over store using config. An
// empty config (zero value) is not valid; callers that haven't loaded one
// from editor config should pass DefaultConfig().
func NewWorkspaceTrust(store *Store, config Config) *WorkspaceTrust {
	return &WorkspaceTrust{store: store, config: config}
}

// Level resolves workspace's Level, applying the configured Default when no
// decision has been recorded.
func (w *WorkspaceTrust) Level(workspace string) Level {
	level := w.store.Get(workspace)
	if level != LevelUnknown {
		return level
	}
	switch w.config.Default {
	case DefaultTrust:
		return LevelTrusted
	case DefaultUntrust:
		return LevelUntrusted
	default:
		return LevelUnknown
	}
}

// IsTrusted reports whether workspace is currently trusted.
func (w *WorkspaceTrust) IsTrusted(workspace string) bool {
	return w.Level(workspace) == LevelTrusted
}

// IsPending reports whether workspace has no recorded decision and the
// configured default is to prompt the user, rather than silently resolving
// to trusted or untrusted.
func (w *WorkspaceTrust) IsPending(workspace string) bool {
	return w.store.Get(workspace) == LevelUnknown && w.config.Default == DefaultPrompt
}

// Trust records workspace as trusted and persists the store.
func (w *WorkspaceTrust) Trust(workspace string) error {
	w.store.Set(workspace, LevelTrusted)
	return w.store.Save()
}

// Untrust records workspace as untrusted and persists the store.
func (w *WorkspaceTrust) Untrust(workspace string) error {
	w.store.Set(workspace, LevelUntrusted)
	return w.store.Save()
}

// Forget clears any recorded decision for workspace and persists the store.
func (w *WorkspaceTrust) Forget(workspace string) error {
	w.store.Clear(workspace)
	return w.store.Save()
}

// profile resolves the effective Profile for workspace: an override always
// takes priority regardless of Level, then the trusted/untrusted profile
// matching the resolved Level.
func (w *WorkspaceTrust) profile(workspace string) Profile {
	return w.config.ResolveProfile(workspace, w.Level(workspace))
}

// LSPAllowed reports whether workspace may start LSP servers.
func (w *WorkspaceTrust) LSPAllowed(workspace string) bool {
	return w.profile(workspace).LSP
}

// DAPAllowed reports whether workspace may start DAP servers.
func (w *WorkspaceTrust) DAPAllowed(workspace string) bool {
	return w.profile(workspace).DAP
}

// ShellAllowed reports whether workspace may run shell commands.
func (w *WorkspaceTrust) ShellAllowed(workspace string) bool {
	return w.profile(workspace).ShellCommands
}

// WorkspaceConfigAllowed reports whether workspace's local config files may
// be loaded.
func (w *WorkspaceTrust) WorkspaceConfigAllowed(workspace string) bool {
	return w.profile(workspace).WorkspaceConfig
}
