package trust

import (
	"fmt"
	"strings"

	"github.com/tidwall/match"
)

// Level is the trust status recorded for a workspace.
type Level int

const (
	// LevelUnknown means no decision has been recorded; the caller should
	// prompt the user.
	LevelUnknown Level = iota
	// LevelTrusted uses the trusted profile.
	LevelTrusted
	// LevelUntrusted uses the untrusted profile.
	LevelUntrusted
)

func (l Level) String() string {
	switch l {
	case LevelTrusted:
		return "trusted"
	case LevelUntrusted:
		return "untrusted"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so Level round-trips
// through TOML as a plain lowercase string.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	switch string(text) {
	case "trusted":
		*l = LevelTrusted
	case "untrusted":
		*l = LevelUntrusted
	case "unknown", "":
		*l = LevelUnknown
	default:
		return fmt.Errorf("trust: unknown level %q", text)
	}
	return nil
}

// Default is the behavior applied to a workspace with no recorded Level.
type Default int

const (
	// DefaultPrompt asks the user to decide (the Rust original's default).
	DefaultPrompt Default = iota
	// DefaultTrust automatically trusts every workspace.
	DefaultTrust
	// DefaultUntrust automatically untrusts every workspace.
	DefaultUntrust
)

func (d Default) String() string {
	switch d {
	case DefaultTrust:
		return "trust"
	case DefaultUntrust:
		return "untrust"
	default:
		return "prompt"
	}
}

func (d Default) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Default) UnmarshalText(text []byte) error {
	switch string(text) {
	case "trust":
		*d = DefaultTrust
	case "untrust":
		*d = DefaultUntrust
	case "prompt", "":
		*d = DefaultPrompt
	default:
		return fmt.Errorf("trust: unknown default %q", text)
	}
	return nil
}

// Profile defines which potentially dangerous features are allowed for a
// workspace.
type Profile struct {
	LSP             bool `toml:"lsp"`
	DAP             bool `toml:"dap"`
	ShellCommands   bool `toml:"shell-commands"`
	WorkspaceConfig bool `toml:"workspace-config"`
}

// TrustedProfile allows every feature.
func TrustedProfile() Profile {
	return Profile{LSP: true, DAP: true, ShellCommands: true, WorkspaceConfig: true}
}

// UntrustedProfile disables every dangerous feature.
func UntrustedProfile() Profile {
	return Profile{}
}

// Override is a per-workspace profile override: unset fields fall through
// to the base profile picked by the workspace's resolved Level.
type Override struct {
	Path            string `toml:"path"`
	LSP             *bool  `toml:"lsp,omitempty"`
	DAP             *bool  `toml:"dap,omitempty"`
	ShellCommands   *bool  `toml:"shell-commands,omitempty"`
	WorkspaceConfig *bool  `toml:"workspace-config,omitempty"`
}

// ToProfile resolves o against defaults, using defaults for any unset field.
func (o Override) ToProfile(defaults Profile) Profile {
	p := defaults
	if o.LSP != nil {
		p.LSP = *o.LSP
	}
	if o.DAP != nil {
		p.DAP = *o.DAP
	}
	if o.ShellCommands != nil {
		p.ShellCommands = *o.ShellCommands
	}
	if o.WorkspaceConfig != nil {
		p.WorkspaceConfig = *o.WorkspaceConfig
	}
	return p
}

// ExpandedPath returns o.Path with a leading "~" expanded to the current
// user's home directory.
func (o Override) ExpandedPath() string {
	return expandTilde(o.Path)
}

// Config is the full trust configuration loaded from editor config: the
// fallback behavior for unknown workspaces, the trusted/untrusted profiles,
// and per-workspace overrides.
type Config struct {
	Default   Default    `toml:"default"`
	Trusted   Profile    `toml:"trusted"`
	Untrusted Profile    `toml:"untrusted"`
	Workspaces []Override `toml:"workspaces"`
}

// DefaultConfig returns the Config produced when no trust section is
// present in editor config.
func DefaultConfig() Config {
	return Config{
		Default:   DefaultPrompt,
		Trusted:   TrustedProfile(),
		Untrusted: UntrustedProfile(),
	}
}

// FindOverride returns the override matching workspace's canonical path, if
// any. An override path containing a glob wildcard (*, ?, [) is matched with
// tidwall/match against the canonical path directly; a plain path matches
// itself or any descendant.
func (c Config) FindOverride(workspace string) (Override, bool) {
	canonical := canonicalizeWorkspace(workspace)
	for _, o := range c.Workspaces {
		expanded := o.ExpandedPath()
		if isGlobPattern(expanded) {
			if match.Match(canonical, expanded) {
				return o, true
			}
			continue
		}
		overridePath := canonicalizeWorkspace(expanded)
		if canonical == overridePath || hasPathPrefix(canonical, overridePath) {
			return o, true
		}
	}
	return Override{}, false
}

// isGlobPattern reports whether path contains a glob metacharacter, in
// which case it is matched literally (without canonicalization) rather than
// treated as a directory to resolve and prefix-match.
func isGlobPattern(path string) bool {
	return strings.ContainsAny(path, "*?[")
}

// ResolveProfile resolves the effective Profile for workspace at the given
// trust Level: an override takes priority over the bare trusted/untrusted
// profile, per spec §4.7's configuration rule.
func (c Config) ResolveProfile(workspace string, level Level) Profile {
	base := c.Untrusted
	if level == LevelTrusted {
		base = c.Trusted
	}
	if override, ok := c.FindOverride(workspace); ok {
		return override.ToProfile(base)
	}
	return base
}
