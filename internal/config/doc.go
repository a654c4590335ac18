// Package config provides velum's configuration system.
//
// Scope is intentionally narrow. velum's external interfaces (spec.md §6)
// are HELIX_RUNTIME (read directly by internal/engine/syntax) and a small
// set of watcher/indent tunables read once at startup — there is no live
// reload, plugin system, keymap layer, or schema validation.
//
// # Layers
//
// Configuration is organized in layers, merged with higher layers
// overriding lower ones:
//
//	┌─────────────────────────────┐
//	│  4. Environment Variables   │  ← Highest priority, VELUM_* vars
//	├─────────────────────────────┤
//	│  3. Workspace                │  ← .velum/config.toml
//	├─────────────────────────────┤
//	│  2. User Settings            │  ← ~/.config/velum/settings.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults        │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Sub-packages
//
//   - loader: TOML file and environment variable loading
//   - layer: layer storage and deep-merge
//
// # Basic usage
//
//	cfg := config.New(config.WithProjectConfigDir(dir))
//	if err := cfg.Load(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer cfg.Close()
//
//	watcher := cfg.Watcher()
//	indent := cfg.Indent()
package config
