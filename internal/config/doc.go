// Package config loads, normalizes, and validates tasknotify's TOML
// configuration.
//
// Configuration resolves from an explicit --config path, then
// ~/.config/tasknotify/config.toml, then ./tasknotify.toml, falling back to
// built-in defaults when no file exists. Load always returns a fully
// normalized config: paths are expanded, missing values are defaulted, and
// invalid combinations are rejected up front so the daemon never starts with
// a half-usable configuration.
package config
