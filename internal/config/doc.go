// SPDX-License-Identifier: MPL-2.0

// Package config handles runi settings using Viper with TOML as the file format.
//
// Configuration is loaded from $XDG_CONFIG_HOME/runi/config.toml (default
// ~/.config/runi/config.toml). Every setting can also be supplied through a
// RUNI_* environment variable, e.g. RUNI_LOG_LEVEL or RUNI_INDEX_EXCLUDE.
// The same file carries the [patch."<path>"] tables read by package overrides.
//
// The package also resolves the XDG data roots that application descriptors
// are discovered under.
package config
