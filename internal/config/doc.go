// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for wherepipe's user
// configuration. The configuration is a YAML document named wherepipe.yaml in
// the user's configuration directory, typically:
//   - Linux: $XDG_CONFIG_HOME/wherepipe.yaml or $HOME/.config/wherepipe.yaml
//   - macOS: $HOME/Library/Application Support/wherepipe.yaml
//   - Windows: %APPDATA%/wherepipe.yaml
//
// WHEREPIPE_CFG_FILE overrides the location. Keys may be namespaced by
// command, so "parse.output" is preferred over "output" while running parse.
package config
