// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"
	"os"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml"
)

// Config seeds the policy settings the choreographer starts with, plus the
// demo driver's own ambient settings.
type Config struct {
	// LogLevel is parsed with logrus.ParseLevel; empty means "info".
	LogLevel string `toml:"log_level,omitempty"`

	// DefaultMouseDisplayID is the displayId new mice without an explicit
	// association resolve to. -1 means DISPLAY_NONE.
	DefaultMouseDisplayID int32 `toml:"default_mouse_display_id"`
	// ShowTouchesEnabled seeds whether touch contact spots are drawn.
	ShowTouchesEnabled bool `toml:"show_touches_enabled"`
	// StylusIconEnabled seeds whether the stylus hover icon is drawn.
	StylusIconEnabled bool `toml:"stylus_icon_enabled"`
}

// Default returns the configuration the demo driver falls back to when no
// config file is present.
func Default() Config {
	return Config{
		LogLevel:              "info",
		DefaultMouseDisplayID: -1,
		ShowTouchesEnabled:    true,
		StylusIconEnabled:     true,
	}
}

// DefaultPath resolves the on-disk config file location the same way the
// teacher resolves its own: via the XDG config home.
func DefaultPath() (string, error) {
	path, err := xdg.ConfigFile("choreographerd/config.toml")
	if err != nil {
		return "", fmt.Errorf("resolving xdg config path: %w", err)
	}
	return path, nil
}

// Load reads and parses a Config from path, starting from Default so that
// fields absent from the file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %q: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %q: %w", path, err)
	}
	return cfg, nil
}
