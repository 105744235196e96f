// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for the FitMate client.
//
// Precedence, lowest to highest:
//   - built-in defaults
//   - ~/.fitmate/config.toml
//   - FITMATE_* environment variables
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/fitmate/fitmate-tui/internal/util"
)

// FileName is the config file inside the profile directory.
const FileName = "config.toml"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete client configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	UI     UIConfig     `toml:"ui"`

	// profileDir is where config and session live. Not serialized.
	profileDir string `toml:"-"`
}

// ServerConfig describes how to reach the FitMate service.
type ServerConfig struct {
	// URL is the service base URL.
	URL string `toml:"url"`
	// TimeoutSecs is the per-request timeout in seconds.
	TimeoutSecs int `toml:"timeout_secs"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// Theme is "auto", "dark" or "light".
	Theme string `toml:"theme"`
	// DisplayName overrides the name shown for the local user in chat.
	DisplayName string `toml:"display_name"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:         "http://127.0.0.1:8160",
			TimeoutSecs: 30,
		},
		UI: UIConfig{
			Theme: "auto",
		},
	}
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads configuration from the default profile directory.
func Load() (*Config, error) {
	dir, err := DefaultProfileDir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(dir)
}

// LoadFrom reads configuration rooted at a specific profile directory.
// A missing file yields the defaults; a malformed file is an error.
func LoadFrom(dir string) (*Config, error) {
	cfg := Default()
	cfg.profileDir = dir

	path := filepath.Join(dir, FileName)
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultProfileDir returns ~/.fitmate, honoring FITMATE_PROFILE_DIR.
func DefaultProfileDir() (string, error) {
	if dir := os.Getenv("FITMATE_PROFILE_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".fitmate"), nil
}

// applyEnv applies FITMATE_* overrides on top of file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("FITMATE_SERVER_URL"); v != "" {
		c.Server.URL = v
	}
	if v := os.Getenv("FITMATE_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("FITMATE_DISPLAY_NAME"); v != "" {
		c.UI.DisplayName = v
	}
}

// validate rejects configurations the client cannot run with.
func (c *Config) validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server url %q", c.Server.URL)
	}
	if c.Server.TimeoutSecs <= 0 {
		c.Server.TimeoutSecs = Default().Server.TimeoutSecs
	}
	switch c.UI.Theme {
	case "auto", "dark", "light":
	case "":
		c.UI.Theme = "auto"
	default:
		return fmt.Errorf("invalid theme %q (want auto, dark or light)", c.UI.Theme)
	}
	return nil
}

// =============================================================================
// ACCESSORS & SAVING
// =============================================================================

// ProfileDir returns the directory holding config and session files.
func (c *Config) ProfileDir() string {
	return c.profileDir
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSecs) * time.Second
}

// Save writes the configuration back to the profile directory.
func (c *Config) Save() error {
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(filepath.Join(c.profileDir, FileName), data, 0o644)
}
