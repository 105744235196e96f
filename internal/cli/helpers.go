// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/fitmate/fitmate-tui/internal/api"
	"github.com/fitmate/fitmate-tui/internal/config"
	"github.com/fitmate/fitmate-tui/internal/session"
	"github.com/fitmate/fitmate-tui/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	successStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)

	warningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)

	errorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose)
)

// =============================================================================
// SHARED SETUP
// =============================================================================

// Env bundles what every CLI handler needs: configuration, the API
// client and the session store.
type Env struct {
	Config   *config.Config
	Client   *api.Client
	Sessions *session.Store
}

// LoadEnv loads configuration and opens the session store. The --server
// flag overrides the configured URL for this invocation only.
func LoadEnv(args Args) (*Env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if args.Server != "" {
		cfg.Server.URL = args.Server
	}

	sessions, err := session.NewStore(cfg.ProfileDir())
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL: cfg.Server.URL,
		Timeout: cfg.Timeout(),
	})

	return &Env{Config: cfg, Client: client, Sessions: sessions}, nil
}

// fail prints the error and exits non-zero.
func fail(err error) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+err.Error())
	os.Exit(1)
}
