// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - "fitmate config" command handler.
package cli

import (
	"errors"
	"fmt"
	"strconv"
)

// HandleConfig shows or updates configuration values.
//
//	fitmate config                 Show the effective configuration
//	fitmate config show            Same
//	fitmate config set KEY VALUE   Set one key and save
func HandleConfig(args Args) {
	env, err := LoadEnv(args)
	if err != nil {
		fail(err)
	}

	switch args.ConfigKey {
	case "", "show":
		showConfig(env)
	case "set":
		if len(args.Raw) != 3 {
			fail(errors.New("usage: fitmate config set KEY VALUE"))
		}
		setConfig(env, args.Raw[1], args.Raw[2])
	default:
		fail(fmt.Errorf("unknown config subcommand %q (want show or set)", args.ConfigKey))
	}
}

func showConfig(env *Env) {
	cfg := env.Config
	fmt.Println(promptStyle.Render("FitMate Configuration"))
	fmt.Println()
	fmt.Printf("  server.url          %s\n", cfg.Server.URL)
	fmt.Printf("  server.timeout_secs %d\n", cfg.Server.TimeoutSecs)
	fmt.Printf("  ui.theme            %s\n", cfg.UI.Theme)
	fmt.Printf("  ui.display_name     %s\n", cfg.UI.DisplayName)
	fmt.Println()
	fmt.Println(infoStyle.Render("file: " + cfg.ProfileDir() + "/config.toml"))
}

func setConfig(env *Env, key, value string) {
	cfg := env.Config
	switch key {
	case "server.url":
		cfg.Server.URL = value
	case "server.timeout_secs":
		secs, err := strconv.Atoi(value)
		if err != nil || secs <= 0 {
			fail(fmt.Errorf("invalid timeout %q (want a positive integer)", value))
		}
		cfg.Server.TimeoutSecs = secs
	case "ui.theme":
		switch value {
		case "auto", "dark", "light":
			cfg.UI.Theme = value
		default:
			fail(fmt.Errorf("invalid theme %q (want auto, dark or light)", value))
		}
	case "ui.display_name":
		cfg.UI.DisplayName = value
	default:
		fail(fmt.Errorf("unknown config key %q", key))
	}

	if err := cfg.Save(); err != nil {
		fail(err)
	}
	fmt.Println(successStyle.Render("Saved " + key))
}
