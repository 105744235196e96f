// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command routing for fitmate.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdChat
	CmdLogin
	CmdLogout
	CmdStatus
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Server  string // --server URL override
	Quiet   bool
	Verbose bool

	// Command-specific
	ConfigKey string
	ConfigVal string

	// Raw args remaining after flag parsing
	Raw []string
}

const usageText = `fitmate - your personal fitness coach in the terminal

Usage:
  fitmate                    Start the TUI (default)
  fitmate chat               Chat with the coach from your shell
  fitmate login              Sign in (email + password, OTP on first login)
  fitmate logout             Sign out and clear the local session
  fitmate status, s          Show server and session status
  fitmate config [show|set]  Configuration
  fitmate version, -v        Show version
  fitmate help, -h           Show this help

Flags:
  --server URL     Override the server URL for this invocation
  -q, --quiet      Minimal output
  --verbose        Verbose output

Examples:
  fitmate
  fitmate chat
  fitmate config set server.url http://127.0.0.1:8160
  fitmate config show

Environment:
  FITMATE_PROFILE_DIR   Profile directory (default ~/.fitmate)
  FITMATE_SERVER_URL    Server URL override
  FITMATE_THEME         Theme: auto, dark or light
`

// Parse parses os.Args and returns the command plus its arguments.
func Parse() (Command, Args) {
	args := Args{}
	argv := os.Args[1:]

	// Pull out global flags first, command word second.
	var rest []string
	for i := 0; i < len(argv); i++ {
		switch argv[i] {
		case "--server":
			if i+1 < len(argv) {
				i++
				args.Server = argv[i]
			}
		case "-q", "--quiet":
			args.Quiet = true
		case "--verbose":
			args.Verbose = true
		default:
			rest = append(rest, argv[i])
		}
	}

	if len(rest) == 0 {
		return CmdTUI, args
	}

	cmd := strings.ToLower(rest[0])
	args.Raw = rest[1:]

	switch cmd {
	case "chat":
		return CmdChat, args
	case "login":
		return CmdLogin, args
	case "logout":
		return CmdLogout, args
	case "status", "s":
		return CmdStatus, args
	case "config":
		if len(args.Raw) >= 1 {
			args.ConfigKey = strings.ToLower(args.Raw[0])
		}
		return CmdConfig, args
	case "version", "-v", "--version":
		return CmdVersion, args
	case "help", "-h", "--help":
		return CmdHelp, args
	default:
		fmt.Fprintf(os.Stderr, "fitmate: unknown command %q\n\n", rest[0])
		return CmdHelp, args
	}
}

// HandleHelp prints the usage text.
func HandleHelp() {
	fmt.Print(usageText)
}

// HandleVersion prints version information.
func HandleVersion() {
	fmt.Printf("fitmate %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}
