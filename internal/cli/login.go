// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// login.go - "fitmate login" and "fitmate logout" command handlers.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/fitmate/fitmate-tui/internal/api"
	"github.com/fitmate/fitmate-tui/internal/auth"
)

// HandleLogin signs in interactively and persists the session.
func HandleLogin(args Args) {
	if !IsTTY() {
		fail(errors.New("login requires an interactive terminal"))
	}

	env, err := LoadEnv(args)
	if err != nil {
		fail(err)
	}

	if cur := env.Sessions.Current(); cur.Valid() {
		fmt.Println(infoStyle.Render("Already signed in as " + cur.Email + ". Run `fitmate logout` first to switch accounts."))
		return
	}

	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	email, err := line.Prompt("Email: ")
	line.Close()
	if err != nil {
		fail(errors.New("aborted"))
	}
	email = strings.TrimSpace(email)

	fmt.Print("Password: ")
	pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		fail(err)
	}

	flow := auth.NewFlow(env.Client, env.Sessions)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	errs, err := flow.Login(ctx, email, string(pwBytes))
	if !errs.OK() {
		for _, msg := range []string{errs.Email, errs.Password} {
			if msg != "" {
				fmt.Fprintln(os.Stderr, errorStyle.Render(msg))
			}
		}
		os.Exit(1)
	}
	if err != nil {
		if auth.IsBlocked(err) {
			fail(errors.New("this account is blocked; contact support"))
		}
		var remote *api.RemoteError
		if errors.As(err, &remote) {
			fail(errors.New(remote.Error()))
		}
		fail(err)
	}

	user := flow.User()
	fmt.Println(successStyle.Render("Signed in as " + user.Email))
	if args.Verbose {
		fmt.Println(infoStyle.Render("role: " + user.Role))
		fmt.Println(infoStyle.Render("session: " + env.Sessions.Path()))
	}
}

// HandleLogout clears the local session. The TUI notices the change
// through the session watch and returns to the sign-in screen.
func HandleLogout(args Args) {
	env, err := LoadEnv(args)
	if err != nil {
		fail(err)
	}

	cur := env.Sessions.Current()
	if !cur.Valid() {
		fmt.Println(infoStyle.Render("Not signed in."))
		return
	}

	if err := env.Sessions.Clear(); err != nil {
		fail(err)
	}
	fmt.Println(successStyle.Render("Signed out " + cur.Email))
}
