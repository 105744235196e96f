// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - "fitmate status" command handler.
package cli

import (
	"context"
	"fmt"
	"time"
)

// HandleStatus prints server reachability and session state.
func HandleStatus(args Args) {
	env, err := LoadEnv(args)
	if err != nil {
		fail(err)
	}

	fmt.Println(promptStyle.Render("FitMate Status"))
	fmt.Println()
	fmt.Printf("  Server:   %s\n", env.Config.Server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := env.Client.CheckReachable(ctx); err != nil {
		fmt.Printf("  Health:   %s\n", errorStyle.Render("unreachable ("+err.Error()+")"))
	} else {
		fmt.Printf("  Health:   %s\n", successStyle.Render("ok"))
	}

	cur := env.Sessions.Current()
	if cur.Valid() {
		fmt.Printf("  Session:  %s (%s)\n", cur.Email, cur.Role)
	} else {
		fmt.Printf("  Session:  %s\n", warningStyle.Render("signed out"))
	}
	if args.Verbose {
		fmt.Printf("  Profile:  %s\n", env.Config.ProfileDir())
	}
}
