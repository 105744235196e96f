// fitmate-server - development server for the FitMate client.
//
// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/fitmate/fitmate-tui/internal/config"
	"github.com/fitmate/fitmate-tui/internal/server"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8160", "listen address")
	dbPath := flag.String("db", "", "sqlite database path (default <profile>/fitmate.db)")
	noSeed := flag.Bool("no-seed", false, "skip seeding the demo catalog")
	flag.Parse()

	logger := log.New(os.Stdout, "fitmate-server ", log.LstdFlags)

	path := *dbPath
	if path == "" {
		dir, err := config.DefaultProfileDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := os.MkdirAll(dir, 0o700); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		path = filepath.Join(dir, "fitmate.db")
	}

	srv, err := server.New(server.Config{DBPath: path, Seed: !*noSeed}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer srv.Close()

	logger.Printf("listening on http://%s (db %s)", *addr, path)
	logger.Printf("OTP codes are printed to this log; watch it while registering")
	if err := http.ListenAndServe(*addr, srv); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
