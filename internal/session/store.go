// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session persists the device-local authentication state: the
// {email, role} pair of the signed-in user. It is the only durable
// client-local state; everything else is reconstructable from the
// service.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/fitmate/fitmate-tui/internal/util"
)

// FileName is the session file inside the profile directory.
const FileName = "session.json"

// =============================================================================
// SESSION TYPE
// =============================================================================

// Session is the persisted {email, role} pair.
type Session struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Valid reports whether the session can gate navigation. Both fields
// must be present together; a partial session counts as logged out.
func (s Session) Valid() bool {
	return s.Email != "" && s.Role != ""
}

// =============================================================================
// STORE
// =============================================================================

// Store reads and writes the session file. It is created once at
// process start and passed explicitly to every component that needs
// authorization context.
type Store struct {
	mu      sync.Mutex
	path    string
	current Session
}

// NewStore creates a store rooted at dir (typically ~/.fitmate) and
// loads any existing session.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	s := &Store{path: filepath.Join(dir, FileName)}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the session file path.
func (s *Store) Path() string {
	return s.path
}

// Current returns the in-memory session. A zero Session means logged
// out.
func (s *Store) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Save persists the session and makes it current.
func (s *Store) Save(sess Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// 0600: the session identifies the account holder on this device.
	if err := util.AtomicWriteFile(s.path, data, 0o600); err != nil {
		return err
	}
	s.current = sess
	return nil
}

// Clear removes the persisted session and resets the in-memory copy.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Session{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// reload reads the session file from disk. Missing or corrupt files
// load as logged out rather than failing startup.
func (s *Store) reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.current = Session{}
		return nil
	}
	if err != nil {
		return err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		s.current = Session{}
		return nil
	}
	if !sess.Valid() {
		// Never surface a partial session.
		sess = Session{}
	}
	s.current = sess
	return nil
}
