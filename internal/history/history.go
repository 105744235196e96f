// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history persists the coach chat transcript locally, one file
// per account, so a conversation survives restarts. The server keeps
// the authoritative history; this is the offline copy the TUI reopens
// with.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fitmate/fitmate-tui/internal/model"
	"github.com/fitmate/fitmate-tui/internal/util"
)

// ErrNoTranscript is returned when an account has no saved transcript.
// Check with errors.Is.
var ErrNoTranscript = &TranscriptError{Message: "no saved transcript"}

// TranscriptError is a transcript-related failure.
type TranscriptError struct {
	Message string
}

func (e *TranscriptError) Error() string { return e.Message }

func (e *TranscriptError) Is(target error) bool {
	t, ok := target.(*TranscriptError)
	return ok && e.Message == t.Message
}

// =============================================================================
// STORE
// =============================================================================

// Store reads and writes per-account transcripts under one directory.
type Store struct {
	dir string
}

// NewStore creates the transcript directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// Dir returns the transcript directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the conversation snapshot for an account. The caller
// passes a value copy so a concurrent append cannot tear the write.
func (s *Store) Save(email string, snap model.Conversation) error {
	snap.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(&snap, "", "  ")
	if err != nil {
		return err
	}
	// Atomic write with fsync; a crash mid-save keeps the old transcript.
	return util.AtomicWriteFile(s.filePath(email), data, 0o600)
}

// Load retrieves the saved conversation for an account.
func (s *Store) Load(email string) (*model.Conversation, error) {
	data, err := os.ReadFile(s.filePath(email))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoTranscript
		}
		return nil, err
	}

	var conv model.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		// A corrupted transcript is not worth failing startup over.
		return nil, ErrNoTranscript
	}
	return &conv, nil
}

// Clear deletes the saved transcript for an account. Clearing a missing
// transcript is not an error.
func (s *Store) Clear(email string) error {
	err := os.Remove(s.filePath(email))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// filePath maps an email to its transcript file.
func (s *Store) filePath(email string) string {
	return filepath.Join(s.dir, sanitize(email)+".json")
}

// sanitize turns an email into a safe filename.
func sanitize(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	var b strings.Builder
	for _, r := range email {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == '@':
			b.WriteString("_at_")
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
