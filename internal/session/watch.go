// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch streams the session state: the current value is delivered
// immediately, then a new value after every change to the session file,
// including changes made by another process. The channel closes when
// ctx is cancelled.
func (s *Store) Watch(ctx context.Context) (<-chan Session, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory, not the file: atomic saves replace the file
	// by rename, which would silently drop a file-level watch.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return nil, err
	}

	out := make(chan Session, 1)
	out <- s.Current()

	go func() {
		defer close(out)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != s.path {
					continue
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				_ = s.reload()
				select {
				case out <- s.Current():
				case <-ctx.Done():
					return
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Watcher errors are non-fatal; the next successful
				// event still carries fresh state.
			}
		}
	}()

	return out, nil
}
