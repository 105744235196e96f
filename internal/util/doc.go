// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the FitMate client:
// crash-safe file writes and width-aware string truncation for
// terminal rendering.
package util
