// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the domain types shared by the FitMate client:
// users, chat messages and conversations, and the workout/meal/tip
// resources mirrored from the remote service. The client never owns the
// durable copies of these; they are transient projections of server
// state.
package model
