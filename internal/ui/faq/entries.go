// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package faq provides the frequently-asked-questions screen: a static,
// searchable list of questions with expandable answers.
package faq

import (
	"strings"

	"golang.org/x/text/cases"
)

// Entry is one question/answer pair.
type Entry struct {
	Question string
	Answer   string
}

// Entries is the built-in FAQ content, shown in fixed order.
var Entries = []Entry{
	{
		Question: "What is FitMate?",
		Answer: "FitMate is your personal fitness companion. Chat with the " +
			"coach for workout and nutrition guidance, and save the workouts, " +
			"meals and tips you like to your favorites.",
	},
	{
		Question: "How do I talk to the coach?",
		Answer: "Open the Chat tab and type anything: a goal, a question, or " +
			"one of the suggested prompts. The coach replies in seconds and " +
			"follows up with new suggestions.",
	},
	{
		Question: "Why do I need to verify my email?",
		Answer: "The one-time code confirms the address belongs to you. " +
			"Check your inbox for a 6-digit code after registering; you can " +
			"request a fresh code from the verification screen.",
	},
	{
		Question: "My account says it is blocked. What now?",
		Answer: "Entering the wrong verification code too many times blocks " +
			"the account to protect it. Contact support to restore access.",
	},
	{
		Question: "How do favorites work?",
		Answer: "Workouts, meals and tips you save appear together in the " +
			"Favorites tab. Search filters them by title or category, and you " +
			"can remove one item or everything the search currently shows.",
	},
	{
		Question: "Is my data synced across devices?",
		Answer: "Your account, chat history and favorites live on the " +
			"FitMate server, so signing in on another device picks up where " +
			"you left off. Only the session token is stored locally.",
	},
	{
		Question: "How do I sign out?",
		Answer: "Run `fitmate logout` from your shell, or delete the session " +
			"file in your profile directory. The app returns to the sign-in " +
			"screen on the next start.",
	},
}

// folder performs locale-independent caseless matching, same as the
// favorites filter.
var folder = cases.Fold()

// Filter returns the entries whose question or answer contains the
// query, caseless. An empty query returns everything.
func Filter(entries []Entry, query string) []Entry {
	query = folder.String(strings.TrimSpace(query))
	if query == "" {
		return entries
	}

	var matched []Entry
	for _, e := range entries {
		if strings.Contains(folder.String(e.Question), query) ||
			strings.Contains(folder.String(e.Answer), query) {
			matched = append(matched, e)
		}
	}
	return matched
}
