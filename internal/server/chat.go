// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"net/http"
	"strings"

	"github.com/fitmate/fitmate-tui/internal/model"
)

type chatRequest struct {
	Email   string `json:"email"`
	Content string `json:"content"`
}

type chatReply struct {
	Message     model.Message `json:"message"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// defaultSuggestions are the prompts offered before any exchange.
var defaultSuggestions = []string{
	"Plan a workout for this week",
	"What should I eat after training?",
	"How do I build a running habit?",
	"Give me a quick stretching routine",
}

// handleChat answers one coach exchange. The dev server keys replies on
// simple topic matching; the production service runs a real assistant.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decodeBody(w, r, &req) {
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "content is required")
		return
	}

	text, followups := s.coachReply(content)
	writeData(w, chatReply{
		Message:     model.NewBotMessage(text),
		Suggestions: followups,
	})
}

// handleSuggestions returns the initial prompt chips.
func (s *Server) handleSuggestions(w http.ResponseWriter, _ *http.Request) {
	writeData(w, defaultSuggestions)
}

// coachReply picks a canned markdown answer by topic.
func (s *Server) coachReply(content string) (string, []string) {
	lower := strings.ToLower(content)

	switch {
	case containsAny(lower, "workout", "train", "exercise", "gym"):
		return s.workoutReply(), []string{
			"Make it harder",
			"I only have 20 minutes",
			"What about rest days?",
		}
	case containsAny(lower, "eat", "meal", "food", "nutrition", "diet"):
		return s.mealReply(), []string{
			"I'm vegetarian",
			"How much protein do I need?",
			"Suggest a breakfast",
		}
	case containsAny(lower, "run", "running", "cardio"):
		return "Start with three easy runs a week:\n\n" +
			"1. **20 minutes** at a pace where you can hold a conversation\n" +
			"2. Rest or walk the day after\n" +
			"3. Add five minutes every second week\n\n" +
			"Consistency beats speed for the first two months.", []string{
			"How fast should I run?",
			"My knees hurt after running",
		}
	case containsAny(lower, "stretch", "mobility", "warm"):
		return "A quick routine you can do anywhere:\n\n" +
			"- Neck rolls, 30 seconds each way\n" +
			"- Standing hamstring fold, 45 seconds\n" +
			"- Hip flexor lunge, 30 seconds per side\n" +
			"- Shoulder pass-throughs, 10 reps\n\n" +
			"Breathe slowly and never bounce into a stretch.", nil
	case containsAny(lower, "sleep", "rest", "recover"):
		return "Recovery is where the progress happens. Aim for **7-9 hours** " +
			"of sleep, keep one full rest day per week, and treat soreness " +
			"that lasts more than three days as a signal to back off.", nil
	default:
		return "I can help with workouts, meals, running, stretching and " +
			"recovery. Tell me your goal and how many days a week you can " +
			"train, and I'll put a plan together.", defaultSuggestions
	}
}

// workoutReply builds an answer from the seeded workout catalog.
func (s *Server) workoutReply() string {
	var b strings.Builder
	b.WriteString("Here's a simple split to start with:\n\n")
	if workouts, err := s.store.ListWorkouts(); err == nil && len(workouts) > 0 {
		for i, wk := range workouts {
			if i == 3 {
				break
			}
			b.WriteString("- **" + wk.Title + "**")
			if wk.Description != "" {
				b.WriteString(": " + wk.Description)
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString("- **Full body A**: squat, push, pull\n")
		b.WriteString("- **Full body B**: hinge, press, carry\n")
	}
	b.WriteString("\nAlternate them three times a week with a rest day between sessions.")
	return b.String()
}

// mealReply builds an answer from the seeded meal catalog.
func (s *Server) mealReply() string {
	var b strings.Builder
	b.WriteString("Build every plate around protein, vegetables and slow carbs. A few ideas:\n\n")
	if meals, err := s.store.ListMeals(); err == nil && len(meals) > 0 {
		for i, m := range meals {
			if i == 3 {
				break
			}
			b.WriteString("- **" + m.Title + "**")
			if m.Description != "" {
				b.WriteString(": " + m.Description)
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString("- **Protein bowl**: grains, chicken, greens\n")
	}
	b.WriteString("\nEat within two hours after training for the best recovery.")
	return b.String()
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
