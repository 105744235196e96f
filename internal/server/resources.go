// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fitmate/fitmate-tui/internal/model"
)

// Favorite categories as stored.
const (
	categoryWorkout = "workout"
	categoryMeal    = "meal"
	categoryTip     = "tip"
)

// =============================================================================
// TIPS
// =============================================================================

func (s *Server) handleListTips(w http.ResponseWriter, _ *http.Request) {
	tips, err := s.store.ListTips()
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeData(w, tips)
}

func (s *Server) handleCreateTip(w http.ResponseWriter, r *http.Request) {
	var tip model.Tip
	if !decodeBody(w, r, &tip) {
		return
	}
	if strings.TrimSpace(tip.Title) == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "title is required")
		return
	}
	if tip.ID == "" {
		tip.ID = "tip_" + uuid.NewString()
	}
	if err := s.store.UpsertTip(tip); err != nil {
		s.internalError(w, err)
		return
	}
	writeData(w, tip)
}

func (s *Server) handleUpdateTip(w http.ResponseWriter, r *http.Request) {
	var tip model.Tip
	if !decodeBody(w, r, &tip) {
		return
	}
	tip.ID = chi.URLParam(r, "id")
	if err := s.store.UpsertTip(tip); err != nil {
		s.internalError(w, err)
		return
	}
	writeData(w, tip)
}

func (s *Server) handleDeleteTip(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteTip(chi.URLParam(r, "id")); err != nil {
		s.notFoundOrInternal(w, err)
		return
	}
	writeData(w, nil)
}

// =============================================================================
// MEALS
// =============================================================================

func (s *Server) handleListMeals(w http.ResponseWriter, _ *http.Request) {
	meals, err := s.store.ListMeals()
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeData(w, meals)
}

func (s *Server) handleCreateMeal(w http.ResponseWriter, r *http.Request) {
	var meal model.Meal
	if !decodeBody(w, r, &meal) {
		return
	}
	if strings.TrimSpace(meal.Title) == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "title is required")
		return
	}
	if meal.ID == "" {
		meal.ID = "meal_" + uuid.NewString()
	}
	if err := s.store.UpsertMeal(meal); err != nil {
		s.internalError(w, err)
		return
	}
	writeData(w, meal)
}

func (s *Server) handleUpdateMeal(w http.ResponseWriter, r *http.Request) {
	var meal model.Meal
	if !decodeBody(w, r, &meal) {
		return
	}
	meal.ID = chi.URLParam(r, "id")
	if err := s.store.UpsertMeal(meal); err != nil {
		s.internalError(w, err)
		return
	}
	writeData(w, meal)
}

func (s *Server) handleDeleteMeal(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteMeal(chi.URLParam(r, "id")); err != nil {
		s.notFoundOrInternal(w, err)
		return
	}
	writeData(w, nil)
}

// =============================================================================
// FAVORITES
// =============================================================================

type favoriteGroup struct {
	UserEmail string          `json:"userEmail"`
	Workouts  []model.Workout `json:"workouts"`
	Meals     []model.Meal    `json:"meals"`
	Tips      []model.Tip     `json:"tips"`
}

type favoriteRequest struct {
	Email     string `json:"email"`
	WorkoutID string `json:"workoutId,omitempty"`
	MealID    string `json:"mealId,omitempty"`
	TipID     string `json:"tipId,omitempty"`
}

// category resolves which sub-list the request targets. Exactly one id
// field must be set.
func (f favoriteRequest) category() (string, string, bool) {
	switch {
	case f.WorkoutID != "" && f.MealID == "" && f.TipID == "":
		return categoryWorkout, f.WorkoutID, true
	case f.MealID != "" && f.WorkoutID == "" && f.TipID == "":
		return categoryMeal, f.MealID, true
	case f.TipID != "" && f.WorkoutID == "" && f.MealID == "":
		return categoryTip, f.TipID, true
	}
	return "", "", false
}

// handleGetFavorites returns the user's favorites as one group with
// three categorical sub-lists.
func (s *Server) handleGetFavorites(w http.ResponseWriter, r *http.Request) {
	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "malformed email")
		return
	}
	email = strings.ToLower(email)

	ids, err := s.store.FavoriteIDs(email)
	if err != nil {
		s.internalError(w, err)
		return
	}

	group := favoriteGroup{
		UserEmail: email,
		Workouts:  []model.Workout{},
		Meals:     []model.Meal{},
		Tips:      []model.Tip{},
	}

	if want := toSet(ids[categoryWorkout]); len(want) > 0 {
		all, err := s.store.ListWorkouts()
		if err != nil {
			s.internalError(w, err)
			return
		}
		for _, wk := range all {
			if want[wk.ID] {
				group.Workouts = append(group.Workouts, wk)
			}
		}
	}
	if want := toSet(ids[categoryMeal]); len(want) > 0 {
		all, err := s.store.ListMeals()
		if err != nil {
			s.internalError(w, err)
			return
		}
		for _, m := range all {
			if want[m.ID] {
				group.Meals = append(group.Meals, m)
			}
		}
	}
	if want := toSet(ids[categoryTip]); len(want) > 0 {
		all, err := s.store.ListTips()
		if err != nil {
			s.internalError(w, err)
			return
		}
		for _, t := range all {
			if want[t.ID] {
				group.Tips = append(group.Tips, t)
			}
		}
	}

	writeData(w, []favoriteGroup{group})
}

// handleAddFavorite records one favorite.
func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	category, id, ok := req.category()
	if !ok || req.Email == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "email and exactly one item id are required")
		return
	}
	if err := s.store.AddFavorite(strings.ToLower(req.Email), category, id); err != nil {
		s.internalError(w, err)
		return
	}
	writeData(w, nil)
}

// handleRemoveFavorite deletes one favorite.
func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	category, id, ok := req.category()
	if !ok || req.Email == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "email and exactly one item id are required")
		return
	}
	if err := s.store.RemoveFavorite(strings.ToLower(req.Email), category, id); err != nil {
		s.notFoundOrInternal(w, err)
		return
	}
	writeData(w, nil)
}

func (s *Server) notFoundOrInternal(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, codeNotFound, "no such item")
		return
	}
	s.internalError(w, err)
}

func toSet(ids []string) map[string]bool {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// =============================================================================
// SEED DATA
// =============================================================================

// seedDemoData populates a demo catalog when the tables are empty.
func (st *Store) seedDemoData() error {
	var count int
	if err := st.db.QueryRow(`SELECT COUNT(*) FROM workouts`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	workouts := []model.Workout{
		{ID: "w_fullbody_a", Title: "Full Body A", Description: "Squat, bench press, barbell row", DurationMin: 45, Level: "beginner"},
		{ID: "w_fullbody_b", Title: "Full Body B", Description: "Deadlift, overhead press, pull-ups", DurationMin: 45, Level: "beginner"},
		{ID: "w_hiit_20", Title: "20-Minute HIIT", Description: "Intervals of burpees, squats and mountain climbers", DurationMin: 20, Level: "intermediate"},
		{ID: "w_core_15", Title: "Core Finisher", Description: "Planks, dead bugs and hollow holds", DurationMin: 15, Level: "all"},
	}
	for _, w := range workouts {
		if err := st.UpsertWorkout(w); err != nil {
			return err
		}
	}

	meals := []model.Meal{
		{ID: "m_protein_bowl", Title: "Protein Bowl", Description: "Rice, grilled chicken, broccoli and sesame", Calories: 620},
		{ID: "m_overnight_oats", Title: "Overnight Oats", Description: "Oats, greek yogurt, berries and honey", Calories: 430},
		{ID: "m_salmon_greens", Title: "Salmon & Greens", Description: "Baked salmon, spinach and sweet potato", Calories: 540},
	}
	for _, m := range meals {
		if err := st.UpsertMeal(m); err != nil {
			return err
		}
	}

	tips := []model.Tip{
		{ID: "t_sleep", Title: "Sleep 7-9 hours", Content: "Muscle repair happens while you sleep."},
		{ID: "t_water", Title: "Drink before you're thirsty", Content: "Thirst lags dehydration; sip through the day."},
		{ID: "t_form", Title: "Form before weight", Content: "Add load only when every rep looks the same."},
	}
	for _, t := range tips {
		if err := st.UpsertTip(t); err != nil {
			return err
		}
	}
	return nil
}
