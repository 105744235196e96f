// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server implements the FitMate development server: the same
// HTTP surface the production service exposes, backed by sqlite, so the
// client can be developed and demoed without the real backend.
package server

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// =============================================================================
// SERVER
// =============================================================================

// Config holds server options.
type Config struct {
	// DBPath is the sqlite file; ":memory:" for an ephemeral store.
	DBPath string
	// Seed populates demo workouts, meals and tips on startup.
	Seed bool
}

// Server is the development HTTP server.
type Server struct {
	store  *Store
	router chi.Router
	logger *log.Logger

	limiters sync.Map // remote host -> *rate.Limiter
}

// New creates a server and its routes.
func New(cfg Config, logger *log.Logger) (*Server, error) {
	store, err := OpenStore(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if cfg.Seed {
		if err := store.seedDemoData(); err != nil {
			store.Close()
			return nil, err
		}
	}

	s := &Server{
		store:  store,
		logger: logger,
	}
	s.routes()
	return s, nil
}

// Close releases the database.
func (s *Server) Close() error {
	return s.store.Close()
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(chimw.RealIP)
	r.Use(s.rateLimit)

	r.Get("/api/health", s.handleHealth)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Post("/verify-otp", s.handleVerifyOTP)
		r.Post("/resend-otp", s.handleResendOTP)
	})

	r.Get("/api/users/email/{email}", s.handleGetUser)

	r.Post("/api/chat", s.handleChat)
	r.Get("/api/chat/suggestions", s.handleSuggestions)

	r.Get("/api/tips", s.handleListTips)
	r.Post("/api/tips", s.handleCreateTip)
	r.Put("/api/tips/{id}", s.handleUpdateTip)
	r.Delete("/api/tips/{id}", s.handleDeleteTip)

	r.Get("/api/meals", s.handleListMeals)
	r.Post("/api/meals", s.handleCreateMeal)
	r.Put("/api/meals/{id}", s.handleUpdateMeal)
	r.Delete("/api/meals/{id}", s.handleDeleteMeal)

	r.Get("/api/favorites/{email}", s.handleGetFavorites)
	r.Post("/api/favorites", s.handleAddFavorite)
	r.Delete("/api/favorites", s.handleRemoveFavorite)

	s.router = r
}

// =============================================================================
// MIDDLEWARE
// =============================================================================

// requestID tags every request for log correlation.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()[:8]
		w.Header().Set("X-Request-Id", id)
		s.logger.Printf("[%s] %s %s", id, r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// rateLimit allows a small steady request rate per remote host, bursty
// enough for the TUI but strict enough to catch runaway loops.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		v, _ := s.limiters.LoadOrStore(host, rate.NewLimiter(rate.Limit(20), 40))
		if !v.(*rate.Limiter).Allow() {
			writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// ENVELOPE HELPERS
// =============================================================================

type envelope struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, envelope{Success: false, Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func decodeBody(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		return false
	}
	return true
}

// handleHealth answers the reachability probe.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeData(w, map[string]string{"status": "ok"})
}
