// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/fitmate/fitmate-tui/internal/model"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// schema is applied on startup; every statement is idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    email         TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'member',
    otp_secret    TEXT NOT NULL,
    otp_attempt   INTEGER NOT NULL DEFAULT 0,
    is_verified   INTEGER NOT NULL DEFAULT 0,
    is_blocked    INTEGER NOT NULL DEFAULT 0,
    height_cm     REAL,
    weight_kg     REAL
);

CREATE TABLE IF NOT EXISTS workouts (
    id          TEXT PRIMARY KEY,
    title       TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    image_url   TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS meals (
    id          TEXT PRIMARY KEY,
    title       TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    image_url   TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS tips (
    id      TEXT PRIMARY KEY,
    title   TEXT NOT NULL,
    content TEXT NOT NULL DEFAULT '',
    images  TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS favorites (
    user_email TEXT NOT NULL,
    category   TEXT NOT NULL,
    item_id    TEXT NOT NULL,
    PRIMARY KEY (user_email, category, item_id)
);
`

// Store wraps the sqlite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens (and migrates) the database at path. ":memory:" gives
// an ephemeral store for tests.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// sqlite handles one writer at a time.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// =============================================================================
// USERS
// =============================================================================

// userRecord is the storage shape of a user, including the fields never
// sent to clients.
type userRecord struct {
	model.User
	PasswordHash string
	OTPSecret    string
}

// CreateUser inserts a new, unverified user.
func (s *Store) CreateUser(u userRecord) error {
	_, err := s.db.Exec(`
        INSERT INTO users (email, name, password_hash, role, otp_secret)
        VALUES (?, ?, ?, ?, ?)`,
		u.Email, u.Name, u.PasswordHash, u.Role, u.OTPSecret)
	return err
}

// GetUser fetches a user by email.
func (s *Store) GetUser(email string) (userRecord, error) {
	var u userRecord
	var height, weight sql.NullFloat64
	err := s.db.QueryRow(`
        SELECT email, name, password_hash, role, otp_secret,
               otp_attempt, is_verified, is_blocked, height_cm, weight_kg
        FROM users WHERE email = ?`, email).Scan(
		&u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.OTPSecret,
		&u.OTPAttempt, &u.IsVerified, &u.IsBlocked, &height, &weight)
	if errors.Is(err, sql.ErrNoRows) {
		return userRecord{}, ErrNotFound
	}
	if err != nil {
		return userRecord{}, err
	}
	if height.Valid {
		u.HeightCm = height.Float64
	}
	if weight.Valid {
		u.WeightKg = weight.Float64
	}
	return u, nil
}

// SetOTPAttempt records the failed-attempt counter and block flag.
func (s *Store) SetOTPAttempt(email string, attempts int, blocked bool) error {
	_, err := s.db.Exec(`UPDATE users SET otp_attempt = ?, is_blocked = ? WHERE email = ?`,
		attempts, blocked, email)
	return err
}

// MarkVerified marks the user verified and clears the attempt counter.
func (s *Store) MarkVerified(email string) error {
	_, err := s.db.Exec(`UPDATE users SET is_verified = 1, otp_attempt = 0 WHERE email = ?`, email)
	return err
}

// =============================================================================
// RESOURCES
// =============================================================================

// ListWorkouts returns all workouts.
func (s *Store) ListWorkouts() ([]model.Workout, error) {
	rows, err := s.db.Query(`SELECT id, title, description, image_url FROM workouts ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Workout
	for rows.Next() {
		var w model.Workout
		if err := rows.Scan(&w.ID, &w.Title, &w.Description, &w.ImageURL); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// ListMeals returns all meals.
func (s *Store) ListMeals() ([]model.Meal, error) {
	rows, err := s.db.Query(`SELECT id, title, description, image_url FROM meals ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Meal
	for rows.Next() {
		var m model.Meal
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.ImageURL); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ListTips returns all tips. Image URLs are stored newline-separated.
func (s *Store) ListTips() ([]model.Tip, error) {
	rows, err := s.db.Query(`SELECT id, title, content, images FROM tips ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Tip
	for rows.Next() {
		var t model.Tip
		var images string
		if err := rows.Scan(&t.ID, &t.Title, &t.Content, &images); err != nil {
			return nil, err
		}
		t.ImageURLs = splitImages(images)
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpsertMeal inserts or updates a meal.
func (s *Store) UpsertMeal(m model.Meal) error {
	_, err := s.db.Exec(`
        INSERT INTO meals (id, title, description, image_url) VALUES (?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            title = excluded.title,
            description = excluded.description,
            image_url = excluded.image_url`,
		m.ID, m.Title, m.Description, m.ImageURL)
	return err
}

// DeleteMeal removes a meal.
func (s *Store) DeleteMeal(id string) error {
	return s.deleteByID("meals", id)
}

// UpsertTip inserts or updates a tip.
func (s *Store) UpsertTip(t model.Tip) error {
	_, err := s.db.Exec(`
        INSERT INTO tips (id, title, content, images) VALUES (?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            title = excluded.title,
            content = excluded.content,
            images = excluded.images`,
		t.ID, t.Title, t.Content, joinImages(t.ImageURLs))
	return err
}

// DeleteTip removes a tip.
func (s *Store) DeleteTip(id string) error {
	return s.deleteByID("tips", id)
}

// UpsertWorkout inserts or updates a workout.
func (s *Store) UpsertWorkout(w model.Workout) error {
	_, err := s.db.Exec(`
        INSERT INTO workouts (id, title, description, image_url) VALUES (?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            title = excluded.title,
            description = excluded.description,
            image_url = excluded.image_url`,
		w.ID, w.Title, w.Description, w.ImageURL)
	return err
}

// splitImages decodes the newline-separated image column.
func splitImages(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func joinImages(urls []string) string {
	return strings.Join(urls, "\n")
}

func (s *Store) deleteByID(table, id string) error {
	res, err := s.db.Exec(`DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// =============================================================================
// FAVORITES
// =============================================================================

// AddFavorite records a favorite of one category for a user.
func (s *Store) AddFavorite(email, category, itemID string) error {
	_, err := s.db.Exec(`
        INSERT INTO favorites (user_email, category, item_id) VALUES (?, ?, ?)
        ON CONFLICT DO NOTHING`,
		email, category, itemID)
	return err
}

// RemoveFavorite removes one favorite.
func (s *Store) RemoveFavorite(email, category, itemID string) error {
	res, err := s.db.Exec(`
        DELETE FROM favorites WHERE user_email = ? AND category = ? AND item_id = ?`,
		email, category, itemID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// FavoriteIDs returns the favorited item ids per category for a user.
func (s *Store) FavoriteIDs(email string) (map[string][]string, error) {
	rows, err := s.db.Query(`SELECT category, item_id FROM favorites WHERE user_email = ?`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var category, id string
		if err := rows.Scan(&category, &id); err != nil {
			return nil, err
		}
		out[category] = append(out[category], id)
	}
	return out, rows.Err()
}
