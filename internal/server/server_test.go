// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"errors"
	"log"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"

	"github.com/fitmate/fitmate-tui/internal/api"
	"github.com/fitmate/fitmate-tui/internal/auth"
	"github.com/fitmate/fitmate-tui/internal/model"
)

func apiMeal(title string) model.Meal {
	return model.Meal{Title: title, Calories: 500}
}

func apiTip(title string, images ...string) model.Tip {
	return model.Tip{Title: title, Content: "Keep a bottle on your desk.", ImageURLs: images}
}

// newTestServer starts an in-memory server and a client pointed at it.
func newTestServer(t *testing.T) (*Server, *api.Client) {
	t.Helper()

	srv, err := New(Config{DBPath: ":memory:", Seed: true}, log.New(os.Stderr, "test ", 0))
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })

	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	client := api.NewClientWithConfig(&api.ClientConfig{BaseURL: ts.URL, Timeout: 5 * time.Second})
	return srv, client
}

// currentOTP computes the code the server just issued.
func currentOTP(t *testing.T, srv *Server, email string) string {
	t.Helper()
	rec, err := srv.store.GetUser(email)
	require.NoError(t, err)
	code, err := totp.GenerateCode(rec.OTPSecret, time.Now())
	require.NoError(t, err)
	return code
}

// =============================================================================
// AUTH FLOW
// =============================================================================

func TestRegisterVerifyLoginRoundTrip(t *testing.T) {
	srv, client := newTestServer(t)
	ctx := context.Background()

	user, err := client.Register(ctx, api.RegisterRequest{
		Name: "Amel", Email: "amel@fitmate.dev", Password: "hunter22",
	})
	require.NoError(t, err)
	require.False(t, user.IsVerified)

	// Login before verification re-issues a code and refuses.
	_, err = client.Login(ctx, api.LoginRequest{Email: "amel@fitmate.dev", Password: "hunter22"})
	var remote *api.RemoteError
	require.ErrorAs(t, err, &remote)
	require.Equal(t, api.CodeUnverified, remote.Code)

	verified, err := client.VerifyOTP(ctx, "amel@fitmate.dev", currentOTP(t, srv, "amel@fitmate.dev"))
	require.NoError(t, err)
	require.True(t, verified.IsVerified)

	logged, err := client.Login(ctx, api.LoginRequest{Email: "amel@fitmate.dev", Password: "hunter22"})
	require.NoError(t, err)
	require.Equal(t, "amel@fitmate.dev", logged.Email)
	require.NotEmpty(t, logged.Role)
}

func TestWrongPasswordRejected(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	_, err := client.Register(ctx, api.RegisterRequest{
		Name: "Amel", Email: "amel@fitmate.dev", Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = client.Login(ctx, api.LoginRequest{Email: "amel@fitmate.dev", Password: "wrong"})
	var remote *api.RemoteError
	require.ErrorAs(t, err, &remote)
	require.Equal(t, api.CodeUnauthorized, remote.Code)

	// Unknown accounts get the same answer as wrong passwords.
	_, err = client.Login(ctx, api.LoginRequest{Email: "ghost@fitmate.dev", Password: "x"})
	require.ErrorAs(t, err, &remote)
	require.Equal(t, api.CodeUnauthorized, remote.Code)
}

func TestThreeFailedCodesBlockTheAccount(t *testing.T) {
	srv, client := newTestServer(t)
	ctx := context.Background()

	_, err := client.Register(ctx, api.RegisterRequest{
		Name: "Amel", Email: "amel@fitmate.dev", Password: "hunter22",
	})
	require.NoError(t, err)

	var remote *api.RemoteError
	for i := 1; i <= maxOTPAttempts; i++ {
		_, err = client.VerifyOTP(ctx, "amel@fitmate.dev", "000000")
		require.ErrorAs(t, err, &remote)
		if i < maxOTPAttempts {
			require.Equal(t, api.CodeInvalidOTP, remote.Code, "attempt %d", i)
		} else {
			require.Equal(t, api.CodeBlocked, remote.Code)
		}
	}
	require.True(t, auth.IsBlocked(err), "client must recognize the block")

	// Even the correct code is refused once blocked.
	_, err = client.VerifyOTP(ctx, "amel@fitmate.dev", currentOTP(t, srv, "amel@fitmate.dev"))
	require.ErrorAs(t, err, &remote)
	require.Equal(t, api.CodeBlocked, remote.Code)

	// So is login.
	_, err = client.Login(ctx, api.LoginRequest{Email: "amel@fitmate.dev", Password: "hunter22"})
	require.ErrorAs(t, err, &remote)
	require.Equal(t, api.CodeBlocked, remote.Code)
}

func TestResendKeepsAccountUsable(t *testing.T) {
	srv, client := newTestServer(t)
	ctx := context.Background()

	_, err := client.Register(ctx, api.RegisterRequest{
		Name: "Amel", Email: "amel@fitmate.dev", Password: "hunter22",
	})
	require.NoError(t, err)

	require.NoError(t, client.ResendOTP(ctx, "amel@fitmate.dev"))

	_, err = client.VerifyOTP(ctx, "amel@fitmate.dev", currentOTP(t, srv, "amel@fitmate.dev"))
	require.NoError(t, err)
}

func TestDuplicateRegistrationRejected(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	_, err := client.Register(ctx, api.RegisterRequest{
		Name: "Amel", Email: "amel@fitmate.dev", Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = client.Register(ctx, api.RegisterRequest{
		Name: "Imposter", Email: "amel@fitmate.dev", Password: "other",
	})
	var remote *api.RemoteError
	require.ErrorAs(t, err, &remote)
	require.Equal(t, "CONFLICT", remote.Code)
}

// =============================================================================
// CHAT
// =============================================================================

func TestChatAnswersWithSuggestions(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	reply, err := client.SendChat(ctx, "amel@fitmate.dev", "plan a workout for me")
	require.NoError(t, err)
	require.NotEmpty(t, reply.Message.Content)
	require.NotEmpty(t, reply.Suggestions)

	suggestions, err := client.GetSuggestions(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)
}

// =============================================================================
// FAVORITES
// =============================================================================

func TestFavoritesRoundTrip(t *testing.T) {
	srv, client := newTestServer(t)
	ctx := context.Background()
	const email = "amel@fitmate.dev"

	require.NoError(t, srv.store.AddFavorite(email, categoryWorkout, "w_hiit_20"))
	require.NoError(t, srv.store.AddFavorite(email, categoryMeal, "m_protein_bowl"))
	require.NoError(t, srv.store.AddFavorite(email, categoryTip, "t_sleep"))

	groups, err := client.GetFavorites(ctx, email)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Workouts, 1)
	require.Len(t, groups[0].Meals, 1)
	require.Len(t, groups[0].Tips, 1)
	require.Equal(t, "20-Minute HIIT", groups[0].Workouts[0].Title)

	err = client.RemoveFavorite(ctx, api.RemoveFavoriteRequest{Email: email, MealID: "m_protein_bowl"})
	require.NoError(t, err)

	groups, err = client.GetFavorites(ctx, email)
	require.NoError(t, err)
	require.Empty(t, groups[0].Meals)
	require.Len(t, groups[0].Workouts, 1, "other categories must survive")

	// Removing it again is a defined failure, not a crash.
	err = client.RemoveFavorite(ctx, api.RemoveFavoriteRequest{Email: email, MealID: "m_protein_bowl"})
	var remote *api.RemoteError
	require.ErrorAs(t, err, &remote)
	require.Equal(t, api.CodeNotFound, remote.Code)
}

// =============================================================================
// CATALOG
// =============================================================================

func TestMealCRUD(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	created, err := client.CreateMeal(ctx, apiMeal("Tofu Stir-fry"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	created.Description = "Tofu, rice and vegetables"
	updated, err := client.UpdateMeal(ctx, created)
	require.NoError(t, err)
	require.Equal(t, "Tofu, rice and vegetables", updated.Description)

	require.NoError(t, client.DeleteMeal(ctx, created.ID))

	err = client.DeleteMeal(ctx, created.ID)
	var remote *api.RemoteError
	require.True(t, errors.As(err, &remote) && remote.Code == api.CodeNotFound)
}

func TestTipImagesSurviveStorage(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	tip, err := client.CreateTip(ctx, apiTip("Hydrate", "img1.png", "img2.png"))
	require.NoError(t, err)

	tips, err := client.ListTips(ctx)
	require.NoError(t, err)
	for _, got := range tips {
		if got.ID == tip.ID {
			require.Equal(t, []string{"img1.png", "img2.png"}, got.ImageURLs)
			return
		}
	}
	t.Fatal("created tip not listed")
}
