package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkfield/inkfield/internal/api"
	"github.com/inkfield/inkfield/internal/api/response"
	"github.com/inkfield/inkfield/internal/factory"
	"github.com/inkfield/inkfield/internal/services/auth"
	"github.com/inkfield/inkfield/internal/storage/memory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	storage *memory.Storage
	auth    *auth.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	router := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		AuthService:        app.AuthService,
		SessionController:  app.SessionController,
		ShootingController: app.ShootingController,
		Hub:                app.Hub,
		Clock:              app.Clock,
	})

	return &testServer{
		handler: router,
		storage: app.Storage.(*memory.Storage),
		auth:    app.AuthService,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestCreateGuestPlayer(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"display_name": "Alice"}
	rr := ts.request(http.MethodPost, "/api/v1/players/guest", body, "")

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.Equal(t, "Alice", resp.Profile.DisplayName)
	assert.True(t, resp.Profile.IsGuest)
	assert.NotEmpty(t, resp.SessionToken)
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	// Register
	registerBody := map[string]string{
		"username":     "alice",
		"password":     "secret123",
		"display_name": "Alice",
	}
	rr := ts.request(http.MethodPost, "/api/v1/players/register", registerBody, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var registerResp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &registerResp)
	require.NoError(t, err)
	assert.False(t, registerResp.Profile.IsGuest)

	// Registering the same username again fails
	rr = ts.request(http.MethodPost, "/api/v1/players/register", registerBody, "")
	assert.Equal(t, http.StatusConflict, rr.Code)

	// Login
	loginBody := map[string]string{
		"username": "alice",
		"password": "secret123",
	}
	rr = ts.request(http.MethodPost, "/api/v1/players/login", loginBody, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var loginResp response.AuthResponse
	err = json.Unmarshal(rr.Body.Bytes(), &loginResp)
	require.NoError(t, err)
	assert.Equal(t, registerResp.Profile.ID, loginResp.Profile.ID)
}

func TestGetMe(t *testing.T) {
	ts := newTestServer(t)

	token := createGuestPlayer(t, ts, "Bob")

	rr := ts.request(http.MethodGet, "/api/v1/players/me", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var meResp response.Profile
	err := json.Unmarshal(rr.Body.Bytes(), &meResp)
	require.NoError(t, err)
	assert.Equal(t, "Bob", meResp.DisplayName)
}

func TestUnauthorizedWithoutToken(t *testing.T) {
	ts := newTestServer(t)

	// Try to get /me without token
	rr := ts.request(http.MethodGet, "/api/v1/players/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Try to start a game without token
	rr = ts.request(http.MethodPost, "/api/v1/games", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestStartGameValidation(t *testing.T) {
	ts := newTestServer(t)
	token := createGuestPlayer(t, ts, "Alice")

	// Wrong participant count
	body := startGameBody()
	body["players"] = body["players"].([]map[string]any)[:1]
	rr := ts.request(http.MethodPost, "/api/v1/games", body, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Duplicate colors
	body = startGameBody()
	body["players"].([]map[string]any)[1]["color"] = "red"
	rr = ts.request(http.MethodPost, "/api/v1/games", body, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Spawn point off the field
	body = startGameBody()
	body["players"].([]map[string]any)[0]["position"] = map[string]float64{"x": 50, "y": 0, "z": 0}
	rr = ts.request(http.MethodPost, "/api/v1/games", body, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestFullGameFlow(t *testing.T) {
	ts := newTestServer(t)
	token := createGuestPlayer(t, ts, "Alice")

	// Start a game
	rr := ts.request(http.MethodPost, "/api/v1/games", startGameBody(), token)
	require.Equal(t, http.StatusCreated, rr.Code)

	var game response.GameSession
	err := json.Unmarshal(rr.Body.Bytes(), &game)
	require.NoError(t, err)
	assert.Equal(t, "active", game.Status)
	require.Len(t, game.Players, 2)
	assert.Greater(t, game.RemainingSeconds, 0.0)

	red := game.Players[0]
	blue := game.Players[1]

	// The game shows up in the active list
	rr = ts.request(http.MethodGet, "/api/v1/games", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var list response.GameSessionList
	err = json.Unmarshal(rr.Body.Bytes(), &list)
	require.NoError(t, err)
	require.Len(t, list.Sessions, 1)
	assert.Equal(t, game.ID, list.Sessions[0].ID)

	// Red shoots twice, far apart so nothing merges
	shot := shootInk(t, ts, token, game.ID, red.ID, -3, -3, 1.0)
	assert.Equal(t, red.ID, shot.Spot.OwnerID)
	assert.Empty(t, shot.Merged)

	shootInk(t, ts, token, game.ID, red.ID, 3, 3, 1.0)

	// Blue shoots once
	shootInk(t, ts, token, game.ID, blue.ID, 0, 3, 0.5)

	// A shot from a player id nobody has ever seen is a 404
	body := map[string]any{
		"player_id": "not-a-player",
		"position":  map[string]float64{"x": 0, "y": 0, "z": 0},
		"size":      0.5,
	}
	rr = ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/shots", body, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// Blue moves
	moveBody := map[string]any{
		"player_id": blue.ID,
		"position":  map[string]float64{"x": 1, "y": 0, "z": 1},
	}
	rr = ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/position", moveBody, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	// Results are unavailable while the game runs
	rr = ts.request(http.MethodGet, "/api/v1/games/"+game.ID+"/results", nil, token)
	assert.Equal(t, http.StatusConflict, rr.Code)

	// End the game
	rr = ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/end", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var ended response.GameSession
	err = json.Unmarshal(rr.Body.Bytes(), &ended)
	require.NoError(t, err)
	assert.Equal(t, "finished", ended.Status)

	// Ending twice is a conflict
	rr = ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/end", nil, token)
	assert.Equal(t, http.StatusConflict, rr.Code)

	// Results: red painted twice as much area as blue
	rr = ts.request(http.MethodGet, "/api/v1/games/"+game.ID+"/results", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var results response.GameResultList
	err = json.Unmarshal(rr.Body.Bytes(), &results)
	require.NoError(t, err)
	require.Len(t, results.Results, 2)

	assert.Equal(t, red.ID, results.Results[0].PlayerID)
	assert.Equal(t, 1, results.Results[0].Rank)
	assert.Equal(t, 2, results.Results[0].SpotCount)
	assert.Equal(t, blue.ID, results.Results[1].PlayerID)
	assert.Equal(t, 2, results.Results[1].Rank)
	assert.Greater(t, results.Results[0].Score, results.Results[1].Score)
}

func TestCancelGame(t *testing.T) {
	ts := newTestServer(t)
	token := createGuestPlayer(t, ts, "Alice")

	rr := ts.request(http.MethodPost, "/api/v1/games", startGameBody(), token)
	require.Equal(t, http.StatusCreated, rr.Code)

	var game response.GameSession
	err := json.Unmarshal(rr.Body.Bytes(), &game)
	require.NoError(t, err)

	rr = ts.request(http.MethodDelete, "/api/v1/games/"+game.ID, nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// A cancelled game never produces results
	rr = ts.request(http.MethodGet, "/api/v1/games/"+game.ID+"/results", nil, token)
	assert.Equal(t, http.StatusConflict, rr.Code)

	// Cancelling again is a conflict
	rr = ts.request(http.MethodDelete, "/api/v1/games/"+game.ID, nil, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestGetUnknownGame(t *testing.T) {
	ts := newTestServer(t)
	token := createGuestPlayer(t, ts, "Alice")

	rr := ts.request(http.MethodGet, "/api/v1/games/nope", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// Helper functions

func createGuestPlayer(t *testing.T, ts *testServer, displayName string) string {
	t.Helper()

	body := map[string]string{"display_name": displayName}
	rr := ts.request(http.MethodPost, "/api/v1/players/guest", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	return resp.SessionToken
}

func startGameBody() map[string]any {
	return map[string]any{
		"players": []map[string]any{
			{
				"name":     "Red",
				"color":    "red",
				"position": map[string]float64{"x": -4, "y": 0, "z": 0},
			},
			{
				"name":     "Blue",
				"color":    "blue",
				"position": map[string]float64{"x": 4, "y": 0, "z": 0},
			},
		},
		"duration_seconds": 180,
	}
}

func shootInk(t *testing.T, ts *testServer, token, gameID, playerID string, x, z, size float64) response.ShootResult {
	t.Helper()

	body := map[string]any{
		"player_id": playerID,
		"position":  map[string]float64{"x": x, "y": 0, "z": z},
		"size":      size,
	}
	rr := ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/shots", body, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.ShootResult
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}
