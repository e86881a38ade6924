package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/inkfield/inkfield/internal/api/handler"
	"github.com/inkfield/inkfield/internal/api/middleware"
	"github.com/inkfield/inkfield/internal/dependencies/clock"
	"github.com/inkfield/inkfield/internal/peer"
	"github.com/inkfield/inkfield/internal/services/auth"
	"github.com/inkfield/inkfield/internal/services/session"
	"github.com/inkfield/inkfield/internal/services/shooting"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	AuthService        auth.ServiceInterface
	SessionController  session.ControllerInterface
	ShootingController shooting.ControllerInterface
	Hub                *peer.Hub
	Clock              clock.Clock
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	gameHandler := handler.NewGameHandler(cfg.SessionController, cfg.ShootingController, cfg.Clock)
	eventsHandler := handler.NewEventsHandler(cfg.Hub)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating profiles/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)

	// Game routes (all require auth)
	games := api.PathPrefix("/games").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("", gameHandler.Start).Methods(http.MethodPost)
	games.HandleFunc("", gameHandler.List).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.Cancel).Methods(http.MethodDelete)
	games.HandleFunc("/{id}/shots", gameHandler.Shoot).Methods(http.MethodPost)
	games.HandleFunc("/{id}/position", gameHandler.Move).Methods(http.MethodPost)
	games.HandleFunc("/{id}/end", gameHandler.End).Methods(http.MethodPost)
	games.HandleFunc("/{id}/results", gameHandler.Results).Methods(http.MethodGet)
	games.HandleFunc("/{id}/events", eventsHandler.Stream).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
