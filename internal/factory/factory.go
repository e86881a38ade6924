package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/inkfield/inkfield/internal/dependencies/clock"
	"github.com/inkfield/inkfield/internal/dependencies/keylock"
	"github.com/inkfield/inkfield/internal/dependencies/random"
	"github.com/inkfield/inkfield/internal/field"
	"github.com/inkfield/inkfield/internal/peer"
	"github.com/inkfield/inkfield/internal/services/auth"
	"github.com/inkfield/inkfield/internal/services/collision"
	"github.com/inkfield/inkfield/internal/services/scoring"
	"github.com/inkfield/inkfield/internal/services/session"
	"github.com/inkfield/inkfield/internal/services/shooting"
	"github.com/inkfield/inkfield/internal/storage"
	"github.com/inkfield/inkfield/internal/storage/memory"
	redisstorage "github.com/inkfield/inkfield/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Infrastructure
	Field field.Provider
	Locks *keylock.KeyLock
	Hub   *peer.Hub

	// Services
	CollisionService   *collision.Service
	ScoringService     *scoring.Service
	SessionController  *session.Controller
	ShootingController *shooting.Controller
	AuthService        *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// FieldBounds defines the playing field (optional)
	// If nil, defaults to field.DefaultBounds()
	FieldBounds *field.Bounds
	// CollisionConfig holds collision tuning (optional)
	// If zero value, defaults to collision.DefaultConfig()
	CollisionConfig collision.Config
	// ShootingConfig holds shooting tuning (optional)
	// If zero value, defaults to shooting.DefaultConfig()
	ShootingConfig shooting.Config
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, cfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *App {
	bounds := field.DefaultBounds()
	if cfg.FieldBounds != nil {
		bounds = *cfg.FieldBounds
	}
	fieldProvider := field.NewBounded(bounds)

	collisionCfg := cfg.CollisionConfig
	if collisionCfg == (collision.Config{}) {
		collisionCfg = collision.DefaultConfig()
	}
	shootingCfg := cfg.ShootingConfig
	if shootingCfg == (shooting.Config{}) {
		shootingCfg = shooting.DefaultConfig()
	}
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	locks := keylock.New()
	hub := peer.NewHub(logger)

	collisionService := collision.New(collisionCfg)
	scoringService := scoring.New()
	sessionController := session.NewController(store, scoringService, fieldProvider, clk, rnd, locks, hub, logger)
	shootingController := shooting.NewController(store, collisionService, fieldProvider, clk, rnd, locks, hub, shootingCfg, logger)
	authService := auth.New(store, clk, rnd, authCfg)

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		Field:              fieldProvider,
		Locks:              locks,
		Hub:                hub,
		CollisionService:   collisionService,
		ScoringService:     scoringService,
		SessionController:  sessionController,
		ShootingController: shootingController,
		AuthService:        authService,
	}
}

// Close releases resources held by the application
func (a *App) Close() error {
	a.Hub.Close()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
