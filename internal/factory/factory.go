package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mdillard/todoapi/internal/dependencies/clock"
	"github.com/mdillard/todoapi/internal/services/auth"
	"github.com/mdillard/todoapi/internal/services/todo"
	"github.com/mdillard/todoapi/internal/storage"
	"github.com/mdillard/todoapi/internal/storage/memory"
	redisstorage "github.com/mdillard/todoapi/internal/storage/redis"
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
	Clock clock.Clock

	// Services
	AuthService    *auth.Service
	Guard          *auth.Guard
	TodoController *todo.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service.
	// TokenSecret is required; other zero fields fall back to defaults.
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
	if len(cfg.AuthConfig.TokenSecret) == 0 {
		return nil, errors.New("AuthConfig.TokenSecret is required")
	}

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

	return newWithDependencies(store, clk, cfg.AuthConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, authCfg auth.Config, logger *slog.Logger) *App {
	authService := auth.New(store, clk, authCfg, logger)
	guard := auth.NewGuard()
	todoController := todo.NewController(store, guard, clk, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		AuthService:    authService,
		Guard:          guard,
		TodoController: todoController,
	}
}
