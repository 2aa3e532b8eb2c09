package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mdillard/todoapi/internal/api/handler"
	"github.com/mdillard/todoapi/internal/api/middleware"
	"github.com/mdillard/todoapi/internal/services/auth"
	"github.com/mdillard/todoapi/internal/services/todo"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	TodoController *todo.Controller
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	todoHandler := handler.NewTodoHandler(cfg.TodoController)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no token required)
	api.HandleFunc("/auth/signup", authHandler.SignUp).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	// Protected user routes
	users := api.PathPrefix("/users").Subrouter()
	users.Use(authMiddleware)
	users.HandleFunc("/me", authHandler.GetMe).Methods(http.MethodGet)

	// Todo routes (all require auth)
	todos := api.PathPrefix("/todos").Subrouter()
	todos.Use(authMiddleware)
	todos.HandleFunc("", todoHandler.Create).Methods(http.MethodPost)
	todos.HandleFunc("", todoHandler.List).Methods(http.MethodGet)
	todos.HandleFunc("/{id}", todoHandler.Get).Methods(http.MethodGet)
	todos.HandleFunc("/{id}", todoHandler.Update).Methods(http.MethodPatch)
	todos.HandleFunc("/{id}", todoHandler.Delete).Methods(http.MethodDelete)
	todos.HandleFunc("/{id}/completed", todoHandler.SetCompleted).Methods(http.MethodPatch)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
