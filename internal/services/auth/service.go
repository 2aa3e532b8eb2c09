package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mdillard/todoapi/internal/dependencies/clock"
	"github.com/mdillard/todoapi/internal/model"
	"github.com/mdillard/todoapi/internal/storage"
)

// ErrInvalidCredentials is returned for both an unknown username and a wrong
// password, so login failures never reveal whether an account exists
var ErrInvalidCredentials = errors.New("invalid credentials")

// Validation limits
const (
	maxUsernameLen = 30
	maxNameLen     = 30
	minPasswordLen = 8
)

// ValidationError reports a malformed sign-up field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Token is a minted bearer token
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Config holds configuration for the auth service
type Config struct {
	// TokenSecret is the HS256 signing key, loaded once at process start
	// and read-only afterwards. Rotating it invalidates all outstanding
	// tokens.
	TokenSecret []byte
	// TokenTTL is how long issued tokens stay valid
	TokenTTL time.Duration
	// TokenLeeway absorbs clock drift across nodes when validating
	// issued-at; zero tolerates no drift
	TokenLeeway time.Duration
	// BcryptCost is the password hashing cost; zero selects the default
	BcryptCost int
}

// DefaultConfig returns default auth configuration (without a signing key)
func DefaultConfig() Config {
	return Config{
		TokenTTL: time.Hour,
	}
}

// Service handles sign-up, login and bearer-token authentication
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	hasher  *Hasher
	codec   *TokenCodec
	logger  *slog.Logger
}

// New creates a new auth Service
func New(store storage.Storage, clk clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = DefaultConfig().TokenTTL
	}
	return &Service{
		storage: store,
		clock:   clk,
		hasher:  NewHasher(cfg.BcryptCost),
		codec:   NewTokenCodec(cfg.TokenSecret, cfg.TokenTTL, cfg.TokenLeeway),
		logger:  logger,
	}
}

// SignUp registers a new account and returns the created user.
// CreatedAt is always server-assigned; storage enforces username uniqueness
// and propagates model.ErrUsernameExists unchanged.
func (s *Service) SignUp(ctx context.Context, username, password, email, name string) (*model.User, error) {
	if err := validateSignUp(username, password, email, name); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		Name:         name,
		CreatedAt:    s.clock.Now(),
	}

	created, err := s.storage.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user signed up",
		slog.Int64("user_id", int64(created.ID)),
		slog.String("username", created.Username),
	)
	return created, nil
}

// Login verifies credentials and mints a bearer token
func (s *Service) Login(ctx context.Context, username, password string) (*Token, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	value, expiresAt, err := s.codec.Encode(user.ID, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to mint token: %w", err)
	}

	return &Token{Value: value, ExpiresAt: expiresAt}, nil
}

// Authenticate decodes a bearer token and loads the subject user
func (s *Service) Authenticate(ctx context.Context, tokenString string) (*model.User, error) {
	userID, err := s.codec.Decode(tokenString, s.clock.Now())
	if err != nil {
		return nil, err
	}

	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			// A subject that no longer exists must be indistinguishable
			// from a bad token
			return nil, ErrTokenMalformed
		}
		return nil, err
	}
	return user, nil
}

func validateSignUp(username, password, email, name string) error {
	if username == "" {
		return &ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if len(username) > maxUsernameLen {
		return &ValidationError{Field: "username", Reason: fmt.Sprintf("must be at most %d characters", maxUsernameLen)}
	}
	if len(password) < minPasswordLen {
		return &ValidationError{Field: "password", Reason: fmt.Sprintf("must be at least %d characters", minPasswordLen)}
	}
	if !validEmail(email) {
		return &ValidationError{Field: "email", Reason: "must be a valid email address"}
	}
	if name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if len(name) > maxNameLen {
		return &ValidationError{Field: "name", Reason: fmt.Sprintf("must be at most %d characters", maxNameLen)}
	}
	return nil
}

// validEmail is a structural check only: one "@" with a non-empty local
// part and domain. Verifying deliverability is not this service's job.
func validEmail(email string) bool {
	if email == "" || strings.Count(email, "@") != 1 {
		return false
	}
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}
