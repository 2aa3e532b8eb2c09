package factory

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mdillard/todoapi/internal/dependencies/mocks"
	"github.com/mdillard/todoapi/internal/services/auth"
	"github.com/mdillard/todoapi/internal/storage/memory"
	"github.com/mdillard/todoapi/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// TestAuthConfig returns an auth config with a fixed signing key and the
// cheapest bcrypt cost, so tests stay fast and deterministic
func TestAuthConfig() auth.Config {
	cfg := auth.DefaultConfig()
	cfg.TokenSecret = []byte("test-signing-key")
	cfg.BcryptCost = bcrypt.MinCost
	return cfg
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	app := newWithDependencies(store, mockClock, TestAuthConfig(), testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
