package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mdillard/todoapi/internal/model"
)

func TestGuardAllowsOwner(t *testing.T) {
	g := NewGuard()
	assert.NoError(t, g.Authorize(model.UserID(1), model.UserID(1)))
}

func TestGuardDeniesNonOwner(t *testing.T) {
	g := NewGuard()
	assert.ErrorIs(t, g.Authorize(model.UserID(1), model.UserID(2)), ErrNotOwner)
	assert.ErrorIs(t, g.Authorize(model.UserID(2), model.UserID(1)), ErrNotOwner)
}
