package auth

import (
	"errors"

	"github.com/mdillard/todoapi/internal/model"
)

// ErrNotOwner is returned when a user acts on a resource owned by someone
// else. The API layer surfaces it with the same shape as a missing resource
// so foreign resource ids cannot be probed.
var ErrNotOwner = errors.New("not the resource owner")

// Guard decides whether an authenticated user may act on an owned resource.
// Strict single-owner model: no roles, no delegation.
type Guard struct{}

// NewGuard creates a new Guard
func NewGuard() *Guard {
	return &Guard{}
}

// Authorize allows the operation iff userID owns the resource
func (g *Guard) Authorize(userID, ownerID model.UserID) error {
	if userID != ownerID {
		return ErrNotOwner
	}
	return nil
}
