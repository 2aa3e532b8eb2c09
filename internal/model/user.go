package model

import "time"

// UserID uniquely identifies a user across the system
type UserID int64

// User represents a registered account.
// PasswordHash is a bcrypt digest; the plaintext password is never stored.
// CreatedAt is assigned by the server at sign-up and never changes.
type User struct {
	ID           UserID
	Username     string // login username (unique, immutable)
	PasswordHash string
	Email        string
	Name         string // display name
	CreatedAt    time.Time
}
