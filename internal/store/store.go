package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a queried record does not exist.
var ErrNotFound = errors.New("not found")

// User is a registered account created through the REST flow. Its
// identity token links the account to the chat identity store, so a
// WebSocket identify with that token restores the account's name.
type User struct {
	ID            int64
	Username      string
	PasswordHash  string
	IdentityToken string
	CreatedAt     time.Time
}

// UserStore handles account persistence.
type UserStore interface {
	// CreateUser creates a new account with a hashed password and a
	// pre-minted identity token.
	CreateUser(ctx context.Context, username, passwordHash, identityToken string) (*User, error)

	// GetUserByUsername retrieves an account by username.
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}

// Store aggregates the storage interfaces.
type Store interface {
	UserStore

	// Close closes the underlying database connection.
	Close() error
}
