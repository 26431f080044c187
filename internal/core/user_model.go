package core

import (
	"context"
	"time"
)

// User is an authenticated admin-dashboard user.
type User struct {
	ID           int
	Username     string
	Email        string
	PasswordHash string
	Role         string // "admin" or "sales"
	IsActive     bool
	CreatedAt    time.Time
}

// UserService provides user lookup and credential verification.
type UserService interface {
	// GetByUsername finds an active user by username.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetByID returns a user by primary key.
	GetByID(ctx context.Context, userID int) (*User, error)

	// Authenticate verifies username + password and returns the user on
	// success. The error does not distinguish unknown user from bad password.
	Authenticate(ctx context.Context, username, password string) (*User, error)
}
