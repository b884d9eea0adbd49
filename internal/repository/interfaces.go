package repository

import (
	"context"
	"errors"

	"emoticon-rest-api/internal/model"
)

var (
	// ErrDuplicateUsername is returned by Create when the username is taken.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrUserNotFound is returned by FindByUsername when no row matches.
	ErrUserNotFound = errors.New("user not found")
)

// UserRepository defines credential store access methods.
type UserRepository interface {
	// Create inserts a new user and returns it with its generated ID.
	Create(ctx context.Context, username, passwordHash string) (*model.User, error)

	// FindByUsername looks a user up by its unique username.
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// Close closes the repository connection.
	Close() error
}
