package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"emoticon-rest-api/internal/model"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteUserRepository implements UserRepository using SQLite.
// Meant for local development and tests.
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewSQLiteUserRepository creates a new SQLite user repository.
func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

// Create inserts a user and returns it with the generated ID.
func (r *SQLiteUserRepository) Create(ctx context.Context, username, passwordHash string) (*model.User, error) {
	query := `INSERT INTO users (username, password_hash) VALUES (?, ?)`

	result, err := r.db.ExecContext(ctx, query, username, passwordHash)
	if err != nil {
		var liteErr *sqlite.Error
		if errors.As(err, &liteErr) && liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read user id: %w", err)
	}

	return &model.User{ID: id, Username: username, PasswordHash: passwordHash}, nil
}

// FindByUsername retrieves a user by username.
func (r *SQLiteUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT id, username, password_hash FROM users WHERE username = ?`

	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

func (r *SQLiteUserRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database connection.
func (r *SQLiteUserRepository) Close() error {
	return r.db.Close()
}

// Ensure SQLiteUserRepository implements UserRepository
var _ UserRepository = (*SQLiteUserRepository)(nil)
