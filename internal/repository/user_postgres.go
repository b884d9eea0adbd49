package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"emoticon-rest-api/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// PostgresUserRepository implements UserRepository using PostgreSQL via pgx.
type PostgresUserRepository struct {
	db *sql.DB
}

// NewPostgresUserRepository creates a new PostgreSQL user repository.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Create inserts a user and returns it with the generated ID.
func (r *PostgresUserRepository) Create(ctx context.Context, username, passwordHash string) (*model.User, error) {
	query := `INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id`

	user := &model.User{Username: username, PasswordHash: passwordHash}
	err := r.db.QueryRowContext(ctx, query, username, passwordHash).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// FindByUsername retrieves a user by username.
func (r *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT id, username, password_hash FROM users WHERE username = $1`

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

func (r *PostgresUserRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database connection.
func (r *PostgresUserRepository) Close() error {
	return r.db.Close()
}

// Ensure PostgresUserRepository implements UserRepository
var _ UserRepository = (*PostgresUserRepository)(nil)
