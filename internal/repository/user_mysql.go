package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"emoticon-rest-api/internal/model"

	"github.com/go-sql-driver/mysql"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// MySQLUserRepository implements UserRepository using MySQL.
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQL user repository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

// Create inserts a user and returns it with the generated ID.
func (r *MySQLUserRepository) Create(ctx context.Context, username, passwordHash string) (*model.User, error) {
	query := `INSERT INTO users (username, password_hash) VALUES (?, ?)`

	result, err := r.db.ExecContext(ctx, query, username, passwordHash)
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
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
func (r *MySQLUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT id, username, password_hash FROM users WHERE username = ? LIMIT 1`

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

func (r *MySQLUserRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database connection.
func (r *MySQLUserRepository) Close() error {
	return r.db.Close()
}

// Ensure MySQLUserRepository implements UserRepository
var _ UserRepository = (*MySQLUserRepository)(nil)
