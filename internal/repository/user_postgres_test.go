package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresRepoWithMock(t *testing.T) (*PostgresUserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresUserRepository(db), mock
}

const (
	pgInsertQuery = `^INSERT INTO users \(username, password_hash\) VALUES \(\$1, \$2\) RETURNING id$`
	pgSelectQuery = `^SELECT id, username, password_hash FROM users WHERE username = \$1$`
)

func TestPostgresCreate_Success(t *testing.T) {
	repo, mock := newPostgresRepoWithMock(t)

	mock.ExpectQuery(pgInsertQuery).
		WithArgs("alice", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	u, err := repo.Create(context.Background(), "alice", "hash")
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "hash", u.PasswordHash)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreate_UniqueViolation(t *testing.T) {
	repo, mock := newPostgresRepoWithMock(t)

	mock.ExpectQuery(pgInsertQuery).
		WithArgs("alice", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	_, err := repo.Create(context.Background(), "alice", "hash")
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestPostgresCreate_OtherError(t *testing.T) {
	repo, mock := newPostgresRepoWithMock(t)

	mock.ExpectQuery(pgInsertQuery).
		WithArgs("alice", "hash").
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), "alice", "hash")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateUsername)
	assert.Contains(t, err.Error(), "db down")
}

func TestPostgresFindByUsername(t *testing.T) {
	repo, mock := newPostgresRepoWithMock(t)

	mock.ExpectQuery(pgSelectQuery).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash"}).AddRow(int64(3), "alice", "hash"))

	u, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(3), u.ID)
	assert.Equal(t, "hash", u.PasswordHash)
}

func TestPostgresFindByUsername_NotFound(t *testing.T) {
	repo, mock := newPostgresRepoWithMock(t)

	mock.ExpectQuery(pgSelectQuery).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
