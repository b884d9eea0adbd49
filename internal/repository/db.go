package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// driverNames maps DB_TYPE values to database/sql driver names.
var driverNames = map[string]string{
	"postgres": "pgx",
	"mysql":    "mysql",
	"sqlite":   "sqlite",
}

// OpenDB opens and pings a connection pool for the given database type.
func OpenDB(ctx context.Context, dbType, dsn string) (*sql.DB, error) {
	driver, ok := driverNames[dbType]
	if !ok {
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	if dbType == "sqlite" {
		var err error
		if dsn, err = prepareSQLite(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", dbType, err)
	}

	if dbType == "sqlite" {
		db.SetMaxOpenConns(1) // SQLite only supports 1 writer
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(5 * time.Minute)
		db.SetConnMaxIdleTime(1 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", dbType, err)
	}

	return db, nil
}

// NewUserRepository returns the UserRepository implementation for dbType.
func NewUserRepository(dbType string, db *sql.DB) (UserRepository, error) {
	switch dbType {
	case "postgres":
		return NewPostgresUserRepository(db), nil
	case "mysql":
		return NewMySQLUserRepository(db), nil
	case "sqlite":
		return NewSQLiteUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
}

func prepareSQLite(path string) (string, error) {
	if strings.HasPrefix(path, ":memory:") {
		return path, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create sqlite directory: %w", err)
	}
	return path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", nil
}
