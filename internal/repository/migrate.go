package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"emoticon-rest-api/internal/logging"
	"emoticon-rest-api/internal/repository/migrations"

	"github.com/pressly/goose/v3"
)

// gooseDialects maps DB_TYPE values to goose dialect names.
// Migration files live in a directory named after the DB_TYPE.
var gooseDialects = map[string]string{
	"postgres": "postgres",
	"mysql":    "mysql",
	"sqlite":   "sqlite3",
}

// gooseLogger routes goose output through the structured logger.
type gooseLogger struct {
	ctx context.Context
	log logging.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info(l.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Error(l.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)))
	os.Exit(1)
}

// Migrate applies all pending schema migrations for dbType.
func Migrate(ctx context.Context, db *sql.DB, dbType string, log logging.Logger) error {
	dialect, ok := gooseDialects[dbType]
	if !ok {
		return fmt.Errorf("unsupported database type %q", dbType)
	}

	goose.SetLogger(gooseLogger{ctx: ctx, log: log.With("component", "migrations")})
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, dbType); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
