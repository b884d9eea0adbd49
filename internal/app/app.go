// Package app wires configuration, storage, services and HTTP transport
// into a runnable server.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"

	"emoticon-rest-api/internal/cache"
	"emoticon-rest-api/internal/config"
	"emoticon-rest-api/internal/handler"
	"emoticon-rest-api/internal/logging"
	"emoticon-rest-api/internal/middleware"
	"emoticon-rest-api/internal/repository"
	"emoticon-rest-api/internal/router"
	"emoticon-rest-api/internal/service"
	"emoticon-rest-api/internal/upstream"

	"golang.org/x/sync/errgroup"
)

// Version is reported by the health endpoint.
var Version = "dev"

// App owns every long-lived resource of the server.
type App struct {
	cfg    *config.Config
	log    logging.Logger
	db     *sql.DB
	store  cache.Store
	server *http.Server
}

// New opens the credential store and cache, applies migrations and builds
// the HTTP server. Call Close when done, even if Run was never called.
func New(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	db, err := openDatabase(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}
	a.db = db

	users, err := repository.NewUserRepository(cfg.Database.Type, db)
	if err != nil {
		a.Close()
		return nil, err
	}

	store, err := newStore(ctx, cfg.Cache)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.store = store
	log.Info(ctx, "cache store initialized", "type", cfg.Cache.Type)

	tokens, err := service.NewTokenService(service.TokenConfig{
		Secret:     cfg.Auth.JWTSecret,
		Algorithm:  cfg.Auth.JWTAlgorithm,
		Expiration: cfg.Auth.Expiration(),
	})
	if err != nil {
		a.Close()
		return nil, err
	}

	fetcher := upstream.NewHTTPFetcher(cfg.Emoticon.BaseURL, cfg.Emoticon.UserAgent, cfg.Emoticon.Timeout)

	authService := service.NewAuthService(users, service.NewBcryptHasher(0), tokens, log)
	emoticonService := service.NewEmoticonService(store, fetcher, log)

	r := router.New(router.Config{
		HealthHandler: handler.NewHealthHandler(Version, log,
			handler.Dependency{Name: "database", Pinger: users},
			handler.Dependency{Name: "cache", Pinger: store},
		),
		AuthHandler:     handler.NewAuthHandler(authService, log),
		EmoticonHandler: handler.NewEmoticonHandler(emoticonService, log),
		AuthMiddleware:  middleware.NewAuthMiddleware(authService, log),
		Logger:          log,
	})

	a.server = &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return a, nil
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run listens on the configured address and serves until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.server.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Info(ctx, "server listening", "addr", ln.Addr().String())
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.log.Info(context.Background(), "shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Close releases the database and cache connections.
func (a *App) Close() error {
	var errs []error
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}

// Migrate applies schema migrations to the configured database and exits.
func Migrate(ctx context.Context, cfg config.DatabaseConfig, log logging.Logger) error {
	db, err := openDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}
	return db.Close()
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig, log logging.Logger) (*sql.DB, error) {
	db, err := repository.OpenDB(ctx, cfg.Type, cfg.DSN())
	if err != nil {
		return nil, err
	}

	if err := repository.Migrate(ctx, db, cfg.Type, log); err != nil {
		db.Close()
		return nil, err
	}

	log.Info(ctx, "database ready", "type", cfg.Type)
	return db, nil
}

func newStore(ctx context.Context, cfg config.CacheConfig) (cache.Store, error) {
	switch cfg.Type {
	case "memory":
		return cache.NewMemoryStore(), nil
	case "redis":
		return cache.NewRedisStoreFromURL(ctx, cfg.RedisURL)
	default:
		return nil, fmt.Errorf("unsupported cache type %q", cfg.Type)
	}
}
