package router

import (
	"net/http"

	"emoticon-rest-api/internal/handler"
	"emoticon-rest-api/internal/logging"
	"emoticon-rest-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	HealthHandler   *handler.HealthHandler
	AuthHandler     *handler.AuthHandler
	EmoticonHandler *handler.EmoticonHandler
	AuthMiddleware  func(http.Handler) http.Handler
	Logger          logging.Logger
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "WWW-Authenticate"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// PUBLIC routes
	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.Health)
		r.Get("/ready", cfg.HealthHandler.Ready)
	}

	if cfg.AuthHandler != nil {
		r.Post("/auth/sign-up", cfg.AuthHandler.SignUp)
		r.Post("/auth/sign-in", cfg.AuthHandler.SignIn)
	}

	// AUTHENTICATED routes
	r.Group(func(r chi.Router) {
		if cfg.AuthMiddleware != nil {
			r.Use(cfg.AuthMiddleware)
		}

		if cfg.AuthHandler != nil {
			r.Get("/auth/user", cfg.AuthHandler.User)
		}

		if cfg.EmoticonHandler != nil {
			r.Get("/emoticon", cfg.EmoticonHandler.Get)
			r.Get("/emoticon/", cfg.EmoticonHandler.Get)
		}
	})

	return r
}
