package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/portfoliobuilder/backend/internal/handlers"
	"github.com/portfoliobuilder/backend/internal/media"
	"github.com/portfoliobuilder/backend/internal/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

const (
	ipRequestsPerMinute = 100
	// a project form: cover image plus up to 20 gallery images
	maxMediaFieldsPerForm = 21
)

type routeRegistrar interface {
	RegisterRoutes(chi.Router)
}

// routerConfig carries everything newRouter mounts
type routerConfig struct {
	Logger         *zap.Logger
	AllowedOrigins []string
	SwaggerURL     string
	Health         func(ctx context.Context) error
	Metrics        http.Handler
	AuthMw         func(http.Handler) http.Handler
	APIKeyMw       func(http.Handler) http.Handler
	Upload         *handlers.UploadHandler
	Portfolio      *handlers.PortfolioHandler
	Protected      []routeRegistrar
}

// newRouter builds the HTTP routes. The object store routes stay outside the
// per-IP limiter since the API uploads through them from its own address;
// writes there require the API key.
func newRouter(cfg routerConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(cfg.Logger))
	r.Use(middleware.RecoveryMiddleware(cfg.Logger))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.RequestSizeLimitMiddleware(maxRequestSize))

	// Object store endpoint
	cfg.Upload.RegisterRoutes(r, cfg.APIKeyMw)

	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(ipRequestsPerMinute, time.Minute))

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			if err := cfg.Health(r.Context()); err != nil {
				http.Error(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		})
		r.Handle("/metrics", cfg.Metrics)

		// Swagger documentation
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(cfg.SwaggerURL)))

		r.Route("/api/v1", func(r chi.Router) {
			cfg.Portfolio.RegisterRoutes(r)

			r.Group(func(r chi.Router) {
				r.Use(cfg.AuthMw)
				for _, h := range cfg.Protected {
					h.RegisterRoutes(r)
				}
			})
		})
	})

	return r
}

// serverWriteTimeout covers resolving every media field of the largest form
// plus the database writes.
func serverWriteTimeout(uploadTimeout time.Duration) time.Duration {
	return media.ResolveBudget(maxMediaFieldsPerForm, uploadTimeout) + 30*time.Second
}
