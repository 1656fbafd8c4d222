package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"portfolio/internal/cache"
	"portfolio/internal/comments"
	"portfolio/internal/config"
	"portfolio/internal/email"
	"portfolio/internal/github"
	"portfolio/internal/storage"
	"portfolio/internal/subscribe"
)

// Deps are the already-constructed collaborators behind the API.
// Nil optional fields turn the matching endpoint into its
// "not configured" response rather than removing the route.
type Deps struct {
	Logger *slog.Logger

	Comments comments.Store

	Email            email.Sender
	ContactRecipient string

	Subscriber subscribe.Subscriber
	AudienceID string

	GitHub github.Fetcher

	// Cache and Storage are optional and only reported by /health when set.
	Cache         cache.Store
	Storage       storage.Service
	GalleryPrefix string

	AllowOrigins []string
}

// Server holds the dependencies for the HTTP server
type Server struct {
	deps Deps
}

// NewServer creates and configures the HTTP server
func NewServer(cfg *config.Config, deps Deps) *http.Server {
	s := &Server{deps: deps}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           s.RegisterRoutes(),
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	deps.Logger.Info("HTTP server configured", "addr", srv.Addr)
	return srv
}
