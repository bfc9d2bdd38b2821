// Copyright (c) 2026 Inkshelf. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/inkshelf/inkshelf/internal/contact"
	"github.com/inkshelf/inkshelf/internal/core/bin"
	"github.com/inkshelf/inkshelf/internal/core/book"
	"github.com/inkshelf/inkshelf/internal/core/genre"
	"github.com/inkshelf/inkshelf/internal/core/series"
	"github.com/inkshelf/inkshelf/internal/core/wishlist"
	"github.com/inkshelf/inkshelf/internal/dashboard"
	"github.com/inkshelf/inkshelf/internal/metadata"
	"github.com/inkshelf/inkshelf/internal/platform/config"
	"github.com/inkshelf/inkshelf/internal/platform/constants"
	"github.com/inkshelf/inkshelf/internal/platform/middleware"
	"github.com/inkshelf/inkshelf/internal/prefs"
	"github.com/inkshelf/inkshelf/internal/suggest"
	"github.com/inkshelf/inkshelf/internal/users/auth"
	"github.com/inkshelf/inkshelf/internal/widget"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the authentication lifecycle and browser sessions.
	Auth *auth.Handler

	// Book handles the catalogue: books, read history, ratings, notes.
	Book *book.Handler

	// Genre manages genre labels and their denormalized book counts.
	Genre *genre.Handler

	// Series manages series and their expected-entry planning.
	Series *series.Handler

	// Wishlist manages wanted books and the purchase flow.
	Wishlist *wishlist.Handler

	// Bin manages soft-deleted books awaiting restore or purge.
	Bin *bin.Handler

	// Dashboard serves the aggregate library overview.
	Dashboard *dashboard.Handler

	// Suggest serves typeahead sources for authors, genres, and series.
	Suggest *suggest.Handler

	// Widget manages the dashboard widget layout.
	Widget *widget.Handler

	// Prefs manages per-user preference keys.
	Prefs *prefs.Handler

	// Metadata proxies external book-catalogue lookups.
	Metadata *metadata.Handler

	// Contact handles the public contact form.
	Contact *contact.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Page-Shell API
	// The browser session cookie and the contact form live outside the
	// versioned prefix: the web client treats them as part of the page
	// shell rather than the resource API.
	r.Mount("/api/auth", h.Auth.SessionRoutes())
	r.Route("/api/contact", h.Contact.RegisterRoutes)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())

		// Everything below requires an authenticated user.
		api.Group(func(protected chi.Router) {
			protected.Use(middleware.RequireAuth)

			protected.Route("/books", h.Book.RegisterRoutes)
			protected.Route("/genres", h.Genre.RegisterRoutes)
			protected.Route("/series", h.Series.RegisterRoutes)
			protected.Route("/wishlist", h.Wishlist.RegisterRoutes)
			protected.Route("/bin", h.Bin.RegisterRoutes)
			protected.Route("/dashboard", h.Dashboard.RegisterRoutes)
			protected.Route("/suggest", h.Suggest.RegisterRoutes)
			protected.Route("/widgets", h.Widget.RegisterRoutes)
			protected.Route("/prefs", h.Prefs.RegisterRoutes)
			protected.Route("/metadata", h.Metadata.RegisterRoutes)
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
