// Copyright (c) 2026 Apologia. All rights reserved.
// Author: tam.nguyendinh.vn@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.

The router exposes two distinct capability surfaces: the public, read-only
mobile feed under /api/sync, and the authenticated administrative CMS under
/api/v1. The asymmetry is deliberate and must stay visible in the routing
table rather than being hidden behind per-handler conditionals.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tdnguyen/apologia/internal/content/detail"
	"github.com/tdnguyen/apologia/internal/content/export"
	"github.com/tdnguyen/apologia/internal/content/religion"
	"github.com/tdnguyen/apologia/internal/content/topic"
	"github.com/tdnguyen/apologia/internal/platform/config"
	"github.com/tdnguyen/apologia/internal/platform/constants"
	"github.com/tdnguyen/apologia/internal/platform/middleware"
	"github.com/tdnguyen/apologia/internal/sync"
	"github.com/tdnguyen/apologia/internal/users/auth"
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

	// Auth handles operator sessions and account provisioning.
	Auth *auth.Handler

	// Religion, Topic, and Detail are the three content levels of the CMS.
	Religion *religion.Handler
	Topic    *topic.Handler
	Detail   *detail.Handler

	// Sync serves the public mobile feed and its operator tools.
	Sync *sync.Handler

	// Export produces the XLSX catalogue dump.
	Export *export.Handler
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

	// # Mobile Feed
	// /download is public; /status and /trigger are capability-gated inside.
	r.Mount("/api/sync", h.Sync.Routes())

	// # Administrative API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/religions", h.Religion.Routes())
		api.Mount("/topics", h.Topic.Routes())
		api.Mount("/details", h.Detail.Routes())
		api.Mount("/export", h.Export.Routes())
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
