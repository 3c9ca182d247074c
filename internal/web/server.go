// Package web provides the HTTP server and handlers for the census service.
package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/census/internal/config"
	"github.com/JonMunkholm/census/internal/core"
	mw "github.com/JonMunkholm/census/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
)

// Server is the HTTP server for one census session.
type Server struct {
	analyser *core.Analyser
	limiter  *core.LoadLimiter
	cfg      *config.Config
	router   *chi.Mux
	server   *http.Server
}

// NewServer creates a Server answering for analyser.
func NewServer(analyser *core.Analyser, cfg *config.Config) *Server {
	s := &Server{
		analyser: analyser,
		limiter:  core.NewLoadLimiter(cfg.Input.MaxConcurrent, cfg.Input.MaxWaitTime),
		cfg:      cfg,
		router:   chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(mw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(securityHeaders)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleDashboard)
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		// Queries against the current session
		r.Get("/census/status", s.handleStatus)
		r.Get("/census/fields", s.handleFields)
		r.Get("/census/sorted", s.handleSorted)
		r.Get("/views", s.handleListViews)

		// Loads, exports and comparisons
		r.Group(func(r chi.Router) {
			r.Use(mw.APIKeyAuth(&s.cfg.Security))

			r.Post("/census/export", s.handleExportOrdering)
			r.Post("/census/{country}", s.handleLoad)
			r.Post("/census/{country}/load-default", s.handleLoadDefault)
			r.Post("/census/{country}/preview", s.handlePreview)
			r.Post("/views/{key}/export", s.handleExportView)
			r.Post("/compare", s.handleCompare)
		})
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("server listening", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown waits for in-flight loads, then gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if active := s.limiter.Active(); active > 0 {
		slog.Info("waiting for loads to complete", "active", active)
		if err := s.limiter.WaitForDrain(ctx); err != nil {
			slog.Warn("loads did not complete in time", "error", err)
		}
	}
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// writeJSON encodes v as JSON and writes it with status.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}

// writeRawJSON writes an already encoded JSON document.
func writeRawJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		slog.Error("write response", "error", err)
	}
}

// acquireLoad takes a load slot, answering the request itself on failure.
func (s *Server) acquireLoad(w http.ResponseWriter, r *http.Request) bool {
	if err := s.limiter.Acquire(r.Context()); err != nil {
		s.respondError(w, r, err)
		return false
	}
	return true
}
