// Package web provides the HTTP API for rendering tables and managing
// drop-rows steps.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/droprows/internal/config"
	"github.com/JonMunkholm/droprows/internal/core"
	"github.com/JonMunkholm/droprows/internal/i18n"
	mw "github.com/JonMunkholm/droprows/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP server.
type Server struct {
	service *core.Service
	catalog *i18n.Catalog
	cfg     *config.Config
	limiter *rateLimiter

	router *chi.Mux
	server *http.Server
}

// NewServer wires routes and middleware. Call Close when done to stop the
// rate limiter's cleanup goroutine.
func NewServer(service *core.Service, catalog *i18n.Catalog, cfg *config.Config) *Server {
	s := &Server{
		service: service,
		catalog: catalog,
		cfg:     cfg,
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(mw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(securityHeaders)
	s.router.Use(withClient)

	if s.cfg.Rate.Enabled {
		s.limiter = newRateLimiter(s.cfg.Rate.RequestsPerMinute, rateWindow)
		s.router.Use(s.limiter.middleware(s.respondError))
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(s.cfg.Security, s.respondError))

		r.Post("/render", s.handleRender)

		r.Route("/steps", func(r chi.Router) {
			r.Get("/", s.handleListSteps)
			r.Post("/", s.handleCreateStep)
			r.Get("/{id}", s.handleGetStep)
			r.Put("/{id}", s.handleUpdateStep)
			r.Delete("/{id}", s.handleDeleteStep)
			r.Post("/{id}/select", s.handleSelectRows)
			r.Post("/{id}/render", s.handleRenderStep)
		})
	})
}

// Start listens on addr until Shutdown.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("server starting", "addr", addr)
	return s.server.ListenAndServe()
}

// Shutdown stops accepting connections, then waits for in-flight renders.
func (s *Server) Shutdown(ctx context.Context) error {
	defer s.Close()

	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return err
		}
	}
	return s.service.Limiter().WaitForDrain(ctx)
}

// Close releases background resources. It is safe to call more than once.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.stop()
	}
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
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"status":  "ok",
		"renders": s.service.Limiter().Status(),
	})
}

// writeJSON encodes v as the response body. Encoding errors are logged
// since the status line is already sent.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logFor(r).Error("json encode failed", "error", err)
	}
}
