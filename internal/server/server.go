// Package server provides the HTTP REST API over the career catalog.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/career-console/internal/draft"
	"github.com/jonathan/career-console/internal/export"
	"github.com/jonathan/career-console/internal/render"
	"github.com/jonathan/career-console/internal/selection"
	"github.com/jonathan/career-console/internal/server/ratelimit"
	"github.com/jonathan/career-console/internal/store"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	log         zerolog.Logger
	master      *store.Master
	selections  *selection.Store
	renderer    *render.Renderer
	drafter     *draft.Drafter
	rateLimiter *ratelimit.Limiter

	exportTimeout time.Duration
}

// Config holds server configuration
type Config struct {
	Port          int
	ExportTimeout time.Duration
}

// Deps carries the wired application services. Drafter may be nil when no
// LLM API key is configured; the draft endpoints then return 503.
type Deps struct {
	Log        zerolog.Logger
	Master     *store.Master
	Selections *selection.Store
	Renderer   *render.Renderer
	Drafter    *draft.Drafter
}

// New creates a new server instance
func New(cfg Config, deps Deps) *Server {
	s := &Server{
		log:         deps.Log,
		master:      deps.Master,
		selections:  deps.Selections,
		renderer:    deps.Renderer,
		drafter:     deps.Drafter,
		rateLimiter: ratelimit.NewLimiter(ratelimit.DefaultConfig()),
	}

	if cfg.ExportTimeout <= 0 {
		cfg.ExportTimeout = export.DefaultTimeout
	}
	s.exportTimeout = cfg.ExportTimeout

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Profile and summary variants
	mux.HandleFunc("GET /profile", s.handleGetProfile)
	mux.HandleFunc("PUT /profile", s.handleUpdateProfile)
	mux.HandleFunc("GET /summary", s.handleListSummaries)
	mux.HandleFunc("PUT /summary/{key}", s.handleSetSummary)
	mux.HandleFunc("DELETE /summary/{key}", s.handleDeleteSummary)

	// Skills endpoints
	mux.HandleFunc("GET /skills", s.handleListSkills)
	mux.HandleFunc("POST /skills", s.handleAddSkill)
	mux.HandleFunc("GET /skills/{id}/usage", s.handleSkillUsage)
	mux.HandleFunc("PUT /skills/{category}/{id}", s.handleUpdateSkill)
	mux.HandleFunc("DELETE /skills/{category}/{id}", s.handleDeleteSkill)

	// Experience endpoints
	mux.HandleFunc("GET /experience", s.handleListExperience)
	mux.HandleFunc("POST /experience", s.handleCreateExperience)
	mux.HandleFunc("PUT /experience/{id}", s.handleUpdateExperience)
	mux.HandleFunc("DELETE /experience/{id}", s.handleDeleteExperience)

	// Project endpoints
	mux.HandleFunc("GET /projects", s.handleListProjects)
	mux.HandleFunc("POST /projects", s.handleCreateProject)
	mux.HandleFunc("PUT /projects/{id}", s.handleUpdateProject)
	mux.HandleFunc("DELETE /projects/{id}", s.handleDeleteProject)

	// Selection endpoints
	mux.HandleFunc("GET /selections", s.handleListSelections)
	mux.HandleFunc("POST /selections", s.handleCreateSelection)
	mux.HandleFunc("GET /selections/{slug}", s.handleGetSelection)
	mux.HandleFunc("PUT /selections/{slug}", s.handleUpdateSelection)
	mux.HandleFunc("DELETE /selections/{slug}", s.handleDeleteSelection)

	// Build endpoints
	mux.HandleFunc("GET /selections/{slug}/resolve", s.handleResolveSelection)
	mux.HandleFunc("GET /selections/{slug}/preview", s.handlePreviewSelection)
	mux.HandleFunc("POST /selections/{slug}/build", s.handleBuildSelection)
	mux.HandleFunc("POST /selections/{slug}/export", s.handleExportSelection)

	// Drafting endpoints
	mux.HandleFunc("POST /draft/project", s.handleDraftProject)
	mux.HandleFunc("POST /draft/summary", s.handleDraftSummary)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // long timeout for PDF export
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	s.rateLimiter.Stop()

	s.log.Info().Msg("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, retryAfter := s.rateLimiter.Allow(s.extractClientID(r))
		if !allowed {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())+1))
			s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failResponse maps an application error to its HTTP status.
func (s *Server) failResponse(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error().Err(err).Msg("request failed")
	}
	s.errorResponse(w, status, err.Error())
}

// decodeBody parses a JSON request body into dst.
func (s *Server) decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &store.ValidationError{Field: "body", Message: fmt.Sprintf("invalid JSON: %v", err)}
	}
	return nil
}

// extractClientID extracts the client identifier from the request.
// For now this uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
