// Package server provides the HTTP API for profile parsing, external-data
// mapping and the optional profile store.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/jonathan/portfolio-builder/internal/config"
	"github.com/jonathan/portfolio-builder/internal/db"
	"github.com/jonathan/portfolio-builder/internal/extraction"
	"github.com/jonathan/portfolio-builder/internal/logger"
	"github.com/jonathan/portfolio-builder/internal/server/ratelimit"
	"github.com/jonathan/portfolio-builder/internal/types"
)

const shutdownTimeout = 30 * time.Second

// ProfileStore is the persistence used by the /v1/profiles routes. *db.DB implements it.
type ProfileStore interface {
	SaveProfile(ctx context.Context, owner, source string, record *types.ProfileRecord) (*db.Profile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, source string, record *types.ProfileRecord) (*db.Profile, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*db.Profile, error)
	ListProfiles(ctx context.Context, opts db.ListOptions) ([]db.Profile, error)
	DeleteProfile(ctx context.Context, id uuid.UUID) error
	RecordImport(ctx context.Context, imp *db.ProfileImport) error
	ListImports(ctx context.Context, profileID uuid.UUID) ([]db.ProfileImport, error)
}

// Config holds server configuration
type Config struct {
	Port         int
	MaxBodyBytes int64
	RateLimit    *ratelimit.Config
	MergeFlags   types.MergeFlags
	Extraction   extraction.Options
}

// ConfigFrom derives the server configuration from the application config.
func ConfigFrom(c *config.Config) Config {
	return Config{
		Port:         c.Port,
		MaxBodyBytes: c.MaxUploadBytes,
		RateLimit: ratelimit.NewConfig(ratelimit.Options{
			Disabled:  c.RateLimitDisabled,
			PerMinute: c.RateLimitPerMinute,
			Burst:     c.RateLimitBurst,
			Allow:     c.RateLimitAllow,
			Deny:      c.RateLimitDeny,
		}),
		MergeFlags: c.MergeFlags(),
		Extraction: extraction.Options{CanonicalSkillNames: c.CanonicalSkillNames},
	}
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	router      chi.Router
	store       ProfileStore
	rateLimiter *ratelimit.Limiter
	cfg         Config
}

// New creates a new server instance. store may be nil, in which case the
// profile routes answer 503.
func New(cfg Config, store ProfileStore) *Server {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = config.DefaultMaxUploadBytes
	}

	s := &Server{
		store:       store,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		cfg:         cfg,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.withLogging)
	r.Use(middleware.Recoverer)
	r.Use(s.withRateLimit)
	r.Use(s.withBodyLimit)

	r.Get("/health", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/parse", s.handleParse)
		r.Post("/sections", s.handleSections)
		r.Post("/external/map", s.handleMapExternal)
		r.Post("/external/merge", s.handleMergeExternal)

		r.Route("/profiles", func(r chi.Router) {
			r.Use(s.requireStore)
			r.Post("/", s.handleCreateProfile)
			r.Get("/", s.handleListProfiles)
			r.Get("/{id}", s.handleGetProfile)
			r.Put("/{id}", s.handleUpdateProfile)
			r.Delete("/{id}", s.handleDeleteProfile)
			r.Post("/{id}/import", s.handleImportProfile)
			r.Get("/{id}/imports", s.handleListImports)
		})
	})

	s.router = r
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins listening for requests and blocks until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.Close()
	logger.Info().Msg("server stopped")
	return nil
}

// Close stops the rate limiter cleanup goroutine.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

// withLogging logs one line per request and puts a request-scoped logger in the context.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqLogger := logger.Logger.With().Str("request_id", middleware.GetReqID(r.Context())).Logger()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(reqLogger.WithContext(r.Context())))

		reqLogger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// withRateLimit rejects clients over their token budget with 429.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(extractClientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withBodyLimit caps request bodies at MaxBodyBytes.
func (s *Server) withBodyLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}

// requireStore answers 503 when no profile store is configured.
func (s *Server) requireStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.store == nil {
			s.errorResponse(w, r, http.StatusServiceUnavailable, "profile store is not configured")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractClientID uses the IP address from RemoteAddr. Forwarding headers are
// ignored since they are client-controlled.
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := max(int(info.RetryAfter.Round(time.Second).Seconds()), 1)
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	logger.FromContext(r.Context()).Warn().
		Int("limit", info.Limit).
		Time("reset_at", info.ResetTime).
		Msg("rate limit exceeded")

	s.jsonResponse(w, r, http.StatusTooManyRequests, response)
}
