// Package server provides the HTTP API of the portfolio generator.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/felixge/httpsnoop"
	"go.uber.org/zap"

	"github.com/jonathan/portfolio-generator/internal/analysis"
	"github.com/jonathan/portfolio-generator/internal/extraction"
	"github.com/jonathan/portfolio-generator/internal/payment"
	"github.com/jonathan/portfolio-generator/internal/pipeline"
	"github.com/jonathan/portfolio-generator/internal/publish"
	"github.com/jonathan/portfolio-generator/internal/server/ratelimit"
	"github.com/jonathan/portfolio-generator/internal/store"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 30 * time.Second

// Server serves the portfolio API over a single ServeMux.
type Server struct {
	httpServer     *http.Server
	store          store.Store
	pipeline       pipeline.Options
	extractor      *extraction.Extractor
	publisher      *publish.Publisher
	payments       *payment.Service
	analyzer       *analysis.Analyzer
	extractTimeout time.Duration
	rateLimiter    *ratelimit.Limiter
	logger         *zap.Logger
}

// Config holds the server's settings and collaborators. Store is required;
// nil services are replaced with defaults that need no credentials.
type Config struct {
	Port      int
	Store     store.Store
	Pipeline  pipeline.Options
	Extractor *extraction.Extractor
	Publisher *publish.Publisher
	Payments  *payment.Service
	Analyzer  *analysis.Analyzer
	// ExtractTimeout bounds one /extract-content call. Zero means no bound.
	ExtractTimeout time.Duration
	// RateLimit nil loads the RATE_LIMIT_* environment configuration.
	RateLimit *ratelimit.Config
	Logger    *zap.Logger
}

// New wires a Server from cfg. It does not start listening.
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("server requires a store")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Pipeline.Logger == nil {
		cfg.Pipeline.Logger = cfg.Logger
	}
	if cfg.Extractor == nil {
		cfg.Extractor = extraction.New(nil, cfg.Logger)
	}
	if cfg.Publisher == nil {
		cfg.Publisher = publish.New()
	}
	if cfg.Payments == nil {
		cfg.Payments = payment.NewService(nil)
	}
	if cfg.Analyzer == nil {
		cfg.Analyzer = analysis.New(nil, analysis.WithLogger(cfg.Logger))
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = ratelimit.LoadConfig()
	}

	s := &Server{
		store:          cfg.Store,
		pipeline:       cfg.Pipeline,
		extractor:      cfg.Extractor,
		publisher:      cfg.Publisher,
		payments:       cfg.Payments,
		analyzer:       cfg.Analyzer,
		extractTimeout: cfg.ExtractTimeout,
		rateLimiter:    ratelimit.NewLimiter(cfg.RateLimit),
		logger:         cfg.Logger,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // pipeline runs and LLM calls
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler returns the routed handler wrapped in rate limiting, logging and CORS.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /extract-content", s.handleExtractContent)
	mux.HandleFunc("POST /generate-portfolio", s.handleGeneratePortfolio)
	mux.HandleFunc("POST /parse-cv", s.handleParseCV)
	mux.HandleFunc("POST /website-analysis", s.handleWebsiteAnalysis)

	mux.HandleFunc("POST /payment", s.handleCreatePayment)
	mux.HandleFunc("GET /payment", s.handlePaymentStatus)

	mux.HandleFunc("POST /portfolio-generator", s.handleGenerate)
	mux.HandleFunc("POST /portfolio-generator/stream", s.handleGenerateStream)
	mux.HandleFunc("GET /portfolio-generator", s.handleGetPortfolio)
	mux.HandleFunc("GET /portfolio-generator/preview", s.handlePreview)
	mux.HandleFunc("POST /portfolio-generator/edits", s.handleEdit)

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.rateLimiter.Stop()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.rateLimiter.Stop()
	s.logger.Info("server stopped")
	return nil
}

// Close releases the rate limiter without serving.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// withCORS allows any origin and answers preflight requests directly.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects callers over their per-route budget with a 429.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging logs each request with its status and duration.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", m.Code),
			zap.Int64("bytes", m.Written),
			zap.Duration("duration", m.Duration),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes data with the given status.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes {error}.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failureResponse writes {success:false, error, message} for an internal failure.
func (s *Server) failureResponse(w http.ResponseWriter, status int, message string, err error) {
	s.jsonResponse(w, status, map[string]any{
		"success": false,
		"error":   message,
		"message": err.Error(),
	})
}

// clientID identifies the caller by the IP part of RemoteAddr.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders publishes the caller's budget as X-RateLimit-* headers.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes the 429 body plus Retry-After in whole seconds.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		secs := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = secs
		w.Header().Set("Retry-After", strconv.Itoa(secs))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", clientID(r)),
		zap.String("path", r.URL.Path),
		zap.Int("limit", info.Limit),
	)
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
