// Package http exposes the ledger engine over HTTP. The handlers are a
// thin shell: they parse requests into typed arguments, call into the
// store or the query/aggregation engine, and render the results.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kakeibo/internal/cache"
	"kakeibo/internal/core"
	"kakeibo/internal/ledger"
	"kakeibo/internal/metrics"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

// Server wires the ledger store to the HTTP routes.
type Server struct {
	http.Server
	store       *ledger.Store
	rateLimiter *rateLimiter

	// summaryCache avoids recomputing monthly summaries between
	// mutations; any mutation purges it wholesale.
	summaryCache *cache.LRU[core.MonthlySummary]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// Options tunes the server; zero values fall back to defaults.
type Options struct {
	RateLimitPerMinute int
	SummaryCacheSize   int
	SummaryCacheTTL    time.Duration
}

// NewServer configures routes and returns a ready-to-run server.
func NewServer(addr string, store *ledger.Store, opts Options) *Server {
	if opts.RateLimitPerMinute <= 0 {
		opts.RateLimitPerMinute = 60
	}
	if opts.SummaryCacheSize <= 0 {
		opts.SummaryCacheSize = 100
	}
	if opts.SummaryCacheTTL <= 0 {
		opts.SummaryCacheTTL = 5 * time.Minute
	}

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:            store,
		rateLimiter:      newRateLimiter(opts.RateLimitPerMinute),
		summaryCache:     cache.NewLRU[core.MonthlySummary](opts.SummaryCacheSize, opts.SummaryCacheTTL),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	mux.HandleFunc("/", s.withGuards("root", s.handleRoot))
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/entries", s.withGuards("entries", s.handleEntries))
	mux.HandleFunc("/entries/upload", s.withGuards("entries_upload", s.handleUploadCSV))
	mux.HandleFunc("/entries/export", s.withGuards("entries_export", s.handleExport))
	mux.HandleFunc("/summary", s.withGuards("summary", s.handleSummaryAll))
	mux.HandleFunc("/summary/", s.withGuards("summary_month", s.handleSummaryMonth))
	mux.HandleFunc("/sample", s.withGuards("sample", s.handleSeedSample))
	mux.HandleFunc("/clear_data", s.withGuards("clear_data", s.handleClear))
	mux.Handle("/metrics", promhttp.Handler())

	return s
}

// withGuards adds request IDs, security headers, rate limiting of
// mutations, logging and latency metrics. The route name keeps the
// metric label cardinality bounded.
func (s *Server) withGuards(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ip := clientIP(r)
		requestID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", ip)

		if r.Method == http.MethodPost && !s.rateLimiter.allow(ip) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", ip, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			metrics.ObserveRequest(route, metrics.ResultError, time.Since(start))
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		result := metrics.ResultSuccess
		if rw.statusCode >= 400 {
			result = metrics.ResultError
		}
		metrics.ObserveRequest(route, result, duration)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", ip)
	}
}

// responseWriter captures the status code for logging and metrics.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// invalidateSummaries drops all cached summaries after a mutation.
func (s *Server) invalidateSummaries() {
	s.summaryCache.Purge()
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.summaryCache.CleanExpired(); cleaned > 0 {
				slog.Debug("Summary cache cleanup", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown stops the cleanup goroutines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
