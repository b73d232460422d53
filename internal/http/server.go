// Package http serves the view-layer contract as a small JSON API:
// expense CRUD, dashboard summary, CSV export and the auth session.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"expenso/internal/auth"
	"expenso/internal/cache"
	"expenso/internal/expense"
)

type Server struct {
	http.Server
	store   *expense.Store
	session *auth.Session
	limiter *rateLimiter

	// Dashboard summaries are recomputed from scratch on every read;
	// cheap at this data volume, but cached briefly anyway and
	// invalidated on every mutation.
	summaryCache *cache.LRU[Summary]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, store *expense.Store, session *auth.Session, summaryTTL time.Duration) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:            store,
		session:          session,
		limiter:          newRateLimiter(60, time.Minute),
		summaryCache:     cache.NewLRU[Summary](8, summaryTTL),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	mux.HandleFunc("/auth/login", s.withCommon(s.handleLogin))
	mux.HandleFunc("/auth/signup", s.withCommon(s.handleSignup))
	mux.HandleFunc("/auth/logout", s.withCommon(s.handleLogout))
	mux.HandleFunc("/auth/session", s.withCommon(s.handleSession))

	mux.HandleFunc("/expenses", s.withCommon(s.requireAuth(s.handleExpenses)))
	mux.HandleFunc("/expenses/", s.withCommon(s.requireAuth(s.handleExpenseByID)))
	mux.HandleFunc("/dashboard/summary", s.withCommon(s.requireAuth(s.handleSummary)))
	mux.HandleFunc("/export/csv", s.withCommon(s.requireAuth(s.handleExportCSV)))

	return s
}

// withCommon adds request IDs, security headers, rate limiting on
// mutating methods, and request logging.
func (s *Server) withCommon(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := clientIP(r)

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		if r.Method != http.MethodGet && !s.limiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

// requireAuth gates data routes behind an authenticated session.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := s.session.State()
		if err != nil {
			slog.ErrorContext(r.Context(), "Session not initialized", "error", err)
			writeError(w, http.StatusInternalServerError, "session not initialized")
			return
		}
		if !state.IsAuthenticated {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next(w, r)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if !s.store.Loaded() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("loading"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.summaryCache.CleanExpired(); cleaned > 0 {
				slog.Debug("Cache cleanup completed", "entries_removed", cleaned)
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
		close(s.stopCacheCleanup)
		s.limiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
