// Package http serves the analytics JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"vypiska/internal/analytics"
	"vypiska/internal/cache"
	"vypiska/internal/middleware/trace"
	"vypiska/internal/services"
	"vypiska/internal/source"
)

const requestsPerMinute = 60

type Server struct {
	http.Server

	records   source.Reader
	pages     *analytics.PageBuilder
	reportSvc *services.ReportService

	rateLimiter *rateLimiter
	tracer      *trace.Middleware

	// Rendered JSON payloads, keyed by path plus query.
	pageCache    *cache.LRUCache[[]byte]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and returns a ready-to-run server.
func NewServer(addr string, records source.Reader, pages *analytics.PageBuilder, reportSvc *services.ReportService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		records:     records,
		pages:       pages,
		reportSvc:   reportSvc,
		rateLimiter: newRateLimiter(requestsPerMinute),
		tracer:      trace.NewMiddleware(clientIP),
		pageCache:   cache.NewLRUCache[[]byte](100, 5*time.Minute),
	}

	s.cacheManager = cache.NewManager()
	s.cacheManager.Register(s.pageCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("/api/home", s.guard(s.handleHome))
	mux.HandleFunc("/api/events", s.guard(s.handleEvents))
	mux.HandleFunc("/api/search", s.guard(s.handleSearch))
	mux.HandleFunc("/api/transactions/phone", s.guard(s.handlePhoneTransactions))
	mux.HandleFunc("/api/transactions/transfers", s.guard(s.handlePersonalTransfers))
	mux.HandleFunc("/api/cashback/categories", s.guard(s.handleProfitableCategories))
	mux.HandleFunc("/api/cashback", s.guard(s.handleCashback))
	mux.HandleFunc("/api/roundup", s.guard(s.handleRoundup))
	mux.HandleFunc("/api/reports/category", s.guard(s.handleCategoryReport))
	mux.HandleFunc("/api/reports/weekday", s.guard(s.handleWeekdayReport))
	mux.HandleFunc("/api/reports/workday", s.guard(s.handleWorkdayReport))
	mux.HandleFunc("/healthz", handleHealth)

	return s
}

// guard wraps a handler with method check, rate limiting and tracing.
func (s *Server) guard(next http.HandlerFunc) http.HandlerFunc {
	limited := func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			respondError(w, r, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		if !s.rateLimiter.allow(clientIP(r)) {
			w.Header().Set("Retry-After", "60")
			respondError(w, r, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next(w, r)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		s.tracer.Middleware(http.HandlerFunc(limited)).ServeHTTP(w, r)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Shutdown stops background loops, then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
