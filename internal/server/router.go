// Package server assembles the HTTP router.
package server

import (
	"context"
	"net/http"
	"time"

	"bookstore/internal/book"
	"bookstore/internal/httpx"
	"bookstore/internal/logger"
	"bookstore/internal/metrics"
	"bookstore/internal/seller"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps holds everything NewRouter wires together. RateLimiter and Metrics
// may be nil to disable them.
type Deps struct {
	Sellers *seller.Service
	Books   *book.Service
	Log     *logger.Logger
	Store   Pinger

	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer

	RateLimiter        *httpx.RateLimitMiddleware
	CORSAllowedOrigins []string
	MaxBodyBytes       int64
	EnableHSTS         bool
}

// NewRouter returns the API router. The seller and book routes are served at
// the root and again under /api/v1.
//
// Middleware order:
//
//	RequestID → Recovery → AccessLog → Metrics → SecurityHeaders → CORS → RateLimit → SizeLimit
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(httpx.RequestIDMiddleware)
	r.Use(httpx.RecoveryMiddleware(d.Log))
	r.Use(httpx.AccessLogMiddleware(d.Log))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}
	r.Use(httpx.SecurityHeadersMiddleware(d.EnableHSTS))
	r.Use(httpx.CORSMiddleware(d.CORSAllowedOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.NotFound(w, r, "Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", readyHandler(d.Store, d.Log))
	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(d.Gatherer))
	}

	sellerHandler := seller.NewHTTPHandler(d.Sellers, d.Log)
	bookHandler := book.NewHTTPHandler(d.Books, d.Log)

	api := func(r chi.Router) {
		if d.RateLimiter != nil {
			r.Use(d.RateLimiter.Middleware)
		}
		if d.MaxBodyBytes > 0 {
			r.Use(httpx.RequestSizeLimitMiddleware(d.MaxBodyBytes))
		}
		r.Route("/sellers", sellerHandler.Routes)
		r.Route("/books", bookHandler.Routes)
	}
	r.Group(api)
	r.Route("/api/v1", api)

	return r
}

func readyHandler(p Pinger, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			log.Warn("readiness check failed", "error", err)
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	}
}
