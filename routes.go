package main

import (
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"stock-sentiment/config"
	"stock-sentiment/observability"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates and configures a Chi router with all routes. assets is
// the embedded dashboard frontend.
func NewRouter(h *APIHandler, cfg *config.Config, assets fs.FS) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Duration(cfg.HTTP.RequestTimeoutSec) * time.Second))
	r.Use(corsMiddleware(cfg.HTTP.CORSAllowedOrigins))
	r.Use(metricsMiddleware)

	// Dashboard assets
	r.Handle("/", http.FileServer(http.FS(assets)))
	r.Handle("/index.html", http.FileServer(http.FS(assets)))
	r.Handle("/static/*", http.FileServer(http.FS(assets)))

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.handleHealth)
		r.Get("/status", h.handleStatus)
		r.Post("/analyze", h.handleAnalyze)
	})

	return r
}

// corsMiddleware returns CORS middleware with the specified allowed origins
func corsMiddleware(allowedOrigins string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code and response size
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	responseSize int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status code
	}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.responseSize += size
	return size, err
}

// metricsMiddleware records HTTP metrics for each request
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := newResponseWriter(w)
		next.ServeHTTP(wrapped, r)

		routePattern := chi.RouteContext(r.Context()).RoutePattern()
		if routePattern == "" {
			routePattern = r.URL.Path
		}

		metrics := observability.GetMetrics()
		duration := time.Since(start)
		statusCode := strconv.Itoa(wrapped.statusCode)

		metrics.RecordHTTPRequest(r.Method, routePattern, statusCode, duration, wrapped.responseSize)
	})
}
