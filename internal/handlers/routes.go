// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes and mounts them on a chi router with middleware

package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wobuhui666/bohe-api-auto-sign/internal/metrics"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/middleware"
)

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // URL path (e.g., "/api/health")
	Handler http.HandlerFunc // Handler function
	Write   bool             // subject to the stricter write limit
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health
		{Method: http.MethodGet, Path: "/api/health", Handler: h.Health},

		// Credentials
		{Method: http.MethodGet, Path: "/api/token/status", Handler: h.TokenStatus},
		{Method: http.MethodPost, Path: "/api/token/set", Handler: h.SetToken, Write: true},
		{Method: http.MethodPost, Path: "/api/token/refresh", Handler: h.RefreshToken, Write: true},
		{Method: http.MethodGet, Path: "/api/token/newapi", Handler: h.NewAPIStatus},
		{Method: http.MethodPost, Path: "/api/token/newapi", Handler: h.SetNewAPI, Write: true},

		// Check-in
		{Method: http.MethodGet, Path: "/api/sign/status", Handler: h.SignStatus},
		{Method: http.MethodPost, Path: "/api/sign/now", Handler: h.SignNow, Write: true},
		{Method: http.MethodPost, Path: "/api/sign/spin", Handler: h.Spin, Write: true},
		{Method: http.MethodGet, Path: "/api/sign/logs", Handler: h.SignLogs},

		// Schedule
		{Method: http.MethodGet, Path: "/api/schedule", Handler: h.GetSchedule},
		{Method: http.MethodPost, Path: "/api/schedule", Handler: h.SaveSchedule, Write: true},
		{Method: http.MethodDelete, Path: "/api/schedule", Handler: h.DeleteSchedule, Write: true},
	}
}

// RouterOptions configures the middleware around the routes
type RouterOptions struct {
	AllowedOrigins []string
	RateLimit      bool
	DefaultPerMin  int
	WritePerMin    int
}

// Router mounts every route on a chi router.
// Reads and writes draw from separate per-client limits.
func (h *Handler) Router(opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recover, middleware.LogRequest, middleware.CORS(opts.AllowedOrigins))

	var readLimit, writeLimit middleware.Middleware
	if opts.RateLimit {
		readLimit = middleware.RateLimit(middleware.NewRateLimiter(opts.DefaultPerMin, time.Minute), middleware.ClientIP)
		writeLimit = middleware.RateLimit(middleware.NewRateLimiter(opts.WritePerMin, time.Minute), middleware.ClientIP)
	}

	for _, route := range h.Routes() {
		limit := readLimit
		if route.Write {
			limit = writeLimit
		}
		r.Method(route.Method, route.Path, middleware.Chain(route.Handler, limit))
	}
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, "method not allowed", http.StatusMethodNotAllowed)
	})
	return r
}
