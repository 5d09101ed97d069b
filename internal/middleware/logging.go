// ABOUTME: HTTP request logging middleware with correlation IDs.
// ABOUTME: Logs method, path, status and latency and records request metrics.

package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wobuhui666/bohe-api-auto-sign/internal/metrics"
)

// RequestIDHeader carries the correlation ID in both directions
const RequestIDHeader = "X-Request-ID"

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// LogRequest logs HTTP requests with timing and correlation ID.
// A well-formed incoming X-Request-ID is reused.
func LogRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		path := sanitizePath(r.URL.Path)
		log := zap.L().With(zap.String("request_id", requestID))
		log.Debug("request started", zap.String("method", r.Method), zap.String("path", path))

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		elapsed := time.Since(start)
		metrics.RecordHTTP(r.Method, routePattern(r), strconv.Itoa(wrapped.statusCode), elapsed.Seconds())
		log.Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", path),
			zap.Int("status", wrapped.statusCode),
			zap.Int64("latency_ms", elapsed.Milliseconds()),
		)
	})
}

// routePattern returns the matched chi pattern so metric labels stay bounded
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// sanitizePath strips control characters to prevent log injection
func sanitizePath(path string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, path)
}
