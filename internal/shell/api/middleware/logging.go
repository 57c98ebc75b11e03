// Package middleware provides HTTP middleware for the planet API.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// =============================================================================
// Logger Configuration
// =============================================================================

// LoggerConfig holds configuration for the request logging middleware.
type LoggerConfig struct {
	// Logger receives one record per request. Defaults to slog.Default().
	Logger *slog.Logger

	// SkipPaths are request paths that are served but not logged,
	// typically probe endpoints.
	SkipPaths []string
}

// =============================================================================
// Request Logger
// =============================================================================

// RequestLogger logs method, path, status and duration of every request.
type RequestLogger struct {
	logger *slog.Logger
	skip   map[string]struct{}
}

// NewRequestLogger creates a new request logger with the given config.
func NewRequestLogger(cfg LoggerConfig) *RequestLogger {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}
	return &RequestLogger{logger: cfg.Logger, skip: skip}
}

// Handler returns the middleware handler function.
// Must run after chi's RequestID middleware for request_id to be populated.
func (m *RequestLogger) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := m.skip[r.URL.Path]; ok {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			m.logger.Log(r.Context(), levelFor(status), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_addr", r.RemoteAddr,
				"request_id", chimiddleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// levelFor maps a response status to a log level.
func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
