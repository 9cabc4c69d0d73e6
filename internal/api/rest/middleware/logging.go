package middleware

import (
	"net/http"
	"time"

	"github.com/felixge/httpsnoop"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/logger"
)

// Logging logs HTTP requests and their results.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs method, path, duration and status for each request.
// The wrapped writer keeps the optional interfaces of w, so upgraded
// WebSocket connections can still hijack it.
func (l *Logging) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		l.logger.Info("HTTP request started",
			"method", r.Method,
			"path", r.URL.Path,
			"start_time", start.Format(time.RFC3339))

		metrics := httpsnoop.CaptureMetrics(next, w, r)

		l.logger.Info("HTTP request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", metrics.Duration.Milliseconds(),
			"status", metrics.Code,
			"bytes", metrics.Written)

		if metrics.Code >= http.StatusInternalServerError {
			l.logger.Error("HTTP request failed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", metrics.Code)
		}
	})
}
