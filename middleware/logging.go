package middleware

import (
	"net/http"
	"time"

	"restorativeLandsAPI/internal/logger"
)

// LoggingMiddleware writes one line per request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(ww, r)

		keyvals := []interface{}{
			"method", r.Method,
			"route", routeLabel(r),
			"path", r.URL.Path,
			"status", ww.statusCode,
			"duration", time.Since(start),
		}
		switch {
		case ww.statusCode >= 500:
			logger.Error("request", keyvals...)
		case ww.statusCode >= 400:
			logger.Warn("request", keyvals...)
		default:
			logger.Info("request", keyvals...)
		}
	})
}
