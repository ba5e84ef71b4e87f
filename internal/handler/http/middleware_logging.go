package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-secure-data/internal/logger"
	"github.com/MKhiriev/go-secure-data/internal/utils"
)

// withLogging writes one access log line per request. Blob bodies are never
// logged, only their size.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)

		log := logger.FromRequest(r)
		event := log.Info()
		if rw.status >= http.StatusInternalServerError {
			event = log.Warn()
		}
		if client, ok := utils.GetClientFromContext(r.Context()); ok {
			event = event.Str("client", client)
		}

		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rw.statusCode()).
			Int64("request_size", r.ContentLength).
			Int("response_size", rw.size).
			Dur("duration", time.Since(start)).
			Send()
	})
}
