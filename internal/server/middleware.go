package server

import (
	"net/http"
	"time"

	log "go.uber.org/zap"

	"github.com/yanet-platform/shutdown/internal/types/requestid"
	"github.com/yanet-platform/shutdown/pkg/shutdown"
)

// requestIDMiddleware adds a request ID to the request context and response
// headers and logs the request.
func requestIDMiddleware(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := requestid.FromRequest(r)

			r = r.WithContext(requestid.NewContext(r.Context(), reqID))
			w.Header().Set(requestid.HeaderKey, string(reqID))

			fields := []log.Field{
				log.String("method", r.Method),
				log.String("path", r.URL.Path),
				log.String("remote_addr", r.RemoteAddr),
				log.String("request_id", string(reqID)),
			}
			logger.Debug("HTTP request received", fields...)

			start := time.Now()
			next.ServeHTTP(w, r)

			logger.Debug("HTTP request completed", append(fields, log.Duration("duration", time.Since(start)))...)
		})
	}
}

// drainMiddleware holds a shutdown monitor for the lifetime of every request,
// so that shutdown waits for in-flight requests to complete.
func drainMiddleware(controller *shutdown.Controller) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			monitor := controller.Subscribe()
			defer monitor.Release()

			if monitor.IsShutdown() {
				// The client should not reuse a connection to a server that is
				// going away.
				w.Header().Set("Connection", "close")
			}

			next.ServeHTTP(w, r)
		})
	}
}
