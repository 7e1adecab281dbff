package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/osse101/PixelPet_Go/internal/logger"
	"github.com/osse101/PixelPet_Go/internal/metrics"
)

var quietPaths = []string{"/healthz", "/readyz", "/metrics"}

var redactedHeaders = []string{HeaderAPIKey, HeaderAuthorization}

// loggingMiddleware tags each request with an X-Request-ID and logs start and completion.
// Probes and scrapes pass through unlogged.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if matchesAny(r.URL.Path, quietPaths) {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()

		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = logger.GenerateRequestID()
		}
		w.Header().Set(HeaderRequestID, id)
		ctx := logger.WithRequestID(r.Context(), id)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx).With("method", r.Method, "path", r.URL.Path)

		log.Info(LogMsgRequestStarted, "remote_addr", r.RemoteAddr, "user_agent", r.UserAgent())
		log.Debug(LogMsgRequestHeaders, "headers", redact(r.Header))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"status", metrics.StatusOf(ww),
			"bytes", ww.BytesWritten(),
			"duration_ms", elapsed.Milliseconds())
	})
}

func redact(h http.Header) http.Header {
	out := h.Clone()
	for _, name := range redactedHeaders {
		if out.Get(name) != "" {
			out.Set(name, RedactedValue)
		}
	}
	return out
}
