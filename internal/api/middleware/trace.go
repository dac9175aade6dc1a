package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mkazanov/nutrilog/internal/api/shared"
)

// TraceMiddleware stamps every request with a trace ID. It runs early in
// the chain so handlers and the respond helpers can correlate their log
// lines and error payloads.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())

		slog.With(slog.String("trace_id", shared.GetTraceID(ctx))).Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
