// Package middleware contains HTTP middleware applied in the router chain.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/dutsenko/contacts-api/internal/api/shared"
	"github.com/dutsenko/contacts-api/internal/platform/logger"
)

// TraceMiddleware adds a trace ID to the request context and carries a
// trace-scoped logger so services and stores log with the same ID. It should
// be applied early in the middleware chain.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		log := slog.With(slog.String("trace_id", traceID))
		ctx = logger.WithLogger(ctx, log)

		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
