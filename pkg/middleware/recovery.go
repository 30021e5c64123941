package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/storekit/catalog-search/pkg/logger"
)

// Recovery converts panics into 500 responses instead of crashing the server.
// http.ErrAbortHandler is re-raised so deliberate connection aborts keep their
// net/http semantics.
func Recovery(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				l.ErrorContext(r.Context(), "panic recovered",
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("correlation_id", logger.CorrelationIDFromContext(r.Context())),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":{"code":"INTERNAL_ERROR","message":"an internal error occurred"}}`))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
