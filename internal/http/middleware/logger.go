package middleware

import (
	"net/http"
	"time"

	chiMid "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/lesoria-cart/internal/logging"
)

// Logger attaches a request-scoped zap logger to the context and logs one line per request.
// It expects chi's RequestID middleware to run first.
func Logger(base *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLogger := base.With(zap.String("request_id", chiMid.GetReqID(r.Context())))
			ctx := logging.WithLogger(r.Context(), reqLogger)

			ww := chiMid.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			reqLogger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Duration("duration", time.Since(start)),
				zap.Bool("htmx", r.Header.Get("HX-Request") == "true"),
			)
		})
	}
}
