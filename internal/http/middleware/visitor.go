package middleware

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/lesoria-cart/internal/logging"
	"github.com/rogerio-castellano/lesoria-cart/internal/session"
)

type contextKey string

const visitorIDKey = contextKey("visitor_id")

// Visitor resolves the visitor id from the signed cookie, issuing a new one when
// the cookie is missing or does not verify.
func Visitor(issuer *session.Issuer, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(session.CookieName); err == nil && c.Value != "" {
				if parsed, err := issuer.Parse(c.Value); err == nil {
					id = parsed
				} else {
					logging.FromContext(r.Context()).Debug("visitor token rejected", zap.Error(err))
				}
			}

			if id == "" {
				id = session.NewVisitorID()
				token, err := issuer.Issue(id)
				if err != nil {
					logging.FromContext(r.Context()).Error("issue visitor token", zap.Error(err))
					http.Error(w, "could not start session", http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     session.CookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
					MaxAge:   int(session.TokenMaxAge.Seconds()),
				})
			}

			ctx := context.WithValue(r.Context(), visitorIDKey, id)
			ctx = logging.WithLogger(ctx, logging.FromContext(ctx).With(zap.String("visitor_id", id)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// VisitorID returns the visitor id set by Visitor, or "" outside it.
func VisitorID(r *http.Request) string {
	if val, ok := r.Context().Value(visitorIDKey).(string); ok {
		return val
	}
	return ""
}
