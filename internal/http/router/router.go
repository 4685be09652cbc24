package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMid "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/lesoria-cart/internal/http/handlers"
	mw "github.com/rogerio-castellano/lesoria-cart/internal/http/middleware"
	rl "github.com/rogerio-castellano/lesoria-cart/internal/http/rate_limiter"
	"github.com/rogerio-castellano/lesoria-cart/internal/session"
)

type Options struct {
	Logger       *zap.Logger
	Issuer       *session.Issuer
	Limiter      *rl.Limiter
	SecureCookie bool
}

// NewRouter wires the cart routes. handlers.SetCartRegistry and handlers.SetRenderer
// must be called before serving.
func NewRouter(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(chiMid.RequestID)
	r.Use(chiMid.Recoverer)
	r.Use(mw.Logger(logger))

	r.Get("/healthz", handlers.HealthHandler)

	r.Route("/cart", func(r chi.Router) {
		r.Use(mw.Visitor(opts.Issuer, opts.SecureCookie))

		r.Get("/", handlers.GetCartHandler)
		r.Get("/state", handlers.GetCartStateHandler)
		r.Post("/open", handlers.OpenCartHandler)
		r.Post("/close", handlers.CloseCartHandler)

		r.Group(func(r chi.Router) {
			if opts.Limiter != nil {
				r.Use(mw.RateLimit(opts.Limiter))
			}
			r.Post("/items", handlers.AddItemHandler)
			r.Post("/items/{id}/increment", handlers.IncrementItemHandler)
			r.Post("/items/{id}/decrement", handlers.DecrementItemHandler)
			r.Post("/actions", handlers.CartActionHandler)
			r.Post("/clear", handlers.ClearCartHandler)
		})
	})

	return r
}
