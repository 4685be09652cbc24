package handlers

import (
	"github.com/rogerio-castellano/lesoria-cart/internal/cart"
)

var (
	carts    *cart.Registry
	renderer *cart.Renderer
)

func SetCartRegistry(r *cart.Registry) {
	carts = r
}

func SetRenderer(r *cart.Renderer) {
	renderer = r
}
