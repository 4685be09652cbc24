package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/lesoria-cart/internal/cart"
	mw "github.com/rogerio-castellano/lesoria-cart/internal/http/middleware"
	"github.com/rogerio-castellano/lesoria-cart/internal/logging"
)

const (
	triggerOpen  = "cart:open"
	triggerClose = "cart:close"
)

// storeFor returns the visitor's cart. Mutations use a context detached from the
// client so a dropped connection cannot interrupt a write halfway.
func storeFor(r *http.Request) (*cart.Store, context.Context) {
	ctx := context.WithoutCancel(r.Context())
	return carts.Get(ctx, mw.VisitorID(r)), ctx
}

// itemIDParam returns the decoded {id} path segment. chi routes on RawPath when the
// URL has one, so an id holding an escaped "/" arrives still encoded.
func itemIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if r.URL.RawPath == "" {
		return id, true
	}
	id, err := url.PathUnescape(id)
	if err != nil {
		logging.FromContext(r.Context()).Warn("bad item id in path", zap.Error(err))
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return "", false
	}
	return id, true
}

// finishMutation renders the outcome of a store operation. Rejected requests render
// the unchanged cart; only storage failures change the status code.
func finishMutation(w http.ResponseWriter, r *http.Request, st cart.State, err error, panelOpen bool, trigger string) {
	logger := logging.FromContext(r.Context())
	switch {
	case err == nil:
		writeCart(w, r, http.StatusOK, st, panelOpen, trigger)
	case errors.Is(err, cart.ErrItemNotFound), errors.Is(err, cart.ErrUnknownAction), errors.Is(err, cart.ErrInvalidItem):
		logger.Info("cart request ignored", zap.Error(err))
		writeCart(w, r, http.StatusOK, st, panelOpen, "")
	default:
		logger.Error("cart update failed", zap.Error(err))
		writeCart(w, r, http.StatusServiceUnavailable, st, panelOpen, "")
	}
}

// GetCartHandler godoc
// @Summary Render the cart drawer
// @Tags cart
// @Produce html,json
// @Param open query bool false "Render the drawer opened"
// @Success 200 {object} cart.View
// @Router /cart [get]
func GetCartHandler(w http.ResponseWriter, r *http.Request) {
	store, ctx := storeFor(r)
	open, _ := strconv.ParseBool(r.URL.Query().Get("open"))
	writeCart(w, r, http.StatusOK, store.State(ctx), open, "")
}

// GetCartStateHandler godoc
// @Summary Current cart items and totals
// @Tags cart
// @Produce json
// @Success 200 {object} CartStateResponse
// @Router /cart/state [get]
func GetCartStateHandler(w http.ResponseWriter, r *http.Request) {
	store, ctx := storeFor(r)
	if err := writeJSON(w, http.StatusOK, toStateResponse(store.State(ctx))); err != nil {
		logging.FromContext(r.Context()).Error("write cart state", zap.Error(err))
	}
}

// AddItemHandler godoc
// @Summary Add a product to the cart
// @Description Reads the product card data (id, name, price). A product already in the cart gets its quantity raised; its stored name and price are kept.
// @Tags cart
// @Accept json,x-www-form-urlencoded
// @Produce html,json
// @Param item body AddItemRequest true "Product card data"
// @Success 200 {object} cart.View
// @Failure 400 {array} ValidationError
// @Failure 503 {object} cart.View
// @Router /cart/items [post]
func AddItemHandler(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())
	store, ctx := storeFor(r)

	var req AddItemRequest
	if isJSONBody(r) {
		if err := readJSON(w, r, &req); err != nil {
			logger.Warn("add to cart: unreadable body", zap.Error(err))
			http.Error(w, "invalid input", http.StatusBadRequest)
			return
		}
	} else {
		req.ID = r.PostFormValue("id")
		req.Name = r.PostFormValue("name")
		req.Price = jsonNumber(r.PostFormValue("price"))
	}

	price, validationErrors := validateAddItem(req)
	if len(validationErrors) > 0 {
		logger.Warn("add to cart rejected", zap.String("item_id", req.ID), zap.Any("errors", validationErrors))
		if wantsJSON(r) {
			if err := writeJSON(w, http.StatusBadRequest, validationErrors); err != nil {
				logger.Error("write validation errors", zap.Error(err))
			}
			return
		}
		writeCart(w, r, http.StatusOK, store.State(ctx), false, "")
		return
	}

	st, err := store.AddItem(ctx, req.ID, req.Name, price)
	if err != nil {
		finishMutation(w, r, st, err, false, "")
		return
	}
	finishMutation(w, r, st, nil, true, triggerOpen)
}

// IncrementItemHandler godoc
// @Summary Raise the quantity of a cart line
// @Tags cart
// @Produce html,json
// @Param id path string true "Product ID"
// @Success 200 {object} cart.View
// @Router /cart/items/{id}/increment [post]
func IncrementItemHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := itemIDParam(w, r)
	if !ok {
		return
	}
	store, ctx := storeFor(r)
	st, err := store.Increment(ctx, id)
	finishMutation(w, r, st, err, true, "")
}

// DecrementItemHandler godoc
// @Summary Lower the quantity of a cart line, removing it at zero
// @Tags cart
// @Produce html,json
// @Param id path string true "Product ID"
// @Success 200 {object} cart.View
// @Router /cart/items/{id}/decrement [post]
func DecrementItemHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := itemIDParam(w, r)
	if !ok {
		return
	}
	store, ctx := storeFor(r)
	st, err := store.Decrement(ctx, id)
	finishMutation(w, r, st, err, true, "")
}

// CartActionHandler godoc
// @Summary Run a delegated row control
// @Description Row buttons post their data-cart-action and data-id here.
// @Tags cart
// @Accept json,x-www-form-urlencoded
// @Produce html,json
// @Param action body CartActionRequest true "Row action"
// @Success 200 {object} cart.View
// @Router /cart/actions [post]
func CartActionHandler(w http.ResponseWriter, r *http.Request) {
	store, ctx := storeFor(r)

	var req CartActionRequest
	if isJSONBody(r) {
		if err := readJSON(w, r, &req); err != nil {
			logging.FromContext(r.Context()).Warn("cart action: unreadable body", zap.Error(err))
			http.Error(w, "invalid input", http.StatusBadRequest)
			return
		}
	} else {
		req.Action = r.PostFormValue("action")
		req.ID = r.PostFormValue("id")
	}

	st, err := cart.Dispatch(ctx, store, cart.Action(req.Action), req.ID)
	finishMutation(w, r, st, err, true, "")
}

// ClearCartHandler godoc
// @Summary Remove every line from the cart
// @Tags cart
// @Produce html,json
// @Success 200 {object} cart.View
// @Router /cart/clear [post]
func ClearCartHandler(w http.ResponseWriter, r *http.Request) {
	store, ctx := storeFor(r)
	st, err := store.Clear(ctx)
	finishMutation(w, r, st, err, true, "")
}

// OpenCartHandler shows the drawer. It reads the cart but never changes it.
func OpenCartHandler(w http.ResponseWriter, r *http.Request) {
	store, ctx := storeFor(r)
	writeCart(w, r, http.StatusOK, store.State(ctx), true, triggerOpen)
}

// CloseCartHandler hides the drawer; used by the close button and the overlay.
func CloseCartHandler(w http.ResponseWriter, r *http.Request) {
	store, ctx := storeFor(r)
	writeCart(w, r, http.StatusOK, store.State(ctx), false, triggerClose)
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
