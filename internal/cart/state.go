package cart

import "github.com/rogerio-castellano/lesoria-cart/internal/models"

// State is a read-only snapshot of a cart with its derived aggregates.
type State struct {
	Items []models.LineItem `json:"items"`
	Total float64           `json:"total"`
	Count int               `json:"count"`
}

func newState(items []models.LineItem) State {
	st := State{Items: make([]models.LineItem, len(items))}
	copy(st.Items, items)
	for _, it := range items {
		st.Total += it.Subtotal()
		st.Count += it.Qty
	}
	return st
}

// Empty reports whether the cart holds no items.
func (s State) Empty() bool {
	return s.Count == 0
}
