package models

// LineItem is one product entry in a cart.
type LineItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

// Subtotal returns price times quantity for the line.
func (i LineItem) Subtotal() float64 {
	return i.Price * float64(i.Qty)
}
