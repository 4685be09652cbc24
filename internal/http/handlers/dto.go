package handlers

import "encoding/json"

// AddItemRequest carries the data attributes of a product card. Price arrives
// string-encoded from the card but a JSON number is accepted too.
type AddItemRequest struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Price json.Number `json:"price"`
}

type CartActionRequest struct {
	Action string `json:"action"`
	ID     string `json:"id"`
}

type CartItemResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

type CartStateResponse struct {
	Items []CartItemResponse `json:"items"`
	Total float64            `json:"total"`
	Count int                `json:"count"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func jsonNumber(s string) json.Number {
	return json.Number(s)
}
