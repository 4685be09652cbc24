package handlers

import (
	"math"
	"strconv"
	"strings"
)

type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// validateAddItem parses the card data. The price is returned only when no errors are reported.
func validateAddItem(req AddItemRequest) (float64, []ValidationError) {
	errs := []ValidationError{}
	if strings.TrimSpace(req.ID) == "" {
		errs = append(errs, ValidationError{Field: "id", Description: "Product id is required"})
	}

	raw := strings.TrimSpace(req.Price.String())
	price, err := strconv.ParseFloat(raw, 64)
	switch {
	case raw == "":
		errs = append(errs, ValidationError{Field: "price", Description: "Price is required"})
	case err != nil || math.IsNaN(price) || math.IsInf(price, 0):
		errs = append(errs, ValidationError{Field: "price", Description: "Price must be a number"})
	case price < 0:
		errs = append(errs, ValidationError{Field: "price", Description: "Price cannot be negative"})
	}
	return price, errs
}
