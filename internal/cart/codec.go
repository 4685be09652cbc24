package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/rogerio-castellano/lesoria-cart/internal/models"
)

// storedItem mirrors the persisted layout. Pointers tell a missing field from a zero value.
type storedItem struct {
	ID    *string  `json:"id"`
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
	Qty   *int     `json:"qty"`
}

var errMalformed = errors.New("malformed cart data")

// decodeItems parses the persisted array. Any structural problem rejects the whole payload.
func decodeItems(raw string) ([]models.LineItem, error) {
	var stored []storedItem
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformed, err)
	}
	if stored == nil {
		// "null" is valid JSON but not an array.
		return nil, fmt.Errorf("%w: not an array", errMalformed)
	}

	items := make([]models.LineItem, 0, len(stored))
	seen := make(map[string]struct{}, len(stored))
	for i, s := range stored {
		if s.ID == nil || s.Name == nil || s.Price == nil || s.Qty == nil {
			return nil, fmt.Errorf("%w: item %d is missing fields", errMalformed, i)
		}
		id := strings.TrimSpace(*s.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: item %d has an empty id", errMalformed, i)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", errMalformed, id)
		}
		if !validPrice(*s.Price) {
			return nil, fmt.Errorf("%w: item %q has price %v", errMalformed, id, *s.Price)
		}
		if *s.Qty < 1 {
			return nil, fmt.Errorf("%w: item %q has qty %d", errMalformed, id, *s.Qty)
		}
		seen[id] = struct{}{}
		items = append(items, models.LineItem{ID: id, Name: *s.Name, Price: *s.Price, Qty: *s.Qty})
	}
	return items, nil
}

func encodeItems(items []models.LineItem) (string, error) {
	if items == nil {
		items = []models.LineItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(b), nil
}

func validPrice(p float64) bool {
	return p >= 0 && !math.IsInf(p, 0) && !math.IsNaN(p)
}
