package cart

import "errors"

var (
	// ErrInvalidItem is returned by AddItem when the trigger data cannot form a line item.
	ErrInvalidItem = errors.New("invalid cart item")
	// ErrItemNotFound is returned by Increment for an id the cart does not hold.
	ErrItemNotFound = errors.New("cart item not found")
	// ErrUnknownAction is returned by Dispatch for an action with no handler.
	ErrUnknownAction = errors.New("unknown cart action")
)
