package cart

import (
	"context"
	"fmt"
)

// Action names a row control. Rendered buttons carry it as data; Dispatch resolves it.
type Action string

const (
	ActionIncrement Action = "inc"
	ActionDecrement Action = "dec"
)

// Control is one row button bound to an action on an item.
type Control struct {
	Action Action `json:"action"`
	ItemID string `json:"id"`
	Label  string `json:"label"`
	Glyph  string `json:"glyph"`
}

var rowActions = map[Action]func(*Store, context.Context, string) (State, error){
	ActionIncrement: (*Store).Increment,
	ActionDecrement: (*Store).Decrement,
}

// ParseAction maps the raw value posted by a row button to an Action.
func ParseAction(raw string) (Action, bool) {
	a := Action(raw)
	_, ok := rowActions[a]
	return a, ok
}

// Dispatch runs the store operation bound to action for item id.
func Dispatch(ctx context.Context, s *Store, action Action, id string) (State, error) {
	fn, ok := rowActions[action]
	if !ok {
		return s.State(ctx), fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	return fn(s, ctx, id)
}

func rowControls(id string) []Control {
	return []Control{
		{Action: ActionDecrement, ItemID: id, Label: "Decrease quantity", Glyph: "−"},
		{Action: ActionIncrement, ItemID: id, Label: "Increase quantity", Glyph: "+"},
	}
}
