// Package cart owns the shopping cart: the Store that mutates and persists
// line items, and the View that projects a State into rendered rows.
package cart

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/lesoria-cart/internal/models"
	"github.com/rogerio-castellano/lesoria-cart/internal/repo"
)

// DefaultStorageKey names the persisted cart entry inside a storage scope.
const DefaultStorageKey = "lesoria-cart"

// Store is the single owner of one cart. Storage is authoritative: every read and
// mutation starts from the persisted value, so an evicted or rewritten entry is
// never served from memory. A failed write leaves the items as they were loaded.
type Store struct {
	mu      sync.Mutex
	storage repo.KeyValueStore
	key     string
	items   []models.LineItem
	logger  *zap.Logger
}

// Open loads the cart persisted under key. Missing or malformed data yields an empty cart.
func Open(ctx context.Context, storage repo.KeyValueStore, key string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if key == "" {
		key = DefaultStorageKey
	}
	s := &Store{storage: storage, key: key, logger: logger}
	if err := s.reload(ctx); err != nil {
		s.logger.Warn("cart load failed, starting empty", zap.String("key", s.key), zap.Error(err))
	}
	return s
}

// reload replaces the items with the persisted cart. An absent or unreadable entry
// is an empty cart; only a storage error is returned, leaving the items untouched.
// Callers hold s.mu, except Open.
func (s *Store) reload(ctx context.Context) error {
	raw, err := s.storage.Get(ctx, s.key)
	if errors.Is(err, repo.ErrKeyNotFound) {
		s.items = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}

	items, err := decodeItems(raw)
	if err != nil {
		s.logger.Warn("discarding unreadable cart", zap.String("key", s.key), zap.Error(err))
		s.items = nil
		return nil
	}
	s.items = items
	return nil
}

// State returns a snapshot of the persisted cart. If storage cannot be read the
// last loaded items are returned.
func (s *Store) State(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reload(ctx); err != nil {
		s.logger.Warn("cart reload failed, serving last loaded items", zap.String("key", s.key), zap.Error(err))
	}
	return newState(s.items)
}

// AddItem appends a new line with qty 1, or bumps the qty of an existing line.
// The stored name and price of an existing line are kept.
func (s *Store) AddItem(ctx context.Context, id, name string, price float64) (State, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return s.State(ctx), fmt.Errorf("%w: id is required", ErrInvalidItem)
	}
	if !validPrice(price) {
		return s.State(ctx), fmt.Errorf("%w: price %v", ErrInvalidItem, price)
	}

	return s.mutate(ctx, func(items []models.LineItem) ([]models.LineItem, error) {
		if i := indexOf(items, id); i >= 0 {
			items[i].Qty++
			return items, nil
		}
		return append(items, models.LineItem{ID: id, Name: strings.TrimSpace(name), Price: price, Qty: 1}), nil
	})
}

// Increment raises the qty of an existing line by one.
func (s *Store) Increment(ctx context.Context, id string) (State, error) {
	return s.mutate(ctx, func(items []models.LineItem) ([]models.LineItem, error) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %q", ErrItemNotFound, id)
		}
		items[i].Qty++
		return items, nil
	})
}

// Decrement lowers the qty of a line by one and removes the line when it reaches zero.
// An unknown id leaves the cart as it is.
func (s *Store) Decrement(ctx context.Context, id string) (State, error) {
	return s.mutate(ctx, func(items []models.LineItem) ([]models.LineItem, error) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, errUnchanged
		}
		items[i].Qty--
		if items[i].Qty <= 0 {
			items = slices.Delete(items, i, i+1)
		}
		return items, nil
	})
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) (State, error) {
	return s.mutate(ctx, func([]models.LineItem) ([]models.LineItem, error) {
		return []models.LineItem{}, nil
	})
}

// errUnchanged lets a mutation report a no-op without an error reaching the caller.
var errUnchanged = errors.New("unchanged")

// mutate reloads the persisted cart, applies fn to a copy, persists the result and
// only then commits it.
func (s *Store) mutate(ctx context.Context, fn func([]models.LineItem) ([]models.LineItem, error)) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reload(ctx); err != nil {
		s.logger.Error("cart reload failed", zap.String("key", s.key), zap.Error(err))
		return newState(s.items), err
	}

	next, err := fn(slices.Clone(s.items))
	if errors.Is(err, errUnchanged) {
		return newState(s.items), nil
	}
	if err != nil {
		return newState(s.items), err
	}

	raw, err := encodeItems(next)
	if err != nil {
		return newState(s.items), err
	}
	if err := s.storage.Set(ctx, s.key, raw); err != nil {
		s.logger.Error("cart persist failed", zap.String("key", s.key), zap.Error(err))
		return newState(s.items), fmt.Errorf("persist cart: %w", err)
	}

	s.items = next
	return newState(s.items), nil
}

func indexOf(items []models.LineItem, id string) int {
	return slices.IndexFunc(items, func(it models.LineItem) bool { return it.ID == id })
}
