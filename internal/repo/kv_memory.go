package repo

import (
	"context"
	"sync"
)

// InMemoryKeyValueStore is an in-memory implementation of KeyValueStore.
type InMemoryKeyValueStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewInMemoryKeyValueStore creates a new instance of InMemoryKeyValueStore.
func NewInMemoryKeyValueStore() *InMemoryKeyValueStore {
	return &InMemoryKeyValueStore{
		values: map[string]string{},
	}
}

// Get retrieves the value stored under key.
func (r *InMemoryKeyValueStore) Get(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

// Set stores value under key, replacing any previous value.
func (r *InMemoryKeyValueStore) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.values[key] = value
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (r *InMemoryKeyValueStore) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.values, key)
	return nil
}

// Len reports how many keys are stored.
func (r *InMemoryKeyValueStore) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.values)
}
