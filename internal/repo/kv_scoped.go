package repo

import "context"

// ScopedKeyValueStore confines every key to one scope, so two visitors can use
// the same entry name without seeing each other's values.
type ScopedKeyValueStore struct {
	inner KeyValueStore
	scope string
}

func Scoped(inner KeyValueStore, scope string) *ScopedKeyValueStore {
	return &ScopedKeyValueStore{inner: inner, scope: scope}
}

func (s *ScopedKeyValueStore) key(k string) string {
	return s.scope + ":" + k
}

func (s *ScopedKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	return s.inner.Get(ctx, s.key(key))
}

func (s *ScopedKeyValueStore) Set(ctx context.Context, key, value string) error {
	return s.inner.Set(ctx, s.key(key), value)
}

func (s *ScopedKeyValueStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.key(key))
}
