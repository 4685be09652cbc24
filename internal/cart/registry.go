package cart

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/lesoria-cart/internal/repo"
)

type registryEntry struct {
	store    *Store
	lastSeen time.Time
}

// Registry hands out one Store per visitor scope. Stores reload from storage on every
// read and mutation; the cache keeps a visitor's requests on one Store mutex.
type Registry struct {
	mu      sync.Mutex
	storage repo.KeyValueStore
	key     string
	logger  *zap.Logger
	stores  map[string]*registryEntry
	now     func() time.Time
}

func NewRegistry(storage repo.KeyValueStore, key string, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		storage: storage,
		key:     key,
		logger:  logger,
		stores:  make(map[string]*registryEntry),
		now:     time.Now,
	}
}

// Get returns the Store for scope.
func (r *Registry) Get(ctx context.Context, scope string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.stores[scope]; ok {
		e.lastSeen = r.now()
		return e.store
	}

	s := Open(ctx, repo.Scoped(r.storage, scope), r.key, r.logger.With(zap.String("scope", scope)))
	r.stores[scope] = &registryEntry{store: s, lastSeen: r.now()}
	return s
}

// Prune forgets stores not used for longer than idle. Their carts stay in storage.
func (r *Registry) Prune(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for scope, e := range r.stores {
		if r.now().Sub(e.lastSeen) > idle {
			delete(r.stores, scope)
			n++
		}
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.stores)
}

// StartPruneLoop prunes idle stores every interval until ctx is done.
func (r *Registry) StartPruneLoop(ctx context.Context, every, idle time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Prune(idle); n > 0 {
				r.logger.Debug("pruned idle carts", zap.Int("count", n))
			}
		}
	}
}
