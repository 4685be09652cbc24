package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func TestRedisKeyValueStore(t *testing.T) {
	ctx := context.Background()
	_, rdb := newMiniRedis(t)
	r := NewRedisKeyValueStore(rdb, 0)

	if _, err := r.Get(ctx, "lesoria-cart"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}

	payload := `[{"id":"p1","name":"Candle","price":500,"qty":1}]`
	if err := r.Set(ctx, "lesoria-cart", payload); err != nil {
		t.Fatal(err)
	}
	got, err := r.Get(ctx, "lesoria-cart")
	if err != nil || got != payload {
		t.Errorf("expected %s, got %q (err %v)", payload, got, err)
	}

	if err := r.Delete(ctx, "lesoria-cart"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Get(ctx, "lesoria-cart"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound after delete, got %v", err)
	}
}

func TestRedisKeyValueStore_TTLEvictsCart(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newMiniRedis(t)
	r := NewRedisKeyValueStore(rdb, time.Hour)

	if err := r.Set(ctx, "v1:lesoria-cart", "[]"); err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL("v1:lesoria-cart"); ttl != time.Hour {
		t.Errorf("expected ttl 1h, got %v", ttl)
	}

	mr.FastForward(2 * time.Hour)
	if _, err := r.Get(ctx, "v1:lesoria-cart"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected key evicted, got %v", err)
	}
}

func TestRedisKeyValueStore_ConnectionError(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	r := NewRedisKeyValueStore(rdb, 0)
	mr.Close()

	err := r.Set(context.Background(), "k", "v")
	if err == nil {
		t.Fatal("expected error with redis down")
	}
	if errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected a connection error, got %v", err)
	}
}
