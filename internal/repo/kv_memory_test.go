package repo

import (
	"context"
	"errors"
	"testing"
)

func TestInMemoryKeyValueStore(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryKeyValueStore()

	if _, err := r.Get(ctx, "missing"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}

	if err := r.Set(ctx, "k", "v1"); err != nil {
		t.Fatal(err)
	}
	if err := r.Set(ctx, "k", "v2"); err != nil {
		t.Fatal(err)
	}
	got, err := r.Get(ctx, "k")
	if err != nil || got != "v2" {
		t.Errorf("expected v2, got %q (err %v)", got, err)
	}

	if err := r.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if err := r.Delete(ctx, "k"); err != nil {
		t.Errorf("expected deleting an absent key to succeed, got %v", err)
	}
	if _, err := r.Get(ctx, "k"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound after delete, got %v", err)
	}
}

func TestScopedKeyValueStore(t *testing.T) {
	ctx := context.Background()
	inner := NewInMemoryKeyValueStore()
	a := Scoped(inner, "visitor-a")
	b := Scoped(inner, "visitor-b")

	if err := a.Set(ctx, "lesoria-cart", "[1]"); err != nil {
		t.Fatal(err)
	}
	if err := b.Set(ctx, "lesoria-cart", "[2]"); err != nil {
		t.Fatal(err)
	}

	if got, _ := a.Get(ctx, "lesoria-cart"); got != "[1]" {
		t.Errorf("expected scope a value [1], got %q", got)
	}
	if got, _ := inner.Get(ctx, "visitor-b:lesoria-cart"); got != "[2]" {
		t.Errorf("expected prefixed key in inner store, got %q", got)
	}

	if err := a.Delete(ctx, "lesoria-cart"); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Get(ctx, "lesoria-cart"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
	if got, _ := b.Get(ctx, "lesoria-cart"); got != "[2]" {
		t.Errorf("expected scope b untouched, got %q", got)
	}
}
