package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"phCV/internal/cv"
)

func TestMemoryStore_PutGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	data := cv.AddCustomSection(cv.Default(), cv.StyleReference)
	id, err := store.Put(ctx, data)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if id == "" {
		t.Fatal("expected opaque id")
	}

	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.CustomSections) != 1 {
		t.Fatal("cached aggregate must round-trip")
	}

	if _, err := store.Get(ctx, "no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10 * time.Minute)

	current := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return current }

	id, err := store.Put(ctx, cv.Default())
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	current = current.Add(9 * time.Minute)
	if _, err := store.Get(ctx, id); err != nil {
		t.Fatalf("entry inside the window must be readable: %v", err)
	}

	current = current.Add(2 * time.Minute)
	if _, err := store.Get(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired entry must be dropped, got %v", err)
	}
}

func TestMemoryStore_SnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	data := cv.Default()
	id, _ := store.Put(ctx, data)

	// 调用方继续改动自己的副本不能影响缓存里的快照。
	data.PersonalDetails.FullName = "Someone Else"

	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PersonalDetails.FullName != cv.Default().PersonalDetails.FullName {
		t.Fatal("cached snapshot must be isolated from caller mutations")
	}
}
