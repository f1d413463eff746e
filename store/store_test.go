package store

import (
	"context"
	"errors"
	"testing"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	in := record{Name: "napa", Count: 3}
	if err := s.Put(ctx, "k1", in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out record
	if err := s.Get(ctx, "k1", &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: got %+v want %+v", out, in)
	}
}

func TestMemoryStoreMissingKey(t *testing.T) {
	s := NewMemoryStore()
	var out record
	err := s.Get(context.Background(), "absent", &out)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get absent key: got %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.Put(ctx, "k", record{Name: "x"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	var out record
	if err := s.Get(ctx, "k", &out); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after Delete: got %v, want ErrNotFound", err)
	}
	// deleting again is a no-op
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete absent: %v", err)
	}
}

func TestCorruptionIsPerKey(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.Put(ctx, "good", record{Name: "ok"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	s.PutRaw("bad", "{not json")

	var out record
	if err := s.Get(ctx, "bad", &out); !errors.Is(err, ErrCorrupted) {
		t.Fatalf("Get corrupted key: got %v, want ErrCorrupted", err)
	}
	if err := s.Get(ctx, "good", &out); err != nil {
		t.Fatalf("good key affected by corrupted sibling: %v", err)
	}
	if out.Name != "ok" {
		t.Fatalf("good key value = %q, want %q", out.Name, "ok")
	}
}

func TestNamespacedStore(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	ns := Namespaced(inner, "pres_")

	if err := ns.Put(ctx, "alice", record{Name: "a"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// the value lives under the prefixed key in the inner store
	var out record
	if err := inner.Get(ctx, "pres_alice", &out); err != nil {
		t.Fatalf("inner Get: %v", err)
	}

	// unprefixed siblings are unreachable through the namespace
	if err := inner.Put(ctx, "alice", record{Name: "bare"}); err != nil {
		t.Fatalf("inner Put: %v", err)
	}
	if err := ns.Get(ctx, "alice", &out); err != nil {
		t.Fatalf("ns Get: %v", err)
	}
	if out.Name != "a" {
		t.Fatalf("namespace leaked: got %q, want %q", out.Name, "a")
	}

	if err := ns.Delete(ctx, "alice"); err != nil {
		t.Fatalf("ns Delete: %v", err)
	}
	if err := inner.Get(ctx, "pres_alice", &out); !errors.Is(err, ErrNotFound) {
		t.Fatalf("prefixed key after ns Delete: got %v, want ErrNotFound", err)
	}
}
