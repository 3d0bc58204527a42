package bolt

import (
	"bytes"
	"context"
	"testing"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), "test.db")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	want := []byte(`{"some":"value"}`)
	if err := s.Put(ctx, "k1", want); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := s.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestGetAbsentKeyReturnsNil(t *testing.T) {
	s := setupStore(t)

	got, err := s.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("absent key returned %s, want nil", got)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "k1", []byte("v")); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "k1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, "k1"); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
	got, err := s.Get(ctx, "k1")
	if err != nil || got != nil {
		t.Errorf("deleted key still present: %s (err %v)", got, err)
	}
}

func TestKeysPrefixScanSorted(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	for _, k := range []string{"arch-3", "arch-1", "other", "arch-2"} {
		if err := s.Put(ctx, k, []byte("x")); err != nil {
			t.Fatal(err)
		}
	}

	keys, err := s.Keys(ctx, "arch-")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	want := []string{"arch-1", "arch-2", "arch-3"}
	if len(keys) != len(want) {
		t.Fatalf("got %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestValuesSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(dir, "test.db")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, "k1", []byte("persisted")); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s2, err := Open(dir, "test.db")
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	got, err := s2.Get(ctx, "k1")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "persisted" {
		t.Errorf("after reopen got %s", got)
	}
}
