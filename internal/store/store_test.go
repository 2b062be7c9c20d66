package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func testKV(t *testing.T, s KV) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, KeyLastLocation); err != nil || ok {
		t.Fatalf("Get on empty store = ok %v, err %v; want absent", ok, err)
	}

	if err := s.Set(ctx, KeyLastLocation, `{"name":"London"}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set(ctx, KeyLastLocation, `{"name":"Paris"}`); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	v, ok, err := s.Get(ctx, KeyLastLocation)
	if err != nil || !ok {
		t.Fatalf("Get = ok %v, err %v", ok, err)
	}
	if v != `{"name":"Paris"}` {
		t.Errorf("Get = %q, want overwritten value", v)
	}

	if _, ok, _ := s.Get(ctx, KeyLastWeather); ok {
		t.Error("unrelated key must stay absent")
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	testKV(t, s)

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Set(context.Background(), "k", "v"); !errors.Is(err, ErrClosed) {
		t.Errorf("Set after Close = %v, want ErrClosed", err)
	}
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Set(ctx, "k", "v"); err == nil {
		t.Error("Set with canceled context must fail")
	}
}

func TestSQLiteStore_InMemory(t *testing.T) {
	s, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	testKV(t, s)
}

func TestSQLiteStore_FilePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "screen.db")
	ctx := context.Background()

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := s.Set(ctx, KeyLastWeather, `{"current":{}}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	v, ok, err := s.Get(ctx, KeyLastWeather)
	if err != nil || !ok || v != `{"current":{}}` {
		t.Fatalf("Get after reopen = %q, %v, %v", v, ok, err)
	}
}

func TestSQLiteStore_ClosedFails(t *testing.T) {
	s, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	_ = s.Close()

	if _, _, err := s.Get(context.Background(), KeyLastLocation); err == nil {
		t.Error("Get on closed store must return an error")
	}
}
