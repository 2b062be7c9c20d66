package store

import (
	"context"
	"errors"
	"sync"
)

// Keys of the two persisted blobs.
const (
	KeyLastLocation = "lastLocation"
	KeyLastWeather  = "lastWeather"
)

var (
	// ErrNotFound is returned by helpers that need a value that was never set.
	ErrNotFound = errors.New("no value stored for key")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("store is closed")
)

// KV is the local key-value persistence. Values are opaque strings and Set
// always overwrites.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// MemoryStore is a concurrency-safe in-memory KV, used in tests and when no
// store path is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]string
	closed bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", false, ErrClosed
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.data[key] = value
	return nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
