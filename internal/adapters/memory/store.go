// Package memory contains in-memory implementations of the ByteStore and Bus
// ports, used by tests and by offline single-instance runs.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Store implements secondary.ByteStore in memory.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte

	// FailPuts makes every Put return this error, simulating a full or
	// unavailable backing store.
	FailPuts error
}

// NewStore creates an empty in-memory byte store.
func NewStore() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Get returns the value at key, nil when absent.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Put stores value at key.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if s.FailPuts != nil {
		return s.FailPuts
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	s.data[key] = v
	return nil
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Keys returns every key with the given prefix, sorted ascending.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var keys []string
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

// Corrupt mutates the stored bytes at key in place, for integrity tests.
func (s *Store) Corrupt(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.data[key]; ok && len(v) > 0 {
		v[len(v)/2] ^= 0xff
	}
}
