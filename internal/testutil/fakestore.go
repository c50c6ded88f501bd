// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"
)

// FakeStore is an in-memory kvstore.Store that counts writes and can be
// told to fail.
type FakeStore struct {
	mu     sync.Mutex
	values map[string][]byte

	// Writes counts successful Set calls.
	Writes int

	// Error injection for testing
	GetErr   error
	SetErr   error
	CloseErr error
	Closed   bool
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{values: make(map[string][]byte)}
}

// Put seeds a raw value without counting a write.
func (f *FakeStore) Put(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = []byte(value)
}

// Value returns the raw stored value for key.
func (f *FakeStore) Value(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return string(v), ok
}

// Get implements kvstore.Store.
func (f *FakeStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if f.GetErr != nil {
		return nil, false, f.GetErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok, nil
}

// Set implements kvstore.Store.
func (f *FakeStore) Set(ctx context.Context, key string, value []byte) error {
	if f.SetErr != nil {
		return f.SetErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = append([]byte(nil), value...)
	f.Writes++
	return nil
}

// Close implements kvstore.Store.
func (f *FakeStore) Close() error {
	f.Closed = true
	return f.CloseErr
}
