// ABOUTME: In-memory backend store for tests and local development
// ABOUTME: Etags are random tokens regenerated on every write

package backend

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is a process-local Store backed by a map. It honors the same
// conditional-write contract as the production backends.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Record)}
}

// Get returns the record stored under key.
func (m *MemoryStore) Get(ctx context.Context, key string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.entries[key]
	if !ok {
		return Record{}, ErrNotFound
	}

	// Copy so callers cannot mutate stored bytes.
	out := Record{Bytes: make([]byte, len(rec.Bytes)), Etag: rec.Etag}
	copy(out.Bytes, rec.Bytes)
	return out, nil
}

// Put stores value under key, enforcing the expected etag when given.
func (m *MemoryStore) Put(ctx context.Context, key string, value []byte, expectedEtag string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if expectedEtag != "" {
		cur, ok := m.entries[key]
		if !ok {
			return "", ErrNotFound
		}
		if cur.Etag != expectedEtag {
			return "", ErrConflict
		}
	}

	stored := Record{Bytes: make([]byte, len(value)), Etag: newEtag()}
	copy(stored.Bytes, value)
	m.entries[key] = stored

	return stored.Etag, nil
}

// List returns all keys with the given prefix, sorted.
func (m *MemoryStore) List(ctx context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var keys []string
	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func newEtag() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}
	return hex.EncodeToString(buf)
}
