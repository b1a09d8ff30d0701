package storage

import (
	"context"
	"sync"

	"github.com/ccoin/shieldpool/internal/pool"
)

// MemoryStore is an in-memory descriptor store, grounded on the
// teacher's InMemoryTreeStore/InMemoryNullifierStore pattern (a single
// RWMutex-guarded map). The daemon uses it in place of PostgreSQL when
// the -memory-store flag is set.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[pool.Handle]pool.Descriptor
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[pool.Handle]pool.Descriptor)}
}

// SaveDescriptor upserts a pool's descriptor.
func (m *MemoryStore) SaveDescriptor(_ context.Context, id pool.Handle, d pool.Descriptor) error {
	if d.SchemaVersion > currentSchemaVersion {
		return ErrSchemaMismatch
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[id] = d
	return nil
}

// GetDescriptor loads a pool's descriptor.
func (m *MemoryStore) GetDescriptor(_ context.Context, id pool.Handle) (pool.Descriptor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.rows[id]
	if !ok {
		return pool.Descriptor{}, ErrNotFound
	}
	return d, nil
}
