package storage

import "sync"

// MemoryStore is an in-memory, thread-safe Store. It is the tab-scoped
// storage analog: its contents live exactly as long as the process.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string

	// FailWrites makes Set and Delete report an error without mutating
	// state. Used by tests to exercise degraded persistence paths.
	FailWrites bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errWriteFailed
	}
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errWriteFailed
	}
	delete(m.values, key)
	return nil
}
