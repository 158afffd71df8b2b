package kvstore

import (
	"context"
	"sync"
)

// MemoryMedium is an in-memory Medium. It backs tests and ephemeral runs
// where nothing should touch the filesystem.
type MemoryMedium struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{data: make(map[string]string)}
}

func (m *MemoryMedium) Read(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	return val, ok, nil
}

func (m *MemoryMedium) Write(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryMedium) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryMedium) Keys(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for key := range m.data {
		keys = append(keys, key)
	}
	return keys, nil
}
