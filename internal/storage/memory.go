package storage

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

// NewMemoryStore returns a process-local store.
func NewMemoryStore() Store {
	return &memoryStore{data: make(map[string]map[string]string)}
}

func (m *memoryStore) Get(_ context.Context, ns, key string) (string, bool, error) {
	if ns == "" {
		return "", false, ErrEmptyNamespace
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[ns][key]
	return val, ok, nil
}

func (m *memoryStore) GetMany(_ context.Context, ns string, keys ...string) (map[string]string, error) {
	if ns == "" {
		return nil, ErrEmptyNamespace
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(keys))
	bucket := m.data[ns]
	for _, key := range keys {
		if val, ok := bucket[key]; ok {
			out[key] = val
		}
	}
	return out, nil
}

func (m *memoryStore) SetMany(ctx context.Context, ns string, values map[string]string) error {
	return m.Apply(ctx, ns, values, nil)
}

func (m *memoryStore) Delete(ctx context.Context, ns string, keys ...string) error {
	return m.Apply(ctx, ns, nil, keys)
}

func (m *memoryStore) Apply(_ context.Context, ns string, set map[string]string, del []string) error {
	if ns == "" {
		return ErrEmptyNamespace
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	bucket, ok := m.data[ns]
	if !ok {
		if len(set) == 0 {
			return nil
		}
		bucket = make(map[string]string, len(set))
		m.data[ns] = bucket
	}
	for key, val := range set {
		bucket[key] = val
	}
	for _, key := range del {
		delete(bucket, key)
	}
	if len(bucket) == 0 {
		delete(m.data, ns)
	}
	return nil
}
