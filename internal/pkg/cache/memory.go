package cache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// memoryCache backs CATALOG_STORE=memory and unit tests. TTLs are ignored.
type memoryCache struct {
	mu          sync.RWMutex
	data        map[string]string
	serviceName string
}

func NewMemoryCache(serviceName string) Cache {
	return &memoryCache{data: make(map[string]string), serviceName: serviceName}
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key], nil
}

func (m *memoryCache) MGet(_ context.Context, keys ...string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = m.data[k]
	}
	return out, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryCache) SetNX(_ context.Context, key string, value string, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.data[key]; exists {
		return false, nil
	}
	m.data[key] = value
	return true, nil
}

func (m *memoryCache) Delete(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.data[key]; !exists {
		return false, nil
	}
	delete(m.data, key)
	return true, nil
}

func (m *memoryCache) Update(_ context.Context, key string, fn func(string) (string, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, exists := m.data[key]
	if !exists {
		return ErrMiss
	}
	next, err := fn(cur)
	if err != nil {
		return err
	}
	m.data[key] = next
	return nil
}

func (m *memoryCache) GenerateKey(operation, key string) string {
	return fmt.Sprintf("%s:%s:%s", m.serviceName, operation, key)
}
