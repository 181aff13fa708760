package cache

import (
	"context"
	"encoding/json"
	"path"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store implementation. Used in tests and for
// single-instance deployments that run without Redis.
type MemoryStore struct {
	mu       sync.RWMutex
	items    map[string]memoryItem
	counters map[string]int64
	expiry   map[string]time.Time
}

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items:    make(map[string]memoryItem),
		counters: make(map[string]int64),
		expiry:   make(map[string]time.Time),
	}
}

func (m *MemoryStore) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	m.mu.RLock()
	item, ok := m.items[key]
	m.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if !item.expiresAt.IsZero() && time.Now().After(item.expiresAt) {
		// Expired - clean up lazily
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		return false, nil
	}
	if err := json.Unmarshal(item.value, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	m.mu.Lock()
	m.items[key] = memoryItem{value: data, expiresAt: expiresAt}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, k := range keys {
		delete(m.items, k)
		delete(m.counters, k)
		delete(m.expiry, k)
	}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) DeletePattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k := range m.items {
		if ok, _ := path.Match(pattern, k); ok {
			delete(m.items, k)
		}
	}
	for k := range m.counters {
		if ok, _ := path.Match(pattern, k); ok {
			delete(m.counters, k)
			delete(m.expiry, k)
		}
	}
	return nil
}

func (m *MemoryStore) Increment(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if exp, ok := m.expiry[key]; ok && time.Now().After(exp) {
		delete(m.counters, key)
		delete(m.expiry, key)
	}
	m.counters[key]++
	return m.counters[key], nil
}

func (m *MemoryStore) GetInt64(_ context.Context, key string) (int64, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if exp, ok := m.expiry[key]; ok && time.Now().After(exp) {
		return 0, false, nil
	}
	v, ok := m.counters[key]
	return v, ok, nil
}

func (m *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.counters[key]; ok {
		return true, nil
	}
	item, ok := m.items[key]
	if !ok {
		return false, nil
	}
	return item.expiresAt.IsZero() || time.Now().Before(item.expiresAt), nil
}

func (m *MemoryStore) Expire(_ context.Context, key string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.counters[key]; ok {
		m.expiry[key] = time.Now().Add(ttl)
		return nil
	}
	if item, ok := m.items[key]; ok {
		item.expiresAt = time.Now().Add(ttl)
		m.items[key] = item
	}
	return nil
}

func (m *MemoryStore) TTL(_ context.Context, key string) (time.Duration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if exp, ok := m.expiry[key]; ok {
		return time.Until(exp), nil
	}
	if item, ok := m.items[key]; ok && !item.expiresAt.IsZero() {
		return time.Until(item.expiresAt), nil
	}
	return -1, nil
}

func (m *MemoryStore) Ping(_ context.Context) error { return nil }

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
