package repository

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultMemoryCacheEntries = 10000
	memorySweepInterval       = time.Minute
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCache is a process-local CacheRepository used when no Redis address
// is configured. Expired entries are swept on writes and the entry count is
// capped.
type MemoryCache struct {
	mu         sync.RWMutex
	data       map[string]memoryEntry
	maxEntries int
	lastSweep  time.Time
	now        func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheWithLimit(DefaultMemoryCacheEntries)
}

// NewMemoryCacheWithLimit caps the cache at maxEntries; non-positive values
// use DefaultMemoryCacheEntries.
func NewMemoryCacheWithLimit(maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMemoryCacheEntries
	}
	return &MemoryCache{
		data:       make(map[string]memoryEntry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	entry, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return "", false
	}
	if entry.expired(m.now()) {
		m.mu.Lock()
		delete(m.data, key)
		m.mu.Unlock()
		return "", false
	}
	return entry.value, true
}

func (m *MemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	now := m.now()
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = now.Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; !exists {
		if now.Sub(m.lastSweep) >= memorySweepInterval || len(m.data) >= m.maxEntries {
			m.sweepLocked(now)
		}
		for k := range m.data {
			if len(m.data) < m.maxEntries {
				break
			}
			delete(m.data, k)
		}
	}
	m.data[key] = entry
	return nil
}

func (m *MemoryCache) sweepLocked(now time.Time) {
	for k, e := range m.data {
		if e.expired(now) {
			delete(m.data, k)
		}
	}
	m.lastSweep = now
}

// Len reports the number of stored entries, including expired ones not yet
// swept.
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
