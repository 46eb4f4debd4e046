package kv

import (
	"context"
	"sync"
)

// MemoryBackend keeps entries in a map. A positive quota caps the total size of
// keys plus values in bytes, the way a browser caps local storage.
type MemoryBackend struct {
	mu      sync.RWMutex
	entries map[string]string
	quota   int
	used    int
}

func NewMemoryBackend(quotaBytes int) *MemoryBackend {
	return &MemoryBackend{
		entries: make(map[string]string),
		quota:   quotaBytes,
	}
}

func (m *MemoryBackend) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *MemoryBackend) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	used := m.used
	if old, ok := m.entries[key]; ok {
		used -= len(key) + len(old)
	}
	used += len(key) + len(value)
	if m.quota > 0 && used > m.quota {
		return ErrQuotaExceeded
	}

	m.entries[key] = value
	m.used = used
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.entries[key]; ok {
		m.used -= len(key) + len(old)
		delete(m.entries, key)
	}
	return nil
}

func (m *MemoryBackend) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
