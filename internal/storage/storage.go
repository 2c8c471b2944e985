// Package storage provides the durable key-value persistence backing the
// client session. Values are opaque strings.
package storage

import "sync"

type Storage interface {
	// Read returns the value stored under key and whether it exists.
	Read(key string) (string, bool, error)
	Write(key, value string) error
	// Clear removes key. Clearing a missing key is not an error.
	Clear(key string) error
}

type Memory struct {
	mu      sync.RWMutex
	entries map[string]string
}

var _ Storage = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]string)}
}

func (m *Memory) Read(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *Memory) Write(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = value
	return nil
}

func (m *Memory) Clear(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}
