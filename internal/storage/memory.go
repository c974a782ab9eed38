package storage

import (
	"context"
	"sync"

	"github.com/vzahanych/photo-app/internal/config"
)

// Memory keeps blobs in memory. Useful for tests and local dev.
type Memory struct {
	mu    sync.RWMutex
	cfg   config.StorageConfig
	blobs map[string]Object
}

type Object struct {
	Data        []byte
	ContentType string
}

func NewMemory(cfg config.StorageConfig) *Memory {
	return &Memory{cfg: cfg, blobs: make(map[string]Object)}
}

func (m *Memory) Put(_ context.Context, key string, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = Object{Data: append([]byte(nil), data...), ContentType: contentType}
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

func (m *Memory) DeleteBatch(_ context.Context, keys []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.blobs, key)
	}
	return nil
}

func (m *Memory) URL(key string) string {
	return objectURL(m.cfg, key)
}

// Get returns a stored object.
func (m *Memory) Get(key string) (Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.blobs[key]
	return obj, ok
}

func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.blobs))
	for k := range m.blobs {
		keys = append(keys, k)
	}
	return keys
}

var _ ObjectStorage = (*Memory)(nil)
