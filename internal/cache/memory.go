package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-process Store backed by go-cache.
type Memory struct {
	items *gocache.Cache
}

func NewMemory(defaultTTL time.Duration) *Memory {
	return &Memory{items: gocache.New(defaultTTL, 2*defaultTTL)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, found := m.items.Get(key)
	if !found {
		return nil, false, nil
	}
	return v.([]byte), true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.items.Set(key, value, ttl)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.items.Delete(key)
	return nil
}

func (m *Memory) Flush(context.Context) error {
	m.items.Flush()
	return nil
}

func (m *Memory) Len() int {
	return m.items.ItemCount()
}

func (m *Memory) Type() string {
	return "memory"
}

func (m *Memory) Close() {}

var _ Store = (*Memory)(nil)
