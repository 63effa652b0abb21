package cacheinfra

import (
	"context"

	"github.com/viccon/sturdyc"

	"github.com/goliatone/go-todo-service/todocache"
)

// Memory is the in-process cache backend. It wraps a sturdyc client holding
// raw snapshot payloads; the TTL is the client-wide TTL from the config, so
// every entry shares the fixed lifetime the service expects.
type Memory struct {
	client *sturdyc.Client[[]byte]
}

// NewMemory validates the configuration and initializes the sturdyc client.
func NewMemory(cfg todocache.Config) (*Memory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client := sturdyc.New[[]byte](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
	)
	return &Memory{client: client}, nil
}

// Get implements todocache.Cache. Expired entries report ok=false.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	data, ok := m.client.Get(key)
	return data, ok, nil
}

// Set implements todocache.Cache with the client-wide TTL.
func (m *Memory) Set(_ context.Context, key string, data []byte) error {
	m.client.Set(key, data)
	return nil
}

// Delete implements todocache.Cache. Deleting an absent key is not an error.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.client.Delete(key)
	return nil
}

// Close implements todocache.Cache. The in-process backend has nothing to
// release.
func (m *Memory) Close() error {
	return nil
}

var _ todocache.Cache = (*Memory)(nil)
