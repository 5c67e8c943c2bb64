package cache

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/pkg/errors"
)

// minCounters keeps small caches above the admission policy's useful floor.
const minCounters = 1000

// Memory is an in-process backend for single-instance deployments.
type Memory struct {
	c *ristretto.Cache[string, []byte]
}

// NewMemory creates a ristretto-backed cache holding at most maxCostBytes of values.
func NewMemory(maxCostBytes int64) (*Memory, error) {
	if maxCostBytes <= 0 {
		return nil, errors.Errorf("memory cache max cost must be positive, got %d", maxCostBytes)
	}

	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: max(maxCostBytes/10, minCounters),
		MaxCost:     maxCostBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Memory{c: c}, nil
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	val, found := m.c.Get(key)
	if !found {
		return nil, false, nil
	}
	return val, true, nil
}

// Set waits for the write buffer to drain so a following Get observes the value.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.c.SetWithTTL(key, value, int64(len(value)), ttl)
	m.c.Wait()
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.c.Del(key)
	return nil
}

func (m *Memory) Close() error {
	m.c.Close()
	return nil
}

var _ Cache = (*Memory)(nil)
