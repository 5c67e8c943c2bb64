// Package cache implements the read-through cache in front of the recipe
// document store.
package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

const (
	DriverRedis  = "redis"
	DriverMemory = "memory"
	DriverNone   = "none"
)

var ErrUnknownDriver = errors.New("cache: unknown driver")

//go:generate mockgen -package mockedcache -destination ../../mocks/cache/cache.go . Cache

// Cache is a byte-oriented key-value store with per-entry TTL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Config struct {
	Driver  string
	URL     string
	MaxCost int64
}

// Open builds the backend selected by config.Driver. It returns a nil Cache
// for the "none" driver.
func Open(ctx context.Context, config Config) (Cache, error) {
	switch config.Driver {
	case DriverRedis:
		client, err := OpenRedis(ctx, config.URL)
		if err != nil {
			return nil, err
		}
		return NewRedis(client), nil
	case DriverMemory:
		memory, err := NewMemory(config.MaxCost)
		if err != nil {
			return nil, errors.Wrap(err, "create memory cache")
		}
		return memory, nil
	case DriverNone, "":
		return nil, nil
	default:
		return nil, errors.Wrapf(ErrUnknownDriver, "%q", config.Driver)
	}
}
