package cache

import (
	"time"

	"github.com/goliatone/go-reading-cache/internal/cacheinfra"
	"github.com/sirupsen/logrus"
)

// Clock is the time source used by the memory cache.
type Clock = cacheinfra.Clock

// TestClock is a Clock that only moves when told to.
type TestClock = cacheinfra.TestClock

// NewTestClock returns a TestClock frozen at t.
func NewTestClock(t time.Time) *TestClock {
	return cacheinfra.NewTestClock(t)
}

// Config exposes memory cache configuration options for consumers of the cache package.
type Config struct {
	Capacity           int
	NumShards          int
	TTL                time.Duration
	EvictionPercentage int
	Clock              Clock
	Logger             logrus.FieldLogger
}

// DefaultConfig returns a Config populated with sensible defaults:
// 100 entries, one shard, 60 minute TTL.
func DefaultConfig() Config {
	return convertFromInternal(cacheinfra.DefaultConfig())
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return c.toInternal().Validate()
}

// NewMemoryCache constructs the default memory cache implementation using the provided configuration.
func NewMemoryCache(cfg Config) (MemoryCache, error) {
	memory, err := cacheinfra.NewMemory(cfg.toInternal())
	if err != nil {
		return nil, err
	}
	return memory, nil
}

func (c Config) toInternal() cacheinfra.Config {
	return cacheinfra.Config{
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		TTL:                c.TTL,
		EvictionPercentage: c.EvictionPercentage,
		Clock:              c.Clock,
		Logger:             c.Logger,
	}
}

func convertFromInternal(cfg cacheinfra.Config) Config {
	return Config{
		Capacity:           cfg.Capacity,
		NumShards:          cfg.NumShards,
		TTL:                cfg.TTL,
		EvictionPercentage: cfg.EvictionPercentage,
		Clock:              cfg.Clock,
		Logger:             cfg.Logger,
	}
}
