package cacheinfra

import (
	"container/list"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/viccon/sturdyc"
)

// Clock is the time source used for entry timestamps and expiry checks.
type Clock = sturdyc.Clock

// TestClock is a manually advanced Clock for deterministic expiry tests.
type TestClock = sturdyc.TestClock

// NewTestClock returns a TestClock frozen at t.
func NewTestClock(t time.Time) *TestClock {
	return sturdyc.NewTestClock(t)
}

// Config holds the configuration for the sturdyc memory cache adapter.
type Config struct {
	// Capacity is the hard upper bound of entries kept in memory.
	// Must be greater than 0. Default: 100
	Capacity int

	// NumShards determines the number of sturdyc shards.
	// Must be greater than 0. Default: 1
	NumShards int

	// TTL is the time-to-live for cached entries. Entries older than TTL are
	// reported absent and removed on the next read.
	// Must be greater than 0. Default: 60 minutes
	TTL time.Duration

	// EvictionPercentage is passed to sturdyc for its own shard-level eviction.
	// The adapter keeps sturdyc below its capacity, so this only matters as a
	// safety net. Must be between 1-100.
	EvictionPercentage int

	// Clock overrides the wall clock. Nil uses the real clock.
	Clock Clock

	// Logger receives debug lines for hits, sets and evictions.
	// Nil uses the logrus standard logger.
	Logger logrus.FieldLogger
}

// DefaultConfig returns a Config sized for a single reader session.
func DefaultConfig() Config {
	return Config{
		Capacity:           100,
		NumShards:          1,
		TTL:                60 * time.Minute,
		EvictionPercentage: 10,
	}
}

// ToSturdycOptions converts the Config to sturdyc.Option slice.
// Expiry is evaluated lazily on read, so continuous background eviction is
// always disabled.
func (c Config) ToSturdycOptions() []sturdyc.Option {
	options := []sturdyc.Option{sturdyc.WithNoContinuousEvictions()}

	if c.Clock != nil {
		options = append(options, sturdyc.WithClock(c.Clock))
	}

	return options
}

// Validate checks if the configuration values are valid.
// Returns an error if any configuration parameter is invalid.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}

	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}

	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}

	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}

	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// Memory is a bounded, TTL based memory cache. Values and expiry live in a
// sturdyc client; the adapter tracks insertion order so that a full cache
// always evicts the least-recently-inserted key.
type Memory struct {
	mu       sync.Mutex
	client   *sturdyc.Client[any]
	capacity int
	order    *list.List // front is the oldest insertion
	index    map[string]*list.Element
	logger   logrus.FieldLogger
}

// NewMemory creates a new sturdyc backed memory cache.
// It validates the configuration and initializes a sturdyc client sized so
// that sturdyc's own eviction never runs before the adapter's.
func NewMemory(cfg Config) (*Memory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	// sturdyc splits capacity evenly across shards; leave one spare slot per shard.
	headroom := (cfg.Capacity + 1) * cfg.NumShards

	client := sturdyc.New[any](
		headroom,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		cfg.ToSturdycOptions()...,
	)

	return &Memory{
		client:   client,
		capacity: cfg.Capacity,
		order:    list.New(),
		index:    make(map[string]*list.Element),
		logger:   logger,
	}, nil
}

// Get implements cache.MemoryCache.Get.
func (m *Memory) Get(key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, tracked := m.index[key]
	if !tracked {
		return nil, false
	}

	value, ok := m.client.Get(key)
	if !ok {
		m.removeElement(elem)
		m.logger.WithField("key", key).Debug("[CACHE] expired")
		return nil, false
	}

	m.logger.WithField("key", key).Debug("[CACHE] hit")
	return value, true
}

// Set implements cache.MemoryCache.Set.
// Re-setting a key counts as a fresh insertion.
func (m *Memory) Set(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if elem, ok := m.index[key]; ok {
		m.order.MoveToBack(elem)
	} else {
		for len(m.index) >= m.capacity {
			oldest := m.order.Front()
			m.logger.WithField("key", oldest.Value).Debug("[CACHE] evicted")
			m.removeElement(oldest)
		}
		m.index[key] = m.order.PushBack(key)
	}

	m.client.Set(key, value)
	m.logger.WithField("key", key).Debug("[CACHE] set")
}

// Has implements cache.MemoryCache.Has.
func (m *Memory) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete removes a single entry.
func (m *Memory) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if elem, ok := m.index[key]; ok {
		m.removeElement(elem)
	}
}

// Clear removes every entry.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.index {
		m.client.Delete(key)
	}
	m.order.Init()
	m.index = make(map[string]*list.Element)
}

// Len returns the number of tracked entries, including expired entries that
// have not been read since they expired.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.index)
}

func (m *Memory) removeElement(elem *list.Element) {
	key := elem.Value.(string)
	m.order.Remove(elem)
	delete(m.index, key)
	m.client.Delete(key)
}
