package cache

import (
	"errors"
	"testing"
	"time"
)

// mockMemoryCache for testing the typed Get function
type mockMemoryCache struct {
	values map[string]any
}

func newMockMemoryCache() *mockMemoryCache {
	return &mockMemoryCache{values: make(map[string]any)}
}

func (m *mockMemoryCache) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockMemoryCache) Set(key string, value any) { m.values[key] = value }

func (m *mockMemoryCache) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

func (m *mockMemoryCache) Delete(key string) { delete(m.values, key) }
func (m *mockMemoryCache) Clear()            { m.values = make(map[string]any) }
func (m *mockMemoryCache) Len() int          { return len(m.values) }

func TestGet_Miss(t *testing.T) {
	mock := newMockMemoryCache()

	result, err := Get[string](mock, "missing")
	if !errors.Is(err, ErrMiss) {
		t.Errorf("expected ErrMiss but got: %v", err)
	}
	if result != "" {
		t.Errorf("expected zero value but got: %q", result)
	}
}

func TestGet_NilInterfaceNoPanic(t *testing.T) {
	mock := newMockMemoryCache()
	mock.Set("test-key", nil)

	type SomeInterface interface {
		DoSomething() string
	}

	result, err := Get[SomeInterface](mock, "test-key")
	if err != nil {
		t.Errorf("expected no error but got: %v", err)
	}
	if result != nil {
		t.Errorf("expected nil result but got: %v", result)
	}
}

func TestGet_TypeAssertionFailure(t *testing.T) {
	mock := newMockMemoryCache()
	mock.Set("test-key", "wrong-type")

	result, err := Get[int](mock, "test-key")
	if !errors.Is(err, ErrInvalidResultType) {
		t.Errorf("expected ErrInvalidResultType but got: %v", err)
	}
	if result != 0 {
		t.Errorf("expected zero value (0) but got: %v", result)
	}
}

func TestGet_ValidResult(t *testing.T) {
	mock := newMockMemoryCache()
	mock.Set("test-key", "test-value")

	result, err := Get[string](mock, "test-key")
	if err != nil {
		t.Errorf("expected no error but got: %v", err)
	}
	if result != "test-value" {
		t.Errorf("expected 'test-value' but got: '%s'", result)
	}
}

func TestNewMemoryCache(t *testing.T) {
	clock := NewTestClock(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	cfg := DefaultConfig()
	cfg.Clock = clock

	memory, err := NewMemoryCache(cfg)
	if err != nil {
		t.Fatalf("NewMemoryCache() error = %v", err)
	}

	memory.Set("toc_Faust", []string{"Zueignung"})
	if !memory.Has("toc_Faust") {
		t.Fatal("expected stored key to be present")
	}

	clock.Add(cfg.TTL + time.Second)
	if memory.Has("toc_Faust") {
		t.Error("expected key to expire after TTL")
	}
}

func TestNewMemoryCache_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TTL = 0

	memory, err := NewMemoryCache(cfg)
	if err == nil {
		t.Fatal("expected configuration error")
	}
	if memory != nil {
		t.Errorf("expected nil MemoryCache, got %T", memory)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected Validate to reject zero TTL")
	}
}
