package testsupport

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/goliatone/go-reading-cache/provider"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// FakeGenerator is a provider.Generator that records every request and
// answers through a configurable function. Call counts are tracked per
// request Op to verify caching behavior.
type FakeGenerator struct {
	mu        sync.Mutex
	respond   func(req provider.Request) (string, error)
	callCount map[string]int
	requests  []provider.Request
}

var _ provider.Generator = (*FakeGenerator)(nil)

// NewFakeGenerator returns a FakeGenerator answering with respond.
func NewFakeGenerator(respond func(req provider.Request) (string, error)) *FakeGenerator {
	return &FakeGenerator{
		respond:   respond,
		callCount: make(map[string]int),
	}
}

// StaticGenerator answers each Op with a fixed reply. Ops without a reply
// fail.
func StaticGenerator(replies map[string]string) *FakeGenerator {
	return NewFakeGenerator(func(req provider.Request) (string, error) {
		reply, ok := replies[req.Op]
		if !ok {
			return "", fmt.Errorf("no reply configured for %q", req.Op)
		}
		return reply, nil
	})
}

// Generate records req and returns the configured answer.
func (f *FakeGenerator) Generate(ctx context.Context, req provider.Request) (string, error) {
	f.mu.Lock()
	f.callCount[req.Op]++
	f.requests = append(f.requests, req)
	respond := f.respond
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	return respond(req)
}

// SetRespond replaces the answer function.
func (f *FakeGenerator) SetRespond(respond func(req provider.Request) (string, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.respond = respond
}

// Calls returns how often op was requested.
func (f *FakeGenerator) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.callCount[op]
}

// TotalCalls returns the number of requests across all ops.
func (f *FakeGenerator) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// Requests returns a copy of the recorded requests, oldest first.
func (f *FakeGenerator) Requests() []provider.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]provider.Request(nil), f.requests...)
}

// TempDBPath returns a database file path inside a per-test temporary
// directory.
func TempDBPath(tb testing.TB) string {
	tb.Helper()
	return filepath.Join(tb.TempDir(), "bibliothek.db")
}

// NullLogger returns a logger that discards output and a hook recording
// every entry.
func NullLogger() (*logrus.Logger, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logger, hook
}
