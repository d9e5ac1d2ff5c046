package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-reading-cache/cache"
	"github.com/goliatone/go-reading-cache/library"
	"github.com/goliatone/go-reading-cache/persistence"
	"github.com/goliatone/go-reading-cache/provider"
	"github.com/sirupsen/logrus"
)

// Operation names used for provider requests, logs and metrics.
const (
	OpAnalysis             = "analysis"
	OpTableOfContents      = "toc"
	OpChapterContent       = "content"
	OpChat                 = "chat"
	OpRecommendCategorized = "recommend_categorized"
	OpRecommend            = "recommend"
	OpSearch               = "search"
	OpQuiz                 = "quiz"
	OpStorySegment         = "story"
	OpDiscover             = "discover"
	OpOfflineWorks         = "offline_works"
)

// Tier names the layer that served a cached operation.
type Tier string

const (
	TierMemory   Tier = "memory"
	TierStore    Tier = "store"
	TierProvider Tier = "provider"
)

// Store is the durable tier used by the gateway. *persistence.Store
// implements it.
type Store interface {
	GetContent(ctx context.Context, key string, dest any) error
	SaveContent(ctx context.Context, key string, value any) error
	SaveWork(ctx context.Context, work library.Work) error
	Works(ctx context.Context) ([]library.Work, error)
	ClearContent(ctx context.Context) error
	Clear(ctx context.Context) error
}

// Recorder observes gateway traffic.
type Recorder interface {
	// CacheLookup records which tier served a cached operation.
	CacheLookup(op, tier string)
	// ProviderCall records one provider request and its outcome.
	ProviderCall(op string, err error)
	// StorageFailure records a swallowed storage error.
	StorageFailure(op string)
}

type nopRecorder struct{}

func (nopRecorder) CacheLookup(string, string) {}
func (nopRecorder) ProviderCall(string, error) {}
func (nopRecorder) StorageFailure(string)      {}

// Config wires the tiers of a Gateway.
type Config struct {
	Memory    cache.MemoryCache
	Store     Store
	Generator provider.Generator

	// KeySerializer defaults to cache.NewDefaultKeySerializer.
	KeySerializer cache.KeySerializer

	// Recorder defaults to a no-op recorder.
	Recorder Recorder

	// Logger defaults to the logrus standard logger.
	Logger logrus.FieldLogger
}

// Gateway is the only caller of the provider. Analysis, tables of contents
// and chapter content are read through memory, then the store, then the
// provider; every other operation passes straight to the provider.
type Gateway struct {
	memory    cache.MemoryCache
	store     Store
	generator provider.Generator
	keys      cache.KeySerializer
	recorder  Recorder
	logger    logrus.FieldLogger
}

// New creates a Gateway from cfg.
func New(cfg Config) (*Gateway, error) {
	switch {
	case cfg.Memory == nil:
		return nil, errors.New("gateway: memory cache is required")
	case cfg.Store == nil:
		return nil, errors.New("gateway: store is required")
	case cfg.Generator == nil:
		return nil, errors.New("gateway: generator is required")
	}

	g := &Gateway{
		memory:    cfg.Memory,
		store:     cfg.Store,
		generator: cfg.Generator,
		keys:      cfg.KeySerializer,
		recorder:  cfg.Recorder,
		logger:    cfg.Logger,
	}
	if g.keys == nil {
		g.keys = cache.NewDefaultKeySerializer()
	}
	if g.recorder == nil {
		g.recorder = nopRecorder{}
	}
	if g.logger == nil {
		g.logger = logrus.StandardLogger()
	}
	return g, nil
}

// Clear empties the memory tier and the store. With contentOnly, stored
// works are kept.
func (g *Gateway) Clear(ctx context.Context, contentOnly bool) error {
	g.memory.Clear()

	if contentOnly {
		return g.store.ClearContent(ctx)
	}
	return g.store.Clear(ctx)
}

func (g *Gateway) log(ctx context.Context, op string) logrus.FieldLogger {
	fields := logrus.Fields{"op": op}
	if id, ok := RequestIDFromContext(ctx); ok {
		fields["request_id"] = id
	}
	return g.logger.WithFields(fields)
}

// readThrough serves key from the first tier that holds it. A store hit
// populates memory; a full miss calls fetch and writes the result to both
// tiers. Storage failures are logged and treated as misses. fetch errors are
// returned and nothing is cached.
func readThrough[T any](ctx context.Context, g *Gateway, op, key string, fetch func(context.Context) (T, error)) (T, Tier, error) {
	var zero T
	ctx, _ = ensureRequestID(ctx)
	log := g.log(ctx, op).WithField("key", key)

	value, err := cache.Get[T](g.memory, key)
	if err == nil {
		log.WithField("tier", TierMemory).Debug("[CACHE] hit")
		g.recorder.CacheLookup(op, string(TierMemory))
		return value, TierMemory, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		log.WithError(err).Warn("[CACHE] dropping unreadable memory entry")
		g.memory.Delete(key)
	}

	var stored T
	err = g.store.GetContent(ctx, key, &stored)
	switch {
	case err == nil:
		g.memory.Set(key, stored)
		log.WithField("tier", TierStore).Debug("[CACHE] hit")
		g.recorder.CacheLookup(op, string(TierStore))
		return stored, TierStore, nil
	case errors.Is(err, persistence.ErrNotFound):
	default:
		log.WithError(err).Warn("[CACHE] storage read failed, treating as miss")
		g.recorder.StorageFailure(op)
	}

	fetched, err := fetch(ctx)
	if err != nil {
		return zero, "", err
	}

	g.memory.Set(key, fetched)
	// Write-back outlives caller cancellation.
	if err := g.store.SaveContent(context.WithoutCancel(ctx), key, fetched); err != nil {
		log.WithError(err).Warn("[CACHE] storage write failed")
		g.recorder.StorageFailure(op)
	}

	log.WithField("tier", TierProvider).Debug("[CACHE] set")
	g.recorder.CacheLookup(op, string(TierProvider))
	return fetched, TierProvider, nil
}

// generate calls the provider and rejects empty answers.
func (g *Gateway) generate(ctx context.Context, req provider.Request) (string, error) {
	ctx, _ = ensureRequestID(ctx)
	text, err := g.generator.Generate(ctx, req)
	g.recorder.ProviderCall(req.Op, err)

	switch {
	case errors.Is(err, provider.ErrConfigurationMissing):
		return "", fmt.Errorf("gateway: %s: %w", req.Op, err)
	case err != nil:
		g.log(ctx, req.Op).WithError(err).Error("[GEMINI] request failed")
		return "", &RemoteGenerationError{Op: req.Op, Err: err}
	case strings.TrimSpace(text) == "":
		g.log(ctx, req.Op).Error("[GEMINI] empty response")
		return "", &RemoteGenerationError{Op: req.Op, Err: errEmptyResponse}
	}
	return text, nil
}

// generateJSON calls the provider and decodes the answer into T. Decoded
// values implementing validation.Validatable, or slices of them, must pass
// validation.
func generateJSON[T any](ctx context.Context, g *Gateway, req provider.Request) (T, error) {
	var zero, value T

	text, err := g.generate(ctx, req)
	if err != nil {
		return zero, err
	}

	if err := json.Unmarshal([]byte(text), &value); err != nil {
		g.log(ctx, req.Op).WithError(err).Error("[GEMINI] malformed response")
		return zero, &RemoteGenerationError{Op: req.Op, Err: fmt.Errorf("decode response: %w", err)}
	}

	if err := validation.Validate(value); err != nil {
		g.log(ctx, req.Op).WithError(err).Error("[GEMINI] invalid response")
		return zero, &RemoteGenerationError{Op: req.Op, Err: fmt.Errorf("invalid response: %w", err)}
	}
	return value, nil
}
