package di

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-reading-cache/cache"
	"github.com/goliatone/go-reading-cache/gateway"
	"github.com/goliatone/go-reading-cache/internal/config"
	"github.com/goliatone/go-reading-cache/internal/metrics"
	"github.com/goliatone/go-reading-cache/persistence"
	"github.com/goliatone/go-reading-cache/provider"
)

// Container owns the process-wide components: the memory tier, the store
// handle, the provider client, the metrics collector and the gateway wired
// on top of them. Build one per process and pass it around instead of
// relying on globals.
type Container struct {
	config    config.Config
	logger    *logrus.Logger
	memory    cache.MemoryCache
	store     *persistence.Store
	generator provider.Generator
	metrics   *metrics.Collector
	gateway   *gateway.Gateway
}

// Option customizes a Container.
type Option func(*options)

type options struct {
	generator provider.Generator
	clock     cache.Clock
	logger    *logrus.Logger
}

// WithGenerator replaces the provider built from the configuration.
func WithGenerator(g provider.Generator) Option {
	return func(o *options) { o.generator = g }
}

// WithClock sets the time source of the memory tier.
func WithClock(c cache.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(l *logrus.Logger) Option {
	return func(o *options) { o.logger = l }
}

// NewContainer wires every component from cfg. The store is opened lazily
// on first use, so NewContainer does not touch the disk.
func NewContainer(ctx context.Context, cfg config.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = NewLogger(cfg.Debug)
	}

	cacheCfg := cfg.Cache()
	cacheCfg.Logger = o.logger
	if o.clock != nil {
		cacheCfg.Clock = o.clock
	}
	memory, err := cache.NewMemoryCache(cacheCfg)
	if err != nil {
		return nil, fmt.Errorf("memory cache: %w", err)
	}

	storeCfg := cfg.Store()
	storeCfg.Logger = o.logger
	store := persistence.New(storeCfg)

	generator := o.generator
	if generator == nil {
		providerCfg := cfg.Provider()
		providerCfg.Logger = o.logger
		if generator, err = provider.New(ctx, providerCfg); err != nil {
			return nil, fmt.Errorf("provider: %w", err)
		}
	}
	if _, ok := generator.(provider.Unconfigured); ok {
		o.logger.Warn("[GEMINI] no API key configured, only cached content is available")
	}

	collector, err := metrics.NewCollector(metrics.Config{Addr: cfg.MetricsAddr, Logger: o.logger})
	if err != nil {
		return nil, err
	}

	gw, err := gateway.New(gateway.Config{
		Memory:    memory,
		Store:     store,
		Generator: generator,
		Recorder:  collector,
		Logger:    o.logger,
	})
	if err != nil {
		return nil, err
	}

	return &Container{
		config:    cfg,
		logger:    o.logger,
		memory:    memory,
		store:     store,
		generator: generator,
		metrics:   collector,
		gateway:   gw,
	}, nil
}

// NewLogger returns a text logger at info level, or debug level when debug
// is set.
func NewLogger(debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// Gateway returns the content gateway.
func (c *Container) Gateway() *gateway.Gateway {
	return c.gateway
}

// Memory returns the memory tier.
func (c *Container) Memory() cache.MemoryCache {
	return c.memory
}

// Store returns the durable tier.
func (c *Container) Store() *persistence.Store {
	return c.store
}

// Generator returns the provider client.
func (c *Container) Generator() provider.Generator {
	return c.generator
}

// Metrics returns the metrics collector.
func (c *Container) Metrics() *metrics.Collector {
	return c.metrics
}

// Logger returns the shared logger.
func (c *Container) Logger() *logrus.Logger {
	return c.logger
}

// Config returns a copy of the configuration used by this container.
func (c *Container) Config() config.Config {
	return c.config
}

// Start starts background services; today only the metrics endpoint.
func (c *Container) Start(ctx context.Context) error {
	return c.metrics.Start(ctx)
}

// Close stops the metrics endpoint and closes the store.
func (c *Container) Close(ctx context.Context) error {
	return errors.Join(c.metrics.Stop(ctx), c.store.Close())
}
