package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "bibliothek"

// Config configures a Collector.
type Config struct {
	// Namespace defaults to DefaultNamespace.
	Namespace string
	// Addr is the listen address of the /metrics endpoint. Empty disables
	// the endpoint; counters are still collected.
	Addr string
	// Path defaults to /metrics.
	Path string

	Logger logrus.FieldLogger
}

// Collector counts gateway traffic on a private registry. It implements
// gateway.Recorder.
type Collector struct {
	config   Config
	registry *prometheus.Registry
	logger   logrus.FieldLogger

	lookups       *prometheus.CounterVec
	providerCalls *prometheus.CounterVec
	storageErrors *prometheus.CounterVec

	server *http.Server
}

// NewCollector creates a Collector and registers its metrics.
func NewCollector(cfg Config) (*Collector, error) {
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}
	if cfg.Path == "" {
		cfg.Path = "/metrics"
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}

	c := &Collector{
		config:   cfg,
		registry: prometheus.NewRegistry(),
		logger:   cfg.Logger,
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "cache_lookups_total",
			Help:      "Cached operations by the tier that served them",
		}, []string{"operation", "tier"}),
		providerCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "provider_requests_total",
			Help:      "Requests sent to the generative provider",
		}, []string{"operation", "status"}),
		storageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "storage_failures_total",
			Help:      "Storage errors absorbed by the gateway",
		}, []string{"operation"}),
	}

	for _, collector := range []prometheus.Collector{c.lookups, c.providerCalls, c.storageErrors} {
		if err := c.registry.Register(collector); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}
	return c, nil
}

// CacheLookup records which tier served op.
func (c *Collector) CacheLookup(op, tier string) {
	c.lookups.With(prometheus.Labels{"operation": op, "tier": tier}).Inc()
}

// ProviderCall records one provider request.
func (c *Collector) ProviderCall(op string, err error) {
	c.providerCalls.With(prometheus.Labels{"operation": op, "status": status(err)}).Inc()
}

// StorageFailure records a storage error the gateway swallowed.
func (c *Collector) StorageFailure(op string) {
	c.storageErrors.With(prometheus.Labels{"operation": op}).Inc()
}

// Registry exposes the private registry, mostly for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Start serves the metrics endpoint in the background. It is a no-op when
// no address is configured.
func (c *Collector) Start(ctx context.Context) error {
	if c.config.Addr == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle(c.config.Path, c.Handler())

	c.server = &http.Server{
		Addr:              c.config.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := c.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			c.logger.WithError(err).Error("[METRICS] server stopped")
		}
	}()
	c.logger.WithField("addr", c.config.Addr).Info("[METRICS] serving")
	return nil
}

// Stop shuts the metrics endpoint down.
func (c *Collector) Stop(ctx context.Context) error {
	if c.server == nil {
		return nil
	}
	return c.server.Shutdown(ctx)
}

func status(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
