// Package metrics exposes gateway traffic as Prometheus counters: which tier
// served each cached operation, provider requests by outcome, and storage
// failures the gateway absorbed.
package metrics
