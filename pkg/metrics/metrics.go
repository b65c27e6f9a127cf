// Package metrics defines the observability interfaces consumed by the
// FUSE adapter and owns the shared Prometheus registry they report into.
//
// Collection is opt-in: nothing is registered and every constructor in
// the prometheus subpackage returns nil until InitRegistry is called.
// A nil metrics value is always safe to use and costs nothing.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	registryMu sync.RWMutex
	registry   *prometheus.Registry
)

// InitRegistry creates the shared Prometheus registry and enables
// metrics collection. It registers the standard Go runtime and process
// collectors alongside the domain metrics.
//
// Call it once at startup, before constructing anything that collects
// metrics. Calling it again is a no-op.
func InitRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()

	if registry != nil {
		return
	}

	registry = prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// IsEnabled reports whether InitRegistry has been called.
func IsEnabled() bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry != nil
}

// GetRegistry returns the shared registry, or nil when metrics are
// disabled. Expose it with promhttp.HandlerFor to serve the scrape
// endpoint.
func GetRegistry() *prometheus.Registry {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry
}
