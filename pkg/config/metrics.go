package config

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marmos91/fusekit/internal/logger"
	"github.com/marmos91/fusekit/pkg/metrics"
	prommetrics "github.com/marmos91/fusekit/pkg/metrics/prometheus"
)

// MetricsResult holds what InitializeMetrics produced: the scrape
// server (nil when metrics are disabled) and the dispatch metrics to
// hand to the mount (nil disables collection with zero overhead).
type MetricsResult struct {
	Server   *http.Server
	Dispatch metrics.DispatchMetrics
}

// InitializeMetrics enables the Prometheus registry and starts the
// metrics HTTP server when cfg.Metrics.Enabled is set.
//
// The server serves /metrics on the configured port in a background
// goroutine; the caller owns shutdown. When metrics are disabled the
// result carries nils and nothing is registered.
func InitializeMetrics(cfg *Config) MetricsResult {
	if !cfg.Metrics.Enabled {
		logger.Info("Metrics disabled")
		return MetricsResult{}
	}

	metrics.InitRegistry()

	registry := metrics.GetRegistry()
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		Registry: registry,
	}))

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler: mux,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server error", logger.Err(err))
		}
	}()

	logger.Info("Metrics server started", "port", cfg.Metrics.Port)

	return MetricsResult{
		Server:   server,
		Dispatch: prommetrics.NewDispatchMetrics(),
	}
}
