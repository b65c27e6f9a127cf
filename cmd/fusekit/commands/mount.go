package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/marmos91/fusekit/internal/logger"
	"github.com/marmos91/fusekit/internal/telemetry"
	fuseadapter "github.com/marmos91/fusekit/pkg/adapter/fuse"
	"github.com/marmos91/fusekit/pkg/config"
	"github.com/marmos91/fusekit/pkg/vfs"
)

var mountPoint string

var mountCmd = &cobra.Command{
	Use:   "mount",
	Short: "Mount the configured filesystem",
	Long: `Mount the configured static tree and serve it until interrupted.

The mountpoint comes from the configuration file ('mount.path') and can
be overridden with --mountpoint. The command runs in the foreground;
press Ctrl+C or unmount externally (umount/fusermount -u) to stop.

Examples:
  # Mount with the default config location
  fusekit mount

  # Mount with a custom config file
  fusekit mount --config /etc/fusekit/config.yaml

  # Override the mountpoint
  fusekit mount --mountpoint /mnt/demo

  # Mount with environment variable overrides
  FUSEKIT_LOGGING_LEVEL=DEBUG fusekit mount`,
	RunE: runMount,
}

func init() {
	mountCmd.Flags().StringVarP(&mountPoint, "mountpoint", "m", "", "Mountpoint (overrides 'mount.path' from config)")
}

func runMount(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}
	if mountPoint != "" {
		cfg.Mount.Path = mountPoint
	}

	// Initialize the structured logger
	if err := InitLogger(cfg); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry (if enabled)
	telemetryCfg := telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "fusekit",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
	}
	telemetryShutdown, err := telemetry.Init(ctx, telemetryCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := telemetryShutdown(ctx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}()

	// Initialize Pyroscope profiling (if enabled)
	profilingCfg := telemetry.ProfilingConfig{
		Enabled:        cfg.Telemetry.Profiling.Enabled,
		ServiceName:    "fusekit",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Profiling.Endpoint,
		ProfileTypes:   cfg.Telemetry.Profiling.ProfileTypes,
	}
	profilingShutdown, err := telemetry.InitProfiling(profilingCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize profiling: %w", err)
	}
	defer func() {
		if err := profilingShutdown(); err != nil {
			logger.Error("profiling shutdown error", "error", err)
		}
	}()

	logger.Info("Log level", "level", cfg.Logging.Level, "format", cfg.Logging.Format)
	logger.Info("Configuration loaded", "source", getConfigSource(GetConfigFile()))
	if telemetry.IsEnabled() {
		logger.Info("Telemetry enabled", "endpoint", cfg.Telemetry.Endpoint, "sample_rate", cfg.Telemetry.SampleRate)
	} else {
		logger.Info("Telemetry disabled")
	}
	if telemetry.IsProfilingEnabled() {
		logger.Info("Profiling enabled", "endpoint", cfg.Telemetry.Profiling.Endpoint, "profile_types", cfg.Telemetry.Profiling.ProfileTypes)
	}

	// Initialize metrics (if enabled)
	metricsResult := config.InitializeMetrics(cfg)
	defer func() {
		if metricsResult.Server != nil {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := metricsResult.Server.Shutdown(shutdownCtx); err != nil {
				logger.Error("metrics server shutdown error", "error", err)
			}
		}
	}()

	// Assemble the configured tree and its dispatcher
	registry := vfs.NewRegistry()
	if err := config.BuildTree(cfg, registry); err != nil {
		return fmt.Errorf("failed to build tree: %w", err)
	}
	dispatcher := vfs.NewDispatcher(registry)
	logger.Info("Tree assembled", "files", len(cfg.Tree), "nodes", registry.Len())

	server, err := fuseadapter.Mount(dispatcher, fuseadapter.Options{
		Mountpoint:   cfg.Mount.Path,
		FSName:       cfg.Mount.FSName,
		AllowOther:   cfg.Mount.AllowOther,
		Debug:        cfg.Mount.Debug,
		MaxWrite:     int(cfg.Mount.MaxWrite),
		AttrTimeout:  cfg.Mount.AttrTimeout,
		EntryTimeout: cfg.Mount.EntryTimeout,
		Metrics:      metricsResult.Dispatch,
	})
	if err != nil {
		return err
	}

	// Wait for the kernel session to end on its own (external umount)
	serverDone := make(chan struct{})
	go func() {
		server.Wait()
		close(serverDone)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Filesystem is serving. Press Ctrl+C to unmount.")

	select {
	case <-sigChan:
		signal.Stop(sigChan)
		logger.Info("Shutdown signal received, unmounting")

		if err := server.Unmount(); err != nil {
			logger.Error("Unmount failed", "error", err)
			return err
		}
		<-serverDone
		logger.Info("Filesystem stopped")

	case <-serverDone:
		signal.Stop(sigChan)
		logger.Info("Filesystem unmounted externally")
	}

	return nil
}
