package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"sift-hq/sift/pkg/audit"
	"sift-hq/sift/pkg/cli"
	"sift-hq/sift/pkg/config"
	"sift-hq/sift/pkg/ruleset"
	"sift-hq/sift/pkg/rql/parser"
	"sift-hq/sift/pkg/telemetry/metrics"
)

var watchFlags struct {
	rulesPath string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch rule set files and reload them on change",
	Long: `Run as a daemon that watches the configured rule set path and recompiles
rule sets whenever their files change. Reload failures are logged and the
previous rule sets stay active. Setting rules.watch to false in the config
disables hot reloading; the daemon then serves metrics and retention only.

When the metrics endpoint is configured, reload counts and loaded rule
gauges are exposed for Prometheus. When audit retention is configured, the
pruning scheduler runs in the background.

Examples:
  # Watch the configured rules path
  sift watch

  # Watch a specific directory
  sift watch --rules /etc/sift/rules`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.rulesPath, "rules", "r", "", "rule set file or directory (overrides config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if watchFlags.rulesPath != "" {
		cfg.Rules.Path = watchFlags.rulesPath
	}

	logger, err := setupLogging(cfg)
	if err != nil {
		return err
	}

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	p := &parser.Parser{MaxNestingDepth: cfg.Engine.MaxNestingDepth}
	source := ruleset.NewFileSource(cfg.Rules.Path, p, logger).WithMetrics(collector)

	sets, err := source.Load()
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	updateLoadedMetrics(collector, sets)
	fmt.Printf("✓ Loaded %d rule sets from %s\n", len(sets), cfg.Rules.Path)

	ctx := cli.SetupSignalHandler()

	// Audit retention scheduler, when the audit trail is enabled.
	if cfg.Audit.Enabled {
		stopRetention, err := startRetention(ctx, cfg)
		if err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer stopRetention()
	}

	// Metrics endpoint, when an address is configured.
	if cfg.Telemetry.Metrics.Enabled && cfg.Telemetry.Metrics.ListenAddress != "" {
		startMetricsServer(ctx, cfg, collector, logger)
		fmt.Printf("✓ Metrics endpoint: http://%s%s\n",
			cfg.Telemetry.Metrics.ListenAddress, cfg.Telemetry.Metrics.Path)
	}

	if err := watchLoop(ctx, cfg, source, collector, logger); err != nil {
		return cli.NewCommandError("watch", err)
	}

	fmt.Println("✓ Stopped")
	return nil
}

// watchLoop hot-reloads rule sets until the context is cancelled. When hot
// reloading is disabled in config, it blocks without watching so the metrics
// endpoint and retention scheduler keep running.
func watchLoop(ctx context.Context, cfg *config.Config, source *ruleset.FileSource, collector *metrics.Collector, logger *slog.Logger) error {
	if !*cfg.Rules.Watch {
		logger.Info("hot reloading disabled, serving without watching", "path", cfg.Rules.Path)
		<-ctx.Done()
		return nil
	}

	watcher, err := ruleset.NewWatcher(&ruleset.WatcherConfig{
		Path:             cfg.Rules.Path,
		DebounceInterval: cfg.Rules.DebounceInterval,
		Extensions:       cfg.Rules.Extensions,
	}, logger)
	if err != nil {
		return err
	}
	defer watcher.Close()

	fmt.Println("✓ Watching for rule set changes. Press Ctrl+C to stop")

	return watcher.Watch(ctx, func() error {
		reloaded, err := source.Load()
		if err != nil {
			collector.RecordReload("error")
			return err
		}

		updateLoadedMetrics(collector, reloaded)
		collector.RecordReload("ok")
		logger.Info("rule sets reloaded", "rule_sets", len(reloaded))
		return nil
	})
}

func updateLoadedMetrics(collector *metrics.Collector, sets []*ruleset.RuleSet) {
	rules := 0
	for _, set := range sets {
		rules += len(set.Rules)
	}
	collector.UpdateLoaded(len(sets), rules)
}

// startRetention opens the audit store and starts the pruning scheduler.
// The returned func stops the scheduler and closes the store.
func startRetention(ctx context.Context, cfg *config.Config) (func(), error) {
	storage, err := buildAuditStorage(cfg)
	if err != nil {
		return nil, err
	}

	pruner := audit.NewPruner(storage, &audit.RetentionConfig{
		RetentionDays: cfg.Audit.Retention.Days,
		MaxRecords:    cfg.Audit.Retention.MaxRecords,
		PruneSchedule: cfg.Audit.Retention.PruneSchedule,
	})

	scheduler := audit.NewScheduler(pruner)
	if err := scheduler.Start(ctx); err != nil {
		storage.Close()
		return nil, err
	}

	return func() {
		scheduler.Stop()
		storage.Close()
	}, nil
}

// startMetricsServer serves the Prometheus endpoint until the context is
// cancelled.
func startMetricsServer(ctx context.Context, cfg *config.Config, collector *metrics.Collector, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())

	srv := &http.Server{
		Addr:              cfg.Telemetry.Metrics.ListenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown failed", "error", err)
		}
	}()
}
