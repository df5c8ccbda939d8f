// Package cli implements the chunkroute command line interface with cobra.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chunkroute/internal/adapters/driven/config/file"
	"github.com/custodia-labs/chunkroute/internal/adapters/driven/manifest/tsv"
	"github.com/custodia-labs/chunkroute/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/chunkroute/internal/adapters/driven/watch"
	"github.com/custodia-labs/chunkroute/internal/core/ports/driving"
	"github.com/custodia-labs/chunkroute/internal/core/services"
	"github.com/custodia-labs/chunkroute/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
	dataDir   string
)

// Services used by the commands. They are wired on first use so tests can
// inject their own.
var (
	planService     driving.PlanService
	manifestService driving.ManifestService
	settingsService driving.SettingsService
	watchService    driving.WatchService
)

// store is the lazily opened SQLite manifest store.
var store *lazyStore

var rootCmd = &cobra.Command{
	Use:   "chunkroute",
	Short: "Plan the cheapest chunk downloads that rebuild an image",
	Long: `chunkroute reads a manifest of overlapping byte-range chunks and picks
the chunks that cover the whole image, first byte to last, while downloading
as few bytes as possible.

A manifest starts with the image size in bytes, followed by one
id<TAB>start<TAB>size line per chunk.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		wireServices()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log planning stages to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "settings directory (default ~/.chunkroute)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "manifest store directory (default ~/.chunkroute/data)")
}

// Execute runs the root command. Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer closeServices()

	return rootCmd.ExecuteContext(ctx)
}

// wireServices builds every service that has not been injected.
func wireServices() {
	if settingsService == nil {
		cfg, err := file.NewConfigStore(configDir)
		if err != nil {
			logger.Warn("settings unavailable, using defaults: %v", err)
			settingsService = services.NewSettingsService(memory.NewConfigStore())
		} else {
			settingsService = services.NewSettingsService(cfg)
		}
	}
	if planService == nil {
		planService = services.NewPlanService()
	}
	if manifestService == nil {
		store = newLazyStore(dataDir)
		manifestService = services.NewManifestService(tsv.New(), store)
	}
	if watchService == nil {
		interval := settingsService.GetDefaults().Watch.MinInterval
		if settings, err := settingsService.Get(); err == nil {
			interval = settings.Watch.MinInterval
		}
		watchService = services.NewWatchService(watch.New(interval), manifestService, planService)
	}
}

func closeServices() {
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Warn("closing manifest store: %v", err)
		}
	}
}
