package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"payboard/clients"
	"payboard/output"
	"payboard/pkg/config"
	"payboard/snapshot"
	"payboard/storage"
)

const version = "1.0.0"

// Execute builds the command tree and runs it.
func Execute() error {
	rootCmd := &cobra.Command{
		Use:               "payboard",
		Short:             "Admin console for the payment-operations portal",
		Long:              `A terminal console for payment operations: dashboard KPIs, transaction and merchant listings, and merchant detail lookups against the portal REST backend.`,
		DisableAutoGenTag: true,
		Version:           version,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Display the version of payboard",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("payboard version %s\n", version)
		},
	})

	rootCmd.AddCommand(newDashboardCmd())
	rootCmd.AddCommand(newPaymentsCmd())
	rootCmd.AddCommand(newMerchantsCmd())
	rootCmd.AddCommand(newMerchantCmd())

	return rootCmd.Execute()
}

// newFetcher wires config, portal client and snapshot fetcher.
func newFetcher() (*snapshot.Fetcher, *config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	portal := clients.NewPortalClientWithConfig(cfg.Portal.BaseURL, cfg.Portal.Timeout)
	return snapshot.NewFetcher(portal), cfg, nil
}

// signalContext is the per-command lifetime: Ctrl-C cancels in-flight
// fetches instead of leaving them running.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// openCache opens the snapshot cache; a broken cache is logged and skipped,
// never fatal.
func openCache(cfg *config.Config) *storage.SnapshotCache {
	if !cfg.Cache.Enabled {
		return nil
	}
	cache, err := storage.Open(cfg.Cache.Path, cfg.Cache.TTL)
	if err != nil {
		output.LogEvent("cache_open_error", map[string]any{"path": cfg.Cache.Path, "error": err.Error()})
		return nil
	}
	return cache
}

// loadSnapshot serves a view snapshot cache-first when asked, otherwise
// fetches and stores it. A failed fetch falls back to a still-fresh cached
// copy when one exists.
func loadSnapshot[T any](ctx context.Context, cache *storage.SnapshotCache, key string, preferCache bool, fetch func(context.Context) (*T, error)) (*T, error) {
	if cache != nil && preferCache {
		var cached T
		if ok, err := cache.Get(key, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	snap, err := fetch(ctx)
	if err != nil {
		if cache != nil {
			var cached T
			if ok, cerr := cache.Get(key, &cached); cerr == nil && ok {
				output.LogEvent("cache_fallback", map[string]any{"key": key, "error": err.Error()})
				return &cached, nil
			}
		}
		return nil, err
	}

	if cache != nil {
		if err := cache.Put(key, snap); err != nil {
			output.LogEvent("cache_put_error", map[string]any{"key": key, "error": err.Error()})
		}
	}
	return snap, nil
}
