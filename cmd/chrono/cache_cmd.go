package main

import (
	"fmt"
	"time"

	"github.com/chronocode/chrono/internal/cache"
	"github.com/chronocode/chrono/internal/output"
	"github.com/urfave/cli/v2"
)

func cacheCmd() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect or clear the result cache",
		Subcommands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show cache entry count, size, and age",
				Action: runCacheStatsCmd,
			},
			{
				Name:   "clear",
				Usage:  "Remove all cached results",
				Action: runCacheClearCmd,
			},
		},
	}
}

// openCache opens the configured cache directory for maintenance,
// regardless of the enabled flag or --no-cache.
func openCache(c *cli.Context) (*cache.Cache, string, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, "", err
	}
	cc, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, true)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open cache at %s: %w", cfg.Cache.Dir, err)
	}
	return cc, cfg.Cache.Dir, nil
}

func runCacheStatsCmd(c *cli.Context) error {
	cc, dir, err := openCache(c)
	if err != nil {
		return err
	}

	stats, err := cc.GetStats()
	if err != nil {
		return fmt.Errorf("failed to read cache stats: %w", err)
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	table := output.NewTable(
		fmt.Sprintf("Cache: %s", dir),
		[]string{"Metric", "Value"},
		[][]string{
			{"Entries", fmt.Sprintf("%d", stats.Entries)},
			{"Total Size", fmt.Sprintf("%d bytes", stats.TotalSize)},
			{"Oldest Entry", stats.OldestAge.Round(time.Second).String()},
			{"Newest Entry", stats.NewestAge.Round(time.Second).String()},
		},
		nil,
		stats,
	)

	return formatter.Output(table)
}

func runCacheClearCmd(c *cli.Context) error {
	cc, dir, err := openCache(c)
	if err != nil {
		return err
	}

	if err := cc.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	formatter.Success("Cleared cache at %s", dir)
	return nil
}
