package main

import (
	"fmt"
	"path/filepath"

	"github.com/chronocode/chrono/internal/output"
	"github.com/chronocode/chrono/internal/service/analysis"
	"github.com/chronocode/chrono/pkg/config"
	"github.com/urfave/cli/v2"
)

// getRepoPath returns the repository path from the first positional
// argument, defaulting to the current directory.
func getRepoPath(c *cli.Context) (string, error) {
	path := "."
	if c.Args().Len() > 0 {
		path = c.Args().First()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %s: %w", path, err)
	}
	return abs, nil
}

// loadConfig resolves the effective configuration for a command,
// honoring --config and --no-cache.
func loadConfig(c *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.LoadOrDefault()
	}
	if c.Bool("no-cache") {
		cfg.Cache.Enabled = false
	}
	return cfg, nil
}

// newService builds the analysis service from the command's flags.
func newService(c *cli.Context) (*analysis.Service, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	return analysis.New(analysis.WithConfig(cfg)), nil
}

// newFormatter builds the output formatter from the command's flags.
func newFormatter(c *cli.Context) (*output.Formatter, error) {
	return output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// shortSHA abbreviates a commit sha for display.
func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
