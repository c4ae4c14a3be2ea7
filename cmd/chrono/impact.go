package main

import (
	"fmt"

	"github.com/chronocode/chrono/internal/output"
	"github.com/urfave/cli/v2"
)

func impactCmd() *cli.Command {
	return &cli.Command{
		Name:      "impact",
		Usage:     "Analyze per-file change impact as a directory tree",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "top",
				Value: 20,
				Usage: "Show top N files by change count",
			},
		},
		Action: runImpactCmd,
	}
}

func runImpactCmd(c *cli.Context) error {
	repoPath, err := getRepoPath(c)
	if err != nil {
		return err
	}

	svc, err := newService(c)
	if err != nil {
		return err
	}

	result, err := svc.Impact(c.Context, repoPath)
	if err != nil {
		return fmt.Errorf("impact analysis failed (is this a git repository?): %w", err)
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	leaves := result.Leaves()
	topN := c.Int("top")
	if len(leaves) > topN {
		leaves = leaves[:topN]
	}

	var rows [][]string
	for _, leaf := range leaves {
		share := 0.0
		if result.Summary.TotalChanges > 0 {
			share = float64(leaf.Changes) / float64(result.Summary.TotalChanges) * 100
		}
		rows = append(rows, []string{
			truncate(leaf.Path, 60),
			fmt.Sprintf("%d", leaf.Changes),
			fmt.Sprintf("%d", leaf.Commits),
			fmt.Sprintf("%.1f%%", share),
		})
	}

	table := output.NewTable(
		fmt.Sprintf("File Impact: %s", result.RepoName),
		[]string{"File", "Changes", "Commits", "Share"},
		rows,
		[]string{
			fmt.Sprintf("Total Files: %d", result.Summary.TotalFiles),
			fmt.Sprintf("Total Changes: %d", result.Summary.TotalChanges),
			fmt.Sprintf("Mean Changes/File: %.1f", result.Summary.MeanChanges),
			fmt.Sprintf("Max File Share: %.1f%%", result.Summary.MaxFileShare*100),
		},
		result,
	)

	return formatter.Output(table)
}
