package main

import (
	"fmt"

	"github.com/chronocode/chrono/internal/output"
	"github.com/chronocode/chrono/pkg/models"
	"github.com/urfave/cli/v2"
)

func focusCmd() *cli.Command {
	return &cli.Command{
		Name:      "focus",
		Usage:     "Derive per-developer activity and focus distributions",
		ArgsUsage: "[path]",
		Action:    runFocusCmd,
	}
}

func runFocusCmd(c *cli.Context) error {
	repoPath, err := getRepoPath(c)
	if err != nil {
		return err
	}

	svc, err := newService(c)
	if err != nil {
		return err
	}

	result, err := svc.Focus(c.Context, repoPath)
	if err != nil {
		return fmt.Errorf("focus analysis failed (is this a git repository?): %w", err)
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	headers := []string{"Developer", "Commits", "Last Active"}
	headers = append(headers, models.FocusAreas...)

	var rows [][]string
	for _, dev := range result.Developers {
		row := []string{
			truncate(dev.Author, 30),
			fmt.Sprintf("%d", dev.Commits),
			dev.LastActive.Format("2006-01-02"),
		}
		for _, area := range models.FocusAreas {
			row = append(row, fmt.Sprintf("%d%%", dev.Focus[area]))
		}
		rows = append(rows, row)
	}

	table := output.NewTable(
		fmt.Sprintf("Developer Focus: %s", result.RepoName),
		headers,
		rows,
		[]string{fmt.Sprintf("Developers: %d", len(result.Developers))},
		result,
	)

	return formatter.Output(table)
}
