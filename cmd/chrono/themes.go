package main

import (
	"fmt"

	"github.com/chronocode/chrono/internal/output"
	"github.com/urfave/cli/v2"
)

func themesCmd() *cli.Command {
	return &cli.Command{
		Name:      "themes",
		Usage:     "Partition history into thematic development phases",
		ArgsUsage: "[path]",
		Action:    runThemesCmd,
	}
}

func runThemesCmd(c *cli.Context) error {
	repoPath, err := getRepoPath(c)
	if err != nil {
		return err
	}

	svc, err := newService(c)
	if err != nil {
		return err
	}

	result, err := svc.Themes(c.Context, repoPath)
	if err != nil {
		return fmt.Errorf("theme analysis failed (is this a git repository?): %w", err)
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	var rows [][]string
	for _, seg := range result.Segments {
		rows = append(rows, []string{
			seg.Theme.Name,
			fmt.Sprintf("%d", len(seg.Commits)),
			seg.StartDate.Format("2006-01-02"),
			seg.EndDate.Format("2006-01-02"),
			truncate(seg.Theme.Description, 50),
		})
	}

	table := output.NewTable(
		fmt.Sprintf("Development Themes: %s", result.RepoName),
		[]string{"Theme", "Commits", "From", "To", "Description"},
		rows,
		[]string{
			fmt.Sprintf("Phases: %d", len(result.Segments)),
			fmt.Sprintf("Total Commits: %d", result.TotalCommits),
		},
		result,
	)

	return formatter.Output(table)
}
