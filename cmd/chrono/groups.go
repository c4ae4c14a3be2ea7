package main

import (
	"fmt"
	"strings"

	"github.com/chronocode/chrono/internal/output"
	"github.com/chronocode/chrono/internal/service/analysis"
	"github.com/urfave/cli/v2"
)

func groupsCmd() *cli.Command {
	return &cli.Command{
		Name:      "groups",
		Usage:     "Group stored analyses by type, author, or date",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "by",
				Usage: "Grouping dimension: type, author, date",
			},
			&cli.StringFlag{
				Name:  "author",
				Usage: "Keep only analyses of commits by this author",
			},
			&cli.StringSliceFlag{
				Name:  "type",
				Usage: "Keep only analyses of this type (repeatable)",
			},
		},
		Action: runGroupsCmd,
	}
}

func authorsCmd() *cli.Command {
	return &cli.Command{
		Name:      "authors",
		Usage:     "Group stored analyses by commit author",
		ArgsUsage: "[path]",
		Action: func(c *cli.Context) error {
			return runGroupsBy(c, "author")
		},
	}
}

func typesCmd() *cli.Command {
	return &cli.Command{
		Name:      "types",
		Usage:     "Group stored analyses by analysis type",
		ArgsUsage: "[path]",
		Action: func(c *cli.Context) error {
			return runGroupsBy(c, "type")
		},
	}
}

func runGroupsCmd(c *cli.Context) error {
	return runGroupsBy(c, c.String("by"))
}

func runGroupsBy(c *cli.Context, groupBy string) error {
	repoPath, err := getRepoPath(c)
	if err != nil {
		return err
	}

	svc, err := newService(c)
	if err != nil {
		return err
	}

	grouped, err := svc.Groups(c.Context, repoPath, analysis.GroupsOptions{
		GroupBy: groupBy,
		Author:  c.String("author"),
		Types:   c.StringSlice("type"),
	})
	if err != nil {
		return fmt.Errorf("grouping failed: %w", err)
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	var rows [][]string
	for _, key := range grouped.SortedKeys() {
		analyses := grouped.Groups[key]
		titles := make([]string, 0, 2)
		for i, a := range analyses {
			if i == 2 {
				break
			}
			titles = append(titles, truncate(a.Title, 40))
		}
		rows = append(rows, []string{
			output.TypeColor(key, key),
			fmt.Sprintf("%d", len(analyses)),
			strings.Join(titles, "; "),
		})
	}

	footer := []string{
		fmt.Sprintf("Grouped By: %s", grouped.GroupBy),
		fmt.Sprintf("Groups: %d", len(grouped.Groups)),
		fmt.Sprintf("Total Analyses: %d", grouped.TotalAnalyses()),
	}
	if n := len(grouped.Unresolved); n > 0 {
		footer = append(footer, fmt.Sprintf("Unresolved Commit Refs: %d", n))
	}

	table := output.NewTable(
		"Analysis Groups",
		[]string{"Group", "Analyses", "Sample Titles"},
		rows,
		footer,
		grouped,
	)

	if err := formatter.Output(table); err != nil {
		return err
	}
	if len(grouped.Groups) == 0 {
		formatter.Warning("No analyses found; run 'chrono generate' first")
	}
	return nil
}
