package main

import (
	"fmt"
	"sort"

	"github.com/chronocode/chrono/internal/output"
	"github.com/urfave/cli/v2"
)

func bucketsCmd() *cli.Command {
	return &cli.Command{
		Name:      "buckets",
		Usage:     "Partition commit history into period buckets",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "granularity",
				Aliases: []string{"g"},
				Usage:   "Bucket granularity: day, week, two_weeks, month, quarter, year",
			},
		},
		Action: runBucketsCmd,
	}
}

func runBucketsCmd(c *cli.Context) error {
	repoPath, err := getRepoPath(c)
	if err != nil {
		return err
	}

	svc, err := newService(c)
	if err != nil {
		return err
	}

	buckets, err := svc.Buckets(c.Context, repoPath, c.String("granularity"))
	if err != nil {
		return fmt.Errorf("bucketing failed (is this a git repository?): %w", err)
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var rows [][]string
	var total, totalLines int
	for _, k := range keys {
		commits := buckets[k]
		var lines int
		authors := make(map[string]struct{})
		for _, commit := range commits {
			lines += commit.LinesChanged()
			authors[commit.Author] = struct{}{}
		}
		total += len(commits)
		totalLines += lines
		rows = append(rows, []string{
			k,
			fmt.Sprintf("%d", len(commits)),
			fmt.Sprintf("%d", len(authors)),
			fmt.Sprintf("%d", lines),
		})
	}

	table := output.NewTable(
		"Commit Buckets",
		[]string{"Period", "Commits", "Authors", "Lines Changed"},
		rows,
		[]string{
			fmt.Sprintf("Periods: %d", len(keys)),
			fmt.Sprintf("Total Commits: %d", total),
			fmt.Sprintf("Total Lines Changed: %d", totalLines),
		},
		buckets,
	)

	return formatter.Output(table)
}
