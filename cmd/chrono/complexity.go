package main

import (
	"fmt"
	"sort"

	"github.com/chronocode/chrono/internal/output"
	"github.com/chronocode/chrono/pkg/models"
	"github.com/urfave/cli/v2"
)

func complexityCmd() *cli.Command {
	return &cli.Command{
		Name:      "complexity",
		Aliases:   []string{"cx"},
		Usage:     "Score each commit on size and scope",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "top",
				Value: 20,
				Usage: "Show top N commits by complexity",
			},
		},
		Action: runComplexityCmd,
	}
}

func runComplexityCmd(c *cli.Context) error {
	repoPath, err := getRepoPath(c)
	if err != nil {
		return err
	}

	svc, err := newService(c)
	if err != nil {
		return err
	}

	result, err := svc.Complexity(c.Context, repoPath)
	if err != nil {
		return fmt.Errorf("complexity analysis failed (is this a git repository?): %w", err)
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	scores := make([]models.CommitScore, len(result.Scores))
	copy(scores, result.Scores)
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Complexity > scores[j].Complexity
	})
	if topN := c.Int("top"); len(scores) > topN {
		scores = scores[:topN]
	}

	var rows [][]string
	for _, s := range scores {
		rows = append(rows, []string{
			shortSHA(s.SHA),
			fmt.Sprintf("%.1f", s.Complexity),
			fmt.Sprintf("%.1f", s.ImpactScope),
			output.TypeColor(string(s.Category), string(s.Category)),
		})
	}

	table := output.NewTable(
		fmt.Sprintf("Commit Complexity: %s", result.RepoName),
		[]string{"Commit", "Complexity", "Scope", "Category"},
		rows,
		[]string{
			fmt.Sprintf("Total Commits: %d", result.Summary.TotalCommits),
			fmt.Sprintf("Mean: %.2f", result.Summary.MeanComplexity),
			fmt.Sprintf("P50: %.2f", result.Summary.P50Complexity),
			fmt.Sprintf("P95: %.2f", result.Summary.P95Complexity),
			fmt.Sprintf("Max: %.2f", result.Summary.MaxComplexity),
		},
		result,
	)

	return formatter.Output(table)
}
