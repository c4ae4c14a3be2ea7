package main

import (
	"fmt"
	"sync"

	"github.com/chronocode/chrono/internal/output"
	"github.com/chronocode/chrono/internal/service/analysis"
	"github.com/chronocode/chrono/pkg/models"
	"github.com/sourcegraph/conc"
	"github.com/urfave/cli/v2"
)

func reportCmd() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "Run every engine and render a combined repository report",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "top",
				Value: 10,
				Usage: "Rows per section",
			},
		},
		Action: runReportCmd,
	}
}

func runReportCmd(c *cli.Context) error {
	repoPath, err := getRepoPath(c)
	if err != nil {
		return err
	}

	svc, err := newService(c)
	if err != nil {
		return err
	}

	var (
		mu         sync.Mutex
		firstErr   error
		layout     models.TimelineLayout
		grouped    models.GroupedAnalyses
		impact     *models.ImpactAnalysis
		complexity *models.ComplexityAnalysis
		themes     *models.ThemeAnalysis
		focus      *models.FocusAnalysis
	)
	record := func(err error) {
		if err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
		}
	}

	ctx := c.Context
	var wg conc.WaitGroup
	wg.Go(func() {
		var err error
		layout, err = svc.Timeline(ctx, repoPath, analysis.TimelineOptions{})
		record(err)
	})
	wg.Go(func() {
		var err error
		grouped, err = svc.Groups(ctx, repoPath, analysis.GroupsOptions{})
		record(err)
	})
	wg.Go(func() {
		var err error
		impact, err = svc.Impact(ctx, repoPath)
		record(err)
	})
	wg.Go(func() {
		var err error
		complexity, err = svc.Complexity(ctx, repoPath)
		record(err)
	})
	wg.Go(func() {
		var err error
		themes, err = svc.Themes(ctx, repoPath)
		record(err)
	})
	wg.Go(func() {
		var err error
		focus, err = svc.Focus(ctx, repoPath)
		record(err)
	})
	wg.Wait()
	if firstErr != nil {
		return fmt.Errorf("report failed (is this a git repository?): %w", firstErr)
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	topN := c.Int("top")
	report := &output.Report{
		Title: fmt.Sprintf("Repository Report: %s", impact.RepoName),
		Sections: []output.Renderable{
			timelineSection(layout),
			groupsSection(grouped),
			impactSection(impact, topN),
			complexitySection(complexity, topN),
			themesSection(themes),
			focusSection(focus),
		},
		Data: map[string]any{
			"timeline":   layout,
			"groups":     grouped,
			"impact":     impact,
			"complexity": complexity,
			"themes":     themes,
			"focus":      focus,
		},
	}

	return formatter.Output(report)
}

func timelineSection(layout models.TimelineLayout) output.Renderable {
	return output.NewTable(
		"Timeline",
		[]string{"Metric", "Value"},
		[][]string{
			{"Range", fmt.Sprintf("%s to %s", layout.Range.Start.Format("2006-01-02"), layout.Range.End.Format("2006-01-02"))},
			{"Total Commits", fmt.Sprintf("%d", layout.TotalCommits())},
			{"Clusters", fmt.Sprintf("%d", len(layout.Clusters))},
			{"Singles", fmt.Sprintf("%d", len(layout.Singles))},
			{"Threshold", fmt.Sprintf("%.2f", layout.Threshold)},
		},
		nil,
		layout,
	)
}

func groupsSection(grouped models.GroupedAnalyses) output.Renderable {
	var rows [][]string
	for _, key := range grouped.SortedKeys() {
		rows = append(rows, []string{key, fmt.Sprintf("%d", len(grouped.Groups[key]))})
	}
	return output.NewTable(
		fmt.Sprintf("Analyses by %s", grouped.GroupBy),
		[]string{"Group", "Analyses"},
		rows,
		nil,
		grouped,
	)
}

func impactSection(result *models.ImpactAnalysis, topN int) output.Renderable {
	leaves := result.Leaves()
	if len(leaves) > topN {
		leaves = leaves[:topN]
	}
	var rows [][]string
	for _, leaf := range leaves {
		rows = append(rows, []string{truncate(leaf.Path, 60), fmt.Sprintf("%d", leaf.Changes), fmt.Sprintf("%d", leaf.Commits)})
	}
	return output.NewTable(
		"Top Files by Impact",
		[]string{"File", "Changes", "Commits"},
		rows,
		[]string{fmt.Sprintf("Total Files: %d", result.Summary.TotalFiles)},
		result,
	)
}

func complexitySection(result *models.ComplexityAnalysis, topN int) output.Renderable {
	scores := result.Scores
	if len(scores) > topN {
		scores = scores[:topN]
	}
	var rows [][]string
	for _, s := range scores {
		rows = append(rows, []string{shortSHA(s.SHA), fmt.Sprintf("%.1f", s.Complexity), fmt.Sprintf("%.1f", s.ImpactScope)})
	}
	return output.NewTable(
		"Commit Complexity",
		[]string{"Commit", "Complexity", "Scope"},
		rows,
		[]string{
			fmt.Sprintf("Mean: %.2f", result.Summary.MeanComplexity),
			fmt.Sprintf("P95: %.2f", result.Summary.P95Complexity),
		},
		result,
	)
}

func themesSection(result *models.ThemeAnalysis) output.Renderable {
	var rows [][]string
	for _, seg := range result.Segments {
		rows = append(rows, []string{seg.Theme.Name, fmt.Sprintf("%d", len(seg.Commits)), seg.StartDate.Format("2006-01-02"), seg.EndDate.Format("2006-01-02")})
	}
	return output.NewTable(
		"Development Themes",
		[]string{"Theme", "Commits", "From", "To"},
		rows,
		nil,
		result,
	)
}

func focusSection(result *models.FocusAnalysis) output.Renderable {
	var rows [][]string
	for _, dev := range result.Developers {
		rows = append(rows, []string{
			truncate(dev.Author, 30),
			fmt.Sprintf("%d", dev.Commits),
			fmt.Sprintf("%d%%", dev.Focus[models.FocusCode]),
			fmt.Sprintf("%d%%", dev.Focus[models.FocusTests]),
		})
	}
	return output.NewTable(
		"Developer Focus",
		[]string{"Developer", "Commits", "Code", "Tests"},
		rows,
		nil,
		result,
	)
}
