package main

import (
	"fmt"
	"sort"

	"github.com/chronocode/chrono/internal/output"
	"github.com/chronocode/chrono/internal/service/analysis"
	"github.com/urfave/cli/v2"
)

func timelineCmd() *cli.Command {
	return &cli.Command{
		Name:      "timeline",
		Aliases:   []string{"tl"},
		Usage:     "Build the positioned, clustered commit timeline",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:  "threshold",
				Usage: "Clustering distance in percentage points (0.1-50)",
			},
			&cli.StringFlag{
				Name:  "preset",
				Usage: "Threshold preset: tight, normal, loose, very_loose",
			},
		},
		Action: runTimelineCmd,
	}
}

func runTimelineCmd(c *cli.Context) error {
	repoPath, err := getRepoPath(c)
	if err != nil {
		return err
	}

	svc, err := newService(c)
	if err != nil {
		return err
	}

	layout, err := svc.Timeline(c.Context, repoPath, analysis.TimelineOptions{
		Threshold: c.Float64("threshold"),
		Preset:    c.String("preset"),
	})
	if err != nil {
		return fmt.Errorf("timeline layout failed (is this a git repository?): %w", err)
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	type marker struct {
		position float64
		count    int
		date     string
		title    string
	}

	markers := make([]marker, 0, len(layout.Singles)+len(layout.Clusters))
	for _, s := range layout.Singles {
		markers = append(markers, marker{
			position: s.Position,
			count:    1,
			date:     s.Commit.Date.Format("2006-01-02"),
			title:    truncate(s.Commit.Message, 60),
		})
	}
	for _, cl := range layout.Clusters {
		first := cl.Commits[0]
		last := cl.Commits[len(cl.Commits)-1]
		span := first.Date.Format("2006-01-02")
		if lastDay := last.Date.Format("2006-01-02"); lastDay != span {
			span = span + ".." + lastDay
		}
		markers = append(markers, marker{
			position: cl.Position,
			count:    cl.Count,
			date:     span,
			title:    truncate(first.Message, 60),
		})
	}
	sort.Slice(markers, func(i, j int) bool { return markers[i].position < markers[j].position })

	var rows [][]string
	for _, m := range markers {
		rows = append(rows, []string{
			fmt.Sprintf("%.1f%%", m.position),
			fmt.Sprintf("%d", m.count),
			m.date,
			m.title,
		})
	}

	table := output.NewTable(
		"Commit Timeline",
		[]string{"Position", "Commits", "Date", "First Commit"},
		rows,
		[]string{
			fmt.Sprintf("Range: %s to %s", layout.Range.Start.Format("2006-01-02"), layout.Range.End.Format("2006-01-02")),
			fmt.Sprintf("Total Commits: %d", layout.TotalCommits()),
			fmt.Sprintf("Clusters: %d", len(layout.Clusters)),
			fmt.Sprintf("Singles: %d", len(layout.Singles)),
			fmt.Sprintf("Threshold: %.2f", layout.Threshold),
		},
		layout,
	)

	return formatter.Output(table)
}
