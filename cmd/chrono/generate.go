package main

import (
	"fmt"

	"github.com/chronocode/chrono/internal/output"
	"github.com/chronocode/chrono/internal/progress"
	"github.com/chronocode/chrono/internal/store"
	"github.com/chronocode/chrono/pkg/models"
	"github.com/urfave/cli/v2"
)

func generateCmd() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Aliases:   []string{"gen"},
		Usage:     "Classify commit history and persist the analyses",
		ArgsUsage: "[path]",
		Action:    runGenerateCmd,
	}
}

func runGenerateCmd(c *cli.Context) error {
	repoPath, err := getRepoPath(c)
	if err != nil {
		return err
	}

	svc, err := newService(c)
	if err != nil {
		return err
	}

	spinner := progress.NewSpinner("Classifying commits...")
	gen := store.NewGenerator(store.WithGeneratorTracker(spinner))
	analyses, err := svc.GenerateAnalyses(c.Context, repoPath, gen)
	spinner.FinishSuccess()
	if err != nil {
		return fmt.Errorf("analysis generation failed (is this a git repository?): %w", err)
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	counts := make(map[models.AnalysisType]int)
	for _, a := range analyses {
		counts[a.Type]++
	}

	var rows [][]string
	for _, t := range models.AnalysisTypes {
		if counts[t] == 0 {
			continue
		}
		rows = append(rows, []string{
			output.TypeColor(string(t), string(t)),
			fmt.Sprintf("%d", counts[t]),
		})
	}

	table := output.NewTable(
		"Generated Analyses",
		[]string{"Type", "Count"},
		rows,
		[]string{fmt.Sprintf("Total: %d", len(analyses))},
		analyses,
	)

	if err := formatter.Output(table); err != nil {
		return err
	}
	formatter.Success("Saved %d analyses to %s", len(analyses), svc.Config().Analysis.File)
	return nil
}
