package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/chronocode/chrono/pkg/models"
)

func TestReportCommand_EndToEnd(t *testing.T) {
	repoDir := initCmdTestRepo(t)

	scratch := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(scratch); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(cwd) }()

	outFile := filepath.Join(scratch, "report.json")
	app := &cli.App{
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "text"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}},
			&cli.BoolFlag{Name: "no-cache"},
		},
		Commands: []*cli.Command{reportCmd()},
	}
	err = app.Run([]string{"chrono", "-f", "json", "-o", outFile, "--no-cache", "report", repoDir})
	if err != nil {
		t.Fatalf("report command failed: %v", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("report output is not valid JSON: %v", err)
	}
	for _, key := range []string{"timeline", "groups", "impact", "complexity", "themes", "focus"} {
		if _, ok := payload[key]; !ok {
			t.Errorf("report data missing %q section", key)
		}
	}
}

func TestTimelineSection(t *testing.T) {
	layout := models.TimelineLayout{
		Singles: []models.PositionedCommit{
			{Commit: models.Commit{SHA: "a"}, Position: 10},
		},
		Range: models.DateRange{
			Start: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC),
		},
		Threshold: 2.0,
	}

	section := timelineSection(layout)
	var sb strings.Builder
	if err := section.RenderText(&sb, false); err != nil {
		t.Fatalf("RenderText() error = %v", err)
	}
	text := sb.String()
	if !strings.Contains(text, "2024-04-01 to 2024-04-30") {
		t.Errorf("section missing range:\n%s", text)
	}
	if !strings.Contains(text, "Total Commits") {
		t.Errorf("section missing commit total:\n%s", text)
	}
}

func TestFocusSection(t *testing.T) {
	result := &models.FocusAnalysis{
		RepoName: "demo",
		Developers: []models.DeveloperFocus{
			{
				Author:  "alice",
				Commits: 5,
				Focus:   map[string]int{models.FocusCode: 60, models.FocusTests: 40},
			},
		},
		Areas: models.FocusAreas,
	}

	section := focusSection(result)
	var sb strings.Builder
	if err := section.RenderText(&sb, false); err != nil {
		t.Fatalf("RenderText() error = %v", err)
	}
	text := sb.String()
	if !strings.Contains(text, "alice") {
		t.Errorf("section missing developer:\n%s", text)
	}
	if !strings.Contains(text, "60%") {
		t.Errorf("section missing focus percentage:\n%s", text)
	}
}
