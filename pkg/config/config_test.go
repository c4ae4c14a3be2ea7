package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Timeline.Granularity != "week" {
		t.Errorf("Granularity = %s, want week", cfg.Timeline.Granularity)
	}
	if cfg.Timeline.ThresholdPreset != "normal" {
		t.Errorf("ThresholdPreset = %s, want normal", cfg.Timeline.ThresholdPreset)
	}
	if cfg.Timeline.GroupBy != "type" {
		t.Errorf("GroupBy = %s, want type", cfg.Timeline.GroupBy)
	}
	if !cfg.Cache.Enabled {
		t.Error("cache should be enabled by default")
	}
	if cfg.Cache.TTL != 24 {
		t.Errorf("Cache.TTL = %d, want 24", cfg.Cache.TTL)
	}
	if cfg.Analysis.MaxThemes != 6 {
		t.Errorf("MaxThemes = %d, want 6", cfg.Analysis.MaxThemes)
	}
}

func TestLoad_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chrono.toml")
	content := `
[timeline]
granularity = "month"
threshold = 5.0
group_by = "author"

[cache]
enabled = false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Timeline.Granularity != "month" {
		t.Errorf("Granularity = %s, want month", cfg.Timeline.Granularity)
	}
	if cfg.Timeline.Threshold != 5.0 {
		t.Errorf("Threshold = %f, want 5.0", cfg.Timeline.Threshold)
	}
	if cfg.Timeline.GroupBy != "author" {
		t.Errorf("GroupBy = %s, want author", cfg.Timeline.GroupBy)
	}
	if cfg.Cache.Enabled {
		t.Error("cache should be disabled")
	}
	// Untouched sections keep defaults.
	if cfg.Output.Format != "text" {
		t.Errorf("Output.Format = %s, want text", cfg.Output.Format)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chrono.yaml")
	content := `
timeline:
  granularity: quarter
  threshold_preset: loose
analysis:
  days: 90
  file: custom/analyses.json
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Timeline.Granularity != "quarter" {
		t.Errorf("Granularity = %s, want quarter", cfg.Timeline.Granularity)
	}
	if cfg.Timeline.ThresholdPreset != "loose" {
		t.Errorf("ThresholdPreset = %s, want loose", cfg.Timeline.ThresholdPreset)
	}
	if cfg.Analysis.Days != 90 {
		t.Errorf("Days = %d, want 90", cfg.Analysis.Days)
	}
	if cfg.Analysis.File != "custom/analyses.json" {
		t.Errorf("File = %s", cfg.Analysis.File)
	}
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chrono.json")
	content := `{"output": {"format": "json", "color": false}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Output.Format != "json" {
		t.Errorf("Format = %s, want json", cfg.Output.Format)
	}
	if cfg.Output.Color {
		t.Error("color should be disabled")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("Load() should error for missing file")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chrono.toml")
	if err := os.WriteFile(path, []byte("timeline = {"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should error for invalid TOML")
	}
}

func TestLoadOrDefault_NoFile(t *testing.T) {
	dir := t.TempDir()
	orig, _ := os.Getwd()
	defer os.Chdir(orig)
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	cfg := LoadOrDefault()
	if cfg.Timeline.Granularity != "week" {
		t.Error("LoadOrDefault without file should return defaults")
	}
}

func TestLoadOrDefault_FindsFile(t *testing.T) {
	dir := t.TempDir()
	orig, _ := os.Getwd()
	defer os.Chdir(orig)
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	content := "[timeline]\ngranularity = \"day\"\n"
	if err := os.WriteFile("chrono.toml", []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadOrDefault()
	if cfg.Timeline.Granularity != "day" {
		t.Errorf("Granularity = %s, want day", cfg.Timeline.Granularity)
	}
}
