package models

import "time"

// Focus areas a developer's work is distributed over. The set is fixed
// so distributions stay comparable across developers and repositories.
const (
	FocusCode    = "Code"
	FocusTests   = "Tests"
	FocusDocs    = "Docs"
	FocusConfig  = "Config"
	FocusTooling = "Tooling"
)

// FocusAreas lists the fixed focus areas in display order.
var FocusAreas = []string{FocusCode, FocusTests, FocusDocs, FocusConfig, FocusTooling}

// DeveloperFocus describes one author's activity and focus distribution.
// Focus percentages are integers summing to exactly 100.
type DeveloperFocus struct {
	Author     string         `json:"author"`
	Commits    int            `json:"commits"`
	LastActive time.Time      `json:"last_active"`
	Focus      map[string]int `json:"focus"`
}

// FocusAnalysis is the developer-focus aggregation result.
type FocusAnalysis struct {
	GeneratedAt time.Time        `json:"generated_at"`
	RepoName    string           `json:"repo_name"`
	Developers  []DeveloperFocus `json:"developers"`
	Areas       []string         `json:"areas"`
}
