package models

import "time"

// Theme is a named development theme from the fixed catalog.
type Theme struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DefaultThemeCatalog is the fixed catalog themes are assigned from, in
// round-robin order.
var DefaultThemeCatalog = []Theme{
	{Name: "Foundation", Description: "Project setup, scaffolding and core configuration"},
	{Name: "Core Features", Description: "Primary feature development"},
	{Name: "Stabilization", Description: "Bug fixes and hardening"},
	{Name: "Refinement", Description: "Refactoring and internal quality"},
	{Name: "Expansion", Description: "New capabilities layered on the core"},
	{Name: "Polish", Description: "Documentation, tooling and final touches"},
}

// ThemeSegment is one contiguous chunk of the date-sorted commit
// sequence, tagged with its assigned theme.
type ThemeSegment struct {
	Theme     Theme     `json:"theme"`
	Commits   []Commit  `json:"commits"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// ThemeAnalysis is the thematic grouping engine's result.
type ThemeAnalysis struct {
	GeneratedAt  time.Time      `json:"generated_at"`
	RepoName     string         `json:"repo_name"`
	Segments     []ThemeSegment `json:"segments"`
	TotalCommits int            `json:"total_commits"`
}
