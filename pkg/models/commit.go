package models

import (
	"fmt"
	"time"
)

// AnalysisType categorizes what a commit analysis inferred about a commit.
type AnalysisType string

const (
	TypeFeature  AnalysisType = "FEATURE"
	TypeDocs     AnalysisType = "DOCS"
	TypeIssue    AnalysisType = "ISSUE"
	TypeWarning  AnalysisType = "WARNING"
	TypeRefactor AnalysisType = "REFACTOR"
	TypeFix      AnalysisType = "FIX"
	TypeTest     AnalysisType = "TEST"
	TypeOther    AnalysisType = "OTHER"
)

// AnalysisTypes lists all valid analysis types in display order.
var AnalysisTypes = []AnalysisType{
	TypeFeature, TypeDocs, TypeIssue, TypeWarning,
	TypeRefactor, TypeFix, TypeTest, TypeOther,
}

// IsValid reports whether t is one of the known analysis types.
func (t AnalysisType) IsValid() bool {
	for _, known := range AnalysisTypes {
		if t == known {
			return true
		}
	}
	return false
}

// FileChange records diff stats for a single file within a commit.
type FileChange struct {
	Path      string `json:"path"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// Commit is an immutable source-change record from version control.
type Commit struct {
	SHA         string    `json:"sha"`
	RepoName    string    `json:"repo_name"`
	Author      string    `json:"author"`
	AuthorEmail string    `json:"author_email,omitempty"`
	Date        time.Time `json:"date"`
	Message     string    `json:"message"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url,omitempty"`

	// FilesChanged carries per-file diff stats when the commit store can
	// supply them. Empty for stores that only return commit metadata.
	FilesChanged []FileChange `json:"files_changed,omitempty"`
}

// LinesChanged returns total additions plus deletions across all files.
func (c Commit) LinesChanged() int {
	var total int
	for _, fc := range c.FilesChanged {
		total += fc.Additions + fc.Deletions
	}
	return total
}

// CommitAnalysis is a derived annotation attached to a commit by the
// analysis process, describing its inferred type and intent.
type CommitAnalysis struct {
	RepoName    string       `json:"repo_name"`
	Title       string       `json:"title"`
	Type        AnalysisType `json:"type"`
	Author      string       `json:"author,omitempty"`
	Idea        string       `json:"idea,omitempty"`
	Description string       `json:"description,omitempty"`
	CommitSHA   string       `json:"commit_sha"`
}

// DateParseError signals that a commit or analysis date could not be
// parsed. Dates are never silently defaulted to "now" or epoch.
type DateParseError struct {
	Input string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("unparseable date %q", e.Input)
}

// commitDateLayouts are the accepted ISO-8601 representations, tried in order.
var commitDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseCommitDate parses an ISO-8601 date string into a time.Time.
// Malformed input returns a *DateParseError rather than a zero time, so
// invalid dates cannot leak into bucket keys or positions downstream.
func ParseCommitDate(s string) (time.Time, error) {
	for _, layout := range commitDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &DateParseError{Input: s}
}
