// Package store loads commit history and commit analyses from their
// backing sources: git repositories for commits, JSON documents for
// analyses.
package store

import (
	"context"
	"fmt"

	"github.com/chronocode/chrono/pkg/models"
)

// CommitStore loads the commit history of a repository.
type CommitStore interface {
	// LoadCommits returns the repository's commits sorted ascending by
	// author date.
	LoadCommits(ctx context.Context, repoPath string) ([]models.Commit, error)
}

// AnalysisFilter narrows an analysis query.
type AnalysisFilter struct {
	// RepoName keeps only analyses of the named repository when set.
	RepoName string
	// Author keeps only analyses of commits by the named author when set.
	Author string
	// Types keeps only analyses whose Type is in the set when non-empty.
	Types []string
}

// Match reports whether an analysis passes the filter.
func (f AnalysisFilter) Match(a models.CommitAnalysis) bool {
	if f.RepoName != "" && a.RepoName != f.RepoName {
		return false
	}
	if f.Author != "" && a.Author != f.Author {
		return false
	}
	if len(f.Types) == 0 {
		return true
	}
	for _, t := range f.Types {
		if string(a.Type) == t {
			return true
		}
	}
	return false
}

// AnalysisStore persists and queries commit analyses.
type AnalysisStore interface {
	// LoadAnalyses returns analyses matching the filter.
	LoadAnalyses(ctx context.Context, filter AnalysisFilter) ([]models.CommitAnalysis, error)
	// SaveAnalyses replaces the stored analyses for a repository.
	SaveAnalyses(ctx context.Context, repoName string, analyses []models.CommitAnalysis) error
}

// RepoOpenError reports a repository that could not be opened.
type RepoOpenError struct {
	Path string
	Err  error
}

func (e *RepoOpenError) Error() string {
	return fmt.Sprintf("open repository %s: %v", e.Path, e.Err)
}

func (e *RepoOpenError) Unwrap() error {
	return e.Err
}

// DocumentError reports an analysis document that failed schema
// validation or decoding.
type DocumentError struct {
	Path string
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("analysis document %s: %v", e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}
