package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronocode/chrono/pkg/models"
)

func sampleAnalyses() []models.CommitAnalysis {
	return []models.CommitAnalysis{
		{RepoName: "alpha", Title: "feat: add engine", Type: models.TypeFeature, CommitSHA: "a1"},
		{RepoName: "alpha", Title: "fix: crash on empty", Type: models.TypeFix, CommitSHA: "a2"},
		{RepoName: "beta", Title: "docs: readme", Type: models.TypeDocs, CommitSHA: "b1"},
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analyses.json")
	fs := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, fs.SaveAnalyses(ctx, "alpha", sampleAnalyses()[:2]))
	require.NoError(t, fs.SaveAnalyses(ctx, "beta", sampleAnalyses()[2:]))

	all, err := fs.LoadAnalyses(ctx, AnalysisFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	alpha, err := fs.LoadAnalyses(ctx, AnalysisFilter{RepoName: "alpha"})
	require.NoError(t, err)
	require.Len(t, alpha, 2)
	assert.Equal(t, "a1", alpha[0].CommitSHA)

	fixes, err := fs.LoadAnalyses(ctx, AnalysisFilter{Types: []string{"FIX"}})
	require.NoError(t, err)
	require.Len(t, fixes, 1)
	assert.Equal(t, "a2", fixes[0].CommitSHA)
}

func TestFileStore_SaveReplacesOnlyNamedRepo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analyses.json")
	fs := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, fs.SaveAnalyses(ctx, "alpha", sampleAnalyses()[:2]))
	require.NoError(t, fs.SaveAnalyses(ctx, "beta", sampleAnalyses()[2:]))

	// Re-save alpha with a single analysis; beta must survive.
	replacement := []models.CommitAnalysis{
		{RepoName: "alpha", Title: "refactor: rewrite", Type: models.TypeRefactor, CommitSHA: "a9"},
	}
	require.NoError(t, fs.SaveAnalyses(ctx, "alpha", replacement))

	all, err := fs.LoadAnalyses(ctx, AnalysisFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	alpha, err := fs.LoadAnalyses(ctx, AnalysisFilter{RepoName: "alpha"})
	require.NoError(t, err)
	require.Len(t, alpha, 1)
	assert.Equal(t, "a9", alpha[0].CommitSHA)
}

func TestFileStore_MissingFileReadsEmpty(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))

	all, err := fs.LoadAnalyses(context.Background(), AnalysisFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFileStore_RejectsInvalidDocument(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "{{"},
		{"missing analyses", `{"version": 1}`},
		{"bad type enum", `{"analyses": [{"repo_name": "r", "title": "t", "type": "BOGUS", "commit_sha": "s"}]}`},
		{"missing sha", `{"analyses": [{"repo_name": "r", "title": "t", "type": "FIX"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "analyses.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0644))

			_, err := NewFileStore(path).LoadAnalyses(context.Background(), AnalysisFilter{})
			require.Error(t, err)

			var docErr *DocumentError
			require.ErrorAs(t, err, &docErr)
			assert.Equal(t, path, docErr.Path)
		})
	}
}

func TestAnalysisFilter_Match(t *testing.T) {
	a := models.CommitAnalysis{RepoName: "alpha", Author: "alice", Type: models.TypeFix}

	assert.True(t, AnalysisFilter{}.Match(a))
	assert.True(t, AnalysisFilter{RepoName: "alpha"}.Match(a))
	assert.False(t, AnalysisFilter{RepoName: "beta"}.Match(a))
	assert.True(t, AnalysisFilter{Author: "alice"}.Match(a))
	assert.False(t, AnalysisFilter{Author: "bob"}.Match(a))
	assert.True(t, AnalysisFilter{Types: []string{"FIX", "DOCS"}}.Match(a))
	assert.False(t, AnalysisFilter{Types: []string{"DOCS"}}.Match(a))
	assert.False(t, AnalysisFilter{RepoName: "alpha", Types: []string{"DOCS"}}.Match(a))
	assert.True(t, AnalysisFilter{RepoName: "alpha", Author: "alice", Types: []string{"FIX"}}.Match(a))
	assert.False(t, AnalysisFilter{Author: "bob", Types: []string{"FIX"}}.Match(a))
}
