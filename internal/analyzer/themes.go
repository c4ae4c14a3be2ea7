package analyzer

import (
	"sort"
	"time"

	"github.com/chronocode/chrono/pkg/models"
)

// ThemesAnalyzer partitions the date-sorted commit sequence into
// contiguous, near-equal chunks and tags each chunk with a theme drawn
// round-robin from a fixed catalog. Deterministic given the same commit
// set and catalog.
type ThemesAnalyzer struct {
	catalog   []models.Theme
	maxThemes int
}

// ThemesOption is a functional option for configuring ThemesAnalyzer.
type ThemesOption func(*ThemesAnalyzer)

// WithThemeCatalog replaces the default theme catalog.
func WithThemeCatalog(catalog []models.Theme) ThemesOption {
	return func(a *ThemesAnalyzer) {
		if len(catalog) > 0 {
			a.catalog = catalog
		}
	}
}

// WithMaxThemes caps the number of segments produced.
func WithMaxThemes(n int) ThemesOption {
	return func(a *ThemesAnalyzer) {
		if n > 0 {
			a.maxThemes = n
		}
	}
}

// NewThemesAnalyzer creates a new thematic grouping analyzer.
func NewThemesAnalyzer(opts ...ThemesOption) *ThemesAnalyzer {
	a := &ThemesAnalyzer{
		catalog:   models.DefaultThemeCatalog,
		maxThemes: len(models.DefaultThemeCatalog),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze splits commits into min(maxThemes, max(2, total/5)) contiguous
// chunks of near-equal size. Earlier chunks absorb the remainder so no
// commit is dropped; a chunk left empty by a tiny commit set is skipped.
func (a *ThemesAnalyzer) Analyze(repoName string, commits []models.Commit) *models.ThemeAnalysis {
	analysis := &models.ThemeAnalysis{
		GeneratedAt:  time.Now().UTC(),
		RepoName:     repoName,
		TotalCommits: len(commits),
	}
	if len(commits) == 0 {
		return analysis
	}

	sorted := make([]models.Commit, len(commits))
	copy(sorted, commits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	chunks := ChunkCount(len(sorted), a.maxThemes)
	base := len(sorted) / chunks
	rem := len(sorted) % chunks

	offset := 0
	for i := 0; i < chunks; i++ {
		size := base
		if i < rem {
			size++
		}
		if size == 0 {
			continue
		}
		segment := models.ThemeSegment{
			Theme:     a.catalog[i%len(a.catalog)],
			Commits:   sorted[offset : offset+size],
			StartDate: sorted[offset].Date,
			EndDate:   sorted[offset+size-1].Date,
		}
		analysis.Segments = append(analysis.Segments, segment)
		offset += size
	}
	return analysis
}

// ChunkCount returns the number of theme segments for a commit total:
// min(numThemes, max(2, total/5)).
func ChunkCount(total, numThemes int) int {
	chunks := total / 5
	if chunks < 2 {
		chunks = 2
	}
	if chunks > numThemes {
		chunks = numThemes
	}
	return chunks
}
