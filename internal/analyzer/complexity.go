package analyzer

import (
	"math"
	"time"

	"github.com/chronocode/chrono/pkg/models"
)

// Saturation points for score normalization. Commits beyond these
// saturate at the top of the scale.
const (
	maxLinesChanged = 2000.0
	maxFilesTouched = 40.0
)

// ComplexityAnalyzer derives a (complexity, impact scope) pair in [1,10]
// for every commit. Scores are a pure function of the snapshot: lines
// changed drive complexity on a log scale, files touched drive impact
// scope linearly. Commits without diff stats fall back to message length
// as a stand-in for lines and a scope of one file, which keeps the
// scoring deterministic for metadata-only stores.
type ComplexityAnalyzer struct{}

// NewComplexityAnalyzer creates a new commit complexity analyzer.
func NewComplexityAnalyzer() *ComplexityAnalyzer {
	return &ComplexityAnalyzer{}
}

// Analyze scores every commit in the snapshot. The commit's category
// comes from its analysis when one exists, OTHER otherwise.
func (a *ComplexityAnalyzer) Analyze(repoName string, commits []models.Commit, analyses []models.CommitAnalysis) *models.ComplexityAnalysis {
	bySHA := make(map[string]models.AnalysisType, len(analyses))
	for _, an := range analyses {
		if _, seen := bySHA[an.CommitSHA]; !seen {
			bySHA[an.CommitSHA] = an.Type
		}
	}

	analysis := &models.ComplexityAnalysis{
		GeneratedAt: time.Now().UTC(),
		RepoName:    repoName,
		Scores:      make([]models.CommitScore, 0, len(commits)),
	}

	for _, c := range commits {
		category, ok := bySHA[c.SHA]
		if !ok {
			category = models.TypeOther
		}
		complexity, scope := ScoreCommit(c)
		analysis.Scores = append(analysis.Scores, models.CommitScore{
			SHA:         c.SHA,
			Complexity:  complexity,
			ImpactScope: scope,
			Category:    category,
			Color:       models.CategoryColor(category),
		})
	}

	analysis.CalculateSummary()
	return analysis
}

// ScoreCommit computes the (complexity, impactScope) pair for one
// commit, each in [1,10].
func ScoreCommit(c models.Commit) (complexity, impactScope float64) {
	lines := float64(c.LinesChanged())
	files := float64(len(c.FilesChanged))
	if len(c.FilesChanged) == 0 {
		// Metadata-only fallback: the message is the only signal.
		lines = float64(len(c.Message) + len(c.Description))
		files = 1
	}

	complexity = scale(math.Log1p(lines)/math.Log1p(maxLinesChanged), 1, 10)
	impactScope = scale(files/maxFilesTouched, 1, 10)
	return complexity, impactScope
}

// scale maps a normalized value in [0,1] onto [lo,hi], clamping.
func scale(v, lo, hi float64) float64 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return lo + v*(hi-lo)
}
