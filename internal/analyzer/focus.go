package analyzer

import (
	"path"
	"sort"
	"strings"
	"time"

	"github.com/chronocode/chrono/pkg/models"
)

// FocusAnalyzer groups commits by author and derives each author's
// most-recent activity and a focus distribution over the fixed area set,
// normalized to sum exactly 100.
type FocusAnalyzer struct{}

// NewFocusAnalyzer creates a new developer-focus analyzer.
func NewFocusAnalyzer() *FocusAnalyzer {
	return &FocusAnalyzer{}
}

// Analyze aggregates per-author activity. File classification feeds the
// focus distribution; a commit without diff stats counts as one touch of
// the Code area so metadata-only stores still produce a distribution.
func (a *FocusAnalyzer) Analyze(repoName string, commits []models.Commit) *models.FocusAnalysis {
	type authorAccum struct {
		commits    int
		lastActive time.Time
		touches    map[string]int
	}
	byAuthor := make(map[string]*authorAccum)

	for _, c := range commits {
		acc, ok := byAuthor[c.Author]
		if !ok {
			acc = &authorAccum{touches: make(map[string]int)}
			byAuthor[c.Author] = acc
		}
		acc.commits++
		if c.Date.After(acc.lastActive) {
			acc.lastActive = c.Date
		}
		if len(c.FilesChanged) == 0 {
			acc.touches[models.FocusCode]++
			continue
		}
		for _, fc := range c.FilesChanged {
			acc.touches[ClassifyPath(fc.Path)]++
		}
	}

	analysis := &models.FocusAnalysis{
		GeneratedAt: time.Now().UTC(),
		RepoName:    repoName,
		Areas:       models.FocusAreas,
	}
	for author, acc := range byAuthor {
		analysis.Developers = append(analysis.Developers, models.DeveloperFocus{
			Author:     author,
			Commits:    acc.commits,
			LastActive: acc.lastActive,
			Focus:      normalizeFocus(acc.touches),
		})
	}

	// Most commits first; author name breaks ties deterministically.
	sort.Slice(analysis.Developers, func(i, j int) bool {
		if analysis.Developers[i].Commits != analysis.Developers[j].Commits {
			return analysis.Developers[i].Commits > analysis.Developers[j].Commits
		}
		return analysis.Developers[i].Author < analysis.Developers[j].Author
	})
	return analysis
}

// ClassifyPath maps a touched file onto one of the fixed focus areas.
func ClassifyPath(p string) string {
	p = strings.TrimPrefix(p, "./")
	base := strings.ToLower(path.Base(p))
	ext := strings.ToLower(path.Ext(p))

	switch {
	case strings.Contains(base, "_test.") || strings.HasPrefix(base, "test_") ||
		strings.Contains(p, "/tests/") || strings.HasPrefix(p, "tests/"):
		return models.FocusTests
	case ext == ".md" || ext == ".rst" || ext == ".txt" ||
		strings.HasPrefix(p, "docs/") || strings.Contains(p, "/docs/"):
		return models.FocusDocs
	case ext == ".yaml" || ext == ".yml" || ext == ".toml" || ext == ".json" ||
		ext == ".ini" || ext == ".env" || base == "dockerfile":
		return models.FocusConfig
	case base == "makefile" || ext == ".sh" || ext == ".mk" ||
		strings.HasPrefix(p, ".github/") || strings.HasPrefix(p, "scripts/"):
		return models.FocusTooling
	default:
		return models.FocusCode
	}
}

// normalizeFocus converts touch counts into integer percentages summing
// to exactly 100, using largest-remainder rounding. Ties go to the
// area's fixed display order so results stay deterministic.
func normalizeFocus(touches map[string]int) map[string]int {
	var total int
	for _, n := range touches {
		total += n
	}
	focus := make(map[string]int, len(models.FocusAreas))
	if total == 0 {
		return focus
	}

	type share struct {
		area      string
		pct       int
		remainder float64
	}
	shares := make([]share, 0, len(models.FocusAreas))
	allocated := 0
	for _, area := range models.FocusAreas {
		exact := float64(touches[area]*100) / float64(total)
		pct := int(exact)
		allocated += pct
		shares = append(shares, share{area: area, pct: pct, remainder: exact - float64(pct)})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].remainder > shares[j].remainder
	})
	for i := 0; i < 100-allocated; i++ {
		shares[i%len(shares)].pct++
	}

	for _, s := range shares {
		if s.pct > 0 {
			focus[s.area] = s.pct
		}
	}
	return focus
}
