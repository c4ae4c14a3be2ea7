package store

import (
	"context"
	"regexp"
	"runtime"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/chronocode/chrono/internal/progress"
	"github.com/chronocode/chrono/pkg/models"
)

// Generator derives commit analyses from commit metadata. Classification
// is rule-based and deterministic: the same commit always yields the
// same analysis.
type Generator struct {
	tracker *progress.Tracker
}

// GeneratorOption is a functional option for configuring Generator.
type GeneratorOption func(*Generator)

// WithGeneratorTracker sets a progress tracker ticked once per commit.
func WithGeneratorTracker(tracker *progress.Tracker) GeneratorOption {
	return func(g *Generator) {
		g.tracker = tracker
	}
}

// NewGenerator creates a new analysis generator.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate classifies every commit in parallel and returns analyses in
// the same order as the input.
func (g *Generator) Generate(ctx context.Context, commits []models.Commit) ([]models.CommitAnalysis, error) {
	if len(commits) == 0 {
		return nil, nil
	}

	results := make([]models.CommitAnalysis, len(commits))
	var mu sync.Mutex
	var firstErr error

	p := pool.New().WithMaxGoroutines(runtime.NumCPU())
	for i, c := range commits {
		p.Go(func() {
			defer func() {
				if g.tracker != nil {
					g.tracker.Tick()
				}
			}()
			select {
			case <-ctx.Done():
				mu.Lock()
				if firstErr == nil {
					firstErr = ctx.Err()
				}
				mu.Unlock()
				return
			default:
			}

			analysis := Classify(c)
			mu.Lock()
			results[i] = analysis
			mu.Unlock()
		})
	}
	p.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// conventionalPrefix matches a conventional-commit header such as
// "feat(parser)!: add streaming mode".
var conventionalPrefix = regexp.MustCompile(`^([a-zA-Z]+)(\([^)]*\))?!?:\s*(.*)$`)

// prefixTypes maps conventional-commit keywords onto analysis types.
var prefixTypes = map[string]models.AnalysisType{
	"feat":     models.TypeFeature,
	"feature":  models.TypeFeature,
	"fix":      models.TypeFix,
	"bugfix":   models.TypeFix,
	"hotfix":   models.TypeFix,
	"docs":     models.TypeDocs,
	"doc":      models.TypeDocs,
	"test":     models.TypeTest,
	"tests":    models.TypeTest,
	"refactor": models.TypeRefactor,
	"perf":     models.TypeRefactor,
	"style":    models.TypeRefactor,
	"revert":   models.TypeWarning,
	"chore":    models.TypeOther,
	"build":    models.TypeOther,
	"ci":       models.TypeOther,
	"release":  models.TypeOther,
}

// keywordRules are checked in order against the lowercased title when no
// conventional prefix matched. First hit wins.
var keywordRules = []struct {
	analysisType models.AnalysisType
	words        []string
}{
	{models.TypeWarning, []string{"security", "vulnerab", "deprecat", "breaking"}},
	{models.TypeIssue, []string{"issue #", "closes #", "fixes #", "resolves #"}},
	{models.TypeFix, []string{"fix", "bug", "crash", "regression", "patch"}},
	{models.TypeDocs, []string{"doc", "readme", "changelog", "comment"}},
	{models.TypeTest, []string{"test", "coverage", "spec"}},
	{models.TypeRefactor, []string{"refactor", "cleanup", "clean up", "rename", "simplify", "restructure"}},
	{models.TypeFeature, []string{"add", "implement", "introduce", "support", "new ", "initial", "create"}},
}

// Classify derives an analysis for a single commit from its message.
func Classify(c models.Commit) models.CommitAnalysis {
	title := strings.TrimSpace(c.Message)
	analysisType := models.TypeOther
	idea := title

	if m := conventionalPrefix.FindStringSubmatch(title); m != nil {
		if t, ok := prefixTypes[strings.ToLower(m[1])]; ok {
			analysisType = t
			idea = strings.TrimSpace(m[3])
		}
	}

	if analysisType == models.TypeOther {
		lower := strings.ToLower(title)
	rules:
		for _, rule := range keywordRules {
			for _, w := range rule.words {
				if strings.Contains(lower, w) {
					analysisType = rule.analysisType
					break rules
				}
			}
		}
	}

	if idea == "" {
		idea = title
	}
	return models.CommitAnalysis{
		RepoName:    c.RepoName,
		Title:       title,
		Type:        analysisType,
		Author:      c.Author,
		Idea:        idea,
		Description: c.Description,
		CommitSHA:   c.SHA,
	}
}
