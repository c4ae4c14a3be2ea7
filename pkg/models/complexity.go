package models

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// CommitScore is the (complexity, impact scope) pair derived for one
// commit, each in [1,10], plus a category-derived display color.
type CommitScore struct {
	SHA         string       `json:"sha"`
	Complexity  float64      `json:"complexity"`
	ImpactScope float64      `json:"impact_scope"`
	Category    AnalysisType `json:"category"`
	Color       string       `json:"color"`
}

// Chart colors per analysis category.
var categoryColors = map[AnalysisType]string{
	TypeFeature:  "#3b82f6",
	TypeDocs:     "#8b5cf6",
	TypeIssue:    "#f97316",
	TypeWarning:  "#eab308",
	TypeRefactor: "#06b6d4",
	TypeFix:      "#ef4444",
	TypeTest:     "#22c55e",
	TypeOther:    "#6b7280",
}

// CategoryColor returns the chart color for an analysis type. Unknown
// types fall back to the OTHER color.
func CategoryColor(t AnalysisType) string {
	if c, ok := categoryColors[t]; ok {
		return c
	}
	return categoryColors[TypeOther]
}

// ComplexitySummary provides aggregate statistics over commit scores.
type ComplexitySummary struct {
	TotalCommits   int     `json:"total_commits"`
	MeanComplexity float64 `json:"mean_complexity"`
	StdDevComplex  float64 `json:"stddev_complexity"`
	P50Complexity  float64 `json:"p50_complexity"`
	P95Complexity  float64 `json:"p95_complexity"`
	MaxComplexity  float64 `json:"max_complexity"`
	MeanScope      float64 `json:"mean_impact_scope"`
}

// ComplexityAnalysis is the complexity scoring engine's result.
type ComplexityAnalysis struct {
	GeneratedAt time.Time         `json:"generated_at"`
	RepoName    string            `json:"repo_name"`
	Scores      []CommitScore     `json:"scores"`
	Summary     ComplexitySummary `json:"summary"`
}

// CalculateSummary computes summary statistics from the scores.
func (a *ComplexityAnalysis) CalculateSummary() {
	a.Summary = ComplexitySummary{TotalCommits: len(a.Scores)}
	if len(a.Scores) == 0 {
		return
	}

	complexities := make([]float64, len(a.Scores))
	scopes := make([]float64, len(a.Scores))
	for i, s := range a.Scores {
		complexities[i] = s.Complexity
		scopes[i] = s.ImpactScope
		if s.Complexity > a.Summary.MaxComplexity {
			a.Summary.MaxComplexity = s.Complexity
		}
	}

	a.Summary.MeanComplexity = stat.Mean(complexities, nil)
	if len(complexities) > 1 {
		a.Summary.StdDevComplex = stat.StdDev(complexities, nil)
	}
	a.Summary.MeanScope = stat.Mean(scopes, nil)

	sorted := make([]float64, len(complexities))
	copy(sorted, complexities)
	sort.Float64s(sorted)
	a.Summary.P50Complexity = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	a.Summary.P95Complexity = stat.Quantile(0.95, stat.Empirical, sorted, nil)
}
