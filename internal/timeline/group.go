package timeline

import (
	"github.com/chronocode/chrono/pkg/models"
)

// GroupAnalyses partitions analyses into named groups by the chosen
// dimension. A sha-to-commit lookup is built once, so classification is
// O(1) amortized per analysis.
//
// Type grouping keys on the analysis type verbatim (case-sensitive).
// Author and date grouping resolve the referenced commit by sha; an
// analysis whose commit is absent from the supplied set is surfaced
// under the "Unknown" group and recorded in Unresolved so the skip stays
// observable, never silently dropped. Date grouping always buckets by
// calendar month (YYYY-MM) regardless of the view's period granularity,
// matching the observed charting behavior.
func GroupAnalyses(analyses []models.CommitAnalysis, commits []models.Commit, groupBy models.GroupBy) (models.GroupedAnalyses, error) {
	switch groupBy {
	case models.GroupByType, models.GroupByAuthor, models.GroupByDate:
	default:
		return models.GroupedAnalyses{}, &InvalidGroupByError{GroupBy: string(groupBy)}
	}

	bySHA := make(map[string]models.Commit, len(commits))
	for _, c := range commits {
		bySHA[c.SHA] = c
	}

	result := models.GroupedAnalyses{
		GroupBy: groupBy,
		Groups:  make(map[string][]models.CommitAnalysis),
	}

	for _, a := range analyses {
		var key string
		switch groupBy {
		case models.GroupByType:
			key = string(a.Type)
		case models.GroupByAuthor:
			if commit, ok := bySHA[a.CommitSHA]; ok {
				key = commit.Author
			} else {
				key = models.UnknownGroupKey
				result.Unresolved = append(result.Unresolved, models.UnresolvedReference{
					CommitSHA: a.CommitSHA,
					Title:     a.Title,
				})
			}
		case models.GroupByDate:
			if commit, ok := bySHA[a.CommitSHA]; ok {
				key = commit.Date.Format("2006-01")
			} else {
				key = models.UnknownGroupKey
				result.Unresolved = append(result.Unresolved, models.UnresolvedReference{
					CommitSHA: a.CommitSHA,
					Title:     a.Title,
				})
			}
		}
		result.Groups[key] = append(result.Groups[key], a)
	}

	return result, nil
}
