package models

import "sort"

// GroupBy selects the dimension used to partition analyses into chart rows.
type GroupBy string

const (
	GroupByType   GroupBy = "type"
	GroupByAuthor GroupBy = "author"
	GroupByDate   GroupBy = "date"
)

// UnknownGroupKey is the group for analyses whose commit cannot be
// resolved by sha. Such analyses are surfaced rather than dropped.
const UnknownGroupKey = "Unknown"

// UnresolvedReference records an analysis whose commit_sha was absent
// from the supplied commit set. Advisory, never fatal.
type UnresolvedReference struct {
	CommitSHA string `json:"commit_sha"`
	Title     string `json:"title"`
}

// GroupedAnalyses is the grouping aggregator's output: analyses
// partitioned by the chosen dimension, plus every unresolved commit
// reference encountered along the way so callers can audit the skip.
type GroupedAnalyses struct {
	GroupBy    GroupBy                     `json:"group_by"`
	Groups     map[string][]CommitAnalysis `json:"groups"`
	Unresolved []UnresolvedReference       `json:"unresolved,omitempty"`
}

// SortedKeys returns group keys in lexicographic order for stable rendering.
func (g GroupedAnalyses) SortedKeys() []string {
	keys := make([]string, 0, len(g.Groups))
	for k := range g.Groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TotalAnalyses returns the number of analyses across all groups.
func (g GroupedAnalyses) TotalAnalyses() int {
	var total int
	for _, group := range g.Groups {
		total += len(group)
	}
	return total
}
