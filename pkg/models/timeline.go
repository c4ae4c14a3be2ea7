package models

import "time"

// DateRangeBufferDays is the buffer added on both ends of an observed range.
const DateRangeBufferDays = 2

// DefaultRangeDays is the span used when the commit set is empty.
const DefaultRangeDays = 30

// DateRange is the observed date span of a commit set, buffered on both
// ends. Recomputed whenever the commit set changes; never persisted.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Degenerate reports whether the range cannot support interpolation.
func (r DateRange) Degenerate() bool {
	return !r.End.After(r.Start)
}

// PositionedCommit is a commit placed on the horizontal timeline axis.
// Position is a percentage in [0,100] of the date range spanned by the
// commit's timestamp.
type PositionedCommit struct {
	Commit   Commit          `json:"commit"`
	Analysis *CommitAnalysis `json:"analysis,omitempty"`
	Position float64         `json:"position"`
}

// Cluster collapses temporally adjacent commits into one visual marker.
// Membership is contiguous in sorted-by-date order and Count is always
// at least 2; an isolated commit stays a standalone PositionedCommit.
type Cluster struct {
	Commits  []Commit         `json:"commits"`
	Analyses []CommitAnalysis `json:"analyses,omitempty"`
	Position float64          `json:"position"`
	Count    int              `json:"count"`
}

// TimelineLayout is the cluster builder's output for one chart row.
type TimelineLayout struct {
	Singles   []PositionedCommit `json:"singles"`
	Clusters  []Cluster          `json:"clusters"`
	Range     DateRange          `json:"range"`
	Threshold float64            `json:"threshold"`
}

// TotalCommits returns the number of commits represented by the layout.
// Always equals the length of the positioned input.
func (l TimelineLayout) TotalCommits() int {
	total := len(l.Singles)
	for _, c := range l.Clusters {
		total += c.Count
	}
	return total
}
