package timeline

import (
	"sort"
	"time"

	"github.com/chronocode/chrono/pkg/models"
)

// DegeneratePosition is the fallback position when the range cannot
// support interpolation (all commits on the same instant).
const DegeneratePosition = 50

// NewDateRange computes the observed date range of a commit set,
// expanded by a two-day buffer on both ends. An empty set yields the
// default "now minus 30 days through now" range.
func NewDateRange(commits []models.Commit) models.DateRange {
	return newDateRangeAt(commits, time.Now())
}

// newDateRangeAt is the clock-injectable form used by tests.
func newDateRangeAt(commits []models.Commit, now time.Time) models.DateRange {
	if len(commits) == 0 {
		return models.DateRange{
			Start: now.AddDate(0, 0, -models.DefaultRangeDays),
			End:   now,
		}
	}

	min, max := commits[0].Date, commits[0].Date
	for _, c := range commits[1:] {
		if c.Date.Before(min) {
			min = c.Date
		}
		if c.Date.After(max) {
			max = c.Date
		}
	}
	return models.DateRange{
		Start: min.AddDate(0, 0, -models.DateRangeBufferDays),
		End:   max.AddDate(0, 0, models.DateRangeBufferDays),
	}
}

// Position maps a commit timestamp to a percentage in [0,100] of the
// range. A degenerate range returns the fixed midpoint for every input
// rather than dividing by zero.
func Position(t time.Time, r models.DateRange) float64 {
	if r.Degenerate() {
		return DegeneratePosition
	}
	span := r.End.Sub(r.Start)
	pos := float64(t.Sub(r.Start)) / float64(span) * 100
	if pos < 0 {
		return 0
	}
	if pos > 100 {
		return 100
	}
	return pos
}

// PositionCommits sorts commits ascending by date, attaches each one's
// analysis by sha if present, and maps every commit onto the range.
// Position is monotonic non-decreasing in commit date for a
// non-degenerate range. The input slice is not mutated.
func PositionCommits(commits []models.Commit, analyses []models.CommitAnalysis, r models.DateRange) []models.PositionedCommit {
	sorted := make([]models.Commit, len(commits))
	copy(sorted, commits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	bySHA := make(map[string]*models.CommitAnalysis, len(analyses))
	for i := range analyses {
		if _, seen := bySHA[analyses[i].CommitSHA]; !seen {
			bySHA[analyses[i].CommitSHA] = &analyses[i]
		}
	}

	positioned := make([]models.PositionedCommit, len(sorted))
	for i, c := range sorted {
		positioned[i] = models.PositionedCommit{
			Commit:   c,
			Analysis: bySHA[c.SHA],
			Position: Position(c.Date, r),
		}
	}
	return positioned
}
