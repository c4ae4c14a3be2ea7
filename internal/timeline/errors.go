// Package timeline implements the commit-timeline layout pipeline:
// period bucketing, positional mapping, overlap-aware clustering and
// analysis grouping. All functions are pure and synchronous; callers own
// any caching or view state.
package timeline

import "fmt"

// InvalidThresholdError signals a cluster threshold outside the accepted
// range. Out-of-range thresholds are rejected, never clamped.
type InvalidThresholdError struct {
	Threshold float64
	Min       float64
	Max       float64
}

func (e *InvalidThresholdError) Error() string {
	return fmt.Sprintf("cluster threshold %g outside accepted range [%g, %g]",
		e.Threshold, e.Min, e.Max)
}

// InvalidGranularityError signals an unknown period granularity.
type InvalidGranularityError struct {
	Granularity string
}

func (e *InvalidGranularityError) Error() string {
	return fmt.Sprintf("unknown granularity %q", e.Granularity)
}

// InvalidGroupByError signals an unknown grouping dimension.
type InvalidGroupByError struct {
	GroupBy string
}

func (e *InvalidGroupByError) Error() string {
	return fmt.Sprintf("unknown group-by dimension %q", e.GroupBy)
}
