package timeline

import (
	"strings"

	"github.com/chronocode/chrono/pkg/models"
)

// Accepted cluster threshold range, in timeline percent.
const (
	MinThreshold = 0.1
	MaxThreshold = 50
)

// Named threshold presets, matching the view's density settings.
var thresholdPresets = map[string]float64{
	"tight":      0.5,
	"normal":     2,
	"loose":      5,
	"very_loose": 10,
}

// ThresholdPreset resolves a named preset to its threshold value.
func ThresholdPreset(name string) (float64, bool) {
	v, ok := thresholdPresets[strings.ToLower(strings.TrimSpace(name))]
	return v, ok
}

// BuildClusters post-processes positioned commits, already sorted
// ascending by date, into standalone points and clusters of temporally
// adjacent commits. A single left-to-right sweep grows a run while the
// next commit sits within threshold percent of the run's last member;
// closed runs of two or more become a cluster positioned at the mean of
// its members, and a run of one is emitted as a single. O(n),
// deterministic, never mutates its input.
func BuildClusters(positioned []models.PositionedCommit, thresholdPercent float64) (models.TimelineLayout, error) {
	if thresholdPercent < MinThreshold || thresholdPercent > MaxThreshold {
		return models.TimelineLayout{}, &InvalidThresholdError{
			Threshold: thresholdPercent,
			Min:       MinThreshold,
			Max:       MaxThreshold,
		}
	}

	layout := models.TimelineLayout{
		Singles:   []models.PositionedCommit{},
		Clusters:  []models.Cluster{},
		Threshold: thresholdPercent,
	}
	if len(positioned) == 0 {
		return layout, nil
	}

	run := []models.PositionedCommit{positioned[0]}
	for _, next := range positioned[1:] {
		last := run[len(run)-1]
		if abs(next.Position-last.Position) <= thresholdPercent {
			run = append(run, next)
			continue
		}
		closeRun(&layout, run)
		run = []models.PositionedCommit{next}
	}
	closeRun(&layout, run)

	return layout, nil
}

// closeRun emits a finished run as a cluster or a single. A run of one
// at end of stream is always a single, never a degenerate cluster.
func closeRun(layout *models.TimelineLayout, run []models.PositionedCommit) {
	if len(run) < 2 {
		layout.Singles = append(layout.Singles, run[0])
		return
	}

	cluster := models.Cluster{
		Commits: make([]models.Commit, 0, len(run)),
		Count:   len(run),
	}
	var sum float64
	for _, pc := range run {
		cluster.Commits = append(cluster.Commits, pc.Commit)
		if pc.Analysis != nil {
			cluster.Analyses = append(cluster.Analyses, *pc.Analysis)
		}
		sum += pc.Position
	}
	cluster.Position = sum / float64(len(run))
	layout.Clusters = append(layout.Clusters, cluster)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
