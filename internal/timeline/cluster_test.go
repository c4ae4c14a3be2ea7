package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronocode/chrono/pkg/models"
)

func positionedAt(positions ...float64) []models.PositionedCommit {
	out := make([]models.PositionedCommit, len(positions))
	for i, p := range positions {
		out[i] = models.PositionedCommit{
			Commit:   models.Commit{SHA: string(rune('a' + i))},
			Position: p,
		}
	}
	return out
}

func TestBuildClusters_PairPlusSingle(t *testing.T) {
	// Positions 10, 11, 50 with threshold 2: one cluster of two at the
	// mean 10.5 plus one single at 50.
	layout, err := BuildClusters(positionedAt(10, 11, 50), 2)
	require.NoError(t, err)

	require.Len(t, layout.Clusters, 1)
	assert.Equal(t, 2, layout.Clusters[0].Count)
	assert.InDelta(t, 10.5, layout.Clusters[0].Position, 1e-9)

	require.Len(t, layout.Singles, 1)
	assert.InDelta(t, 50.0, layout.Singles[0].Position, 1e-9)
}

func TestBuildClusters_Empty(t *testing.T) {
	layout, err := BuildClusters(nil, 2)
	require.NoError(t, err)

	assert.Empty(t, layout.Singles)
	assert.Empty(t, layout.Clusters)
	assert.Zero(t, layout.TotalCommits())
}

func TestBuildClusters_TrailingRunOfOneIsSingle(t *testing.T) {
	layout, err := BuildClusters(positionedAt(1, 2, 3, 90), 2)
	require.NoError(t, err)

	require.Len(t, layout.Clusters, 1)
	assert.Equal(t, 3, layout.Clusters[0].Count)
	require.Len(t, layout.Singles, 1)
	assert.Equal(t, "d", layout.Singles[0].Commit.SHA)
}

func TestBuildClusters_CommitConservation(t *testing.T) {
	tests := []struct {
		name      string
		positions []float64
		threshold float64
	}{
		{"all isolated", []float64{0, 20, 40, 60, 80, 100}, 0.5},
		{"all one cluster", []float64{10, 11, 12, 13}, 2},
		{"mixed", []float64{0, 1, 30, 31, 32, 70, 99, 100}, 2},
		{"single commit", []float64{50}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := positionedAt(tt.positions...)
			layout, err := BuildClusters(input, tt.threshold)
			require.NoError(t, err)

			assert.Equal(t, len(input), layout.TotalCommits(),
				"sum(cluster counts) + singles must equal input length")
			for _, c := range layout.Clusters {
				assert.GreaterOrEqual(t, c.Count, 2)
				assert.Equal(t, c.Count, len(c.Commits))
			}
		})
	}
}

func TestBuildClusters_MembershipIsContiguous(t *testing.T) {
	// Chained adjacency: each neighbor within threshold of the previous,
	// so the whole run collapses into a single cluster with members in
	// input order and no skipped commit between two members.
	layout, err := BuildClusters(positionedAt(10, 11.5, 13, 14.5), 2)
	require.NoError(t, err)

	require.Len(t, layout.Clusters, 1)
	got := layout.Clusters[0].Commits
	require.Len(t, got, 4)
	for i, c := range got {
		assert.Equal(t, string(rune('a'+i)), c.SHA)
	}
}

func TestBuildClusters_Deterministic(t *testing.T) {
	input := positionedAt(5, 6, 7, 40, 41, 90)

	first, err := BuildClusters(input, 2)
	require.NoError(t, err)
	second, err := BuildClusters(input, 2)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildClusters_ThresholdValidation(t *testing.T) {
	for _, threshold := range []float64{0, 0.05, -1, 50.1, 1000} {
		_, err := BuildClusters(positionedAt(10, 20), threshold)

		var thresholdErr *InvalidThresholdError
		require.ErrorAs(t, err, &thresholdErr, "threshold %g", threshold)
		assert.Equal(t, threshold, thresholdErr.Threshold)
	}

	for _, threshold := range []float64{0.1, 0.5, 2, 5, 10, 50} {
		_, err := BuildClusters(positionedAt(10, 20), threshold)
		assert.NoError(t, err, "threshold %g", threshold)
	}
}

func TestBuildClusters_CollectsMemberAnalyses(t *testing.T) {
	input := positionedAt(10, 11)
	input[0].Analysis = &models.CommitAnalysis{CommitSHA: "a", Type: models.TypeFix}

	layout, err := BuildClusters(input, 2)
	require.NoError(t, err)

	require.Len(t, layout.Clusters, 1)
	require.Len(t, layout.Clusters[0].Analyses, 1)
	assert.Equal(t, models.TypeFix, layout.Clusters[0].Analyses[0].Type)
}

func TestThresholdPreset(t *testing.T) {
	tests := []struct {
		name string
		want float64
	}{
		{"tight", 0.5},
		{"normal", 2},
		{"loose", 5},
		{"very_loose", 10},
	}
	for _, tt := range tests {
		got, ok := ThresholdPreset(tt.name)
		require.True(t, ok, tt.name)
		assert.Equal(t, tt.want, got)
	}

	_, ok := ThresholdPreset("gigantic")
	assert.False(t, ok)
}
