package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronocode/chrono/pkg/models"
)

func TestNewDateRange_Buffered(t *testing.T) {
	commits := []models.Commit{
		commitOn(t, "a", "2024-03-10"),
		commitOn(t, "b", "2024-03-01"),
		commitOn(t, "c", "2024-03-20"),
	}

	r := NewDateRange(commits)

	assert.Equal(t, "2024-02-28", r.Start.Format("2006-01-02"))
	assert.Equal(t, "2024-03-22", r.End.Format("2006-01-02"))
	assert.True(t, r.Start.Before(r.End))
}

func TestNewDateRange_EmptyDefaultsToThirtyDays(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	r := newDateRangeAt(nil, now)

	assert.Equal(t, now, r.End)
	assert.Equal(t, now.AddDate(0, 0, -30), r.Start)
}

func TestPosition_InterpolatesAndClamps(t *testing.T) {
	r := models.DateRange{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name string
		at   time.Time
		want float64
	}{
		{"start", r.Start, 0},
		{"midpoint", time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC), 50},
		{"end", r.End, 100},
		{"before range clamps", r.Start.AddDate(0, 0, -5), 0},
		{"after range clamps", r.End.AddDate(0, 0, 5), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Position(tt.at, r), 1e-9)
		})
	}
}

func TestPosition_DegenerateRangeIsMidpoint(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := models.DateRange{Start: day, End: day}

	for _, at := range []time.Time{day, day.AddDate(0, 0, -10), day.AddDate(1, 0, 0)} {
		assert.Equal(t, float64(DegeneratePosition), Position(at, r))
	}
}

func TestPositionCommits_MonotonicInDate(t *testing.T) {
	commits := []models.Commit{
		commitOn(t, "c", "2024-01-25"),
		commitOn(t, "a", "2024-01-02"),
		commitOn(t, "b", "2024-01-10"),
	}
	r := NewDateRange(commits)

	positioned := PositionCommits(commits, nil, r)

	require.Len(t, positioned, 3)
	for i, pc := range positioned {
		assert.GreaterOrEqual(t, pc.Position, 0.0)
		assert.LessOrEqual(t, pc.Position, 100.0)
		if i > 0 {
			assert.GreaterOrEqual(t, pc.Position, positioned[i-1].Position)
			assert.False(t, pc.Commit.Date.Before(positioned[i-1].Commit.Date))
		}
	}
}

func TestPositionCommits_AttachesAnalysisBySHA(t *testing.T) {
	commits := []models.Commit{
		commitOn(t, "a", "2024-01-02"),
		commitOn(t, "b", "2024-01-10"),
	}
	analyses := []models.CommitAnalysis{
		{CommitSHA: "b", Title: "Add feature", Type: models.TypeFeature},
	}

	positioned := PositionCommits(commits, analyses, NewDateRange(commits))

	require.Len(t, positioned, 2)
	assert.Nil(t, positioned[0].Analysis)
	require.NotNil(t, positioned[1].Analysis)
	assert.Equal(t, "Add feature", positioned[1].Analysis.Title)
}

func TestPositionCommits_DoesNotMutateInput(t *testing.T) {
	commits := []models.Commit{
		commitOn(t, "b", "2024-01-10"),
		commitOn(t, "a", "2024-01-02"),
	}

	PositionCommits(commits, nil, NewDateRange(commits))

	assert.Equal(t, "b", commits[0].SHA, "input order must be preserved")
}
