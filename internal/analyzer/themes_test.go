package analyzer

import (
	"reflect"
	"testing"
	"time"

	"github.com/chronocode/chrono/pkg/models"
)

func commitsOverDays(n int) []models.Commit {
	commits := make([]models.Commit, n)
	for i := range commits {
		commits[i] = models.Commit{
			SHA:  string(rune('a' + i%26)),
			Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
		}
	}
	return commits
}

func TestChunkCount(t *testing.T) {
	tests := []struct {
		total, numThemes, want int
	}{
		{0, 6, 2},
		{1, 6, 2},
		{9, 6, 2},
		{10, 6, 2},
		{15, 6, 3},
		{30, 6, 6},
		{100, 6, 6},
		{100, 4, 4},
	}
	for _, tt := range tests {
		if got := ChunkCount(tt.total, tt.numThemes); got != tt.want {
			t.Errorf("ChunkCount(%d, %d) = %d, want %d", tt.total, tt.numThemes, got, tt.want)
		}
	}
}

func TestThemesAnalyzer_ContiguousNearEqualChunks(t *testing.T) {
	commits := commitsOverDays(17) // 17/5 = 3 chunks: sizes 6, 6, 5

	result := NewThemesAnalyzer().Analyze("demo", commits)

	if len(result.Segments) != 3 {
		t.Fatalf("segments = %d, want 3", len(result.Segments))
	}
	sizes := []int{
		len(result.Segments[0].Commits),
		len(result.Segments[1].Commits),
		len(result.Segments[2].Commits),
	}
	if !reflect.DeepEqual(sizes, []int{6, 6, 5}) {
		t.Errorf("chunk sizes = %v, want [6 6 5]", sizes)
	}

	// Contiguity: every segment starts where the previous one ended.
	var total int
	for i, seg := range result.Segments {
		total += len(seg.Commits)
		if seg.StartDate.After(seg.EndDate) {
			t.Errorf("segment %d: start after end", i)
		}
		if i > 0 && seg.StartDate.Before(result.Segments[i-1].EndDate) {
			t.Errorf("segment %d overlaps previous", i)
		}
	}
	if total != len(commits) {
		t.Errorf("segments cover %d commits, want %d", total, len(commits))
	}
}

func TestThemesAnalyzer_RoundRobinCatalog(t *testing.T) {
	catalog := []models.Theme{{Name: "A"}, {Name: "B"}}
	commits := commitsOverDays(30) // 6 chunks capped by maxThemes

	result := NewThemesAnalyzer(
		WithThemeCatalog(catalog),
		WithMaxThemes(4),
	).Analyze("demo", commits)

	if len(result.Segments) != 4 {
		t.Fatalf("segments = %d, want 4", len(result.Segments))
	}
	wantNames := []string{"A", "B", "A", "B"}
	for i, seg := range result.Segments {
		if seg.Theme.Name != wantNames[i] {
			t.Errorf("segment %d theme = %s, want %s", i, seg.Theme.Name, wantNames[i])
		}
	}
}

func TestThemesAnalyzer_TinyCommitSetSkipsEmptyChunk(t *testing.T) {
	result := NewThemesAnalyzer().Analyze("demo", commitsOverDays(1))

	if len(result.Segments) != 1 {
		t.Fatalf("segments = %d, want 1", len(result.Segments))
	}
	if len(result.Segments[0].Commits) != 1 {
		t.Errorf("single commit must land in the single segment")
	}
}

func TestThemesAnalyzer_EmptyAndDeterministic(t *testing.T) {
	empty := NewThemesAnalyzer().Analyze("demo", nil)
	if len(empty.Segments) != 0 {
		t.Errorf("empty input must yield no segments")
	}

	commits := commitsOverDays(12)
	first := NewThemesAnalyzer().Analyze("demo", commits)
	second := NewThemesAnalyzer().Analyze("demo", commits)
	if !reflect.DeepEqual(first.Segments, second.Segments) {
		t.Error("theme assignment must be deterministic")
	}
}
