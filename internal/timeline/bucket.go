package timeline

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/chronocode/chrono/pkg/models"
)

// Granularity is the time-bucket width used to group commits.
type Granularity string

const (
	GranularityDay      Granularity = "day"
	GranularityWeek     Granularity = "week"
	GranularityTwoWeeks Granularity = "two_weeks"
	GranularityMonth    Granularity = "month"
	GranularityQuarter  Granularity = "quarter"
	GranularityYear     Granularity = "year"
)

// Granularities lists all supported granularities.
var Granularities = []Granularity{
	GranularityDay, GranularityWeek, GranularityTwoWeeks,
	GranularityMonth, GranularityQuarter, GranularityYear,
}

// ParseGranularity converts a string to a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Granularities {
		if g == known {
			return g, nil
		}
	}
	return "", &InvalidGranularityError{Granularity: s}
}

// BucketByPeriod partitions commits into time buckets keyed per
// granularity: day "YYYY-MM-DD", week the date of the preceding-or-same
// Sunday, two_weeks "YYYY-W<n>" with an even week anchor, month
// "YYYY-MM", quarter "YYYY-Q<n>", year "YYYY". Every commit lands in
// exactly one bucket. Bucket ordering is first-seen; callers sort keys
// before rendering.
func BucketByPeriod(commits []models.Commit, granularity Granularity) (map[string][]models.Commit, error) {
	if _, err := ParseGranularity(string(granularity)); err != nil {
		return nil, err
	}

	buckets := make(map[string][]models.Commit)
	for _, c := range commits {
		if c.Date.IsZero() {
			return nil, &models.DateParseError{Input: c.SHA + ": zero date"}
		}
		key := bucketKey(c.Date, granularity)
		buckets[key] = append(buckets[key], c)
	}
	return buckets, nil
}

// bucketKey derives the bucket key for a valid date. Pure and total.
func bucketKey(t time.Time, granularity Granularity) string {
	switch granularity {
	case GranularityDay:
		return t.Format("2006-01-02")
	case GranularityWeek:
		return startOfWeek(t).Format("2006-01-02")
	case GranularityTwoWeeks:
		anchor := (weekNumber(t) / 2) * 2
		return fmt.Sprintf("%d-W%d", t.Year(), anchor)
	case GranularityMonth:
		return t.Format("2006-01")
	case GranularityQuarter:
		quarter := (int(t.Month())-1)/3 + 1
		return fmt.Sprintf("%d-Q%d", t.Year(), quarter)
	case GranularityYear:
		return t.Format("2006")
	default:
		return t.Format("2006-01")
	}
}

// startOfWeek returns the preceding-or-same Sunday. Weeks are
// Sunday-start, not ISO Monday-start.
func startOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// weekNumber computes the week-of-year the way the charting layer counts
// weeks: elapsed days since Jan 1 (fractional), offset by Jan 1's
// weekday, divided into Sunday-start weeks and rounded up.
func weekNumber(t time.Time) int {
	firstDay := time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
	pastDays := t.Sub(firstDay).Hours() / 24
	return int(math.Ceil((pastDays + float64(firstDay.Weekday()) + 1) / 7))
}
