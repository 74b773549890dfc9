package progress

import (
	"time"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
)

// Interval tables in calendar days, indexed by the review count before the
// current review and clamped to the last entry.
var (
	hardIntervals   = []int{1, 1, 3, 7, 14}
	mediumIntervals = []int{1, 3, 7, 14, 30}
	easyIntervals   = []int{3, 7, 14, 30, 60, 90}
)

func intervalTable(d domain.Difficulty) []int {
	switch d {
	case domain.DifficultyHard:
		return hardIntervals
	case domain.DifficultyMedium:
		return mediumIntervals
	default:
		return easyIntervals
	}
}

// IntervalDays returns the review interval for a word that had reviewCount
// reviews before this one. Negative counts are treated as zero.
func IntervalDays(reviewCount int, d domain.Difficulty) int {
	table := intervalTable(d)
	idx := min(max(reviewCount, 0), len(table)-1)
	return table[idx]
}

// NextReviewDate is a pure function. The result keeps the clock time of now
// and advances the calendar date by IntervalDays.
func NextReviewDate(reviewCount int, d domain.Difficulty, now time.Time) time.Time {
	return now.AddDate(0, 0, IntervalDays(reviewCount, d))
}
