package progress

import (
	"time"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
)

// UpdateStreak applies one study event at now to stats. Days are compared as
// calendar days in tz. A second event on the same day leaves both the streak
// and LastStudyDate untouched.
func UpdateStreak(stats domain.SessionStats, now time.Time, tz *time.Location) domain.SessionStats {
	if stats.LastStudyDate != nil {
		last := DayStart(*stats.LastStudyDate, tz)
		switch {
		case last.Equal(DayStart(now, tz)):
			return stats
		case last.Equal(PreviousDayStart(now, tz)):
			stats.CurrentStreak++
			stats.LastStudyDate = &now
			return stats
		}
	}

	stats.CurrentStreak = 1
	stats.LastStudyDate = &now
	return stats
}

// summarize recomputes the store-derived counters of stats over words.
func summarize(stats domain.SessionStats, words []domain.WordProgress) domain.SessionStats {
	stats.TotalWordsStudied = 0
	stats.TotalReviews = 0
	for _, w := range words {
		if w.ReviewCount > 0 {
			stats.TotalWordsStudied++
		}
		stats.TotalReviews += w.ReviewCount
	}
	return stats
}
