package progress

import (
	"fmt"
	"math"
	"time"
)

// IntervalDescription renders a day count for display.
func IntervalDescription(days int) string {
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days < 7:
		return fmt.Sprintf("in %d days", days)
	case days < 30:
		return plural(days/7, "week")
	default:
		return plural(days/30, "month")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "in 1 " + unit
	}
	return fmt.Sprintf("in %d %ss", n, unit)
}

// ReviewCountdown describes how far a review time is from now.
// Days and Hours are rounded up and always non-negative.
type ReviewCountdown struct {
	Days        int    `json:"days"`
	Hours       int    `json:"hours"`
	IsPast      bool   `json:"isPast"`
	Description string `json:"description"`
}

// TimeUntilReview computes the countdown from now to next.
func TimeUntilReview(next, now time.Time) ReviewCountdown {
	diff := next.Sub(now)
	abs := diff.Abs()

	c := ReviewCountdown{
		Days:   int(math.Ceil(abs.Hours() / 24)),
		Hours:  int(math.Ceil(abs.Hours())),
		IsPast: diff < 0,
	}

	switch {
	case c.IsPast:
		c.Description = "review now"
	case c.Hours < 24:
		c.Description = fmt.Sprintf("in %d hours", c.Hours)
	default:
		c.Description = IntervalDescription(c.Days)
	}
	return c
}
