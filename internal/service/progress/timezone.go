package progress

import "time"

// DayStart returns the start of the calendar day containing now in tz, converted to UTC.
func DayStart(now time.Time, tz *time.Location) time.Time {
	local := now.In(tz)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, tz).UTC()
}

// PreviousDayStart returns the start of the day before the one containing now in tz.
func PreviousDayStart(now time.Time, tz *time.Location) time.Time {
	// AddDate keeps midnight across DST changes, Add(-24h) does not
	prev := DayStart(now, tz).In(tz).AddDate(0, 0, -1)
	return time.Date(prev.Year(), prev.Month(), prev.Day(), 0, 0, 0, 0, tz).UTC()
}
