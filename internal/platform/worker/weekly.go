package worker

import "time"

const (
	hoursPerDay = 24
	// defaultWeeklyGracePeriod is 6 days - prevents duplicate runs within same week.
	defaultWeeklyGracePeriod = 6 * hoursPerDay * time.Hour
)

// ShouldRunWeekly reports whether a weekly task is due: the configured
// weekday and hour have arrived and at least gracePeriod has passed since
// the last run. A zero gracePeriod uses the 6-day default; a zero lastRun
// means the task never ran.
func ShouldRunWeekly(
	now time.Time,
	day time.Weekday,
	hour int,
	lastRun time.Time,
	gracePeriod time.Duration,
) bool {
	if now.Weekday() != day {
		return false
	}

	if now.Hour() != hour {
		return false
	}

	if gracePeriod == 0 {
		gracePeriod = defaultWeeklyGracePeriod
	}

	if !lastRun.IsZero() && now.Sub(lastRun) <= gracePeriod {
		return false
	}

	return true
}
