// Package schedule provides weekday parsing and week-start date math for
// plan scheduling. A plan week is identified by the date of its configured
// start weekday; any timestamp inside the week maps to that date.
package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const daysPerWeek = 7

// Static errors for schedule validation.
var (
	ErrUnknownWeekday = errors.New("unknown weekday")
	ErrInvalidHour    = errors.New("invalid hour")
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"sun":       time.Sunday,
	"monday":    time.Monday,
	"mon":       time.Monday,
	"tuesday":   time.Tuesday,
	"tue":       time.Tuesday,
	"wednesday": time.Wednesday,
	"wed":       time.Wednesday,
	"thursday":  time.Thursday,
	"thu":       time.Thursday,
	"friday":    time.Friday,
	"fri":       time.Friday,
	"saturday":  time.Saturday,
	"sat":       time.Saturday,
}

// ParseWeekday resolves a weekday name ("monday", "Mon") to time.Weekday.
func ParseWeekday(name string) (time.Weekday, error) {
	day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return time.Sunday, fmt.Errorf("%w: %q", ErrUnknownWeekday, name)
	}

	return day, nil
}

// ValidateHour checks an hour-of-day value.
func ValidateHour(hour int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("%w: %d", ErrInvalidHour, hour)
	}

	return nil
}

// WeekStartOf returns the most recent occurrence of startDay at or before t,
// truncated to midnight in t's location.
func WeekStartOf(t time.Time, startDay time.Weekday) time.Time {
	back := (int(t.Weekday()) - int(startDay) + daysPerWeek) % daysPerWeek
	day := t.AddDate(0, 0, -back)

	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, t.Location())
}

// TargetWeekStart returns the start date of the week the batch should plan
// for: the week containing now+leadDays. A Sunday invocation with lead 1
// targets the week beginning the next day.
func TargetWeekStart(now time.Time, startDay time.Weekday, leadDays int) time.Time {
	return WeekStartOf(now.AddDate(0, 0, leadDays), startDay)
}
