package game

import (
	"time"
)

// DefaultMaxWeek is the last week of the milestone program.
const DefaultMaxWeek = 12

const (
	daysPerWeek   = 7
	weeksPerBlock = 4
	day           = 24 * time.Hour
)

// Day truncates t to its calendar date in UTC. The calendar date of t in its own location is kept.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b, negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)) / day)
}

// WeekNumber maps date to its week relative to start. Week 1 starts on the start date. Dates before the start date
// are in week 0.
func WeekNumber(start, date time.Time) int {
	days := DaysBetween(start, date)
	if days < 0 {
		return 0
	}
	return days/daysPerWeek + 1
}

// ClampWeek bounds w to [1, maxWeek] for display. Week 0 stays 0 so that pre-start entries remain recognisable.
func ClampWeek(w, maxWeek int) int {
	switch {
	case w <= 0:
		return 0
	case w > maxWeek:
		return maxWeek
	default:
		return w
	}
}

// Block groups weeks into four-week phases starting with block 1. Week 0 is block 0.
func Block(week int) int {
	if week <= 0 {
		return 0
	}
	return (week-1)/weeksPerBlock + 1
}

// WeekStart returns the first day of week relative to start.
func WeekStart(start time.Time, week int) time.Time {
	return Day(start).AddDate(0, 0, (week-1)*daysPerWeek)
}

// Renumber recomputes the cached week of every entry for start and returns the entries whose week changed.
func Renumber(entries []Entry, start time.Time) []Entry {
	var changed []Entry
	for _, e := range entries {
		if w := WeekNumber(start, e.Date); w != e.Week {
			e.Week = w
			changed = append(changed, e)
		}
	}
	return changed
}
