package game

import (
	"time"
)

// StreakState is the persisted streak record.
type StreakState struct {
	Best int `json:"best"`
}

// Observe raises the best streak.
func (s *StreakState) Observe(current int) {
	s.Best = max(s.Best, current)
}

// trainingDays returns the days with at least one user training entry. Rest days do not count.
func trainingDays(entries []Entry) map[time.Time]bool {
	days := make(map[time.Time]bool)
	for _, e := range entries {
		if e.Source == SourceUser && e.Type != TypeRest {
			days[Day(e.Date)] = true
		}
	}
	return days
}

// CurrentStreak counts the consecutive training days ending today, or ending yesterday when today has no training
// yet.
func CurrentStreak(entries []Entry, today time.Time) int {
	days := trainingDays(entries)
	d := Day(today)
	if !days[d] {
		d = d.AddDate(0, 0, -1)
	}
	n := 0
	for days[d] {
		n++
		d = d.AddDate(0, 0, -1)
	}
	return n
}
