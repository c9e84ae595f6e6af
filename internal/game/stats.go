package game

import (
	"time"
)

// Star thresholds of daily XP.
const (
	OneStarXP   = 300
	TwoStarXP   = 600
	ThreeStarXP = 900
)

// Stars rates a day: 0 below [OneStarXP], 3 from [ThreeStarXP]. A day with at least one star is a trained day.
func Stars(dayXP int) int {
	switch {
	case dayXP >= ThreeStarXP:
		return 3
	case dayXP >= TwoStarXP:
		return 2
	case dayXP >= OneStarXP:
		return 1
	default:
		return 0
	}
}

// DailyXP sums the XP counting towards each day, keyed by [Day].
func DailyXP(entries []Entry) map[time.Time]int {
	days := make(map[time.Time]int)
	for _, e := range entries {
		if e.CountsTowardsDay() {
			days[Day(e.Date)] += e.XP
		}
	}
	return days
}

// WeekStats aggregates one week of day-counting entries.
type WeekStats struct {
	Week          int
	XP            int
	TrainDays     int
	TwoPlusDays   int
	ThreeStarDays int
	QuestCount    int
}

// ComputeWeekStats aggregates the entries whose cached week is week.
func ComputeWeekStats(entries []Entry, week int) WeekStats {
	stats := WeekStats{Week: week, XP: 0, TrainDays: 0, TwoPlusDays: 0, ThreeStarDays: 0, QuestCount: 0}
	var inWeek []Entry
	for _, e := range entries {
		if e.Week != week || !e.CountsTowardsDay() {
			continue
		}
		inWeek = append(inWeek, e)
		stats.XP += e.XP
		if e.Source == SourceQuest {
			stats.QuestCount++
		}
	}
	for _, xp := range DailyXP(inWeek) {
		stars := Stars(xp)
		if stars >= 1 {
			stats.TrainDays++
		}
		if stars >= 2 {
			stats.TwoPlusDays++
		}
		if stars == 3 {
			stats.ThreeStarDays++
		}
	}
	return stats
}

// Totals are the headline XP sums. They include every entry.
type Totals struct {
	Today int
	Week  int
	All   int
}

// ComputeTotals sums the XP of today, of the week containing today and of all time.
func ComputeTotals(entries []Entry, today time.Time, week int) Totals {
	var t Totals
	today = Day(today)
	for _, e := range entries {
		t.All += e.XP
		if Day(e.Date).Equal(today) {
			t.Today += e.XP
		}
		if e.Week == week {
			t.Week += e.XP
		}
	}
	return t
}
