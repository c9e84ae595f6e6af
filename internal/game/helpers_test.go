package game_test

import (
	"github.com/musoad/iron-quest-sub000/internal/game"
	"time"
)

var start = mustDate("2024-01-01")

func mustDate(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

// userDay creates a user training entry worth xp on the given date.
func userDay(date string, xp int) game.Entry {
	d := mustDate(date)
	return game.Entry{
		ID:       0,
		Date:     d,
		Week:     game.WeekNumber(start, d),
		Exercise: "Squat",
		Type:     game.TypeMultiJoint,
		Source:   game.SourceUser,
		Detail:   "",
		XP:       xp,
		Ref:      "",
		GrantID:  "",
	}
}

func withSource(e game.Entry, src game.Source, t game.ExerciseType) game.Entry {
	e.Source = src
	e.Type = t
	return e
}

// daysOfWeek spreads one entry per xp value over consecutive days starting at first.
func daysOfWeek(first string, xps ...int) []game.Entry {
	d := mustDate(first)
	entries := make([]game.Entry, 0, len(xps))
	for i, xp := range xps {
		entries = append(entries, userDay(d.AddDate(0, 0, i).Format(time.DateOnly), xp))
	}
	return entries
}

type fixedChooser int

func (f fixedChooser) IntN(int) int {
	return int(f)
}
