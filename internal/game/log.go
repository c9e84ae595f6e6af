package game

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Workout is a logged set-based training.
type Workout struct {
	Date     time.Time
	Exercise string
	Type     ExerciseType
	Sets     int
	Qualifiers
}

// Activity is logged everyday movement measured in minutes.
type Activity struct {
	Date     time.Time
	Exercise string
	Minutes  int
}

// LogOptions tune entry creation.
type LogOptions struct {
	// StrictTypes rejects unknown exercise types instead of using the default rate.
	StrictTypes bool
	Chooser     Chooser
}

// multiplierFor composes the multiplier of a new user entry on date. The entry's own day counts towards the streak.
// A missing mutation of the entry's week is assigned on the way.
func (s *State) multiplierFor(entries []Entry, t ExerciseType, date time.Time, c Chooser) Multiplier {
	mutation, _ := s.EnsureMutation(s.Week(date), c)
	marker := Entry{ID: 0, Date: date, Week: 0, Exercise: "", Type: t, Source: SourceUser, Detail: "", XP: 0, Ref: "",
		GrantID: ""}
	withDay := append(slices.Clone(entries), marker)
	streak := CurrentStreak(withDay, date)
	s.Streak.Observe(streak)
	return ComposeMultiplier(MultiplierInput{
		Type:       t,
		Mutation:   mutation,
		Skills:     s.Skills,
		Challenge:  s.Challenge,
		StreakDays: streak,
	})
}

// WorkoutEntry computes the entry for a workout. XP is fixed at this point.
func (s *State) WorkoutEntry(entries []Entry, w Workout, opts LogOptions) (Entry, error) {
	const action = "log workout"
	if w.Type.IsSystem() || w.Type == TypeNEAT || w.Type == TypeRest {
		return Entry{}, reject(action, ErrNotLoggable)
	}
	if _, known := PerSetXP(w.Type); !known && opts.StrictTypes {
		return Entry{}, reject(action, ErrUnknownType)
	}
	exercise := strings.TrimSpace(w.Exercise)
	if exercise == "" {
		exercise = string(w.Type)
	}
	raw := RawWorkoutXP(w.Type, w.Sets, w.Qualifiers)
	m := s.multiplierFor(entries, w.Type, w.Date, opts.Chooser)
	xp := m.Apply(raw)
	return Entry{
		ID:       0,
		Date:     Day(w.Date),
		Week:     s.Week(w.Date),
		Exercise: exercise,
		Type:     w.Type,
		Source:   SourceUser,
		Detail:   WorkoutDetail(w.Type, w.Sets, w.Qualifiers, raw, m, xp),
		XP:       xp,
		Ref:      "",
		GrantID:  "",
	}, nil
}

// ActivityEntry computes the entry for a NEAT activity.
func (s *State) ActivityEntry(entries []Entry, a Activity, opts LogOptions) Entry {
	exercise := strings.TrimSpace(a.Exercise)
	if exercise == "" {
		exercise = string(TypeNEAT)
	}
	raw := RawActivityXP(a.Minutes)
	m := s.multiplierFor(entries, TypeNEAT, a.Date, opts.Chooser)
	xp := m.Apply(raw)
	return Entry{
		ID:       0,
		Date:     Day(a.Date),
		Week:     s.Week(a.Date),
		Exercise: exercise,
		Type:     TypeNEAT,
		Source:   SourceUser,
		Detail:   ActivityDetail(a.Minutes, raw, m, xp),
		XP:       xp,
		Ref:      "",
		GrantID:  "",
	}
}

// RestEntry records a rest day. It carries no XP and does not extend the streak.
func (s *State) RestEntry(date time.Time) Entry {
	return Entry{
		ID:       0,
		Date:     Day(date),
		Week:     s.Week(date),
		Exercise: string(TypeRest),
		Type:     TypeRest,
		Source:   SourceUser,
		Detail:   fmt.Sprintf("rest day %s", Day(date).Format(time.DateOnly)),
		XP:       0,
		Ref:      "",
		GrantID:  "",
	}
}
