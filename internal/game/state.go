package game

import (
	"maps"
	"time"
)

// State is the persisted game state besides the entry log.
type State struct {
	StartDate time.Time
	// Mutations maps a week to a mutation id.
	Mutations map[int]string
	Bosses    map[int]BossRecord
	// Checklists holds the ticked boss steps per [ChecklistKey].
	Checklists map[string]map[int]bool
	// Achievements holds the granted achievement ids per week.
	Achievements map[int]map[string]bool
	Skills       SkillState
	Streak       StreakState
	Challenge    bool
}

// NewState returns an empty state anchored at start.
func NewState(start time.Time) State {
	return State{
		StartDate:    Day(start),
		Mutations:    make(map[int]string),
		Bosses:       make(map[int]BossRecord),
		Checklists:   make(map[string]map[int]bool),
		Achievements: make(map[int]map[string]bool),
		Skills:       NewSkillState(),
		Streak:       StreakState{Best: 0},
		Challenge:    false,
	}
}

// Clone returns a deep copy so that an action can be applied to the copy and discarded on rejection.
func (s State) Clone() State {
	c := s
	c.Mutations = maps.Clone(s.Mutations)
	c.Bosses = maps.Clone(s.Bosses)
	c.Checklists = make(map[string]map[int]bool, len(s.Checklists))
	for k, v := range s.Checklists {
		c.Checklists[k] = maps.Clone(v)
	}
	c.Achievements = make(map[int]map[string]bool, len(s.Achievements))
	for k, v := range s.Achievements {
		c.Achievements[k] = maps.Clone(v)
	}
	c.Skills = s.Skills.clone()
	c.normalize()
	return c
}

// normalize replaces nil maps so that callers may write to every map.
func (s *State) normalize() {
	if s.Mutations == nil {
		s.Mutations = make(map[int]string)
	}
	if s.Bosses == nil {
		s.Bosses = make(map[int]BossRecord)
	}
	if s.Checklists == nil {
		s.Checklists = make(map[string]map[int]bool)
	}
	if s.Achievements == nil {
		s.Achievements = make(map[int]map[string]bool)
	}
	if s.Skills.Unlocked == nil {
		s.Skills.Unlocked = make(map[ExerciseType][]string)
	}
}

// ChangeStartDate re-anchors the calendar. Week-bound state is cleared because week numbers change meaning. Skills,
// streak and challenge mode survive. The caller renumbers the entries with [Renumber].
func (s *State) ChangeStartDate(start time.Time) {
	s.StartDate = Day(start)
	s.Mutations = make(map[int]string)
	s.Bosses = make(map[int]BossRecord)
	s.Checklists = make(map[string]map[int]bool)
	s.Achievements = make(map[int]map[string]bool)
}

// Week returns the week of date relative to the start date.
func (s *State) Week(date time.Time) int {
	return WeekNumber(s.StartDate, date)
}
