package game

import (
	"slices"
)

// CheckEdit allows editing the descriptive fields of user and quest entries. XP never changes.
func CheckEdit(e Entry) error {
	if !e.CountsTowardsDay() {
		return reject("edit entry", ErrSystemEntry)
	}
	return nil
}

// CheckRemoval allows removing a user or quest entry unless the remaining history no longer earns the skill points
// already spent.
func (s *State) CheckRemoval(entries []Entry, id int64) error {
	const action = "delete entry"
	idx := slices.IndexFunc(entries, func(e Entry) bool { return e.ID == id })
	if idx < 0 {
		return nil
	}
	if !entries[idx].CountsTowardsDay() {
		return reject(action, ErrSystemEntry)
	}
	remaining := slices.Delete(slices.Clone(entries), idx, idx+1)
	if EarnedSkillPoints(remaining) < s.Skills.Spent {
		return reject(action, ErrPointsSpent)
	}
	return nil
}

// ClearProgress resets everything derived from the entry log. The start date, mutations and challenge mode stay.
func (s *State) ClearProgress() {
	s.Bosses = make(map[int]BossRecord)
	s.Checklists = make(map[string]map[int]bool)
	s.Achievements = make(map[int]map[string]bool)
	s.Skills = NewSkillState()
	s.Streak = StreakState{Best: 0}
}
