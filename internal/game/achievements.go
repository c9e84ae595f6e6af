package game

import (
	"fmt"
	"slices"
	"time"
)

// Achievement is a weekly goal. It is granted at most once per week.
type Achievement struct {
	ID       string
	RewardXP int
	// Threshold is the minimum value of the counted statistic.
	Threshold int
	stat      func(WeekStats) int
}

// Progress returns the counted statistic for the week.
func (a Achievement) Progress(stats WeekStats) int {
	return a.stat(stats)
}

// Met reports whether the rule holds.
func (a Achievement) Met(stats WeekStats) bool {
	return a.stat(stats) >= a.Threshold
}

var achievementCatalog = []Achievement{
	{ID: "iron_week", RewardXP: 150, Threshold: 5, stat: func(s WeekStats) int { return s.TrainDays }},
	{ID: "double_star", RewardXP: 200, Threshold: 3, stat: func(s WeekStats) int { return s.TwoPlusDays }},
	{ID: "triple_crown", RewardXP: 300, Threshold: 2, stat: func(s WeekStats) int { return s.ThreeStarDays }},
	{ID: "quest_master", RewardXP: 150, Threshold: 10, stat: func(s WeekStats) int { return s.QuestCount }},
}

// Achievements returns the catalog.
func Achievements() []Achievement {
	return slices.Clone(achievementCatalog)
}

// EvaluateAchievements grants every achievement of week whose rule holds and that has not been granted yet. It
// records the grants in the state and returns one entry per grant. Calling it again without new entries returns
// nothing.
func (s *State) EvaluateAchievements(entries []Entry, week int, today time.Time, grantID func() string) []Entry {
	if week < 1 {
		return nil
	}
	stats := ComputeWeekStats(entries, week)
	var grants []Entry
	for _, a := range achievementCatalog {
		if s.Achievements[week][a.ID] || !a.Met(stats) {
			continue
		}
		if s.Achievements[week] == nil {
			s.Achievements[week] = make(map[string]bool)
		}
		s.Achievements[week][a.ID] = true
		grants = append(grants, Entry{
			ID:       0,
			Date:     Day(today),
			Week:     week,
			Exercise: a.ID,
			Type:     TypeAchievement,
			Source:   SourceAchievement,
			Detail:   fmt.Sprintf("achievement %s in week %d: %d >= %d", a.ID, week, a.Progress(stats), a.Threshold),
			XP:       a.RewardXP,
			Ref:      a.ID,
			GrantID:  grantID(),
		})
	}
	return grants
}

// AchievementView is an achievement with its state for one week.
type AchievementView struct {
	Achievement
	Earned   bool
	Progress int
}

// AchievementViews lists the catalog with the state of week.
func (s *State) AchievementViews(entries []Entry, week int) []AchievementView {
	stats := ComputeWeekStats(entries, week)
	views := make([]AchievementView, 0, len(achievementCatalog))
	for _, a := range achievementCatalog {
		views = append(views, AchievementView{
			Achievement: a,
			Earned:      s.Achievements[week][a.ID],
			Progress:    a.Progress(stats),
		})
	}
	return views
}
