package game

import (
	"slices"
	"time"
)

// AttributeView is one attribute's total and level.
type AttributeView struct {
	Stat  Stat
	XP    int
	Level AttributeLevel
}

// Snapshot is the derived game state at one moment. It is recomputed from scratch on every request.
type Snapshot struct {
	Today     time.Time
	StartDate time.Time
	// Week is the raw week of today, DisplayWeek is clamped to the program length.
	Week        int
	DisplayWeek int
	MaxWeek     int
	Block       int

	Totals     Totals
	Character  CharacterProgress
	Attributes []AttributeView
	Mutation   Mutation

	Adaptation      Adaptation
	Recommendations []Recommendation

	Bosses       []BossView
	WeekStats    WeekStats
	Achievements []AchievementView
	Skills       SkillsView
	Quests       []QuestView

	Streak     int
	BestStreak int
	Challenge  bool
	TodayStars int
	RecentDays []DayView
}

// DayView is the XP and star rating of one day.
type DayView struct {
	Date  time.Time
	XP    int
	Stars int
}

const recentDays = 7

// BuildSnapshot derives the snapshot from one consistent entry list. Mutations must already be assigned for the weeks
// that should carry one; missing assignments count as no mutation.
func BuildSnapshot(entries []Entry, state State, today time.Time, maxWeek int) Snapshot {
	today = Day(today)
	week := state.Week(today)

	attrs := AggregateAttributes(entries, state.MutationFor)
	totals := AttributeTotals(attrs)
	attributeViews := make([]AttributeView, 0, len(Attributes()))
	for _, s := range Attributes() {
		attributeViews = append(attributeViews, AttributeView{Stat: s, XP: totals[s], Level: AttributeLevelFor(totals[s])})
	}

	daily := DailyXP(entries)
	recent := make([]DayView, 0, recentDays)
	for i := recentDays - 1; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		recent = append(recent, DayView{Date: d, XP: daily[d], Stars: Stars(daily[d])})
	}

	adaptation := Adapt(entries, week)
	sumXP := ComputeTotals(entries, today, week)

	return Snapshot{
		Today:           today,
		StartDate:       state.StartDate,
		Week:            week,
		DisplayWeek:     ClampWeek(week, maxWeek),
		MaxWeek:         maxWeek,
		Block:           Block(week),
		Totals:          sumXP,
		Character:       CharacterLevel(sumXP.All),
		Attributes:      attributeViews,
		Mutation:        state.MutationFor(week),
		Adaptation:      adaptation,
		Recommendations: Recommendations(week, adaptation),
		Bosses:          state.BossViews(today),
		WeekStats:       ComputeWeekStats(entries, week),
		Achievements:    state.AchievementViews(entries, week),
		Skills:          state.Skills.View(EarnedSkillPoints(entries)),
		Quests:          QuestViews(entries, today),
		Streak:          CurrentStreak(entries, today),
		BestStreak:      max(state.Streak.Best, CurrentStreak(entries, today)),
		Challenge:       state.Challenge,
		TodayStars:      Stars(daily[today]),
		RecentDays:      recent,
	}
}

// WeeksWithEntries lists the distinct positive weeks referenced by entries, ascending.
func WeeksWithEntries(entries []Entry) []int {
	var weeks []int
	for _, e := range entries {
		if e.Week > 0 && !slices.Contains(weeks, e.Week) {
			weeks = append(weeks, e.Week)
		}
	}
	slices.Sort(weeks)
	return weeks
}
