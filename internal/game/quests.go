package game

import (
	"fmt"
	"slices"
	"time"
)

// Quest is a daily side task with a fixed reward. Quest XP is never multiplied.
type Quest struct {
	ID       string
	RewardXP int
}

var questCatalog = []Quest{
	{ID: "mobility_10", RewardXP: 40},
	{ID: "steps_8k", RewardXP: 40},
	{ID: "protein", RewardXP: 30},
}

// Quests returns the catalog.
func Quests() []Quest {
	return slices.Clone(questCatalog)
}

// QuestByID looks up a catalog entry.
func QuestByID(id string) (Quest, bool) {
	for _, q := range questCatalog {
		if q.ID == id {
			return q, true
		}
	}
	return Quest{}, false
}

// QuestDone reports whether the quest was completed on date.
func QuestDone(entries []Entry, questID string, date time.Time) bool {
	date = Day(date)
	return slices.ContainsFunc(entries, func(e Entry) bool {
		return e.Source == SourceQuest && e.Ref == questID && Day(e.Date).Equal(date)
	})
}

// CompleteQuest returns the entry for completing a quest on date. Each quest can be completed once per day.
func CompleteQuest(entries []Entry, questID string, date time.Time, week int) (Entry, error) {
	const action = "complete quest"
	q, ok := QuestByID(questID)
	if !ok {
		return Entry{}, reject(action, ErrUnknownQuest)
	}
	if QuestDone(entries, questID, date) {
		return Entry{}, reject(action, ErrQuestDone)
	}
	return Entry{
		ID:       0,
		Date:     Day(date),
		Week:     week,
		Exercise: q.ID,
		Type:     TypeQuest,
		Source:   SourceQuest,
		Detail:   fmt.Sprintf("quest %s, %d XP", q.ID, q.RewardXP),
		XP:       q.RewardXP,
		Ref:      q.ID,
		GrantID:  "",
	}, nil
}

// QuestView is a quest with its state for one day.
type QuestView struct {
	Quest
	Done bool
}

// QuestViews lists the catalog with the state of date.
func QuestViews(entries []Entry, date time.Time) []QuestView {
	views := make([]QuestView, 0, len(questCatalog))
	for _, q := range questCatalog {
		views = append(views, QuestView{Quest: q, Done: QuestDone(entries, q.ID, date)})
	}
	return views
}
