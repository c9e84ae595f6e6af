package game

import (
	"fmt"
	"slices"
	"time"
)

// Boss is a milestone fight bound to one week. It is cleared by completing every checklist step on one day.
type Boss struct {
	Week     int
	ID       string
	RewardXP int
	// Steps are i18n keys of the checklist.
	Steps []string
}

var bossCatalog = []Boss{
	{Week: 2, ID: "gatekeeper", RewardXP: 300, Steps: []string{
		"boss.step.squat_5x5", "boss.step.pushups_50", "boss.step.plank_3min",
	}},
	{Week: 4, ID: "iron_golem", RewardXP: 400, Steps: []string{
		"boss.step.deadlift_5x5", "boss.step.rows_4x10", "boss.step.carry_5min", "boss.step.mobility_15",
	}},
	{Week: 6, ID: "storm_runner", RewardXP: 500, Steps: []string{
		"boss.step.intervals_10", "boss.step.burpees_50", "boss.step.lunges_100", "boss.step.plank_3min",
	}},
	{Week: 8, ID: "twin_wardens", RewardXP: 600, Steps: []string{
		"boss.step.split_squat_4x10", "boss.step.single_arm_row_4x10", "boss.step.step_ups_100",
		"boss.step.side_plank_2min",
	}},
	{Week: 10, ID: "hydra", RewardXP: 800, Steps: []string{
		"boss.step.complex_5_rounds", "boss.step.pullups_30", "boss.step.squat_5x5", "boss.step.run_5k",
		"boss.step.mobility_15",
	}},
	{Week: 12, ID: "iron_king", RewardXP: 1000, Steps: []string{
		"boss.step.deadlift_5x5", "boss.step.complex_5_rounds", "boss.step.burpees_100", "boss.step.run_5k",
		"boss.step.mobility_15",
	}},
}

// Bosses returns the catalog ordered by week.
func Bosses() []Boss {
	return slices.Clone(bossCatalog)
}

// BossForWeek looks up the boss of a week.
func BossForWeek(week int) (Boss, bool) {
	for _, b := range bossCatalog {
		if b.Week == week {
			return b, true
		}
	}
	return Boss{}, false
}

// BossStatus is the derived state of a boss fight.
type BossStatus string

const (
	BossLocked  BossStatus = "locked"
	BossOpen    BossStatus = "open"
	BossCleared BossStatus = "cleared"
)

// BossRecord is the persisted clear of a boss.
type BossRecord struct {
	Cleared   bool      `json:"cleared"`
	ClearedAt time.Time `json:"cleared_at"`
	GrantID   string    `json:"grant_id"`
}

// BossStatusFor derives the status. Only the boss of the current week is open.
func BossStatusFor(b Boss, rec BossRecord, currentWeek int) BossStatus {
	switch {
	case rec.Cleared:
		return BossCleared
	case b.Week == currentWeek:
		return BossOpen
	default:
		return BossLocked
	}
}

// ChecklistKey identifies the checklist of a boss on one day. Ticks of another day do not count.
func ChecklistKey(week int, date time.Time) string {
	return fmt.Sprintf("%d/%s", week, Day(date).Format(time.DateOnly))
}

// SplitReward divides total into parts whole-XP pieces. The remainder goes to the last piece so that the pieces sum
// to total.
func SplitReward(total, parts int) []int {
	if parts < 1 {
		return nil
	}
	pieces := make([]int, parts)
	for i := range pieces {
		pieces[i] = total / parts
	}
	pieces[parts-1] += total % parts
	return pieces
}

// SetBossStep ticks or unticks a checklist step of the open boss for today.
func (s *State) SetBossStep(week, step int, done bool, today time.Time) error {
	const action = "update boss checklist"
	b, ok := BossForWeek(week)
	if !ok {
		return reject(action, ErrUnknownBoss)
	}
	if step < 0 || step >= len(b.Steps) {
		return reject(action, ErrUnknownStep)
	}
	switch BossStatusFor(b, s.Bosses[week], s.Week(today)) {
	case BossCleared:
		return reject(action, ErrBossCleared)
	case BossLocked:
		return reject(action, ErrBossLocked)
	case BossOpen:
	}
	key := ChecklistKey(week, today)
	if s.Checklists[key] == nil {
		s.Checklists[key] = make(map[int]bool)
	}
	if done {
		s.Checklists[key][step] = true
	} else {
		delete(s.Checklists[key], step)
	}
	return nil
}

// ChecklistDone reports whether every step of the boss is ticked for date.
func (s *State) ChecklistDone(b Boss, date time.Time) bool {
	ticked := s.Checklists[ChecklistKey(b.Week, date)]
	for i := range b.Steps {
		if !ticked[i] {
			return false
		}
	}
	return true
}

// ClearBoss marks the open boss as cleared and returns the reward entries: one boss workout per step carrying a
// share of the reward and a zero XP clear marker, all tagged with grantID.
func (s *State) ClearBoss(week int, today time.Time, grantID string) ([]Entry, error) {
	const action = "clear boss"
	b, ok := BossForWeek(week)
	if !ok {
		return nil, reject(action, ErrUnknownBoss)
	}
	currentWeek := s.Week(today)
	switch BossStatusFor(b, s.Bosses[week], currentWeek) {
	case BossCleared:
		return nil, reject(action, ErrBossCleared)
	case BossLocked:
		return nil, reject(action, ErrBossLocked)
	case BossOpen:
	}
	if !s.ChecklistDone(b, today) {
		return nil, reject(action, ErrBossIncomplete)
	}

	date := Day(today)
	pieces := SplitReward(b.RewardXP, len(b.Steps))
	entries := make([]Entry, 0, len(pieces)+1)
	for i, xp := range pieces {
		entries = append(entries, Entry{
			ID:       0,
			Date:     date,
			Week:     currentWeek,
			Exercise: b.Steps[i],
			Type:     TypeBossWorkout,
			Source:   SourceBoss,
			Detail:   fmt.Sprintf("boss %s reward part %d/%d", b.ID, i+1, len(pieces)),
			XP:       xp,
			Ref:      b.ID,
			GrantID:  grantID,
		})
	}
	entries = append(entries, Entry{
		ID:       0,
		Date:     date,
		Week:     currentWeek,
		Exercise: b.ID,
		Type:     TypeBossClear,
		Source:   SourceBoss,
		Detail:   fmt.Sprintf("boss %s cleared, %d XP", b.ID, b.RewardXP),
		XP:       0,
		Ref:      b.ID,
		GrantID:  grantID,
	})
	s.Bosses[week] = BossRecord{Cleared: true, ClearedAt: date, GrantID: grantID}
	return entries, nil
}

// BossView is a boss with its derived status and today's checklist.
type BossView struct {
	Boss
	Status    BossStatus
	Done      []bool
	ClearedAt time.Time
}

// BossViews derives the status of every boss.
func (s *State) BossViews(today time.Time) []BossView {
	currentWeek := s.Week(today)
	views := make([]BossView, 0, len(bossCatalog))
	for _, b := range bossCatalog {
		rec := s.Bosses[b.Week]
		ticked := s.Checklists[ChecklistKey(b.Week, today)]
		done := make([]bool, len(b.Steps))
		for i := range done {
			done[i] = ticked[i]
		}
		views = append(views, BossView{
			Boss:      b,
			Status:    BossStatusFor(b, rec, currentWeek),
			Done:      done,
			ClearedAt: rec.ClearedAt,
		})
	}
	return views
}
