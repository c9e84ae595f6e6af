package game_test

import (
	"github.com/google/go-cmp/cmp"
	"github.com/musoad/iron-quest-sub000/internal/game"
	"testing"
)

func TestBuildSnapshot(t *testing.T) {
	state := game.NewState(start)
	state.Mutations[2] = "berserker"
	today := mustDate("2024-01-10")

	entries := append(daysOfWeek("2024-01-01", 900, 950, 300, 300, 300),
		userDay("2024-01-10", 468),
		withSource(userDay("2024-01-09", 150), game.SourceAchievement, game.TypeAchievement),
	)
	quest, err := game.CompleteQuest(entries, "protein", today, 2)
	if err != nil {
		t.Fatal(err)
	}
	entries = append(entries, quest)

	snap := game.BuildSnapshot(entries, state, today, game.DefaultMaxWeek)

	wantTotals := game.Totals{Today: 498, Week: 648, All: 3398}
	if diff := cmp.Diff(wantTotals, snap.Totals); diff != "" {
		t.Errorf("totals mismatch (-want +got):\n%s", diff)
	}
	if snap.Week != 2 || snap.DisplayWeek != 2 || snap.Block != 1 {
		t.Errorf("week = %d display %d block %d", snap.Week, snap.DisplayWeek, snap.Block)
	}
	if snap.Character.Level != 5 || snap.Character.TitleKey != "title.warrior" {
		t.Errorf("character = %+v", snap.Character)
	}
	if snap.Mutation.ID != "berserker" {
		t.Errorf("mutation = %q", snap.Mutation.ID)
	}
	if snap.Adaptation.Verdict != game.VerdictElite {
		t.Errorf("verdict = %s", snap.Adaptation.Verdict)
	}
	if snap.Bosses[0].Status != game.BossOpen {
		t.Errorf("week 2 boss status = %s", snap.Bosses[0].Status)
	}
	if snap.Streak != 1 || snap.TodayStars != 1 {
		t.Errorf("streak = %d, today stars = %d", snap.Streak, snap.TodayStars)
	}
	if got := len(snap.RecentDays); got != 7 || !snap.RecentDays[6].Date.Equal(today) {
		t.Errorf("recent days = %+v", snap.RecentDays)
	}
	// 2750 from week 1, then 468 plus a quarter of the achievement and the quest scaled by berserker.
	if snap.Attributes[0].Stat != game.StatSTR || snap.Attributes[0].XP != 3314 {
		t.Errorf("STR = %+v", snap.Attributes[0])
	}
	if snap.Skills.Earned != 10 {
		t.Errorf("earned skill points = %d, want 10", snap.Skills.Earned)
	}
}

func TestBuildSnapshot_pastTheProgram(t *testing.T) {
	snap := game.BuildSnapshot(nil, game.NewState(start), mustDate("2024-05-01"), game.DefaultMaxWeek)
	if snap.Week != 18 || snap.DisplayWeek != 12 {
		t.Errorf("week = %d, display week = %d", snap.Week, snap.DisplayWeek)
	}
	if !snap.Mutation.None() {
		t.Errorf("expected no mutation without assignment, got %q", snap.Mutation.ID)
	}
	for _, b := range snap.Bosses {
		if b.Status != game.BossLocked {
			t.Errorf("boss %s status = %s", b.ID, b.Status)
		}
	}
}

func TestState_ChangeStartDate(t *testing.T) {
	state := game.NewState(start)
	state.Mutations[1] = "berserker"
	state.Bosses[2] = game.BossRecord{Cleared: true, ClearedAt: mustDate("2024-01-10"), GrantID: "g"}
	state.Achievements[1] = map[string]bool{"iron_week": true}
	state.Checklists[game.ChecklistKey(2, mustDate("2024-01-10"))] = map[int]bool{0: true}
	state.Skills.Unlocked[game.TypeCore] = []string{"breathing"}
	state.Skills.Spent = 1
	state.Streak.Best = 4
	state.Challenge = true

	clone := state.Clone()
	clone.ChangeStartDate(mustDate("2024-02-01"))

	want := game.NewState(mustDate("2024-02-01"))
	want.Skills.Unlocked[game.TypeCore] = []string{"breathing"}
	want.Skills.Spent = 1
	want.Streak.Best = 4
	want.Challenge = true
	if diff := cmp.Diff(want, clone); diff != "" {
		t.Errorf("state after re-anchoring mismatch (-want +got):\n%s", diff)
	}
	if state.Mutations[1] != "berserker" || !state.Achievements[1]["iron_week"] {
		t.Error("clone shares maps with the original")
	}
}

func TestWeeksWithEntries(t *testing.T) {
	entries := append(daysOfWeek("2024-01-15", 100, 100), userDay("2023-12-30", 100), userDay("2024-01-02", 100))
	if diff := cmp.Diff([]int{1, 3}, game.WeeksWithEntries(entries)); diff != "" {
		t.Errorf("WeeksWithEntries() mismatch (-want +got):\n%s", diff)
	}
}
