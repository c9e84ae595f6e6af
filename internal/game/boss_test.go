package game_test

import (
	"errors"
	"github.com/google/go-cmp/cmp"
	"github.com/musoad/iron-quest-sub000/internal/game"
	"testing"
)

func TestSplitReward(t *testing.T) {
	tests := []struct {
		total int
		parts int
		want  []int
	}{
		{total: 500, parts: 4, want: []int{125, 125, 125, 125}},
		{total: 501, parts: 4, want: []int{125, 125, 125, 126}},
		{total: 1000, parts: 3, want: []int{333, 333, 334}},
		{total: 300, parts: 1, want: []int{300}},
		{total: 300, parts: 0, want: nil},
	}
	for _, tt := range tests {
		got := game.SplitReward(tt.total, tt.parts)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("SplitReward(%d, %d) mismatch (-want +got):\n%s", tt.total, tt.parts, diff)
		}
	}
}

func TestBossCatalog(t *testing.T) {
	weeks := make([]int, 0)
	for _, b := range game.Bosses() {
		weeks = append(weeks, b.Week)
		if len(b.Steps) < 3 || len(b.Steps) > 5 {
			t.Errorf("boss %s has %d steps", b.ID, len(b.Steps))
		}
		sum := 0
		for _, part := range game.SplitReward(b.RewardXP, len(b.Steps)) {
			sum += part
		}
		if sum != b.RewardXP {
			t.Errorf("boss %s reward parts sum to %d, want %d", b.ID, sum, b.RewardXP)
		}
	}
	if diff := cmp.Diff([]int{2, 4, 6, 8, 10, 12}, weeks); diff != "" {
		t.Errorf("boss weeks mismatch (-want +got):\n%s", diff)
	}
}

func TestClearBoss(t *testing.T) {
	today := mustDate("2024-01-10") // week 2
	yesterday := mustDate("2024-01-09")

	tickAll := func(t *testing.T, s *game.State, week int, date string) {
		t.Helper()
		b, _ := game.BossForWeek(week)
		for i := range b.Steps {
			if err := s.SetBossStep(week, i, true, mustDate(date)); err != nil {
				t.Fatalf("SetBossStep(%d) error = %v", i, err)
			}
		}
	}

	t.Run("rejections leave the state untouched", func(t *testing.T) {
		state := game.NewState(start)
		if err := state.SetBossStep(2, 0, true, yesterday); err != nil {
			t.Fatalf("SetBossStep() error = %v", err)
		}
		tickAll(t, &state, 2, "2024-01-09")

		tests := []struct {
			name    string
			week    int
			wantErr error
		}{
			{name: "checklist done on another day", week: 2, wantErr: game.ErrBossIncomplete},
			{name: "locked", week: 4, wantErr: game.ErrBossLocked},
			{name: "unknown", week: 3, wantErr: game.ErrUnknownBoss},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				before := state.Clone()
				entries, err := state.ClearBoss(tt.week, today, "grant")
				if !errors.Is(err, tt.wantErr) || !errors.Is(err, game.ErrRejected) {
					t.Fatalf("ClearBoss() error = %v, want %v", err, tt.wantErr)
				}
				if entries != nil {
					t.Errorf("expected no entries, got %d", len(entries))
				}
				if diff := cmp.Diff(before, state); diff != "" {
					t.Errorf("state changed (-before +after):\n%s", diff)
				}
			})
		}
	})

	t.Run("clears an open boss once", func(t *testing.T) {
		state := game.NewState(start)
		tickAll(t, &state, 2, "2024-01-10")

		entries, err := state.ClearBoss(2, today, "grant-1")
		if err != nil {
			t.Fatalf("ClearBoss() error = %v", err)
		}
		type part struct {
			Type   game.ExerciseType
			Source game.Source
			XP     int
			Week   int
			Grant  string
		}
		got := make([]part, 0, len(entries))
		for _, e := range entries {
			got = append(got, part{Type: e.Type, Source: e.Source, XP: e.XP, Week: e.Week, Grant: e.GrantID})
		}
		want := []part{
			{Type: game.TypeBossWorkout, Source: game.SourceBoss, XP: 100, Week: 2, Grant: "grant-1"},
			{Type: game.TypeBossWorkout, Source: game.SourceBoss, XP: 100, Week: 2, Grant: "grant-1"},
			{Type: game.TypeBossWorkout, Source: game.SourceBoss, XP: 100, Week: 2, Grant: "grant-1"},
			{Type: game.TypeBossClear, Source: game.SourceBoss, XP: 0, Week: 2, Grant: "grant-1"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("reward entries mismatch (-want +got):\n%s", diff)
		}
		if rec := state.Bosses[2]; !rec.Cleared || !rec.ClearedAt.Equal(today) {
			t.Errorf("boss record = %+v, want cleared today", rec)
		}

		before := state.Clone()
		if _, err = state.ClearBoss(2, today, "grant-2"); !errors.Is(err, game.ErrBossCleared) {
			t.Errorf("second ClearBoss() error = %v, want %v", err, game.ErrBossCleared)
		}
		if err = state.SetBossStep(2, 0, false, today); !errors.Is(err, game.ErrBossCleared) {
			t.Errorf("SetBossStep() after clear error = %v, want %v", err, game.ErrBossCleared)
		}
		if diff := cmp.Diff(before, state); diff != "" {
			t.Errorf("state changed (-before +after):\n%s", diff)
		}
	})
}

func TestSetBossStep_rejections(t *testing.T) {
	state := game.NewState(start)
	today := mustDate("2024-01-10")
	tests := []struct {
		name    string
		week    int
		step    int
		wantErr error
	}{
		{name: "unknown step", week: 2, step: 3, wantErr: game.ErrUnknownStep},
		{name: "negative step", week: 2, step: -1, wantErr: game.ErrUnknownStep},
		{name: "locked boss", week: 4, step: 0, wantErr: game.ErrBossLocked},
		{name: "unknown boss", week: 5, step: 0, wantErr: game.ErrUnknownBoss},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := state.SetBossStep(tt.week, tt.step, true, today); !errors.Is(err, tt.wantErr) {
				t.Errorf("SetBossStep() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBossViews(t *testing.T) {
	state := game.NewState(start)
	today := mustDate("2024-01-10")
	if err := state.SetBossStep(2, 1, true, today); err != nil {
		t.Fatal(err)
	}
	views := state.BossViews(today)
	got := make(map[int]game.BossStatus)
	for _, v := range views {
		got[v.Week] = v.Status
	}
	want := map[int]game.BossStatus{
		2: game.BossOpen, 4: game.BossLocked, 6: game.BossLocked, 8: game.BossLocked, 10: game.BossLocked,
		12: game.BossLocked,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("boss statuses mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{false, true, false}, views[0].Done); diff != "" {
		t.Errorf("checklist mismatch (-want +got):\n%s", diff)
	}
}
