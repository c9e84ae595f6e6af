package game_test

import (
	"errors"
	"github.com/musoad/iron-quest-sub000/internal/game"
	"testing"
)

func TestState_CheckRemoval(t *testing.T) {
	entries := append(daysOfWeek("2024-01-01", 300, 600),
		withSource(userDay("2024-01-03", 300), game.SourceBoss, game.TypeBossWorkout),
	)
	for i := range entries {
		entries[i].ID = int64(i + 1)
	}
	state := game.NewState(start)
	if err := state.Skills.Unlock(game.TypeCore, "breathing", game.EarnedSkillPoints(entries)); err != nil {
		t.Fatal(err)
	}
	if err := state.Skills.Unlock(game.TypeCore, "anti_rotation", game.EarnedSkillPoints(entries)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		id      int64
		wantErr error
	}{
		{name: "points would go below spent", id: 1, wantErr: game.ErrPointsSpent},
		{name: "system entry", id: 3, wantErr: game.ErrSystemEntry},
		{name: "unknown id", id: 42, wantErr: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := state.CheckRemoval(entries, tt.id); !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckRemoval() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	state.Skills.Spent = 2
	if err := state.CheckRemoval(entries, 2); !errors.Is(err, game.ErrPointsSpent) {
		t.Errorf("removing the two-star day error = %v, want %v", err, game.ErrPointsSpent)
	}
	if err := state.CheckRemoval(entries, 1); err != nil {
		t.Errorf("removing the one-star day error = %v", err)
	}
}

func TestCheckEdit(t *testing.T) {
	if err := game.CheckEdit(userDay("2024-01-01", 100)); err != nil {
		t.Errorf("CheckEdit(user) error = %v", err)
	}
	boss := withSource(userDay("2024-01-01", 100), game.SourceBoss, game.TypeBossWorkout)
	if err := game.CheckEdit(boss); !errors.Is(err, game.ErrSystemEntry) {
		t.Errorf("CheckEdit(boss) error = %v, want %v", err, game.ErrSystemEntry)
	}
}
