package game_test

import (
	"github.com/google/go-cmp/cmp"
	"github.com/musoad/iron-quest-sub000/internal/game"
	"testing"
)

func TestCharacterLevel(t *testing.T) {
	tests := []struct {
		xp   int
		want game.CharacterProgress
	}{
		{xp: 0, want: game.CharacterProgress{Level: 1, TitleKey: "title.recruit", LevelXP: 0, NextXP: 500}},
		{xp: 499, want: game.CharacterProgress{Level: 1, TitleKey: "title.recruit", LevelXP: 0, NextXP: 500}},
		{xp: 500, want: game.CharacterProgress{Level: 2, TitleKey: "title.recruit", LevelXP: 500, NextXP: 1200}},
		{xp: 1200, want: game.CharacterProgress{Level: 3, TitleKey: "title.squire", LevelXP: 1200, NextXP: 2000}},
		{xp: 3000, want: game.CharacterProgress{Level: 5, TitleKey: "title.warrior", LevelXP: 3000, NextXP: 4500}},
		{xp: 9500, want: game.CharacterProgress{Level: 8, TitleKey: "title.veteran", LevelXP: 9000, NextXP: 12000}},
		{
			xp:   21000,
			want: game.CharacterProgress{Level: 11, TitleKey: "title.champion", LevelXP: 21000, NextXP: 27000},
		},
		{xp: 51000, want: game.CharacterProgress{Level: 15, TitleKey: "title.legend", LevelXP: 51000, NextXP: 0}},
		{xp: 999999, want: game.CharacterProgress{Level: 15, TitleKey: "title.legend", LevelXP: 51000, NextXP: 0}},
	}
	for _, tt := range tests {
		got := game.CharacterLevel(tt.xp)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("CharacterLevel(%d) mismatch (-want +got):\n%s", tt.xp, diff)
		}
	}
}

func TestCharacterLevel_monotonic(t *testing.T) {
	prev := 0
	for xp := 0; xp <= 60000; xp += 50 {
		level := game.CharacterLevel(xp).Level
		if level < prev {
			t.Fatalf("level decreased at %d XP: %d < %d", xp, level, prev)
		}
		prev = level
	}
}

func TestAttributeLevelFor(t *testing.T) {
	tests := []struct {
		xp            int
		want          game.AttributeLevel
		wantRemaining int
	}{
		{xp: 0, want: game.AttributeLevel{Level: 1, Progress: 0, Required: 200}, wantRemaining: 200},
		{xp: 199, want: game.AttributeLevel{Level: 1, Progress: 199, Required: 200}, wantRemaining: 1},
		{xp: 200, want: game.AttributeLevel{Level: 2, Progress: 0, Required: 300}, wantRemaining: 300},
		{xp: 500, want: game.AttributeLevel{Level: 3, Progress: 0, Required: 400}, wantRemaining: 400},
		{xp: 650, want: game.AttributeLevel{Level: 3, Progress: 150, Required: 400}, wantRemaining: 250},
	}
	for _, tt := range tests {
		got := game.AttributeLevelFor(tt.xp)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("AttributeLevelFor(%d) mismatch (-want +got):\n%s", tt.xp, diff)
		}
		if got.Remaining() != tt.wantRemaining {
			t.Errorf("Remaining() = %d, want %d", got.Remaining(), tt.wantRemaining)
		}
	}
}
