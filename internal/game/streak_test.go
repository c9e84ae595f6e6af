package game_test

import (
	"github.com/musoad/iron-quest-sub000/internal/game"
	"testing"
)

func TestCurrentStreak(t *testing.T) {
	today := mustDate("2024-01-10")
	rest := withSource(userDay("2024-01-09", 0), game.SourceUser, game.TypeRest)
	tests := []struct {
		name    string
		entries []game.Entry
		want    int
	}{
		{name: "ending today", entries: daysOfWeek("2024-01-08", 100, 100, 100), want: 3},
		{name: "ending yesterday", entries: daysOfWeek("2024-01-07", 100, 100, 100), want: 3},
		{name: "broken yesterday", entries: daysOfWeek("2024-01-06", 100, 100), want: 0},
		{name: "rest days break the streak", entries: append(daysOfWeek("2024-01-08", 100), rest), want: 0},
		{
			name: "quests and bosses do not count",
			entries: []game.Entry{
				userDay("2024-01-08", 100),
				withSource(userDay("2024-01-09", 40), game.SourceQuest, game.TypeQuest),
				withSource(userDay("2024-01-10", 100), game.SourceBoss, game.TypeBossWorkout),
			},
			want: 0,
		},
		{name: "empty", entries: nil, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := game.CurrentStreak(tt.entries, today); got != tt.want {
				t.Errorf("CurrentStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStreakState_Observe(t *testing.T) {
	var s game.StreakState
	for _, n := range []int{2, 5, 1} {
		s.Observe(n)
	}
	if s.Best != 5 {
		t.Errorf("Best = %d, want 5", s.Best)
	}
}
