package game_test

import (
	"github.com/google/go-cmp/cmp"
	"github.com/musoad/iron-quest-sub000/internal/game"
	"testing"
	"time"
)

func TestWeekNumber(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{name: "start date", date: mustDate("2024-01-01"), want: 1},
		{name: "last day of week 1", date: mustDate("2024-01-07"), want: 1},
		{name: "first day of week 2", date: mustDate("2024-01-08"), want: 2},
		{name: "week 12", date: mustDate("2024-03-20"), want: 12},
		{name: "past the program", date: mustDate("2024-04-01"), want: 14},
		{name: "before start", date: mustDate("2023-12-31"), want: 0},
		{
			name: "calendar date in local zone",
			date: time.Date(2024, 1, 8, 23, 30, 0, 0, time.FixedZone("CET", 3600)),
			want: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := game.WeekNumber(start, tt.date); got != tt.want {
				t.Errorf("WeekNumber() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClampWeekAndBlock(t *testing.T) {
	tests := []struct {
		week      int
		wantClamp int
		wantBlock int
	}{
		{week: 0, wantClamp: 0, wantBlock: 0},
		{week: 1, wantClamp: 1, wantBlock: 1},
		{week: 4, wantClamp: 4, wantBlock: 1},
		{week: 5, wantClamp: 5, wantBlock: 2},
		{week: 12, wantClamp: 12, wantBlock: 3},
		{week: 15, wantClamp: 12, wantBlock: 4},
	}
	for _, tt := range tests {
		if got := game.ClampWeek(tt.week, game.DefaultMaxWeek); got != tt.wantClamp {
			t.Errorf("ClampWeek(%d) = %d, want %d", tt.week, got, tt.wantClamp)
		}
		if got := game.Block(tt.week); got != tt.wantBlock {
			t.Errorf("Block(%d) = %d, want %d", tt.week, got, tt.wantBlock)
		}
	}
}

func TestRenumber(t *testing.T) {
	entries := []game.Entry{
		userDay("2023-12-30", 100),
		userDay("2024-01-03", 100),
		userDay("2024-01-09", 100),
		userDay("2024-02-01", 100),
	}
	for i := range entries {
		entries[i].ID = int64(i + 1)
	}

	moved := mustDate("2024-01-08")
	changed := game.Renumber(entries, moved)
	gotWeeks := make(map[int64]int)
	for _, e := range changed {
		gotWeeks[e.ID] = e.Week
	}
	wantWeeks := map[int64]int{2: 0, 3: 1, 4: 4}
	if diff := cmp.Diff(wantWeeks, gotWeeks); diff != "" {
		t.Errorf("changed weeks mismatch (-want +got):\n%s", diff)
	}

	t.Run("round trip restores the original weeks", func(t *testing.T) {
		renumbered := applyChanges(entries, changed)
		restored := applyChanges(renumbered, game.Renumber(renumbered, start))
		if diff := cmp.Diff(entries, restored); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unchanged anchor changes nothing", func(t *testing.T) {
		if got := game.Renumber(entries, start); len(got) != 0 {
			t.Errorf("expected no changes, got %d", len(got))
		}
	})
}

func applyChanges(entries, changed []game.Entry) []game.Entry {
	out := make([]game.Entry, len(entries))
	copy(out, entries)
	for _, c := range changed {
		for i := range out {
			if out[i].ID == c.ID {
				out[i] = c
			}
		}
	}
	return out
}
