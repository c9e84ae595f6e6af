package game_test

import (
	"errors"
	"github.com/musoad/iron-quest-sub000/internal/game"
	"testing"
)

func TestCompleteQuest(t *testing.T) {
	day := mustDate("2024-01-03")
	first, err := game.CompleteQuest(nil, "steps_8k", day, 1)
	if err != nil {
		t.Fatalf("CompleteQuest() error = %v", err)
	}
	if first.XP != 40 || first.Source != game.SourceQuest || first.Ref != "steps_8k" {
		t.Errorf("unexpected quest entry %+v", first)
	}
	entries := []game.Entry{first}

	if _, err = game.CompleteQuest(entries, "steps_8k", day, 1); !errors.Is(err, game.ErrQuestDone) {
		t.Errorf("second completion error = %v, want %v", err, game.ErrQuestDone)
	}
	if _, err = game.CompleteQuest(entries, "steps_8k", day.AddDate(0, 0, 1), 1); err != nil {
		t.Errorf("next day completion error = %v", err)
	}
	if _, err = game.CompleteQuest(entries, "protein", day, 1); err != nil {
		t.Errorf("other quest error = %v", err)
	}
	if _, err = game.CompleteQuest(entries, "meditate", day, 1); !errors.Is(err, game.ErrUnknownQuest) {
		t.Errorf("unknown quest error = %v, want %v", err, game.ErrUnknownQuest)
	}

	views := game.QuestViews(entries, day)
	for _, v := range views {
		if v.Done != (v.ID == "steps_8k") {
			t.Errorf("quest %s done = %v", v.ID, v.Done)
		}
	}
}
