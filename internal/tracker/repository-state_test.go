package tracker

import (
	"database/sql"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/musoad/iron-quest-sub000/internal/errors"
	"github.com/musoad/iron-quest-sub000/internal/game"
	"github.com/musoad/iron-quest-sub000/internal/sqlite"
	"github.com/musoad/iron-quest-sub000/internal/testhelpers"
	"testing"
	"time"
)

func Test_sqliteStateRepository_SaveLoad(t *testing.T) {
	ctx := t.Context()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	repo := newSQLiteStateRepository(db, logger)

	if _, saved, err := repo.Load(ctx); err != nil || saved {
		t.Fatalf("Load() on empty store = saved %v, err %v", saved, err)
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	state := game.NewState(start)
	state.Mutations[2] = "iron_lungs"
	state.Bosses[2] = game.BossRecord{Cleared: true, ClearedAt: start.AddDate(0, 0, 9), GrantID: "grant-1"}
	state.Checklists[game.ChecklistKey(4, start.AddDate(0, 0, 22))] = map[int]bool{0: true, 2: true}
	state.Achievements[1] = map[string]bool{"iron_week": true}
	state.Skills.Unlocked[game.TypeCore] = []string{"breathing"}
	state.Skills.Spent = 1
	state.Streak.Best = 6
	state.Challenge = true

	err = db.WithTx(ctx, func(tx *sql.Tx) error {
		return repo.Save(ctx, tx, game.State{}, state, false)
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, saved, err := repo.Load(ctx)
	if err != nil || !saved {
		t.Fatalf("Load() = saved %v, err %v", saved, err)
	}
	if diff := cmp.Diff(state, loaded, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}

	// Only the challenge blob differs, the other blobs keep their content.
	next := loaded.Clone()
	next.Challenge = false
	err = db.WithTx(ctx, func(tx *sql.Tx) error {
		return repo.Save(ctx, tx, loaded, next, true)
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if loaded, _, err = repo.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(next, loaded, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("state mismatch after update (-want +got):\n%s", diff)
	}
}

func Test_sqliteEntryRepository(t *testing.T) {
	ctx := t.Context()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	repo := newSQLiteEntryRepository()

	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	entry := game.Entry{
		ID:       0,
		Date:     day,
		Week:     2,
		Exercise: "Back squat",
		Type:     game.TypeMultiJoint,
		Source:   game.SourceUser,
		Detail:   "3 sets",
		XP:       300,
		Ref:      "",
		GrantID:  "",
	}
	var stored game.Entry
	err = db.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		stored, err = repo.Append(ctx, tx, entry)
		return err
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if stored.ID == 0 {
		t.Fatalf("Append() returned no id")
	}

	err = db.WithTx(ctx, func(tx *sql.Tx) error {
		stored.Week = 5
		return repo.UpdateWeeks(ctx, tx, []game.Entry{stored})
	})
	if err != nil {
		t.Fatalf("UpdateWeeks: %v", err)
	}
	got, err := repo.Get(ctx, db.ReadOnly, stored.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(stored, got); diff != "" {
		t.Errorf("entry mismatch (-want +got):\n%s", diff)
	}

	err = db.WithTx(ctx, func(tx *sql.Tx) error {
		return repo.Delete(ctx, tx, stored.ID+1)
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() of a missing entry error = %v, want %v", err, ErrNotFound)
	}
	if _, err = repo.Get(ctx, db.ReadOnly, stored.ID+1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() of a missing entry error = %v, want %v", err, ErrNotFound)
	}
}
