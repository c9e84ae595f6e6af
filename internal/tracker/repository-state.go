package tracker

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/musoad/iron-quest-sub000/internal/game"
	"github.com/musoad/iron-quest-sub000/internal/sqlite"
	"golang.org/x/sync/errgroup"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"
)

// Keys of the state blobs.
const (
	keyStartDate    = "start_date"
	keyMutations    = "mutations"
	keyBosses       = "bosses"
	keyChecklists   = "boss_checklist"
	keyAchievements = "achievements"
	keySkills       = "skills"
	keyStreak       = "streak"
	keyChallenge    = "challenge"
)

func stateKeys() []string {
	return []string{
		keyStartDate, keyMutations, keyBosses, keyChecklists, keyAchievements, keySkills, keyStreak, keyChallenge,
	}
}

// sqliteStateRepository stores the game state as one JSON blob per key.
type sqliteStateRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newSQLiteStateRepository(db *sqlite.Database, logger *slog.Logger) *sqliteStateRepository {
	return &sqliteStateRepository{db: db, logger: logger}
}

// get returns the raw blob of key and whether it exists.
func (r *sqliteStateRepository) get(ctx context.Context, q querier, key string) (string, bool, error) {
	var value string
	err := q.QueryRowContext(ctx, `SELECT value FROM state_blobs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query state blob %s: %w", key, err)
	}
	return value, true, nil
}

// set upserts the raw blob of key.
func (r *sqliteStateRepository) set(ctx context.Context, q querier, key, value string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO state_blobs (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ')`, key, value)
	if err != nil {
		return fmt.Errorf("upsert state blob %s: %w", key, err)
	}
	return nil
}

// Load reads every blob concurrently from the read-only pool. The second result is false when the state has never
// been saved.
func (r *sqliteStateRepository) Load(ctx context.Context) (game.State, bool, error) {
	var (
		mu  sync.Mutex
		raw = make(map[string]string, len(stateKeys()))
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, key := range stateKeys() {
		g.Go(func() error {
			value, found, err := r.get(gctx, r.db.ReadOnly, key)
			if err != nil || !found {
				return err
			}
			mu.Lock()
			raw[key] = value
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return game.State{}, false, fmt.Errorf("load state blobs: %w", err)
	}
	if _, ok := raw[keyStartDate]; !ok {
		return game.State{}, false, nil
	}
	state, err := decodeState(raw)
	if err != nil {
		return game.State{}, false, err
	}
	r.logger.LogAttrs(ctx, slog.LevelDebug, "loaded state", slog.Int("blobs", len(raw)))
	return state, true, nil
}

// Save writes the blobs of after that differ from before.
func (r *sqliteStateRepository) Save(ctx context.Context, q querier, before, after game.State, saved bool) error {
	next, err := encodeState(after)
	if err != nil {
		return err
	}
	prev := map[string]string{}
	if saved {
		if prev, err = encodeState(before); err != nil {
			return err
		}
	}
	changed := 0
	for _, key := range slices.Sorted(maps.Keys(next)) {
		if saved && prev[key] == next[key] {
			continue
		}
		if err = r.set(ctx, q, key, next[key]); err != nil {
			return err
		}
		changed++
	}
	if changed > 0 {
		r.logger.LogAttrs(ctx, slog.LevelDebug, "saved state", slog.Int("blobs", changed))
	}
	return nil
}

func encodeState(s game.State) (map[string]string, error) {
	values := map[string]any{
		keyStartDate:    formatDate(s.StartDate),
		keyMutations:    s.Mutations,
		keyBosses:       s.Bosses,
		keyChecklists:   s.Checklists,
		keyAchievements: s.Achievements,
		keySkills:       s.Skills,
		keyStreak:       s.Streak,
		keyChallenge:    s.Challenge,
	}
	encoded := make(map[string]string, len(values))
	for key, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode state blob %s: %w", key, err)
		}
		encoded[key] = string(b)
	}
	return encoded, nil
}

func decodeState(raw map[string]string) (game.State, error) {
	var startDate string
	if err := json.Unmarshal([]byte(raw[keyStartDate]), &startDate); err != nil {
		return game.State{}, fmt.Errorf("decode state blob %s: %w", keyStartDate, err)
	}
	start, err := time.Parse(dateFormat, startDate)
	if err != nil {
		return game.State{}, fmt.Errorf("parse start date %q: %w", startDate, err)
	}

	state := game.NewState(start)
	targets := map[string]any{
		keyMutations:    &state.Mutations,
		keyBosses:       &state.Bosses,
		keyChecklists:   &state.Checklists,
		keyAchievements: &state.Achievements,
		keySkills:       &state.Skills,
		keyStreak:       &state.Streak,
		keyChallenge:    &state.Challenge,
	}
	for key, target := range targets {
		value, ok := raw[key]
		if !ok {
			continue
		}
		if err = json.Unmarshal([]byte(value), target); err != nil {
			return game.State{}, fmt.Errorf("decode state blob %s: %w", key, err)
		}
	}
	// Clone replaces maps that were stored as null.
	return state.Clone(), nil
}
