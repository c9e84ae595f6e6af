// Package tracker runs the game engine against the sqlite store. Every action loads the state once, applies the
// game rules and writes the resulting entries together with the changed state in one transaction.
package tracker

import (
	"context"
	"database/sql"
	"fmt"
	"github.com/google/uuid"
	"github.com/musoad/iron-quest-sub000/internal/errors"
	"github.com/musoad/iron-quest-sub000/internal/game"
	"github.com/musoad/iron-quest-sub000/internal/logging"
	"github.com/musoad/iron-quest-sub000/internal/sqlite"
	"log/slog"
	"sync"
	"time"
)

// Service is the single writer of the game. Actions are serialised.
type Service struct {
	db      *sqlite.Database
	repo    *repository
	logger  *slog.Logger
	mu      sync.Mutex
	now     func() time.Time
	chooser game.Chooser
	strict  bool
	maxWeek int
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithChooser replaces the random source of the weekly mutation.
func WithChooser(c game.Chooser) Option {
	return func(s *Service) { s.chooser = c }
}

// WithStrictTypes rejects unknown exercise types instead of using the default rate.
func WithStrictTypes(strict bool) Option {
	return func(s *Service) { s.strict = strict }
}

// WithMaxWeek sets the program length used for display.
func WithMaxWeek(weeks int) Option {
	return func(s *Service) {
		if weeks > 0 {
			s.maxWeek = weeks
		}
	}
}

// NewService creates a new tracker service.
func NewService(db *sqlite.Database, logger *slog.Logger, opts ...Option) *Service {
	factory := newRepositoryFactory(db, logger)
	s := &Service{
		db:      db,
		repo:    factory.newRepository(),
		logger:  logger,
		mu:      sync.Mutex{},
		now:     time.Now,
		chooser: game.DefaultChooser(),
		strict:  false,
		maxWeek: game.DefaultMaxWeek,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) today() time.Time {
	return game.Day(s.now())
}

func (s *Service) logOptions() game.LogOptions {
	return game.LogOptions{StrictTypes: s.strict, Chooser: s.chooser}
}

// actionFunc mutates the working copy of the state. Entries are the log as seen inside the transaction.
type actionFunc func(ctx context.Context, tx *sql.Tx, state *game.State, entries []game.Entry) error

// loadState returns the persisted state, or a fresh one anchored today when nothing has been saved yet.
func (s *Service) loadState(ctx context.Context) (game.State, bool, error) {
	state, saved, err := s.repo.state.Load(ctx)
	if err != nil {
		return game.State{}, false, fmt.Errorf("load state: %w", err)
	}
	if !saved {
		state = game.NewState(s.today())
	}
	return state, saved, nil
}

// mutate runs fn in a transaction and persists the changed state with it. A rejected action leaves storage
// untouched.
func (s *Service) mutate(ctx context.Context, action string, fn actionFunc) error {
	ctx = logging.WithAction(ctx, action)
	state, saved, err := s.loadState(ctx)
	if err != nil {
		return err
	}
	working := state.Clone()
	err = s.db.WithTx(ctx, func(tx *sql.Tx) error {
		entries, err := s.repo.entries.List(ctx, tx)
		if err != nil {
			return fmt.Errorf("list entries: %w", err)
		}
		if err = fn(ctx, tx, &working, entries); err != nil {
			return err
		}
		return s.repo.state.Save(ctx, tx, state, working, saved)
	})
	if errors.Is(err, ErrRejected) {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "rejected action", slog.String("reason", err.Error()))
		return err
	}
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	return nil
}

// append stores entries inside the action's transaction and returns them with ids.
func (s *Service) append(ctx context.Context, tx *sql.Tx, entries ...game.Entry) ([]game.Entry, error) {
	stored := make([]game.Entry, 0, len(entries))
	for _, e := range entries {
		saved, err := s.repo.entries.Append(ctx, tx, e)
		if err != nil {
			return nil, err
		}
		stored = append(stored, saved)
		s.logger.LogAttrs(ctx, slog.LevelInfo, "logged entry",
			slog.Int64("id", saved.ID),
			slog.String("type", string(saved.Type)),
			slog.String("source", string(saved.Source)),
			slog.Int("week", saved.Week),
			slog.Int("xp", saved.XP))
	}
	return stored, nil
}

// LogWorkout logs a set-based training. Its XP is computed now and never changes.
func (s *Service) LogWorkout(ctx context.Context, in WorkoutInput) (game.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	typ, _ := game.ParseExerciseType(in.Type)
	workout := game.Workout{
		Date:     s.dateOrToday(in.Date),
		Exercise: in.Exercise,
		Type:     typ,
		Sets:     in.Sets,
		Qualifiers: game.Qualifiers{
			NearFailure:     in.NearFailure,
			StrictTechnique: in.StrictTechnique,
			Paused:          in.Paused,
		},
	}
	var created game.Entry
	err := s.mutate(ctx, "log workout",
		func(ctx context.Context, tx *sql.Tx, st *game.State, entries []game.Entry) error {
			e, err := st.WorkoutEntry(entries, workout, s.logOptions())
			if err != nil {
				return err //nolint:wrapcheck // rejections are returned as is.
			}
			stored, err := s.append(ctx, tx, e)
			if err != nil {
				return err
			}
			created = stored[0]
			return nil
		})
	return created, err
}

// LogActivity logs everyday movement in minutes.
func (s *Service) LogActivity(ctx context.Context, in ActivityInput) (game.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	activity := game.Activity{Date: s.dateOrToday(in.Date), Exercise: in.Exercise, Minutes: in.Minutes}
	var created game.Entry
	err := s.mutate(ctx, "log activity",
		func(ctx context.Context, tx *sql.Tx, st *game.State, entries []game.Entry) error {
			stored, err := s.append(ctx, tx, st.ActivityEntry(entries, activity, s.logOptions()))
			if err != nil {
				return err
			}
			created = stored[0]
			return nil
		})
	return created, err
}

// LogRest logs a rest day.
func (s *Service) LogRest(ctx context.Context, date time.Time) (game.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var created game.Entry
	err := s.mutate(ctx, "log rest", func(ctx context.Context, tx *sql.Tx, st *game.State, _ []game.Entry) error {
		stored, err := s.append(ctx, tx, st.RestEntry(s.dateOrToday(date)))
		if err != nil {
			return err
		}
		created = stored[0]
		return nil
	})
	return created, err
}

// CompleteQuest completes a daily quest.
func (s *Service) CompleteQuest(ctx context.Context, date time.Time, questID string) (game.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	date = s.dateOrToday(date)
	var created game.Entry
	err := s.mutate(ctx, "complete quest",
		func(ctx context.Context, tx *sql.Tx, st *game.State, entries []game.Entry) error {
			e, err := game.CompleteQuest(entries, questID, date, st.Week(date))
			if err != nil {
				return err //nolint:wrapcheck // rejections are returned as is.
			}
			stored, err := s.append(ctx, tx, e)
			if err != nil {
				return err
			}
			created = stored[0]
			return nil
		})
	return created, err
}

// UpdateEntry changes the exercise name and detail of a user or quest entry. XP is never recomputed.
func (s *Service) UpdateEntry(ctx context.Context, id int64, exercise, detail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(ctx, "update entry", func(ctx context.Context, tx *sql.Tx, _ *game.State, _ []game.Entry) error {
		e, err := s.repo.entries.Get(ctx, tx, id)
		if err != nil {
			return err
		}
		if err = game.CheckEdit(e); err != nil {
			return err //nolint:wrapcheck // rejections are returned as is.
		}
		e.Exercise, e.Detail = exercise, detail
		return s.repo.entries.UpdateDescription(ctx, tx, e)
	})
}

// DeleteEntry removes a user or quest entry.
func (s *Service) DeleteEntry(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(ctx, "delete entry",
		func(ctx context.Context, tx *sql.Tx, st *game.State, entries []game.Entry) error {
			if err := st.CheckRemoval(entries, id); err != nil {
				return err //nolint:wrapcheck // rejections are returned as is.
			}
			if err := s.repo.entries.Delete(ctx, tx, id); err != nil {
				return err
			}
			s.logger.LogAttrs(ctx, slog.LevelInfo, "deleted entry", slog.Int64("id", id))
			return nil
		})
}

// ClearEntries removes the whole log and the progress derived from it.
func (s *Service) ClearEntries(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(ctx, "clear entries",
		func(ctx context.Context, tx *sql.Tx, st *game.State, entries []game.Entry) error {
			if err := s.repo.entries.Clear(ctx, tx); err != nil {
				return err
			}
			st.ClearProgress()
			s.logger.LogAttrs(ctx, slog.LevelInfo, "cleared entries", slog.Int("count", len(entries)))
			return nil
		})
}

// SetBossStep ticks or unticks a checklist step of the open boss for today.
func (s *Service) SetBossStep(ctx context.Context, week, step int, done bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	return s.mutate(ctx, "update boss checklist",
		func(_ context.Context, _ *sql.Tx, st *game.State, _ []game.Entry) error {
			return st.SetBossStep(week, step, done, today) //nolint:wrapcheck // rejections are returned as is.
		})
}

// ClearBoss clears the open boss. The reward entries and the cleared state are stored atomically.
func (s *Service) ClearBoss(ctx context.Context, week int) ([]game.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	var created []game.Entry
	err := s.mutate(ctx, "clear boss", func(ctx context.Context, tx *sql.Tx, st *game.State, _ []game.Entry) error {
		grants, err := st.ClearBoss(week, today, uuid.NewString())
		if err != nil {
			return err //nolint:wrapcheck // rejections are returned as is.
		}
		if created, err = s.append(ctx, tx, grants...); err != nil {
			return err
		}
		s.logger.LogAttrs(ctx, slog.LevelInfo, "cleared boss", slog.Int("week", week))
		return nil
	})
	return created, err
}

// UnlockSkillNode spends skill points on a node.
func (s *Service) UnlockSkillNode(ctx context.Context, tree game.ExerciseType, nodeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(ctx, "unlock skill node",
		func(ctx context.Context, _ *sql.Tx, st *game.State, entries []game.Entry) error {
			if err := st.Skills.Unlock(tree, nodeID, game.EarnedSkillPoints(entries)); err != nil {
				return err //nolint:wrapcheck // rejections are returned as is.
			}
			s.logger.LogAttrs(ctx, slog.LevelInfo, "unlocked skill node",
				slog.String("tree", string(tree)), slog.String("node", nodeID))
			return nil
		})
}

// AssignMutation sets the mutation of a week that has none yet.
func (s *Service) AssignMutation(ctx context.Context, week int, mutationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(ctx, "assign mutation", func(ctx context.Context, _ *sql.Tx, st *game.State, _ []game.Entry) error {
		if _, err := st.AssignMutation(week, mutationID); err != nil {
			return err //nolint:wrapcheck // rejections are returned as is.
		}
		s.logger.LogAttrs(ctx, slog.LevelInfo, "assigned mutation",
			slog.Int("week", week), slog.String("mutation", mutationID))
		return nil
	})
}

// SetChallengeMode toggles the challenge multiplier for future entries.
func (s *Service) SetChallengeMode(ctx context.Context, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(ctx, "set challenge mode",
		func(_ context.Context, _ *sql.Tx, st *game.State, _ []game.Entry) error {
			st.Challenge = enabled
			return nil
		})
}

// ChangeStartDate re-anchors the calendar. Every entry is renumbered and the week-bound state is reset in the same
// transaction.
func (s *Service) ChangeStartDate(ctx context.Context, date time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := game.Day(date)
	return s.mutate(ctx, "change start date",
		func(ctx context.Context, tx *sql.Tx, st *game.State, entries []game.Entry) error {
			st.ChangeStartDate(start)
			changed := game.Renumber(entries, start)
			if err := s.repo.entries.UpdateWeeks(ctx, tx, changed); err != nil {
				return err
			}
			s.logger.LogAttrs(ctx, slog.LevelInfo, "renumbered entries",
				slog.String("start_date", formatDate(start)), slog.Int("changed", len(changed)))
			return nil
		})
}

// Entries returns the whole log.
func (s *Service) Entries(ctx context.Context) ([]game.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.repo.entries.List(ctx, s.db.ReadOnly)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// Snapshot recomputes the derived game state. Mutations of the weeks in play are assigned and achievements of the
// current week are granted first. The entries are then read again so that every figure sees the grants.
func (s *Service) Snapshot(ctx context.Context) (game.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	var state game.State
	err := s.mutate(ctx, "recompute",
		func(ctx context.Context, tx *sql.Tx, st *game.State, entries []game.Entry) error {
			week := st.Week(today)
			for _, w := range append(game.WeeksWithEntries(entries), week) {
				if m, assigned := st.EnsureMutation(w, s.chooser); assigned {
					s.logger.LogAttrs(ctx, slog.LevelInfo, "assigned mutation",
						slog.Int("week", w), slog.String("mutation", m.ID))
				}
			}
			grants := st.EvaluateAchievements(entries, week, today, uuid.NewString)
			for _, g := range grants {
				s.logger.LogAttrs(ctx, slog.LevelInfo, "granted achievement",
					slog.String("achievement", g.Ref), slog.Int("week", week))
			}
			if _, err := s.append(ctx, tx, grants...); err != nil {
				return err
			}
			state = st.Clone()
			return nil
		})
	if err != nil {
		return game.Snapshot{}, err
	}

	entries, err := s.repo.entries.List(ctx, s.db.ReadOnly)
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("list entries: %w", err)
	}
	snap := game.BuildSnapshot(entries, state, today, s.maxWeek)
	s.logger.LogAttrs(ctx, slog.LevelDebug, "computed snapshot",
		slog.Int("entries", len(entries)), slog.Int("week", snap.Week), slog.Int("total_xp", snap.Totals.All))
	return snap, nil
}

func (s *Service) dateOrToday(date time.Time) time.Time {
	if date.IsZero() {
		return s.today()
	}
	return game.Day(date)
}
