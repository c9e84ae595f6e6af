package tracker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/musoad/iron-quest-sub000/internal/game"
	"time"
)

// sqliteEntryRepository stores the entry log. Every method runs on the given querier so that the service decides
// between the read-only pool and a transaction.
type sqliteEntryRepository struct{}

func newSQLiteEntryRepository() *sqliteEntryRepository {
	return &sqliteEntryRepository{}
}

const entryColumns = `id, entry_date, week, exercise, type, source, detail, xp, ref, grant_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (game.Entry, error) {
	var (
		e       game.Entry
		dateStr string
		grantID sql.NullString
	)
	if err := row.Scan(&e.ID, &dateStr, &e.Week, &e.Exercise, &e.Type, &e.Source, &e.Detail, &e.XP, &e.Ref,
		&grantID); err != nil {
		return game.Entry{}, err //nolint:wrapcheck // callers wrap.
	}
	date, err := time.Parse(dateFormat, dateStr)
	if err != nil {
		return game.Entry{}, fmt.Errorf("parse entry date %q: %w", dateStr, err)
	}
	e.Date = date
	e.GrantID = grantID.String
	return e, nil
}

// List returns the whole log ordered by date and insertion.
func (r *sqliteEntryRepository) List(ctx context.Context, q querier) (_ []game.Entry, err error) {
	rows, err := q.QueryContext(ctx, `SELECT `+entryColumns+` FROM entries ORDER BY entry_date, id`)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var entries []game.Entry
	for rows.Next() {
		var e game.Entry
		if e, err = scanEntry(rows); err != nil {
			return nil, fmt.Errorf("scan entry row: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return entries, nil
}

// Get returns one entry or ErrNotFound.
func (r *sqliteEntryRepository) Get(ctx context.Context, q querier, id int64) (game.Entry, error) {
	e, err := scanEntry(q.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return game.Entry{}, ErrNotFound
	}
	if err != nil {
		return game.Entry{}, fmt.Errorf("query entry %d: %w", id, err)
	}
	return e, nil
}

// Append stores a new entry and returns it with its id.
func (r *sqliteEntryRepository) Append(ctx context.Context, q querier, e game.Entry) (game.Entry, error) {
	grantID := sql.NullString{String: e.GrantID, Valid: e.GrantID != ""}
	err := q.QueryRowContext(ctx, `
		INSERT INTO entries (entry_date, week, exercise, type, source, detail, xp, ref, grant_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		formatDate(e.Date), e.Week, e.Exercise, string(e.Type), string(e.Source), e.Detail, e.XP, e.Ref, grantID,
	).Scan(&e.ID)
	if err != nil {
		return game.Entry{}, fmt.Errorf("insert entry: %w", err)
	}
	return e, nil
}

// UpdateDescription changes the user editable fields of an entry.
func (r *sqliteEntryRepository) UpdateDescription(ctx context.Context, q querier, e game.Entry) error {
	res, err := q.ExecContext(ctx, `UPDATE entries SET exercise = ?, detail = ? WHERE id = ?`,
		e.Exercise, e.Detail, e.ID)
	if err != nil {
		return fmt.Errorf("update entry %d: %w", e.ID, err)
	}
	return expectAffected(res, e.ID)
}

// UpdateWeeks rewrites the cached week of the given entries.
func (r *sqliteEntryRepository) UpdateWeeks(ctx context.Context, q querier, entries []game.Entry) error {
	for _, e := range entries {
		if _, err := q.ExecContext(ctx, `UPDATE entries SET week = ? WHERE id = ?`, e.Week, e.ID); err != nil {
			return fmt.Errorf("update week of entry %d: %w", e.ID, err)
		}
	}
	return nil
}

// Delete removes one entry.
func (r *sqliteEntryRepository) Delete(ctx context.Context, q querier, id int64) error {
	res, err := q.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete entry %d: %w", id, err)
	}
	return expectAffected(res, id)
}

// Clear removes every entry.
func (r *sqliteEntryRepository) Clear(ctx context.Context, q querier) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("delete entries: %w", err)
	}
	return nil
}

func expectAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("entry %d: %w", id, ErrNotFound)
	}
	return nil
}
