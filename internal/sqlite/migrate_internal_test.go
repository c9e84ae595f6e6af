package sqlite

import (
	"log/slog"
	"testing"

	"github.com/musoad/iron-quest-sub000/internal/testhelpers"
)

func TestDatabase_migrate(t *testing.T) {
	t.Parallel()
	const (
		entries       = "CREATE TABLE entries (id INTEGER PRIMARY KEY, exercise TEXT NOT NULL)"
		entriesWithXP = "CREATE TABLE entries (id INTEGER PRIMARY KEY, exercise TEXT NOT NULL, xp INTEGER NOT NULL DEFAULT 0)"
		blobs         = "CREATE TABLE state_blobs (key TEXT PRIMARY KEY, value TEXT NOT NULL)"
		xpIndex       = "CREATE INDEX entries_xp_idx ON entries (xp)"
		frozenXP      = `CREATE TRIGGER entries_xp_frozen BEFORE UPDATE OF xp ON entries
BEGIN SELECT RAISE(ABORT, 'frozen'); END`
		totals = "CREATE VIEW xp_totals AS SELECT SUM(xp) AS total FROM entries"
	)
	tests := []struct {
		name              string
		schemaDefinitions []string
		setupQueries      []string
		testQueries       []string
		wantEntries       int
		wantErr           bool
	}{
		{
			name:              "empty schema",
			schemaDefinitions: []string{""},
			testQueries:       []string{"SELECT * FROM sqlite_schema"},
		},
		{
			name:              "create tables",
			schemaDefinitions: []string{entries + ";" + blobs},
			testQueries: []string{
				"INSERT INTO entries (exercise) VALUES ('Squat')",
				"INSERT INTO state_blobs (key, value) VALUES ('character', '{}')",
			},
		},
		{
			name:              "drop table",
			schemaDefinitions: []string{entries + ";" + blobs, entries},
			testQueries:       []string{"SELECT * FROM state_blobs"},
			wantErr:           true,
		},
		{
			name:              "add column keeps rows",
			schemaDefinitions: []string{entries, entriesWithXP},
			setupQueries:      []string{"INSERT INTO entries (exercise) VALUES ('Squat')"},
			testQueries:       []string{"UPDATE entries SET xp = 10 WHERE exercise = 'Squat'"},
			wantEntries:       1,
		},
		{
			name:              "remove column",
			schemaDefinitions: []string{entriesWithXP, entries},
			testQueries:       []string{"INSERT INTO entries (exercise, xp) VALUES ('Squat', 10)"},
			wantErr:           true,
		},
		{
			name:              "create index",
			schemaDefinitions: []string{entriesWithXP + ";" + xpIndex},
			testQueries:       []string{"DROP INDEX entries_xp_idx"},
		},
		{
			name:              "drop index",
			schemaDefinitions: []string{entriesWithXP + ";" + xpIndex, entriesWithXP},
			testQueries:       []string{"DROP INDEX entries_xp_idx"},
			wantErr:           true,
		},
		{
			name: "index survives table rebuild",
			schemaDefinitions: []string{
				entriesWithXP + ";" + xpIndex,
				"CREATE TABLE entries (id INTEGER PRIMARY KEY, exercise TEXT NOT NULL, xp INTEGER NOT NULL DEFAULT 0, " +
					"detail TEXT NOT NULL DEFAULT '');" + xpIndex,
			},
			setupQueries: []string{"INSERT INTO entries (exercise, xp) VALUES ('Squat', 10)"},
			testQueries:  []string{"DROP INDEX entries_xp_idx"},
			wantEntries:  1,
		},
		{
			name:              "create trigger",
			schemaDefinitions: []string{entriesWithXP + ";" + frozenXP},
			setupQueries:      []string{"INSERT INTO entries (exercise, xp) VALUES ('Squat', 10)"},
			testQueries:       []string{"UPDATE entries SET xp = 20"},
			wantErr:           true,
		},
		{
			name:              "delete trigger",
			schemaDefinitions: []string{entriesWithXP + ";" + frozenXP, entriesWithXP},
			setupQueries:      []string{"INSERT INTO entries (exercise, xp) VALUES ('Squat', 10)"},
			testQueries:       []string{"UPDATE entries SET xp = 20"},
		},
		{
			name:              "create view",
			schemaDefinitions: []string{entriesWithXP + ";" + totals},
			testQueries:       []string{"SELECT total FROM xp_totals"},
		},
		{
			name:              "drop view",
			schemaDefinitions: []string{entriesWithXP + ";" + totals, entriesWithXP},
			testQueries:       []string{"SELECT total FROM xp_totals"},
			wantErr:           true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := t.Context()
			logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
			db, err := connect(ctx, ":memory:", logger)
			if err != nil {
				t.Fatalf("Failed to connect to database: %v", err)
			}
			defer func(db *Database) {
				err = db.Close()
				if err != nil {
					t.Errorf("Failed to close database: %v", err)
				}
			}(db)

			for i, schemaDefinition := range tt.schemaDefinitions {
				logger.LogAttrs(ctx, slog.LevelInfo, "migrating", slog.String("schema", schemaDefinition))
				if err = db.migrateTo(ctx, schemaDefinition); err != nil {
					t.Fatalf("Failed to migrate: %v", err)
				}
				if i > 0 {
					continue
				}
				// Rows written against the first schema have to survive the later migrations.
				for _, query := range tt.setupQueries {
					if _, err = db.ReadWrite.ExecContext(ctx, query); err != nil {
						t.Fatalf("Failed to run setup query %q: %v", query, err)
					}
				}
			}
			if tt.wantEntries > 0 {
				var n int
				if err = db.ReadWrite.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&n); err != nil {
					t.Fatalf("Failed to count entries: %v", err)
				}
				if n != tt.wantEntries {
					t.Errorf("entries = %d after migrating, want %d", n, tt.wantEntries)
				}
			}

			for _, query := range tt.testQueries {
				logger.LogAttrs(ctx, slog.LevelInfo, "executing", slog.String("query", query))
				_, err = db.ReadWrite.ExecContext(ctx, query)
				if tt.wantErr && err == nil {
					t.Errorf("Expected error for query %q, but got none", query)
				}
				if !tt.wantErr && err != nil {
					t.Errorf("Unexpected error for query %q: %v", query, err)
				}
			}
		})
	}
}

func TestNewDatabase_entrySchema(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	db, err := NewDatabase(ctx, ":memory:", testhelpers.NewLogger(testhelpers.NewWriter(t)))
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	t.Cleanup(func() {
		if err = db.Close(); err != nil {
			t.Errorf("close database: %v", err)
		}
	})

	var id int64
	err = db.ReadWrite.QueryRowContext(ctx, `
		INSERT INTO entries (entry_date, week, exercise, type, source, xp)
		VALUES ('2024-01-08', 2, 'Squat', 'multi_joint', 'user', 468)
		RETURNING id`).Scan(&id)
	if err != nil {
		t.Fatalf("insert entry: %v", err)
	}

	tests := []struct {
		name    string
		query   string
		wantErr bool
	}{
		{name: "renumber week", query: "UPDATE entries SET week = 1 WHERE id = ?", wantErr: false},
		{name: "rewrite xp", query: "UPDATE entries SET xp = 1 WHERE id = ?", wantErr: true},
		{name: "negative week", query: "UPDATE entries SET week = -1 WHERE id = ?", wantErr: true},
		{name: "unknown source", query: "UPDATE entries SET source = 'cheat' WHERE id = ?", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, execErr := db.ReadWrite.ExecContext(ctx, tt.query, id)
			if tt.wantErr != (execErr != nil) {
				t.Errorf("ExecContext(%q) error = %v, wantErr %v", tt.query, execErr, tt.wantErr)
			}
		})
	}

	if _, err = db.ReadWrite.ExecContext(ctx,
		"INSERT INTO state_blobs (key, value) VALUES ('start_date', 'not json')"); err == nil {
		t.Error("expected invalid json blob to be rejected")
	}
}
