package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"
)

// schemaObject is one row of sqlite_schema.
type schemaObject struct {
	typ  string
	name string
	sql  string
}

// schemaSnapshot indexes sqlite_schema rows by type and name.
type schemaSnapshot map[string]map[string]schemaObject

func (s schemaSnapshot) names(typ string) []string {
	names := make([]string, 0, len(s[typ]))
	for name := range s[typ] {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// migrateTo ensures that the db schema matches the target schema defined in schema.sql.
//
// The migration is declarative: the target schema is created in a temporary in-memory database, both schemas are
// diffed and the live database is changed to match inside a single transaction. Changed tables are rebuilt with the
// 12-step procedure from https://www.sqlite.org/lang_altertable.html#otheralter copying the common columns.
//
// Inspired by https://david.rothlis.net/declarative-schema-migration-for-sqlite/
func (db *Database) migrateTo(ctx context.Context, schemaDefinition string) (err error) {
	start := time.Now()

	target, err := loadTargetSchema(ctx, schemaDefinition)
	if err != nil {
		return fmt.Errorf("load target schema: %w", err)
	}

	if _, err = db.ReadWrite.ExecContext(ctx, "PRAGMA foreign_keys = OFF"); err != nil {
		return fmt.Errorf("disable foreign key validation: %w", err)
	}
	defer func() {
		if _, fkErr := db.ReadWrite.ExecContext(ctx, "PRAGMA foreign_keys = ON"); fkErr != nil && err == nil {
			err = fmt.Errorf("re-enable foreign key validation: %w", fkErr)
		}
	}()

	err = db.WithTx(ctx, func(tx *sql.Tx) error {
		live, txErr := querySchema(ctx, tx)
		if txErr != nil {
			return fmt.Errorf("query live schema: %w", txErr)
		}
		if txErr = db.migrateTables(ctx, tx, live, target); txErr != nil {
			return fmt.Errorf("migrate tables: %w", txErr)
		}

		// Rebuilding a table drops its indexes and triggers, so the live schema is read again.
		if live, txErr = querySchema(ctx, tx); txErr != nil {
			return fmt.Errorf("query live schema: %w", txErr)
		}
		for _, typ := range []string{"index", "trigger", "view"} {
			if txErr = db.migrateObjects(ctx, tx, typ, live, target); txErr != nil {
				return fmt.Errorf("migrate %s: %w", typ, txErr)
			}
		}

		if _, txErr = tx.ExecContext(ctx, "PRAGMA foreign_key_check"); txErr != nil {
			return fmt.Errorf("foreign key check: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	db.logger.LogAttrs(ctx, slog.LevelInfo, "migrated database", slog.Duration("duration", time.Since(start)))
	return nil
}

// loadTargetSchema creates the schema in a throwaway in-memory database and reads it back.
func loadTargetSchema(ctx context.Context, schemaDefinition string) (schemaSnapshot, error) {
	targetDB, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=memory", rand.Text()))
	if err != nil {
		return nil, fmt.Errorf("open schema target database: %w", err)
	}
	defer targetDB.Close()
	targetDB.SetMaxOpenConns(1)

	if _, err = targetDB.ExecContext(ctx, schemaDefinition); err != nil {
		return nil, fmt.Errorf("create schema in target database: %w", err)
	}
	var snapshot schemaSnapshot
	if snapshot, err = querySchema(ctx, targetDB); err != nil {
		return nil, fmt.Errorf("query target schema: %w", err)
	}
	return snapshot, nil
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// querySchema reads the user-defined objects from sqlite_schema.
func querySchema(ctx context.Context, q querier) (_ schemaSnapshot, err error) {
	rows, err := q.QueryContext(ctx, `SELECT type, name, sql
FROM sqlite_schema
WHERE name NOT LIKE 'sqlite_%'
  AND name NOT LIKE '_litestream_%'
  AND sql IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("query sqlite_schema: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	snapshot := schemaSnapshot{}
	for rows.Next() {
		var obj schemaObject
		if err = rows.Scan(&obj.typ, &obj.name, &obj.sql); err != nil {
			return nil, fmt.Errorf("scan sqlite_schema row: %w", err)
		}
		if snapshot[obj.typ] == nil {
			snapshot[obj.typ] = map[string]schemaObject{}
		}
		snapshot[obj.typ][obj.name] = obj
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return snapshot, nil
}

// normalizeSQL removes the quotes SQLite adds around a table name when it is renamed.
func normalizeSQL(s string) string {
	return strings.ReplaceAll(s, `"`, "")
}

func (db *Database) migrateTables(ctx context.Context, tx *sql.Tx, live, target schemaSnapshot) error {
	for _, name := range live.names("table") {
		if _, ok := target["table"][name]; ok {
			continue
		}
		db.logger.LogAttrs(ctx, slog.LevelInfo, "dropping table", slog.String("table", name))
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE %s", name)); err != nil {
			return fmt.Errorf("drop table %s: %w", name, err)
		}
	}

	for _, name := range target.names("table") {
		want := target["table"][name]
		have, exists := live["table"][name]
		switch {
		case !exists:
			db.logger.LogAttrs(ctx, slog.LevelInfo, "creating table", slog.String("query", want.sql))
			if _, err := tx.ExecContext(ctx, want.sql); err != nil {
				return fmt.Errorf("create table %s: %w", name, err)
			}
		case normalizeSQL(have.sql) != normalizeSQL(want.sql):
			if err := db.rebuildTable(ctx, tx, have, want); err != nil {
				return fmt.Errorf("rebuild table %s: %w", name, err)
			}
		}
	}
	return nil
}

// rebuildTable creates the new table under a temporary name, copies the common columns, drops the old table and
// renames the new one into place.
func (db *Database) rebuildTable(ctx context.Context, tx *sql.Tx, have, want schemaObject) error {
	db.logger.LogAttrs(ctx, slog.LevelInfo, "migrating table",
		slog.String("table", want.name),
		slog.String("live_sql", have.sql),
		slog.String("new_sql", want.sql))

	tempName := want.name + "_migration_temp"
	if _, err := tx.ExecContext(ctx, strings.Replace(want.sql, want.name, tempName, 1)); err != nil {
		return fmt.Errorf("create temporary table: %w", err)
	}

	commonColumns, err := db.commonColumns(ctx, tx, want.name, tempName)
	if err != nil {
		return fmt.Errorf("query common columns: %w", err)
	}
	if len(commonColumns) > 0 {
		common := strings.Join(commonColumns, ", ")
		copySQL := fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s;", //nolint:gosec // identifiers come from schema.
			tempName, common, common, want.name)
		if _, err = tx.ExecContext(ctx, copySQL); err != nil {
			return fmt.Errorf("copy data: %w", err)
		}
	}

	if _, err = tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE %s;", want.name)); err != nil {
		return fmt.Errorf("drop old table: %w", err)
	}
	if _, err = tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s RENAME TO %s;", tempName, want.name)); err != nil {
		return fmt.Errorf("rename new table: %w", err)
	}
	return nil
}

// commonColumns returns the quoted names of the columns present in both tables.
func (db *Database) commonColumns(ctx context.Context, tx *sql.Tx, oldTable, newTable string) (_ []string, err error) {
	rows, err := tx.QueryContext(ctx, `SELECT '"' || new.name || '"'
FROM PRAGMA_TABLE_INFO(:old_table) AS old
JOIN PRAGMA_TABLE_INFO(:new_table) AS new ON new.name = old.name`,
		sql.Named("old_table", oldTable), sql.Named("new_table", newTable))
	if err != nil {
		return nil, fmt.Errorf("query table info: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	var columns []string
	for rows.Next() {
		var column string
		if err = rows.Scan(&column); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		columns = append(columns, column)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return columns, nil
}

// migrateObjects synchronises indexes, triggers and views of typ by dropping removed or changed objects and
// creating new or changed ones.
func (db *Database) migrateObjects(ctx context.Context, tx *sql.Tx, typ string, live, target schemaSnapshot) error {
	logger := db.logger.With(slog.String("schemaType", typ))

	for _, name := range live.names(typ) {
		want, keep := target[typ][name]
		if keep && want.sql == live[typ][name].sql {
			continue
		}
		dropSQL := fmt.Sprintf("DROP %s %s;", strings.ToUpper(typ), name)
		logger.LogAttrs(ctx, slog.LevelInfo, "dropping", slog.String("query", dropSQL))
		if _, err := tx.ExecContext(ctx, dropSQL); err != nil {
			return fmt.Errorf("drop %s %s: %w", typ, name, err)
		}
	}

	for _, name := range target.names(typ) {
		want := target[typ][name]
		if have, ok := live[typ][name]; ok && have.sql == want.sql {
			continue
		}
		logger.LogAttrs(ctx, slog.LevelInfo, "creating", slog.String("query", want.sql))
		if _, err := tx.ExecContext(ctx, want.sql); err != nil {
			return fmt.Errorf("create %s %s: %w", typ, name, err)
		}
	}
	return nil
}
