package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"

	_ "embed"
)

//go:embed schema.sql
var schemaDefinition string

// Database holds a single-connection read-write pool and a read-only pool against the same SQLite file.
type Database struct {
	ReadWrite *sql.DB
	ReadOnly  *sql.DB
	logger    *slog.Logger
}

// NewDatabase opens url, brings the schema up to date and starts the background optimizer, which stops with ctx.
//
// Writes go through a single-connection pool and reads through a separate read-only pool, following
// https://github.com/mattn/go-sqlite3/issues/1179#issuecomment-1638083995. url is a file path or ":memory:".
func NewDatabase(ctx context.Context, url string, logger *slog.Logger) (*Database, error) {
	db, err := connect(ctx, url, logger)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err = db.migrateTo(ctx, schemaDefinition); err != nil {
		return nil, errors.Join(fmt.Errorf("migrate: %w", err), db.Close())
	}
	go db.startDatabaseOptimizer(ctx)
	return db, nil
}

const (
	optimizedDriver = "sqlite3optimized"
	maxReadConns    = 4
)

//nolint:gochecknoglobals // the driver can be registered only once per process.
var registerDriver sync.Once

// registerOptimizedDriver registers a driver whose connections keep temporary data in memory and map the file.
func registerOptimizedDriver() {
	sql.Register(optimizedDriver, &sqlite3.SQLiteDriver{
		Extensions: nil,
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			const pragmas = "PRAGMA temp_store = memory; PRAGMA mmap_size = 30000000000;"
			if _, err := conn.Exec(pragmas, nil); err != nil {
				return fmt.Errorf("exec connection pragmas: %w", err)
			}
			return nil
		},
	})
}

// dsns holds the data source names of both pools.
type dsns struct {
	readWrite string
	readOnly  string
}

// buildDSNs turns url into the DSNs of the two pools. Options without a leading underscore are SQLite URI parameters
// (https://www.sqlite.org/uri.html), the others are documented at
// https://pkg.go.dev/github.com/mattn/go-sqlite3#SQLiteDriver.Open.
//
// In-memory databases need a shared cache so that both pools see the same data. Each of them gets a random name so
// that parallel tests stay isolated. See https://www.sqlite.org/inmemorydb.html.
func buildDSNs(url string) dsns {
	params := []string{
		"_loc=auto",
		"_journal_mode=wal",
		// Avoids SQLITE_BUSY errors while the read-only pool is busy.
		"_busy_timeout=5000",
		"_synchronous=normal",
		"_foreign_keys=on",
	}
	if strings.Contains(url, ":memory:") {
		url = rand.Text()
		params = append(params, "mode=memory", "cache=shared")
	}
	common := strings.Join(params, "&")
	return dsns{
		readWrite: "file:" + url + "?mode=rwc&_txlock=immediate&" + common,
		readOnly:  "file:" + url + "?mode=ro&_txlock=deferred&_query_only=true&" + common,
	}
}

func configurePool(db *sql.DB, conns int) {
	db.SetMaxOpenConns(conns)
	db.SetMaxIdleConns(conns)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(time.Hour)
}

func connect(ctx context.Context, url string, logger *slog.Logger) (*Database, error) {
	names := buildDSNs(url)
	registerDriver.Do(registerOptimizedDriver)

	readWriteDB, err := sql.Open(optimizedDriver, names.readWrite)
	if err != nil {
		return nil, fmt.Errorf("open read-write database: %w", err)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "opened database", slog.String("sqlDsn", names.readWrite))

	// A single writer connection serialises every action on the character.
	configurePool(readWriteDB, 1)

	// sql.DB is lazy, the ping applies the pragmas and fails early on a bad path.
	if err = readWriteDB.PingContext(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("ping read-write database: %w", err), readWriteDB.Close())
	}

	readDB, err := sql.Open(optimizedDriver, names.readOnly)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("open read database: %w", err), readWriteDB.Close())
	}
	configurePool(readDB, maxReadConns)

	return &Database{
		ReadWrite: readWriteDB,
		ReadOnly:  readDB,
		logger:    logger,
	}, nil
}

// WithTx runs fn in an immediate read-write transaction and commits when fn returns nil. The error of fn is
// returned unwrapped so that callers can match rejections.
func (db *Database) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to roll back transaction", slog.Any("error", rbErr))
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Close closes both pools.
func (db *Database) Close() error {
	return errors.Join(db.ReadOnly.Close(), db.ReadWrite.Close())
}
