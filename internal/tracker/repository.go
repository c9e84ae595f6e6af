package tracker

import (
	"context"
	"database/sql"
	"github.com/musoad/iron-quest-sub000/internal/sqlite"
	"log/slog"
	"time"
)

const dateFormat = time.DateOnly

// querier is satisfied by both connection pools and by transactions so that repositories can take part in a
// transaction opened by the service.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// repository is the storage collaborator of the service: the append-only entry log and the state blobs.
type repository struct {
	entries *sqliteEntryRepository
	state   *sqliteStateRepository
}

// repositoryFactory creates repositories backed by one database.
type repositoryFactory struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newRepositoryFactory(db *sqlite.Database, logger *slog.Logger) *repositoryFactory {
	return &repositoryFactory{db: db, logger: logger}
}

func (f *repositoryFactory) newRepository() *repository {
	return &repository{
		entries: newSQLiteEntryRepository(),
		state:   newSQLiteStateRepository(f.db, f.logger),
	}
}

func formatDate(t time.Time) string {
	return t.Format(dateFormat)
}
