package e2etest

import (
	"context"
	"database/sql"
	"fmt"
	"github.com/musoad/iron-quest-sub000/internal/logging"
	"io"
	"log/slog"
	"sync"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

const (
	// LogAddrKey is the attribute the server logs its listening address under.
	LogAddrKey = "addr"
	// LogDsnKey is the attribute the sqlite package logs the read-write DSN under.
	LogDsnKey = "sqlDsn"
)

// Server is a running instance of the web application together with a client and a direct handle on its database.
type Server struct {
	url        string
	client     *Client
	db         *sql.DB
	cancel     context.CancelCauseFunc
	serverDone chan struct{}
}

// RunFunc has the signature of the run function of cmd/web.
type RunFunc func(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error

// startupAttrs picks the listening address and the database DSN out of the server logs.
type startupAttrs struct {
	mu     sync.Mutex
	values map[string]string
	ready  chan struct{}
}

func newStartupAttrs() *startupAttrs {
	return &startupAttrs{mu: sync.Mutex{}, values: make(map[string]string), ready: make(chan struct{})}
}

func (s *startupAttrs) observe(a slog.Attr) {
	if a.Key != LogAddrKey && a.Key != LogDsnKey {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, seen := s.values[a.Key]; seen {
		return
	}
	s.values[a.Key] = a.Value.String()
	if len(s.values) == 2 { //nolint:mnd // addr and dsn.
		close(s.ready)
	}
}

func (s *startupAttrs) get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

// StartServer runs the application in the background and returns once it answers on /api/healthy. The server is
// shut down when the test finishes.
//
// logSink receives the server logs, usually a testhelpers.NewWriter. lookupEnv has the signature of [os.LookupEnv]
// and should point the database at :memory: and the address at localhost:0.
func StartServer(t *testing.T, logSink io.Writer, lookupEnv func(string) (string, bool), run RunFunc) (*Server, error) {
	var server *Server
	t.Cleanup(func() {
		if server != nil {
			server.Shutdown()
		}
	})
	ctx, cancel := context.WithCancelCause(t.Context())
	serverDone := make(chan struct{})

	attrs := newStartupAttrs()
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(logSink, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			attrs.observe(a)
			return a
		},
	})))

	go func() {
		defer close(serverDone)
		if err := run(ctx, logger, lookupEnv); err != nil {
			cancel(err)
		}
	}()
	select {
	case <-ctx.Done():
		<-serverDone
		return nil, fmt.Errorf("server stopped before it was ready: %w", context.Cause(ctx))
	case <-attrs.ready:
	}

	serverURL := "http://" + attrs.get(LogAddrKey)
	client, err := NewClient(serverURL)
	if err != nil {
		cancel(err)
		return nil, fmt.Errorf("new client: %w", err)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		cancel(err)
		return nil, fmt.Errorf("wait for ready: %w", err)
	}
	db, err := sql.Open("sqlite3", attrs.get(LogDsnKey))
	if err != nil {
		cancel(err)
		return nil, fmt.Errorf("open database: %w", err)
	}

	server = &Server{
		url:        serverURL,
		client:     client,
		db:         db,
		cancel:     cancel,
		serverDone: serverDone,
	}
	return server, nil
}

func (s *Server) Client() *Client {
	return s.client
}

func (s *Server) URL() string {
	return s.url
}

// CountEntries counts the rows of the entries table, bypassing the application.
func (s *Server) CountEntries(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

// Shutdown stops the server and waits for run to return.
func (s *Server) Shutdown() {
	_ = s.db.Close()
	s.cancel(nil)
	<-s.serverDone
}
