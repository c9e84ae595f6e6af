package main

import (
	"context"
	"fmt"
	"github.com/musoad/iron-quest-sub000/internal/e2etest"
	"github.com/musoad/iron-quest-sub000/internal/errors"
	"github.com/musoad/iron-quest-sub000/internal/logging"
	"github.com/musoad/iron-quest-sub000/internal/testhelpers"
	"log/slog"
	"os"
	"strings"
	"time"
)

// snapshot is the part of /api/snapshot the smoke test looks at.
type snapshot struct {
	Week   int
	Totals struct {
		All int
	}
}

// TestReadOnly visits the pages without logging anything so that it is safe to run against production.
func TestReadOnly(ctx context.Context, client *e2etest.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	doc, err := client.GetDoc(ctx, "/")
	if err != nil {
		return fmt.Errorf("get home: %w", err)
	}
	for _, id := range []string{"#character", "#bosses", "#skills", "#log"} {
		if doc.Find(id).Length() == 0 {
			return fmt.Errorf("home page has no %s section", id)
		}
	}
	if strings.TrimSpace(doc.Find("#title").Text()) == "" {
		return errors.New("home page shows no title")
	}

	var snap snapshot
	if err = client.GetJSON(ctx, "/api/snapshot", &snap); err != nil {
		return fmt.Errorf("get snapshot: %w", err)
	}
	if snap.Week < 0 || snap.Totals.All < 0 {
		return fmt.Errorf("implausible snapshot: week %d, total %d", snap.Week, snap.Totals.All)
	}

	var entries []map[string]any
	if err = client.GetJSON(ctx, "/api/entries", &entries); err != nil {
		return fmt.Errorf("get entries: %w", err)
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		client   *e2etest.Client
		err      error
		start    = time.Now()
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	url := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		url = "http://" + hostname
	}

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", slog.Any("error", err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", slog.Any("error", err))
		os.Exit(1)
	}
	if err = TestReadOnly(ctx, client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error visiting pages", slog.Any("error", err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful", slog.Duration("duration", time.Since(start)))
	os.Exit(0)
}
