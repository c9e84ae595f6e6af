// Command stresstest fills a throwaway instance with months of training history and then hits it with concurrent
// readers and writers. Do not point it at a database you care about.
package main

import (
	"context"
	"fmt"
	"github.com/musoad/iron-quest-sub000/internal/e2etest"
	"github.com/musoad/iron-quest-sub000/internal/errors"
	"github.com/musoad/iron-quest-sub000/internal/logging"
	"github.com/musoad/iron-quest-sub000/internal/testhelpers"
	"golang.org/x/sync/errgroup"
	"log/slog"
	"net/http"
	neturl "net/url"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

const (
	expectedArgsCount       = 2
	historyWeeks            = 12
	daysPerWeek             = 7
	historyTimeout          = 5 * time.Minute
	scenarioTimeout         = 30 * time.Second
	maxConcurrentOperations = 20
	scenarios               = 200
	successRateThreshold    = 95.0
	percentageMultiplier    = 100
)

// history cycles through the training types so that every skill tree earns points.
var history = []struct {
	exercise string
	typ      string
	sets     int
}{
	{"Back squat", "multi_joint", 5},
	{"Bulgarian split squat", "unilateral", 4},
	{"Plank", "core", 3},
	{"Intervals", "conditioning", 6},
	{"Kettlebell complex", "complex", 4},
}

// postForm posts values and accepts the response when the server redirected back to the home page.
func postForm(ctx context.Context, client *e2etest.Client, path string, values neturl.Values) error {
	resp, err := client.PostForm(ctx, path, values)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.New("unexpected status "+strconv.Itoa(resp.StatusCode)+" for "+path,
			slog.String("path", path), slog.Int("status", resp.StatusCode))
	}
	return nil
}

// GenerateHistory anchors the program historyWeeks back and logs a workout for six days of every week. The posts
// run concurrently and the server serialises them.
func GenerateHistory(ctx context.Context, client *e2etest.Client, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, historyTimeout)
	defer cancel()

	start := time.Now().AddDate(0, 0, -historyWeeks*daysPerWeek)
	if err := postForm(ctx, client, "/settings/start-date",
		neturl.Values{"start_date": {start.Format(time.DateOnly)}}); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentOperations)
	for day := range historyWeeks * daysPerWeek {
		if day%daysPerWeek == daysPerWeek-1 {
			continue
		}
		w := history[day%len(history)]
		date := start.AddDate(0, 0, day).Format(time.DateOnly)
		g.Go(func() error {
			return postForm(ctx, client, "/entries/workout", neturl.Values{
				"exercise":         {w.exercise},
				"type":             {w.typ},
				"sets":             {strconv.Itoa(w.sets)},
				"date":             {date},
				"strict_technique": {"on"},
			})
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("generate history: %w", err)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "history generated", slog.Int("weeks", historyWeeks))
	return nil
}

// Scenario is one visit: read the page, log an activity and read the derived state.
func Scenario(ctx context.Context, client *e2etest.Client, i int) error {
	ctx, cancel := context.WithTimeout(ctx, scenarioTimeout)
	defer cancel()

	doc, err := client.GetDoc(ctx, "/")
	if err != nil {
		return fmt.Errorf("get home: %w", err)
	}
	if strings.TrimSpace(doc.Find("#title").Text()) == "" {
		return errors.New("home page shows no title")
	}
	if err = postForm(ctx, client, "/entries/activity", neturl.Values{
		"exercise": {"Walk " + strconv.Itoa(i)},
		"minutes":  {"10"},
	}); err != nil {
		return err
	}
	var snap struct{ Week int }
	if err = client.GetJSON(ctx, "/api/snapshot", &snap); err != nil {
		return fmt.Errorf("get snapshot: %w", err)
	}
	return nil
}

// RunLoadTest runs the scenarios concurrently and fails when too many of them fail.
func RunLoadTest(ctx context.Context, client *e2etest.Client, logger *slog.Logger) error {
	var (
		succeeded atomic.Int64
		failed    atomic.Int64
		g         errgroup.Group
	)
	g.SetLimit(maxConcurrentOperations)
	for i := range scenarios {
		g.Go(func() error {
			if err := Scenario(ctx, client, i); err != nil {
				failed.Add(1)
				logger.LogAttrs(ctx, slog.LevelWarn, "scenario failed", slog.Int("scenario", i), errors.SlogError(err))
				return nil
			}
			succeeded.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	rate := float64(succeeded.Load()) / float64(scenarios) * percentageMultiplier
	logger.LogAttrs(ctx, slog.LevelInfo, "load test finished",
		slog.Int64("succeeded", succeeded.Load()),
		slog.Int64("failed", failed.Load()),
		slog.Float64("success_rate", rate))
	if rate < successRateThreshold {
		return errors.New("success rate below threshold", slog.Float64("success_rate", rate))
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != expectedArgsCount {
		logger.LogAttrs(ctx, slog.LevelError, "usage: stresstest <hostname>")
		os.Exit(1)
	}

	hostname := os.Args[1]
	start := time.Now()
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	url := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		url = "http://" + hostname
	}

	client, err := e2etest.NewClient(url)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", errors.SlogError(err))
		os.Exit(1)
	}
	if err = GenerateHistory(ctx, client, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "history generation failed", errors.SlogError(err))
		os.Exit(1)
	}
	if err = RunLoadTest(ctx, client, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "load test failed", errors.SlogError(err))
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "Load test completed successfully",
		slog.Duration("total_duration", time.Since(start)))
}
