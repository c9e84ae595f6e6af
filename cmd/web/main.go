package main

import (
	"context"
	"embed"
	"github.com/musoad/iron-quest-sub000/internal/envstruct"
	"github.com/musoad/iron-quest-sub000/internal/errors"
	"github.com/musoad/iron-quest-sub000/internal/flightrecorder"
	"github.com/musoad/iron-quest-sub000/internal/game"
	"github.com/musoad/iron-quest-sub000/internal/i18n"
	"github.com/musoad/iron-quest-sub000/internal/logging"
	"github.com/musoad/iron-quest-sub000/internal/sqlite"
	"github.com/musoad/iron-quest-sub000/internal/tracker"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

//go:embed templates
var templates embed.FS

type application struct {
	logger  *slog.Logger
	pages   templateCache
	tracker *tracker.Service
	// recorder captures traces of timed out requests. Nil when disabled.
	recorder *flightrecorder.Recorder
	// language is used when the request carries no language preference.
	language       i18n.Language
	requestTimeout time.Duration
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"IRONQUEST_ADDR" envDefault:"localhost:8081"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"IRONQUEST_SQLITE_URL" envDefault:"./ironquest.sqlite3"`
	// Language is the default language, en or de.
	Language string `env:"IRONQUEST_LANGUAGE" envDefault:"en"`
	// MaxWeek is the program length in weeks.
	MaxWeek int `env:"IRONQUEST_MAX_WEEK" envDefault:"12"`
	// StrictTypes rejects unknown exercise types instead of awarding the default rate.
	StrictTypes bool `env:"IRONQUEST_STRICT_TYPES" envDefault:"false"`
	// Today pins the clock to a date in YYYY-MM-DD format. Meant for demos and tests.
	Today time.Time `env:"IRONQUEST_TODAY" envDefault:""`
	// MutationSeed makes the weekly mutation picks reproducible. 0 picks randomly.
	MutationSeed int `env:"IRONQUEST_MUTATION_SEED" envDefault:"0"`
	// RequestTimeout bounds reading, handling and writing a request.
	RequestTimeout time.Duration `env:"IRONQUEST_REQUEST_TIMEOUT" envDefault:"2s"`
	// TracesDir enables the flight recorder. Traces of timed out requests are written there.
	TracesDir string `env:"IRONQUEST_TRACES_DIR" envDefault:""`
}

// serviceOptions translates the configuration into tracker options.
func (cfg config) serviceOptions() []tracker.Option {
	opts := []tracker.Option{tracker.WithMaxWeek(cfg.MaxWeek), tracker.WithStrictTypes(cfg.StrictTypes)}
	if today := cfg.Today; !today.IsZero() {
		opts = append(opts, tracker.WithClock(func() time.Time { return today }))
	}
	if cfg.MutationSeed != 0 {
		opts = append(opts, tracker.WithChooser(game.NewSeededChooser(uint64(cfg.MutationSeed)))) //nolint:gosec // seed.
	}
	return opts
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cancel context.CancelFunc
		err    error
	)

	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}
	language := i18n.Language(cfg.Language)
	if !i18n.IsSupported(language) {
		return errors.New("unsupported language", slog.String("language", cfg.Language))
	}
	templateFS, err := fs.Sub(templates, "templates")
	if err != nil {
		return errors.Wrap(err, "open templates")
	}
	pages, err := newTemplateCache(templateFS)
	if err != nil {
		return errors.Wrap(err, "parse templates")
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "failed to close db", errors.SlogError(closeErr))
		}
	}()
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	var recorder *flightrecorder.Recorder
	if cfg.TracesDir != "" {
		if recorder, err = flightrecorder.New(flightrecorder.Config{
			Logger:    logger,
			MinAge:    0,
			MaxBytes:  0,
			Cooldown:  0,
			Directory: cfg.TracesDir,
		}); err != nil {
			return errors.Wrap(err, "new flight recorder")
		}
		if err = recorder.Start(ctx); err != nil {
			return errors.Wrap(err, "start flight recorder")
		}
		defer recorder.Stop(context.WithoutCancel(ctx))
	}

	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	app := application{
		logger:         logger,
		pages:          pages,
		tracker:        tracker.NewService(db, logger, cfg.serviceOptions()...),
		recorder:       recorder,
		language:       language,
		requestTimeout: requestTimeout,
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr, app.routes()); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
