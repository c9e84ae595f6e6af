package main

import (
	"context"
	"github.com/musoad/iron-quest-sub000/internal/envstruct"
	"github.com/musoad/iron-quest-sub000/internal/errors"
	"github.com/musoad/iron-quest-sub000/internal/game"
	"github.com/musoad/iron-quest-sub000/internal/i18n"
	"github.com/musoad/iron-quest-sub000/internal/logging"
	"github.com/musoad/iron-quest-sub000/internal/sqlite"
	"github.com/musoad/iron-quest-sub000/internal/tracker"
	"github.com/spf13/cobra"
	"io"
	"log/slog"
	"time"
)

type config struct {
	// SqliteURL is the URL to the SQLite database. Shared with the web server.
	SqliteURL string `env:"IRONQUEST_SQLITE_URL" envDefault:"./ironquest.sqlite3"`
	// Language of the output, en or de.
	Language string `env:"IRONQUEST_LANGUAGE" envDefault:"en"`
	// MaxWeek is the program length in weeks.
	MaxWeek int `env:"IRONQUEST_MAX_WEEK" envDefault:"12"`
	// StrictTypes rejects unknown exercise types instead of awarding the default rate.
	StrictTypes bool `env:"IRONQUEST_STRICT_TYPES" envDefault:"false"`
	// Today pins the clock to a date in YYYY-MM-DD format.
	Today time.Time `env:"IRONQUEST_TODAY" envDefault:""`
	// MutationSeed makes the weekly mutation picks reproducible. 0 picks randomly.
	MutationSeed int `env:"IRONQUEST_MUTATION_SEED" envDefault:"0"`
}

// cli holds what every subcommand needs: the configuration and the flags of the root command.
type cli struct {
	lookupEnv func(string) (string, bool)
	cfg       config
	dbURL     string
	language  string
	verbose   bool
	lang      i18n.Language
}

func newRootCmd(lookupEnv func(string) (string, bool)) *cobra.Command {
	c := &cli{lookupEnv: lookupEnv} //nolint:exhaustruct // filled by the flags and configure.

	cmd := &cobra.Command{
		Use:           "iq",
		Short:         "Iron Quest turns a training log into a role-playing game",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return c.configure()
		},
	}
	cmd.PersistentFlags().StringVar(&c.dbURL, "db", "", "SQLite database, overrides IRONQUEST_SQLITE_URL")
	cmd.PersistentFlags().StringVar(&c.language, "lang", "", "output language (en|de), overrides IRONQUEST_LANGUAGE")
	cmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log every action to stderr")

	cmd.AddCommand(
		c.newStatusCmd(),
		c.newLogCmd(),
		c.newQuestCmd(),
		c.newBossCmd(),
		c.newSkillCmd(),
		c.newMutationCmd(),
		c.newStartDateCmd(),
		c.newChallengeCmd(),
		c.newEntriesCmd(),
	)
	return cmd
}

// configure reads the environment and applies the flags on top.
func (c *cli) configure() error {
	if err := envstruct.Populate(&c.cfg, c.lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}
	if c.dbURL != "" {
		c.cfg.SqliteURL = c.dbURL
	}
	if c.language != "" {
		c.cfg.Language = c.language
	}
	lang, ok := i18n.Match(c.cfg.Language)
	if !ok {
		return errors.New("unsupported language "+c.cfg.Language, slog.String("language", c.cfg.Language))
	}
	c.lang = lang
	return nil
}

func (c *cli) serviceOptions() []tracker.Option {
	opts := []tracker.Option{tracker.WithMaxWeek(c.cfg.MaxWeek), tracker.WithStrictTypes(c.cfg.StrictTypes)}
	if today := c.cfg.Today; !today.IsZero() {
		opts = append(opts, tracker.WithClock(func() time.Time { return today }))
	}
	if c.cfg.MutationSeed != 0 {
		opts = append(opts, tracker.WithChooser(game.NewSeededChooser(uint64(c.cfg.MutationSeed)))) //nolint:gosec // seed.
	}
	return opts
}

func (c *cli) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	return slog.New(logging.NewContextHandler(slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource:   false,
		Level:       level,
		ReplaceAttr: nil,
	})))
}

// withService opens the database for the duration of fn.
func (c *cli) withService(cmd *cobra.Command, fn func(ctx context.Context, svc *tracker.Service) error) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	logger := c.logger(cmd.ErrOrStderr())
	db, err := sqlite.NewDatabase(ctx, c.cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", c.cfg.SqliteURL))
	}
	defer func() {
		// Stop the optimizer before closing.
		cancel()
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(cmd.Context(), slog.LevelError, "failed to close db", errors.SlogError(closeErr))
		}
	}()
	return fn(ctx, tracker.NewService(db, logger, c.serviceOptions()...))
}

func (c *cli) t(key string) string {
	return i18n.Translate(c.lang, key)
}

func (c *cli) label(namespace, id string) string {
	return i18n.Label(c.lang, namespace, id)
}

// userMessage strips the action prefix from rejections, their reason is meant for the user.
func userMessage(err error) string {
	var rejection *game.RejectionError
	if errors.As(err, &rejection) {
		return rejection.Reason.Error()
	}
	return err.Error()
}

// parseDate accepts an empty value as today.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, errors.New(value+" is not a date, use YYYY-MM-DD", slog.String("date", value))
	}
	return date, nil
}
