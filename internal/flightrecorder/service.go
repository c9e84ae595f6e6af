// Package flightrecorder keeps a rolling execution trace in memory and writes it to disk when a request runs into
// its deadline.
package flightrecorder

import (
	"context"
	"fmt"
	"github.com/musoad/iron-quest-sub000/internal/errors"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/trace"
	"sync/atomic"
	"time"
)

const (
	defaultMinAge   = 5 * time.Minute
	defaultMaxBytes = 64 * 1024 * 1024
	defaultCooldown = 30 * time.Minute
)

// Recorder captures traces of timed out requests. A nil Recorder is disabled and all methods are no-ops.
type Recorder struct {
	logger         *slog.Logger
	flightRecorder *trace.FlightRecorder
	directory      string
	cooldown       time.Duration
	now            func() time.Time
	lastCapture    atomic.Int64
}

// Config configures the Recorder. Zero durations and sizes use the defaults.
type Config struct {
	Logger    *slog.Logger
	MinAge    time.Duration
	MaxBytes  uint64
	Cooldown  time.Duration
	Directory string
}

// New creates the trace directory if needed. Call Start to begin recording.
func New(cfg Config) (*Recorder, error) {
	if cfg.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if cfg.Directory == "" {
		return nil, errors.New("traces directory is required")
	}
	if stat, err := os.Stat(cfg.Directory); err != nil {
		if err = os.MkdirAll(cfg.Directory, 0o700); err != nil { //nolint:mnd // owner only.
			return nil, errors.Wrap(err, "create traces directory", slog.String("dir", cfg.Directory))
		}
	} else if !stat.IsDir() {
		return nil, errors.New("traces path is not a directory", slog.String("dir", cfg.Directory))
	}

	minAge := cfg.MinAge
	if minAge == 0 {
		minAge = defaultMinAge
	}
	maxBytes := cfg.MaxBytes
	if maxBytes == 0 {
		maxBytes = defaultMaxBytes
	}
	cooldown := cfg.Cooldown
	if cooldown == 0 {
		cooldown = defaultCooldown
	}

	return &Recorder{
		logger:         cfg.Logger,
		flightRecorder: trace.NewFlightRecorder(trace.FlightRecorderConfig{MinAge: minAge, MaxBytes: maxBytes}),
		directory:      cfg.Directory,
		cooldown:       cooldown,
		now:            time.Now,
		lastCapture:    atomic.Int64{},
	}, nil
}

// Start begins recording.
func (r *Recorder) Start(ctx context.Context) error {
	if r == nil {
		return nil
	}
	if err := r.flightRecorder.Start(); err != nil {
		return errors.Wrap(err, "start flight recorder")
	}
	r.logger.LogAttrs(ctx, slog.LevelInfo, "flight recorder started",
		slog.String("dir", r.directory), slog.Duration("cooldown", r.cooldown))
	return nil
}

// Stop ends recording.
func (r *Recorder) Stop(ctx context.Context) {
	if r == nil {
		return
	}
	r.flightRecorder.Stop()
	r.logger.LogAttrs(ctx, slog.LevelInfo, "flight recorder stopped")
}

// Capture writes the recorded trace to a file named after reason. At most one capture happens per cooldown. It
// returns the path of the written file, or "" when nothing was written.
func (r *Recorder) Capture(ctx context.Context, reason string) string {
	if r == nil {
		return ""
	}
	now := r.now()
	last := r.lastCapture.Load()
	if last > 0 && now.Sub(time.Unix(last, 0)) < r.cooldown {
		r.logger.LogAttrs(ctx, slog.LevelDebug, "skipping trace capture during cooldown",
			slog.Time("last_capture", time.Unix(last, 0)))
		return ""
	}
	if !r.lastCapture.CompareAndSwap(last, now.Unix()) {
		return ""
	}

	path := filepath.Join(r.directory, fmt.Sprintf("%s-%s.trace", reason, now.UTC().Format("20060102-150405")))
	file, err := os.Create(path)
	if err != nil {
		r.logger.LogAttrs(ctx, slog.LevelError, "failed to create trace file", errors.SlogError(err))
		return ""
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			r.logger.LogAttrs(ctx, slog.LevelError, "failed to close trace file", errors.SlogError(closeErr))
		}
	}()

	n, err := r.flightRecorder.WriteTo(file)
	if err != nil {
		r.logger.LogAttrs(ctx, slog.LevelError, "failed to write trace", errors.SlogError(err))
		return ""
	}
	r.logger.LogAttrs(ctx, slog.LevelWarn, "captured trace",
		slog.String("file", path), slog.String("reason", reason), slog.Int64("bytes", n))
	return path
}
