package flightrecorder_test

import (
	"github.com/musoad/iron-quest-sub000/internal/flightrecorder"
	"github.com/musoad/iron-quest-sub000/internal/testhelpers"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newRecorder(t *testing.T, dir string, cooldown time.Duration) *flightrecorder.Recorder {
	t.Helper()
	r, err := flightrecorder.New(flightrecorder.Config{
		Logger:    testhelpers.NewLogger(testhelpers.NewWriter(t)),
		MinAge:    0,
		MaxBytes:  0,
		Cooldown:  cooldown,
		Directory: dir,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err = r.Start(t.Context()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() { r.Stop(t.Context()) })
	return r
}

func TestRecorder_Capture(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "traces")
	r := newRecorder(t, dir, 0)

	path := r.Capture(t.Context(), "timeout")
	if path == "" {
		t.Fatal("expected a trace file")
	}
	if name := filepath.Base(path); !strings.HasPrefix(name, "timeout-") || !strings.HasSuffix(name, ".trace") {
		t.Errorf("unexpected trace file name %q", name)
	}

	if again := r.Capture(t.Context(), "timeout"); again != "" {
		t.Errorf("expected cooldown to skip the capture, got %q", again)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read traces directory: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 trace file, got %d", len(entries))
	}
}

func TestRecorder_New(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		cfg  flightrecorder.Config
	}{
		{name: "missing logger", cfg: flightrecorder.Config{Directory: t.TempDir()}},
		{name: "missing directory", cfg: flightrecorder.Config{Logger: testhelpers.NewLogger(testhelpers.NewWriter(t))}},
		{
			name: "directory is a file",
			cfg:  flightrecorder.Config{Logger: testhelpers.NewLogger(testhelpers.NewWriter(t)), Directory: file},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := flightrecorder.New(tt.cfg); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRecorder_nil(t *testing.T) {
	var r *flightrecorder.Recorder
	if err := r.Start(t.Context()); err != nil {
		t.Errorf("Start() error = %v", err)
	}
	if path := r.Capture(t.Context(), "timeout"); path != "" {
		t.Errorf("disabled recorder wrote %q", path)
	}
	r.Stop(t.Context())
}
