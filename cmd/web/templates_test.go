package main

import (
	"github.com/google/go-cmp/cmp"
	"github.com/musoad/iron-quest-sub000/internal/contexthelpers"
	"github.com/musoad/iron-quest-sub000/internal/i18n"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
)

func Test_newTemplateCache(t *testing.T) {
	fsys, err := fs.Sub(templates, "templates")
	if err != nil {
		t.Fatal(err)
	}
	pages, err := newTemplateCache(fsys)
	if err != nil {
		t.Fatalf("newTemplateCache() error = %v", err)
	}
	if diff := cmp.Diff([]string{"error", "home", "not-found"}, slices.Sorted(maps.Keys(pages))); diff != "" {
		t.Errorf("pages mismatch (-want +got):\n%s", diff)
	}

	app := &application{ //nolint:exhaustruct // this is a test
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		pages:  pages,
	}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = contexthelpers.SetCSPNonce(r, "abc")
	r = contexthelpers.SetLanguage(r, i18n.English)

	// Rendering twice checks that the cached page is not bound to the first request.
	for range 2 {
		w := httptest.NewRecorder()
		app.render(w, r, http.StatusConflict, "error", newErrorTemplateData(r, http.StatusConflict, "no such quest"))
		if w.Code != http.StatusConflict {
			t.Errorf("status = %d, want %d", w.Code, http.StatusConflict)
		}
		if body := w.Body.String(); !strings.Contains(body, "no such quest") || !strings.Contains(body, `nonce="abc"`) {
			t.Errorf("unexpected error page:\n%s", body)
		}
	}
}
