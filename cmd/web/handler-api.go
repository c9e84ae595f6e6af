package main

import (
	"github.com/musoad/iron-quest-sub000/internal/game"
	"net/http"
	"time"
)

// healthy responds with a JSON object indicating that the server is healthy.
func (app *application) healthy(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// snapshotGET returns the derived game state as JSON.
func (app *application) snapshotGET(w http.ResponseWriter, r *http.Request) {
	snap, err := app.tracker.Snapshot(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, snap)
}

type entryJSON struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"`
	Week     int    `json:"week"`
	Exercise string `json:"exercise"`
	Type     string `json:"type"`
	Source   string `json:"source"`
	Detail   string `json:"detail"`
	XP       int    `json:"xp"`
	Ref      string `json:"ref,omitempty"`
	GrantID  string `json:"grant_id,omitempty"`
}

func toEntryJSON(e game.Entry) entryJSON {
	return entryJSON{
		ID:       e.ID,
		Date:     e.Date.Format(time.DateOnly),
		Week:     e.Week,
		Exercise: e.Exercise,
		Type:     string(e.Type),
		Source:   string(e.Source),
		Detail:   e.Detail,
		XP:       e.XP,
		Ref:      e.Ref,
		GrantID:  e.GrantID,
	}
}

// entriesGET returns the whole log as JSON.
func (app *application) entriesGET(w http.ResponseWriter, r *http.Request) {
	entries, err := app.tracker.Entries(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	out := make([]entryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryJSON(e))
	}
	app.writeJSON(w, r, out)
}
