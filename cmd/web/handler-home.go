package main

import (
	"github.com/musoad/iron-quest-sub000/internal/game"
	"net/http"
	"slices"
)

const recentEntries = 15

type homeTemplateData struct {
	BaseTemplateData
	Snapshot game.Snapshot
	// Recent holds the latest entries, newest first.
	Recent    []game.Entry
	Types     []game.ExerciseType
	Mutations []game.Mutation
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	snap, err := app.tracker.Snapshot(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	entries, err := app.tracker.Entries(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	slices.Reverse(entries)
	data := homeTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Snapshot:         snap,
		Recent:           entries[:min(len(entries), recentEntries)],
		Types:            game.TrainingTypes(),
		Mutations:        game.Mutations(),
	}
	app.render(w, r, http.StatusOK, "home", data)
}
