package main

import (
	"github.com/musoad/iron-quest-sub000/internal/tracker"
	"net/http"
	"strconv"
)

// workoutPOST logs a set-based training.
func (app *application) workoutPOST(w http.ResponseWriter, r *http.Request) {
	date, err := formDate(r, "date")
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	sets, err := formPositiveInt(r, "sets")
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	in := tracker.WorkoutInput{
		Date:            date,
		Exercise:        r.PostFormValue("exercise"),
		Type:            r.PostFormValue("type"),
		Sets:            sets,
		NearFailure:     formBool(r, "near_failure"),
		StrictTechnique: formBool(r, "strict_technique"),
		Paused:          formBool(r, "paused"),
	}
	if _, err = app.tracker.LogWorkout(r.Context(), in); err != nil {
		app.actionError(w, r, err)
		return
	}
	redirect(w, r, "/")
}

// activityPOST logs everyday movement.
func (app *application) activityPOST(w http.ResponseWriter, r *http.Request) {
	date, err := formDate(r, "date")
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	minutes, err := formPositiveInt(r, "minutes")
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	in := tracker.ActivityInput{Date: date, Exercise: r.PostFormValue("exercise"), Minutes: minutes}
	if _, err = app.tracker.LogActivity(r.Context(), in); err != nil {
		app.actionError(w, r, err)
		return
	}
	redirect(w, r, "/")
}

func (app *application) restPOST(w http.ResponseWriter, r *http.Request) {
	date, err := formDate(r, "date")
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if _, err = app.tracker.LogRest(r.Context(), date); err != nil {
		app.actionError(w, r, err)
		return
	}
	redirect(w, r, "/")
}

// parseEntryID parses the "id" path parameter. On failure, sends HTTP 404 response automatically.
func (app *application) parseEntryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		app.notFound(w, r)
		return 0, false
	}
	return id, true
}

// entryUpdatePOST changes the exercise name and the detail of an entry.
func (app *application) entryUpdatePOST(w http.ResponseWriter, r *http.Request) {
	id, ok := app.parseEntryID(w, r)
	if !ok {
		return
	}
	exercise := r.PostFormValue("exercise")
	if exercise == "" {
		app.clientError(w, r, http.StatusBadRequest, "exercise must not be empty")
		return
	}
	if err := app.tracker.UpdateEntry(r.Context(), id, exercise, r.PostFormValue("detail")); err != nil {
		app.actionError(w, r, err)
		return
	}
	redirect(w, r, "/")
}

func (app *application) entryDeletePOST(w http.ResponseWriter, r *http.Request) {
	id, ok := app.parseEntryID(w, r)
	if !ok {
		return
	}
	if err := app.tracker.DeleteEntry(r.Context(), id); err != nil {
		app.actionError(w, r, err)
		return
	}
	redirect(w, r, "/")
}

// entriesClearPOST wipes the log. The form has to confirm it.
func (app *application) entriesClearPOST(w http.ResponseWriter, r *http.Request) {
	if !formBool(r, "confirm") {
		app.clientError(w, r, http.StatusBadRequest, "confirm must be set to clear all entries")
		return
	}
	if err := app.tracker.ClearEntries(r.Context()); err != nil {
		app.actionError(w, r, err)
		return
	}
	redirect(w, r, "/")
}
