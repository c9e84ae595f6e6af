package main

import (
	"encoding/json"
	"github.com/musoad/iron-quest-sub000/internal/errors"
	"github.com/musoad/iron-quest-sub000/internal/game"
	"github.com/musoad/iron-quest-sub000/internal/tracker"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", errors.SlogError(err))
	app.render(w, r, http.StatusInternalServerError, "error", newErrorTemplateData(r, http.StatusInternalServerError, ""))
}

// clientError renders the error page with a message the user can act on.
func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.logger.LogAttrs(r.Context(), slog.LevelInfo, "client error",
		slog.Int("status_code", status), slog.String("message", message))
	app.render(w, r, status, "error", newErrorTemplateData(r, status, message))
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusNotFound, "not-found", newBaseTemplateData(r))
}

// actionError maps the outcome of a tracker action to a response. Rejections are conflicts with the game state.
func (app *application) actionError(w http.ResponseWriter, r *http.Request, err error) {
	var rejection *game.RejectionError
	switch {
	case errors.As(err, &rejection):
		app.clientError(w, r, http.StatusConflict, rejection.Reason.Error())
	case errors.Is(err, tracker.ErrNotFound):
		app.notFound(w, r)
	default:
		app.serverError(w, r, err)
	}
}

// redirect detects if the request is originating from a fetch API call or a top-level navigation and points the user
// to the correct URL.
func redirect(w http.ResponseWriter, r *http.Request, path string) {
	if r.Header.Get("Sec-Fetch-Dest") == "empty" {
		w.Header().Set("Content-Location", path)
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, path, http.StatusSeeOther)
}

func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "marshal json"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

// parseIntParam parses an integer path parameter. On failure, sends HTTP 404 response automatically.
func (app *application) parseIntParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		app.notFound(w, r)
		return 0, false
	}
	return n, true
}

// formDate parses an optional YYYY-MM-DD form value. An empty value is the zero time, which the tracker reads as
// today.
func formDate(r *http.Request, name string) (time.Time, error) {
	value := r.PostFormValue(name)
	if value == "" {
		return time.Time{}, nil
	}
	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, errors.Wrap(err, name+" is not a date", slog.String("field", name))
	}
	return date, nil
}

// formPositiveInt parses a required form value that must be at least 1.
func formPositiveInt(r *http.Request, name string) (int, error) {
	n, err := strconv.Atoi(r.PostFormValue(name))
	if err != nil || n < 1 {
		return 0, errors.New(name+" must be a positive number", slog.String("field", name))
	}
	return n, nil
}

// formBool reads a checkbox or a "true"/"false" value.
func formBool(r *http.Request, name string) bool {
	switch r.PostFormValue(name) {
	case "on", "true", "1":
		return true
	default:
		return false
	}
}
