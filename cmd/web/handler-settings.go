package main

import (
	"github.com/musoad/iron-quest-sub000/internal/i18n"
	"net/http"
	"strings"
)

const (
	secondsPerMinute = 60
	minutesPerHour   = 60
	hoursPerDay      = 24
	daysPerYear      = 365
)

// startDatePOST re-anchors the calendar. Every entry is renumbered.
func (app *application) startDatePOST(w http.ResponseWriter, r *http.Request) {
	date, err := formDate(r, "start_date")
	if err == nil && date.IsZero() {
		app.clientError(w, r, http.StatusBadRequest, "start_date is required")
		return
	}
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err = app.tracker.ChangeStartDate(r.Context(), date); err != nil {
		app.actionError(w, r, err)
		return
	}
	redirect(w, r, "/")
}

func (app *application) challengePOST(w http.ResponseWriter, r *http.Request) {
	if err := app.tracker.SetChallengeMode(r.Context(), formBool(r, "enabled")); err != nil {
		app.actionError(w, r, err)
		return
	}
	redirect(w, r, "/")
}

// isRelativePath checks if a path is a relative path without scheme or host and doesn't allow ambiguous slashes.
func isRelativePath(path string) bool {
	if strings.Contains(path, "://") || strings.HasPrefix(path, "//") {
		return false
	}
	if strings.HasPrefix(path, "/") {
		if len(path) == 1 || (path[1] != '/' && path[1] != '\\') {
			return true
		}
	}
	return false
}

// languagePOST stores the language preference in a cookie.
func (app *application) languagePOST(w http.ResponseWriter, r *http.Request) {
	lang := i18n.Language(r.PostFormValue("language"))
	if !i18n.IsSupported(lang) {
		app.clientError(w, r, http.StatusBadRequest, "unsupported language")
		return
	}

	http.SetCookie(w, &http.Cookie{ //nolint:exhaustruct // the remaining fields keep their defaults.
		Name:     languageCookie,
		Value:    string(lang),
		Path:     "/",
		MaxAge:   daysPerYear * hoursPerDay * minutesPerHour * secondsPerMinute, // 1 year.
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	// Only allow relative paths to prevent open redirects.
	back := r.PostFormValue("redirect")
	if back == "" || !isRelativePath(back) {
		back = "/"
	}
	redirect(w, r, back)
}
