package main

import (
	"github.com/musoad/iron-quest-sub000/internal/game"
	"net/http"
)

func (app *application) questCompletePOST(w http.ResponseWriter, r *http.Request) {
	date, err := formDate(r, "date")
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if _, err = app.tracker.CompleteQuest(r.Context(), date, r.PathValue("id")); err != nil {
		app.actionError(w, r, err)
		return
	}
	redirect(w, r, "/")
}

// bossStepPOST ticks or unticks a checklist step of today.
func (app *application) bossStepPOST(w http.ResponseWriter, r *http.Request) {
	week, ok := app.parseIntParam(w, r, "week")
	if !ok {
		return
	}
	step, ok := app.parseIntParam(w, r, "step")
	if !ok {
		return
	}
	if err := app.tracker.SetBossStep(r.Context(), week, step, formBool(r, "done")); err != nil {
		app.actionError(w, r, err)
		return
	}
	redirect(w, r, "/")
}

func (app *application) bossClearPOST(w http.ResponseWriter, r *http.Request) {
	week, ok := app.parseIntParam(w, r, "week")
	if !ok {
		return
	}
	if _, err := app.tracker.ClearBoss(r.Context(), week); err != nil {
		app.actionError(w, r, err)
		return
	}
	redirect(w, r, "/")
}

func (app *application) skillUnlockPOST(w http.ResponseWriter, r *http.Request) {
	tree := game.ExerciseType(r.PathValue("tree"))
	if err := app.tracker.UnlockSkillNode(r.Context(), tree, r.PathValue("node")); err != nil {
		app.actionError(w, r, err)
		return
	}
	redirect(w, r, "/")
}

// mutationAssignPOST picks the mutation of a week by hand.
func (app *application) mutationAssignPOST(w http.ResponseWriter, r *http.Request) {
	week, ok := app.parseIntParam(w, r, "week")
	if !ok {
		return
	}
	if err := app.tracker.AssignMutation(r.Context(), week, r.PostFormValue("mutation")); err != nil {
		app.actionError(w, r, err)
		return
	}
	redirect(w, r, "/")
}
