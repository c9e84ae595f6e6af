package main

import (
	"net/http"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	var (
		shared = func(next http.Handler) http.Handler {
			return app.recoverPanic(app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(
				app.commonContext(app.timeout(next))))))
		}
		page = func(next http.Handler) http.Handler {
			return shared(noCache(next))
		}
	)

	mux.Handle("GET /{$}", page(http.HandlerFunc(app.home)))

	mux.Handle("GET /api/healthy", shared(http.HandlerFunc(app.healthy)))
	mux.Handle("GET /api/snapshot", page(http.HandlerFunc(app.snapshotGET)))
	mux.Handle("GET /api/entries", page(http.HandlerFunc(app.entriesGET)))

	mux.Handle("POST /entries/workout", page(http.HandlerFunc(app.workoutPOST)))
	mux.Handle("POST /entries/activity", page(http.HandlerFunc(app.activityPOST)))
	mux.Handle("POST /entries/rest", page(http.HandlerFunc(app.restPOST)))
	mux.Handle("POST /entries/{id}/update", page(http.HandlerFunc(app.entryUpdatePOST)))
	mux.Handle("POST /entries/{id}/delete", page(http.HandlerFunc(app.entryDeletePOST)))
	mux.Handle("POST /entries/clear", page(http.HandlerFunc(app.entriesClearPOST)))

	mux.Handle("POST /quests/{id}/complete", page(http.HandlerFunc(app.questCompletePOST)))
	mux.Handle("POST /bosses/{week}/steps/{step}", page(http.HandlerFunc(app.bossStepPOST)))
	mux.Handle("POST /bosses/{week}/clear", page(http.HandlerFunc(app.bossClearPOST)))
	mux.Handle("POST /skills/{tree}/{node}/unlock", page(http.HandlerFunc(app.skillUnlockPOST)))
	mux.Handle("POST /mutations/{week}", page(http.HandlerFunc(app.mutationAssignPOST)))

	mux.Handle("POST /settings/start-date", page(http.HandlerFunc(app.startDatePOST)))
	mux.Handle("POST /settings/challenge", page(http.HandlerFunc(app.challengePOST)))
	mux.Handle("POST /settings/language", page(http.HandlerFunc(app.languagePOST)))

	mux.Handle("/", page(http.HandlerFunc(app.notFound)))

	return mux
}
