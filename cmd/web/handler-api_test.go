package main

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func Test_application_actions(t *testing.T) {
	var (
		ctx    = t.Context()
		server = startServer(t)
		client = server.Client()
	)

	post := func(t *testing.T, path string, values url.Values) (int, string) {
		t.Helper()
		resp, err := client.PostForm(ctx, path, values)
		if err != nil {
			t.Fatalf("Failed to post %s: %v", path, err)
		}
		defer func() {
			_ = resp.Body.Close()
		}()
		doc, err := goquery.NewDocumentFromReader(resp.Body)
		if err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		return resp.StatusCode, strings.TrimSpace(doc.Find("#error-message").Text())
	}

	tests := []struct {
		name        string
		path        string
		values      url.Values
		wantStatus  int
		wantMessage string
	}{
		{
			name:       "start date",
			path:       "/settings/start-date",
			values:     url.Values{"start_date": {"2024-01-01"}},
			wantStatus: http.StatusOK,
		},
		{
			name:        "missing start date",
			path:        "/settings/start-date",
			values:      url.Values{},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "start_date is required",
		},
		{
			name:       "quest",
			path:       "/quests/steps_8k/complete",
			values:     url.Values{"date": {"2024-01-09"}},
			wantStatus: http.StatusOK,
		},
		{
			name:        "quest twice",
			path:        "/quests/steps_8k/complete",
			values:      url.Values{"date": {"2024-01-09"}},
			wantStatus:  http.StatusConflict,
			wantMessage: "the quest is already completed for that day",
		},
		{
			name:        "unknown quest",
			path:        "/quests/dragons/complete",
			values:      url.Values{},
			wantStatus:  http.StatusConflict,
			wantMessage: "there is no such quest",
		},
		{
			name:        "workout without sets",
			path:        "/entries/workout",
			values:      url.Values{"exercise": {"Squat"}, "type": {"multi_joint"}, "sets": {"0"}},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "sets must be a positive number",
		},
		{
			name:        "workout with a bad date",
			path:        "/entries/workout",
			values:      url.Values{"exercise": {"Squat"}, "sets": {"3"}, "date": {"yesterday"}},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "date is not a date",
		},
		{
			name:       "workout",
			path:       "/entries/workout",
			values:     url.Values{"exercise": {"Squat"}, "type": {"multi_joint"}, "sets": {"3"}},
			wantStatus: http.StatusOK,
		},
		{
			name:        "locked boss",
			path:        "/bosses/4/clear",
			values:      url.Values{},
			wantStatus:  http.StatusConflict,
			wantMessage: "the boss fight is locked: it is not the boss week",
		},
		{
			name:        "boss without checklist",
			path:        "/bosses/2/clear",
			values:      url.Values{},
			wantStatus:  http.StatusConflict,
			wantMessage: "complete every checklist step today before clearing the boss",
		},
		{
			name:        "skill without points",
			path:        "/skills/core/hollow/unlock",
			values:      url.Values{},
			wantStatus:  http.StatusConflict,
			wantMessage: "unlock the previous node of the tree first",
		},
		{
			name:       "missing entry",
			path:       "/entries/999/delete",
			values:     url.Values{},
			wantStatus: http.StatusNotFound,
		},
		{
			name:        "clear without confirmation",
			path:        "/entries/clear",
			values:      url.Values{},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "confirm must be set to clear all entries",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, err := server.CountEntries(ctx)
			if err != nil {
				t.Fatalf("Failed to count entries: %v", err)
			}
			status, message := post(t, tt.path, tt.values)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if tt.wantMessage != "" && !strings.Contains(message, tt.wantMessage) {
				t.Errorf("message = %q, want it to contain %q", message, tt.wantMessage)
			}
			if status == http.StatusOK {
				return
			}
			after, err := server.CountEntries(ctx)
			if err != nil {
				t.Fatalf("Failed to count entries: %v", err)
			}
			if after != before {
				t.Errorf("rejected action changed the entry count from %d to %d", before, after)
			}
		})
	}

	t.Run("Entries JSON", func(t *testing.T) {
		var entries []entryJSON
		if err := client.GetJSON(ctx, "/api/entries", &entries); err != nil {
			t.Fatalf("Failed to get entries: %v", err)
		}
		var got []string
		for _, e := range entries {
			got = append(got, e.Date+" "+e.Type+" "+e.Source)
		}
		want := []string{"2024-01-09 quest quest", "2024-01-10 multi_joint user"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("entries mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Snapshot JSON", func(t *testing.T) {
		var snap struct {
			Week   int
			Totals struct{ All int }
		}
		if err := client.GetJSON(ctx, "/api/snapshot", &snap); err != nil {
			t.Fatalf("Failed to get snapshot: %v", err)
		}
		if snap.Week != 2 || snap.Totals.All < 340 {
			t.Errorf("snapshot week = %d, total XP = %d", snap.Week, snap.Totals.All)
		}
	})
}
