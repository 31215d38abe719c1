package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/birdieboard/birdieboard/internal/infrastructure/repository/memory"
	"github.com/birdieboard/birdieboard/internal/platform/cache"
	"github.com/birdieboard/birdieboard/internal/platform/id"
	"github.com/birdieboard/birdieboard/internal/platform/logging"
	"github.com/birdieboard/birdieboard/internal/usecase"
)

const testJobToken = "job-secret"

type nopEnqueuer struct{}

func (nopEnqueuer) EnqueueFeedBackfill(_ context.Context, _ string) error { return nil }

// newTestRouter wires the full router over memory repositories.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	rounds := memory.NewRoundRepository()
	courses := memory.NewCourseRepository(memory.SeedCourses(), memory.SeedTeeBoxes(), memory.SeedHoles())
	snapshots := memory.NewSnapshotRepository()
	scores := memory.NewScoreRepository()
	profiles := memory.NewProfileRepository(memory.SeedProfiles(), memory.SeedFollows())
	feedRepo := memory.NewFeedRepository(rounds, profiles)

	gen := usecase.NewFeedGeneratorService(rounds, snapshots, scores, feedRepo,
		[]usecase.AchievementRule{usecase.NewPersonalBestRule(scores)}, logging.NewNop())
	fanout := usecase.NewFanoutService(feedRepo, profiles, 4, logging.NewNop())
	roundSvc := usecase.NewRoundService(rounds, courses, snapshots, scores, profiles,
		gen, fanout, nopEnqueuer{}, id.NewRandomGenerator(), logging.NewNop())
	courseSvc := usecase.NewCourseService(courses, cache.NewStore(time.Minute))
	feedQuery := usecase.NewFeedQueryService(feedRepo)

	handler := NewHandler(courseSvc, roundSvc, feedQuery, logging.NewNop())
	return NewRouter(handler, newStubVerifier(), logging.NewNop(), []string{"*"}, testJobToken)
}

func doJSON(t *testing.T, router http.Handler, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope map[string]any
	if rec.Body.Len() > 0 {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("%s %s: unmarshal response %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec, envelope
}

func dataObject(t *testing.T, envelope map[string]any) map[string]any {
	t.Helper()

	data, ok := envelope["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", envelope)
	}
	return data
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := dataObject(t, envelope)["status"]; got != "ok" {
		t.Fatalf("unexpected health payload: %v", got)
	}
}

func TestRouter_ListCoursesPublic(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodGet, "/v1/courses", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	items, ok := envelope["data"].([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("expected 2 courses, got %v", envelope["data"])
	}
}

func TestRouter_RoundsRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/v1/rounds", "", `{}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRouter_RoundLifecycle(t *testing.T) {
	router := newTestRouter(t)

	// Create a round with a course selection.
	rec, envelope := doJSON(t, router, http.MethodPost, "/v1/rounds", "token-ada",
		`{"course_id":"crs-harbor-links","tee_box_id":"tee-harbor-links-gold"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create round: expected 201, got %d: %v", rec.Code, envelope)
	}
	created := dataObject(t, envelope)
	roundID, _ := created["id"].(string)
	if roundID == "" {
		t.Fatalf("missing round id in %v", created)
	}
	if created["status"] != "draft" {
		t.Fatalf("expected draft round, got %v", created["status"])
	}

	// Seat ben as a scorer.
	rec, envelope = doJSON(t, router, http.MethodPost, "/v1/rounds/"+roundID+"/participants", "token-ada",
		`{"profile_id":"prof-ben","role":"scorer"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add participant: expected 201, got %d: %v", rec.Code, envelope)
	}
	seat := dataObject(t, envelope)
	seatID, _ := seat["id"].(string)
	if seatID == "" || seat["guest"] != false {
		t.Fatalf("unexpected participant payload: %v", seat)
	}

	// Start.
	rec, envelope = doJSON(t, router, http.MethodPost, "/v1/rounds/"+roundID+"/start", "token-ada", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("start round: expected 200, got %d: %v", rec.Code, envelope)
	}
	startData := dataObject(t, envelope)
	if startData["ok"] != true || startData["tee_snapshot_id"] == "" {
		t.Fatalf("unexpected start payload: %v", startData)
	}

	// Score hole 2 as the scorer.
	rec, envelope = doJSON(t, router, http.MethodPost, "/v1/rounds/"+roundID+"/scores", "token-ben",
		`{"participant_id":"`+seatID+`","hole_number":2,"strokes":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("record score: expected 200, got %d: %v", rec.Code, envelope)
	}

	// Finish.
	rec, envelope = doJSON(t, router, http.MethodPost, "/v1/rounds/"+roundID+"/finish", "token-ada", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("finish round: expected 200, got %d: %v", rec.Code, envelope)
	}

	// cleo follows ada and sees the published feed.
	rec, envelope = doJSON(t, router, http.MethodGet, "/v1/feed", "token-cleo", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list feed: expected 200, got %d: %v", rec.Code, envelope)
	}
	feedData := dataObject(t, envelope)
	items, ok := feedData["items"].([]any)
	if !ok || len(items) == 0 {
		t.Fatalf("expected feed items for a follower, got %v", feedData)
	}
	first := items[0].(map[string]any)
	if first["round_id"] != roundID {
		t.Fatalf("feed item not linked to round: %v", first)
	}
}

func TestRouter_GetRound_Stranger(t *testing.T) {
	router := newTestRouter(t)

	_, envelope := doJSON(t, router, http.MethodPost, "/v1/rounds", "token-ada", `{}`)
	roundID := dataObject(t, envelope)["id"].(string)

	rec, _ := doJSON(t, router, http.MethodGet, "/v1/rounds/"+roundID, "token-dara", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
}

func TestRouter_CreateRound_UnknownField(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/v1/rounds", "token-ada", `{"bogus":true}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unknown field, got %d", rec.Code)
	}
}

func TestRouter_CreateRound_BadScheduledFor(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/v1/rounds", "token-ada", `{"scheduled_for":"tomorrow"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestRouter_AddParticipant_BadRole(t *testing.T) {
	router := newTestRouter(t)

	_, envelope := doJSON(t, router, http.MethodPost, "/v1/rounds", "token-ada", `{}`)
	roundID := dataObject(t, envelope)["id"].(string)

	rec, _ := doJSON(t, router, http.MethodPost, "/v1/rounds/"+roundID+"/participants", "token-ada",
		`{"profile_id":"prof-ben","role":"caddy"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestRouter_DeleteDraftRound(t *testing.T) {
	router := newTestRouter(t)

	_, envelope := doJSON(t, router, http.MethodPost, "/v1/rounds", "token-ada", `{}`)
	roundID := dataObject(t, envelope)["id"].(string)

	rec, deleted := doJSON(t, router, http.MethodDelete, "/v1/rounds/"+roundID, "token-ada", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete draft: expected 200, got %d", rec.Code)
	}
	payload := dataObject(t, deleted)
	if payload["ok"] != true || payload["round_id"] != roundID {
		t.Fatalf("unexpected delete payload: %v", payload)
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/v1/rounds/"+roundID, "token-ada", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", rec.Code)
	}
}

func TestRouter_RemoveParticipant(t *testing.T) {
	router := newTestRouter(t)

	_, envelope := doJSON(t, router, http.MethodPost, "/v1/rounds", "token-ada", `{}`)
	roundID := dataObject(t, envelope)["id"].(string)

	_, added := doJSON(t, router, http.MethodPost, "/v1/rounds/"+roundID+"/participants", "token-ada",
		`{"profile_id":"prof-ben"}`)
	participantID := dataObject(t, added)["id"].(string)

	rec, removed := doJSON(t, router, http.MethodDelete,
		"/v1/rounds/"+roundID+"/participants/"+participantID, "token-ada", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("remove participant: expected 200, got %d", rec.Code)
	}
	payload := dataObject(t, removed)
	if payload["ok"] != true || payload["removed_participant_id"] != participantID {
		t.Fatalf("unexpected remove payload: %v", payload)
	}
}

func TestRouter_ListFeed_BadLimit(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodGet, "/v1/feed?limit=abc", "token-ada", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestRouter_FeedBackfillJob(t *testing.T) {
	router := newTestRouter(t)

	// Drive a round to finished first.
	_, envelope := doJSON(t, router, http.MethodPost, "/v1/rounds", "token-ada",
		`{"course_id":"crs-harbor-links","tee_box_id":"tee-harbor-links-gold"}`)
	roundID := dataObject(t, envelope)["id"].(string)
	doJSON(t, router, http.MethodPost, "/v1/rounds/"+roundID+"/start", "token-ada", "")
	doJSON(t, router, http.MethodPost, "/v1/rounds/"+roundID+"/finish", "token-ada", "")

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/feed-backfill",
		strings.NewReader(`{"round_id":"`+roundID+`"}`))
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("backfill job: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Without the token the job surface stays closed.
	req = httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/feed-backfill",
		strings.NewReader(`{"round_id":"`+roundID+`"}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without job token, got %d", rec.Code)
	}
}
