package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restorativeLandsAPI/internal/achievement"
	"restorativeLandsAPI/internal/course"
	"restorativeLandsAPI/internal/leaderboard"
	"restorativeLandsAPI/services"
)

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body["error"]
}

func TestCreateDonationSessionRejectsOutOfRangeAmounts(t *testing.T) {
	h := NewDonationHandler(services.NewDonationService(nil))

	for _, amount := range []string{"0.5", "500.01", "-10"} {
		t.Run(amount, func(t *testing.T) {
			body := fmt.Sprintf(`{"amount": %s, "origin_url": "https://zen.example.com"}`, amount)
			req := httptest.NewRequest(http.MethodPost, "/api/donations/create-session", strings.NewReader(body))
			rr := httptest.NewRecorder()

			h.CreateSession(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, decodeError(t, rr), "between $1 and $500")
		})
	}
}

func TestCreateDonationSessionRejectsSubCentAmount(t *testing.T) {
	h := NewDonationHandler(services.NewDonationService(nil))

	req := httptest.NewRequest(http.MethodPost, "/api/donations/create-session",
		strings.NewReader(`{"amount": 1.004, "origin_url": "https://zen.example.com"}`))
	rr := httptest.NewRecorder()

	h.CreateSession(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeError(t, rr), "2 decimal places")
}

func TestCreateDonationSessionRejectsUnknownPackage(t *testing.T) {
	h := NewDonationHandler(services.NewDonationService(nil))

	req := httptest.NewRequest(http.MethodPost, "/api/donations/create-session",
		strings.NewReader(`{"package_id": "platinum", "origin_url": "https://zen.example.com"}`))
	rr := httptest.NewRecorder()

	h.CreateSession(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeError(t, rr), "unknown package")
}

func TestCreateDonationSessionRejectsMalformedBody(t *testing.T) {
	h := NewDonationHandler(services.NewDonationService(nil))

	req := httptest.NewRequest(http.MethodPost, "/api/donations/create-session", strings.NewReader(`{"amount":`))
	rr := httptest.NewRecorder()

	h.CreateSession(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid request body", decodeError(t, rr))
}

func TestGetDonationPackages(t *testing.T) {
	h := NewDonationHandler(services.NewDonationService(nil))

	rr := httptest.NewRecorder()
	h.GetPackages(rr, httptest.NewRequest(http.MethodGet, "/api/donations/packages", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Packages []struct {
			ID     string   `json:"id"`
			Amount *float64 `json:"amount"`
		} `json:"packages"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Packages, 4)
	assert.Equal(t, "small", body.Packages[0].ID)
	assert.Equal(t, 5.0, *body.Packages[0].Amount)
	assert.Equal(t, "custom", body.Packages[3].ID)
	assert.Nil(t, body.Packages[3].Amount)
}

func TestRootAndOasisStats(t *testing.T) {
	h := NewStatusHandler(services.NewStatusService(nil))

	rr := httptest.NewRecorder()
	h.Root(rr, httptest.NewRequest(http.MethodGet, "/api/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message": "Hello World"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	h.GetOasisStats(rr, httptest.NewRequest(http.MethodGet, "/api/oasis/stats", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"community_mood":"peaceful"`)
}

func TestCreateStatusCheckRequiresClientName(t *testing.T) {
	h := NewStatusHandler(services.NewStatusService(nil))

	rr := httptest.NewRecorder()
	h.CreateCheck(rr, httptest.NewRequest(http.MethodPost, "/api/status", strings.NewReader(`{"client_name": "  "}`)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetBreathingPatterns(t *testing.T) {
	h := NewSessionHandler(services.NewSessionService(nil, nil))

	rr := httptest.NewRecorder()
	h.GetPatterns(rr, httptest.NewRequest(http.MethodGet, "/api/breathing-patterns", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var patterns []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &patterns))
	require.Len(t, patterns, 5)

	for _, p := range patterns {
		if p["id"] == "soothe-mind" {
			assert.Equal(t, 19.0, p["cycle_seconds"])
			assert.Equal(t, 114.0, p["total_seconds"])
		}
	}
}

func TestGetSessionsRejectsBadLimit(t *testing.T) {
	h := NewSessionHandler(services.NewSessionService(nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/breathing-sessions/abc?limit=lots", nil)
	req = mux.SetURLVars(req, map[string]string{"user_id": uuid.NewString()})
	rr := httptest.NewRecorder()

	h.GetSessions(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetUserWithMalformedIDIsNotFound(t *testing.T) {
	h := NewUserHandler(services.NewUserService(nil, nil))

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/users/nope", nil), map[string]string{"id": "nope"})
	rr := httptest.NewRecorder()

	h.GetUser(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "User not found", decodeError(t, rr))
}

func TestCreateUserRequiresUsername(t *testing.T) {
	h := NewUserHandler(services.NewUserService(nil, nil))

	rr := httptest.NewRecorder()
	h.CreateUser(rr, httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"username": ""}`)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetAchievementsCatalog(t *testing.T) {
	h := NewAchievementHandler(services.NewAchievementService(nil, achievement.DefaultCatalog(), nil))

	rr := httptest.NewRecorder()
	h.GetAchievements(rr, httptest.NewRequest(http.MethodGet, "/api/achievements", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, len(achievement.DefaultCatalog()))
	assert.Equal(t, "First Steps", list[0]["name"])
	assert.Equal(t, "daily_practice", list[0]["type"])
}

func testCourses() []course.Course {
	catalog := course.DefaultCatalog()
	for i := range catalog {
		catalog[i].ID = uuid.New()
	}
	catalog[len(catalog)-1].IsActive = false
	return catalog
}

func TestGetCoursesHidesInactive(t *testing.T) {
	catalog := testCourses()
	h := NewCourseHandler(services.NewCourseService(nil, catalog, nil))

	rr := httptest.NewRecorder()
	h.GetCourses(rr, httptest.NewRequest(http.MethodGet, "/api/courses", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var list []course.Course
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list, len(catalog)-1)
}

func TestCompleteCourseValidation(t *testing.T) {
	h := NewCourseHandler(services.NewCourseService(nil, testCourses(), nil))

	tests := []struct {
		name     string
		courseID string
		query    string
		want     int
		message  string
	}{
		{"missing user", uuid.NewString(), "", http.StatusBadRequest, "Query parameter 'user_id' is required"},
		{"malformed user", uuid.NewString(), "?user_id=nope", http.StatusNotFound, "User not found"},
		{"unknown course", uuid.NewString(), "?user_id=" + uuid.NewString(), http.StatusNotFound, "Course not found"},
		{"malformed course", "basics", "?user_id=" + uuid.NewString(), http.StatusNotFound, "Course not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/courses/"+tt.courseID+"/complete"+tt.query, nil)
			req = mux.SetURLVars(req, map[string]string{"course_id": tt.courseID})
			rr := httptest.NewRecorder()

			h.CompleteCourse(rr, req)

			assert.Equal(t, tt.want, rr.Code)
			assert.Equal(t, tt.message, decodeError(t, rr))
		})
	}
}

func TestCreateMoodEntryRejectsUnknownMood(t *testing.T) {
	h := NewMoodHandler(services.NewMoodService(nil, nil))

	body := fmt.Sprintf(`{"user_id": %q, "mood": "ecstatic"}`, uuid.NewString())
	rr := httptest.NewRecorder()
	h.CreateEntry(rr, httptest.NewRequest(http.MethodPost, "/api/mood-diary", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

type fixedLeaderboard []leaderboard.LeaderboardEntry

func (f fixedLeaderboard) Get(ctx context.Context) ([]leaderboard.LeaderboardEntry, error) {
	return f, nil
}

func (f fixedLeaderboard) Set(ctx context.Context, entries []leaderboard.LeaderboardEntry) error {
	return nil
}

func TestGetLeaderboardLimit(t *testing.T) {
	entries := make([]leaderboard.LeaderboardEntry, 0, 15)
	for i := 0; i < 15; i++ {
		entries = append(entries, leaderboard.LeaderboardEntry{UserID: fmt.Sprint(i), ZenCoins: 100 - i})
	}
	h := NewLeaderboardHandler(services.NewLeaderboardService(nil, fixedLeaderboard(leaderboard.Rank(entries))))

	rr := httptest.NewRecorder()
	h.GetLeaderboard(rr, httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var list []leaderboard.LeaderboardEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list, leaderboard.DefaultLimit)
	assert.Equal(t, 1, list[0].Rank)

	rr = httptest.NewRecorder()
	h.GetLeaderboard(rr, httptest.NewRequest(http.MethodGet, "/api/leaderboard?limit=3", nil))
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list, 3)

	rr = httptest.NewRecorder()
	h.GetLeaderboard(rr, httptest.NewRequest(http.MethodGet, "/api/leaderboard?limit=0", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUnexpectedErrorsAreNotEchoed(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users/x", nil)

	respondWithServiceError(rr, req, errors.New("pq: password authentication failed for user zen"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Internal server error", decodeError(t, rr))
}

func TestWrappedSentinelsMapToClientErrors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("lookup: %w", services.ErrUserNotFound), http.StatusNotFound},
		{services.ErrDonationNotFound, http.StatusNotFound},
		{services.ErrAlreadyCompleted, http.StatusBadRequest},
		{fmt.Errorf("%w: bad", services.ErrInvalidInput), http.StatusBadRequest},
	}

	for _, tt := range tests {
		rr := httptest.NewRecorder()
		respondWithServiceError(rr, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
		assert.Equal(t, tt.want, rr.Code, tt.err.Error())
	}
}
