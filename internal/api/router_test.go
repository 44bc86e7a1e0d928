package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/piyushKumar-1/betterbe/internal/auth"
	"github.com/piyushKumar-1/betterbe/internal/health"
	"github.com/piyushKumar-1/betterbe/internal/model"
	"github.com/piyushKumar-1/betterbe/internal/store"
	"github.com/piyushKumar-1/betterbe/internal/store/sqlite"
)

func newTestServer(t *testing.T) (*httptest.Server, store.Store) {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.EnsureSchema(db))
	st := sqlite.NewWithDB(db)

	_, err = st.Users().Create(context.Background(), &model.User{
		UserID: auth.LocalDevUserID,
		Email:  "dev@betterbe.local",
	})
	require.NoError(t, err)

	router := NewRouter(st, auth.NewMockAuthorizer(), st.(health.HealthPinger))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, st
}

func doJSON(t *testing.T, method, url string, body interface{}, out interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+auth.LocalDevToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealthEndpointsUnauthenticated(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/health/db")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPIRequiresToken(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/habits")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHabitCheckInFlow(t *testing.T) {
	srv, _ := newTestServer(t)

	var habit model.Habit
	code := doJSON(t, http.MethodPost, srv.URL+"/api/habits", map[string]interface{}{
		"name":            "Run",
		"habitType":       "numeric",
		"unit":            "minutes",
		"targetValue":     30,
		"targetDirection": "at_least",
	}, &habit)
	require.Equal(t, http.StatusCreated, code)
	require.NotEmpty(t, habit.HabitID)

	code = doJSON(t, http.MethodPost, srv.URL+"/api/habits", map[string]interface{}{
		"name":      "Bad",
		"habitType": "streak",
	}, nil)
	require.Equal(t, http.StatusBadRequest, code)

	var checkIn model.CheckIn
	code = doJSON(t, http.MethodPost, srv.URL+"/api/checkins", map[string]interface{}{
		"habitId":       habit.HabitID,
		"value":         25,
		"effectiveDate": "2026-03-01",
	}, &checkIn)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 25, checkIn.Value)

	code = doJSON(t, http.MethodPost, srv.URL+"/api/checkins", map[string]interface{}{
		"habitId":       habit.HabitID,
		"value":         10,
		"effectiveDate": "not-a-date",
	}, nil)
	require.Equal(t, http.StatusBadRequest, code)

	code = doJSON(t, http.MethodPost, srv.URL+"/api/checkins", map[string]interface{}{
		"habitId":       "missing",
		"value":         10,
		"effectiveDate": "2026-03-01",
	}, nil)
	require.Equal(t, http.StatusNotFound, code)

	var list struct {
		CheckIns []model.CheckIn `json:"checkIns"`
		Count    int             `json:"count"`
	}
	code = doJSON(t, http.MethodGet, srv.URL+"/api/checkins?date=2026-03-01", nil, &list)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 1, list.Count)

	list.CheckIns = nil
	code = doJSON(t, http.MethodGet, srv.URL+"/api/checkins/date/2026-03-01", nil, &list)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 1, list.Count)

	code = doJSON(t, http.MethodDelete, srv.URL+"/api/habits/"+habit.HabitID, nil, nil)
	require.Equal(t, http.StatusNoContent, code)
}

func TestProfileEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	var me model.User
	code := doJSON(t, http.MethodGet, srv.URL+"/api/users/me", nil, &me)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, auth.LocalDevUserID, me.UserID)
	require.False(t, me.CloudSyncEnabled)

	code = doJSON(t, http.MethodPut, srv.URL+"/api/users/me", map[string]interface{}{
		"name":             "Dev",
		"cloudSyncEnabled": true,
	}, &me)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "Dev", *me.Name)
	require.True(t, me.CloudSyncEnabled)
}

func TestSyncEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	snapshot := map[string]interface{}{
		"habits": []map[string]interface{}{
			{
				"localId":         "h-1",
				"name":            "Meditate",
				"habitType":       "binary",
				"targetDirection": "at_least",
				"createdAt":       "2026-01-01T00:00:00Z",
				"updatedAt":       "2026-01-01T00:00:00Z",
			},
		},
		"checkIns": []map[string]interface{}{
			{
				"localId":       "c-1",
				"habitLocalId":  "h-1",
				"value":         1,
				"effectiveDate": "2026-01-02",
				"createdAt":     "2026-01-02T08:00:00Z",
			},
		},
		"goals":      []map[string]interface{}{},
		"goalHabits": []map[string]interface{}{},
	}

	// Sync must be enabled before push is accepted.
	code := doJSON(t, http.MethodPost, srv.URL+"/api/sync/push", snapshot, nil)
	require.Equal(t, http.StatusBadRequest, code)

	var enableResp map[string]interface{}
	code = doJSON(t, http.MethodPost, srv.URL+"/api/sync/enable", nil, &enableResp)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, enableResp["enabled"])
	require.Contains(t, enableResp["message"], "enabled")

	var result model.SyncResult
	code = doJSON(t, http.MethodPost, srv.URL+"/api/sync/push", snapshot, &result)
	require.Equal(t, http.StatusOK, code)
	require.True(t, result.Success)
	require.Equal(t, 1, result.SyncedHabits)
	require.Equal(t, 1, result.SyncedCheckins)

	var status model.SyncStatus
	code = doJSON(t, http.MethodGet, srv.URL+"/api/sync/status", nil, &status)
	require.Equal(t, http.StatusOK, code)
	require.True(t, status.Enabled)
	require.NotNil(t, status.LastSync)
	require.Equal(t, int64(1), status.HabitsCount)

	var snap model.SyncSnapshot
	code = doJSON(t, http.MethodGet, srv.URL+"/api/sync/pull", nil, &snap)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, snap.Habits, 1)
	require.Len(t, snap.CheckIns, 1)
	require.Equal(t, snap.Habits[0].LocalID, snap.CheckIns[0].HabitLocalID)

	// A malformed date rejects the whole push.
	bad := snapshot
	bad["checkIns"] = []map[string]interface{}{
		{"localId": "c-2", "habitLocalId": "h-1", "value": 1, "effectiveDate": "01/02/2026", "createdAt": "2026-01-02T08:00:00Z"},
	}
	code = doJSON(t, http.MethodPost, srv.URL+"/api/sync/push", bad, nil)
	require.Equal(t, http.StatusBadRequest, code)

	var disableResp map[string]interface{}
	code = doJSON(t, http.MethodPost, srv.URL+"/api/sync/disable", nil, &disableResp)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, false, disableResp["enabled"])
	require.Contains(t, disableResp["message"], "disabled")
	code = doJSON(t, http.MethodGet, srv.URL+"/api/sync/pull", nil, nil)
	require.Equal(t, http.StatusBadRequest, code)
}

func TestGoalLinkEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	var habit model.Habit
	code := doJSON(t, http.MethodPost, srv.URL+"/api/habits", map[string]interface{}{
		"name":      "Read",
		"habitType": "binary",
	}, &habit)
	require.Equal(t, http.StatusCreated, code)

	var goal model.Goal
	code = doJSON(t, http.MethodPost, srv.URL+"/api/goals", map[string]interface{}{
		"name":     "Finish 12 books",
		"deadline": "2026-12-31",
		"habitIds": []string{habit.HabitID},
	}, &goal)
	require.Equal(t, http.StatusCreated, code)
	require.Equal(t, model.GoalActive, goal.Status)

	var links struct {
		GoalHabits []model.GoalHabit `json:"goalHabits"`
		Count      int               `json:"count"`
	}
	code = doJSON(t, http.MethodGet, srv.URL+"/api/goals/"+goal.GoalID+"/habits", nil, &links)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 1, links.Count)

	code = doJSON(t, http.MethodDelete, srv.URL+"/api/goals/"+goal.GoalID+"/habits/"+habit.HabitID, nil, nil)
	require.Equal(t, http.StatusNoContent, code)

	var updated model.Goal
	code = doJSON(t, http.MethodPut, srv.URL+"/api/goals/"+goal.GoalID, map[string]interface{}{
		"status": "achieved",
	}, &updated)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, model.GoalAchieved, updated.Status)
}
