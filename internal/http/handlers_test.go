package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/clubkit/touchline/internal/board"
	"github.com/clubkit/touchline/internal/club"
	"github.com/clubkit/touchline/internal/config"
	"github.com/clubkit/touchline/internal/database"
	"github.com/clubkit/touchline/internal/draft"
	"github.com/clubkit/touchline/internal/formation"
	"github.com/clubkit/touchline/internal/goals"
	"github.com/clubkit/touchline/internal/metrics"
	"github.com/clubkit/touchline/internal/notifier"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T) (*Server, *notifier.Mock, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	clubStore := club.New(db)
	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	notifierMock := notifier.NewMock()
	catalog := formation.NewCatalog()
	boards := board.NewManager(clubStore, metricsSvc, catalog, draft.NewCache(time.Minute))

	server := NewServer(clubStore, boards, catalog, metricsSvc, metricsHandler, config.Config{}, notifierMock)

	teardown := func() {
		if dbTeardown != nil {
			dbTeardown()
		}
		db.Close()
	}
	return server, notifierMock, teardown
}

func doRequest(t *testing.T, server *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest("GET", target, nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheckHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	rr := doRequest(t, server, "/health")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK!", rr.Body.String())
}

func TestListTemplatesHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	rr := doRequest(t, server, "/templates")
	require.Equal(t, http.StatusOK, rr.Code)

	var names []string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &names))
	assert.Contains(t, names, "4-4-2")

	rr = doRequest(t, server, "/templates?name=4-4-2&side=B")
	require.Equal(t, http.StatusOK, rr.Code)

	var slots []formation.Slot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &slots))
	require.Len(t, slots, 11)
	assert.Equal(t, 94.0, slots[0].X)
}

func TestListMembersHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	server.Store.AddPlayer("p1", "Player One", 9, "FW")

	rr := doRequest(t, server, "/members")
	require.Equal(t, http.StatusOK, rr.Code)

	var players []club.PlayerInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &players))
	require.Len(t, players, 1)
	assert.Equal(t, "Player One", players[0].Name)
}

func TestPlacePlayerHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	server.Store.AddPlayer("p1", "Player One", 9, "FW")

	rr := doRequest(t, server, "/board/place?matchID=m1&playerID=p1&x=43&y=36")
	require.Equal(t, http.StatusOK, rr.Code)

	var pos formation.PlayerPosition
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pos))
	assert.Equal(t, "Player One", pos.PlayerName)
	assert.Equal(t, 43.0, pos.X)
	assert.Equal(t, 35.0, pos.Y)

	rr = doRequest(t, server, "/board/load?matchID=m1")
	require.Equal(t, http.StatusOK, rr.Code)

	var state boardState
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &state))
	require.Len(t, state.Positions, 1)
	assert.Equal(t, "p1", state.Positions[0].PlayerID)
}

func TestPlacePlayerHandlerValidation(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	rr := doRequest(t, server, "/board/place?matchID=m1&x=43&y=36")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, server, "/board/place?matchID=m1&playerID=p1&x=abc&y=36")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, server, "/board/place?playerID=p1&x=43&y=36")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPlacePlayerHandlerConflict(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	rr := doRequest(t, server, "/board/place?matchID=m1&playerID=gk1&x=6&y=50")
	require.Equal(t, http.StatusOK, rr.Code)

	// The only goalkeeper slot is taken and free placement is off.
	rr = doRequest(t, server, "/board/place?matchID=m1&playerID=gk2&x=5&y=45")
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestAddGoalHandlerNotifies(t *testing.T) {
	server, notifierMock, teardown := setupTestServer(t)
	defer teardown()

	server.Store.AddPlayer("p1", "Player One", 9, "FW")
	server.Store.AddPlayer("p2", "Player Two", 10, "MF")

	target := "/goals/add?matchID=m1&scorerID=p1&assistantID=p2&team=A&dry_run=true&timestamp=" + url.QueryEscape("오전 10:00:00")
	rr := doRequest(t, server, target)
	require.Equal(t, http.StatusOK, rr.Code)

	var group goals.GoalGroup
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &group))
	assert.Equal(t, "p1", group.ScorerID)
	assert.Equal(t, "Player Two", group.AssistantName)
	assert.Equal(t, "오전 10:00:00", group.Timestamp)

	require.Len(t, notifierMock.SendGoalNotificationCalls, 1)
	assert.Equal(t, 1, notifierMock.SendGoalNotificationCalls[0].ScoreA)
	assert.Equal(t, 0, notifierMock.SendGoalNotificationCalls[0].ScoreB)
}

func TestGoalLifecycleHandlers(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	rr := doRequest(t, server, "/goals/add?matchID=m1&scorerID=p1&team=A&dry_run=true")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, server, "/timeline?matchID=m1")
	require.Equal(t, http.StatusOK, rr.Code)
	var timeline []goals.GoalGroup
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &timeline))
	require.Len(t, timeline, 1)

	rr = doRequest(t, server, "/goals/remove?matchID=m1&groupID="+url.QueryEscape(timeline[0].ID))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, server, "/score?matchID=m1")
	require.Equal(t, http.StatusOK, rr.Code)
	var score map[string]int
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &score))
	assert.Equal(t, 0, score["team_a"])
}

func TestSaveBoardHandler(t *testing.T) {
	server, notifierMock, teardown := setupTestServer(t)
	defer teardown()

	rr := doRequest(t, server, "/board/place?matchID=m1&playerID=p1&x=43&y=35")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, server, "/board/save?matchID=m1&dry_run=true")
	require.Equal(t, http.StatusOK, rr.Code)

	var report board.SaveReport
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	assert.Equal(t, 1, report.Saved)
	assert.Empty(t, report.Failures)

	require.Len(t, notifierMock.SendLineupNotificationCalls, 1)
	assert.Equal(t, "m1", notifierMock.SendLineupNotificationCalls[0].MatchID)

	// The saved placement survives a fresh session manager.
	positions, err := server.Store.ReadPositions("m1", 1)
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, "p1", positions[0].PlayerID)
}

func TestScoreHandlerRequiresMatch(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	rr := doRequest(t, server, "/score")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, server, "/score?matchID=m1&matchNumber=0")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestClearStoreHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	server.Store.AddPlayer("p1", "Player One", 9, "FW")

	rr := doRequest(t, server, "/clear?matchID=m1")
	require.Equal(t, http.StatusOK, rr.Code)
	// A per-match clear keeps the roster.
	assert.True(t, server.Store.IsKnownPlayer("p1"))

	rr = doRequest(t, server, "/clear")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, server.Store.IsKnownPlayer("p1"))
}
