package club_test

import (
	"database/sql"
	"testing"

	"github.com/clubkit/touchline/internal/club"
	"github.com/clubkit/touchline/internal/database"
	"github.com/clubkit/touchline/internal/formation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (club.TacticsStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := club.New(db)
	teardown := func() {
		dbTeardown()
		db.Close()
	}

	return store, db, teardown
}

func ptr[T any](v T) *T { return &v }

func TestAddAndGetPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	store.AddPlayer("player1", "Player One", 9, "FW")
	store.AddPlayer("player2", "Player Two", 1, "GK")

	assert.True(t, store.IsKnownPlayer("player1"))
	assert.False(t, store.IsKnownPlayer("player3"))

	allPlayers, err := store.GetAllPlayers()
	require.NoError(t, err)
	require.Len(t, allPlayers, 2)
	// Ordered by squad number.
	assert.Equal(t, "player2", allPlayers[0].ID)

	store.AddPlayer("player1", "Player One Renamed", 10, "MF")
	players, err := store.GetPlayers([]string{"player1"})
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Player One Renamed", players[0].Name)
	assert.Equal(t, 10, players[0].SquadNumber)
}

func TestUpsertFormationRoundTrip(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	meta := &club.FormationMeta{
		MatchID:      "match1",
		MatchNumber:  1,
		TemplateA:    "4-4-2",
		TemplateB:    "4-3-3",
		StrategyA:    "Press high",
		OpponentName: "Riverside FC",
	}
	require.NoError(t, store.UpsertFormation(meta))

	got, err := store.ReadFormation("match1", 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "4-4-2", got.TemplateA)
	assert.Equal(t, "Riverside FC", got.OpponentName)

	meta.TemplateA = "3-5-2"
	require.NoError(t, store.UpsertFormation(meta))

	got, err = store.ReadFormation("match1", 1)
	require.NoError(t, err)
	assert.Equal(t, "3-5-2", got.TemplateA)
}

func TestReadFormationMissingReturnsNil(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	got, err := store.ReadFormation("missing", 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpsertEntryPartialPatch(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	team := formation.SideA
	err := store.UpsertEntry("match1", 1, "p1", club.EntryPatch{
		PlayerName: ptr("Player One"),
		Team:       &team,
		Goals:      ptr(2),
		GoalTimestamps: ptr([]string{
			"오전 10:12:30",
			"오후 3:05:00",
		}),
		PositionX: ptr(43.0),
		PositionY: ptr(35.0),
	})
	require.NoError(t, err)

	// A position-only patch must not clobber the counters.
	err = store.UpsertEntry("match1", 1, "p1", club.EntryPatch{
		PositionX: ptr(31.0),
		PositionY: ptr(62.0),
	})
	require.NoError(t, err)

	aggregates, err := store.ReadAggregates("match1", 1)
	require.NoError(t, err)
	require.Len(t, aggregates, 1)
	assert.Equal(t, 2, aggregates[0].Goals)
	assert.Equal(t, []string{"오전 10:12:30", "오후 3:05:00"}, aggregates[0].GoalTimestamps)

	positions, err := store.ReadPositions("match1", 1)
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, 31.0, positions[0].X)
	assert.Equal(t, 62.0, positions[0].Y)
}

func TestUpsertEntryClearPosition(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	team := formation.SideA
	err := store.UpsertEntry("match1", 1, "p1", club.EntryPatch{
		PlayerName: ptr("Player One"),
		Team:       &team,
		Goals:      ptr(1),
		PositionX:  ptr(43.0),
		PositionY:  ptr(35.0),
	})
	require.NoError(t, err)

	err = store.UpsertEntry("match1", 1, "p1", club.EntryPatch{ClearPosition: true})
	require.NoError(t, err)

	positions, err := store.ReadPositions("match1", 1)
	require.NoError(t, err)
	assert.Empty(t, positions)

	// The scoring row survives the bench move.
	aggregates, err := store.ReadAggregates("match1", 1)
	require.NoError(t, err)
	require.Len(t, aggregates, 1)
	assert.Equal(t, 1, aggregates[0].Goals)
}

func TestReadPositionsSkipsOpponentRows(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	_, err := db.Exec(`INSERT INTO match_entries (match_id, match_number, player_id, player_name, is_opponent, team, goals, assists, position_x, position_y)
		VALUES ('match1', 1, 'Riverside FC', 'Riverside FC', 1, 'B', 1, 0, 50.0, 50.0)`)
	require.NoError(t, err)

	positions, err := store.ReadPositions("match1", 1)
	require.NoError(t, err)
	assert.Empty(t, positions)

	aggregates, err := store.ReadAggregates("match1", 1)
	require.NoError(t, err)
	assert.Len(t, aggregates, 1)
}

func TestEntriesAreScopedToMatchInstance(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	team := formation.SideA
	require.NoError(t, store.UpsertEntry("match1", 1, "p1", club.EntryPatch{Team: &team, Goals: ptr(1)}))
	require.NoError(t, store.UpsertEntry("match1", 2, "p1", club.EntryPatch{Team: &team, Goals: ptr(3)}))

	first, err := store.ReadAggregates("match1", 1)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, first[0].Goals)

	second, err := store.ReadAggregates("match1", 2)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 3, second[0].Goals)
}

func TestDeleteEntry(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	team := formation.SideA
	require.NoError(t, store.UpsertEntry("match1", 1, "p1", club.EntryPatch{Team: &team, Goals: ptr(1)}))
	require.NoError(t, store.DeleteEntry("match1", 1, "p1"))

	aggregates, err := store.ReadAggregates("match1", 1)
	require.NoError(t, err)
	assert.Empty(t, aggregates)
}

func TestClearMatchLeavesOtherMatchesAlone(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	store.AddPlayer("p1", "Player One", 9, "FW")
	team := formation.SideA
	require.NoError(t, store.UpsertEntry("match1", 1, "p1", club.EntryPatch{Team: &team, Goals: ptr(1)}))
	require.NoError(t, store.UpsertEntry("match2", 1, "p1", club.EntryPatch{Team: &team, Goals: ptr(2)}))

	store.ClearMatch("match1")

	gone, err := store.ReadAggregates("match1", 1)
	require.NoError(t, err)
	assert.Empty(t, gone)

	kept, err := store.ReadAggregates("match2", 1)
	require.NoError(t, err)
	assert.Len(t, kept, 1)

	// The roster is untouched by a per-match clear.
	assert.True(t, store.IsKnownPlayer("p1"))
}

func TestClearWipesEverything(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	store.AddPlayer("p1", "Player One", 9, "FW")
	team := formation.SideA
	require.NoError(t, store.UpsertEntry("match1", 1, "p1", club.EntryPatch{Team: &team, Goals: ptr(1)}))

	store.Clear()

	assert.False(t, store.IsKnownPlayer("p1"))
	aggregates, err := store.ReadAggregates("match1", 1)
	require.NoError(t, err)
	assert.Empty(t, aggregates)
}
