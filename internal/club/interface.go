package club

import (
	"github.com/clubkit/touchline/internal/formation"
	"github.com/clubkit/touchline/internal/goals"
)

// TacticsStore defines the interface for the club's tactics records. It is
// the only boundary the board core talks to for persistence; how rows are
// transported behind it is irrelevant to the core.
type TacticsStore interface {
	ReadPositions(matchID string, matchNumber int) ([]formation.PlayerPosition, error)
	ReadAggregates(matchID string, matchNumber int) ([]*goals.AggregateRow, error)
	ReadFormation(matchID string, matchNumber int) (*FormationMeta, error)
	UpsertFormation(meta *FormationMeta) error
	UpsertEntry(matchID string, matchNumber int, playerID string, patch EntryPatch) error
	DeleteEntry(matchID string, matchNumber int, playerID string) error

	AddPlayer(playerID, name string, squadNumber int, preferredRole string)
	GetAllPlayers() ([]PlayerInfo, error)
	GetPlayers(playerIDs []string) ([]PlayerInfo, error)
	IsKnownPlayer(playerID string) bool

	Clear()
	ClearMatch(matchID string)
}
