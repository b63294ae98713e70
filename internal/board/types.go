package board

import (
	"sync"

	"github.com/clubkit/touchline/internal/club"
	"github.com/clubkit/touchline/internal/draft"
	"github.com/clubkit/touchline/internal/formation"
	"github.com/clubkit/touchline/internal/goals"
	"github.com/clubkit/touchline/internal/metrics"
)

// Key identifies one match instance. matchNumber lets one real-world match
// have several independently tracked sub-games sharing the same roster.
type Key struct {
	MatchID     string `json:"match_id"`
	MatchNumber int    `json:"match_number"`
}

// Manager hands out board sessions, loading each match instance from the
// store exactly once. Local edits after that are the sole source of truth
// until the user navigates away and back.
type Manager struct {
	store   club.TacticsStore
	metrics metrics.Metrics
	catalog *formation.Catalog
	drafts  *draft.Cache

	mu       sync.Mutex
	sessions map[Key]*Session
	current  Key
}

// Session is the in-memory board of one match instance: player placements
// plus the goal ledger. All operations are synchronous and optimistic; only
// Save touches the store.
type Session struct {
	mu      sync.Mutex
	key     Key
	store   club.TacticsStore
	metrics metrics.Metrics
	drafts  *draft.Cache

	model  *formation.Model
	ledger *goals.Ledger

	// removed holds players taken off the board since the last save, so the
	// save can clear or delete their stored rows.
	removed map[string]bool
}

// SaveFailure reports one player row that could not be saved.
type SaveFailure struct {
	PlayerID string `json:"player_id"`
	Reason   string `json:"reason"`
}

// SaveReport is the outcome of one save batch. Failures are per-player; the
// rest of the batch is not rolled back.
type SaveReport struct {
	Saved    int           `json:"saved"`
	Failures []SaveFailure `json:"failures,omitempty"`
}

// Snapshot is the serializable form of a session's unsaved state, kept in
// the draft cache between visits.
type Snapshot struct {
	Positions    []formation.PlayerPosition `msgpack:"positions"`
	Rows         []*goals.AggregateRow      `msgpack:"rows"`
	TemplateA    string                     `msgpack:"template_a"`
	TemplateB    string                     `msgpack:"template_b"`
	StrategyA    string                     `msgpack:"strategy_a"`
	StrategyB    string                     `msgpack:"strategy_b"`
	OpponentName string                     `msgpack:"opponent_name"`
	Removed      []string                   `msgpack:"removed"`
}
