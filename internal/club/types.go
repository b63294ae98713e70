package club

import (
	"database/sql"
	"sync"

	"github.com/clubkit/touchline/internal/formation"
)

// store handles all database operations for the club.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// PlayerInfo represents a rostered player, the pool the bench draws from.
type PlayerInfo struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	SquadNumber   int    `json:"squad_number"`
	PreferredRole string `json:"preferred_role"`
}

// FormationMeta is the per-match-instance board metadata: template selections,
// strategy notes and the optional external opponent name.
type FormationMeta struct {
	MatchID      string `json:"match_id"`
	MatchNumber  int    `json:"match_number"`
	TemplateA    string `json:"template_a"`
	TemplateB    string `json:"template_b"`
	StrategyA    string `json:"strategy_a"`
	StrategyB    string `json:"strategy_b"`
	OpponentName string `json:"opponent_name"`
}

// EntryPatch is a partial update of one match entry row. Nil fields are left
// untouched, so a save can write position-only, counters-only, or both.
type EntryPatch struct {
	PlayerName       *string
	IsOpponent       *bool
	Team             *formation.Side
	Goals            *int
	Assists          *int
	GoalTimestamps   *[]string
	AssistTimestamps *[]string
	PositionX        *float64
	PositionY        *float64

	// ClearPosition nulls both position columns, returning the player to the
	// bench on disk while keeping their scoring counters.
	ClearPosition bool
}
