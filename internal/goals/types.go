package goals

import "github.com/clubkit/touchline/internal/formation"

// AggregateRow is the denormalized scoring record for one player (or one
// named external opponent) in one match instance: plain counters plus ordered
// timestamp label lists of the same length. The comma-joined on-disk encoding
// of the label lists lives in the persistence layer, never here.
type AggregateRow struct {
	PlayerID         string         `json:"player_id"`
	PlayerName       string         `json:"player_name"`
	Team             formation.Side `json:"team"`
	Goals            int            `json:"goals"`
	Assists          int            `json:"assists"`
	GoalTimestamps   []string       `json:"goal_timestamps"`
	AssistTimestamps []string       `json:"assist_timestamps"`
}

// GoalGroup is one reconstructed scoring event: a scorer, an optional
// assistant, a team, and a timestamp label. Groups are derived from aggregate
// rows and never stored directly.
type GoalGroup struct {
	ID            string         `json:"id"`
	ScorerID      string         `json:"scorer_id"`
	ScorerName    string         `json:"scorer_name"`
	AssistantID   string         `json:"assistant_id,omitempty"`
	AssistantName string         `json:"assistant_name,omitempty"`
	Team          formation.Side `json:"team"`
	Timestamp     string         `json:"timestamp"`
}
