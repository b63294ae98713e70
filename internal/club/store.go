package club

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/clubkit/touchline/internal/formation"
	"github.com/clubkit/touchline/internal/goals"
)

// New creates a new TacticsStore.
func New(db *sql.DB) TacticsStore {
	return &store{
		db: db,
	}
}

// Legacy rows store the timestamp label lists comma-joined in a single TEXT
// column. That encoding never leaves this package: rows cross the store
// boundary with proper []string fields, and a zero counter maps to NULL.

func joinLabels(labels []string) any {
	if len(labels) == 0 {
		return nil
	}
	return strings.Join(labels, ",")
}

func splitLabels(raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	parts := strings.Split(raw.String, ",")
	labels := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			labels = append(labels, trimmed)
		}
	}
	return labels
}

// ReadPositions returns the placed players of a match instance: roster rows
// with non-null position fields only.
func (s *store) ReadPositions(matchID string, matchNumber int) ([]formation.PlayerPosition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT player_id, player_name, position_x, position_y, team
		FROM match_entries
		WHERE match_id = ? AND match_number = ?
		  AND is_opponent = 0
		  AND position_x IS NOT NULL AND position_y IS NOT NULL
	`, matchID, matchNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	var positions []formation.PlayerPosition
	for rows.Next() {
		var pos formation.PlayerPosition
		var name, team sql.NullString
		if err := rows.Scan(&pos.PlayerID, &name, &pos.X, &pos.Y, &team); err != nil {
			log.Error("Failed to scan position row", "error", err)
			continue
		}
		pos.PlayerName = name.String
		pos.Team = formation.Side(team.String)
		positions = append(positions, pos)
	}
	return positions, nil
}

// ReadAggregates returns every scoring row of a match instance, opponent rows
// included, with the timestamp lists already split.
func (s *store) ReadAggregates(matchID string, matchNumber int) ([]*goals.AggregateRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT player_id, player_name, team, goals, assists, goal_timestamps, assist_timestamps
		FROM match_entries
		WHERE match_id = ? AND match_number = ?
	`, matchID, matchNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query aggregates: %w", err)
	}
	defer rows.Close()

	var aggregates []*goals.AggregateRow
	for rows.Next() {
		var row goals.AggregateRow
		var name, team, goalTS, assistTS sql.NullString
		if err := rows.Scan(&row.PlayerID, &name, &team, &row.Goals, &row.Assists, &goalTS, &assistTS); err != nil {
			log.Error("Failed to scan aggregate row", "error", err)
			continue
		}
		row.PlayerName = name.String
		row.Team = formation.Side(team.String)
		row.GoalTimestamps = splitLabels(goalTS)
		row.AssistTimestamps = splitLabels(assistTS)
		aggregates = append(aggregates, &row)
	}
	return aggregates, nil
}

// ReadFormation returns a match instance's board metadata, or nil when none
// has been saved yet.
func (s *store) ReadFormation(matchID string, matchNumber int) (*FormationMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var meta FormationMeta
	var templateA, templateB, strategyA, strategyB, opponent sql.NullString
	err := s.db.QueryRow(`
		SELECT match_id, match_number, team_a_template, team_b_template, team_a_strategy, team_b_strategy, opponent_name
		FROM formations
		WHERE match_id = ? AND match_number = ?
	`, matchID, matchNumber).Scan(&meta.MatchID, &meta.MatchNumber, &templateA, &templateB, &strategyA, &strategyB, &opponent)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query formation: %w", err)
	}

	meta.TemplateA = templateA.String
	meta.TemplateB = templateB.String
	meta.StrategyA = strategyA.String
	meta.StrategyB = strategyB.String
	meta.OpponentName = opponent.String
	return &meta, nil
}

// UpsertFormation inserts or replaces a match instance's board metadata.
func (s *store) UpsertFormation(meta *FormationMeta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO formations (match_id, match_number, team_a_template, team_b_template, team_a_strategy, team_b_strategy, opponent_name)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(match_id, match_number) DO UPDATE SET
			team_a_template = excluded.team_a_template,
			team_b_template = excluded.team_b_template,
			team_a_strategy = excluded.team_a_strategy,
			team_b_strategy = excluded.team_b_strategy,
			opponent_name = excluded.opponent_name;
	`, meta.MatchID, meta.MatchNumber, meta.TemplateA, meta.TemplateB, meta.StrategyA, meta.StrategyB, meta.OpponentName)
	if err != nil {
		return fmt.Errorf("failed to upsert formation: %w", err)
	}
	return nil
}

// UpsertEntry inserts or partially updates one match entry row. Only the
// fields present in the patch are written on conflict, so a position-only
// save cannot clobber counters and vice versa. The upsert is idempotent,
// which makes a naive retry of a whole save batch safe.
func (s *store) UpsertEntry(matchID string, matchNumber int, playerID string, patch EntryPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		playerName           any
		isOpponent           = 0
		team                 any
		goalCount, assists   int
		goalTS, assistTS     any
		positionX, positionY any
	)
	var set []string

	if patch.PlayerName != nil {
		playerName = *patch.PlayerName
		set = append(set, "player_name = excluded.player_name")
	}
	if patch.IsOpponent != nil {
		if *patch.IsOpponent {
			isOpponent = 1
		}
		set = append(set, "is_opponent = excluded.is_opponent")
	}
	if patch.Team != nil {
		team = string(*patch.Team)
		set = append(set, "team = excluded.team")
	}
	if patch.Goals != nil {
		goalCount = *patch.Goals
		set = append(set, "goals = excluded.goals")
	}
	if patch.Assists != nil {
		assists = *patch.Assists
		set = append(set, "assists = excluded.assists")
	}
	if patch.GoalTimestamps != nil {
		goalTS = joinLabels(*patch.GoalTimestamps)
		set = append(set, "goal_timestamps = excluded.goal_timestamps")
	}
	if patch.AssistTimestamps != nil {
		assistTS = joinLabels(*patch.AssistTimestamps)
		set = append(set, "assist_timestamps = excluded.assist_timestamps")
	}
	if patch.PositionX != nil {
		positionX = *patch.PositionX
		set = append(set, "position_x = excluded.position_x")
	}
	if patch.PositionY != nil {
		positionY = *patch.PositionY
		set = append(set, "position_y = excluded.position_y")
	}
	if patch.ClearPosition {
		positionX, positionY = nil, nil
		set = append(set, "position_x = NULL", "position_y = NULL")
	}

	conflict := "DO NOTHING"
	if len(set) > 0 {
		conflict = "DO UPDATE SET " + strings.Join(set, ", ")
	}

	query := fmt.Sprintf(`
		INSERT INTO match_entries (match_id, match_number, player_id, player_name, is_opponent, team, goals, assists, goal_timestamps, assist_timestamps, position_x, position_y)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(match_id, match_number, player_id) %s;
	`, conflict)

	_, err := s.db.Exec(query, matchID, matchNumber, playerID, playerName, isOpponent, team, goalCount, assists, goalTS, assistTS, positionX, positionY)
	if err != nil {
		return fmt.Errorf("failed to upsert entry for %s: %w", playerID, err)
	}
	return nil
}

// DeleteEntry removes one match entry row entirely.
func (s *store) DeleteEntry(matchID string, matchNumber int, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM match_entries WHERE match_id = ? AND match_number = ? AND player_id = ?", matchID, matchNumber, playerID)
	if err != nil {
		return fmt.Errorf("failed to delete entry for %s: %w", playerID, err)
	}
	return nil
}

func (s *store) AddPlayer(playerID, name string, squadNumber int, preferredRole string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM players WHERE id = ?)", playerID).Scan(&exists)
	if err != nil {
		log.Error("Failed to check if player exists", "error", err, "playerID", playerID)
		return
	}

	if !exists {
		_, err := s.db.Exec("INSERT INTO players (id, name, squad_number, preferred_role) VALUES (?, ?, ?, ?)", playerID, name, squadNumber, preferredRole)
		if err != nil {
			log.Error("Failed to add player", "error", err, "playerID", playerID)
		} else {
			log.Info("Added new player to the roster", "playerID", playerID, "name", name)
		}
	} else {
		_, err := s.db.Exec("UPDATE players SET name = ?, squad_number = ?, preferred_role = ? WHERE id = ?", name, squadNumber, preferredRole, playerID)
		if err != nil {
			log.Error("Failed to update player", "error", err, "playerID", playerID)
		} else {
			log.Info("Updated existing roster player", "playerID", playerID, "name", name)
		}
	}
}

func (s *store) GetAllPlayers() ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, squad_number, preferred_role FROM players ORDER BY squad_number, name")
	if err != nil {
		log.Error("Failed to query all players", "error", err)
		return nil, err
	}
	defer rows.Close()

	return scanPlayers(rows)
}

func (s *store) GetPlayers(playerIDs []string) ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(playerIDs) == 0 {
		return []PlayerInfo{}, nil
	}

	placeholders := strings.TrimRight(strings.Repeat("?,", len(playerIDs)), ",")
	query := fmt.Sprintf("SELECT id, name, squad_number, preferred_role FROM players WHERE id IN (%s)", placeholders)

	rows, err := s.db.Query(query, toAnySlice(playerIDs)...)
	if err != nil {
		log.Error("Failed to query players", "error", err)
		return nil, err
	}
	defer rows.Close()

	return scanPlayers(rows)
}

func scanPlayers(rows *sql.Rows) ([]PlayerInfo, error) {
	players := []PlayerInfo{}
	for rows.Next() {
		var p PlayerInfo
		var name, role sql.NullString
		if err := rows.Scan(&p.ID, &name, &p.SquadNumber, &role); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		p.Name = name.String
		p.PreferredRole = role.String
		players = append(players, p)
	}
	return players, nil
}

func (s *store) IsKnownPlayer(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM players WHERE id = ?)", playerID).Scan(&exists)
	if err != nil {
		log.Error("Failed to check if player exists", "error", err, "playerID", playerID)
		return false
	}
	return exists
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return
	}

	for _, table := range []string{"match_entries", "formations", "players"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
			tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing store", "error", err)
	}
}

func (s *store) ClearMatch(matchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing match", "error", err, "matchID", matchID)
		return
	}

	if _, err := tx.Exec("DELETE FROM match_entries WHERE match_id = ?", matchID); err != nil {
		log.Error("Failed to clear match entries", "error", err, "matchID", matchID)
		tx.Rollback()
		return
	}
	if _, err := tx.Exec("DELETE FROM formations WHERE match_id = ?", matchID); err != nil {
		log.Error("Failed to clear match formations", "error", err, "matchID", matchID)
		tx.Rollback()
		return
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing match", "error", err, "matchID", matchID)
	}
}

func toAnySlice[T any](s []T) []any {
	a := make([]any, len(s))
	for i, v := range s {
		a[i] = v
	}
	return a
}
