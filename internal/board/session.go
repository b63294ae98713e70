package board

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/clubkit/touchline/internal/club"
	"github.com/clubkit/touchline/internal/draft"
	"github.com/clubkit/touchline/internal/formation"
	"github.com/clubkit/touchline/internal/goals"
)

// Key returns the match instance this session belongs to.
func (s *Session) Key() Key {
	return s.key
}

// Positions returns the current placements.
func (s *Session) Positions() []formation.PlayerPosition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Positions()
}

// Place puts a player on the board. Expected failures (full lineup, no empty
// slot for the drop point's role, external opponent side) come back as the
// formation package's sentinel errors and leave the board untouched.
func (s *Session) Place(playerID, playerName string, x, y float64, allowFree bool) (formation.PlayerPosition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, err := s.model.Place(playerID, playerName, x, y, allowFree)
	if err != nil {
		s.metrics.IncPlacementsRejected()
		return formation.PlayerPosition{}, err
	}
	delete(s.removed, playerID)
	s.saveDraft()
	return pos, nil
}

// Move relocates an on-field player, releasing their own slot claim during
// resolution.
func (s *Session) Move(playerID string, x, y float64, allowFree bool) (formation.PlayerPosition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, err := s.model.Move(playerID, x, y, allowFree)
	if err != nil {
		s.metrics.IncPlacementsRejected()
		return formation.PlayerPosition{}, err
	}
	s.saveDraft()
	return pos, nil
}

// Remove returns a player to the bench. Their stored row is cleared or
// deleted on the next save.
func (s *Session) Remove(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.model.Remove(playerID); err != nil {
		return err
	}
	s.removed[playerID] = true
	s.saveDraft()
	return nil
}

// SetTemplate records a side's template selection.
func (s *Session) SetTemplate(team formation.Side, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model.SetTemplate(team, name)
	s.saveDraft()
}

// ReapplyTemplate reassigns a side's on-field players to the slots of its
// currently selected template.
func (s *Session) ReapplyTemplate(team formation.Side) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model.ReapplyTemplate(team)
	s.saveDraft()
}

// SetStrategy records a side's free-text strategy note.
func (s *Session) SetStrategy(team formation.Side, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model.SetStrategy(team, text)
	s.saveDraft()
}

// SetOpponent marks side B as a named external team.
func (s *Session) SetOpponent(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model.SetOpponent(name)
	s.saveDraft()
}

// TemplateFor returns a side's selected template name.
func (s *Session) TemplateFor(team formation.Side) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.TemplateFor(team)
}

// StrategyFor returns a side's strategy note.
func (s *Session) StrategyFor(team formation.Side) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.StrategyFor(team)
}

// Opponent returns the external opponent name, empty for a roster side B.
func (s *Session) Opponent() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Opponent()
}

// AddGoal records one goal, with an optional assistant on the same team.
func (s *Session) AddGoal(scorerID, scorerName, assistantID, assistantName string, team formation.Side, timestamp string) goals.GoalGroup {
	s.mu.Lock()
	defer s.mu.Unlock()

	group := s.ledger.AddEvent(scorerID, scorerName, assistantID, assistantName, team, timestamp)
	s.metrics.IncGoalEvents()
	s.saveDraft()
	return group
}

// EditGoal rewrites the identified event with a new scorer, assistant or
// team, keeping its timestamp so it does not jump in the timeline.
func (s *Session) EditGoal(groupID, newScorerID, newScorerName, newAssistantID, newAssistantName string, newTeam formation.Side) (goals.GoalGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.findGroup(groupID)
	if !ok {
		return goals.GoalGroup{}, fmt.Errorf("board: no goal event %s", groupID)
	}
	edited, err := s.ledger.EditEvent(group, newScorerID, newScorerName, newAssistantID, newAssistantName, newTeam)
	if err != nil {
		return goals.GoalGroup{}, err
	}
	s.metrics.IncGoalEvents()
	s.saveDraft()
	return edited, nil
}

// RemoveGoal deletes the identified event and rolls the affected counters
// and timestamp lists back.
func (s *Session) RemoveGoal(groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.findGroup(groupID)
	if !ok {
		return fmt.Errorf("board: no goal event %s", groupID)
	}
	if err := s.ledger.RemoveEvent(group); err != nil {
		return err
	}
	s.metrics.IncGoalEvents()
	s.saveDraft()
	return nil
}

// Timeline returns the ordered goal events of this match instance.
func (s *Session) Timeline() []goals.GoalGroup {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Reconstruct()
}

// Score returns a team's goal count, always recomputed from the timeline.
func (s *Session) Score(team formation.Side) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Score(team)
}

func (s *Session) findGroup(groupID string) (goals.GoalGroup, bool) {
	for _, group := range s.ledger.Reconstruct() {
		if group.ID == groupID {
			return group, true
		}
	}
	return goals.GoalGroup{}, false
}

// Save serializes the whole in-memory board into one batch of per-player
// upserts plus the formation metadata. A failing player row does not abort
// the rest of the batch; each failure is reported so the caller can retry,
// which is safe because the upserts are idempotent.
func (s *Session) Save() (SaveReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	s.metrics.IncBoardSaves()

	meta := &club.FormationMeta{
		MatchID:      s.key.MatchID,
		MatchNumber:  s.key.MatchNumber,
		TemplateA:    s.model.TemplateFor(formation.SideA),
		TemplateB:    s.model.TemplateFor(formation.SideB),
		StrategyA:    s.model.StrategyFor(formation.SideA),
		StrategyB:    s.model.StrategyFor(formation.SideB),
		OpponentName: s.model.Opponent(),
	}
	if err := s.store.UpsertFormation(meta); err != nil {
		return SaveReport{}, fmt.Errorf("failed to save formation metadata: %w", err)
	}

	var report SaveReport

	positionsByPlayer := make(map[string]formation.PlayerPosition)
	for _, pos := range s.model.Positions() {
		positionsByPlayer[pos.PlayerID] = pos
	}

	// One patch per player that has a position, an aggregate row, or both.
	// Removed players without aggregates are deleted below, not patched.
	patched := make(map[string]bool)
	for _, row := range s.ledger.Rows() {
		pos, onField := positionsByPlayer[row.PlayerID]
		if !onField && s.removed[row.PlayerID] && row.Goals == 0 && row.Assists == 0 {
			continue
		}
		patch := entryPatchForRow(row, s.model.Opponent())
		if onField {
			patch.PositionX = &pos.X
			patch.PositionY = &pos.Y
		} else if s.removed[row.PlayerID] {
			patch.ClearPosition = true
		}
		s.applyPatch(row.PlayerID, patch, &report)
		patched[row.PlayerID] = true
	}
	for playerID, pos := range positionsByPlayer {
		if patched[playerID] {
			continue
		}
		name := pos.PlayerName
		team := pos.Team
		patch := club.EntryPatch{
			PlayerName: &name,
			Team:       &team,
			PositionX:  &pos.X,
			PositionY:  &pos.Y,
		}
		s.applyPatch(playerID, patch, &report)
	}

	// Players removed since the last save whose rows carry no aggregates are
	// deleted outright; the rest were cleared above.
	for playerID := range s.removed {
		if row := s.ledger.Row(playerID); row != nil && (row.Goals > 0 || row.Assists > 0) {
			continue
		}
		if err := s.store.DeleteEntry(s.key.MatchID, s.key.MatchNumber, playerID); err != nil {
			s.metrics.IncSaveRowFailures()
			report.Failures = append(report.Failures, SaveFailure{PlayerID: playerID, Reason: err.Error()})
			continue
		}
	}

	if len(report.Failures) == 0 {
		s.removed = make(map[string]bool)
		s.drafts.Delete(draft.Key(s.key.MatchID, s.key.MatchNumber))
	}

	s.metrics.ObserveSaveDuration(time.Since(start).Seconds())
	log.Info("Saved board", "matchID", s.key.MatchID, "matchNumber", s.key.MatchNumber,
		"saved", report.Saved, "failures", len(report.Failures))
	return report, nil
}

func (s *Session) applyPatch(playerID string, patch club.EntryPatch, report *SaveReport) {
	if err := s.store.UpsertEntry(s.key.MatchID, s.key.MatchNumber, playerID, patch); err != nil {
		log.Error("Failed to save player row", "error", err, "playerID", playerID, "matchID", s.key.MatchID)
		s.metrics.IncSaveRowFailures()
		report.Failures = append(report.Failures, SaveFailure{PlayerID: playerID, Reason: err.Error()})
		return
	}
	report.Saved++
}

func entryPatchForRow(row *goals.AggregateRow, opponentName string) club.EntryPatch {
	name := row.PlayerName
	team := row.Team
	goalCount := row.Goals
	assists := row.Assists
	goalTS := append([]string(nil), row.GoalTimestamps...)
	assistTS := append([]string(nil), row.AssistTimestamps...)
	isOpponent := opponentName != "" && row.PlayerID == opponentName

	return club.EntryPatch{
		PlayerName:       &name,
		IsOpponent:       &isOpponent,
		Team:             &team,
		Goals:            &goalCount,
		Assists:          &assists,
		GoalTimestamps:   &goalTS,
		AssistTimestamps: &assistTS,
	}
}

// saveDraft snapshots the unsaved state into the draft cache. Failures are
// logged only; the in-memory state is still authoritative.
func (s *Session) saveDraft() {
	snap := &Snapshot{
		Positions:    s.model.Positions(),
		Rows:         s.ledger.Rows(),
		TemplateA:    s.model.TemplateFor(formation.SideA),
		TemplateB:    s.model.TemplateFor(formation.SideB),
		StrategyA:    s.model.StrategyFor(formation.SideA),
		StrategyB:    s.model.StrategyFor(formation.SideB),
		OpponentName: s.model.Opponent(),
	}
	for playerID := range s.removed {
		snap.Removed = append(snap.Removed, playerID)
	}
	if err := s.drafts.Put(draft.Key(s.key.MatchID, s.key.MatchNumber), snap); err != nil {
		log.Error("Failed to snapshot draft state", "error", err, "matchID", s.key.MatchID)
	}
}

// restore rebuilds the session from a draft snapshot.
func (s *Session) restore(snap *Snapshot) {
	s.model.SetTemplate(formation.SideA, snap.TemplateA)
	s.model.SetTemplate(formation.SideB, snap.TemplateB)
	s.model.SetStrategy(formation.SideA, snap.StrategyA)
	s.model.SetStrategy(formation.SideB, snap.StrategyB)
	s.model.SetOpponent(snap.OpponentName)
	s.model.Restore(snap.Positions)
	s.ledger = goals.NewLedger(snap.Rows)
	for _, playerID := range snap.Removed {
		s.removed[playerID] = true
	}
}
