package goals

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/clubkit/touchline/internal/formation"
)

// Ledger holds the aggregate scoring rows of one match instance and derives
// the ordered goal timeline from them. All mutations keep the counters and
// timestamp lists consistent with each other.
type Ledger struct {
	rows []*AggregateRow
}

// NewLedger wraps the given rows. The ledger owns them from here on.
func NewLedger(rows []*AggregateRow) *Ledger {
	return &Ledger{rows: rows}
}

// Rows returns the underlying aggregate rows.
func (l *Ledger) Rows() []*AggregateRow {
	return l.rows
}

// Row returns the aggregate row for one player, if present.
func (l *Ledger) Row(playerID string) *AggregateRow {
	for _, row := range l.rows {
		if row.PlayerID == playerID {
			return row
		}
	}
	return nil
}

func (l *Ledger) ensureRow(playerID, playerName string, team formation.Side) *AggregateRow {
	if row := l.Row(playerID); row != nil {
		row.Team = team
		if playerName != "" {
			row.PlayerName = playerName
		}
		return row
	}
	row := &AggregateRow{PlayerID: playerID, PlayerName: playerName, Team: team}
	l.rows = append(l.rows, row)
	return row
}

// Reconstruct rebuilds the ordered goal timeline from the aggregate rows.
// Rows whose timestamp list is shorter than their goal counter get
// placeholder labels, so externally-edited data degrades to a best-effort
// timeline instead of failing. Real clock labels sort ascending; placeholders
// sort after all of them in encounter order.
func (l *Ledger) Reconstruct() []GoalGroup {
	var groups []GoalGroup
	seq := 0

	for _, row := range l.rows {
		if row.Goals <= 0 {
			continue
		}
		if len(row.GoalTimestamps) != row.Goals {
			log.Warn("Goal counter and timestamp list disagree, padding with placeholders",
				"playerID", row.PlayerID, "goals", row.Goals, "timestamps", len(row.GoalTimestamps))
		}
		for i := 0; i < row.Goals; i++ {
			label := ""
			if i < len(row.GoalTimestamps) {
				label = strings.TrimSpace(row.GoalTimestamps[i])
			}
			if label == "" {
				label = placeholderLabel(i + 1)
			}

			group := GoalGroup{
				ID:         fmt.Sprintf("%s-%s-%d", row.PlayerID, label, seq),
				ScorerID:   row.PlayerID,
				ScorerName: row.PlayerName,
				Team:       row.Team,
				Timestamp:  label,
			}
			if assistant := l.findAssistant(row, label); assistant != nil {
				group.AssistantID = assistant.PlayerID
				group.AssistantName = assistant.PlayerName
			}
			groups = append(groups, group)
			seq++
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		si, oki := ParseClockLabel(groups[i].Timestamp)
		sj, okj := ParseClockLabel(groups[j].Timestamp)
		switch {
		case oki && okj:
			return si < sj
		case oki:
			return true
		case okj:
			return false
		default:
			// Two placeholders keep their encounter order.
			return false
		}
	})
	return groups
}

// findAssistant looks for another same-team row whose assist list contains
// the goal's exact label. At most one assistant attaches to a goal; the first
// match wins.
func (l *Ledger) findAssistant(scorer *AggregateRow, label string) *AggregateRow {
	for _, row := range l.rows {
		if row.PlayerID == scorer.PlayerID || row.Team != scorer.Team {
			continue
		}
		for _, ts := range row.AssistTimestamps {
			if strings.TrimSpace(ts) == label {
				return row
			}
		}
	}
	return nil
}

// AddEvent records one goal: the scorer's counter and timestamp list grow by
// one, and so do the assistant's assist counter and list when an assistant is
// given. Both sides receive the same label; that shared label is the sole
// link between a goal and its assist.
//
// An empty timestamp gets the current clock label.
func (l *Ledger) AddEvent(scorerID, scorerName, assistantID, assistantName string, team formation.Side, timestamp string) GoalGroup {
	label := strings.TrimSpace(timestamp)
	if label == "" {
		label = ClockLabel(time.Now())
	}

	scorer := l.ensureRow(scorerID, scorerName, team)
	scorer.Goals++
	scorer.GoalTimestamps = append(scorer.GoalTimestamps, label)

	if assistantID != "" && assistantID != scorerID {
		assistant := l.ensureRow(assistantID, assistantName, team)
		assistant.Assists++
		assistant.AssistTimestamps = append(assistant.AssistTimestamps, label)
	}

	// Hand back the group as the reconstructed timeline numbers it, so the
	// returned ID resolves on a later edit or removal. Occurrences of a
	// duplicate label are interchangeable; the last match serves.
	var group GoalGroup
	for _, g := range l.Reconstruct() {
		if g.ScorerID == scorerID && (g.Timestamp == label || group.ID == "") {
			group = g
		}
	}

	log.Info("Recorded goal", "scorerID", scorerID, "assistantID", assistantID, "team", team, "timestamp", label)
	return group
}

// RemoveEvent reverses one goal: counters decrement (floored at zero) and the
// last occurrence of the event's label leaves each list. Occurrences of a
// duplicate label are interchangeable, so removing the last one is enough.
func (l *Ledger) RemoveEvent(group GoalGroup) error {
	scorer := l.Row(group.ScorerID)
	if scorer == nil {
		return fmt.Errorf("goals: no aggregate row for scorer %s", group.ScorerID)
	}

	scorer.Goals--
	if scorer.Goals < 0 {
		scorer.Goals = 0
	}
	scorer.GoalTimestamps = removeLastOccurrence(scorer.GoalTimestamps, group.Timestamp)
	if scorer.Goals == 0 {
		scorer.GoalTimestamps = nil
	}

	if group.AssistantID != "" {
		if assistant := l.Row(group.AssistantID); assistant != nil {
			assistant.Assists--
			if assistant.Assists < 0 {
				assistant.Assists = 0
			}
			assistant.AssistTimestamps = removeLastOccurrence(assistant.AssistTimestamps, group.Timestamp)
			if assistant.Assists == 0 {
				assistant.AssistTimestamps = nil
			}
		}
	}

	log.Info("Removed goal", "scorerID", group.ScorerID, "timestamp", group.Timestamp)
	return nil
}

// EditEvent rewrites one goal as a removal plus a re-add that reuses the
// original label, so the event keeps its place in the timeline.
func (l *Ledger) EditEvent(group GoalGroup, newScorerID, newScorerName, newAssistantID, newAssistantName string, newTeam formation.Side) (GoalGroup, error) {
	if err := l.RemoveEvent(group); err != nil {
		return GoalGroup{}, err
	}
	return l.AddEvent(newScorerID, newScorerName, newAssistantID, newAssistantName, newTeam, group.Timestamp), nil
}

// Score derives a team's score by counting its reconstructed goals. It is
// never stored, so it cannot drift from the event log.
func (l *Ledger) Score(team formation.Side) int {
	count := 0
	for _, group := range l.Reconstruct() {
		if group.Team == team {
			count++
		}
	}
	return count
}

func removeLastOccurrence(labels []string, label string) []string {
	for i := len(labels) - 1; i >= 0; i-- {
		if strings.TrimSpace(labels[i]) == strings.TrimSpace(label) {
			return append(labels[:i], labels[i+1:]...)
		}
	}
	return labels
}
