package notifier

import (
	"github.com/clubkit/touchline/internal/formation"
	"github.com/clubkit/touchline/internal/goals"
)

// Notifier defines a high-level interface for announcing board events.
// This decouples the rest of the application from the specific notification
// provider (e.g., Slack).
type Notifier interface {
	// For a goal recorded on the board.
	SendGoalNotification(group goals.GoalGroup, scoreA, scoreB int, dryRun bool) error
	// For a saved lineup.
	SendLineupNotification(matchID string, template string, positions []formation.PlayerPosition, dryRun bool) error
	// For the full reconstructed timeline of a match instance.
	SendTimeline(matchID string, groups []goals.GoalGroup, dryRun bool) error
}
