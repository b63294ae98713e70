package notifier

import (
	"sync"

	"github.com/clubkit/touchline/internal/formation"
	"github.com/clubkit/touchline/internal/goals"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendGoalNotificationCalls []struct {
		Group  goals.GoalGroup
		ScoreA int
		ScoreB int
	}
	SendLineupNotificationCalls []struct {
		MatchID   string
		Template  string
		Positions []formation.PlayerPosition
	}
	SendTimelineCalls []struct {
		MatchID string
		Groups  []goals.GoalGroup
	}

	// Spies
	SendGoalNotificationFunc   func(group goals.GoalGroup, scoreA, scoreB int, dryRun bool) error
	SendLineupNotificationFunc func(matchID string, template string, positions []formation.PlayerPosition, dryRun bool) error
	SendTimelineFunc           func(matchID string, groups []goals.GoalGroup, dryRun bool) error
}

var _ Notifier = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SendGoalNotification(group goals.GoalGroup, scoreA, scoreB int, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendGoalNotificationCalls = append(m.SendGoalNotificationCalls, struct {
		Group  goals.GoalGroup
		ScoreA int
		ScoreB int
	}{group, scoreA, scoreB})
	if m.SendGoalNotificationFunc != nil {
		return m.SendGoalNotificationFunc(group, scoreA, scoreB, dryRun)
	}
	return nil
}

func (m *Mock) SendLineupNotification(matchID string, template string, positions []formation.PlayerPosition, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLineupNotificationCalls = append(m.SendLineupNotificationCalls, struct {
		MatchID   string
		Template  string
		Positions []formation.PlayerPosition
	}{matchID, template, positions})
	if m.SendLineupNotificationFunc != nil {
		return m.SendLineupNotificationFunc(matchID, template, positions, dryRun)
	}
	return nil
}

func (m *Mock) SendTimeline(matchID string, groups []goals.GoalGroup, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendTimelineCalls = append(m.SendTimelineCalls, struct {
		MatchID string
		Groups  []goals.GoalGroup
	}{matchID, groups})
	if m.SendTimelineFunc != nil {
		return m.SendTimelineFunc(matchID, groups, dryRun)
	}
	return nil
}
