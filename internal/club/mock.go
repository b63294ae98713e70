package club

import (
	"sync"

	"github.com/clubkit/touchline/internal/formation"
	"github.com/clubkit/touchline/internal/goals"
)

// MockStore is a mock implementation of the TacticsStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	ReadPositionsFunc   func(matchID string, matchNumber int) ([]formation.PlayerPosition, error)
	ReadAggregatesFunc  func(matchID string, matchNumber int) ([]*goals.AggregateRow, error)
	ReadFormationFunc   func(matchID string, matchNumber int) (*FormationMeta, error)
	UpsertFormationFunc func(meta *FormationMeta) error
	UpsertEntryFunc     func(matchID string, matchNumber int, playerID string, patch EntryPatch) error
	DeleteEntryFunc     func(matchID string, matchNumber int, playerID string) error
	AddPlayerFunc       func(playerID, name string, squadNumber int, preferredRole string)
	GetAllPlayersFunc   func() ([]PlayerInfo, error)
	GetPlayersFunc      func(playerIDs []string) ([]PlayerInfo, error)
	IsKnownPlayerFunc   func(playerID string) bool
	ClearFunc           func()
	ClearMatchFunc      func(matchID string)

	// Call records
	UpsertFormationCalls []*FormationMeta
	UpsertEntryCalls     []UpsertEntryCall
	DeleteEntryCalls     []DeleteEntryCall
	ClearMatchCalls      []string
}

// UpsertEntryCall records one UpsertEntry invocation.
type UpsertEntryCall struct {
	MatchID     string
	MatchNumber int
	PlayerID    string
	Patch       EntryPatch
}

// DeleteEntryCall records one DeleteEntry invocation.
type DeleteEntryCall struct {
	MatchID     string
	MatchNumber int
	PlayerID    string
}

var _ TacticsStore = (*MockStore)(nil)

func (m *MockStore) ReadPositions(matchID string, matchNumber int) ([]formation.PlayerPosition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadPositionsFunc != nil {
		return m.ReadPositionsFunc(matchID, matchNumber)
	}
	return nil, nil
}

func (m *MockStore) ReadAggregates(matchID string, matchNumber int) ([]*goals.AggregateRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadAggregatesFunc != nil {
		return m.ReadAggregatesFunc(matchID, matchNumber)
	}
	return nil, nil
}

func (m *MockStore) ReadFormation(matchID string, matchNumber int) (*FormationMeta, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadFormationFunc != nil {
		return m.ReadFormationFunc(matchID, matchNumber)
	}
	return nil, nil
}

func (m *MockStore) UpsertFormation(meta *FormationMeta) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertFormationCalls = append(m.UpsertFormationCalls, meta)
	if m.UpsertFormationFunc != nil {
		return m.UpsertFormationFunc(meta)
	}
	return nil
}

func (m *MockStore) UpsertEntry(matchID string, matchNumber int, playerID string, patch EntryPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertEntryCalls = append(m.UpsertEntryCalls, UpsertEntryCall{
		MatchID:     matchID,
		MatchNumber: matchNumber,
		PlayerID:    playerID,
		Patch:       patch,
	})
	if m.UpsertEntryFunc != nil {
		return m.UpsertEntryFunc(matchID, matchNumber, playerID, patch)
	}
	return nil
}

func (m *MockStore) DeleteEntry(matchID string, matchNumber int, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteEntryCalls = append(m.DeleteEntryCalls, DeleteEntryCall{
		MatchID:     matchID,
		MatchNumber: matchNumber,
		PlayerID:    playerID,
	})
	if m.DeleteEntryFunc != nil {
		return m.DeleteEntryFunc(matchID, matchNumber, playerID)
	}
	return nil
}

func (m *MockStore) AddPlayer(playerID, name string, squadNumber int, preferredRole string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AddPlayerFunc != nil {
		m.AddPlayerFunc(playerID, name, squadNumber, preferredRole)
	}
}

func (m *MockStore) GetAllPlayers() ([]PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) GetPlayers(playerIDs []string) ([]PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayersFunc != nil {
		return m.GetPlayersFunc(playerIDs)
	}
	return nil, nil
}

func (m *MockStore) IsKnownPlayer(playerID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.IsKnownPlayerFunc != nil {
		return m.IsKnownPlayerFunc(playerID)
	}
	return false
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}

func (m *MockStore) ClearMatch(matchID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearMatchCalls = append(m.ClearMatchCalls, matchID)
	if m.ClearMatchFunc != nil {
		m.ClearMatchFunc(matchID)
	}
}
