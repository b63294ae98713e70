package board

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/clubkit/touchline/internal/club"
	"github.com/clubkit/touchline/internal/draft"
	"github.com/clubkit/touchline/internal/formation"
	"github.com/clubkit/touchline/internal/goals"
	"github.com/clubkit/touchline/internal/metrics"
)

// ErrSuperseded means a load finished after navigation had already moved on
// to another match instance; its result is discarded.
var ErrSuperseded = errors.New("board: load superseded by navigation")

// NewManager creates a session manager on top of the given store.
func NewManager(store club.TacticsStore, metricsSvc metrics.Metrics, catalog *formation.Catalog, drafts *draft.Cache) *Manager {
	return &Manager{
		store:    store,
		metrics:  metricsSvc,
		catalog:  catalog,
		drafts:   drafts,
		sessions: make(map[Key]*Session),
	}
}

// Open returns the session for a match instance, loading it from the store
// on first entry. An already-open session is returned as-is: a load is never
// re-triggered by later edits, so a stale re-fetch can never overwrite them.
func (m *Manager) Open(matchID string, matchNumber int) (*Session, error) {
	key := Key{MatchID: matchID, MatchNumber: matchNumber}

	m.mu.Lock()
	if s, ok := m.sessions[key]; ok {
		m.current = key
		m.mu.Unlock()
		return s, nil
	}
	m.current = key
	m.mu.Unlock()

	s, err := m.load(key)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != key {
		log.Info("Discarding superseded board load", "matchID", matchID, "matchNumber", matchNumber)
		return nil, ErrSuperseded
	}
	if existing, ok := m.sessions[key]; ok {
		return existing, nil
	}
	m.sessions[key] = s
	return s, nil
}

// Close drops a session without saving, discarding local edits. The draft
// snapshot survives until it expires.
func (m *Manager) Close(matchID string, matchNumber int) {
	key := Key{MatchID: matchID, MatchNumber: matchNumber}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, key)
}

// load rebuilds a session's in-memory state. A live draft snapshot of
// unsaved edits wins over the stored rows.
func (m *Manager) load(key Key) (*Session, error) {
	s := &Session{
		key:     key,
		store:   m.store,
		metrics: m.metrics,
		drafts:  m.drafts,
		model:   formation.NewModel(m.catalog),
		removed: make(map[string]bool),
	}

	var snap Snapshot
	if ok, err := m.drafts.Get(draft.Key(key.MatchID, key.MatchNumber), &snap); err != nil {
		log.Error("Failed to read draft snapshot, falling back to store", "error", err, "matchID", key.MatchID)
	} else if ok {
		log.Info("Restoring board from draft snapshot", "matchID", key.MatchID, "matchNumber", key.MatchNumber)
		s.restore(&snap)
		m.metrics.IncBoardLoads()
		return s, nil
	}

	positions, err := m.store.ReadPositions(key.MatchID, key.MatchNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to load positions: %w", err)
	}
	rows, err := m.store.ReadAggregates(key.MatchID, key.MatchNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to load aggregates: %w", err)
	}
	meta, err := m.store.ReadFormation(key.MatchID, key.MatchNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to load formation: %w", err)
	}

	if meta != nil {
		s.model.SetTemplate(formation.SideA, meta.TemplateA)
		s.model.SetTemplate(formation.SideB, meta.TemplateB)
		s.model.SetStrategy(formation.SideA, meta.StrategyA)
		s.model.SetStrategy(formation.SideB, meta.StrategyB)
		s.model.SetOpponent(meta.OpponentName)
	}
	s.model.Restore(positions)
	s.ledger = goals.NewLedger(rows)

	m.metrics.IncBoardLoads()
	log.Info("Loaded board", "matchID", key.MatchID, "matchNumber", key.MatchNumber,
		"positions", len(positions), "aggregateRows", len(rows))
	return s, nil
}

// Roster returns the full player pool; the bench is this minus the players a
// session has on the field.
func (m *Manager) Roster() ([]club.PlayerInfo, error) {
	return m.store.GetAllPlayers()
}
