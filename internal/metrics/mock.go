package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                 sync.Mutex
	boardLoads         int
	boardSaves         int
	saveRowFailures    int
	placementsRejected int
	goalEvents         int
	saveDurations      []float64
	startupTime        float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		saveDurations: make([]float64, 0),
	}
}

func (m *Mock) IncBoardLoads() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.boardLoads++
}

func (m *Mock) IncBoardSaves() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.boardSaves++
}

func (m *Mock) IncSaveRowFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveRowFailures++
}

func (m *Mock) IncPlacementsRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.placementsRejected++
}

func (m *Mock) IncGoalEvents() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goalEvents++
}

func (m *Mock) ObserveSaveDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveDurations = append(m.saveDurations, duration)
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// BoardLoads returns the number of times IncBoardLoads was called.
func (m *Mock) BoardLoads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.boardLoads
}

// BoardSaves returns the number of times IncBoardSaves was called.
func (m *Mock) BoardSaves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.boardSaves
}

// SaveRowFailures returns the number of times IncSaveRowFailures was called.
func (m *Mock) SaveRowFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveRowFailures
}

// PlacementsRejected returns the number of times IncPlacementsRejected was called.
func (m *Mock) PlacementsRejected() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.placementsRejected
}

// GoalEvents returns the number of times IncGoalEvents was called.
func (m *Mock) GoalEvents() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.goalEvents
}
