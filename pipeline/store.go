package pipeline

import (
	"fmt"
	"sync"
	"time"
)

// Run is the persisted record of one dataset run.
type Run struct {
	ID          string    `json:"id"`
	RequestID   string    `json:"requestId"`
	Dataset     string    `json:"dataset"`
	Status      string    `json:"status"`
	RecordCount int       `json:"recordCount"`
	TestCount   int       `json:"testCount"`
	RowCount    int       `json:"rowCount"`
	StartedAt   time.Time `json:"startedAt"`
	FinishedAt  time.Time `json:"finishedAt"`
}

// Run lifecycle states.
const (
	RunPending      = "pending"
	RunCompleted    = "completed"
	RunFailed       = "failed"
	RunNoApplicable = "no_applicable_tests"
)

// RunStore manages run and result persistence.
type RunStore interface {
	// CreateRun records a new run in the pending state.
	CreateRun(run *Run) error

	// FinishRun marks a run finished with the given status and row count.
	FinishRun(id, status string, rowCount int) error

	// AppendResults attaches result rows to a run.
	AppendResults(runID string, rows []ResultRow) error

	// GetRun retrieves a run by id.
	GetRun(id string) (*Run, error)

	// ListRuns returns all runs, most recent first.
	ListRuns() ([]*Run, error)

	// Results returns a run's result rows in insertion order.
	Results(runID string) ([]ResultRow, error)
}

// InMemoryRunStore implements RunStore with a mutex-guarded map. Suitable
// for tests and for serving without a database.
type InMemoryRunStore struct {
	runs    map[string]*Run
	order   []string
	results map[string][]ResultRow
	mu      sync.RWMutex
}

// NewInMemoryRunStore creates an empty in-memory run store.
func NewInMemoryRunStore() *InMemoryRunStore {
	return &InMemoryRunStore{
		runs:    make(map[string]*Run),
		results: make(map[string][]ResultRow),
	}
}

// CreateRun records a new run.
func (s *InMemoryRunStore) CreateRun(run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[run.ID]; exists {
		return fmt.Errorf("run with ID %s already exists", run.ID)
	}

	stored := *run
	if stored.StartedAt.IsZero() {
		stored.StartedAt = time.Now()
	}
	if stored.Status == "" {
		stored.Status = RunPending
	}
	s.runs[run.ID] = &stored
	s.order = append(s.order, run.ID)
	return nil
}

// FinishRun marks a run finished.
func (s *InMemoryRunStore) FinishRun(id, status string, rowCount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, exists := s.runs[id]
	if !exists {
		return fmt.Errorf("run with ID %s not found", id)
	}
	run.Status = status
	run.RowCount = rowCount
	run.FinishedAt = time.Now()
	return nil
}

// AppendResults attaches result rows to a run.
func (s *InMemoryRunStore) AppendResults(runID string, rows []ResultRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[runID]; !exists {
		return fmt.Errorf("run with ID %s not found", runID)
	}
	s.results[runID] = append(s.results[runID], rows...)
	return nil
}

// GetRun retrieves a run by id.
func (s *InMemoryRunStore) GetRun(id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, exists := s.runs[id]
	if !exists {
		return nil, fmt.Errorf("run with ID %s not found", id)
	}
	copied := *run
	return &copied, nil
}

// ListRuns returns all runs, most recent first.
func (s *InMemoryRunStore) ListRuns() ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]*Run, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		copied := *s.runs[s.order[i]]
		runs = append(runs, &copied)
	}
	return runs, nil
}

// Results returns a run's result rows.
func (s *InMemoryRunStore) Results(runID string) ([]ResultRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, exists := s.runs[runID]; !exists {
		return nil, fmt.Errorf("run with ID %s not found", runID)
	}
	rows := make([]ResultRow, len(s.results[runID]))
	copy(rows, s.results[runID])
	return rows, nil
}
