package operations

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Well-known state value keys shared between steps.
const (
	KeyPlanName        = "plan_name"
	KeyYear            = "year"
	KeyResolver        = "resolver"
	KeyResults         = "results"
	KeyReportsWritten  = "reports_written"
	KeyBlockCount      = "block_count"
	KeyPrecinctCount   = "precinct_count"
)

// State holds the shared state of one operation run: an ID, a value bag
// for passing data between steps, and per-step runtime states.
type State struct {
	ID        string
	StartTime time.Time

	mu     sync.RWMutex
	values map[string]any
	steps  map[string]*StepState
	order  []string
}

// NewState creates a run state with a fresh run ID.
func NewState() *State {
	return &State{
		ID:        uuid.New().String(),
		StartTime: time.Now(),
		values:    make(map[string]any),
		steps:     make(map[string]*StepState),
	}
}

// Set stores a value in the state bag.
func (s *State) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Get retrieves a value from the state bag.
func (s *State) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// MustGet retrieves a value or returns an error naming the missing key.
// Steps use this for inputs a prior step was responsible for producing.
func (s *State) MustGet(key string) (any, error) {
	v, ok := s.Get(key)
	if !ok {
		return nil, fmt.Errorf("state value %q not set", key)
	}
	return v, nil
}

// RegisterStep adds a pending step state.
func (s *State) RegisterStep(id, name string) *StepState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := NewStepState(id, name)
	s.steps[id] = state
	s.order = append(s.order, id)
	return state
}

// StepState returns the runtime state of a registered step.
func (s *State) StepState(id string) (*StepState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.steps[id]
	return state, ok
}

// StepStates returns the step states in registration order.
func (s *State) StepStates() []*StepState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*StepState, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.steps[id])
	}
	return out
}
