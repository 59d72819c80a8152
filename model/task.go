package model

import (
	"sync"
	"time"

	"github.com/viant/slotor/internal/clock"
	"github.com/viant/slotor/internal/idgen"
)

// Task represents one generation of a slot's supervised background work.
// Identity fields are immutable after creation; lifecycle fields change only
// through the transition methods and terminal states are sticky.
type Task struct {
	ID         string    `json:"id"`
	Slot       string    `json:"slot"`
	Generation int       `json:"generation"`
	CreatedAt  time.Time `json:"createdAt"`

	mu        sync.RWMutex
	state     State
	startedAt *time.Time
	endedAt   *time.Time
	fault     string
}

// NewTask creates a pending task for the given slot generation.
func NewTask(slot string, generation int) *Task {
	return &Task{
		ID:         idgen.New(),
		Slot:       slot,
		Generation: generation,
		CreatedAt:  clock.Now(),
		state:      StatePending,
	}
}

// State returns the current lifecycle state.
func (t *Task) State() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Start transitions a pending task to running and stamps StartedAt.
func (t *Task) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StatePending {
		return
	}
	now := clock.Now()
	t.startedAt = &now
	t.state = StateRunning
}

// Complete marks a normal return.
func (t *Task) Complete() {
	t.finish(StateCompleted, nil)
}

// Cancel marks termination caused by cancellation.
func (t *Task) Cancel() {
	t.finish(StateCancelled, nil)
}

// Fail marks termination caused by a body error or panic.
func (t *Task) Fail(err error) {
	t.finish(StateFailed, err)
}

func (t *Task) finish(state State, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.IsTerminal() {
		return
	}
	now := clock.Now()
	t.endedAt = &now
	t.state = state
	if err != nil {
		t.fault = err.Error()
	}
}

// StartedAt returns when the body began executing, nil while pending.
func (t *Task) StartedAt() *time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.startedAt
}

// EndedAt returns when the task reached a terminal state, nil until then.
func (t *Task) EndedAt() *time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.endedAt
}

// Fault returns the recorded failure message, empty unless state is failed.
func (t *Task) Fault() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.fault
}
