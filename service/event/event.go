// Package event carries task lifecycle notifications out of the supervisor
// over a messaging queue, so hosts can observe slot transitions without
// hooking the supervisor itself.
package event

import (
	"time"

	"github.com/viant/slotor/model"
)

// Type classifies a task lifecycle transition.
type Type string

// Lifecycle event types
const (
	TypeStarted   Type = "started"
	TypeCompleted Type = "completed"
	TypeFailed    Type = "failed"
	TypeCancelled Type = "cancelled"
	TypeReplaced  Type = "replaced"
)

type Context struct {
	Slot       string `json:"slot"`
	TaskID     string `json:"taskID"`
	EventType  Type   `json:"eventType"`
	Generation int    `json:"generation"`
	WaitedMs   int    `json:"waitedMs,omitempty"`
}

type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata"`
	Data      T                      `json:"data"`
}

func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: time.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}

// NewTaskEvent builds the envelope the supervisor publishes for a task
// transition.
func NewTaskEvent(eventType Type, task *model.Task) *Event[*model.Task] {
	return NewEvent[*model.Task](&Context{
		Slot:       task.Slot,
		TaskID:     task.ID,
		EventType:  eventType,
		Generation: task.Generation,
	}, task)
}
