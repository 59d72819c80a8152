package event

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/slotor/model"
	"github.com/viant/slotor/service/messaging/memory"
)

func newTaskPublisher() *Publisher[*model.Task] {
	queue := memory.NewQueue[Event[*model.Task]](memory.DefaultConfig())
	return NewPublisher[*model.Task](queue)
}

func TestNewTaskEvent(t *testing.T) {
	task := model.NewTask("worker1", 3)
	anEvent := NewTaskEvent(TypeStarted, task)

	assert.Equal(t, "worker1", anEvent.Context.Slot)
	assert.Equal(t, task.ID, anEvent.Context.TaskID)
	assert.Equal(t, TypeStarted, anEvent.Context.EventType)
	assert.Equal(t, 3, anEvent.Context.Generation)
	assert.Same(t, task, anEvent.Data)
}

func TestPublisher_RoundTrip(t *testing.T) {
	publisher := newTaskPublisher()
	ctx := context.Background()

	task := model.NewTask("worker1", 1)
	err := publisher.Publish(ctx, NewTaskEvent(TypeCompleted, task))
	assert.Nil(t, err)

	anEvent, err := publisher.Consume(ctx)
	assert.Nil(t, err)
	assert.Equal(t, TypeCompleted, anEvent.Context.EventType)
	assert.Equal(t, task.ID, anEvent.Data.ID)
	assert.False(t, anEvent.CreatedAt.IsZero())
}

func TestListener_DeliversAndStops(t *testing.T) {
	publisher := newTaskPublisher()
	ctx := context.Background()

	var mu sync.Mutex
	var seen []Type
	listener := NewListener[*model.Task](publisher, func(e *Event[*model.Task]) {
		mu.Lock()
		seen = append(seen, e.Context.EventType)
		mu.Unlock()
	})
	listener.Start(ctx)

	task := model.NewTask("worker1", 1)
	assert.Nil(t, publisher.Publish(ctx, NewTaskEvent(TypeStarted, task)))
	assert.Nil(t, publisher.Publish(ctx, NewTaskEvent(TypeCancelled, task)))

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		count := len(seen)
		mu.Unlock()
		if count == 2 || time.Now().After(deadline) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	listener.Stop()
	mu.Lock()
	assert.Equal(t, []Type{TypeStarted, TypeCancelled}, seen)
	mu.Unlock()

	// No delivery after Stop
	assert.Nil(t, publisher.Publish(ctx, NewTaskEvent(TypeFailed, task)))
	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	assert.Len(t, seen, 2)
	mu.Unlock()
}

func TestListener_StopWithoutStart(t *testing.T) {
	listener := NewListener[*model.Task](newTaskPublisher(), func(*Event[*model.Task]) {})
	listener.Stop()
}
