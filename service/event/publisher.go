package event

import (
	"context"
	"time"

	"github.com/viant/slotor/service/messaging"
)

type Publisher[T any] struct {
	queue messaging.Queue[Event[T]]
}

func NewPublisher[T any](queue messaging.Queue[Event[T]]) *Publisher[T] {
	return &Publisher[T]{
		queue: queue,
	}
}

func (p *Publisher[T]) Publish(ctx context.Context, event *Event[T]) error {
	event.CreatedAt = time.Now()
	return p.queue.Publish(ctx, event)
}

// TryPublish delivers event without blocking on a full queue; it reports
// false when the event was dropped. Vendors without non-blocking delivery
// fall back to Publish.
func (p *Publisher[T]) TryPublish(ctx context.Context, event *Event[T]) (bool, error) {
	event.CreatedAt = time.Now()
	if queue, ok := p.queue.(messaging.TryQueue[Event[T]]); ok {
		return queue.TryPublish(ctx, event)
	}
	return true, p.queue.Publish(ctx, event)
}

func (p *Publisher[T]) Consume(ctx context.Context) (*Event[T], error) {
	msg, err := p.queue.Consume(ctx)
	if err != nil || msg == nil {
		return nil, err
	}
	if err = msg.Ack(); err != nil {
		return nil, err
	}
	return msg.T(), nil
}
