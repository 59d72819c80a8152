package messaging

import (
	"context"
)

// Vendor represents the name of a messaging vendor
type Vendor string

// VendorMemory is the channel-backed in-process queue, the only vendor the
// event layer currently ships with.
const VendorMemory = Vendor("memory")

// Queue represents an abstract message queue for any payload type
type Queue[T any] interface {
	// Publish adds a new message with payload to the queue
	Publish(ctx context.Context, t *T) error

	// Consume retrieves a single message from the queue
	Consume(ctx context.Context) (Message[T], error)
}

// TryQueue is implemented by vendors that can publish without blocking.
type TryQueue[T any] interface {
	// TryPublish adds a new message when capacity allows; it reports false
	// when the message was dropped instead of waiting for room.
	TryPublish(ctx context.Context, t *T) (bool, error)
}

// Message represents a message retrieved from a queue
type Message[T any] interface {
	// T returns the payload of this message
	T() *T

	// Ack acknowledges successful processing of this message
	Ack() error

	// Nack indicates failure in processing this message
	Nack(err error) error
}
