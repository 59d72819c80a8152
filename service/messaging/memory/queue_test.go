package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type testPayload struct {
	Slot  string
	State string
	Count int
}

func TestQueue(t *testing.T) {
	config := DefaultConfig()
	config.RetryDelay = 10 * time.Millisecond
	queue := NewQueue[testPayload](config)

	ctx := context.Background()
	payload := testPayload{Slot: "worker1", State: "running", Count: 1}

	err := queue.Publish(ctx, &payload)
	assert.NoError(t, err)
	assert.Equal(t, 1, queue.Size())

	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, message)
	assert.Equal(t, 0, queue.Size())

	data := message.T()
	assert.Equal(t, payload.Slot, data.Slot)
	assert.Equal(t, payload.State, data.State)
	assert.Equal(t, payload.Count, data.Count)

	err = message.Ack()
	assert.NoError(t, err)

	// Double ack should error
	err = message.Ack()
	assert.Error(t, err)
}

func TestQueueTryPublish(t *testing.T) {
	config := DefaultConfig()
	config.QueueBuffer = 1
	queue := NewQueue[testPayload](config)
	ctx := context.Background()

	ok, err := queue.TryPublish(ctx, &testPayload{Slot: "worker1"})
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = queue.TryPublish(ctx, &testPayload{Slot: "worker2"})
	assert.NoError(t, err)
	assert.False(t, ok, "full queue drops instead of blocking")
	assert.Equal(t, 1, queue.Size())

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = queue.TryPublish(cancelled, &testPayload{Slot: "worker3"})
	assert.Error(t, err)
}

func TestQueueRetries(t *testing.T) {
	config := DefaultConfig()
	config.MaxRetries = 2
	config.RetryDelay = 10 * time.Millisecond
	queue := NewQueue[testPayload](config)

	ctx := context.Background()
	payload := testPayload{Slot: "worker1", State: "failed"}

	err := queue.Publish(ctx, &payload)
	assert.NoError(t, err)

	var lastID string
	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		message, err := queue.Consume(ctx)
		assert.NoError(t, err)
		assert.NotNil(t, message)

		concrete := message.(*Message[testPayload])
		if attempt == 0 {
			lastID = concrete.ID()
		} else {
			assert.Equal(t, lastID, concrete.ID(), "redelivery keeps the message id")
		}

		err = message.Nack(nil)
		assert.NoError(t, err)
		time.Sleep(20 * time.Millisecond)
	}

	// Retries exhausted, message parked on the dead letter queue
	assert.Equal(t, 0, queue.Size())
	assert.Equal(t, 1, queue.DLQSize())
}

func TestQueueConcurrency(t *testing.T) {
	config := DefaultConfig()
	config.RetryDelay = 10 * time.Millisecond
	queue := NewQueue[testPayload](config)

	ctx := context.Background()
	concurrency := 10
	messagesPerProducer := 10

	var wg sync.WaitGroup
	wg.Add(concurrency * 2)

	var consumedCount int
	var consumedMu sync.Mutex

	for i := 0; i < concurrency; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < messagesPerProducer; j++ {
				message, err := queue.Consume(ctx)
				if err != nil {
					t.Errorf("consume: %v", err)
					continue
				}
				assert.NoError(t, message.Ack())
				consumedMu.Lock()
				consumedCount++
				consumedMu.Unlock()
			}
		}()
	}

	for i := 0; i < concurrency; i++ {
		go func(producerID int) {
			defer wg.Done()
			for j := 0; j < messagesPerProducer; j++ {
				payload := testPayload{
					Slot:  fmt.Sprintf("slot_%d", producerID),
					State: "running",
					Count: j,
				}
				if err := queue.Publish(ctx, &payload); err != nil {
					t.Errorf("publish: %v", err)
				}
			}
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("test timed out")
	}

	assert.Equal(t, concurrency*messagesPerProducer, consumedCount)
	assert.Equal(t, 0, queue.Size())
}

func TestQueueContextCancellation(t *testing.T) {
	queue := NewQueue[testPayload](DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	payload := testPayload{Slot: "worker1"}
	err := queue.Publish(ctx, &payload)
	assert.Error(t, err)

	ctxWithTimeout, cancelTimeout := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancelTimeout()
	_, err = queue.Consume(ctxWithTimeout)
	assert.Error(t, err)

	// Queue remains usable after a cancelled call
	emptyCtx := context.Background()
	err = queue.Publish(emptyCtx, &payload)
	assert.NoError(t, err)

	message, err := queue.Consume(emptyCtx)
	assert.NoError(t, err)
	assert.NotNil(t, message)
}
