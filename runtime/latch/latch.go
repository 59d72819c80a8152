// Package latch provides the one-shot synchronization cell used to sequence
// slot hand-offs: a ready gate holds a freshly spawned task until its handle
// is published, and a completion signal marks full termination of a task,
// deferred releases included.
package latch

import (
	"context"
	"sync"
)

// Latch is a one-shot cell. It starts unset and can be released exactly once;
// further releases are no-ops. The zero value is not usable, use New.
type Latch struct {
	once sync.Once
	done chan struct{}
}

// New returns an unset latch.
func New() *Latch {
	return &Latch{done: make(chan struct{})}
}

// Release sets the latch. Safe to call from multiple goroutines and more
// than once.
func (l *Latch) Release() {
	l.once.Do(func() {
		close(l.done)
	})
}

// Released reports whether the latch has been set, without blocking.
func (l *Latch) Released() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the latch is released or ctx is done; it returns
// immediately when the latch is already set. The latch itself imposes no
// timeout.
func (l *Latch) Wait(ctx context.Context) error {
	select {
	case <-l.done:
		return nil
	default:
	}
	select {
	case <-l.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done exposes the underlying channel for use in select statements.
func (l *Latch) Done() <-chan struct{} {
	return l.done
}
