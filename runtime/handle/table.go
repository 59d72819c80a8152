package handle

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/viant/slotor/model"
	"github.com/viant/slotor/runtime/latch"
)

// Table is the in-process registry of live handles. Keys combine a slot
// index with a per-index generation counter (generation<<32 | index);
// releasing an entry recycles the index and bumps the generation, which
// invalidates every token minted for the prior occupant of that index.
type Table struct {
	mu      sync.RWMutex
	entries []tableEntry
	free    []uint32
}

type tableEntry struct {
	generation uint32
	handle     *Handle
}

// NewTable creates an empty handle table.
func NewTable() *Table {
	return &Table{}
}

// Register adds a task with its cancel function and completion signal and
// returns the handle under which it can be found for the rest of the
// process's life (or until released).
func (t *Table) Register(task *model.Task, cancel context.CancelFunc, done *latch.Latch) *Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	var index uint32
	if n := len(t.free); n > 0 {
		index = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		index = uint32(len(t.entries))
		t.entries = append(t.entries, tableEntry{})
	}
	entry := &t.entries[index]
	entry.generation++
	handle := &Handle{
		key:    uint64(entry.generation)<<32 | uint64(index),
		task:   task,
		cancel: cancel,
		done:   done,
	}
	entry.handle = handle
	return handle
}

// Decode resolves a token minted by this table. It returns ErrCorruptToken
// for text that is not a decimal key and ErrStaleHandle for keys whose entry
// was released or reissued.
func (t *Table) Decode(token string) (*Handle, error) {
	if token == "" {
		return nil, fmt.Errorf("empty token: %w", ErrCorruptToken)
	}
	key, err := strconv.ParseUint(token, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed token %q: %w", token, ErrCorruptToken)
	}
	index := uint32(key)
	generation := uint32(key >> 32)
	t.mu.RLock()
	defer t.mu.RUnlock()
	if int(index) >= len(t.entries) {
		return nil, fmt.Errorf("unknown token %q: %w", token, ErrStaleHandle)
	}
	entry := &t.entries[index]
	if entry.handle == nil || entry.generation != generation {
		return nil, fmt.Errorf("reclaimed token %q: %w", token, ErrStaleHandle)
	}
	return entry.handle, nil
}

// Release frees the table entry backing h so the index can be reused. It
// reports whether the entry was still live. Tokens for a released handle
// decode to ErrStaleHandle afterwards.
func (t *Table) Release(h *Handle) bool {
	if h == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	index := uint32(h.key)
	if int(index) >= len(t.entries) {
		return false
	}
	entry := &t.entries[index]
	if entry.handle != h {
		return false
	}
	entry.handle = nil
	t.free = append(t.free, index)
	return true
}

// Len returns the number of live entries.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	count := 0
	for i := range t.entries {
		if t.entries[i].handle != nil {
			count++
		}
	}
	return count
}

// Handles returns a snapshot of all live handles.
func (t *Table) Handles() []*Handle {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var result []*Handle
	for i := range t.entries {
		if h := t.entries[i].handle; h != nil {
			result = append(result, h)
		}
	}
	return result
}
