// Package handle maintains the process-local table of live slot occupants
// and the textual token codec over it. A token is the decimal rendering of a
// generation-tagged table key, never a memory address, so a stale reference
// is detectable instead of undefined behaviour. Tokens are meaningful only
// inside the process that minted them.
package handle

import (
	"context"
	"errors"
	"strconv"

	"github.com/viant/slotor/model"
	"github.com/viant/slotor/runtime/latch"
)

var (
	// ErrCorruptToken marks a token that is not a well-formed encoding.
	ErrCorruptToken = errors.New("corrupt token")
	// ErrStaleHandle marks a well-formed token whose table entry is gone.
	ErrStaleHandle = errors.New("stale handle")
)

// Handle identifies one registered task generation. It carries the task
// record, the cancel function of the task's context and the completion
// signal released on the task's own exit path.
type Handle struct {
	key    uint64
	task   *model.Task
	cancel context.CancelFunc
	done   *latch.Latch
}

// Task returns the supervised task record.
func (h *Handle) Task() *model.Task {
	return h.task
}

// Done returns the completion signal, released once the task has fully
// unwound.
func (h *Handle) Done() *latch.Latch {
	return h.done
}

// Cancel requests forced interruption of the task. Cancelling a task that
// already terminated is a no-op.
func (h *Handle) Cancel() {
	h.cancel()
}

// Token renders the handle's table key as decimal text. Pure formatting, no
// side effect; the registration itself happened in Table.Register.
func (h *Handle) Token() string {
	return strconv.FormatUint(h.key, 10)
}
