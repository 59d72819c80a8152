package types

import "context"

// Body is the executable unit a slot supervises. It takes no input beyond
// its context, may run indefinitely, may fail and may perform arbitrary
// external effects.
//
// Cancellation contract: the supervisor requests termination by cancelling
// ctx. Go cannot preempt a goroutine, so a body must observe ctx.Done() at
// its blocking points and return promptly once the context is cancelled;
// deferred cleanup still runs on that path. A body that ignores cancellation
// will stall the next start on its slot for as long as it keeps running.
type Body func(ctx context.Context) error

// Noop is a body that terminates immediately. Starting it on a slot is the
// conventional way to retire the slot's current occupant.
var Noop Body = func(ctx context.Context) error { return nil }
