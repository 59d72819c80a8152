package slotor

import (
	"context"
	"strings"

	"github.com/viant/slotor/invocation"
	"github.com/viant/slotor/logging"
	"github.com/viant/slotor/model"
	"github.com/viant/slotor/model/types"
	"github.com/viant/slotor/policy"
	"github.com/viant/slotor/service/body"
	"github.com/viant/slotor/service/body/exec"
	"github.com/viant/slotor/service/event"
	"github.com/viant/slotor/service/supervisor"
)

// Runtime exposes the slot operations backed by a wired supervisor.
type Runtime struct {
	config     *Config
	logger     *logging.Logger
	supervisor *supervisor.Service
	bodies     *body.Registry
	listener   *event.Listener[*model.Task]
}

// Start launches the lifecycle event listener, if events are enabled. The
// supervisor itself needs no warm-up; Fork can be called before Start.
func (r *Runtime) Start(ctx context.Context) {
	if r.listener != nil {
		r.listener.Start(ctx)
	}
}

// Fork starts body under slot, cancelling the slot's previous occupant and
// waiting for it to fully unwind first. The returned task is already
// published in the registry; its body begins executing concurrently.
func (r *Runtime) Fork(ctx context.Context, slot string, aBody types.Body) (*model.Task, error) {
	return r.supervisor.Start(r.policyContext(ctx), slot, aBody)
}

// ForkNamed builds the body with the named factory and starts it under slot.
// Input may be the factory's typed input struct or a loosely typed value
// such as map[string]interface{} decoded from configuration.
func (r *Runtime) ForkNamed(ctx context.Context, slot, factory string, input interface{}) (*model.Task, error) {
	aBody, err := r.bodies.Make(ctx, factory, input)
	if err != nil {
		return nil, err
	}
	return r.Fork(ctx, slot, aBody)
}

// ForkCommand parses raw invocation text in the form "slotName <command>"
// and runs the command under the slot with the exec factory. An empty
// command retires the slot's occupant instead.
func (r *Runtime) ForkCommand(ctx context.Context, raw string) (*model.Task, error) {
	parsed, err := invocation.Parse([]byte(raw))
	if err != nil {
		return nil, err
	}
	command := strings.TrimSpace(parsed.Body)
	if command == "" {
		return r.Stop(ctx, parsed.Slot)
	}
	return r.ForkNamed(ctx, parsed.Slot, "exec", &exec.Input{Commands: []string{command}})
}

// Stop retires the slot's occupant by forking a no-op body in its place.
func (r *Runtime) Stop(ctx context.Context, slot string) (*model.Task, error) {
	return r.supervisor.Stop(r.policyContext(ctx), slot)
}

// Task returns the slot's current occupant; dao.ErrNotFound reports an
// empty slot.
func (r *Runtime) Task(ctx context.Context, slot string) (*model.Task, error) {
	return r.supervisor.Task(ctx, slot)
}

// Tasks returns a snapshot of all registered tasks across slots.
func (r *Runtime) Tasks() []*model.Task {
	return r.supervisor.Tasks()
}

// Entries lists the slot registry entries. Entries are never deleted; a
// retired slot's entry decodes to a terminated task.
func (r *Runtime) Entries(ctx context.Context) ([]*model.Entry, error) {
	return r.supervisor.Store().List(ctx)
}

// Supervisor exposes the underlying supervisor service.
func (r *Runtime) Supervisor() *supervisor.Service {
	return r.supervisor
}

// Shutdown cancels every live task, waits for them to unwind, stops the
// event listener and releases sessions held by closable body factories.
func (r *Runtime) Shutdown(ctx context.Context) error {
	err := r.supervisor.Shutdown(ctx)
	if r.listener != nil {
		r.listener.Stop()
	}
	for _, name := range r.bodies.Factories() {
		closer, ok := r.bodies.Lookup(name).(interface {
			Close(ctx context.Context) error
		})
		if !ok {
			continue
		}
		if cerr := closer.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// policyContext applies the configured replacement policy unless the caller
// already carries one.
func (r *Runtime) policyContext(ctx context.Context) context.Context {
	if r.config == nil || r.config.Policy == nil {
		return ctx
	}
	if policy.FromContext(ctx) != nil {
		return ctx
	}
	return policy.WithPolicy(ctx, policy.FromConfig(r.config.Policy))
}
