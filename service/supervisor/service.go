package supervisor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/viant/slotor/logging"
	"github.com/viant/slotor/model"
	"github.com/viant/slotor/model/types"
	"github.com/viant/slotor/monitoring"
	"github.com/viant/slotor/policy"
	"github.com/viant/slotor/runtime/handle"
	"github.com/viant/slotor/runtime/latch"
	"github.com/viant/slotor/service/dao"
	"github.com/viant/slotor/service/dao/slot/memory"
	"github.com/viant/slotor/service/event"
	"github.com/viant/slotor/tracing"
)

// Service supervises slot occupancy. All mutations of one slot go through
// that slot's lock, held for the whole replace-and-spawn sequence, so
// concurrent starts on the same slot serialize while distinct slots proceed
// in parallel.
type Service struct {
	store     dao.Service[string, model.Entry]
	table     *handle.Table
	logger    *logging.Logger
	metrics   *monitoring.Metrics
	publisher *event.Publisher[*model.Task]

	mux         sync.Mutex
	locks       map[string]*sync.Mutex
	generations map[string]int
}

// New creates a supervisor. Omitted dependencies fall back to an in-memory
// registry, a fresh handle table and a no-op logger.
func New(options ...Option) *Service {
	ret := &Service{
		locks:       make(map[string]*sync.Mutex),
		generations: make(map[string]int),
	}
	for _, option := range options {
		option(ret)
	}
	if ret.store == nil {
		ret.store = memory.New()
	}
	if ret.table == nil {
		ret.table = handle.NewTable()
	}
	if ret.logger == nil {
		ret.logger = logging.NewNop()
	}
	return ret
}

// Store returns the slot registry.
func (s *Service) Store() dao.Service[string, model.Entry] {
	return s.store
}

// Table returns the handle table.
func (s *Service) Table() *handle.Table {
	return s.table
}

// Start replaces the occupant of slot with a new task running body. It
// returns once the previous occupant has fully unwound and the new task's
// token is published to the registry; the body begins executing right after.
// The body's lifetime is detached from ctx, which bounds only the start
// sequence itself.
func (s *Service) Start(ctx context.Context, slot string, body types.Body) (task *model.Task, err error) {
	if err = model.ValidateSlot(slot); err != nil {
		return nil, err
	}
	if body == nil {
		return nil, fmt.Errorf("slot %v: body is required", slot)
	}

	ctx, span := tracing.StartSpan(ctx, fmt.Sprintf("supervisor.start %s", slot), "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()

	lock := s.slotLock(slot)
	lock.Lock()
	defer lock.Unlock()

	if err = s.replace(ctx, slot); err != nil {
		return nil, err
	}
	return s.spawn(ctx, slot, body)
}

// Stop retires the slot's occupant by starting a no-op body in its place.
// The slot's registry entry remains, pointing at the terminated no-op
// generation.
func (s *Service) Stop(ctx context.Context, slot string) (*model.Task, error) {
	return s.Start(ctx, slot, types.Noop)
}

// Task returns the current occupant of slot. An absent entry and an entry
// that no longer decodes both report dao.ErrNotFound.
func (s *Service) Task(ctx context.Context, slot string) (*model.Task, error) {
	if err := model.ValidateSlot(slot); err != nil {
		return nil, err
	}
	entry, err := s.store.Load(ctx, slot)
	if err != nil {
		return nil, err
	}
	h, err := s.table.Decode(entry.Token)
	if err != nil {
		s.logger.Warn("ignoring unreadable slot entry",
			zap.String("slot", slot),
			zap.String("token", entry.Token),
			zap.Error(err))
		return nil, dao.ErrNotFound
	}
	return h.Task(), nil
}

// Tasks returns a snapshot of all registered tasks across slots.
func (s *Service) Tasks() []*model.Task {
	handles := s.table.Handles()
	tasks := make([]*model.Task, 0, len(handles))
	for _, h := range handles {
		tasks = append(tasks, h.Task())
	}
	return tasks
}

// Shutdown cancels every registered task and waits for all of them to
// unwind. Registry entries stay behind; their tokens decode to terminated
// tasks afterwards.
func (s *Service) Shutdown(ctx context.Context) error {
	handles := s.table.Handles()
	for _, h := range handles {
		h.Cancel()
	}
	for _, h := range handles {
		if err := h.Done().Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

// replace cancels the current occupant of slot, if any, and waits for it to
// fully unwind. Unreadable registry entries degrade to "slot empty" with a
// warning instead of failing the start.
func (s *Service) replace(ctx context.Context, slot string) error {
	entry, err := s.store.Load(ctx, slot)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("slot %v: failed to load registry entry: %w", slot, err)
	}
	prev, err := s.table.Decode(entry.Token)
	if err != nil {
		s.logger.Warn("ignoring unreadable slot entry",
			zap.String("slot", slot),
			zap.String("token", entry.Token),
			zap.Error(err))
		return nil
	}
	task := prev.Task()
	if !task.State().IsTerminal() {
		if err := s.approve(ctx, slot, task.ID); err != nil {
			return err
		}
	}

	started := time.Now()
	prev.Cancel()
	if err := prev.Done().Wait(ctx); err != nil {
		return fmt.Errorf("slot %v: interrupted waiting for task %v to unwind: %w", slot, task.ID, err)
	}
	waited := time.Since(started)
	s.table.Release(prev)

	if s.metrics != nil {
		s.metrics.SlotsReplaced.WithLabelValues(slot).Inc()
		s.metrics.ObserveReplaceWait(waited)
	}
	s.publish(event.TypeReplaced, task, waited)
	s.logger.Debug("replaced slot occupant",
		zap.String("slot", slot),
		zap.String("taskID", task.ID),
		zap.Duration("waited", waited))
	return nil
}

// approve consults the optional replacement policy. Only reached when the
// occupant is still live; terminated occupants are replaced unconditionally.
func (s *Service) approve(ctx context.Context, slot, taskID string) error {
	p := policy.FromContext(ctx)
	if p == nil {
		return nil
	}
	if !p.IsAllowed(slot) {
		return fmt.Errorf("slot %v: replacement blocked by policy", slot)
	}
	switch p.Mode {
	case policy.ModeDeny:
		return fmt.Errorf("slot %v: replacement denied by policy", slot)
	case policy.ModeAsk:
		if p.Ask == nil || !p.Ask(ctx, slot, taskID, p) {
			return fmt.Errorf("slot %v: replacement rejected", slot)
		}
	}
	return nil
}

// spawn registers a new generation for slot, publishes its token and only
// then lets the body run. Publishing before the gate release closes the
// window where a short-lived body could finish before a concurrent start on
// the same slot had any chance to observe its handle.
func (s *Service) spawn(ctx context.Context, slot string, body types.Body) (*model.Task, error) {
	s.mux.Lock()
	s.generations[slot]++
	generation := s.generations[slot]
	s.mux.Unlock()

	task := model.NewTask(slot, generation)
	gate := latch.New()
	done := latch.New()
	// the task outlives the start call; cancellation flows only through the
	// handle registered below
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	h := s.table.Register(task, cancel, done)

	go s.run(runCtx, h, gate, body)

	if err := s.store.Save(ctx, &model.Entry{Slot: slot, Token: h.Token()}); err != nil {
		cancel()
		_ = done.Wait(context.Background())
		s.table.Release(h)
		return nil, fmt.Errorf("slot %v: failed to publish handle: %w", slot, err)
	}
	gate.Release()

	s.logger.Info("started slot task",
		zap.String("slot", slot),
		zap.String("taskID", task.ID),
		zap.Int("generation", generation))
	return task, nil
}

// run is the task goroutine. The completion signal is released on every
// exit path, after all other cleanup, so a replacement waiting on it sees
// the task fully unwound.
func (s *Service) run(ctx context.Context, h *handle.Handle, gate *latch.Latch, body types.Body) {
	task := h.Task()
	defer h.Done().Release()

	if err := gate.Wait(ctx); err != nil {
		// unwound before the handle was published; the body never ran
		task.Cancel()
		return
	}
	task.Start()
	if s.metrics != nil {
		s.metrics.TasksStarted.WithLabelValues(task.Slot).Inc()
		s.metrics.TasksActive.Inc()
		defer s.metrics.TasksActive.Dec()
	}
	s.publish(event.TypeStarted, task, 0)

	err := s.invoke(ctx, body)
	switch {
	case err == nil:
		task.Complete()
		if s.metrics != nil {
			s.metrics.TasksCompleted.WithLabelValues(task.Slot).Inc()
		}
		s.publish(event.TypeCompleted, task, 0)
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		task.Cancel()
		if s.metrics != nil {
			s.metrics.TasksCancelled.WithLabelValues(task.Slot).Inc()
		}
		s.publish(event.TypeCancelled, task, 0)
	default:
		task.Fail(err)
		s.logger.Warn("task body failed",
			zap.String("slot", task.Slot),
			zap.String("taskID", task.ID),
			zap.Error(err))
		if s.metrics != nil {
			s.metrics.TasksFailed.WithLabelValues(task.Slot).Inc()
		}
		s.publish(event.TypeFailed, task, 0)
	}
}

// invoke runs the body, absorbing panics into an error so a faulty body can
// never take down the supervisor.
func (s *Service) invoke(ctx context.Context, body types.Body) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task body panic: %v", r)
		}
	}()
	return body(ctx)
}

// publish emits a lifecycle event when a publisher is attached. Delivery is
// best-effort: a full queue drops the event with a warning rather than
// blocking a task's completion path or a replacement holding the slot lock.
func (s *Service) publish(eventType event.Type, task *model.Task, waited time.Duration) {
	if s.publisher == nil {
		return
	}
	anEvent := event.NewTaskEvent(eventType, task)
	if waited > 0 {
		anEvent.Context.WaitedMs = int(waited.Milliseconds())
	}
	delivered, err := s.publisher.TryPublish(context.Background(), anEvent)
	if err != nil {
		s.logger.Warn("failed to publish task event",
			zap.String("slot", task.Slot),
			zap.String("eventType", string(eventType)),
			zap.Error(err))
		return
	}
	if !delivered {
		s.logger.Warn("dropped task event, queue full",
			zap.String("slot", task.Slot),
			zap.String("eventType", string(eventType)))
	}
}

// slotLock returns the mutex serializing starts on slot, creating it on
// first use. Locks are never removed; the set of distinct slot names in one
// process stays small.
func (s *Service) slotLock(slot string) *sync.Mutex {
	s.mux.Lock()
	defer s.mux.Unlock()
	lock, ok := s.locks[slot]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[slot] = lock
	}
	return lock
}
