// Package state provides State, an observable variable that notifies
// registered callbacks when its value changes, coalescing notifications
// between Executor passes the same way any DEMAND Task does.
//
// Grounded on original_source/include/async/State.h: the C++ State<T>
// owns a DEMAND Task and calls task->demand() from set() whenever the
// value actually changes, then delegates tick() to that Task. This
// package reuses async.Task directly instead of re-deriving the
// coalescing behaviour.
package state

import (
	"context"
	"sync"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/hookz"

	"github.com/tickcore/async"
)

// ChangeFunc is notified with the new and previous value whenever a
// State's value changes.
type ChangeFunc[T any] func(curr, prev T)

// State is an observable variable of type T. It satisfies
// async.Tickable by delegating Tick to an internal DEMAND Task, so it
// can be added to an Executor directly alongside Tasks and Chains.
type State[T comparable] struct {
	mu        sync.Mutex
	curr      T
	prev      T
	callbacks []ChangeFunc[T]
	task      *async.Task

	hooks *hookz.Hooks[ChangeEvent[T]]
	name  async.Name
}

// ChangeEvent is emitted through hooks whenever a State's value
// changes, mirroring the curr/prev pair passed to OnChange callbacks.
type ChangeEvent[T any] struct {
	Name async.Name
	Curr T
	Prev T
}

// New constructs a State holding value, with no change callbacks
// registered yet.
func New[T comparable](name async.Name, value T) *State[T] {
	s := &State[T]{curr: value, name: name, hooks: hookz.New[ChangeEvent[T]]()}
	s.task = async.NewTask(name, async.TaskDemand, func(ctx context.Context) {
		s.mu.Lock()
		curr, prev := s.curr, s.prev
		cbs := append([]ChangeFunc[T](nil), s.callbacks...)
		s.mu.Unlock()
		for _, cb := range cbs {
			cb(curr, prev)
		}
	})
	return s
}

// Name returns the State's observability label.
func (s *State[T]) Name() async.Name { return s.name }

// OnChange registers cb to be invoked, on the owning Executor's next
// pass, whenever the value changes.
func (s *State[T]) OnChange(cb ChangeFunc[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbacks = append(s.callbacks, cb)
}

// Get returns the current value.
func (s *State[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.curr
}

// Set updates the value and, if it differs from the current value (or
// force is true), demands a notification pass. Multiple Set calls
// between Executor passes coalesce into a single callback firing,
// exactly as async.Task.Demand already guarantees.
func (s *State[T]) Set(value T, force ...bool) {
	forced := len(force) > 0 && force[0]

	s.mu.Lock()
	prev := s.curr
	changed := s.curr != value || forced
	if changed {
		s.prev = s.curr
		s.curr = value
	}
	s.mu.Unlock()

	if !changed {
		return
	}
	s.task.Demand()
	capitan.Trace(context.Background(), async.SignalTaskStateChange,
		async.FieldName.Field(s.name))
	_ = s.hooks.Emit(context.Background(), HookStateChanged, ChangeEvent[T]{ //nolint:errcheck
		Name: s.name,
		Curr: value,
		Prev: prev,
	})
}

// GetAndSet applies fn to the current value and assigns the result,
// mirroring State<T>::getAndSet in the original header.
func (s *State[T]) GetAndSet(fn func(T) T) {
	s.Set(fn(s.Get()))
}

// Tick delegates to the internal DEMAND Task.
func (s *State[T]) Tick() bool { return s.task.Tick() }

// Start, Pause, Resume, Cancel satisfy async.Tickable by delegating to
// the internal Task.
func (s *State[T]) Start() error { return s.task.Start() }
func (s *State[T]) Pause()       { s.task.Pause() }
func (s *State[T]) Resume()      { s.task.Resume() }
func (s *State[T]) Cancel()      { s.task.Cancel() }

// HookStateChanged is emitted whenever any State's value changes.
const HookStateChanged hookz.Key = "async.state.changed"
