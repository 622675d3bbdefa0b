package async

import (
	"context"
	"sync/atomic"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
)

// TaskKind selects a Task's trigger discipline. It is set at
// construction and never changes.
type TaskKind int

const (
	// TaskTick fires its callback on every pass while RUN.
	TaskTick TaskKind = iota
	// TaskDemand fires once on the pass after Demand() (calls made
	// between passes coalesce), then returns to PAUSE.
	TaskDemand
	// TaskDelay fires once after period has elapsed, then CANCELs.
	TaskDelay
	// TaskRepeat fires every period, resetting its clock each time.
	TaskRepeat
)

func (k TaskKind) String() string {
	switch k {
	case TaskTick:
		return "tick"
	case TaskDemand:
		return "demand"
	case TaskDelay:
		return "delay"
	case TaskRepeat:
		return "repeat"
	default:
		return "unknown"
	}
}

// TaskState is a Task's mutable lifecycle state.
type TaskState int32

const (
	TaskPause TaskState = iota
	TaskRun
	TaskCancel
)

func (s TaskState) String() string {
	switch s {
	case TaskPause:
		return "pause"
	case TaskRun:
		return "run"
	case TaskCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Callback is the zero-argument action a Task invokes when it fires.
type Callback func(ctx context.Context)

// Task is a single triggered unit of work. Its state field is the one
// piece of data this package allows to be written from outside the
// cooperative tick path — a registered edge handler calls Demand()
// from interrupt context — so it is held in an atomic.Int32 rather than
// a plain int, per the shared-state contract governing ISR-visible
// fields.
type Task struct {
	name     Name
	kind     TaskKind
	state    atomic.Int32
	period   Duration
	from     Duration
	callback Callback
	clock    Clock

	hooks   *hookz.Hooks[TaskStateChangeEvent]
	metrics *metricz.Registry
	ctx     context.Context
}

// NewTask constructs a TICK or DEMAND task. kind must be TaskTick or
// TaskDemand; use NewTimedTask for TaskDelay/TaskRepeat.
func NewTask(name Name, kind TaskKind, cb Callback) *Task {
	t := &Task{
		name:     name,
		kind:     kind,
		callback: cb,
		clock:    DefaultClock,
		ctx:      context.Background(),
	}
	t.state.Store(int32(TaskPause))
	return t
}

// NewTimedTask constructs a DELAY or REPEAT task with the given period,
// measured from the moment it is constructed (matching the original
// firmware's Task(type, duration, callback) constructor, which snapshots
// "from" at construction rather than at start()). period must be
// greater than zero.
func NewTimedTask(name Name, kind TaskKind, period Duration, cb Callback) (*Task, error) {
	if period <= 0 {
		return nil, ErrZeroPeriod
	}
	t := &Task{
		name:     name,
		kind:     kind,
		period:   period,
		callback: cb,
		clock:    DefaultClock,
		ctx:      context.Background(),
	}
	t.from = Millis(int64(t.clock.NowMillis()))
	t.state.Store(int32(TaskPause))
	return t, nil
}

// WithClock overrides the clock a Task reads, for deterministic tests.
func (t *Task) WithClock(c Clock) *Task {
	t.clock = c
	if t.kind == TaskDelay || t.kind == TaskRepeat {
		t.from = Millis(int64(c.NowMillis()))
	}
	return t
}

// WithContext sets the context passed to the Task's callback and used
// for signal emission.
func (t *Task) WithContext(ctx context.Context) *Task {
	t.ctx = ctx
	return t
}

// WithHooks attaches an event-hook registry so state transitions are
// observable without polling State().
func (t *Task) WithHooks(h *hookz.Hooks[TaskStateChangeEvent]) *Task {
	t.hooks = h
	return t
}

// WithMetrics attaches a metrics registry shared with the owning
// Executor.
func (t *Task) WithMetrics(m *metricz.Registry) *Task {
	t.metrics = m
	return t
}

// Name returns the Task's observability label.
func (t *Task) Name() Name { return t.name }

// Kind returns the Task's trigger discipline.
func (t *Task) Kind() TaskKind { return t.kind }

// State returns the Task's current lifecycle state.
func (t *Task) State() TaskState { return TaskState(t.state.Load()) }

func (t *Task) setState(to TaskState) {
	from := TaskState(t.state.Swap(int32(to)))
	if from == to {
		return
	}
	if t.hooks != nil {
		_ = t.hooks.Emit(t.ctx, HookTaskStateChange, TaskStateChangeEvent{ //nolint:errcheck
			Name: t.name, From: from, To: to,
		})
	}
	capitan.Debug(t.ctx, SignalTaskStateChange,
		FieldName.Field(t.name),
		FieldPrev.Field(from.String()),
		FieldState.Field(to.String()),
	)
}

// Start transitions the Task to RUN, except for DEMAND tasks: a DEMAND
// task only ever runs in response to Demand(), so starting one is a
// no-op that returns nil.
func (t *Task) Start() error {
	if t.kind != TaskDemand {
		t.setState(TaskRun)
	}
	return nil
}

// Pause suspends the Task; Tick becomes a no-op until Resume.
func (t *Task) Pause() { t.setState(TaskPause) }

// Resume reverses Pause.
func (t *Task) Resume() { t.setState(TaskRun) }

// Cancel ends the Task permanently; its next Tick returns false.
func (t *Task) Cancel() { t.setState(TaskCancel) }

// Demand sets the Task to RUN so a DEMAND task fires on its next Tick.
// The state is swapped atomically; when it actually changes, Demand
// also emits the state-change signal and, if hooks are attached, the
// state-change hook event. Multiple Demand() calls
// between passes coalesce into the single firing the next Tick
// performs, since Tick only observes RUN vs not-RUN.
func (t *Task) Demand() { t.setState(TaskRun) }

// Reset re-snapshots the timed task's reference instant to now,
// without otherwise changing state.
func (t *Task) Reset() {
	t.from = Millis(int64(t.clock.NowMillis()))
}

func (t *Task) fire() {
	if t.callback != nil {
		t.callback(t.ctx)
	}
	if t.metrics != nil {
		t.metrics.Counter(MetricTasksFiredTotal).Inc()
	}
	capitan.Trace(t.ctx, SignalTaskFired, FieldName.Field(t.name), FieldKind.Field(t.kind.String()))
}

// Tick advances the Task by at most one firing and reports whether it
// should remain scheduled.
func (t *Task) Tick() bool {
	switch t.State() {
	case TaskRun:
		switch t.kind {
		case TaskTick:
			t.fire()
		case TaskDemand:
			t.fire()
			t.setState(TaskPause)
		case TaskDelay, TaskRepeat:
			now := Millis(int64(t.clock.NowMillis()))
			if now.Sub(t.from).AtLeast(t.period) {
				t.fire()
				if t.kind == TaskRepeat {
					t.from = now
				} else {
					t.setState(TaskCancel)
				}
			}
		}
	case TaskCancel:
		return false
	}
	return true
}
