package async

import (
	"context"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// namedTickable pairs a Tickable with the name/kind used to label it in
// signals, metrics, and panic-recovery logging. Members added through
// the factory helpers (OnTick, OnRepeat, ...) get this for free; members
// added directly via Add carry the name and kind the caller passes.
type namedTickable struct {
	Tickable
	name Name
	kind string
}

// Executor is a cooperative scheduler: an ordered set of Tickables
// driven one pass per call to Tick. It never spawns a goroutine for its
// own membership — the entire pass runs on the caller's goroutine,
// matching the single-threaded pump model the rest of this package
// assumes. A panicking member is recovered at this boundary and dropped
// rather than allowed to abort the pass.
type Executor struct {
	name    Name
	members []namedTickable
	started bool

	clock   Clock
	ctx     context.Context
	metrics *metricz.Registry
	tracer  *tracez.Tracer
}

// NewExecutor constructs an empty Executor with its own metrics
// registry and tracer, ready to have members added before or after
// Start.
func NewExecutor(name Name) *Executor {
	return &Executor{
		name:    name,
		clock:   DefaultClock,
		ctx:     context.Background(),
		metrics: newMetrics(),
		tracer:  tracez.New(),
	}
}

// WithClock overrides the clock used by this Executor's factory
// helpers, for deterministic tests. It must be called before any
// On*/Add call that constructs a timed Task.
func (e *Executor) WithClock(c Clock) *Executor {
	e.clock = c
	return e
}

// WithContext sets the context passed to members and used for signal
// emission.
func (e *Executor) WithContext(ctx context.Context) *Executor {
	e.ctx = ctx
	return e
}

// Metrics returns the Executor's metrics registry, so a caller can
// export it alongside the rest of a firmware image's telemetry.
func (e *Executor) Metrics() *metricz.Registry { return e.metrics }

// Name returns the Executor's observability label.
func (e *Executor) Name() Name { return e.name }

// Len reports the current number of live members.
func (e *Executor) Len() int { return len(e.members) }

// Add appends tickable to the membership in insertion order, enforcing
// the Executor's no-duplicate-references invariant. If the Executor has
// already been started, tickable's Start is invoked immediately so it
// joins mid-flight the same way a member present at Start would have;
// that Start's error (if any) is returned in place of ErrDuplicateTickable.
func (e *Executor) Add(name Name, kind string, tickable Tickable) error {
	for _, m := range e.members {
		if m.Tickable == tickable {
			return ErrDuplicateTickable
		}
	}
	e.members = append(e.members, namedTickable{Tickable: tickable, name: name, kind: kind})
	e.metrics.Gauge(MetricExecutorMembers).Set(float64(len(e.members)))
	capitan.Debug(e.ctx, SignalExecutorMemberAdded, FieldName.Field(name), FieldKind.Field(kind))
	if e.started {
		return tickable.Start()
	}
	return nil
}

// Remove drops tickable from membership and cancels it. It is a no-op
// if tickable is not currently a member.
func (e *Executor) Remove(tickable Tickable) {
	for i, m := range e.members {
		if m.Tickable == tickable {
			m.Cancel()
			e.members = append(e.members[:i], e.members[i+1:]...)
			e.metrics.Gauge(MetricExecutorMembers).Set(float64(len(e.members)))
			capitan.Debug(e.ctx, SignalExecutorMemberGone, FieldName.Field(m.name), FieldKind.Field(m.kind))
			return
		}
	}
}

// Start calls Start on every current member in insertion order. If any
// member's Start fails, Start returns that error immediately without
// starting the remaining members; already-started members are left
// running. This is the resolution this package gives to the source's
// conflicting drafts on start() error propagation.
func (e *Executor) Start() error {
	if e.started {
		return ErrAlreadyStarted
	}
	for _, m := range e.members {
		if err := m.Start(); err != nil {
			return err
		}
	}
	e.started = true
	capitan.Info(e.ctx, SignalExecutorStarted, FieldName.Field(e.name), FieldCore.Field(len(e.members)))
	return nil
}

// Tick runs one scheduling pass: every current member's Tick is called
// in insertion order, and any member whose Tick returns false (or
// panics) is removed during the pass. Removals observed this pass do
// not affect which remaining members are visited — the pass walks a
// fixed snapshot of the membership taken at its start and applies
// removals afterward.
func (e *Executor) Tick() bool {
	ctx := e.ctx
	if e.tracer != nil {
		spanCtx, span := e.tracer.StartSpan(ctx, SpanExecutorTick)
		span.SetTag(TagTickableName, e.name)
		defer span.Finish()
		ctx = spanCtx
	}

	survivors := e.members[:0:0]
	for _, m := range e.members {
		alive, panicked := recoverTick(ctx, m.name, m.kind, m.Tick)
		if panicked {
			e.metrics.Counter(MetricExecutorPanics).Inc()
		}
		if alive {
			survivors = append(survivors, m)
		} else {
			capitan.Debug(ctx, SignalExecutorMemberGone, FieldName.Field(m.name), FieldKind.Field(m.kind))
		}
	}
	e.members = survivors
	e.metrics.Counter(MetricTicksTotal).Inc()
	e.metrics.Gauge(MetricExecutorMembers).Set(float64(len(e.members)))
	return true
}

// OnTick constructs and adds a TICK task: its callback runs once every
// pass for as long as the task stays RUN.
func (e *Executor) OnTick(name Name, cb Callback) *Task {
	t := NewTask(name, TaskTick, cb).WithClock(e.clock).WithContext(e.ctx).WithMetrics(e.metrics)
	_ = e.Add(name, "task.tick", t) //nolint:errcheck
	return t
}

// OnRepeat constructs and adds a REPEAT task firing every period.
func (e *Executor) OnRepeat(name Name, period Duration, cb Callback) (*Task, error) {
	t, err := NewTimedTask(name, TaskRepeat, period, cb)
	if err != nil {
		return nil, err
	}
	t.WithClock(e.clock).WithContext(e.ctx).WithMetrics(e.metrics)
	_ = e.Add(name, "task.repeat", t) //nolint:errcheck
	return t, nil
}

// OnDelay constructs and adds a one-shot DELAY task firing once after
// delay has elapsed.
func (e *Executor) OnDelay(name Name, delay Duration, cb Callback) (*Task, error) {
	t, err := NewTimedTask(name, TaskDelay, delay, cb)
	if err != nil {
		return nil, err
	}
	t.WithClock(e.clock).WithContext(e.ctx).WithMetrics(e.metrics)
	_ = e.Add(name, "task.delay", t) //nolint:errcheck
	return t, nil
}

// OnDemand constructs and adds a DEMAND task: it stays PAUSE until
// Demand() is called, then fires once and returns to PAUSE.
func (e *Executor) OnDemand(name Name, cb Callback) *Task {
	t := NewTask(name, TaskDemand, cb).WithClock(e.clock).WithContext(e.ctx).WithMetrics(e.metrics)
	_ = e.Add(name, "task.demand", t) //nolint:errcheck
	return t
}
