package async

import (
	"context"
	"sync/atomic"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// Void is the threaded-value type for chains that carry no value. Chain
// builds on Go generics to unify the two flavours of chain the original
// library keeps as separate template instantiations: Chain[Void] is
// what spec authors elsewhere call "Chain<void>".
type Void struct{}

// Action adapts a plain callback into the signature Chain[Void].Then
// expects, so a no-value chain reads as a sequence of plain actions
// instead of forcing every caller to thread a Void value by hand.
func Action(f func(context.Context) error) func(context.Context, Void) (Void, error) {
	return func(ctx context.Context, _ Void) (Void, error) {
		return Void{}, f(ctx)
	}
}

// EdgeSource is the registration surface a Chain uses to arm and
// disarm a single-shot edge watch for an INTERRUPT step. Implementations
// live outside this package (see the pin collaborator); a Chain only
// ever holds a non-owning reference and must unregister once the step
// resolves.
type EdgeSource interface {
	RegisterEdge(pin int, edge EdgeKind, notify func())
	UnregisterEdge(pin int)
}

// Chain is a sequential, resumable step-machine: a fluently-built
// script of operations executed at most one meaningful step per Tick.
// T is threaded through Then/Cycle/Again callbacks; use NewChain for a
// chain that carries no value.
type Chain[T any] struct {
	name Name
	ops  []*operation[T]
	pc   int

	delayStart Duration
	loopAll    bool
	cancelled  atomic.Bool

	interruptArmed atomic.Pointer[operation[T]]
	interruptFired atomic.Bool
	edges          EdgeSource

	value T
	clock Clock
	ctx   context.Context

	hooks   *hookz.Hooks[ChainEvent]
	metrics *metricz.Registry
	tracer  *tracez.Tracer
}

// NewChain constructs a chain that carries no threaded value.
func NewChain(name Name) *Chain[Void] {
	return NewTypedChain[Void](name)
}

// NewTypedChain constructs a chain threading a value of T through its
// Then/Cycle/Again steps, starting from the zero value of T.
func NewTypedChain[T any](name Name) *Chain[T] {
	return &Chain[T]{
		name:  name,
		clock: DefaultClock,
		ctx:   context.Background(),
	}
}

// WithClock overrides the clock a Chain reads, for deterministic tests.
func (c *Chain[T]) WithClock(clk Clock) *Chain[T] {
	c.clock = clk
	return c
}

// WithContext sets the context passed to callbacks and used for signal
// emission.
func (c *Chain[T]) WithContext(ctx context.Context) *Chain[T] {
	c.ctx = ctx
	return c
}

// WithHooks attaches an event-hook registry for loop/cancel events.
func (c *Chain[T]) WithHooks(h *hookz.Hooks[ChainEvent]) *Chain[T] {
	c.hooks = h
	return c
}

// WithMetrics attaches a metrics registry shared with the owning
// Executor.
func (c *Chain[T]) WithMetrics(m *metricz.Registry) *Chain[T] {
	c.metrics = m
	return c
}

// WithTracer attaches a tracer used to span each operation dispatch.
func (c *Chain[T]) WithTracer(t *tracez.Tracer) *Chain[T] {
	c.tracer = t
	return c
}

// WithEdgeSource attaches the registration surface an INTERRUPT step
// uses to arm/disarm an edge watch.
func (c *Chain[T]) WithEdgeSource(es EdgeSource) *Chain[T] {
	c.edges = es
	return c
}

// Name returns the chain's observability label.
func (c *Chain[T]) Name() Name { return c.name }

// Value returns the chain's current threaded value.
func (c *Chain[T]) Value() T { return c.value }

// Delay appends a step that advances once ms have elapsed since the
// chain's delay reference instant. THEN, SEMAPHORE_WAIT, a successful
// SEMAPHORE_SKIP, a preceding DELAY, and a Loop or Again restart reset
// that instant when they complete; an INTERRUPT step sets it when it
// arms; CYCLE and a non-restarting Again leave it unchanged. Before any
// of these has run it is the instant the chain's Clock was created.
func (c *Chain[T]) Delay(ms Duration) *Chain[T] {
	c.ops = append(c.ops, &operation[T]{kind: opDelay, delay: ms})
	return c
}

// Then appends a step invoking f with the chain's current value,
// threading its return back into the chain.
func (c *Chain[T]) Then(f func(context.Context, T) (T, error)) *Chain[T] {
	c.ops = append(c.ops, &operation[T]{kind: opThen, then: f})
	return c
}

// SemaphoreWait appends a step that spins in place, without consuming a
// pump pass budget beyond "no progress", until sem.Acquire() succeeds.
func (c *Chain[T]) SemaphoreWait(sem *Semaphore) *Chain[T] {
	c.ops = append(c.ops, &operation[T]{kind: opSemaphoreWait, sem: sem})
	return c
}

// SemaphoreSkip appends a step that, if sem.Acquire() fails, jumps
// execution to the end of the script (terminating the pass, or
// restarting immediately if Loop is set) rather than waiting.
func (c *Chain[T]) SemaphoreSkip(sem *Semaphore) *Chain[T] {
	c.ops = append(c.ops, &operation[T]{kind: opSemaphoreSkip, sem: sem})
	return c
}

// Interrupt appends a step that arms a one-shot edge watch on the given
// pin on first entry, and advances on whichever comes first: a matching
// edge notification, or timeout elapsing.
func (c *Chain[T]) Interrupt(pin int, edge EdgeKind, timeout Duration) *Chain[T] {
	c.ops = append(c.ops, &operation[T]{kind: opInterrupt, pin: pin, edge: edge, timeout: timeout})
	return c
}

// Cycle appends a step that repeatedly calls f with the current value
// until f reports "advance" (the second return), replacing the value
// each pass it does not. This replaces the original library's
// null-sentinel comparison with an explicit advance flag.
func (c *Chain[T]) Cycle(f func(context.Context, T) (T, bool)) *Chain[T] {
	c.ops = append(c.ops, &operation[T]{kind: opCycle, cycle: f})
	return c
}

// Again appends a step that, if the predicate is true, restarts the
// whole script from its first operation; otherwise it advances.
func (c *Chain[T]) Again(p func(context.Context, T) bool) *Chain[T] {
	c.ops = append(c.ops, &operation[T]{kind: opAgain, again: p})
	return c
}

// Loop marks the chain to restart from its first operation whenever it
// runs off the end, instead of terminating.
func (c *Chain[T]) Loop() *Chain[T] {
	c.loopAll = true
	return c
}

// Cancel ends the chain permanently; its next Tick returns false and no
// further callbacks are invoked.
func (c *Chain[T]) Cancel() {
	if c.cancelled.CompareAndSwap(false, true) {
		if c.hooks != nil {
			_ = c.hooks.Emit(c.ctx, HookChainCancelled, ChainEvent{Name: c.name, PC: c.pc}) //nolint:errcheck
		}
		capitan.Info(c.ctx, SignalChainCancelled, FieldName.Field(c.name), FieldPC.Field(c.pc))
	}
}

// SignalEdge notifies the chain that an edge occurred. It only takes
// effect while an INTERRUPT step is currently armed; otherwise it is
// silently dropped (the EdgeMismatch case), matching a handler firing
// for a step the chain is no longer watching.
func (c *Chain[T]) SignalEdge() {
	if c.interruptArmed.Load() == nil {
		capitan.Debug(c.ctx, SignalChainEdgeDropped, FieldName.Field(c.name))
		return
	}
	c.interruptFired.Store(true)
}

// Start validates that the chain has at least one operation — an empty
// chain would terminate on its very first Tick, almost always a
// construction mistake — and otherwise is a no-op: a chain begins
// executing its first operation on its first Tick regardless of
// whether Start was called.
func (c *Chain[T]) Start() error {
	if len(c.ops) == 0 {
		return ErrEmptyChain
	}
	return nil
}

// Pause is unsupported for Chain in this package; chains progress
// purely by Tick and are suspended by removing them from an Executor.
// It is provided to satisfy Tickable and is a no-op.
func (c *Chain[T]) Pause() {}

// Resume is the counterpart no-op to Pause.
func (c *Chain[T]) Resume() {}

func (c *Chain[T]) now() Duration {
	return Millis(int64(c.clock.NowMillis()))
}

func (c *Chain[T]) resetTransient() {
	c.pc = 0
	c.delayStart = c.now()
	c.disarm()
}

func (c *Chain[T]) disarm() {
	if op := c.interruptArmed.Load(); op != nil {
		op.armed = false
		if c.edges != nil {
			c.edges.UnregisterEdge(op.pin)
		}
	}
	c.interruptArmed.Store(nil)
	c.interruptFired.Store(false)
}

// Tick advances the chain by at most one meaningful step.
func (c *Chain[T]) Tick() bool {
	if c.cancelled.Load() {
		return false
	}

	ctx := c.ctx
	if c.tracer != nil {
		spanCtx, span := c.tracer.StartSpan(ctx, SpanChainTick)
		span.SetTag(TagTickableName, c.name)
		defer span.Finish()
		ctx = spanCtx
	}

	if c.pc == len(c.ops) {
		if c.loopAll {
			c.resetTransient()
			if c.hooks != nil {
				_ = c.hooks.Emit(ctx, HookChainLooped, ChainEvent{Name: c.name, PC: c.pc}) //nolint:errcheck
			}
			return true
		}
		return false
	}

	op := c.ops[c.pc]
	now := c.now()

	switch op.kind {
	case opDelay:
		if now.Sub(c.delayStart).AtLeast(op.delay) {
			c.delayStart = now
			c.advance()
		}

	case opThen:
		v, err := op.then(ctx, c.value)
		c.value = v
		if err != nil {
			capitan.Warn(ctx, SignalChainOpAdvanced, FieldName.Field(c.name), FieldOp.Field("then"), FieldError.Field(err.Error()))
		}
		c.delayStart = now
		c.advance()

	case opSemaphoreWait:
		if op.sem.Acquire() {
			c.delayStart = now
			c.advance()
			if c.metrics != nil {
				c.metrics.Counter(MetricSemaphoreAcquired).Inc()
			}
		} else if c.metrics != nil {
			c.metrics.Counter(MetricSemaphoreContention).Inc()
		}

	case opSemaphoreSkip:
		if op.sem.Acquire() {
			c.delayStart = now
			c.advance()
			if c.metrics != nil {
				c.metrics.Counter(MetricSemaphoreAcquired).Inc()
			}
		} else {
			c.pc = len(c.ops)
			if c.metrics != nil {
				c.metrics.Counter(MetricChainOpsSpun).Inc()
			}
		}

	case opInterrupt:
		if c.interruptArmed.Load() != op {
			c.arm(op, now)
		}
		if c.interruptFired.Load() {
			c.disarm()
			c.advance()
		} else if now.Sub(c.delayStart).AtLeast(op.timeout) {
			c.disarm()
			c.advance()
		}

	case opCycle:
		v, advance := op.cycle(ctx, c.value)
		if advance {
			c.advance()
		} else {
			c.value = v
			if c.metrics != nil {
				c.metrics.Counter(MetricChainOpsSpun).Inc()
			}
		}

	case opAgain:
		if op.again(ctx, c.value) {
			c.resetTransient()
		} else {
			c.advance()
		}
	}

	return true
}

func (c *Chain[T]) arm(op *operation[T], now Duration) {
	op.armed = true
	c.interruptArmed.Store(op)
	c.interruptFired.Store(false)
	c.delayStart = now
	if c.edges != nil {
		c.edges.RegisterEdge(op.pin, op.edge, c.SignalEdge)
	}
}

func (c *Chain[T]) advance() {
	c.pc++
	if c.metrics != nil {
		c.metrics.Counter(MetricChainOpsAdvanced).Inc()
	}
	capitan.Trace(c.ctx, SignalChainOpAdvanced, FieldName.Field(c.name), FieldPC.Field(c.pc))
}
