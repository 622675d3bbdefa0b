package async

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// Boot owns exactly one Executor for one CPU core and the outer pump
// loop that drives it. A two-core device constructs two Boots and runs
// each Run in its own goroutine; this package never keeps a
// package-level list of Boots itself — the caller's entry point owns
// that slice, per this module's resolution of the source's use of
// global per-core state.
type Boot struct {
	core     int
	executor *Executor
	running  bool
}

// NewBoot constructs the pump context for one CPU core. clock is
// threaded down to the Executor it creates so every timed Task/Chain on
// this core reads the same clock.
func NewBoot(core int, clock clockz.Clock) *Boot {
	return &Boot{
		core:     core,
		executor: NewExecutor("boot").WithClock(NewClock(clock)),
	}
}

// Executor returns the core's Executor, for registering Tasks and
// Chains before calling Run.
func (b *Boot) Executor() *Executor { return b.executor }

// Core returns the CPU core index this Boot was constructed for.
func (b *Boot) Core() int { return b.core }

// Run starts the Executor and then calls its Tick in a loop until ctx
// is cancelled, sleeping pumpPeriod between passes. It is the blocking
// pump loop a cmd/ entry point runs per core, one goroutine per Boot.
func (b *Boot) Run(ctx context.Context, pumpPeriod time.Duration) error {
	if b.running {
		return ErrBootAlreadyRunning
	}
	b.running = true
	defer func() { b.running = false }()

	if err := b.executor.Start(); err != nil {
		return err
	}
	capitan.Info(ctx, SignalBootStarted, FieldCore.Field(b.core))

	ticker := time.NewTicker(pumpPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			capitan.Info(ctx, SignalBootStopped, FieldCore.Field(b.core))
			return ctx.Err()
		case <-ticker.C:
			b.executor.Tick()
		}
	}
}
