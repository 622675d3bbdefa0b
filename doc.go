// Package async provides a cooperative-concurrency runtime for firmware that
// has no preemptive RTOS and only a periodic "tick" pump to drive work
// forward.
//
// # Overview
//
// async gives firmware three composable primitives:
//
//   - Task: a unit of work triggered every tick, on a repeating/delayed
//     timer, or on demand (typically from an interrupt handler).
//   - Chain: a sequential, resumable step-machine — delay, invoke a
//     callback, wait on a semaphore, wait for an edge-or-timeout, loop —
//     expressed as a fluent builder and executed one step per tick.
//   - Executor: an ordered set of Tickables that are driven forward,
//     fairly, one tick() call each, every time the outer pump runs.
//
// None of the three ever block. A Task or Chain that has more work to do
// simply returns true from Tick and is called again on the next pass;
// there is no goroutine-per-task and no channel-based blocking inside the
// scheduling loop itself — the whole point of the design is to run
// entirely on one cooperative thread (one CPU core), leaving the rest of
// the device free for interrupts and, on multi-core parts, a second
// independent Executor.
//
// # Design philosophy
//
// Processors (Task callbacks, Chain step callbacks) are plain functions.
// Connectors (Executor, Chain, Boot) are mutable, long-lived values that
// own the Tickables handed to them until they are removed or cancelled.
// Task and Chain both implement the Tickable interface, so a Chain can
// be added to an Executor exactly like a Task. Executor itself has Tick
// and Start but no Pause, Resume or Cancel, so it is not a Tickable and
// cannot be nested inside another Executor; a multi-core device runs one
// Executor per CPU core, each driven by its own Boot.
//
// # Observability
//
// Every state transition, chain-step dispatch, and scheduling pass is
// observable through four small, dependency-injected seams rather than
// hand-rolled callback slices or printf logging:
//
//   - capitan structured signals for logging (signals.go)
//   - metricz counters/gauges for throughput (metrics.go)
//   - tracez spans for latency (metrics.go)
//   - hookz typed event hooks for lifecycle notifications (hooks.go)
//
// Tests inject clockz.NewFakeClock() wherever a timed component needs
// deterministic timing; production code defaults to clockz.RealClock.
//
// # Collaborators
//
// The setting, state, stream, pin, and calendar subpackages are thin,
// optional adapters built on top of this core — persisted configuration,
// observable variables, stream I/O, digital I/O with edge notification,
// and wall-clock formatting, respectively. None of them is required to
// use the scheduler itself.
package async
