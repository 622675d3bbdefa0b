package async

import "errors"

// Sentinel errors returned by core constructors and operations.
//
// A Tickable signals "remove me" by returning false from Tick, never by
// returning an error — errors here are strictly construction-time or
// misuse-time failures; tick-path failures never propagate across the
// Executor boundary.
var (
	// ErrZeroPeriod is returned by NewTimedTask (and so by
	// Executor.OnRepeat/OnDelay) when given
	// a zero period. A zero period is a configuration error rather than
	// a "fire immediately" request: the original source leaves it
	// undefined (a hot loop), and this module rejects it instead.
	ErrZeroPeriod = errors.New("async: period must be greater than zero")

	// ErrAlreadyStarted is returned by Executor.Start when called more
	// than once on the same Executor.
	ErrAlreadyStarted = errors.New("async: executor already started")

	// ErrDuplicateTickable is returned by Executor.Add when the given
	// Tickable reference is already a member.
	ErrDuplicateTickable = errors.New("async: tickable already added to this executor")

	// ErrEmptyChain is returned by Chain.Start (and so, transitively, by
	// Executor.Start for any Executor that owns the chain) when the
	// chain has zero operations — such a chain would terminate on its
	// very first tick, which is almost always a construction mistake.
	ErrEmptyChain = errors.New("async: chain has no operations")

	// ErrBootAlreadyRunning is returned by Boot.Run when called on a
	// Boot whose pump loop is already active.
	ErrBootAlreadyRunning = errors.New("async: boot is already running")
)
