package async

import "github.com/zoobzio/capitan"

// Signal constants for core scheduling events. Signals follow the
// pattern: <component>.<event>, mirroring the original firmware's
// T/D/I/W/E line-per-event logging but carrying structured fields
// instead of a format string.
const (
	// Task signals.
	SignalTaskFired      capitan.Signal = "task.fired"
	SignalTaskStateChange capitan.Signal = "task.state-change"

	// Chain signals.
	SignalChainOpAdvanced  capitan.Signal = "chain.op-advanced"
	SignalChainLooped      capitan.Signal = "chain.looped"
	SignalChainCancelled   capitan.Signal = "chain.cancelled"
	SignalChainEdgeDropped capitan.Signal = "chain.edge-dropped"

	// Executor signals.
	SignalExecutorStarted      capitan.Signal = "executor.started"
	SignalExecutorMemberPanic  capitan.Signal = "executor.member-panic"
	SignalExecutorMemberAdded  capitan.Signal = "executor.member-added"
	SignalExecutorMemberGone   capitan.Signal = "executor.member-removed"

	// Boot signals.
	SignalBootStarted capitan.Signal = "boot.started"
	SignalBootStopped capitan.Signal = "boot.stopped"
)

// Common field keys using capitan's typed key constructors, so every
// signal's payload is structured rather than assembled with fmt.
var (
	FieldName    = capitan.NewStringKey("name")
	FieldCore    = capitan.NewIntKey("core")
	FieldKind    = capitan.NewStringKey("kind")
	FieldState   = capitan.NewStringKey("state")
	FieldPrev    = capitan.NewStringKey("prev_state")
	FieldOp      = capitan.NewStringKey("op")
	FieldPC      = capitan.NewIntKey("pc")
	FieldError   = capitan.NewStringKey("error")
	FieldPin     = capitan.NewIntKey("pin")
	FieldTimeout = capitan.NewFloat64Key("timeout_ms")
)
