package async

import "context"

// opKind tags which variant an Operation holds. Chain's tick dispatch
// switches on this instead of using a type-switch over an interface,
// keeping the step table a flat array the way the original firmware's
// op-array interpreter does.
type opKind int

const (
	opDelay opKind = iota
	opThen
	opSemaphoreWait
	opSemaphoreSkip
	opInterrupt
	opCycle
	opAgain
)

// EdgeKind names the transition an INTERRUPT operation watches for.
type EdgeKind int

const (
	EdgeRising EdgeKind = iota
	EdgeFalling
)

// operation is one step of a Chain's script. Only the fields relevant
// to opKind are populated; the rest are zero. Unexported because the
// script is built exclusively through Chain's fluent appenders.
type operation[T any] struct {
	kind opKind

	delay Duration

	then func(context.Context, T) (T, error)

	sem *Semaphore

	pin     int
	edge    EdgeKind
	timeout Duration

	cycle func(context.Context, T) (T, bool)

	again func(context.Context, T) bool

	// armed is set the first pass an INTERRUPT op is entered and
	// cleared once it resolves. It mirrors the Chain's interruptArmed
	// pointer, which is what Tick and SignalEdge actually consult.
	armed bool
}
