package async

import "github.com/zoobzio/hookz"

// Hook event keys for Task and Chain lifecycle events. The state
// collaborator (and setting, through it) emits its change event through
// the same hookz mechanism, under a key defined in that package.
const (
	HookTaskStateChange hookz.Key = "async.task.state-change"
	HookChainLooped     hookz.Key = "async.chain.looped"
	HookChainCancelled  hookz.Key = "async.chain.cancelled"
)

// TaskStateChangeEvent is emitted through a Task's hooks whenever its
// state changes, so a caller can observe lifecycle transitions without
// polling State() on every tick.
type TaskStateChangeEvent struct {
	Name string
	From TaskState
	To   TaskState
}

// ChainEvent is emitted for chain-level lifecycle transitions that
// aren't tied to a single operation (loop restart, cancellation).
type ChainEvent struct {
	Name string
	PC   int
}
