package async

import (
	"context"
	"fmt"

	"github.com/zoobzio/capitan"
)

// recoverTick wraps a single tickable's Tick call so a panicking
// callback cannot starve the rest of an Executor's membership for the
// remainder of device uptime. A recovered panic is treated as if Tick
// had returned false: the tickable is dropped from this pass.
//
// This hardening has no counterpart in the original firmware, which has
// no exception model at all — but an Executor pass that never returns
// because one Task's callback trapped is strictly worse than dropping
// that one Task.
func recoverTick(ctx context.Context, name Name, kind string, fn func() bool) (alive bool, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			alive = false
			panicked = true
			capitan.Error(ctx, SignalExecutorMemberPanic,
				FieldName.Field(name),
				FieldKind.Field(kind),
				FieldError.Field(fmt.Sprint(r)),
			)
		}
	}()
	return fn(), false
}
