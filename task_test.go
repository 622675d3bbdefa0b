package async

import (
	"context"
	"testing"
	"time"

	"github.com/zoobzio/clockz"
)

// TestTaskDelayOneShot is property 4: a DELAY(T) task started at time 0
// fires exactly once, at the first pass where now >= T, then terminates
// on the pass after that.
func TestTaskDelayOneShot(t *testing.T) {
	clock := clockz.NewFakeClock()
	var calls int
	task, err := NewTimedTask("delay", TaskDelay, Millis(1000), func(context.Context) { calls++ })
	if err != nil {
		t.Fatalf("NewTimedTask: %v", err)
	}
	task.WithClock(NewClock(clock))
	if err := task.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	for i := 0; i < 9; i++ {
		clock.Advance(100 * time.Millisecond)
		clock.BlockUntilReady()
		if alive := task.Tick(); !alive {
			t.Fatalf("task terminated early at pass %d", i)
		}
	}
	if calls != 0 {
		t.Fatalf("expected no calls before deadline, got %d", calls)
	}

	clock.Advance(100 * time.Millisecond)
	clock.BlockUntilReady()
	if alive := task.Tick(); !alive {
		t.Fatal("expected the firing pass to still report alive")
	}
	if calls != 1 {
		t.Fatalf("expected exactly one firing, got %d", calls)
	}

	if alive := task.Tick(); alive {
		t.Error("expected the one-shot task to terminate on the pass after firing")
	}
	if calls != 1 {
		t.Fatalf("expected no further firings, got %d", calls)
	}
}

// TestTaskRepeatCadence is property 5: a REPEAT(T) task fires
// approximately every T milliseconds.
func TestTaskRepeatCadence(t *testing.T) {
	clock := clockz.NewFakeClock()
	var calls int
	task, err := NewTimedTask("repeat", TaskRepeat, Millis(100), func(context.Context) { calls++ })
	if err != nil {
		t.Fatalf("NewTimedTask: %v", err)
	}
	task.WithClock(NewClock(clock))
	if err := task.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	for i := 0; i < 350; i++ {
		clock.Advance(time.Millisecond)
		clock.BlockUntilReady()
		task.Tick()
	}
	if calls != 3 {
		t.Fatalf("expected 3 firings over 350ms at period 100ms, got %d", calls)
	}
}

// TestTaskDemandCoalesces is property 6: multiple demand() calls
// between passes coalesce into one firing.
func TestTaskDemandCoalesces(t *testing.T) {
	var calls int
	task := NewTask("demand", TaskDemand, func(context.Context) { calls++ })
	if err := task.Start(); err != nil {
		t.Fatalf("start on DEMAND must be a no-op returning nil: %v", err)
	}
	if task.State() != TaskPause {
		t.Fatalf("expected Start on DEMAND to leave state PAUSE, got %v", task.State())
	}

	task.Demand()
	task.Demand()
	task.Demand()

	task.Tick()
	if calls != 1 {
		t.Fatalf("expected coalesced single firing, got %d", calls)
	}
	if task.State() != TaskPause {
		t.Fatalf("expected DEMAND task to return to PAUSE after firing, got %v", task.State())
	}

	task.Tick()
	if calls != 1 {
		t.Fatalf("expected no firing without a further Demand, got %d", calls)
	}
}

func TestTaskZeroPeriodRejected(t *testing.T) {
	if _, err := NewTimedTask("bad", TaskRepeat, Zero, func(context.Context) {}); err != ErrZeroPeriod {
		t.Fatalf("expected ErrZeroPeriod, got %v", err)
	}
}

func TestTaskPauseSuspendsTicking(t *testing.T) {
	var calls int
	task := NewTask("tick", TaskTick, func(context.Context) { calls++ })
	if err := task.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	task.Tick()
	task.Pause()
	task.Tick()
	task.Tick()
	if calls != 1 {
		t.Fatalf("expected ticking to stop while paused, got %d calls", calls)
	}
	task.Resume()
	task.Tick()
	if calls != 2 {
		t.Fatalf("expected ticking to resume, got %d calls", calls)
	}
}

func TestTaskCancelTerminates(t *testing.T) {
	task := NewTask("tick", TaskTick, func(context.Context) {})
	if err := task.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	task.Cancel()
	if alive := task.Tick(); alive {
		t.Error("expected cancelled task to return false")
	}
}
