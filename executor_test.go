package async

import (
	"context"
	"testing"
	"time"

	"github.com/zoobzio/clockz"
)

func TestExecutorFairness(t *testing.T) {
	var order []string
	exec := NewExecutor("fairness")
	for _, name := range []string{"a", "b", "c"} {
		n := name
		exec.OnTick(n, func(context.Context) { order = append(order, n) })
	}

	if err := exec.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	exec.Tick()

	if len(order) != 3 {
		t.Fatalf("expected 3 callbacks, got %d: %v", len(order), order)
	}
	if order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Errorf("expected insertion order a,b,c, got %v", order)
	}
}

func TestExecutorSafeRemoval(t *testing.T) {
	var visited []string
	exec := NewExecutor("removal")

	exec.OnTick("keep-1", func(context.Context) { visited = append(visited, "keep-1") })
	// A DEMAND task returns to PAUSE and stays a member after firing, so
	// the member that finishes on pass k is one whose Tick reports false.
	exec.Add("finisher", "test.finisher", &finishingTickable{visit: func() { visited = append(visited, "finisher") }})
	exec.OnTick("keep-2", func(context.Context) { visited = append(visited, "keep-2") })

	if err := exec.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	exec.Tick()
	if len(visited) != 3 {
		t.Fatalf("expected all 3 members visited on pass k, got %v", visited)
	}
	if exec.Len() != 2 {
		t.Fatalf("expected finisher removed after firing, Len=%d", exec.Len())
	}

	visited = nil
	exec.Tick()
	if len(visited) != 2 {
		t.Fatalf("expected finisher not revisited, got %v", visited)
	}
}

func TestExecutorStartStopsAtFirstFailure(t *testing.T) {
	exec := NewExecutor("start-fail")
	exec.OnTick("ok", func(context.Context) {})
	// A zero-period timed task is the only constructor that can fail,
	// and it fails before Add — so simulate a failing member directly.
	exec.Add("boom", "task.fake", failingTickable{})
	exec.OnTick("never-started", func(context.Context) {})

	if err := exec.Start(); err == nil {
		t.Fatal("expected Start to fail")
	}
}

func TestExecutorStartTwiceFails(t *testing.T) {
	exec := NewExecutor("double-start")
	exec.OnTick("ok", func(context.Context) {})

	if err := exec.Start(); err != nil {
		t.Fatalf("first start: %v", err)
	}
	if err := exec.Start(); err != ErrAlreadyStarted {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}
}

func TestExecutorRejectsDuplicateTickable(t *testing.T) {
	exec := NewExecutor("dup")
	task := NewTask("shared", TaskTick, func(context.Context) {})

	if err := exec.Add("shared", "task.tick", task); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := exec.Add("shared", "task.tick", task); err != ErrDuplicateTickable {
		t.Fatalf("expected ErrDuplicateTickable, got %v", err)
	}
	if exec.Len() != 1 {
		t.Fatalf("expected duplicate add to leave membership unchanged, Len=%d", exec.Len())
	}
}

type failingTickable struct{}

func (failingTickable) Tick() bool   { return true }
func (failingTickable) Start() error { return ErrZeroPeriod }
func (failingTickable) Pause()       {}
func (failingTickable) Resume()      {}
func (failingTickable) Cancel()      {}

// finishingTickable records each visit and reports itself finished the
// first time it is ticked.
type finishingTickable struct{ visit func() }

func (f *finishingTickable) Tick() bool { f.visit(); return false }
func (*finishingTickable) Start() error { return nil }
func (*finishingTickable) Pause()       {}
func (*finishingTickable) Resume()      {}
func (*finishingTickable) Cancel()      {}

func TestExecutorPanicRecovery(t *testing.T) {
	exec := NewExecutor("panics")
	exec.OnTick("panics", func(context.Context) { panic("boom") })
	ran := false
	exec.OnTick("survivor", func(context.Context) { ran = true })

	if err := exec.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	exec.Tick()

	if !ran {
		t.Error("expected survivor task to still run despite sibling panic")
	}
	if exec.Len() != 1 {
		t.Errorf("expected panicking member removed, Len=%d", exec.Len())
	}
}

// TestCooperativeCancel is scenario S6: a REPEAT(100ms) task cancelled
// after 350ms fires exactly 3 times.
func TestCooperativeCancel(t *testing.T) {
	clock := clockz.NewFakeClock()
	exec := NewExecutor("s6").WithClock(NewClock(clock))

	fires := 0
	task, err := exec.OnRepeat("blink", Millis(100), func(context.Context) { fires++ })
	if err != nil {
		t.Fatalf("onRepeat: %v", err)
	}
	if err := exec.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	pump := func(ms int) {
		clock.Advance(time.Duration(ms) * time.Millisecond)
		clock.BlockUntilReady()
		exec.Tick()
	}

	for elapsed := 0; elapsed < 350; elapsed += 50 {
		pump(50)
	}
	task.Cancel()

	if fires != 3 {
		t.Fatalf("expected exactly 3 fires by 350ms, got %d", fires)
	}

	exec.Tick()
	if exec.Len() != 0 {
		t.Errorf("expected cancelled task removed on next pass, Len=%d", exec.Len())
	}
}
