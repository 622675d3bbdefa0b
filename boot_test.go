package async

import (
	"context"
	"testing"
	"time"
)

func TestBootRunsUntilCancelled(t *testing.T) {
	boot := NewBoot(0, nil)

	var calls int
	boot.Executor().OnTick("worker", func(context.Context) { calls++ })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := boot.Run(ctx, time.Millisecond); err != context.DeadlineExceeded {
		t.Fatalf("expected deadline-exceeded exit, got %v", err)
	}
	if calls == 0 {
		t.Fatal("expected at least one pump pass before the deadline")
	}
}

func TestBootRejectsConcurrentRun(t *testing.T) {
	boot := NewBoot(0, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- boot.Run(ctx, time.Millisecond) }()

	// Give the first Run a moment to mark itself running.
	time.Sleep(10 * time.Millisecond)

	if err := boot.Run(ctx, time.Millisecond); err != ErrBootAlreadyRunning {
		t.Fatalf("expected ErrBootAlreadyRunning, got %v", err)
	}

	cancel()
	<-done
}

func TestBootCoreIndex(t *testing.T) {
	boot := NewBoot(1, nil)
	if boot.Core() != 1 {
		t.Fatalf("expected core 1, got %d", boot.Core())
	}
}
