package async

import "testing"

// TestSemaphoreSafety is property 3: Acquire succeeds iff count>0 and
// not locked; after a successful Acquire, further Acquires fail until
// Release, regardless of remaining count.
func TestSemaphoreSafety(t *testing.T) {
	sem := NewSemaphore(2, 2)
	if sem.Available() != 2 || sem.MaxCount() != 2 {
		t.Fatalf("expected available=max=2, got available=%d max=%d", sem.Available(), sem.MaxCount())
	}

	if !sem.Acquire() {
		t.Fatal("expected first Acquire to succeed")
	}
	if sem.Available() != 1 {
		t.Fatalf("expected one permit consumed, got available=%d", sem.Available())
	}
	if !sem.Locked() {
		t.Fatal("expected Acquire to set the locked gate")
	}
	if sem.Acquire() {
		t.Fatal("expected second Acquire to fail while locked, even though a permit remains")
	}

	sem.Release()
	if sem.Locked() {
		t.Fatal("expected Release to clear the locked gate")
	}
	if sem.Available() != 2 {
		t.Fatalf("expected permit restored, got available=%d", sem.Available())
	}

	if !sem.Acquire() {
		t.Fatal("expected Acquire to succeed again after Release")
	}
}

func TestSemaphoreCountNeverExceedsMax(t *testing.T) {
	sem := NewSemaphore(1, 1)
	sem.Release() // already at max; must be a no-op
	sem.Release()
	if sem.Available() != 1 {
		t.Fatalf("expected available capped at maxCount=1, got %d", sem.Available())
	}
}

func TestSemaphoreCountNeverUnderflows(t *testing.T) {
	sem := NewSemaphore(1, 1)
	if !sem.Acquire() {
		t.Fatal("expected first Acquire to succeed")
	}
	if sem.Acquire() {
		t.Fatal("expected second Acquire to fail while the first holder is still locked")
	}
	if sem.Available() != 0 {
		t.Fatalf("expected available 0 while held, got %d", sem.Available())
	}
}

func TestSemaphoreInitialCountClampedToMax(t *testing.T) {
	sem := NewSemaphore(5, 2)
	if sem.Available() != 2 {
		t.Fatalf("expected initialCount clamped to maxCount=2, got %d", sem.Available())
	}
}

func TestSemaphoreZeroInitialBlocksUntilReleased(t *testing.T) {
	sem := NewSemaphore(0, 1)
	if sem.Acquire() {
		t.Fatal("expected Acquire to fail with no permits available")
	}
	sem.Release()
	if !sem.Acquire() {
		t.Fatal("expected Acquire to succeed once a permit is released")
	}
}
