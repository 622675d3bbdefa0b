package async

import "sync/atomic"

// Semaphore is a counting gate with an at-most-one-holder guarantee.
// Acquire succeeds only while count > 0 and no holder currently has the
// gate locked; on success it both decrements count and sets locked, so
// a second Acquire fails even while permits remain — this is what lets
// Chain's SEMAPHORE_WAIT/SEMAPHORE_SKIP treat a Semaphore as a critical
// section (one chain acquires, a later Release — often from a THEN
// step — reopens it) independently of how many permits maxCount grants.
//
// Semaphore is safe to Acquire/Release from an interrupt context
// concurrently with a Tick pass, since both paths only ever perform
// atomic compare-and-swap / test-and-set on unexported fields.
type Semaphore struct {
	count    atomic.Int32
	maxCount int32
	locked   atomic.Bool
}

// NewSemaphore constructs a Semaphore with initialCount permits
// available, capped at maxCount. initialCount is clamped into
// [0, maxCount].
func NewSemaphore(initialCount, maxCount int) *Semaphore {
	if maxCount < 0 {
		maxCount = 0
	}
	if initialCount < 0 {
		initialCount = 0
	}
	if initialCount > maxCount {
		initialCount = maxCount
	}
	s := &Semaphore{maxCount: int32(maxCount)}
	s.count.Store(int32(initialCount))
	return s
}

// Acquire takes one permit and locks the gate, reporting success. It
// fails without side effects when no permit is available or the gate
// is already locked; it never blocks.
func (s *Semaphore) Acquire() bool {
	if !s.locked.CompareAndSwap(false, true) {
		return false
	}
	for {
		cur := s.count.Load()
		if cur <= 0 {
			s.locked.Store(false)
			return false
		}
		if s.count.CompareAndSwap(cur, cur-1) {
			return true
		}
	}
}

// Release clears the lock and returns one permit, capped at maxCount.
// Releasing beyond maxCount is a no-op rather than an error, matching
// the original firmware's saturating release.
func (s *Semaphore) Release() {
	s.locked.Store(false)
	for {
		cur := s.count.Load()
		if cur >= s.maxCount {
			return
		}
		if s.count.CompareAndSwap(cur, cur+1) {
			return
		}
	}
}

// Locked reports whether the gate is currently held.
func (s *Semaphore) Locked() bool { return s.locked.Load() }

// Available reports the number of permits currently available.
func (s *Semaphore) Available() int { return int(s.count.Load()) }

// MaxCount reports the configured permit ceiling.
func (s *Semaphore) MaxCount() int { return int(s.maxCount) }
