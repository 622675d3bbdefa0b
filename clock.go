package async

import (
	"time"

	"github.com/zoobzio/clockz"
)

// Clock adapts a clockz.Clock to the monotonic-millisecond "boot clock"
// counter that is the only source of now for every timed component in
// this package. Production code uses DefaultClock
// (clockz.RealClock); tests inject clockz.NewFakeClock() via NewClock.
//
// NowMillis is measured from the instant the Clock value was created,
// not from the Unix epoch — mirroring millis64()'s "since boot"
// contract in the original firmware and keeping the counter small.
type Clock struct {
	inner clockz.Clock
	epoch time.Time
}

// DefaultClock wraps clockz.RealClock, the wall-clock-backed
// implementation every constructor in this package defaults to.
var DefaultClock = NewClock(clockz.RealClock)

// NewClock wraps an arbitrary clockz.Clock. Pass clockz.NewFakeClock()
// from a test to drive Tickables deterministically.
func NewClock(c clockz.Clock) Clock {
	if c == nil {
		c = clockz.RealClock
	}
	return Clock{inner: c, epoch: c.Now()}
}

// NowMillis returns milliseconds elapsed since this Clock was
// constructed, truncated to millisecond resolution. It is monotonic for
// any non-decreasing clockz.Clock, which both RealClock and FakeClock
// are by construction.
func (c Clock) NowMillis() uint64 {
	return uint64(c.inner.Now().Sub(c.epoch).Milliseconds())
}

// Now returns the underlying clockz reading, for components (like
// calendar) that need full wall-clock precision rather than a duration.
func (c Clock) Now() time.Time {
	return c.inner.Now()
}
