package async

import "strconv"

// Duration is a span of time in milliseconds. It never goes negative as
// the result of any operation in this package — Sub saturates at zero
// rather than wrapping, since the underlying firmware counter this
// mirrors (millis64()) has no representation for "before boot".
type Duration int64

// Unit constructors. Each truncates its argument to millisecond
// resolution, matching the integer-only arithmetic of the original
// Duration type.
func Micros(n int64) Duration  { return Duration(n / 1000) }
func Millis(n int64) Duration  { return Duration(n) }
func Seconds(n int64) Duration { return Duration(n * 1000) }
func Minutes(n int64) Duration { return Duration(n * 60 * 1000) }
func Hours(n int64) Duration   { return Duration(n * 60 * 60 * 1000) }

// Zero is the zero-length Duration.
const Zero Duration = 0

// Millis returns the duration's length in whole milliseconds.
func (d Duration) Millis() int64 { return int64(d) }

// Seconds returns the duration's length as a fractional number of
// seconds.
func (d Duration) Seconds() float64 { return float64(d) / 1000 }

// Add returns d+other. Both operands are assumed non-negative, so the
// sum cannot underflow; it is the caller's responsibility to avoid
// constructing a Duration from a negative literal.
func (d Duration) Add(other Duration) Duration {
	return d + other
}

// Sub returns d-other, saturating at zero instead of going negative.
// Task and Chain compute elapsed time with Sub, so a DELAY/REPEAT
// deadline check never has to guard against underflow separately.
func (d Duration) Sub(other Duration) Duration {
	if other >= d {
		return Zero
	}
	return d - other
}

// Before reports whether d is strictly shorter than other.
func (d Duration) Before(other Duration) bool { return d < other }

// AtLeast reports whether d has reached or exceeded other. Every
// deadline check in this package (Task DELAY/REPEAT, Chain DELAY) is
// phrased as elapsed.AtLeast(period) — the ">=" resolution to the
// spec's own open question about off-by-one comparisons.
func (d Duration) AtLeast(other Duration) bool { return d >= other }

// IsZero reports whether d is the zero duration.
func (d Duration) IsZero() bool { return d == 0 }

// String renders the duration as a bare millisecond count followed by
// "ms", e.g. "250ms".
func (d Duration) String() string {
	return strconv.FormatInt(int64(d), 10) + "ms"
}
