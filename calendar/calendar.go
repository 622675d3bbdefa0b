// Package calendar formats Unix-millisecond timestamps into a
// fixed-width wall-clock representation, grounded on
// original_source/include/async/Time.h — whose C++ version hand-rolls
// leap-year and days-in-month arithmetic because many Arduino cores
// ship without a usable <time.h>. Go's standard library already
// provides correct calendar math, and no library in the retrieved
// example repos does wall-clock calendar conversion (they are all
// concurrency/pipeline/networking libraries with no calendar concern at
// all) — so this is the one collaborator built directly on the
// standard library, per DESIGN.md.
package calendar

import (
	"fmt"
	"time"
)

// Calendar is a decomposed wall-clock instant with millisecond
// resolution, mirroring the fields Time.h exposes (year/month/day/
// hour/minute/second) plus the sub-second component the original's
// millis-based formatting implies.
type Calendar struct {
	Year        int
	Month       time.Month
	Day         int
	Hour        int
	Minute      int
	Second      int
	Millisecond int
}

// FromUnixMillis decomposes ms (milliseconds since the Unix epoch, UTC)
// into a Calendar.
func FromUnixMillis(ms int64) Calendar {
	t := time.UnixMilli(ms).UTC()
	return Calendar{
		Year:        t.Year(),
		Month:       t.Month(),
		Day:         t.Day(),
		Hour:        t.Hour(),
		Minute:      t.Minute(),
		Second:      t.Second(),
		Millisecond: t.Nanosecond() / int(time.Millisecond),
	}
}

// String renders the Calendar as "YYYY-MM-DD HH:MM:SS.mmm", the
// fixed-width format the original firmware's logging line uses for its
// timestamp column.
func (c Calendar) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d.%03d",
		c.Year, int(c.Month), c.Day, c.Hour, c.Minute, c.Second, c.Millisecond)
}
