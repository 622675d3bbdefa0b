// Package pin provides a digital-I/O wrapper with edge-triggered
// callbacks, grounded on original_source/include/async/Pin.h. A real
// firmware build backs Driver with the platform's GPIO API; this
// package provides Pin on top of the Driver contract, plus a fake Driver
// for host-side tests and simulation, as SPEC_FULL.md's pin section
// describes.
package pin

import (
	"context"

	"github.com/tickcore/async"
)

// Mode mirrors Arduino's pinMode constants closely enough for this
// package's purposes; the concrete values are irrelevant off real
// hardware.
type Mode int

const (
	ModeInput Mode = iota
	ModeInputPullup
	ModeOutput
)

// Level is a digital signal level.
type Level int

const (
	Low Level = iota
	High
)

// Driver is the platform surface a Pin is built on: the GPIO read/write
// primitives plus edge-interrupt registration. Real firmware backs this
// with direct register/HAL calls; tests and simulations back it with
// FakeDriver.
type Driver interface {
	SetMode(gpio int, mode Mode)
	Write(gpio int, level Level)
	Read(gpio int) Level
	// RegisterEdge arms a callback invoked (from interrupt context on
	// real hardware) whenever gpio transitions. Only one registration
	// per gpio is meaningful; registering again replaces it.
	RegisterEdge(gpio int, notify func(Level))
	UnregisterEdge(gpio int)
}

// Pin wraps one GPIO line, exposing digital I/O (no analog I/O) plus
// OnRising/OnFalling registration that — exactly as Pin.h's
// onInterrupt does — creates a DEMAND Task per registered handler, so
// each handler can be added to an Executor and driven on the
// cooperative thread instead of running inside the interrupt itself.
type Pin struct {
	gpio   int
	mode   Mode
	driver Driver
	last   Level

	rising  []*async.Task
	falling []*async.Task
}

// New constructs a Pin bound to gpio through driver, defaulting to
// ModeInputPullup and an initial remembered level of High — matching
// Pin(int pin, int mode = INPUT_PULLUP, int val = HIGH) in the
// original header.
func New(gpio int, driver Driver) *Pin {
	p := &Pin{gpio: gpio, mode: ModeInputPullup, driver: driver, last: High}
	driver.RegisterEdge(gpio, p.onEdge)
	return p
}

func (p *Pin) onEdge(level Level) {
	p.last = level
	var handlers []*async.Task
	if level == High {
		handlers = p.rising
	} else {
		handlers = p.falling
	}
	for _, t := range handlers {
		t.Demand()
	}
}

// Start applies the Pin's configured mode, matching Pin::start().
func (p *Pin) Start() error {
	p.SetMode(p.mode)
	if p.mode == ModeOutput {
		p.driver.Write(p.gpio, p.last)
	}
	return nil
}

// SetMode reconfigures the pin's direction. Switching to ModeOutput
// disables further edge delivery for this pin, matching the original's
// detachInterrupt-on-OUTPUT behaviour.
func (p *Pin) SetMode(mode Mode) {
	p.mode = mode
	p.driver.SetMode(p.gpio, mode)
	if mode == ModeOutput {
		p.driver.UnregisterEdge(p.gpio)
	} else {
		p.driver.RegisterEdge(p.gpio, p.onEdge)
	}
}

// DigitalWrite drives the pin, switching it to ModeOutput first if
// needed.
func (p *Pin) DigitalWrite(level Level) {
	if p.mode != ModeOutput {
		p.SetMode(ModeOutput)
	}
	p.last = level
	p.driver.Write(p.gpio, level)
}

// DigitalRead returns the pin's current level.
func (p *Pin) DigitalRead() Level { return p.driver.Read(p.gpio) }

// GPIO returns the underlying line number.
func (p *Pin) GPIO() int { return p.gpio }

// OnRising registers cb to fire (as a DEMAND Task) on every rising edge
// observed on this pin, returning the Task so the caller can add it to
// an Executor.
func (p *Pin) OnRising(name async.Name, cb func(context.Context)) *async.Task {
	t := async.NewTask(name, async.TaskDemand, cb)
	p.rising = append(p.rising, t)
	return t
}

// OnFalling is the falling-edge counterpart to OnRising.
func (p *Pin) OnFalling(name async.Name, cb func(context.Context)) *async.Task {
	t := async.NewTask(name, async.TaskDemand, cb)
	p.falling = append(p.falling, t)
	return t
}

// edgeAdapter lets a Pin's Driver double as the async.EdgeSource an
// INTERRUPT operation expects, bridging pin-numbered GPIO edges to the
// rising/falling EdgeKind vocabulary async.Chain uses.
type edgeAdapter struct {
	driver Driver
}

// NewEdgeSource adapts driver into the async.EdgeSource interface
// consumed by Chain.WithEdgeSource, so a Chain's INTERRUPT step can arm
// directly against real (or fake) GPIO hardware.
func NewEdgeSource(driver Driver) async.EdgeSource {
	return &edgeAdapter{driver: driver}
}

func (a *edgeAdapter) RegisterEdge(gpio int, edge async.EdgeKind, notify func()) {
	a.driver.RegisterEdge(gpio, func(level Level) {
		if (edge == async.EdgeRising) == (level == High) {
			notify()
		}
	})
}

func (a *edgeAdapter) UnregisterEdge(gpio int) {
	a.driver.UnregisterEdge(gpio)
}
