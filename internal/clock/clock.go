// Package clock supplies elapsed time to the simulation and paces the tick
// loop. The simulation itself never reads the wall clock.
package clock

import "time"

// Clock reports the time elapsed since the previous call.
type Clock interface {
	Delta() time.Duration
	Reset()
}

// Measured is a wall-clock Clock. The first Delta after construction or
// Reset is zero, so time spent outside the loop (menus, pause) is never
// handed to the simulation.
type Measured struct {
	now     func() time.Time
	last    time.Time
	started bool
}

// NewMeasured creates a Clock backed by time.Now.
func NewMeasured() *Measured {
	return NewMeasuredFunc(time.Now)
}

// NewMeasuredFunc creates a Clock backed by now.
func NewMeasuredFunc(now func() time.Time) *Measured {
	return &Measured{now: now}
}

// Delta returns the time since the previous Delta.
func (m *Measured) Delta() time.Duration {
	t := m.now()
	if !m.started {
		m.started = true
		m.last = t
		return 0
	}
	d := t.Sub(m.last)
	m.last = t
	if d < 0 {
		return 0
	}
	return d
}

// Reset forgets the previous reading.
func (m *Measured) Reset() {
	m.started = false
}

// Fixed returns the same delta every call. It drives headless runs and
// replays.
type Fixed time.Duration

// Delta returns the fixed step.
func (f Fixed) Delta() time.Duration { return time.Duration(f) }

// Reset is a no-op.
func (Fixed) Reset() {}

// Interval converts a tick rate in Hz to the period between ticks.
// Non-positive rates fall back to 60 Hz.
func Interval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}
