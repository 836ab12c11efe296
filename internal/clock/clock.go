// Package clock is the monotonic time source the render loop paces itself with.
package clock

import "time"

// Clock reports monotonic seconds and performs the loop's fixed waits.
type Clock interface {
	Now() float64
	Sleep(d time.Duration)
}

// System is the wall clock, measured from construction.
type System struct {
	t0 time.Time
}

func NewSystem() *System { return &System{t0: time.Now()} }

// Now uses the monotonic reading carried by time.Time.
func (s *System) Now() float64 { return time.Since(s.t0).Seconds() }

func (s *System) Sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// Manual only advances when told to; Sleep advances it instantly.
type Manual struct {
	T     float64
	Slept time.Duration
}

func (m *Manual) Now() float64 { return m.T }

func (m *Manual) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	m.Slept += d
	m.T += d.Seconds()
}

// Advance moves time forward by d.
func (m *Manual) Advance(d time.Duration) { m.T += d.Seconds() }
