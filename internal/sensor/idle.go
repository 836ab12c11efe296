package sensor

import "time"

// IdleState is the detector's two-state machine.
type IdleState int

const (
	Active IdleState = iota
	AttentionFired
)

func (s IdleState) String() string {
	if s == AttentionFired {
		return "attention_fired"
	}
	return "active"
}

// IdleDetector watches for readings that stay bit-identical for long enough.
//
// Every observation that matches the previous one bumps the stable count; any
// change on either axis drops it back to zero. It fires once the count reaches
// the required number of readings and more than timeout has passed since the
// epoch began. Firing moves the epoch to the firing time and holds the
// detector in AttentionFired until Rearm.
type IdleDetector struct {
	timeout  float64
	required int

	lastX, lastY int
	stable       int
	epoch        float64
	state        IdleState
}

func NewIdleDetector(timeout time.Duration, required int, now float64) *IdleDetector {
	if required < 0 {
		required = 0
	}
	return &IdleDetector{timeout: timeout.Seconds(), required: required, epoch: now}
}

// Observe feeds one pair of readings and reports whether the no-interaction event fired.
func (d *IdleDetector) Observe(x, y int, now float64) bool {
	if x == d.lastX && y == d.lastY {
		d.stable++
	} else {
		d.stable = 0
	}
	d.lastX, d.lastY = x, y

	if d.state == AttentionFired {
		return false
	}
	if now-d.epoch > d.timeout && d.stable >= d.required {
		d.state = AttentionFired
		d.epoch = now
		return true
	}
	return false
}

// Rearm returns to Active and restarts the timeout window at now.
func (d *IdleDetector) Rearm(now float64) {
	d.state = Active
	d.epoch = now
}

func (d *IdleDetector) State() IdleState { return d.state }

func (d *IdleDetector) StableCount() int { return d.stable }

// TimedOut reports whether the timeout window has elapsed at now.
func (d *IdleDetector) TimedOut(now float64) bool { return now-d.epoch > d.timeout }

// Stable reports whether enough identical readings have accumulated.
func (d *IdleDetector) Stable() bool { return d.stable >= d.required }
