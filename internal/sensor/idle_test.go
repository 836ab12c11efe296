package sensor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const required = 25

func TestIdleFiresOnceAfterStableAndTimeout(t *testing.T) {
	d := NewIdleDetector(time.Second, required, 0)

	now := 0.0
	// first reading differs from the zero-value history
	assert.False(t, d.Observe(1, 90, now))
	fired := 0
	for i := 0; i < required; i++ {
		now += 0.1
		if d.Observe(1, 90, now) {
			fired++
		}
	}
	assert.Equal(t, required, d.StableCount())
	assert.Equal(t, 1, fired, "timeout passed at 1.1s with 25 stable readings")
	assert.Equal(t, AttentionFired, d.State())

	for i := 0; i < 50; i++ {
		now += 0.1
		assert.False(t, d.Observe(1, 90, now), "must not fire again before Rearm")
	}
}

func TestIdleRequiresTimeout(t *testing.T) {
	d := NewIdleDetector(10*time.Second, required, 0)
	d.Observe(5, 5, 0)
	for i := 1; i <= 60; i++ {
		assert.False(t, d.Observe(5, 5, float64(i)*0.1))
	}
	assert.True(t, d.Stable())
	assert.False(t, d.TimedOut(6))
	assert.True(t, d.Observe(5, 5, 10.5))
}

func TestIdleSingleDifferenceResets(t *testing.T) {
	d := NewIdleDetector(time.Second, required, 0)
	now := 0.0
	for i := 0; i < 24; i++ {
		now += 0.1
		d.Observe(3, 3, now)
	}
	now += 0.1
	assert.False(t, d.Observe(3, 4, now))
	assert.Equal(t, 0, d.StableCount())

	for i := 0; i < 24; i++ {
		now += 0.1
		assert.False(t, d.Observe(3, 4, now), "only %d stable readings", d.StableCount())
	}
	now += 0.1
	assert.True(t, d.Observe(3, 4, now))
}

func TestIdleRearmRestartsEpoch(t *testing.T) {
	d := NewIdleDetector(time.Second, 2, 0)
	d.Observe(0, 0, 0.5)
	d.Observe(0, 0, 0.9)
	assert.True(t, d.Observe(0, 0, 1.5))

	d.Rearm(5)
	assert.Equal(t, Active, d.State())
	assert.False(t, d.Observe(0, 0, 5.5), "stable but within the new window")
	assert.True(t, d.Observe(0, 0, 6.01))
}
