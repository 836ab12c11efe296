package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManual(t *testing.T) {
	m := &Manual{}
	m.Sleep(250 * time.Millisecond)
	m.Sleep(-time.Second)
	m.Advance(time.Second)
	assert.InDelta(t, 1.25, m.Now(), 1e-9)
	assert.Equal(t, 250*time.Millisecond, m.Slept)
}

func TestSystemMonotonic(t *testing.T) {
	s := NewSystem()
	a := s.Now()
	s.Sleep(time.Millisecond)
	assert.GreaterOrEqual(t, s.Now(), a)
}
