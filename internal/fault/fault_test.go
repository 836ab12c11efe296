package fault

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/proxiglow/internal/led"
)

func newHandler(t *testing.T, n int) (*Handler, *led.Sim) {
	t.Helper()
	sim := led.NewSim(zerolog.Nop(), 8)
	s, err := led.NewStrip(n, sim, 1)
	require.NoError(t, err)
	return New(s, zerolog.Nop()), sim
}

func TestGuardPassesThrough(t *testing.T) {
	h, sim := newHandler(t, 4)
	require.NoError(t, h.Guard(func() error { return nil }))
	assert.ErrorIs(t, h.Guard(func() error { return fmt.Errorf("run: %w", context.Canceled) }), context.Canceled)
	assert.False(t, h.Halted())
	assert.Zero(t, sim.Count)
}

func TestGuardErrorShowsPatternOnceAndHalts(t *testing.T) {
	h, sim := newHandler(t, 5)
	boom := errors.New("sensor gone")
	assert.Equal(t, boom, h.Guard(func() error { return boom }))

	assert.True(t, h.Halted())
	assert.Equal(t, boom, h.Cause())
	assert.Equal(t, 1, h.Count)
	assert.Equal(t, 1, sim.Count)
	assert.Equal(t, []byte{106, 0, 0, 68, 68, 0, 106, 0, 0, 68, 68, 0, 106, 0, 0}, sim.Last)

	ran := false
	err := h.Guard(func() error { ran = true; return nil })
	assert.ErrorIs(t, err, ErrHalted)
	assert.False(t, ran)
	assert.Equal(t, 1, h.Count)
	assert.Equal(t, 1, sim.Count)
}

func TestGuardRecoversPanics(t *testing.T) {
	h, sim := newHandler(t, 2)
	err := h.Guard(func() error {
		var f []int
		_ = f[3]
		return nil
	})
	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	assert.NotEmpty(t, pe.Stack())
	assert.Contains(t, pe.Error(), "index out of range")
	assert.True(t, h.Halted())
	assert.Equal(t, 1, sim.Count)
}

func TestPanicErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	h, _ := newHandler(t, 1)
	err := h.Guard(func() error { panic(inner) })
	assert.ErrorIs(t, err, inner)
}

type panickySink struct{ led.PixelSink }

func (panickySink) Len() int { panic("sink unusable") }

func TestFaultPatternFailureIsContained(t *testing.T) {
	h := New(panickySink{}, zerolog.Nop())
	err := h.Guard(func() error { return errors.New("x") })
	assert.EqualError(t, err, "x")
	assert.True(t, h.Halted())

	h = New(nil, zerolog.Nop())
	assert.Error(t, h.Guard(func() error { return errors.New("y") }))
	assert.True(t, h.Halted())
}
