package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreman2200/proxiglow/internal/color"
)

func TestFrameSetAndFill(t *testing.T) {
	f := New(4)
	f.Fill(color.MaxBlue)
	f.Set(3, color.MaxRed)
	assert.Equal(t, Frame{color.MaxBlue, color.MaxBlue, color.MaxBlue, color.MaxRed}, f)
	assert.Equal(t, []byte{0, 0, 255, 0, 0, 255, 0, 0, 255, 255, 0, 0}, f.Bytes(nil))

	assert.Panics(t, func() { f.Set(4, color.White) })
	assert.Panics(t, func() { f.Set(-1, color.White) })
	assert.Panics(t, func() { New(0) })
}

func TestFrameAlternate(t *testing.T) {
	f := New(5)
	f.Alternate(color.CrashRed, color.CrashYellow)
	for i, c := range f {
		if i%2 == 0 {
			assert.Equal(t, color.CrashRed, c)
		} else {
			assert.Equal(t, color.CrashYellow, c)
		}
	}
}

func TestBufferAddClampStore(t *testing.T) {
	b := NewBuffer(3)
	b[0] = Triple{2, 100, 255}
	b[1] = Triple{300, -5, 10}
	b.Add(Triple{-3, -3, -3})
	b.Clamp(0, 255)
	assert.Equal(t, Triple{0, 97, 252}, b[0])
	assert.Equal(t, Triple{255, 0, 7}, b[1])
	assert.Equal(t, Triple{0, 0, 0}, b[2])

	b.ScaleAt(0, 0.5)
	assert.Equal(t, Triple{0, 48, 126}, b[0])

	f := New(3)
	b.Store(f)
	assert.Equal(t, color.RGB{R: 0, G: 48, B: 126}, f[0])
	b.Reset()
	assert.Equal(t, Triple{}, b[1])
}
