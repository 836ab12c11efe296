// Package frame holds the fixed-length pixel image pushed to the strip each tick.
package frame

import (
	"fmt"

	"github.com/coreman2200/proxiglow/internal/color"
)

// Frame is one full-strip image. Its length is fixed by New and never changes.
type Frame []color.RGB

func New(n int) Frame {
	if n <= 0 {
		panic(fmt.Sprintf("frame: invalid pixel count %d", n))
	}
	return make(Frame, n)
}

// Set writes pixel i. An index outside [0, len) is a programmer error.
func (f Frame) Set(i int, c color.RGB) {
	if i < 0 || i >= len(f) {
		panic(fmt.Sprintf("frame: pixel index %d out of range [0,%d)", i, len(f)))
	}
	f[i] = c
}

func (f Frame) Fill(c color.RGB) {
	for i := range f {
		f[i] = c
	}
}

func (f Frame) Clear() { f.Fill(color.Black) }

// Alternate fills even pixels with a and odd pixels with b.
func (f Frame) Alternate(a, b color.RGB) {
	for i := range f {
		if i%2 == 0 {
			f[i] = a
		} else {
			f[i] = b
		}
	}
}

// Bytes serializes to packed RGB, 3 bytes per pixel.
func (f Frame) Bytes(dst []byte) []byte {
	if cap(dst) < len(f)*3 {
		dst = make([]byte, len(f)*3)
	}
	dst = dst[:len(f)*3]
	for i, c := range f {
		dst[i*3+0] = c.R
		dst[i*3+1] = c.G
		dst[i*3+2] = c.B
	}
	return dst
}
