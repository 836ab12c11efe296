package frame

import "github.com/coreman2200/proxiglow/internal/color"

// Triple is a signed working pixel, wide enough to go negative or past 255 between clamps.
type Triple [3]int16

// Buffer is a working copy of a frame for effects that accumulate across ticks.
type Buffer []Triple

func NewBuffer(n int) Buffer {
	return make(Buffer, n)
}

// Add offsets every pixel by d.
func (b Buffer) Add(d Triple) {
	for i := range b {
		b[i][0] += d[0]
		b[i][1] += d[1]
		b[i][2] += d[2]
	}
}

// Clamp bounds every channel to [lo, hi].
func (b Buffer) Clamp(lo, hi int16) {
	for i := range b {
		for ch := 0; ch < 3; ch++ {
			if b[i][ch] < lo {
				b[i][ch] = lo
			} else if b[i][ch] > hi {
				b[i][ch] = hi
			}
		}
	}
}

// ScaleAt multiplies pixel i by f, truncating toward zero.
func (b Buffer) ScaleAt(i int, f float64) {
	for ch := 0; ch < 3; ch++ {
		b[i][ch] = int16(float64(b[i][ch]) * f)
	}
}

// Reset zeroes the buffer.
func (b Buffer) Reset() {
	for i := range b {
		b[i] = Triple{}
	}
}

// Store copies the buffer into dst, clamping to byte range.
func (b Buffer) Store(dst Frame) {
	n := len(b)
	if len(dst) < n {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = color.RGB{
			R: color.ClampByte(int(b[i][0])),
			G: color.ClampByte(int(b[i][1])),
			B: color.ClampByte(int(b[i][2])),
		}
	}
}
