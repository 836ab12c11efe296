package anim

import (
	"math"
	"math/rand"
	"time"

	"github.com/coreman2200/proxiglow/internal/color"
	"github.com/coreman2200/proxiglow/internal/frame"
)

type FireOptions struct {
	Base        color.RGB
	SparkCount  int
	Decay       frame.Triple
	Jitter      int
	SpiralDrift float64
	Interval    time.Duration
}

// Fire keeps a decaying ember buffer. The source is the last pixel; sparks
// land near it and cool as they get further away.
type Fire struct {
	opts   FireOptions
	rng    *rand.Rand
	buf    frame.Buffer
	sparks uint64
}

func NewFire(n int, opts FireOptions, rng *rand.Rand) *Fire {
	return &Fire{opts: opts, rng: rng, buf: frame.NewBuffer(n)}
}

func (f *Fire) Kind() Kind { return KindFire }

func (f *Fire) Reset() {
	f.buf.Reset()
	f.sparks = 0
}

// Buffer exposes the working ember state.
func (f *Fire) Buffer() frame.Buffer { return f.buf }

func (f *Fire) Next(dst frame.Frame, now float64) Step {
	n := len(f.buf)
	span := n / 8
	if span < 1 {
		span = 1
	}

	for s := 0; s < f.opts.SparkCount; s++ {
		// 1-sqrt(r) puts most sparks close to the source edge
		off := int((1 - math.Sqrt(f.rng.Float64())) * float64(span))
		if off >= span {
			off = span - 1
		}
		f.buf[n-1-off] = frame.Triple{
			f.jitter(f.opts.Base.R),
			f.jitter(f.opts.Base.G),
			f.jitter(f.opts.Base.B),
		}
		f.sparks++
	}

	f.buf.Add(f.opts.Decay)
	f.buf.Clamp(0, 255)

	for i := range f.buf {
		d := float64(n - 1 - i)
		vertical := 1 - d/float64(n)*0.5
		twinkle := 0.9 + 0.1*math.Sin(d*f.opts.SpiralDrift+now*2)
		f.buf.ScaleAt(i, math.Max(0, math.Min(1, vertical*twinkle)))
	}
	f.buf.Clamp(0, 255)

	f.buf.Store(dst)
	return Step{Hold: f.opts.Interval}
}

func (f *Fire) jitter(v uint8) int16 {
	j := f.opts.Jitter
	if j <= 0 {
		return int16(v)
	}
	return int16(color.ClampByte(int(v) + f.rng.Intn(2*j+1) - j))
}
