package anim

import (
	"errors"
	"math"
	"time"

	"github.com/coreman2200/proxiglow/internal/color"
	"github.com/coreman2200/proxiglow/internal/frame"
)

type ChaseOptions struct {
	Colors []color.RGB
	Dwell  time.Duration
}

// Chase lights one more pixel per step in the current color, painting over
// the previous sweep, and moves to the next color once the strip is covered.
type Chase struct {
	opts     ChaseOptions
	n        int
	colorIdx int
	cursor   int
}

func NewChase(n int, opts ChaseOptions) (*Chase, error) {
	if len(opts.Colors) == 0 {
		return nil, errors.New("anim: chase needs at least one color")
	}
	return &Chase{opts: opts, n: n}, nil
}

func (c *Chase) Kind() Kind { return KindChase }

func (c *Chase) Reset() {
	c.colorIdx = 0
	c.cursor = 0
}

func (c *Chase) Next(dst frame.Frame, _ float64) Step {
	if c.colorIdx >= len(c.opts.Colors) {
		return Step{Done: true}
	}
	cur := c.opts.Colors[c.colorIdx]
	prev := color.Black
	if c.colorIdx > 0 {
		prev = c.opts.Colors[c.colorIdx-1]
	}
	for i := range dst {
		if i <= c.cursor {
			dst[i] = cur
		} else {
			dst[i] = prev
		}
	}
	c.cursor++
	if c.cursor >= c.n {
		c.cursor = 0
		c.colorIdx++
	}
	return Step{Hold: c.opts.Dwell, Done: c.colorIdx >= len(c.opts.Colors)}
}

type RainbowOptions struct {
	Steps int
	Wait  time.Duration
	// Wheel uses the 0..255 color wheel instead of HSV hues.
	Wheel bool
}

// Rainbow spreads one full hue cycle along the strip and rotates it by one
// step per frame until it has come all the way around.
type Rainbow struct {
	opts  RainbowOptions
	n     int
	phase int
}

func NewRainbow(n int, opts RainbowOptions) *Rainbow {
	if opts.Steps <= 0 {
		opts.Steps = 255
	}
	return &Rainbow{opts: opts, n: n}
}

func (r *Rainbow) Kind() Kind { return KindRainbow }

func (r *Rainbow) Reset() { r.phase = 0 }

func (r *Rainbow) Next(dst frame.Frame, _ float64) Step {
	for i := range dst {
		if r.opts.Wheel {
			dst[i] = color.Wheel(uint8((i*256/r.n + r.phase) & 255))
			continue
		}
		hue := math.Mod(float64(i)*360/float64(r.n)+float64(r.phase)*360/float64(r.opts.Steps), 360)
		dst[i] = color.HSVToRGBOrBlack(hue, 1, 1)
	}
	r.phase++
	return Step{Hold: r.opts.Wait, Done: r.phase >= r.opts.Steps}
}

type StarOptions struct {
	Color     color.RGB
	Tail      int
	TailDecay float64
	Delay     time.Duration
}

// ShootingStar moves a bright head along the strip followed by a tail whose
// brightness falls off geometrically.
type ShootingStar struct {
	opts StarOptions
	n    int
	pos  int
	fade []float64
}

func NewShootingStar(n int, opts StarOptions) *ShootingStar {
	if opts.Tail < 0 {
		opts.Tail = 0
	}
	s := &ShootingStar{opts: opts, n: n, fade: make([]float64, opts.Tail+1)}
	for j := range s.fade {
		s.fade[j] = math.Pow(opts.TailDecay, float64(j))
	}
	return s
}

func (s *ShootingStar) Kind() Kind { return KindShootingStar }

func (s *ShootingStar) Reset() { s.pos = 0 }

func (s *ShootingStar) Next(dst frame.Frame, _ float64) Step {
	dst.Clear()
	if s.pos < s.n {
		dst[s.pos] = s.opts.Color
	}
	for j := 1; j <= s.opts.Tail; j++ {
		i := s.pos - j
		if i >= 0 && i < s.n {
			dst[i] = s.opts.Color.Scale(s.fade[j])
		}
	}
	s.pos++
	return Step{Hold: s.opts.Delay, Done: s.pos > s.n+s.opts.Tail}
}

type FlashOptions struct {
	Color color.RGB
	Count int
	On    time.Duration
	Off   time.Duration
}

// Flash blinks the whole strip Count times, ending dark.
type Flash struct {
	opts FlashOptions
	step int
}

func NewFlash(opts FlashOptions) *Flash {
	if opts.Count < 1 {
		opts.Count = 1
	}
	return &Flash{opts: opts}
}

func (f *Flash) Kind() Kind { return KindFlash }

func (f *Flash) Reset() { f.step = 0 }

func (f *Flash) Next(dst frame.Frame, _ float64) Step {
	if f.step >= 2*f.opts.Count {
		dst.Clear()
		return Step{Done: true}
	}
	on := f.step%2 == 0
	f.step++
	if on {
		dst.Fill(f.opts.Color)
		return Step{Hold: f.opts.On}
	}
	dst.Clear()
	return Step{Hold: f.opts.Off, Done: f.step >= 2*f.opts.Count}
}
