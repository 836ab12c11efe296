package anim

import (
	"math/rand"
	"time"

	"github.com/coreman2200/proxiglow/internal/color"
	"github.com/coreman2200/proxiglow/internal/frame"
)

type LightningOptions struct {
	LeaderStep time.Duration
	Pause      time.Duration
	StrokeMin  time.Duration
	StrokeMax  time.Duration
	FlickerMin time.Duration
	FlickerMax time.Duration
}

type lightningPhase int

const (
	phaseLeader lightningPhase = iota
	phasePause
	phaseStroke
	phaseFlicker
	phaseDone
)

// stroke counts 3..12 weighted 10..1, so short strikes are the common case
const (
	minStrokes  = 3
	maxStrokes  = 12
	strokeTotal = 55
)

// Lightning plays a leader sweep, a short pause, then a burst of main strokes.
type Lightning struct {
	opts LightningOptions
	rng  *rand.Rand

	phase   lightningPhase
	cursor  int
	tints   []color.RGB
	strokes int
	stroke  int
}

func NewLightning(n int, opts LightningOptions, rng *rand.Rand) *Lightning {
	return &Lightning{opts: opts, rng: rng, tints: make([]color.RGB, n)}
}

func (l *Lightning) Kind() Kind { return KindLightning }

func (l *Lightning) Reset() {
	l.phase = phaseLeader
	l.cursor = 0
	l.strokes = 0
	l.stroke = 0
}

// Strokes is the number of main strokes drawn for the current strike (0 until the pause).
func (l *Lightning) Strokes() int { return l.strokes }

func (l *Lightning) Next(dst frame.Frame, _ float64) Step {
	switch l.phase {
	case phaseLeader:
		l.tints[l.cursor] = l.leaderTint()
		dst.Clear()
		for i := 0; i <= l.cursor && i < len(dst); i++ {
			dst[i] = l.tints[i]
		}
		l.cursor++
		if l.cursor >= len(l.tints) {
			l.phase = phasePause
		}
		return Step{Hold: l.opts.LeaderStep}

	case phasePause:
		dst.Clear()
		l.strokes = l.strokeCount()
		l.stroke = 0
		l.phase = phaseStroke
		return Step{Hold: l.opts.Pause}

	case phaseStroke:
		dst.Fill(l.strokeColor())
		l.phase = phaseFlicker
		return Step{Hold: l.strokeDuration()}

	case phaseFlicker:
		dst.Clear()
		l.stroke++
		hold := uniform(l.rng, l.opts.FlickerMin, l.opts.FlickerMax)
		if l.stroke >= l.strokes {
			l.phase = phaseDone
			return Step{Hold: hold, Done: true}
		}
		l.phase = phaseStroke
		return Step{Hold: hold}

	default:
		dst.Clear()
		return Step{Done: true}
	}
}

func (l *Lightning) leaderTint() color.RGB {
	return color.RGB{
		R: uint8(20 + l.rng.Intn(41)),
		G: uint8(20 + l.rng.Intn(41)),
		B: uint8(60 + l.rng.Intn(51)),
	}
}

func (l *Lightning) strokeColor() color.RGB {
	return color.RGB{
		R: uint8(200 + l.rng.Intn(56)),
		G: uint8(200 + l.rng.Intn(56)),
		B: 255,
	}
}

func (l *Lightning) strokeCount() int {
	r := l.rng.Intn(strokeTotal)
	for n := minStrokes; n <= maxStrokes; n++ {
		w := maxStrokes - n + 1
		if r < w {
			return n
		}
		r -= w
	}
	return maxStrokes
}

// strokeDuration averages three uniform draws, a cheap bell curve.
func (l *Lightning) strokeDuration() time.Duration {
	var sum time.Duration
	for i := 0; i < 3; i++ {
		sum += uniform(l.rng, l.opts.StrokeMin, l.opts.StrokeMax)
	}
	return sum / 3
}
