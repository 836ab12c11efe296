// Package anim holds the procedural strip animations. Every animation is a
// Generator selected by Kind; the controller drives them one frame at a time.
package anim

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/coreman2200/proxiglow/internal/color"
	"github.com/coreman2200/proxiglow/internal/frame"
)

// Kind tags an animation type.
type Kind int

const (
	KindFire Kind = iota
	KindLightning
	KindChase
	KindRainbow
	KindShootingStar
	KindFlash
)

var kindNames = map[Kind]string{
	KindFire:         "fire",
	KindLightning:    "lightning",
	KindChase:        "chase",
	KindRainbow:      "rainbow",
	KindShootingStar: "shooting_star",
	KindFlash:        "flash",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a config name to its Kind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("anim: unknown animation %q", s)
}

// Step says how long the frame just produced should stay on the strip, and
// whether the sequence has finished.
type Step struct {
	Hold time.Duration
	Done bool
}

// Generator produces successive frames of one animation. State lives in the
// generator and is rebuilt by Reset.
type Generator interface {
	Kind() Kind
	Reset()
	Next(dst frame.Frame, now float64) Step
}

// Options carries the tunables of every animation.
type Options struct {
	Fire      FireOptions
	Lightning LightningOptions
	Chase     ChaseOptions
	Rainbow   RainbowOptions
	Star      StarOptions
	Flash     FlashOptions
}

func DefaultOptions() Options {
	return Options{
		Fire: FireOptions{
			Base:        color.Fire,
			SparkCount:  3,
			Decay:       frame.Triple{-3, -3, -3},
			Jitter:      40,
			SpiralDrift: 0.3,
			Interval:    20 * time.Millisecond,
		},
		Lightning: LightningOptions{
			LeaderStep: 4 * time.Millisecond,
			Pause:      80 * time.Millisecond,
			StrokeMin:  20 * time.Millisecond,
			StrokeMax:  90 * time.Millisecond,
			FlickerMin: 15 * time.Millisecond,
			FlickerMax: 70 * time.Millisecond,
		},
		Chase: ChaseOptions{
			Colors: []color.RGB{
				color.MaxRed, {R: 255, G: 50, B: 0}, {R: 255, G: 150, B: 0}, color.MaxGreen, {R: 0, G: 255, B: 255},
				{R: 0, G: 100, B: 255}, {R: 50, G: 0, B: 255}, {R: 102, G: 0, B: 51}, {R: 255, G: 0, B: 240}, color.White,
			},
			Dwell: 5 * time.Millisecond,
		},
		Rainbow: RainbowOptions{Steps: 255, Wait: 30 * time.Millisecond},
		Star: StarOptions{
			Color:     color.RGB{R: 255, G: 255},
			Tail:      10,
			TailDecay: 0.6,
			Delay:     50 * time.Millisecond,
		},
		Flash: FlashOptions{Color: color.White, Count: 3, On: 100 * time.Millisecond, Off: 100 * time.Millisecond},
	}
}

// New builds the generator for kind, sized for an n-pixel strip.
func New(kind Kind, n int, opts Options, rng *rand.Rand) (Generator, error) {
	if n <= 0 {
		return nil, fmt.Errorf("anim: invalid pixel count %d", n)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	switch kind {
	case KindFire:
		return NewFire(n, opts.Fire, rng), nil
	case KindLightning:
		return NewLightning(n, opts.Lightning, rng), nil
	case KindChase:
		return NewChase(n, opts.Chase)
	case KindRainbow:
		return NewRainbow(n, opts.Rainbow), nil
	case KindShootingStar:
		return NewShootingStar(n, opts.Star), nil
	case KindFlash:
		return NewFlash(opts.Flash), nil
	default:
		return nil, fmt.Errorf("anim: no generator for %s", kind)
	}
}

// uniform draws a duration in [lo, hi].
func uniform(rng *rand.Rand, lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(rng.Int63n(int64(hi-lo)+1))
}
