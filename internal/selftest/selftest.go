// Package selftest draws the boot patterns used to check a freshly wired strip.
package selftest

import (
	"fmt"
	"time"

	"github.com/coreman2200/proxiglow/internal/clock"
	"github.com/coreman2200/proxiglow/internal/color"
	"github.com/coreman2200/proxiglow/internal/led"
)

type Kind string

const (
	None       Kind = ""
	Channels   Kind = "rgbw_channels"
	IndexSweep Kind = "index_sweep"
	FlashOK    Kind = "flash_ok"
	FlashNotOK Kind = "flash_not_ok"
)

const (
	channelHold = 750 * time.Millisecond
	channelTail = 250 * time.Millisecond
	okHold      = 150 * time.Millisecond
	okTail      = 250 * time.Millisecond
	notOKHold   = 330 * time.Millisecond
	notOKTail   = 670 * time.Millisecond
	sweepHold   = 50 * time.Millisecond

	bootGap   = 800 * time.Millisecond
	bootAfter = 400 * time.Millisecond
)

var channelColors = []color.RGB{color.MaxRed, color.MaxGreen, color.MaxBlue, color.White}

type Plan struct{ Kind Kind }

type Runner struct {
	plan Plan
	step int
}

func NewRunner(plan Plan) *Runner { return &Runner{plan: plan} }
func (r *Runner) Kind() Kind      { return r.plan.Kind }

// Step draws the next pattern frame into sink and returns how long it should
// stay up; false when complete.
func (r *Runner) Step(sink led.PixelSink) (time.Duration, bool) {
	var hold time.Duration
	switch r.plan.Kind {
	case Channels:
		switch {
		case r.step < len(channelColors):
			sink.Fill(channelColors[r.step])
			hold = channelHold
		case r.step == len(channelColors):
			sink.Fill(color.Black)
			hold = channelTail
		default:
			return 0, false
		}
	case IndexSweep:
		if r.step >= sink.Len() {
			return 0, false
		}
		sink.Fill(color.Black)
		sink.SetPixel(r.step, color.White)
		hold = sweepHold
	case FlashOK:
		var ok bool
		if hold, ok = flash(sink, r.step, 2, color.MaxGreen, okHold, okTail); !ok {
			return 0, false
		}
	case FlashNotOK:
		var ok bool
		if hold, ok = flash(sink, r.step, 3, color.MaxRed, notOKHold, notOKTail); !ok {
			return 0, false
		}
	default:
		return 0, false
	}
	r.step++
	return hold, true
}

// flash alternates c and black n times, then holds black for tail.
func flash(sink led.PixelSink, step, n int, c color.RGB, hold, tail time.Duration) (time.Duration, bool) {
	switch {
	case step < 2*n:
		if step%2 == 0 {
			sink.Fill(c)
		} else {
			sink.Fill(color.Black)
		}
		return hold, true
	case step == 2*n:
		sink.Fill(color.Black)
		return tail, true
	default:
		return 0, false
	}
}

// Run plays each pattern to completion, showing every frame.
func Run(sink led.PixelSink, clk clock.Clock, kinds ...Kind) error {
	for _, k := range kinds {
		r := NewRunner(Plan{Kind: k})
		for {
			hold, ok := r.Step(sink)
			if !ok {
				break
			}
			if err := sink.Show(); err != nil {
				return fmt.Errorf("selftest %s: %w", k, err)
			}
			clk.Sleep(hold)
		}
	}
	return nil
}

// Boot is the power-on sequence: every channel, a pause, then the OK flash.
func Boot(sink led.PixelSink, clk clock.Clock) error {
	if err := Run(sink, clk, Channels); err != nil {
		return err
	}
	clk.Sleep(bootGap)
	if err := Run(sink, clk, FlashOK); err != nil {
		return err
	}
	clk.Sleep(bootAfter)
	return nil
}
