// Package render runs the main loop: poll the sensors, map proximity to a
// strip color, and hand over to an attention animation when nobody has
// interacted for a while.
package render

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/proxiglow/internal/anim"
	"github.com/coreman2200/proxiglow/internal/clock"
	"github.com/coreman2200/proxiglow/internal/color"
	"github.com/coreman2200/proxiglow/internal/diagnostics"
	"github.com/coreman2200/proxiglow/internal/frame"
	"github.com/coreman2200/proxiglow/internal/led"
	"github.com/coreman2200/proxiglow/internal/sensor"
)

type Mode int

const (
	ModeInteractive Mode = iota
	ModeAttention
)

func (m Mode) String() string {
	switch m {
	case ModeInteractive:
		return "interactive"
	case ModeAttention:
		return "attention"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

type Options struct {
	Scaler       sensor.Scaler
	Mapper       Mapper
	Gamma        *color.GammaLUT // nil leaves colors linear
	Limiter      Limiter
	PollInterval time.Duration
	IdleTimeout  time.Duration
	// RequiredStable is the number of identical consecutive polls that count as no interaction.
	RequiredStable int
	// AttentionDuration bounds the attention animation; endless ones run for exactly this long.
	AttentionDuration time.Duration
	FrameInterval     time.Duration
	// ReportEvery is the status report period; zero disables it.
	ReportEvery time.Duration
}

// Controller owns the frame and everything that decides what goes into it.
// It is single goroutine; attention animations block polling until done.
type Controller struct {
	opts      Options
	sink      led.PixelSink
	clk       clock.Clock
	sampler   *sensor.Sampler
	idle      *sensor.IdleDetector
	attention anim.Generator
	log       zerolog.Logger

	frame      frame.Frame
	mode       Mode
	color      color.RGB
	attentions int
	lastReport float64
	stats      Stats

	// Last holds the durations of the most recent tick in ms.
	Last struct {
		TickMS float64
		ShowMS float64
	}
}

func NewController(sink led.PixelSink, reader sensor.DistanceReader, clk clock.Clock, attention anim.Generator, opts Options, log zerolog.Logger) (*Controller, error) {
	if sink == nil || reader == nil || clk == nil || attention == nil {
		return nil, errors.New("render: sink, reader, clock and attention animation are required")
	}
	if sink.Len() <= 0 {
		return nil, fmt.Errorf("render: invalid pixel count %d", sink.Len())
	}
	if opts.Mapper == nil {
		opts.Mapper = Fade{Base: color.MaxRed}
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = 20 * time.Millisecond
	}
	if opts.AttentionDuration <= 0 {
		opts.AttentionDuration = 10 * time.Second
	}
	now := clk.Now()
	return &Controller{
		opts:       opts,
		sink:       sink,
		clk:        clk,
		sampler:    sensor.NewSampler(reader, opts.PollInterval),
		idle:       sensor.NewIdleDetector(opts.IdleTimeout, opts.RequiredStable, now),
		attention:  attention,
		log:        log.With().Str("component", "controller").Logger(),
		frame:      frame.New(sink.Len()),
		lastReport: now,
	}, nil
}

func (c *Controller) Mode() Mode                 { return c.mode }
func (c *Controller) Attentions() int            { return c.attentions }
func (c *Controller) Frame() frame.Frame         { return c.frame }
func (c *Controller) Color() color.RGB           { return c.color }
func (c *Controller) Stats() Stats               { return c.stats }
func (c *Controller) Sampler() *sensor.Sampler   { return c.sampler }
func (c *Controller) Idle() *sensor.IdleDetector { return c.idle }

// Tick runs one pass of the loop. Sensor faults and sink errors are returned
// unchanged for the fault boundary.
func (c *Controller) Tick() error {
	start := time.Now()
	now := c.clk.Now()

	if _, err := c.sampler.Poll(now); err != nil {
		return err
	}
	// every tick counts, between polls the last sample simply repeats
	x, y := c.sampler.X.MM, c.sampler.Y.MM
	if c.idle.Observe(x, y, now) {
		if err := c.RunAttention(); err != nil {
			return err
		}
	} else {
		c.color = c.correct(c.opts.Mapper.Map(c.opts.Scaler.Unit(x), c.opts.Scaler.Unit(y)))
		c.frame.Fill(c.color)
		c.opts.Limiter.Apply(c.frame)
		if err := c.show(); err != nil {
			return err
		}
	}

	c.Last.TickMS = ms(time.Since(start))
	c.stats.Observe(time.Since(start))
	c.maybeReport()
	return nil
}

// RunAttention plays the attention animation to completion, then rearms the
// idle detector. Endless animations stop after AttentionDuration.
func (c *Controller) RunAttention() error {
	c.mode = ModeAttention
	c.attentions++
	c.attention.Reset()
	start := c.clk.Now()
	limit := c.opts.AttentionDuration.Seconds()
	c.log.Info().
		Str("animation", c.attention.Kind().String()).
		Int("count", c.attentions).
		Int("stable", c.idle.StableCount()).
		Msg("no interaction, grabbing attention")

	frames := 0
	for {
		step := c.attention.Next(c.frame, c.clk.Now())
		c.opts.Limiter.Apply(c.frame)
		if err := c.show(); err != nil {
			return err
		}
		frames++
		hold := step.Hold
		if hold <= 0 {
			hold = c.opts.FrameInterval
		}
		c.clk.Sleep(hold)
		if step.Done || c.clk.Now()-start >= limit {
			break
		}
	}

	now := c.clk.Now()
	c.mode = ModeInteractive
	c.idle.Rearm(now)
	c.log.Debug().Int("frames", frames).Float64("seconds", now-start).Msg("attention done")
	return nil
}

// Run ticks until ctx is done or a tick fails, sleeping out the rest of each
// frame interval. Cancellation is only observed between ticks.
func (c *Controller) Run(ctx context.Context) error {
	c.log.Info().
		Int("pixels", len(c.frame)).
		Dur("frame_interval", c.opts.FrameInterval).
		Str("attention", c.attention.Kind().String()).
		Msg("controller running")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		t := c.clk.Now()
		if err := c.Tick(); err != nil {
			return fmt.Errorf("tick: %w", err)
		}
		elapsed := time.Duration((c.clk.Now() - t) * float64(time.Second))
		if delta := c.opts.FrameInterval - elapsed; delta > 0 {
			c.clk.Sleep(delta)
		}
	}
}

func (c *Controller) correct(rgb color.RGB) color.RGB {
	if c.opts.Gamma == nil {
		return rgb
	}
	return c.opts.Gamma.Correct(rgb)
}

type frameDrawer interface{ Draw(frame.Frame) }

func (c *Controller) show() error {
	start := time.Now()
	if d, ok := c.sink.(frameDrawer); ok {
		d.Draw(c.frame)
	} else {
		for i, px := range c.frame {
			c.sink.SetPixel(i, px)
		}
	}
	err := c.sink.Show()
	c.Last.ShowMS = ms(time.Since(start))
	return err
}

func (c *Controller) maybeReport() {
	if c.opts.ReportEvery <= 0 {
		return
	}
	now := c.clk.Now()
	if now-c.lastReport < c.opts.ReportEvery.Seconds() {
		return
	}
	c.lastReport = now
	diagnostics.Emit(c.log, c.Report())
	c.stats.Reset()
}

// Report is the periodic status record: readings, idle state and tick timing.
func (c *Controller) Report() diagnostics.Diagnostic {
	return diagnostics.Diagnostic{
		Severity: diagnostics.Info,
		Code:     "status",
		Summary:  "status",
		Evidence: map[string]any{
			"x_mm":        c.sampler.X.MM,
			"y_mm":        c.sampler.Y.MM,
			"color":       c.color.String(),
			"mode":        c.mode.String(),
			"idle":        c.idle.State().String(),
			"stable":      c.idle.StableCount(),
			"timed_out":   c.idle.TimedOut(c.clk.Now()),
			"attentions":  c.attentions,
			"polls":       c.sampler.Polls(),
			"ticks":       c.stats.N,
			"tick_min_ms": ms(c.stats.Min),
			"tick_avg_ms": ms(c.stats.Avg()),
			"tick_max_ms": ms(c.stats.Max),
		},
	}
}
