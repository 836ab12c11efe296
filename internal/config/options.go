package config

import (
	"fmt"

	"github.com/coreman2200/proxiglow/internal/anim"
	"github.com/coreman2200/proxiglow/internal/color"
	"github.com/coreman2200/proxiglow/internal/frame"
	"github.com/coreman2200/proxiglow/internal/sensor"
)

// Scaler builds the sensor response curve.
func (c *Config) Scaler() sensor.Scaler {
	return sensor.Scaler{
		Min:      c.Sensors.MinMM,
		Max:      c.Sensors.MaxMM,
		Invert:   c.Sensors.Invert,
		Exponent: c.Sensors.Exponent,
	}
}

// AttentionKind resolves attention.animation.
func (c *Config) AttentionKind() (anim.Kind, error) {
	return anim.ParseKind(c.Attention.Animation)
}

// AnimOptions converts the animation sections. Colors were range checked by
// Validate; a bad one here is still reported.
func (c *Config) AnimOptions() (anim.Options, error) {
	opts := anim.DefaultOptions()

	fire, err := color.HexToRGB(c.Fire.BaseColor)
	if err != nil {
		return opts, fmt.Errorf("fire.base_color: %w", err)
	}
	opts.Fire = anim.FireOptions{
		Base:        fire,
		SparkCount:  c.Fire.Sparks,
		Decay:       frame.Triple{int16(c.Fire.Decay[0]), int16(c.Fire.Decay[1]), int16(c.Fire.Decay[2])},
		Jitter:      c.Fire.Jitter,
		SpiralDrift: c.Fire.SpiralDrift,
		Interval:    c.Fire.Interval.Duration,
	}

	l := c.Lightning
	opts.Lightning = anim.LightningOptions{
		LeaderStep: l.LeaderStep.Duration,
		Pause:      l.Pause.Duration,
		StrokeMin:  l.StrokeMin.Duration,
		StrokeMax:  l.StrokeMax.Duration,
		FlickerMin: l.FlickerMin.Duration,
		FlickerMax: l.FlickerMax.Duration,
	}

	colors := make([]color.RGB, 0, len(c.Chase.Colors))
	for i, h := range c.Chase.Colors {
		rgb, err := color.HexToRGB(h)
		if err != nil {
			return opts, fmt.Errorf("chase.colors[%d]: %w", i, err)
		}
		colors = append(colors, rgb)
	}
	opts.Chase = anim.ChaseOptions{Colors: colors, Dwell: c.Chase.Dwell.Duration}

	opts.Rainbow = anim.RainbowOptions{Steps: c.Rainbow.Steps, Wait: c.Rainbow.Wait.Duration, Wheel: c.Rainbow.Wheel}

	star, err := color.HexToRGB(c.ShootingStar.Color)
	if err != nil {
		return opts, fmt.Errorf("shooting_star.color: %w", err)
	}
	opts.Star = anim.StarOptions{
		Color:     star,
		Tail:      c.ShootingStar.Tail,
		TailDecay: c.ShootingStar.TailDecay,
		Delay:     c.ShootingStar.Delay.Duration,
	}

	flash, err := color.HexToRGB(c.Flash.Color)
	if err != nil {
		return opts, fmt.Errorf("flash.color: %w", err)
	}
	opts.Flash = anim.FlashOptions{Color: flash, Count: c.Flash.Count, On: c.Flash.On.Duration, Off: c.Flash.Off.Duration}
	return opts, nil
}

// BaseColor is mapping.base_name when set, otherwise mapping.base_color.
func (c *Config) BaseColor() (color.RGB, error) {
	if c.Mapping.BaseName != "" {
		return color.Named(c.Mapping.BaseName)
	}
	rgb, err := color.HexToRGB(c.Mapping.BaseColor)
	if err != nil {
		return rgb, fmt.Errorf("mapping.base_color: %w", err)
	}
	return rgb, nil
}
