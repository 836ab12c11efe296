package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/proxiglow/internal/color"
)

// Duration reads "100ms" style strings, or plain numbers as seconds.
type Duration struct {
	time.Duration
}

func D(d time.Duration) Duration { return Duration{d} }

func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	switch n.ShortTag() {
	case "!!int", "!!float":
		var secs float64
		if err := n.Decode(&secs); err != nil {
			return err
		}
		d.Duration = time.Duration(secs * float64(time.Second))
		return nil
	}
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalYAML() (any, error) { return d.String(), nil }

type Strip struct {
	PixelCount int     `yaml:"pixel_count"`
	Brightness float64 `yaml:"brightness"`
	Driver     string  `yaml:"driver"` // "spi" | "console" | "sim"
	SPIPort    string  `yaml:"spi_port"`
	SPIFreqKHz int     `yaml:"spi_freq_khz"`
	// power limiting; budget_ma 0 disables it
	BudgetMA float64 `yaml:"budget_ma"`
	ChanMA   float64 `yaml:"chan_ma"`
	WhiteCap float64 `yaml:"white_cap"`
}

type Sensors struct {
	MinMM        int      `yaml:"min_mm"`
	MaxMM        int      `yaml:"max_mm"`
	Exponent     float64  `yaml:"exponent"`
	Invert       bool     `yaml:"invert"`
	PollInterval Duration `yaml:"poll_interval"`
	I2CBus       string   `yaml:"i2c_bus"`
	XAddr        uint16   `yaml:"x_addr"`
	YAddr        uint16   `yaml:"y_addr"`
}

type Idle struct {
	Timeout                Duration `yaml:"timeout"`
	RequiredStableReadings int      `yaml:"required_stable_readings"`
}

type Mapping struct {
	Policy    string `yaml:"policy"` // "fade" | "hue_value" | "palette"
	Axis      string `yaml:"axis"`   // fade axis, "x" | "y"
	BaseColor int    `yaml:"base_color"`
	// BaseName, when set, names the base color instead (e.g. "pantone485").
	BaseName string `yaml:"base_name"`
	Palette  string `yaml:"palette"`
	Gamma    bool   `yaml:"gamma"`
}

type Attention struct {
	Animation string   `yaml:"animation"`
	Duration  Duration `yaml:"duration"`
}

type Fire struct {
	BaseColor   int      `yaml:"base_color"`
	Sparks      int      `yaml:"sparks"`
	Decay       [3]int   `yaml:"decay"`
	Jitter      int      `yaml:"jitter"`
	SpiralDrift float64  `yaml:"spiral_drift"`
	Interval    Duration `yaml:"interval"`
}

type Lightning struct {
	LeaderStep Duration `yaml:"leader_step"`
	Pause      Duration `yaml:"pause"`
	StrokeMin  Duration `yaml:"stroke_min"`
	StrokeMax  Duration `yaml:"stroke_max"`
	FlickerMin Duration `yaml:"flicker_min"`
	FlickerMax Duration `yaml:"flicker_max"`
}

type Chase struct {
	Colors []int    `yaml:"colors"`
	Dwell  Duration `yaml:"dwell"`
}

type Rainbow struct {
	Steps int      `yaml:"steps"`
	Wait  Duration `yaml:"wait"`
	Wheel bool     `yaml:"wheel"`
}

type ShootingStar struct {
	Color     int      `yaml:"color"`
	Tail      int      `yaml:"tail"`
	TailDecay float64  `yaml:"tail_decay"`
	Delay     Duration `yaml:"delay"`
}

type Flash struct {
	Color int      `yaml:"color"`
	Count int      `yaml:"count"`
	On    Duration `yaml:"on"`
	Off   Duration `yaml:"off"`
}

type Render struct {
	FPS         int      `yaml:"fps"`
	ReportEvery Duration `yaml:"report_every"`
	Seed        int64    `yaml:"seed"`
}

type Boot struct {
	SelfTest bool `yaml:"self_test"`
}

type Config struct {
	Strip        Strip        `yaml:"strip"`
	Sensors      Sensors      `yaml:"sensors"`
	Idle         Idle         `yaml:"idle"`
	Mapping      Mapping      `yaml:"mapping"`
	Attention    Attention    `yaml:"attention"`
	Fire         Fire         `yaml:"fire"`
	Lightning    Lightning    `yaml:"lightning"`
	Chase        Chase        `yaml:"chase"`
	Rainbow      Rainbow      `yaml:"rainbow"`
	ShootingStar ShootingStar `yaml:"shooting_star"`
	Flash        Flash        `yaml:"flash"`
	Render       Render       `yaml:"render"`
	Boot         Boot         `yaml:"boot"`
}

// Default is the installation's stock setup: 24 pixels, two VL6180X sensors
// at 0x29/0x69, red fading in as a hand approaches, lightning after ten
// minutes without interaction.
func Default() *Config {
	return &Config{
		Strip: Strip{PixelCount: 24, Brightness: 1, Driver: "spi", SPIFreqKHz: 2500, ChanMA: 20, WhiteCap: 3},
		Sensors: Sensors{
			MinMM:        1,
			MaxMM:        180,
			Exponent:     2,
			Invert:       true,
			PollInterval: D(100 * time.Millisecond),
			XAddr:        0x29,
			YAddr:        0x69,
		},
		Idle:      Idle{Timeout: D(600 * time.Second), RequiredStableReadings: 25},
		Mapping:   Mapping{Policy: "fade", Axis: "x", BaseColor: 0xFF0000, Palette: "fireside", Gamma: true},
		Attention: Attention{Animation: "lightning", Duration: D(10 * time.Second)},
		Fire: Fire{
			BaseColor:   0xFF6600,
			Sparks:      3,
			Decay:       [3]int{-3, -3, -3},
			Jitter:      40,
			SpiralDrift: 0.3,
			Interval:    D(20 * time.Millisecond),
		},
		Lightning: Lightning{
			LeaderStep: D(4 * time.Millisecond),
			Pause:      D(80 * time.Millisecond),
			StrokeMin:  D(20 * time.Millisecond),
			StrokeMax:  D(90 * time.Millisecond),
			FlickerMin: D(15 * time.Millisecond),
			FlickerMax: D(70 * time.Millisecond),
		},
		Chase: Chase{
			Colors: []int{0xFF0000, 0xFF3200, 0xFF9600, 0x00FF00, 0x00FFFF, 0x0064FF, 0x3200FF, 0x660033, 0xFF00F0, 0xFFFFFF},
			Dwell:  D(5 * time.Millisecond),
		},
		Rainbow:      Rainbow{Steps: 255, Wait: D(30 * time.Millisecond)},
		ShootingStar: ShootingStar{Color: 0xFFFF00, Tail: 10, TailDecay: 0.6, Delay: D(50 * time.Millisecond)},
		Flash:        Flash{Color: 0xFFFFFF, Count: 3, On: D(100 * time.Millisecond), Off: D(100 * time.Millisecond)},
		Render:       Render{FPS: 50, ReportEvery: D(10 * time.Second), Seed: 1},
		Boot:         Boot{SelfTest: true},
	}
}

// Load reads path over the defaults, so a file only needs the keys it changes.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) { errs = append(errs, fmt.Errorf(format, args...)) }

	if c.Strip.PixelCount <= 0 {
		bad("strip.pixel_count must be positive, got %d", c.Strip.PixelCount)
	}
	if c.Strip.Brightness < 0 || c.Strip.Brightness > 1 {
		bad("strip.brightness must be in [0,1], got %g", c.Strip.Brightness)
	}
	switch c.Strip.Driver {
	case "spi", "console", "sim":
	default:
		bad("strip.driver must be spi, console or sim, got %q", c.Strip.Driver)
	}
	if c.Strip.BudgetMA < 0 || c.Strip.ChanMA < 0 || c.Strip.WhiteCap < 0 || c.Strip.WhiteCap > 3 {
		bad("strip power limits must not be negative and white_cap must be at most 3")
	}
	if c.Sensors.MaxMM <= c.Sensors.MinMM {
		bad("sensors.max_mm (%d) must exceed min_mm (%d)", c.Sensors.MaxMM, c.Sensors.MinMM)
	}
	if c.Sensors.Exponent < 0 {
		bad("sensors.exponent must not be negative")
	}
	if c.Sensors.PollInterval.Duration < 50*time.Millisecond {
		bad("sensors.poll_interval %s is faster than the 20 Hz the sensors allow", c.Sensors.PollInterval)
	}
	if c.Sensors.XAddr == c.Sensors.YAddr {
		bad("sensors.x_addr and y_addr must differ")
	}
	if c.Idle.Timeout.Duration <= 0 {
		bad("idle.timeout must be positive")
	}
	if c.Idle.RequiredStableReadings < 0 {
		bad("idle.required_stable_readings must not be negative")
	}
	switch c.Mapping.Policy {
	case "fade", "hue_value", "palette":
	default:
		bad("mapping.policy must be fade, hue_value or palette, got %q", c.Mapping.Policy)
	}
	switch strings.ToLower(c.Mapping.Axis) {
	case "x", "y":
	default:
		bad("mapping.axis must be x or y, got %q", c.Mapping.Axis)
	}
	checkHex := func(name string, v int) {
		if v < 0 || v > 0xFFFFFF {
			bad("%s %#x is not a 24-bit color", name, v)
		}
	}
	checkHex("mapping.base_color", c.Mapping.BaseColor)
	checkHex("fire.base_color", c.Fire.BaseColor)
	checkHex("shooting_star.color", c.ShootingStar.Color)
	checkHex("flash.color", c.Flash.Color)
	if c.Mapping.BaseName != "" {
		if _, err := color.Named(c.Mapping.BaseName); err != nil {
			bad("mapping.base_name: %v", err)
		}
	}
	for i, v := range c.Chase.Colors {
		checkHex(fmt.Sprintf("chase.colors[%d]", i), v)
	}
	if len(c.Chase.Colors) == 0 {
		bad("chase.colors must not be empty")
	}
	if c.Attention.Duration.Duration <= 0 {
		bad("attention.duration must be positive")
	}
	if c.Fire.Sparks < 0 || c.Fire.Jitter < 0 {
		bad("fire.sparks and fire.jitter must not be negative")
	}
	for _, v := range c.Fire.Decay {
		if v < -255 || v > 255 {
			bad("fire.decay %v must stay within [-255,255]", c.Fire.Decay)
			break
		}
	}
	if _, err := c.AttentionKind(); err != nil {
		bad("attention.animation: %v", err)
	}
	if c.Mapping.Policy == "palette" {
		if _, err := color.PaletteByName(c.Mapping.Palette); err != nil {
			bad("mapping.palette: %v", err)
		}
	}
	l := c.Lightning
	if l.StrokeMax.Duration < l.StrokeMin.Duration || l.FlickerMax.Duration < l.FlickerMin.Duration {
		bad("lightning max durations must not be below their minimums")
	}
	if c.Rainbow.Steps <= 0 {
		bad("rainbow.steps must be positive")
	}
	if c.ShootingStar.Tail < 0 || c.ShootingStar.TailDecay < 0 || c.ShootingStar.TailDecay > 1 {
		bad("shooting_star.tail must not be negative and tail_decay must be in [0,1]")
	}
	if c.Flash.Count < 1 {
		bad("flash.count must be at least 1")
	}
	if c.Render.FPS <= 0 {
		bad("render.fps must be positive")
	}
	return errors.Join(errs...)
}

// FrameInterval is the target time per interactive frame.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Render.FPS)
}
