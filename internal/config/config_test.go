package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/proxiglow/internal/anim"
	"github.com/coreman2200/proxiglow/internal/color"
	"github.com/coreman2200/proxiglow/internal/frame"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "proxiglow.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 24, c.Strip.PixelCount)
	assert.Equal(t, 600*time.Second, c.Idle.Timeout.Duration)
	assert.Equal(t, 25, c.Idle.RequiredStableReadings)
	assert.Equal(t, 20*time.Millisecond, c.FrameInterval())
}

func TestLoadOverlaysDefaults(t *testing.T) {
	p := writeFile(t, `
strip:
  pixel_count: 60
  driver: sim
sensors:
  poll_interval: 250ms
  y_addr: 0x30
idle:
  timeout: 1.5
mapping:
  policy: palette
  palette: Harbor
fire:
  decay: [-5, -4, -3]
`)
	c, err := Load(p)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, 60, c.Strip.PixelCount)
	assert.Equal(t, "sim", c.Strip.Driver)
	assert.Equal(t, 1.0, c.Strip.Brightness, "untouched keys keep defaults")
	assert.Equal(t, 250*time.Millisecond, c.Sensors.PollInterval.Duration)
	assert.Equal(t, uint16(0x30), c.Sensors.YAddr)
	assert.Equal(t, 1500*time.Millisecond, c.Idle.Timeout.Duration)
	assert.Equal(t, [3]int{-5, -4, -3}, c.Fire.Decay)
	assert.Equal(t, 180, c.Sensors.MaxMM)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "sensors:\n  poll_interval: soon\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "fire:\n  decay: [1, 2]\n"))
	assert.Error(t, err)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	c := Default()
	c.Strip.PixelCount = 0
	c.Strip.Driver = "dmx"
	c.Sensors.PollInterval = D(10 * time.Millisecond)
	c.Mapping.Policy = "palette"
	c.Mapping.Palette = "nope"
	c.Attention.Animation = "strobe"
	c.Chase.Colors = []int{0x1000000}

	err := c.Validate()
	require.Error(t, err)
	for _, want := range []string{
		"strip.pixel_count", "strip.driver", "poll_interval", "mapping.palette",
		"attention.animation", "chase.colors[0]",
	} {
		assert.ErrorContains(t, err, want)
	}
}

func TestAnimOptions(t *testing.T) {
	c := Default()
	c.Fire.Decay = [3]int{-1, -2, -3}
	opts, err := c.AnimOptions()
	require.NoError(t, err)

	assert.Equal(t, color.Fire, opts.Fire.Base)
	assert.Equal(t, frame.Triple{-1, -2, -3}, opts.Fire.Decay)
	assert.Len(t, opts.Chase.Colors, 10)
	assert.Equal(t, color.MaxRed, opts.Chase.Colors[0])
	assert.Equal(t, color.RGB{R: 255, G: 255}, opts.Star.Color)
	assert.Equal(t, 4*time.Millisecond, opts.Lightning.LeaderStep)

	k, err := c.AttentionKind()
	require.NoError(t, err)
	assert.Equal(t, anim.KindLightning, k)

	assert.Equal(t, anim.FlashOptions{Color: color.White, Count: 3, On: 100 * time.Millisecond, Off: 100 * time.Millisecond}, opts.Flash)

	c.ShootingStar.Color = -1
	_, err = c.AnimOptions()
	assert.ErrorContains(t, err, "shooting_star.color")
}

func TestBaseColor(t *testing.T) {
	c := Default()
	rgb, err := c.BaseColor()
	require.NoError(t, err)
	assert.Equal(t, color.MaxRed, rgb)

	c.Mapping.BaseName = "Pantone485"
	require.NoError(t, c.Validate())
	rgb, err = c.BaseColor()
	require.NoError(t, err)
	assert.Equal(t, color.Pantone485, rgb)

	c.Mapping.BaseName = "mauve"
	assert.ErrorContains(t, c.Validate(), "mapping.base_name")
	_, err = c.BaseColor()
	assert.Error(t, err)
}

func TestScaler(t *testing.T) {
	s := Default().Scaler()
	assert.Equal(t, uint8(255), s.Scale(1))
	assert.Equal(t, uint8(0), s.Scale(180))
}

func TestDurationMarshal(t *testing.T) {
	v, err := D(1500 * time.Millisecond).MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, "1.5s", v)
}

func TestExampleMatchesDefaults(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "proxiglow.example.yaml"))
	require.NoError(t, err)
	require.NoError(t, c.Validate())
	assert.Equal(t, Default(), c)
}
