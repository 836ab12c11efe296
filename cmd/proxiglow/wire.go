package main

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"

	"github.com/coreman2200/proxiglow/internal/anim"
	"github.com/coreman2200/proxiglow/internal/clock"
	"github.com/coreman2200/proxiglow/internal/color"
	"github.com/coreman2200/proxiglow/internal/config"
	"github.com/coreman2200/proxiglow/internal/led"
	"github.com/coreman2200/proxiglow/internal/render"
	"github.com/coreman2200/proxiglow/internal/sensor"
)

// loadConfig falls back to the defaults when path does not exist.
func loadConfig(path, driver string, log zerolog.Logger) (*config.Config, error) {
	cfg, err := config.Load(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Warn().Str("path", path).Msg("config not found; using defaults")
		cfg = config.Default()
	case err != nil:
		return nil, err
	}
	if driver != "" {
		cfg.Strip.Driver = driver
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s:\n%w", path, err)
	}
	return cfg, nil
}

func openStrip(cfg *config.Config, log zerolog.Logger) (*led.Strip, error) {
	s := cfg.Strip
	drv, err := led.Open(s.Driver, s.SPIPort, s.PixelCount, physic.Frequency(s.SPIFreqKHz)*physic.KiloHertz, log)
	if err != nil {
		return nil, err
	}
	return led.NewStrip(s.PixelCount, drv, s.Brightness)
}

// openSensors opens both VL6180X sensors, or a simulated hand in sim mode.
func openSensors(cfg *config.Config, clk clock.Clock, log zerolog.Logger) (sensor.DistanceReader, error) {
	if cfg.Strip.Driver == "sim" {
		log.Info().Msg("simulated sensors")
		return simHand(clk, 30), nil
	}
	bus, err := i2creg.Open(cfg.Sensors.I2CBus)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", cfg.Sensors.I2CBus, err)
	}
	x, err := sensor.NewVL6180X(bus, cfg.Sensors.XAddr)
	if err != nil {
		_ = bus.Close()
		return nil, &sensor.SensorFaultError{Channel: sensor.ChannelX, Err: err}
	}
	y, err := sensor.NewVL6180X(bus, cfg.Sensors.YAddr)
	if err != nil {
		_ = bus.Close()
		return nil, &sensor.SensorFaultError{Channel: sensor.ChannelY, Err: err}
	}
	log.Info().Stringer("x", x).Stringer("y", y).Str("bus", bus.String()).Msg("sensors ready")
	return sensor.Pair{X: x, Y: y}, nil
}

// readdress moves the sensor answering at from to the address to.
func readdress(bus i2c.Bus, from, to uint16, log zerolog.Logger) error {
	if from == to {
		return fmt.Errorf("sensor already at %#x", to)
	}
	d, err := sensor.NewVL6180X(bus, from)
	if err != nil {
		return err
	}
	if err := d.SetAddress(to); err != nil {
		return err
	}
	log.Info().Str("from", fmt.Sprintf("%#x", from)).Stringer("sensor", d).Msg("sensor readdressed")
	return nil
}

// simHand waves in front of both sensors for active seconds, then leaves
// nothing in view so the idle timeout can run out.
func simHand(clk clock.Clock, active float64) sensor.ReaderFunc {
	return func(ch sensor.Channel) (int, error) {
		t := clk.Now()
		if t > active {
			return 255, nil
		}
		phase := 0.0
		if ch == sensor.ChannelY {
			phase = math.Pi / 2
		}
		return int(90 + 89*math.Sin(t+phase)), nil
	}
}

func newController(cfg *config.Config, sink led.PixelSink, reader sensor.DistanceReader, clk clock.Clock, log zerolog.Logger) (*render.Controller, error) {
	animOpts, err := cfg.AnimOptions()
	if err != nil {
		return nil, err
	}
	kind, err := cfg.AttentionKind()
	if err != nil {
		return nil, err
	}
	gen, err := anim.New(kind, sink.Len(), animOpts, rand.New(rand.NewSource(cfg.Render.Seed)))
	if err != nil {
		return nil, err
	}
	base, err := cfg.BaseColor()
	if err != nil {
		return nil, err
	}
	axis := sensor.ChannelX
	if strings.EqualFold(cfg.Mapping.Axis, "y") {
		axis = sensor.ChannelY
	}
	mapper, err := render.NewMapper(cfg.Mapping.Policy, base, axis, cfg.Mapping.Palette)
	if err != nil {
		return nil, err
	}
	var gamma *color.GammaLUT
	if cfg.Mapping.Gamma {
		gamma = color.Gamma22
	}
	return render.NewController(sink, reader, clk, gen, render.Options{
		Scaler:            cfg.Scaler(),
		Mapper:            mapper,
		Gamma:             gamma,
		Limiter:           render.Limiter{WhiteCap: cfg.Strip.WhiteCap, ChanMA: cfg.Strip.ChanMA, BudgetMA: cfg.Strip.BudgetMA},
		PollInterval:      cfg.Sensors.PollInterval.Duration,
		IdleTimeout:       cfg.Idle.Timeout.Duration,
		RequiredStable:    cfg.Idle.RequiredStableReadings,
		AttentionDuration: cfg.Attention.Duration.Duration,
		FrameInterval:     cfg.FrameInterval(),
		ReportEvery:       cfg.Render.ReportEvery.Duration,
	}, log)
}
