// Command proxiglow drives an LED strip from two proximity sensors.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/coreman2200/proxiglow/internal/clock"
	"github.com/coreman2200/proxiglow/internal/diagnostics"
	"github.com/coreman2200/proxiglow/internal/fault"
	"github.com/coreman2200/proxiglow/internal/selftest"
)

var Version = "dev"

func main() {
	var (
		configPath string
		driver     string
		debug      bool
		patterns   []string
		from, to   uint16
	)

	rootCmd := &cobra.Command{
		Use:           "proxiglow",
		Short:         "Proximity-reactive LED strip controller",
		Long:          "proxiglow fades an addressable LED strip with the distance measured by two time-of-flight sensors and plays an attention animation when nobody has interacted with it for a while.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			setupLogging(debug)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "proxiglow.yaml", "path to the YAML config")
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "", "override strip.driver: spi | console | sim")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the controller until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), configPath, driver)
		},
	}

	selftestCmd := &cobra.Command{
		Use:   "selftest",
		Short: "Play test patterns on the strip and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSelftest(configPath, driver, patterns)
		},
	}
	selftestCmd.Flags().StringSliceVarP(&patterns, "pattern", "p",
		[]string{string(selftest.Channels), string(selftest.IndexSweep), string(selftest.FlashOK)},
		"patterns to play: rgbw_channels, index_sweep, flash_ok, flash_not_ok")

	readdressCmd := &cobra.Command{
		Use:   "readdress",
		Short: "Move a lone VL6180X to another I2C address until it loses power",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReaddress(configPath, driver, from, to, cmd.Flags().Changed("to"))
		},
	}
	readdressCmd.Flags().Uint16Var(&from, "from", 0x29, "current address")
	readdressCmd.Flags().Uint16Var(&to, "to", 0x69, "new address (defaults to sensors.y_addr)")

	rootCmd.AddCommand(runCmd, selftestCmd, readdressCmd)
	rootCmd.RunE = runCmd.RunE

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("proxiglow failed")
		stop()
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
}

func run(ctx context.Context, configPath, driver string) error {
	cfg, err := loadConfig(configPath, driver, log.Logger)
	if err != nil {
		return err
	}
	diagnostics.Emit(log.Logger, diagnostics.Boot("proxiglow "+Version))

	if cfg.Strip.Driver != "sim" {
		if _, err := host.Init(); err != nil {
			return fmt.Errorf("host init: %w", err)
		}
	}
	strip, err := openStrip(cfg, log.Logger)
	if err != nil {
		return err
	}
	clk := clock.NewSystem()
	h := fault.New(strip, log.Logger)

	err = h.Guard(func() error {
		if cfg.Boot.SelfTest {
			if err := selftest.Boot(strip, clk); err != nil {
				return err
			}
		}
		reader, err := openSensors(cfg, clk, log.Logger)
		if err != nil {
			return err
		}
		ctrl, err := newController(cfg, strip, reader, clk, log.Logger)
		if err != nil {
			return err
		}
		log.Info().Msg("initialization complete")
		return ctrl.Run(ctx)
	})

	if h.Halted() {
		// the fault pattern stays up until someone stops the process
		log.Error().Msg("halted; waiting for a signal")
		<-ctx.Done()
		return err
	}
	if cerr := strip.Close(); cerr != nil {
		log.Warn().Err(cerr).Msg("closing strip")
	}
	if errors.Is(err, context.Canceled) {
		log.Info().Msg("shutting down")
		return nil
	}
	return err
}

func runSelftest(configPath, driver string, patterns []string) error {
	cfg, err := loadConfig(configPath, driver, log.Logger)
	if err != nil {
		return err
	}
	if cfg.Strip.Driver != "sim" {
		if _, err := host.Init(); err != nil {
			return fmt.Errorf("host init: %w", err)
		}
	}
	strip, err := openStrip(cfg, log.Logger)
	if err != nil {
		return err
	}
	defer strip.Close()

	kinds := make([]selftest.Kind, 0, len(patterns))
	for _, p := range patterns {
		kinds = append(kinds, selftest.Kind(p))
	}
	log.Info().Strs("patterns", patterns).Int("pixels", strip.Len()).Msg("self test")
	return selftest.Run(strip, clock.NewSystem(), kinds...)
}

func runReaddress(configPath, driver string, from, to uint16, toSet bool) error {
	cfg, err := loadConfig(configPath, driver, log.Logger)
	if err != nil {
		return err
	}
	if !toSet {
		to = cfg.Sensors.YAddr
	}
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("host init: %w", err)
	}
	bus, err := i2creg.Open(cfg.Sensors.I2CBus)
	if err != nil {
		return fmt.Errorf("open i2c bus %q: %w", cfg.Sensors.I2CBus, err)
	}
	defer bus.Close()
	return readdress(bus, from, to, log.Logger)
}
