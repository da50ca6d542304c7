package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/orbiter/config"
	"github.com/lixenwraith/orbiter/engine"
	"github.com/lixenwraith/orbiter/observability"
	"github.com/lixenwraith/orbiter/parameter"
	"github.com/lixenwraith/orbiter/system"
	"github.com/lixenwraith/orbiter/viewport"
)

// version is set at build time
var version = "dev"

// cli carries state resolved once in PersistentPreRunE
type cli struct {
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

// flagBindings maps persistent flags onto config keys
var flagBindings = map[string]string{
	"system":     "system.file",
	"time-scale": "simulation.time_scale",
	"capacity":   "trail.capacity",
	"audio":      "audio.enabled",
	"log-level":  "logger.level",
	"log-file":   "logger.log_file",
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "orbiter",
		Short:         "Orbiter simulates a star system with circular-orbit initial conditions.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initialize(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			observability.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&c.cfgFile, "config", "c", "", "config file (default is ./orbiter.{toml,yaml,json})")
	pf.StringP("system", "s", "", "JSON system definition (default is the built-in Sun, Earth, Moon)")
	pf.Int("time-scale", parameter.DefaultTimeScaleIndex, "initial time scale preset index")
	pf.Int("capacity", parameter.PathCapacity, "trail points per body, a power of two")
	pf.Bool("audio", false, "chime on every completed orbit")
	pf.String("log-level", "info", "log level")
	pf.String("log-file", "", "rotated JSON log file")
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	root.AddCommand(newRunCmd(c), newSimulateCmd(c), newExportCmd(c))
	return root
}

// initialize resolves configuration and the logger; the terminal UI logs to file only
func (c *cli) initialize(cmd *cobra.Command) error {
	v, err := config.NewViper(c.cfgFile)
	if err != nil {
		return err
	}
	pf := cmd.Root().PersistentFlags()
	for name, key := range flagBindings {
		if err := v.BindPFlag(key, pf.Lookup(name)); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	if f := cmd.Flags().Lookup("fps"); f != nil {
		if err := v.BindPFlag("render.fps", f); err != nil {
			return fmt.Errorf("bind flag fps: %w", err)
		}
	}

	cfg, err := config.NewConfigFromViper(v)
	if err != nil {
		observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "orbiter"})
		return err
	}
	c.cfg = cfg

	if cmd.Name() == "run" {
		observability.InitializeForTerminal(cfg.Logger)
	} else {
		observability.InitializeLogger(cfg.Logger)
	}
	c.logger = observability.GetLogger()
	c.logger.Debug("Starting orbiter", zap.String("version", version), zap.String("command", cmd.Name()))
	return nil
}

// newSimulation loads the configured system onto a width x height viewport
func (c *cli) newSimulation(width, height int, aspect, thresholdPx float64) (*engine.Simulation, error) {
	sys, err := system.LoadSystem(c.cfg.System.File)
	if err != nil {
		return nil, err
	}

	mapper, err := viewport.New(width, height, c.cfg.Simulation.FieldWidthMeters)
	if err != nil {
		return nil, err
	}
	if err := mapper.SetPixelAspect(aspect); err != nil {
		return nil, err
	}
	mapper.SetMinFieldWidth(c.cfg.Simulation.MinFieldWidthMeters)

	return engine.NewSimulation(sys, mapper, c.cfg.EngineOptions(thresholdPx), c.logger.Named("engine"))
}
