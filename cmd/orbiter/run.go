package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/orbiter/audio"
	"github.com/lixenwraith/orbiter/parameter"
	"github.com/lixenwraith/orbiter/render"
)

func newRunCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the interactive terminal simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd)
		},
	}
	cmd.Flags().Int("fps", parameter.DefaultFPS, "target frames per second")
	return cmd
}

func (c *cli) run(cmd *cobra.Command) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			panic(r)
		}
	}()

	width, height := screen.Size()
	sim, err := c.newSimulation(width, height, c.cfg.Render.CellAspect, c.cfg.Trail.ThresholdPx)
	if err != nil {
		screen.Fini()
		return err
	}

	if c.cfg.Audio.Enabled {
		chime := audio.NewChime(c.logger.Named("audio"))
		if err := chime.Initialize(); err != nil {
			c.logger.Warn("Audio disabled", zap.Error(err))
		} else {
			defer chime.Close()
			sim.OnLap(chime.Listener())
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := render.NewApp(screen, sim, c.cfg.Render.FPS, nil, c.logger.Named("render"))
	if err := app.Run(ctx); err != nil {
		c.logger.Error("Simulation stopped", zap.Error(err))
		return err
	}
	c.logger.Info("Simulation finished", zap.Uint64("frames", sim.Frames()), zap.Float64("elapsed_days", sim.Elapsed()/parameter.Day))
	return nil
}
