package main

import (
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/orbiter/engine"
	"github.com/lixenwraith/orbiter/parameter"
	"github.com/lixenwraith/orbiter/render"
)

// headlessFlags are shared by the commands that run without a terminal
type headlessFlags struct {
	days        float64
	frameMillis float64
}

func (f *headlessFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64VarP(&f.days, "days", "d", 365, "simulated days to run")
	cmd.Flags().Float64Var(&f.frameMillis, "frame-ms", parameter.MaxFrameDeltaMillis, "wall clock milliseconds per frame")
}

func (f *headlessFlags) validate() error {
	if !(f.days > 0) {
		return fmt.Errorf("days must be positive, got %v", f.days)
	}
	if !(f.frameMillis > 0) {
		return fmt.Errorf("frame-ms must be positive, got %v", f.frameMillis)
	}
	return nil
}

func newSimulateCmd(c *cli) *cobra.Command {
	var flags headlessFlags
	var height int
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run headless and print metrics with distance plots",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.validate(); err != nil {
				return err
			}
			if height < 1 {
				return fmt.Errorf("plot-height must be at least 1, got %d", height)
			}
			return c.simulate(cmd.OutOrStdout(), flags, height)
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&height, "plot-height", 10, "rows per distance plot")
	return cmd
}

func (c *cli) simulate(out io.Writer, flags headlessFlags, plotHeight int) error {
	sim, err := c.newSimulation(c.cfg.Render.SVGWidth, c.cfg.Render.SVGHeight, 1, c.cfg.Trail.SVGThresholdPx)
	if err != nil {
		return err
	}

	// Distance to primary per body, in megameters
	series := make([][]float64, sim.System.Len())
	sample := func(s *engine.Simulation) {
		for i, m := range s.Snapshot().Bodies {
			if !m.Anchor {
				series[i] = append(series[i], m.Distance/1e6)
			}
		}
	}
	sample(sim)
	if err := sim.Run(flags.days*parameter.Day, flags.frameMillis, sample); err != nil {
		return err
	}

	snap := sim.Snapshot()
	for _, line := range render.MetricsLines(snap) {
		fmt.Fprintln(out, line)
	}
	for i, m := range snap.Bodies {
		if m.Anchor || len(series[i]) == 0 {
			continue
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(series[i],
			asciigraph.Height(plotHeight),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("%s distance to %s (Mm)", m.Name, m.Primary)),
		))
	}
	return nil
}
