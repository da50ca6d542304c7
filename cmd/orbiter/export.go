package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/orbiter/parameter"
	"github.com/lixenwraith/orbiter/render"
)

func newExportCmd(c *cli) *cobra.Command {
	var flags headlessFlags
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Run headless and write the final frame as SVG",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.validate(); err != nil {
				return err
			}
			if out == "-" {
				return c.export(cmd.OutOrStdout(), flags)
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			if err := c.export(f, flags); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close output: %w", err)
			}
			c.logger.Info("SVG written", zap.String("file", out))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "orbits.svg", "output file, - for stdout")
	return cmd
}

func (c *cli) export(w io.Writer, flags headlessFlags) error {
	sim, err := c.newSimulation(c.cfg.Render.SVGWidth, c.cfg.Render.SVGHeight, 1, c.cfg.Trail.SVGThresholdPx)
	if err != nil {
		return err
	}
	if err := sim.Run(flags.days*parameter.Day, flags.frameMillis, nil); err != nil {
		return err
	}
	return render.WriteSVG(w, sim)
}
