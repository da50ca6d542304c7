package render

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"math"

	"github.com/lixenwraith/orbiter/engine"
)

const (
	svgBackground = "#1a1b26"
	svgTrailWidth = 1.0
	svgMinRadius  = 1.5
)

// WriteSVG draws the current bodies and trails, the simulation mapper defines the canvas
// Trails use ScaleX/ScaleY through RenderPath, radii use LengthX
func WriteSVG(w io.Writer, sim *engine.Simulation) error {
	m := sim.Mapper
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		m.Width(), m.Height(), m.Width(), m.Height())
	fmt.Fprintf(bw, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", svgBackground)

	if sim.PathsVisible() {
		for i, path := range sim.Paths {
			if sim.System.Primary(i) < 0 || path.IsEmpty() {
				continue
			}
			d := path.RenderPath(m.ScaleX, m.ScaleY)
			fmt.Fprintf(bw, `  <path d="%s" fill="none" stroke="%s" stroke-width="%g" stroke-opacity="0.6"/>`+"\n",
				d, svgColor(sim.System.Meta[i].Color), svgTrailWidth)
		}
	}

	for i := range sim.System.Bodies {
		b := &sim.System.Bodies[i]
		meta := sim.System.Meta[i]
		r := math.Max(svgMinRadius, m.LengthX(b.Radius))
		fmt.Fprintf(bw, `  <circle cx="%s" cy="%s" r="%s" fill="%s"><title>%s</title></circle>`+"\n",
			num(m.ScaleX(b.Position.X)), num(m.ScaleY(b.Position.Y)), num(r),
			svgColor(meta.Color), html.EscapeString(meta.Name))
	}

	fmt.Fprintln(bw, "</svg>")
	return bw.Flush()
}

// svgColor normalizes a body color to #rrggbb, white when missing
func svgColor(hex string) string {
	c, ok := ParseColor(hex)
	if !ok {
		return "#ffffff"
	}
	return c.Clamped().Hex()
}

func num(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
