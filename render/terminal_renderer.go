package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/orbiter/engine"
	"github.com/lixenwraith/orbiter/physics"
	"github.com/lixenwraith/orbiter/viewport"
)

const (
	glyphBody    = '█'
	glyphSmall   = '●'
	glyphTrail   = '·'
	glyphPhantom = '+'
)

// bodyStyle caches per-body styles, colors never change during a run
type bodyStyle struct {
	body  tcell.Style
	trail tcell.Style
}

// TerminalRenderer draws a simulation onto a tcell screen whose cells are the mapper's display units
type TerminalRenderer struct {
	screen tcell.Screen
	styles []bodyStyle
	base   tcell.Style
}

// NewTerminalRenderer creates a renderer for bodies described by meta
func NewTerminalRenderer(screen tcell.Screen, meta []physics.Meta) *TerminalRenderer {
	base := tcell.StyleDefault.Background(RgbBackground)
	r := &TerminalRenderer{
		screen: screen,
		styles: make([]bodyStyle, len(meta)),
		base:   base,
	}
	for i, m := range meta {
		r.styles[i] = bodyStyle{
			body:  base.Foreground(BodyColor(m.Color)),
			trail: base.Foreground(TrailColor(m.Color)),
		}
	}
	return r
}

// RenderFrame renders the entire frame
func (r *TerminalRenderer) RenderFrame(sim *engine.Simulation, snap engine.Snapshot) {
	r.screen.SetStyle(r.base)
	r.screen.Clear()

	if sim.PathsVisible() {
		r.drawTrails(sim)
	}
	r.drawBodies(sim)
	if sim.PhantomEnabled() {
		r.drawPhantom(sim)
	}
	r.drawPanel(snap)
	r.drawHelp()

	r.screen.Show()
}

// drawTrails connects consecutive path points, the live point included
func (r *TerminalRenderer) drawTrails(sim *engine.Simulation) {
	m := sim.Mapper
	for i, path := range sim.Paths {
		if sim.System.Primary(i) < 0 {
			continue
		}
		style := r.styles[i].trail

		first := true
		var px, py int
		for p := range path.Points() {
			x, y := cell(m.ScaleX(p.X)), cell(m.ScaleY(p.Y))
			if !first && r.nearScreen(px, py) && r.nearScreen(x, y) {
				Line(px, py, x, y, func(cx, cy int) {
					r.set(cx, cy, glyphTrail, style)
				})
			}
			px, py, first = x, y, false
		}
	}
}

// drawBodies fills each body's ellipse in cells, never smaller than one cell
func (r *TerminalRenderer) drawBodies(sim *engine.Simulation) {
	m := sim.Mapper
	for i := range sim.System.Bodies {
		b := &sim.System.Bodies[i]
		cx, cy := m.ScaleX(b.Position.X), m.ScaleY(b.Position.Y)
		r.fillBody(m, cx, cy, b.Radius, r.styles[i].body)
	}
}

func (r *TerminalRenderer) fillBody(m *viewport.Mapper, cx, cy, radius float64, style tcell.Style) {
	rx := m.LengthX(radius)
	ry := rx / m.PixelAspect()
	centerX, centerY := cell(cx), cell(cy)

	if rx < 1 || ry < 0.5 {
		r.set(centerX, centerY, glyphSmall, style)
		return
	}

	w, h := r.screen.Size()
	minX, maxX := max(0, cell(cx-rx)), min(w-1, cell(cx+rx))
	minY, maxY := max(0, cell(cy-ry)), min(h-1, cell(cy+ry))
	for y := minY; y <= maxY; y++ {
		dy := (float64(y) + 0.5 - cy) / ry
		for x := minX; x <= maxX; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			if dx*dx+dy*dy <= 1 {
				r.screen.SetContent(x, y, glyphBody, nil, style)
			}
		}
	}
	r.set(centerX, centerY, glyphBody, style)
}

func (r *TerminalRenderer) drawPhantom(sim *engine.Simulation) {
	p := sim.Phantom().Position
	px, py := sim.Mapper.ScaleX(p.X), sim.Mapper.ScaleY(p.Y)
	if !sim.Mapper.Visible(px, py) {
		return
	}
	r.set(cell(px), cell(py), glyphPhantom, r.base.Foreground(RgbPhantom))
}

func (r *TerminalRenderer) drawPanel(snap engine.Snapshot) {
	style := r.base.Foreground(RgbStatusBar)
	for row, line := range MetricsLines(snap) {
		if row == 0 && snap.Paused {
			r.text(0, row, line, r.base.Foreground(RgbPaused))
			continue
		}
		r.text(0, row, line, style)
	}
}

func (r *TerminalRenderer) drawHelp() {
	_, h := r.screen.Size()
	r.text(0, h-1, HelpLine, r.base.Foreground(RgbHelpText))
}

func (r *TerminalRenderer) text(x, y int, s string, style tcell.Style) {
	w, _ := r.screen.Size()
	for _, ch := range s {
		if x >= w {
			return
		}
		r.set(x, y, ch, style)
		x++
	}
}

// set writes one cell, ignoring out of bounds positions
func (r *TerminalRenderer) set(x, y int, ch rune, style tcell.Style) {
	w, h := r.screen.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}

// nearScreen bounds trail segments so far off-screen points after zooming in do not walk millions of cells
func (r *TerminalRenderer) nearScreen(x, y int) bool {
	w, h := r.screen.Size()
	return x >= -w && x < 2*w && y >= -h && y < 2*h
}

// cell floors a display coordinate, clamped so float to int conversion stays defined
func cell(v float64) int {
	const limit = 1 << 30
	return int(math.Max(-limit, math.Min(limit, math.Floor(v))))
}
