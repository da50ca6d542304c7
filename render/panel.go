package render

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/orbiter/engine"
)

// HelpLine lists the key bindings
const HelpLine = "+/- zoom  </> speed  p paths  r reset  space pause  g phantom  q quit"

// MetricsLines formats a snapshot as the metrics panel, one line per row
func MetricsLines(snap engine.Snapshot) []string {
	var flags []string
	if snap.Paused {
		flags = append(flags, "[paused]")
	}
	if snap.Phantom {
		flags = append(flags, "[phantom]")
	}

	header := fmt.Sprintf("t=%.1f d  %s  frames %d", snap.ElapsedDays(), snap.TimeScale, snap.Frames)
	if len(flags) > 0 {
		header += "  " + strings.Join(flags, " ")
	}

	lines := make([]string, 0, len(snap.Bodies)+1)
	lines = append(lines, header)
	for _, b := range snap.Bodies {
		if b.Anchor {
			lines = append(lines, fmt.Sprintf("%-8s anchor", b.Name))
			continue
		}
		lines = append(lines, fmt.Sprintf("%-8s v=%7.2f km/s  r=%10.1f Mm from %s  laps %d  path %d/%d",
			b.Name, b.Speed/1e3, b.Distance/1e6, b.Primary, b.Laps, b.PathSize, b.PathLimit))
	}
	return lines
}
