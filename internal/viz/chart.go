// Package viz renders computed trajectories in the terminal: static ascii
// charts and an interactive flight replay.
package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/ballistics/internal/export"
)

// DropChart plots bullet path height against the row index.
func DropChart(rows []export.Row, width, height int) string {
	if len(rows) < 2 {
		return "(not enough data)"
	}
	series := make([]float64, len(rows))
	for i, r := range rows {
		series[i] = r.HeightIn
	}
	caption := fmt.Sprintf("height (in) over %.0f yd", rows[len(rows)-1].RangeYd)
	return asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// VelocityChart plots remaining velocity against the row index.
func VelocityChart(rows []export.Row, width, height int) string {
	if len(rows) < 2 {
		return "(not enough data)"
	}
	series := make([]float64, len(rows))
	for i, r := range rows {
		series[i] = r.VelocityFPS
	}
	caption := fmt.Sprintf("velocity (fps) over %.0f yd", rows[len(rows)-1].RangeYd)
	return asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
