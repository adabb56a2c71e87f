package export

import (
	"fmt"
	"os"
	"strings"
)

// SVG renders the drop curve (height vs range) as a standalone SVG path.
func SVG(rows []Row, width, height int, strokeColor string) string {
	if len(rows) < 2 {
		return ""
	}

	// Find bounds
	minX, maxX := rows[0].RangeYd, rows[0].RangeYd
	minY, maxY := rows[0].HeightIn, rows[0].HeightIn
	for _, r := range rows {
		if r.RangeYd < minX {
			minX = r.RangeYd
		}
		if r.RangeYd > maxX {
			maxX = r.RangeYd
		}
		if r.HeightIn < minY {
			minY = r.HeightIn
		}
		if r.HeightIn > maxY {
			maxY = r.HeightIn
		}
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, r := range rows {
		x := (r.RangeYd - minX) / rangeX * float64(width)
		y := float64(height) - (r.HeightIn-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// ExportSVG writes the drop curve to a file.
func ExportSVG(path string, rows []Row, width, height int) error {
	return os.WriteFile(path, []byte(SVG(rows, width, height, "#00ff00")), 0644)
}
