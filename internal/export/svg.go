package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/dynarray/internal/script"
)

const (
	capacityStroke = "#00ccff"
	usedStroke     = "#00ff88"
)

// TraceToSVG draws capacity and used count per snapshot as two step lines.
func TraceToSVG(snaps []script.Snapshot, width, height int) string {
	if len(snaps) < 2 {
		return ""
	}

	peak := 1
	for _, s := range snaps {
		peak = max(peak, s.Capacity)
	}

	xOf := func(i int) float64 {
		return float64(i) / float64(len(snaps)-1) * float64(width)
	}
	yOf := func(v int) float64 {
		return float64(height) - float64(v)/float64(peak)*float64(height)*0.9
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	series := []struct {
		stroke string
		value  func(script.Snapshot) int
	}{
		{capacityStroke, func(s script.Snapshot) int { return s.Capacity }},
		{usedStroke, func(s script.Snapshot) int { return s.NumUsed }},
	}
	for _, ser := range series {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, ser.stroke))
		for i, s := range snaps {
			x, y := xOf(i), yOf(ser.value(s))
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
				continue
			}
			// horizontal then vertical so each step reads as a plateau
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f L%.1f,%.1f", x, yOf(ser.value(snaps[i-1])), x, y))
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SlotsToSVG draws one box per slot, filled for used slots.
func SlotsToSVG(slots []string, numUsed int, cell float64) string {
	width := float64(len(slots)) * cell
	height := cell * 1.5

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i, s := range slots {
		fill := "#1a1a2a"
		if i < numUsed {
			fill = "#004422"
		}
		x := float64(i) * cell
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="0" width="%.1f" height="%.1f" fill="%s" stroke="#444466"/>
`, x, cell, cell, fill))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="#ffffff" font-size="%.1f" text-anchor="middle">%s</text>
`, x+cell/2, cell*0.6, cell*0.35, html.EscapeString(s)))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="#666688" font-size="%.1f" text-anchor="middle">%d</text>
`, x+cell/2, cell*1.35, cell*0.25, i))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
