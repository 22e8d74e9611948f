package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	usedCell = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("82")).
			Padding(0, 1)

	reservedCell = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("238")).
			Foreground(lipgloss.Color("242")).
			Padding(0, 1)

	MetricLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899"))
	MetricValue = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff")).Bold(true)

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	Diagnostic = red
)

// Summary renders "capacity N  used M" with metric styling.
func Summary(capacity, numUsed int) string {
	return MetricLabel.Render("capacity ") + MetricValue.Render(fmt.Sprint(capacity)) +
		MetricLabel.Render("  used ") + MetricValue.Render(fmt.Sprint(numUsed))
}

// UtilizationBar shows numUsed/capacity as a filled bar of the given width.
func UtilizationBar(numUsed, capacity, width int) string {
	if capacity <= 0 || width <= 0 {
		return ""
	}
	filled := numUsed * width / capacity
	filled = min(max(filled, 0), width)

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	percent := float64(numUsed) / float64(capacity)
	switch {
	case percent >= 1:
		return red.Render(bar)
	case percent > 0.5:
		return yellow.Render(bar)
	}
	return green.Render(bar)
}

// RenderSlots draws every slot as a cell, used slots highlighted, with the
// slot index under each cell.
func RenderSlots(slots []string, numUsed int) string {
	if len(slots) == 0 {
		return dim.Render("(no slots)")
	}

	cells := make([]string, len(slots))
	for i, s := range slots {
		style := reservedCell
		if i < numUsed {
			style = usedCell
		}
		cell := style.Render(s)
		idx := dim.Render(fmt.Sprint(i))
		cells[i] = lipgloss.JoinVertical(lipgloss.Center, cell, idx)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
