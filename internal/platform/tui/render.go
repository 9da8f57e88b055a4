package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sand/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// RenderRows converts frame rows to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderRows(rows []string) string {
	var sb strings.Builder
	for y, row := range rows {
		if y > 0 {
			sb.WriteRune('\n')
		}
		renderRow(&sb, []rune(row))
	}
	return sb.String()
}

func renderRow(sb *strings.Builder, cells []rune) {
	var run strings.Builder
	for x := 0; x < len(cells); {
		startColor := core.GlyphColor(cells[x])

		run.Reset()
		for x < len(cells) && core.GlyphColor(cells[x]) == startColor {
			run.WriteRune(cells[x])
			x++
		}

		style, ok := colorStyles[startColor]
		if !ok {
			style = colorStyles[core.ColorDefault]
		}
		sb.WriteString(style.Render(run.String()))
	}
}

// renderStatus styles the status line, truncated to width.
func renderStatus(status string, failed bool, width int) string {
	if width > 0 {
		if r := []rune(status); len(r) > width {
			status = string(r[:width])
		}
	}
	if failed {
		return errorStyle.Render(status)
	}
	return statusStyle.Render(status)
}
