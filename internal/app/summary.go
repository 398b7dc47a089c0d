package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var summaryHeaders = []string{"#", "SIZE", "BYTES", "OFFSET", "FORMAT"}

// RenderSummary draws a bordered table with one row per icon image.
func RenderSummary(title string, entries []EntryInfo) string {
	rows := make([][]string, 0, len(entries))
	total := 0
	for _, e := range entries {
		rows = append(rows, []string{
			strconv.Itoa(e.Index),
			fmt.Sprintf("%dx%d", e.Width, e.Height),
			strconv.Itoa(e.Bytes),
			strconv.Itoa(e.Offset),
			e.Format,
		})
		total += e.Bytes
	}

	widths := make([]int, len(summaryHeaders))
	for i, h := range summaryHeaders {
		widths[i] = ansi.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], ansi.StringWidth(cell))
		}
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("117"))
	cellStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230"))
	footStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	lines := make([]string, 0, len(rows)+3)
	lines = append(lines, titleStyle.Render(title))
	lines = append(lines, renderRow(summaryHeaders, widths, headerStyle))
	for _, row := range rows {
		lines = append(lines, renderRow(row, widths, cellStyle))
	}
	lines = append(lines, footStyle.Render(fmt.Sprintf("%d images, %d payload bytes", len(rows), total)))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("245")).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
	return box + "\n"
}

// renderRow right-aligns numeric columns and left-aligns the format column.
func renderRow(cells []string, widths []int, style lipgloss.Style) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		pad := strings.Repeat(" ", max(0, widths[i]-ansi.StringWidth(cell)))
		if i == len(cells)-1 {
			parts[i] = style.Render(cell) + pad
		} else {
			parts[i] = pad + style.Render(cell)
		}
	}
	return strings.Join(parts, "  ")
}
