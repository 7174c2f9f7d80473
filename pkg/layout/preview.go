package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// previewWidth is the character width of one button in a preview.
const previewWidth = 12

var (
	labelStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Preview renders doc as a terminal grid. Elements are laid out by their
// bounds, one text line per button row.
func Preview(doc *Document) string {
	var (
		lines []string
		row   []string
		rowY  = -1.0
	)
	flush := func() {
		if len(row) > 0 {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}

	lines = append(lines, titleStyle.Render(doc.Instrument))
	for _, el := range doc.Elements {
		if el.Kind == KindLabel {
			flush()
			lines = append(lines, labelStyle.Render(el.Text))
			continue
		}
		if el.Bounds.Y != rowY {
			flush()
			rowY = el.Bounds.Y
		}
		row = append(row, renderButton(el))
	}
	flush()
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderButton(el Element) string {
	width := previewWidth
	if el.Bounds.W < 1.0/Columns {
		width = 4
	}
	style := lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.NormalBorder())
	if el.Style != nil {
		style = style.
			Background(lipgloss.Color(el.Style.Fill)).
			Foreground(lipgloss.Color(el.Style.Stroke)).
			BorderForeground(lipgloss.Color(el.Style.Stroke))
	}
	return style.Render(truncate(el.Text, width))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n-1])) + "…"
}
