package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type tableController interface {
	NextColumn()
	PrevColumn()
	JumpToColumn(number int) bool
	SortActiveColumn(desc bool)
	HideActiveColumn() bool
	ShowAllColumns()
	FilterBySelectedValue() bool
	ClearFilter() bool
	TableMeta() string
	Prefs() TablePrefs
}

func formatHeaderLabel(label string) string {
	return strings.ToUpper(label)
}

func renderActiveHeaderLabel(label string) string {
	return lipgloss.NewStyle().Underline(true).Render(label)
}

func tableSeparatorWidth() int {
	return 1
}

func renderTableRow(cells []string, widths []int, style lipgloss.Style) string {
	var parts []string
	for i, cell := range cells {
		if i >= len(widths) {
			continue
		}
		if i > 0 {
			parts = append(parts, style.Render(strings.Repeat(" ", tableSeparatorWidth())))
		}
		parts = append(parts, style.Width(widths[i]).MaxWidth(widths[i]).Render(cell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, parts...)
}

func renderTableDivider(widths []int) string {
	total := 0
	for _, w := range widths {
		total += w
	}
	if len(widths) > 1 {
		total += (len(widths) - 1) * tableSeparatorWidth()
	}
	return lipgloss.NewStyle().Foreground(ColorMuted).Render(strings.Repeat("─", total))
}

func renderField(label, value string) string {
	if value == "" {
		value = "—"
	}
	return LabelStyle.Render(label+":") + " " + NormalRowStyle.Render(value)
}
