package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mealmate/internal/model"
)

// RenderHelp renders context-sensitive help footer.
func RenderHelp(screen model.Screen, mode model.Mode, width int) string {
	if mode == model.ModeInsert {
		return renderSearchInputHelp(width)
	}

	switch screen {
	case model.ScreenHome:
		return renderHomeHelp(width)
	case model.ScreenSearch, model.ScreenCategory, model.ScreenArea:
		return renderListingHelp(screen, width)
	case model.ScreenMealDetail:
		return renderMealDetailHelp(width)
	default:
		return renderDefaultHelp(width)
	}
}

func renderHomeHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("tab", "categories/areas"),
		helpKey("enter", "browse"),
		helpKey("o", "open meal"),
		helpKey("r", "another meal"),
		helpKey("i", "search"),
		helpKey("R", "reload"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func renderListingHelp(screen model.Screen, width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("enter", "details"),
		helpKey("tab", "next col"),
		helpKey("s/S", "sort"),
		helpKey("c/C", "hide/show col"),
		helpKey("n/N", "filter"),
	}
	if screen == model.ScreenSearch {
		keys = append(keys, helpKey("i", "edit search"))
	} else {
		keys = append(keys, helpKey("R", "reload"))
	}
	keys = append(keys, helpKey("h/esc", "back"))
	return renderHelpLine(keys, width)
}

func renderMealDetailHelp(width int) string {
	keys := []string{
		helpKey("j/k", "scroll"),
		helpKey("ctrl+d/u", "page"),
		helpKey("R", "reload"),
		helpKey("h/esc", "back"),
	}
	return renderHelpLine(keys, width)
}

func renderSearchInputHelp(width int) string {
	search := DefaultSearchKeyMap()
	keys := []string{
		helpKey(search.ToggleKind.Help().Key, search.ToggleKind.Help().Desc),
		helpKey(search.Results.Help().Key, search.Results.Help().Desc),
		helpKey(search.Cancel.Help().Key, search.Cancel.Help().Desc),
	}
	return renderHelpLine(keys, width)
}

func renderDefaultHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("h/l", "back/select"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	line := strings.Join(keys, "  ")
	return FooterStyle.Width(width).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(width, height int) string {
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	sections := []string{
		titleSection("Navigation"),
		helpSection([]helpItem{
			{"j / ↓", "Move down"},
			{"k / ↑", "Move up"},
			{"h / ← / esc", "Go back"},
			{"l / → / enter", "Open / select"},
			{"gg", "Jump to top"},
			{"G", "Jump to bottom"},
			{"ctrl+d / ctrl+u", "Half page down / up"},
			{"H", "Home"},
			{"i", "Search"},
			{"R", "Reload current screen"},
			{"q", "Quit"},
			{"?", "Toggle help"},
		}),
		titleSection("Home"),
		helpSection([]helpItem{
			{"tab", "Switch between categories and areas"},
			{"enter", "Browse meals of the selected entry"},
			{"o", "Open the random meal"},
			{"r", "Pick another random meal"},
		}),
		titleSection("Meal Tables"),
		helpSection([]helpItem{
			{"tab / shift+tab", "Cycle active column"},
			{"/ then 1-9", "Jump to column"},
			{"s / S", "Sort active column asc/desc"},
			{"c / C", "Hide active column / show all"},
			{"n / N", "Filter by selected value / clear"},
		}),
		titleSection("Search Input"),
		helpSection([]helpItem{
			{"ctrl+t", "Toggle name / ingredient search"},
			{"enter / ↓", "Search now and move to results"},
			{"esc", "Leave the input"},
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}
