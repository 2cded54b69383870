package ui

import (
	"github.com/charmbracelet/lipgloss"

	"mealmate/internal/model"
	"mealmate/internal/util"
	"mealmate/internal/viewstate"
)

// ListingModel binds a ListingController to a meal table.
type ListingModel struct {
	screen     model.Screen
	subject    string
	controller *viewstate.ListingController
	watch      *watch[viewstate.ListingState]
	state      viewstate.ListingState
	table      *MealTableModel
}

// NewListingModel wraps controller for screen. subject names the category,
// area or query the listing shows.
func NewListingModel(screen model.Screen, subject string, controller *viewstate.ListingController, gen int, prefs TablePrefs) *ListingModel {
	table := NewMealTableModel(emptyListingMessage(screen))
	table.ApplyPrefs(prefs)
	return &ListingModel{
		screen:     screen,
		subject:    subject,
		controller: controller,
		watch:      newWatch(gen, controller.State()),
		state:      controller.State().Value(),
		table:      table,
	}
}

func emptyListingMessage(screen model.Screen) string {
	switch screen {
	case model.ScreenSearch:
		return "No meals. Press i and type a dish name or an ingredient."
	case model.ScreenCategory:
		return "No meals in this category."
	case model.ScreenArea:
		return "No meals from this area."
	}
	return "No meals."
}

func (m *ListingModel) setState(state viewstate.ListingState) {
	m.state = state
	m.table.SetRows(state.Results)
}

// View renders a one-line status above the table.
func (m *ListingModel) View(width, height int, spin string) string {
	var status string
	switch {
	case m.state.IsLoading:
		status = HelpDescStyle.Render(spin + " Loading meals…")
	case m.state.Error != "":
		status = ErrorStyle.Render(m.state.Error)
	default:
		status = HelpDescStyle.Render(util.FormatCount(len(m.state.Results), "result", "results"))
	}
	table := m.table.View(width, max(1, height-1))
	return lipgloss.JoinVertical(lipgloss.Left, status, table)
}

func (m *ListingModel) close() {
	m.watch.stop()
	m.controller.Close()
}
