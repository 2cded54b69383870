package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mealmate/internal/model"
	"mealmate/internal/util"
	"mealmate/internal/viewstate"
)

type homePane int

const (
	paneCategories homePane = iota
	paneAreas
)

// HomeModel renders the random meal card and the category and area lists.
type HomeModel struct {
	controller *viewstate.HomeController
	watch      *watch[viewstate.HomeState]
	state      viewstate.HomeState

	pane       homePane
	catCursor  int
	areaCursor int
	listHeight int
}

// NewHomeModel wraps a started HomeController.
func NewHomeModel(controller *viewstate.HomeController, gen int) *HomeModel {
	return &HomeModel{
		controller: controller,
		watch:      newWatch(gen, controller.State()),
		state:      controller.State().Value(),
	}
}

func (m *HomeModel) setState(state viewstate.HomeState) {
	m.state = state
	m.catCursor = clampIndex(m.catCursor, len(state.Categories))
	m.areaCursor = clampIndex(m.areaCursor, len(state.Areas))
}

func (m *HomeModel) SwitchPane() {
	if m.pane == paneCategories {
		m.pane = paneAreas
		return
	}
	m.pane = paneCategories
}

func (m *HomeModel) MoveDown() {
	if m.pane == paneCategories {
		m.catCursor = clampIndex(m.catCursor+1, len(m.state.Categories))
		return
	}
	m.areaCursor = clampIndex(m.areaCursor+1, len(m.state.Areas))
}

func (m *HomeModel) MoveUp() {
	if m.pane == paneCategories {
		m.catCursor = clampIndex(m.catCursor-1, len(m.state.Categories))
		return
	}
	m.areaCursor = clampIndex(m.areaCursor-1, len(m.state.Areas))
}

func (m *HomeModel) JumpToTop() {
	if m.pane == paneCategories {
		m.catCursor = 0
		return
	}
	m.areaCursor = 0
}

func (m *HomeModel) JumpToBottom() {
	if m.pane == paneCategories {
		m.catCursor = clampIndex(len(m.state.Categories)-1, len(m.state.Categories))
		return
	}
	m.areaCursor = clampIndex(len(m.state.Areas)-1, len(m.state.Areas))
}

// Selection returns the screen and value for the highlighted list entry.
func (m *HomeModel) Selection() (model.Screen, string, bool) {
	if m.pane == paneCategories {
		if len(m.state.Categories) == 0 {
			return 0, "", false
		}
		return model.ScreenCategory, m.state.Categories[m.catCursor].Name, true
	}
	if len(m.state.Areas) == 0 {
		return 0, "", false
	}
	return model.ScreenArea, m.state.Areas[m.areaCursor].Name, true
}

// View renders the home screen.
func (m *HomeModel) View(width, height int, thumbs *thumbnails, spin string) string {
	cardWidth := max(40, width*45/100)
	listsWidth := max(20, width-cardWidth-4)
	m.listHeight = max(3, height-6)

	card := m.renderRandomCard(cardWidth, height-2, thumbs, spin)

	paneWidth := max(16, listsWidth/2-1)
	categories := make([]string, 0, len(m.state.Categories))
	for _, c := range m.state.Categories {
		categories = append(categories, c.Name)
	}
	areas := make([]string, 0, len(m.state.Areas))
	for _, a := range m.state.Areas {
		areas = append(areas, a.Name)
	}
	catPane := renderPickList("Categories", categories, m.catCursor, m.pane == paneCategories, paneWidth, m.listHeight)
	areaPane := renderPickList("Areas", areas, m.areaCursor, m.pane == paneAreas, paneWidth, m.listHeight)

	lists := lipgloss.JoinHorizontal(lipgloss.Top, catPane, " ", areaPane)
	body := lipgloss.JoinHorizontal(lipgloss.Top, card, "  ", lists)

	var status []string
	if m.state.IsLoading {
		status = append(status, spin+" Loading…")
	}
	status = append(status,
		util.FormatCount(len(m.state.Categories), "category", "categories"),
		util.FormatCount(len(m.state.Areas), "area", "areas"),
	)
	statusLine := StatusBarStyle.Render(strings.Join(status, "  ·  "))

	spacerHeight := max(0, height-lipgloss.Height(body)-lipgloss.Height(statusLine))
	spacer := lipgloss.NewStyle().Height(spacerHeight).Render("")
	return lipgloss.JoinVertical(lipgloss.Left, body, spacer, statusLine)
}

func (m *HomeModel) renderRandomCard(width, height int, thumbs *thumbnails, spin string) string {
	title := LabelStyle.Render("Meal of the moment")
	meal := m.state.RandomMeal

	var body []string
	switch {
	case meal == nil && m.state.IsLoading:
		body = append(body, HelpDescStyle.Render(spin+" Picking a meal…"))
	case meal == nil:
		body = append(body, HelpDescStyle.Render("No meal yet. Press r to try again."))
	default:
		body = append(body, HeaderStyle.Padding(0).Render(util.TruncateString(meal.Name, width-6)))
		if chips := mealChips(*meal); chips != "" {
			body = append(body, chips)
		}
		if art := thumbs.view(util.OptionalValue(meal.ThumbnailURL)); art != "" {
			body = append(body, "", art)
		}
		body = append(body, "", HelpDescStyle.Render(util.FormatCount(len(meal.IngredientLines()), "ingredient", "ingredients")))
		body = append(body, HelpDescStyle.Render("o open  r another"))
	}

	return PanelStyle.
		Width(width).
		MaxHeight(max(3, height)).
		Render(lipgloss.JoinVertical(lipgloss.Left, append([]string{title, ""}, body...)...))
}

func renderPickList(title string, items []string, cursor int, focused bool, width, height int) string {
	style := BorderStyle
	if focused {
		style = ActiveBorderStyle
	}

	lines := []string{LabelStyle.Render(fmt.Sprintf("%s (%d)", title, len(items)))}
	if len(items) == 0 {
		lines = append(lines, HelpDescStyle.Render("nothing here"))
	}

	visible := max(1, height-1)
	offset := 0
	if cursor >= visible {
		offset = cursor - visible + 1
	}
	for i := offset; i < len(items) && i < offset+visible; i++ {
		rowStyle := NormalRowStyle
		if i == cursor && focused {
			rowStyle = SelectedRowStyle
		}
		lines = append(lines, rowStyle.Width(width-4).Render(util.TruncateString(items[i], width-4)))
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

// mealChips renders the category and area badges of a meal.
func mealChips(meal model.Meal) string {
	var chips []string
	for _, v := range []*string{meal.Category, meal.Area} {
		if value := util.OptionalValue(v); value != "" {
			chips = append(chips, ChipStyle.Render(value))
		}
	}
	return strings.Join(chips, " ")
}

func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
