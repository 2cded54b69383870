package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mealmate/internal/model"
	"mealmate/internal/util"
	"mealmate/internal/viewstate"
)

// MealDetailModel renders one meal: badges, ingredients, numbered steps and
// the video link, scrolled as a single column of lines.
type MealDetailModel struct {
	controller *viewstate.DetailController
	watch      *watch[viewstate.DetailState]
	state      viewstate.DetailState

	mealID string
	offset int
	page   int
}

// NewMealDetailModel wraps controller. It does not load anything by itself.
func NewMealDetailModel(controller *viewstate.DetailController, gen int) *MealDetailModel {
	return &MealDetailModel{
		controller: controller,
		watch:      newWatch(gen, controller.State()),
		state:      controller.State().Value(),
	}
}

// Load requests id and resets scrolling.
func (m *MealDetailModel) Load(id string) {
	m.mealID = id
	m.offset = 0
	m.controller.LoadMealDetails(id)
}

// Reload requests the current meal again.
func (m *MealDetailModel) Reload() {
	if m.mealID != "" {
		m.controller.LoadMealDetails(m.mealID)
	}
}

func (m *MealDetailModel) setState(state viewstate.DetailState) {
	m.state = state
}

// Title returns the breadcrumb label.
func (m *MealDetailModel) Title() string {
	if m.state.Meal != nil {
		return m.state.Meal.Name
	}
	return "Meal"
}

func (m *MealDetailModel) ScrollDown(n int) {
	m.offset += n
}

func (m *MealDetailModel) ScrollUp(n int) {
	m.offset = max(0, m.offset-n)
}

func (m *MealDetailModel) JumpToTop() {
	m.offset = 0
}

func (m *MealDetailModel) JumpToBottom() {
	m.offset = 1 << 30
}

// View renders the visible window of the detail page.
func (m *MealDetailModel) View(width, height int, thumbs *thumbnails, spin string) string {
	var status string
	switch {
	case m.state.IsLoading:
		status = HelpDescStyle.Render(spin + " Loading meal…")
	case m.state.Error != "":
		status = ErrorStyle.Render(m.state.Error)
	}

	innerWidth := max(20, width-8)
	var body string
	if m.state.Meal == nil {
		msg := "Meal not found."
		if m.state.IsLoading || m.state.Error != "" {
			msg = ""
		}
		body = EmptyStateStyle.Render(msg)
	} else {
		body = renderMealPage(*m.state.Meal, innerWidth, thumbs)
	}

	lines := strings.Split(body, "\n")
	m.page = max(1, height-3)
	maxOffset := max(0, len(lines)-m.page)
	m.offset = min(m.offset, maxOffset)
	window := lines[m.offset:min(len(lines), m.offset+m.page)]

	scroll := ""
	if maxOffset > 0 {
		scroll = HelpDescStyle.Render(fmt.Sprintf("lines %d-%d of %d", m.offset+1, m.offset+len(window), len(lines)))
	}

	content := lipgloss.NewStyle().Padding(0, 2).Render(strings.Join(window, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, status, content, scroll)
}

func renderMealPage(meal model.Meal, width int, thumbs *thumbnails) string {
	var fields []string
	fields = append(fields, HeaderStyle.Padding(0).Render(meal.Name))
	if chips := mealChips(meal); chips != "" {
		fields = append(fields, chips)
	}
	if tags := util.SplitTags(util.OptionalValue(meal.Tags)); len(tags) > 0 {
		rendered := make([]string, 0, len(tags))
		for _, tag := range tags {
			rendered = append(rendered, TagChipStyle.Render(tag))
		}
		fields = append(fields, strings.Join(rendered, " "))
	}
	fields = append(fields, "", renderField("Id", meal.ID))
	if video := util.OptionalValue(meal.VideoURL); video != "" {
		fields = append(fields, LabelStyle.Render("Video:")+" "+LinkStyle.Render(video))
	}

	info := strings.Join(fields, "\n")
	if art := thumbs.view(util.OptionalValue(meal.ThumbnailURL)); art != "" && width >= thumbnailWidth+30 {
		info = lipgloss.JoinHorizontal(lipgloss.Top, art, "   ", lipgloss.NewStyle().Width(width-thumbnailWidth-3).Render(info))
	}

	divider := lipgloss.NewStyle().Foreground(ColorMuted).Render(strings.Repeat("─", width))
	sections := []string{info, divider, renderIngredients(meal, width), divider, renderSteps(meal, width)}
	return strings.Join(sections, "\n\n")
}

func renderIngredients(meal model.Meal, width int) string {
	lines := meal.IngredientLines()
	out := []string{LabelStyle.Render(fmt.Sprintf("Ingredients (%d)", len(lines)))}
	if len(lines) == 0 {
		return strings.Join(append(out, HelpDescStyle.Render("none listed")), "\n")
	}

	measureWidth := 0
	for _, l := range lines {
		measureWidth = max(measureWidth, lipgloss.Width(l.Measure))
	}
	measureWidth = min(measureWidth, width/3)
	for _, l := range lines {
		measure := lipgloss.NewStyle().Foreground(ColorMuted).Width(measureWidth).Render(util.TruncateString(l.Measure, measureWidth))
		out = append(out, "  • "+measure+"  "+NormalRowStyle.Render(l.Ingredient))
	}
	return strings.Join(out, "\n")
}

func renderSteps(meal model.Meal, width int) string {
	steps := util.SplitSteps(util.OptionalValue(meal.Instructions))
	out := []string{LabelStyle.Render("Instructions")}
	if len(steps) == 0 {
		return strings.Join(append(out, HelpDescStyle.Render("no instructions")), "\n")
	}

	numWidth := len(fmt.Sprintf("%d.", len(steps))) + 1
	textStyle := NormalRowStyle.Width(max(10, width-numWidth-2))
	for i, step := range steps {
		num := StepNumberStyle.Width(numWidth).Render(fmt.Sprintf("%d.", i+1))
		out = append(out, lipgloss.JoinHorizontal(lipgloss.Top, "  "+num, textStyle.Render(step)))
	}
	return strings.Join(out, "\n")
}
