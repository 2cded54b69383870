package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mealmate/internal/model"
	"mealmate/internal/util"
)

type searchDebounceMsg struct {
	seq int
}

type searchSubmittedMsg struct{}

type searchCancelledMsg struct{}

// SearchModel is the search input on top of a meal listing.
type SearchModel struct {
	input    textinput.Model
	kind     model.SearchKind
	keys     SearchKeyMap
	debounce time.Duration
	seq      int
	lastSent string

	listing *ListingModel
}

// NewSearchModel creates a focused search input driving listing.
func NewSearchModel(listing *ListingModel, debounce time.Duration) *SearchModel {
	input := textinput.New()
	input.Placeholder = "Dish name, e.g. Arrabiata"
	input.CharLimit = 80
	input.Prompt = "› "
	input.Focus()

	return &SearchModel{
		input:    input,
		keys:     DefaultSearchKeyMap(),
		debounce: debounce,
		listing:  listing,
	}
}

// Focus gives the input keyboard focus.
func (m *SearchModel) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur releases keyboard focus.
func (m *SearchModel) Blur() {
	m.input.Blur()
}

// Query returns the current input text.
func (m *SearchModel) Query() string {
	return m.input.Value()
}

// Kind returns what the input searches by.
func (m *SearchModel) Kind() model.SearchKind {
	return m.kind
}

// Update handles input-mode messages.
func (m SearchModel) Update(msg tea.Msg) (SearchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case searchDebounceMsg:
		if msg.seq == m.seq {
			m.submit()
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			return m, func() tea.Msg { return searchCancelledMsg{} }
		case key.Matches(msg, m.keys.Results):
			m.seq++
			m.submit()
			return m, func() tea.Msg { return searchSubmittedMsg{} }
		case key.Matches(msg, m.keys.ToggleKind):
			m.toggleKind()
			return m, m.schedule()
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() == before {
			return m, cmd
		}
		return m, tea.Batch(cmd, m.schedule())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *SearchModel) toggleKind() {
	if m.kind == model.SearchByName {
		m.kind = model.SearchByIngredient
		m.input.Placeholder = "Main ingredient, e.g. chicken breast"
	} else {
		m.kind = model.SearchByName
		m.input.Placeholder = "Dish name, e.g. Arrabiata"
	}
	m.lastSent = ""
}

// schedule starts the debounce timer for the current input. A blank input
// is submitted at once so stale results clear immediately.
func (m *SearchModel) schedule() tea.Cmd {
	m.seq++
	if strings.TrimSpace(m.input.Value()) == "" || m.debounce <= 0 {
		m.submit()
		return nil
	}
	seq := m.seq
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
}

func (m *SearchModel) submit() {
	query := strings.TrimSpace(m.input.Value())
	sent := m.kind.String() + ":" + query
	if sent == m.lastSent {
		return
	}
	m.lastSent = sent
	m.listing.subject = query

	if query == "" {
		m.listing.controller.Search("")
		return
	}
	if m.kind == model.SearchByIngredient {
		m.listing.controller.FilterByIngredient(util.IngredientQuery(query))
		return
	}
	m.listing.controller.Search(query)
}

// View renders the input above the results.
func (m *SearchModel) View(width, height int, spin string) string {
	label := "Search by " + m.kind.String()
	hint := HelpDescStyle.Render(m.keys.ToggleKind.Help().Key + " " + m.keys.ToggleKind.Help().Desc)
	field := renderFormField(label, m.input, m.input.Focused(), width-2)
	header := lipgloss.JoinVertical(lipgloss.Left, field, hint)

	results := m.listing.View(width, max(1, height-lipgloss.Height(header)), spin)
	return lipgloss.JoinVertical(lipgloss.Left, header, results)
}

func renderFormField(label string, input textinput.Model, focused bool, width int) string {
	style := BorderStyle
	if focused {
		style = ActiveBorderStyle
	}

	field := lipgloss.JoinVertical(
		lipgloss.Left,
		LabelStyle.Render(label),
		input.View(),
	)

	return style.Width(max(10, width-2)).Render(field)
}
