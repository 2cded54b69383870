package ui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mealmate/internal/logging"
	"mealmate/internal/model"
	"mealmate/internal/viewstate"
)

// Source is the repository surface the TUI drives.
type Source interface {
	viewstate.ListingSource
	viewstate.DetailSource
	viewstate.HomeSource
}

// Options configures the root model.
type Options struct {
	// Images downloads meal thumbnails. Nil disables thumbnails.
	Images       ImageFetcher
	Logger       *slog.Logger
	PrefsPath    string
	Debounce     time.Duration
	StaleDiscard bool
}

// Model is the root Bubble Tea model.
type Model struct {
	repo   Source
	opts   Options
	logger *slog.Logger

	screen model.Screen
	mode   model.Mode
	gState GState

	width  int
	height int

	error       string
	info        string
	showingHelp bool
	columnJump  bool

	// Screen models
	home       *HomeModel
	search     *SearchModel
	browse     *ListingModel
	detail     *MealDetailModel
	detailBack model.Screen

	thumbs   *thumbnails
	spinner  spinner.Model
	spinning bool

	keys  KeyMap
	prefs UIPreferences
	store prefsStore
	gen   int
}

// New creates the root model. The home fetches start immediately.
func New(repo Source, opts Options) Model {
	logger := logging.NewComponentLogger(opts.Logger, "tui")

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorAccent)

	store := prefsStore{path: opts.PrefsPath}
	m := Model{
		repo:    repo,
		opts:    opts,
		logger:  logger,
		screen:  model.ScreenHome,
		mode:    model.ModeNav,
		gState:  GStateIdle,
		thumbs:  newThumbnails(opts.Images),
		spinner: sp,
		keys:    DefaultKeyMap(),
		prefs:   store.load(),
		store:   store,
	}

	m.home = NewHomeModel(viewstate.NewHomeController(repo, m.controllerOptions("home")...), m.nextGen())
	m.detail = NewMealDetailModel(viewstate.NewDetailController(repo, m.controllerOptions("detail")...), m.nextGen())
	searchListing := NewListingModel(
		model.ScreenSearch, "",
		viewstate.NewListingController(repo, m.controllerOptions("search")...),
		m.nextGen(), m.prefs.Search,
	)
	m.search = NewSearchModel(searchListing, opts.Debounce)
	m.search.Blur()
	return m
}

func (m *Model) controllerOptions(component string) []viewstate.Option {
	opts := []viewstate.Option{viewstate.WithLogger(logging.NewComponentLogger(m.opts.Logger, component))}
	if m.opts.StaleDiscard {
		opts = append(opts, viewstate.WithStaleDiscard())
	}
	return opts
}

func (m *Model) nextGen() int {
	m.gen++
	return m.gen
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.home.watch.next(),
		m.detail.watch.next(),
		m.search.listing.watch.next(),
	)
}

// Close stops every controller. Call it after the program exits.
func (m Model) Close() {
	m.home.watch.stop()
	m.home.controller.Close()
	m.detail.watch.stop()
	m.detail.controller.Close()
	m.search.listing.close()
	if m.browse != nil {
		m.browse.close()
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.anyLoading() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stateMsg[viewstate.HomeState]:
		if !m.home.watch.accepts(msg) {
			return m, nil
		}
		m.home.setState(msg.state)
		var thumb tea.Cmd
		if meal := msg.state.RandomMeal; meal != nil && meal.ThumbnailURL != nil {
			thumb = m.thumbs.request(*meal.ThumbnailURL)
		}
		return m, tea.Batch(m.home.watch.next(), thumb, m.ensureSpinner())

	case stateMsg[viewstate.ListingState]:
		switch {
		case m.search.listing.watch.accepts(msg):
			m.search.listing.setState(msg.state)
			return m, tea.Batch(m.search.listing.watch.next(), m.ensureSpinner())
		case m.browse != nil && m.browse.watch.accepts(msg):
			m.browse.setState(msg.state)
			return m, tea.Batch(m.browse.watch.next(), m.ensureSpinner())
		}
		return m, nil

	case stateMsg[viewstate.DetailState]:
		if !m.detail.watch.accepts(msg) {
			return m, nil
		}
		m.detail.setState(msg.state)
		var thumb tea.Cmd
		if meal := msg.state.Meal; meal != nil && meal.ThumbnailURL != nil {
			thumb = m.thumbs.request(*meal.ThumbnailURL)
		}
		return m, tea.Batch(m.detail.watch.next(), thumb, m.ensureSpinner())

	case thumbnailLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("thumbnail unavailable", slog.String("url", msg.url), slog.Any("error", msg.err))
		}
		m.thumbs.store(msg)
		return m, nil

	case searchSubmittedMsg:
		m.mode = model.ModeNav
		m.search.Blur()
		return m, m.ensureSpinner()

	case searchCancelledMsg:
		m.mode = model.ModeNav
		m.search.Blur()
		return m, m.ensureSpinner()

	case tea.KeyMsg:
		if m.mode == model.ModeNav && m.columnJump {
			if msg.String() == "esc" {
				m.columnJump = false
				m.info = ""
				return m, nil
			}
			if n, err := strconv.Atoi(msg.String()); err == nil {
				table := m.currentTable()
				if table != nil && table.JumpToColumn(n) {
					m.columnJump = false
					m.info = fmt.Sprintf("Jumped to column %d", n)
					m.persistCurrentTablePrefs()
					return m, nil
				}
				m.info = fmt.Sprintf("Column %d unavailable", n)
				return m, nil
			}
		}

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if key.Matches(msg, m.keys.Help) && m.mode == model.ModeNav {
			m.showingHelp = !m.showingHelp
			return m, nil
		}

		if m.showingHelp {
			if msg.String() == "esc" || key.Matches(msg, m.keys.Help) {
				m.showingHelp = false
			}
			return m, nil
		}

		if m.mode == model.ModeNav {
			return m.handleNavMode(msg)
		}
		return m.handleInsertMode(msg)
	}

	if m.mode == model.ModeInsert {
		return m.handleInsertMode(msg)
	}
	if debounce, ok := msg.(searchDebounceMsg); ok {
		return m.handleInsertMode(debounce)
	}
	return m, nil
}

func (m *Model) anyLoading() bool {
	if m.home.state.IsLoading || m.detail.state.IsLoading || m.search.listing.state.IsLoading {
		return true
	}
	return m.browse != nil && m.browse.state.IsLoading
}

func (m *Model) ensureSpinner() tea.Cmd {
	if m.spinning || !m.anyLoading() {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.width, m.height)
	}

	// header + tabs + footer
	contentHeight := m.height - 6
	spin := m.spinner.View()

	var content string
	breadcrumbParts := []string{"Home"}
	switch m.screen {
	case model.ScreenHome:
		content = m.home.View(m.width, contentHeight, m.thumbs, spin)
	case model.ScreenSearch:
		breadcrumbParts = []string{"Search"}
		if q := strings.TrimSpace(m.search.Query()); q != "" {
			breadcrumbParts = append(breadcrumbParts, fmt.Sprintf("%s %q", m.search.Kind(), q))
		}
		content = m.search.View(m.width, contentHeight, spin)
	case model.ScreenCategory, model.ScreenArea:
		if m.browse != nil {
			breadcrumbParts = append(breadcrumbParts, m.browse.subject)
			content = m.browse.View(m.width, contentHeight, spin)
		}
	case model.ScreenMealDetail:
		breadcrumbParts = append(m.breadcrumbFor(m.detailBack), m.detail.Title())
		content = m.detail.View(m.width, contentHeight, m.thumbs, spin)
	}

	header := renderHeader(breadcrumbParts, m.width)
	tabs := m.renderTabs()
	footer := RenderHelp(m.screen, m.mode, m.width)

	content = lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	parts := []string{header, tabs}
	if m.error != "" {
		parts = append(parts, ErrorStyle.Width(m.width).Render("Error: "+m.error))
	}
	if m.info != "" {
		parts = append(parts, SuccessStyle.Width(m.width).Render(m.info))
	}
	parts = append(parts, content, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) breadcrumbFor(screen model.Screen) []string {
	switch screen {
	case model.ScreenSearch:
		return []string{"Search"}
	case model.ScreenCategory, model.ScreenArea:
		if m.browse != nil {
			return []string{"Home", m.browse.subject}
		}
	}
	return []string{"Home"}
}

type tab struct {
	name   string
	screen model.Screen
}

func (m Model) renderTabs() string {
	tabs := []tab{
		{"Home", model.ScreenHome},
		{"Search", model.ScreenSearch},
	}
	if m.browse != nil {
		tabs = append(tabs, tab{m.browse.subject, m.browse.screen})
	}

	active := m.screen
	if active == model.ScreenMealDetail {
		active = m.detailBack
	}

	var tabStrings []string
	for _, tab := range tabs {
		tabStyle := lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(ColorMuted)
		if active == tab.screen {
			tabStyle = tabStyle.
				Foreground(ColorText).
				Bold(true).
				Underline(true)
		}
		tabStrings = append(tabStrings, tabStyle.Render(tab.name))
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Left, tabStrings...)
	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 2).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		Render(tabBar)
}

func renderHeader(breadcrumbParts []string, width int) string {
	title := HeaderStyle.Render("mealmate")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb
	right := BreadcrumbStyle.Render("TheMealDB") + "  "

	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	return TitleStyle.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}

// handleNavMode handles navigation mode input.
func (m Model) handleNavMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.error = ""
	if t := m.currentTable(); t != nil {
		switch {
		case key.Matches(msg, m.keys.NextColumn):
			t.NextColumn()
			m.persistCurrentTablePrefs()
			return m, nil
		case key.Matches(msg, m.keys.PrevColumn):
			t.PrevColumn()
			m.persistCurrentTablePrefs()
			return m, nil
		case key.Matches(msg, m.keys.ColumnJump):
			m.columnJump = true
			m.info = "Jump to column: press 1-9 (esc to cancel)"
			return m, nil
		case key.Matches(msg, m.keys.SortAsc):
			t.SortActiveColumn(false)
			m.info = "Sorted ascending"
			m.persistCurrentTablePrefs()
			return m, nil
		case key.Matches(msg, m.keys.SortDesc):
			t.SortActiveColumn(true)
			m.info = "Sorted descending"
			m.persistCurrentTablePrefs()
			return m, nil
		case key.Matches(msg, m.keys.HideColumn):
			if t.HideActiveColumn() {
				m.info = "Column hidden"
				m.persistCurrentTablePrefs()
			} else {
				m.info = "Cannot hide last visible column"
			}
			return m, nil
		case key.Matches(msg, m.keys.ShowColumns):
			t.ShowAllColumns()
			m.info = "All columns shown"
			m.persistCurrentTablePrefs()
			return m, nil
		case key.Matches(msg, m.keys.FilterValue):
			if t.FilterBySelectedValue() {
				m.info = "Filter applied from selected value"
			} else {
				m.info = "No filterable value in selected cell"
			}
			return m, nil
		case key.Matches(msg, m.keys.ClearFilter):
			if t.ClearFilter() {
				m.info = "Filter cleared"
			}
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Home):
		m.screen = model.ScreenHome
		m.info = ""
		return m, nil
	case key.Matches(msg, m.keys.Search):
		m.screen = model.ScreenSearch
		m.mode = model.ModeInsert
		m.info = ""
		return m, m.search.Focus()
	}

	// "gg" state machine
	if msg.String() == "g" {
		if m.gState == GStateIdle {
			m.gState = GStateFirstG
			return m, nil
		}
		m.gState = GStateIdle
		return m.handleJumpToTop()
	}
	m.gState = GStateIdle

	switch m.screen {
	case model.ScreenHome:
		return m.handleHomeNav(msg)
	case model.ScreenSearch, model.ScreenCategory, model.ScreenArea:
		return m.handleListingNav(msg)
	case model.ScreenMealDetail:
		return m.handleMealDetailNav(msg)
	}
	return m, nil
}

func (m *Model) currentListing() *ListingModel {
	switch m.screen {
	case model.ScreenSearch:
		return m.search.listing
	case model.ScreenCategory, model.ScreenArea:
		return m.browse
	}
	return nil
}

func (m *Model) currentTable() tableController {
	if l := m.currentListing(); l != nil {
		return l.table
	}
	return nil
}

func (m *Model) persistCurrentTablePrefs() {
	l := m.currentListing()
	if l == nil {
		return
	}
	slot := m.prefs.forScreen(l.screen)
	if slot == nil {
		return
	}
	*slot = l.table.Prefs()
	if err := m.store.save(m.prefs); err != nil {
		m.logger.Warn("failed to save ui preferences", slog.Any("error", err))
		m.error = err.Error()
	}
}

// handleInsertMode routes input to the search field.
func (m Model) handleInsertMode(msg tea.Msg) (tea.Model, tea.Cmd) {
	search, cmd := m.search.Update(msg)
	m.search = &search
	return m, tea.Batch(cmd, m.ensureSpinner())
}

func (m Model) handleJumpToTop() (tea.Model, tea.Cmd) {
	switch m.screen {
	case model.ScreenHome:
		m.home.JumpToTop()
	case model.ScreenMealDetail:
		m.detail.JumpToTop()
	default:
		if l := m.currentListing(); l != nil {
			l.table.JumpToTop()
		}
	}
	return m, nil
}

func (m Model) handleHomeNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.home.MoveDown()
	case key.Matches(msg, m.keys.Up):
		m.home.MoveUp()
	case key.Matches(msg, m.keys.Bottom):
		m.home.JumpToBottom()
	case key.Matches(msg, m.keys.SwitchPane):
		m.home.SwitchPane()
	case key.Matches(msg, m.keys.Random):
		m.home.controller.FetchRandomMeal()
		return m, m.ensureSpinner()
	case key.Matches(msg, m.keys.OpenRandom):
		if meal := m.home.state.RandomMeal; meal != nil {
			return m, m.openDetail(meal.ID)
		}
		m.info = "No random meal loaded yet"
	case key.Matches(msg, m.keys.Reload):
		return m, m.reloadHome()
	case key.Matches(msg, m.keys.Select):
		if screen, value, ok := m.home.Selection(); ok {
			return m, m.openBrowse(screen, value)
		}
	}
	return m, nil
}

func (m Model) handleListingNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := m.currentListing()
	if l == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		l.table.MoveDown()
	case key.Matches(msg, m.keys.Up):
		l.table.MoveUp()
	case key.Matches(msg, m.keys.Bottom):
		l.table.JumpToBottom()
	case key.Matches(msg, m.keys.HalfPageDown):
		l.table.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		l.table.HalfPageUp()
	case key.Matches(msg, m.keys.Select):
		if meal, ok := l.table.Selected(); ok {
			return m, m.openDetail(meal.ID)
		}
	case key.Matches(msg, m.keys.Reload):
		if m.screen != model.ScreenSearch {
			m.runBrowse()
			return m, m.ensureSpinner()
		}
	case key.Matches(msg, m.keys.Back):
		m.screen = model.ScreenHome
		m.info = ""
	}
	return m, nil
}

func (m Model) handleMealDetailNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.detail.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.detail.ScrollUp(1)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.detail.ScrollDown(max(1, m.detail.page/2))
	case key.Matches(msg, m.keys.HalfPageUp):
		m.detail.ScrollUp(max(1, m.detail.page/2))
	case key.Matches(msg, m.keys.Bottom):
		m.detail.JumpToBottom()
	case key.Matches(msg, m.keys.Reload):
		m.detail.Reload()
		return m, m.ensureSpinner()
	case key.Matches(msg, m.keys.Back):
		m.screen = m.detailBack
	}
	return m, nil
}

func (m *Model) openDetail(id string) tea.Cmd {
	m.detailBack = m.screen
	m.screen = model.ScreenMealDetail
	m.logger.Debug("open meal", slog.String("id", id))
	m.detail.Load(id)
	return m.ensureSpinner()
}

// openBrowse replaces the category or area listing with a fresh controller.
func (m *Model) openBrowse(screen model.Screen, value string) tea.Cmd {
	if m.browse != nil {
		m.browse.close()
	}
	var prefs TablePrefs
	if slot := m.prefs.forScreen(screen); slot != nil {
		prefs = *slot
	}
	controller := viewstate.NewListingController(m.repo, m.controllerOptions("browse")...)
	m.browse = NewListingModel(screen, value, controller, m.nextGen(), prefs)
	m.screen = screen
	m.info = ""
	m.logger.Debug("browse meals", slog.String("screen", screenName(screen)), slog.String("value", value))
	m.runBrowse()
	return tea.Batch(m.browse.watch.next(), m.ensureSpinner())
}

func (m *Model) runBrowse() {
	if m.browse == nil {
		return
	}
	switch m.browse.screen {
	case model.ScreenCategory:
		m.browse.controller.FilterByCategory(m.browse.subject)
	case model.ScreenArea:
		m.browse.controller.FilterByArea(m.browse.subject)
	}
}

// reloadHome replaces the home controller, which refetches all three slots.
func (m *Model) reloadHome() tea.Cmd {
	m.home.watch.stop()
	m.home.controller.Close()
	old := m.home
	m.home = NewHomeModel(viewstate.NewHomeController(m.repo, m.controllerOptions("home")...), m.nextGen())
	m.home.pane = old.pane
	m.home.catCursor = old.catCursor
	m.home.areaCursor = old.areaCursor
	return tea.Batch(m.home.watch.next(), m.ensureSpinner())
}

func screenName(screen model.Screen) string {
	switch screen {
	case model.ScreenHome:
		return "home"
	case model.ScreenSearch:
		return "search"
	case model.ScreenCategory:
		return "category"
	case model.ScreenArea:
		return "area"
	case model.ScreenMealDetail:
		return "meal_detail"
	}
	return "unknown"
}
