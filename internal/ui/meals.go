package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mealmate/internal/model"
	"mealmate/internal/util"
)

type mealColumn struct {
	key    string
	label  string
	width  int
	hidden bool
}

// MealTableModel is the sortable, filterable meal list shared by the search,
// category and area screens.
type MealTableModel struct {
	allRows []model.Meal
	rows    []model.Meal
	cursor  int
	offset  int

	viewportHeight int
	emptyMessage   string

	columns      []mealColumn
	activeColumn int
	sortKey      string
	sortDesc     bool
	filterKey    string
	filterValue  string
}

// NewMealTableModel creates an empty table. emptyMessage is shown while it has no rows.
func NewMealTableModel(emptyMessage string) *MealTableModel {
	return &MealTableModel{
		emptyMessage: emptyMessage,
		columns: []mealColumn{
			{key: "name", label: "meal", width: 32},
			{key: "category", label: "category", width: 14},
			{key: "area", label: "area", width: 14},
			{key: "ingredients", label: "ingr", width: 6},
			{key: "tags", label: "tags", width: 20},
			{key: "id", label: "id", width: 8},
		},
	}
}

// SetRows replaces the table contents, keeping sort, filter and column state.
func (m *MealTableModel) SetRows(rows []model.Meal) {
	m.allRows = append([]model.Meal(nil), rows...)
	m.rebuild()
}

// Len returns the number of visible rows.
func (m *MealTableModel) Len() int {
	return len(m.rows)
}

// Selected returns the meal under the cursor.
func (m *MealTableModel) Selected() (model.Meal, bool) {
	if len(m.rows) == 0 {
		return model.Meal{}, false
	}
	return m.rows[m.cursor], true
}

func (m *MealTableModel) ApplyPrefs(prefs TablePrefs) {
	if prefs.SortKey != "" {
		m.sortKey = prefs.SortKey
		m.sortDesc = prefs.SortDesc
	}
	hidden := make(map[string]bool, len(prefs.HiddenColumns))
	for _, c := range prefs.HiddenColumns {
		hidden[c] = true
	}
	for i := range m.columns {
		m.columns[i].hidden = hidden[m.columns[i].key]
	}
	if prefs.ActiveColumn != "" {
		for i, c := range m.columns {
			if c.key == prefs.ActiveColumn {
				m.activeColumn = i
				break
			}
		}
	}
	m.ensureVisibleActiveColumn()
	m.rebuild()
}

func (m *MealTableModel) Prefs() TablePrefs {
	var hidden []string
	for _, c := range m.columns {
		if c.hidden {
			hidden = append(hidden, c.key)
		}
	}
	return TablePrefs{
		SortKey:       m.sortKey,
		SortDesc:      m.sortDesc,
		HiddenColumns: hidden,
		ActiveColumn:  m.columns[m.activeColumn].key,
	}
}

func (m *MealTableModel) rebuild() {
	rows := append([]model.Meal(nil), m.allRows...)

	if m.filterKey != "" && m.filterValue != "" {
		filtered := make([]model.Meal, 0, len(rows))
		target := strings.TrimSpace(m.filterValue)
		for _, r := range rows {
			if strings.EqualFold(strings.TrimSpace(m.getValue(r, m.filterKey)), target) {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	if m.sortKey != "" {
		sort.SliceStable(rows, func(i, j int) bool {
			left := strings.ToLower(m.getValue(rows[i], m.sortKey))
			right := strings.ToLower(m.getValue(rows[j], m.sortKey))
			if left == right {
				return rows[i].ID < rows[j].ID
			}
			if m.sortDesc {
				return left > right
			}
			return left < right
		})
	}

	m.rows = rows
	m.clampCursor()
}

func (m *MealTableModel) clampCursor() {
	if len(m.rows) == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}

// getValue returns the sortable form of a cell. Numeric columns are zero padded.
func (m *MealTableModel) getValue(row model.Meal, key string) string {
	switch key {
	case "name":
		return row.Name
	case "category":
		return util.OptionalValue(row.Category)
	case "area":
		return util.OptionalValue(row.Area)
	case "ingredients":
		return fmt.Sprintf("%02d", len(row.IngredientLines()))
	case "tags":
		return util.OptionalValue(row.Tags)
	case "id":
		return strings.Repeat("0", max(0, 10-len(row.ID))) + row.ID
	default:
		return ""
	}
}

func (m *MealTableModel) cellValue(row model.Meal, col mealColumn) string {
	switch col.key {
	case "name":
		return util.TruncateString(row.Name, col.width)
	case "category":
		return util.TruncateString(util.FormatOptional(row.Category), col.width)
	case "area":
		return util.TruncateString(util.FormatOptional(row.Area), col.width)
	case "ingredients":
		n := len(row.IngredientLines())
		if n == 0 {
			return "—"
		}
		return fmt.Sprintf("%d", n)
	case "tags":
		tags := util.SplitTags(util.OptionalValue(row.Tags))
		if len(tags) == 0 {
			return "—"
		}
		return util.TruncateString(strings.Join(tags, " · "), col.width)
	case "id":
		return row.ID
	}
	return ""
}

func (m *MealTableModel) visibleColumnIndexes() []int {
	var idxs []int
	for i, c := range m.columns {
		if !c.hidden {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

func (m *MealTableModel) ensureVisibleActiveColumn() {
	if !m.columns[m.activeColumn].hidden {
		return
	}
	for i := range m.columns {
		if !m.columns[i].hidden {
			m.activeColumn = i
			return
		}
	}
	m.columns[0].hidden = false
	m.activeColumn = 0
}

func (m *MealTableModel) NextColumn() {
	start := m.activeColumn
	for {
		m.activeColumn = (m.activeColumn + 1) % len(m.columns)
		if !m.columns[m.activeColumn].hidden || m.activeColumn == start {
			return
		}
	}
}

func (m *MealTableModel) PrevColumn() {
	start := m.activeColumn
	for {
		m.activeColumn--
		if m.activeColumn < 0 {
			m.activeColumn = len(m.columns) - 1
		}
		if !m.columns[m.activeColumn].hidden || m.activeColumn == start {
			return
		}
	}
}

func (m *MealTableModel) JumpToColumn(number int) bool {
	if number < 1 || number > len(m.columns) {
		return false
	}
	idx := number - 1
	if m.columns[idx].hidden {
		return false
	}
	m.activeColumn = idx
	return true
}

func (m *MealTableModel) SortActiveColumn(desc bool) {
	m.sortKey = m.columns[m.activeColumn].key
	m.sortDesc = desc
	m.rebuild()
}

func (m *MealTableModel) HideActiveColumn() bool {
	if len(m.visibleColumnIndexes()) <= 1 {
		return false
	}
	m.columns[m.activeColumn].hidden = true
	m.ensureVisibleActiveColumn()
	return true
}

func (m *MealTableModel) ShowAllColumns() {
	for i := range m.columns {
		m.columns[i].hidden = false
	}
}

func (m *MealTableModel) FilterBySelectedValue() bool {
	if len(m.rows) == 0 {
		return false
	}
	key := m.columns[m.activeColumn].key
	value := strings.TrimSpace(m.getValue(m.rows[m.cursor], key))
	if value == "" {
		return false
	}
	m.filterKey = key
	m.filterValue = value
	m.rebuild()
	return true
}

func (m *MealTableModel) ClearFilter() bool {
	if m.filterKey == "" {
		return false
	}
	m.filterKey = ""
	m.filterValue = ""
	m.rebuild()
	return true
}

func (m *MealTableModel) TableMeta() string {
	col := strings.ToUpper(m.columns[m.activeColumn].label)
	parts := []string{fmt.Sprintf("col %s", col)}
	if m.sortKey != "" {
		order := "asc"
		if m.sortDesc {
			order = "desc"
		}
		parts = append(parts, fmt.Sprintf("sort %s %s", strings.ToUpper(m.sortKey), order))
	}
	if m.filterKey != "" {
		parts = append(parts, fmt.Sprintf("filter %s=%q", strings.ToUpper(m.filterKey), m.filterValue))
	}
	return strings.Join(parts, "  ·  ")
}

// View renders the table with a status line anchored at the bottom.
func (m *MealTableModel) View(width, height int) string {
	if len(m.rows) == 0 {
		msg := m.emptyMessage
		if m.filterKey != "" && len(m.allRows) > 0 {
			msg = "No meals match the filter. Press N to clear it."
		}
		return EmptyStateStyle.
			Width(width).
			Height(height).
			Render(msg)
	}

	visible := m.visibleColumnIndexes()
	widths := make([]int, 0, len(visible))
	headers := make([]string, 0, len(visible))
	totalFixed := 0
	for _, idx := range visible {
		col := m.columns[idx]
		label := formatHeaderLabel(col.label)
		if idx == m.activeColumn {
			label = renderActiveHeaderLabel(label)
		}
		if m.sortKey == col.key {
			if m.sortDesc {
				label += " ↓"
			} else {
				label += " ↑"
			}
		}
		cellWidth := max(col.width+2, lipgloss.Width(label)+4)
		totalFixed += cellWidth
		widths = append(widths, cellWidth)
		headers = append(headers, label)
	}
	if len(widths) > 0 {
		sepTotal := (len(widths) - 1) * tableSeparatorWidth()
		extra := width - totalFixed - sepTotal - 2
		if extra > 0 {
			widths[len(widths)-1] += extra
		}
	}

	header := renderTableRow(headers, widths, TableHeaderStyle)
	divider := renderTableDivider(widths)

	visibleHeight := max(1, height-3)
	m.viewportHeight = visibleHeight
	var rows []string
	for i := m.offset; i < len(m.rows) && i < m.offset+visibleHeight; i++ {
		row := m.rows[i]
		style := NormalRowStyle.Padding(0, 1)
		if i == m.cursor {
			style = SelectedRowStyle.Padding(0, 1)
		}

		cells := make([]string, 0, len(visible))
		for _, idx := range visible {
			cells = append(cells, m.cellValue(row, m.columns[idx]))
		}
		rows = append(rows, renderTableRow(cells, widths, style))
	}

	filterInfo := ""
	if m.filterKey != "" {
		filterInfo = fmt.Sprintf("  ·  filtered: %d/%d", len(m.rows), len(m.allRows))
	}
	meta := "  ·  " + m.TableMeta()
	rowPos := fmt.Sprintf("  ·  row %d/%d", m.cursor+1, len(m.rows))
	status := StatusBarStyle.Render(util.FormatCount(len(m.rows), "meal", "meals") + rowPos + filterInfo + meta)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		divider,
		strings.Join(rows, "\n"),
	)
	spacerHeight := max(0, height-lipgloss.Height(content)-lipgloss.Height(status))
	spacer := lipgloss.NewStyle().Height(spacerHeight).Render("")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		spacer,
		status,
	)
}

func (m *MealTableModel) pageSize() int {
	if m.viewportHeight == 0 {
		return 10
	}
	return m.viewportHeight
}

// MoveDown moves the cursor down.
func (m *MealTableModel) MoveDown() {
	if m.cursor < len(m.rows)-1 {
		m.cursor++
		if m.cursor >= m.offset+m.pageSize() {
			m.offset++
		}
	}
}

// MoveUp moves the cursor up.
func (m *MealTableModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
		if m.cursor < m.offset {
			m.offset--
		}
	}
}

// JumpToTop jumps to the first item.
func (m *MealTableModel) JumpToTop() {
	m.cursor = 0
	m.offset = 0
}

// JumpToBottom jumps to the last item.
func (m *MealTableModel) JumpToBottom() {
	if len(m.rows) > 0 {
		m.cursor = len(m.rows) - 1
		if vh := m.pageSize(); m.cursor >= vh {
			m.offset = m.cursor - vh + 1
		}
	}
}

// HalfPageDown moves down half a page.
func (m *MealTableModel) HalfPageDown() {
	if len(m.rows) == 0 {
		return
	}
	m.cursor = min(len(m.rows)-1, m.cursor+m.pageSize()/2)
	if vh := m.pageSize(); m.cursor >= m.offset+vh {
		m.offset = m.cursor - vh + 1
	}
}

// HalfPageUp moves up half a page.
func (m *MealTableModel) HalfPageUp() {
	m.cursor = max(0, m.cursor-m.pageSize()/2)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
}
