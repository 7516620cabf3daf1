package ui

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"foodies/internal/query"
	"foodies/internal/util"

	"github.com/charmbracelet/lipgloss"
)

type column struct {
	key    string
	label  string
	width  int
	hidden bool
	color  lipgloss.Color
}

// tableSpec describes how one entity list is displayed. It is rebuilt on
// every reload because the cell functions close over the current document.
type tableSpec[T any] struct {
	noun    string
	columns []column
	id      func(T) string
	// cell returns the display text of a column.
	cell func(T, string) string
	// value returns the text compared when sorting or filtering by a
	// column that the query sorter does not know.
	value    func(T, string) string
	sortKeys []string
	sort     func([]T, query.Sort) []T
	search   func([]T, string) []T
}

// tableModel is a paged list with an active column, sorting, per-value
// filtering and hideable columns.
type tableModel[T any] struct {
	spec tableSpec[T]

	allRows  []T
	rows     []T
	pageRows []T
	page     int
	pageSize int
	pageInfo query.PageInfo

	cursor int
	offset int

	viewportHeight int

	columns      []column
	activeColumn int
	sortKey      string
	sortDesc     bool
	filterKey    string
	filterValue  string
	search       string
}

func newTableModel[T any](spec tableSpec[T], items []T, pageSize int) *tableModel[T] {
	m := &tableModel[T]{
		columns:  slices.Clone(spec.columns),
		page:     1,
		pageSize: pageSize,
	}
	m.Load(spec, items)
	return m
}

// Load swaps in a new spec and item set while keeping the cursor, sort,
// filter and column state.
func (m *tableModel[T]) Load(spec tableSpec[T], items []T) {
	m.spec = spec
	m.allRows = slices.Clone(items)
	m.rebuild()
}

// SetPageSize changes the rows per page and returns to the first page.
func (m *tableModel[T]) SetPageSize(size int) {
	if size == m.pageSize {
		return
	}
	m.pageSize = size
	m.page = 1
	m.rebuild()
}

func (m *tableModel[T]) ApplyPrefs(prefs TablePrefs) {
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

func (m *tableModel[T]) Prefs() TablePrefs {
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

func (m *tableModel[T]) rebuild() {
	rows := slices.Clone(m.allRows)

	if m.search != "" && m.spec.search != nil {
		rows = m.spec.search(rows, m.search)
	}

	if m.filterKey != "" && m.filterValue != "" {
		target := strings.TrimSpace(m.filterValue)
		filtered := make([]T, 0, len(rows))
		for _, r := range rows {
			if strings.EqualFold(strings.TrimSpace(m.spec.value(r, m.filterKey)), target) {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	if m.sortKey != "" {
		rows = m.sortRows(rows)
	}

	m.rows = rows
	m.pageRows, m.pageInfo = query.Paginate(m.rows, m.page, m.pageSize, 0)
	m.page = m.pageInfo.Page
	m.clampCursor()
}

func (m *tableModel[T]) sortRows(rows []T) []T {
	if m.spec.sort != nil && slices.Contains(m.spec.sortKeys, m.sortKey) {
		return m.spec.sort(rows, query.Sort{Key: m.sortKey, Desc: m.sortDesc})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		left := strings.ToLower(m.spec.value(rows[i], m.sortKey))
		right := strings.ToLower(m.spec.value(rows[j], m.sortKey))
		if m.sortDesc {
			return left > right
		}
		return left < right
	})
	return rows
}

func (m *tableModel[T]) clampCursor() {
	if len(m.pageRows) == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	if m.cursor >= len(m.pageRows) {
		m.cursor = len(m.pageRows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}

// Selected returns the row under the cursor.
func (m *tableModel[T]) Selected() (T, bool) {
	var zero T
	if len(m.pageRows) == 0 || m.cursor >= len(m.pageRows) {
		return zero, false
	}
	return m.pageRows[m.cursor], true
}

// SelectedID returns the id of the row under the cursor, or "".
func (m *tableModel[T]) SelectedID() string {
	row, ok := m.Selected()
	if !ok {
		return ""
	}
	return m.spec.id(row)
}

func (m *tableModel[T]) visibleColumnIndexes() []int {
	var idxs []int
	for i, c := range m.columns {
		if !c.hidden {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

func (m *tableModel[T]) ensureVisibleActiveColumn() {
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

func (m *tableModel[T]) NextColumn() {
	start := m.activeColumn
	for {
		m.activeColumn = (m.activeColumn + 1) % len(m.columns)
		if !m.columns[m.activeColumn].hidden || m.activeColumn == start {
			return
		}
	}
}

func (m *tableModel[T]) PrevColumn() {
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

func (m *tableModel[T]) JumpToColumn(number int) bool {
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

func (m *tableModel[T]) SortActiveColumn(desc bool) {
	m.sortKey = m.columns[m.activeColumn].key
	m.sortDesc = desc
	m.rebuild()
}

func (m *tableModel[T]) HideActiveColumn() bool {
	if len(m.visibleColumnIndexes()) <= 1 {
		return false
	}
	m.columns[m.activeColumn].hidden = true
	m.ensureVisibleActiveColumn()
	return true
}

func (m *tableModel[T]) ShowAllColumns() {
	for i := range m.columns {
		m.columns[i].hidden = false
	}
}

func (m *tableModel[T]) FilterBySelectedValue() bool {
	row, ok := m.Selected()
	if !ok {
		return false
	}
	key := m.columns[m.activeColumn].key
	value := strings.TrimSpace(m.spec.value(row, key))
	if value == "" {
		return false
	}
	m.filterKey = key
	m.filterValue = value
	m.page = 1
	m.rebuild()
	return true
}

func (m *tableModel[T]) ClearFilter() bool {
	if m.filterKey == "" && m.search == "" {
		return false
	}
	m.filterKey = ""
	m.filterValue = ""
	m.search = ""
	m.rebuild()
	return true
}

// Search narrows the rows to those matching q. An empty q clears it.
func (m *tableModel[T]) Search(q string) {
	m.search = strings.TrimSpace(q)
	m.page = 1
	m.cursor = 0
	m.offset = 0
	m.rebuild()
}

func (m *tableModel[T]) NextPage() bool {
	if !m.pageInfo.HasNext() {
		return false
	}
	m.page++
	m.cursor = 0
	m.offset = 0
	m.rebuild()
	return true
}

func (m *tableModel[T]) PrevPage() bool {
	if !m.pageInfo.HasPrev() {
		return false
	}
	m.page--
	m.cursor = 0
	m.offset = 0
	m.rebuild()
	return true
}

func (m *tableModel[T]) TableMeta() string {
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
	if m.search != "" {
		parts = append(parts, fmt.Sprintf("search %q", m.search))
	}
	return strings.Join(parts, "  ·  ")
}

// View renders the current page.
func (m *tableModel[T]) View(width, height int) string {
	if len(m.rows) == 0 {
		emptyMsg := fmt.Sprintf("    No %s yet.\n    Press  a  to add one!", m.spec.noun)
		if len(m.allRows) > 0 {
			emptyMsg = fmt.Sprintf("    No %s match.\n    Press  N  to clear the filter.", m.spec.noun)
		}
		return EmptyStateStyle.
			Width(width).
			Height(height).
			Render(emptyMsg)
	}

	visible := m.visibleColumnIndexes()
	if len(visible) == 0 {
		return EmptyStateStyle.Width(width).Height(height).Render("No visible columns. Press C to show all columns.")
	}

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

	headerStyle := TableHeaderStyle.Bold(true)
	header := renderTableRow(headers, widths, headerStyle)
	divider := renderTableDivider(widths)

	visibleHeight := height - 3
	m.viewportHeight = visibleHeight
	var rows []string
	for i := m.offset; i < len(m.pageRows) && i < m.offset+visibleHeight; i++ {
		row := m.pageRows[i]
		style := NormalRowStyle
		if i == m.cursor {
			style = SelectedRowStyle
		}

		cells := make([]string, 0, len(visible))
		for _, idx := range visible {
			col := m.columns[idx]
			text := util.TruncateString(m.spec.cell(row, col.key), col.width)
			if col.color != "" && i != m.cursor {
				text = lipgloss.NewStyle().Foreground(col.color).Render(text)
			}
			cells = append(cells, text)
		}
		rows = append(rows, renderTableRow(cells, widths, style))
	}

	filterInfo := ""
	if len(m.rows) != len(m.allRows) {
		filterInfo = fmt.Sprintf("  ·  filtered: %d/%d", len(m.rows), len(m.allRows))
	}
	pageInfo := ""
	if m.pageInfo.Pages > 1 {
		pageInfo = fmt.Sprintf("  ·  page %d/%d", m.pageInfo.Page, m.pageInfo.Pages)
	}
	meta := m.TableMeta()
	if meta != "" {
		meta = "  ·  " + meta
	}
	rowPos := fmt.Sprintf("  ·  row %d/%d", (m.pageInfo.Page-1)*m.pageInfo.Size+m.cursor+1, len(m.rows))
	status := StatusBarStyle.Render(fmt.Sprintf("%d %s%s%s%s%s", len(m.rows), m.spec.noun, rowPos, pageInfo, filterInfo, meta))

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		divider,
		strings.Join(rows, "\n"),
	)
	statusHeight := lipgloss.Height(status)
	contentHeight := lipgloss.Height(content)
	spacerHeight := max(0, height-contentHeight-statusHeight)
	spacer := lipgloss.NewStyle().Height(spacerHeight).Render("")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		spacer,
		status,
	)
}

// MoveDown moves the cursor down.
func (m *tableModel[T]) MoveDown() {
	if m.cursor < len(m.pageRows)-1 {
		m.cursor++
		vh := m.viewportHeight
		if vh == 0 {
			vh = 10
		}
		if m.cursor >= m.offset+vh {
			m.offset++
		}
	}
}

// MoveUp moves the cursor up.
func (m *tableModel[T]) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
		if m.cursor < m.offset {
			m.offset--
		}
	}
}

// JumpToTop jumps to the first item.
func (m *tableModel[T]) JumpToTop() {
	m.cursor = 0
	m.offset = 0
}

// JumpToBottom jumps to the last item.
func (m *tableModel[T]) JumpToBottom() {
	if len(m.pageRows) > 0 {
		m.cursor = len(m.pageRows) - 1
		vh := m.viewportHeight
		if vh == 0 {
			vh = 10
		}
		if m.cursor >= vh {
			m.offset = m.cursor - vh + 1
		}
	}
}

// HalfPageDown moves down half a page.
func (m *tableModel[T]) HalfPageDown(pageSize int) {
	if len(m.pageRows) == 0 {
		return
	}
	m.cursor += pageSize / 2
	if m.cursor >= len(m.pageRows) {
		m.cursor = len(m.pageRows) - 1
	}
	vh := m.viewportHeight
	if vh == 0 {
		vh = 10
	}
	if m.cursor >= m.offset+vh {
		m.offset = m.cursor - vh + 1
	}
}

// HalfPageUp moves up half a page.
func (m *tableModel[T]) HalfPageUp(pageSize int) {
	m.cursor -= pageSize / 2
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
}

func renderTableRow(cells []string, widths []int, style lipgloss.Style) string {
	var parts []string
	for i, cell := range cells {
		if i >= len(widths) {
			continue
		}
		parts = append(parts, style.Width(widths[i]).Render(cell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, parts...)
}

func renderTableDivider(widths []int) string {
	total := 0
	for _, w := range widths {
		total += w
	}
	total += (len(widths) - 1) * tableSeparatorWidth()
	return DividerStyle.Render(strings.Repeat("─", max(total, 0)))
}

// Cells are padded by their style, so no extra separator is drawn.
func tableSeparatorWidth() int { return 0 }

func formatHeaderLabel(label string) string {
	return strings.ToUpper(label)
}

func renderActiveHeaderLabel(label string) string {
	return lipgloss.NewStyle().Underline(true).Render(label)
}
