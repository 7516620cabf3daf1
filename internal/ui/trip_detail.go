package ui

import (
	"fmt"
	"strings"
	"time"

	"foodies/internal/model"
	"foodies/internal/stats"
	"foodies/internal/util"

	"github.com/charmbracelet/lipgloss"
)

// TripDetailModel shows a trip, its journal entries and, for a main trip,
// the combined roll-up of the trip and its entries.
type TripDetailModel struct {
	trip     model.Trip
	parent   string
	isEntry  bool
	places   []string
	shops    []string
	foods    []string
	entries  []model.Trip
	rollup   *stats.RollupRow
	settings model.Settings
	children childList
}

// NewTripDetailModel builds the detail of trip id, reporting false when the
// trip no longer exists.
func NewTripDetailModel(doc model.Document, id string, st model.Settings, now time.Time) (*TripDetailModel, bool) {
	t, ok := doc.TripByID(id)
	if !ok {
		return nil, false
	}
	m := &TripDetailModel{
		trip:     t,
		isEntry:  doc.IsEntry(t),
		settings: st,
	}
	if m.isEntry {
		m.parent = tripLabel(doc, *t.ParentID)
	}
	for _, pid := range t.PlaceIDs {
		m.places = append(m.places, placeLabel(doc, pid))
	}
	for _, sid := range t.ShopIDs {
		m.shops = append(m.shops, shopLabel(doc, sid))
	}
	for _, fid := range t.FoodIDs {
		m.foods = append(m.foods, foodLabel(doc, fid))
	}
	if !m.isEntry {
		m.entries = stats.OrderedEntries(doc.Children(id))
		for _, e := range m.entries {
			m.children.ids = append(m.children.ids, e.ID)
		}
		row := stats.Rollup(t, doc.Trips, nil, now)
		m.rollup = &row
	}
	return m, true
}

// moveEntry returns the entry ids with the selected entry shifted by delta,
// or nil when it cannot move.
func (m *TripDetailModel) moveEntry(delta int) []string {
	i := m.children.cursor
	j := i + delta
	if len(m.children.ids) < 2 || j < 0 || j >= len(m.children.ids) {
		return nil
	}
	ids := append([]string(nil), m.children.ids...)
	ids[i], ids[j] = ids[j], ids[i]
	m.children.ids = ids
	m.children.cursor = j
	return ids
}

// View renders the trip detail.
func (m *TripDetailModel) View(width, height int) string {
	t := m.trip
	help := "a add entry  J/K reorder  e edit  d delete  h back"
	if m.isEntry {
		help = "e edit  d delete  h back"
	}
	header := shortcutsHeader(help, width)

	fields := []string{
		renderField("Title", t.Title),
		renderField("Date", util.FormatDate(t.Date)),
		LabelStyle.Render("Rating:") + " " + RatingStyle.Render(util.FormatRatingStars(t.Rating.IntOr(0))),
		renderField("Tags", strings.Join(t.Tags, ", ")),
		renderField("Budget", util.FormatAmount(stats.ParseOrZero(string(t.Budget)), m.settings)),
		renderField("Spent", util.FormatAmount(stats.ExpenseTotal(t), m.settings)),
		renderField("Places", strings.Join(m.places, ", ")),
		renderField("Shops", strings.Join(m.shops, ", ")),
		renderField("Foods", strings.Join(m.foods, ", ")),
	}
	if m.isEntry {
		fields = append(fields, renderField("Entry of", m.parent))
	}
	sections := []string{strings.Join(fields, "\n")}

	if t.Description != "" {
		sections = append(sections, NormalRowStyle.Render(t.Description))
	}

	if len(t.Timeline) > 0 {
		lines := make([]string, len(t.Timeline))
		for i, item := range t.Timeline {
			lines[i] = fmt.Sprintf("%-6s %s", item.Time, item.Title)
			if item.Note != "" {
				lines[i] += HelpDescStyle.Render("  " + item.Note)
			}
		}
		sections = append(sections, LabelStyle.Render("Timeline:")+"\n"+strings.Join(lines, "\n"))
	}

	if len(t.Activities) > 0 {
		lines := make([]string, len(t.Activities))
		for i, a := range t.Activities {
			lines[i] = "• " + a.Title
			if a.Note != "" {
				lines[i] += HelpDescStyle.Render("  " + a.Note)
			}
		}
		sections = append(sections, LabelStyle.Render("Activities:")+"\n"+strings.Join(lines, "\n"))
	}

	if len(t.Expenses) > 0 {
		lines := make([]string, len(t.Expenses))
		for i, e := range t.Expenses {
			lines[i] = fmt.Sprintf("%-24s %-14s %s",
				util.TruncateString(e.Label, 24),
				util.FormatAmount(stats.ParseOrZero(string(e.Amount)), m.settings),
				HelpDescStyle.Render(util.OrPlaceholder(e.Category)))
		}
		sections = append(sections, LabelStyle.Render("Expenses:")+"\n"+strings.Join(lines, "\n"))
	}

	if m.rollup != nil {
		sections = append(sections, divider(width), m.renderRollup())
		if len(m.entries) == 0 {
			sections = append(sections, HelpDescStyle.Render("No journal entries yet. Press 'a' to add one!"))
		} else {
			lines := make([]string, len(m.entries))
			for i, e := range m.entries {
				lines[i] = fmt.Sprintf("%d. %s  %s  %s", i+1, util.FormatDate(e.Date), e.Title,
					util.FormatAmount(stats.ExpenseTotal(e), m.settings))
			}
			sections = append(sections, LabelStyle.Render("Journal entries:"), m.children.render(lines))
		}
	}

	info := PanelStyle.
		Width(width - 4).
		Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(lipgloss.Left, header, info)
}

func (m *TripDetailModel) renderRollup() string {
	r := m.rollup
	remaining := util.FormatAmount(r.BudgetRemaining, m.settings)
	if r.BudgetRemaining.IsNegative() {
		remaining = ErrorStyle.Padding(0).Render(remaining)
	}
	lines := []string{
		LabelStyle.Render("Roll-up"),
		renderField("Entries", fmt.Sprint(r.Entries)),
		renderField("Trip expenses", util.FormatAmount(r.ParentExpense, m.settings)),
		renderField("Entry expenses", util.FormatAmount(r.ChildrenExpense, m.settings)),
		renderField("Combined", util.FormatAmount(r.CombinedTotal, m.settings)),
		renderField("Combined budget", util.FormatAmount(r.CombinedBudget, m.settings)),
		LabelStyle.Render("Remaining:") + " " + remaining,
	}
	if cats := stats.SortedCategories(r.Categories); len(cats) > 0 {
		parts := make([]string, len(cats))
		for i, c := range cats {
			parts[i] = fmt.Sprintf("%s %s", c.Category, util.FormatAmount(c.Amount, m.settings))
		}
		lines = append(lines, renderField("By category", strings.Join(parts, " · ")))
	}
	return strings.Join(lines, "\n")
}
