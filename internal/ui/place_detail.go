package ui

import (
	"fmt"
	"strings"

	"foodies/internal/model"
	"foodies/internal/stats"
	"foodies/internal/util"

	"github.com/charmbracelet/lipgloss"
)

// childList is the cursor over the children shown under a detail screen.
type childList struct {
	ids    []string
	cursor int
}

func (c *childList) MoveDown() {
	if c.cursor < len(c.ids)-1 {
		c.cursor++
	}
}

func (c *childList) MoveUp() {
	if c.cursor > 0 {
		c.cursor--
	}
}

func (c *childList) Selected() string {
	if len(c.ids) == 0 {
		return ""
	}
	return c.ids[min(c.cursor, len(c.ids)-1)]
}

// keep restores the cursor to the child it was on before a reload.
func (c *childList) keep(prev string) {
	for i, id := range c.ids {
		if id == prev {
			c.cursor = i
			return
		}
	}
	c.cursor = min(c.cursor, max(len(c.ids)-1, 0))
}

func (c *childList) render(lines []string) string {
	out := make([]string, len(lines))
	for i, l := range lines {
		if i == c.cursor {
			out[i] = SelectedRowStyle.Render("▸ " + l)
		} else {
			out[i] = NormalRowStyle.Render("  " + l)
		}
	}
	return strings.Join(out, "\n")
}

// PlaceDetailModel shows a place and the shops located in it.
type PlaceDetailModel struct {
	place    model.Place
	summary  stats.EntitySummary
	shops    []model.Shop
	foods    map[string]int
	settings model.Settings
	children childList
}

// NewPlaceDetailModel builds the detail of place id, reporting false when
// the place no longer exists.
func NewPlaceDetailModel(doc model.Document, id string, st model.Settings) (*PlaceDetailModel, bool) {
	p, ok := doc.PlaceByID(id)
	if !ok {
		return nil, false
	}
	m := &PlaceDetailModel{
		place:    p,
		summary:  stats.PlaceSummary(doc, id),
		shops:    doc.ShopsOf(id),
		foods:    make(map[string]int),
		settings: st,
	}
	for _, s := range m.shops {
		m.foods[s.ID] = len(doc.FoodsOf(s.ID))
		m.children.ids = append(m.children.ids, s.ID)
	}
	return m, true
}

// View renders the place detail.
func (m *PlaceDetailModel) View(width, height int) string {
	p := m.place
	header := shortcutsHeader("a add shop  e edit  d delete  h back", width)

	fields := []string{
		renderField("Name", p.Name),
		renderField("Address", p.Address),
		renderField("City", p.City),
		renderField("State", p.State),
		renderField("Shops", fmt.Sprint(m.summary.Shops)),
		renderField("Foods", fmt.Sprint(m.summary.Foods)),
		renderField("Avg rating", util.FormatAvgRating(m.summary.AvgRating)),
		renderField("Avg price", averagePriceCell(m.summary, m.settings)),
	}

	sections := []string{strings.Join(fields, "\n"), divider(width)}
	if len(m.shops) == 0 {
		sections = append(sections, HelpDescStyle.Render("No shops here yet. Press 'a' to add one!"))
	} else {
		lines := make([]string, len(m.shops))
		for i, s := range m.shops {
			lines[i] = fmt.Sprintf("%-24s %s  %d foods", util.TruncateString(s.Name, 24), util.OrPlaceholder(s.Address), m.foods[s.ID])
		}
		sections = append(sections, LabelStyle.Render("Shops:"), m.children.render(lines))
	}

	info := PanelStyle.
		Width(width - 4).
		Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(lipgloss.Left, header, info)
}

// ShopDetailModel shows a shop and its foods.
type ShopDetailModel struct {
	shop     model.Shop
	place    string
	summary  stats.EntitySummary
	foods    []model.Food
	settings model.Settings
	children childList
}

// NewShopDetailModel builds the detail of shop id, reporting false when the
// shop no longer exists.
func NewShopDetailModel(doc model.Document, id string, st model.Settings) (*ShopDetailModel, bool) {
	s, ok := doc.ShopByID(id)
	if !ok {
		return nil, false
	}
	m := &ShopDetailModel{
		shop:     s,
		place:    placeName(doc, s.PlaceID),
		summary:  stats.ShopSummary(doc, id),
		foods:    doc.FoodsOf(id),
		settings: st,
	}
	for _, f := range m.foods {
		m.children.ids = append(m.children.ids, f.ID)
	}
	return m, true
}

// View renders the shop detail.
func (m *ShopDetailModel) View(width, height int) string {
	s := m.shop
	header := shortcutsHeader("a add food  e edit  d delete  h back", width)

	fields := []string{
		renderField("Name", s.Name),
		renderField("Address", s.Address),
		renderField("Place", m.place),
		renderField("Foods", fmt.Sprint(m.summary.Foods)),
		renderField("Avg rating", util.FormatAvgRating(m.summary.AvgRating)),
		renderField("Avg price", averagePriceCell(m.summary, m.settings)),
	}

	sections := []string{strings.Join(fields, "\n"), divider(width)}
	if len(m.foods) == 0 {
		sections = append(sections, HelpDescStyle.Render("No foods logged yet. Press 'a' to add one!"))
	} else {
		lines := make([]string, len(m.foods))
		for i, f := range m.foods {
			lines[i] = fmt.Sprintf("%-24s %-12s %-14s %s %s",
				util.TruncateString(f.Name, 24),
				util.KindLabel(f.Kind),
				util.FormatPrice(string(f.Price), m.settings),
				util.FormatFoodRating(f.Rating),
				util.FormatFavorite(f.Favorite))
		}
		sections = append(sections, LabelStyle.Render("Foods:"), m.children.render(lines))
	}

	info := PanelStyle.
		Width(width - 4).
		Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(lipgloss.Left, header, info)
}

func renderField(label, value string) string {
	if value == "" {
		value = util.Placeholder
	}
	return LabelStyle.Render(label+":") + " " + NormalRowStyle.Render(value)
}

func divider(width int) string {
	return DividerStyle.
		Render(strings.Repeat("─", max(width-8, 0)))
}
