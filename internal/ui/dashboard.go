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

// DashboardModel is the overview tab.
type DashboardModel struct {
	data     stats.DashboardData
	settings model.Settings
	now      time.Time
}

// NewDashboardModel computes the overview of doc.
func NewDashboardModel(doc model.Document, st model.Settings, now time.Time) *DashboardModel {
	return &DashboardModel{
		data:     stats.Dashboard(doc, now),
		settings: st,
		now:      now,
	}
}

// View renders the dashboard as two columns of panels.
func (m *DashboardModel) View(width, height int) string {
	d := m.data
	if d.Places+d.Shops+d.Foods+d.Trips == 0 {
		return EmptyStateStyle.Width(width).Height(height).Render(
			"    Nothing here yet.\n    Add a place from the Places tab, or run  foodies seed.")
	}

	colWidth := max(30, (width-6)/2)

	counts := strings.Join([]string{
		renderField("Places", fmt.Sprint(d.Places)),
		renderField("Shops", fmt.Sprint(d.Shops)),
		renderField("Foods", fmt.Sprint(d.Foods)),
		renderField("Favorites", fmt.Sprint(d.Favorites)),
		renderField("Trips", fmt.Sprintf("%d (%d main, %d entries)", d.TripStats.Total, d.TripStats.Mains, d.TripStats.Entries)),
		renderField("Avg food rating", util.FormatAvgRating(d.AvgRating)),
		renderField("Avg price", averagePriceCell(stats.EntitySummary{AvgPrice: d.AvgPrice}, m.settings)),
		renderField("Trip spend", util.FormatAmount(d.TripStats.TotalExpense, m.settings)),
	}, "\n")

	kinds := make([]string, 0, len(model.Kinds))
	maxKind := 0
	for _, n := range d.FoodsByKind {
		maxKind = max(maxKind, n)
	}
	for _, k := range model.Kinds {
		n := d.FoodsByKind[string(k)]
		if n == 0 {
			continue
		}
		kinds = append(kinds, fmt.Sprintf("%-12s %s %d", util.KindLabel(k), bar(n, maxKind, colWidth-24), n))
	}

	var topShops []string
	for i, s := range d.TopShops {
		topShops = append(topShops, fmt.Sprintf("%d. %s (%d)", i+1, s.Shop.Name, s.Count))
	}
	var topFoods []string
	for i, f := range d.TopFoods {
		topFoods = append(topFoods, fmt.Sprintf("%d. %s %s", i+1, f.Name,
			RatingStyle.Render(util.FormatFoodRating(f.Rating))))
	}
	var recent []string
	for _, f := range d.RecentFoods {
		recent = append(recent, fmt.Sprintf("%s  %s", util.FormatDateHuman(dateOf(f.CreatedAt), m.now), f.Name))
	}
	var tags []string
	for _, t := range d.TopTripTags {
		tags = append(tags, fmt.Sprintf("#%s (%d)", t.Tag, t.Count))
	}

	shopTitle := func(s model.Shop) string { return s.Name }
	placeTitle := func(p model.Place) string { return p.Name }

	left := lipgloss.JoinVertical(lipgloss.Left,
		panel("Overview", counts, colWidth),
		panel("Foods by kind", strings.Join(kinds, "\n"), colWidth),
		panel("Foods added per month", countTrend(d.FoodTrend, colWidth-16), colWidth),
		panel("Top shops by avg rating", orNone(ratingLines(d.TopShopsByRating, shopTitle)), colWidth),
		panel("Top places by avg rating", orNone(ratingLines(d.TopPlacesByRating, placeTitle)), colWidth),
		panel("Top shops by avg price", orNone(priceLines(d.TopShopsByPrice, shopTitle, m.settings)), colWidth),
		panel("Top places by avg price", orNone(priceLines(d.TopPlacesByPrice, placeTitle, m.settings)), colWidth),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		panel("Top shops", orNone(topShops), colWidth),
		panel("Top foods", orNone(topFoods), colWidth),
		panel("Recently added", orNone(recent), colWidth),
		panel("Trip tags", orNone([]string{strings.Join(tags, "  ")}), colWidth),
		panel("Trips per month", countTrend(d.TripCountTrend, colWidth-16), colWidth),
		panel("Trip spend per month", sumTrend(d.TripExpenseTrend, m.settings), colWidth),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

func ratingLines[T any](rows []stats.Averaged[T], name func(T) string) []string {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = fmt.Sprintf("%d. %s %s (%d foods)", i+1, name(r.Item),
			RatingStyle.Render(util.FormatAvgRating(r.AvgRating)), r.Foods)
	}
	return lines
}

func priceLines[T any](rows []stats.Averaged[T], name func(T) string, st model.Settings) []string {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = fmt.Sprintf("%d. %s %s (%d foods)", i+1, name(r.Item),
			averagePriceCell(stats.EntitySummary{AvgPrice: r.AvgPrice}, st), r.Foods)
	}
	return lines
}

func panel(title, body string, width int) string {
	return PanelStyle.Padding(0, 1).Width(width).Render(LabelStyle.Render(title) + "\n" + body)
}

func bar(n, maxN, width int) string {
	if maxN == 0 || width <= 0 {
		return ""
	}
	return BarStyle.Render(strings.Repeat("█", max(1, n*width/maxN)))
}

func countTrend(trend []stats.MonthCount, width int) string {
	maxN := 0
	for _, c := range trend {
		maxN = max(maxN, c.Count)
	}
	lines := make([]string, len(trend))
	for i, c := range trend {
		lines[i] = fmt.Sprintf("%s %s %d", c.Key, bar(c.Count, maxN, width), c.Count)
	}
	return strings.Join(lines, "\n")
}

func sumTrend(trend []stats.MonthSum, st model.Settings) string {
	lines := make([]string, len(trend))
	for i, s := range trend {
		lines[i] = fmt.Sprintf("%s %s", s.Key, util.FormatAmount(s.Amount, st))
	}
	return strings.Join(lines, "\n")
}

func orNone(lines []string) string {
	if len(lines) == 0 || (len(lines) == 1 && lines[0] == "") {
		return HelpDescStyle.Render("none yet")
	}
	return strings.Join(lines, "\n")
}
