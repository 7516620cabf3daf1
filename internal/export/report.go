package export

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"foodies/internal/model"
	"foodies/internal/stats"
	"foodies/internal/util"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	reportTitle   = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	reportSection = lipgloss.NewStyle().Bold(true).Underline(true)
	reportMuted   = lipgloss.NewStyle().Faint(true)
)

// WriteReport renders the printable summary: overview counts, averages,
// foods by kind and every food.
func WriteReport(w io.Writer, doc model.Document, st model.Settings) error {
	var b strings.Builder
	favorites := stats.CountFavorites(doc.Foods)
	avgPrice := stats.AveragePrice(doc.Foods)

	b.WriteString(reportTitle.Render("Foodies Report"))
	b.WriteString("\n")
	b.WriteString(reportMuted.Render(fmt.Sprintf("Prices shown in %s • Locale: %s • Fraction digits: %d",
		st.Currency, st.Locale, st.PriceFractionDigits)))
	b.WriteString("\n\n")

	b.WriteString(reportSection.Render("Overview"))
	b.WriteString("\n")
	b.WriteString(newTable("Places", "Shops", "Foods", "Favorites").
		Row(strconv.Itoa(len(doc.Places)), strconv.Itoa(len(doc.Shops)), strconv.Itoa(len(doc.Foods)), strconv.Itoa(favorites)).
		String())
	b.WriteString("\n\n")

	price := util.Placeholder
	if !avgPrice.IsZero() {
		price = util.FormatAmount(avgPrice, st)
	}
	b.WriteString(reportSection.Render("Averages"))
	b.WriteString("\n")
	b.WriteString(newTable("Avg Rating", "Avg Price").
		Row(strconv.FormatFloat(stats.AverageRating(doc.Foods), 'f', 1, 64), price).
		String())
	b.WriteString("\n\n")

	b.WriteString(reportSection.Render("Foods by Kind"))
	b.WriteString("\n")
	byKind := stats.FoodsByKind(doc.Foods)
	kinds := newTable("Kind", "Count")
	if len(byKind) == 0 {
		kinds.Row("No data", "")
	}
	for _, k := range sortedKeys(byKind) {
		kinds.Row(util.KindLabel(model.Kind(k)), strconv.Itoa(byKind[k]))
	}
	b.WriteString(kinds.String())
	b.WriteString("\n\n")

	b.WriteString(reportSection.Render("Foods"))
	b.WriteString("\n")
	foods := newTable("Name", "Kind", "Shop", "Rating", "Price")
	if len(doc.Foods) == 0 {
		foods.Row("No foods", "", "", "", "")
	}
	for _, f := range doc.Foods {
		shop, ok := doc.ShopByID(f.ShopID)
		shopName := util.Placeholder
		if ok {
			shopName = shop.Name
		}
		foods.Row(f.Name, string(f.Kind), shopName, ratingText(f.Rating), util.FormatPrice(string(f.Price), st))
	}
	b.WriteString(foods.String())
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
