// Package export renders the collections as CSV, JSON backups, single-trip
// JSON and a printable text report.
package export

import (
	"io"
	"slices"
	"strconv"
	"strings"

	"foodies/internal/model"
	"foodies/internal/stats"
	"foodies/internal/util"

	"github.com/shopspring/decimal"
)

// Table is a CSV header plus rows of already formatted cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// WriteCSV writes the header comma-joined, then every row with each field
// quoted and embedded quotes doubled. Lines are separated by "\n".
func WriteCSV(w io.Writer, t Table) error {
	var b strings.Builder
	b.WriteString(strings.Join(t.Header, ","))
	for _, row := range t.Rows {
		b.WriteByte('\n')
		for i, cell := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quote(cell))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

var (
	placeHeader = []string{"Name", "Address", "City", "State", "Shops", "Foods", "AvgRating", "AvgPrice"}
	shopHeader  = []string{"Name", "Address", "Place", "City", "State", "Foods", "AvgRating", "AvgPrice"}
	tripHeader  = []string{"Date", "Title", "ParentTitle", "Rating", "Places", "Shops", "Foods", "Timeline",
		"Activities", "Expenses", "TotalExpense", "Budget", "BudgetRemaining", "Tags", "PlaceNames",
		"ShopNames", "FoodNames", "Description"}
)

// PlacesCSV projects places with shop and food counts and averages. The
// Currency and AvgPriceFormatted columns are added when formatted is set.
func PlacesCSV(places []model.Place, doc model.Document, st model.Settings, formatted bool) Table {
	t := Table{Header: withFormatted(placeHeader, "AvgPriceFormatted", formatted)}
	for _, p := range places {
		sum := stats.PlaceSummary(doc, p.ID)
		row := []string{p.Name, p.Address, p.City, p.State, itoa(sum.Shops), itoa(sum.Foods),
			avgRating(sum.AvgRating), sum.AvgPrice.Round(0).String()}
		if formatted {
			row = append(row, st.Currency, formattedAverage(sum.AvgPrice, st))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// ShopsCSV projects shops with their place and food figures.
func ShopsCSV(shops []model.Shop, doc model.Document, st model.Settings, formatted bool) Table {
	t := Table{Header: withFormatted(shopHeader, "AvgPriceFormatted", formatted)}
	for _, s := range shops {
		place, _ := doc.PlaceByID(s.PlaceID)
		sum := stats.ShopSummary(doc, s.ID)
		row := []string{s.Name, s.Address, place.Name, place.City, place.State, itoa(sum.Foods),
			avgRating(sum.AvgRating), sum.AvgPrice.Round(0).String()}
		if formatted {
			row = append(row, st.Currency, formattedAverage(sum.AvgPrice, st))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// FoodsCSV projects foods. Price is left blank when it is not numeric.
func FoodsCSV(foods []model.Food, doc model.Document, st model.Settings, formatted bool) Table {
	header := []string{"Name", "Kind", "Shop", "Price"}
	if formatted {
		header = append(header, "Currency", "PriceFormatted")
	}
	header = append(header, "Rating", "Favorite", "ImageURL", "CreatedAt")

	t := Table{Header: header}
	for _, f := range foods {
		shop, _ := doc.ShopByID(f.ShopID)
		price := ""
		if d, ok := stats.ParseOrAbsent(string(f.Price)); ok {
			price = d.String()
		}
		row := []string{f.Name, string(f.Kind), shop.Name, price}
		if formatted {
			pf := ""
			if f.Price != "" {
				pf = util.FormatPrice(string(f.Price), st)
			}
			row = append(row, st.Currency, pf)
		}
		row = append(row, ratingText(f.Rating), yesNo(f.Favorite), f.ImageURL, f.CreatedAt)
		t.Rows = append(t.Rows, row)
	}
	return t
}

// TripsCSV projects trips with counts, expense totals and resolved names.
// Names of deleted entities are skipped.
func TripsCSV(trips []model.Trip, doc model.Document) Table {
	t := Table{Header: tripHeader}
	for _, tr := range trips {
		total := stats.ExpenseTotal(tr)
		budget := stats.ParseOrZero(string(tr.Budget))
		parentTitle := ""
		if !tr.IsMain() {
			if p, ok := doc.TripByID(*tr.ParentID); ok {
				parentTitle = p.Title
			}
		}
		t.Rows = append(t.Rows, []string{
			tr.Date,
			tr.Title,
			parentTitle,
			ratingText(tr.Rating),
			itoa(len(tr.PlaceIDs)),
			itoa(len(tr.ShopIDs)),
			itoa(len(tr.FoodIDs)),
			itoa(len(tr.Timeline)),
			itoa(len(tr.Activities)),
			itoa(len(tr.Expenses)),
			total.String(),
			budget.String(),
			budget.Sub(total).String(),
			strings.Join(tr.Tags, "; "),
			names(tr.PlaceIDs, func(id string) string { p, _ := doc.PlaceByID(id); return p.Name }),
			names(tr.ShopIDs, func(id string) string { s, _ := doc.ShopByID(id); return s.Name }),
			names(tr.FoodIDs, func(id string) string { f, _ := doc.FoodByID(id); return f.Name }),
			strings.ReplaceAll(tr.Description, "\n", " "),
		})
	}
	return t
}

// RollupCSV projects roll-up rows, with one Cat:<name> column per category
// seen in any row.
func RollupCSV(rows []stats.RollupRow) Table {
	seen := map[string]bool{}
	var cats []string
	for _, r := range rows {
		for k := range r.Categories {
			if !seen[k] {
				seen[k] = true
				cats = append(cats, k)
			}
		}
	}
	slices.Sort(cats)

	header := []string{"Title", "Date", "Entries", "ParentExpense", "ChildrenExpense", "CombinedTotal",
		"CombinedBudget", "BudgetRemaining", "TopCategories", "Tags"}
	for _, c := range cats {
		header = append(header, "Cat:"+c)
	}

	t := Table{Header: header}
	for _, r := range rows {
		var top []string
		for i, c := range stats.SortedCategories(r.Categories) {
			if i == 5 {
				break
			}
			top = append(top, c.Category+":"+c.Amount.String())
		}
		row := []string{
			r.Trip.Title, r.Trip.Date, itoa(r.Entries),
			r.ParentExpense.String(), r.ChildrenExpense.String(), r.CombinedTotal.String(),
			r.CombinedBudget.String(), r.BudgetRemaining.String(),
			strings.Join(top, "; "), strings.Join(r.Trip.Tags, "; "),
		}
		for _, c := range cats {
			v, ok := r.Categories[c]
			if !ok {
				v = decimal.Zero
			}
			row = append(row, v.String())
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func withFormatted(base []string, formattedName string, formatted bool) []string {
	out := append([]string{}, base...)
	if formatted {
		out = append(out, "Currency", formattedName)
	}
	return out
}

func formattedAverage(d decimal.Decimal, st model.Settings) string {
	if d.IsZero() {
		return ""
	}
	return util.FormatAmount(d, st)
}

func avgRating(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func itoa(n int) string { return strconv.Itoa(n) }

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func names(ids []string, lookup func(string) string) string {
	var out []string
	for _, id := range ids {
		if n := lookup(id); n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, "; ")
}

// ratingText writes an absent rating as 0 and anything else as stored.
func ratingText(r model.Number) string {
	if r == "" {
		return "0"
	}
	return r.Text()
}
