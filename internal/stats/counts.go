package stats

import (
	"foodies/internal/model"

	"github.com/shopspring/decimal"
)

// CountBy groups items by key. Keys with no items are absent.
func CountBy[T any](items []T, key func(T) string) map[string]int {
	out := make(map[string]int)
	for _, it := range items {
		out[key(it)]++
	}
	return out
}

// FoodsByKind counts foods per kind.
func FoodsByKind(foods []model.Food) map[string]int {
	return CountBy(foods, func(f model.Food) string { return string(f.Kind) })
}

// TagCounts counts how many trips carry each tag. Tags are counted under
// their stored spelling.
func TagCounts(trips []model.Trip) map[string]int {
	out := make(map[string]int)
	for _, t := range trips {
		for _, tag := range t.Tags {
			out[tag]++
		}
	}
	return out
}

// CountFavorites counts foods marked favorite.
func CountFavorites(foods []model.Food) int {
	n := 0
	for _, f := range foods {
		if f.Favorite {
			n++
		}
	}
	return n
}

// AverageRating averages the foods whose rating is a number. Absent and
// non-numeric ratings are left out; 0 counts.
func AverageRating(foods []model.Food) float64 {
	sum, n := 0.0, 0
	for _, f := range foods {
		r, ok := f.Rating.Float()
		if !ok {
			continue
		}
		sum += r
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// AveragePrice averages the foods whose price parses as a number.
func AveragePrice(foods []model.Food) decimal.Decimal {
	var prices []decimal.Decimal
	for _, f := range foods {
		if p, ok := ParseOrAbsent(string(f.Price)); ok {
			prices = append(prices, p)
		}
	}
	return Mean(prices)
}

// ExpenseTotal sums every expense of a trip.
func ExpenseTotal(t model.Trip) decimal.Decimal {
	return sumExpenses(t.Expenses)
}

func sumExpenses(expenses []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(ParseOrZero(string(e.Amount)))
	}
	return total
}

// OtherCategory is used for expenses without a category.
const OtherCategory = "Other"

// ExpensesByCategory sums expenses per category.
func ExpensesByCategory(expenses []model.Expense) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	addCategories(out, expenses)
	return out
}

func addCategories(dst map[string]decimal.Decimal, expenses []model.Expense) {
	for _, e := range expenses {
		k := e.Category
		if k == "" {
			k = OtherCategory
		}
		dst[k] = dst[k].Add(ParseOrZero(string(e.Amount)))
	}
}
