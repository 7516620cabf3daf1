package stats

import (
	"time"

	"foodies/internal/model"

	"github.com/shopspring/decimal"
)

// TrendMonths is the number of calendar months shown in trends.
const TrendMonths = 6

const monthLayout = "2006-01"

// MonthCount is one bucket of a count trend.
type MonthCount struct {
	Key   string
	Count int
}

// MonthSum is one bucket of an amount trend.
type MonthSum struct {
	Key    string
	Amount decimal.Decimal
}

// MonthKeys returns n YYYY-MM keys ending with the month of now.
func MonthKeys(now time.Time, n int) []string {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = first.AddDate(0, i-(n-1), 0).Format(monthLayout)
	}
	return keys
}

// MonthKey buckets a stored date or timestamp. Empty or unparseable values
// fall into the month of now.
func MonthKey(raw string, now time.Time) string {
	if t, err := time.ParseInLocation(model.DateLayout, raw, now.Location()); err == nil {
		return t.Format(monthLayout)
	}
	if t, ok := model.ParseTimestamp(raw); ok {
		return t.In(now.Location()).Format(monthLayout)
	}
	return now.Format(monthLayout)
}

// CountTrend counts items per month over the trailing window. Every month
// is present, with zero when nothing falls in it.
func CountTrend[T any](items []T, date func(T) string, now time.Time) []MonthCount {
	counts := CountBy(items, func(it T) string { return MonthKey(date(it), now) })
	keys := MonthKeys(now, TrendMonths)
	out := make([]MonthCount, len(keys))
	for i, k := range keys {
		out[i] = MonthCount{Key: k, Count: counts[k]}
	}
	return out
}

// SumTrend sums value per month over the trailing window.
func SumTrend[T any](items []T, date func(T) string, value func(T) decimal.Decimal, now time.Time) []MonthSum {
	sums := make(map[string]decimal.Decimal)
	for _, it := range items {
		k := MonthKey(date(it), now)
		sums[k] = sums[k].Add(value(it))
	}
	keys := MonthKeys(now, TrendMonths)
	out := make([]MonthSum, len(keys))
	for i, k := range keys {
		amount, ok := sums[k]
		if !ok {
			amount = decimal.Zero
		}
		out[i] = MonthSum{Key: k, Amount: amount}
	}
	return out
}

func foodDate(f model.Food) string { return f.CreatedAt }
func tripDate(t model.Trip) string { return t.Date }
