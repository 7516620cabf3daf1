package stats

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"foodies/internal/model"

	"github.com/shopspring/decimal"
)

// Predicate selects trips. A nil Predicate accepts every trip.
type Predicate func(model.Trip) bool

func (p Predicate) pass(t model.Trip) bool {
	return p == nil || p(t)
}

// RollupSort orders roll-up rows.
type RollupSort string

const (
	SortByCombined RollupSort = "combined"
	SortByEntries  RollupSort = "entries"
	SortByTitle    RollupSort = "title"
)

// RollupRow combines a main trip with its journal entries.
type RollupRow struct {
	Trip            model.Trip
	Entries         int
	ParentExpense   decimal.Decimal
	ChildrenExpense decimal.Decimal
	CombinedTotal   decimal.Decimal
	CombinedBudget  decimal.Decimal
	BudgetRemaining decimal.Decimal
	Categories      map[string]decimal.Decimal
	EntryTrend      []MonthCount
}

// Rollup computes the combined figures for parent. The parent's own
// expenses and budget count only when it passes; each entry counts only when
// that entry passes.
func Rollup(parent model.Trip, all []model.Trip, pass Predicate, now time.Time) RollupRow {
	var children []model.Trip
	for _, t := range all {
		if t.ParentID != nil && *t.ParentID == parent.ID && pass.pass(t) {
			children = append(children, t)
		}
	}

	row := RollupRow{
		Trip:            parent,
		Entries:         len(children),
		ParentExpense:   decimal.Zero,
		ChildrenExpense: decimal.Zero,
		Categories:      make(map[string]decimal.Decimal),
	}
	parentBudget := decimal.Zero
	if pass.pass(parent) {
		row.ParentExpense = ExpenseTotal(parent)
		parentBudget = ParseOrZero(string(parent.Budget))
		addCategories(row.Categories, parent.Expenses)
	}

	childrenBudget := decimal.Zero
	for _, ch := range children {
		row.ChildrenExpense = row.ChildrenExpense.Add(ExpenseTotal(ch))
		childrenBudget = childrenBudget.Add(ParseOrZero(string(ch.Budget)))
		addCategories(row.Categories, ch.Expenses)
	}

	row.CombinedTotal = row.ParentExpense.Add(row.ChildrenExpense)
	row.CombinedBudget = parentBudget.Add(childrenBudget)
	row.BudgetRemaining = row.CombinedBudget.Sub(row.CombinedTotal)
	row.EntryTrend = CountTrend(children, tripDate, now)
	return row
}

// Rollups builds a row for every main trip that passes or has a passing
// entry, ordered by sortKey.
func Rollups(all []model.Trip, pass Predicate, sortKey RollupSort, now time.Time) []RollupRow {
	var rows []RollupRow
	for _, p := range MainTrips(all) {
		include := pass.pass(p)
		if !include {
			for _, t := range all {
				if t.ParentID != nil && *t.ParentID == p.ID && pass.pass(t) {
					include = true
					break
				}
			}
		}
		if include {
			rows = append(rows, Rollup(p, all, pass, now))
		}
	}

	byTitle := func(a, b RollupRow) int { return strings.Compare(a.Trip.Title, b.Trip.Title) }
	slices.SortStableFunc(rows, func(a, b RollupRow) int {
		switch sortKey {
		case SortByCombined:
			if c := b.CombinedTotal.Cmp(a.CombinedTotal); c != 0 {
				return c
			}
		case SortByEntries:
			if c := cmp.Compare(b.Entries, a.Entries); c != 0 {
				return c
			}
		}
		return byTitle(a, b)
	})
	return rows
}

// CategoryTotal is one category of a breakdown.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// SortedCategories lists a breakdown largest first, then by name.
func SortedCategories(m map[string]decimal.Decimal) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(m))
	for k, v := range m {
		out = append(out, CategoryTotal{Category: k, Amount: v})
	}
	slices.SortFunc(out, func(a, b CategoryTotal) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return strings.Compare(a.Category, b.Category)
	})
	return out
}

// MainTrips returns trips that are not entries of an existing trip.
func MainTrips(all []model.Trip) []model.Trip {
	ids := tripIDs(all)
	var out []model.Trip
	for _, t := range all {
		if !isEntry(t, ids) {
			out = append(out, t)
		}
	}
	return out
}

func tripIDs(all []model.Trip) map[string]bool {
	ids := make(map[string]bool, len(all))
	for _, t := range all {
		ids[t.ID] = true
	}
	return ids
}

func isEntry(t model.Trip, ids map[string]bool) bool {
	return !t.IsMain() && ids[*t.ParentID]
}

// OrderedEntries sorts journal entries by order, treating a missing or
// non-numeric order as 0, then by date.
func OrderedEntries(children []model.Trip) []model.Trip {
	out := slices.Clone(children)
	slices.SortStableFunc(out, func(a, b model.Trip) int {
		if c := cmp.Compare(orderOf(a), orderOf(b)); c != 0 {
			return c
		}
		return strings.Compare(a.Date, b.Date)
	})
	return out
}

func orderOf(t model.Trip) float64 {
	o, _ := t.Order.Float()
	return o
}

// TripStats summarises a list of trips.
type TripStats struct {
	Total             int
	Mains             int
	Entries           int
	AvgRating         float64
	TotalExpense      decimal.Decimal
	UniqueTags        int
	AvgEntriesPerMain float64
}

// TripSummary summarises view. all is the full collection, used to resolve
// parents and to count entries per main trip even when view hides some.
func TripSummary(view, all []model.Trip) TripStats {
	ids := tripIDs(all)
	st := TripStats{Total: len(view), TotalExpense: decimal.Zero}

	ratingSum := 0.0
	tags := model.Tags{}
	for _, t := range view {
		if isEntry(t, ids) {
			st.Entries++
		} else {
			st.Mains++
		}
		r, _ := t.Rating.Float()
		ratingSum += r
		st.TotalExpense = st.TotalExpense.Add(ExpenseTotal(t))
		for _, tag := range t.Tags {
			tags, _ = tags.Add(tag)
		}
	}
	if st.Total > 0 {
		st.AvgRating = ratingSum / float64(st.Total)
	}
	st.UniqueTags = len(tags)

	perParent := make(map[string]int)
	for _, t := range all {
		if isEntry(t, ids) {
			perParent[*t.ParentID]++
		}
	}
	if len(perParent) > 0 {
		st.AvgEntriesPerMain = float64(len(all)-len(MainTrips(all))) / float64(len(perParent))
	}
	return st
}
