package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"foodies/internal/model"
	"foodies/internal/query"
	"foodies/internal/stats"
	"foodies/internal/util"

	"github.com/shopspring/decimal"
)

func placesSpec(doc model.Document, st model.Settings) tableSpec[model.Place] {
	summaries := make(map[string]stats.EntitySummary, len(doc.Places))
	for _, p := range doc.Places {
		summaries[p.ID] = stats.PlaceSummary(doc, p.ID)
	}
	cell := func(p model.Place, key string) string {
		sum := summaries[p.ID]
		switch key {
		case query.KeyName:
			return p.Name
		case query.KeyAddress:
			return util.OrPlaceholder(p.Address)
		case query.KeyCity:
			return util.OrPlaceholder(p.City)
		case query.KeyState:
			return util.OrPlaceholder(p.State)
		case "shops":
			return strconv.Itoa(sum.Shops)
		case query.KeyFoods:
			return strconv.Itoa(sum.Foods)
		case query.KeyRating:
			return util.FormatAvgRating(sum.AvgRating)
		case query.KeyPrice:
			return averagePriceCell(sum, st)
		}
		return ""
	}
	return tableSpec[model.Place]{
		noun: "places",
		columns: []column{
			{key: query.KeyName, label: "name", width: 22},
			{key: query.KeyAddress, label: "address", width: 20},
			{key: query.KeyCity, label: "city", width: 14},
			{key: query.KeyState, label: "state", width: 12},
			{key: "shops", label: "shops", width: 6},
			{key: query.KeyFoods, label: "foods", width: 6},
			{key: query.KeyRating, label: "avg rating", width: 10, color: ColorYellow},
			{key: query.KeyPrice, label: "avg price", width: 14},
		},
		id:   func(p model.Place) string { return p.ID },
		cell: cell,
		value: func(p model.Place, key string) string {
			sum := summaries[p.ID]
			switch key {
			case "shops":
				return padCount(sum.Shops)
			case query.KeyFoods:
				return padCount(sum.Foods)
			case query.KeyRating:
				return fmt.Sprintf("%05.2f", sum.AvgRating)
			case query.KeyPrice:
				return padDecimal(sum.AvgPrice)
			}
			return strings.TrimPrefix(cell(p, key), util.Placeholder)
		},
		sortKeys: query.PlaceSortKeys,
		sort:     query.SortPlaces,
		search: func(places []model.Place, q string) []model.Place {
			return query.Places(places, query.ParsePlaceFilter(q))
		},
	}
}

func shopsSpec(doc model.Document, st model.Settings) tableSpec[model.Shop] {
	cell := func(s model.Shop, key string) string {
		switch key {
		case query.KeyName:
			return s.Name
		case query.KeyAddress:
			return util.OrPlaceholder(s.Address)
		case query.KeyPlace:
			return placeName(doc, s.PlaceID)
		case query.KeyCity:
			p, _ := doc.PlaceByID(s.PlaceID)
			return util.OrPlaceholder(p.City)
		case query.KeyFoods:
			return strconv.Itoa(len(doc.FoodsOf(s.ID)))
		case query.KeyRating:
			return util.FormatAvgRating(stats.AverageRating(doc.FoodsOf(s.ID)))
		case query.KeyPrice:
			return averagePriceCell(stats.ShopSummary(doc, s.ID), st)
		}
		return ""
	}
	return tableSpec[model.Shop]{
		noun: "shops",
		columns: []column{
			{key: query.KeyName, label: "name", width: 22},
			{key: query.KeyAddress, label: "address", width: 22},
			{key: query.KeyPlace, label: "place", width: 16},
			{key: query.KeyCity, label: "city", width: 14},
			{key: query.KeyFoods, label: "foods", width: 6},
			{key: query.KeyRating, label: "avg rating", width: 10, color: ColorYellow},
			{key: query.KeyPrice, label: "avg price", width: 14},
		},
		id:   func(s model.Shop) string { return s.ID },
		cell: cell,
		value: func(s model.Shop, key string) string {
			switch key {
			case query.KeyRating:
				return fmt.Sprintf("%05.2f", stats.AverageRating(doc.FoodsOf(s.ID)))
			case query.KeyPrice:
				return padDecimal(stats.AveragePrice(doc.FoodsOf(s.ID)))
			}
			return strings.TrimPrefix(cell(s, key), util.Placeholder)
		},
		sortKeys: query.ShopSortKeys,
		sort: func(shops []model.Shop, s query.Sort) []model.Shop {
			return query.SortShops(shops, doc, s)
		},
		search: func(shops []model.Shop, q string) []model.Shop {
			sf := query.ParseShopFilter(q)
			sf.PlaceID = refID(doc.Places, sf.PlaceID, func(p model.Place) (string, string) { return p.ID, p.Name })
			return keepIDs(query.Shops(doc, sf), shops, func(s model.Shop) string { return s.ID })
		},
	}
}

func foodsSpec(doc model.Document, st model.Settings, now time.Time) tableSpec[model.Food] {
	cell := func(f model.Food, key string) string {
		switch key {
		case query.KeyName:
			return f.Name
		case "kind":
			return util.KindLabel(f.Kind)
		case query.KeyShop:
			return shopName(doc, f.ShopID)
		case query.KeyPrice:
			return util.FormatPrice(string(f.Price), st)
		case query.KeyRating:
			return util.FormatFoodRating(f.Rating)
		case "favorite":
			return util.FormatFavorite(f.Favorite)
		case query.KeyDate:
			return util.FormatDateHuman(dateOf(f.CreatedAt), now)
		}
		return ""
	}
	return tableSpec[model.Food]{
		noun: "foods",
		columns: []column{
			{key: query.KeyName, label: "name", width: 22},
			{key: "kind", label: "kind", width: 12},
			{key: query.KeyShop, label: "shop", width: 18},
			{key: query.KeyPrice, label: "price", width: 14},
			{key: query.KeyRating, label: "rating", width: 8, color: ColorYellow},
			{key: "favorite", label: "fav", width: 4, color: ColorRed},
			{key: query.KeyDate, label: "added", width: 12},
		},
		id:   func(f model.Food) string { return f.ID },
		cell: cell,
		value: func(f model.Food, key string) string {
			switch key {
			case "kind":
				return string(f.Kind)
			case "favorite":
				if f.Favorite {
					return "yes"
				}
				return ""
			}
			return strings.TrimPrefix(cell(f, key), util.Placeholder)
		},
		sortKeys: query.FoodSortKeys,
		sort: func(foods []model.Food, s query.Sort) []model.Food {
			return query.SortFoods(foods, doc, s)
		},
		search: func(foods []model.Food, q string) []model.Food {
			ff := query.ParseFoodFilter(q)
			ff.ShopID = refID(doc.Shops, ff.ShopID, func(s model.Shop) (string, string) { return s.ID, s.Name })
			return query.Foods(foods, ff)
		},
	}
}

func tripsSpec(doc model.Document, st model.Settings) tableSpec[model.Trip] {
	cell := func(t model.Trip, key string) string {
		switch key {
		case query.KeyDate:
			return util.FormatDate(t.Date)
		case query.KeyTitle:
			if doc.IsEntry(t) {
				return "  ↳ " + t.Title
			}
			return t.Title
		case "parent":
			if !doc.IsEntry(t) {
				return util.Placeholder
			}
			p, _ := doc.TripByID(*t.ParentID)
			return p.Title
		case "entries":
			if doc.IsEntry(t) {
				return util.Placeholder
			}
			return strconv.Itoa(len(doc.Children(t.ID)))
		case query.KeyRating:
			return util.FormatRatingStars(t.Rating.IntOr(0))
		case "expense":
			return util.FormatAmount(stats.ExpenseTotal(t), st)
		case "tags":
			return util.OrPlaceholder(strings.Join(t.Tags, ", "))
		}
		return ""
	}
	return tableSpec[model.Trip]{
		noun: "trips",
		columns: []column{
			{key: query.KeyDate, label: "date", width: 12},
			{key: query.KeyTitle, label: "title", width: 28},
			{key: "parent", label: "parent", width: 18},
			{key: "entries", label: "entries", width: 7},
			{key: query.KeyRating, label: "rating", width: 8, color: ColorYellow},
			{key: "expense", label: "spent", width: 14},
			{key: "tags", label: "tags", width: 20},
		},
		id:   func(t model.Trip) string { return t.ID },
		cell: cell,
		value: func(t model.Trip, key string) string {
			switch key {
			case query.KeyTitle:
				return t.Title
			case "entries":
				return padCount(len(doc.Children(t.ID)))
			case "expense":
				return padDecimal(stats.ExpenseTotal(t))
			case "tags":
				return strings.Join(t.Tags, ", ")
			}
			return strings.TrimPrefix(cell(t, key), util.Placeholder)
		},
		sortKeys: query.TripSortKeys,
		sort:     query.SortTrips,
		search: func(trips []model.Trip, q string) []model.Trip {
			return query.Trips(trips, query.ParseTripFilter(q))
		},
	}
}

func averagePriceCell(sum stats.EntitySummary, st model.Settings) string {
	if sum.AvgPrice.IsZero() {
		return util.Placeholder
	}
	return util.FormatAmount(sum.AvgPrice, st)
}

func placeName(doc model.Document, id string) string {
	if p, ok := doc.PlaceByID(id); ok {
		return p.Name
	}
	return util.Placeholder
}

func shopName(doc model.Document, id string) string {
	if s, ok := doc.ShopByID(id); ok {
		return s.Name
	}
	return util.Placeholder
}

// dateOf reduces a stored timestamp to its date.
func dateOf(raw string) string {
	if t, ok := model.ParseTimestamp(raw); ok {
		return t.Format(model.DateLayout)
	}
	return raw
}

func padCount(n int) string {
	return fmt.Sprintf("%06d", n)
}

// padDecimal left-pads a non-negative amount so it sorts as text.
func padDecimal(d decimal.Decimal) string {
	return fmt.Sprintf("%020s", d.StringFixed(2))
}

// refID resolves a search term naming an entity by id or by name, ignoring
// case. Terms that match nothing are returned unchanged.
func refID[T any](items []T, ref string, idName func(T) (string, string)) string {
	if ref == "" {
		return ""
	}
	for _, it := range items {
		id, name := idName(it)
		if id == ref || strings.EqualFold(name, ref) {
			return id
		}
	}
	return ref
}

// keepIDs returns the items of subset that are also in items, in items order.
func keepIDs[T any](subset, items []T, id func(T) string) []T {
	want := make(map[string]bool, len(subset))
	for _, s := range subset {
		want[id(s)] = true
	}
	var out []T
	for _, it := range items {
		if want[id(it)] {
			out = append(out, it)
		}
	}
	return out
}
