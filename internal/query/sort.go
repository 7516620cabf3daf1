package query

import (
	"cmp"
	"slices"

	"foodies/internal/model"
	"foodies/internal/stats"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort keys accepted by the sorters.
const (
	KeyName    = "name"
	KeyRating  = "rating"
	KeyPrice   = "price"
	KeyShop    = "shop"
	KeyDate    = "date"
	KeyAddress = "address"
	KeyCity    = "city"
	KeyState   = "state"
	KeyPlace   = "place"
	KeyFoods   = "foods"
	KeyTitle   = "title"
)

// Sort selects a key and direction.
type Sort struct {
	Key  string
	Desc bool
}

// Valid sort keys per list.
var (
	FoodSortKeys  = []string{KeyName, KeyRating, KeyPrice, KeyShop, KeyDate}
	PlaceSortKeys = []string{KeyName, KeyAddress, KeyCity, KeyState}
	ShopSortKeys  = []string{KeyName, KeyAddress, KeyPlace, KeyCity, KeyState, KeyFoods}
	TripSortKeys  = []string{KeyDate, KeyTitle, KeyRating}
)

// textCompare orders strings the way a reader expects, ignoring case.
func textCompare() func(a, b string) int {
	c := collate.New(language.Und, collate.IgnoreCase)
	return c.CompareString
}

func sortStable[T any](items []T, s Sort, compare func(a, b T) int) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		c := compare(a, b)
		if s.Desc {
			return -c
		}
		return c
	})
	return out
}

// SortFoods orders foods. Prices that do not parse sort as 0; an unknown
// key keeps input order.
func SortFoods(foods []model.Food, doc model.Document, s Sort) []model.Food {
	text := textCompare()
	shopName := func(f model.Food) string {
		sh, _ := doc.ShopByID(f.ShopID)
		return sh.Name
	}
	return sortStable(foods, s, func(a, b model.Food) int {
		switch s.Key {
		case KeyName:
			return text(a.Name, b.Name)
		case KeyRating:
			return cmp.Compare(ratingOf(a.Rating), ratingOf(b.Rating))
		case KeyPrice:
			return stats.ParseOrZero(string(a.Price)).Cmp(stats.ParseOrZero(string(b.Price)))
		case KeyShop:
			return text(shopName(a), shopName(b))
		case KeyDate:
			return cmp.Compare(createdAt(a), createdAt(b))
		}
		return 0
	})
}

func ratingOf(r model.Number) float64 {
	v, _ := r.Float()
	return v
}

func createdAt(f model.Food) int64 {
	t, ok := model.ParseTimestamp(f.CreatedAt)
	if !ok {
		return 0
	}
	return t.UnixMilli()
}

// SortPlaces orders places by one of their text fields.
func SortPlaces(places []model.Place, s Sort) []model.Place {
	text := textCompare()
	return sortStable(places, s, func(a, b model.Place) int {
		switch s.Key {
		case KeyName:
			return text(a.Name, b.Name)
		case KeyAddress:
			return text(a.Address, b.Address)
		case KeyCity:
			return text(a.City, b.City)
		case KeyState:
			return text(a.State, b.State)
		}
		return 0
	})
}

// SortShops orders shops, resolving place fields and food counts through doc.
func SortShops(shops []model.Shop, doc model.Document, s Sort) []model.Shop {
	text := textCompare()
	foods := stats.CountBy(doc.Foods, func(f model.Food) string { return f.ShopID })
	place := func(sh model.Shop) model.Place {
		p, _ := doc.PlaceByID(sh.PlaceID)
		return p
	}
	return sortStable(shops, s, func(a, b model.Shop) int {
		switch s.Key {
		case KeyName:
			return text(a.Name, b.Name)
		case KeyAddress:
			return text(a.Address, b.Address)
		case KeyPlace:
			return text(place(a).Name, place(b).Name)
		case KeyCity:
			return text(place(a).City, place(b).City)
		case KeyState:
			return text(place(a).State, place(b).State)
		case KeyFoods:
			return cmp.Compare(foods[a.ID], foods[b.ID])
		}
		return 0
	})
}

// SortTrips orders trips by date, title or rating.
func SortTrips(trips []model.Trip, s Sort) []model.Trip {
	text := textCompare()
	return sortStable(trips, s, func(a, b model.Trip) int {
		switch s.Key {
		case KeyDate:
			return cmp.Compare(a.Date, b.Date)
		case KeyTitle:
			return text(a.Title, b.Title)
		case KeyRating:
			return cmp.Compare(ratingOf(a.Rating), ratingOf(b.Rating))
		}
		return 0
	})
}
