package stats

import (
	"cmp"
	"slices"

	"foodies/internal/model"

	"github.com/shopspring/decimal"
)

// TopN orders items by score descending, breaking ties by name ascending,
// and keeps the first n.
func TopN[T any](items []T, n int, score func(T) float64, name func(T) string) []T {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		if c := cmp.Compare(score(b), score(a)); c != 0 {
			return c
		}
		return cmp.Compare(name(a), name(b))
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// ShopCount pairs a shop with how many foods it serves.
type ShopCount struct {
	Shop  model.Shop
	Count int
}

// TagCount is one tag with the number of trips carrying it.
type TagCount struct {
	Tag   string
	Count int
}

// TopFoodsByRating ranks foods by rating. A missing rating scores 0.
func TopFoodsByRating(foods []model.Food, n int) []model.Food {
	return TopN(foods, n,
		func(f model.Food) float64 {
			r, _ := f.Rating.Float()
			return r
		},
		func(f model.Food) string { return f.Name },
	)
}

// TopShopsByFoodCount ranks shops by the number of foods they serve.
func TopShopsByFoodCount(shops []model.Shop, foods []model.Food, n int) []ShopCount {
	counts := CountBy(foods, func(f model.Food) string { return f.ShopID })
	rows := make([]ShopCount, len(shops))
	for i, s := range shops {
		rows[i] = ShopCount{Shop: s, Count: counts[s.ID]}
	}
	return TopN(rows, n,
		func(r ShopCount) float64 { return float64(r.Count) },
		func(r ShopCount) string { return r.Shop.Name },
	)
}

// Averaged is a shop or place with the averages of the foods it serves.
type Averaged[T any] struct {
	Item      T
	Foods     int
	AvgRating float64
	AvgPrice  decimal.Decimal
}

type (
	ShopAverage  = Averaged[model.Shop]
	PlaceAverage = Averaged[model.Place]
)

// ShopAverages summarises every shop serving at least one food, in
// insertion order.
func ShopAverages(doc model.Document) []ShopAverage {
	var rows []ShopAverage
	for _, s := range doc.Shops {
		if sum := ShopSummary(doc, s.ID); sum.Foods > 0 {
			rows = append(rows, ShopAverage{Item: s, Foods: sum.Foods, AvgRating: sum.AvgRating, AvgPrice: sum.AvgPrice})
		}
	}
	return rows
}

// PlaceAverages summarises every place whose shops serve at least one food.
func PlaceAverages(doc model.Document) []PlaceAverage {
	var rows []PlaceAverage
	for _, p := range doc.Places {
		if sum := PlaceSummary(doc, p.ID); sum.Foods > 0 {
			rows = append(rows, PlaceAverage{Item: p, Foods: sum.Foods, AvgRating: sum.AvgRating, AvgPrice: sum.AvgPrice})
		}
	}
	return rows
}

// TopByAvgRating keeps the n rows with the highest average rating. Rows
// whose foods carry no numeric rating score 0.
func TopByAvgRating[T any](rows []Averaged[T], n int, name func(T) string) []Averaged[T] {
	return TopN(rows, n,
		func(r Averaged[T]) float64 { return r.AvgRating },
		func(r Averaged[T]) string { return name(r.Item) },
	)
}

// TopByAvgPrice keeps the n rows with the highest average price.
func TopByAvgPrice[T any](rows []Averaged[T], n int, name func(T) string) []Averaged[T] {
	return TopN(rows, n,
		func(r Averaged[T]) float64 { return r.AvgPrice.InexactFloat64() },
		func(r Averaged[T]) string { return name(r.Item) },
	)
}

func shopName(s model.Shop) string   { return s.Name }
func placeName(p model.Place) string { return p.Name }

// GallerySort orders the shop gallery.
type GallerySort string

const (
	GalleryByRating GallerySort = "rating"
	GalleryByFoods  GallerySort = "foods"
	GalleryByName   GallerySort = "name"
	GalleryByPrice  GallerySort = "price"
)

// GallerySorts lists the accepted gallery orders.
var GallerySorts = []GallerySort{GalleryByRating, GalleryByFoods, GalleryByName, GalleryByPrice}

// ShopGallery lists every shop with its averages, shops without foods
// included, ordered by sortKey. Orders run highest first, or Z to A for
// names, and asc reverses them. Ties fall back to the name.
func ShopGallery(doc model.Document, sortKey GallerySort, asc bool) []ShopAverage {
	rows := make([]ShopAverage, len(doc.Shops))
	for i, s := range doc.Shops {
		sum := ShopSummary(doc, s.ID)
		rows[i] = ShopAverage{Item: s, Foods: sum.Foods, AvgRating: sum.AvgRating, AvgPrice: sum.AvgPrice}
	}
	byName := func(a, b ShopAverage) int { return cmp.Compare(a.Item.Name, b.Item.Name) }
	slices.SortStableFunc(rows, func(a, b ShopAverage) int {
		var c int
		switch sortKey {
		case GalleryByFoods:
			c = cmp.Compare(b.Foods, a.Foods)
		case GalleryByName:
			c = -byName(a, b)
		case GalleryByPrice:
			c = b.AvgPrice.Cmp(a.AvgPrice)
		default:
			c = cmp.Compare(b.AvgRating, a.AvgRating)
		}
		if asc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return byName(a, b)
	})
	return rows
}

// TopTags ranks tags by the number of trips carrying them.
func TopTags(trips []model.Trip, n int) []TagCount {
	counts := TagCounts(trips)
	rows := make([]TagCount, 0, len(counts))
	for tag, c := range counts {
		rows = append(rows, TagCount{Tag: tag, Count: c})
	}
	return TopN(rows, n,
		func(r TagCount) float64 { return float64(r.Count) },
		func(r TagCount) string { return r.Tag },
	)
}

// RecentFoods returns the last n foods added, newest first.
func RecentFoods(foods []model.Food, n int) []model.Food {
	start := max(len(foods)-n, 0)
	out := slices.Clone(foods[start:])
	slices.Reverse(out)
	return out
}
