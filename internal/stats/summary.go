package stats

import (
	"time"

	"foodies/internal/model"

	"github.com/shopspring/decimal"
)

// Sizes of the dashboard rankings.
const (
	DashboardTopShops = 5
	DashboardTopFoods = 5
	DashboardRecent   = 5
	DashboardTopTags  = 6
	DashboardAverages = 5
)

// EntitySummary describes the foods reachable from a place or a shop.
type EntitySummary struct {
	Shops     int
	Foods     int
	AvgRating float64
	AvgPrice  decimal.Decimal
}

// PlaceSummary summarises a place through its shops.
func PlaceSummary(doc model.Document, placeID string) EntitySummary {
	foods := doc.FoodsInPlace(placeID)
	return EntitySummary{
		Shops:     len(doc.ShopsOf(placeID)),
		Foods:     len(foods),
		AvgRating: AverageRating(foods),
		AvgPrice:  AveragePrice(foods),
	}
}

// ShopSummary summarises the foods of a shop.
func ShopSummary(doc model.Document, shopID string) EntitySummary {
	foods := doc.FoodsOf(shopID)
	return EntitySummary{
		Shops:     1,
		Foods:     len(foods),
		AvgRating: AverageRating(foods),
		AvgPrice:  AveragePrice(foods),
	}
}

// DashboardData is everything the overview screen shows.
type DashboardData struct {
	Places    int
	Shops     int
	Foods     int
	Trips     int
	Favorites int

	AvgRating float64
	AvgPrice  decimal.Decimal

	FoodsByKind map[string]int
	TopShops    []ShopCount
	TopFoods    []model.Food
	RecentFoods []model.Food
	FoodTrend   []MonthCount

	TopShopsByRating  []ShopAverage
	TopPlacesByRating []PlaceAverage
	TopShopsByPrice   []ShopAverage
	TopPlacesByPrice  []PlaceAverage

	TripStats        TripStats
	TopTripTags      []TagCount
	TripCountTrend   []MonthCount
	TripExpenseTrend []MonthSum
}

// Dashboard computes the overview for doc as of now.
func Dashboard(doc model.Document, now time.Time) DashboardData {
	shops, places := ShopAverages(doc), PlaceAverages(doc)
	return DashboardData{
		Places:    len(doc.Places),
		Shops:     len(doc.Shops),
		Foods:     len(doc.Foods),
		Trips:     len(doc.Trips),
		Favorites: CountFavorites(doc.Foods),

		AvgRating: AverageRating(doc.Foods),
		AvgPrice:  AveragePrice(doc.Foods),

		FoodsByKind: FoodsByKind(doc.Foods),
		TopShops:    TopShopsByFoodCount(doc.Shops, doc.Foods, DashboardTopShops),
		TopFoods:    TopFoodsByRating(doc.Foods, DashboardTopFoods),
		RecentFoods: RecentFoods(doc.Foods, DashboardRecent),
		FoodTrend:   CountTrend(doc.Foods, foodDate, now),

		TopShopsByRating:  TopByAvgRating(shops, DashboardAverages, shopName),
		TopPlacesByRating: TopByAvgRating(places, DashboardAverages, placeName),
		TopShopsByPrice:   TopByAvgPrice(shops, DashboardAverages, shopName),
		TopPlacesByPrice:  TopByAvgPrice(places, DashboardAverages, placeName),

		TripStats:        TripSummary(doc.Trips, doc.Trips),
		TopTripTags:      TopTags(doc.Trips, DashboardTopTags),
		TripCountTrend:   CountTrend(doc.Trips, tripDate, now),
		TripExpenseTrend: SumTrend(doc.Trips, tripDate, ExpenseTotal, now),
	}
}
