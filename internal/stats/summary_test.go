package stats

import (
	"testing"
	"time"

	"foodies/internal/model"

	"github.com/shopspring/decimal"
)

func TestPlaceAndShopSummary(t *testing.T) {
	doc := model.Document{
		Places: []model.Place{{ID: "p1", Name: "Old Town"}},
		Shops:  []model.Shop{{ID: "s1", PlaceID: "p1"}, {ID: "s2", PlaceID: "p1"}, {ID: "s3", PlaceID: "elsewhere"}},
		Foods: []model.Food{
			{ShopID: "s1", Price: "45000", Rating: model.NumberOf(5)},
			{ShopID: "s2", Price: "15000", Rating: model.NumberOf(3)},
			{ShopID: "s2", Price: "?", Rating: ""},
			{ShopID: "s3", Price: "1", Rating: model.NumberOf(1)},
		},
	}

	p := PlaceSummary(doc, "p1")
	if p.Shops != 2 || p.Foods != 3 {
		t.Errorf("place counts = %d shops, %d foods", p.Shops, p.Foods)
	}
	if p.AvgRating != 4 {
		t.Errorf("place avg rating = %v, want 4", p.AvgRating)
	}
	if !p.AvgPrice.Equal(decimal.NewFromInt(30000)) {
		t.Errorf("place avg price = %s, want 30000", p.AvgPrice)
	}

	s := ShopSummary(doc, "s2")
	if s.Foods != 2 || s.AvgRating != 3 || !s.AvgPrice.Equal(decimal.NewFromInt(15000)) {
		t.Errorf("shop summary = %+v", s)
	}
}

func TestDashboard(t *testing.T) {
	now := time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC)
	doc := model.Document{
		Places: []model.Place{{ID: "p"}},
		Shops:  []model.Shop{{ID: "s", Name: "Pho 24", PlaceID: "p"}},
		Foods: []model.Food{
			{Name: "Pho Bo", Kind: model.KindNoodle, ShopID: "s", Price: "45000", Rating: model.NumberOf(5), Favorite: true, CreatedAt: "2025-11-01T00:00:00.000Z"},
			{Name: "Bun Cha", Kind: model.KindNoodle, ShopID: "s", Price: "50000", Rating: model.NumberOf(4)},
		},
		Trips: []model.Trip{
			{ID: "t", Date: "2025-10-01", Tags: model.Tags{"hanoi"}, Expenses: amount("100")},
		},
	}

	d := Dashboard(doc, now)
	if d.Places != 1 || d.Shops != 1 || d.Foods != 2 || d.Trips != 1 || d.Favorites != 1 {
		t.Errorf("counts = %+v", d)
	}
	if d.AvgRating != 4.5 {
		t.Errorf("avg rating = %v", d.AvgRating)
	}
	if !d.AvgPrice.Equal(decimal.NewFromInt(47500)) {
		t.Errorf("avg price = %s", d.AvgPrice)
	}
	if d.FoodsByKind["noodle"] != 2 {
		t.Errorf("foods by kind = %v", d.FoodsByKind)
	}
	if d.TopFoods[0].Name != "Pho Bo" || d.RecentFoods[0].Name != "Bun Cha" {
		t.Errorf("top %q, recent %q", d.TopFoods[0].Name, d.RecentFoods[0].Name)
	}
	if d.FoodTrend[5].Count != 2 {
		t.Errorf("food trend = %+v, want both foods in current month", d.FoodTrend)
	}
	if d.TripCountTrend[4].Count != 1 || !d.TripExpenseTrend[4].Amount.Equal(decimal.NewFromInt(100)) {
		t.Errorf("trip trends = %+v / %+v", d.TripCountTrend, d.TripExpenseTrend)
	}
	if len(d.TopTripTags) != 1 || d.TopTripTags[0].Tag != "hanoi" {
		t.Errorf("top tags = %+v", d.TopTripTags)
	}
}
