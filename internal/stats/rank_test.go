package stats

import (
	"fmt"
	"testing"
	"time"

	"foodies/internal/model"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func names[T any](items []T, name func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = name(it)
	}
	return out
}

func foodName(f model.Food) string { return f.Name }

func TestTopFoodsByRating_TiesByName(t *testing.T) {
	foods := []model.Food{
		{Name: "Goi Cuon", Rating: model.NumberOf(4)},
		{Name: "Pho Bo", Rating: model.NumberOf(5)},
		{Name: "Bun Cha", Rating: model.NumberOf(5)},
		{Name: "Mystery", Rating: ""},
		{Name: "Ca Phe", Rating: model.NumberOf(4)},
	}
	got := names(TopFoodsByRating(foods, 4), foodName)
	want := []string{"Bun Cha", "Pho Bo", "Ca Phe", "Goi Cuon"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TopFoodsByRating (-want +got):\n%s", diff)
	}
}

func averagesDoc() model.Document {
	return model.Document{
		Places: []model.Place{{ID: "p1", Name: "Old Town"}, {ID: "p2", Name: "Riverside"}, {ID: "p3", Name: "Empty Quarter"}},
		Shops: []model.Shop{
			{ID: "a", Name: "Pho 24", PlaceID: "p1"},
			{ID: "b", Name: "Cafe", PlaceID: "p1"},
			{ID: "c", Name: "Com Tam", PlaceID: "p2"},
			{ID: "d", Name: "Closed", PlaceID: "p3"},
		},
		Foods: []model.Food{
			{ShopID: "a", Rating: model.NumberOf(3), Price: "40000"},
			{ShopID: "a", Rating: model.NumberOf(5), Price: "60000"},
			{ShopID: "b", Rating: "", Price: "ask"},
			{ShopID: "c", Rating: model.NumberOf(4), Price: "35000"},
			{ShopID: "c", Rating: `"n/a"`, Price: "45000"},
		},
	}
}

func TestAverageRankings(t *testing.T) {
	doc := averagesDoc()
	shopRow := func(r ShopAverage) string { return r.Item.Name }
	placeRow := func(r PlaceAverage) string { return r.Item.Name }

	tests := []struct {
		name string
		got  []string
		want []string
	}{
		// Cafe has a food but nothing rated, so it stays in with 0.
		{"shops by rating", names(TopByAvgRating(ShopAverages(doc), 5, shopName), shopRow), []string{"Com Tam", "Pho 24", "Cafe"}},
		{"shops by price", names(TopByAvgPrice(ShopAverages(doc), 5, shopName), shopRow), []string{"Pho 24", "Com Tam", "Cafe"}},
		{"places by rating", names(TopByAvgRating(PlaceAverages(doc), 5, placeName), placeRow), []string{"Old Town", "Riverside"}},
		{"places by price", names(TopByAvgPrice(PlaceAverages(doc), 5, placeName), placeRow), []string{"Old Town", "Riverside"}},
		{"top n", names(TopByAvgRating(ShopAverages(doc), 1, shopName), shopRow), []string{"Com Tam"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestAverages_ExcludeShopsAndPlacesWithoutFoods(t *testing.T) {
	doc := averagesDoc()
	for _, r := range ShopAverages(doc) {
		if r.Item.ID == "d" {
			t.Errorf("shop without foods was ranked: %+v", r)
		}
	}
	for _, r := range PlaceAverages(doc) {
		if r.Item.ID == "p3" {
			t.Errorf("place without foods was ranked: %+v", r)
		}
	}

	d := Dashboard(doc, time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC))
	if got := len(d.TopShopsByRating); got != 3 {
		t.Errorf("dashboard shops by rating = %d rows, want 3", got)
	}
	if got := len(d.TopPlacesByPrice); got != 2 {
		t.Errorf("dashboard places by price = %d rows, want 2", got)
	}
	com := d.TopShopsByRating[0]
	if com.Item.ID != "c" || com.Foods != 2 || com.AvgRating != 4 || !com.AvgPrice.Equal(decimal.NewFromInt(40000)) {
		t.Errorf("top shop = %+v, want Com Tam with 2 foods, 4.0 and 40000", com)
	}
}

func TestShopGallery(t *testing.T) {
	doc := averagesDoc()
	row := func(r ShopAverage) string { return r.Item.Name }

	tests := []struct {
		sort GallerySort
		asc  bool
		want []string
	}{
		{GalleryByRating, false, []string{"Com Tam", "Pho 24", "Cafe", "Closed"}},
		{GalleryByFoods, false, []string{"Com Tam", "Pho 24", "Cafe", "Closed"}},
		{GalleryByName, true, []string{"Cafe", "Closed", "Com Tam", "Pho 24"}},
		{GalleryByName, false, []string{"Pho 24", "Com Tam", "Closed", "Cafe"}},
		{GalleryByPrice, false, []string{"Pho 24", "Com Tam", "Cafe", "Closed"}},
		{GalleryByPrice, true, []string{"Cafe", "Closed", "Com Tam", "Pho 24"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s asc=%v", tt.sort, tt.asc), func(t *testing.T) {
			got := names(ShopGallery(doc, tt.sort, tt.asc), row)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ShopGallery (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTopShopsByFoodCount(t *testing.T) {
	shops := []model.Shop{{ID: "a", Name: "Pho 24"}, {ID: "b", Name: "Cafe"}, {ID: "c", Name: "Banh Mi"}}
	foods := []model.Food{{ShopID: "a"}, {ShopID: "a"}, {ShopID: "b"}, {ShopID: "c"}}
	got := names(TopShopsByFoodCount(shops, foods, 2), func(r ShopCount) string { return r.Shop.Name })
	if diff := cmp.Diff([]string{"Pho 24", "Banh Mi"}, got); diff != "" {
		t.Errorf("TopShopsByFoodCount (-want +got):\n%s", diff)
	}
}

func TestTopTags(t *testing.T) {
	trips := []model.Trip{
		{Tags: model.Tags{"hanoi", "streetfood"}},
		{Tags: model.Tags{"hanoi", "coffee"}},
		{Tags: model.Tags{"coffee"}},
		{Tags: model.Tags{"market"}},
	}
	want := []TagCount{{"coffee", 2}, {"hanoi", 2}, {"market", 1}}
	if diff := cmp.Diff(want, TopTags(trips, 3)); diff != "" {
		t.Errorf("TopTags (-want +got):\n%s", diff)
	}
}

func TestRecentFoods(t *testing.T) {
	var foods []model.Food
	for _, n := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		foods = append(foods, model.Food{Name: n})
	}
	got := names(RecentFoods(foods, 5), foodName)
	if diff := cmp.Diff([]string{"7", "6", "5", "4", "3"}, got); diff != "" {
		t.Errorf("RecentFoods (-want +got):\n%s", diff)
	}
	if got := RecentFoods(foods[:2], 5); len(got) != 2 {
		t.Errorf("RecentFoods short list = %d items", len(got))
	}
}
