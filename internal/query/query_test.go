package query

import (
	"testing"

	"foodies/internal/model"

	"github.com/google/go-cmp/cmp"
)

func foodNames(foods []model.Food) []string {
	out := make([]string, len(foods))
	for i, f := range foods {
		out[i] = f.Name
	}
	return out
}

var testFoods = []model.Food{
	{Name: "Pho Bo", Kind: model.KindNoodle, ShopID: "s1", Price: "45000", Rating: model.NumberOf(5), Favorite: true, CreatedAt: "2025-10-01T00:00:00.000Z"},
	{Name: "bun cha", Kind: model.KindNoodle, ShopID: "s1", Price: "50000", Rating: model.NumberOf(4), CreatedAt: "2025-09-01T00:00:00.000Z"},
	{Name: "Ca Phe", Kind: model.KindDrink, ShopID: "s2", Price: "", Rating: "", CreatedAt: "2025-11-01T00:00:00.000Z"},
	{Name: "Goi Cuon", Kind: model.KindSnack, ShopID: "s2", Price: "n/a", Rating: model.NumberOf(3), Favorite: true},
}

func TestFoodFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter FoodFilter
		want   []string
	}{
		{"no filter", FoodFilter{}, []string{"Pho Bo", "bun cha", "Ca Phe", "Goi Cuon"}},
		{"search ignores case", FoodFilter{Search: "PHO"}, []string{"Pho Bo"}},
		{"kind", FoodFilter{Kind: model.KindNoodle}, []string{"Pho Bo", "bun cha"}},
		{"shop", FoodFilter{ShopID: "s2"}, []string{"Ca Phe", "Goi Cuon"}},
		{"favorites", FoodFilter{FavoritesOnly: true}, []string{"Pho Bo", "Goi Cuon"}},
		{"min rating treats missing as 0", FoodFilter{MinRating: 4}, []string{"Pho Bo", "bun cha"}},
		{"min price drops non-numeric", FoodFilter{MinPrice: "0"}, []string{"Pho Bo", "bun cha"}},
		{"price range", FoodFilter{MinPrice: "46000", MaxPrice: "60000"}, []string{"bun cha"}},
		{"blank bound is inactive", FoodFilter{MinPrice: " ", MaxPrice: ""}, []string{"Pho Bo", "bun cha", "Ca Phe", "Goi Cuon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, foodNames(Foods(testFoods, tt.filter))); diff != "" {
				t.Errorf("Foods (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSortFoods(t *testing.T) {
	doc := model.Document{Shops: []model.Shop{{ID: "s1", Name: "Pho 24"}, {ID: "s2", Name: "Cafe"}}}
	tests := []struct {
		sort Sort
		want []string
	}{
		{Sort{Key: KeyName}, []string{"bun cha", "Ca Phe", "Goi Cuon", "Pho Bo"}},
		{Sort{Key: KeyName, Desc: true}, []string{"Pho Bo", "Goi Cuon", "Ca Phe", "bun cha"}},
		{Sort{Key: KeyRating, Desc: true}, []string{"Pho Bo", "bun cha", "Goi Cuon", "Ca Phe"}},
		{Sort{Key: KeyPrice}, []string{"Ca Phe", "Goi Cuon", "Pho Bo", "bun cha"}},
		{Sort{Key: KeyShop}, []string{"Ca Phe", "Goi Cuon", "Pho Bo", "bun cha"}},
		{Sort{Key: KeyDate}, []string{"Goi Cuon", "bun cha", "Pho Bo", "Ca Phe"}},
		{Sort{Key: "unknown"}, []string{"Pho Bo", "bun cha", "Ca Phe", "Goi Cuon"}},
	}
	for _, tt := range tests {
		t.Run(tt.sort.Key, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, foodNames(SortFoods(testFoods, doc, tt.sort))); diff != "" {
				t.Errorf("SortFoods(%+v) (-want +got):\n%s", tt.sort, diff)
			}
		})
	}
}

func TestShopFilterAndSort(t *testing.T) {
	doc := model.Document{
		Places: []model.Place{{ID: "p1", Name: "Old Town", City: "Hanoi", State: "HN"}, {ID: "p2", Name: "Riverside", City: "Saigon", State: "HCM"}},
		Shops: []model.Shop{
			{ID: "s1", Name: "Pho 24", PlaceID: "p1"},
			{ID: "s2", Name: "Com Tam 79", PlaceID: "p2"},
			{ID: "s3", Name: "Cafe Sua Da", PlaceID: "p1"},
		},
		Foods: []model.Food{{ShopID: "s3"}, {ShopID: "s3"}, {ShopID: "s1"}},
	}
	names := func(shops []model.Shop) []string {
		out := make([]string, len(shops))
		for i, s := range shops {
			out[i] = s.Name
		}
		return out
	}

	if diff := cmp.Diff([]string{"Pho 24", "Cafe Sua Da"}, names(Shops(doc, ShopFilter{Search: "hanoi"}))); diff != "" {
		t.Errorf("search by place city (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Com Tam 79"}, names(Shops(doc, ShopFilter{State: "HCM"}))); diff != "" {
		t.Errorf("state filter (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Cafe Sua Da", "Pho 24", "Com Tam 79"}, names(SortShops(doc.Shops, doc, Sort{Key: KeyFoods, Desc: true}))); diff != "" {
		t.Errorf("sort by foods (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Pho 24", "Cafe Sua Da", "Com Tam 79"}, names(SortShops(doc.Shops, doc, Sort{Key: KeyPlace}))); diff != "" {
		t.Errorf("sort by place (-want +got):\n%s", diff)
	}
}

func TestPlaceFilter(t *testing.T) {
	places := []model.Place{
		{Name: "Old Town", Address: "123 Main St", City: "Hanoi", State: "HN"},
		{Name: "Riverside", City: "Saigon", State: "HCM"},
	}
	if got := Places(places, PlaceFilter{Search: "main"}); len(got) != 1 || got[0].Name != "Old Town" {
		t.Errorf("search by address = %+v", got)
	}
	if got := Places(places, PlaceFilter{State: "HCM"}); len(got) != 1 || got[0].Name != "Riverside" {
		t.Errorf("state filter = %+v", got)
	}
}

func TestTripFilter(t *testing.T) {
	trip := model.Trip{Title: "Hanoi Food Adventure", Description: "Pho and coffee", Date: "2025-10-15", Tags: model.Tags{"Hanoi"}}
	tests := []struct {
		name   string
		filter TripFilter
		want   bool
	}{
		{"empty", TripFilter{}, true},
		{"title", TripFilter{Search: "adventure"}, true},
		{"description", TripFilter{Search: "COFFEE"}, true},
		{"no match", TripFilter{Search: "tokyo"}, false},
		{"tag ignores case", TripFilter{Tag: "hanoi"}, true},
		{"year", TripFilter{Year: "2025"}, true},
		{"year and month", TripFilter{Year: "2025", Month: "11"}, false},
		{"month", TripFilter{Month: "10"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Match(trip); got != tt.want {
				t.Errorf("Match = %v, want %v", got, tt.want)
			}
		})
	}

	undated := model.Trip{Title: "x"}
	if (TripFilter{Year: "2025"}).Match(undated) {
		t.Error("undated trip matched a year filter")
	}
	if (TripFilter{}).Predicate() != nil {
		t.Error("inactive filter should yield a nil predicate")
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	tests := []struct {
		name       string
		page, size int
		want       []int
		info       PageInfo
	}{
		{"first", 1, 3, []int{1, 2, 3}, PageInfo{Page: 1, Size: 3, Total: 7, Pages: 3}},
		{"last partial", 3, 3, []int{7}, PageInfo{Page: 3, Size: 3, Total: 7, Pages: 3}},
		{"clamped high", 9, 3, []int{7}, PageInfo{Page: 3, Size: 3, Total: 7, Pages: 3}},
		{"clamped low", 0, 3, []int{1, 2, 3}, PageInfo{Page: 1, Size: 3, Total: 7, Pages: 3}},
		{"default size", 1, 0, []int{1, 2, 3, 4, 5}, PageInfo{Page: 1, Size: 5, Total: 7, Pages: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, info := Paginate(items, tt.page, tt.size, 5)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("items (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.info, info); diff != "" {
				t.Errorf("info (-want +got):\n%s", diff)
			}
		})
	}

	got, info := Paginate([]int{}, 2, 10, 10)
	if len(got) != 0 || info.Pages != 1 || info.Page != 1 {
		t.Errorf("empty list = %v, %+v", got, info)
	}
}

func TestOptionLists(t *testing.T) {
	places := []model.Place{{State: "HN"}, {State: ""}, {State: "DN"}, {State: "HN"}}
	if diff := cmp.Diff([]string{"DN", "HN"}, States(places)); diff != "" {
		t.Errorf("States (-want +got):\n%s", diff)
	}

	trips := []model.Trip{
		{Date: "2024-05-01", Tags: model.Tags{"tokyo", "Coffee"}},
		{Date: "2025-01-01", Tags: model.Tags{"coffee", "bento"}},
		{Date: ""},
	}
	if diff := cmp.Diff([]string{"bento", "Coffee", "tokyo"}, AllTags(trips)); diff != "" {
		t.Errorf("AllTags (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"2025", "2024"}, Years(trips)); diff != "" {
		t.Errorf("Years (-want +got):\n%s", diff)
	}
}

func TestParseFoodFilter(t *testing.T) {
	tests := []struct {
		in   string
		want FoodFilter
	}{
		{"pho", FoodFilter{Search: "pho"}},
		{"bun cha kind:Noodle", FoodFilter{Search: "bun cha", Kind: model.KindNoodle}},
		{"fav rating:4", FoodFilter{FavoritesOnly: true, MinRating: 4}},
		{"fav:no", FoodFilter{}},
		{"price:10000-50000 shop:s1", FoodFilter{MinPrice: "10000", MaxPrice: "50000", ShopID: "s1"}},
		{"price:-30000", FoodFilter{MaxPrice: "30000"}},
		{"price:45000", FoodFilter{MinPrice: "45000", MaxPrice: "45000"}},
		{"note: tasty", FoodFilter{Search: "note: tasty"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ParseFoodFilter(tt.in)); diff != "" {
				t.Errorf("ParseFoodFilter(%q) (-want +got):\n%s", tt.in, diff)
			}
		})
	}

	got := foodNames(Foods(testFoods, ParseFoodFilter("fav price:-50000")))
	if diff := cmp.Diff([]string{"Pho Bo"}, got); diff != "" {
		t.Errorf("parsed filter (-want +got):\n%s", diff)
	}
}

func TestParseListFilters(t *testing.T) {
	if diff := cmp.Diff(PlaceFilter{Search: "old", State: "HN"}, ParsePlaceFilter("old state:HN")); diff != "" {
		t.Errorf("ParsePlaceFilter (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ShopFilter{PlaceID: "p1", State: "HCM"}, ParseShopFilter("place:p1 state:HCM")); diff != "" {
		t.Errorf("ParseShopFilter (-want +got):\n%s", diff)
	}
	want := TripFilter{Search: "market", Tag: "hanoi", Year: "2025", Month: "03"}
	if diff := cmp.Diff(want, ParseTripFilter("market tag:hanoi year:2025 month:3")); diff != "" {
		t.Errorf("ParseTripFilter (-want +got):\n%s", diff)
	}
}
