package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"foodies/internal/model"
	"foodies/internal/stats"

	"github.com/google/go-cmp/cmp"
)

var usd = model.Settings{Currency: "USD", Locale: "en-US", PriceFractionDigits: 0, DefaultPageSize: 10}

func sampleDoc() model.Document {
	parent := "t1"
	return model.Document{
		Places: []model.Place{{ID: "p1", Name: "Old Town", Address: `12 "Main" St`, City: "Hanoi", State: "HN"}},
		Shops:  []model.Shop{{ID: "s1", Name: "Pho 24", Address: "Near market", PlaceID: "p1"}},
		Foods: []model.Food{
			{ID: "f1", Name: "Pho Bo", Kind: model.KindNoodle, ShopID: "s1", Price: "45000", Rating: model.NumberOf(5), Favorite: true, CreatedAt: "2025-10-01T00:00:00.000Z"},
			{ID: "f2", Name: "Bun Cha", Kind: model.KindNoodle, ShopID: "s1", Price: "ask", Rating: ""},
		},
		Trips: []model.Trip{
			{ID: "t1", Date: "2025-11-07", Title: "Hanoi Weekend", Budget: "300000", Tags: model.Tags{"vietnam", "hanoi"},
				PlaceIDs: []string{"p1", "gone"}, Description: "Two days\nof food"},
			{ID: "t2", Date: "2025-11-08", Title: "Old Quarter", ParentID: &parent, Rating: model.NumberOf(5),
				FoodIDs:  []string{"f1"},
				Expenses: []model.Expense{{Label: "Pho", Amount: "45000", Category: "Food"}, {Label: "?", Amount: "bad"}}},
		},
	}
}

func csvString(t *testing.T, tbl Table) string {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteCSV(&buf, tbl); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	return buf.String()
}

func TestWriteCSV_QuotesEveryField(t *testing.T) {
	got := csvString(t, Table{Header: []string{"A", "B"}, Rows: [][]string{{`say "hi"`, ""}, {"a,b", "line\nbreak"}}})
	want := "A,B\n\"say \"\"hi\"\"\",\"\"\n\"a,b\",\"line\nbreak\""
	if got != want {
		t.Errorf("WriteCSV =\n%s\nwant\n%s", got, want)
	}
}

func TestPlacesCSV(t *testing.T) {
	doc := sampleDoc()
	got := csvString(t, PlacesCSV(doc.Places, doc, usd, false))
	want := "Name,Address,City,State,Shops,Foods,AvgRating,AvgPrice\n" +
		`"Old Town","12 ""Main"" St","Hanoi","HN","1","2","5.0","45000"`
	if got != want {
		t.Errorf("PlacesCSV =\n%s\nwant\n%s", got, want)
	}

	formatted := PlacesCSV(doc.Places, doc, usd, true)
	if diff := cmp.Diff([]string{"USD", "45,000 USD"}, formatted.Rows[0][8:]); diff != "" {
		t.Errorf("formatted columns (-want +got):\n%s", diff)
	}
}

func TestShopsCSV(t *testing.T) {
	doc := sampleDoc()
	tbl := ShopsCSV(doc.Shops, doc, usd, false)
	want := []string{"Pho 24", "Near market", "Old Town", "Hanoi", "HN", "2", "5.0", "45000"}
	if diff := cmp.Diff(want, tbl.Rows[0]); diff != "" {
		t.Errorf("ShopsCSV row (-want +got):\n%s", diff)
	}

	doc.Shops = append(doc.Shops, model.Shop{ID: "s2", Name: "Unrated", PlaceID: "p1"})
	doc.Foods = append(doc.Foods, model.Food{ID: "f3", Name: "Tea", ShopID: "s2", Price: "ask"})
	unrated := ShopsCSV(doc.Shops[1:], doc, usd, false).Rows[0]
	if diff := cmp.Diff([]string{"1", "0.0", "0"}, unrated[5:]); diff != "" {
		t.Errorf("shop without rated foods (-want +got):\n%s", diff)
	}
}

func TestFoodsCSV(t *testing.T) {
	doc := sampleDoc()
	tbl := FoodsCSV(doc.Foods, doc, usd, true)
	wantHeader := []string{"Name", "Kind", "Shop", "Price", "Currency", "PriceFormatted", "Rating", "Favorite", "ImageURL", "CreatedAt"}
	if diff := cmp.Diff(wantHeader, tbl.Header); diff != "" {
		t.Errorf("header (-want +got):\n%s", diff)
	}
	wantRows := [][]string{
		{"Pho Bo", "noodle", "Pho 24", "45000", "USD", "45,000 USD", "5", "yes", "", "2025-10-01T00:00:00.000Z"},
		{"Bun Cha", "noodle", "Pho 24", "", "USD", "ask", "0", "no", "", ""},
	}
	if diff := cmp.Diff(wantRows, tbl.Rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
}

func TestTripsCSV(t *testing.T) {
	doc := sampleDoc()
	tbl := TripsCSV(doc.Trips, doc)
	if len(tbl.Header) != 18 {
		t.Fatalf("header has %d columns", len(tbl.Header))
	}
	main := tbl.Rows[0]
	if main[13] != "vietnam; hanoi" || main[14] != "Old Town" || main[17] != "Two days of food" {
		t.Errorf("main row = %q", main)
	}
	if main[12] != "300000" {
		t.Errorf("budget remaining = %q", main[12])
	}
	entry := tbl.Rows[1]
	if entry[2] != "Hanoi Weekend" || entry[10] != "45000" || entry[12] != "-45000" || entry[16] != "Pho Bo" {
		t.Errorf("entry row = %q", entry)
	}
}

func TestRollupCSV(t *testing.T) {
	doc := sampleDoc()
	rows := stats.Rollups(doc.Trips, nil, stats.SortByTitle, time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC))
	tbl := RollupCSV(rows)
	if diff := cmp.Diff([]string{"Cat:Food", "Cat:Other"}, tbl.Header[10:]); diff != "" {
		t.Errorf("category columns (-want +got):\n%s", diff)
	}
	want := []string{"Hanoi Weekend", "2025-11-07", "1", "0", "45000", "45000", "300000", "255000",
		"Food:45000; Other:0", "vietnam; hanoi", "45000", "0"}
	if diff := cmp.Diff(want, tbl.Rows[0]); diff != "" {
		t.Errorf("rollup row (-want +got):\n%s", diff)
	}
}

func TestBackupRoundTrip(t *testing.T) {
	doc := sampleDoc()
	doc.Normalize()

	var buf bytes.Buffer
	if err := WriteBackup(&buf, doc); err != nil {
		t.Fatalf("WriteBackup: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "{\n  \"places\"") {
		t.Errorf("backup is not two-space indented:\n%.40s", buf.String())
	}

	got, err := ParseBackup(&buf)
	if err != nil {
		t.Fatalf("ParseBackup: %v", err)
	}
	if diff := cmp.Diff(doc, got); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestParseBackup_Invalid(t *testing.T) {
	tests := map[string]string{
		"malformed":     "{",
		"not an object": "[]",
		"missing foods": `{"places":[],"shops":[]}`,
		"wrong shape":   `{"places":{},"shops":[],"foods":[]}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseBackup(strings.NewReader(raw)); !errors.Is(err, ErrInvalidBackup) {
				t.Errorf("ParseBackup error = %v, want ErrInvalidBackup", err)
			}
		})
	}

	got, err := ParseBackup(strings.NewReader(`{"places":[],"shops":[],"foods":[]}`))
	if err != nil {
		t.Fatalf("backup without trips: %v", err)
	}
	if got.Trips == nil {
		t.Error("trips should default to empty")
	}
}

func TestParseBackup_LenientNumbers(t *testing.T) {
	raw := `{"places":[],"shops":[],` +
		`"foods":[{"id":"f1","rating":5},{"id":"f2","rating":"n/a"},{"id":"f3","rating":4.5},{"id":"f4","rating":null}],` +
		`"trips":[{"id":"t1","title":"Hoi An","budget":"","rating":"great","expenses":[{"label":"Pho","amount":"40"}]}]}`
	doc, err := ParseBackup(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("ParseBackup: %v", err)
	}
	if got := stats.AverageRating(doc.Foods); got != 4.75 {
		t.Errorf("average rating = %v, want 4.75", got)
	}
	if got := doc.Foods[1].Rating.Text(); got != "n/a" {
		t.Errorf("non-numeric rating = %q, want it kept", got)
	}

	tbl := TripsCSV(doc.Trips, doc)
	row := tbl.Rows[0]
	if row[3] != "great" {
		t.Errorf("trip rating cell = %q, want great", row[3])
	}

	var buf bytes.Buffer
	if err := WriteBackup(&buf, doc); err != nil {
		t.Fatalf("WriteBackup: %v", err)
	}
	again, err := ParseBackup(&buf)
	if err != nil {
		t.Fatalf("ParseBackup after WriteBackup: %v", err)
	}
	if diff := cmp.Diff(doc, again); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestFileNames(t *testing.T) {
	if got := BackupFileName(time.Date(2025, 11, 5, 23, 0, 0, 0, time.UTC)); got != "foodies-blog-backup-2025-11-05.json" {
		t.Errorf("BackupFileName = %q", got)
	}
	tests := map[string]string{
		"Japan, Tokyo":            "Japan_Tokyo.json",
		"Coffee & Snacks Morning": "Coffee_Snacks_Morning.json",
		"":                        "trip.json",
		"Phở":                     "Ph_.json",
	}
	for in, want := range tests {
		if got := TripFileName(in); got != want {
			t.Errorf("TripFileName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReport(&buf, sampleDoc(), usd); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Prices shown in USD", "Locale: en-US", "Foods by Kind", "Pho Bo", "45,000 USD"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestWriteShopGallery(t *testing.T) {
	doc := sampleDoc()
	doc.Shops = append(doc.Shops, model.Shop{ID: "s2", Name: "Banh Mi Cart", PlaceID: "gone"})

	tests := []struct {
		sort  stats.GallerySort
		asc   bool
		first string
	}{
		{stats.GalleryByRating, false, "Pho 24"},
		{stats.GalleryByName, true, "Banh Mi Cart"},
		{stats.GalleryByFoods, true, "Banh Mi Cart"},
	}
	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteShopGallery(&buf, doc, tt.sort, tt.asc, usd); err != nil {
				t.Fatalf("WriteShopGallery: %v", err)
			}
			out := buf.String()
			pho, cart := strings.Index(out, "Pho 24"), strings.Index(out, "Banh Mi Cart")
			if pho < 0 || cart < 0 {
				t.Fatalf("gallery is missing a shop:\n%s", out)
			}
			if first := min(pho, cart); !strings.HasPrefix(out[first:], tt.first) {
				t.Errorf("first shop is not %q:\n%s", tt.first, out)
			}
			for _, want := range []string{"Old Town", "5.0★", "45,000 USD"} {
				if !strings.Contains(out, want) {
					t.Errorf("gallery missing %q:\n%s", want, out)
				}
			}
		})
	}
}
