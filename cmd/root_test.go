package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"foodies/internal/export"
	"foodies/internal/settings"

	"github.com/google/go-cmp/cmp"
)

// runCLI executes the root command against a database inside dir.
func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("FOODIES_DB_PATH", filepath.Join(dir, "foodies.db"))
	t.Setenv("FOODIES_LOG_FILE", filepath.Join(dir, "foodies.log"))

	var out bytes.Buffer
	root := newRootCmd("test")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSettingsCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "settings", "show")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "currency:        VND") {
		t.Errorf("default settings output:\n%s", out)
	}

	out, err = runCLI(t, dir, "settings", "set", "--currency", "usd", "--locale", "en-US", "--fraction-digits", "2")
	if err != nil {
		t.Fatal(err)
	}
	want := "currency:        USD\nlocale:          en-US\nfraction digits: 2\npage size:       10\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("settings set output (-want +got):\n%s", diff)
	}

	if _, err := runCLI(t, dir, "settings", "set", "--currency", "XX"); !errors.Is(err, settings.ErrInvalidSettings) {
		t.Errorf("invalid currency error = %v, want ErrInvalidSettings", err)
	}
	if _, err := runCLI(t, dir, "settings", "set"); err == nil {
		t.Error("settings set without flags succeeded")
	}

	out, err = runCLI(t, dir, "settings", "show")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "currency:        USD") {
		t.Errorf("rejected update changed the stored settings:\n%s", out)
	}

	out, err = runCLI(t, dir, "settings", "reset")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "locale:          vi-VN") {
		t.Errorf("settings reset output:\n%s", out)
	}
}

func TestSeedAndExportCSV(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "seed")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "Seeded ") {
		t.Errorf("first seed output = %q", out)
	}
	out, err = runCLI(t, dir, "seed")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "nothing seeded") {
		t.Errorf("second seed output = %q", out)
	}

	out, err = runCLI(t, dir, "export", "csv", "places", "--formatted")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(out, "\n")
	wantHeader := "Name,Address,City,State,Shops,Foods,AvgRating,AvgPrice,Currency,AvgPriceFormatted"
	if lines[0] != wantHeader {
		t.Errorf("header = %q, want %q", lines[0], wantHeader)
	}
	if len(lines) < 2 {
		t.Errorf("seeded places export has no rows")
	}

	if _, err := runCLI(t, dir, "export", "csv", "restaurants"); err == nil {
		t.Error("export csv with an unknown collection succeeded")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := t.TempDir()
	if _, err := runCLI(t, src, "seed"); err != nil {
		t.Fatal(err)
	}
	backup := filepath.Join(src, "backup.json")
	if _, err := runCLI(t, src, "export", "backup", "-o", backup); err != nil {
		t.Fatal(err)
	}

	dst := t.TempDir()
	out, err := runCLI(t, dst, "import", backup)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "Imported ") {
		t.Errorf("import output = %q", out)
	}

	exported, err := runCLI(t, dst, "export", "backup", "-o", "-")
	if err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(backup)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	want, err := export.ParseBackup(f)
	if err != nil {
		t.Fatal(err)
	}
	got, err := export.ParseBackup(strings.NewReader(exported))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("imported data differs (-want +got):\n%s", diff)
	}
}

func TestImportRejectsInvalidBackup(t *testing.T) {
	dir := t.TempDir()
	if _, err := runCLI(t, dir, "seed"); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"places": []}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCLI(t, dir, "import", bad); !errors.Is(err, export.ErrInvalidBackup) {
		t.Fatalf("import error = %v, want ErrInvalidBackup", err)
	}
	out, err := runCLI(t, dir, "seed")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "nothing seeded") {
		t.Error("a rejected import cleared the store")
	}
}

func TestExportTripUnknownID(t *testing.T) {
	dir := t.TempDir()
	if _, err := runCLI(t, dir, "export", "trip", "missing", "-o", "-"); err == nil {
		t.Error("export trip with an unknown id succeeded")
	}
}

func TestStatsCommand(t *testing.T) {
	dir := t.TempDir()
	if _, err := runCLI(t, dir, "seed"); err != nil {
		t.Fatal(err)
	}
	out, err := runCLI(t, dir, "stats")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Foodies Statistics", "Places:         3", "Shops:          4", "Foods:          6", "Coverage",
		"Top shops by avg rating\n  1. Banh Mi Hoi An 5.0★ (1 foods)\n  2. Pho 24 5.0★ (2 foods)",
		"Top places by avg rating\n  1. Downtown 5.0★ (1 foods)",
		"Top shops by avg price\n  1. Pho 24 ",
		"Top places by avg price\n  1. Riverside ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output is missing %q:\n%s", want, out)
		}
	}
}

func TestExportCSVFilters(t *testing.T) {
	dir := t.TempDir()
	if _, err := runCLI(t, dir, "seed"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			"foods by kind and rating",
			[]string{"foods", "--kind", "noodle", "--min-rating", "5"},
			[]string{`"Pho Bo"`, `"Bun Cha"`},
		},
		{
			"trips by tag",
			[]string{"trips", "--tag", "kyoto"},
			[]string{`"2025-11-04","Japan, Kyoto"`},
		},
		{
			"rollup counts only passing entries",
			[]string{"rollup", "--tag", "gion"},
			[]string{`"Japan, Kyoto","2025-11-04","1"`},
		},
		{
			"places by state",
			[]string{"places", "--state", "DN"},
			[]string{`"Downtown"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, dir, append([]string{"export", "csv"}, tt.args...)...)
			if err != nil {
				t.Fatal(err)
			}
			rows := strings.Split(strings.TrimSpace(out), "\n")[1:]
			if len(rows) != len(tt.want) {
				t.Fatalf("got %d rows, want %d:\n%s", len(rows), len(tt.want), out)
			}
			for i, want := range tt.want {
				if !strings.HasPrefix(rows[i], want) {
					t.Errorf("row %d = %s, want prefix %s", i, rows[i], want)
				}
			}
		})
	}

	if _, err := runCLI(t, dir, "export", "csv", "foods", "--kind", "pizza"); err == nil {
		t.Error("unknown kind was accepted")
	}
	if _, err := runCLI(t, dir, "export", "csv", "rollup", "--sort", "cost"); err == nil {
		t.Error("unknown roll-up sort was accepted")
	}
}

func TestGalleryCommand(t *testing.T) {
	dir := t.TempDir()
	if _, err := runCLI(t, dir, "seed"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		args  []string
		first string
	}{
		{[]string{"gallery"}, "Banh Mi Hoi An"},
		{[]string{"gallery", "--sort", "foods"}, "Com Tam 79"},
		{[]string{"gallery", "--sort", "name", "--asc"}, "Banh Mi Hoi An"},
		{[]string{"gallery", "--sort", "price"}, "Pho 24"},
		{[]string{"gallery", "--sort", "price", "--asc"}, "Cafe Sua Da"},
	}
	shops := []string{"Banh Mi Hoi An", "Cafe Sua Da", "Com Tam 79", "Pho 24"}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := runCLI(t, dir, tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			first, at := "", len(out)
			for _, name := range shops {
				if i := strings.Index(out, name); i >= 0 && i < at {
					first, at = name, i
				}
			}
			if first != tt.first {
				t.Errorf("first shop = %q, want %q:\n%s", first, tt.first, out)
			}
		})
	}

	if _, err := runCLI(t, dir, "gallery", "--sort", "distance"); err == nil {
		t.Error("unknown gallery sort was accepted")
	}
}
