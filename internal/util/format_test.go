package util

import (
	"testing"
	"time"

	"foodies/internal/model"

	"github.com/shopspring/decimal"
)

func TestFormatPrice(t *testing.T) {
	usd := model.Settings{Currency: "USD", Locale: "en-US", PriceFractionDigits: 2, DefaultPageSize: 10}
	whole := model.Settings{Currency: "USD", Locale: "en-US", PriceFractionDigits: 0, DefaultPageSize: 10}
	tests := []struct {
		name string
		raw  string
		st   model.Settings
		want string
	}{
		{"blank", "", usd, Placeholder},
		{"text passes through", "about 20k", usd, "about 20k"},
		{"fraction digits", "1234.5", usd, "1,234.50 USD"},
		{"rounded", "45000.4", whole, "45,000 USD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPrice(tt.raw, tt.st); got != tt.want {
				t.Errorf("FormatPrice(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFormatAmount_BadLocaleFallsBack(t *testing.T) {
	st := model.Settings{Currency: "VND", Locale: "!!", PriceFractionDigits: 0}
	if got := FormatAmount(decimal.NewFromInt(5), st); got != "5 VND" {
		t.Errorf("FormatAmount = %q", got)
	}
}

func TestFormatRatingStars(t *testing.T) {
	tests := map[int]string{0: "☆☆☆☆☆", 3: "★★★☆☆", 5: "★★★★★", 9: "★★★★★", -1: "☆☆☆☆☆"}
	for in, want := range tests {
		if got := FormatRatingStars(in); got != want {
			t.Errorf("FormatRatingStars(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestKindLabel(t *testing.T) {
	if got := KindLabel(model.KindNoodle); got != "🍜 Noodle" {
		t.Errorf("KindLabel = %q", got)
	}
}

func TestFormatDateHuman(t *testing.T) {
	now := time.Date(2025, 11, 15, 18, 0, 0, 0, time.UTC)
	tests := map[string]string{
		"2025-11-15": "Today",
		"2025-11-14": "Yesterday",
		"2025-11-12": "3d ago",
		"2025-01-02": "Jan 02",
		"2024-01-02": "Jan 02 '24",
		"":           "Unknown",
		"soon":       "soon",
	}
	for in, want := range tests {
		if got := FormatDateHuman(in, now); got != want {
			t.Errorf("FormatDateHuman(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseDateInput(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2025-11-01", "2025-11-01", false},
		{"Nov 1, 2025", "2025-11-01", false},
		{"11/01/2025", "2025-11-01", false},
		{"", "", false},
		{"tomorrow", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDateInput(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseDateInput(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("Hanoi Food Adventure", 10); got != "Hanoi F..." {
		t.Errorf("TruncateString = %q", got)
	}
	if got := TruncateString("Pho", 10); got != "Pho" {
		t.Errorf("TruncateString short = %q", got)
	}
}
