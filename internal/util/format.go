package util

import (
	"fmt"
	"strings"
	"time"

	"foodies/internal/model"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Placeholder is shown for missing values and dangling references.
const Placeholder = "—"

// FormatPrice formats a stored price with the configured locale, fraction
// digits and currency code. Blank input gives the placeholder; text that is
// not a number is returned unchanged.
func FormatPrice(raw string, st model.Settings) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Placeholder
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return raw
	}
	return FormatAmount(d, st)
}

// FormatAmount formats a computed amount such as an average or a total.
func FormatAmount(d decimal.Decimal, st model.Settings) string {
	tag, err := language.Parse(st.Locale)
	if err != nil {
		tag = language.Vietnamese
	}
	fd := st.PriceFractionDigits
	p := message.NewPrinter(tag)
	n := p.Sprintf("%v", number.Decimal(d.Round(int32(fd)).InexactFloat64(),
		number.MinFractionDigits(fd), number.MaxFractionDigits(fd)))
	return n + " " + st.Currency
}

// FormatDate formats a date string (YYYY-MM-DD) for display.
func FormatDate(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return "Unknown"
	}
	t, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Jan 02, 2006")
}

// FormatDateHuman formats a date with humanized relative display.
// "Today", "Yesterday", "3d ago", "Jan 15", "Jan 15 '24"
func FormatDateHuman(date string, now time.Time) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return "Unknown"
	}
	t, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return date
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(today.Sub(t).Hours() / 24)

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days > 1 && days < 7:
		return fmt.Sprintf("%dd ago", days)
	case t.Year() == now.Year():
		return t.Format("Jan 02")
	default:
		return t.Format("Jan 02 '06")
	}
}

// FormatRatingStars formats a 0-5 rating as stars (e.g., "★★★★☆").
func FormatRatingStars(rating int) string {
	rating = min(max(rating, 0), 5)
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

// FormatFoodRating formats a food rating as "4/5". A stored value that is
// not a number is shown as it is.
func FormatFoodRating(rating model.Number) string {
	if rating == "" {
		return Placeholder
	}
	if _, ok := rating.Float(); !ok {
		return rating.Text()
	}
	return string(rating) + "/5"
}

// FormatAvgRating formats an average rating with one decimal, or the
// placeholder when there is nothing to average.
func FormatAvgRating(avg float64) string {
	if avg == 0 {
		return Placeholder
	}
	return fmt.Sprintf("%.1f★", avg)
}

// FormatFavorite renders the favorite flag.
func FormatFavorite(fav bool) string {
	if fav {
		return "♥"
	}
	return ""
}

// KindLabel returns "🍜 Noodle" for a food kind.
func KindLabel(k model.Kind) string {
	if k == "" {
		return Placeholder
	}
	return k.Icon() + " " + cases.Title(language.English).String(string(k))
}

// OrPlaceholder returns s, or the placeholder when s is blank.
func OrPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

// TodayISO returns the date of now in ISO 8601 format (YYYY-MM-DD).
func TodayISO(now time.Time) string {
	return now.Format(model.DateLayout)
}

// ParseDateInput parses flexible user input and normalizes to ISO (YYYY-MM-DD).
// Empty input is allowed and returns "".
func ParseDateInput(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", nil
	}

	layouts := []string{
		model.DateLayout,
		"January 2, 2006",
		"Jan 2, 2006",
		"1/2/2006",
		"01/02/2006",
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(model.DateLayout), nil
		}
	}

	return "", fmt.Errorf("invalid date format")
}

// TruncateString truncates a string to maxLen and adds "..." if needed.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
