package query

import (
	"strconv"
	"strings"

	"foodies/internal/model"
)

// Search text may carry key:value terms that narrow a list further than the
// plain text does, for example "pho kind:noodle rating:4 price:-50000".
// Words that are not terms of the list being searched stay in the text.

// splitTerms pulls the terms named by keys out of q. A bare word equal to a
// flag key counts as that key with an empty value.
func splitTerms(q string, keys []string, flags ...string) (string, map[string]string) {
	terms := make(map[string]string)
	var text []string
	for _, word := range strings.Fields(q) {
		k, v, found := strings.Cut(word, ":")
		k = strings.ToLower(k)
		switch {
		case found && v != "" && contains(keys, k):
			terms[k] = v
		case !found && contains(flags, k):
			terms[k] = ""
		default:
			text = append(text, word)
		}
	}
	return strings.Join(text, " "), terms
}

func contains(list []string, s string) bool {
	for _, it := range list {
		if it == s {
			return true
		}
	}
	return false
}

// ParseFoodFilter reads kind:, shop:, rating: (minimum), price:LO-HI and
// the bare word fav.
func ParseFoodFilter(q string) FoodFilter {
	text, t := splitTerms(q, []string{"kind", "shop", "rating", "price", "fav"}, "fav")
	ff := FoodFilter{
		Search: text,
		Kind:   model.Kind(strings.ToLower(t["kind"])),
		ShopID: t["shop"],
	}
	if v, ok := t["fav"]; ok {
		ff.FavoritesOnly = v == "" || isYes(v)
	}
	if n, err := strconv.Atoi(t["rating"]); err == nil {
		ff.MinRating = n
	}
	if r, ok := t["price"]; ok {
		lo, hi, ranged := strings.Cut(r, "-")
		if !ranged {
			hi = lo
		}
		ff.MinPrice, ff.MaxPrice = lo, hi
	}
	return ff
}

// ParsePlaceFilter reads state:.
func ParsePlaceFilter(q string) PlaceFilter {
	text, t := splitTerms(q, []string{"state"})
	return PlaceFilter{Search: text, State: t["state"]}
}

// ParseShopFilter reads place: and state:.
func ParseShopFilter(q string) ShopFilter {
	text, t := splitTerms(q, []string{"place", "state"})
	return ShopFilter{Search: text, PlaceID: t["place"], State: t["state"]}
}

// ParseTripFilter reads tag:, year: and month:. A one digit month is padded.
func ParseTripFilter(q string) TripFilter {
	text, t := splitTerms(q, []string{"tag", "year", "month"})
	month := t["month"]
	if len(month) == 1 {
		month = "0" + month
	}
	return TripFilter{Search: text, Tag: t["tag"], Year: t["year"], Month: month}
}

func isYes(v string) bool {
	switch strings.ToLower(v) {
	case "y", "yes", "true", "1":
		return true
	}
	return false
}
