// Package query filters, sorts and pages entity lists for the list screens
// and exports.
package query

import (
	"strings"

	"foodies/internal/model"
	"foodies/internal/stats"

	"github.com/shopspring/decimal"
)

func containsFold(s, q string) bool {
	return strings.Contains(strings.ToLower(s), q)
}

// FoodFilter narrows the food list. Zero values disable a criterion.
type FoodFilter struct {
	Search        string
	Kind          model.Kind
	ShopID        string
	FavoritesOnly bool
	MinRating     int
	MinPrice      string
	MaxPrice      string
}

// Match reports whether f passes every active criterion. A food without a
// numeric price fails any active price bound.
func (ff FoodFilter) Match(f model.Food) bool {
	if q := strings.ToLower(strings.TrimSpace(ff.Search)); q != "" && !containsFold(f.Name, q) {
		return false
	}
	if ff.Kind != "" && f.Kind != ff.Kind {
		return false
	}
	if ff.ShopID != "" && f.ShopID != ff.ShopID {
		return false
	}
	if ff.FavoritesOnly && !f.Favorite {
		return false
	}
	if rating, _ := f.Rating.Float(); rating < float64(ff.MinRating) {
		return false
	}

	minBound, hasMin := stats.ParseOrAbsent(ff.MinPrice)
	maxBound, hasMax := stats.ParseOrAbsent(ff.MaxPrice)
	if !hasMin && !hasMax {
		return true
	}
	price, ok := stats.ParseOrAbsent(string(f.Price))
	if !ok {
		return false
	}
	return inRange(price, minBound, hasMin, maxBound, hasMax)
}

func inRange(v, lo decimal.Decimal, hasLo bool, hi decimal.Decimal, hasHi bool) bool {
	if hasLo && v.LessThan(lo) {
		return false
	}
	if hasHi && v.GreaterThan(hi) {
		return false
	}
	return true
}

// PlaceFilter narrows the place list.
type PlaceFilter struct {
	Search string
	State  string
}

// Match searches name, city, state and address.
func (pf PlaceFilter) Match(p model.Place) bool {
	if pf.State != "" && p.State != pf.State {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(pf.Search))
	if q == "" {
		return true
	}
	return containsFold(p.Name, q) || containsFold(p.City, q) ||
		containsFold(p.State, q) || containsFold(p.Address, q)
}

// ShopFilter narrows the shop list. Place fields are looked up through Doc.
type ShopFilter struct {
	Search  string
	PlaceID string
	State   string
}

// Match searches the shop's name and address and its place's name, city
// and state.
func (sf ShopFilter) Match(s model.Shop, doc model.Document) bool {
	place, _ := doc.PlaceByID(s.PlaceID)
	if sf.PlaceID != "" && s.PlaceID != sf.PlaceID {
		return false
	}
	if sf.State != "" && place.State != sf.State {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(sf.Search))
	if q == "" {
		return true
	}
	return containsFold(s.Name, q) || containsFold(s.Address, q) ||
		containsFold(place.Name, q) || containsFold(place.City, q) || containsFold(place.State, q)
}

// TripFilter narrows the trip list. Year and Month compare against the
// YYYY and MM parts of the trip date.
type TripFilter struct {
	Search string
	Tag    string
	Year   string
	Month  string
}

// Active reports whether any criterion is set.
func (tf TripFilter) Active() bool {
	return strings.TrimSpace(tf.Search) != "" || tf.Tag != "" || tf.Year != "" || tf.Month != ""
}

// Match reports whether t passes. It doubles as the roll-up predicate.
func (tf TripFilter) Match(t model.Trip) bool {
	if q := strings.ToLower(strings.TrimSpace(tf.Search)); q != "" &&
		!containsFold(t.Title, q) && !containsFold(t.Description, q) {
		return false
	}
	if tf.Tag != "" && !t.Tags.Contains(tf.Tag) {
		return false
	}
	if tf.Year == "" && tf.Month == "" {
		return true
	}
	if len(t.Date) < 7 {
		return false
	}
	if tf.Year != "" && t.Date[:4] != tf.Year {
		return false
	}
	if tf.Month != "" && t.Date[5:7] != tf.Month {
		return false
	}
	return true
}

// Predicate adapts the filter for stats.Rollups. An inactive filter returns
// nil so every trip passes.
func (tf TripFilter) Predicate() stats.Predicate {
	if !tf.Active() {
		return nil
	}
	return tf.Match
}

// Foods returns the foods passing ff, in input order.
func Foods(foods []model.Food, ff FoodFilter) []model.Food {
	return keep(foods, ff.Match)
}

// Places returns the places passing pf.
func Places(places []model.Place, pf PlaceFilter) []model.Place {
	return keep(places, pf.Match)
}

// Shops returns the shops passing sf.
func Shops(doc model.Document, sf ShopFilter) []model.Shop {
	return keep(doc.Shops, func(s model.Shop) bool { return sf.Match(s, doc) })
}

// Trips returns the trips passing tf.
func Trips(trips []model.Trip, tf TripFilter) []model.Trip {
	return keep(trips, tf.Match)
}

func keep[T any](items []T, match func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if match(it) {
			out = append(out, it)
		}
	}
	return out
}
