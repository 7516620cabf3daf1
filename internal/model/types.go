package model

import (
	"errors"
	"time"
)

// Storage keys for the two persisted documents.
const (
	DataKey     = "foodiesblog:data"
	SettingsKey = "foodiesblog:settings"
)

// Layouts used for dates and timestamps inside the document.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02T15:04:05.000Z"
)

// ErrValidation marks user input that was rejected before any write.
var ErrValidation = errors.New("validation failed")

// Kind is the dish category of a food.
type Kind string

const (
	KindNoodle  Kind = "noodle"
	KindRice    Kind = "rice"
	KindSoup    Kind = "soup"
	KindSnack   Kind = "snack"
	KindDrink   Kind = "drink"
	KindDessert Kind = "dessert"
)

// Kinds lists every food kind in display order.
var Kinds = []Kind{KindNoodle, KindRice, KindSoup, KindSnack, KindDrink, KindDessert}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Icon returns the emoji shown next to the kind.
func (k Kind) Icon() string {
	switch k {
	case KindNoodle:
		return "🍜"
	case KindRice:
		return "🍚"
	case KindSoup:
		return "🍲"
	case KindSnack:
		return "🥟"
	case KindDrink:
		return "🥤"
	case KindDessert:
		return "🍰"
	default:
		return "🍽"
	}
}

// RelatedType names the entity an expense refers to.
type RelatedType string

const (
	RelatedFood  RelatedType = "food"
	RelatedShop  RelatedType = "shop"
	RelatedPlace RelatedType = "place"
)

// Place is a neighbourhood or area. It has no foreign keys.
type Place struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
}

// Shop belongs to a place. PlaceID is not enforced.
type Shop struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	PlaceID string `json:"placeId"`
}

// Food is a dish served by a shop.
type Food struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Kind      Kind   `json:"kind"`
	ShopID    string `json:"shopId"`
	Price     Price  `json:"price"`
	Favorite  bool   `json:"favorite"`
	Rating    Number `json:"rating"`
	ImageURL  string `json:"imageUrl"`
	CreatedAt string `json:"createdAt"`
}

// TimelineItem is one stop in a trip's day plan.
type TimelineItem struct {
	Time    string `json:"time"`
	Title   string `json:"title"`
	Note    string `json:"note,omitempty"`
	PlaceID string `json:"placeId,omitempty"`
	ShopID  string `json:"shopId,omitempty"`
	FoodID  string `json:"foodId,omitempty"`
}

// Activity is a free-form thing done during a trip.
type Activity struct {
	Title string `json:"title"`
	Note  string `json:"note"`
}

// Expense is money spent during a trip.
type Expense struct {
	Label       string      `json:"label"`
	Amount      Amount      `json:"amount"`
	Category    string      `json:"category,omitempty"`
	RelatedType RelatedType `json:"relatedType,omitempty"`
	RelatedID   string      `json:"relatedId,omitempty"`
}

// Trip is either a main trip (ParentID nil) or a journal entry under one.
type Trip struct {
	ID          string         `json:"id"`
	Date        string         `json:"date"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	PlaceIDs    []string       `json:"placeIds"`
	ShopIDs     []string       `json:"shopIds"`
	FoodIDs     []string       `json:"foodIds"`
	Photos      []string       `json:"photos"`
	Rating      Number         `json:"rating"`
	Timeline    []TimelineItem `json:"timeline"`
	Activities  []Activity     `json:"activities"`
	Expenses    []Expense      `json:"expenses"`
	Tags        Tags           `json:"tags"`
	Budget      Amount         `json:"budget"`
	ParentID    *string        `json:"parentId"`
	Order       Number         `json:"order,omitempty"`
	CreatedAt   string         `json:"createdAt"`
}

// IsMain reports whether the trip has no parent reference at all.
func (t Trip) IsMain() bool {
	return t.ParentID == nil || *t.ParentID == ""
}

// Settings are the display preferences stored under SettingsKey.
type Settings struct {
	Currency            string `json:"currency"`
	Locale              string `json:"locale"`
	PriceFractionDigits int    `json:"priceFractionDigits"`
	DefaultPageSize     int    `json:"defaultPageSize"`
}

// DefaultSettings returns the settings used when nothing valid is stored.
func DefaultSettings() Settings {
	return Settings{
		Currency:            "VND",
		Locale:              "vi-VN",
		PriceFractionDigits: 0,
		DefaultPageSize:     10,
	}
}

// NewPlace holds the fields accepted when creating a place.
type NewPlace struct {
	Name    string
	Address string
	City    string
	State   string
}

// NewShop holds the fields accepted when creating a shop.
type NewShop struct {
	Name    string
	Address string
	PlaceID string
}

// NewFood holds the fields accepted when creating a food. Rating nil means 0.
type NewFood struct {
	Name      string
	Kind      Kind
	ShopID    string
	Price     Price
	Favorite  bool
	Rating    *int
	ImageURL  string
	CreatedAt string
}

// NewTrip holds the fields accepted when creating a trip.
type NewTrip struct {
	Date        string
	Title       string
	Description string
	PlaceIDs    []string
	ShopIDs     []string
	FoodIDs     []string
	Photos      []string
	Rating      int
	Timeline    []TimelineItem
	Activities  []Activity
	Expenses    []Expense
	Tags        []string
	Budget      Amount
	ParentID    *string
	Order       *int
}

// Timestamp formats t the way createdAt values are stored.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp accepts stored timestamps as well as plain dates.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, TimestampLayout, DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IntPtr is a small helper for optional integer fields.
func IntPtr(v int) *int { return &v }

// StringPtr is a small helper for optional string fields.
func StringPtr(v string) *string { return &v }
