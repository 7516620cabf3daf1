package model

// Document is the whole persisted dataset.
type Document struct {
	Places []Place `json:"places"`
	Shops  []Shop  `json:"shops"`
	Foods  []Food  `json:"foods"`
	Trips  []Trip  `json:"trips"`
}

// EmptyDocument returns a document with four empty, non-nil collections.
func EmptyDocument() Document {
	return Document{Places: []Place{}, Shops: []Shop{}, Foods: []Food{}, Trips: []Trip{}}
}

// Normalize replaces nil collections and nil trip arrays with empty ones so
// the document always encodes as arrays.
func (d *Document) Normalize() {
	if d.Places == nil {
		d.Places = []Place{}
	}
	if d.Shops == nil {
		d.Shops = []Shop{}
	}
	if d.Foods == nil {
		d.Foods = []Food{}
	}
	if d.Trips == nil {
		d.Trips = []Trip{}
	}
	for i := range d.Trips {
		normalizeTrip(&d.Trips[i])
	}
}

func normalizeTrip(t *Trip) {
	if t.PlaceIDs == nil {
		t.PlaceIDs = []string{}
	}
	if t.ShopIDs == nil {
		t.ShopIDs = []string{}
	}
	if t.FoodIDs == nil {
		t.FoodIDs = []string{}
	}
	if t.Photos == nil {
		t.Photos = []string{}
	}
	if t.Timeline == nil {
		t.Timeline = []TimelineItem{}
	}
	if t.Activities == nil {
		t.Activities = []Activity{}
	}
	if t.Expenses == nil {
		t.Expenses = []Expense{}
	}
	if t.Tags == nil {
		t.Tags = Tags{}
	}
}

// IsEmpty reports whether all four collections are empty.
func (d Document) IsEmpty() bool {
	return len(d.Places) == 0 && len(d.Shops) == 0 && len(d.Foods) == 0 && len(d.Trips) == 0
}

// Clone returns a copy whose collections can be mutated independently.
func (d Document) Clone() Document {
	out := Document{
		Places: append([]Place{}, d.Places...),
		Shops:  append([]Shop{}, d.Shops...),
		Foods:  append([]Food{}, d.Foods...),
		Trips:  append([]Trip{}, d.Trips...),
	}
	return out
}

func (d Document) PlaceByID(id string) (Place, bool) {
	for _, p := range d.Places {
		if p.ID == id {
			return p, true
		}
	}
	return Place{}, false
}

func (d Document) ShopByID(id string) (Shop, bool) {
	for _, s := range d.Shops {
		if s.ID == id {
			return s, true
		}
	}
	return Shop{}, false
}

func (d Document) FoodByID(id string) (Food, bool) {
	for _, f := range d.Foods {
		if f.ID == id {
			return f, true
		}
	}
	return Food{}, false
}

func (d Document) TripByID(id string) (Trip, bool) {
	for _, t := range d.Trips {
		if t.ID == id {
			return t, true
		}
	}
	return Trip{}, false
}

// ShopsOf returns the shops located in a place.
func (d Document) ShopsOf(placeID string) []Shop {
	var out []Shop
	for _, s := range d.Shops {
		if s.PlaceID == placeID {
			out = append(out, s)
		}
	}
	return out
}

// FoodsOf returns the foods served by a shop.
func (d Document) FoodsOf(shopID string) []Food {
	var out []Food
	for _, f := range d.Foods {
		if f.ShopID == shopID {
			out = append(out, f)
		}
	}
	return out
}

// FoodsInPlace returns the foods of every shop in a place.
func (d Document) FoodsInPlace(placeID string) []Food {
	shops := make(map[string]bool)
	for _, s := range d.ShopsOf(placeID) {
		shops[s.ID] = true
	}
	var out []Food
	for _, f := range d.Foods {
		if shops[f.ShopID] {
			out = append(out, f)
		}
	}
	return out
}

// Children returns the journal entries whose parent is parentID, in stored order.
func (d Document) Children(parentID string) []Trip {
	var out []Trip
	for _, t := range d.Trips {
		if t.ParentID != nil && *t.ParentID == parentID {
			out = append(out, t)
		}
	}
	return out
}

// IsEntry reports whether t is a journal entry of an existing main trip.
// Entries whose parent was deleted are treated as main trips.
func (d Document) IsEntry(t Trip) bool {
	if t.IsMain() {
		return false
	}
	_, ok := d.TripByID(*t.ParentID)
	return ok
}

// MainTrips returns every trip that is not an entry of an existing parent.
func (d Document) MainTrips() []Trip {
	var out []Trip
	for _, t := range d.Trips {
		if !d.IsEntry(t) {
			out = append(out, t)
		}
	}
	return out
}
