package store

import (
	"foodies/internal/log"
	"foodies/internal/model"
)

// ListTrips returns main trips and journal entries in insertion order.
func (s *Store) ListTrips() ([]model.Trip, error) {
	doc, err := s.GetAll()
	if err != nil {
		return nil, err
	}
	return doc.Trips, nil
}

// GetTrip looks up a single trip.
func (s *Store) GetTrip(id string) (model.Trip, bool, error) {
	doc, err := s.GetAll()
	if err != nil {
		return model.Trip{}, false, err
	}
	t, ok := doc.TripByID(id)
	return t, ok, nil
}

// AddTrip appends a new trip. Date defaults to today and budget to 0. Tags
// are de-duplicated ignoring case.
func (s *Store) AddTrip(in model.NewTrip) (model.Trip, error) {
	t := s.buildTrip(in)
	err := s.mutate(log.OpCreate, "trip", t.ID, func(doc *model.Document) error {
		doc.Trips = append(doc.Trips, t)
		return nil
	})
	if err != nil {
		return model.Trip{}, err
	}
	return t, nil
}

func (s *Store) buildTrip(in model.NewTrip) model.Trip {
	date := in.Date
	if date == "" {
		date = s.now().Format(model.DateLayout)
	}
	budget := in.Budget
	if budget == "" {
		budget = "0"
	}
	t := model.Trip{
		ID:          s.newID(),
		Date:        date,
		Title:       in.Title,
		Description: in.Description,
		PlaceIDs:    clone(in.PlaceIDs),
		ShopIDs:     clone(in.ShopIDs),
		FoodIDs:     clone(in.FoodIDs),
		Photos:      clone(in.Photos),
		Rating:      model.NumberOf(in.Rating),
		Timeline:    clone(in.Timeline),
		Activities:  clone(in.Activities),
		Expenses:    clone(in.Expenses),
		Tags:        model.NormalizeTags(in.Tags),
		Budget:      budget,
		CreatedAt:   s.timestamp(),
	}
	if in.ParentID != nil && *in.ParentID != "" {
		t.ParentID = model.StringPtr(*in.ParentID)
	}
	if in.Order != nil {
		t.Order = model.NumberOf(*in.Order)
	}
	return t
}

// UpdateTrip merges patch into the trip with id. Unknown ids are ignored.
func (s *Store) UpdateTrip(id string, patch model.TripPatch) error {
	return s.mutate(log.OpUpdate, "trip", id, func(doc *model.Document) error {
		for i := range doc.Trips {
			if doc.Trips[i].ID == id {
				doc.Trips[i] = patch.Apply(doc.Trips[i])
				return nil
			}
		}
		return errUnchanged
	})
}

// DeleteTrip removes one trip. Journal entries of a deleted main trip are
// left in place with their parentId untouched.
func (s *Store) DeleteTrip(id string) error {
	return s.mutate(log.OpDelete, "trip", id, func(doc *model.Document) error {
		n := len(doc.Trips)
		doc.Trips = filter(doc.Trips, func(t model.Trip) bool { return t.ID != id })
		if n == len(doc.Trips) {
			return errUnchanged
		}
		return nil
	})
}

// ReorderEntries stores each listed entry's position as its order. Ids that
// are not entries of parentID are skipped.
func (s *Store) ReorderEntries(parentID string, orderedIDs []string) error {
	pos := make(map[string]int, len(orderedIDs))
	for i, id := range orderedIDs {
		pos[id] = i
	}
	return s.mutate(log.OpReorder, "trip", parentID, func(doc *model.Document) error {
		changed := false
		for i := range doc.Trips {
			t := &doc.Trips[i]
			if t.ParentID == nil || *t.ParentID != parentID {
				continue
			}
			if p, ok := pos[t.ID]; ok {
				t.Order = model.NumberOf(p)
				changed = true
			}
		}
		if !changed {
			return errUnchanged
		}
		return nil
	})
}

func clone[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
