package store

import (
	"foodies/internal/log"
	"foodies/internal/model"
)

// ListPlaces returns places in insertion order.
func (s *Store) ListPlaces() ([]model.Place, error) {
	doc, err := s.GetAll()
	if err != nil {
		return nil, err
	}
	return doc.Places, nil
}

// GetPlace looks up a single place.
func (s *Store) GetPlace(id string) (model.Place, bool, error) {
	doc, err := s.GetAll()
	if err != nil {
		return model.Place{}, false, err
	}
	p, ok := doc.PlaceByID(id)
	return p, ok, nil
}

// AddPlace appends a new place and returns it.
func (s *Store) AddPlace(in model.NewPlace) (model.Place, error) {
	p := s.buildPlace(in)
	err := s.mutate(log.OpCreate, "place", p.ID, func(doc *model.Document) error {
		doc.Places = append(doc.Places, p)
		return nil
	})
	if err != nil {
		return model.Place{}, err
	}
	return p, nil
}

func (s *Store) buildPlace(in model.NewPlace) model.Place {
	return model.Place{
		ID:      s.newID(),
		Name:    in.Name,
		Address: in.Address,
		City:    in.City,
		State:   in.State,
	}
}

// UpdatePlace merges patch into the place with id. Unknown ids are ignored.
func (s *Store) UpdatePlace(id string, patch model.PlacePatch) error {
	return s.mutate(log.OpUpdate, "place", id, func(doc *model.Document) error {
		for i := range doc.Places {
			if doc.Places[i].ID == id {
				doc.Places[i] = patch.Apply(doc.Places[i])
				return nil
			}
		}
		return errUnchanged
	})
}

// DeletePlace removes a place, its shops and those shops' foods.
func (s *Store) DeletePlace(id string) error {
	return s.mutateLogged(log.OpDelete, "place", id, func(doc *model.Document, fields log.LogFields) error {
		before := len(doc.Places)
		doc.Places = filter(doc.Places, func(p model.Place) bool { return p.ID != id })

		shopIDs := make(map[string]bool)
		for _, sh := range doc.Shops {
			if sh.PlaceID == id {
				shopIDs[sh.ID] = true
			}
		}
		if before == len(doc.Places) && len(shopIDs) == 0 {
			return errUnchanged
		}
		foods := len(doc.Foods)
		doc.Shops = filter(doc.Shops, func(sh model.Shop) bool { return !shopIDs[sh.ID] })
		doc.Foods = filter(doc.Foods, func(f model.Food) bool { return !shopIDs[f.ShopID] })
		fields.WithCount(log.FieldShopsRemoved, len(shopIDs)).
			WithCount(log.FieldFoodsRemoved, foods-len(doc.Foods))
		return nil
	})
}

// filter keeps the elements for which keep returns true, preserving order.
func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
