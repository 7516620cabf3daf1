package store

import (
	"foodies/internal/log"
	"foodies/internal/model"
)

// ListFoods returns foods in insertion order.
func (s *Store) ListFoods() ([]model.Food, error) {
	doc, err := s.GetAll()
	if err != nil {
		return nil, err
	}
	return doc.Foods, nil
}

// GetFood looks up a single food.
func (s *Store) GetFood(id string) (model.Food, bool, error) {
	doc, err := s.GetAll()
	if err != nil {
		return model.Food{}, false, err
	}
	f, ok := doc.FoodByID(id)
	return f, ok, nil
}

// AddFood appends a new food. Rating defaults to 0 and createdAt to now.
func (s *Store) AddFood(in model.NewFood) (model.Food, error) {
	f := s.buildFood(in)
	err := s.mutate(log.OpCreate, "food", f.ID, func(doc *model.Document) error {
		doc.Foods = append(doc.Foods, f)
		return nil
	})
	if err != nil {
		return model.Food{}, err
	}
	return f, nil
}

func (s *Store) buildFood(in model.NewFood) model.Food {
	rating := 0
	if in.Rating != nil {
		rating = *in.Rating
	}
	createdAt := in.CreatedAt
	if createdAt == "" {
		createdAt = s.timestamp()
	}
	return model.Food{
		ID:        s.newID(),
		Name:      in.Name,
		Kind:      in.Kind,
		ShopID:    in.ShopID,
		Price:     in.Price,
		Favorite:  in.Favorite,
		Rating:    model.NumberOf(rating),
		ImageURL:  in.ImageURL,
		CreatedAt: createdAt,
	}
}

// UpdateFood merges patch into the food with id. Unknown ids are ignored.
func (s *Store) UpdateFood(id string, patch model.FoodPatch) error {
	return s.mutate(log.OpUpdate, "food", id, func(doc *model.Document) error {
		for i := range doc.Foods {
			if doc.Foods[i].ID == id {
				doc.Foods[i] = patch.Apply(doc.Foods[i])
				return nil
			}
		}
		return errUnchanged
	})
}

// DeleteFood removes a food. Trips referencing it keep the dangling id.
func (s *Store) DeleteFood(id string) error {
	return s.mutate(log.OpDelete, "food", id, func(doc *model.Document) error {
		n := len(doc.Foods)
		doc.Foods = filter(doc.Foods, func(f model.Food) bool { return f.ID != id })
		if n == len(doc.Foods) {
			return errUnchanged
		}
		return nil
	})
}

// DuplicateFood appends a copy of the food with id under a fresh id and
// creation time. The copy keeps the rating exactly as stored. ok is false
// when no such food exists.
func (s *Store) DuplicateFood(id string) (copied model.Food, ok bool, err error) {
	newID, createdAt := s.newID(), s.timestamp()
	err = s.mutate(log.OpCreate, "food", newID, func(doc *model.Document) error {
		src, found := doc.FoodByID(id)
		if !found {
			return errUnchanged
		}
		copied = model.Food{
			ID:        newID,
			Name:      src.Name + " (copy)",
			Kind:      src.Kind,
			ShopID:    src.ShopID,
			Price:     src.Price,
			Favorite:  src.Favorite,
			Rating:    src.Rating,
			ImageURL:  src.ImageURL,
			CreatedAt: createdAt,
		}
		doc.Foods = append(doc.Foods, copied)
		ok = true
		return nil
	})
	if err != nil {
		return model.Food{}, false, err
	}
	return copied, ok, nil
}
