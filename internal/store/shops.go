package store

import (
	"foodies/internal/log"
	"foodies/internal/model"
)

// ListShops returns shops in insertion order.
func (s *Store) ListShops() ([]model.Shop, error) {
	doc, err := s.GetAll()
	if err != nil {
		return nil, err
	}
	return doc.Shops, nil
}

// GetShop looks up a single shop.
func (s *Store) GetShop(id string) (model.Shop, bool, error) {
	doc, err := s.GetAll()
	if err != nil {
		return model.Shop{}, false, err
	}
	sh, ok := doc.ShopByID(id)
	return sh, ok, nil
}

// AddShop appends a new shop. PlaceID is stored as given.
func (s *Store) AddShop(in model.NewShop) (model.Shop, error) {
	sh := s.buildShop(in)
	err := s.mutate(log.OpCreate, "shop", sh.ID, func(doc *model.Document) error {
		doc.Shops = append(doc.Shops, sh)
		return nil
	})
	if err != nil {
		return model.Shop{}, err
	}
	return sh, nil
}

func (s *Store) buildShop(in model.NewShop) model.Shop {
	return model.Shop{
		ID:      s.newID(),
		Name:    in.Name,
		Address: in.Address,
		PlaceID: in.PlaceID,
	}
}

// UpdateShop merges patch into the shop with id. Unknown ids are ignored.
func (s *Store) UpdateShop(id string, patch model.ShopPatch) error {
	return s.mutate(log.OpUpdate, "shop", id, func(doc *model.Document) error {
		for i := range doc.Shops {
			if doc.Shops[i].ID == id {
				doc.Shops[i] = patch.Apply(doc.Shops[i])
				return nil
			}
		}
		return errUnchanged
	})
}

// DeleteShop removes a shop and every food it serves.
func (s *Store) DeleteShop(id string) error {
	return s.mutateLogged(log.OpDelete, "shop", id, func(doc *model.Document, fields log.LogFields) error {
		shops := len(doc.Shops)
		foods := len(doc.Foods)
		doc.Shops = filter(doc.Shops, func(sh model.Shop) bool { return sh.ID != id })
		doc.Foods = filter(doc.Foods, func(f model.Food) bool { return f.ShopID != id })
		if shops == len(doc.Shops) && foods == len(doc.Foods) {
			return errUnchanged
		}
		fields.WithCount(log.FieldShopsRemoved, shops-len(doc.Shops)).
			WithCount(log.FieldFoodsRemoved, foods-len(doc.Foods))
		return nil
	})
}
