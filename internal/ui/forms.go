package ui

import (
	"fmt"
	"strconv"
	"strings"

	"foodies/internal/model"
	"foodies/internal/stats"
	"foodies/internal/store"
	"foodies/internal/util"
)

func placeForm(p *model.Place) formSpec {
	spec := formSpec{
		entity: model.EntityPlace,
		title:  "New place",
		fields: []formField{
			{label: "Name", placeholder: "Old Town", limit: 100, required: true},
			{label: "Address", placeholder: "Street address"},
			{label: "City", placeholder: "City", limit: 100},
			{label: "State", placeholder: "State or province", limit: 100},
		},
	}
	if p != nil {
		spec.id = p.ID
		spec.title = "Edit " + p.Name
		spec.values = []string{p.Name, p.Address, p.City, p.State}
	}
	spec.build = func(v []string, changed func(int) bool) (writeFunc, error) {
		if spec.id == "" {
			in := model.NewPlace{Name: v[0], Address: v[1], City: v[2], State: v[3]}
			return func(s *store.Store) (string, error) {
				p, err := s.AddPlace(in)
				return p.ID, err
			}, nil
		}
		var patch model.PlacePatch
		patch.Name = changedString(v, 0, changed)
		patch.Address = changedString(v, 1, changed)
		patch.City = changedString(v, 2, changed)
		patch.State = changedString(v, 3, changed)
		return func(s *store.Store) (string, error) {
			return spec.id, s.UpdatePlace(spec.id, patch)
		}, nil
	}
	return spec
}

func shopForm(doc model.Document, sh *model.Shop, placeID string) formSpec {
	spec := formSpec{
		entity: model.EntityShop,
		title:  "New shop",
		fields: []formField{
			{label: "Name", placeholder: "Pho 24", limit: 100, required: true},
			{label: "Address", placeholder: "Street address"},
			{label: "Place", placeholder: "Place name or id", required: true},
		},
		values: []string{"", "", placeLabel(doc, placeID)},
	}
	if sh != nil {
		spec.id = sh.ID
		spec.title = "Edit " + sh.Name
		spec.values = []string{sh.Name, sh.Address, placeLabel(doc, sh.PlaceID)}
	}
	spec.build = func(v []string, changed func(int) bool) (writeFunc, error) {
		var place string
		if spec.id == "" || changed(2) {
			var err error
			place, err = resolveRef(doc.Places, v[2], "place",
				func(p model.Place) string { return p.ID }, func(p model.Place) string { return p.Name })
			if err != nil {
				return nil, err
			}
		}
		if spec.id == "" {
			in := model.NewShop{Name: v[0], Address: v[1], PlaceID: place}
			return func(s *store.Store) (string, error) {
				sh, err := s.AddShop(in)
				return sh.ID, err
			}, nil
		}
		var patch model.ShopPatch
		patch.Name = changedString(v, 0, changed)
		patch.Address = changedString(v, 1, changed)
		if changed(2) {
			patch.PlaceID = &place
		}
		return func(s *store.Store) (string, error) {
			return spec.id, s.UpdateShop(spec.id, patch)
		}, nil
	}
	return spec
}

func foodForm(doc model.Document, f *model.Food, shopID string) formSpec {
	kinds := make([]string, len(model.Kinds))
	for i, k := range model.Kinds {
		kinds[i] = string(k)
	}
	spec := formSpec{
		entity: model.EntityFood,
		title:  "New food",
		fields: []formField{
			{label: "Name", placeholder: "Pho Bo", limit: 100, required: true},
			{label: "Kind", placeholder: strings.Join(kinds, ", "), limit: 20},
			{label: "Shop", placeholder: "Shop name or id", required: true},
			{label: "Price", placeholder: "45000", limit: 30},
			{label: "Rating", placeholder: "0-5", limit: 1},
			{label: "Favorite", placeholder: "y/n", limit: 3},
			{label: "Image URL", placeholder: "https://...", limit: 500},
			{label: "Added", placeholder: "YYYY-MM-DD (blank for now)", limit: 20},
		},
		values: []string{"", string(model.KindNoodle), shopLabel(doc, shopID), "", "", "n", "", ""},
	}
	if f != nil {
		spec.id = f.ID
		spec.title = "Edit " + f.Name
		rating := ""
		if _, ok := f.Rating.Float(); ok {
			rating = strconv.Itoa(f.Rating.IntOr(0))
		}
		spec.values = []string{
			f.Name, string(f.Kind), shopLabel(doc, f.ShopID), string(f.Price),
			rating, yesNo(f.Favorite), f.ImageURL, dateOf(f.CreatedAt),
		}
	}
	spec.build = func(v []string, changed func(int) bool) (writeFunc, error) {
		kind := model.Kind(strings.ToLower(v[1]))
		if kind == "" {
			kind = model.KindNoodle
		}
		if !kind.Valid() {
			return nil, fmt.Errorf("%w: kind must be one of %s", model.ErrValidation, strings.Join(kinds, ", "))
		}
		var shop string
		if spec.id == "" || changed(2) {
			var err error
			shop, err = resolveRef(doc.Shops, v[2], "shop",
				func(s model.Shop) string { return s.ID }, func(s model.Shop) string { return s.Name })
			if err != nil {
				return nil, err
			}
		}
		rating, err := parseRating(v[4])
		if err != nil {
			return nil, err
		}
		fav, err := parseYesNo(v[5])
		if err != nil {
			return nil, err
		}
		created, err := parseCreatedAt(v[7])
		if err != nil {
			return nil, err
		}

		if spec.id == "" {
			in := model.NewFood{
				Name: v[0], Kind: kind, ShopID: shop, Price: model.Price(v[3]),
				Favorite: fav, Rating: rating, ImageURL: v[6], CreatedAt: created,
			}
			return func(s *store.Store) (string, error) {
				f, err := s.AddFood(in)
				return f.ID, err
			}, nil
		}
		var patch model.FoodPatch
		patch.Name = changedString(v, 0, changed)
		if changed(1) {
			patch.Kind = &kind
		}
		if changed(2) {
			patch.ShopID = &shop
		}
		if changed(3) {
			price := model.Price(v[3])
			patch.Price = &price
		}
		if changed(4) {
			patch.Rating = model.IntPtr(0)
			if rating != nil {
				patch.Rating = rating
			}
		}
		if changed(5) {
			patch.Favorite = &fav
		}
		patch.ImageURL = changedString(v, 6, changed)
		if changed(7) && created != "" {
			patch.CreatedAt = &created
		}
		return func(s *store.Store) (string, error) {
			return spec.id, s.UpdateFood(spec.id, patch)
		}, nil
	}
	return spec
}

// Trip form field positions.
const (
	tripDate = iota
	tripTitle
	tripDescription
	tripRating
	tripBudget
	tripTags
	tripParent
	tripPlaces
	tripShops
	tripFoods
	tripExpenses
)

func tripForm(doc model.Document, t *model.Trip, parentID string) formSpec {
	spec := formSpec{
		entity: model.EntityTrip,
		title:  "New trip",
		fields: []formField{
			{label: "Date", placeholder: "YYYY-MM-DD (blank for today)", limit: 20},
			{label: "Title", placeholder: "Weekend in Hoi An", limit: 120, required: true},
			{label: "Description", placeholder: "What happened", limit: 1000},
			{label: "Rating", placeholder: "0-5", limit: 1},
			{label: "Budget", placeholder: "0", limit: 30},
			{label: "Tags", placeholder: "street food, family"},
			{label: "Parent trip", placeholder: "Main trip title or id (blank for a main trip)"},
			{label: "Places", placeholder: "Comma separated names", limit: 500},
			{label: "Shops", placeholder: "Comma separated names", limit: 500},
			{label: "Foods", placeholder: "Comma separated names", limit: 500},
			{label: "Expenses", placeholder: "label:amount:category; ...", limit: 2000},
		},
		values: []string{"", "", "", "", "", "", tripLabel(doc, parentID), "", "", "", ""},
	}
	if t != nil {
		spec.id = t.ID
		spec.title = "Edit " + t.Title
		parent := ""
		if t.ParentID != nil {
			parent = tripLabel(doc, *t.ParentID)
		}
		spec.values = []string{
			t.Date, t.Title, t.Description, strconv.Itoa(t.Rating.IntOr(0)),
			string(t.Budget), strings.Join(t.Tags, ", "), parent,
			joinNames(t.PlaceIDs, func(id string) string { return placeLabel(doc, id) }),
			joinNames(t.ShopIDs, func(id string) string { return shopLabel(doc, id) }),
			joinNames(t.FoodIDs, func(id string) string { return foodLabel(doc, id) }),
			formatExpenses(t.Expenses),
		}
	}
	spec.build = func(v []string, changed func(int) bool) (writeFunc, error) {
		date, err := util.ParseDateInput(v[tripDate])
		if err != nil {
			return nil, fmt.Errorf("%w: date: %v", model.ErrValidation, err)
		}
		rating, err := parseRating(v[tripRating])
		if err != nil {
			return nil, err
		}
		budget := model.Amount("0")
		if v[tripBudget] != "" {
			d, ok := stats.ParseOrAbsent(v[tripBudget])
			if !ok {
				return nil, fmt.Errorf("%w: budget must be a number", model.ErrValidation)
			}
			budget = model.Amount(d.String())
		}
		resolve := func(i int) bool { return spec.id == "" || changed(i) }
		var parent string
		if resolve(tripParent) {
			if parent, err = resolveParent(doc, v[tripParent], spec.id); err != nil {
				return nil, err
			}
		}
		var places, shops, foods []string
		if resolve(tripPlaces) {
			places, err = resolveRefs(doc.Places, v[tripPlaces], "place",
				func(p model.Place) string { return p.ID }, func(p model.Place) string { return p.Name })
			if err != nil {
				return nil, err
			}
		}
		if resolve(tripShops) {
			shops, err = resolveRefs(doc.Shops, v[tripShops], "shop",
				func(s model.Shop) string { return s.ID }, func(s model.Shop) string { return s.Name })
			if err != nil {
				return nil, err
			}
		}
		if resolve(tripFoods) {
			foods, err = resolveRefs(doc.Foods, v[tripFoods], "food",
				func(f model.Food) string { return f.ID }, func(f model.Food) string { return f.Name })
			if err != nil {
				return nil, err
			}
		}
		var expenses []model.Expense
		if resolve(tripExpenses) {
			if expenses, err = parseExpenses(v[tripExpenses]); err != nil {
				return nil, err
			}
		}
		tags := splitList(v[tripTags])
		stars := 0
		if rating != nil {
			stars = *rating
		}

		if spec.id == "" {
			in := model.NewTrip{
				Date: date, Title: v[tripTitle], Description: v[tripDescription],
				PlaceIDs: places, ShopIDs: shops, FoodIDs: foods,
				Rating: stars, Expenses: expenses, Tags: tags, Budget: budget,
			}
			if parent != "" {
				in.ParentID = &parent
				in.Order = model.IntPtr(len(doc.Children(parent)))
			}
			return func(s *store.Store) (string, error) {
				t, err := s.AddTrip(in)
				return t.ID, err
			}, nil
		}

		var patch model.TripPatch
		if changed(tripDate) && date != "" {
			patch.Date = &date
		}
		patch.Title = changedString(v, tripTitle, changed)
		patch.Description = changedString(v, tripDescription, changed)
		if changed(tripRating) {
			patch.Rating = &stars
		}
		if changed(tripBudget) {
			patch.Budget = &budget
		}
		if changed(tripTags) {
			patch.Tags = &tags
		}
		if changed(tripParent) {
			if parent == "" {
				patch.ClearParent = true
			} else {
				patch.ParentID = &parent
			}
		}
		// Reference lists are rebuilt from names, so they are only written
		// when edited. Untouched expenses keep their related ids.
		if changed(tripPlaces) {
			patch.PlaceIDs = &places
		}
		if changed(tripShops) {
			patch.ShopIDs = &shops
		}
		if changed(tripFoods) {
			patch.FoodIDs = &foods
		}
		if changed(tripExpenses) {
			patch.Expenses = &expenses
		}
		return func(s *store.Store) (string, error) {
			return spec.id, s.UpdateTrip(spec.id, patch)
		}, nil
	}
	return spec
}

func changedString(v []string, i int, changed func(int) bool) *string {
	if !changed(i) {
		return nil
	}
	s := v[i]
	return &s
}

// resolveRef finds an item by exact id or case-insensitive name.
func resolveRef[T any](items []T, ref, what string, id, name func(T) string) (string, error) {
	ref = strings.TrimSpace(ref)
	for _, it := range items {
		if id(it) == ref {
			return ref, nil
		}
	}
	for _, it := range items {
		if strings.EqualFold(name(it), ref) {
			return id(it), nil
		}
	}
	return "", fmt.Errorf("%w: unknown %s %q", model.ErrValidation, what, ref)
}

func resolveRefs[T any](items []T, refs, what string, id, name func(T) string) ([]string, error) {
	out := []string{}
	for _, ref := range splitList(refs) {
		resolved, err := resolveRef(items, ref, what, id, name)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved)
	}
	return out, nil
}

// resolveParent accepts only main trips other than self as parents.
func resolveParent(doc model.Document, ref, self string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", nil
	}
	id, err := resolveRef(doc.Trips, ref, "trip",
		func(t model.Trip) string { return t.ID }, func(t model.Trip) string { return t.Title })
	if err != nil {
		return "", err
	}
	parent, _ := doc.TripByID(id)
	switch {
	case id == self:
		return "", fmt.Errorf("%w: a trip cannot be its own parent", model.ErrValidation)
	case doc.IsEntry(parent):
		return "", fmt.Errorf("%w: %q is itself an entry", model.ErrValidation, parent.Title)
	case self != "" && len(doc.Children(self)) > 0:
		return "", fmt.Errorf("%w: a trip with entries cannot become an entry", model.ErrValidation)
	}
	return id, nil
}

func parseRating(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 5 {
		return nil, fmt.Errorf("%w: rating must be a whole number from 0 to 5", model.ErrValidation)
	}
	return &n, nil
}

func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "", "n", "no", "false", "0":
		return false, nil
	case "y", "yes", "true", "1":
		return true, nil
	}
	return false, fmt.Errorf("%w: favorite must be y or n", model.ErrValidation)
}

func yesNo(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

// parseCreatedAt turns a date into a midnight UTC timestamp. Blank stays
// blank so the store stamps the current time.
func parseCreatedAt(s string) (string, error) {
	date, err := util.ParseDateInput(s)
	if err != nil {
		return "", fmt.Errorf("%w: added: %v", model.ErrValidation, err)
	}
	if date == "" {
		return "", nil
	}
	return date + "T00:00:00.000Z", nil
}

// parseExpenses reads "label:amount:category" items separated by ";".
func parseExpenses(s string) ([]model.Expense, error) {
	out := []model.Expense{}
	for _, item := range strings.Split(s, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		parts := strings.SplitN(item, ":", 3)
		e := model.Expense{Label: strings.TrimSpace(parts[0])}
		if len(parts) > 1 {
			amount := strings.TrimSpace(parts[1])
			if _, ok := stats.ParseOrAbsent(amount); amount != "" && !ok {
				return nil, fmt.Errorf("%w: expense %q has an invalid amount", model.ErrValidation, e.Label)
			}
			e.Amount = model.Amount(amount)
		}
		if len(parts) > 2 {
			e.Category = strings.TrimSpace(parts[2])
		}
		out = append(out, e)
	}
	return out, nil
}

func formatExpenses(expenses []model.Expense) string {
	parts := make([]string, len(expenses))
	for i, e := range expenses {
		parts[i] = e.Label + ":" + string(e.Amount)
		if e.Category != "" {
			parts[i] += ":" + e.Category
		}
	}
	return strings.Join(parts, "; ")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func joinNames(ids []string, label func(string) string) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = label(id)
	}
	return strings.Join(names, ", ")
}

// Labels fall back to the raw id so dangling references survive an edit.

func placeLabel(doc model.Document, id string) string {
	if p, ok := doc.PlaceByID(id); ok {
		return p.Name
	}
	return id
}

func shopLabel(doc model.Document, id string) string {
	if s, ok := doc.ShopByID(id); ok {
		return s.Name
	}
	return id
}

func foodLabel(doc model.Document, id string) string {
	if f, ok := doc.FoodByID(id); ok {
		return f.Name
	}
	return id
}

func tripLabel(doc model.Document, id string) string {
	if t, ok := doc.TripByID(id); ok {
		return t.Title
	}
	return id
}
