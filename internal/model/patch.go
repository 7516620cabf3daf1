package model

// Patches carry one pointer per mutable field. A nil pointer leaves the field
// alone; a non-nil slice replaces the stored slice entirely.

// PlacePatch is a partial update for a place.
type PlacePatch struct {
	Name    *string
	Address *string
	City    *string
	State   *string
}

// Apply returns p with the patch merged in.
func (pp PlacePatch) Apply(p Place) Place {
	setString(&p.Name, pp.Name)
	setString(&p.Address, pp.Address)
	setString(&p.City, pp.City)
	setString(&p.State, pp.State)
	return p
}

// ShopPatch is a partial update for a shop.
type ShopPatch struct {
	Name    *string
	Address *string
	PlaceID *string
}

// Apply returns s with the patch merged in.
func (sp ShopPatch) Apply(s Shop) Shop {
	setString(&s.Name, sp.Name)
	setString(&s.Address, sp.Address)
	setString(&s.PlaceID, sp.PlaceID)
	return s
}

// FoodPatch is a partial update for a food.
type FoodPatch struct {
	Name      *string
	Kind      *Kind
	ShopID    *string
	Price     *Price
	Favorite  *bool
	Rating    *int
	ImageURL  *string
	CreatedAt *string
}

// Apply returns f with the patch merged in.
func (fp FoodPatch) Apply(f Food) Food {
	setString(&f.Name, fp.Name)
	if fp.Kind != nil {
		f.Kind = *fp.Kind
	}
	setString(&f.ShopID, fp.ShopID)
	if fp.Price != nil {
		f.Price = *fp.Price
	}
	if fp.Favorite != nil {
		f.Favorite = *fp.Favorite
	}
	if fp.Rating != nil {
		f.Rating = NumberOf(*fp.Rating)
	}
	setString(&f.ImageURL, fp.ImageURL)
	setString(&f.CreatedAt, fp.CreatedAt)
	return f
}

// TripPatch is a partial update for a trip. ClearParent wins over ParentID.
type TripPatch struct {
	Date        *string
	Title       *string
	Description *string
	PlaceIDs    *[]string
	ShopIDs     *[]string
	FoodIDs     *[]string
	Photos      *[]string
	Rating      *int
	Timeline    *[]TimelineItem
	Activities  *[]Activity
	Expenses    *[]Expense
	Tags        *[]string
	Budget      *Amount
	ParentID    *string
	ClearParent bool
	Order       *int
}

// Apply returns t with the patch merged in.
func (tp TripPatch) Apply(t Trip) Trip {
	setString(&t.Date, tp.Date)
	setString(&t.Title, tp.Title)
	setString(&t.Description, tp.Description)
	setSlice(&t.PlaceIDs, tp.PlaceIDs)
	setSlice(&t.ShopIDs, tp.ShopIDs)
	setSlice(&t.FoodIDs, tp.FoodIDs)
	setSlice(&t.Photos, tp.Photos)
	if tp.Rating != nil {
		t.Rating = NumberOf(*tp.Rating)
	}
	setSlice(&t.Timeline, tp.Timeline)
	setSlice(&t.Activities, tp.Activities)
	setSlice(&t.Expenses, tp.Expenses)
	if tp.Tags != nil {
		t.Tags = NormalizeTags(*tp.Tags)
	}
	if tp.Budget != nil {
		t.Budget = *tp.Budget
	}
	switch {
	case tp.ClearParent:
		t.ParentID = nil
	case tp.ParentID != nil:
		t.ParentID = StringPtr(*tp.ParentID)
	}
	if tp.Order != nil {
		t.Order = NumberOf(*tp.Order)
	}
	return t
}

// SettingsPatch is a partial update for settings.
type SettingsPatch struct {
	Currency            *string
	Locale              *string
	PriceFractionDigits *int
	DefaultPageSize     *int
}

// Apply returns s with the patch merged in.
func (sp SettingsPatch) Apply(s Settings) Settings {
	setString(&s.Currency, sp.Currency)
	setString(&s.Locale, sp.Locale)
	if sp.PriceFractionDigits != nil {
		s.PriceFractionDigits = *sp.PriceFractionDigits
	}
	if sp.DefaultPageSize != nil {
		s.DefaultPageSize = *sp.DefaultPageSize
	}
	return s
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setSlice[T any](dst *[]T, v *[]T) {
	if v == nil {
		return
	}
	out := make([]T, len(*v))
	copy(out, *v)
	*dst = out
}
