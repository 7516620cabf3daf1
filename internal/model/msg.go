package model

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// DocumentLoadedMsg carries a fresh copy of the dataset and the settings.
type DocumentLoadedMsg struct {
	Doc      Document
	Settings Settings
}

// MutatedMsg is sent after a write. Before and After are whole-document
// snapshots taken around the write, used for undo and redo.
type MutatedMsg struct {
	Entity    string
	ID        string
	Operation string // create, update, delete, reorder
	Before    Document
	After     Document
}

// FormCancelledMsg is sent when a form is cancelled.
type FormCancelledMsg struct{}

// PreviewLoadedMsg carries the ASCII rendering of a food image.
type PreviewLoadedMsg struct {
	FoodID string
	Art    string
	Err    error
}

// Entity names used in messages and logs.
const (
	EntityPlace = "place"
	EntityShop  = "shop"
	EntityFood  = "food"
	EntityTrip  = "trip"
)

// Operations carried by MutatedMsg.
const (
	OpCreate  = "create"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpReorder = "reorder"
)

// Screen represents different app screens.
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenPlaces
	ScreenShops
	ScreenFoods
	ScreenTrips
	ScreenPlaceDetail
	ScreenShopDetail
	ScreenFoodDetail
	ScreenTripDetail
	ScreenRollup
	ScreenForm
)

// Tabs lists the top-level screens in tab order.
var Tabs = []Screen{ScreenDashboard, ScreenPlaces, ScreenShops, ScreenFoods, ScreenTrips}

// IsTab reports whether s is one of the top-level tabs.
func (s Screen) IsTab() bool {
	return s <= ScreenTrips
}

func (s Screen) String() string {
	switch s {
	case ScreenDashboard:
		return "Dashboard"
	case ScreenPlaces, ScreenPlaceDetail:
		return "Places"
	case ScreenShops, ScreenShopDetail:
		return "Shops"
	case ScreenFoods, ScreenFoodDetail:
		return "Foods"
	case ScreenTrips, ScreenTripDetail:
		return "Trips"
	case ScreenRollup:
		return "Roll-up"
	case ScreenForm:
		return "Form"
	default:
		return ""
	}
}

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNav Mode = iota
	ModeInsert
)
