package ui

import "github.com/charmbracelet/bubbles/key"

// GState represents the state for "gg" navigation.
type GState int

const (
	GStateIdle GState = iota
	GStateFirstG
)

// KeyMap defines all keybindings for nav mode.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Back         key.Binding
	Open         key.Binding
	PrevTab      key.Binding
	NextTab      key.Binding
	Top          key.Binding
	Bottom       key.Binding
	HalfPageDown key.Binding
	HalfPageUp   key.Binding
	PrevPage     key.Binding
	NextPage     key.Binding
	Search       key.Binding
	Quit         key.Binding
	Help         key.Binding
	Reload       key.Binding
	Add          key.Binding
	Edit         key.Binding
	Delete       key.Binding
	Favorite     key.Binding
	ToggleImage  key.Binding
	EntryUp      key.Binding
	EntryDown    key.Binding
	NextColumn   key.Binding
	PrevColumn   key.Binding
	SortAsc      key.Binding
	SortDesc     key.Binding
	HideColumn   key.Binding
	ShowColumns  key.Binding
	FilterValue  key.Binding
	ClearFilter  key.Binding
	ColumnJump   key.Binding
	Undo         key.Binding
	Redo         key.Binding
	Duplicate    key.Binding
	RandomPick   key.Binding
	Rollup       key.Binding
	ToggleFilter key.Binding
	CycleSort    key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:           bind("k/↑", "up", "k", "up"),
		Down:         bind("j/↓", "down", "j", "down"),
		Back:         bind("h/esc", "back", "h", "b", "esc"),
		Open:         bind("enter/l", "open", "enter", "l"),
		PrevTab:      bind("←", "prev tab", "left"),
		NextTab:      bind("→", "next tab", "right"),
		Top:          bind("gg", "top", "g"),
		Bottom:       bind("G", "bottom", "G"),
		HalfPageDown: bind("ctrl+d", "½ page down", "ctrl+d"),
		HalfPageUp:   bind("ctrl+u", "½ page up", "ctrl+u"),
		PrevPage:     bind("[", "prev page", "["),
		NextPage:     bind("]", "next page", "]"),
		Search:       bind("f", "search", "f"),
		Quit:         bind("q", "quit", "q"),
		Help:         bind("?", "help", "?"),
		Reload:       bind("R", "reload", "R"),
		Add:          bind("a", "add", "a"),
		Edit:         bind("e", "edit", "e"),
		Delete:       bind("d", "delete", "d"),
		Favorite:     bind("F", "favorite", "F"),
		ToggleImage:  bind("i", "image", "i"),
		EntryUp:      bind("K", "move entry up", "K"),
		EntryDown:    bind("J", "move entry down", "J"),
		NextColumn:   bind("tab", "next col", "tab"),
		PrevColumn:   bind("shift+tab", "prev col", "shift+tab"),
		SortAsc:      bind("s", "sort asc", "s"),
		SortDesc:     bind("S", "sort desc", "S"),
		HideColumn:   bind("c", "hide col", "c"),
		ShowColumns:  bind("C", "show cols", "C"),
		FilterValue:  bind("n", "filter value", "n"),
		ClearFilter:  bind("N", "clear filter", "N"),
		ColumnJump:   bind("/", "jump col", "/"),
		Undo:         bind("u", "undo", "u"),
		Redo:         bind("ctrl+r", "redo", "ctrl+r"),
		Duplicate:    bind("D", "duplicate", "D"),
		RandomPick:   bind("p", "random pick", "p"),
		Rollup:       bind("r", "roll-up", "r"),
		ToggleFilter: bind("t", "toggle filter", "t"),
		CycleSort:    bind("o", "cycle sort", "o"),
	}
}

// FormKeyMap defines keybindings for insert/edit mode.
type FormKeyMap struct {
	NextField key.Binding
	PrevField key.Binding
	Save      key.Binding
	Cancel    key.Binding
}

// DefaultFormKeyMap returns the default form keybindings.
func DefaultFormKeyMap() FormKeyMap {
	return FormKeyMap{
		NextField: bind("tab", "next field", "tab", "down"),
		PrevField: bind("shift+tab", "prev field", "shift+tab", "up"),
		Save:      bind("ctrl+s", "save", "ctrl+s"),
		Cancel:    bind("esc", "cancel", "esc"),
	}
}

// bind builds a binding shown as help with the given description.
func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}
