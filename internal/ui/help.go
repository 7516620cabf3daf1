package ui

import (
	"strings"

	"foodies/internal/model"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// RenderHelp renders the context-sensitive footer for screen.
func RenderHelp(keys KeyMap, formKeys FormKeyMap, screen model.Screen, mode model.Mode, width int) string {
	if mode == model.ModeInsert {
		return renderHelpLine(width,
			helpKey("next field", formKeys.NextField),
			helpKey("prev field", formKeys.PrevField),
			helpKey("save", formKeys.Save),
			helpKey("cancel", formKeys.Cancel),
		)
	}

	edit := helpKey("add/edit/delete", keys.Add, keys.Edit, keys.Delete)
	back := helpKey("back", keys.Back)
	switch screen {
	case model.ScreenDashboard:
		return renderHelpLine(width,
			helpKey("tabs", keys.PrevTab, keys.NextTab),
			helpKey("reload", keys.Reload),
			helpKey("undo/redo", keys.Undo, keys.Redo),
			helpKey("help", keys.Help),
			helpKey("quit", keys.Quit),
		)
	case model.ScreenPlaces, model.ScreenShops:
		return renderHelpLine(width, append(tableHelp(keys), edit,
			helpKey("details", keys.Open),
			helpKey("undo/redo", keys.Undo, keys.Redo))...)
	case model.ScreenTrips:
		return renderHelpLine(width, append(tableHelp(keys), edit,
			helpKey("details", keys.Open),
			helpKey("roll-up", keys.Rollup))...)
	case model.ScreenFoods:
		return renderHelpLine(width, append(tableHelp(keys), edit,
			helpKey("favorite", keys.Favorite),
			helpKey("duplicate", keys.Duplicate),
			helpKey("random pick", keys.RandomPick),
			helpKey("details", keys.Open))...)
	case model.ScreenRollup:
		return renderHelpLine(width,
			helpKey("navigate", keys.Down, keys.Up),
			helpKey("open trip", keys.Open),
			helpKey("filter", keys.ToggleFilter),
			helpKey("sort", keys.CycleSort),
			back,
		)
	case model.ScreenPlaceDetail, model.ScreenShopDetail:
		return renderHelpLine(width,
			helpKey("navigate", keys.Down, keys.Up),
			helpKey("open", keys.Open),
			edit,
			back,
		)
	case model.ScreenFoodDetail:
		return renderHelpLine(width,
			helpKey("favorite", keys.Favorite),
			helpKey("image", keys.ToggleImage),
			helpKey("edit/delete", keys.Edit, keys.Delete),
			back,
		)
	case model.ScreenTripDetail:
		return renderHelpLine(width,
			helpKey("navigate", keys.Down, keys.Up),
			helpKey("move entry", keys.EntryDown, keys.EntryUp),
			helpKey("open entry", keys.Open),
			helpKey("add entry", keys.Add),
			helpKey("edit/delete", keys.Edit, keys.Delete),
			back,
		)
	default:
		return renderHelpLine(width, helpKey("help", keys.Help), helpKey("quit", keys.Quit))
	}
}

func tableHelp(keys KeyMap) []string {
	return []string{
		helpKey("navigate", keys.Down, keys.Up),
		helpKey("next col", keys.NextColumn),
		helpKey("sort", keys.SortAsc, keys.SortDesc),
		helpKey("filter", keys.FilterValue, keys.ClearFilter),
		helpKey("search", keys.Search),
		helpKey("page", keys.PrevPage, keys.NextPage),
	}
}

// bindingKeys joins the help labels of bs with sep.
func bindingKeys(sep string, bs ...key.Binding) string {
	labels := make([]string, 0, len(bs))
	for _, b := range bs {
		labels = append(labels, b.Help().Key)
	}
	return strings.Join(labels, sep)
}

func helpKey(desc string, bs ...key.Binding) string {
	return HelpKeyStyle.Render(bindingKeys("/", bs...)) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(width int, keys ...string) string {
	return FooterStyle.Width(width).Render(strings.Join(keys, "  "))
}

type helpItem struct {
	key  string
	desc string
}

func helpEntry(desc string, bs ...key.Binding) helpItem {
	return helpItem{key: bindingKeys(" / ", bs...), desc: desc}
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(keys KeyMap, formKeys FormKeyMap, width, height int) string {
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	sections := []string{
		titleSection("Navigation"),
		helpSection([]helpItem{
			helpEntry("Move down / up", keys.Down, keys.Up),
			helpEntry("Go back", keys.Back),
			helpEntry("Open / select", keys.Open),
			{"← / → / 1-5", "Switch tab"},
			helpEntry("Jump to top / bottom", keys.Top, keys.Bottom),
			helpEntry("Half page down / up", keys.HalfPageDown, keys.HalfPageUp),
			helpEntry("Previous / next page", keys.PrevPage, keys.NextPage),
			helpEntry("Undo / redo", keys.Undo, keys.Redo),
			helpEntry("Reload from disk", keys.Reload),
			helpEntry("Quit (from a tab)", keys.Quit),
			helpEntry("Toggle help", keys.Help),
		}),
		titleSection("Tables"),
		helpSection([]helpItem{
			helpEntry("Cycle active column", keys.NextColumn, keys.PrevColumn),
			{keys.ColumnJump.Help().Key + " then 1-9", "Jump to column"},
			helpEntry("Sort active column asc / desc", keys.SortAsc, keys.SortDesc),
			helpEntry("Hide active column / show all", keys.HideColumn, keys.ShowColumns),
			helpEntry("Filter by selected value / clear", keys.FilterValue, keys.ClearFilter),
			helpEntry("Search", keys.Search),
			helpEntry("Add / edit / delete", keys.Add, keys.Edit, keys.Delete),
			helpEntry("Duplicate food", keys.Duplicate),
			helpEntry("Pick a random food from the list", keys.RandomPick),
		}),
		titleSection("Trip Roll-up"),
		helpSection([]helpItem{
			helpEntry("Open the roll-up from the Trips tab", keys.Rollup),
			helpEntry("Respect / ignore the Trips search", keys.ToggleFilter),
			helpEntry("Cycle sort: combined, entries, title", keys.CycleSort),
		}),
		titleSection("Details"),
		helpSection([]helpItem{
			helpEntry("Add a shop to a place, a food to a shop, an entry to a trip", keys.Add),
			helpEntry("Toggle favorite food", keys.Favorite),
			helpEntry("Toggle image preview", keys.ToggleImage),
			helpEntry("Move journal entry down / up", keys.EntryDown, keys.EntryUp),
		}),
		titleSection("Forms (Insert/Edit Mode)"),
		helpSection([]helpItem{
			helpEntry("Next field", formKeys.NextField),
			helpEntry("Previous field", formKeys.PrevField),
			helpEntry("Save", formKeys.Save),
			helpEntry("Cancel", formKeys.Cancel),
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, it := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(it.key)+" - "+HelpDescStyle.Render(it.desc))
	}
	return strings.Join(lines, "\n")
}
