package ui

import (
	"fmt"
	"strings"
	"time"

	"foodies/internal/model"
	"foodies/internal/query"
	"foodies/internal/stats"
	"foodies/internal/util"

	"github.com/charmbracelet/lipgloss"
)

var rollupSorts = []stats.RollupSort{stats.SortByCombined, stats.SortByEntries, stats.SortByTitle}

func nextRollupSort(s stats.RollupSort) stats.RollupSort {
	for i, known := range rollupSorts {
		if known == s {
			return rollupSorts[(i+1)%len(rollupSorts)]
		}
	}
	return stats.SortByCombined
}

// RollupModel lists every main trip with the combined figures of its journal
// entries. When respect is set only the trips and entries passing the Trips
// tab search are counted.
type RollupModel struct {
	rows     []stats.RollupRow
	filter   query.TripFilter
	respect  bool
	sortKey  stats.RollupSort
	settings model.Settings
	children childList
}

func NewRollupModel(doc model.Document, filter query.TripFilter, respect bool, sortKey stats.RollupSort, st model.Settings, now time.Time) *RollupModel {
	var pass stats.Predicate
	if respect {
		pass = filter.Predicate()
	}
	rows := stats.Rollups(doc.Trips, pass, sortKey, now)
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.Trip.ID
	}
	return &RollupModel{
		rows:     rows,
		filter:   filter,
		respect:  respect,
		sortKey:  sortKey,
		settings: st,
		children: childList{ids: ids},
	}
}

func (m *RollupModel) filterLabel() string {
	switch {
	case !m.filter.Active():
		return "no filter"
	case m.respect:
		return "respecting filter"
	default:
		return "ignoring filter"
	}
}

// View renders the roll-up list.
func (m *RollupModel) View(width, height int) string {
	header := shortcutsHeader("j/k move  enter open  t filter  o sort  h back", width)
	status := StatusBarStyle.Render(fmt.Sprintf("%d main trips · sorted by %s · %s",
		len(m.rows), m.sortKey, m.filterLabel()))

	if len(m.rows) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, status,
			EmptyStateStyle.Render("No main trips match."))
	}

	titleWidth := max(width-70, 16)
	head := TableHeaderStyle.Render(fmt.Sprintf("  %-*s %7s  %16s  %16s  %16s",
		titleWidth, "trip", "entries", "combined", "budget", "remaining"))
	lines := make([]string, len(m.rows))
	for i, r := range m.rows {
		lines[i] = fmt.Sprintf("%-*s %7d  %16s  %16s  %16s",
			titleWidth, util.TruncateString(r.Trip.Title, titleWidth),
			r.Entries,
			util.FormatAmount(r.CombinedTotal, m.settings),
			util.FormatAmount(r.CombinedBudget, m.settings),
			util.FormatAmount(r.BudgetRemaining, m.settings))
	}
	body := strings.Join([]string{head, m.children.render(lines)}, "\n")
	return lipgloss.JoinVertical(lipgloss.Left, header, status, body)
}
