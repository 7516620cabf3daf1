package query

import (
	"slices"
	"strings"

	"foodies/internal/model"
)

// PageInfo describes one page of a list. Pages is at least 1.
type PageInfo struct {
	Page  int
	Size  int
	Total int
	Pages int
}

// HasPrev reports whether an earlier page exists.
func (p PageInfo) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a later page exists.
func (p PageInfo) HasNext() bool { return p.Page < p.Pages }

// Paginate returns the 1-based page of items. A size below 1 uses
// defaultSize, and page is clamped into range.
func Paginate[T any](items []T, page, size, defaultSize int) ([]T, PageInfo) {
	if size < 1 {
		size = defaultSize
	}
	if size < 1 {
		size = model.DefaultSettings().DefaultPageSize
	}
	total := len(items)
	pages := max((total+size-1)/size, 1)
	page = min(max(page, 1), pages)

	start := min((page-1)*size, total)
	end := min(start+size, total)
	return items[start:end], PageInfo{Page: page, Size: size, Total: total, Pages: pages}
}

// States lists the distinct non-empty place states, sorted.
func States(places []model.Place) []string {
	var out []string
	for _, p := range places {
		if p.State != "" && !slices.Contains(out, p.State) {
			out = append(out, p.State)
		}
	}
	slices.Sort(out)
	return out
}

// AllTags lists every distinct trip tag, ignoring case, sorted.
func AllTags(trips []model.Trip) []string {
	tags := model.Tags{}
	for _, t := range trips {
		for _, tag := range t.Tags {
			tags, _ = tags.Add(tag)
		}
	}
	out := []string(tags)
	slices.SortFunc(out, textCompare())
	return out
}

// Years lists the distinct trip years, newest first.
func Years(trips []model.Trip) []string {
	var out []string
	for _, t := range trips {
		if len(t.Date) < 4 {
			continue
		}
		y := t.Date[:4]
		if !slices.Contains(out, y) {
			out = append(out, y)
		}
	}
	slices.SortFunc(out, func(a, b string) int { return strings.Compare(b, a) })
	return out
}

// Months are the values accepted by TripFilter.Month.
var Months = []string{"01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11", "12"}
