package model

import "strings"

// Tags is an ordered set of labels. Membership ignores case but the first
// spelling seen is the one kept.
type Tags []string

// NormalizeTags trims, drops blanks and removes case-insensitive duplicates.
func NormalizeTags(in []string) Tags {
	out := Tags{}
	for _, t := range in {
		out, _ = out.Add(t)
	}
	return out
}

// Contains reports whether tag is present, ignoring case.
func (t Tags) Contains(tag string) bool {
	return t.index(tag) >= 0
}

// Add appends tag unless an equal tag is already present.
func (t Tags) Add(tag string) (Tags, bool) {
	tag = strings.TrimSpace(tag)
	if tag == "" || t.Contains(tag) {
		return t, false
	}
	return append(t, tag), true
}

// Remove drops tag if present, ignoring case.
func (t Tags) Remove(tag string) Tags {
	i := t.index(strings.TrimSpace(tag))
	if i < 0 {
		return t
	}
	out := make(Tags, 0, len(t)-1)
	out = append(out, t[:i]...)
	return append(out, t[i+1:]...)
}

func (t Tags) index(tag string) int {
	for i, existing := range t {
		if strings.EqualFold(existing, tag) {
			return i
		}
	}
	return -1
}
