package main

import "strings"

type FilterType string

const (
	FilterAll     FilterType = "all"
	FilterUnread  FilterType = "unread"
	FilterRead    FilterType = "read"
	FilterStarred FilterType = "starred"
)

var filterOrder = []FilterType{FilterAll, FilterUnread, FilterRead, FilterStarred}

func (f FilterType) Label() string {
	s := string(f)
	if s == "" {
		return "All"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (f FilterType) Matches(e Email) bool {
	switch f {
	case FilterUnread:
		return !e.IsRead
	case FilterRead:
		return e.IsRead
	case FilterStarred:
		return e.IsStarred
	default:
		return true
	}
}

func (f FilterType) next() FilterType {
	for i, candidate := range filterOrder {
		if candidate == f {
			return filterOrder[(i+1)%len(filterOrder)]
		}
	}
	return FilterAll
}

// VisibleEmails returns the emails matching f without touching the input.
func VisibleEmails(emails []Email, f FilterType) []Email {
	visible := make([]Email, 0, len(emails))
	for _, e := range emails {
		if f.Matches(e) {
			visible = append(visible, e)
		}
	}
	return visible
}
