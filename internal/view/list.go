// Package view holds the client-facing presentation logic for Roster:
// the list view model (search filtering and pagination), the form
// validator, and the input debouncer. Everything here is pure state
// manipulation over data already fetched; nothing talks to the store.
package view

import (
	"strings"

	"github.com/prn-tf/roster/internal/domain"
)

// Defaults for the list view model.
const (
	DefaultPageSize = 5
	MinQueryLength  = 3
)

// ListState is the explicit, serializable view state of the user list:
// the committed search query, the current page, and the sizing policy.
// It is passed through update functions rather than kept as ambient
// mutable variables.
type ListState struct {
	Query    string
	Page     int
	PageSize int

	// MinQuery is the minimum trimmed query length before filtering
	// applies. Shorter queries show the unfiltered collection.
	MinQuery int
}

// NewListState returns a ListState with default sizing on page 1.
func NewListState() ListState {
	return ListState{
		Page:     1,
		PageSize: DefaultPageSize,
		MinQuery: MinQueryLength,
	}
}

// SetQuery commits a new search query and resets to the first page.
func (s *ListState) SetQuery(q string) {
	s.Query = q
	s.Page = 1
}

// query returns the normalized form used for matching.
func (s ListState) query() string {
	return strings.ToLower(strings.TrimSpace(s.Query))
}

// Active reports whether the committed query is long enough to filter.
func (s ListState) Active() bool {
	return len(s.query()) >= s.MinQuery
}

// Remaining returns how many more characters are needed before the
// filter applies, or 0 if it already does (or the query is empty).
func (s ListState) Remaining() int {
	q := s.query()
	if q == "" || len(q) >= s.MinQuery {
		return 0
	}
	return s.MinQuery - len(q)
}

// Filter returns the users matching the committed query: a user matches
// if the query is a case-insensitive substring of name, username, or
// email. An inactive query matches everything.
func (s ListState) Filter(users []domain.User) []domain.User {
	if !s.Active() {
		return users
	}
	q := s.query()

	matched := make([]domain.User, 0, len(users))
	for _, u := range users {
		if matches(u, q) {
			matched = append(matched, u)
		}
	}
	return matched
}

func matches(u domain.User, q string) bool {
	return strings.Contains(strings.ToLower(u.Name), q) ||
		strings.Contains(strings.ToLower(u.Username), q) ||
		strings.Contains(strings.ToLower(u.Email), q)
}

// TotalPages returns the page count for n items. An empty list still has
// one (empty) page so the current page is always valid.
func (s ListState) TotalPages(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + s.PageSize - 1) / s.PageSize
}

// Paginate slices the given (already filtered) users down to the current
// page. The page is clamped to [1, TotalPages] first.
func (s *ListState) Paginate(users []domain.User) []domain.User {
	total := s.TotalPages(len(users))
	if s.Page < 1 {
		s.Page = 1
	}
	if s.Page > total {
		s.Page = total
	}

	start := (s.Page - 1) * s.PageSize
	if start >= len(users) {
		return []domain.User{}
	}
	end := start + s.PageSize
	if end > len(users) {
		end = len(users)
	}
	return users[start:end]
}

// Next advances to the following page, clamped to the last page for a
// list of n items.
func (s *ListState) Next(n int) {
	if s.Page < s.TotalPages(n) {
		s.Page++
	}
}

// Prev moves to the preceding page, never below page 1.
func (s *ListState) Prev() {
	if s.Page > 1 {
		s.Page--
	}
}

// HasNext reports whether a following page exists for n items.
func (s ListState) HasNext(n int) bool {
	return s.Page < s.TotalPages(n)
}

// HasPrev reports whether a preceding page exists.
func (s ListState) HasPrev() bool {
	return s.Page > 1
}
