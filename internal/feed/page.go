package feed

import "strconv"

// Page is an offset window over an ordered result. The zero Page means
// "everything".
type Page struct {
	Skip  int
	Limit int
	Valid bool
}

// ParsePage reads the skip and limit query values. Both must be present,
// base-10, skip >= 0 and limit > 0; anything else disables pagination rather
// than failing the request.
func ParsePage(skip, limit string) Page {
	s, err := strconv.Atoi(skip)
	if err != nil || s < 0 {
		return Page{}
	}
	l, err := strconv.Atoi(limit)
	if err != nil || l <= 0 {
		return Page{}
	}
	return Page{Skip: s, Limit: l, Valid: true}
}

// Bounds returns the half-open index range of the window over n items.
func (p Page) Bounds(n int) (start, end int) {
	if !p.Valid {
		return 0, n
	}
	start = min(p.Skip, n)
	end = start + min(p.Limit, n-start)
	return start, end
}

// Apply slices items to the window. The result may be empty but never nil.
func Apply[T any](p Page, items []T) []T {
	start, end := p.Bounds(len(items))
	if start == end {
		return []T{}
	}
	return items[start:end]
}
