package query

// DefaultLimit is the page size used when the caller supplies none, or
// supplies a non-positive limit. Clamping (rather than erroring or returning
// an unbounded result) keeps pagination total-safe for sloppy callers.
const DefaultLimit = 10

// Page is an offset/limit window applied strictly after scoping and
// filtering, so the pre-window total stays meaningful for the filtered set.
type Page struct {
	Limit  int
	Offset int
}

// NewPage builds a window, clamping limit <= 0 to DefaultLimit and a
// negative offset to 0.
func NewPage(limit, offset int) Page {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}
}

// PageNumber translates whole-page numbering (used by the record listing
// view) into the same windowing: offset = (page-1) * size.
func PageNumber(page, size int) Page {
	if size <= 0 {
		size = DefaultLimit
	}
	if page < 1 {
		page = 1
	}
	return Page{Limit: size, Offset: (page - 1) * size}
}

// Window applies the page to an in-memory sequence.
func Window[T any](items []T, p Page) []T {
	p = NewPage(p.Limit, p.Offset)
	if p.Offset >= len(items) {
		return []T{}
	}
	end := p.Offset + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[p.Offset:end]
}
