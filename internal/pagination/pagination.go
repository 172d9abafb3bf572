// Package pagination windows an already-fetched collection into pages. The
// backend list endpoints return whole collections; slicing them for display
// happens entirely on the client.
package pagination

// DefaultPageSize is used whenever a caller supplies a non-positive size.
const DefaultPageSize = 20

// Page is one window over a collection.
type Page[T any] struct {
	Items       []T
	TotalItems  int
	TotalPages  int
	CurrentPage int
	PageSize    int
}

// Paginate derives a page window from the full collection. The requested
// page is clamped into [1, TotalPages]; a non-positive size falls back to
// DefaultPageSize. TotalPages is always at least 1 so an empty collection
// still has a well-defined current page.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}

	total := len(items)
	pages := totalPages(total, size)
	current := clamp(page, 1, pages)

	start := (current - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:       items[start:end],
		TotalItems:  total,
		TotalPages:  pages,
		CurrentPage: current,
		PageSize:    size,
	}
}

func totalPages(total, size int) int {
	pages := (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	return pages
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// Paginator holds pagination state for one list view.
type Paginator[T any] struct {
	items       []T
	page        int
	size        int
	initialSize int
}

// New creates a paginator on page 1. A non-positive size falls back to
// DefaultPageSize; that resolved value is also the fallback for later
// SetPageSize calls with invalid input.
func New[T any](size int) *Paginator[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Paginator[T]{page: 1, size: size, initialSize: size}
}

// SetItems replaces the underlying collection. The current page is left
// alone; Page self-corrects if the collection shrank below it.
func (p *Paginator[T]) SetItems(items []T) {
	p.items = items
}

// SetPage clamps n into the valid page range for the current collection.
func (p *Paginator[T]) SetPage(n int) {
	p.page = clamp(n, 1, totalPages(len(p.items), p.size))
}

// Reclamp re-applies the clamp to the page already held, for callers that
// know the collection changed but have no new page to request.
func (p *Paginator[T]) Reclamp() {
	p.SetPage(p.page)
}

// SetPageSize changes the window size and always resets to page 1. Invalid
// sizes fall back to the size the paginator was created with.
func (p *Paginator[T]) SetPageSize(n int) {
	if n <= 0 {
		n = p.initialSize
	}
	p.size = n
	p.page = 1
}

// Page computes the current window. When the held page number exceeds the
// total for the current collection the paginator self-corrects to the last
// valid page before slicing.
func (p *Paginator[T]) Page() Page[T] {
	p.page = clamp(p.page, 1, totalPages(len(p.items), p.size))
	return Paginate(p.items, p.page, p.size)
}
