package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		page      int
		size      int
		wantPage  int
		wantPages int
		wantLen   int
		wantFirst int
	}{
		{name: "first page", total: 23, page: 1, size: 10, wantPage: 1, wantPages: 3, wantLen: 10, wantFirst: 0},
		{name: "last partial page", total: 23, page: 3, size: 10, wantPage: 3, wantPages: 3, wantLen: 3, wantFirst: 20},
		{name: "out of range clamps to last", total: 23, page: 5, size: 10, wantPage: 3, wantPages: 3, wantLen: 3, wantFirst: 20},
		{name: "below range clamps to first", total: 23, page: -2, size: 10, wantPage: 1, wantPages: 3, wantLen: 10, wantFirst: 0},
		{name: "empty collection", total: 0, page: 1, size: 10, wantPage: 1, wantPages: 1, wantLen: 0},
		{name: "exact multiple", total: 20, page: 2, size: 10, wantPage: 2, wantPages: 2, wantLen: 10, wantFirst: 10},
		{name: "invalid size falls back to default", total: 25, page: 1, size: 0, wantPage: 1, wantPages: 2, wantLen: DefaultPageSize, wantFirst: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Paginate(seq(tc.total), tc.page, tc.size)
			assert.Equal(t, tc.wantPage, got.CurrentPage)
			assert.Equal(t, tc.wantPages, got.TotalPages)
			assert.Equal(t, tc.total, got.TotalItems)
			assert.Len(t, got.Items, tc.wantLen)
			if tc.wantLen > 0 {
				assert.Equal(t, tc.wantFirst, got.Items[0])
			}
		})
	}
}

// Concatenating every page in order must reproduce the collection exactly.
func TestPaginateRoundTrip(t *testing.T) {
	for _, total := range []int{0, 1, 9, 10, 11, 23, 100} {
		for _, size := range []int{1, 3, 10, 25} {
			items := seq(total)
			first := Paginate(items, 1, size)

			var joined []int
			for page := 1; page <= first.TotalPages; page++ {
				joined = append(joined, Paginate(items, page, size).Items...)
			}
			assert.Equal(t, items, seq(total), "source must not be mutated")
			assert.Equal(t, len(items), len(joined), "total=%d size=%d", total, size)
			for i := range joined {
				assert.Equal(t, items[i], joined[i])
			}
		}
	}
}

func FuzzPaginateInvariants(f *testing.F) {
	f.Add(0, 0, 0)
	f.Add(23, 5, 10)
	f.Add(1000, -3, 7)
	f.Add(5, 99, 1)

	f.Fuzz(func(t *testing.T, total, page, size int) {
		if total < 0 || total > 1<<14 {
			t.Skip()
		}
		got := Paginate(seq(total), page, size)
		if got.CurrentPage < 1 || got.CurrentPage > got.TotalPages {
			t.Fatalf("current page %d outside [1,%d]", got.CurrentPage, got.TotalPages)
		}
		if got.TotalPages < 1 {
			t.Fatalf("total pages must be >= 1, got %d", got.TotalPages)
		}
		if len(got.Items) > got.PageSize {
			t.Fatalf("window %d exceeds page size %d", len(got.Items), got.PageSize)
		}
	})
}

func TestPaginatorSetPageSizeResetsToFirstPage(t *testing.T) {
	p := New[int](10)
	p.SetItems(seq(50))
	p.SetPage(4)

	p.SetPageSize(25)
	got := p.Page()
	assert.Equal(t, 1, got.CurrentPage)
	assert.Equal(t, 2, got.TotalPages)
	assert.Len(t, got.Items, 25)

	// Idempotent: same size again yields the same derived state.
	p.SetPage(2)
	p.SetPageSize(25)
	again := p.Page()
	assert.Equal(t, got.CurrentPage, again.CurrentPage)
	assert.Equal(t, got.TotalPages, again.TotalPages)
	assert.Equal(t, got.Items, again.Items)
}

func TestPaginatorSetPageSizeInvalidFallsBack(t *testing.T) {
	p := New[int](15)
	p.SetItems(seq(30))
	p.SetPageSize(-1)
	got := p.Page()
	assert.Equal(t, 15, got.PageSize)
	assert.Equal(t, 1, got.CurrentPage)
}

func TestPaginatorSelfCorrectsWhenCollectionShrinks(t *testing.T) {
	p := New[int](10)
	p.SetItems(seq(45))
	p.SetPage(5)
	assert.Equal(t, 5, p.Page().CurrentPage)

	// Collection shrinks under the held page; the next evaluation lands on
	// the last valid page without any caller intervention.
	p.SetItems(seq(12))
	got := p.Page()
	assert.Equal(t, 2, got.CurrentPage)
	assert.Len(t, got.Items, 2)
}

func TestPaginatorReclamp(t *testing.T) {
	p := New[int](10)
	p.SetItems(seq(45))
	p.SetPage(5)
	p.SetItems(seq(12))
	p.Reclamp()
	assert.Equal(t, 2, p.Page().CurrentPage)
}
