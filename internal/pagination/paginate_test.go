package pagination_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/exchange-settings-service/internal/pagination"
)

var letters = []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}

// countingSource records how the paginator talks to it.
type countingSource struct {
	items      []int
	countErr   error
	sliceErr   error
	countCalls int
	sliceCalls int
	lastOffset int
	lastLimit  int
	overshoot  int // extra items returned past limit
}

func (s *countingSource) Count(context.Context) (int, error) {
	s.countCalls++
	if s.countErr != nil {
		return 0, s.countErr
	}
	return len(s.items), nil
}

func (s *countingSource) Slice(_ context.Context, offset, limit int) ([]int, error) {
	s.sliceCalls++
	s.lastOffset, s.lastLimit = offset, limit
	if s.sliceErr != nil {
		return nil, s.sliceErr
	}
	end := min(offset+limit+s.overshoot, len(s.items))
	return s.items[offset:end], nil
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPaginate_TenItemsPageSizeThree(t *testing.T) {
	cases := []struct {
		name  string
		page  int
		items []string
	}{
		{"first", 1, []string{"A", "B", "C"}},
		{"second", 2, []string{"D", "E", "F"}},
		{"last_partial", 4, []string{"J"}},
		{"past_end", 5, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := pagination.PaginateSlice(letters, tc.page, 3)
			require.NoError(t, err)
			assert.Equal(t, tc.items, p.Items)
			assert.Equal(t, 10, p.TotalCount)
			assert.Equal(t, 4, p.TotalPages)
			assert.Equal(t, tc.page, p.PageNumber)
			assert.Equal(t, 3, p.PageSize)
		})
	}
}

func TestPaginate_EmptySource(t *testing.T) {
	p, err := pagination.PaginateSlice([]string{}, 1, 5)
	require.NoError(t, err)
	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
	assert.Equal(t, 0, p.TotalCount)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNext())
	assert.False(t, p.HasPrevious())
}

func TestPaginate_TotalPagesIsCeil(t *testing.T) {
	for total := 0; total <= 40; total++ {
		for size := 1; size <= 12; size++ {
			p, err := pagination.PaginateSlice(seq(total), 1, size)
			require.NoError(t, err)
			want := int(math.Ceil(float64(total) / float64(size)))
			assert.Equalf(t, want, p.TotalPages, "total=%d size=%d", total, size)
			assert.Equalf(t, total == 0, p.TotalPages == 0, "total=%d size=%d", total, size)
		}
	}
}

func TestPaginate_PagesReassembleSource(t *testing.T) {
	for _, total := range []int{1, 2, 7, 9, 10, 31} {
		for _, size := range []int{1, 3, 5, 10, 50} {
			src := seq(total)
			first, err := pagination.PaginateSlice(src, 1, size)
			require.NoError(t, err)

			var got []int
			for n := 1; n <= first.TotalPages; n++ {
				p, err := pagination.PaginateSlice(src, n, size)
				require.NoError(t, err)
				require.LessOrEqual(t, len(p.Items), size)
				if n < p.TotalPages {
					require.Lenf(t, p.Items, size, "page %d of %d", n, p.TotalPages)
				} else {
					require.Len(t, p.Items, total-(p.TotalPages-1)*size)
				}
				got = append(got, p.Items...)
			}
			assert.Equalf(t, src, got, "total=%d size=%d", total, size)
		}
	}
}

func TestPaginate_NonPositivePageNumberBecomesFirst(t *testing.T) {
	for _, n := range []int{0, -1, math.MinInt} {
		p, err := pagination.PaginateSlice(letters, n, 3)
		require.NoError(t, err)
		assert.Equal(t, 1, p.PageNumber)
		assert.Equal(t, []string{"A", "B", "C"}, p.Items)
	}
}

func TestPaginate_InvalidPageSize(t *testing.T) {
	for _, size := range []int{0, -1, -100} {
		src := &countingSource{items: seq(5)}
		p, err := pagination.Paginate[int](context.Background(), src, 1, size)
		require.Error(t, err)
		assert.True(t, errors.Is(err, pagination.ErrInvalidArgument))

		var argErr *pagination.ArgumentError
		require.ErrorAs(t, err, &argErr)
		assert.Equal(t, "page_size", argErr.Field)
		assert.Equal(t, size, argErr.Value)

		assert.Equal(t, pagination.Page[int]{}, p)
		assert.Zero(t, src.countCalls, "source must not be read")
	}
}

func TestPaginate_SourceErrorsPropagateUnchanged(t *testing.T) {
	boom := errors.New("boom")

	t.Run("count", func(t *testing.T) {
		src := &countingSource{items: seq(5), countErr: boom}
		p, err := pagination.Paginate[int](context.Background(), src, 1, 2)
		assert.Same(t, boom, err)
		assert.Nil(t, p.Items)
		assert.Zero(t, src.sliceCalls)
	})

	t.Run("slice", func(t *testing.T) {
		src := &countingSource{items: seq(5), sliceErr: boom}
		p, err := pagination.Paginate[int](context.Background(), src, 1, 2)
		assert.Same(t, boom, err)
		assert.Equal(t, pagination.Page[int]{}, p)
	})
}

func TestPaginate_SliceBounds(t *testing.T) {
	src := &countingSource{items: seq(10)}
	p, err := pagination.Paginate[int](context.Background(), src, 4, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{9}, p.Items)
	assert.Equal(t, 9, src.lastOffset)
	assert.Equal(t, 1, src.lastLimit)
	assert.Equal(t, 1, src.countCalls)
	assert.Equal(t, 1, src.sliceCalls)
}

func TestPaginate_PastEndSkipsSlice(t *testing.T) {
	src := &countingSource{items: seq(10)}
	for _, n := range []int{5, 1000, math.MaxInt} {
		p, err := pagination.Paginate[int](context.Background(), src, n, 3)
		require.NoError(t, err)
		assert.Empty(t, p.Items)
		assert.Equal(t, n, p.PageNumber)
		assert.Equal(t, 10, p.TotalCount)
		assert.Equal(t, 4, p.TotalPages)
	}
	assert.Zero(t, src.sliceCalls)
}

func TestPaginate_TruncatesOversizedSlice(t *testing.T) {
	src := &countingSource{items: seq(10), overshoot: 4}
	p, err := pagination.Paginate[int](context.Background(), src, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, p.Items)
}

func TestPaginate_NegativeCountIsInvalidSource(t *testing.T) {
	src := pagination.SourceFuncs[int]{
		CountFn: func(context.Context) (int, error) { return -1, nil },
		SliceFn: func(context.Context, int, int) ([]int, error) { return nil, nil },
	}
	_, err := pagination.Paginate[int](context.Background(), src, 1, 3)
	assert.ErrorIs(t, err, pagination.ErrInvalidSource)
}

func TestPaginate_Idempotent(t *testing.T) {
	a, err := pagination.PaginateSlice(letters, 2, 4)
	require.NoError(t, err)
	b, err := pagination.PaginateSlice(letters, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPaginate_PageDoesNotAliasSource(t *testing.T) {
	src := []string{"A", "B", "C"}
	p, err := pagination.PaginateSlice(src, 1, 2)
	require.NoError(t, err)
	src[0] = "Z"
	assert.Equal(t, []string{"A", "B"}, p.Items)
}

func TestPage_Navigation(t *testing.T) {
	p, err := pagination.PaginateSlice(letters, 2, 3)
	require.NoError(t, err)
	assert.True(t, p.HasNext())
	assert.True(t, p.HasPrevious())
	assert.Equal(t, 3, p.Offset())

	last, err := pagination.PaginateSlice(letters, 4, 3)
	require.NoError(t, err)
	assert.False(t, last.HasNext())
}

func TestPage_OffsetSaturates(t *testing.T) {
	p, err := pagination.Paginate[int](context.Background(), &countingSource{items: seq(10)}, math.MaxInt, 3)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, p.Offset())

	near := pagination.Page[int]{PageNumber: math.MaxInt/3 + 1, PageSize: 3}
	assert.Equal(t, math.MaxInt/3*3, near.Offset())

	assert.Zero(t, pagination.Page[int]{PageNumber: 1, PageSize: 3}.Offset())
	assert.Zero(t, pagination.Page[int]{}.Offset())
}
