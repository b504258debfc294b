package pagination

import (
	"context"
	"fmt"
	"math"
)

// Paginate builds the page pageNumber of pageSize items from src.
//
// A non-positive pageSize fails with ErrInvalidArgument before src is touched.
// A non-positive pageNumber is treated as 1. Pages past the end are not an error:
// they come back empty with the true totals and the page number the caller asked for.
// Errors from src are returned as-is.
func Paginate[T any](ctx context.Context, src Source[T], pageNumber, pageSize int) (Page[T], error) {
	if pageSize <= 0 {
		return Page[T]{}, &ArgumentError{Field: "page_size", Value: pageSize}
	}

	total, err := src.Count(ctx)
	if err != nil {
		return Page[T]{}, err
	}
	if total < 0 {
		return Page[T]{}, fmt.Errorf("%w: negative count %d", ErrInvalidSource, total)
	}

	if pageNumber < 1 {
		pageNumber = 1
	}
	page := Page[T]{
		Items:      []T{},
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: totalPages(total, pageSize),
	}

	// (pageNumber-1)*pageSize may overflow for absurd page numbers; such pages are past the end anyway.
	if pageNumber-1 > (math.MaxInt-1)/pageSize {
		return page, nil
	}
	offset := (pageNumber - 1) * pageSize
	if offset >= total {
		return page, nil
	}

	limit := min(pageSize, total-offset)
	items, err := src.Slice(ctx, offset, limit)
	if err != nil {
		return Page[T]{}, err
	}
	if len(items) > limit {
		items = items[:limit]
	}
	page.Items = append(page.Items, items...)
	return page, nil
}

// PaginateSlice is Paginate over an in-memory slice.
func PaginateSlice[T any](items []T, pageNumber, pageSize int) (Page[T], error) {
	return Paginate(context.Background(), FromSlice(items), pageNumber, pageSize)
}
