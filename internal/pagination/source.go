package pagination

import "context"

// Source is an ordered collection that can report its size and hand out a window of it.
// Count and Slice must describe the same logical dataset in the same order.
type Source[T any] interface {
	Count(ctx context.Context) (int, error)
	Slice(ctx context.Context, offset, limit int) ([]T, error)
}

// SourceFuncs adapts a pair of closures to Source.
type SourceFuncs[T any] struct {
	CountFn func(ctx context.Context) (int, error)
	SliceFn func(ctx context.Context, offset, limit int) ([]T, error)
}

func (s SourceFuncs[T]) Count(ctx context.Context) (int, error) { return s.CountFn(ctx) }

func (s SourceFuncs[T]) Slice(ctx context.Context, offset, limit int) ([]T, error) {
	return s.SliceFn(ctx, offset, limit)
}

type sliceSource[T any] struct{ items []T }

// FromSlice wraps an already materialized sequence.
func FromSlice[T any](items []T) Source[T] { return sliceSource[T]{items: items} }

func (s sliceSource[T]) Count(context.Context) (int, error) { return len(s.items), nil }

func (s sliceSource[T]) Slice(_ context.Context, offset, limit int) ([]T, error) {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(s.items) {
		return nil, nil
	}
	end := len(s.items)
	if limit >= 0 && limit < end-offset {
		end = offset + limit
	}
	return s.items[offset:end], nil
}

var (
	_ Source[int] = sliceSource[int]{}
	_ Source[int] = SourceFuncs[int]{}
)
