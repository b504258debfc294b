// Package pagination turns an ordered source into numbered pages.
// I keep it free of storage and transport concerns: callers hand in a Source,
// get back a Page value and decide themselves how to serialize it.
package pagination

import "math"

// Page is one numbered window over a larger ordered collection.
// It is a plain value: once built it owns its Items and never points back to the source.
type Page[T any] struct {
	Items      []T `json:"items"`
	PageNumber int `json:"page_number"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

// HasNext reports whether a page after this one holds items.
func (p Page[T]) HasNext() bool { return p.PageNumber < p.TotalPages }

// HasPrevious reports whether a non-empty page precedes this one.
func (p Page[T]) HasPrevious() bool { return p.PageNumber > 1 && p.TotalCount > 0 }

// Offset is the zero-based index of the first item of this page in the source.
// It saturates at math.MaxInt for page numbers too large to address.
func (p Page[T]) Offset() int {
	if p.PageNumber <= 1 || p.PageSize <= 0 {
		return 0
	}
	if p.PageNumber-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.PageNumber - 1) * p.PageSize
}

// totalPages is ceil(total/size) in integer arithmetic; size must be > 0.
func totalPages(total, size int) int {
	if total <= 0 {
		return 0
	}
	return (total-1)/size + 1
}

// Map converts the items of p with fn and keeps all page metadata.
// Only the sliced items are mapped, never the whole source.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := Page[U]{
		Items:      make([]U, 0, len(p.Items)),
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
		TotalCount: p.TotalCount,
		TotalPages: p.TotalPages,
	}
	for _, it := range p.Items {
		out.Items = append(out.Items, fn(it))
	}
	return out
}

// MapErr is Map for fallible conversions; it stops at the first error.
func MapErr[T, U any](p Page[T], fn func(T) (U, error)) (Page[U], error) {
	out := Page[U]{
		Items:      make([]U, 0, len(p.Items)),
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
		TotalCount: p.TotalCount,
		TotalPages: p.TotalPages,
	}
	for _, it := range p.Items {
		u, err := fn(it)
		if err != nil {
			return Page[U]{}, err
		}
		out.Items = append(out.Items, u)
	}
	return out, nil
}
