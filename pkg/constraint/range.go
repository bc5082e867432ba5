package constraint

import "fmt"

// Range is a pair of bounds. Inclusive ranges accept both ends.
type Range[T any] struct {
	Min       T
	Max       T
	Inclusive bool
}

// NewRange returns a range, failing with ErrInvalidRange when min > max.
func NewRange[T any](min, max T, inclusive bool, cmp func(a, b T) int) (Range[T], error) {
	if cmp(min, max) > 0 {
		return Range[T]{}, fmt.Errorf("%w: %v > %v", ErrInvalidRange, min, max)
	}
	return Range[T]{Min: min, Max: max, Inclusive: inclusive}, nil
}

// Contains reports min <= v <= max for inclusive ranges and min < v < max otherwise.
func (r Range[T]) Contains(v T, cmp func(a, b T) int) bool {
	lo, hi := cmp(r.Min, v), cmp(v, r.Max)
	if r.Inclusive {
		return lo <= 0 && hi <= 0
	}
	return lo < 0 && hi < 0
}
