// SPDX-License-Identifier: MIT

// Package ndarray - Array storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a rectangular N-dimensional container over one flat buffer, so
//     a ragged structure cannot be represented at all.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep loop orders fixed (row-major) so every operation is deterministic.
//
// Complexity quicksheet:
//   - New: O(n) zero-init; At/Set: O(R); Clone: O(n); ToNested: O(n).

package ndarray

import (
	"fmt"
	"reflect"
	"slices"
)

// ---------- error context tags ----------

const (
	ctxNew       = "New"
	ctxFromSlice = "FromSlice"
	ctxAt        = "At"
	ctxSet       = "Set"
)

// AnyArray is the type-erased view of an *Array[T]. Untyped entry points
// (FillValue, AddValues) accept it and report ErrTypeMismatch when element
// kinds disagree.
type AnyArray interface {
	Rank() int
	Shape() []int
	Kind() Kind
	Len() int
	String() string
	FillValue(v any) error

	addValues(offset []int, patch AnyArray) error
}

// Array is a dense N-dimensional array of T in row-major order.
//   - shape holds per-axis extents (len == rank).
//   - strides holds row-major element strides (len == rank).
//   - data holds shapeLen(shape) elements.
type Array[T Numeric] struct {
	shape   []int
	strides []int
	data    []T
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ AnyArray     = (*Array[float64])(nil)
	_ fmt.Stringer = (*Array[int32])(nil)
)

// New allocates a zero-filled array of the given shape.
// An empty shape gives a rank-0 scalar holding one element.
// Zero extents are legal and give an empty array.
//
// Errors:
//   - ErrBadShape for negative extents.
//
// Complexity: O(n) time and memory.
func New[T Numeric](shape ...int) (*Array[T], error) {
	if err := validateShape(shape); err != nil {
		return nil, ndErrorf(ctxNew, err)
	}
	sh := slices.Clone(shape)

	return &Array[T]{
		shape:   sh,
		strides: rowMajorStrides(sh),
		data:    make([]T, shapeLen(sh)),
	}, nil
}

// newUnchecked allocates an array for a shape already known to be valid.
func newUnchecked[T Numeric](shape []int) *Array[T] {
	sh := slices.Clone(shape)

	return &Array[T]{shape: sh, strides: rowMajorStrides(sh), data: make([]T, shapeLen(sh))}
}

// FromSlice builds an array of the given shape from a copy of data, which
// must hold exactly the row-major element sequence.
//
// Errors:
//   - ErrBadShape for negative extents.
//   - ErrDimensionMismatch when len(data) != product(shape).
func FromSlice[T Numeric](data []T, shape ...int) (*Array[T], error) {
	a, err := New[T](shape...)
	if err != nil {
		return nil, ndErrorf(ctxFromSlice, err)
	}
	if len(data) != len(a.data) {
		return nil, fmt.Errorf("%s: %d values for shape %v: %w", ctxFromSlice, len(data), shape, ErrDimensionMismatch)
	}
	copy(a.data, data)

	return a, nil
}

// Scalar returns a rank-0 array holding v.
func Scalar[T Numeric](v T) *Array[T] {
	return &Array[T]{shape: []int{}, strides: []int{}, data: []T{v}}
}

// Rank returns the number of axes; 0 for a scalar or a nil array.
func (a *Array[T]) Rank() int {
	if a == nil {
		return 0
	}

	return len(a.shape)
}

// Shape returns a copy of the per-axis extents; empty for a scalar or nil.
func (a *Array[T]) Shape() []int {
	if a == nil {
		return []int{}
	}

	return slices.Clone(a.shape)
}

// Dim returns the extent of axis d, or 0 when d is not an axis.
func (a *Array[T]) Dim(d int) int {
	if a == nil || d < 0 || d >= len(a.shape) {
		return 0
	}

	return a.shape[d]
}

// Len returns the element count: 1 for a scalar, 0 for a nil array.
func (a *Array[T]) Len() int {
	if a == nil {
		return 0
	}

	return len(a.data)
}

// Kind returns the element kind of T.
func (a *Array[T]) Kind() Kind { return KindFor[T]() }

// Data exposes the row-major backing buffer. Writes through it are visible
// in the array. A nil array has no buffer.
func (a *Array[T]) Data() []T {
	if a == nil {
		return nil
	}

	return a.data
}

// indexOf bounds-checks idx and returns its flat offset.
func (a *Array[T]) indexOf(idx []int) (int, error) {
	if len(idx) != len(a.shape) {
		return 0, ErrRankMismatch
	}
	off := 0
	for d, i := range idx {
		if i < 0 || i >= a.shape[d] {
			return 0, ErrOutOfRange
		}
		off += i * a.strides[d]
	}

	return off, nil
}

// At returns the element at idx.
//
// Errors:
//   - ErrRankMismatch when len(idx) != Rank().
//   - ErrOutOfRange when any component is outside its axis.
func (a *Array[T]) At(idx ...int) (T, error) {
	off, err := a.indexOf(idx)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%s%v: %w", ctxAt, idx, err)
	}

	return a.data[off], nil
}

// Set stores v at idx. Errors as for At.
func (a *Array[T]) Set(v T, idx ...int) error {
	off, err := a.indexOf(idx)
	if err != nil {
		return fmt.Errorf("%s%v: %w", ctxSet, idx, err)
	}
	a.data[off] = v

	return nil
}

// Clone returns a deep copy; nil for a nil array.
// Complexity: O(n).
func (a *Array[T]) Clone() *Array[T] {
	if a == nil {
		return nil
	}

	return &Array[T]{
		shape:   slices.Clone(a.shape),
		strides: slices.Clone(a.strides),
		data:    slices.Clone(a.data),
	}
}

// Equal reports whether b has the same shape and elements. NaN never
// equals NaN, following IEEE semantics.
func (a *Array[T]) Equal(b *Array[T]) bool {
	if a == nil || b == nil {
		return a == b
	}

	return slices.Equal(a.shape, b.shape) && slices.Equal(a.data, b.data)
}

// ToNested materializes the array as nested Go slices: T for rank 0,
// []T for rank 1, [][]T for rank 2 and so on. A nil array gives nil.
// Complexity: O(n).
func (a *Array[T]) ToNested() any {
	if a == nil {
		return nil
	}
	var zero T
	t := reflect.TypeOf(zero)
	for range a.shape {
		t = reflect.SliceOf(t)
	}
	if len(a.shape) == 0 {
		return a.data[0]
	}

	return a.nested(t, 0, 0).Interface()
}

// nested builds the slice value of type t for axis d starting at flat offset off.
func (a *Array[T]) nested(t reflect.Type, d, off int) reflect.Value {
	n := a.shape[d]
	v := reflect.MakeSlice(t, n, n)
	if d == len(a.shape)-1 {
		reflect.Copy(v, reflect.ValueOf(a.data[off:off+n]))
		return v
	}
	for i := 0; i < n; i++ {
		v.Index(i).Set(a.nested(t.Elem(), d+1, off+i*a.strides[d]))
	}

	return v
}

// String renders the array in the bracketed literal format with shortest
// float formatting.
func (a *Array[T]) String() string { return Format(a) }
