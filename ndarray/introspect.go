// SPDX-License-Identifier: MIT
// Package ndarray - untyped introspection of nested Go slices.
//
// Purpose:
//   - Answer rank/shape/kind/count questions about arbitrarily nested slices
//     or arrays of numeric leaves ([][]float64, [3][4]int16, []any ...).
//   - Import such structures into an Array with rectangularity enforced.
//
// Conventions:
//   - Shape is read along the first-element path; FromNested is the only
//     entry point that verifies every sibling.
//   - nil has rank 0, an empty shape, kind Invalid and count 0.

package ndarray

import (
	"fmt"
	"reflect"
)

const ctxFromNested = "FromNested"

// deref unwraps interface values until a concrete value (or invalid) remains.
func deref(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}

	return v
}

// isSeq reports whether v is a slice or fixed-size array.
func isSeq(k reflect.Kind) bool { return k == reflect.Slice || k == reflect.Array }

// RankOf returns the nesting depth of v: 0 for a scalar leaf or nil, and one
// more per level of slice or array.
// Complexity: O(R).
func RankOf(v any) int {
	return rankOf(deref(reflect.ValueOf(v)))
}

func rankOf(v reflect.Value) int {
	if !v.IsValid() || !isSeq(v.Kind()) {
		return 0
	}
	if et := v.Type().Elem(); et.Kind() != reflect.Interface {
		return 1 + typeRank(et)
	}
	if v.Len() == 0 {
		return 1
	}

	return 1 + rankOf(deref(v.Index(0)))
}

// typeRank counts slice/array levels of a static type.
func typeRank(t reflect.Type) int {
	r := 0
	for isSeq(t.Kind()) {
		r++
		t = t.Elem()
	}

	return r
}

// ShapeOf returns the per-axis extents of v taken along the first element at
// each depth. Axes below an empty level report 0. nil yields an empty shape.
// Complexity: O(R).
func ShapeOf(v any) []int {
	rv := deref(reflect.ValueOf(v))
	rank := rankOf(rv)
	shape := make([]int, 0, rank)
	for d := 0; d < rank; d++ {
		if !rv.IsValid() || !isSeq(rv.Kind()) {
			shape = append(shape, 0)
			continue
		}
		n := rv.Len()
		shape = append(shape, n)
		if n == 0 {
			rv = reflect.Value{}
			continue
		}
		rv = deref(rv.Index(0))
	}

	return shape
}

// KindOf returns the element kind found by descending into the first element
// at each level; for empty levels the static element type decides.
// Non-numeric leaves and nil report Invalid.
func KindOf(v any) Kind {
	rv := deref(reflect.ValueOf(v))
	if !rv.IsValid() {
		return Invalid
	}
	for isSeq(rv.Kind()) {
		if rv.Len() == 0 {
			t := rv.Type().Elem()
			for isSeq(t.Kind()) {
				t = t.Elem()
			}
			return kindFromReflect(t.Kind())
		}
		rv = deref(rv.Index(0))
		if !rv.IsValid() {
			return Invalid
		}
	}

	return kindFromReflect(rv.Kind())
}

// FirstOf returns the leaf reached by following the first element at each
// level, or nil when v is nil or an empty level is met.
func FirstOf(v any) any {
	rv := deref(reflect.ValueOf(v))
	for rv.IsValid() && isSeq(rv.Kind()) {
		if rv.Len() == 0 {
			return nil
		}
		rv = deref(rv.Index(0))
	}
	if !rv.IsValid() {
		return nil
	}

	return rv.Interface()
}

// CountOf returns the product of ShapeOf(v): 1 for a scalar leaf, 0 for nil.
func CountOf(v any) int {
	if v == nil {
		return 0
	}

	return shapeLen(ShapeOf(v))
}

// FromNested imports a nested slice/array structure of numeric leaves.
// MAIN DESCRIPTION:
//   - Rectangularity is verified for every sibling, not only the first path.
//
// Implementation:
//   - Stage 1: derive rank and shape along the first-element path.
//   - Stage 2: walk every level; each sequence must match the shape extent.
//   - Stage 3: convert each leaf into T (leaf kind must equal T's kind).
//
// Errors:
//   - ErrNilArray for nil input.
//   - ErrRagged when a sibling's length differs from the first path's.
//   - ErrTypeMismatch when a leaf's kind differs from T's kind.
//
// Complexity:
//   - Time O(n), Space O(n).
func FromNested[T Numeric](v any) (*Array[T], error) {
	rv := deref(reflect.ValueOf(v))
	if !rv.IsValid() {
		return nil, ndErrorf(ctxFromNested, ErrNilArray)
	}
	shape := ShapeOf(v)
	out := newUnchecked[T](shape)
	target := reflect.TypeOf(out.data).Elem()
	want := KindFor[T]()

	pos := 0
	var walk func(rv reflect.Value, d int) error
	walk = func(rv reflect.Value, d int) error {
		if d == len(shape) {
			if !rv.IsValid() || kindFromReflect(rv.Kind()) != want {
				return fmt.Errorf("%s: leaf %s into %s array: %w", ctxFromNested, describe(rv), want, ErrTypeMismatch)
			}
			out.data[pos] = rv.Convert(target).Interface().(T)
			pos++
			return nil
		}
		if !rv.IsValid() || !isSeq(rv.Kind()) || rv.Len() != shape[d] {
			return fmt.Errorf("%s: axis %d: %w", ctxFromNested, d, ErrRagged)
		}
		for i := 0; i < rv.Len(); i++ {
			if err := walk(deref(rv.Index(i)), d+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(rv, 0); err != nil {
		return nil, err
	}

	return out, nil
}

// describe names the Go type of a reflected value for error messages.
func describe(rv reflect.Value) string {
	if !rv.IsValid() {
		return "<nil>"
	}

	return rv.Type().String()
}
