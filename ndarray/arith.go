// SPDX-License-Identifier: MIT
// Package: ndarray
//
// Purpose:
//   - Element-wise arithmetic over rectangular regions: Clear, Fill, Add,
//     Scale, Multiply (all in place), plus NaN-skipping Sum and Dot.
//   - Untyped entry points (FillValue, AddValues) that report element-kind
//     disagreements as ErrTypeMismatch instead of converting silently.
//
// Determinism & Performance:
//   - Row-major traversal; contiguous runs on the innermost axis.
//   - float64 reductions free of NaN take the gonum floats fast path.

package ndarray

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	opClear     = "Clear"
	opFill      = "Fill"
	opFillValue = "FillValue"
	opAdd       = "Add"
	opAddValues = "AddValues"
	opScale     = "Scale"
	opMultiply  = "Multiply"
	opDot       = "Dot"
)

// Clear zeroes every element of a. A nil array is a no-op.
// Complexity: O(n).
func Clear[T Numeric](a *Array[T]) {
	if a == nil {
		return
	}
	clear(a.data)
}

// ClearRange zeroes the region [from, to).
//
// Errors:
//   - ErrNilArray, ErrRankMismatch, ErrOutOfRange.
func ClearRange[T Numeric](a *Array[T], from, to []int) error {
	var zero T

	return fillRange(opClear, a, from, to, zero)
}

// Fill sets every element of a to v. A nil array is a no-op.
// Complexity: O(n).
func Fill[T Numeric](a *Array[T], v T) {
	if a == nil {
		return
	}
	for i := range a.data {
		a.data[i] = v
	}
}

// FillRange sets every element of the region [from, to) to v.
//
// Errors:
//   - ErrNilArray, ErrRankMismatch, ErrOutOfRange.
func FillRange[T Numeric](a *Array[T], from, to []int, v T) error {
	return fillRange(opFill, a, from, to, v)
}

func fillRange[T Numeric](op string, a *Array[T], from, to []int, v T) error {
	if err := ValidateNotNil(a); err != nil {
		return ndErrorf(op, err)
	}
	if err := ValidateRange(a.shape, from, to); err != nil {
		return ndErrorf(op, err)
	}
	ext := make([]int, len(from))
	for d := range ext {
		ext[d] = to[d] - from[d]
	}
	run := 1
	if len(ext) > 0 {
		run = ext[len(ext)-1]
	}
	walkRuns(ext, func(idx []int) {
		base := offsetOf(a.strides, from, idx)
		seg := a.data[base : base+run]
		for i := range seg {
			seg[i] = v
		}
	})

	return nil
}

// FillValue sets every element to v, which must be exactly of type T.
// A value of any other type fails with ErrTypeMismatch naming it and leaves
// the array unmodified.
func (a *Array[T]) FillValue(v any) error {
	if a == nil {
		return ndErrorf(opFillValue, ErrNilArray)
	}
	tv, ok := v.(T)
	if !ok {
		return fmt.Errorf("%s: %T into %s array: %w", opFillValue, v, a.Kind(), ErrTypeMismatch)
	}
	Fill(a, tv)

	return nil
}

// Add accumulates patch into dst at offset, element by element, clipped to
// the overlap exactly as Paste.
//
// Errors:
//   - ErrNilArray; ErrRankMismatch; ErrOutOfRange for negative offsets.
//
// Complexity: O(len(overlap)).
func Add[T Numeric](dst *Array[T], offset []int, patch *Array[T]) error {
	ext, err := placement(opAdd, dst, patch, offset)
	if err != nil {
		return err
	}
	run := 1
	if len(ext) > 0 {
		run = ext[len(ext)-1]
	}
	walkRuns(ext, func(idx []int) {
		d := dst.data[offsetOf(dst.strides, offset, idx):]
		s := patch.data[offsetOf(patch.strides, nil, idx):]
		for i := 0; i < run; i++ {
			d[i] += s[i]
		}
	})

	return nil
}

// AddValues is the untyped form of Add. The patch must hold the same
// element kind as dst, else ErrTypeMismatch is returned naming both kinds.
func AddValues(dst AnyArray, offset []int, patch AnyArray) error {
	if dst == nil || patch == nil {
		return ndErrorf(opAddValues, ErrNilArray)
	}

	return dst.addValues(offset, patch)
}

func (a *Array[T]) addValues(offset []int, patch AnyArray) error {
	p, ok := patch.(*Array[T])
	if !ok {
		return fmt.Errorf("%s: %s patch into %s array: %w", opAddValues, patch.Kind(), a.Kind(), ErrTypeMismatch)
	}

	return Add(a, offset, p)
}

// Scale multiplies every element by factor in place. Integer kinds take the
// float64 product truncated toward zero and saturated to the kind's range
// (negative products give 0 on unsigned kinds, NaN gives 0). Integer values
// beyond 2^53 lose precision in the product.
// Complexity: O(n).
func Scale[T Numeric](a *Array[T], factor float64) {
	if a == nil {
		return
	}
	if d, ok := any(a.data).([]float64); ok {
		floats.Scale(factor, d)
		return
	}
	k := KindFor[T]()
	if k.IsFloat() {
		for i, v := range a.data {
			a.data[i] = T(float64(v) * factor)
		}
		return
	}
	for i, v := range a.data {
		a.data[i] = saturate[T](float64(v)*factor, k)
	}
}

// saturate converts p to the integer kind k, truncating toward zero and
// clamping to the kind's range; NaN maps to 0.
func saturate[T Numeric](p float64, k Kind) T {
	b := k.Bits()
	switch {
	case math.IsNaN(p):
		return 0
	case k.IsUnsigned():
		if p <= 0 {
			return 0
		}
		if p >= math.Ldexp(1, b) {
			return T(uint64(math.MaxUint64) >> (64 - b))
		}
	default:
		if p <= -math.Ldexp(1, b-1) {
			return T(int64(math.MinInt64) >> (64 - b))
		}
		if p >= math.Ldexp(1, b-1) {
			return T(int64(math.MaxInt64) >> (64 - b))
		}
	}

	return T(p)
}

// Multiply multiplies a element-wise by the same-shape multiplier m, in place.
//
// Errors:
//   - ErrNilArray; ErrRankMismatch / ErrDimensionMismatch for shape disagreement.
func Multiply[T Numeric](a, m *Array[T]) error {
	if err := ValidateNotNil(a); err != nil {
		return ndErrorf(opMultiply, err)
	}
	if err := ValidateNotNil(m); err != nil {
		return ndErrorf(opMultiply, err)
	}
	if err := ValidateSameShape(a, m); err != nil {
		return ndErrorf(opMultiply, err)
	}
	for i := range a.data {
		a.data[i] *= m.data[i]
	}

	return nil
}

// Sum returns the sum of all elements, skipping NaN. An empty or nil array
// sums to 0.
// Complexity: O(n).
func Sum[T Numeric](a *Array[T]) float64 {
	if a == nil {
		return 0
	}
	if d, ok := any(a.data).([]float64); ok && !floats.HasNaN(d) {
		return floats.Sum(d)
	}
	s := 0.0
	for _, v := range a.data {
		if isNaN(v) {
			continue
		}
		s += float64(v)
	}

	return s
}

// Dot returns Σ a[i]·b[i] over same-shape arrays, skipping every pair in
// which either operand is NaN.
//
// Errors:
//   - ErrNilArray; ErrRankMismatch / ErrDimensionMismatch.
//
// Complexity: O(n).
func Dot[T Numeric](a, b *Array[T]) (float64, error) {
	if err := ValidateNotNil(a); err != nil {
		return 0, ndErrorf(opDot, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return 0, ndErrorf(opDot, err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return 0, ndErrorf(opDot, err)
	}

	return dotNaN(a.data, b.data), nil
}

// dotNaN is the NaN-filtering dot product over equal-length slices.
func dotNaN[T Numeric](x, y []T) float64 {
	if xd, ok := any(x).([]float64); ok {
		yd := any(y).([]float64)
		if !floats.HasNaN(xd) && !floats.HasNaN(yd) {
			return floats.Dot(xd, yd)
		}
	}
	s := 0.0
	for i, v := range x {
		if isNaN(v) || isNaN(y[i]) {
			continue
		}
		s += float64(v) * float64(y[i])
	}

	return s
}
