// SPDX-License-Identifier: MIT
// Package: ndarray
//
// Purpose:
//   - Sub-array extraction and composition over explicit index ranges:
//     SubArray, Paste, Resize, Pad, SubSpace, Collapse, Expand, Transpose.
//
// Policy:
//   - Paste clips silently to the overlap of patch and destination; overflow
//     is truncated, never reported.
//   - Only the operations documented as allocating return new arrays;
//     Paste and Pad mutate their destination.
//
// Determinism & Performance:
//   - Contiguous innermost runs are moved with copy(); outer axes are walked
//     in row-major order.

package ndarray

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

const (
	opSubArray  = "SubArray"
	opPaste     = "Paste"
	opResize    = "Resize"
	opPad       = "Pad"
	opSubSpace  = "SubSpace"
	opCollapse  = "Collapse"
	opExpand    = "Expand"
	opTranspose = "Transpose"
)

// SubArray returns a newly allocated array holding the region [from, to)
// of a. The rank is preserved and shape(result)[d] == to[d]-from[d].
//
// Errors:
//   - ErrNilArray, ErrRankMismatch (vector lengths), ErrOutOfRange (bounds).
//
// Complexity: O(len(region)).
func SubArray[T Numeric](a *Array[T], from, to []int) (*Array[T], error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, ndErrorf(opSubArray, err)
	}
	if err := ValidateRange(a.shape, from, to); err != nil {
		return nil, ndErrorf(opSubArray, err)
	}
	ext := make([]int, len(from))
	for d := range ext {
		ext[d] = to[d] - from[d]
	}
	out := newUnchecked[T](ext)
	copyBox(out, nil, a, from, ext)

	return out, nil
}

// copyBox copies the box of size ext from src at srcOrigin into dst at
// dstOrigin. nil origins mean the zero vector. Bounds are the caller's duty.
func copyBox[T Numeric](dst *Array[T], dstOrigin []int, src *Array[T], srcOrigin []int, ext []int) {
	run := 1
	if len(ext) > 0 {
		run = ext[len(ext)-1]
	}
	walkRuns(ext, func(idx []int) {
		d := offsetOf(dst.strides, dstOrigin, idx)
		s := offsetOf(src.strides, srcOrigin, idx)
		copy(dst.data[d:d+run], src.data[s:s+run])
	})
}

// Paste copies patch into dst starting at offset. The copied extent per axis
// is min(shape(dst)[d]-offset[d], shape(patch)[d]); whatever would overflow
// is silently dropped.
//
// Errors:
//   - ErrNilArray; ErrRankMismatch when ranks or len(offset) differ;
//     ErrOutOfRange for negative offsets.
//
// Complexity: O(len(overlap)).
func Paste[T Numeric](dst, patch *Array[T], offset []int) error {
	ext, err := placement(opPaste, dst, patch, offset)
	if err != nil {
		return err
	}
	copyBox(dst, offset, patch, nil, ext)

	return nil
}

// placement validates a patch placement and returns the clipped extent.
func placement[T Numeric](op string, dst, patch *Array[T], offset []int) ([]int, error) {
	if err := ValidateNotNil(dst); err != nil {
		return nil, ndErrorf(op, err)
	}
	if err := ValidateNotNil(patch); err != nil {
		return nil, ndErrorf(op, err)
	}
	if len(patch.shape) != len(dst.shape) {
		return nil, fmt.Errorf("%s: patch rank %d into rank %d: %w", op, len(patch.shape), len(dst.shape), ErrRankMismatch)
	}
	if err := ValidateOffset(dst.shape, offset); err != nil {
		return nil, ndErrorf(op, err)
	}

	return overlap(dst.shape, patch.shape, offset), nil
}

// Resize allocates an array of newShape, pastes a at the origin and zero
// pads the remainder: shrinking truncates, growing zero-fills.
//
// Errors:
//   - ErrNilArray; ErrRankMismatch when len(newShape) != Rank(); ErrBadShape.
func Resize[T Numeric](a *Array[T], newShape []int) (*Array[T], error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, ndErrorf(opResize, err)
	}
	if err := ValidateVecLen(newShape, len(a.shape)); err != nil {
		return nil, ndErrorf(opResize, err)
	}
	out, err := New[T](newShape...)
	if err != nil {
		return nil, ndErrorf(opResize, err)
	}
	ext := overlap(out.shape, a.shape, make([]int, len(newShape)))
	copyBox(out, nil, a, nil, ext)
	if err = Pad(out, ext); err != nil {
		return nil, ndErrorf(opResize, err)
	}

	return out, nil
}

// Pad zeroes every element whose index reaches extent[d] on any axis d,
// keeping the leading box [0, extent) intact. Extents beyond the array are
// clamped.
//
// Errors:
//   - ErrNilArray; ErrRankMismatch; ErrBadShape for negative extents.
func Pad[T Numeric](a *Array[T], extent []int) error {
	if err := ValidateNotNil(a); err != nil {
		return ndErrorf(opPad, err)
	}
	if err := ValidateVecLen(extent, len(a.shape)); err != nil {
		return ndErrorf(opPad, err)
	}
	if err := validateShape(extent); err != nil {
		return ndErrorf(opPad, err)
	}
	r := len(a.shape)
	if r == 0 {
		return nil
	}
	keep := make([]int, r)
	for d := range keep {
		keep[d] = min(extent[d], a.shape[d])
	}
	// Each innermost run is zeroed from keep[r-1] when its outer index lies
	// inside the kept box, else entirely.
	last := a.shape[r-1]
	walkRuns(a.shape, func(idx []int) {
		start := keep[r-1]
		for d := 0; d < r-1; d++ {
			if idx[d] >= keep[d] {
				start = 0
				break
			}
		}
		base := offsetOf(a.strides, nil, idx)
		clear(a.data[base+start : base+last])
	})

	return nil
}

// SubSpace projects a onto the axes marked in keep. Dropped axes are fixed
// at at[d] (index 0 when at is nil); the result has one axis per true entry.
//
// Errors:
//   - ErrNilArray; ErrRankMismatch for keep/at lengths; ErrOutOfRange when a
//     fixed index lies outside its axis.
//
// Complexity: O(len(result)·R).
func SubSpace[T Numeric](a *Array[T], keep []bool, at []int) (*Array[T], error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, ndErrorf(opSubSpace, err)
	}
	if err := ValidateVecLen(keep, len(a.shape)); err != nil {
		return nil, ndErrorf(opSubSpace, err)
	}
	if at == nil {
		at = make([]int, len(a.shape))
	}
	if err := ValidateVecLen(at, len(a.shape)); err != nil {
		return nil, ndErrorf(opSubSpace, err)
	}
	from := make([]int, len(a.shape))
	to := make([]int, len(a.shape))
	var shape []int
	for d, k := range keep {
		if k {
			to[d] = a.shape[d]
			shape = append(shape, a.shape[d])
			continue
		}
		from[d], to[d] = at[d], at[d]+1
	}
	if err := ValidateRange(a.shape, from, to); err != nil {
		return nil, ndErrorf(opSubSpace, err)
	}
	box, err := SubArray(a, from, to)
	if err != nil {
		return nil, ndErrorf(opSubSpace, err)
	}
	// A box with singleton dropped axes has the same row-major order as the
	// projected result, so only the descriptor changes.
	if shape == nil {
		shape = []int{}
	}

	return &Array[T]{shape: shape, strides: rowMajorStrides(shape), data: box.data}, nil
}

// Collapse drops every singleton axis (extent 1).
func Collapse[T Numeric](a *Array[T]) (*Array[T], error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, ndErrorf(opCollapse, err)
	}
	keep := lo.Map(a.shape, func(n, _ int) bool { return n != 1 })

	return SubSpace(a, keep, nil)
}

// Expand inserts singleton axes: the result has len(mask) axes, taking the
// current axes in order at positions marked true and extent 1 elsewhere.
//
// Errors:
//   - ErrNilArray; ErrRankMismatch when the number of true entries differs
//     from Rank().
func Expand[T Numeric](a *Array[T], mask []bool) (*Array[T], error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, ndErrorf(opExpand, err)
	}
	if n := lo.Count(mask, true); n != len(a.shape) {
		return nil, fmt.Errorf("%s: %d kept axes for rank %d: %w", opExpand, n, len(a.shape), ErrRankMismatch)
	}
	shape := make([]int, len(mask))
	next := 0
	for d, m := range mask {
		shape[d] = 1
		if m {
			shape[d] = a.shape[next]
			next++
		}
	}

	return &Array[T]{shape: shape, strides: rowMajorStrides(shape), data: slices.Clone(a.data)}, nil
}

// Transpose returns a new array with the axis order reversed, so element
// [i0,...,iR-1] moves to [iR-1,...,i0]. For rank 2 this is the matrix
// transpose; it also converts between row-major and column-major (FITS)
// axis conventions.
// Complexity: O(n·R).
func Transpose[T Numeric](a *Array[T]) (*Array[T], error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, ndErrorf(opTranspose, err)
	}
	r := len(a.shape)
	shape := make([]int, r)
	for d := range shape {
		shape[d] = a.shape[r-1-d]
	}
	out := newUnchecked[T](shape)
	// Destination stride for source axis d is the result stride of axis r-1-d.
	rev := make([]int, r)
	for d := range rev {
		rev[d] = out.strides[r-1-d]
	}
	if len(a.data) == 0 {
		return out, nil
	}
	idx := make([]int, r)
	for off := 0; ; off++ {
		out.data[offsetOf(rev, nil, idx)] = a.data[off]
		if !nextIndex(idx, a.shape) {
			break
		}
	}

	return out, nil
}
