// SPDX-License-Identifier: MIT
// Package ndarray - shape descriptor helpers.
//
// Purpose:
//   - Centralize extent validation, element counting and row-major stride math.
//   - Provide the odometer used by every region walk (walkRuns, nextIndex).
//
// Layout:
//   - Row-major: the last axis is contiguous, offset = Σ idx[d]*strides[d].
//   - Rank 0 has an empty shape and exactly one element.

package ndarray

import (
	"fmt"
	"math"
	"slices"

	"github.com/samber/lo"
)

// validateShape rejects negative extents.
// Complexity: O(R).
func validateShape(shape []int) error {
	for d, n := range shape {
		if n < 0 {
			return fmt.Errorf("axis %d extent %d: %w", d, n, ErrBadShape)
		}
	}

	return nil
}

// MaxDerivedLen bounds the element count of arrays whose extents are
// computed from floating-point parameters (kernel widths, regrid scales).
const MaxDerivedLen = 1 << 28

// derivedExtent converts a non-negative float extent to int, reporting false
// when it is NaN or exceeds limit.
func derivedExtent(x float64, limit int) (int, bool) {
	if math.IsNaN(x) || x < 0 || x > float64(limit) {
		return 0, false
	}

	return int(x), true
}

// shapeLen returns the element count of shape (1 for rank 0).
func shapeLen(shape []int) int {
	return lo.Reduce(shape, func(acc, n, _ int) int { return acc * n }, 1)
}

// rowMajorStrides computes the row-major strides of shape.
// Complexity: O(R).
func rowMajorStrides(shape []int) []int {
	strides := make([]int, len(shape))
	step := 1
	for d := len(shape) - 1; d >= 0; d-- {
		strides[d] = step
		step *= shape[d]
	}

	return strides
}

// offsetOf returns Σ (origin[d]+idx[d]) * strides[d]. origin may be nil.
func offsetOf(strides, origin, idx []int) int {
	off := 0
	for d := range idx {
		i := idx[d]
		if origin != nil {
			i += origin[d]
		}
		off += i * strides[d]
	}

	return off
}

// nextIndex advances idx through the box [0, shape) in row-major order and
// reports false once the walk wraps around.
func nextIndex(idx, shape []int) bool {
	for d := len(idx) - 1; d >= 0; d-- {
		idx[d]++
		if idx[d] < shape[d] {
			return true
		}
		idx[d] = 0
	}

	return false
}

// walkRuns visits the box [0, extent) one contiguous innermost run at a
// time: fn receives the index of the first element of each run (its last
// component is always 0) and the run length is extent[R-1].
// Rank 0 yields one call with an empty index. An empty box yields none.
// The index slice is reused between calls.
// Complexity: O(len(box)/run) calls.
func walkRuns(extent []int, fn func(idx []int)) {
	r := len(extent)
	if slices.Contains(extent, 0) {
		return
	}
	idx := make([]int, r)
	if r <= 1 {
		fn(idx)
		return
	}
	outer := extent[:r-1]
	for {
		fn(idx)
		if !nextIndex(idx[:r-1], outer) {
			return
		}
	}
}

// unravel writes the multi-index of flat offset off (row-major in shape) into idx.
func unravel(off int, shape, idx []int) {
	for d := len(shape) - 1; d >= 0; d-- {
		n := shape[d]
		if n == 0 {
			idx[d] = 0
			continue
		}
		idx[d] = off % n
		off /= n
	}
}
