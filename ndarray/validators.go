// SPDX-License-Identifier: MIT
// Package: ndarray
//
// Purpose:
//  - Provide a single, canonical source of truth for argument checks.
//  - Return plain sentinel errors (tagged with the validator name) so call
//    sites can wrap uniformly with their operation tag.
//
// Note:
//  - Composite validators follow a fixed sequence: NotNil -> Rank -> Bounds.

package ndarray

import (
	"fmt"
	"slices"
)

// validatorErrorf tags a sentinel violation with the validator name.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the array reference is non-nil.
// Complexity: O(1).
func ValidateNotNil[T Numeric](a *Array[T]) error {
	if a == nil {
		return validatorErrorf("ValidateNotNil", ErrNilArray)
	}

	return nil
}

// ValidateSameShape ensures a and b have identical shapes.
// Assumes both are non-nil.
// Complexity: O(R).
func ValidateSameShape[T, U Numeric](a *Array[T], b *Array[U]) error {
	if len(a.shape) != len(b.shape) {
		return validatorErrorf("ValidateSameShape", ErrRankMismatch)
	}
	if !slices.Equal(a.shape, b.shape) {
		return validatorErrorf("ValidateSameShape", ErrDimensionMismatch)
	}

	return nil
}

// ValidateVecLen ensures an index or parameter vector has one entry per axis.
// Complexity: O(1).
func ValidateVecLen[E any](v []E, rank int) error {
	if len(v) != rank {
		return validatorErrorf("ValidateVecLen", ErrRankMismatch)
	}

	return nil
}

// ValidateRange ensures (from, to) is a valid half-open range within shape:
// len(from) == len(to) == len(shape) and 0 <= from[d] <= to[d] <= shape[d].
// Complexity: O(R).
func ValidateRange(shape, from, to []int) error {
	if len(from) != len(shape) || len(to) != len(shape) {
		return validatorErrorf("ValidateRange", ErrRankMismatch)
	}
	for d := range shape {
		if from[d] < 0 || from[d] > to[d] || to[d] > shape[d] {
			return validatorErrorf("ValidateRange", fmt.Errorf("axis %d [%d,%d) of %d: %w", d, from[d], to[d], shape[d], ErrOutOfRange))
		}
	}

	return nil
}

// ValidateOffset ensures an insertion offset has one non-negative entry per axis.
// Offsets beyond the destination are legal (nothing overlaps).
// Complexity: O(R).
func ValidateOffset(shape, offset []int) error {
	if len(offset) != len(shape) {
		return validatorErrorf("ValidateOffset", ErrRankMismatch)
	}
	for d, o := range offset {
		if o < 0 {
			return validatorErrorf("ValidateOffset", fmt.Errorf("axis %d offset %d: %w", d, o, ErrOutOfRange))
		}
	}

	return nil
}

// overlap returns the per-axis extent copied when a patch of patchShape is
// placed at offset inside dstShape: min(dst[d]-offset[d], patch[d]), floored
// at 0. Inputs must already have equal ranks.
func overlap(dstShape, patchShape, offset []int) []int {
	ext := make([]int, len(dstShape))
	for d := range dstShape {
		ext[d] = max(0, min(dstShape[d]-offset[d], patchShape[d]))
	}

	return ext
}
