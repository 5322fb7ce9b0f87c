// SPDX-License-Identifier: MIT
// Package: ndarray
//
// Purpose:
//   - Resample between resolutions without interpolation.
//
// Semantics:
//   - CoarseRegrid scatter-accumulates: source index i on an axis lands in
//     bucket floor(i·m/n) for extents n (source) and m (destination); several
//     source cells may share a bucket and are summed.
//   - SmoothRegrid coarse-regrids by a per-axis pixel scale and then applies a
//     Gaussian pass with FWHM = scale on downsampled axes (scale > 1); upsampled
//     axes discard nothing and get no extra smoothing.

package ndarray

import (
	"fmt"
	"math"
	"slices"
)

const (
	opCoarseRegrid = "CoarseRegrid"
	opSmoothRegrid = "SmoothRegrid"
)

// CoarseRegrid clears dst and accumulates every element of src into the
// bucket floor(i[d]·dst[d]/src[d]) on each axis d. When src and dst share a
// shape the result is an exact copy.
//
// Errors:
//   - ErrNilArray; ErrRankMismatch when ranks differ.
//
// Complexity: O(len(src)·R).
func CoarseRegrid[T Numeric](src, dst *Array[T]) error {
	if err := ValidateNotNil(src); err != nil {
		return ndErrorf(opCoarseRegrid, err)
	}
	if err := ValidateNotNil(dst); err != nil {
		return ndErrorf(opCoarseRegrid, err)
	}
	if len(src.shape) != len(dst.shape) {
		return fmt.Errorf("%s: rank %d into rank %d: %w", opCoarseRegrid, len(src.shape), len(dst.shape), ErrRankMismatch)
	}
	buckets := make([][]int, len(src.shape))
	for d, n := range src.shape {
		m := dst.shape[d]
		buckets[d] = bucketTable(n, m, func(i int) int { return i * m / n })
	}
	coarseRegrid(src, dst, buckets)

	return nil
}

// bucketTable maps each of n source indices to a destination bucket in
// [0, m), or -1 when m is 0.
func bucketTable(n, m int, at func(i int) int) []int {
	t := make([]int, n)
	for i := range t {
		if m == 0 {
			t[i] = -1
			continue
		}
		t[i] = min(max(at(i), 0), m-1)
	}

	return t
}

// coarseRegrid clears dst and scatters src through per-axis bucket tables.
func coarseRegrid[T Numeric](src, dst *Array[T], buckets [][]int) {
	Clear(dst)
	if len(src.data) == 0 || len(dst.data) == 0 {
		return
	}
	idx := make([]int, len(src.shape))
	for off := 0; ; off++ {
		to := 0
		for d, i := range idx {
			to += buckets[d][i] * dst.strides[d]
		}
		dst.data[to] += src.data[off]
		if !nextIndex(idx, src.shape) {
			return
		}
	}
}

// SmoothRegrid resamples src so that one output pixel spans scale[d] input
// pixels on axis d (scale > 1 downsamples, scale < 1 upsamples).
// MAIN DESCRIPTION:
//   - Coarse regrid into ceil(n/scale) buckets per axis, bucket floor(i/scale).
//   - Gaussian smoothing with FWHM = scale[d] output pixels where
//     scale[d] > 1, else 0; NaN cells are excluded from the pass.
//
// Errors:
//   - ErrNilArray; ErrRankMismatch when len(scale) != Rank();
//     ErrBadShape for NaN, infinite or non-positive scales, and for scales
//     that would grow the output beyond both len(src) and MaxDerivedLen.
//
// Complexity: O(n·R + m·|kernel|).
func SmoothRegrid(src *Array[float64], scale []float64, opts ...Option) (*Array[float64], error) {
	if err := ValidateNotNil(src); err != nil {
		return nil, ndErrorf(opSmoothRegrid, err)
	}
	if err := ValidateVecLen(scale, len(src.shape)); err != nil {
		return nil, ndErrorf(opSmoothRegrid, err)
	}
	shape := make([]int, len(scale))
	fwhm := make([]float64, len(scale))
	buckets := make([][]int, len(scale))
	limit := max(len(src.data), MaxDerivedLen)
	total := 1.0
	for d, s := range scale {
		if math.IsNaN(s) || math.IsInf(s, 0) || s <= 0 {
			return nil, fmt.Errorf("%s: axis %d scale %v: %w", opSmoothRegrid, d, s, ErrBadShape)
		}
		n := src.shape[d]
		m, ok := derivedExtent(math.Ceil(float64(n)/s), limit)
		total *= float64(m)
		if !ok || total > float64(limit) {
			return nil, fmt.Errorf("%s: axis %d scale %v: output exceeds %d cells: %w", opSmoothRegrid, d, s, limit, ErrBadShape)
		}
		shape[d] = m
		buckets[d] = bucketTable(n, shape[d], func(i int) int { return int(math.Floor(float64(i) / s)) })
		if s > 1 {
			fwhm[d] = s
		}
	}
	dst := newUnchecked[float64](shape)
	coarseRegrid(src, dst, buckets)

	o := gatherOptions(opts...)
	o.logger.Debug("regrid", "op", opSmoothRegrid, "from", src.shape, "to", shape, "fwhm", fwhm)
	if !slices.ContainsFunc(fwhm, func(w float64) bool { return w > 0 }) {
		return dst, nil
	}
	out, err := SmoothGaussian(dst, nil, fwhm, opts...)
	if err != nil {
		return nil, ndErrorf(opSmoothRegrid, err)
	}

	return out, nil
}
