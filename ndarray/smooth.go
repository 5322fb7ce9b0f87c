// SPDX-License-Identifier: MIT
// Package: ndarray
//
// Purpose:
//   - Normalized convolution of a weighted array with an N-D kernel window.
//
// Algorithm (per output cell p):
//   - Window: kernel-shaped, centred on p with half-width (k[d]-1)/2.
//   - Window cells outside the source do not contribute (boundary truncation,
//     no wraparound, no implicit zero-fill).
//   - A source cell contributes only when its weight is non-zero and neither
//     data, weight nor kernel entry is NaN (filtering, not zero-substitution).
//   - value(p) = Σ k·w·d / Σ k·w; weight(p) = Σ k·w; a zero denominator
//     yields NaN ("no data at this point").
//
// Concurrency:
//   - Output cells are split into contiguous chunks handed to the worker
//     group of internal/parallel; each cell is written exactly once and the
//     inputs are read-only, so results do not depend on the worker count.

package ndarray

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ndkit/internal/parallel"
)

const (
	opSmooth            = "Smooth"
	opSmoothWithWeights = "SmoothWithWeights"
	opSmoothGaussian    = "SmoothGaussian"
)

// Smooth returns the normalized convolution of data (weighted by weight)
// with kernel. A nil weight means unit weight everywhere.
//
// Errors:
//   - ErrNilArray for nil data or kernel.
//   - ErrRankMismatch when the kernel rank differs from the data rank.
//   - ErrDimensionMismatch when weight's shape differs from data's.
//   - ErrBadShape for a kernel with a zero extent.
//
// Complexity: O(n·|kernel|) time, O(n) space.
func Smooth(data, weight, kernel *Array[float64], opts ...Option) (*Array[float64], error) {
	values, _, err := smooth(opSmooth, data, weight, kernel, gatherOptions(opts...))

	return values, err
}

// SmoothWithWeights is Smooth that also returns the applied weight sum
// Σ k·w of every output cell (0 where nothing contributed).
func SmoothWithWeights(data, weight, kernel *Array[float64], opts ...Option) (values, weights *Array[float64], err error) {
	return smooth(opSmoothWithWeights, data, weight, kernel, gatherOptions(opts...))
}

// SmoothGaussian smooths data with a GaussianKernel of one FWHM per axis
// (in pixels; <= 0 leaves that axis unsmoothed).
//
// Errors:
//   - ErrRankMismatch when len(fwhm) != Rank(); otherwise as Smooth.
func SmoothGaussian(data, weight *Array[float64], fwhm []float64, opts ...Option) (*Array[float64], error) {
	if err := ValidateNotNil(data); err != nil {
		return nil, ndErrorf(opSmoothGaussian, err)
	}
	if err := ValidateVecLen(fwhm, len(data.shape)); err != nil {
		return nil, ndErrorf(opSmoothGaussian, err)
	}
	kernel, err := GaussianKernel(fwhm...)
	if err != nil {
		return nil, ndErrorf(opSmoothGaussian, err)
	}

	return Smooth(data, weight, kernel, opts...)
}

// smoother holds the read-only state shared by all workers.
type smoother struct {
	shape, strides   []int
	kshape, kstrides []int
	half             []int
	data             []float64
	weight           []float64 // nil means unit weight
	kernel           []float64
}

func smooth(op string, data, weight, kernel *Array[float64], o Options) (*Array[float64], *Array[float64], error) {
	// Stage 1 (Validate).
	if err := ValidateNotNil(data); err != nil {
		return nil, nil, ndErrorf(op, err)
	}
	if err := ValidateNotNil(kernel); err != nil {
		return nil, nil, ndErrorf(op, err)
	}
	if len(kernel.shape) != len(data.shape) {
		return nil, nil, fmt.Errorf("%s: kernel rank %d for rank %d data: %w", op, len(kernel.shape), len(data.shape), ErrRankMismatch)
	}
	for d, k := range kernel.shape {
		if k < 1 {
			return nil, nil, fmt.Errorf("%s: kernel axis %d extent %d: %w", op, d, k, ErrBadShape)
		}
	}
	s := &smoother{
		shape:    data.shape,
		strides:  data.strides,
		kshape:   kernel.shape,
		kstrides: kernel.strides,
		half:     make([]int, len(kernel.shape)),
		data:     data.data,
		kernel:   kernel.data,
	}
	if weight != nil {
		if err := ValidateSameShape(data, weight); err != nil {
			return nil, nil, ndErrorf(op, err)
		}
		s.weight = weight.data
	}
	for d, k := range kernel.shape {
		s.half[d] = (k - 1) / 2
	}

	// Stage 2 (Prepare).
	values := newUnchecked[float64](data.shape)
	weights := newUnchecked[float64](data.shape)
	o.logger.Debug("smoothing pass",
		"op", op,
		"shape", data.shape,
		"kernel", kernel.shape,
		"workers", o.workers,
		"chunks", parallel.Chunks(len(data.data), o.workers, o.parallelThreshold))

	// Stage 3 (Execute): one contiguous chunk of output cells per task.
	r := len(data.shape)
	err := parallel.For(len(data.data), o.workers, o.parallelThreshold, func(start, end int) error {
		p := make([]int, r)
		lo := make([]int, r)
		hi := make([]int, r)
		j := make([]int, r)
		unravel(start, s.shape, p)
		for off := start; off < end; off++ {
			num, den := s.cell(p, lo, hi, j)
			weights.data[off] = den
			if den == 0 {
				values.data[off] = math.NaN()
			} else {
				values.data[off] = num / den
			}
			nextIndex(p, s.shape)
		}
		return nil
	})
	if err != nil {
		return nil, nil, ndErrorf(op, err)
	}

	return values, weights, nil
}

// cell computes the numerator Σ k·w·d and denominator Σ k·w at output index
// p. lo, hi and j are per-worker scratch vectors of length rank.
func (s *smoother) cell(p, lo, hi, j []int) (num, den float64) {
	r := len(p)
	// Clip the kernel window to the source bounds, per axis.
	for d := 0; d < r; d++ {
		lo[d] = max(0, s.half[d]-p[d])
		hi[d] = min(s.kshape[d], s.shape[d]-p[d]+s.half[d])
		if lo[d] >= hi[d] {
			return 0, 0
		}
		j[d] = lo[d]
	}
	run := 1
	if r > 0 {
		run = hi[r-1] - lo[r-1]
	}
	for {
		kOff, sOff := 0, 0
		for d := 0; d < r; d++ {
			kOff += j[d] * s.kstrides[d]
			sOff += (p[d] - s.half[d] + j[d]) * s.strides[d]
		}
		for t := 0; t < run; t++ {
			kv, dv, wv := s.kernel[kOff+t], s.data[sOff+t], 1.0
			if s.weight != nil {
				wv = s.weight[sOff+t]
			}
			if wv == 0 || math.IsNaN(kv) || math.IsNaN(dv) || math.IsNaN(wv) {
				continue
			}
			kw := kv * wv
			num += kw * dv
			den += kw
		}
		if r <= 1 || !nextInBox(j[:r-1], lo[:r-1], hi[:r-1]) {
			return num, den
		}
	}
}

// nextInBox advances idx through the box [lo, hi) in row-major order and
// reports false once the walk wraps around.
func nextInBox(idx, lo, hi []int) bool {
	for d := len(idx) - 1; d >= 0; d-- {
		idx[d]++
		if idx[d] < hi[d] {
			return true
		}
		idx[d] = lo[d]
	}

	return false
}
