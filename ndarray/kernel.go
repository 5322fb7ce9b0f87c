// SPDX-License-Identifier: MIT
// Package: ndarray
//
// Purpose:
//   - Build convolution kernels for the smoothing engine: sampled 1-D
//     Gaussian profiles by FWHM, their N-D outer product, and box kernels.
//
// Conventions:
//   - sigma = FWHM / (2·sqrt(2·ln 2)); half-width = ceil(3·sigma).
//   - FWHM <= 0 gives the unit kernel {1} (no smoothing on that axis).
//   - Profiles are normalized to unit sum.
//   - Kernels are bounded by MaxDerivedLen elements.

package ndarray

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	opGaussian1D     = "Gaussian1D"
	opGaussianKernel = "GaussianKernel"
	opBoxKernel      = "BoxKernel"
)

// fwhmToSigma converts a Gaussian full width at half maximum to its
// standard deviation: 1 / (2·sqrt(2·ln 2)).
const fwhmToSigma = 1 / 2.3548200450309493

// kernelSigmas is the half-width of a sampled Gaussian in units of sigma.
const kernelSigmas = 3.0

// Gaussian1D samples a unit-sum Gaussian profile of the given FWHM (in
// pixels) on 2·ceil(3σ)+1 points centred on the middle sample.
//
// Errors:
//   - ErrBadShape when fwhm is NaN or infinite, or so wide that the profile
//     would exceed MaxDerivedLen samples.
func Gaussian1D(fwhm float64) ([]float64, error) {
	if math.IsNaN(fwhm) || math.IsInf(fwhm, 0) {
		return nil, fmt.Errorf("%s: fwhm %v: %w", opGaussian1D, fwhm, ErrBadShape)
	}
	if fwhm <= 0 {
		return []float64{1}, nil
	}
	sigma := fwhm * fwhmToSigma
	half, ok := derivedExtent(math.Ceil(kernelSigmas*sigma), (MaxDerivedLen-1)/2)
	if !ok {
		return nil, fmt.Errorf("%s: fwhm %v exceeds %d samples: %w", opGaussian1D, fwhm, MaxDerivedLen, ErrBadShape)
	}
	p := make([]float64, 2*half+1)
	for i := range p {
		x := float64(i-half) / sigma
		p[i] = math.Exp(-0.5 * x * x)
	}
	floats.Scale(1/floats.Sum(p), p)

	return p, nil
}

// GaussianKernel returns the outer product of one Gaussian1D profile per
// axis; the kernel rank equals len(fwhm). No arguments give the rank-0 unit
// kernel.
//
// Errors:
//   - ErrBadShape for NaN or infinite widths, or when the product of the
//     profile lengths exceeds MaxDerivedLen.
func GaussianKernel(fwhm ...float64) (*Array[float64], error) {
	profiles := make([][]float64, len(fwhm))
	total := 1.0
	for d, w := range fwhm {
		p, err := Gaussian1D(w)
		if err != nil {
			return nil, ndErrorf(opGaussianKernel, fmt.Errorf("axis %d: %w", d, err))
		}
		profiles[d] = p
		total *= float64(len(p))
	}
	if total > MaxDerivedLen {
		return nil, fmt.Errorf("%s: widths %v give %.0f cells: %w", opGaussianKernel, fwhm, total, ErrBadShape)
	}

	return outer(profiles), nil
}

// BoxKernel returns a uniform kernel of the given extents with unit sum.
//
// Errors:
//   - ErrBadShape when any extent is < 1.
func BoxKernel(extent ...int) (*Array[float64], error) {
	profiles := make([][]float64, len(extent))
	for d, n := range extent {
		if n < 1 {
			return nil, fmt.Errorf("%s: axis %d extent %d: %w", opBoxKernel, d, n, ErrBadShape)
		}
		p := make([]float64, n)
		for i := range p {
			p[i] = 1 / float64(n)
		}
		profiles[d] = p
	}

	return outer(profiles), nil
}

// outer builds the N-D outer product of 1-D profiles.
func outer(profiles [][]float64) *Array[float64] {
	shape := make([]int, len(profiles))
	for d, p := range profiles {
		shape[d] = len(p)
	}
	k := newUnchecked[float64](shape)
	idx := make([]int, len(shape))
	for off := range k.data {
		v := 1.0
		for d, i := range idx {
			v *= profiles[d][i]
		}
		k.data[off] = v
		nextIndex(idx, shape)
	}

	return k
}
