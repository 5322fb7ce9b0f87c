// SPDX-License-Identifier: MIT
// Package: image
//
// Purpose:
//   - Image2D: a float64 image of sizeX×sizeY pixels with NaN as the
//     invalid-pixel marker, built on ndarray.Array[float64] of shape {x, y}.
//
// Complexity quicksheet:
//   - Get/Set/IsValid: O(1); CountValid, ToNested, ToMat: O(n);
//     Smooth: O(n·|kernel|); Regrid: O(n + m·|kernel|).

package image

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/ndkit/ndarray"
)

const (
	opNewImage2D  = "NewImage2D"
	opFromArray2D = "FromArray2D"
	opFromMat     = "FromMat"
	opToMat       = "ToMat"
	opCrop        = "Crop"
	opSmooth2D    = "Image2D.Smooth"
	opRegrid2D    = "Image2D.Regrid"
)

// Image2D is a two-dimensional image indexed [x][y].
type Image2D struct {
	pix  *ndarray.Array[float64]
	opts []ndarray.Option
}

// NewImage2D allocates a zero image. opts are forwarded to the smoothing
// and regrid engines (workers, logger).
//
// Errors:
//   - ndarray.ErrBadShape for negative sizes.
func NewImage2D(sizeX, sizeY int, opts ...ndarray.Option) (*Image2D, error) {
	pix, err := ndarray.New[float64](sizeX, sizeY)
	if err != nil {
		return nil, imageErrorf(opNewImage2D, err)
	}

	return &Image2D{pix: pix, opts: opts}, nil
}

// FromArray2D wraps a rank-2 array (no copy).
//
// Errors:
//   - ErrNilImage; ndarray.ErrRankMismatch when a is not rank 2.
func FromArray2D(a *ndarray.Array[float64], opts ...ndarray.Option) (*Image2D, error) {
	if a == nil {
		return nil, imageErrorf(opFromArray2D, ErrNilImage)
	}
	if a.Rank() != 2 {
		return nil, fmt.Errorf("%s: rank %d: %w", opFromArray2D, a.Rank(), ndarray.ErrRankMismatch)
	}

	return &Image2D{pix: a, opts: opts}, nil
}

// SizeX returns the number of columns.
func (im *Image2D) SizeX() int { return im.pix.Dim(0) }

// SizeY returns the number of rows.
func (im *Image2D) SizeY() int { return im.pix.Dim(1) }

// Array exposes the backing array. Writes through it are visible in the image.
func (im *Image2D) Array() *ndarray.Array[float64] { return im.pix }

// Get returns the pixel at (x, y).
func (im *Image2D) Get(x, y int) (float64, error) { return im.pix.At(x, y) }

// Set stores v at (x, y).
func (im *Image2D) Set(x, y int, v float64) error { return im.pix.Set(v, x, y) }

// IsValid reports whether (x, y) lies inside the image and holds a value.
func (im *Image2D) IsValid(x, y int) bool {
	v, err := im.pix.At(x, y)

	return err == nil && !math.IsNaN(v)
}

// Discard marks (x, y) invalid.
func (im *Image2D) Discard(x, y int) error { return im.pix.Set(math.NaN(), x, y) }

// CountValid returns the number of non-NaN pixels.
func (im *Image2D) CountValid() int {
	n := 0
	for _, v := range im.pix.Data() {
		if !math.IsNaN(v) {
			n++
		}
	}

	return n
}

// Sum returns the sum over valid pixels.
func (im *Image2D) Sum() float64 { return ndarray.Sum(im.pix) }

// Smooth convolves with a Gaussian of the given FWHM (pixels) along x and
// y. Invalid pixels are skipped and refilled from valid neighbours; pixels
// with no valid neighbour stay invalid.
func (im *Image2D) Smooth(fwhmX, fwhmY float64) (*Image2D, error) {
	out, err := ndarray.SmoothGaussian(im.pix, nil, []float64{fwhmX, fwhmY}, im.opts...)
	if err != nil {
		return nil, imageErrorf(opSmooth2D, err)
	}

	return &Image2D{pix: out, opts: im.opts}, nil
}

// Regrid resamples so that one output pixel covers scale input pixels on
// each axis, smoothing by FWHM = scale when downsampling.
// The bucket sum runs before smoothing and is not NaN-aware: an invalid
// pixel turns its whole output bucket invalid, and only the following
// Gaussian pass skips it.
func (im *Image2D) Regrid(scale float64) (*Image2D, error) {
	out, err := ndarray.SmoothRegrid(im.pix, []float64{scale, scale}, im.opts...)
	if err != nil {
		return nil, imageErrorf(opRegrid2D, err)
	}

	return &Image2D{pix: out, opts: im.opts}, nil
}

// Crop returns a copy of the box [x0, x1) × [y0, y1).
func (im *Image2D) Crop(x0, y0, x1, y1 int) (*Image2D, error) {
	sub, err := ndarray.SubArray(im.pix, []int{x0, y0}, []int{x1, y1})
	if err != nil {
		return nil, imageErrorf(opCrop, err)
	}

	return &Image2D{pix: sub, opts: im.opts}, nil
}

// ToNested exports the pixels in FITS order: out[y][x].
func (im *Image2D) ToNested() [][]float64 {
	// Transpose fails only on a nil array; im.pix is never nil.
	t, _ := ndarray.Transpose(im.pix)

	return t.ToNested().([][]float64)
}

// ToMat exports the pixels as a SizeY×SizeX gonum matrix (row y, column x).
//
// Errors:
//   - ErrEmpty when either size is 0 (gonum has no empty matrices).
func (im *Image2D) ToMat() (*mat.Dense, error) {
	if im.pix.Len() == 0 {
		return nil, imageErrorf(opToMat, ErrEmpty)
	}
	// Transpose fails only on a nil array; im.pix is never nil.
	t, _ := ndarray.Transpose(im.pix)

	return mat.NewDense(im.SizeY(), im.SizeX(), t.Data()), nil
}

// FromMat builds an image from a matrix laid out as ToMat produces it:
// rows are y and columns are x.
//
// Errors:
//   - ErrNilImage for a nil matrix.
func FromMat(m mat.Matrix, opts ...ndarray.Option) (*Image2D, error) {
	if m == nil {
		return nil, imageErrorf(opFromMat, ErrNilImage)
	}
	rows, cols := m.Dims()
	im, err := NewImage2D(cols, rows, opts...)
	if err != nil {
		return nil, imageErrorf(opFromMat, err)
	}
	data := im.pix.Data()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			data[x*rows+y] = m.At(y, x)
		}
	}

	return im, nil
}
