// SPDX-License-Identifier: MIT
// Package: image
//
// Purpose:
//   - Cube3D: a spectral cube indexed [x][y][z] with spatial planes and
//     per-pixel spectra extracted through ndarray.SubSpace.

package image

import (
	"fmt"

	"github.com/katalvlaran/ndkit/ndarray"
)

const (
	opNewCube3D = "NewCube3D"
	opPlane     = "Cube3D.Plane"
	opSetPlane  = "Cube3D.SetPlane"
	opSpectrum  = "Cube3D.Spectrum"
	opSmooth3D  = "Cube3D.Smooth"
)

// axis masks for SubSpace/Expand over {x, y, z}.
var (
	spatialAxes  = []bool{true, true, false}
	spectralAxis = []bool{false, false, true}
)

// Cube3D is a three-dimensional cube indexed [x][y][z].
type Cube3D struct {
	vox  *ndarray.Array[float64]
	opts []ndarray.Option
}

// NewCube3D allocates a zero cube.
//
// Errors:
//   - ndarray.ErrBadShape for negative sizes.
func NewCube3D(sizeX, sizeY, sizeZ int, opts ...ndarray.Option) (*Cube3D, error) {
	vox, err := ndarray.New[float64](sizeX, sizeY, sizeZ)
	if err != nil {
		return nil, imageErrorf(opNewCube3D, err)
	}

	return &Cube3D{vox: vox, opts: opts}, nil
}

// SizeX returns the number of columns per plane.
func (c *Cube3D) SizeX() int { return c.vox.Dim(0) }

// SizeY returns the number of rows per plane.
func (c *Cube3D) SizeY() int { return c.vox.Dim(1) }

// SizeZ returns the number of planes (spectral channels).
func (c *Cube3D) SizeZ() int { return c.vox.Dim(2) }

// Array exposes the backing array.
func (c *Cube3D) Array() *ndarray.Array[float64] { return c.vox }

// Get returns the voxel at (x, y, z).
func (c *Cube3D) Get(x, y, z int) (float64, error) { return c.vox.At(x, y, z) }

// Set stores v at (x, y, z).
func (c *Cube3D) Set(x, y, z int, v float64) error { return c.vox.Set(v, x, y, z) }

// Plane returns a copy of spectral plane z as an image.
//
// Errors:
//   - ndarray.ErrOutOfRange when z is outside the cube.
func (c *Cube3D) Plane(z int) (*Image2D, error) {
	p, err := ndarray.SubSpace(c.vox, spatialAxes, []int{0, 0, z})
	if err != nil {
		return nil, imageErrorf(opPlane, err)
	}

	return &Image2D{pix: p, opts: c.opts}, nil
}

// SetPlane overwrites spectral plane z with im, which must match the
// cube's spatial size.
//
// Errors:
//   - ErrNilImage; ErrSizeMismatch; ndarray.ErrOutOfRange for z.
func (c *Cube3D) SetPlane(z int, im *Image2D) error {
	if im == nil {
		return imageErrorf(opSetPlane, ErrNilImage)
	}
	if im.SizeX() != c.SizeX() || im.SizeY() != c.SizeY() {
		return fmt.Errorf("%s: %dx%d plane into %dx%d cube: %w",
			opSetPlane, im.SizeX(), im.SizeY(), c.SizeX(), c.SizeY(), ErrSizeMismatch)
	}
	if z < 0 || z >= c.SizeZ() {
		return fmt.Errorf("%s: plane %d of %d: %w", opSetPlane, z, c.SizeZ(), ndarray.ErrOutOfRange)
	}
	slab, err := ndarray.Expand(im.pix, spatialAxes)
	if err != nil {
		return imageErrorf(opSetPlane, err)
	}
	if err = ndarray.Paste(c.vox, slab, []int{0, 0, z}); err != nil {
		return imageErrorf(opSetPlane, err)
	}

	return nil
}

// Spectrum returns a copy of the spectrum at spatial pixel (x, y).
//
// Errors:
//   - ndarray.ErrOutOfRange when (x, y) is outside the cube.
func (c *Cube3D) Spectrum(x, y int) ([]float64, error) {
	s, err := ndarray.SubSpace(c.vox, spectralAxis, []int{x, y, 0})
	if err != nil {
		return nil, imageErrorf(opSpectrum, err)
	}

	return s.Data(), nil
}

// Smooth convolves with a Gaussian of FWHM fwhmXY on both spatial axes and
// fwhmZ on the spectral axis.
func (c *Cube3D) Smooth(fwhmXY, fwhmZ float64) (*Cube3D, error) {
	out, err := ndarray.SmoothGaussian(c.vox, nil, []float64{fwhmXY, fwhmXY, fwhmZ}, c.opts...)
	if err != nil {
		return nil, imageErrorf(opSmooth3D, err)
	}

	return &Cube3D{vox: out, opts: c.opts}, nil
}

// ToNested exports the voxels in FITS order: out[z][y][x].
func (c *Cube3D) ToNested() [][][]float64 {
	// Transpose fails only on a nil array; c.vox is never nil.
	t, _ := ndarray.Transpose(c.vox)

	return t.ToNested().([][][]float64)
}
