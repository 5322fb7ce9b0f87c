// Package ndkit is a toolkit for rectangular N-dimensional numeric arrays,
// the kind that back astronomical images and spectral cubes.
//
// What is in the box?
//
//   - Introspection: rank, shape, element kind and count of typed arrays and
//     of untyped nested Go slices, plus a rectangularity-checked importer.
//   - Sub-arrays: extract, paste, resize, pad, project, collapse, expand and
//     transpose over half-open index ranges.
//   - Arithmetic: clear, fill, add, scale and multiply in place, with
//     NaN-skipping sums and dot products.
//   - Smoothing: normalized convolution that treats NaN and zero weight as
//     missing data, with Gaussian kernels specified by FWHM.
//   - Regridding: bucket-sum resampling and smoothed regridding by pixel scale.
//   - Text: "{1,2,{3,4}}"-style formatting and parsing.
//
// Packages:
//
//	ndarray/             the generic Array[T] and every operation above
//	image/               Image2D and Cube3D containers with FITS-order export
//	internal/parallel/   bounded data-parallel loops used by the engines
//	cmd/ndkit/           command line front end for array literals
//
// Quick example:
//
//	a, _ := ndarray.ParseAuto[float64]("{1,NaN,3}")
//	k, _ := ndarray.FromSlice([]float64{1, 1, 1}, 3)
//	out, _ := ndarray.Smooth(a, nil, k)
//	fmt.Println(out) // {1,2,3}
package ndkit
