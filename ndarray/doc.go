// Package ndarray offers a generic N-dimensional numeric array and the
// free-function toolkit scientific image and cube containers are built on.
//
// The ndarray package provides:
//
//   - Array[T], a rectangular container over a flat row-major buffer with a
//     shape/stride descriptor; T is any integer or floating-point type.
//   - Untyped introspection (RankOf, ShapeOf, KindOf, CountOf) over nested Go
//     slices, and FromNested to import them with rectangularity enforced.
//   - Sub-array extraction and composition: SubArray, Paste, Resize, Pad,
//     SubSpace, Collapse, Expand, Transpose.
//   - Element-wise arithmetic over rectangular regions: Clear, Fill, Add,
//     Scale, Multiply, plus NaN-skipping Sum and Dot reductions.
//   - Normalized convolution (Smooth, SmoothWithWeights, SmoothGaussian) with
//     boundary truncation and NaN as the missing-value marker.
//   - Regridding: CoarseRegrid (scatter-accumulate into buckets) and
//     SmoothRegrid (coarse regrid followed by Gaussian anti-aliasing).
//   - A bracketed textual format: Format, Parse, ParseAuto ("{1,2,{3,4}}").
//
// Every operation is a pure function of its arguments apart from in-place
// mutation of the destination array. Concurrent calls on disjoint arrays are
// safe; concurrent writers to the same destination must be serialized by the
// caller. Smoothing fans its output cells out over a bounded worker group
// (see WithWorkers).
//
// Errors are package sentinels (ErrBadShape, ErrOutOfRange, ErrTypeMismatch,
// ...) wrapped with an operation tag; match them with errors.Is.
package ndarray
