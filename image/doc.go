// SPDX-License-Identifier: MIT

// Package image provides astronomical image (Image2D) and spectral cube
// (Cube3D) containers over ndarray.Array[float64].
//
// Axis convention:
//   - Arrays are indexed [x][y] (images) and [x][y][z] (cubes), z being the
//     spectral axis. Storage is row-major, so the last axis is contiguous.
//   - Exports (ToNested, ToMat) use FITS order instead: the x axis varies
//     fastest, i.e. nested slices are [y][x] and [z][y][x].
//
// Missing values:
//   - A pixel holding NaN is invalid. Smoothing skips invalid pixels and
//     refills them from valid neighbours; CountValid and IsValid report them.
//
// All containers are safe for concurrent reads; writes need external
// synchronization, as for the underlying arrays.
package image
