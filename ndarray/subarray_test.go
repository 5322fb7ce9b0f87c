// SPDX-License-Identifier: MIT

package ndarray_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ndkit/ndarray"
)

// TestSubArray_Region extracts [from, to) with the rank preserved.
func TestSubArray_Region(t *testing.T) {
	a := Ramp(t, 3, 4)
	sub, err := ndarray.SubArray(a, []int{1, 1}, []int{3, 3})
	require.NoError(t, err)
	require.Equal(t, []int{2, 2}, sub.Shape())
	require.Equal(t, []float64{5, 6, 9, 10}, sub.Data())

	empty, err := ndarray.SubArray(a, []int{1, 1}, []int{1, 4})
	require.NoError(t, err)
	require.Equal(t, []int{0, 3}, empty.Shape())
}

// TestSubArray_Errors covers nil, rank and bounds violations.
func TestSubArray_Errors(t *testing.T) {
	a := Ramp(t, 3, 4)

	_, err := ndarray.SubArray[float64](nil, []int{0}, []int{1})
	require.ErrorIs(t, err, ndarray.ErrNilArray)
	_, err = ndarray.SubArray(a, []int{0}, []int{1, 1})
	require.ErrorIs(t, err, ndarray.ErrRankMismatch)
	_, err = ndarray.SubArray(a, []int{0, 0}, []int{4, 1})
	require.ErrorIs(t, err, ndarray.ErrOutOfRange)
	_, err = ndarray.SubArray(a, []int{2, 0}, []int{1, 1})
	require.ErrorIs(t, err, ndarray.ErrOutOfRange, "from > to")
}

// TestPaste_RoundTrip: pasting then extracting the same box returns the patch.
func TestPaste_RoundTrip(t *testing.T) {
	dst := MustNew[float64](t, 4, 5)
	patch := Ramp(t, 2, 3)
	require.NoError(t, ndarray.Paste(dst, patch, []int{1, 2}))

	back, err := ndarray.SubArray(dst, []int{1, 2}, []int{3, 5})
	require.NoError(t, err)
	require.True(t, patch.Equal(back))
	require.Equal(t, ndarray.Sum(patch), ndarray.Sum(dst), "nothing written outside the box")
}

// TestPaste_ClipsSilently drops whatever overflows the destination.
func TestPaste_ClipsSilently(t *testing.T) {
	dst := MustNew[float64](t, 3, 3)
	require.NoError(t, ndarray.Paste(dst, Constant(t, 1, 2, 2), []int{2, 2}))
	requireSameData(t, []float64{0, 0, 0, 0, 0, 0, 0, 0, 1}, dst.Data())

	require.NoError(t, ndarray.Paste(dst, Constant(t, 5, 2, 2), []int{7, 0}), "fully outside is a no-op")
	require.Equal(t, 1.0, ndarray.Sum(dst))

	require.Equal(t, []int{1, 1}, ndarray.ExportedOverlap([]int{3, 3}, []int{2, 2}, []int{2, 2}))
	require.Equal(t, []int{0, 2}, ndarray.ExportedOverlap([]int{3, 3}, []int{2, 2}, []int{7, 0}))
}

// TestPaste_Errors rejects negative offsets and rank disagreements.
func TestPaste_Errors(t *testing.T) {
	dst := MustNew[float64](t, 3, 3)
	require.ErrorIs(t, ndarray.Paste(dst, Ramp(t, 1, 1), []int{-1, 0}), ndarray.ErrOutOfRange)
	require.ErrorIs(t, ndarray.Paste(dst, Ramp(t, 2), []int{0, 0}), ndarray.ErrRankMismatch)
	require.ErrorIs(t, ndarray.Paste(dst, Ramp(t, 1, 1), []int{0}), ndarray.ErrRankMismatch)
	require.ErrorIs(t, ndarray.Paste[float64](nil, Ramp(t, 1, 1), []int{0, 0}), ndarray.ErrNilArray)
}

// TestResize covers identity, growth and truncation.
func TestResize(t *testing.T) {
	a := Ramp(t, 2, 2)

	same, err := ndarray.Resize(a, a.Shape())
	require.NoError(t, err)
	require.True(t, a.Equal(same))

	grown, err := ndarray.Resize(a, []int{3, 3})
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1, 0, 2, 3, 0, 0, 0, 0}, grown.Data())

	shrunk, err := ndarray.Resize(Ramp(t, 3, 3), []int{2, 2})
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1, 3, 4}, shrunk.Data())

	_, err = ndarray.Resize(a, []int{3})
	require.ErrorIs(t, err, ndarray.ErrRankMismatch)
	_, err = ndarray.Resize(a, []int{3, -3})
	require.ErrorIs(t, err, ndarray.ErrBadShape)
}

// TestPad zeroes everything outside the leading box.
func TestPad(t *testing.T) {
	a := Constant(t, 1, 3, 3)
	require.NoError(t, ndarray.Pad(a, []int{2, 1}))
	require.Equal(t, []float64{1, 0, 0, 1, 0, 0, 0, 0, 0}, a.Data())

	b := Constant(t, 1, 2, 2)
	require.NoError(t, ndarray.Pad(b, []int{9, 9}), "extents beyond the array are clamped")
	require.Equal(t, 4.0, ndarray.Sum(b))

	require.ErrorIs(t, ndarray.Pad(b, []int{1}), ndarray.ErrRankMismatch)
	require.ErrorIs(t, ndarray.Pad(b, []int{-1, 0}), ndarray.ErrBadShape)
}

// TestSubSpace fixes dropped axes at the given indices.
func TestSubSpace(t *testing.T) {
	a := Ramp(t, 2, 3, 4)
	s, err := ndarray.SubSpace(a, []bool{true, false, true}, []int{0, 1, 0})
	require.NoError(t, err)
	require.Equal(t, []int{2, 4}, s.Shape())
	require.Equal(t, []float64{4, 5, 6, 7, 16, 17, 18, 19}, s.Data())

	first, err := ndarray.SubSpace(a, []bool{false, true, true}, nil)
	require.NoError(t, err)
	require.Equal(t, []int{3, 4}, first.Shape())
	require.Equal(t, 11.0, first.Data()[11])

	_, err = ndarray.SubSpace(a, []bool{true, false, true}, []int{0, 3, 0})
	require.ErrorIs(t, err, ndarray.ErrOutOfRange)
	_, err = ndarray.SubSpace(a, []bool{true}, nil)
	require.ErrorIs(t, err, ndarray.ErrRankMismatch)
}

// TestCollapseExpand: Collapse undoes Expand.
func TestCollapseExpand(t *testing.T) {
	c, err := ndarray.Collapse(Ramp(t, 1, 3, 1, 2))
	require.NoError(t, err)
	require.Equal(t, []int{3, 2}, c.Shape())
	require.Equal(t, []float64{0, 1, 2, 3, 4, 5}, c.Data())

	a := Ramp(t, 3, 2)
	e, err := ndarray.Expand(a, []bool{false, true, false, true})
	require.NoError(t, err)
	require.Equal(t, []int{1, 3, 1, 2}, e.Shape())

	back, err := ndarray.Collapse(e)
	require.NoError(t, err)
	require.True(t, a.Equal(back))

	s, err := ndarray.Collapse(Constant(t, 4, 1, 1))
	require.NoError(t, err)
	require.Equal(t, 0, s.Rank())
	require.Equal(t, []float64{4}, s.Data())

	_, err = ndarray.Expand(a, []bool{true, false})
	require.ErrorIs(t, err, ndarray.ErrRankMismatch)
}

// TestTranspose reverses axis order.
func TestTranspose(t *testing.T) {
	tr, err := ndarray.Transpose(Ramp(t, 2, 3))
	require.NoError(t, err)
	require.Equal(t, []int{3, 2}, tr.Shape())
	require.Equal(t, []float64{0, 3, 1, 4, 2, 5}, tr.Data())

	a := Ramp(t, 2, 3, 4)
	once, err := ndarray.Transpose(a)
	require.NoError(t, err)
	v, _ := once.At(3, 1, 0)
	w, _ := a.At(0, 1, 3)
	require.Equal(t, w, v)

	twice, err := ndarray.Transpose(once)
	require.NoError(t, err)
	require.True(t, a.Equal(twice))

	_, err = ndarray.Transpose[float64](nil)
	require.ErrorIs(t, err, ndarray.ErrNilArray)
}
