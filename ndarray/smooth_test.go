// SPDX-License-Identifier: MIT

package ndarray_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/ndkit/ndarray"
)

// SmoothSuite groups tests for the normalized convolution engine.
type SmoothSuite struct {
	suite.Suite
	unit3 *ndarray.Array[float64] // {1,1,1}: exact arithmetic on small inputs
}

func (s *SmoothSuite) SetupTest() {
	s.unit3 = MustFromSlice(s.T(), []float64{1, 1, 1}, 3)
}

// TestUnitKernelIdentity: the kernel {1} reproduces the input, NaN included.
func (s *SmoothSuite) TestUnitKernelIdentity() {
	data := Ramp(s.T(), 3, 4)
	require.NoError(s.T(), data.Set(math.NaN(), 1, 2))
	k := MustFromSlice(s.T(), []float64{1}, 1, 1)

	out, err := ndarray.Smooth(data, nil, k)
	require.NoError(s.T(), err)
	requireSameData(s.T(), data.Data(), out.Data())
}

// TestBoundaryTruncation: edge cells average only the in-bounds neighbours.
func (s *SmoothSuite) TestBoundaryTruncation() {
	data := MustFromSlice(s.T(), []float64{1, 2, 3, 4, 5}, 5)
	values, weights, err := ndarray.SmoothWithWeights(data, nil, s.unit3)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []float64{1.5, 2, 3, 4, 4.5}, values.Data())
	require.Equal(s.T(), []float64{2, 3, 3, 3, 2}, weights.Data())
}

// TestNaNSkipped: missing data is filtered, not treated as zero.
func (s *SmoothSuite) TestNaNSkipped() {
	data := MustFromSlice(s.T(), []float64{1, math.NaN(), 3}, 3)
	out, err := ndarray.Smooth(data, nil, s.unit3)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []float64{1, 2, 3}, out.Data())
}

// TestZeroWeightSkipped: zero-weight cells contribute nothing.
func (s *SmoothSuite) TestZeroWeightSkipped() {
	data := MustFromSlice(s.T(), []float64{1, 100, 3}, 3)
	weight := MustFromSlice(s.T(), []float64{1, 0, 1}, 3)
	values, weights, err := ndarray.SmoothWithWeights(data, weight, s.unit3)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []float64{1, 2, 3}, values.Data())
	require.Equal(s.T(), []float64{1, 2, 1}, weights.Data())
}

// TestWeightedMean: value = Σk·w·d / Σk·w.
func (s *SmoothSuite) TestWeightedMean() {
	data := MustFromSlice(s.T(), []float64{2, 4}, 2)
	weight := MustFromSlice(s.T(), []float64{1, 3}, 2)
	out, err := ndarray.Smooth(data, weight, s.unit3)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []float64{3.5, 3.5}, out.Data())
}

// TestNoContributionIsNaN: an empty neighbourhood yields NaN and weight 0.
func (s *SmoothSuite) TestNoContributionIsNaN() {
	data := Ramp(s.T(), 4)
	weight := MustNew[float64](s.T(), 4)
	values, weights, err := ndarray.SmoothWithWeights(data, weight, s.unit3)
	require.NoError(s.T(), err)
	for i := range values.Data() {
		require.True(s.T(), math.IsNaN(values.Data()[i]))
		require.Equal(s.T(), 0.0, weights.Data()[i])
	}
}

// TestNaNKernelEntries are skipped like NaN data.
func (s *SmoothSuite) TestNaNKernelEntries() {
	nan := math.NaN()
	data := MustFromSlice(s.T(), []float64{1, 2, 3}, 3)
	k := MustFromSlice(s.T(), []float64{nan, 1, nan}, 3)
	out, err := ndarray.Smooth(data, nil, k)
	require.NoError(s.T(), err)
	require.Equal(s.T(), data.Data(), out.Data())
}

// TestEvenKernel anchors the window at (k-1)/2.
func (s *SmoothSuite) TestEvenKernel() {
	data := MustFromSlice(s.T(), []float64{1, 2, 3}, 3)
	k := MustFromSlice(s.T(), []float64{1, 1}, 2)
	out, err := ndarray.Smooth(data, nil, k)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []float64{1.5, 2.5, 3}, out.Data())
}

// TestConstantField stays constant under any positive kernel.
func (s *SmoothSuite) TestConstantField() {
	data := Constant(s.T(), 5, 6, 7)
	out, err := ndarray.SmoothGaussian(data, nil, []float64{2.5, 4})
	require.NoError(s.T(), err)
	requireCloseData(s.T(), Constant(s.T(), 5, 6, 7).Data(), out.Data(), 1e-12)
}

// TestScalarData smooths a rank-0 array with the rank-0 unit kernel.
func (s *SmoothSuite) TestScalarData() {
	k, err := ndarray.GaussianKernel()
	require.NoError(s.T(), err)
	out, err := ndarray.Smooth(ndarray.Scalar(3.0), nil, k)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []float64{3}, out.Data())
}

// TestParallelMatchesSerial: the worker count never changes results.
func (s *SmoothSuite) TestParallelMatchesSerial() {
	data := Ramp(s.T(), 40, 50)
	for i := 0; i < data.Len(); i += 7 {
		data.Data()[i] = math.NaN()
	}
	fwhm := []float64{3, 5}

	serial, err := ndarray.SmoothGaussian(data, nil, fwhm, ndarray.WithWorkers(1))
	require.NoError(s.T(), err)
	parallel, err := ndarray.SmoothGaussian(data, nil, fwhm,
		ndarray.WithWorkers(4), ndarray.WithParallelThreshold(1))
	require.NoError(s.T(), err)
	requireSameData(s.T(), serial.Data(), parallel.Data())
}

// TestErrors covers every validation branch.
func (s *SmoothSuite) TestErrors() {
	data := Ramp(s.T(), 3, 3)

	_, err := ndarray.Smooth(nil, nil, s.unit3)
	require.ErrorIs(s.T(), err, ndarray.ErrNilArray)
	_, err = ndarray.Smooth(data, nil, nil)
	require.ErrorIs(s.T(), err, ndarray.ErrNilArray)
	_, err = ndarray.Smooth(data, nil, s.unit3)
	require.ErrorIs(s.T(), err, ndarray.ErrRankMismatch)
	_, err = ndarray.Smooth(data, Ramp(s.T(), 3, 2), MustFromSlice(s.T(), []float64{1}, 1, 1))
	require.ErrorIs(s.T(), err, ndarray.ErrDimensionMismatch)
	_, err = ndarray.Smooth(Ramp(s.T(), 3), nil, MustNew[float64](s.T(), 0))
	require.ErrorIs(s.T(), err, ndarray.ErrBadShape)
	_, err = ndarray.SmoothGaussian(data, nil, []float64{1})
	require.ErrorIs(s.T(), err, ndarray.ErrRankMismatch)
	_, err = ndarray.SmoothGaussian(data, nil, []float64{1, math.Inf(1)})
	require.ErrorIs(s.T(), err, ndarray.ErrBadShape)
}

func TestSmoothSuite(t *testing.T) {
	suite.Run(t, new(SmoothSuite))
}

// TestGaussian1D checks width, normalization and symmetry.
func TestGaussian1D(t *testing.T) {
	p, err := ndarray.Gaussian1D(4)
	require.NoError(t, err)
	require.Len(t, p, 13, "half-width ceil(3σ) = 6 for σ ≈ 1.699")

	sum := 0.0
	for i, v := range p {
		sum += v
		require.InDelta(t, p[len(p)-1-i], v, 1e-15)
		if i > 0 && i <= 6 {
			require.Greater(t, v, p[i-1], "rising towards the centre")
		}
	}
	require.InDelta(t, 1.0, sum, 1e-12)

	for _, w := range []float64{0, -3} {
		p, err = ndarray.Gaussian1D(w)
		require.NoError(t, err)
		require.Equal(t, []float64{1}, p)
	}

	_, err = ndarray.Gaussian1D(math.NaN())
	require.ErrorIs(t, err, ndarray.ErrBadShape)

	for _, w := range []float64{1e19, 1e300, math.MaxFloat64} {
		_, err = ndarray.Gaussian1D(w)
		require.ErrorIs(t, err, ndarray.ErrBadShape, "fwhm %g is too wide to sample", w)
	}
}

// TestGaussianKernel builds the per-axis outer product.
func TestGaussianKernel(t *testing.T) {
	k, err := ndarray.GaussianKernel(4, 0)
	require.NoError(t, err)
	require.Equal(t, []int{13, 1}, k.Shape())
	require.InDelta(t, 1.0, ndarray.Sum(k), 1e-12)

	_, err = ndarray.GaussianKernel(1e7, 1e7)
	require.ErrorIs(t, err, ndarray.ErrBadShape, "each profile fits, the outer product does not")

	u, err := ndarray.GaussianKernel()
	require.NoError(t, err)
	require.Equal(t, 0, u.Rank())
	require.Equal(t, []float64{1}, u.Data())
}

// TestBoxKernel is uniform with unit sum.
func TestBoxKernel(t *testing.T) {
	k, err := ndarray.BoxKernel(2, 4)
	require.NoError(t, err)
	require.Equal(t, []int{2, 4}, k.Shape())
	for _, v := range k.Data() {
		require.Equal(t, 0.125, v)
	}

	_, err = ndarray.BoxKernel(3, 0)
	require.ErrorIs(t, err, ndarray.ErrBadShape)
}
