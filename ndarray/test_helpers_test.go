// SPDX-License-Identifier: MIT
// Package ndarray_test contains test helpers.
//
// Purpose:
//   - Provide small, deterministic fixtures (ramps, constant fields) so
//     every test states its expected values explicitly.

package ndarray_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/katalvlaran/ndkit/ndarray"
)

// nanAware compares float slices treating NaN == NaN.
var nanAware = cmpopts.EquateNaNs()

// MustNew allocates a zero array of the given shape or fails the test.
func MustNew[T ndarray.Numeric](tb testing.TB, shape ...int) *ndarray.Array[T] {
	tb.Helper()
	a, err := ndarray.New[T](shape...)
	if err != nil {
		tb.Fatalf("New(%v): %v", shape, err)
	}

	return a
}

// MustFromSlice builds an array from data or fails the test.
func MustFromSlice[T ndarray.Numeric](tb testing.TB, data []T, shape ...int) *ndarray.Array[T] {
	tb.Helper()
	a, err := ndarray.FromSlice(data, shape...)
	if err != nil {
		tb.Fatalf("FromSlice(%v): %v", shape, err)
	}

	return a
}

// Ramp returns an array of the given shape holding 0, 1, 2, ... in row-major order.
func Ramp(tb testing.TB, shape ...int) *ndarray.Array[float64] {
	tb.Helper()
	a := MustNew[float64](tb, shape...)
	for i := range a.Data() {
		a.Data()[i] = float64(i)
	}

	return a
}

// Constant returns an array of the given shape with every element v.
func Constant(tb testing.TB, v float64, shape ...int) *ndarray.Array[float64] {
	tb.Helper()
	a := MustNew[float64](tb, shape...)
	ndarray.Fill(a, v)

	return a
}

// requireSameData fails with a readable diff when got and want differ
// (NaN-aware).
func requireSameData(tb testing.TB, want, got []float64) {
	tb.Helper()
	if diff := cmp.Diff(want, got, nanAware); diff != "" {
		tb.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

// requireCloseData fails when any element differs by more than tol
// (NaN matches NaN).
func requireCloseData(tb testing.TB, want, got []float64, tol float64) {
	tb.Helper()
	if diff := cmp.Diff(want, got, nanAware, cmpopts.EquateApprox(0, tol)); diff != "" {
		tb.Fatalf("data mismatch beyond %g (-want +got):\n%s", tol, diff)
	}
}
