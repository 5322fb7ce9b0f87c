// SPDX-License-Identifier: MIT

package ndarray

// Test-Bridge (White-Box) for private helpers and the options snapshot.
//
// Purpose:
//   - Expose unexported stride/odometer helpers and the resolved Options to
//     package ndarray_test ONLY; the file is compiled for tests alone.

var (
	// ExportedRowMajorStrides exposes rowMajorStrides.
	ExportedRowMajorStrides = rowMajorStrides
	// ExportedOverlap exposes the Paste/Add clipping rule.
	ExportedOverlap = overlap
	// ExportedUnravel exposes unravel.
	ExportedUnravel = unravel
)

// Panic message exports to avoid "magic strings" in tests.
const (
	PanicWorkersInvalid_TestOnly   = panicWorkersInvalid
	PanicThresholdInvalid_TestOnly = panicThresholdInvalid
	PanicPrecisionInvalid_TestOnly = panicPrecisionInvalid
)

// WalkRuns_TestOnly collects the run-start indices visited by walkRuns.
func WalkRuns_TestOnly(extent []int) [][]int {
	var out [][]int
	walkRuns(extent, func(idx []int) {
		out = append(out, append([]int(nil), idx...))
	})

	return out
}

// BucketTable_TestOnly exposes the CoarseRegrid bucket mapping for extents n -> m.
func BucketTable_TestOnly(n, m int) []int {
	return bucketTable(n, m, func(i int) int { return i * m / n })
}

// OptionsSnapshot is a read-only copy of resolved Options.
type OptionsSnapshot struct {
	Workers           int
	ParallelThreshold int
	Precision         int
	HasLogger         bool
}

// GatherOptionsSnapshot_TestOnly resolves opts and snapshots the result.
func GatherOptionsSnapshot_TestOnly(opts ...Option) OptionsSnapshot {
	o := gatherOptions(opts...)

	return OptionsSnapshot{
		Workers:           o.workers,
		ParallelThreshold: o.parallelThreshold,
		Precision:         o.precision,
		HasLogger:         o.logger != nil,
	}
}
