// SPDX-License-Identifier: MIT

// Package parallel fans embarrassingly-parallel index loops out over a
// bounded group of goroutines.
//
// Work is split into contiguous [start, end) chunks; each chunk is handed to
// exactly one goroutine, so callers that write only the cells of their own
// chunk need no further synchronization.
package parallel

import (
	"golang.org/x/sync/errgroup"
)

// For runs fn over [0, n) split into contiguous chunks of at least minChunk
// indices, with at most workers chunks in flight. workers <= 1, or n no
// larger than minChunk, runs fn(0, n) on the calling goroutine.
// The first non-nil error is returned once every started chunk has finished.
// Complexity: O(n/chunk) goroutines.
func For(n, workers, minChunk int, fn func(start, end int) error) error {
	if n <= 0 {
		return nil
	}
	if minChunk < 1 {
		minChunk = 1
	}
	if workers <= 1 || n <= minChunk {
		return fn(0, n)
	}
	size := max(minChunk, (n+workers-1)/workers)

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < n; start += size {
		end := min(start+size, n)
		g.Go(func() error { return fn(start, end) })
	}

	return g.Wait()
}

// Chunks reports how many chunks For would schedule for the same arguments.
func Chunks(n, workers, minChunk int) int {
	if n <= 0 {
		return 0
	}
	if minChunk < 1 {
		minChunk = 1
	}
	if workers <= 1 || n <= minChunk {
		return 1
	}
	size := max(minChunk, (n+workers-1)/workers)

	return (n + size - 1) / size
}
