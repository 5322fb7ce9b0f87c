// SPDX-License-Identifier: MIT

// Package ndarray: functional configuration for the smoothing/regrid engine
// and the text formatter. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces derived invariants.
//
// Design goals:
//   - Deterministic results: the worker count changes scheduling only, never
//     the value of any output cell.
//   - No global state: every call resolves its own Options.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package ndarray

import (
	"io"
	"log/slog"
	"runtime"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultWorkers is the data-parallel fan-out; 0 resolves to GOMAXPROCS.
	DefaultWorkers = 0

	// DefaultParallelThreshold is the minimum number of output cells per
	// worker chunk; smaller jobs run serially.
	DefaultParallelThreshold = 1024

	// DefaultPrecision selects the shortest round-trip float formatting.
	DefaultPrecision = -1
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicWorkersInvalid   = "ndarray: WithWorkers: n must be >= 0"
	panicThresholdInvalid = "ndarray: WithParallelThreshold: n must be >= 1"
	panicPrecisionInvalid = "ndarray: WithPrecision: digits must be >= -1"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	workers           int          // resolved fan-out (>= 1 after finalize)
	parallelThreshold int          // min cells per chunk
	precision         int          // -1 shortest, else fixed decimals
	logger            *slog.Logger // never nil after finalize
}

// WithWorkers sets the number of concurrent workers used by data-parallel
// loops. 0 means runtime.GOMAXPROCS(0); 1 forces serial execution.
// Panics when n < 0.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = n }
}

// WithParallelThreshold sets the minimum chunk size (in output cells) handed
// to a worker. Panics when n < 1.
func WithParallelThreshold(n int) Option {
	if n < 1 {
		panic(panicThresholdInvalid)
	}

	return func(o *Options) { o.parallelThreshold = n }
}

// WithPrecision selects fixed decimals for Format (digits >= 0) or the
// shortest round-trip representation (-1). Integer kinds ignore it.
// Panics when digits < -1.
func WithPrecision(digits int) Option {
	if digits < -1 {
		panic(panicPrecisionInvalid)
	}

	return func(o *Options) { o.precision = digits }
}

// WithLogger installs a structured logger for engine diagnostics (Debug
// level). nil restores the discarding default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// NewOptions resolves opts on top of the documented defaults.
func NewOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// Workers returns the resolved worker count.
func (o Options) Workers() int { return o.workers }

// ParallelThreshold returns the resolved minimum chunk size.
func (o Options) ParallelThreshold() int { return o.parallelThreshold }

// Precision returns the resolved formatting precision.
func (o Options) Precision() int { return o.precision }

// Logger returns the resolved logger (never nil).
func (o Options) Logger() *slog.Logger { return o.logger }

// gatherOptions applies user setters on top of defaults (last-writer-wins)
// and finalizes derived invariants.
// Complexity: O(k) for k=len(user).
func gatherOptions(user ...Option) Options {
	o := Options{
		workers:           DefaultWorkers,
		parallelThreshold: DefaultParallelThreshold,
		precision:         DefaultPrecision,
	}
	for _, set := range user {
		set(&o)
	}
	finalizeOptions(&o)

	return o
}

// discardLogger drops every record.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// finalizeOptions enforces derived invariants in exactly one place.
func finalizeOptions(o *Options) {
	if o.workers == 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	if o.logger == nil {
		o.logger = discardLogger
	}
}
