// SPDX-License-Identifier: MIT
// Package ndarray: sentinel error set.
// This file defines ONLY package-level sentinel errors. Operations return
// these sentinels wrapped with an operation tag (ndErrorf) and tests check
// them via errors.Is. User-triggered conditions never panic; panics are
// reserved for nonsensical Option constructor arguments.

package ndarray

import (
	"errors"
	"fmt"
)

// Every message is prefixed with "ndarray: ..." for grep-ability.
//
// ERROR PRIORITY (checked in this order by every operation):
// nil -> rank -> shape/bounds -> element kind -> format.

var (
	// ErrNilArray indicates that a nil *Array was passed where data is required.
	ErrNilArray = errors.New("ndarray: nil array")

	// ErrBadShape indicates an invalid shape or per-axis parameter
	// (negative extent, zero-extent kernel, non-positive regrid scale).
	ErrBadShape = errors.New("ndarray: invalid shape")

	// ErrRankMismatch indicates that index vectors, masks or operands do not
	// have the rank the operation requires.
	ErrRankMismatch = errors.New("ndarray: rank mismatch")

	// ErrDimensionMismatch indicates operands whose extents must agree but do not,
	// or a flat buffer whose length does not match the requested shape.
	ErrDimensionMismatch = errors.New("ndarray: dimension mismatch")

	// ErrOutOfRange indicates an index or index range outside the array bounds.
	ErrOutOfRange = errors.New("ndarray: index out of range")

	// ErrTypeMismatch indicates a value or operand whose element kind does not
	// match the array's element kind.
	ErrTypeMismatch = errors.New("ndarray: element type mismatch")

	// ErrRagged indicates a nested structure whose siblings differ in extent.
	ErrRagged = errors.New("ndarray: ragged nested structure")

	// ErrFormat indicates a malformed textual array literal.
	ErrFormat = errors.New("ndarray: malformed array literal")
)

// ndErrorf wraps err with an operation tag, preserving it for errors.Is.
// Use only when err != nil.
func ndErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
