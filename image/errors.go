// SPDX-License-Identifier: MIT

package image

import (
	"errors"
	"fmt"
)

var (
	// ErrNilImage indicates a nil image, cube or matrix argument.
	ErrNilImage = errors.New("image: nil image")

	// ErrSizeMismatch indicates containers whose spatial sizes must agree.
	ErrSizeMismatch = errors.New("image: size mismatch")

	// ErrEmpty indicates an operation that needs at least one pixel.
	ErrEmpty = errors.New("image: empty image")
)

// imageErrorf wraps err with an operation tag.
func imageErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
