// SPDX-License-Identifier: MIT

package interp

import "errors"

var (
	// ErrTooFewPoints indicates fewer than two knots were supplied.
	ErrTooFewPoints = errors.New("interp: at least two points are required")

	// ErrLengthMismatch indicates the knot slices differ in length.
	ErrLengthMismatch = errors.New("interp: input slices must have equal length")

	// ErrNotIncreasing indicates the abscissae are not strictly increasing.
	ErrNotIncreasing = errors.New("interp: x values must be strictly increasing")

	// ErrNonFinite indicates a NaN or infinite knot value.
	ErrNonFinite = errors.New("interp: knot values must be finite")

	// ErrNoFuncs indicates an empty lower envelope.
	ErrNoFuncs = errors.New("interp: lower envelope needs at least one function")
)
