// SPDX-License-Identifier: MIT

package distribution

import "errors"

var (
	// ErrEmpty indicates a distribution with no outcomes or no variables.
	ErrEmpty = errors.New("distribution: at least one outcome and one variable required")

	// ErrShape indicates atom columns whose length differs from the pmf.
	ErrShape = errors.New("distribution: atom columns must match pmf length")

	// ErrBadPmf indicates negative, non-finite, or non-normalized probabilities.
	ErrBadPmf = errors.New("distribution: probabilities must be non-negative and sum to 1")

	// ErrBadNames indicates a name list of the wrong length or with duplicates.
	ErrBadNames = errors.New("distribution: names must be unique, one per variable")

	// ErrUnknownVariable indicates a lookup of a name that is not present.
	ErrUnknownVariable = errors.New("distribution: unknown variable")

	// ErrNotUnivariate indicates an operation that needs a single-variable distribution.
	ErrNotUnivariate = errors.New("distribution: univariate distribution required")

	// ErrBadParameter indicates an invalid constructor parameter.
	ErrBadParameter = errors.New("distribution: invalid parameter")
)
