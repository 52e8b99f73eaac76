// SPDX-License-Identifier: MIT

package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrBadParam indicates an invalid stage parameter.
	ErrBadParam = errors.New("solver: invalid parameter")

	// ErrMeanOne indicates a shock whose discrete mean is not one.
	ErrMeanOne = errors.New("solver: shock distribution must have mean one")

	// ErrPseudoTerminal indicates a bare terminal successor; call Enhance first.
	ErrPseudoTerminal = errors.New("solver: successor is a bare terminal stage; enhance it first")

	// ErrNotInitialized indicates a successor record that was never solved.
	ErrNotInitialized = errors.New("solver: successor stage is not initialized")

	// ErrNoValueLevel indicates VFuncBool with a successor lacking value levels.
	ErrNoValueLevel = errors.New("solver: successor value function has no level")

	// ErrNumerical indicates a non-finite or non-monotone intermediate result.
	ErrNumerical = errors.New("solver: numerical failure")
)

// StageError attaches the stage index and offending parameter to a failure.
type StageError struct {
	Stage int    // stage index, -1 when unknown
	Param string // parameter or step name, may be empty
	Err   error
}

// Error implements error.
func (e *StageError) Error() string {
	switch {
	case e.Stage >= 0 && e.Param != "":
		return fmt.Sprintf("stage %d: %s: %v", e.Stage, e.Param, e.Err)
	case e.Stage >= 0:
		return fmt.Sprintf("stage %d: %v", e.Stage, e.Err)
	case e.Param != "":
		return fmt.Sprintf("%s: %v", e.Param, e.Err)
	default:
		return e.Err.Error()
	}
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error { return e.Err }

func stageErr(stage int, param string, err error) error {
	var se *StageError
	if errors.As(err, &se) {
		if se.Stage >= 0 || stage < 0 {
			return err
		}
		return &StageError{Stage: stage, Param: se.Param, Err: se.Err}
	}

	return &StageError{Stage: stage, Param: param, Err: err}
}
