// SPDX-License-Identifier: MPL-2.0

package cmd

import "strconv"

// ExitError makes Execute exit with Code instead of 1. Commands that report a
// result through stdout and still need a failing status, like 'deps check'
// with violations, return one from RunE.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit status " + strconv.Itoa(e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }
