package main

import (
	"errors"

	relerr "github.com/provide-io/relcfg/pkg/errors"
)

// Exit codes for different error types
const (
	ExitOK            = 0
	ExitUsage         = 1
	ExitPanic         = 101
	ExitConfigError   = 102
	ExitInputNotFound = 103
	ExitInvalidInput  = 104
	ExitVerifyFailed  = 105
	ExitIOError       = 106
)

// exitError carries the exit code chosen for a command failure. reported is
// set when the console has already explained the failure to the operator.
type exitError struct {
	code     int
	err      error
	reported bool
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// withExitCode classifies err. Errors that are not one of the known kinds
// are treated as I/O failures.
func withExitCode(err error) error {
	if err == nil {
		return nil
	}
	code := exitCode(err)
	return &exitError{code: code, err: err, reported: code != ExitIOError}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, relerr.ErrInvalidKey):
		return ExitConfigError
	case errors.Is(err, relerr.ErrInputNotFound):
		return ExitInputNotFound
	case errors.Is(err, relerr.ErrInvalidJSON):
		return ExitInvalidInput
	case relerr.IsVerification(err):
		return ExitVerifyFailed
	default:
		return ExitIOError
	}
}

// configError marks err as a configuration problem regardless of its kind.
func configError(err error) error {
	return &exitError{code: ExitConfigError, err: err}
}
