// Package exitcode holds the process exit codes shared by every ark command.
package exitcode

import (
	"errors"
	"strconv"
)

const (
	// Success is the default exit code when a command completes.
	Success = 0
	// CliError is returned for invalid usage and for failed operations alike.
	CliError = 1
)

// ExitError carries an exit code out of a command handler so the root
// command can terminate the process with it.
type ExitError struct {
	Code    int
	Message string

	// Silent is set when the failure was already reported to the user.
	Silent bool
}

func (e *ExitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "exit status " + strconv.Itoa(e.Code)
}

// Silent returns an ExitError for a failure that has already been reported.
func Silent(code int) error {
	return &ExitError{Code: code, Silent: true}
}

// Code extracts the exit code for err. A nil error maps to Success and any
// error that is not an ExitError maps to CliError.
func Code(err error) int {
	if err == nil {
		return Success
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return CliError
}
