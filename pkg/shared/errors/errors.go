package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks input that is not text and must be rejected before analysis.
	ErrInvalidInput = errors.New("invalid input: not a text document")
	// ErrUnsupportedOption marks an enum-valued option outside its allowed set.
	ErrUnsupportedOption = errors.New("unsupported option")
	// ErrProviderUnavailable is returned by remote completion providers that are not configured.
	ErrProviderUnavailable = errors.New("completion provider unavailable")
)

// NewUnsupportedOptionError reports which option got which value and what it accepts.
func NewUnsupportedOptionError(option, value string, allowed []string) error {
	return fmt.Errorf("%w: %s %q (allowed: %v)", ErrUnsupportedOption, option, value, allowed)
}

// CommandError represents an error that occurred during command execution, carrying an exit code.
type CommandError struct {
	ExitCode    int
	CommonError string
	Err         error
}

// Error implements the error interface, returning the message from the common error.
func (e *CommandError) Error() string {
	return e.CommonError
}

// Unwrap exposes the underlying error to errors.Is and errors.As.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError instance wrapping err.
func NewCommandError(err error, code int) *CommandError {
	return &CommandError{
		ExitCode:    code,
		CommonError: err.Error(),
		Err:         err,
	}
}
