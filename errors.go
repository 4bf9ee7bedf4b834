package run

import (
	stderrors "errors"
	"fmt"
	"os"
	osexec "os/exec"

	"github.com/jmgilman/go/errors"
)

// ExitError represents a command that ran to completion but exited non-zero.
// It carries the exit code, the command that was run, and the captured output.
type ExitError struct {
	// Args is the full argument list that was executed.
	Args []string

	// ExitCode is the exit code returned by the command.
	ExitCode int

	// Stdout is the decoded, trimmed standard output.
	Stdout string

	// Stderr is the decoded, trimmed standard error.
	Stderr string

	// Combined is the trimmed stderr concatenated with the trimmed stdout.
	Combined string

	// Err is the underlying error from the execution.
	Err error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("command %v failed with exit code %d", e.Args, e.ExitCode)
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// classifySpawnError maps an operating-system spawn fault to a platform
// error code while preserving the original error chain. Non-zero exits never
// reach this path; they surface as *ExitError instead.
func classifySpawnError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case stderrors.Is(err, osexec.ErrNotFound):
		return errors.Wrap(err, errors.CodeNotFound, "executable not found")
	case stderrors.Is(err, os.ErrPermission):
		return errors.Wrap(err, errors.CodeForbidden, "permission denied")
	default:
		return errors.Wrap(err, errors.CodeInternal, "process could not be spawned")
	}
}

// IsTimeout reports whether err represents an elapsed execution timeout.
func IsTimeout(err error) bool {
	return errors.GetCode(err) == errors.CodeTimeout
}

// IsInvalidInput reports whether err represents rejected caller input, such
// as an empty command or an already-reaped background handle.
func IsInvalidInput(err error) bool {
	return errors.GetCode(err) == errors.CodeInvalidInput
}
