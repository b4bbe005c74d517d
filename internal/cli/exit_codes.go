package cli

import (
	"errors"
	"fmt"

	clierrors "github.com/ariel-frischer/commitwit/internal/errors"
)

// Exit codes for the commitwit CLI.
// These codes support scripting and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = clierrors.ExitSuccess

	// ExitValidationFailed indicates at least one commit message broke a rule
	ExitValidationFailed = clierrors.ExitValidationFailed

	// ExitRuntime indicates an unexpected failure
	ExitRuntime = clierrors.ExitRuntime

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = clierrors.ExitInvalidArguments

	// ExitMissingPrereqs indicates the working directory is not a git repository
	ExitMissingPrereqs = clierrors.ExitMissingPrereqs

	// ExitRepository indicates a revision could not be resolved
	ExitRepository = clierrors.ExitRepository

	// ExitWriteFailed indicates the changelog could not be delivered
	ExitWriteFailed = clierrors.ExitWriteFailed

	// ExitConfiguration indicates an invalid configuration
	ExitConfiguration = clierrors.ExitConfiguration
)

// ExitError carries a process exit code for an error that was already
// reported to the user.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitError returns an ExitError for code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode returns the exit code for err: 0 for nil, the carried code for
// an ExitError, the category code for a CLIError, and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		return cliErr.ExitCode()
	}
	return 1
}
