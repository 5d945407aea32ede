package exitcode

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/Interstellar-code/taskmaster/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// ValidationError indicates the tasks file or dependency graph failed validation
	ValidationError = 3

	// IOError indicates a file could not be read, written, or parsed
	IOError = 4

	// Interrupted indicates the run was cancelled by the user
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}
	Exit(DetermineExitCode(err))
}

// DetermineExitCode maps an error to an exit code using its engine error
// code category when available.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	var engineErr *errors.EngineError
	if stderrors.As(err, &engineErr) {
		code := string(engineErr.Code)
		switch {
		case strings.HasPrefix(code, "TASK-"), strings.HasPrefix(code, "GRAPH-"):
			return ValidationError
		case strings.HasPrefix(code, "IO-"):
			return IOError
		case strings.HasPrefix(code, "SCORE-"):
			return UsageError
		}
		return GeneralError
	}

	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Invalid usage or configuration"
	case ValidationError:
		return "Tasks file or dependency graph validation failed"
	case IOError:
		return "File read/write error"
	case Interrupted:
		return "Cancelled by user"
	default:
		return "Unknown error"
	}
}
