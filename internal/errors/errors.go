package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Task file errors (TASK-001 to TASK-099)
	ErrCodeTaskNotFound    ErrorCode = "TASK-001"
	ErrCodeTaskInvalid     ErrorCode = "TASK-002"
	ErrCodeTaskDuplicateID ErrorCode = "TASK-003"
	ErrCodeTaskBadStatus   ErrorCode = "TASK-004"

	// Dependency graph errors (GRAPH-001 to GRAPH-099)
	ErrCodeGraphUnknownDependency ErrorCode = "GRAPH-001"
	ErrCodeGraphMalformedID       ErrorCode = "GRAPH-002"
	ErrCodeGraphBadScope          ErrorCode = "GRAPH-003"

	// Complexity scoring errors (SCORE-001 to SCORE-099)
	ErrCodeScoreConfigInvalid ErrorCode = "SCORE-001"
	ErrCodeScoreConfigRead    ErrorCode = "SCORE-002"

	// Expansion errors (EXPAND-001 to EXPAND-099)
	ErrCodeExpandAnalysis      ErrorCode = "EXPAND-001"
	ErrCodeExpandDecomposition ErrorCode = "EXPAND-002"
	ErrCodeExpandCancelled     ErrorCode = "EXPAND-003"

	// Cascade errors (CASCADE-001 to CASCADE-099)
	ErrCodeCascadeUnknownRequirement ErrorCode = "CASCADE-001"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
	ErrCodeFileUnmarshal   ErrorCode = "IO-004"
	ErrCodeFileMarshal     ErrorCode = "IO-005"
)

// EngineError represents an enhanced error with code, suggestions, and documentation
type EngineError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *EngineError) Error() string {
	var b strings.Builder

	// Error code and message
	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	// Add cause if present
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	// Add suggestions
	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	// Add documentation link
	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *EngineError) Unwrap() error {
	return e.Cause
}

// New creates a new EngineError
func New(code ErrorCode, message string) *EngineError {
	return &EngineError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new EngineError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *EngineError {
	return &EngineError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *EngineError) WithSuggestion(suggestion string) *EngineError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *EngineError) WithSuggestions(suggestions ...string) *EngineError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *EngineError) WithDocs(url string) *EngineError {
	e.DocsURL = url
	return e
}

// Common error constructors for frequently used errors

// NewUnknownDependencyError reports a dependency reference that resolves to
// no known work item
func NewUnknownDependencyError(itemID, depID string) *EngineError {
	return New(ErrCodeGraphUnknownDependency,
		fmt.Sprintf("item %s depends on unknown item %s", itemID, depID)).
		WithSuggestion("Run 'taskmaster list' to see all known item ids").
		WithSuggestion("Remove or correct the dependency reference in the tasks file")
}

// NewMalformedIDError reports a dependency reference that cannot be parsed
func NewMalformedIDError(itemID, raw string, cause error) *EngineError {
	return Wrap(ErrCodeGraphMalformedID,
		fmt.Sprintf("item %s has a malformed dependency reference %q", itemID, raw), cause).
		WithSuggestion("Dependency ids must be a task number or a dotted subtask id like 5.1")
}

// NewTasksFileNotFoundError creates a tasks file not found error
func NewTasksFileNotFoundError(path string) *EngineError {
	return New(ErrCodeFileNotFound, fmt.Sprintf("tasks file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Pass --file to point at a different tasks file")
}

// NewScoreConfigError creates a scoring configuration error
func NewScoreConfigError(details string, cause error) *EngineError {
	return Wrap(ErrCodeScoreConfigInvalid, fmt.Sprintf("invalid scoring configuration: %s", details), cause).
		WithSuggestion("Component weights must sum to 100").
		WithSuggestion("Keyword tiers need at least one term each")
}

// NewAnalysisError wraps a failed complexity analysis call
func NewAnalysisError(cause error) *EngineError {
	return Wrap(ErrCodeExpandAnalysis, "complexity analysis failed", cause).
		WithSuggestion("The run continued with the heuristic scorer; re-run analysis later for richer results")
}

// NewDecompositionError wraps a failed per-item decomposition call
func NewDecompositionError(itemID string, cause error) *EngineError {
	return Wrap(ErrCodeExpandDecomposition, fmt.Sprintf("decomposition failed for item %s", itemID), cause).
		WithSuggestion("Retry the failed item with 'taskmaster expand --id " + itemID + "'")
}
