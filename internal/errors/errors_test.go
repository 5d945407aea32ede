package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestEngineErrorFormat(t *testing.T) {
	err := New(ErrCodeGraphUnknownDependency, "item 2 depends on unknown item 9").
		WithSuggestion("check the tasks file")

	msg := err.Error()
	if !strings.Contains(msg, "[GRAPH-001]") {
		t.Errorf("Error() = %q, want error code prefix", msg)
	}
	if !strings.Contains(msg, "check the tasks file") {
		t.Errorf("Error() = %q, want suggestion included", msg)
	}
}

func TestEngineErrorUnwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeExpandDecomposition, "decomposition failed for item 3", cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() = %q, want cause included", err.Error())
	}
}

func TestConstructorCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *EngineError
		code ErrorCode
	}{
		{"unknown dependency", NewUnknownDependencyError("2", "9"), ErrCodeGraphUnknownDependency},
		{"malformed id", NewMalformedIDError("5.1", "5.1.2", nil), ErrCodeGraphMalformedID},
		{"tasks file missing", NewTasksFileNotFoundError("tasks.json"), ErrCodeFileNotFound},
		{"analysis failure", NewAnalysisError(stderrors.New("timeout")), ErrCodeExpandAnalysis},
		{"decomposition failure", NewDecompositionError("3", stderrors.New("boom")), ErrCodeExpandDecomposition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.code)
			}
		})
	}
}
