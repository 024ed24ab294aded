package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifecycle-generator/internal/model"
)

func TestDiagnostics_AddBySeverity(t *testing.T) {
	var d Diagnostics

	d.AddError(CodeParameterTypeMismatch, "type mismatch", "App.A", model.Location{File: "A.cs", Line: 3})
	d.AddWarning(CodeSuspiciousAttribute, "did you mean", "App.A", model.Location{}, "Uno.DisposeMethod")
	d.AddInfo(CodeInternal, "note", "", model.Location{})

	assert.Len(t, d.Errors, 1)
	assert.Len(t, d.Warnings, 1)
	assert.Len(t, d.Infos, 1)
	assert.Equal(t, 3, d.Len())
	assert.True(t, d.HasErrors())
	assert.False(t, d.IsValid())
	assert.Equal(t, []string{"Uno.DisposeMethod"}, d.Warnings[0].Suggestions)

	err := d.Error()
	require.Error(t, err)
	assert.Equal(t, "A.cs(3) [App.A]: error LC0102: type mismatch", err.Error())
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics
	a.AddError(CodeHandWrittenDispose, "one", "", model.Location{})
	b.AddError(CodeHandWrittenFinalizer, "two", "", model.Location{})
	b.AddWarning(CodeSuspiciousAttribute, "three", "", model.Location{})

	a.Merge(b)
	assert.Len(t, a.Errors, 2)
	assert.Len(t, a.Warnings, 1)
	assert.Equal(t, []string{"one", "two", "three"}, messages(a.All()))
}

func TestDiagnostics_Sorted(t *testing.T) {
	var d Diagnostics
	d.AddWarning(CodeSuspiciousAttribute, "b-warn", "", model.Location{File: "b.cs", Line: 1})
	d.AddError(CodeHandWrittenDispose, "a-10", "", model.Location{File: "a.cs", Line: 10})
	d.AddError(CodeContributorReturnType, "a-2", "", model.Location{File: "a.cs", Line: 2})
	d.AddWarning(CodeSuspiciousAttribute, "a-2-warn", "", model.Location{File: "a.cs", Line: 2})

	assert.Equal(t, []string{"a-2", "a-2-warn", "a-10", "b-warn"}, messages(d.Sorted()))
}

func TestDiagnostics_PromoteWarnings(t *testing.T) {
	var d Diagnostics
	d.AddWarning(CodeSuspiciousAttribute, "w", "", model.Location{})
	require.True(t, d.IsValid())

	d.PromoteWarnings()
	assert.Empty(t, d.Warnings)
	require.Len(t, d.Errors, 1)
	assert.Equal(t, DiagnosticError, d.Errors[0].Severity)
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Severity: DiagnosticWarning, Message: "plain"}
	assert.Equal(t, "plain", d.String())

	d.Code = CodeSuspiciousAttribute
	d.Symbol = "Close"
	assert.Equal(t, "Close: warning LC0301: plain", d.String())

	assert.Equal(t, "unknown", DiagnosticSeverity(42).String())
}

func messages(ds []Diagnostic) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Message)
	}

	return out
}
