package diagnostic

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"lifecycle-generator/internal/common"
	"lifecycle-generator/internal/model"
)

// Diagnostics holds all diagnostic information produced for one or more types.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code Code
	// Message is the human-readable description.
	Message string
	// TypeName identifies which type this relates to (if any).
	TypeName string
	// Symbol identifies which member this relates to (if any).
	Symbol string
	// Location is the most relevant declaration site (if known).
	Location model.Location
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Add appends a diagnostic to the list matching its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code Code, message, typeName string, loc model.Location, suggestions ...string) {
	d.Add(Diagnostic{
		Severity:    DiagnosticError,
		Code:        code,
		Message:     message,
		TypeName:    typeName,
		Location:    loc,
		Suggestions: suggestions,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code Code, message, typeName string, loc model.Location, suggestions ...string) {
	d.Add(Diagnostic{
		Severity:    DiagnosticWarning,
		Code:        code,
		Message:     message,
		TypeName:    typeName,
		Location:    loc,
		Suggestions: suggestions,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code Code, message, typeName string, loc model.Location) {
	d.Add(Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		TypeName: typeName,
		Location: loc,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Len returns the total number of diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// All returns every diagnostic, most severe first, in insertion order within a severity.
func (d *Diagnostics) All() []Diagnostic {
	return slices.Concat(d.Errors, d.Warnings, d.Infos)
}

// Sorted returns every diagnostic ordered by location, then severity (most
// severe first), then code, for stable report output.
func (d *Diagnostics) Sorted() []Diagnostic {
	all := d.All()
	slices.SortStableFunc(all, func(a, b Diagnostic) int {
		if c := strings.Compare(a.Location.File, b.Location.File); c != 0 {
			return c
		}

		if a.Location.Line != b.Location.Line {
			return a.Location.Line - b.Location.Line
		}

		if a.Severity != b.Severity {
			return int(b.Severity) - int(a.Severity)
		}

		return strings.Compare(string(a.Code), string(b.Code))
	})

	return all
}

// PromoteWarnings turns every warning into an error.
func (d *Diagnostics) PromoteWarnings() {
	for _, w := range d.Warnings {
		w.Severity = DiagnosticError
		d.Errors = append(d.Errors, w)
	}

	d.Warnings = nil
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if loc := d.Location.String(); loc != "" {
		prefix = append(prefix, loc)
	}

	if d.TypeName != "" {
		prefix = append(prefix, "["+d.TypeName+"]")
	}

	if d.Symbol != "" {
		prefix = append(prefix, d.Symbol)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("%s %s: %s", d.Severity, d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
