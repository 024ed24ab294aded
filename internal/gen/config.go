package gen

import (
	"fmt"
	"runtime"
	"strings"

	"lifecycle-generator/internal/common"
)

// DiagnosticsMode tells where diagnostics are surfaced.
type DiagnosticsMode int

const (
	// DiagnosticsInline embeds #error/#warning directives in the fragments.
	DiagnosticsInline DiagnosticsMode = iota
	// DiagnosticsReport leaves fragments clean; the driver prints a report.
	DiagnosticsReport
	// DiagnosticsBoth does both.
	DiagnosticsBoth
)

// String returns the mode name as used in configuration files.
func (m DiagnosticsMode) String() string {
	switch m {
	case DiagnosticsInline:
		return "inline"
	case DiagnosticsReport:
		return "report"
	case DiagnosticsBoth:
		return "both"
	default:
		return common.UnknownStr
	}
}

// Inline reports whether diagnostics are embedded in fragments.
func (m DiagnosticsMode) Inline() bool {
	return m == DiagnosticsInline || m == DiagnosticsBoth
}

// Report reports whether the driver should print diagnostics.
func (m DiagnosticsMode) Report() bool {
	return m == DiagnosticsReport || m == DiagnosticsBoth
}

// ParseDiagnosticsMode parses "inline", "report" or "both".
func ParseDiagnosticsMode(s string) (DiagnosticsMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "inline":
		return DiagnosticsInline, nil
	case "report":
		return DiagnosticsReport, nil
	case "both":
		return DiagnosticsBoth, nil
	default:
		return DiagnosticsInline, fmt.Errorf("unknown diagnostics mode %q (want inline, report or both)", s)
	}
}

// Config holds configuration for fragment generation.
type Config struct {
	// Jobs bounds the number of types synthesized concurrently.
	Jobs int
	// Diagnostics selects how diagnostics are surfaced.
	Diagnostics DiagnosticsMode
}

// DefaultConfig returns the default generator configuration.
func DefaultConfig() Config {
	return Config{
		Jobs:        runtime.GOMAXPROCS(0),
		Diagnostics: DiagnosticsInline,
	}
}
