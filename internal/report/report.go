// Package report prints diagnostics for humans.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"golang.org/x/term"

	"lifecycle-generator/internal/diagnostic"
)

// Options configures a Printer.
type Options struct {
	Color bool
	// MaxDiagnostics caps the number of printed diagnostics; 0 prints all.
	MaxDiagnostics int
}

// Summary counts what a Print call saw.
type Summary struct {
	Errors   int
	Warnings int
	Infos    int
	Shown    int
}

// Failed reports whether the run should fail.
func (s Summary) Failed(warningsAsErrors bool) bool {
	return s.Errors > 0 || (warningsAsErrors && s.Warnings > 0)
}

// Printer writes diagnostics as "location: severity CODE: message" lines,
// each followed by its suggestions.
type Printer struct {
	w     io.Writer
	limit uint16

	errorColor   *color.Color
	warningColor *color.Color
	infoColor    *color.Color
	locColor     *color.Color
	hintColor    *color.Color
}

// NewPrinter creates a Printer. MaxDiagnostics must fit in 16 bits.
func NewPrinter(w io.Writer, opts Options) (*Printer, error) {
	limit, err := safecast.Conv[uint16](opts.MaxDiagnostics)
	if err != nil {
		return nil, fmt.Errorf("max diagnostics %d: %w", opts.MaxDiagnostics, err)
	}

	p := &Printer{
		w:            w,
		limit:        limit,
		errorColor:   color.New(color.FgRed, color.Bold),
		warningColor: color.New(color.FgYellow, color.Bold),
		infoColor:    color.New(color.FgCyan),
		locColor:     color.New(color.Bold),
		hintColor:    color.New(color.FgGreen),
	}

	for _, c := range []*color.Color{p.errorColor, p.warningColor, p.infoColor, p.locColor, p.hintColor} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p, nil
}

// Print writes the diagnostics ordered by location, then a summary line.
func (p *Printer) Print(diags diagnostic.Diagnostics) (Summary, error) {
	s := Summary{
		Errors:   len(diags.Errors),
		Warnings: len(diags.Warnings),
		Infos:    len(diags.Infos),
	}

	var b strings.Builder

	all := diags.Sorted()
	for _, d := range all {
		if p.limit > 0 && s.Shown == int(p.limit) {
			fmt.Fprintf(&b, "... and %d more\n", len(all)-s.Shown)
			break
		}

		p.diagnostic(&b, d)
		s.Shown++
	}

	if len(all) > 0 {
		b.WriteString(summaryLine(s) + "\n")
	}

	if _, err := io.WriteString(p.w, b.String()); err != nil {
		return s, fmt.Errorf("writing report: %w", err)
	}

	return s, nil
}

func (p *Printer) diagnostic(b *strings.Builder, d diagnostic.Diagnostic) {
	where := d.Location.String()
	if where == "" {
		where = d.TypeName
	}

	if where != "" {
		b.WriteString(p.locColor.Sprint(where) + ": ")
	}

	b.WriteString(p.severityColor(d.Severity).Sprintf("%s %s", d.Severity, d.Code))
	b.WriteString(": " + d.Message + "\n")

	for _, s := range d.Suggestions {
		b.WriteString("    " + p.hintColor.Sprint("hint") + ": " + s + "\n")
	}
}

func (p *Printer) severityColor(s diagnostic.DiagnosticSeverity) *color.Color {
	switch s {
	case diagnostic.DiagnosticError:
		return p.errorColor
	case diagnostic.DiagnosticWarning:
		return p.warningColor
	default:
		return p.infoColor
	}
}

func summaryLine(s Summary) string {
	return fmt.Sprintf("%s, %s", plural(s.Errors, "error"), plural(s.Warnings, "warning"))
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}

	return fmt.Sprintf("%d %ss", n, word)
}

// ColorEnabled resolves a --color value ("auto", "on" or "off") for f.
func ColorEnabled(mode string, f *os.File) (bool, error) {
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return f != nil && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("unknown color mode %q (want auto, on or off)", mode)
	}
}
