package gen

import (
	"bytes"
	"strings"
)

// indentUnit is one level of indentation in generated code.
const indentUnit = "    "

// codeWriter writes lines of C#-shaped code at a tracked block depth.
type codeWriter struct {
	buf   bytes.Buffer
	depth int
}

// Line writes one line at the current depth. Empty lines carry no indentation.
func (w *codeWriter) Line(s string) {
	if strings.TrimSpace(s) != "" {
		w.buf.WriteString(strings.Repeat(indentUnit, w.depth))
		w.buf.WriteString(s)
	}

	w.buf.WriteByte('\n')
}

// Text writes a multi-line text, each line at the current depth.
func (w *codeWriter) Text(text string) {
	for _, line := range strings.Split(text, "\n") {
		w.Line(line)
	}
}

// Block writes header, then body inside braces one level deeper.
func (w *codeWriter) Block(header string, body func()) {
	w.Line(header)
	w.Line("{")
	w.depth++
	body()
	w.depth--
	w.Line("}")
}

// Bytes returns the written code.
func (w *codeWriter) Bytes() []byte {
	return w.buf.Bytes()
}

// indent prefixes every non-blank line of text with depth indentation units.
func indent(depth int, text string) string {
	prefix := strings.Repeat(indentUnit, depth)

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}

		lines[i] = prefix + line
	}

	return strings.Join(lines, "\n")
}
