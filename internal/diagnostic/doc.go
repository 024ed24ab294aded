// Package diagnostic provides structured errors, warnings and hints for the
// lifecycle generator.
//
// Diagnostics are data, never Go errors: the generator keeps going and the
// driver decides how to surface them (inline directives in the generated
// fragment, a separate report, or both).
//
// Key capabilities:
//   - Contributor shape violations (return type, parameters)
//   - Constructor chaining and parameter conflicts
//   - Dispose/finalizer pattern conflicts with hand-written code
//   - "did you mean" hints for misspelled lifecycle attributes
package diagnostic
