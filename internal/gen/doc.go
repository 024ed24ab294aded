// Package gen synthesizes the lifecycle fragments of a type hierarchy.
//
// Generation approach uses text/template for member bodies and an indenting
// writer for the enclosing namespace and partial class, producing one
// deterministic fragment per type.
//
// Synthesized members:
//   - Initialize entry point with an atomic run-once guard
//   - Parameterless constructor when construction needs no argument
//   - Dispose pattern (fresh, override of an existing pattern, simple override)
//   - Disposable adapter registered through the extension capability
//   - Finalizer running the dispose hook, then the finalizer methods
//
// Diagnostics are kept on each Fragment and, depending on DiagnosticsMode,
// embedded as #error/#warning directives.
package gen
