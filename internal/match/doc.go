// Package match provides fuzzy name matching for "did you mean" hints.
//
// Key functions:
//   - NormalizeIdent: case-folds identifiers and strips separators
//   - Levenshtein: computes edit distance between strings
//   - Closest: picks the nearest candidate within a distance budget
package match
