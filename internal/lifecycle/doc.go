// Package lifecycle analyzes the lifecycle contributors of a type hierarchy.
//
// Methods tagged with a lifecycle attribute contribute to one phase of an
// instance's life: construction, disposal or finalization. This package finds
// them and decides what has to be generated for each type, without rendering
// any code.
//
// Key capabilities:
//   - Discover: per-type contributor aggregates linked to their ancestors
//   - UnifyConstructor: merges constructor contributors into one Initialize entry point
//   - ClassifyDispose: matches existing disposal code against known shapes
//   - CheckShape: validates contributor signatures
package lifecycle
