package model

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
)

var (
	// ErrUnknownBase is returned when a type names a base that is not in the graph.
	ErrUnknownBase = errors.New("unknown base type")
	// ErrBaseCycle is returned when a base chain loops back on itself.
	ErrBaseCycle = errors.New("cycle in base type chain")
	// ErrDuplicateType is returned when two declarations share a TypeID.
	ErrDuplicateType = errors.New("duplicate type")
)

// TypeGraph holds every type known to the symbol model: the ones declared in
// the source module and the external ones they derive from.
type TypeGraph struct {
	types map[TypeID]*TypeSymbol
	order []TypeID
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{types: make(map[TypeID]*TypeSymbol)}
}

// Add registers a type and links its members back to it.
func (g *TypeGraph) Add(t *TypeSymbol) error {
	if t == nil || t.ID.IsZero() {
		return errors.New("type without a name")
	}

	if _, ok := g.types[t.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateType, t.ID)
	}

	for _, m := range t.Methods {
		m.Owner = t.ID
	}

	for _, c := range t.Constructors {
		c.Owner = t.ID
	}

	g.types[t.ID] = t
	g.order = append(g.order, t.ID)

	return nil
}

// MustAdd is Add for test fixtures and literals; it panics on error.
func (g *TypeGraph) MustAdd(types ...*TypeSymbol) *TypeGraph {
	for _, t := range types {
		if err := g.Add(t); err != nil {
			panic(err)
		}
	}

	return g
}

// Lookup returns the type with the given id, or nil.
func (g *TypeGraph) Lookup(id TypeID) *TypeSymbol {
	return g.types[id]
}

// Len returns the number of types in the graph.
func (g *TypeGraph) Len() int {
	return len(g.types)
}

// Types returns every type sorted by full name.
func (g *TypeGraph) Types() []*TypeSymbol {
	ids := slices.Clone(g.order)
	slices.SortFunc(ids, func(a, b TypeID) int { return strings.Compare(a.String(), b.String()) })

	out := make([]*TypeSymbol, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.types[id])
	}

	return out
}

// Base returns the direct base of t, or nil when t derives from the root.
// A base that is missing from the graph also yields nil; Validate reports it.
func (g *TypeGraph) Base(t *TypeSymbol) *TypeSymbol {
	if t == nil || t.Base.IsRoot() {
		return nil
	}

	return g.types[t.Base]
}

// Ancestors lazily walks the base chain of t, nearest first, stopping at the
// universal root. The walk stops early on a cycle; Validate reports cycles.
func (g *TypeGraph) Ancestors(t *TypeSymbol) iter.Seq[*TypeSymbol] {
	return func(yield func(*TypeSymbol) bool) {
		seen := map[TypeID]bool{}
		if t != nil {
			seen[t.ID] = true
		}

		for b := g.Base(t); b != nil; b = g.Base(b) {
			if seen[b.ID] {
				return
			}

			seen[b.ID] = true

			if !yield(b) {
				return
			}
		}
	}
}

// SelfAndAncestors walks t and then its ancestors.
func (g *TypeGraph) SelfAndAncestors(t *TypeSymbol) iter.Seq[*TypeSymbol] {
	return func(yield func(*TypeSymbol) bool) {
		if t == nil || !yield(t) {
			return
		}

		for b := range g.Ancestors(t) {
			if !yield(b) {
				return
			}
		}
	}
}

// Validate checks that every base reference resolves and that no base chain loops.
func (g *TypeGraph) Validate() error {
	var errs []error

	for _, t := range g.Types() {
		if !t.Base.IsRoot() && g.types[t.Base] == nil {
			errs = append(errs, fmt.Errorf("%w: %s derives from %s", ErrUnknownBase, t.ID, t.Base))
			continue
		}

		seen := map[TypeID]bool{t.ID: true}
		for b := g.Base(t); b != nil; b = g.Base(b) {
			if seen[b.ID] {
				errs = append(errs, fmt.Errorf("%w: %s", ErrBaseCycle, t.ID))
				break
			}

			seen[b.ID] = true
		}
	}

	return errors.Join(errs...)
}
