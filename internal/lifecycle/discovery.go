package lifecycle

import (
	"fmt"
	"iter"
	"strings"

	"lifecycle-generator/internal/diagnostic"
	"lifecycle-generator/internal/match"
	"lifecycle-generator/internal/model"
)

// maxAttributeTypoDistance bounds the edit distance for "did you mean" hints.
const maxAttributeTypoDistance = 2

// Index is the result of discovery: one TypeLifecycle per source type that
// has contributors, with ancestor links resolved.
type Index struct {
	Graph   *model.TypeGraph
	Options Options
	// Hints holds discovery diagnostics of types left out for having no
	// contributors (typically a misspelled attribute).
	Hints diagnostic.Diagnostics

	byType map[model.TypeID]*TypeLifecycle
	order  []*TypeLifecycle
}

// Lookup returns the lifecycle of a type, or nil if the type has no contributors.
func (x *Index) Lookup(id model.TypeID) *TypeLifecycle {
	return x.byType[id]
}

// All returns every lifecycle, sorted by type name.
func (x *Index) All() []*TypeLifecycle {
	return x.order
}

// Len returns the number of types with contributors.
func (x *Index) Len() int {
	return len(x.order)
}

// Discover scans every source type of the graph, tags contributor methods by
// attribute and links each lifecycle to its ancestors that have contributors.
// It fails only when the graph itself is inconsistent.
func Discover(graph *model.TypeGraph, opts Options) (*Index, error) {
	if err := graph.Validate(); err != nil {
		return nil, fmt.Errorf("discovery: %w", err)
	}

	idx := &Index{
		Graph:   graph,
		Options: opts,
		byType:  make(map[model.TypeID]*TypeLifecycle),
	}

	for _, t := range graph.Types() {
		if t.External {
			continue
		}

		lc := collect(t, opts.Attributes)
		if !lc.HasContributors() {
			idx.Hints.Merge(lc.Hints)
			continue
		}

		idx.byType[t.ID] = lc
		idx.order = append(idx.order, lc)
	}

	for _, lc := range idx.order {
		for base := range idx.bases(lc.Owner) {
			lc.Bases = append(lc.Bases, base)
		}
	}

	return idx, nil
}

// bases walks up from t to the root and yields the ancestors having
// contributors. Ancestors without any are skipped, not treated as the end of
// the chain.
func (x *Index) bases(t *model.TypeSymbol) iter.Seq[*TypeLifecycle] {
	return func(yield func(*TypeLifecycle) bool) {
		for ancestor := range x.Graph.Ancestors(t) {
			lc, ok := x.byType[ancestor.ID]
			if !ok {
				continue
			}

			if !yield(lc) {
				return
			}
		}
	}
}

func collect(t *model.TypeSymbol, attrs Attributes) *TypeLifecycle {
	lc := &TypeLifecycle{Owner: t}

	for _, m := range t.Methods {
		lc.Methods = append(lc.Methods, m)

		if m.Kind != model.MethodKindOrdinary {
			continue
		}

		roles := rolesOf(m, attrs)
		if len(roles) > 1 {
			lc.Hints.AddError(diagnostic.CodeMultipleRoles,
				fmt.Sprintf("%s is marked as a contributor of several lifecycle phases (%v); "+
					"only its first role (%s) is used. A method can take part in a single phase.",
					m.LocationText(), roles, roles[0]),
				t.ID.String(), m.Location)
		}

		if len(roles) == 0 {
			checkSuspiciousAttributes(lc, m, attrs)
			continue
		}

		switch roles[0] {
		case RoleConstructor:
			lc.Constructors = append(lc.Constructors, m)
		case RoleDispose:
			lc.Disposes = append(lc.Disposes, m)
		case RoleFinalizer:
			lc.Finalizers = append(lc.Finalizers, m)
		}
	}

	return lc
}

func rolesOf(m *model.MethodSymbol, attrs Attributes) []Role {
	var roles []Role

	for _, role := range []Role{RoleConstructor, RoleDispose, RoleFinalizer} {
		if name := attrs.For(role); name != "" && m.HasAttribute(name) {
			roles = append(roles, role)
		}
	}

	return roles
}

// checkSuspiciousAttributes warns about attributes that look like a
// misspelled lifecycle attribute, since such a method is silently ignored.
func checkSuspiciousAttributes(lc *TypeLifecycle, m *model.MethodSymbol, attrs Attributes) {
	candidates := []string{
		longAttributeName(attrs.Constructor),
		longAttributeName(attrs.Dispose),
		longAttributeName(attrs.Finalizer),
	}

	for _, attr := range m.Attributes {
		simple := match.SimpleName(attr)

		best, dist, ok := match.Closest(simple, candidates, maxAttributeTypoDistance)
		if long, d, found := match.Closest(longAttributeName(simple), candidates, maxAttributeTypoDistance); found && (!ok || d < dist) {
			best, ok = long, true
		}

		if !ok {
			continue
		}

		lc.Hints.AddWarning(diagnostic.CodeSuspiciousAttribute,
			fmt.Sprintf("The attribute '%s' on %s looks like '%s' but is not a lifecycle attribute; "+
				"the method will not take part in the generated lifecycle.", attr, m.LocationText(), best),
			lc.Owner.ID.String(), m.Location, best)
	}
}

// longAttributeName returns the simple name with the "Attribute" suffix.
func longAttributeName(name string) string {
	simple := match.SimpleName(name)
	if strings.HasSuffix(simple, "Attribute") {
		return simple
	}

	return simple + "Attribute"
}
