package lifecycle

import (
	"fmt"
	"slices"
	"strings"

	"lifecycle-generator/internal/common"
	"lifecycle-generator/internal/diagnostic"
	"lifecycle-generator/internal/model"
)

// InitializeMethodName is the merged constructor entry point.
const InitializeMethodName = "Initialize"

// ParameterRef is one occurrence of a parameter on a constructor contributor.
type ParameterRef struct {
	Method    *model.MethodSymbol
	Parameter model.Parameter
}

// UnifiedParameter is the merge of every constructor-contributor parameter
// sharing a name on one type.
type UnifiedParameter struct {
	Name string
	// Type is the shared type text; empty when TypeMismatch.
	Type         string
	TypeMismatch bool
	// Optional is true only if every occurrence is optional.
	Optional bool
	// Default is the shared default text (nil renders as null); meaningful
	// only for optional parameters without DefaultMismatch.
	Default         *string
	DefaultMismatch bool
	// References lists the occurrences in contributor declaration order.
	References []ParameterRef
}

// Usable reports whether the parameter takes part in the Initialize signature.
func (p UnifiedParameter) Usable() bool {
	return !p.TypeMismatch && !p.DefaultMismatch
}

// Declaration renders the parameter as it appears in the Initialize signature.
func (p UnifiedParameter) Declaration() string {
	decl := p.Type + " " + p.Name
	if !p.Optional {
		return decl
	}

	def := "null"
	if p.Default != nil {
		def = *p.Default
	}

	return decl + " = " + def
}

// Invocation is a call to one contributor with its arguments, by name.
type Invocation struct {
	Method    *model.MethodSymbol
	Arguments []string
}

// ConstructorPlan is the unified construction entry point of one type.
type ConstructorPlan struct {
	Lifecycle *TypeLifecycle
	// Parameters holds every unified parameter in first-seen order.
	Parameters []UnifiedParameter
	// Signature holds the usable parameters: required first, then optional,
	// each group ordered by name.
	Signature []UnifiedParameter
	// Invocations lists the contributor calls in declaration order.
	Invocations []Invocation
	// CanBeParameterless is true when Initialize needs no argument and the
	// base type can be constructed without arguments.
	CanBeParameterless bool
	// SynthesizeParameterless tells whether a parameterless constructor is generated.
	SynthesizeParameterless bool
	// ParameterlessAccessibility is the accessibility of that constructor.
	ParameterlessAccessibility model.Accessibility
	Diagnostics                diagnostic.Diagnostics
}

// UnifyConstructor merges the constructor contributors of lc into a single
// Initialize entry point and validates the type's declared constructors.
// Ancestor contributors are never merged: each level has its own entry point.
func UnifyConstructor(lc *TypeLifecycle, idx *Index) *ConstructorPlan {
	plan := &ConstructorPlan{Lifecycle: lc}
	plan.Diagnostics.Merge(CheckShape(lc, RoleConstructor))

	plan.Parameters = unifyParameters(lc.Constructors)

	for _, p := range plan.Parameters {
		if p.Usable() {
			plan.Signature = append(plan.Signature, p)
		}
	}

	slices.SortStableFunc(plan.Signature, func(a, b UnifiedParameter) int {
		if a.Optional != b.Optional {
			if a.Optional {
				return 1
			}

			return -1
		}

		return strings.Compare(a.Name, b.Name)
	})

	for _, m := range lc.Constructors {
		plan.Invocations = append(plan.Invocations, Invocation{
			Method:    m,
			Arguments: common.Map(m.Parameters, func(p model.Parameter) string { return p.Name }),
		})
	}

	u := &parameterlessResolver{idx: idx, memo: map[model.TypeID]bool{}}
	plan.CanBeParameterless = u.canBeParameterless(lc.Owner, plan.Parameters)

	declared := lc.Owner.DeclaredConstructors()
	declaredParameterless := findDeclaredParameterless(declared)

	plan.SynthesizeParameterless = declaredParameterless == nil && plan.CanBeParameterless
	if plan.SynthesizeParameterless {
		plan.ParameterlessAccessibility = model.AccessibilityPublic
		if len(declared) > 0 {
			plan.ParameterlessAccessibility = model.AccessibilityPrivate
		}
	}

	checkConstructorChains(plan, declared, declaredParameterless)
	reportParameterConflicts(plan)

	return plan
}

func unifyParameters(contributors []*model.MethodSymbol) []UnifiedParameter {
	var (
		order  []string
		groups = map[string][]ParameterRef{}
	)

	for _, m := range contributors {
		for _, p := range m.Parameters {
			if _, ok := groups[p.Name]; !ok {
				order = append(order, p.Name)
			}

			groups[p.Name] = append(groups[p.Name], ParameterRef{Method: m, Parameter: p})
		}
	}

	out := make([]UnifiedParameter, 0, len(order))

	for _, name := range order {
		refs := groups[name]
		first := refs[0].Parameter

		up := UnifiedParameter{
			Name:       name,
			References: refs,
			Optional:   common.All(refs, func(r ParameterRef) bool { return r.Parameter.Optional }),
		}

		up.TypeMismatch = common.Any(refs, func(r ParameterRef) bool { return !model.SameType(r.Parameter.Type, first.Type) })
		if !up.TypeMismatch {
			up.Type = first.Type
		}

		if up.Optional {
			up.DefaultMismatch = common.Any(refs, func(r ParameterRef) bool {
				return r.Parameter.DefaultText() != first.DefaultText()
			})
			if !up.DefaultMismatch {
				up.Default = first.Default
			}
		}

		out = append(out, up)
	}

	return out
}

func findDeclaredParameterless(declared []*model.ConstructorSymbol) *model.ConstructorSymbol {
	c, _ := common.First(common.Filter(declared, func(c *model.ConstructorSymbol) bool { return len(c.Parameters) == 0 }))

	return c
}

// parameterlessResolver decides whether a type can be constructed without
// arguments once generation has run.
type parameterlessResolver struct {
	idx  *Index
	memo map[model.TypeID]bool
}

// canBeParameterless reports whether Initialize of t needs no argument and
// the direct base of t exposes a parameterless construction path.
func (r *parameterlessResolver) canBeParameterless(t *model.TypeSymbol, params []UnifiedParameter) bool {
	if common.Any(params, func(p UnifiedParameter) bool { return !p.Optional }) {
		return false
	}

	base := r.idx.Graph.Base(t)
	if base == nil {
		return true
	}

	return r.exposesParameterless(base)
}

func (r *parameterlessResolver) exposesParameterless(t *model.TypeSymbol) bool {
	if v, ok := r.memo[t.ID]; ok {
		return v
	}

	r.memo[t.ID] = false // guards against re-entry on malformed graphs
	v := r.resolve(t)
	r.memo[t.ID] = v

	return v
}

func (r *parameterlessResolver) resolve(t *model.TypeSymbol) bool {
	for _, c := range t.Constructors {
		if c.Accessibility != model.AccessibilityPrivate && c.IsParameterless() {
			return true
		}
	}

	if len(t.DeclaredConstructors()) > 0 {
		return false
	}

	// No declared constructor: either the generator synthesizes a public
	// parameterless one, or the implicit default constructor applies.
	if lc := r.idx.Lookup(t.ID); lc != nil {
		return r.canBeParameterless(t, unifyParameters(lc.Constructors))
	}

	return true
}

func checkConstructorChains(plan *ConstructorPlan, declared []*model.ConstructorSymbol, declaredParameterless *model.ConstructorSymbol) {
	owner := plan.Lifecycle.Owner

	for _, c := range declared {
		if invokesInitialize(owner, c, declaredParameterless, plan.CanBeParameterless, map[string]bool{}) {
			continue
		}

		msg := fmt.Sprintf("Constructor %s does not invoke the '%s' method. "+
			"%s gets a generated '%s' method and declares constructors, "+
			"so every constructor must invoke it, either directly or by chaining to another constructor of the same type. "+
			"Chaining to a base constructor does not count: initialization is not inherited.",
			c.LocationText(), InitializeMethodName, owner.ID.Name, InitializeMethodName)

		var suggestions []string
		if plan.CanBeParameterless {
			suggestions = append(suggestions, "add ': this()' to the constructor declaration")
		}

		suggestions = append(suggestions, fmt.Sprintf("call %s(...) in the constructor body", InitializeMethodName))

		plan.Diagnostics.AddError(diagnostic.CodeConstructorMissingInitialize, msg, owner.ID.String(), c.Location, suggestions...)
	}
}

func invokesInitialize(
	owner *model.TypeSymbol,
	c *model.ConstructorSymbol,
	declaredParameterless *model.ConstructorSymbol,
	canBeParameterless bool,
	visiting map[string]bool,
) bool {
	if c.CallsInitialize {
		return true
	}

	init := c.Initializer
	if init == nil || init.Kind == model.InitializerBase {
		return false
	}

	if init.Target == "" {
		// Chains to a constructor that does not exist yet: only the
		// synthesized parameterless one can satisfy it.
		return declaredParameterless == nil && init.Arguments == 0 && canBeParameterless
	}

	if visiting[c.ID] {
		return false
	}

	visiting[c.ID] = true

	target := owner.Constructor(init.Target)
	if target == nil {
		return false
	}

	return invokesInitialize(owner, target, declaredParameterless, canBeParameterless, visiting)
}

func reportParameterConflicts(plan *ConstructorPlan) {
	owner := plan.Lifecycle.Name()

	for _, p := range plan.Parameters {
		if p.TypeMismatch {
			sites := common.Map(p.References, func(r ParameterRef) string {
				return fmt.Sprintf("it is of type '%s' in %s", r.Parameter.Type, r.Method.LocationText())
			})

			plan.Diagnostics.AddError(diagnostic.CodeParameterTypeMismatch,
				fmt.Sprintf("There is a type mismatch for the parameter named '%s' between your constructor methods: %s. "+
					"The parameter is left out of '%s'.", p.Name, strings.Join(sites, "; "), InitializeMethodName),
				owner, p.References[0].Method.Location)
		}

		if p.DefaultMismatch {
			sites := common.Map(p.References, func(r ParameterRef) string {
				return fmt.Sprintf("it has default value '%s' in %s", r.Parameter.DefaultText(), r.Method.LocationText())
			})

			plan.Diagnostics.AddError(diagnostic.CodeParameterDefaultMismatch,
				fmt.Sprintf("There is a default value mismatch for the optional parameter named '%s' between your constructor methods: %s. "+
					"The parameter is left out of '%s'.", p.Name, strings.Join(sites, "; "), InitializeMethodName),
				owner, p.References[0].Method.Location)
		}
	}
}
