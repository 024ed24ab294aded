package lifecycle

import (
	"errors"
	"fmt"

	"lifecycle-generator/internal/model"
)

// ErrUnclassifiedDispose is returned when a type has a disposal capability
// that matches no known implementation shape.
var ErrUnclassifiedDispose = errors.New("unable to classify the existing dispose implementation")

// disposingParameterType is the parameter type of the overridable dispose idiom.
const disposingParameterType = "bool"

//go:generate go tool stringer -type=DisposeKind -trimprefix=DisposeKind -output=disposekind_string.go

// DisposeKind describes what already exists for disposal on a type and its
// ancestors, and therefore what has to be generated.
type DisposeKind int

const (
	// DisposeKindNoExistingImplementation: nothing to extend, implement from scratch.
	DisposeKindNoExistingImplementation DisposeKind = iota
	// DisposeKindHandWrittenPatternOnSelf: the type declares Dispose(bool) itself.
	DisposeKindHandWrittenPatternOnSelf
	// DisposeKindPatternInheritedFromAncestor: an ancestor gets a generated pattern.
	DisposeKindPatternInheritedFromAncestor
	// DisposeKindPatternOnUnrelatedBaseOverridable: a base declares an overridable Dispose(bool).
	DisposeKindPatternOnUnrelatedBaseOverridable
	// DisposeKindPatternOnUnrelatedBaseSealed: a base sealed its Dispose(bool) override.
	DisposeKindPatternOnUnrelatedBaseSealed
	// DisposeKindPatternOnUnrelatedBaseNonOverridable: a base Dispose(bool) is neither virtual nor override.
	DisposeKindPatternOnUnrelatedBaseNonOverridable
	// DisposeKindExtensibleRegistrationCapability: the type accepts disposable extensions.
	DisposeKindExtensibleRegistrationCapability
	// DisposeKindSimpleHandWrittenDispose: the type declares Dispose() itself.
	DisposeKindSimpleHandWrittenDispose
	// DisposeKindSimpleDisposeOnUnrelatedBaseOverridable: a base declares an overridable Dispose().
	DisposeKindSimpleDisposeOnUnrelatedBaseOverridable
	// DisposeKindSimpleDisposeOnUnrelatedBaseSealed: a base sealed its Dispose() override.
	DisposeKindSimpleDisposeOnUnrelatedBaseSealed
	// DisposeKindSimpleDisposeOnUnrelatedBaseNonOverridable: a base Dispose() cannot be overridden.
	DisposeKindSimpleDisposeOnUnrelatedBaseNonOverridable
)

// IsError reports whether the kind is a conflict that prevents generation.
func (k DisposeKind) IsError() bool {
	switch k {
	case DisposeKindHandWrittenPatternOnSelf,
		DisposeKindPatternOnUnrelatedBaseSealed,
		DisposeKindPatternOnUnrelatedBaseNonOverridable,
		DisposeKindSimpleHandWrittenDispose,
		DisposeKindSimpleDisposeOnUnrelatedBaseSealed,
		DisposeKindSimpleDisposeOnUnrelatedBaseNonOverridable:
		return true
	default:
		return false
	}
}

// ExtendsPattern reports whether the kind is handled by overriding Dispose(bool).
func (k DisposeKind) ExtendsPattern() bool {
	return k == DisposeKindPatternInheritedFromAncestor || k == DisposeKindPatternOnUnrelatedBaseOverridable
}

// DisposeClassification is the result of ClassifyDispose.
type DisposeClassification struct {
	Kind DisposeKind
	// Method is the existing dispose member the kind refers to: the conflicting
	// method, the base method to override or the registration member. It is
	// nil for fresh implementations and for patterns generated on an ancestor.
	Method *model.MethodSymbol
}

// IsError reports whether the classification is a conflict.
func (c DisposeClassification) IsError() bool {
	return c.Kind.IsError()
}

// Accessibility returns the accessibility of the override to generate: the
// one of the overridden base method, or protected when it is generated too.
func (c DisposeClassification) Accessibility() model.Accessibility {
	if c.Method == nil || c.Method.Accessibility == model.AccessibilityNotApplicable {
		return model.AccessibilityProtected
	}

	return c.Method.Accessibility
}

// DeclaringType returns the simple name of the type declaring Method, if any.
func (c DisposeClassification) DeclaringType() string {
	if c.Method == nil {
		return ""
	}

	return c.Method.Owner.Name
}

// ClassifyDispose decides how disposal is generated for lc.
//
// A Dispose(bool) written on the type itself always wins. Then an
// overridable pattern generated on the nearest disposing ancestor lifecycle,
// then fresh generation when nothing is disposable, then the nearest
// Dispose(bool) on a base, then the extension registration capability and
// finally a single-method Dispose().
func ClassifyDispose(lc *TypeLifecycle, idx *Index) (DisposeClassification, error) {
	var (
		graph = idx.Graph
		caps  = idx.Options.Capabilities
		t     = lc.Owner
	)

	if m := t.DeclaredMember(caps.DisposeMember, disposingParameterType); m != nil {
		return DisposeClassification{Kind: DisposeKindHandWrittenPatternOnSelf, Method: m}, nil
	}

	if providesPattern(lc.DisposingBase(), idx) {
		return DisposeClassification{Kind: DisposeKindPatternInheritedFromAncestor}, nil
	}

	extensible := caps.ExtensibleDisposable != "" && graph.Implements(t, caps.ExtensibleDisposable)
	if !extensible && !graph.Implements(t, caps.Disposable) {
		return DisposeClassification{Kind: DisposeKindNoExistingImplementation}, nil
	}

	if m := graph.FindMember(graph.Base(t), caps.DisposeMember, disposingParameterType); m != nil {
		return DisposeClassification{Kind: baseKind(m,
			DisposeKindPatternOnUnrelatedBaseSealed,
			DisposeKindPatternOnUnrelatedBaseOverridable,
			DisposeKindPatternOnUnrelatedBaseNonOverridable,
		), Method: m}, nil
	}

	if extensible {
		return DisposeClassification{
			Kind:   DisposeKindExtensibleRegistrationCapability,
			Method: graph.FindMember(t, caps.RegisterMember, caps.Disposable),
		}, nil
	}

	if m := t.DeclaredMember(caps.DisposeMember); m != nil {
		return DisposeClassification{Kind: DisposeKindSimpleHandWrittenDispose, Method: m}, nil
	}

	if m := graph.FindMember(graph.Base(t), caps.DisposeMember); m != nil {
		return DisposeClassification{Kind: baseKind(m,
			DisposeKindSimpleDisposeOnUnrelatedBaseSealed,
			DisposeKindSimpleDisposeOnUnrelatedBaseOverridable,
			DisposeKindSimpleDisposeOnUnrelatedBaseNonOverridable,
		), Method: m}, nil
	}

	return DisposeClassification{}, fmt.Errorf("%w: %s implements %s", ErrUnclassifiedDispose, lc.Name(), caps.Disposable)
}

// providesPattern reports whether the fragment of base declares an
// overridable Dispose(bool). Registration, a simple Dispose() override or a
// conflict on base leave nothing to extend.
func providesPattern(base *TypeLifecycle, idx *Index) bool {
	if base == nil {
		return false
	}

	c, err := ClassifyDispose(base, idx)
	if err != nil {
		return false
	}

	if c.Kind == DisposeKindNoExistingImplementation {
		return !base.Owner.Sealed
	}

	return c.Kind.ExtendsPattern()
}

func baseKind(m *model.MethodSymbol, sealed, overridable, nonOverridable DisposeKind) DisposeKind {
	switch {
	case m.Sealed:
		return sealed
	case m.IsOverridable():
		return overridable
	default:
		return nonOverridable
	}
}
