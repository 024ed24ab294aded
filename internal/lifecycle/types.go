package lifecycle

import (
	"lifecycle-generator/internal/diagnostic"
	"lifecycle-generator/internal/model"
)

//go:generate go tool stringer -type=Role -trimprefix=Role -output=role_string.go

// Role is the lifecycle phase a contributor method takes part in.
type Role int

const (
	RoleConstructor Role = iota
	RoleDispose
	RoleFinalizer
)

// Attributes names the attributes that tag contributor methods.
type Attributes struct {
	Constructor string
	Dispose     string
	Finalizer   string
}

// DefaultAttributes returns the attribute names used by the Uno runtime.
func DefaultAttributes() Attributes {
	return Attributes{
		Constructor: "Uno.ConstructorMethodAttribute",
		Dispose:     "Uno.DisposeMethodAttribute",
		Finalizer:   "Uno.FinalizerMethodAttribute",
	}
}

// For returns the attribute name tagging the given role.
func (a Attributes) For(role Role) string {
	switch role {
	case RoleConstructor:
		return a.Constructor
	case RoleDispose:
		return a.Dispose
	default:
		return a.Finalizer
	}
}

// Capabilities names the disposal capability surfaces the classifier looks for.
type Capabilities struct {
	// Disposable is the single-method disposal interface.
	Disposable string
	// DisposeMember is the member of Disposable, also the name of the
	// overridable two-argument idiom.
	DisposeMember string
	// ExtensibleDisposable is the interface accepting disposable extensions.
	ExtensibleDisposable string
	// RegisterMember is the registration member of ExtensibleDisposable.
	RegisterMember string
}

// DefaultCapabilities returns the capability surfaces of the Uno runtime.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		Disposable:           "System.IDisposable",
		DisposeMember:        "Dispose",
		ExtensibleDisposable: "Uno.Disposables.IExtensibleDisposable",
		RegisterMember:       "RegisterExtension",
	}
}

// Options configures discovery and classification.
type Options struct {
	Attributes   Attributes
	Capabilities Capabilities
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		Attributes:   DefaultAttributes(),
		Capabilities: DefaultCapabilities(),
	}
}

// TypeLifecycle aggregates the contributor methods of one type. It is built
// once by Discover and must not be modified afterwards.
type TypeLifecycle struct {
	// Owner is the declaring type.
	Owner *model.TypeSymbol
	// Methods lists every method declared on Owner.
	Methods []*model.MethodSymbol
	// Constructors, Disposes and Finalizers are the contributors by role, in
	// declaration order.
	Constructors []*model.MethodSymbol
	Disposes     []*model.MethodSymbol
	Finalizers   []*model.MethodSymbol
	// Bases lists the ancestors having at least one contributor, nearest first.
	Bases []*TypeLifecycle
	// Hints holds discovery diagnostics (misspelled or conflicting attributes).
	Hints diagnostic.Diagnostics
}

// HasContributors reports whether any method of the type is a contributor.
func (l *TypeLifecycle) HasContributors() bool {
	return len(l.Constructors) > 0 || len(l.Disposes) > 0 || len(l.Finalizers) > 0
}

// Contributors returns the contributor methods for a role.
func (l *TypeLifecycle) Contributors(role Role) []*model.MethodSymbol {
	switch role {
	case RoleConstructor:
		return l.Constructors
	case RoleDispose:
		return l.Disposes
	default:
		return l.Finalizers
	}
}

// DisposingBase returns the nearest ancestor lifecycle with dispose
// contributors, or nil.
func (l *TypeLifecycle) DisposingBase() *TypeLifecycle {
	for _, b := range l.Bases {
		if len(b.Disposes) > 0 {
			return b
		}
	}

	return nil
}

// Name returns the owner's full name.
func (l *TypeLifecycle) Name() string {
	return l.Owner.ID.String()
}
