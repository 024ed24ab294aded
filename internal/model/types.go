package model

import (
	"fmt"
	"strings"

	"lifecycle-generator/internal/common"
)

// RootTypeName is the universal root of every class hierarchy.
// A type whose base is empty or RootTypeName has no ancestors.
const RootTypeName = "System.Object"

// TypeID identifies a declared type by namespace and name.
type TypeID struct {
	Namespace string // e.g., "App.Services"
	Name      string // e.g., "Connection"
}

// ParseTypeID splits a dotted full name ("App.Services.Connection") into a TypeID.
func ParseTypeID(fullName string) TypeID {
	fullName = strings.TrimPrefix(strings.TrimSpace(fullName), "global::")

	idx := strings.LastIndex(fullName, ".")
	if idx < 0 {
		return TypeID{Name: fullName}
	}

	return TypeID{Namespace: fullName[:idx], Name: fullName[idx+1:]}
}

// String returns the dotted full name.
func (t TypeID) String() string {
	if t.Namespace == "" {
		return t.Name
	}

	return t.Namespace + "." + t.Name
}

// IsZero reports whether the id is unset.
func (t TypeID) IsZero() bool {
	return t.Name == ""
}

// IsRoot reports whether the id denotes the universal root (or no base at all).
func (t TypeID) IsRoot() bool {
	return t.IsZero() || t.String() == RootTypeName
}

// Accessibility is the declared accessibility of a member.
type Accessibility int

const (
	AccessibilityNotApplicable Accessibility = iota
	AccessibilityPrivate
	AccessibilityPrivateProtected
	AccessibilityProtected
	AccessibilityInternal
	AccessibilityProtectedInternal
	AccessibilityPublic
)

// String returns the accessibility as a source keyword.
func (a Accessibility) String() string {
	switch a {
	case AccessibilityPrivate:
		return "private"
	case AccessibilityPrivateProtected:
		return "private protected"
	case AccessibilityProtected:
		return "protected"
	case AccessibilityInternal:
		return "internal"
	case AccessibilityProtectedInternal:
		return "protected internal"
	case AccessibilityPublic:
		return "public"
	case AccessibilityNotApplicable:
		return ""
	default:
		return common.UnknownStr
	}
}

// ParseAccessibility parses a source keyword (case-insensitive, "_" or space separated).
func ParseAccessibility(s string) (Accessibility, error) {
	norm := strings.Join(strings.Fields(strings.ReplaceAll(strings.ToLower(s), "_", " ")), " ")

	switch norm {
	case "":
		return AccessibilityNotApplicable, nil
	case "private":
		return AccessibilityPrivate, nil
	case "private protected":
		return AccessibilityPrivateProtected, nil
	case "protected":
		return AccessibilityProtected, nil
	case "internal":
		return AccessibilityInternal, nil
	case "protected internal":
		return AccessibilityProtectedInternal, nil
	case "public":
		return AccessibilityPublic, nil
	default:
		return AccessibilityNotApplicable, fmt.Errorf("unknown accessibility %q", s)
	}
}

// MethodKind distinguishes ordinary methods from special members.
type MethodKind int

const (
	MethodKindOrdinary MethodKind = iota
	MethodKindFinalizer
)

// VoidType is the return type text of a method returning nothing.
const VoidType = "void"

// Location points at a declaration in the original source.
type Location struct {
	File   string `yaml:"file,omitempty"`
	Line   int    `yaml:"line,omitempty"`
	Column int    `yaml:"column,omitempty"`
}

// IsZero reports whether the location is unset.
func (l Location) IsZero() bool {
	return l.File == "" && l.Line == 0
}

// String returns "file(line,col)" or an empty string if unset.
func (l Location) String() string {
	switch {
	case l.IsZero():
		return ""
	case l.Line == 0:
		return l.File
	case l.Column == 0:
		return fmt.Sprintf("%s(%d)", l.File, l.Line)
	default:
		return fmt.Sprintf("%s(%d,%d)", l.File, l.Line, l.Column)
	}
}

// Parameter is one declared parameter of a method or constructor.
type Parameter struct {
	Name     string  // Parameter name
	Type     string  // Type text, e.g., "int" or "global::System.String"
	Optional bool    // Whether the parameter declares a default value
	Default  *string // Default value text; nil renders as "null"
}

// DefaultText renders the explicit default value as source text.
func (p Parameter) DefaultText() string {
	if p.Default == nil {
		return "null"
	}

	return *p.Default
}

// MethodSymbol describes a method declared on a type.
type MethodSymbol struct {
	Name          string        `yaml:"name"`
	Kind          MethodKind    `yaml:"kind,omitempty"`
	Attributes    []string      `yaml:"attributes,omitempty"`
	Parameters    []Parameter   `yaml:"parameters,omitempty"`
	ReturnType    string        `yaml:"returns,omitempty"`
	Accessibility Accessibility `yaml:"access,omitempty"`
	Virtual       bool          `yaml:"virtual,omitempty"`
	Override      bool          `yaml:"override,omitempty"`
	Sealed        bool          `yaml:"sealed,omitempty"`
	Abstract      bool          `yaml:"abstract,omitempty"`
	Static        bool          `yaml:"static,omitempty"`
	Implicit      bool          `yaml:"implicit,omitempty"`
	Location      Location      `yaml:"location,omitempty"`

	// Owner is the declaring type; set by the loader.
	Owner TypeID `yaml:"-" msgpack:"-"`
}

// ReturnsVoid reports whether the method returns nothing.
func (m *MethodSymbol) ReturnsVoid() bool {
	return m.ReturnType == "" || m.ReturnType == VoidType
}

// HasAttribute reports whether the method carries the attribute.
// "Foo" and "FooAttribute" are treated as the same attribute.
func (m *MethodSymbol) HasAttribute(name string) bool {
	want := NormalizeAttribute(name)
	for _, a := range m.Attributes {
		if NormalizeAttribute(a) == want {
			return true
		}
	}

	return false
}

// IsOverridable reports whether descendants may override the method.
func (m *MethodSymbol) IsOverridable() bool {
	return (m.Virtual || m.Override || m.Abstract) && !m.Sealed
}

// NormalizeAttribute strips the "global::" prefix and the "Attribute" suffix.
func NormalizeAttribute(name string) string {
	name = strings.TrimPrefix(strings.TrimSpace(name), "global::")

	return strings.TrimSuffix(name, "Attribute")
}

// InitializerKind tells which type a constructor initializer chains to.
type InitializerKind int

const (
	InitializerThis InitializerKind = iota
	InitializerBase
)

// String returns the initializer keyword.
func (k InitializerKind) String() string {
	switch k {
	case InitializerThis:
		return "this"
	case InitializerBase:
		return "base"
	default:
		return common.UnknownStr
	}
}

// Initializer is a constructor's chained ": this(...)" or ": base(...)" call.
type Initializer struct {
	Kind      InitializerKind `yaml:"kind"`
	Arguments int             `yaml:"arguments,omitempty"`
	// Target is the id of the constructor the call binds to. It is empty when
	// the call does not bind to any existing constructor (for instance the
	// parameterless constructor that the generator is about to synthesize).
	Target string `yaml:"target,omitempty"`
}

// ConstructorSymbol describes a constructor declared (or implied) on a type.
type ConstructorSymbol struct {
	ID              string        `yaml:"id"`
	Parameters      []Parameter   `yaml:"parameters,omitempty"`
	Accessibility   Accessibility `yaml:"access,omitempty"`
	Implicit        bool          `yaml:"implicit,omitempty"`
	CallsInitialize bool          `yaml:"callsInitialize,omitempty"`
	Initializer     *Initializer  `yaml:"initializer,omitempty"`
	Location        Location      `yaml:"location,omitempty"`

	Owner TypeID `yaml:"-" msgpack:"-"`
}

// IsParameterless reports whether the constructor can be invoked without arguments.
func (c *ConstructorSymbol) IsParameterless() bool {
	return common.All(c.Parameters, func(p Parameter) bool { return p.Optional })
}

// TypeSymbol describes a class declaration.
type TypeSymbol struct {
	ID             TypeID               `yaml:"name"`
	TypeParameters []string             `yaml:"typeParameters,omitempty"`
	FilePath       string               `yaml:"file,omitempty"`
	Sealed         bool                 `yaml:"sealed,omitempty"`
	External       bool                 `yaml:"external,omitempty"`
	Base           TypeID               `yaml:"base,omitempty"`
	Interfaces     []string             `yaml:"interfaces,omitempty"`
	Methods        []*MethodSymbol      `yaml:"methods,omitempty"`
	Constructors   []*ConstructorSymbol `yaml:"constructors,omitempty"`
	Location       Location             `yaml:"location,omitempty"`
}

// DeclaredConstructors returns the constructors written in source (not implied).
func (t *TypeSymbol) DeclaredConstructors() []*ConstructorSymbol {
	return common.Filter(t.Constructors, func(c *ConstructorSymbol) bool { return !c.Implicit })
}

// Constructor returns the constructor with the given id, or nil.
func (t *TypeSymbol) Constructor(id string) *ConstructorSymbol {
	for _, c := range t.Constructors {
		if c.ID == id {
			return c
		}
	}

	return nil
}

// HandWrittenFinalizer returns the finalizer declared in source, or nil.
func (t *TypeSymbol) HandWrittenFinalizer() *MethodSymbol {
	for _, m := range t.Methods {
		if m.Kind == MethodKindFinalizer && !m.Implicit {
			return m
		}
	}

	return nil
}

// DeclaresInterface reports whether the type itself lists the interface.
func (t *TypeSymbol) DeclaresInterface(name string) bool {
	want := ParseTypeID(name)
	for _, i := range t.Interfaces {
		if ParseTypeID(i) == want {
			return true
		}
	}

	return false
}
