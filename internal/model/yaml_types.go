package model

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// --- TypeID YAML methods ---

// UnmarshalYAML accepts a dotted full name: "App.Services.Connection".
func (t *TypeID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a type name, got %v", node.Line, node.Kind)
	}

	*t = ParseTypeID(node.Value)

	return nil
}

// MarshalYAML outputs the dotted full name.
func (t TypeID) MarshalYAML() (any, error) {
	return t.String(), nil
}

// --- Accessibility YAML methods ---

// UnmarshalYAML accepts a source keyword such as "protected internal".
func (a *Accessibility) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseAccessibility(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	*a = parsed

	return nil
}

// MarshalYAML outputs the source keyword.
func (a Accessibility) MarshalYAML() (any, error) {
	return a.String(), nil
}

// --- MethodKind YAML methods ---

// UnmarshalYAML accepts "ordinary" or "finalizer".
func (k *MethodKind) UnmarshalYAML(node *yaml.Node) error {
	switch strings.ToLower(strings.TrimSpace(node.Value)) {
	case "", "ordinary", "method":
		*k = MethodKindOrdinary
	case "finalizer", "destructor":
		*k = MethodKindFinalizer
	default:
		return fmt.Errorf("line %d: unknown method kind %q", node.Line, node.Value)
	}

	return nil
}

// MarshalYAML outputs the kind name.
func (k MethodKind) MarshalYAML() (any, error) {
	if k == MethodKindFinalizer {
		return "finalizer", nil
	}

	return "ordinary", nil
}

// --- InitializerKind YAML methods ---

// UnmarshalYAML accepts "this" or "base".
func (k *InitializerKind) UnmarshalYAML(node *yaml.Node) error {
	switch strings.ToLower(strings.TrimSpace(node.Value)) {
	case "this":
		*k = InitializerThis
	case "base":
		*k = InitializerBase
	default:
		return fmt.Errorf("line %d: unknown initializer kind %q (want this or base)", node.Line, node.Value)
	}

	return nil
}

// MarshalYAML outputs the initializer keyword.
func (k InitializerKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// --- Parameter YAML methods ---

type parameterYAML struct {
	Name     string    `yaml:"name"`
	Type     string    `yaml:"type"`
	Optional bool      `yaml:"optional,omitempty"`
	Default  yaml.Node `yaml:"default"`
}

// UnmarshalYAML implements custom YAML unmarshaling for Parameter.
// Accepts:
//   - Shorthand: "int x" or "string name = \"a\""
//   - Mapping: {name: x, type: int, default: 1}
//
// Declaring a default (even null) makes the parameter optional.
func (p *Parameter) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		parsed, err := ParseParameter(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}

		*p = parsed

		return nil

	case yaml.MappingNode:
		var raw parameterYAML

		err := node.Decode(&raw)
		if err != nil {
			return err
		}

		if raw.Name == "" || raw.Type == "" {
			return fmt.Errorf("line %d: parameter needs both name and type", node.Line)
		}

		*p = Parameter{Name: raw.Name, Type: raw.Type, Optional: raw.Optional}

		if raw.Default.Kind != 0 {
			p.Optional = true
			if raw.Default.ShortTag() != "!!null" {
				value := raw.Default.Value
				p.Default = &value
			}
		}

		return nil

	default:
		return fmt.Errorf("line %d: expected parameter string or mapping, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML outputs the shorthand form.
func (p Parameter) MarshalYAML() (any, error) {
	return p.String(), nil
}

// String renders the parameter in declaration form: "int x = 1".
func (p Parameter) String() string {
	if !p.Optional {
		return p.Type + " " + p.Name
	}

	return p.Type + " " + p.Name + " = " + p.DefaultText()
}

// ParseParameter parses the declaration shorthand "Type name [= default]".
func ParseParameter(s string) (Parameter, error) {
	decl, def, hasDefault := strings.Cut(s, "=")

	fields := strings.Fields(decl)
	if len(fields) < 2 {
		return Parameter{}, fmt.Errorf("invalid parameter %q: want \"Type name [= default]\"", s)
	}

	p := Parameter{
		Name: fields[len(fields)-1],
		Type: strings.Join(fields[:len(fields)-1], " "),
	}

	if hasDefault {
		p.Optional = true
		if def = strings.TrimSpace(def); def != "null" {
			p.Default = &def
		}
	}

	return p, nil
}
