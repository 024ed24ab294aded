package model

import (
	"fmt"
	"strings"
)

// builtinAliases maps keyword types to their framework names.
var builtinAliases = map[string]string{
	"bool":    "System.Boolean",
	"byte":    "System.Byte",
	"sbyte":   "System.SByte",
	"char":    "System.Char",
	"decimal": "System.Decimal",
	"double":  "System.Double",
	"float":   "System.Single",
	"int":     "System.Int32",
	"uint":    "System.UInt32",
	"long":    "System.Int64",
	"ulong":   "System.UInt64",
	"short":   "System.Int16",
	"ushort":  "System.UInt16",
	"object":  "System.Object",
	"string":  "System.String",
}

// CanonicalType returns the framework name of a type text so that "int",
// "System.Int32" and "global::System.Int32" compare equal.
func CanonicalType(text string) string {
	text = strings.TrimPrefix(strings.TrimSpace(text), "global::")
	if full, ok := builtinAliases[text]; ok {
		return full
	}

	return text
}

// SameType reports whether two type texts denote the same type.
func SameType(a, b string) bool {
	return CanonicalType(a) == CanonicalType(b)
}

// NameWithGenerics renders "Name" or "Name<T1, T2>".
func (t *TypeSymbol) NameWithGenerics() string {
	if len(t.TypeParameters) == 0 {
		return t.ID.Name
	}

	return t.ID.Name + "<" + strings.Join(t.TypeParameters, ", ") + ">"
}

// GlobalName renders the fully qualified "global::" name.
func (t *TypeSymbol) GlobalName() string {
	return "global::" + t.ID.String()
}

// DisplayName renders a method as "Type.Name(T1, T2)".
func (m *MethodSymbol) DisplayName() string {
	types := make([]string, 0, len(m.Parameters))
	for _, p := range m.Parameters {
		types = append(types, p.Type)
	}

	return fmt.Sprintf("%s.%s(%s)", m.Owner.Name, m.Name, strings.Join(types, ", "))
}

// LocationText renders the method name followed by its location, if known.
func (m *MethodSymbol) LocationText() string {
	return withLocation(m.DisplayName(), m.Location)
}

// DisplayName renders a constructor as "Type(T1, T2)".
func (c *ConstructorSymbol) DisplayName() string {
	types := make([]string, 0, len(c.Parameters))
	for _, p := range c.Parameters {
		types = append(types, p.Type)
	}

	return fmt.Sprintf("%s(%s)", c.Owner.Name, strings.Join(types, ", "))
}

// LocationText renders the constructor followed by its location, if known.
func (c *ConstructorSymbol) LocationText() string {
	return withLocation(c.DisplayName(), c.Location)
}

func withLocation(name string, loc Location) string {
	if loc.IsZero() {
		return "'" + name + "'"
	}

	return fmt.Sprintf("'%s' (%s)", name, loc)
}
