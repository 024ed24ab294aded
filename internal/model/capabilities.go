package model

// Implements reports whether t or one of its ancestors lists the interface.
func (g *TypeGraph) Implements(t *TypeSymbol, iface string) bool {
	for s := range g.SelfAndAncestors(t) {
		if s.DeclaresInterface(iface) {
			return true
		}
	}

	return false
}

// FindMember returns the nearest instance method named name whose parameter
// types match paramTypes, searching t first and then its ancestors.
func (g *TypeGraph) FindMember(t *TypeSymbol, name string, paramTypes ...string) *MethodSymbol {
	for s := range g.SelfAndAncestors(t) {
		if m := s.DeclaredMember(name, paramTypes...); m != nil {
			return m
		}
	}

	return nil
}

// DeclaredMember returns the instance method declared on t itself named name
// whose parameter types match paramTypes.
func (t *TypeSymbol) DeclaredMember(name string, paramTypes ...string) *MethodSymbol {
	for _, m := range t.Methods {
		if m.Static || m.Implicit || m.Kind != MethodKindOrdinary || m.Name != name {
			continue
		}

		if parametersMatch(m.Parameters, paramTypes) {
			return m
		}
	}

	return nil
}

// FindImplementation returns the method implementing iface.member on t, or nil
// when t does not implement iface at all or no matching member is found.
func (g *TypeGraph) FindImplementation(t *TypeSymbol, iface, member string, paramTypes ...string) *MethodSymbol {
	if !g.Implements(t, iface) {
		return nil
	}

	return g.FindMember(t, member, paramTypes...)
}

func parametersMatch(params []Parameter, types []string) bool {
	if len(params) != len(types) {
		return false
	}

	for i, p := range params {
		if !SameType(p.Type, types[i]) {
			return false
		}
	}

	return true
}
