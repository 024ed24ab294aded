package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lifecycle-generator/internal/model"
)

const (
	ctorAttr      = "Uno.ConstructorMethod"
	disposeAttr   = "Uno.DisposeMethodAttribute"
	finalizerAttr = "Uno.FinalizerMethod"
)

func param(decl string) model.Parameter {
	p, err := model.ParseParameter(decl)
	if err != nil {
		panic(err)
	}

	return p
}

func method(name, attr string, params ...string) *model.MethodSymbol {
	m := &model.MethodSymbol{Name: name, ReturnType: model.VoidType}
	if attr != "" {
		m.Attributes = []string{attr}
	}

	for _, p := range params {
		m.Parameters = append(m.Parameters, param(p))
	}

	return m
}

func ctor(id string, params ...string) *model.ConstructorSymbol {
	c := &model.ConstructorSymbol{ID: id, Accessibility: model.AccessibilityPublic}
	for _, p := range params {
		c.Parameters = append(c.Parameters, param(p))
	}

	return c
}

func class(fullName, base string, methods ...*model.MethodSymbol) *model.TypeSymbol {
	return &model.TypeSymbol{
		ID:       model.ParseTypeID(fullName),
		Base:     model.ParseTypeID(base),
		FilePath: "src/" + model.ParseTypeID(fullName).Name + ".cs",
		Methods:  methods,
	}
}

func discover(t *testing.T, types ...*model.TypeSymbol) *Index {
	t.Helper()

	idx, err := Discover(model.NewTypeGraph().MustAdd(types...), DefaultOptions())
	require.NoError(t, err)

	return idx
}

func lookup(t *testing.T, idx *Index, name string) *TypeLifecycle {
	t.Helper()

	lc := idx.Lookup(model.ParseTypeID(name))
	require.NotNil(t, lc, "no lifecycle for %s", name)

	return lc
}

func ids(lcs []*TypeLifecycle) []string {
	out := make([]string, 0, len(lcs))
	for _, lc := range lcs {
		out = append(out, lc.Name())
	}

	return out
}
