package gen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"lifecycle-generator/internal/lifecycle"
	"lifecycle-generator/internal/model"
)

const (
	ctorAttr      = "Uno.ConstructorMethod"
	disposeAttr   = "Uno.DisposeMethod"
	finalizerAttr = "Uno.FinalizerMethod"
)

func method(name, attr string, params ...string) *model.MethodSymbol {
	m := &model.MethodSymbol{Name: name, ReturnType: model.VoidType}
	if attr != "" {
		m.Attributes = []string{attr}
	}

	for _, decl := range params {
		p, err := model.ParseParameter(decl)
		if err != nil {
			panic(err)
		}

		m.Parameters = append(m.Parameters, p)
	}

	return m
}

func class(fullName, base string, methods ...*model.MethodSymbol) *model.TypeSymbol {
	id := model.ParseTypeID(fullName)

	return &model.TypeSymbol{
		ID:       id,
		Base:     model.ParseTypeID(base),
		FilePath: "src/" + id.Name + ".cs",
		Methods:  methods,
	}
}

func index(t *testing.T, types ...*model.TypeSymbol) *lifecycle.Index {
	t.Helper()

	idx, err := lifecycle.Discover(model.NewTypeGraph().MustAdd(types...), lifecycle.DefaultOptions())
	require.NoError(t, err)

	return idx
}

func synthesize(t *testing.T, mode DiagnosticsMode, name string, types ...*model.TypeSymbol) *Fragment {
	t.Helper()

	idx := index(t, types...)

	lc := idx.Lookup(model.ParseTypeID(name))
	require.NotNil(t, lc, "no lifecycle for %s", name)

	return NewSynthesizer(idx, mode).Synthesize(lc)
}

// requireOrdered fails unless every snippet appears in s, in order.
func requireOrdered(t *testing.T, s string, snippets ...string) {
	t.Helper()

	last := -1
	for _, snippet := range snippets {
		i := indexFrom(s, snippet, last+1)
		require.GreaterOrEqual(t, i, 0, "%q not found after offset %d in:\n%s", snippet, last+1, s)
		last = i
	}
}

func indexFrom(s, substr string, from int) int {
	if from > len(s) {
		return -1
	}

	i := strings.Index(s[from:], substr)
	if i < 0 {
		return -1
	}

	return from + i
}
