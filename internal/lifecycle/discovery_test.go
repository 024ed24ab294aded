package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifecycle-generator/internal/diagnostic"
	"lifecycle-generator/internal/model"
)

func TestDiscover_CollectsContributorsByRole(t *testing.T) {
	idx := discover(t,
		class("App.Resource", "",
			method("Open", ctorAttr, "int retries = 3"),
			method("Helper", ""),
			method("Close", disposeAttr),
			method("Release", "global::Uno.FinalizerMethodAttribute"),
			method("Flush", disposeAttr),
		),
		class("App.Plain", "", method("Run", "")),
	)

	require.Equal(t, 1, idx.Len())
	assert.Nil(t, idx.Lookup(model.ParseTypeID("App.Plain")))

	lc := lookup(t, idx, "App.Resource")
	assert.Len(t, lc.Methods, 5)
	assert.Equal(t, []string{"Open"}, methodNames(lc.Constructors))
	assert.Equal(t, []string{"Close", "Flush"}, methodNames(lc.Disposes), "declaration order is kept")
	assert.Equal(t, []string{"Release"}, methodNames(lc.Finalizers))
	assert.Empty(t, lc.Bases)
	assert.True(t, lc.HasContributors())
}

func TestDiscover_AncestorChainIsFiltered(t *testing.T) {
	idx := discover(t,
		class("App.D", "App.C", method("InitD", ctorAttr)),
		class("App.C", "App.B"),
		class("App.B", "App.A", method("CloseB", disposeAttr)),
		class("App.A", "System.Object", method("InitA", ctorAttr)),
	)

	assert.Equal(t, []string{"App.A", "App.B", "App.D"}, ids(idx.All()))

	d := lookup(t, idx, "App.D")
	assert.Equal(t, []string{"App.B", "App.A"}, ids(d.Bases), "types without contributors are skipped, not a chain end")
	require.NotNil(t, d.DisposingBase())
	assert.Equal(t, "App.B", d.DisposingBase().Name())

	b := lookup(t, idx, "App.B")
	assert.Equal(t, []string{"App.A"}, ids(b.Bases))
	assert.Nil(t, b.DisposingBase())
}

func TestDiscover_SkipsExternalTypes(t *testing.T) {
	ext := class("Lib.Base", "", method("Init", ctorAttr))
	ext.External = true

	idx := discover(t, ext, class("App.Derived", "Lib.Base", method("Init", ctorAttr)))

	assert.Nil(t, idx.Lookup(ext.ID))
	assert.Empty(t, lookup(t, idx, "App.Derived").Bases)
}

func TestDiscover_InvalidGraph(t *testing.T) {
	g := model.NewTypeGraph().MustAdd(class("App.A", "App.Missing", method("Init", ctorAttr)))

	_, err := Discover(g, DefaultOptions())
	require.ErrorIs(t, err, model.ErrUnknownBase)
}

func TestDiscover_MultipleRoles(t *testing.T) {
	m := method("Both", ctorAttr)
	m.Attributes = append(m.Attributes, disposeAttr)

	idx := discover(t, class("App.A", "", m))
	lc := lookup(t, idx, "App.A")

	assert.Equal(t, []string{"Both"}, methodNames(lc.Constructors), "first role wins")
	assert.Empty(t, lc.Disposes)
	require.Len(t, lc.Hints.Errors, 1)
	assert.Equal(t, diagnostic.CodeMultipleRoles, lc.Hints.Errors[0].Code)
}

func TestDiscover_SuspiciousAttribute(t *testing.T) {
	idx := discover(t,
		class("App.Typo", "", method("Close", "Uno.DisposeMethodAtribute")),
		class("App.Fine", "", method("Close", "System.Obsolete")),
	)

	assert.Zero(t, idx.Len())
	require.Len(t, idx.Hints.Warnings, 1)

	w := idx.Hints.Warnings[0]
	assert.Equal(t, diagnostic.CodeSuspiciousAttribute, w.Code)
	assert.Equal(t, "App.Typo", w.TypeName)
	assert.Equal(t, []string{"DisposeMethodAttribute"}, w.Suggestions)
}

func TestDiscover_CustomAttributes(t *testing.T) {
	opts := DefaultOptions()
	opts.Attributes.Dispose = "My.Cleanup"

	g := model.NewTypeGraph().MustAdd(class("App.A", "",
		method("Close", disposeAttr),
		method("Cleanup", "My.CleanupAttribute"),
	))

	idx, err := Discover(g, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"Cleanup"}, methodNames(lookup(t, idx, "App.A").Disposes))
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "Constructor", RoleConstructor.String())
	assert.Equal(t, "Finalizer", RoleFinalizer.String())
	assert.Equal(t, "Role(7)", Role(7).String())
}

func methodNames(ms []*model.MethodSymbol) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Name)
	}

	return out
}
