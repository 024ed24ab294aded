package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifecycle-generator/internal/model"
)

func disposeBool(mods func(m *model.MethodSymbol)) *model.MethodSymbol {
	m := method("Dispose", "", "bool isDisposing")
	m.Accessibility = model.AccessibilityProtected
	mods(m)

	return m
}

func disposeSimple(mods func(m *model.MethodSymbol)) *model.MethodSymbol {
	m := method("Dispose", "")
	m.Accessibility = model.AccessibilityPublic
	mods(m)

	return m
}

func externalBase(methods ...*model.MethodSymbol) *model.TypeSymbol {
	base := class("Lib.Base", "", methods...)
	base.External = true
	base.Interfaces = []string{"System.IDisposable"}

	return base
}

func virtual(m *model.MethodSymbol)        { m.Virtual = true }
func sealedOverride(m *model.MethodSymbol) { m.Override, m.Sealed = true, true }
func nonVirtual(*model.MethodSymbol)       {}

func TestClassifyDispose(t *testing.T) {
	tests := []struct {
		name       string
		self       func() *model.TypeSymbol
		extra      []*model.TypeSymbol
		want       DisposeKind
		wantMethod string
	}{
		{
			name: "no existing implementation",
			self: func() *model.TypeSymbol { return class("App.A", "", method("Close", disposeAttr)) },
			want: DisposeKindNoExistingImplementation,
		},
		{
			name: "hand-written pattern on self",
			self: func() *model.TypeSymbol {
				return class("App.A", "", method("Close", disposeAttr), disposeBool(virtual))
			},
			want:       DisposeKindHandWrittenPatternOnSelf,
			wantMethod: "A.Dispose(bool)",
		},
		{
			name: "hand-written pattern on self wins over an ancestor lifecycle",
			self: func() *model.TypeSymbol {
				return class("App.A", "App.Parent", method("Close", disposeAttr), disposeBool(func(m *model.MethodSymbol) { m.Override = true }))
			},
			extra:      []*model.TypeSymbol{class("App.Parent", "", method("CloseParent", disposeAttr))},
			want:       DisposeKindHandWrittenPatternOnSelf,
			wantMethod: "A.Dispose(bool)",
		},
		{
			name: "pattern inherited from an ancestor lifecycle",
			self: func() *model.TypeSymbol { return class("App.A", "App.Middle", method("Close", disposeAttr)) },
			extra: []*model.TypeSymbol{
				class("App.Middle", "App.Parent"),
				class("App.Parent", "", method("CloseParent", disposeAttr)),
			},
			want: DisposeKindPatternInheritedFromAncestor,
		},
		{
			name:       "overridable pattern on an unrelated base",
			self:       func() *model.TypeSymbol { return class("App.A", "Lib.Base", method("Close", disposeAttr)) },
			extra:      []*model.TypeSymbol{externalBase(disposeBool(virtual), disposeSimple(nonVirtual))},
			want:       DisposeKindPatternOnUnrelatedBaseOverridable,
			wantMethod: "Base.Dispose(bool)",
		},
		{
			name:       "sealed pattern on an unrelated base",
			self:       func() *model.TypeSymbol { return class("App.A", "Lib.Base", method("Close", disposeAttr)) },
			extra:      []*model.TypeSymbol{externalBase(disposeBool(sealedOverride))},
			want:       DisposeKindPatternOnUnrelatedBaseSealed,
			wantMethod: "Base.Dispose(bool)",
		},
		{
			name:       "non-overridable pattern on an unrelated base",
			self:       func() *model.TypeSymbol { return class("App.A", "Lib.Base", method("Close", disposeAttr)) },
			extra:      []*model.TypeSymbol{externalBase(disposeBool(nonVirtual))},
			want:       DisposeKindPatternOnUnrelatedBaseNonOverridable,
			wantMethod: "Base.Dispose(bool)",
		},
		{
			name: "extensible registration capability",
			self: func() *model.TypeSymbol {
				typ := class("App.A", "", method("Close", disposeAttr),
					method("RegisterExtension", "", "global::System.IDisposable extension"))
				typ.Interfaces = []string{"global::Uno.Disposables.IExtensibleDisposable"}

				return typ
			},
			want:       DisposeKindExtensibleRegistrationCapability,
			wantMethod: "A.RegisterExtension(global::System.IDisposable)",
		},
		{
			name: "simple hand-written dispose",
			self: func() *model.TypeSymbol {
				typ := class("App.A", "", method("Close", disposeAttr), disposeSimple(nonVirtual))
				typ.Interfaces = []string{"System.IDisposable"}

				return typ
			},
			want:       DisposeKindSimpleHandWrittenDispose,
			wantMethod: "A.Dispose()",
		},
		{
			name:       "overridable simple dispose on an unrelated base",
			self:       func() *model.TypeSymbol { return class("App.A", "Lib.Base", method("Close", disposeAttr)) },
			extra:      []*model.TypeSymbol{externalBase(disposeSimple(virtual))},
			want:       DisposeKindSimpleDisposeOnUnrelatedBaseOverridable,
			wantMethod: "Base.Dispose()",
		},
		{
			name:       "sealed simple dispose on an unrelated base",
			self:       func() *model.TypeSymbol { return class("App.A", "Lib.Base", method("Close", disposeAttr)) },
			extra:      []*model.TypeSymbol{externalBase(disposeSimple(sealedOverride))},
			want:       DisposeKindSimpleDisposeOnUnrelatedBaseSealed,
			wantMethod: "Base.Dispose()",
		},
		{
			name:       "non-overridable simple dispose on an unrelated base",
			self:       func() *model.TypeSymbol { return class("App.A", "Lib.Base", method("Close", disposeAttr)) },
			extra:      []*model.TypeSymbol{externalBase(disposeSimple(nonVirtual))},
			want:       DisposeKindSimpleDisposeOnUnrelatedBaseNonOverridable,
			wantMethod: "Base.Dispose()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := discover(t, append([]*model.TypeSymbol{tt.self()}, tt.extra...)...)

			got, err := ClassifyDispose(lookup(t, idx, "App.A"), idx)
			require.NoError(t, err)

			assert.Equal(t, tt.want, got.Kind, "got %s", got.Kind)

			if tt.wantMethod == "" {
				assert.Nil(t, got.Method)
			} else {
				require.NotNil(t, got.Method)
				assert.Equal(t, tt.wantMethod, got.Method.DisplayName())
			}
		})
	}
}

func TestClassifyDispose_Unclassified(t *testing.T) {
	typ := class("App.A", "", method("Close", disposeAttr))
	typ.Interfaces = []string{"System.IDisposable"}

	idx := discover(t, typ)

	_, err := ClassifyDispose(lookup(t, idx, "App.A"), idx)
	require.ErrorIs(t, err, ErrUnclassifiedDispose)
	assert.Contains(t, err.Error(), "App.A")
}

func TestDisposeClassification_Helpers(t *testing.T) {
	assert.True(t, DisposeKindHandWrittenPatternOnSelf.IsError())
	assert.True(t, DisposeKindSimpleDisposeOnUnrelatedBaseSealed.IsError())
	assert.False(t, DisposeKindExtensibleRegistrationCapability.IsError())
	assert.False(t, DisposeKindNoExistingImplementation.IsError())

	assert.True(t, DisposeKindPatternInheritedFromAncestor.ExtendsPattern())
	assert.True(t, DisposeKindPatternOnUnrelatedBaseOverridable.ExtendsPattern())
	assert.False(t, DisposeKindSimpleDisposeOnUnrelatedBaseOverridable.ExtendsPattern())

	inherited := DisposeClassification{Kind: DisposeKindPatternInheritedFromAncestor}
	assert.Equal(t, model.AccessibilityProtected, inherited.Accessibility())
	assert.Empty(t, inherited.DeclaringType())

	base := &model.MethodSymbol{Name: "Dispose", Accessibility: model.AccessibilityProtectedInternal, Owner: model.ParseTypeID("Lib.Base")}
	onBase := DisposeClassification{Kind: DisposeKindPatternOnUnrelatedBaseOverridable, Method: base}
	assert.Equal(t, model.AccessibilityProtectedInternal, onBase.Accessibility())
	assert.Equal(t, "Base", onBase.DeclaringType())

	assert.Equal(t, "PatternOnUnrelatedBaseSealed", DisposeKindPatternOnUnrelatedBaseSealed.String())
	assert.Equal(t, "SimpleDisposeOnUnrelatedBaseNonOverridable", DisposeKindSimpleDisposeOnUnrelatedBaseNonOverridable.String())
}

func TestClassifyDispose_Descendant(t *testing.T) {
	element := func() *model.TypeSymbol {
		typ := class("Uno.UI.Element", "", method("RegisterExtension", "", "global::System.IDisposable extension"))
		typ.External = true
		typ.Interfaces = []string{"Uno.Disposables.IExtensibleDisposable"}

		return typ
	}

	tests := []struct {
		name       string
		root       func() *model.TypeSymbol
		parentBase string
		want       DisposeKind
		wantParent DisposeKind
		wantMethod string
	}{
		{
			name:       "of a fresh unsealed pattern",
			want:       DisposeKindPatternInheritedFromAncestor,
			wantParent: DisposeKindNoExistingImplementation,
		},
		{
			name:       "of an overridden pattern",
			root:       func() *model.TypeSymbol { return externalBase(disposeBool(virtual)) },
			parentBase: "Lib.Base",
			want:       DisposeKindPatternInheritedFromAncestor,
			wantParent: DisposeKindPatternOnUnrelatedBaseOverridable,
		},
		{
			name:       "of a registration",
			root:       element,
			parentBase: "Uno.UI.Element",
			want:       DisposeKindExtensibleRegistrationCapability,
			wantParent: DisposeKindExtensibleRegistrationCapability,
			wantMethod: "Element.RegisterExtension(global::System.IDisposable)",
		},
		{
			name:       "of a simple override",
			root:       func() *model.TypeSymbol { return externalBase(disposeSimple(virtual)) },
			parentBase: "Lib.Base",
			want:       DisposeKindSimpleDisposeOnUnrelatedBaseOverridable,
			wantParent: DisposeKindSimpleDisposeOnUnrelatedBaseOverridable,
			wantMethod: "Base.Dispose()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			types := []*model.TypeSymbol{
				class("App.A", tt.parentBase, method("CloseA", disposeAttr)),
				class("App.B", "App.A", method("CloseB", disposeAttr)),
			}
			if tt.root != nil {
				types = append(types, tt.root())
			}

			idx := discover(t, types...)

			parent, err := ClassifyDispose(lookup(t, idx, "App.A"), idx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantParent, parent.Kind, "got %s", parent.Kind)

			got, err := ClassifyDispose(lookup(t, idx, "App.B"), idx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Kind, "got %s", got.Kind)

			if tt.wantMethod == "" {
				assert.Nil(t, got.Method)
			} else {
				require.NotNil(t, got.Method)
				assert.Equal(t, tt.wantMethod, got.Method.DisplayName())
			}
		})
	}
}

func TestClassifyDispose_DescendantOfConflict(t *testing.T) {
	parentType := class("App.A", "", method("CloseA", disposeAttr), disposeBool(nonVirtual))
	parentType.Interfaces = []string{"System.IDisposable"}

	idx := discover(t, parentType, class("App.B", "App.A", method("CloseB", disposeAttr)))

	parent, err := ClassifyDispose(lookup(t, idx, "App.A"), idx)
	require.NoError(t, err)
	require.True(t, parent.IsError())

	got, err := ClassifyDispose(lookup(t, idx, "App.B"), idx)
	require.NoError(t, err)
	assert.Equal(t, DisposeKindPatternOnUnrelatedBaseNonOverridable, got.Kind, "got %s", got.Kind)
	require.NotNil(t, got.Method)
	assert.Equal(t, "A.Dispose(bool)", got.Method.DisplayName())
}
