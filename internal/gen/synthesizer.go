package gen

import (
	"fmt"
	"strings"

	"lifecycle-generator/internal/common"
	"lifecycle-generator/internal/diagnostic"
	"lifecycle-generator/internal/lifecycle"
	"lifecycle-generator/internal/match"
	"lifecycle-generator/internal/model"
)

const (
	fragmentHeader = "// Code generated by lifecycle-generator. DO NOT EDIT."
	adapterName    = "__LifecycleDisposables"
)

// section is one lifecycle phase of a fragment: its members and the
// diagnostics reported while synthesizing them.
type section struct {
	members []string
	diags   diagnostic.Diagnostics
}

// disposeSection is the dispose phase plus the hooks it hands to the
// constructor and finalizer phases.
type disposeSection struct {
	section

	constructorHook string
	finalizerHook   string
}

// Synthesizer renders the lifecycle members of the types of an Index.
// It is safe for concurrent use.
type Synthesizer struct {
	idx  *lifecycle.Index
	mode DiagnosticsMode
}

// NewSynthesizer creates a Synthesizer.
func NewSynthesizer(idx *lifecycle.Index, mode DiagnosticsMode) *Synthesizer {
	return &Synthesizer{idx: idx, mode: mode}
}

// Synthesize builds the fragment of one type: the Initialize entry point and
// constructors, the dispose members and the finalizer, wrapped in the type's
// namespace and partial declaration.
func (s *Synthesizer) Synthesize(lc *lifecycle.TypeLifecycle) *Fragment {
	f := &Fragment{
		Type:     lc.Owner.ID,
		FilePath: lc.Owner.FilePath,
		Filename: FragmentFilename(lc.Owner),
	}

	sections, err := s.sections(lc, f)
	if err != nil {
		f.Err = err

		var internal section
		internal.diags.AddError(diagnostic.CodeInternal,
			fmt.Sprintf("Something went wrong while generating the lifecycle of %s: %v.", lc.Name(), err),
			lc.Name(), lc.Owner.Location)

		sections = []section{internal}
	}

	f.Diagnostics.Merge(lc.Hints)
	for _, sec := range sections {
		f.Diagnostics.Merge(sec.diags)
	}

	f.Content = s.render(lc, sections)

	return f
}

func (s *Synthesizer) sections(lc *lifecycle.TypeLifecycle, f *Fragment) ([]section, error) {
	dispose, err := s.dispose(lc)
	if err != nil {
		return nil, err
	}

	f.ConstructorHook = dispose.constructorHook
	f.FinalizerHook = dispose.finalizerHook

	var sections []section

	if len(lc.Constructors) > 0 || f.ConstructorHook != "" {
		ctor, err := s.constructor(lc, f.ConstructorHook)
		if err != nil {
			return nil, err
		}

		sections = append(sections, ctor)
	}

	if len(lc.Disposes) > 0 {
		sections = append(sections, dispose.section)
	}

	if len(lc.Finalizers) > 0 || f.FinalizerHook != "" {
		fin, err := s.finalizer(lc, f.FinalizerHook)
		if err != nil {
			return nil, err
		}

		sections = append(sections, fin)
	}

	return sections, nil
}

func (s *Synthesizer) constructor(lc *lifecycle.TypeLifecycle, hook string) (section, error) {
	plan := lifecycle.UnifyConstructor(lc, s.idx)
	sec := section{diags: plan.Diagnostics}

	if plan.SynthesizeParameterless {
		member, err := renderMember("parameterless", parameterlessData{
			Access: plan.ParameterlessAccessibility.String(),
			Name:   lc.Owner.ID.Name,
		})
		if err != nil {
			return sec, err
		}

		sec.members = append(sec.members, member)
	}

	body := common.Map(plan.Invocations, invocationText)
	if hook != "" {
		body = append([]string{hook}, body...)
	}

	member, err := renderMember("initialize", initializeData{
		Parameters: strings.Join(common.Map(plan.Signature, lifecycle.UnifiedParameter.Declaration), ", "),
		Body:       strings.Join(body, "\n"),
	})
	if err != nil {
		return sec, err
	}

	sec.members = append(sec.members, member)

	return sec, nil
}

func (s *Synthesizer) dispose(lc *lifecycle.TypeLifecycle) (disposeSection, error) {
	var sec disposeSection
	if len(lc.Disposes) == 0 {
		return sec, nil
	}

	sec.diags = lifecycle.CheckShape(lc, lifecycle.RoleDispose)

	cls, err := lifecycle.ClassifyDispose(lc, s.idx)
	if err != nil {
		return sec, err
	}

	caps := s.idx.Options.Capabilities
	data := disposeData{
		Disposable: globalName(caps.Disposable),
		Member:     caps.DisposeMember,
		Access:     cls.Accessibility().String(),
		Owner:      lc.Owner.NameWithGenerics(),
		Body:       strings.Join(calls(lc.Disposes, ""), "\n"),
	}

	var tmpl string

	switch cls.Kind {
	case lifecycle.DisposeKindNoExistingImplementation:
		if lc.Owner.Sealed {
			tmpl = "disposeSealed"
		} else {
			tmpl = "disposeUnsealed"
			data.SuppressFinalize = len(lc.Finalizers) == 0
			sec.finalizerHook = caps.DisposeMember + "(false);"
		}

	case lifecycle.DisposeKindPatternInheritedFromAncestor,
		lifecycle.DisposeKindPatternOnUnrelatedBaseOverridable:
		tmpl = "disposeOverride"

	case lifecycle.DisposeKindSimpleDisposeOnUnrelatedBaseOverridable:
		tmpl = "disposeSimpleOverride"

	case lifecycle.DisposeKindExtensibleRegistrationCapability:
		tmpl = "registration"
		data.Body = strings.Join(calls(lc.Disposes, "_parent"), "\n")
		sec.constructorHook = registrationHook(cls, caps)

	case lifecycle.DisposeKindHandWrittenPatternOnSelf,
		lifecycle.DisposeKindPatternOnUnrelatedBaseSealed,
		lifecycle.DisposeKindPatternOnUnrelatedBaseNonOverridable,
		lifecycle.DisposeKindSimpleHandWrittenDispose,
		lifecycle.DisposeKindSimpleDisposeOnUnrelatedBaseSealed,
		lifecycle.DisposeKindSimpleDisposeOnUnrelatedBaseNonOverridable:
		sec.diags.Merge(s.disposeConflict(lc, cls))

		return sec, nil

	default:
		return sec, fmt.Errorf("%w: unexpected kind %s", lifecycle.ErrUnclassifiedDispose, cls.Kind)
	}

	member, err := renderMember(tmpl, data)
	if err != nil {
		return sec, err
	}

	sec.members = append(sec.members, member)

	return sec, nil
}

func (s *Synthesizer) finalizer(lc *lifecycle.TypeLifecycle, hook string) (section, error) {
	sec := section{diags: lifecycle.CheckShape(lc, lifecycle.RoleFinalizer)}

	if existing := lc.Owner.HandWrittenFinalizer(); existing != nil {
		attr := s.attributeName(lifecycle.RoleFinalizer)
		reason := fmt.Sprintf("has methods marked with the '[%s]' attribute", attr)
		if len(lc.Finalizers) == 0 {
			reason = "generates the dispose pattern, which releases unmanaged resources through " +
				strings.TrimSuffix(hook, ";")
		}

		sec.diags.AddError(diagnostic.CodeHandWrittenFinalizer,
			fmt.Sprintf("%s %s, so the finalizer is generated and must not be written by hand. "+
				"Move the code of %s to a method marked with '[%s]'.",
				lc.Owner.ID.Name, reason, existing.LocationText(), attr),
			lc.Name(), existing.Location)

		return sec, nil
	}

	body := calls(lc.Finalizers, "")
	if hook != "" {
		body = append([]string{hook}, body...)
	}

	member, err := renderMember("finalizer", finalizerData{
		Name: lc.Owner.ID.Name,
		Body: strings.Join(body, "\n"),
	})
	if err != nil {
		return sec, err
	}

	sec.members = append(sec.members, member)

	return sec, nil
}

// disposeConflict describes why the existing disposal code prevents generation.
func (s *Synthesizer) disposeConflict(lc *lifecycle.TypeLifecycle, cls lifecycle.DisposeClassification) diagnostic.Diagnostics {
	var (
		diags diagnostic.Diagnostics
		attr  = s.attributeName(lifecycle.RoleDispose)
		name  = lc.Owner.ID.Name
		base  = cls.DeclaringType()
		intro = fmt.Sprintf("%s has methods marked with the '[%s]' attribute", name, attr)
		drop  = fmt.Sprintf("You have either to remove the inheritance, or remove the '[%s]' attribute.", attr)
	)

	switch cls.Kind {
	case lifecycle.DisposeKindHandWrittenPatternOnSelf:
		diags.AddError(diagnostic.CodeHandWrittenDisposePattern,
			fmt.Sprintf("%s, so the dispose pattern is generated and must not be implemented by hand. "+
				"Move the code of %s to a method marked with '[%s]'.", intro, cls.Method.LocationText(), attr),
			lc.Name(), cls.Method.Location)

	case lifecycle.DisposeKindSimpleHandWrittenDispose:
		diags.AddError(diagnostic.CodeHandWrittenDispose,
			fmt.Sprintf("%s, so '%s' is generated and must not be implemented by hand. "+
				"Move the code of %s to a method marked with '[%s]'.", intro, cls.Method.Name, cls.Method.LocationText(), attr),
			lc.Name(), cls.Method.Location)

	case lifecycle.DisposeKindPatternOnUnrelatedBaseSealed:
		diags.AddError(diagnostic.CodeSealedDisposePatternOnBase,
			fmt.Sprintf("%s, but the base class %s sealed its implementation of %s. %s",
				intro, base, cls.Method.LocationText(), drop),
			lc.Name(), lc.Owner.Location)

	case lifecycle.DisposeKindSimpleDisposeOnUnrelatedBaseSealed:
		diags.AddError(diagnostic.CodeSealedDisposeOnBase,
			fmt.Sprintf("%s, but the base class %s sealed its implementation of %s. %s",
				intro, base, cls.Method.LocationText(), drop),
			lc.Name(), lc.Owner.Location)

	case lifecycle.DisposeKindPatternOnUnrelatedBaseNonOverridable:
		diags.AddError(diagnostic.CodeNonOverridableDisposePatternOnBase,
			fmt.Sprintf("%s, but the base class %s did not implement the dispose pattern properly: %s is not virtual. "+
				"Make it virtual on %s, remove the inheritance, or remove the '[%s]' attribute.",
				intro, base, cls.Method.LocationText(), base, attr),
			lc.Name(), lc.Owner.Location)

	case lifecycle.DisposeKindSimpleDisposeOnUnrelatedBaseNonOverridable:
		diags.AddError(diagnostic.CodeNonOverridableDisposeOnBase,
			fmt.Sprintf("%s, but %s on the base class %s cannot be overridden. "+
				"Make it virtual on %s, remove the inheritance, or remove the '[%s]' attribute.",
				intro, cls.Method.LocationText(), base, base, attr),
			lc.Name(), lc.Owner.Location)
	}

	return diags
}

// attributeName returns the short attribute name of a role, e.g. "DisposeMethod".
func (s *Synthesizer) attributeName(role lifecycle.Role) string {
	return match.SimpleName(model.NormalizeAttribute(s.idx.Options.Attributes.For(role)))
}

func (s *Synthesizer) render(lc *lifecycle.TypeLifecycle, sections []section) []byte {
	var w codeWriter

	w.Line(fragmentHeader)
	w.Line("using global::System;")
	w.Line("")

	class := func() {
		w.Block(s.declaration(lc), func() {
			first := true
			emit := func(text string) {
				if text == "" {
					return
				}

				if !first {
					w.Line("")
				}

				first = false

				w.Text(text)
			}

			emit(s.directives(lc.Hints))

			for _, sec := range sections {
				emit(s.directives(sec.diags))

				for _, m := range sec.members {
					emit(m)
				}
			}
		})
	}

	if ns := lc.Owner.ID.Namespace; ns != "" {
		w.Block("namespace "+ns, class)
	} else {
		class()
	}

	return w.Bytes()
}

func (s *Synthesizer) declaration(lc *lifecycle.TypeLifecycle) string {
	decl := "partial class " + lc.Owner.NameWithGenerics()
	if len(lc.Disposes) > 0 {
		decl += " : " + globalName(s.idx.Options.Capabilities.Disposable)
	}

	return decl
}

// directives renders errors and warnings as compiler directives, or nothing
// when diagnostics are not surfaced inline.
func (s *Synthesizer) directives(diags diagnostic.Diagnostics) string {
	if !s.mode.Inline() {
		return ""
	}

	var lines []string

	for _, d := range diags.Errors {
		lines = append(lines, "#error "+directiveText(d))
	}

	for _, d := range diags.Warnings {
		lines = append(lines, "#warning "+directiveText(d))
	}

	return strings.Join(lines, "\n")
}

// directiveText renders a diagnostic on a single line.
func directiveText(d diagnostic.Diagnostic) string {
	text := fmt.Sprintf("%s: %s", d.Code, d.Message)
	if len(d.Suggestions) > 0 {
		text += " (hint: " + strings.Join(d.Suggestions, "; ") + ")"
	}

	return strings.Join(strings.Fields(text), " ")
}

// invocationText renders a constructor contributor call with named arguments.
func invocationText(inv lifecycle.Invocation) string {
	args := common.Map(inv.Arguments, func(a string) string { return a + ": " + a })

	return fmt.Sprintf("%s(%s);", inv.Method.Name, strings.Join(args, ", "))
}

// calls renders parameterless contributor calls, optionally on target.
func calls(methods []*model.MethodSymbol, target string) []string {
	return common.Map(methods, func(m *model.MethodSymbol) string {
		if target == "" {
			return m.Name + "();"
		}

		return target + "." + m.Name + "();"
	})
}

// registrationHook registers the disposable adapter at construction time.
// An implementation that is not a plain member (explicit interface
// implementation) is reached through the interface.
func registrationHook(cls lifecycle.DisposeClassification, caps lifecycle.Capabilities) string {
	call := fmt.Sprintf("%s(new %s(this));", caps.RegisterMember, adapterName)
	if cls.Method != nil && cls.Method.Name == caps.RegisterMember {
		return call
	}

	return fmt.Sprintf("((%s)this).%s", globalName(caps.ExtensibleDisposable), call)
}

func globalName(name string) string {
	return "global::" + strings.TrimPrefix(name, "global::")
}
