package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"lifecycle-generator/internal/common"
	"lifecycle-generator/internal/lifecycle"
	"lifecycle-generator/internal/model"
)

// explanation is what explain dumps for one type.
type explanation struct {
	Type         string
	Bases        []string
	Constructors []string
	Disposes     []string
	Finalizers   []string
	Initialize   *initializeExplanation
	Dispose      *disposeExplanation
	Diagnostics  []string
}

type initializeExplanation struct {
	Signature               []string
	CanBeParameterless      bool
	SynthesizeParameterless bool
}

type disposeExplanation struct {
	Kind   string
	Method string
	Error  string
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

func newExplainCmd(root *rootOptions) *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "explain MODEL...",
		Short: "Show discovery and classification results per type",
		Args:  modelArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, root)
			if err != nil {
				return err
			}

			idx, err := s.discover(args)
			if err != nil {
				return err
			}

			types := idx.All()
			if typeName != "" {
				lc := idx.Lookup(model.ParseTypeID(typeName))
				if lc == nil {
					return fmt.Errorf("type %s has no lifecycle methods", typeName)
				}

				types = []*lifecycle.TypeLifecycle{lc}
			}

			for _, lc := range types {
				dumper.Fdump(cmd.OutOrStdout(), explain(idx, lc))
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "", "explain a single type (full name)")

	return cmd
}

func explain(idx *lifecycle.Index, lc *lifecycle.TypeLifecycle) explanation {
	e := explanation{
		Type:         lc.Name(),
		Bases:        common.Map(lc.Bases, (*lifecycle.TypeLifecycle).Name),
		Constructors: common.Map(lc.Constructors, (*model.MethodSymbol).DisplayName),
		Disposes:     common.Map(lc.Disposes, (*model.MethodSymbol).DisplayName),
		Finalizers:   common.Map(lc.Finalizers, (*model.MethodSymbol).DisplayName),
	}

	for _, d := range lc.Hints.All() {
		e.Diagnostics = append(e.Diagnostics, d.String())
	}

	if len(lc.Constructors) > 0 {
		plan := lifecycle.UnifyConstructor(lc, idx)
		e.Initialize = &initializeExplanation{
			Signature:               common.Map(plan.Signature, lifecycle.UnifiedParameter.Declaration),
			CanBeParameterless:      plan.CanBeParameterless,
			SynthesizeParameterless: plan.SynthesizeParameterless,
		}

		for _, d := range plan.Diagnostics.All() {
			e.Diagnostics = append(e.Diagnostics, d.String())
		}
	}

	if len(lc.Disposes) > 0 {
		e.Dispose = &disposeExplanation{}

		cls, err := lifecycle.ClassifyDispose(lc, idx)
		if err != nil {
			e.Dispose.Error = err.Error()
		} else {
			e.Dispose.Kind = cls.Kind.String()
			if cls.Method != nil {
				e.Dispose.Method = cls.Method.DisplayName()
			}
		}
	}

	return e
}
