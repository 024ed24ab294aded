package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lifecycle-generator/internal/gen"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	var warningsAsErrors bool

	cmd := &cobra.Command{
		Use:   "check MODEL...",
		Short: "Report lifecycle diagnostics without writing fragments",
		Long: `Run discovery and synthesis, print every diagnostic and exit with status 1
when an error is found.`,
		Args: modelArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, root)
			if err != nil {
				return err
			}

			gc, err := s.cfg.GeneratorConfig()
			if err != nil {
				return err
			}

			gc.Diagnostics = gen.DiagnosticsReport

			idx, err := s.discover(args)
			if err != nil {
				return err
			}

			fragments, err := s.generate(cmd.Context(), idx, gc)
			if err != nil {
				return err
			}

			diags := allDiagnostics(idx.Hints, fragments)
			if warningsAsErrors {
				diags.PromoteWarnings()
			}

			summary, err := s.report(diags)
			if err != nil {
				return err
			}

			if summary.Failed(warningsAsErrors) {
				return errFailed
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d types checked, no errors\n", len(fragments))

			return nil
		},
	}

	cmd.Flags().BoolVar(&warningsAsErrors, "warnings-as-errors", false, "treat warnings as errors")

	return cmd
}
