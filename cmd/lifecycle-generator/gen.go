package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lifecycle-generator/internal/diagnostic"
	"lifecycle-generator/internal/gen"
)

type genOptions struct {
	out         string
	archive     bool
	diagnostics string
	jobs        int
	clearCache  bool
}

func newGenCmd(root *rootOptions) *cobra.Command {
	opts := &genOptions{}

	cmd := &cobra.Command{
		Use:   "gen MODEL...",
		Short: "Generate lifecycle fragments",
		Long: `Generate one "<file>.<Type>.Lifecycle.g.cs" fragment per class declaring
lifecycle methods. Fragments go to the output directory, or to stdout as a
txtar archive with --archive.`,
		Args: modelArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd, root, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.out, "out", "o", "", "output directory (overrides [output].dir)")
	flags.BoolVar(&opts.archive, "archive", false, "write a txtar archive to stdout")
	flags.StringVar(&opts.diagnostics, "diagnostics", "", "where diagnostics go: inline, report or both")
	flags.IntVarP(&opts.jobs, "jobs", "j", 0, "types synthesized concurrently (overrides [output].jobs)")
	flags.BoolVar(&opts.clearCache, "clear-cache", false, "drop cached fragments before generating")

	return cmd
}

func runGen(cmd *cobra.Command, root *rootOptions, opts *genOptions, args []string) error {
	s, err := newSession(cmd, root)
	if err != nil {
		return err
	}

	if opts.out != "" {
		s.cfg.Output.Dir = opts.out
	}

	if opts.archive {
		s.cfg.Output.Archive = true
	}

	if opts.diagnostics != "" {
		s.cfg.Output.Diagnostics = opts.diagnostics
	}

	if opts.jobs > 0 {
		s.cfg.Output.Jobs = opts.jobs
	}

	s.clearCache = opts.clearCache

	gc, err := s.cfg.GeneratorConfig()
	if err != nil {
		return err
	}

	idx, err := s.discover(args)
	if err != nil {
		return err
	}

	fragments, err := s.generate(cmd.Context(), idx, gc)
	if err != nil {
		return err
	}

	if err := writeOutput(cmd.OutOrStdout(), s.cfg.Output, gen.Files(fragments)); err != nil {
		return err
	}

	s.logger.Debug("fragments written", "count", len(fragments), "dir", s.cfg.Output.Dir, "archive", s.cfg.Output.Archive)

	// Hints of types without contributors have no fragment to live in.
	var diags diagnostic.Diagnostics
	diags.Merge(idx.Hints)

	if gc.Diagnostics.Report() {
		diags.Merge(gen.Diagnostics(fragments))
	}

	if _, err := s.report(diags); err != nil {
		return err
	}

	if n := failures(fragments); n > 0 {
		return fmt.Errorf("%d of %d types could not be generated", n, len(fragments))
	}

	return nil
}

// allDiagnostics merges discovery hints with the diagnostics of every fragment.
func allDiagnostics(hints diagnostic.Diagnostics, fragments []*gen.Fragment) diagnostic.Diagnostics {
	var all diagnostic.Diagnostics
	all.Merge(hints)
	all.Merge(gen.Diagnostics(fragments))

	return all
}
