package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"lifecycle-generator/internal/cache"
	"lifecycle-generator/internal/config"
	"lifecycle-generator/internal/diagnostic"
	"lifecycle-generator/internal/gen"
	"lifecycle-generator/internal/lifecycle"
	"lifecycle-generator/internal/model"
	"lifecycle-generator/internal/report"
)

const defaultConfigHint = "./" + config.DefaultFile

// session carries what every command needs: configuration, logger and the
// diagnostics printer.
type session struct {
	cfg     config.Config
	logger  *slog.Logger
	printer *report.Printer

	// clearCache drops cached fragments before the next generate.
	clearCache bool
}

func newSession(cmd *cobra.Command, opts *rootOptions) (*session, error) {
	path := opts.configPath
	if path == "" {
		path = config.DefaultFile
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}

	stderr := cmd.ErrOrStderr()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	f, _ := stderr.(*os.File)

	useColor, err := report.ColorEnabled(opts.color, f)
	if err != nil {
		return nil, err
	}

	printer, err := report.NewPrinter(stderr, report.Options{Color: useColor, MaxDiagnostics: opts.maxDiagnostics})
	if err != nil {
		return nil, err
	}

	logger.Debug("configuration loaded", "path", path, "diagnostics", cfg.Output.Diagnostics, "jobs", cfg.Output.Jobs)

	return &session{cfg: cfg, logger: logger, printer: printer}, nil
}

// discover loads the symbol model files and runs lifecycle discovery.
func (s *session) discover(paths []string) (*lifecycle.Index, error) {
	graph, err := model.LoadGraph(paths...)
	if err != nil {
		return nil, err
	}

	idx, err := lifecycle.Discover(graph, s.cfg.LifecycleOptions())
	if err != nil {
		return nil, err
	}

	s.logger.Debug("discovery done", "types", graph.Len(), "lifecycles", idx.Len(), "hints", idx.Hints.Len())

	return idx, nil
}

// generate synthesizes the fragments of idx, through the fragment cache when
// it is enabled.
func (s *session) generate(ctx context.Context, idx *lifecycle.Index, gc gen.Config) ([]*gen.Fragment, error) {
	g := gen.NewGenerator(gc).WithLogger(s.logger)

	if s.cfg.Cache.Enabled {
		c, err := cache.Open(s.cfg.Cache.Dir, version+"/"+gc.Diagnostics.String())
		if err != nil {
			return nil, err
		}

		if s.clearCache {
			if err := c.Clear(); err != nil {
				return nil, err
			}

			s.logger.Info("fragment cache cleared", "dir", c.Dir())
		}

		s.logger.Debug("fragment cache enabled", "dir", c.Dir())
		g = g.WithCache(c)
	} else if s.clearCache {
		s.logger.Warn("fragment cache is disabled, nothing to clear")
	}

	return g.Generate(ctx, idx)
}

// failures counts fragments that hit an internal error.
func failures(fragments []*gen.Fragment) int {
	n := 0

	for _, f := range fragments {
		if f.Err != nil {
			n++
		}
	}

	return n
}

func (s *session) report(diags diagnostic.Diagnostics) (report.Summary, error) {
	return s.printer.Print(diags)
}

func writeOutput(w io.Writer, cfg config.OutputConfig, files []gen.GeneratedFile) error {
	if cfg.Archive {
		return gen.WriteArchive(w, files)
	}

	return gen.WriteFiles(files, cfg.Dir)
}

func modelArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s needs at least one symbol model file", cmd.Name())
	}

	return nil
}
