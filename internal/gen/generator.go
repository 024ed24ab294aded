package gen

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"lifecycle-generator/internal/lifecycle"
)

// Cache stores fragments between runs. Implementations key entries on
// everything that can change the fragment of a type.
type Cache interface {
	Load(idx *lifecycle.Index, lc *lifecycle.TypeLifecycle) (*Fragment, bool)
	Store(idx *lifecycle.Index, lc *lifecycle.TypeLifecycle, f *Fragment) error
}

// Generator produces the fragments of every type of an Index.
type Generator struct {
	config Config
	logger *slog.Logger
	cache  Cache
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config Config) *Generator {
	return &Generator{
		config: config,
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithLogger sets the logger used for progress and cache messages.
func (g *Generator) WithLogger(logger *slog.Logger) *Generator {
	g.logger = logger
	return g
}

// WithCache enables fragment caching.
func (g *Generator) WithCache(cache Cache) *Generator {
	g.cache = cache
	return g
}

// Generate synthesizes one fragment per type of idx. Types are processed
// concurrently, up to Config.Jobs at a time; the result is ordered with
// ancestors before descendants, then by type name.
//
// Diagnostics never fail the run. A type hitting an internal invariant
// violation gets a fragment with Err set; the other types are unaffected.
// The returned error is non-nil only when ctx is done.
func (g *Generator) Generate(ctx context.Context, idx *lifecycle.Index) ([]*Fragment, error) {
	types := idx.All()

	order := generationOrder(types)

	synth := NewSynthesizer(idx, g.config.Diagnostics)
	fragments := make([]*Fragment, len(types))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(g.config.Jobs, 1))

	for i, lc := range types {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			fragments[i] = g.fragment(idx, synth, lc)

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("generating fragments: %w", err)
	}

	out := make([]*Fragment, 0, len(order))
	for _, i := range order {
		out = append(out, fragments[i])
	}

	g.logger.Debug("fragments generated", "types", len(out), "jobs", g.config.Jobs)

	return out, nil
}

func (g *Generator) fragment(idx *lifecycle.Index, synth *Synthesizer, lc *lifecycle.TypeLifecycle) *Fragment {
	if g.cache != nil {
		if f, ok := g.cache.Load(idx, lc); ok {
			g.logger.Debug("fragment cache hit", "type", lc.Name())
			return f
		}

		g.logger.Debug("fragment cache miss", "type", lc.Name())
	}

	f := synth.Synthesize(lc)
	if f.Err != nil {
		g.logger.Error("type skipped", "type", lc.Name(), "error", f.Err)
		return f
	}

	if g.cache != nil {
		if err := g.cache.Store(idx, lc, f); err != nil {
			g.logger.Warn("fragment not cached", "type", lc.Name(), "error", err)
		}
	}

	return f
}

// generationOrder sorts lifecycles so that ancestors come first. An ancestor
// has strictly fewer lifecycle bases than its descendants. types is sorted by
// name, so ties keep name order.
func generationOrder(types []*lifecycle.TypeLifecycle) []int {
	order := make([]int, len(types))
	for i := range order {
		order[i] = i
	}

	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(len(types[a].Bases), len(types[b].Bases))
	})

	return order
}
