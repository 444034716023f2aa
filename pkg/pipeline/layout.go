package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/stepviz/pkg/algorithm"
	"github.com/matzehuels/stepviz/pkg/input"
	"github.com/matzehuels/stepviz/pkg/observability"
	"github.com/matzehuels/stepviz/pkg/viz"
)

// =============================================================================
// Adapter construction
// =============================================================================

// AdapterOptions converts pipeline options into adapter options.
func AdapterOptions(alg algorithm.Algorithm, opts Options) []viz.Option {
	out := []viz.Option{
		viz.WithTitle(alg.Name),
		viz.WithSize(float64(opts.Width), float64(opts.Height)),
		viz.WithSeed(opts.Seed),
	}
	if opts.Theme != nil {
		out = append(out, viz.WithTheme(opts.Theme))
	}
	if gl, err := viz.ParseGraphLayout(opts.GraphLayout); err == nil {
		out = append(out, viz.WithGraphLayout(gl))
	}
	if opts.Iterations > 0 {
		out = append(out, viz.WithIterations(opts.Iterations))
	}
	if opts.Directed {
		out = append(out, viz.WithDirected())
	}
	return out
}

// LoadAdapter builds the adapter for alg's family and loads data into it.
func LoadAdapter(ctx context.Context, alg algorithm.Algorithm, data input.Data, opts Options) (viz.Adapter, error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, string(alg.Family), inputSize(data))
	start := time.Now()

	a, err := viz.New(alg.Family, AdapterOptions(alg, opts)...)
	if err == nil {
		err = a.Load(data)
	}
	hooks.OnLayoutComplete(ctx, string(alg.Family), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// inputSize estimates the number of scene elements data produces.
func inputSize(data input.Data) int {
	switch d := data.(type) {
	case input.Array:
		return len(d.Values)
	case *input.Graph:
		return len(d.Nodes) + len(d.Edges)
	case *input.Tree:
		n := d.Normalize().Size()
		return 2*n - 1
	case *input.Grid:
		return d.Rows * d.Cols
	default:
		return 0
	}
}
