package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/stepviz/pkg/algorithm"
	"github.com/matzehuels/stepviz/pkg/input"
	"github.com/matzehuels/stepviz/pkg/render/nodelink"
	"github.com/matzehuels/stepviz/pkg/render/sink"
	"github.com/matzehuels/stepviz/pkg/step"
	"github.com/matzehuels/stepviz/pkg/viz"
)

// =============================================================================
// Single frames
// =============================================================================

// RenderFrame draws the adapter's current scene in one per-frame format. idx
// is the number of steps applied so far; it selects the step record attached
// to JSON frames.
func RenderFrame(ctx context.Context, a viz.Adapter, l step.Log, idx int, format string, opts Options) ([]byte, error) {
	s, d := a.Scene(), a.Decorations()
	switch format {
	case FormatPNG:
		return sink.RenderPNG(s, d, opts.Width, opts.Height)
	case FormatSVG:
		return sink.RenderSVG(s, d, opts.Width, opts.Height), nil
	case FormatJSON:
		var jopts []sink.JSONOption
		if idx > 0 && idx <= l.Len() {
			jopts = append(jopts, sink.WithStep(step.ToRecord(idx-1, l.At(idx-1))))
		}
		return sink.RenderJSON(s, d, jopts...)
	case FormatDOT:
		dot, err := nodelink.ToDOT(s, d, nodelink.Options{Pinned: true})
		return []byte(dot), err
	case FormatGraphviz:
		dot, err := nodelink.ToDOT(s, d, nodelink.Options{Pinned: true})
		if err != nil {
			return nil, err
		}
		return nodelink.RenderSVG(ctx, dot)
	case FormatText:
		cols := int(float64(opts.Width) / sink.CellWidth)
		rows := int(float64(opts.Height) / sink.CellHeight)
		return []byte(sink.RenderText(s, d, cols, rows).Plain()), nil
	default:
		return nil, ValidateFormat(format)
	}
}

// EncodeGIF encodes images as one animation, holding the last frame longer.
func EncodeGIF(images []image.Image, opts Options) ([]byte, error) {
	g := sink.NewGIF(sink.WithDelay(opts.DelayMs), sink.WithHold(3), sink.WithPalette(opts.Theme))
	for _, img := range images {
		g.Add(img)
	}
	var buf bytes.Buffer
	if err := g.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// =============================================================================
// Frame batches
// =============================================================================

// frameJob is the work for one scene index: the per-frame formats still
// missing and whether the GIF needs its raster.
type frameJob struct {
	index   int
	formats []string
	image   bool
}

// frameOut is what a worker produced for one job.
type frameOut struct {
	index int
	data  map[string][]byte
	image image.Image
}

// renderJobs renders jobs, which must be sorted by index, on up to
// opts.Workers goroutines. Jobs are split into contiguous chunks; every chunk
// loads a private adapter and replays forward through its indices.
func renderJobs(ctx context.Context, alg algorithm.Algorithm, data input.Data, l step.Log, jobs []frameJob, opts Options) ([]frameOut, error) {
	out := make([]frameOut, len(jobs))
	if len(jobs) == 0 {
		return out, nil
	}

	workers := max(1, min(opts.Workers, len(jobs)))
	size := (len(jobs) + workers - 1) / workers
	var done atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	for lo := 0; lo < len(jobs); lo += size {
		hi := min(lo+size, len(jobs))
		g.Go(func() error {
			a, err := LoadAdapter(ctx, alg, data, opts)
			if err != nil {
				return err
			}
			applied := 0
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				job := jobs[i]
				for ; applied < job.index; applied++ {
					a.Apply(l.At(applied))
				}

				res := frameOut{index: job.index, data: make(map[string][]byte, len(job.formats))}
				for _, f := range job.formats {
					b, err := RenderFrame(ctx, a, l, job.index, f, opts)
					if err != nil {
						return fmt.Errorf("frame %d %s: %w", job.index, f, err)
					}
					res.data[f] = b
				}
				if job.image {
					res.image = sink.RenderImage(a.Scene(), a.Decorations(), opts.Width, opts.Height)
				}
				out[i] = res

				if opts.Progress != nil {
					opts.Progress(int(done.Add(1)), len(jobs))
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
