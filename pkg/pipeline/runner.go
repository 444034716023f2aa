package pipeline

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"

	"github.com/matzehuels/stepviz/pkg/algorithm"
	"github.com/matzehuels/stepviz/pkg/cache"
	"github.com/matzehuels/stepviz/pkg/input"
	"github.com/matzehuels/stepviz/pkg/observability"
)

// keyTypeFrame labels frame entries in cache hooks.
const keyTypeFrame = "frame"

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger: it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Algorithms *algorithm.Runner
	Cache      cache.Cache
	Keyer      cache.Keyer
	Logger     *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer uses
// the DefaultKeyer and a nil logger uses the default logger.
func NewRunner(algs *algorithm.Runner, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	if algs == nil {
		algs = algorithm.NewRunner(algorithm.NewRegistry(), logger)
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Runner{Algorithms: algs, Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete resolve → load → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result, err := r.Run(ctx, opts)
	if err != nil {
		return nil, err
	}
	opts.Logger.Info("computed step log",
		"algorithm", result.Algorithm.ID,
		"steps", result.Log.Len(),
		"duration", result.Stats.RunTime)

	if err := r.Render(ctx, result, opts); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	opts.Logger.Info("rendered frames",
		"formats", opts.Formats,
		"frames", result.Stats.Frames,
		"cached", result.CacheInfo.Hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Run resolves the algorithm and input and computes the step log. It does
// not render.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	hooks := observability.Pipeline()

	alg, err := r.Algorithms.Registry().Get(opts.Algorithm)
	if err != nil {
		return nil, err
	}
	data, err := ResolveInput(alg.Family, opts)
	if err != nil {
		return nil, err
	}
	for _, f := range opts.Formats {
		if err := ValidateFormatFamily(f, alg.Family); err != nil {
			return nil, err
		}
	}

	hooks.OnRunStart(ctx, alg.ID)
	start := time.Now()
	l, err := r.Algorithms.Run(alg.ID, data)
	elapsed := time.Since(start)
	hooks.OnRunComplete(ctx, alg.ID, l.Len(), elapsed, err)
	if err != nil {
		return nil, err
	}

	return &Result{
		Algorithm: alg,
		Input:     data,
		Log:       l,
		Artifacts: make(map[string][]byte),
		Stats:     Stats{Steps: l.Len(), Elements: inputSize(data), RunTime: elapsed},
	}, nil
}

// Render draws the frames opts asks for into res, serving what it can from
// the cache.
func (r *Runner) Render(ctx context.Context, res *Result, opts Options) error {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	err := r.render(ctx, res, opts)

	res.Stats.RenderTime = time.Since(start)
	res.Stats.Frames = len(res.Frames)
	hooks.OnRenderComplete(ctx, opts.Formats, res.Stats.Frames, res.Stats.RenderTime, err)
	return err
}

func (r *Runner) render(ctx context.Context, res *Result, opts Options) error {
	runHash, err := RunHash(res.Algorithm.ID, res.Input)
	if err != nil {
		return err
	}
	themeHash := ""
	if raw, err := json.Marshal(opts.Theme); err == nil {
		themeHash = cache.Hash(raw)
	}
	keyOpts := func(format string, index int) cache.FrameKeyOpts {
		k := cache.FrameKeyOpts{
			Format:     format,
			Index:      index,
			Width:      opts.Width,
			Height:     opts.Height,
			Layout:     opts.GraphLayout,
			Seed:       opts.Seed,
			Iterations: opts.Iterations,
			Directed:   opts.Directed,
			Theme:      themeHash,
		}
		if format == FormatGIF {
			k.DelayMs = opts.DelayMs
		}
		return k
	}

	indices := opts.FrameIndices(res.Log.Len())
	formats := opts.perFrame()
	cached := make(map[string]map[int][]byte, len(formats))

	// Check the cache.
	var jobs []frameJob
	gifKey := ""
	needImages := false
	if opts.Wants(FormatGIF) {
		gifKey = r.Keyer.FrameKey(runHash, keyOpts(FormatGIF, -1))
		if data, ok := r.lookup(ctx, gifKey, opts.Refresh); ok {
			res.Artifacts[FormatGIF] = data
		} else {
			needImages = true
		}
	}
	for _, idx := range indices {
		job := frameJob{index: idx, image: needImages}
		for _, f := range formats {
			if data, ok := r.lookup(ctx, r.Keyer.FrameKey(runHash, keyOpts(f, idx)), opts.Refresh); ok {
				if cached[f] == nil {
					cached[f] = make(map[int][]byte)
				}
				cached[f][idx] = data
				res.CacheInfo.Hits++
				continue
			}
			res.CacheInfo.Misses++
			job.formats = append(job.formats, f)
		}
		if len(job.formats) > 0 || job.image {
			jobs = append(jobs, job)
		}
	}
	res.CacheInfo.RenderHit = len(jobs) == 0

	// Render what is missing.
	outs, err := renderJobs(ctx, res.Algorithm, res.Input, res.Log, jobs, opts)
	if err != nil {
		return err
	}
	for _, o := range outs {
		for f, data := range o.data {
			if cached[f] == nil {
				cached[f] = make(map[int][]byte)
			}
			cached[f][o.index] = data
			r.store(ctx, r.Keyer.FrameKey(runHash, keyOpts(f, o.index)), data)
		}
	}

	if needImages {
		images := make([]image.Image, 0, len(outs))
		for _, o := range outs {
			images = append(images, o.image)
		}
		data, err := EncodeGIF(images, opts)
		if err != nil {
			return err
		}
		res.Artifacts[FormatGIF] = data
		r.store(ctx, gifKey, data)
	}

	res.Frames = res.Frames[:0]
	for _, f := range formats {
		for _, idx := range indices {
			res.Frames = append(res.Frames, Frame{Index: idx, Format: f, Data: cached[f][idx]})
		}
	}
	return nil
}

func (r *Runner) lookup(ctx context.Context, key string, refresh bool) ([]byte, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "error", err)
		hit = false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, keyTypeFrame)
	} else {
		observability.Cache().OnCacheMiss(ctx, keyTypeFrame)
	}
	return data, hit
}

func (r *Runner) store(ctx context.Context, key string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, cache.TTLFrame); err != nil {
		r.Logger.Debug("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeFrame, len(data))
}

// RunHash identifies an algorithm run by its id and encoded input.
func RunHash(algorithmID string, data input.Data) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encode input: %w", err)
	}
	return cache.RunHash(algorithmID, raw), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
