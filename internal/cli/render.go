package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stepviz/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command. Canvas and
// layout flags override the config file only when given.
type renderOpts struct {
	in         inputFlags
	output     string // output directory
	formats    string // comma-separated output formats
	frames     string // "all" or "final"
	width      int
	height     int
	layout     string // graph layout: force, circular, grid
	seed       uint64
	iterations int
	directed   bool
	delay      int // GIF delay per step, in ms
	workers    int
	refresh    bool
	noCache    bool
}

// renderCommand creates the render command for exporting frames.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <algorithm>",
		Short: "Export the frames of a run",
		Long: `Run an algorithm and export the scene before the first step and after
every step (or only the final scene with --frames final).

Formats: ` + strings.Join(pipeline.FormatNames(), ", ") + `. "gif" produces one
animation for the whole run; every other format writes one file per frame.
Frames are cached by input and options; --refresh redraws them.`,
		Example: `  stepviz render bubble --values "5,3,8,1" --format png,gif
  stepviz render astar --input maze.toml --frames final --format svg -o out`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeAlgorithms,
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := c.renderOptions(cmd, args[0], &opts)
			if err != nil {
				return err
			}
			return c.runRender(cmd, popts, &opts)
		},
	}

	opts.in.bind(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", ".", "output directory")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s), comma-separated (default png)")
	cmd.Flags().StringVar(&opts.frames, "frames", pipeline.FramesAll, "frames to export: all, final")
	cmd.Flags().IntVar(&opts.width, "width", 0, "canvas width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", 0, "canvas height in pixels")
	cmd.Flags().StringVar(&opts.layout, "layout", "", "graph layout: force, circular, grid")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed for force layout")
	cmd.Flags().IntVar(&opts.iterations, "iterations", 0, "force layout iterations")
	cmd.Flags().BoolVar(&opts.directed, "directed", false, "draw graph edges as arrows")
	cmd.Flags().IntVar(&opts.delay, "delay", pipeline.DefaultDelayMs, "GIF delay per step in milliseconds")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "parallel frame workers (default: CPU count, max 8)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached frames")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the frame cache")

	return cmd
}

// renderOptions merges config and flags into pipeline options.
func (c *CLI) renderOptions(cmd *cobra.Command, algID string, opts *renderOpts) (pipeline.Options, error) {
	popts := pipeline.Options{Algorithm: algID}
	if err := c.sceneOptions(&popts); err != nil {
		return popts, err
	}
	opts.in.apply(&popts)

	flags := cmd.Flags()
	if flags.Changed("width") {
		popts.Width = opts.width
	}
	if flags.Changed("height") {
		popts.Height = opts.height
	}
	if flags.Changed("layout") {
		popts.GraphLayout = opts.layout
	}
	if flags.Changed("seed") {
		popts.Seed = opts.seed
	}
	if flags.Changed("iterations") {
		popts.Iterations = opts.iterations
	}
	popts.Directed = opts.directed
	popts.Formats = parseFormats(opts.formats)
	popts.Frames = opts.frames
	popts.DelayMs = opts.delay
	popts.Workers = opts.workers
	popts.Refresh = opts.refresh

	if err := popts.ValidateAndSetDefaults(); err != nil {
		return popts, err
	}
	return popts, nil
}

func (c *CLI) runRender(cmd *cobra.Command, popts pipeline.Options, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := c.Logger

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", popts.Algorithm))
	popts.Progress = func(done, total int) {
		spinner.Update(fmt.Sprintf("Rendering %s... %d/%d frames", popts.Algorithm, done, total))
	}
	spinner.Start()

	timer := newOpTimer(logger)
	res, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	paths, err := pipeline.WriteFiles(opts.output, res)
	if err != nil {
		return err
	}
	timer.done(fmt.Sprintf("Rendered %d frames", res.Stats.Frames))
	logger.Debug("render stats",
		"algorithm", res.Algorithm.ID,
		"steps", res.Stats.Steps,
		"elements", res.Stats.Elements,
		"run", res.Stats.RunTime,
		"render", res.Stats.RenderTime,
		"cache_hits", res.CacheInfo.Hits,
		"cache_misses", res.CacheInfo.Misses)

	printSuccess("Rendered %s", StyleHighlight.Render(res.Algorithm.Name))
	printStats(res.Stats.Steps, res.Stats.Frames, res.CacheInfo.RenderHit)
	const maxListed = 6
	for i, p := range paths {
		if i == maxListed {
			printDetail("... and %d more", len(paths)-maxListed)
			break
		}
		printFile(p)
	}
	return nil
}
