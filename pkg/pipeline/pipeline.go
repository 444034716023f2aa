// Package pipeline turns an algorithm and an input into rendered frames.
//
// The pipeline is shared by the run, render and play commands so they resolve
// input, compute step logs and draw frames identically.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Resolve: pick the input (inline data, a file, --values or the family
//     sample) and compute the step log with the algorithm runner
//  2. Load: build the family's visualization adapter and lay out its scene
//  3. Render: replay the log and draw the requested frames in each format
//
// Rendering fans out over a worker pool. Each worker owns a private adapter,
// scene and surface, so no scene is ever shared between goroutines.
//
// # Usage
//
//	runner := pipeline.NewRunner(algorithm.NewRunner(algorithm.NewRegistry(), logger), nil, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Algorithm: "bubble",
//	    Values:    "5,3,8,1",
//	    Formats:   []string{"png", "gif"},
//	})
//	if err != nil {
//	    return err
//	}
//	gif := result.Artifacts["gif"]
package pipeline

import (
	"io"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stepviz/pkg/algorithm"
	"github.com/matzehuels/stepviz/pkg/errors"
	"github.com/matzehuels/stepviz/pkg/input"
	"github.com/matzehuels/stepviz/pkg/scene"
	"github.com/matzehuels/stepviz/pkg/step"
	"github.com/matzehuels/stepviz/pkg/viz"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = int(viz.DefaultWidth)

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = int(viz.DefaultHeight)

	// DefaultSeed seeds the force layout so frames are reproducible.
	DefaultSeed = uint64(42)

	// DefaultDelayMs is the per-frame delay of animated output.
	DefaultDelayMs = 500

	// MaxWorkers caps the render pool.
	MaxWorkers = 8
)

// Format constants for output formats.
const (
	FormatPNG      = "png"
	FormatSVG      = "svg"
	FormatGIF      = "gif"
	FormatJSON     = "json"
	FormatDOT      = "dot"
	FormatGraphviz = "graphviz"
	FormatText     = "txt"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:      true,
	FormatSVG:      true,
	FormatGIF:      true,
	FormatJSON:     true,
	FormatDOT:      true,
	FormatGraphviz: true,
	FormatText:     true,
}

// Frame selections.
const (
	FramesAll   = "all"   // the initial scene plus one frame per step
	FramesFinal = "final" // only the scene after the last step
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Input options. At most one of Data, Inline, Values and InputPath is
	// used, in that order; with none set the family sample is used.
	Algorithm string     `json:"algorithm"`
	Data      input.Data `json:"-"`
	Inline    string     `json:"inline,omitempty"`
	Values    string     `json:"values,omitempty"`
	InputPath string     `json:"input_path,omitempty"`

	// Scene options
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	GraphLayout string `json:"graph_layout,omitempty"`
	Seed        uint64 `json:"seed,omitempty"`
	Iterations  int    `json:"iterations,omitempty"`
	Directed    bool   `json:"directed,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Frames  string   `json:"frames,omitempty"`
	DelayMs int      `json:"delay_ms,omitempty"`
	Workers int      `json:"workers,omitempty"`
	Refresh bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Theme    *scene.Theme          `json:"-"`
	Logger   *log.Logger           `json:"-"`
	Progress func(done, total int) `json:"-"` // called from render workers

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Algorithm is the resolved descriptor.
	Algorithm algorithm.Algorithm

	// Input is the validated input the log was computed from.
	Input input.Data

	// Log is the full step log.
	Log step.Log

	// Frames holds per-step output ordered by format, then index.
	Frames []Frame

	// Artifacts holds whole-run outputs keyed by format (animated GIF).
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Frame is the rendering of the scene after Index steps. Index 0 is the
// freshly loaded scene.
type Frame struct {
	Index  int
	Format string
	Data   []byte
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Steps      int
	Frames     int
	Elements   int
	RunTime    time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	Hits      int
	Misses    int
	RenderHit bool // every requested output came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateFormatFamily rejects formats a family cannot produce: DOT output
// exists only for node-link scenes.
func ValidateFormatFamily(format string, family input.Family) error {
	if (format == FormatDOT || format == FormatGraphviz) && family != input.FamilyGraph && family != input.FamilyTree {
		return errors.New(errors.ErrCodeInvalidFormat, "%s output needs a graph or tree algorithm, not %s", format, family)
	}
	return nil
}

// ValidateFrames checks a frame selection.
func ValidateFrames(frames string) error {
	switch frames {
	case FramesAll, FramesFinal:
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidInput, "invalid frames: %q (must be all or final)", frames)
	}
}

// FormatNames lists the supported formats in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// Extension returns the file extension for a format.
func Extension(format string) string {
	switch format {
	case FormatGraphviz:
		return ".gv.svg"
	default:
		return "." + format
	}
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateAlgorithmID(o.Algorithm); err != nil {
		return err
	}
	o.SetSceneDefaults()
	o.SetRenderDefaults()
	if err := errors.ValidateCanvas(float64(o.Width), float64(o.Height)); err != nil {
		return err
	}
	if _, err := viz.ParseGraphLayout(o.GraphLayout); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateFrames(o.Frames); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetSceneDefaults sets canvas and layout defaults.
func (o *Options) SetSceneDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.GraphLayout == "" {
		o.GraphLayout = string(viz.GraphLayoutForce)
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Theme == nil {
		o.Theme = scene.DefaultTheme()
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if o.Frames == "" {
		o.Frames = FramesAll
	}
	if o.DelayMs <= 0 {
		o.DelayMs = DefaultDelayMs
	}
	if o.Workers <= 0 {
		o.Workers = min(runtime.GOMAXPROCS(0), MaxWorkers)
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// Wants reports whether format was requested.
func (o *Options) Wants(format string) bool {
	return slices.Contains(o.Formats, format)
}

// FrameIndices returns the scene indices to render for a log of n steps.
func (o *Options) FrameIndices(n int) []int {
	if o.Frames == FramesFinal {
		return []int{n}
	}
	out := make([]int, n+1)
	for i := range out {
		out[i] = i
	}
	return out
}

// perFrame returns the requested formats that produce one file per frame.
func (o *Options) perFrame() []string {
	var out []string
	for _, f := range o.Formats {
		if f != FormatGIF {
			out = append(out, f)
		}
	}
	return out
}
