package viz

import (
	"github.com/matzehuels/stepviz/pkg/errors"
	"github.com/matzehuels/stepviz/pkg/input"
	"github.com/matzehuels/stepviz/pkg/layout"
	"github.com/matzehuels/stepviz/pkg/scene"
	"github.com/matzehuels/stepviz/pkg/step"
)

// Adapter translates steps into scene mutations for one input family.
type Adapter interface {
	// Family returns the input family the adapter draws.
	Family() input.Family

	// Load replaces the scene with elements built from data and lays them
	// out. Invalid data returns an error and leaves the scene untouched.
	Load(data input.Data) error

	// Layout recomputes geometry for a w × h canvas. States are untouched.
	Layout(w, h float64)

	// Apply mutates the scene to reflect s. Unknown kinds and unknown
	// element ids are ignored.
	Apply(s step.Step)

	// Reset returns every element to its rest state and clears captions,
	// restoring the scene to how Load left it.
	Reset()

	Scene() *scene.Scene
	Decorations() scene.Decorations
}

// PathHighlighter is implemented by adapters that can mark a path.
type PathHighlighter interface {
	// HighlightPath resets all elements, then marks each id in path as
	// StatePath. Graphs also mark the edges between consecutive ids.
	HighlightPath(path []string)
}

// Default canvas used until the first Layout call.
const (
	DefaultWidth  = 960.0
	DefaultHeight = 540.0
)

// GraphLayout selects the graph layout strategy.
type GraphLayout string

const (
	GraphLayoutForce    GraphLayout = "force"
	GraphLayoutCircular GraphLayout = "circular"
	GraphLayoutGrid     GraphLayout = "grid"
)

// ParseGraphLayout validates a layout name. The empty string selects force.
func ParseGraphLayout(name string) (GraphLayout, error) {
	switch GraphLayout(name) {
	case "", GraphLayoutForce:
		return GraphLayoutForce, nil
	case GraphLayoutCircular, GraphLayoutGrid:
		return GraphLayout(name), nil
	default:
		return "", errors.New(errors.ErrCodeInvalidLayout, "unknown graph layout %q (want force, circular or grid)", name)
	}
}

// Option configures an adapter.
type Option func(*config)

type config struct {
	theme       *scene.Theme
	title       string
	graphLayout GraphLayout
	seed        uint64
	iterations  int
	directed    bool
	width       float64
	height      float64
}

// WithTheme colors the scene with t.
func WithTheme(t *scene.Theme) Option { return func(c *config) { c.theme = t } }

// WithTitle sets the title decoration, normally the algorithm name.
func WithTitle(title string) Option { return func(c *config) { c.title = title } }

// WithGraphLayout selects the graph layout strategy.
func WithGraphLayout(l GraphLayout) Option { return func(c *config) { c.graphLayout = l } }

// WithSeed seeds the force layout.
func WithSeed(seed uint64) Option { return func(c *config) { c.seed = seed } }

// WithIterations sets the force layout iteration count.
func WithIterations(n int) Option { return func(c *config) { c.iterations = n } }

// WithDirected draws graph edges as arrows even if the input is undirected.
func WithDirected() Option { return func(c *config) { c.directed = true } }

// WithSize sets the initial canvas size.
func WithSize(w, h float64) Option {
	return func(c *config) { c.width, c.height = w, h }
}

func newConfig(opts []Option) config {
	c := config{
		graphLayout: GraphLayoutForce,
		width:       DefaultWidth,
		height:      DefaultHeight,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.theme == nil {
		c.theme = scene.DefaultTheme()
	}
	return c
}

// New returns the adapter for family.
func New(family input.Family, opts ...Option) (Adapter, error) {
	switch family {
	case input.FamilyArray:
		return NewArray(opts...), nil
	case input.FamilyGraph:
		return NewGraph(opts...), nil
	case input.FamilyTree:
		return NewTree(opts...), nil
	case input.FamilyGrid:
		return NewGrid(opts...), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "no visualization for family %q", family)
	}
}

// Replay resets a and applies the first n steps of log in order, leaving the
// scene in the state after step n-1. n is clamped to [0, log.Len()].
func Replay(a Adapter, log step.Log, n int) {
	a.Reset()
	n = max(0, min(n, log.Len()))
	for i := 0; i < n; i++ {
		a.Apply(log.At(i))
	}
}

// base holds what every adapter shares: the scene, the frame and the
// decoration text.
type base struct {
	cfg     config
	scene   *scene.Scene
	frame   layout.Frame
	caption string
	aux     string
}

func newBase(opts []Option) base {
	cfg := newConfig(opts)
	b := base{cfg: cfg, scene: scene.New(cfg.theme)}
	b.resize(cfg.width, cfg.height)
	return b
}

func (b *base) Scene() *scene.Scene { return b.scene }

func (b *base) resize(w, h float64) {
	b.frame = layout.Frame{
		Width:   w,
		Height:  h,
		Top:     scene.TitleMargin,
		Bottom:  scene.FooterMargin,
		Padding: 24,
	}
}

func (b *base) resetText() {
	b.caption, b.aux = "", ""
}

func (b *base) decorations(legend []scene.LegendEntry) scene.Decorations {
	return scene.Decorations{
		Title:   b.cfg.title,
		Caption: b.caption,
		Aux:     b.aux,
		Legend:  legend,
	}
}

// demote moves every element of kind in state from to the state chosen by
// to. It is how "current" markers give way when the focus moves on.
func (b *base) demote(kind scene.Kind, from scene.State, to func(*scene.Element) scene.State) {
	for _, id := range b.scene.IDs(kind) {
		if e, _ := b.scene.Get(id); e.State == from {
			b.scene.SetState(id, to(e))
		}
	}
}

// known reports whether every target of s is in the scene. Steps naming
// unknown elements are dropped whole.
func (b *base) known(s step.Step) bool {
	for _, id := range s.Targets() {
		if !b.scene.Has(id) {
			return false
		}
	}
	return true
}

func visitedState(*scene.Element) scene.State { return scene.StateVisited }

func restState(e *scene.Element) scene.State { return e.Rest }
