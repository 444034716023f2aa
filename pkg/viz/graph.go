package viz

import (
	"strconv"
	"strings"

	"github.com/matzehuels/stepviz/pkg/errors"
	"github.com/matzehuels/stepviz/pkg/input"
	"github.com/matzehuels/stepviz/pkg/layout"
	"github.com/matzehuels/stepviz/pkg/scene"
	"github.com/matzehuels/stepviz/pkg/step"
)

// Graph draws a node-link graph. The start and end nodes rest in their own
// states so they stay recognizable while the search runs.
type Graph struct {
	base
	nodes []string
	edges [][2]string
}

// NewGraph returns an empty graph adapter.
func NewGraph(opts ...Option) *Graph {
	return &Graph{base: newBase(opts)}
}

// Family implements Adapter.
func (g *Graph) Family() input.Family { return input.FamilyGraph }

// Load implements Adapter. Repeated edges between the same endpoints are
// drawn once.
func (g *Graph) Load(data input.Data) error {
	in, ok := data.(*input.Graph)
	if !ok {
		return errors.New(errors.ErrCodeFamilyMismatch, "graph view cannot load %T", data)
	}
	if err := in.Validate(); err != nil {
		return err
	}
	for _, n := range in.Nodes {
		if strings.HasPrefix(n.ID, scene.EdgePrefix) {
			return errors.New(errors.ErrCodeInvalidInput, "node id %q uses the reserved prefix %q", n.ID, scene.EdgePrefix)
		}
	}

	g.scene.Clear()
	g.nodes = g.nodes[:0]
	g.edges = g.edges[:0]
	for _, n := range in.Nodes {
		el := scene.Node(n.ID, n.DisplayLabel())
		switch n.ID {
		case in.StartNode:
			el.Rest = scene.StateStart
		case in.EndNode:
			el.Rest = scene.StateEnd
		}
		if _, err := g.scene.Add(el); err != nil {
			return err
		}
		g.nodes = append(g.nodes, n.ID)
	}

	directed := in.Directed || g.cfg.directed
	for _, e := range in.Edges {
		el := scene.Edge(e.From, e.To, directed)
		if prev, ok := g.scene.Get(el.ID); ok && prev.Kind == scene.KindEdge {
			continue
		}
		if e.Weight != 0 {
			el.Label = strconv.FormatFloat(e.Weight, 'f', -1, 64)
		}
		if _, err := g.scene.Add(el); err != nil {
			return err
		}
		g.edges = append(g.edges, [2]string{e.From, e.To})
	}
	g.resetText()
	g.relayout()
	return nil
}

// Layout implements Adapter.
func (g *Graph) Layout(w, h float64) {
	g.resize(w, h)
	g.relayout()
}

func (g *Graph) relayout() {
	var pos map[string]layout.Point
	switch g.cfg.graphLayout {
	case GraphLayoutCircular:
		pos = layout.Circular(g.nodes, g.frame)
	case GraphLayoutGrid:
		pos = layout.Grid(g.nodes, g.frame)
	default:
		pos = layout.Force(g.nodes, g.edges, g.frame, layout.ForceOptions{
			Iterations: g.cfg.iterations,
			Seed:       g.cfg.seed,
		})
	}
	r := layout.NodeRadius(len(g.nodes), g.frame)
	for _, id := range g.nodes {
		p := pos[id]
		g.scene.SetCenter(id, p.X, p.Y)
		g.scene.SetRadius(id, r)
	}
}

// Apply implements Adapter.
func (g *Graph) Apply(s step.Step) {
	if !g.known(s) {
		return
	}
	switch s := s.(type) {
	case step.Start:
	case step.Current:
		g.demote(scene.KindNode, scene.StateCurrent, visitedState)
		g.scene.SetState(s.ID, scene.StateCurrent)
	case step.Visit:
		if e, ok := g.scene.Get(s.ID); ok && e.State != scene.StateCurrent {
			g.scene.SetState(s.ID, scene.StateVisited)
		}
		if s.From != "" {
			if e, ok := g.scene.EdgeBetween(s.From, s.ID); ok {
				g.scene.SetState(e.ID, scene.StateExplored)
			}
		}
		if len(s.Order) > 0 {
			g.aux = "Visited: " + strings.Join(s.Order, ", ")
		}
	case step.Frontier:
		g.frontier(s.IDs)
	case step.Found:
		g.scene.SetState(s.ID, scene.StateFound)
	case step.NotFound:
		g.demote(scene.KindNode, scene.StateCurrent, visitedState)
	case step.HighlightPath:
		g.HighlightPath(s.Path)
	case step.Complete:
		g.demote(scene.KindNode, scene.StateCurrent, visitedState)
		g.aux = "Order: " + strings.Join(s.Order, " → ")
	case step.Reset:
		g.Reset()
		return
	default:
		return
	}
	g.caption = s.Message()
}

// frontier marks the unprocessed ids in ids as frontier. The start node keeps
// its own color; nodes that left the frontier without being processed return
// to rest.
func (g *Graph) frontier(ids []string) {
	in := make(map[string]bool, len(ids))
	for _, id := range ids {
		in[id] = true
	}
	for _, id := range g.nodes {
		e, _ := g.scene.Get(id)
		switch {
		case in[id] && (e.State == scene.StateDefault || e.State == scene.StateEnd || e.State == scene.StateFrontier):
			g.scene.SetState(id, scene.StateFrontier)
		case !in[id] && e.State == scene.StateFrontier:
			g.scene.SetState(id, e.Rest)
		}
	}
}

// HighlightPath implements PathHighlighter.
func (g *Graph) HighlightPath(path []string) {
	g.scene.ResetStates()
	for i, id := range path {
		g.scene.SetState(id, scene.StatePath)
		if i == 0 {
			continue
		}
		if e, ok := g.scene.EdgeBetween(path[i-1], id); ok {
			g.scene.SetState(e.ID, scene.StatePath)
		}
	}
}

// Reset implements Adapter.
func (g *Graph) Reset() {
	g.scene.ResetStates()
	g.resetText()
}

// Decorations implements Adapter.
func (g *Graph) Decorations() scene.Decorations {
	return g.decorations([]scene.LegendEntry{
		{Label: "start", Kind: scene.KindNode, State: scene.StateStart},
		{Label: "end", Kind: scene.KindNode, State: scene.StateEnd},
		{Label: "current", Kind: scene.KindNode, State: scene.StateCurrent},
		{Label: "frontier", Kind: scene.KindNode, State: scene.StateFrontier},
		{Label: "visited", Kind: scene.KindNode, State: scene.StateVisited},
		{Label: "path", Kind: scene.KindNode, State: scene.StatePath},
	})
}
