package viz

import (
	"strings"

	"github.com/matzehuels/stepviz/pkg/errors"
	"github.com/matzehuels/stepviz/pkg/input"
	"github.com/matzehuels/stepviz/pkg/layout"
	"github.com/matzehuels/stepviz/pkg/scene"
	"github.com/matzehuels/stepviz/pkg/step"
)

// Tree draws a rooted tree top-down, one row per depth.
type Tree struct {
	base
	levels  [][]string
	labels  map[string]string
	visited map[string]bool
}

// NewTree returns an empty tree adapter.
func NewTree(opts ...Option) *Tree {
	return &Tree{base: newBase(opts), visited: map[string]bool{}}
}

// Family implements Adapter.
func (t *Tree) Family() input.Family { return input.FamilyTree }

// Load implements Adapter.
func (t *Tree) Load(data input.Data) error {
	in, ok := data.(*input.Tree)
	if !ok {
		return errors.New(errors.ErrCodeFamilyMismatch, "tree view cannot load %T", data)
	}
	if err := in.Validate(); err != nil {
		return err
	}

	root := in.Normalize()
	t.scene.Clear()
	t.levels = t.levels[:0]
	t.labels = make(map[string]string)
	clear(t.visited)

	var err error
	root.Walk(func(n *input.TreeNode) {
		if err != nil {
			return
		}
		if _, err = t.scene.Add(scene.Node(n.ID, n.Label)); err != nil {
			return
		}
		t.labels[n.ID] = n.Label
		for n.Depth >= len(t.levels) {
			t.levels = append(t.levels, nil)
		}
		t.levels[n.Depth] = append(t.levels[n.Depth], n.ID)
	})
	if err != nil {
		return err
	}
	root.Walk(func(n *input.TreeNode) {
		for _, c := range n.Children {
			if c != nil && err == nil {
				_, err = t.scene.Add(scene.Edge(n.ID, c.ID, false))
			}
		}
	})
	if err != nil {
		return err
	}
	t.resetText()
	t.relayout()
	return nil
}

// Layout implements Adapter.
func (t *Tree) Layout(w, h float64) {
	t.resize(w, h)
	t.relayout()
}

func (t *Tree) relayout() {
	pos := layout.Hierarchical(t.levels, t.frame, layout.HierarchicalOptions{})
	widest := 0
	for _, lvl := range t.levels {
		widest = max(widest, len(lvl))
	}
	r := layout.NodeRadius(max(widest*len(t.levels), 1), t.frame)
	for id, p := range pos {
		t.scene.SetCenter(id, p.X, p.Y)
		t.scene.SetRadius(id, r)
	}
}

// Apply implements Adapter.
func (t *Tree) Apply(s step.Step) {
	if !t.known(s) {
		return
	}
	switch s := s.(type) {
	case step.Current:
		t.focus(s.ID)
	case step.Visit:
		t.visited[s.ID] = true
		if e, ok := t.scene.Get(s.ID); ok && e.State != scene.StateCurrent {
			t.scene.SetState(s.ID, scene.StateVisited)
		}
		t.aux = "Order: " + t.join(s.Order, ", ")
	case step.Explore:
		t.demote(scene.KindEdge, scene.StateCurrent, func(*scene.Element) scene.State { return scene.StateExplored })
		if e, ok := t.scene.EdgeBetween(s.From, s.To); ok {
			t.scene.SetState(e.ID, scene.StateCurrent)
		}
	case step.Backtrack:
		if e, ok := t.scene.EdgeBetween(s.From, s.To); ok {
			t.scene.SetState(e.ID, scene.StateExplored)
		}
		t.focus(s.To)
	case step.Enqueue:
		t.enqueue(s.IDs)
		t.aux = "Queue: [" + t.join(s.IDs, ", ") + "]"
	case step.Complete:
		t.demote(scene.KindNode, scene.StateCurrent, t.settled)
		t.demote(scene.KindEdge, scene.StateCurrent, func(*scene.Element) scene.State { return scene.StateExplored })
		t.aux = "Order: " + t.join(s.Order, " → ")
	case step.Found:
		t.scene.SetState(s.ID, scene.StateFound)
	case step.HighlightPath:
		t.HighlightPath(s.Path)
	case step.Reset:
		t.Reset()
		return
	default:
		return
	}
	t.caption = s.Message()
}

// focus moves the current marker to id.
func (t *Tree) focus(id string) {
	t.demote(scene.KindNode, scene.StateCurrent, t.settled)
	t.scene.SetState(id, scene.StateCurrent)
}

// settled is the state a node falls back to once it loses focus.
func (t *Tree) settled(e *scene.Element) scene.State {
	if t.visited[e.ID] {
		return scene.StateVisited
	}
	return e.Rest
}

func (t *Tree) enqueue(ids []string) {
	in := make(map[string]bool, len(ids))
	for _, id := range ids {
		in[id] = true
	}
	for _, id := range t.scene.IDs(scene.KindNode) {
		e, _ := t.scene.Get(id)
		switch {
		case in[id] && !t.visited[id] && e.State != scene.StateCurrent:
			t.scene.SetState(id, scene.StateFrontier)
		case !in[id] && e.State == scene.StateFrontier:
			t.scene.SetState(id, t.settled(e))
		}
	}
}

// HighlightPath implements PathHighlighter.
func (t *Tree) HighlightPath(path []string) {
	t.scene.ResetStates()
	for i, id := range path {
		t.scene.SetState(id, scene.StatePath)
		if i > 0 {
			if e, ok := t.scene.EdgeBetween(path[i-1], id); ok {
				t.scene.SetState(e.ID, scene.StatePath)
			}
		}
	}
}

// Reset implements Adapter.
func (t *Tree) Reset() {
	t.scene.ResetStates()
	clear(t.visited)
	t.resetText()
}

// Decorations implements Adapter.
func (t *Tree) Decorations() scene.Decorations {
	return t.decorations([]scene.LegendEntry{
		{Label: "current", Kind: scene.KindNode, State: scene.StateCurrent},
		{Label: "queued", Kind: scene.KindNode, State: scene.StateFrontier},
		{Label: "visited", Kind: scene.KindNode, State: scene.StateVisited},
		{Label: "explored", Kind: scene.KindEdge, State: scene.StateExplored},
	})
}

// join renders node ids by their labels.
func (t *Tree) join(ids []string, sep string) string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = t.labels[id]
	}
	return strings.Join(out, sep)
}
