package input

import (
	"github.com/matzehuels/stepviz/pkg/errors"
)

// Size limits keep every run small enough to animate.
const (
	MaxArrayLen  = 256
	MaxNodes     = 200
	MaxGridSide  = 100
	MaxTreeDepth = 16
)

// Validate checks the array is non-empty and within limits.
func (a Array) Validate() error {
	if len(a.Values) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "array has no numbers")
	}
	if len(a.Values) > MaxArrayLen {
		return errors.New(errors.ErrCodeInvalidInput, "array has %d values (max %d)", len(a.Values), MaxArrayLen)
	}
	return nil
}

// Validate checks node uniqueness, edge endpoints, and start/end membership.
func (g *Graph) Validate() error {
	if g == nil || len(g.Nodes) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "graph has no nodes")
	}
	if len(g.Nodes) > MaxNodes {
		return errors.New(errors.ErrCodeInvalidInput, "graph has %d nodes (max %d)", len(g.Nodes), MaxNodes)
	}
	seen := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return errors.New(errors.ErrCodeInvalidInput, "graph node with empty id")
		}
		if seen[n.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate node %q", n.ID)
		}
		seen[n.ID] = true
	}
	for _, e := range g.Edges {
		if !seen[e.From] || !seen[e.To] {
			return errors.New(errors.ErrCodeInvalidInput, "edge %s-%s references an unknown node", e.From, e.To)
		}
		if e.From == e.To {
			return errors.New(errors.ErrCodeInvalidInput, "self-loop on node %q", e.From)
		}
	}
	if g.StartNode == "" {
		return errors.New(errors.ErrCodeInvalidInput, "graph has no startNode")
	}
	if !seen[g.StartNode] {
		return errors.New(errors.ErrCodeInvalidInput, "startNode %q is not a node", g.StartNode)
	}
	if g.EndNode != "" && !seen[g.EndNode] {
		return errors.New(errors.ErrCodeInvalidInput, "endNode %q is not a node", g.EndNode)
	}
	return nil
}

// Validate checks the tree is non-empty, shallow enough, and does not mix the
// binary and n-ary forms on a single node.
func (t *Tree) Validate() error {
	if t == nil {
		return errors.New(errors.ErrCodeInvalidInput, "tree is empty")
	}
	return t.validate(0)
}

func (t *Tree) validate(depth int) error {
	if depth >= MaxTreeDepth {
		return errors.New(errors.ErrCodeInvalidInput, "tree deeper than %d levels", MaxTreeDepth)
	}
	if len(t.Children) > 0 && (t.Left != nil || t.Right != nil) {
		return errors.New(errors.ErrCodeInvalidInput, "tree node %v mixes children with left/right", t.Value)
	}
	for _, c := range t.Children {
		if c == nil {
			return errors.New(errors.ErrCodeInvalidInput, "tree node %v has a null child", t.Value)
		}
		if err := c.validate(depth + 1); err != nil {
			return err
		}
	}
	for _, c := range []*Tree{t.Left, t.Right} {
		if c == nil {
			continue
		}
		if err := c.validate(depth + 1); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks dimensions and that start, end and walls are in bounds.
func (g *Grid) Validate() error {
	if g == nil {
		return errors.New(errors.ErrCodeInvalidInput, "grid is empty")
	}
	if g.Rows <= 0 || g.Cols <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "grid must have positive rows and cols (got %dx%d)", g.Rows, g.Cols)
	}
	if g.Rows > MaxGridSide || g.Cols > MaxGridSide {
		return errors.New(errors.ErrCodeInvalidInput, "grid %dx%d exceeds %dx%d", g.Rows, g.Cols, MaxGridSide, MaxGridSide)
	}
	if !g.InBounds(g.Start) {
		return errors.New(errors.ErrCodeInvalidInput, "start %s is outside the grid", g.Start)
	}
	if !g.InBounds(g.End) {
		return errors.New(errors.ErrCodeInvalidInput, "end %s is outside the grid", g.End)
	}
	switch g.Heuristic {
	case "", HeuristicManhattan, HeuristicEuclidean, HeuristicChebyshev:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown heuristic %q", g.Heuristic)
	}
	for _, w := range g.Walls {
		if !g.InBounds(w) {
			return errors.New(errors.ErrCodeInvalidInput, "wall %s is outside the grid", w)
		}
		if w == g.Start || w == g.End {
			return errors.New(errors.ErrCodeInvalidInput, "wall %s covers start or end", w)
		}
	}
	return nil
}
