package viz

import (
	"fmt"

	"github.com/matzehuels/stepviz/pkg/errors"
	"github.com/matzehuels/stepviz/pkg/input"
	"github.com/matzehuels/stepviz/pkg/layout"
	"github.com/matzehuels/stepviz/pkg/scene"
	"github.com/matzehuels/stepviz/pkg/step"
)

// Grid draws a maze as square cells. Walls, start and end rest in their own
// states; search steps only recolor open cells, except that the end cell
// shows found and a highlighted path covers its endpoints.
type Grid struct {
	base
	rows, cols int
	open       int
	closed     map[string]bool
}

// NewGrid returns an empty grid adapter.
func NewGrid(opts ...Option) *Grid {
	return &Grid{base: newBase(opts), closed: map[string]bool{}}
}

// Family implements Adapter.
func (g *Grid) Family() input.Family { return input.FamilyGrid }

// Load implements Adapter.
func (g *Grid) Load(data input.Data) error {
	in, ok := data.(*input.Grid)
	if !ok {
		return errors.New(errors.ErrCodeFamilyMismatch, "grid view cannot load %T", data)
	}
	if err := in.Validate(); err != nil {
		return err
	}

	g.scene.Clear()
	g.rows, g.cols = in.Rows, in.Cols
	walls := in.WallSet()
	for r := 0; r < in.Rows; r++ {
		for c := 0; c < in.Cols; c++ {
			cell := input.Cell{Row: r, Col: c}
			rest := scene.StateDefault
			switch {
			case walls[cell]:
				rest = scene.StateWall
			case cell == in.Start:
				rest = scene.StateStart
			case cell == in.End:
				rest = scene.StateEnd
			}
			if _, err := g.scene.Add(scene.Cell(step.CellID(r, c), rest)); err != nil {
				return err
			}
		}
	}
	g.Reset()
	g.relayout()
	return nil
}

// Layout implements Adapter.
func (g *Grid) Layout(w, h float64) {
	g.resize(w, h)
	g.relayout()
}

func (g *Grid) relayout() {
	u := layout.Uniform(g.rows, g.cols, g.frame)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			rect := u.Cell(r, c)
			id := step.CellID(r, c)
			g.scene.SetPosition(id, rect.X, rect.Y)
			g.scene.SetSize(id, rect.W, rect.H)
		}
	}
}

// CellAt maps a canvas point to the cell under it.
func (g *Grid) CellAt(x, y float64) (input.Cell, bool) {
	r, c, ok := layout.Uniform(g.rows, g.cols, g.frame).At(x, y)
	return input.Cell{Row: r, Col: c}, ok
}

// Apply implements Adapter.
func (g *Grid) Apply(s step.Step) {
	if !g.known(s) {
		return
	}
	switch s := s.(type) {
	case step.Start:
	case step.Current:
		g.demote(scene.KindCell, scene.StateCurrent, visitedState)
		g.paint(s.ID, scene.StateCurrent)
	case step.Visit:
		g.closed[s.ID] = true
		if e, ok := g.scene.Get(s.ID); ok && e.State != scene.StateCurrent {
			g.paint(s.ID, scene.StateVisited)
		}
		g.counts()
	case step.Frontier:
		g.frontier(s.IDs)
		g.open = len(s.IDs)
		g.counts()
	case step.Found:
		g.demote(scene.KindCell, scene.StateCurrent, visitedState)
		g.scene.SetState(s.ID, scene.StateFound)
	case step.NotFound:
		g.demote(scene.KindCell, scene.StateCurrent, visitedState)
	case step.HighlightPath:
		g.HighlightPath(s.Path)
	case step.Reset:
		g.Reset()
		return
	default:
		return
	}
	g.caption = s.Message()
}

// paint sets state on cells whose rest state is default. Walls, start and
// end keep their colors.
func (g *Grid) paint(id string, state scene.State) {
	if e, ok := g.scene.Get(id); ok && e.Rest == scene.StateDefault {
		g.scene.SetState(id, state)
	}
}

func (g *Grid) frontier(ids []string) {
	in := make(map[string]bool, len(ids))
	for _, id := range ids {
		in[id] = true
	}
	for _, id := range g.scene.IDs(scene.KindCell) {
		e, _ := g.scene.Get(id)
		switch {
		case in[id] && e.State == scene.StateDefault:
			g.scene.SetState(id, scene.StateFrontier)
		case !in[id] && e.State == scene.StateFrontier:
			g.scene.SetState(id, e.Rest)
		}
	}
}

func (g *Grid) counts() {
	g.aux = fmt.Sprintf("Open: %d  Closed: %d", g.open, len(g.closed))
}

// HighlightPath implements PathHighlighter.
func (g *Grid) HighlightPath(path []string) {
	g.scene.ResetStates()
	for _, id := range path {
		g.scene.SetState(id, scene.StatePath)
	}
}

// Reset implements Adapter.
func (g *Grid) Reset() {
	g.scene.ResetStates()
	clear(g.closed)
	g.open = 0
	g.resetText()
}

// Decorations implements Adapter.
func (g *Grid) Decorations() scene.Decorations {
	return g.decorations([]scene.LegendEntry{
		{Label: "start", Kind: scene.KindCell, State: scene.StateStart},
		{Label: "end", Kind: scene.KindCell, State: scene.StateEnd},
		{Label: "wall", Kind: scene.KindCell, State: scene.StateWall},
		{Label: "open", Kind: scene.KindCell, State: scene.StateFrontier},
		{Label: "closed", Kind: scene.KindCell, State: scene.StateVisited},
		{Label: "path", Kind: scene.KindCell, State: scene.StatePath},
	})
}
