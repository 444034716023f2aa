package algorithm

import (
	"math"
	"strings"

	"github.com/matzehuels/stepviz/pkg/input"
	"github.com/matzehuels/stepviz/pkg/step"
)

// Heuristic estimates the remaining cost between two cells.
type Heuristic func(a, b input.Cell) float64

// Manhattan is |dr| + |dc|.
func Manhattan(a, b input.Cell) float64 {
	return math.Abs(float64(a.Row-b.Row)) + math.Abs(float64(a.Col-b.Col))
}

// Euclidean is the straight-line distance.
func Euclidean(a, b input.Cell) float64 {
	return math.Hypot(float64(a.Row-b.Row), float64(a.Col-b.Col))
}

// Chebyshev is max(|dr|, |dc|).
func Chebyshev(a, b input.Cell) float64 {
	return math.Max(math.Abs(float64(a.Row-b.Row)), math.Abs(float64(a.Col-b.Col)))
}

// HeuristicFor maps a grid heuristic name to its function. Unknown names and
// the empty string select Manhattan.
func HeuristicFor(name string) Heuristic {
	switch name {
	case input.HeuristicEuclidean:
		return Euclidean
	case input.HeuristicChebyshev:
		return Chebyshev
	default:
		return Manhattan
	}
}

var (
	cardinal = []input.Cell{{Row: -1, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 0, Col: -1}}
	diagonal = []input.Cell{{Row: -1, Col: 1}, {Row: 1, Col: 1}, {Row: 1, Col: -1}, {Row: -1, Col: -1}}
)

// AStar records an A* search over g from g.Start to g.End.
//
// The open list is scanned linearly for the lowest f-score; among equal
// scores the cell that entered the open list first wins. Cardinal moves cost
// 1 and, when g.Diagonal is set, diagonal moves cost √2 but may not cut
// between two walls' corners. A closed cell is never examined again.
//
// Each expansion emits current, visit (the cell joins the closed set) and a
// frontier step holding the open list. The run ends with found followed by
// highlight_path, or not_found once the open list is empty.
func AStar(g *input.Grid) step.Log {
	var rec step.Recorder
	h := HeuristicFor(g.Heuristic)
	walls := g.WallSet()
	start, end := g.Start, g.End

	gScore := map[input.Cell]float64{start: 0}
	fScore := map[input.Cell]float64{start: h(start, end)}
	parent := map[input.Cell]input.Cell{}
	closed := map[input.Cell]bool{}
	inOpen := map[input.Cell]bool{start: true}
	open := []input.Cell{start}

	rec.Add(step.Start{Info: info("Start at %s, target %s", start, end), ID: cellID(start)})
	rec.Add(step.Frontier{Info: info("Open set: [%s]", start), IDs: []string{cellID(start)}})

	for len(open) > 0 {
		best := 0
		for i := 1; i < len(open); i++ {
			if fScore[open[i]] < fScore[open[best]] {
				best = i
			}
		}
		cur := open[best]
		open = append(open[:best], open[best+1:]...)
		delete(inOpen, cur)

		rec.Add(step.Current{
			Info: info("Expanding %s (g=%.2f, f=%.2f)", cur, gScore[cur], fScore[cur]),
			ID:   cellID(cur),
		})

		if cur == end {
			path := reconstruct(parent, start, end)
			ids := make([]string, len(path))
			for i, c := range path {
				ids[i] = cellID(c)
			}
			rec.Add(step.Found{Info: info("Reached %s with cost %.2f", end, gScore[end]), ID: cellID(end)})
			rec.Add(step.HighlightPath{Info: info("Path of %d moves", len(path)-1), Path: ids})
			return rec.Log()
		}

		closed[cur] = true
		var from string
		if p, ok := parent[cur]; ok {
			from = cellID(p)
		}
		rec.Add(step.Visit{Info: info("Closed %s", cur), ID: cellID(cur), From: from})

		for _, nb := range neighbors(g, walls, cur) {
			if closed[nb.cell] {
				continue
			}
			tentative := gScore[cur] + nb.cost
			if inOpen[nb.cell] && tentative >= gScore[nb.cell] {
				continue
			}
			parent[nb.cell] = cur
			gScore[nb.cell] = tentative
			fScore[nb.cell] = tentative + h(nb.cell, end)
			if !inOpen[nb.cell] {
				inOpen[nb.cell] = true
				open = append(open, nb.cell)
			}
		}

		ids := make([]string, len(open))
		for i, c := range open {
			ids[i] = cellID(c)
		}
		rec.Add(step.Frontier{Info: info("Open set: [%s]", strings.Join(ids, ", ")), IDs: ids})
	}

	rec.Add(step.NotFound{Info: info("No path from %s to %s", start, end), Target: cellID(end)})
	return rec.Log()
}

type neighbor struct {
	cell input.Cell
	cost float64
}

func neighbors(g *input.Grid, walls map[input.Cell]bool, c input.Cell) []neighbor {
	out := make([]neighbor, 0, 8)
	for _, d := range cardinal {
		n := input.Cell{Row: c.Row + d.Row, Col: c.Col + d.Col}
		if g.InBounds(n) && !walls[n] {
			out = append(out, neighbor{cell: n, cost: 1})
		}
	}
	if !g.Diagonal {
		return out
	}
	for _, d := range diagonal {
		n := input.Cell{Row: c.Row + d.Row, Col: c.Col + d.Col}
		if !g.InBounds(n) || walls[n] {
			continue
		}
		// No squeezing between two walls that touch at a corner.
		if walls[input.Cell{Row: c.Row + d.Row, Col: c.Col}] && walls[input.Cell{Row: c.Row, Col: c.Col + d.Col}] {
			continue
		}
		out = append(out, neighbor{cell: n, cost: math.Sqrt2})
	}
	return out
}

func cellID(c input.Cell) string { return step.CellID(c.Row, c.Col) }
