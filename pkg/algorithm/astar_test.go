package algorithm

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/matzehuels/stepviz/pkg/input"
	"github.com/matzehuels/stepviz/pkg/step"
)

type fatalf interface {
	Fatalf(format string, args ...any)
}

func closedCells(t fatalf, log step.Log) []string {
	var closed []string
	seen := map[string]bool{}
	for _, s := range log.All() {
		v, ok := s.(step.Visit)
		if !ok {
			continue
		}
		if seen[v.ID] {
			t.Fatalf("cell %s expanded twice", v.ID)
		}
		seen[v.ID] = true
		closed = append(closed, v.ID)
	}
	return closed
}

func parseCell(t fatalf, id string) input.Cell {
	parts := strings.Split(id, ",")
	r, err1 := strconv.Atoi(parts[0])
	c, err2 := strconv.Atoi(parts[1])
	if len(parts) != 2 || err1 != nil || err2 != nil {
		t.Fatalf("bad cell id %q", id)
	}
	return input.Cell{Row: r, Col: c}
}

func TestAStarEmptyGrid(t *testing.T) {
	g := &input.Grid{Rows: 5, Cols: 5, Start: input.Cell{Row: 0, Col: 0}, End: input.Cell{Row: 4, Col: 4}}
	log := AStar(g)

	closedCells(t, log)
	p := finalPath(t, log)
	if len(p)-1 != 8 {
		t.Fatalf("path %v has %d moves, want 8", p, len(p)-1)
	}
	if p[0] != "0,0" || p[len(p)-1] != "4,4" {
		t.Errorf("path endpoints = %s..%s", p[0], p[len(p)-1])
	}
	for i := 1; i < len(p); i++ {
		a, b := parseCell(t, p[i-1]), parseCell(t, p[i])
		if Manhattan(a, b) != 1 {
			t.Errorf("non-adjacent move %s -> %s", p[i-1], p[i])
		}
	}
}

func TestAStarEndPoppedAsOpenListEmpties(t *testing.T) {
	// The end cell is the only entry left when it is popped: the search must
	// report found, not not_found.
	g := &input.Grid{Rows: 1, Cols: 2, Start: input.Cell{Row: 0, Col: 0}, End: input.Cell{Row: 0, Col: 1}}
	log := AStar(g)

	kinds := log.Kinds()
	if slices.Contains(kinds, step.KindNotFound) {
		t.Fatalf("not_found emitted: %v", kinds)
	}
	if got := finalPath(t, log); !slices.Equal(got, []string{"0,0", "0,1"}) {
		t.Errorf("path = %v", got)
	}
}

func TestAStarNoPath(t *testing.T) {
	g := &input.Grid{
		Rows:  3,
		Cols:  3,
		Start: input.Cell{Row: 0, Col: 0},
		End:   input.Cell{Row: 2, Col: 2},
		Walls: []input.Cell{{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1}},
	}
	log := AStar(g)
	nf, ok := log.Last().(step.NotFound)
	if !ok {
		t.Fatalf("last step = %s, want not_found", log.Last().Kind())
	}
	if nf.Target != "2,2" {
		t.Errorf("Target = %q", nf.Target)
	}
	if got := closedCells(t, log); !slices.Equal(got, []string{"0,0"}) {
		t.Errorf("closed = %v, want only the start", got)
	}
}

func TestAStarTieBreakFollowsOpenOrder(t *testing.T) {
	// Among open cells with equal f-scores, the one opened first is expanded
	// first.
	g := &input.Grid{Rows: 3, Cols: 3, Start: input.Cell{Row: 1, Col: 1}, End: input.Cell{Row: 2, Col: 2}}
	log := AStar(g)

	var opened []string
	for _, s := range log.All() {
		if f, ok := s.(step.Frontier); ok && len(f.IDs) > 1 {
			opened = f.IDs
			break
		}
	}
	// Neighbors are opened up, right, down, left.
	if !slices.Equal(opened, []string{"0,1", "1,2", "2,1", "1,0"}) {
		t.Fatalf("first open list = %v", opened)
	}
	// right (1,2) and down (2,1) tie at f=2; right was opened first.
	var second string
	n := 0
	for _, s := range log.All() {
		if c, ok := s.(step.Current); ok {
			n++
			if n == 2 {
				second = c.ID
				break
			}
		}
	}
	if second != "1,2" {
		t.Errorf("second expansion = %s, want 1,2", second)
	}
}

func TestAStarDiagonal(t *testing.T) {
	g := &input.Grid{
		Rows:      5,
		Cols:      5,
		Start:     input.Cell{Row: 0, Col: 0},
		End:       input.Cell{Row: 4, Col: 4},
		Diagonal:  true,
		Heuristic: input.HeuristicChebyshev,
	}
	p := finalPath(t, AStar(g))
	if len(p)-1 != 4 {
		t.Errorf("diagonal path %v has %d moves, want 4", p, len(p)-1)
	}
}

func TestAStarNoCornerCutting(t *testing.T) {
	g := &input.Grid{
		Rows:     2,
		Cols:     2,
		Start:    input.Cell{Row: 0, Col: 0},
		End:      input.Cell{Row: 1, Col: 1},
		Walls:    []input.Cell{{Row: 0, Col: 1}, {Row: 1, Col: 0}},
		Diagonal: true,
	}
	if AStar(g).Last().Kind() != step.KindNotFound {
		t.Error("search squeezed between two corner-touching walls")
	}
}

func TestHeuristics(t *testing.T) {
	a, b := input.Cell{Row: 0, Col: 0}, input.Cell{Row: 3, Col: 4}
	tests := []struct {
		name string
		h    Heuristic
		want float64
	}{
		{input.HeuristicManhattan, Manhattan, 7},
		{input.HeuristicEuclidean, Euclidean, 5},
		{input.HeuristicChebyshev, Chebyshev, 4},
	}
	for _, tt := range tests {
		if got := tt.h(a, b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
		if got := HeuristicFor(tt.name)(a, b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("HeuristicFor(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestAStarOptimalOnRandomMazes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rows := rapid.IntRange(2, 8).Draw(t, "rows")
		cols := rapid.IntRange(2, 8).Draw(t, "cols")
		g := &input.Grid{Rows: rows, Cols: cols, End: input.Cell{Row: rows - 1, Col: cols - 1}}
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				cell := input.Cell{Row: r, Col: c}
				if cell == g.Start || cell == g.End {
					continue
				}
				if rapid.IntRange(0, 3).Draw(t, "wall") == 0 {
					g.Walls = append(g.Walls, cell)
				}
			}
		}

		log := AStar(g)
		closedCells(t, log)
		want := bfsGridDistance(g)
		if want < 0 {
			if log.Last().Kind() != step.KindNotFound {
				t.Fatalf("A* found a path in an unsolvable maze")
			}
			return
		}
		hp, ok := log.Last().(step.HighlightPath)
		if !ok {
			t.Fatalf("A* ended with %s, want a path of %d moves", log.Last().Kind(), want)
		}
		if len(hp.Path)-1 != want {
			t.Fatalf("path has %d moves, shortest is %d", len(hp.Path)-1, want)
		}
	})
}

// bfsGridDistance is the reference shortest cardinal distance, or -1.
func bfsGridDistance(g *input.Grid) int {
	walls := g.WallSet()
	dist := map[input.Cell]int{g.Start: 0}
	queue := []input.Cell{g.Start}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == g.End {
			return dist[c]
		}
		for _, d := range cardinal {
			n := input.Cell{Row: c.Row + d.Row, Col: c.Col + d.Col}
			if _, seen := dist[n]; seen || !g.InBounds(n) || walls[n] {
				continue
			}
			dist[n] = dist[c] + 1
			queue = append(queue, n)
		}
	}
	return -1
}
