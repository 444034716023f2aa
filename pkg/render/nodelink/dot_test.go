package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/stepviz/pkg/errors"
	"github.com/matzehuels/stepviz/pkg/input"
	"github.com/matzehuels/stepviz/pkg/scene"
	"github.com/matzehuels/stepviz/pkg/viz"
)

func graphAdapter(t *testing.T) *viz.Graph {
	t.Helper()
	a := viz.NewGraph(viz.WithTitle("Breadth-First Search"), viz.WithGraphLayout(viz.GraphLayoutCircular))
	if err := a.Load(input.Sample(input.FamilyGraph)); err != nil {
		t.Fatal(err)
	}
	return a
}

func TestToDOT(t *testing.T) {
	a := graphAdapter(t)
	a.HighlightPath([]string{"A", "B", "D"})

	dot, err := ToDOT(a.Scene(), a.Decorations(), Options{})
	if err != nil {
		t.Fatal(err)
	}

	th := a.Scene().Theme()
	for _, want := range []string{
		"digraph G {",
		"rankdir=TB;",
		`label="Breadth-First Search";`,
		`"A" [label="A", fillcolor="` + scene.Hex(th.Color(scene.KindNode, scene.StatePath)) + `"`,
		`"F" [label="F", fillcolor="` + scene.Hex(th.Color(scene.KindNode, scene.StateEnd)) + `"`,
		`"A" -> "B" [color="` + scene.Hex(th.Color(scene.KindEdge, scene.StatePath)) + `", dir=none, penwidth=3];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "pos=") {
		t.Error("unpinned DOT carries positions")
	}
}

func TestToDOTPinned(t *testing.T) {
	a := graphAdapter(t)
	dot, err := ToDOT(a.Scene(), a.Decorations(), Options{Pinned: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(dot, "layout=neato;") {
		t.Error("pinned DOT does not select neato")
	}
	if got := strings.Count(dot, "!\""); got != 6 {
		t.Errorf("%d pinned nodes, want 6", got)
	}
}

func TestToDOTDirected(t *testing.T) {
	g := input.Sample(input.FamilyGraph).(*input.Graph)
	g.Directed = true
	a := viz.NewGraph()
	if err := a.Load(g); err != nil {
		t.Fatal(err)
	}
	dot, err := ToDOT(a.Scene(), a.Decorations(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(dot, "dir=none") {
		t.Error("directed edges rendered without arrows")
	}
}

func TestToDOTRejectsArrays(t *testing.T) {
	a := viz.NewArray()
	if err := a.Load(input.Array{Values: []int{1, 2}}); err != nil {
		t.Fatal(err)
	}
	_, err := ToDOT(a.Scene(), a.Decorations(), Options{})
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToDOT(array) = %v, want UNSUPPORTED", err)
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz runtime is slow to start")
	}
	a := graphAdapter(t)
	dot, err := ToDOT(a.Scene(), a.Decorations(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(svg)), "<") || !strings.Contains(string(svg), `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("unexpected SVG header: %.120s", svg)
	}
}
