package scene

import (
	"math"
	"strconv"
)

// Kind is the closed set of element variants.
type Kind int

const (
	KindBar Kind = iota
	KindNode
	KindEdge
	KindCell
)

var kindNames = [...]string{"bar", "node", "edge", "cell"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// State names a visual state. Colors come from the scene's [Theme].
type State string

const (
	StateDefault   State = "default"
	StateComparing State = "comparing"
	StateSwapping  State = "swapping"
	StateSelected  State = "selected"
	StateCompleted State = "completed"
	StateCurrent   State = "current"
	StateVisited   State = "visited"
	StateFrontier  State = "frontier"
	StateExplored  State = "explored"
	StatePath      State = "path"
	StateStart     State = "start"
	StateEnd       State = "end"
	StateFound     State = "found"
	StateWall      State = "wall"
)

// Element is one drawable. Which fields matter depends on Kind:
//
//	bar, cell  X, Y (top-left), W, H, Label
//	node       X, Y (center), R, Label
//	edge       From, To, Directed, Label (weight)
type Element struct {
	ID    string
	Kind  Kind
	X, Y  float64
	W, H  float64
	R     float64
	Label string

	From, To string
	Directed bool

	// State is the current visual state; Rest is the state a reset returns
	// to. Rest defaults to StateDefault.
	State State
	Rest  State

	Visible bool
	Opacity float64
}

// Geometry is the animatable part of an element.
type Geometry struct {
	X, Y, W, H, R float64
	Opacity       float64
}

// Geometry returns the element's current geometry.
func (e *Element) Geometry() Geometry {
	return Geometry{X: e.X, Y: e.Y, W: e.W, H: e.H, R: e.R, Opacity: e.Opacity}
}

// Center returns the element's visual center.
func (e *Element) Center() (float64, float64) {
	if e.Kind == KindNode {
		return e.X, e.Y
	}
	return e.X + e.W/2, e.Y + e.H/2
}

// Contains reports whether (x, y) lies inside the element. Edges contain no
// points.
func (e *Element) Contains(x, y float64) bool {
	switch e.Kind {
	case KindNode:
		return math.Hypot(x-e.X, y-e.Y) <= e.R
	case KindBar, KindCell:
		return x >= e.X && x <= e.X+e.W && y >= e.Y && y <= e.Y+e.H
	default:
		return false
	}
}

// Bar returns a visible bar element.
func Bar(id string, value int) Element {
	return Element{ID: id, Kind: KindBar, Label: strconv.Itoa(value), Visible: true, Opacity: 1}
}

// Node returns a visible node element.
func Node(id, label string) Element {
	return Element{ID: id, Kind: KindNode, Label: label, Visible: true, Opacity: 1}
}

// Cell returns a visible grid cell whose rest state is rest.
func Cell(id string, rest State) Element {
	return Element{ID: id, Kind: KindCell, State: rest, Rest: rest, Visible: true, Opacity: 1}
}

// Edge returns a visible edge between two node ids. Its ID is [EdgeID].
func Edge(from, to string, directed bool) Element {
	return Element{
		ID:       EdgeID(from, to, directed),
		Kind:     KindEdge,
		From:     from,
		To:       to,
		Directed: directed,
		Visible:  true,
		Opacity:  1,
	}
}

// EdgePrefix starts every edge id. Node ids must not use it.
const EdgePrefix = "edge:"

// EdgeID is the canonical identifier of an edge. Undirected edges sort their
// endpoints so both orientations name the same element.
func EdgeID(from, to string, directed bool) string {
	if directed {
		return EdgePrefix + from + "->" + to
	}
	if to < from {
		from, to = to, from
	}
	return EdgePrefix + from + "--" + to
}
