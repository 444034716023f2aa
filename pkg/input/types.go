package input

import (
	"fmt"
	"strconv"
)

// =============================================================================
// Families
// =============================================================================

// Family identifies a data-structure family. Each family has one input type,
// one set of algorithms and one visualization adapter.
type Family string

const (
	FamilyArray Family = "array"
	FamilyGraph Family = "graph"
	FamilyTree  Family = "tree"
	FamilyGrid  Family = "grid"
)

// Families lists every family in display order.
var Families = []Family{FamilyArray, FamilyGraph, FamilyTree, FamilyGrid}

// Data is the input of one algorithm run. Concrete types are [Array], [*Graph],
// [*Tree] and [*Grid].
type Data interface {
	Family() Family
	Validate() error
}

// =============================================================================
// Array
// =============================================================================

// Array is an ordered sequence of integers.
type Array struct {
	Values []int `json:"values" yaml:"values" toml:"values"`
}

// Family implements Data.
func (Array) Family() Family { return FamilyArray }

// =============================================================================
// Graph
// =============================================================================

// Graph is a node-link graph with a search origin and optional target.
//
//	{
//	  "nodes": [{"id": "A"}, {"id": "B"}],
//	  "edges": [{"from": "A", "to": "B"}],
//	  "startNode": "A",
//	  "endNode": "B"
//	}
type Graph struct {
	Nodes     []Node `json:"nodes" yaml:"nodes" toml:"nodes"`
	Edges     []Edge `json:"edges" yaml:"edges" toml:"edges"`
	StartNode string `json:"startNode" yaml:"startNode" toml:"startNode"`
	EndNode   string `json:"endNode,omitempty" yaml:"endNode,omitempty" toml:"endNode,omitempty"`
	Directed  bool   `json:"directed,omitempty" yaml:"directed,omitempty" toml:"directed,omitempty"`
}

// Node is a graph vertex.
type Node struct {
	ID    string `json:"id" yaml:"id" toml:"id"`
	Value any    `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
}

// DisplayLabel returns the value if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Value != nil {
		return formatValue(n.Value)
	}
	return n.ID
}

// Edge connects two nodes. Edges are undirected unless the graph is directed.
type Edge struct {
	From   string  `json:"from" yaml:"from" toml:"from"`
	To     string  `json:"to" yaml:"to" toml:"to"`
	Weight float64 `json:"weight,omitempty" yaml:"weight,omitempty" toml:"weight,omitempty"`
}

// Family implements Data.
func (*Graph) Family() Family { return FamilyGraph }

// Adjacency returns each node's neighbors in edge-list order. Undirected
// edges appear in both endpoints' lists.
func (g *Graph) Adjacency() map[string][]string {
	adj := make(map[string][]string, len(g.Nodes))
	for _, n := range g.Nodes {
		adj[n.ID] = nil
	}
	for _, e := range g.Edges {
		adj[e.From] = append(adj[e.From], e.To)
		if !g.Directed {
			adj[e.To] = append(adj[e.To], e.From)
		}
	}
	return adj
}

// HasNode reports whether id names a node.
func (g *Graph) HasNode(id string) bool {
	for _, n := range g.Nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}

// =============================================================================
// Tree
// =============================================================================

// Tree is either an n-ary tree ({value, children}) or a binary tree
// ({value, left, right}). Mixing both forms on one node is invalid.
type Tree struct {
	Value    any     `json:"value" yaml:"value" toml:"value"`
	Children []*Tree `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
	Left     *Tree   `json:"left,omitempty" yaml:"left,omitempty" toml:"left,omitempty"`
	Right    *Tree   `json:"right,omitempty" yaml:"right,omitempty" toml:"right,omitempty"`
}

// Family implements Data.
func (*Tree) Family() Family { return FamilyTree }

// IsBinary reports whether any node uses the left/right form.
func (t *Tree) IsBinary() bool {
	if t == nil {
		return false
	}
	if t.Left != nil || t.Right != nil {
		return true
	}
	for _, c := range t.Children {
		if c.IsBinary() {
			return true
		}
	}
	return false
}

// TreeNode is the normalized form of a [Tree] shared by traversals and the
// tree adapter. Children may contain nil holes: a binary node with only a
// right child has Children == [nil, right].
type TreeNode struct {
	ID       string
	Label    string
	Depth    int
	Children []*TreeNode
}

// RootID is the identifier of the root of a normalized tree. Descendants are
// addressed by child index: "r.0", "r.0.1", ...
const RootID = "r"

// Normalize converts the tree into TreeNodes with path-based identifiers.
func (t *Tree) Normalize() *TreeNode {
	return normalize(t, RootID, 0)
}

func normalize(t *Tree, id string, depth int) *TreeNode {
	if t == nil {
		return nil
	}
	n := &TreeNode{ID: id, Label: formatValue(t.Value), Depth: depth}
	kids := t.Children
	if t.Left != nil || t.Right != nil {
		kids = []*Tree{t.Left, t.Right}
		if t.Right == nil {
			kids = kids[:1]
		}
	}
	for i, c := range kids {
		n.Children = append(n.Children, normalize(c, id+"."+strconv.Itoa(i), depth+1))
	}
	return n
}

// Walk calls fn for every node in preorder.
func (n *TreeNode) Walk(fn func(*TreeNode)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Height returns the number of levels below and including n.
func (n *TreeNode) Height() int {
	if n == nil {
		return 0
	}
	h := 0
	for _, c := range n.Children {
		h = max(h, c.Height())
	}
	return h + 1
}

// Size returns the number of nodes.
func (n *TreeNode) Size() int {
	count := 0
	n.Walk(func(*TreeNode) { count++ })
	return count
}

// =============================================================================
// Grid
// =============================================================================

// Cell is a grid coordinate.
type Cell struct {
	Row int `json:"row" yaml:"row" toml:"row"`
	Col int `json:"col" yaml:"col" toml:"col"`
}

// String formats the cell as "row,col".
func (c Cell) String() string { return fmt.Sprintf("%d,%d", c.Row, c.Col) }

// Grid is a rectangular maze for pathfinding.
type Grid struct {
	Rows      int    `json:"rows" yaml:"rows" toml:"rows"`
	Cols      int    `json:"cols" yaml:"cols" toml:"cols"`
	Start     Cell   `json:"start" yaml:"start" toml:"start"`
	End       Cell   `json:"end" yaml:"end" toml:"end"`
	Walls     []Cell `json:"walls,omitempty" yaml:"walls,omitempty" toml:"walls,omitempty"`
	Heuristic string `json:"heuristic,omitempty" yaml:"heuristic,omitempty" toml:"heuristic,omitempty"`
	Diagonal  bool   `json:"diagonal,omitempty" yaml:"diagonal,omitempty" toml:"diagonal,omitempty"`
}

// Heuristics accepted by Grid.Heuristic. The empty string means Manhattan.
const (
	HeuristicManhattan = "manhattan"
	HeuristicEuclidean = "euclidean"
	HeuristicChebyshev = "chebyshev"
)

// Family implements Data.
func (*Grid) Family() Family { return FamilyGrid }

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.Rows && c.Col >= 0 && c.Col < g.Cols
}

// WallSet returns the walls as a set.
func (g *Grid) WallSet() map[Cell]bool {
	walls := make(map[Cell]bool, len(g.Walls))
	for _, w := range g.Walls {
		walls[w] = true
	}
	return walls
}

// =============================================================================
// Helpers
// =============================================================================

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
