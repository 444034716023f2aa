package input

import (
	"testing"
)

func TestNormalizeTree(t *testing.T) {
	tests := []struct {
		name    string
		tree    *Tree
		wantIDs []string
		height  int
	}{
		{
			name: "NAry",
			tree: &Tree{Value: "a", Children: []*Tree{
				{Value: "b", Children: []*Tree{{Value: "d"}}},
				{Value: "c"},
			}},
			wantIDs: []string{"r", "r.0", "r.0.0", "r.1"},
			height:  3,
		},
		{
			name:    "BinaryRightOnly",
			tree:    &Tree{Value: 1.0, Right: &Tree{Value: 2.0}},
			wantIDs: []string{"r", "r.1"},
			height:  2,
		},
		{
			name:    "BinaryLeftOnly",
			tree:    &Tree{Value: 1.0, Left: &Tree{Value: 2.0}},
			wantIDs: []string{"r", "r.0"},
			height:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := tt.tree.Normalize()
			var ids []string
			root.Walk(func(n *TreeNode) { ids = append(ids, n.ID) })
			if len(ids) != len(tt.wantIDs) {
				t.Fatalf("ids = %v, want %v", ids, tt.wantIDs)
			}
			for i := range ids {
				if ids[i] != tt.wantIDs[i] {
					t.Errorf("ids[%d] = %s, want %s", i, ids[i], tt.wantIDs[i])
				}
			}
			if h := root.Height(); h != tt.height {
				t.Errorf("Height = %d, want %d", h, tt.height)
			}
		})
	}
}

func TestNormalizeBinaryHole(t *testing.T) {
	root := (&Tree{Value: 1.0, Right: &Tree{Value: 2.0}}).Normalize()
	if len(root.Children) != 2 || root.Children[0] != nil {
		t.Fatalf("children = %v, want [nil, right]", root.Children)
	}
	if root.Children[1].Label != "2" {
		t.Errorf("right label = %q, want 2", root.Children[1].Label)
	}
}

func TestTreeIsBinary(t *testing.T) {
	if (&Tree{Value: 1, Children: []*Tree{{Value: 2}}}).IsBinary() {
		t.Error("n-ary tree reported binary")
	}
	if !(&Tree{Value: 1, Children: []*Tree{{Value: 2, Left: &Tree{Value: 3}}}}).IsBinary() {
		t.Error("nested left child not detected")
	}
}

func TestDirectedAdjacency(t *testing.T) {
	g := &Graph{
		Nodes:     []Node{{ID: "A"}, {ID: "B"}},
		Edges:     []Edge{{From: "A", To: "B"}},
		StartNode: "A",
		Directed:  true,
	}
	adj := g.Adjacency()
	if len(adj["A"]) != 1 || len(adj["B"]) != 0 {
		t.Errorf("adjacency = %v", adj)
	}
}
