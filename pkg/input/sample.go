package input

// Sample returns a small built-in input for family, used when no data is
// supplied on the command line. It returns nil for an unknown family.
func Sample(family Family) Data {
	switch family {
	case FamilyArray:
		return Array{Values: []int{5, 3, 8, 1, 9, 2, 7, 4}}
	case FamilyGraph:
		return &Graph{
			Nodes: []Node{{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"}, {ID: "E"}, {ID: "F"}},
			Edges: []Edge{
				{From: "A", To: "B"}, {From: "A", To: "C"}, {From: "B", To: "D"},
				{From: "C", To: "E"}, {From: "B", To: "E"}, {From: "D", To: "F"},
			},
			StartNode: "A",
			EndNode:   "F",
		}
	case FamilyTree:
		return &Tree{
			Value: 8,
			Left: &Tree{Value: 4,
				Left:  &Tree{Value: 2},
				Right: &Tree{Value: 6},
			},
			Right: &Tree{Value: 12,
				Left:  &Tree{Value: 10},
				Right: &Tree{Value: 14},
			},
		}
	case FamilyGrid:
		g := &Grid{Rows: 8, Cols: 12, Start: Cell{1, 1}, End: Cell{6, 10}}
		for r := 0; r < 6; r++ {
			g.Walls = append(g.Walls, Cell{r, 5})
		}
		for c := 7; c < 11; c++ {
			g.Walls = append(g.Walls, Cell{3, c})
		}
		return g
	default:
		return nil
	}
}
