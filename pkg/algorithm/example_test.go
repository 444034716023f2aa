package algorithm_test

import (
	"fmt"

	"github.com/matzehuels/stepviz/pkg/algorithm"
	"github.com/matzehuels/stepviz/pkg/errors"
	"github.com/matzehuels/stepviz/pkg/input"
	"github.com/matzehuels/stepviz/pkg/step"
)

func ExampleBubbleSort() {
	l := algorithm.BubbleSort([]int{5, 3, 8, 1})

	for _, s := range l.All() {
		fmt.Println(s.Kind(), s.Targets())
	}

	// Every sorting step carries the array as it stands after the step
	final := l.Last().(step.PassComplete)
	fmt.Println("final:", final.Snapshot)
	// Output:
	// compare [0 1]
	// swap [0 1]
	// compare [1 2]
	// compare [2 3]
	// swap [2 3]
	// pass_complete [3]
	// compare [0 1]
	// compare [1 2]
	// swap [1 2]
	// pass_complete [2]
	// compare [0 1]
	// swap [0 1]
	// pass_complete [1]
	// pass_complete [0]
	// final: [1 3 5 8]
}

func ExampleRunner_Run() {
	runner := algorithm.NewRunner(algorithm.NewRegistry(), nil)

	g := &input.Graph{
		Nodes: []input.Node{{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"}},
		Edges: []input.Edge{
			{From: "A", To: "B"},
			{From: "A", To: "C"},
			{From: "B", To: "D"},
		},
		StartNode: "A",
		EndNode:   "D",
	}

	l, err := runner.Run("bfs", g)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for _, s := range l.All() {
		fmt.Println(s.Kind(), s.Targets())
	}
	// Output:
	// start [A]
	// frontier [A]
	// current [A]
	// visit [A]
	// frontier [B C]
	// current [B]
	// visit [A B]
	// frontier [C D]
	// current [C]
	// visit [A C]
	// frontier [D]
	// current [D]
	// visit [B D]
	// found [D]
	// highlight_path [A B D]
}

func ExampleRunner_Run_unknownAlgorithm() {
	runner := algorithm.NewRunner(algorithm.NewRegistry(), nil)

	_, err := runner.Run("bogosort", input.Array{Values: []int{2, 1}})
	fmt.Println(errors.GetCode(err))
	// Output:
	// ALGORITHM_NOT_FOUND
}

func ExampleRegistry_IDs() {
	reg := algorithm.NewRegistry()
	fmt.Println(reg.IDs())
	// Output:
	// [bubble selection insertion bfs dfs astar inorder preorder postorder levelorder]
}
