package algorithm

import (
	"slices"

	"github.com/matzehuels/stepviz/pkg/errors"
	"github.com/matzehuels/stepviz/pkg/input"
	"github.com/matzehuels/stepviz/pkg/step"
)

// RunFunc computes the complete step log for one input. It receives data
// that has already been validated and matches the algorithm's family.
type RunFunc func(data input.Data) (step.Log, error)

// Algorithm describes one runnable algorithm. It is plain data: the registry
// stores values, and callers may copy them freely.
type Algorithm struct {
	ID          string       // Stable identifier, e.g. "bubble"
	Name        string       // Display name, e.g. "Bubble Sort"
	Family      input.Family // Input family the algorithm consumes
	Summary     string       // One-line description for listings
	Description string       // Markdown body for "stepviz info"
	Run         RunFunc
}

// Registry holds the algorithms available to a session. It is built once at
// startup and passed to whatever needs it; there is no package-level registry.
//
// A Registry is not safe for concurrent registration, but lookups on a fully
// built registry may run concurrently.
type Registry struct {
	byID  map[string]Algorithm
	order []string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{byID: make(map[string]Algorithm)}
}

// NewRegistry returns a registry holding every built-in algorithm.
func NewRegistry() *Registry {
	r := New()
	for _, a := range builtins() {
		if err := r.Register(a); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a. IDs must be unique and well-formed.
func (r *Registry) Register(a Algorithm) error {
	if err := errors.ValidateAlgorithmID(a.ID); err != nil {
		return err
	}
	if _, dup := r.byID[a.ID]; dup {
		return errors.New(errors.ErrCodeInvalidInput, "algorithm %q already registered", a.ID)
	}
	if a.Run == nil {
		return errors.New(errors.ErrCodeInvalidInput, "algorithm %q has no run function", a.ID)
	}
	if !slices.Contains(input.Families, a.Family) {
		return errors.New(errors.ErrCodeInvalidInput, "algorithm %q has unknown family %q", a.ID, a.Family)
	}
	if a.Name == "" {
		a.Name = a.ID
	}
	r.byID[a.ID] = a
	r.order = append(r.order, a.ID)
	return nil
}

// Get returns the algorithm registered under id.
func (r *Registry) Get(id string) (Algorithm, error) {
	a, ok := r.byID[id]
	if !ok {
		return Algorithm{}, errors.New(errors.ErrCodeAlgorithmNotFound, "unknown algorithm %q", id)
	}
	return a, nil
}

// List returns all algorithms in registration order.
func (r *Registry) List() []Algorithm {
	out := make([]Algorithm, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// ByFamily returns the algorithms of one family in registration order.
func (r *Registry) ByFamily(f input.Family) []Algorithm {
	var out []Algorithm
	for _, id := range r.order {
		if a := r.byID[id]; a.Family == f {
			out = append(out, a)
		}
	}
	return out
}

// IDs returns every registered identifier in registration order.
func (r *Registry) IDs() []string {
	return slices.Clone(r.order)
}

// Len returns the number of registered algorithms.
func (r *Registry) Len() int { return len(r.order) }

func builtins() []Algorithm {
	return []Algorithm{
		{
			ID: "bubble", Name: "Bubble Sort", Family: input.FamilyArray,
			Summary:     "Repeatedly swap adjacent out-of-order pairs",
			Description: bubbleDoc,
			Run:         arrayRun(BubbleSort),
		},
		{
			ID: "selection", Name: "Selection Sort", Family: input.FamilyArray,
			Summary:     "Move the smallest remaining value to the front",
			Description: selectionDoc,
			Run:         arrayRun(SelectionSort),
		},
		{
			ID: "insertion", Name: "Insertion Sort", Family: input.FamilyArray,
			Summary:     "Grow a sorted prefix one value at a time",
			Description: insertionDoc,
			Run:         arrayRun(InsertionSort),
		},
		{
			ID: "bfs", Name: "Breadth-First Search", Family: input.FamilyGraph,
			Summary:     "Explore a graph level by level with a FIFO queue",
			Description: bfsDoc,
			Run:         graphRun(BFS),
		},
		{
			ID: "dfs", Name: "Depth-First Search", Family: input.FamilyGraph,
			Summary:     "Explore a graph branch by branch with a stack",
			Description: dfsDoc,
			Run:         graphRun(DFS),
		},
		{
			ID: "astar", Name: "A* Search", Family: input.FamilyGrid,
			Summary:     "Find a shortest path on a grid guided by a heuristic",
			Description: astarDoc,
			Run:         gridRun(AStar),
		},
		{
			ID: "inorder", Name: "Inorder Traversal", Family: input.FamilyTree,
			Summary:     "Visit left subtree, node, then right subtree",
			Description: inorderDoc,
			Run:         treeRun(Inorder),
		},
		{
			ID: "preorder", Name: "Preorder Traversal", Family: input.FamilyTree,
			Summary:     "Visit node before its subtrees",
			Description: preorderDoc,
			Run:         treeRun(Preorder),
		},
		{
			ID: "postorder", Name: "Postorder Traversal", Family: input.FamilyTree,
			Summary:     "Visit node after its subtrees",
			Description: postorderDoc,
			Run:         treeRun(Postorder),
		},
		{
			ID: "levelorder", Name: "Level-Order Traversal", Family: input.FamilyTree,
			Summary:     "Visit the tree one depth at a time with a queue",
			Description: levelorderDoc,
			Run:         treeRun(LevelOrder),
		},
	}
}

func arrayRun(fn func([]int) step.Log) RunFunc {
	return func(data input.Data) (step.Log, error) {
		a, ok := data.(input.Array)
		if !ok {
			return step.Log{}, mismatch(input.FamilyArray, data)
		}
		return fn(a.Values), nil
	}
}

func graphRun(fn func(*input.Graph) step.Log) RunFunc {
	return func(data input.Data) (step.Log, error) {
		g, ok := data.(*input.Graph)
		if !ok {
			return step.Log{}, mismatch(input.FamilyGraph, data)
		}
		return fn(g), nil
	}
}

func gridRun(fn func(*input.Grid) step.Log) RunFunc {
	return func(data input.Data) (step.Log, error) {
		g, ok := data.(*input.Grid)
		if !ok {
			return step.Log{}, mismatch(input.FamilyGrid, data)
		}
		return fn(g), nil
	}
}

func treeRun(fn func(*input.TreeNode) step.Log) RunFunc {
	return func(data input.Data) (step.Log, error) {
		t, ok := data.(*input.Tree)
		if !ok {
			return step.Log{}, mismatch(input.FamilyTree, data)
		}
		return fn(t.Normalize()), nil
	}
}

func mismatch(want input.Family, data input.Data) error {
	if data == nil {
		return errors.New(errors.ErrCodeInvalidInput, "no %s input", want)
	}
	return errors.New(errors.ErrCodeFamilyMismatch, "expected %s input, got %s", want, data.Family())
}
