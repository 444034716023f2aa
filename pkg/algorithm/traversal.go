package algorithm

import (
	"slices"
	"strings"

	"github.com/matzehuels/stepviz/pkg/input"
	"github.com/matzehuels/stepviz/pkg/step"
)

type order int

const (
	preOrder order = iota
	inOrder
	postOrder
)

// Preorder records a node-first depth-first traversal.
func Preorder(root *input.TreeNode) step.Log { return depthFirst(root, preOrder) }

// Inorder records a left-node-right traversal. On n-ary trees the node is
// visited after its first child and before the rest.
func Inorder(root *input.TreeNode) step.Log { return depthFirst(root, inOrder) }

// Postorder records a children-first depth-first traversal.
func Postorder(root *input.TreeNode) step.Log { return depthFirst(root, postOrder) }

// depthFirst emits current on arrival at a node, explore before descending
// into a child and backtrack when returning from it. The visit step, which
// carries the visit order so far, is placed according to ord.
func depthFirst(root *input.TreeNode, ord order) step.Log {
	t := &traversal{}
	t.walk(root, ord)
	t.rec.Add(step.Complete{
		Info:  info("Traversal complete: %s", strings.Join(t.labels, ", ")),
		Order: slices.Clone(t.order),
	})
	return t.rec.Log()
}

type traversal struct {
	rec    step.Recorder
	order  []string
	labels []string
}

func (t *traversal) walk(n *input.TreeNode, ord order) {
	if n == nil {
		return
	}
	t.rec.Add(step.Current{Info: info("At node %s", n.Label), ID: n.ID})

	if ord == preOrder {
		t.visit(n)
	}
	for i, c := range n.Children {
		if ord == inOrder && i == 1 {
			t.visit(n)
		}
		if c == nil {
			continue
		}
		t.rec.Add(step.Explore{Info: info("Explore %s → %s", n.Label, c.Label), From: n.ID, To: c.ID})
		t.walk(c, ord)
		t.rec.Add(step.Backtrack{Info: info("Back to %s", n.Label), From: c.ID, To: n.ID})
	}
	if ord == inOrder && len(n.Children) < 2 {
		t.visit(n)
	}
	if ord == postOrder {
		t.visit(n)
	}
}

func (t *traversal) visit(n *input.TreeNode) {
	t.order = append(t.order, n.ID)
	t.labels = append(t.labels, n.Label)
	t.rec.Add(step.Visit{
		Info:  info("Visit %s (order: %s)", n.Label, strings.Join(t.labels, ", ")),
		ID:    n.ID,
		Order: slices.Clone(t.order),
	})
}

// LevelOrder records a breadth-first traversal. Each dequeued node emits
// current and visit; the queue after its children are appended is emitted
// as an enqueue step.
func LevelOrder(root *input.TreeNode) step.Log {
	t := &traversal{}
	queue := []*input.TreeNode{root}
	t.rec.Add(step.Enqueue{Info: info("Queue: [%s]", root.Label), IDs: []string{root.ID}})

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		t.rec.Add(step.Current{Info: info("Dequeue %s", n.Label), ID: n.ID})
		t.visit(n)

		for _, c := range n.Children {
			if c != nil {
				queue = append(queue, c)
			}
		}
		ids := make([]string, len(queue))
		labels := make([]string, len(queue))
		for i, q := range queue {
			ids[i] = q.ID
			labels[i] = q.Label
		}
		t.rec.Add(step.Enqueue{Info: info("Queue: [%s]", strings.Join(labels, ", ")), IDs: ids})
	}

	t.rec.Add(step.Complete{
		Info:  info("Traversal complete: %s", strings.Join(t.labels, ", ")),
		Order: slices.Clone(t.order),
	})
	return t.rec.Log()
}
