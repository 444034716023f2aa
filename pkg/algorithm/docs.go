package algorithm

const bubbleDoc = `# Bubble Sort

Repeatedly walk the array and swap adjacent values that are out of order.
After pass *i* the largest *i* values sit at the end of the array.

| | |
|---|---|
| Time | O(n²) |
| Space | O(1) |
| Stable | yes |

A pass that makes **no swaps** proves the rest of the array sorted, so the
run stops early.

**Steps:** ` + "`compare`, `swap`, `pass_complete`" + `
`

const selectionDoc = `# Selection Sort

For each slot from left to right, scan the unsorted suffix for its minimum
and swap it into place.

| | |
|---|---|
| Time | O(n²) |
| Space | O(1) |
| Stable | no |

Performs at most n − 1 swaps, which makes it useful when writes are costly.

**Steps:** ` + "`select`, `compare`, `swap`, `pass_complete`" + `
`

const insertionDoc = `# Insertion Sort

Take each value in turn and shift it left until the prefix before it is
ordered.

| | |
|---|---|
| Time | O(n²), O(n) on sorted input |
| Space | O(1) |
| Stable | yes |

**Steps:** ` + "`compare`, `swap`, `sorted`" + `
`

const bfsDoc = `# Breadth-First Search

Explore the graph outward from the start node, one layer at a time, using a
FIFO queue. A node is marked visited when it is enqueued, so each node enters
the queue once.

In an unweighted graph the first time BFS reaches a node it has found a
**shortest path** to it, reconstructed by following parent links back to the
start.

| | |
|---|---|
| Time | O(V + E) |
| Space | O(V) |

**Steps:** ` + "`start`, `current`, `visit`, `frontier`, `found`, `highlight_path`, `not_found`" + `
`

const dfsDoc = `# Depth-First Search

Follow one branch as deep as possible before backing up, using an explicit
stack. Neighbors are pushed in reverse so they are explored in the order the
edges were listed.

DFS finds *a* path to the target, not necessarily the shortest one.

| | |
|---|---|
| Time | O(V + E) |
| Space | O(V) |

**Steps:** ` + "`start`, `current`, `visit`, `frontier`, `found`, `highlight_path`, `not_found`" + `
`

const astarDoc = `# A* Search

Best-first search on a grid. Each open cell is scored
*f = g + h*, where *g* is the cost from the start and *h* a heuristic
estimate of the cost to the target. The cell with the lowest *f* is
expanded next; ties go to the cell that was opened first.

Heuristics:

- **manhattan**: |Δrow| + |Δcol| (default)
- **euclidean**: straight-line distance
- **chebyshev**: max(|Δrow|, |Δcol|)

With ` + "`diagonal: true`" + ` the search may also move diagonally at cost √2.

**Steps:** ` + "`start`, `current`, `visit`, `frontier`, `found`, `highlight_path`, `not_found`" + `
`

const inorderDoc = `# Inorder Traversal

Visit the left subtree, then the node, then the right subtree. On a binary
search tree this yields the keys in ascending order.

For n-ary trees the node is visited after its first child.

**Steps:** ` + "`current`, `explore`, `visit`, `backtrack`, `complete`" + `
`

const preorderDoc = `# Preorder Traversal

Visit the node, then each subtree from left to right. Useful for copying a
tree or printing it as an outline.

**Steps:** ` + "`current`, `visit`, `explore`, `backtrack`, `complete`" + `
`

const postorderDoc = `# Postorder Traversal

Visit every subtree before the node itself. Useful for freeing a tree or
evaluating an expression tree.

**Steps:** ` + "`current`, `explore`, `backtrack`, `visit`, `complete`" + `
`

const levelorderDoc = `# Level-Order Traversal

Visit the tree one depth at a time, left to right, using a FIFO queue.

**Steps:** ` + "`enqueue`, `current`, `visit`, `complete`" + `
`
