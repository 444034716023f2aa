package algorithm

import (
	"slices"
	"strings"

	"github.com/matzehuels/stepviz/pkg/input"
	"github.com/matzehuels/stepviz/pkg/step"
)

// BFS records a breadth-first search of g from g.StartNode.
//
// Steps:
//  1. start on the origin, which is enqueued and marked visited.
//  2. Dequeue the front node: current, then visit (with the visit order).
//  3. If it is the end node: found, then highlight_path, and stop.
//  4. Enqueue unvisited neighbors in adjacency order, recording each parent,
//     and emit the queue as a frontier step.
//
// When the queue empties, not_found is emitted if an end node was requested,
// complete otherwise.
func BFS(g *input.Graph) step.Log {
	return graphSearch(g, false)
}

// DFS records a depth-first search of g from g.StartNode using an explicit
// stack. Neighbors are pushed in reverse adjacency order so they are popped in
// adjacency order, and a node's parent is the last node that pushed it.
// Terminal steps match [BFS].
func DFS(g *input.Graph) step.Log {
	return graphSearch(g, true)
}

func graphSearch(g *input.Graph, lifo bool) step.Log {
	var rec step.Recorder
	adj := g.Adjacency()
	start, end := g.StartNode, g.EndNode

	name := "queue"
	if lifo {
		name = "stack"
	}

	visited := map[string]bool{}
	parent := map[string]string{}
	frontier := []string{start}
	if !lifo {
		visited[start] = true
	}
	var order []string

	rec.Add(step.Start{Info: info("Start search at %s", start), ID: start})
	rec.Add(step.Frontier{Info: info("Initial %s: [%s]", name, start), IDs: []string{start}})

	for len(frontier) > 0 {
		var cur string
		if lifo {
			cur = frontier[len(frontier)-1]
			frontier = frontier[:len(frontier)-1]
			if visited[cur] {
				continue
			}
			visited[cur] = true
		} else {
			cur = frontier[0]
			frontier = frontier[1:]
		}

		order = append(order, cur)
		rec.Add(step.Current{Info: info("Processing %s", cur), ID: cur})
		rec.Add(step.Visit{
			Info:  info("Visited %s", cur),
			ID:    cur,
			From:  parent[cur],
			Order: slices.Clone(order),
		})

		if end != "" && cur == end {
			path := reconstruct(parent, start, end)
			rec.Add(step.Found{Info: info("Found %s", end), ID: end})
			rec.Add(step.HighlightPath{
				Info: info("Path: %s", strings.Join(path, " → ")),
				Path: path,
			})
			return rec.Log()
		}

		neighbors := adj[cur]
		if lifo {
			for i := len(neighbors) - 1; i >= 0; i-- {
				nb := neighbors[i]
				if visited[nb] {
					continue
				}
				parent[nb] = cur
				frontier = append(frontier, nb)
			}
		} else {
			for _, nb := range neighbors {
				if visited[nb] {
					continue
				}
				visited[nb] = true
				parent[nb] = cur
				frontier = append(frontier, nb)
			}
		}

		pending := pendingOrder(frontier, lifo, visited)
		rec.Add(step.Frontier{
			Info: info("%s%s: [%s]", strings.ToUpper(name[:1]), name[1:], strings.Join(pending, ", ")),
			IDs:  pending,
		})
	}

	if end != "" {
		rec.Add(step.NotFound{Info: info("%s is not reachable from %s", end, start), Target: end})
	} else {
		rec.Add(step.Complete{Info: info("Search complete: visited %d nodes", len(order)), Order: order})
	}
	return rec.Log()
}

// pendingOrder lists frontier entries in the order they will be processed.
// Stack entries for already visited nodes are stale and skipped.
func pendingOrder(frontier []string, lifo bool, visited map[string]bool) []string {
	if !lifo {
		return slices.Clone(frontier)
	}
	out := make([]string, 0, len(frontier))
	seen := map[string]bool{}
	for i := len(frontier) - 1; i >= 0; i-- {
		id := frontier[i]
		if visited[id] || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// reconstruct follows parent links from end back to start and returns the
// path in start-to-end order.
func reconstruct[K comparable](parent map[K]K, start, end K) []K {
	path := []K{end}
	for cur := end; cur != start; {
		p, ok := parent[cur]
		if !ok {
			break
		}
		path = append(path, p)
		cur = p
	}
	slices.Reverse(path)
	return path
}
