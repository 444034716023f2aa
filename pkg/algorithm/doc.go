// Package algorithm computes step logs for the built-in algorithms.
//
// Algorithms are plain data ([Algorithm]) held by an explicit [Registry].
// [NewRegistry] returns the built-in set:
//
//	array  bubble, selection, insertion
//	graph  bfs, dfs
//	grid   astar
//	tree   inorder, preorder, postorder, levelorder
//
// A [Runner] resolves an id, checks that the input belongs to the
// algorithm's family, validates it and returns the complete [step.Log]:
//
//	runner := algorithm.NewRunner(algorithm.NewRegistry(), logger)
//	steps, err := runner.Run("bfs", graph)
//
// Runs are synchronous and total. Each algorithm works on its own copy of
// the input and records every visual transition up front; nothing is
// computed during playback.
package algorithm
