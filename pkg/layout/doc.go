// Package layout computes element positions for each visualization family.
//
// Every function here is pure: it maps abstract items and a [Frame] (canvas
// size plus reserved margins) to positions, and reruns cheaply whenever data
// is loaded or the canvas is resized.
//
//	Linear        bars along a baseline (arrays)
//	Hierarchical  one row per depth (trees)
//	Circular      evenly around a circle (graphs)
//	Grid          on a square-ish lattice (graphs)
//	Force         seeded force-directed simulation (graphs, default)
//	Uniform       square cells (pathfinding grids)
package layout
