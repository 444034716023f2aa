// Package viz maps step logs onto scenes.
//
// Each input family has an [Adapter]: [Array] draws bars, [Graph] draws a
// node-link diagram, [Tree] draws a top-down hierarchy and [Grid] draws a
// maze. An adapter owns one [scene.Scene]; Load builds its elements from
// input data, Layout positions them for a canvas size and Apply recolors
// them one step at a time.
//
// Steps are absolute, so any prefix of a log can be rebuilt with [Replay]:
//
//	a, _ := viz.New(input.FamilyGraph, viz.WithTitle("Breadth-First Search"))
//	_ = a.Load(graph)
//	viz.Replay(a, steps, 12) // scene after the first 12 steps
//
// Adapters are not safe for concurrent use. Render workers each build their
// own.
package viz
