// Package nodelink exports graph and tree scenes as Graphviz diagrams.
//
// # Overview
//
// [ToDOT] writes the nodes and edges of a scene as DOT source, coloring
// each element by its current state. The result can be saved for external
// Graphviz tools or rendered in-process with [RenderSVG].
//
// # Usage
//
//	dot, err := nodelink.ToDOT(adapter.Scene(), adapter.Decorations(), nodelink.Options{Pinned: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
//   - Pinned: keep the scene's own node positions (neato with fixed pos)
//     instead of letting dot rank the graph top to bottom
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
