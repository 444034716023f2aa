// Package pkg provides the core libraries for stepviz algorithm animation.
//
// # Overview
//
// stepviz runs an algorithm once, records every step it takes, and replays the
// recorded steps onto a scene that can be drawn in a terminal or exported as
// frames. The pkg directory is organized into four main areas:
//
//  1. Domain logic ([algorithm], [step], [input])
//  2. Presentation ([scene], [layout], [viz], [render])
//  3. Playback ([playback])
//  4. Orchestration and infrastructure ([pipeline], [cache], [config],
//     [watcher], [observability])
//
// # Architecture
//
// The typical data flow through stepviz:
//
//	Input document (JSON/YAML/TOML/text)
//	         ↓
//	    [input] package (decode + validate)
//	         ↓
//	    [algorithm] package (run once, record a step.Log)
//	         ↓
//	    [viz] adapter (build the scene, apply steps)
//	         ↓
//	    [playback] controller  or  [pipeline] frame export
//	         ↓
//	    terminal / PNG / SVG / GIF / JSON / DOT
//
// # Quick Start
//
// Record a run and export the final frame:
//
//	import (
//	    "github.com/matzehuels/stepviz/pkg/algorithm"
//	    "github.com/matzehuels/stepviz/pkg/input"
//	    "github.com/matzehuels/stepviz/pkg/render/sink"
//	    "github.com/matzehuels/stepviz/pkg/viz"
//	)
//
//	// 1. Record the steps
//	runner := algorithm.NewRunner(algorithm.NewRegistry(), nil)
//	data := input.Array{Values: []int{5, 3, 8, 1}}
//	steps, _ := runner.Run("bubble", data)
//
//	// 2. Build the scene
//	a, _ := viz.New(input.FamilyArray)
//	_ = a.Load(data)
//
//	// 3. Apply every step
//	viz.Replay(a, steps, steps.Len())
//
//	// 4. Render to PNG
//	png, _ := sink.RenderPNG(a.Scene(), a.Decorations(), 960, 540)
//
// # Main Packages
//
// [algorithm] - The registry of built-in algorithms: bubble, selection and
// insertion sort; BFS and DFS; A* on grids; inorder, preorder, postorder and
// level-order traversals. Algorithms are pure functions from input to step log.
//
// [step] - The closed set of step kinds and the immutable step log.
//
// [input] - Input families (array, graph, tree, grid), decoders and limits.
//
// [scene] - Visual elements, states, the theme and the drawing surface
// interface.
//
// [layout] - Linear, tree, grid and graph (force, circular, grid) layouts.
//
// [viz] - One adapter per family translating steps into scene mutations.
//
// [render] - Surfaces and exports: raster, vector, terminal, JSON, GIF and
// Graphviz.
//
// [playback] - The playback controller with cancellable scheduling and
// tweened moves.
//
// [pipeline] - Run, load, replay and render frames in parallel with caching.
//
// [algorithm]: https://pkg.go.dev/github.com/matzehuels/stepviz/pkg/algorithm
// [step]: https://pkg.go.dev/github.com/matzehuels/stepviz/pkg/step
// [input]: https://pkg.go.dev/github.com/matzehuels/stepviz/pkg/input
// [scene]: https://pkg.go.dev/github.com/matzehuels/stepviz/pkg/scene
// [layout]: https://pkg.go.dev/github.com/matzehuels/stepviz/pkg/layout
// [viz]: https://pkg.go.dev/github.com/matzehuels/stepviz/pkg/viz
// [render]: https://pkg.go.dev/github.com/matzehuels/stepviz/pkg/render
// [playback]: https://pkg.go.dev/github.com/matzehuels/stepviz/pkg/playback
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/stepviz/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/stepviz/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/stepviz/pkg/config
// [watcher]: https://pkg.go.dev/github.com/matzehuels/stepviz/pkg/watcher
// [observability]: https://pkg.go.dev/github.com/matzehuels/stepviz/pkg/observability
package pkg
