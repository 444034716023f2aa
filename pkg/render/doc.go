// Package render groups the frame output backends.
//
// # Overview
//
// Frames are drawn by [scene.Render] onto a surface; the subpackages supply
// the surfaces and exports:
//
//   - [sink]: PNG, GIF, SVG, JSON and terminal output
//   - [nodelink]: Graphviz DOT export and SVG rendering for graph and tree
//     scenes
//
// Every backend reads a scene and never mutates it, so one adapter state can
// be written in several formats.
package render
