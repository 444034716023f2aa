// Package input defines the data an algorithm run consumes and decodes it from
// text, JSON, YAML and TOML.
//
// There is one concrete type per [Family]:
//
//	array  Array   "5,3,8,1" or {"values": [5, 3, 8, 1]}
//	graph  *Graph  {"nodes": [...], "edges": [...], "startNode": "A"}
//	tree   *Tree   {"value": 1, "children": [...]} or {"value": 1, "left": {...}}
//	grid   *Grid   {"rows": 5, "cols": 5, "start": {...}, "end": {...}}
//
// Every decoder validates before returning, so a [Data] value obtained from
// [Decode], [ReadFile] or [ParseArray] is always safe to run and draw. Decode
// failures carry the INVALID_INPUT code from pkg/errors.
package input
