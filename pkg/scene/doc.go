// Package scene holds the drawable elements of a visualization and draws
// them onto a [Surface].
//
// An [Element] is a closed tagged variant: bar, node, edge or cell. Each
// element has a named [State] whose color comes from the scene's [Theme];
// setting a state the element's palette does not know is ignored rather than
// reported, as is any setter called with an unknown id.
//
// Edges reference two existing nodes and can never outlive them: [Scene.Add]
// rejects an edge with a missing endpoint and [Scene.Remove] drops a node's
// incident edges before the node.
//
// [Render] performs a full clear-and-redraw from the scene's current state.
// It never mutates the scene, so hosts may call it as often as they like.
package scene
