// Package step defines the records an algorithm run emits and the log that
// holds them.
//
// A [Step] is a closed sum type: one struct per kind, each carrying only the
// fields that kind needs plus a caption. Steps are absolute, so applying the
// same step twice leaves a scene exactly as applying it once, and replaying
// steps 0..i from a freshly loaded scene always reproduces the same picture.
//
// Element identifiers used in targets follow three conventions:
//
//	array slot i        IndexID(i)        "3"
//	grid cell (r, c)    CellID(r, c)      "2,4"
//	graph/tree node     the node id       "A", "r.0.1"
//
// # Building logs
//
// Algorithms append to a [Recorder] and seal it with [Recorder.Log]:
//
//	var rec step.Recorder
//	rec.Add(step.Compare{I: 0, J: 1, Snapshot: slices.Clone(arr)})
//	log := rec.Log()
//
// A [Log] is read-only; [Log.Records] flattens it for printing.
package step
