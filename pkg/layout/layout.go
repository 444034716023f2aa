package layout

import "math"

// Point is a position in scene pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned box with its top-left corner at X, Y.
type Rect struct {
	X, Y, W, H float64
}

// Frame describes the drawable area: the canvas size minus the margins
// reserved for the title (Top) and the caption (Bottom).
type Frame struct {
	Width, Height float64
	Top, Bottom   float64
	Padding       float64
}

// Content returns the content box after margins and padding. Degenerate
// canvases yield an empty box rather than negative sizes.
func (f Frame) Content() Rect {
	x := f.Padding
	y := f.Top + f.Padding
	w := max(0, f.Width-2*f.Padding)
	h := max(0, f.Height-f.Top-f.Bottom-2*f.Padding)
	return Rect{X: x, Y: y, W: w, H: h}
}

// Center returns the midpoint of the content box.
func (f Frame) Center() Point {
	c := f.Content()
	return Point{X: c.X + c.W/2, Y: c.Y + c.H/2}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
