package layout

// HierarchicalOptions configures [Hierarchical].
type HierarchicalOptions struct {
	// LevelHeight is the vertical distance between levels. Zero spreads the
	// levels over the content height.
	LevelHeight float64
}

// Hierarchical places tree levels top to bottom. levels[d] lists the ids at
// depth d from left to right; the root level is 0.
//
// Nodes of a level are evenly spaced across the content width, and level d
// sits at content top + d·LevelHeight.
func Hierarchical(levels [][]string, f Frame, opts HierarchicalOptions) map[string]Point {
	out := make(map[string]Point)
	if len(levels) == 0 {
		return out
	}
	c := f.Content()

	levelH := opts.LevelHeight
	if levelH <= 0 {
		levelH = c.H
		if len(levels) > 1 {
			levelH = c.H / float64(len(levels)-1)
		}
	}

	for depth, ids := range levels {
		y := c.Y + float64(depth)*levelH
		if len(levels) == 1 {
			y = c.Y + c.H/2
		}
		slot := c.W / float64(len(ids)+1)
		for i, id := range ids {
			out[id] = Point{X: c.X + slot*float64(i+1), Y: y}
		}
	}
	return out
}
