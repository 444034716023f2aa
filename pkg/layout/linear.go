package layout

// LinearOptions configures [Linear].
type LinearOptions struct {
	Spacing     float64 // gap between bars
	MinWidth    float64
	MaxWidth    float64
	MinHeight   float64
	MaxHeight   float64
	LabelMargin float64 // reserved under the baseline for value labels
}

// DefaultLinearOptions returns the bar sizing used by the array view.
func DefaultLinearOptions() LinearOptions {
	return LinearOptions{
		Spacing:     4,
		MinWidth:    4,
		MaxWidth:    60,
		MinHeight:   4,
		MaxHeight:   1e9,
		LabelMargin: 24,
	}
}

// Linear places one bar per value along a common baseline.
//
// Bar width is available/n − spacing clamped to [MinWidth, MaxWidth], and the
// group is centered horizontally. Height is proportional to |value| / max|value|
// over the content height, clamped to [MinHeight, MaxHeight].
func Linear(values []int, f Frame, opts LinearOptions) []Rect {
	n := len(values)
	if n == 0 {
		return nil
	}
	c := f.Content()

	barW := clamp(c.W/float64(n)-opts.Spacing, opts.MinWidth, opts.MaxWidth)
	groupW := float64(n)*barW + float64(n-1)*opts.Spacing
	startX := c.X + (c.W-groupW)/2

	peak := 0
	for _, v := range values {
		peak = max(peak, abs(v))
	}
	baseline := c.Y + c.H - opts.LabelMargin
	avail := max(0, baseline-c.Y)

	out := make([]Rect, n)
	for i, v := range values {
		h := opts.MinHeight
		if peak > 0 {
			h = float64(abs(v)) / float64(peak) * avail
		}
		h = clamp(h, opts.MinHeight, opts.MaxHeight)
		out[i] = Rect{
			X: startX + float64(i)*(barW+opts.Spacing),
			Y: baseline - h,
			W: barW,
			H: h,
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
