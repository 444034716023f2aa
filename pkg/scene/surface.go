package scene

import "image/color"

// Align is the horizontal anchor of drawn text.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Surface is a 2D drawing target. Coordinates are in scene pixels with the
// origin at the top-left; text is anchored at its vertical middle.
//
// Implementations live in pkg/render/sink: a raster surface, a vector
// surface and a terminal cell grid.
type Surface interface {
	Size() (w, h float64)
	Clear(c color.Color)
	FillRect(x, y, w, h float64, c color.Color)
	StrokeRect(x, y, w, h, lineWidth float64, c color.Color)
	FillCircle(cx, cy, r float64, c color.Color)
	StrokeCircle(cx, cy, r, lineWidth float64, c color.Color)
	Line(x1, y1, x2, y2, lineWidth float64, c color.Color)
	Text(s string, x, y, size float64, align Align, c color.Color)
}

// Decorations is the non-element content an adapter adds to every frame.
type Decorations struct {
	Title   string        // algorithm name
	Caption string        // current step message
	Aux     string        // family-specific line, e.g. visit order
	Legend  []LegendEntry // states worth explaining
}

// LegendEntry is one swatch of the legend.
type LegendEntry struct {
	Label string
	Kind  Kind
	State State
}

// Frame layout shared by adapters and the renderer.
const (
	TitleMargin  = 48.0 // reserved above the content area
	FooterMargin = 56.0 // reserved below it for aux line and caption
	TitleSize    = 18.0
	CaptionSize  = 13.0
)
