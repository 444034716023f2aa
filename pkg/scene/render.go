package scene

import (
	"image/color"
	"math"
)

// Overlay supplies in-flight geometry for elements being tweened. It returns
// false for elements drawn at their stored geometry.
type Overlay func(id string) (Geometry, bool)

// RenderOption configures [Render].
type RenderOption func(*renderer)

type renderer struct {
	overlay Overlay
	legend  bool
}

// WithOverlay draws tweened geometry from o instead of stored geometry.
func WithOverlay(o Overlay) RenderOption { return func(r *renderer) { r.overlay = o } }

// WithoutLegend suppresses the legend.
func WithoutLegend() RenderOption { return func(r *renderer) { r.legend = false } }

// Render clears surf to the theme background and draws every visible element,
// then the decorations. Edges are drawn in a first pass so they never paint
// over their endpoints; everything else follows insertion order.
//
// Render reads the scene only and may be called at any time.
func Render(s *Scene, surf Surface, d Decorations, opts ...RenderOption) {
	r := renderer{legend: true}
	for _, opt := range opts {
		opt(&r)
	}
	th := s.theme
	surf.Clear(th.Background)

	for _, id := range s.order {
		if e := s.elements[id]; e.Kind == KindEdge && e.Visible {
			r.drawEdge(s, surf, e)
		}
	}
	for _, id := range s.order {
		e := s.elements[id]
		if e.Kind == KindEdge || !e.Visible {
			continue
		}
		g := r.geometry(e)
		switch e.Kind {
		case KindBar:
			drawBar(surf, th, e, g)
		case KindNode:
			drawNode(surf, th, e, g)
		case KindCell:
			drawCell(surf, th, e, g)
		}
	}

	drawDecorations(surf, th, d, r.legend)
}

func (r *renderer) geometry(e *Element) Geometry {
	if r.overlay != nil {
		if g, ok := r.overlay(e.ID); ok {
			return g
		}
	}
	return e.Geometry()
}

func (r *renderer) drawEdge(s *Scene, surf Surface, e *Element) {
	from, okF := s.elements[e.From]
	to, okT := s.elements[e.To]
	if !okF || !okT || !from.Visible || !to.Visible {
		return
	}
	gf, gt := r.geometry(from), r.geometry(to)
	x1, y1 := centerOf(from.Kind, gf)
	x2, y2 := centerOf(to.Kind, gt)

	c := Fade(s.theme.Color(KindEdge, e.State), e.Opacity*min(gf.Opacity, gt.Opacity))
	width := 2.0
	if e.State == StatePath {
		width = 4
	}

	// Shorten the line to the node rims.
	dx, dy := x2-x1, y2-y1
	dist := math.Hypot(dx, dy)
	if dist <= gf.R+gt.R {
		return
	}
	ux, uy := dx/dist, dy/dist
	sx, sy := x1+ux*gf.R, y1+uy*gf.R
	ex, ey := x2-ux*gt.R, y2-uy*gt.R
	surf.Line(sx, sy, ex, ey, width, c)

	if e.Directed {
		const head, spread = 10.0, 0.45
		angle := math.Atan2(uy, ux)
		for _, a := range []float64{angle + math.Pi - spread, angle + math.Pi + spread} {
			surf.Line(ex, ey, ex+head*math.Cos(a), ey+head*math.Sin(a), width, c)
		}
	}
	if e.Label != "" {
		mx, my := (sx+ex)/2, (sy+ey)/2
		surf.Text(e.Label, mx, my-8, CaptionSize-2, AlignCenter, Fade(s.theme.Muted, e.Opacity))
	}
}

func centerOf(kind Kind, g Geometry) (float64, float64) {
	if kind == KindNode {
		return g.X, g.Y
	}
	return g.X + g.W/2, g.Y + g.H/2
}

func drawBar(surf Surface, th *Theme, e *Element, g Geometry) {
	fill := Fade(th.Color(KindBar, e.State), g.Opacity)
	surf.FillRect(g.X, g.Y, g.W, g.H, fill)
	if e.Label == "" {
		return
	}
	size := fontSizeFor(g.W, 24, len(e.Label))
	surf.Text(e.Label, g.X+g.W/2, g.Y+g.H+size, size, AlignCenter, Fade(th.Foreground, g.Opacity))
}

func drawNode(surf Surface, th *Theme, e *Element, g Geometry) {
	fill := Fade(th.Color(KindNode, e.State), g.Opacity)
	surf.FillCircle(g.X, g.Y, g.R, fill)
	surf.StrokeCircle(g.X, g.Y, g.R, 2, Fade(th.Outline, g.Opacity))
	if e.Label == "" {
		return
	}
	size := fontSizeFor(g.R*1.6, g.R*1.6, len(e.Label))
	surf.Text(e.Label, g.X, g.Y, size, AlignCenter, Fade(textOn(th.Color(KindNode, e.State), th), g.Opacity))
}

func drawCell(surf Surface, th *Theme, e *Element, g Geometry) {
	surf.FillRect(g.X, g.Y, g.W, g.H, Fade(th.Color(KindCell, e.State), g.Opacity))
	surf.StrokeRect(g.X, g.Y, g.W, g.H, 1, Fade(th.Muted, g.Opacity*0.5))
}

func drawDecorations(surf Surface, th *Theme, d Decorations, legend bool) {
	w, h := surf.Size()
	if d.Title != "" {
		surf.Text(d.Title, 16, TitleMargin/2, TitleSize, AlignLeft, th.Foreground)
	}
	if legend && len(d.Legend) > 0 {
		drawLegend(surf, th, d.Legend, w)
	}
	if d.Aux != "" {
		surf.Text(d.Aux, 16, h-FooterMargin+16, CaptionSize, AlignLeft, th.Muted)
	}
	if d.Caption != "" {
		surf.Text(d.Caption, w/2, h-16, CaptionSize+1, AlignCenter, th.Foreground)
	}
}

// drawLegend lays swatches out right to left from the top-right corner.
func drawLegend(surf Surface, th *Theme, entries []LegendEntry, width float64) {
	const swatch, gap, charW = 12.0, 14.0, 6.5
	x := width - 16
	y := TitleMargin / 2
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		labelW := float64(len(e.Label)) * charW
		x -= labelW
		surf.Text(e.Label, x, y, CaptionSize-1, AlignLeft, th.Muted)
		x -= swatch + 4
		surf.FillRect(x, y-swatch/2, swatch, swatch, th.Color(e.Kind, e.State))
		x -= gap
	}
}

// textOn picks the foreground or background color for legibility on fill.
func textOn(fill color.RGBA, th *Theme) color.RGBA {
	lum := 0.299*float64(fill.R) + 0.587*float64(fill.G) + 0.114*float64(fill.B)
	if lum < 128 {
		return th.Background
	}
	return th.Foreground
}

const (
	fontHeightRatio = 0.6
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.55
	fontSizeMin     = 8.0
	fontSizeMax     = 18.0
)

func fontSizeFor(availWidth, availHeight float64, textLen int) float64 {
	n := max(1, textLen)
	byHeight := availHeight * fontHeightRatio
	byWidth := (availWidth * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}
