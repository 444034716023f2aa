package sink

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/stepviz/pkg/fonts"
	"github.com/matzehuels/stepviz/pkg/scene"
)

// Vector is a [scene.Surface] that writes SVG elements as they are drawn.
// Call End once drawing is finished.
type Vector struct {
	canvas *svg.SVG
	w, h   int
}

// NewVector starts a w × h SVG document on out.
func NewVector(out io.Writer, w, h int) *Vector {
	canvas := svg.New(out)
	canvas.Start(w, h)
	return &Vector{canvas: canvas, w: w, h: h}
}

// End closes the document.
func (v *Vector) End() { v.canvas.End() }

func (v *Vector) Size() (float64, float64) { return float64(v.w), float64(v.h) }

func (v *Vector) Clear(c color.Color) {
	v.canvas.Rect(0, 0, v.w, v.h, fill(c))
}

func (v *Vector) FillRect(x, y, w, h float64, c color.Color) {
	v.canvas.Rect(px(x), px(y), px(w), px(h), fill(c))
}

func (v *Vector) StrokeRect(x, y, w, h, lineWidth float64, c color.Color) {
	v.canvas.Rect(px(x), px(y), px(w), px(h), "fill:none;"+stroke(c, lineWidth))
}

func (v *Vector) FillCircle(cx, cy, r float64, c color.Color) {
	v.canvas.Circle(px(cx), px(cy), px(r), fill(c))
}

func (v *Vector) StrokeCircle(cx, cy, r, lineWidth float64, c color.Color) {
	v.canvas.Circle(px(cx), px(cy), px(r), "fill:none;"+stroke(c, lineWidth))
}

func (v *Vector) Line(x1, y1, x2, y2, lineWidth float64, c color.Color) {
	v.canvas.Line(px(x1), px(y1), px(x2), px(y2), stroke(c, lineWidth)+";stroke-linecap:round")
}

func (v *Vector) Text(s string, x, y, size float64, align scene.Align, c color.Color) {
	style := fmt.Sprintf("%s;font-size:%.0fpx;font-family:%s;text-anchor:%s;dominant-baseline:middle",
		fill(c), size, fonts.FontFamily, textAnchor(align))
	v.canvas.Text(px(x), px(y), s, style)
}

// RenderSVG draws s with decorations d as a standalone SVG document.
func RenderSVG(s *scene.Scene, d scene.Decorations, w, h int, opts ...scene.RenderOption) []byte {
	var buf bytes.Buffer
	v := NewVector(&buf, w, h)
	scene.Render(s, v, d, opts...)
	v.End()
	return buf.Bytes()
}

func px(f float64) int { return int(math.Round(f)) }

func textAnchor(a scene.Align) string {
	switch a {
	case scene.AlignCenter:
		return "middle"
	case scene.AlignRight:
		return "end"
	default:
		return "start"
	}
}

func fill(c color.Color) string {
	hex, alpha := css(c)
	if alpha < 1 {
		return fmt.Sprintf("fill:%s;fill-opacity:%.2f", hex, alpha)
	}
	return "fill:" + hex
}

func stroke(c color.Color, width float64) string {
	hex, alpha := css(c)
	s := fmt.Sprintf("stroke:%s;stroke-width:%.1f", hex, width)
	if alpha < 1 {
		s += fmt.Sprintf(";stroke-opacity:%.2f", alpha)
	}
	return s
}

// css converts c to a hex color and an opacity in [0, 1].
func css(c color.Color) (string, float64) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B), float64(n.A) / 255
}
