package sink

import (
	"bytes"
	"image"
	"image/color"
	"io"

	"git.sr.ht/~sbinet/gg"

	"github.com/matzehuels/stepviz/pkg/fonts"
	"github.com/matzehuels/stepviz/pkg/scene"
)

// Raster is a [scene.Surface] backed by a gg drawing context.
type Raster struct {
	dc    *gg.Context
	fonts fonts.Cache
}

// NewRaster returns a w × h pixel surface.
func NewRaster(w, h int) *Raster {
	return &Raster{dc: gg.NewContext(w, h)}
}

func (r *Raster) Size() (float64, float64) {
	return float64(r.dc.Width()), float64(r.dc.Height())
}

func (r *Raster) Clear(c color.Color) {
	r.dc.SetColor(c)
	r.dc.Clear()
}

func (r *Raster) FillRect(x, y, w, h float64, c color.Color) {
	r.dc.SetColor(c)
	r.dc.DrawRectangle(x, y, w, h)
	r.dc.Fill()
}

func (r *Raster) StrokeRect(x, y, w, h, lineWidth float64, c color.Color) {
	r.dc.SetColor(c)
	r.dc.SetLineWidth(lineWidth)
	r.dc.DrawRectangle(x, y, w, h)
	r.dc.Stroke()
}

func (r *Raster) FillCircle(cx, cy, radius float64, c color.Color) {
	r.dc.SetColor(c)
	r.dc.DrawCircle(cx, cy, radius)
	r.dc.Fill()
}

func (r *Raster) StrokeCircle(cx, cy, radius, lineWidth float64, c color.Color) {
	r.dc.SetColor(c)
	r.dc.SetLineWidth(lineWidth)
	r.dc.DrawCircle(cx, cy, radius)
	r.dc.Stroke()
}

func (r *Raster) Line(x1, y1, x2, y2, lineWidth float64, c color.Color) {
	r.dc.SetColor(c)
	r.dc.SetLineWidth(lineWidth)
	r.dc.DrawLine(x1, y1, x2, y2)
	r.dc.Stroke()
}

func (r *Raster) Text(s string, x, y, size float64, align scene.Align, c color.Color) {
	r.dc.SetFontFace(r.fonts.Face(size))
	r.dc.SetColor(c)
	r.dc.DrawStringAnchored(s, x, y, anchor(align), 0.35)
}

// Image returns the drawn pixels.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// EncodePNG writes the surface as PNG.
func (r *Raster) EncodePNG(w io.Writer) error { return r.dc.EncodePNG(w) }

// Close releases cached font faces.
func (r *Raster) Close() { r.fonts.Close() }

func anchor(a scene.Align) float64 {
	switch a {
	case scene.AlignCenter:
		return 0.5
	case scene.AlignRight:
		return 1
	default:
		return 0
	}
}

// RenderImage draws s with decorations d onto a new w × h raster.
func RenderImage(s *scene.Scene, d scene.Decorations, w, h int, opts ...scene.RenderOption) image.Image {
	r := NewRaster(w, h)
	defer r.Close()
	scene.Render(s, r, d, opts...)
	return r.Image()
}

// RenderPNG draws s with decorations d and encodes the result as PNG.
func RenderPNG(s *scene.Scene, d scene.Decorations, w, h int, opts ...scene.RenderOption) ([]byte, error) {
	r := NewRaster(w, h)
	defer r.Close()
	scene.Render(s, r, d, opts...)

	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
