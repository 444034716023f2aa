package sink

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"maps"
	"slices"

	"github.com/matzehuels/stepviz/pkg/errors"
	"github.com/matzehuels/stepviz/pkg/scene"
)

// GIFOption configures a [GIF] encoder.
type GIFOption func(*GIF)

// WithDelay sets the per-frame delay in milliseconds.
func WithDelay(ms int) GIFOption { return func(g *GIF) { g.delay = max(1, ms/10) } }

// WithHold multiplies the delay of the final frame so loops pause on the
// result.
func WithHold(factor int) GIFOption { return func(g *GIF) { g.hold = max(1, factor) } }

// WithPalette quantizes frames against the theme's colors first, so state
// colors survive quantization exactly.
func WithPalette(th *scene.Theme) GIFOption {
	return func(g *GIF) { g.palette = ThemePalette(th) }
}

// GIF collects frames into an animated GIF that loops forever.
type GIF struct {
	anim    gif.GIF
	delay   int // hundredths of a second
	hold    int
	palette color.Palette
}

// NewGIF returns an empty encoder. The default delay is 500 ms.
func NewGIF(opts ...GIFOption) *GIF {
	g := &GIF{delay: 50, hold: 1, palette: palette.Plan9}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Add appends img as the next frame, dithering it onto the palette.
func (g *GIF) Add(img image.Image) {
	b := img.Bounds()
	frame := image.NewPaletted(b, g.palette)
	draw.FloydSteinberg.Draw(frame, b, img, b.Min)
	g.anim.Image = append(g.anim.Image, frame)
	g.anim.Delay = append(g.anim.Delay, g.delay)
}

// Len returns the number of frames added.
func (g *GIF) Len() int { return len(g.anim.Image) }

// Encode writes the animation.
func (g *GIF) Encode(w io.Writer) error {
	if g.Len() == 0 {
		return errors.New(errors.ErrCodeInvalidState, "gif has no frames")
	}
	anim := g.anim
	anim.Delay = append([]int(nil), g.anim.Delay...)
	anim.Delay[len(anim.Delay)-1] *= g.hold
	return gif.EncodeAll(w, &anim)
}

// ThemePalette returns a 256-color palette that starts with every color of
// th and is filled up from the Plan 9 palette.
func ThemePalette(th *scene.Theme) color.Palette {
	seen := make(map[color.RGBA]bool)
	var p color.Palette
	add := func(c color.RGBA) {
		c.A = 0xff
		if !seen[c] && len(p) < 256 {
			seen[c] = true
			p = append(p, c)
		}
	}
	add(th.Background)
	add(th.Foreground)
	add(th.Muted)
	add(th.Outline)
	for _, kind := range []scene.Kind{scene.KindBar, scene.KindNode, scene.KindEdge, scene.KindCell} {
		pal := th.Palettes[kind]
		for _, st := range slices.Sorted(maps.Keys(pal)) {
			add(pal[st])
		}
	}
	for _, c := range palette.Plan9 {
		add(color.RGBAModel.Convert(c).(color.RGBA))
	}
	return p
}
