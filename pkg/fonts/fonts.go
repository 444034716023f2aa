// Package fonts provides the typeface shared by every frame renderer.
//
// Raster surfaces draw with the Go Regular font, which ships with
// golang.org/x/image and needs no system fonts. The font is parsed once per
// process; faces are built per [Cache] because a face keeps glyph buffers
// and must not be shared between goroutines.
package fonts

import (
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontFamily is the CSS font-family used by vector output. It names the Go
// font first so SVG and PNG frames look alike where it is installed.
const FontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

var (
	parsed    *opentype.Font
	parseErr  error
	parseOnce sync.Once
)

func regular() (*opentype.Font, error) {
	parseOnce.Do(func() {
		parsed, parseErr = opentype.Parse(goregular.TTF)
	})
	return parsed, parseErr
}

// Cache builds and keeps faces by point size. The zero value is ready to use.
// A Cache belongs to one surface and is not safe for concurrent use.
type Cache struct {
	faces map[int]font.Face
}

// Face returns a face for size points at 72 DPI, rounded to whole points. If
// the embedded font cannot be used, a fixed 7x13 bitmap face is returned.
func (c *Cache) Face(size float64) font.Face {
	f, err := regular()
	if err != nil {
		return basicfont.Face7x13
	}
	key := max(1, int(math.Round(size)))
	if face, ok := c.faces[key]; ok {
		return face
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(key),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	if c.faces == nil {
		c.faces = make(map[int]font.Face)
	}
	c.faces[key] = face
	return face
}

// Close releases every cached face.
func (c *Cache) Close() {
	for _, f := range c.faces {
		_ = f.Close()
	}
	clear(c.faces)
}
