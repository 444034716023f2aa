package scene

import (
	"image/color"
	"maps"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/stepviz/pkg/errors"
)

// Palette maps the states an element kind understands to fill colors.
type Palette map[State]color.RGBA

// Theme holds the colors shared by every element of a scene.
type Theme struct {
	Background color.RGBA
	Foreground color.RGBA // text
	Muted      color.RGBA // captions, grid lines
	Outline    color.RGBA
	Palettes   map[Kind]Palette
}

// DefaultTheme returns the built-in light theme.
func DefaultTheme() *Theme {
	return &Theme{
		Background: rgb(0xfa, 0xfb, 0xfc),
		Foreground: rgb(0x1f, 0x29, 0x33),
		Muted:      rgb(0x7b, 0x87, 0x94),
		Outline:    rgb(0x3e, 0x4c, 0x59),
		Palettes: map[Kind]Palette{
			KindBar: {
				StateDefault:   rgb(0x4a, 0x90, 0xd9),
				StateComparing: rgb(0xf5, 0xa6, 0x23),
				StateSwapping:  rgb(0xd0, 0x02, 0x1b),
				StateSelected:  rgb(0x90, 0x13, 0xfe),
				StateCompleted: rgb(0x7e, 0xd3, 0x21),
			},
			KindNode: {
				StateDefault:  rgb(0xdf, 0xe6, 0xee),
				StateCurrent:  rgb(0xf5, 0xa6, 0x23),
				StateVisited:  rgb(0x4a, 0x90, 0xd9),
				StateFrontier: rgb(0xf8, 0xe7, 0x1c),
				StatePath:     rgb(0x7e, 0xd3, 0x21),
				StateStart:    rgb(0x50, 0xe3, 0xc2),
				StateEnd:      rgb(0xd0, 0x02, 0x1b),
				StateFound:    rgb(0x41, 0x75, 0x05),
			},
			KindEdge: {
				StateDefault:  rgb(0x9a, 0xa5, 0xb1),
				StateCurrent:  rgb(0xf5, 0xa6, 0x23),
				StateExplored: rgb(0x4a, 0x90, 0xd9),
				StatePath:     rgb(0x7e, 0xd3, 0x21),
			},
			KindCell: {
				StateDefault:  rgb(0xff, 0xff, 0xff),
				StateWall:     rgb(0x33, 0x3a, 0x44),
				StateStart:    rgb(0x50, 0xe3, 0xc2),
				StateEnd:      rgb(0xd0, 0x02, 0x1b),
				StateCurrent:  rgb(0xf5, 0xa6, 0x23),
				StateVisited:  rgb(0x9b, 0xc4, 0xf0),
				StateFrontier: rgb(0xf8, 0xe7, 0x1c),
				StatePath:     rgb(0x7e, 0xd3, 0x21),
				StateFound:    rgb(0x41, 0x75, 0x05),
			},
		},
	}
}

// Clone returns a deep copy of t.
func (t *Theme) Clone() *Theme {
	c := *t
	c.Palettes = make(map[Kind]Palette, len(t.Palettes))
	for k, p := range t.Palettes {
		c.Palettes[k] = maps.Clone(p)
	}
	return &c
}

// Has reports whether kind understands state. StateDefault is always known.
func (t *Theme) Has(kind Kind, state State) bool {
	if state == StateDefault {
		return true
	}
	_, ok := t.Palettes[kind][state]
	return ok
}

// Color returns the fill color of state for kind, falling back to the kind's
// default color.
func (t *Theme) Color(kind Kind, state State) color.RGBA {
	p := t.Palettes[kind]
	if c, ok := p[state]; ok {
		return c
	}
	return p[StateDefault]
}

// SetBackground parses hex ("#rrggbb") as the background color.
func (t *Theme) SetBackground(hex string) error {
	c, err := ParseHex(hex)
	if err != nil {
		return err
	}
	t.Background = c
	return nil
}

// Override recolors state in every palette that already knows it. A state
// no palette knows is an error, since it could never be displayed.
func (t *Theme) Override(state State, hex string) error {
	c, err := ParseHex(hex)
	if err != nil {
		return err
	}
	found := false
	for _, p := range t.Palettes {
		if _, ok := p[state]; ok {
			p[state] = c
			found = true
		}
	}
	if !found {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown state %q", state)
	}
	return nil
}

// ParseHex parses "#rgb" or "#rrggbb" into an opaque color.
func ParseHex(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "color %q", s)
	}
	r, g, b := c.RGB255()
	return rgb(r, g, b), nil
}

// Hex formats c as "#rrggbb".
func Hex(c color.RGBA) string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

// Fade scales c's alpha by opacity, which is clamped to [0, 1].
func Fade(c color.RGBA, opacity float64) color.NRGBA {
	opacity = max(0, min(1, opacity))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A)*opacity + 0.5)}
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 0xff} }
