package sink

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/stepviz/pkg/scene"
)

// Pixel size of one terminal cell. Cells are twice as tall as wide, so a
// scene laid out on a cols·CellWidth × rows·CellHeight canvas keeps its
// proportions on screen.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// TerminalCanvas returns the canvas size that maps onto cols × rows cells.
func TerminalCanvas(cols, rows int) (w, h float64) {
	return float64(cols) * CellWidth, float64(rows) * CellHeight
}

type termCell struct {
	r      rune
	fg, bg color.RGBA
}

// Terminal is a [scene.Surface] over a grid of character cells. Fills set
// cell backgrounds, lines draw dots and text writes runes. Outlines are
// skipped: at cell resolution they would cover the fill.
type Terminal struct {
	cols, rows int
	w, h       float64
	cells      []termCell
}

// NewTerminal returns a cols × rows surface for a canvas of
// [TerminalCanvas] size.
func NewTerminal(cols, rows int) *Terminal {
	w, h := TerminalCanvas(cols, rows)
	return &Terminal{cols: cols, rows: rows, w: w, h: h, cells: make([]termCell, cols*rows)}
}

func (t *Terminal) Size() (float64, float64) { return t.w, t.h }

func (t *Terminal) Clear(c color.Color) {
	bg := rgba(c)
	for i := range t.cells {
		t.cells[i] = termCell{r: ' ', fg: bg, bg: bg}
	}
}

func (t *Terminal) FillRect(x, y, w, h float64, c color.Color) {
	c0, c1 := span(x/CellWidth, (x+w)/CellWidth)
	r0, r1 := span(y/CellHeight, (y+h)/CellHeight)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			t.paint(col, row, c)
		}
	}
}

func (t *Terminal) StrokeRect(_, _, _, _, _ float64, _ color.Color) {}

func (t *Terminal) FillCircle(cx, cy, r float64, c color.Color) {
	c0, c1 := span((cx-r)/CellWidth, (cx+r)/CellWidth)
	r0, r1 := span((cy-r)/CellHeight, (cy+r)/CellHeight)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			px := (float64(col) + 0.5) * CellWidth
			py := (float64(row) + 0.5) * CellHeight
			if math.Hypot(px-cx, py-cy) <= r {
				t.paint(col, row, c)
			}
		}
	}
	t.paint(int(cx/CellWidth), int(cy/CellHeight), c)
}

func (t *Terminal) StrokeCircle(_, _, _, _ float64, _ color.Color) {}

func (t *Terminal) Line(x1, y1, x2, y2, _ float64, c color.Color) {
	fx, fy := x1/CellWidth, y1/CellHeight
	tx, ty := x2/CellWidth, y2/CellHeight
	n := int(math.Ceil(max(math.Abs(tx-fx), math.Abs(ty-fy))))
	fg := rgba(c)
	for i := 0; i <= n; i++ {
		f := 0.0
		if n > 0 {
			f = float64(i) / float64(n)
		}
		col := int(fx + (tx-fx)*f)
		row := int(fy + (ty-fy)*f)
		if cell := t.at(col, row); cell != nil && cell.r == ' ' {
			cell.r = '·'
			cell.fg = fg
		}
	}
}

func (t *Terminal) Text(s string, x, y, _ float64, align scene.Align, c color.Color) {
	width := runewidth.StringWidth(s)
	col := int(math.Round(x / CellWidth))
	switch align {
	case scene.AlignCenter:
		col -= width / 2
	case scene.AlignRight:
		col -= width
	}
	row := int(y / CellHeight)
	fg := rgba(c)
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if cell := t.at(col, row); cell != nil {
			cell.r, cell.fg = r, fg
			for k := 1; k < rw; k++ {
				if pad := t.at(col+k, row); pad != nil {
					pad.r = 0
				}
			}
		}
		col += rw
	}
}

// String renders the grid with ANSI colors, one line per row.
func (t *Terminal) String() string {
	var b strings.Builder
	for row := 0; row < t.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		var style termCell
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(hexOf(style.fg))).
				Background(lipgloss.Color(hexOf(style.bg))).
				Render(run.String()))
			run.Reset()
		}
		for col := 0; col < t.cols; col++ {
			cell := t.cells[row*t.cols+col]
			if cell.r == 0 {
				continue
			}
			if run.Len() > 0 && (cell.fg != style.fg || cell.bg != style.bg) {
				flush()
			}
			style = cell
			run.WriteRune(cell.r)
		}
		flush()
	}
	return b.String()
}

// Plain returns the grid's runes without colors.
func (t *Terminal) Plain() string {
	var b strings.Builder
	for row := 0; row < t.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < t.cols; col++ {
			if r := t.cells[row*t.cols+col].r; r != 0 {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// Background returns the background color of a cell.
func (t *Terminal) Background(col, row int) (color.RGBA, bool) {
	cell := t.at(col, row)
	if cell == nil {
		return color.RGBA{}, false
	}
	return cell.bg, true
}

// RenderText draws s with decorations d on a cols × rows terminal grid. The
// scene should be laid out for [TerminalCanvas](cols, rows).
func RenderText(s *scene.Scene, d scene.Decorations, cols, rows int, opts ...scene.RenderOption) *Terminal {
	t := NewTerminal(cols, rows)
	scene.Render(s, t, d, opts...)
	return t
}

func (t *Terminal) at(col, row int) *termCell {
	if col < 0 || col >= t.cols || row < 0 || row >= t.rows {
		return nil
	}
	return &t.cells[row*t.cols+col]
}

// paint blends c over the cell background.
func (t *Terminal) paint(col, row int, c color.Color) {
	cell := t.at(col, row)
	if cell == nil {
		return
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	a := float64(n.A) / 255
	mix := func(src, dst uint8) uint8 {
		return uint8(math.Round(a*float64(src) + (1-a)*float64(dst)))
	}
	cell.bg = color.RGBA{R: mix(n.R, cell.bg.R), G: mix(n.G, cell.bg.G), B: mix(n.B, cell.bg.B), A: 0xff}
}

// span returns the half-open cell range covering [from, to], at least one
// cell wide.
func span(from, to float64) (int, int) {
	lo := int(math.Floor(from))
	hi := max(lo+1, int(math.Round(to)))
	return lo, hi
}

func rgba(c color.Color) color.RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: 0xff}
}

func hexOf(c color.RGBA) string {
	h, _ := css(c)
	return h
}
