package sink

import (
	"bytes"
	"image/color"
	"image/gif"
	"image/png"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/matzehuels/stepviz/pkg/errors"
	"github.com/matzehuels/stepviz/pkg/input"
	"github.com/matzehuels/stepviz/pkg/scene"
	"github.com/matzehuels/stepviz/pkg/step"
	"github.com/matzehuels/stepviz/pkg/viz"
)

func arrayAdapter(t *testing.T, w, h float64) *viz.Array {
	t.Helper()
	a := viz.NewArray(viz.WithTitle("Bubble Sort"), viz.WithSize(w, h))
	if err := a.Load(input.Array{Values: []int{5, 3, 8, 1}}); err != nil {
		t.Fatal(err)
	}
	return a
}

func TestRenderPNG(t *testing.T) {
	a := arrayAdapter(t, 320, 200)
	a.Apply(step.Compare{Info: step.Info{Text: "Comparing"}, I: 0, J: 1, Snapshot: []int{5, 3, 8, 1}})

	data, err := RenderPNG(a.Scene(), a.Decorations(), 320, 200)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 200 {
		t.Fatalf("size = %v, want 320x200", b)
	}

	th := a.Scene().Theme()
	if got := color.RGBAModel.Convert(img.At(1, 1)).(color.RGBA); got != th.Background {
		t.Errorf("corner pixel = %v, want background %v", got, th.Background)
	}
	bar, _ := a.Scene().Get("0")
	cx, cy := bar.Center()
	want := th.Color(scene.KindBar, scene.StateComparing)
	if got := color.RGBAModel.Convert(img.At(int(cx), int(cy))).(color.RGBA); got != want {
		t.Errorf("bar pixel = %v, want comparing %v", got, want)
	}
}

func TestRenderSVG(t *testing.T) {
	a := arrayAdapter(t, 320, 200)
	a.Apply(step.Swap{Info: step.Info{Text: "Swap 5 & 3"}, I: 0, J: 1, Snapshot: []int{3, 5, 8, 1}})

	out := string(RenderSVG(a.Scene(), a.Decorations(), 320, 200))
	th := a.Scene().Theme()
	for _, want := range []string{
		`<svg`,
		`width="320"`,
		"fill:" + scene.Hex(th.Color(scene.KindBar, scene.StateSwapping)),
		"Swap 5 &amp; 3",
		"Bubble Sort",
		"text-anchor:middle",
		"</svg>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestGIF(t *testing.T) {
	a := arrayAdapter(t, 160, 120)

	empty := NewGIF()
	if err := empty.Encode(&bytes.Buffer{}); !errors.Is(err, errors.ErrCodeInvalidState) {
		t.Errorf("Encode(no frames) = %v, want INVALID_STATE", err)
	}

	anim := NewGIF(WithDelay(200), WithHold(3), WithPalette(a.Scene().Theme()))
	for i := 0; i < 3; i++ {
		anim.Add(RenderImage(a.Scene(), a.Decorations(), 160, 120))
	}
	var buf bytes.Buffer
	if err := anim.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(g.Image) != 3 {
		t.Fatalf("%d frames, want 3", len(g.Image))
	}
	if want := []int{20, 20, 60}; g.Delay[0] != want[0] || g.Delay[2] != want[2] {
		t.Errorf("delays = %v, want %v", g.Delay, want)
	}
	if anim.Len() != 3 {
		t.Errorf("Len = %d after Encode", anim.Len())
	}
}

func TestThemePalette(t *testing.T) {
	th := scene.DefaultTheme()
	p := ThemePalette(th)
	if len(p) > 256 {
		t.Fatalf("palette has %d colors", len(p))
	}
	if p[0] != color.Color(th.Background) {
		t.Errorf("first color = %v, want background", p[0])
	}
	for state, c := range th.Palettes[scene.KindCell] {
		if p.Convert(c) != color.Color(c) {
			t.Errorf("cell color for %s is not exact in the palette", state)
		}
	}
}

func TestTerminal(t *testing.T) {
	const cols, rows = 120, 16
	w, h := TerminalCanvas(cols, rows)
	a := arrayAdapter(t, w, h)
	a.Apply(step.Sorted{Info: step.Info{Text: "Sorted"}, Snapshot: []int{1, 3, 5, 8}})

	term := RenderText(a.Scene(), a.Decorations(), cols, rows)
	plain := term.Plain()
	lines := strings.Split(plain, "\n")
	if len(lines) != rows {
		t.Fatalf("%d lines, want %d", len(lines), rows)
	}
	if !strings.Contains(lines[1], "Bubble Sort") {
		t.Errorf("title row = %q", lines[1])
	}
	if !strings.Contains(plain, "Sorted") {
		t.Error("caption missing")
	}

	bar, _ := a.Scene().Get("3")
	cx, cy := bar.Center()
	got, ok := term.Background(int(cx/CellWidth), int(cy/CellHeight))
	if want := a.Scene().Theme().Color(scene.KindBar, scene.StateCompleted); !ok || got != want {
		t.Errorf("bar cell = %v, want %v", got, want)
	}
	if _, ok := term.Background(cols, 0); ok {
		t.Error("Background outside the grid reported a cell")
	}
	if term.String() == "" {
		t.Error("empty styled output")
	}
}

func TestTerminalWideRunes(t *testing.T) {
	term := NewTerminal(10, 1)
	term.Clear(color.White)
	term.Text("日本", 0, 0, 12, scene.AlignLeft, color.Black)
	if got := term.Plain(); got != "日本      " {
		t.Errorf("Plain = %q", got)
	}
}

func TestRenderJSON(t *testing.T) {
	a := arrayAdapter(t, 320, 200)
	s := step.Compare{Info: step.Info{Text: "Comparing"}, I: 0, J: 1, Snapshot: []int{5, 3, 8, 1}}
	a.Apply(s)
	a.Scene().SetVisible("3", false)

	data, err := RenderJSON(a.Scene(), a.Decorations(), WithStep(step.ToRecord(0, s)))
	if err != nil {
		t.Fatal(err)
	}
	var out jsonFrame
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Title != "Bubble Sort" || out.Caption != "Comparing" {
		t.Errorf("decorations = %q / %q", out.Title, out.Caption)
	}
	if len(out.Elements) != 3 {
		t.Errorf("%d elements, want 3 visible", len(out.Elements))
	}
	if out.Elements[0].State != string(scene.StateComparing) || out.Elements[0].Kind != "bar" {
		t.Errorf("element 0 = %+v", out.Elements[0])
	}
	if out.Step == nil || out.Step.Kind != step.KindCompare {
		t.Errorf("step = %+v", out.Step)
	}

	data, err = RenderJSON(a.Scene(), a.Decorations(), WithHidden())
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Elements) != 4 {
		t.Errorf("WithHidden: %d elements, want 4", len(out.Elements))
	}
}
