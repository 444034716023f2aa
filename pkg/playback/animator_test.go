package playback

import (
	"testing"
	"time"

	"github.com/matzehuels/stepviz/pkg/scene"
)

func TestLerp(t *testing.T) {
	a := scene.Geometry{X: 0, Y: 10, W: 4, H: 100, Opacity: 0}
	b := scene.Geometry{X: 10, Y: 20, W: 4, H: 0, Opacity: 1}

	tests := []struct {
		t    float64
		want scene.Geometry
	}{
		{0, a},
		{1, b},
		{0.5, scene.Geometry{X: 5, Y: 15, W: 4, H: 50, Opacity: 0.5}},
		{-1, a},
		{2, b},
	}
	for _, tt := range tests {
		if got := Lerp(a, b, tt.t); got != tt.want {
			t.Errorf("Lerp(%v) = %+v, want %+v", tt.t, got, tt.want)
		}
	}
}

func TestAnimator(t *testing.T) {
	s := scene.New(nil)
	for _, id := range []string{"0", "1"} {
		if _, err := s.Add(scene.Bar(id, 1)); err != nil {
			t.Fatal(err)
		}
	}
	s.SetGeometry("0", scene.Geometry{X: 0, W: 10, H: 10, Opacity: 1})
	s.SetGeometry("1", scene.Geometry{X: 20, W: 10, H: 10, Opacity: 1})
	before := Capture(s)

	s.SetGeometry("0", scene.Geometry{X: 20, W: 10, H: 10, Opacity: 1})

	a := NewAnimator()
	if !a.Start(before, s, 100*time.Millisecond) {
		t.Fatal("Start found nothing to tween")
	}
	overlay := a.Overlay()
	if _, ok := overlay("1"); ok {
		t.Error("unmoved element has a tween")
	}

	a.Advance(50 * time.Millisecond)
	g, ok := overlay("0")
	if !ok || g.X != 10 {
		t.Errorf("halfway geometry = %+v, %v; want X=10", g, ok)
	}

	if a.Advance(50 * time.Millisecond) {
		t.Error("animation still active after its duration")
	}
	if _, ok := overlay("0"); ok {
		t.Error("finished animation still overrides geometry")
	}
}

func TestAnimatorZeroDuration(t *testing.T) {
	s := scene.New(nil)
	if _, err := s.Add(scene.Bar("0", 1)); err != nil {
		t.Fatal(err)
	}
	before := Capture(s)
	s.SetPosition("0", 5, 5)

	a := NewAnimator()
	if a.Start(before, s, 0) {
		t.Error("zero-duration Start reported a tween")
	}
	if a.Active() || a.Progress() != 1 {
		t.Error("idle animator should report complete progress")
	}
}
