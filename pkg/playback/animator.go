package playback

import (
	"time"

	"github.com/matzehuels/stepviz/pkg/scene"
)

// Tween interpolates one element's geometry.
type Tween struct {
	From, To scene.Geometry
}

// At returns the geometry at progress t in [0, 1].
func (tw Tween) At(t float64) scene.Geometry {
	return Lerp(tw.From, tw.To, t)
}

// Lerp interpolates every geometry property linearly.
func Lerp(a, b scene.Geometry, t float64) scene.Geometry {
	t = min(max(t, 0), 1)
	mix := func(x, y float64) float64 { return x + (y-x)*t }
	return scene.Geometry{
		X:       mix(a.X, b.X),
		Y:       mix(a.Y, b.Y),
		W:       mix(a.W, b.W),
		H:       mix(a.H, b.H),
		R:       mix(a.R, b.R),
		Opacity: mix(a.Opacity, b.Opacity),
	}
}

// Animator tweens element geometry between two scene snapshots. The scene
// itself always holds the final geometry; the animator supplies the
// in-between values to the renderer as an overlay.
type Animator struct {
	tweens   map[string]Tween
	elapsed  time.Duration
	duration time.Duration
}

// NewAnimator returns an idle animator.
func NewAnimator() *Animator { return &Animator{tweens: map[string]Tween{}} }

// Capture records the current geometry of every element of s.
func Capture(s *scene.Scene) map[string]scene.Geometry {
	els := s.Elements()
	out := make(map[string]scene.Geometry, len(els))
	for i := range els {
		out[els[i].ID] = els[i].Geometry()
	}
	return out
}

// Start tweens every element whose geometry differs between before and s
// over d. It replaces any running animation and reports whether anything
// moved.
func (a *Animator) Start(before map[string]scene.Geometry, s *scene.Scene, d time.Duration) bool {
	a.Stop()
	if d <= 0 {
		return false
	}
	for _, e := range s.Elements() {
		from, ok := before[e.ID]
		if !ok {
			continue
		}
		if to := e.Geometry(); to != from {
			a.tweens[e.ID] = Tween{From: from, To: to}
		}
	}
	if len(a.tweens) == 0 {
		return false
	}
	a.duration = d
	return true
}

// Advance moves the animation forward by dt and reports whether it is still
// running.
func (a *Animator) Advance(dt time.Duration) bool {
	if !a.Active() {
		return false
	}
	a.elapsed += dt
	if a.elapsed >= a.duration {
		a.Stop()
		return false
	}
	return true
}

// Stop snaps every element to its final geometry.
func (a *Animator) Stop() {
	clear(a.tweens)
	a.elapsed, a.duration = 0, 0
}

// Active reports whether a tween is running.
func (a *Animator) Active() bool { return len(a.tweens) > 0 }

// Progress returns the fraction of the running animation that has elapsed,
// or 1 when idle.
func (a *Animator) Progress() float64 {
	if !a.Active() {
		return 1
	}
	return float64(a.elapsed) / float64(a.duration)
}

// Overlay returns the in-between geometry for the renderer.
func (a *Animator) Overlay() scene.Overlay {
	return func(id string) (scene.Geometry, bool) {
		tw, ok := a.tweens[id]
		if !ok {
			return scene.Geometry{}, false
		}
		return tw.At(a.Progress()), true
	}
}
