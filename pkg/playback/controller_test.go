package playback

import (
	"maps"
	"reflect"
	"slices"
	"sync"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/matzehuels/stepviz/pkg/algorithm"
	"github.com/matzehuels/stepviz/pkg/errors"
	"github.com/matzehuels/stepviz/pkg/input"
	"github.com/matzehuels/stepviz/pkg/observability"
	"github.com/matzehuels/stepviz/pkg/step"
	"github.com/matzehuels/stepviz/pkg/viz"
)

func sortLog(t testing.TB, values ...int) step.Log {
	t.Helper()
	runner := algorithm.NewRunner(algorithm.NewRegistry(), nil)
	log, err := runner.Run("bubble", input.Array{Values: values})
	if err != nil {
		t.Fatal(err)
	}
	return log
}

func newController(t testing.TB, opts ...Option) (*Controller, *ManualScheduler, step.Log) {
	t.Helper()
	a := viz.NewArray()
	if err := a.Load(input.Array{Values: []int{5, 3, 8, 1}}); err != nil {
		t.Fatal(err)
	}
	sched := NewManualScheduler()
	c := New(a, append([]Option{WithScheduler(sched), WithSpeed(100)}, opts...)...)
	log := sortLog(t, 5, 3, 8, 1)
	c.Load(log)
	return c, sched, log
}

// leakyScheduler hands out cancels that do nothing, so stale callbacks still
// fire.
type leakyScheduler struct {
	fns []func()
}

func (l *leakyScheduler) Schedule(_ time.Duration, fn func()) Cancel {
	l.fns = append(l.fns, fn)
	return func() {}
}

func TestIdleController(t *testing.T) {
	c := New(viz.NewArray())
	if c.State() != StateIdle {
		t.Fatalf("State = %s, want idle", c.State())
	}
	for name, op := range map[string]func() error{
		"Play":         c.Play,
		"StepForward":  c.StepForward,
		"StepBackward": c.StepBackward,
		"GoToStep":     func() error { return c.GoToStep(0) },
	} {
		if err := op(); !errors.Is(err, errors.ErrCodeInvalidState) {
			t.Errorf("%s on idle controller = %v, want INVALID_STATE", name, err)
		}
	}
	c.Reset()
	if c.State() != StateIdle {
		t.Errorf("Reset moved an idle controller to %s", c.State())
	}
	if c.Session() == "" {
		t.Error("empty session id")
	}
}

func TestPlayRunsToEnd(t *testing.T) {
	c, sched, log := newController(t)
	if c.State() != StateReady || c.Cursor().Index != 0 {
		t.Fatalf("after Load: %s at %d", c.State(), c.Cursor().Index)
	}
	if err := c.Play(); err != nil {
		t.Fatal(err)
	}
	if !c.Cursor().Playing {
		t.Fatal("cursor not playing")
	}

	sched.Advance(100 * time.Millisecond)
	if got := c.Cursor().Index; got != 1 {
		t.Fatalf("Index after one delay = %d, want 1", got)
	}

	sched.Advance(time.Duration(log.Len()) * 100 * time.Millisecond)
	if c.State() != StateReady {
		t.Errorf("State at end = %s, want ready", c.State())
	}
	if !c.Cursor().AtEnd() || c.Cursor().Index != log.Len() {
		t.Errorf("cursor = %+v, want index %d", c.Cursor(), log.Len())
	}
	if sched.Pending() != 0 {
		t.Errorf("%d timers left after the last step", sched.Pending())
	}
	if !reflect.DeepEqual(c.Current(), log.Last()) {
		t.Error("Current is not the last step")
	}
}

func TestPlayAtEndRestarts(t *testing.T) {
	c, sched, log := newController(t)
	if err := c.GoToStep(log.Len() - 1); err != nil {
		t.Fatal(err)
	}
	if err := c.Play(); err != nil {
		t.Fatal(err)
	}
	if got := c.Cursor().Index; got != 0 {
		t.Fatalf("Play at end restarted at %d, want 0", got)
	}
	sched.Advance(100 * time.Millisecond)
	if got := c.Cursor().Index; got != 1 {
		t.Errorf("Index = %d, want 1", got)
	}
}

func TestPauseStopsTimer(t *testing.T) {
	c, sched, _ := newController(t)
	_ = c.Play()
	sched.Advance(250 * time.Millisecond)
	c.Pause()
	at := c.Cursor().Index

	sched.Advance(10 * time.Second)
	if c.Cursor().Index != at {
		t.Errorf("index moved from %d to %d while paused", at, c.Cursor().Index)
	}
	if c.State() != StatePaused {
		t.Errorf("State = %s, want paused", c.State())
	}

	_ = c.Toggle()
	sched.Advance(100 * time.Millisecond)
	if c.Cursor().Index != at+1 {
		t.Errorf("resume: index = %d, want %d", c.Cursor().Index, at+1)
	}
}

func TestLateCallbackIsNoop(t *testing.T) {
	a := viz.NewArray()
	if err := a.Load(input.Array{Values: []int{5, 3, 8, 1}}); err != nil {
		t.Fatal(err)
	}
	leaky := &leakyScheduler{}
	c := New(a, WithScheduler(leaky))
	c.Load(sortLog(t, 5, 3, 8, 1))

	tests := []struct {
		name string
		stop func()
	}{
		{"Pause", c.Pause},
		{"Reset", c.Reset},
		{"GoToStep", func() { c.Pause(); _ = c.GoToStep(3) }},
		{"Load", func() { c.Load(sortLog(t, 2, 1)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leaky.fns = nil
			if err := c.Play(); err != nil {
				t.Fatal(err)
			}
			if len(leaky.fns) != 1 {
				t.Fatalf("Play scheduled %d callbacks", len(leaky.fns))
			}
			stale := leaky.fns[0]
			tt.stop()
			cur, states := c.Cursor(), c.Adapter().Scene().States()

			stale()

			if c.Cursor() != cur {
				t.Errorf("stale callback moved the cursor: %+v -> %+v", cur, c.Cursor())
			}
			if !maps.Equal(states, c.Adapter().Scene().States()) {
				t.Error("stale callback changed the scene")
			}
			c.Reset()
		})
	}
}

func TestStepping(t *testing.T) {
	c, _, log := newController(t)

	for i := 0; i < 3; i++ {
		if err := c.StepForward(); err != nil {
			t.Fatal(err)
		}
	}
	if c.Cursor().Index != 3 {
		t.Fatalf("Index = %d, want 3", c.Cursor().Index)
	}
	want := c.Adapter().Scene().States()

	_ = c.StepForward()
	_ = c.StepBackward()
	if c.Cursor().Index != 3 {
		t.Fatalf("Index = %d, want 3", c.Cursor().Index)
	}
	if !maps.Equal(want, c.Adapter().Scene().States()) {
		t.Error("forward then backward did not restore the scene")
	}

	c.Reset()
	_ = c.StepBackward()
	if c.Cursor().Index != 0 {
		t.Errorf("StepBackward at 0 moved to %d", c.Cursor().Index)
	}

	_ = c.GoToStep(log.Len() - 1)
	_ = c.StepForward()
	if c.Cursor().Index != log.Len() {
		t.Errorf("StepForward at end moved past %d", log.Len())
	}
}

func TestStepForwardPausesPlayback(t *testing.T) {
	c, sched, _ := newController(t)
	_ = c.Play()
	_ = c.StepForward()
	if c.State() != StatePaused {
		t.Errorf("State = %s, want paused", c.State())
	}
	sched.Advance(time.Second)
	if c.Cursor().Index != 1 {
		t.Errorf("Index = %d, want 1", c.Cursor().Index)
	}
}

func TestGoToStep(t *testing.T) {
	c, _, log := newController(t)

	tests := []struct {
		in, want int
	}{
		{0, 1},
		{4, 5},
		{-3, 1},
		{log.Len() + 10, log.Len()},
	}
	for _, tt := range tests {
		if err := c.GoToStep(tt.in); err != nil {
			t.Fatal(err)
		}
		if got := c.Cursor().Index; got != tt.want {
			t.Errorf("GoToStep(%d): Index = %d, want %d", tt.in, got, tt.want)
		}
	}

	_ = c.Play()
	if err := c.GoToStep(2); !errors.Is(err, errors.ErrCodeInvalidState) {
		t.Errorf("GoToStep while playing = %v, want INVALID_STATE", err)
	}
}

func TestGoToStepShowsStateAfterStep(t *testing.T) {
	c, _, log := newController(t)
	_ = c.GoToStep(1)

	arr := c.Adapter().(*viz.Array)
	if got, want := arr.Values(), step.Snapshot(log.At(1)); !slices.Equal(got, want) {
		t.Errorf("values after step 1 = %v, want %v", got, want)
	}
	if !reflect.DeepEqual(c.Current(), log.At(1)) {
		t.Error("Current is not step 1")
	}
}

func TestSetSpeed(t *testing.T) {
	c, sched, _ := newController(t)
	for _, tt := range []struct{ in, want int }{
		{1, MinSpeedMs},
		{250, 250},
		{99999, MaxSpeedMs},
	} {
		c.SetSpeed(tt.in)
		if got := c.Cursor().SpeedMs; got != tt.want {
			t.Errorf("SetSpeed(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}

	c.SetSpeed(1000)
	_ = c.Play()
	sched.Advance(999 * time.Millisecond)
	if c.Cursor().Index != 0 {
		t.Error("step applied before the delay elapsed")
	}
	sched.Advance(time.Millisecond)
	if c.Cursor().Index != 1 {
		t.Error("step not applied after the delay")
	}
}

func TestResizeKeepsCursorAndStates(t *testing.T) {
	c, _, _ := newController(t)
	_ = c.GoToStep(5)
	cur, states := c.Cursor(), c.Adapter().Scene().States()

	c.Resize(400, 300)

	if c.Cursor() != cur {
		t.Errorf("cursor changed: %+v -> %+v", cur, c.Cursor())
	}
	if !maps.Equal(states, c.Adapter().Scene().States()) {
		t.Error("Resize changed element states")
	}
}

func TestAnimatedSwap(t *testing.T) {
	c, sched, log := newController(t, WithAnimation(0.5))
	swap := slices.IndexFunc(log.Steps(), func(s step.Step) bool { return s.Kind() == step.KindSwap })
	if swap < 0 {
		t.Fatal("log has no swap")
	}
	_ = c.GoToStep(swap - 1)
	if c.Animating() {
		t.Fatal("seek started a tween")
	}

	_ = c.StepForward()
	if !c.Animating() {
		t.Fatal("swap did not start a tween")
	}
	if _, ok := c.Overlay()("0"); !ok {
		t.Error("swapped bar has no overlay geometry")
	}

	sched.Advance(100 * time.Millisecond)
	if c.Animating() {
		t.Error("tween outlived the step delay")
	}

	_ = c.StepBackward()
	_ = c.StepForward()
	c.Reset()
	if c.Animating() {
		t.Error("Reset left a tween running")
	}
}

func TestSeekDeterminism(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		values := rapid.SliceOfN(rapid.IntRange(-20, 20), 1, 8).Draw(rt, "values")
		log := sortLog(t, values...)

		a := viz.NewArray()
		if err := a.Load(input.Array{Values: values}); err != nil {
			rt.Fatal(err)
		}
		sched := NewManualScheduler()
		c := New(a, WithScheduler(sched), WithAnimation(0.5))
		c.Load(log)

		ops := rapid.SliceOfN(rapid.IntRange(0, 6), 0, 30).Draw(rt, "ops")
		for _, op := range ops {
			switch op {
			case 0:
				_ = c.Play()
			case 1:
				c.Pause()
			case 2:
				_ = c.StepForward()
			case 3:
				_ = c.StepBackward()
			case 4:
				c.Pause()
				_ = c.GoToStep(rapid.IntRange(-1, log.Len()+1).Draw(rt, "target"))
			case 5:
				c.Reset()
			case 6:
				sched.Advance(time.Duration(rapid.IntRange(0, 2000).Draw(rt, "ms")) * time.Millisecond)
			}
		}

		ref := viz.NewArray()
		if err := ref.Load(input.Array{Values: values}); err != nil {
			rt.Fatal(err)
		}
		viz.Replay(ref, log, c.Cursor().Index)
		if !maps.Equal(ref.Scene().States(), a.Scene().States()) {
			rt.Fatalf("scene at index %d differs from a fresh replay", c.Cursor().Index)
		}
		if !slices.Equal(ref.Values(), a.Values()) {
			rt.Fatalf("values %v, want %v", a.Values(), ref.Values())
		}
	})
}

type recordingHooks struct {
	mu      sync.Mutex
	applied []int
	changes []string
}

func (h *recordingHooks) OnStepApplied(_ string, index int, _ string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.applied = append(h.applied, index)
}

func (h *recordingHooks) OnStateChange(_ string, from, to string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.changes = append(h.changes, from+">"+to)
}

func TestPlaybackHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPlaybackHooks(hooks)
	t.Cleanup(observability.Reset)

	c, sched, log := newController(t)
	_ = c.Play()
	sched.Advance(time.Duration(log.Len()) * 100 * time.Millisecond)

	if len(hooks.applied) != log.Len() || hooks.applied[0] != 0 {
		t.Errorf("applied = %v, want 0..%d", hooks.applied, log.Len()-1)
	}
	want := []string{"idle>ready", "ready>playing", "playing>ready"}
	if !slices.Equal(hooks.changes, want) {
		t.Errorf("state changes = %v, want %v", hooks.changes, want)
	}
}
