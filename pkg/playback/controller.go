package playback

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/stepviz/pkg/errors"
	"github.com/matzehuels/stepviz/pkg/observability"
	"github.com/matzehuels/stepviz/pkg/scene"
	"github.com/matzehuels/stepviz/pkg/step"
	"github.com/matzehuels/stepviz/pkg/viz"
)

// State is the controller's playback state.
type State int

const (
	StateIdle State = iota
	StateReady
	StatePlaying
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReady:
		return "ready"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Speed bounds, in milliseconds per step.
const (
	MinSpeedMs     = 10
	MaxSpeedMs     = 5000
	DefaultSpeedMs = 500
)

// FrameInterval is the tween frame period.
const FrameInterval = 16 * time.Millisecond

// Cursor is the playback position. Index counts applied steps: the scene
// shows the state after steps 0..Index-1, and Index 0 is the freshly loaded
// scene.
type Cursor struct {
	Index   int
	Len     int
	Playing bool
	SpeedMs int
}

// AtEnd reports whether every step has been applied.
func (c Cursor) AtEnd() bool { return c.Index >= c.Len }

// Option configures a Controller.
type Option func(*Controller)

// WithScheduler sets the timer source. The default is a [ManualScheduler]
// that the host advances.
func WithScheduler(s Scheduler) Option { return func(c *Controller) { c.sched = s } }

// WithSpeed sets the initial delay between steps.
func WithSpeed(ms int) Option { return func(c *Controller) { c.speed = clampSpeed(ms) } }

// WithLogger sets the logger for state transitions.
func WithLogger(l *log.Logger) Option { return func(c *Controller) { c.logger = l } }

// WithAnimation tweens geometry changes for a fraction of the step delay.
// Zero disables tweening.
func WithAnimation(fraction float64) Option {
	return func(c *Controller) { c.tweenFraction = min(max(fraction, 0), 1) }
}

// WithOnChange registers a callback invoked whenever the visible scene or the
// cursor changes.
func WithOnChange(fn func()) Option { return func(c *Controller) { c.onChange = fn } }

// Controller drives an adapter through a step log.
//
// Every pending callback captures the generation current when it was
// scheduled. Pause, Reset, Load and GoToStep bump the generation and cancel
// the pending timer before returning, so a callback that fires late finds a
// stale generation and does nothing.
//
// A Controller is not safe for concurrent use; the scheduler must deliver
// callbacks on the owning goroutine.
type Controller struct {
	adapter viz.Adapter
	sched   Scheduler
	logger  *log.Logger
	hooks   observability.PlaybackHooks
	session string

	steps step.Log
	state State
	index int
	speed int

	gen         uint64
	frameGen    uint64
	cancelStep  Cancel
	cancelFrame Cancel

	anim          *Animator
	tweenFraction float64
	onChange      func()
}

// New returns an idle controller over adapter.
func New(adapter viz.Adapter, opts ...Option) *Controller {
	c := &Controller{
		adapter: adapter,
		hooks:   observability.Playback(),
		session: uuid.NewString(),
		speed:   DefaultSpeedMs,
		anim:    NewAnimator(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sched == nil {
		c.sched = NewManualScheduler()
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	return c
}

// =============================================================================
// Accessors
// =============================================================================

// Session returns the controller's unique session id.
func (c *Controller) Session() string { return c.session }

// State returns the playback state.
func (c *Controller) State() State { return c.state }

// Cursor returns the playback position.
func (c *Controller) Cursor() Cursor {
	return Cursor{Index: c.index, Len: c.steps.Len(), Playing: c.state == StatePlaying, SpeedMs: c.speed}
}

// Log returns the loaded step log.
func (c *Controller) Log() step.Log { return c.steps }

// Adapter returns the adapter being driven.
func (c *Controller) Adapter() viz.Adapter { return c.adapter }

// Scheduler returns the timer source.
func (c *Controller) Scheduler() Scheduler { return c.sched }

// Current returns the most recently applied step, or nil at index 0.
func (c *Controller) Current() step.Step {
	if c.index == 0 {
		return nil
	}
	return c.steps.At(c.index - 1)
}

// Overlay returns tweened geometry for rendering the current frame.
func (c *Controller) Overlay() scene.Overlay { return c.anim.Overlay() }

// Animating reports whether a tween is in flight.
func (c *Controller) Animating() bool { return c.anim.Active() }

// =============================================================================
// Transitions
// =============================================================================

// Load installs steps, resets the scene and moves to Ready at index 0.
func (c *Controller) Load(steps step.Log) {
	c.invalidate()
	c.steps = steps
	c.index = 0
	c.adapter.Reset()
	c.setState(StateReady)
	c.changed()
}

// Play starts automatic stepping from Ready or Paused. Playing from the end
// restarts at index 0. Playing while already playing does nothing.
func (c *Controller) Play() error {
	switch c.state {
	case StateIdle:
		return errors.New(errors.ErrCodeInvalidState, "nothing loaded")
	case StatePlaying:
		return nil
	}
	if c.steps.Empty() {
		return nil
	}
	if c.index >= c.steps.Len() {
		c.seek(0)
	}
	c.setState(StatePlaying)
	c.scheduleStep()
	c.changed()
	return nil
}

// Pause stops automatic stepping. It does nothing unless playing.
func (c *Controller) Pause() {
	if c.state != StatePlaying {
		return
	}
	c.invalidate()
	c.setState(StatePaused)
	c.changed()
}

// Toggle plays when stopped and pauses when playing.
func (c *Controller) Toggle() error {
	if c.state == StatePlaying {
		c.Pause()
		return nil
	}
	return c.Play()
}

// StepForward applies the next step. A playing controller pauses first.
func (c *Controller) StepForward() error {
	if c.state == StateIdle {
		return errors.New(errors.ErrCodeInvalidState, "nothing loaded")
	}
	c.Pause()
	if c.index < c.steps.Len() {
		c.advance()
	}
	c.changed()
	return nil
}

// StepBackward shows the state before the last applied step by replaying
// from the start. A playing controller pauses first.
func (c *Controller) StepBackward() error {
	if c.state == StateIdle {
		return errors.New(errors.ErrCodeInvalidState, "nothing loaded")
	}
	c.Pause()
	if c.index > 0 {
		c.invalidate()
		c.seek(c.index - 1)
	}
	c.changed()
	return nil
}

// GoToStep shows the state after step i, with i clamped to [0, len-1]. It is
// only allowed while Ready or Paused, and does not animate.
func (c *Controller) GoToStep(i int) error {
	if c.state != StateReady && c.state != StatePaused {
		return errors.New(errors.ErrCodeInvalidState, "cannot seek while %s", c.state)
	}
	if c.steps.Empty() {
		return nil
	}
	i = min(max(i, 0), c.steps.Len()-1)
	c.invalidate()
	c.seek(i + 1)
	c.changed()
	return nil
}

// Reset returns to Ready at index 0 from any state with a loaded log.
func (c *Controller) Reset() {
	c.invalidate()
	if c.state == StateIdle {
		return
	}
	c.seek(0)
	c.setState(StateReady)
	c.changed()
}

// SetSpeed sets the delay between steps in milliseconds, clamped to
// [MinSpeedMs, MaxSpeedMs]. A pending step keeps its original delay.
func (c *Controller) SetSpeed(ms int) {
	c.speed = clampSpeed(ms)
	c.changed()
}

// Resize lays the scene out for a new canvas. The cursor and element states
// are untouched; a running tween snaps to its end.
func (c *Controller) Resize(w, h float64) {
	c.stopFrames()
	c.adapter.Layout(w, h)
	c.changed()
}

// =============================================================================
// Internals
// =============================================================================

// invalidate bumps the generation and cancels everything pending.
func (c *Controller) invalidate() {
	c.gen++
	if c.cancelStep != nil {
		c.cancelStep()
		c.cancelStep = nil
	}
	c.stopFrames()
}

func (c *Controller) stopFrames() {
	c.frameGen++
	if c.cancelFrame != nil {
		c.cancelFrame()
		c.cancelFrame = nil
	}
	c.anim.Stop()
}

func (c *Controller) scheduleStep() {
	gen := c.gen
	c.cancelStep = c.sched.Schedule(c.delay(), func() {
		if gen != c.gen || c.state != StatePlaying {
			return
		}
		c.cancelStep = nil
		c.advance()
		if c.index >= c.steps.Len() {
			c.setState(StateReady)
		} else {
			c.scheduleStep()
		}
		c.changed()
	})
}

// advance applies the step at the cursor and tweens any geometry it moved.
func (c *Controller) advance() {
	s := c.steps.At(c.index)
	c.stopFrames()
	var before map[string]scene.Geometry
	if c.tweenFraction > 0 {
		before = Capture(c.adapter.Scene())
	}
	c.adapter.Apply(s)
	c.hooks.OnStepApplied(c.session, c.index, string(s.Kind()))
	c.index++

	d := time.Duration(float64(c.delay()) * c.tweenFraction)
	if before != nil && c.anim.Start(before, c.adapter.Scene(), d) {
		c.scheduleFrame(c.gen)
	}
}

func (c *Controller) scheduleFrame(gen uint64) {
	fgen := c.frameGen
	c.cancelFrame = c.sched.Schedule(FrameInterval, func() {
		if gen != c.gen || fgen != c.frameGen {
			return
		}
		c.cancelFrame = nil
		if c.anim.Advance(FrameInterval) {
			c.scheduleFrame(gen)
		}
		c.changed()
	})
}

// seek rebuilds the scene after the first n steps without animation.
func (c *Controller) seek(n int) {
	c.stopFrames()
	viz.Replay(c.adapter, c.steps, n)
	c.index = min(max(n, 0), c.steps.Len())
}

func (c *Controller) setState(s State) {
	if s == c.state {
		return
	}
	from := c.state
	c.state = s
	c.logger.Debug("playback state", "session", c.session, "from", from, "to", s, "index", c.index)
	c.hooks.OnStateChange(c.session, from.String(), s.String())
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}

func (c *Controller) delay() time.Duration {
	return time.Duration(c.speed) * time.Millisecond
}

func clampSpeed(ms int) int {
	return min(max(ms, MinSpeedMs), MaxSpeedMs)
}
