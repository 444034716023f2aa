// Package playback steps a visualization through a step log over time.
//
// A [Controller] owns the cursor and moves through four states:
//
//	Idle ──Load──▶ Ready ──Play──▶ Playing ──Pause──▶ Paused
//	                 ▲                │  ▲               │
//	                 └── last step ───┘  └──── Play ─────┘
//
// Timers come from a [Scheduler]. The default [ManualScheduler] only fires
// inside Advance, so the host decides which goroutine runs callbacks: the
// terminal player advances it from its tick loop, tests advance it by hand.
//
// Seeking (GoToStep, StepBackward, Reset) replays the log from the start
// with [viz.Replay] and never animates. Stepping forward may tween geometry
// through an [Animator], whose overlay the renderer draws in place of the
// stored element positions.
package playback
