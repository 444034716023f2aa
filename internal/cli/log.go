// Package cli implements the stepviz command-line interface.
//
// This package provides commands for listing and describing the built-in
// algorithms, printing their step logs, exporting frames, and playing runs
// back in an interactive terminal player. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - list: Show the algorithms grouped by family
//   - info: Describe one algorithm
//   - run: Print the step log of a run as text or JSON
//   - render: Export frames as PNG, SVG, GIF, JSON, DOT, Graphviz or text
//   - play: Step through a run in the terminal
//   - cache: Manage the frame cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Every command
// logs through the CLI's logger; the play command swaps in a file or discard
// logger while the terminal belongs to the player.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// opTimer tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type opTimer struct {
	logger *log.Logger
	start  time.Time
}

// newOpTimer creates a timer that captures the current time as start.
func newOpTimer(l *log.Logger) *opTimer {
	return &opTimer{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since the timer was created.
// Example output: "Rendered 42 frames (1.234s)"
func (p *opTimer) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
