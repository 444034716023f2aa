package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/stepviz/pkg/algorithm"
	"github.com/matzehuels/stepviz/pkg/errors"
	"github.com/matzehuels/stepviz/pkg/playback"
	"github.com/matzehuels/stepviz/pkg/render/sink"
	"github.com/matzehuels/stepviz/pkg/scene"
	"github.com/matzehuels/stepviz/pkg/step"
	"github.com/matzehuels/stepviz/pkg/watcher"
)

// Terminal size assumed until the first WindowSizeMsg arrives.
const (
	defaultCols = 80
	defaultRows = 24
	minRows     = 4
)

var (
	playerTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	playerStateStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	playerDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	playerErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	playerStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
)

// =============================================================================
// Key Map
// =============================================================================

type playerKeys struct {
	Toggle  key.Binding
	Forward key.Binding
	Back    key.Binding
	Reset   key.Binding
	End     key.Binding
	Faster  key.Binding
	Slower  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func (k playerKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Forward, k.Back, k.Reset, k.Help, k.Quit}
}

func (k playerKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Forward, k.Back},
		{k.Reset, k.End},
		{k.Faster, k.Slower},
		{k.Help, k.Quit},
	}
}

func defaultPlayerKeys() playerKeys {
	return playerKeys{
		Toggle:  key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "play/pause")),
		Forward: key.NewBinding(key.WithKeys("right", "l", "n"), key.WithHelp("→", "step")),
		Back:    key.NewBinding(key.WithKeys("left", "h", "b"), key.WithHelp("←", "back")),
		Reset:   key.NewBinding(key.WithKeys("home", "r", "0"), key.WithHelp("r", "reset")),
		End:     key.NewBinding(key.WithKeys("end", "G", "$"), key.WithHelp("G", "last step")),
		Faster:  key.NewBinding(key.WithKeys("+", "=", "up"), key.WithHelp("+", "faster")),
		Slower:  key.NewBinding(key.WithKeys("-", "_", "down"), key.WithHelp("-", "slower")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// =============================================================================
// Messages
// =============================================================================

type tickMsg time.Time

type reloadMsg struct{}

type watchErrMsg struct{ err error }

func tick() tea.Cmd {
	return tea.Tick(playback.FrameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// waitForChange blocks until the watcher reports a change or an error.
func waitForChange(w *watcher.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-w.Changed():
			return reloadMsg{}
		case err := <-w.Errors():
			return watchErrMsg{err: err}
		}
	}
}

// =============================================================================
// Player Model
// =============================================================================

// player is the bubbletea model of "stepviz play". It owns the controller's
// event loop: the controller's ManualScheduler only advances on tick
// messages, so every callback runs on the bubbletea goroutine.
type player struct {
	alg   algorithm.Algorithm
	ctrl  *playback.Controller
	sched *playback.ManualScheduler

	// reload re-reads the watched input and returns its step log after
	// loading the adapter. A failing reload leaves the scene as it was.
	reload func() (step.Log, error)
	watch  *watcher.Watcher

	keys playerKeys
	help help.Model
	bar  progress.Model

	width, height int
	ticking       bool
	last          time.Time
	status        string
	failed        bool
}

func newPlayer(alg algorithm.Algorithm, ctrl *playback.Controller, sched *playback.ManualScheduler) *player {
	bar := progress.New(progress.WithSolidFill(string(colorCyan)), progress.WithoutPercentage())
	return &player{
		alg:    alg,
		ctrl:   ctrl,
		sched:  sched,
		keys:   defaultPlayerKeys(),
		help:   help.New(),
		bar:    bar,
		width:  defaultCols,
		height: defaultRows,
	}
}

func (m *player) Init() tea.Cmd {
	return tea.Batch(m.ensureTicking(), waitForChange(m.watch))
}

func (m *player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.relayout()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		m.handleKey(msg)
		return m, m.ensureTicking()

	case tickMsg:
		now := time.Time(msg)
		m.sched.Advance(now.Sub(m.last))
		m.last = now
		if m.sched.Pending() == 0 {
			m.ticking = false
			return m, nil
		}
		return m, tick()

	case reloadMsg:
		m.reloadInput()
		return m, tea.Batch(m.ensureTicking(), waitForChange(m.watch))

	case watchErrMsg:
		m.setError(msg.err)
		return m, waitForChange(m.watch)
	}
	return m, nil
}

func (m *player) handleKey(msg tea.KeyMsg) {
	var err error
	speed := m.ctrl.Cursor().SpeedMs
	switch {
	case key.Matches(msg, m.keys.Toggle):
		err = m.ctrl.Toggle()
	case key.Matches(msg, m.keys.Forward):
		err = m.ctrl.StepForward()
	case key.Matches(msg, m.keys.Back):
		err = m.ctrl.StepBackward()
	case key.Matches(msg, m.keys.Reset):
		m.ctrl.Reset()
	case key.Matches(msg, m.keys.End):
		m.ctrl.Pause()
		err = m.ctrl.GoToStep(m.ctrl.Log().Len() - 1)
	case key.Matches(msg, m.keys.Faster):
		m.ctrl.SetSpeed(speed * 2 / 3)
	case key.Matches(msg, m.keys.Slower):
		m.ctrl.SetSpeed(speed*3/2 + 1)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.relayout()
	default:
		return
	}
	if err != nil {
		m.setError(err)
		return
	}
	m.status, m.failed = "", false
}

// ensureTicking starts the frame clock when callbacks are pending and it is
// not already running.
func (m *player) ensureTicking() tea.Cmd {
	if m.ticking || m.sched.Pending() == 0 {
		return nil
	}
	m.ticking = true
	m.last = time.Now()
	return tick()
}

func (m *player) reloadInput() {
	if m.reload == nil {
		return
	}
	l, err := m.reload()
	if err != nil {
		m.setError(err)
		return
	}
	m.ctrl.Load(l)
	m.relayout()
	m.status, m.failed = fmt.Sprintf("reloaded input (%d steps)", l.Len()), false
}

func (m *player) setError(err error) {
	m.status, m.failed = errors.UserMessage(err), true
}

// =============================================================================
// Layout
// =============================================================================

// canvasCells returns the terminal cells left for the scene.
func (m *player) canvasCells() (cols, rows int) {
	chrome := 3 + lipgloss.Height(m.help.View(m.keys))
	return max(m.width, 1), max(m.height-chrome, minRows)
}

func (m *player) relayout() {
	m.bar.Width = max(m.width-24, 10)
	m.ctrl.Resize(sink.TerminalCanvas(m.canvasCells()))
}

// =============================================================================
// View
// =============================================================================

func (m *player) View() string {
	cols, rows := m.canvasCells()
	a := m.ctrl.Adapter()
	frame := sink.RenderText(a.Scene(), a.Decorations(), cols, rows, scene.WithOverlay(m.ctrl.Overlay()))

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteByte('\n')
	b.WriteString(frame.String())
	b.WriteByte('\n')
	b.WriteString(m.footer())
	b.WriteByte('\n')
	b.WriteString(m.statusLine())
	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *player) header() string {
	cur := m.ctrl.Cursor()
	return playerTitleStyle.Render(m.alg.Name) + " " +
		playerDimStyle.Render(string(m.alg.Family)) + "  " +
		playerStateStyle.Render(m.ctrl.State().String()) + "  " +
		playerDimStyle.Render(fmt.Sprintf("%d ms/step", cur.SpeedMs))
}

func (m *player) footer() string {
	cur := m.ctrl.Cursor()
	frac := 1.0
	if cur.Len > 0 {
		frac = float64(cur.Index) / float64(cur.Len)
	}
	return m.bar.ViewAs(frac) + " " + playerDimStyle.Render(fmt.Sprintf("step %d/%d", cur.Index, cur.Len))
}

func (m *player) statusLine() string {
	if m.status == "" {
		if s := m.ctrl.Current(); s != nil {
			return playerStatusStyle.Render(string(s.Kind()))
		}
		return ""
	}
	if m.failed {
		return playerErrorStyle.Render(iconError + " " + m.status)
	}
	return playerStatusStyle.Render(iconSuccess + " " + m.status)
}
