package cli

import (
	stderrors "errors"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/matzehuels/stepviz/pkg/algorithm"
	"github.com/matzehuels/stepviz/pkg/errors"
	"github.com/matzehuels/stepviz/pkg/input"
	"github.com/matzehuels/stepviz/pkg/pipeline"
	"github.com/matzehuels/stepviz/pkg/playback"
	"github.com/matzehuels/stepviz/pkg/render/sink"
	"github.com/matzehuels/stepviz/pkg/step"
	"github.com/matzehuels/stepviz/pkg/viz"
	"github.com/matzehuels/stepviz/pkg/watcher"
)

// playOpts holds the command-line flags for the play command.
type playOpts struct {
	in       inputFlags
	speed    int     // ms per step
	animate  float64 // share of the step delay spent tweening
	layout   string
	directed bool
	autoplay bool
	watch    bool
	logFile  string
}

// playCommand creates the interactive player command.
func (c *CLI) playCommand() *cobra.Command {
	var opts playOpts

	cmd := &cobra.Command{
		Use:   "play [algorithm]",
		Short: "Step through an algorithm in the terminal",
		Long: `Open an interactive player for an algorithm run. Without an algorithm a
picker is shown.

With --watch the input file is reloaded whenever it changes; an invalid edit
keeps the previous run on screen and shows the error.`,
		Example: `  stepviz play bubble --values "9,4,7,1,3" --autoplay
  stepviz play bfs --input graph.json --watch`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completeAlgorithms,
		RunE: func(cmd *cobra.Command, args []string) error {
			var id string
			if len(args) == 1 {
				id = args[0]
			} else {
				picked, err := c.pickAlgorithm()
				if stderrors.Is(err, huh.ErrUserAborted) {
					return nil
				}
				if err != nil {
					return err
				}
				id = picked
			}
			if opts.watch && opts.in.path == "" {
				return errors.New(errors.ErrCodeInvalidInput, "--watch needs an --input file")
			}
			return c.runPlay(cmd, id, &opts)
		},
	}

	opts.in.bind(cmd)
	cmd.Flags().IntVar(&opts.speed, "speed", 0, "delay between steps in milliseconds")
	cmd.Flags().Float64Var(&opts.animate, "animate", 0, "share of each step spent animating moves, 0 to 1")
	cmd.Flags().StringVar(&opts.layout, "layout", "", "graph layout: force, circular, grid")
	cmd.Flags().BoolVar(&opts.directed, "directed", false, "draw graph edges as arrows")
	cmd.Flags().BoolVar(&opts.autoplay, "autoplay", false, "start playing immediately")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload when the input file changes")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file while the player is open")

	return cmd
}

func (c *CLI) runPlay(cmd *cobra.Command, id string, opts *playOpts) error {
	ctx := cmd.Context()

	popts := pipeline.Options{Algorithm: id}
	if err := c.sceneOptions(&popts); err != nil {
		return err
	}
	opts.in.apply(&popts)
	w, h := sink.TerminalCanvas(defaultCols, defaultRows-4)
	popts.Width, popts.Height = int(w), int(h)
	if cmd.Flags().Changed("layout") {
		popts.GraphLayout = opts.layout
	}
	popts.Directed = opts.directed
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	speed := c.Config.Playback.SpeedMs
	if cmd.Flags().Changed("speed") {
		speed = opts.speed
	}
	animate := c.Config.Playback.Animate
	if cmd.Flags().Changed("animate") {
		animate = opts.animate
	}

	// The alt screen owns the terminal, so logs go to a file or nowhere.
	logger, closeLog, err := c.playerLogger(opts.logFile)
	if err != nil {
		return err
	}
	defer closeLog()
	popts.Logger = logger

	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Run(ctx, popts)
	if err != nil {
		return err
	}
	adapter, err := pipeline.LoadAdapter(ctx, res.Algorithm, res.Input, popts)
	if err != nil {
		return err
	}

	sched := playback.NewManualScheduler()
	ctrl := playback.New(adapter,
		playback.WithScheduler(sched),
		playback.WithSpeed(speed),
		playback.WithAnimation(animate),
		playback.WithLogger(logger),
	)
	ctrl.Load(res.Log)
	if opts.autoplay {
		if err := ctrl.Play(); err != nil {
			return err
		}
	}

	m := newPlayer(res.Algorithm, ctrl, sched)
	if opts.watch {
		fw, err := watcher.New(opts.in.path)
		if err != nil {
			return err
		}
		if err := fw.Start(); err != nil {
			return err
		}
		defer fw.Stop()
		logger.Info("watching input", "path", fw.Path(), "polling", fw.Polling())
		m.watch = fw
		m.reload = reloader(algorithm.NewRunner(c.Registry, logger), res.Algorithm, adapter, opts.in.path, logger)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// reloader returns the player's reload function for a watched input file.
// The adapter is only reloaded once the new input has produced a step log.
func reloader(algs *algorithm.Runner, alg algorithm.Algorithm, a viz.Adapter, path string, logger *log.Logger) func() (step.Log, error) {
	return func() (step.Log, error) {
		data, err := input.ReadFile(path, alg.Family)
		if err != nil {
			logger.Warn("reload failed", "path", path, "error", err)
			return step.Log{}, err
		}
		l, err := algs.Run(alg.ID, data)
		if err != nil {
			return step.Log{}, err
		}
		if err := a.Load(data); err != nil {
			return step.Log{}, err
		}
		logger.Info("reloaded input", "path", path, "steps", l.Len())
		return l, nil
	}
}

// playerLogger returns a logger that writes to path, or discards when path
// is empty.
func (c *CLI) playerLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open log file %s", path)
	}
	return newLogger(f, c.Logger.GetLevel()), func() { f.Close() }, nil
}

// pickAlgorithm asks for an algorithm with a huh select.
func (c *CLI) pickAlgorithm() (string, error) {
	var options []huh.Option[string]
	for _, f := range input.Families {
		for _, a := range c.Registry.ByFamily(f) {
			options = append(options, huh.NewOption(a.Name+" ("+string(f)+")", a.ID))
		}
	}

	var id string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which algorithm?").
				Options(options...).
				Value(&id),
		),
	).WithTheme(huh.ThemeDracula())
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return "", err
	}
	return id, nil
}
