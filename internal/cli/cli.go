// Package cli implements the stepviz command-line interface.
package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stepviz/pkg/algorithm"
	"github.com/matzehuels/stepviz/pkg/buildinfo"
	"github.com/matzehuels/stepviz/pkg/cache"
	"github.com/matzehuels/stepviz/pkg/config"
	"github.com/matzehuels/stepviz/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "stepviz"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger   *log.Logger
	Config   config.Config
	Registry *algorithm.Registry

	// configPath overrides the default config location when set.
	configPath string
}

// New creates a new CLI instance with a default logger and the built-in
// algorithms.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:   newLogger(w, level),
		Config:   config.DefaultConfig(),
		Registry: algorithm.NewRegistry(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// LoadConfig reads the config file named by --config, or the default one.
// A broken file is reported and the defaults are kept.
func (c *CLI) LoadConfig() {
	var (
		cfg config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.LoadFrom(c.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		c.Logger.Warn("ignoring config", "error", err)
	}
	c.Config = cfg
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "stepviz animates algorithms step by step",
		Long: `stepviz runs sorting, graph search, pathfinding and tree traversal
algorithms, records every step they take, and plays the steps back in the
terminal or exports them as images, animations and JSON frames.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.LoadConfig()
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.Path()+")")

	// Register all subcommands
	root.AddCommand(c.listCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.runCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Cache keys carry the build
// version so a new release never serves frames drawn by an old one.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
	algs := algorithm.NewRunner(c.Registry, c.Logger)
	return pipeline.NewRunner(algs, store, keyer, c.Logger), nil
}

// memoryCacheBytes bounds the fallback cache used when no cache directory
// can be created.
const memoryCacheBytes = cache.DefaultMemoryBytes

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	dir, err := c.cacheDir()
	if err == nil {
		var fc *cache.FileCache
		if fc, err = cache.NewFileCache(dir); err == nil {
			return fc, nil
		}
	}
	c.Logger.Debug("no cache directory, caching in memory", "error", err)
	return cache.NewMemoryCache(memoryCacheBytes), nil
}

// cacheDir returns the configured cache directory, or the user cache
// directory (~/.cache/stepviz on Linux).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// sceneOptions fills canvas, layout and theme options from the config. Flags
// parsed later override these values.
func (c *CLI) sceneOptions(opts *pipeline.Options) error {
	theme, err := c.Config.BuildTheme()
	if err != nil {
		return err
	}
	opts.Width = c.Config.Canvas.Width
	opts.Height = c.Config.Canvas.Height
	opts.GraphLayout = c.Config.Layout.Graph
	opts.Iterations = c.Config.Layout.Iterations
	opts.Seed = c.Config.Layout.Seed
	opts.Theme = theme
	opts.Logger = c.Logger
	return nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatPNG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}
