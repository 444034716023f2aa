// Package config loads the stepviz configuration file.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/stepviz/config.toml
//
// A missing file yields [DefaultConfig]. Command-line flags override whatever
// the file sets.
//
//	[canvas]
//	width = 1280
//	height = 720
//
//	[playback]
//	speed_ms = 300
//	animate = 0.6
//
//	[layout]
//	graph = "circular"
//	seed = 7
//
//	[theme]
//	background = "#101418"
//
//	[theme.states]
//	path = "#00c853"
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stepviz/pkg/errors"
	"github.com/matzehuels/stepviz/pkg/playback"
	"github.com/matzehuels/stepviz/pkg/scene"
	"github.com/matzehuels/stepviz/pkg/viz"
)

// CanvasConfig sizes rendered frames.
type CanvasConfig struct {
	Width  int `toml:"width,omitempty"`
	Height int `toml:"height,omitempty"`
}

// PlaybackConfig holds player defaults.
type PlaybackConfig struct {
	SpeedMs int     `toml:"speed_ms,omitempty"` // delay between steps
	Animate float64 `toml:"animate,omitempty"`  // share of the delay spent tweening, 0 disables
}

// LayoutConfig selects and seeds the graph layout.
type LayoutConfig struct {
	Graph      string `toml:"graph,omitempty"` // force, circular, grid
	Iterations int    `toml:"iterations,omitempty"`
	Seed       uint64 `toml:"seed,omitempty"`
}

// ThemeConfig overrides palette colors. States maps a state name such as
// "visited" to a "#rrggbb" color.
type ThemeConfig struct {
	Background string            `toml:"background,omitempty"`
	Foreground string            `toml:"foreground,omitempty"`
	States     map[string]string `toml:"states,omitempty"`
}

// CacheConfig controls the rendered-frame cache.
type CacheConfig struct {
	Disabled bool   `toml:"disabled,omitempty"`
	Dir      string `toml:"dir,omitempty"`
}

// Config is the top-level configuration.
type Config struct {
	Canvas   CanvasConfig   `toml:"canvas"`
	Playback PlaybackConfig `toml:"playback"`
	Layout   LayoutConfig   `toml:"layout"`
	Theme    ThemeConfig    `toml:"theme"`
	Cache    CacheConfig    `toml:"cache"`
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Canvas:   CanvasConfig{Width: int(viz.DefaultWidth), Height: int(viz.DefaultHeight)},
		Playback: PlaybackConfig{SpeedMs: playback.DefaultSpeedMs, Animate: 0.5},
		Layout:   LayoutConfig{Graph: string(viz.GraphLayoutForce), Seed: 42},
	}
}

// Dir returns the XDG config directory for stepviz.
func Dir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "stepviz")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "stepviz")
}

// Path returns the full path to config.toml.
func Path() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}

// Load reads the config file from the XDG config directory.
func Load() (Config, error) {
	path := Path()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from path. A missing file yields the defaults.
// Fields the file leaves out keep their default values.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return DefaultConfig(), errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return DefaultConfig(), errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	cfg.Cache.Dir = expandHome(cfg.Cache.Dir)

	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// SaveTo writes cfg to path, creating parent directories.
func SaveTo(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "create config directory")
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "write %s", path)
	}
	return nil
}

// Validate checks every section without applying it.
func (c Config) Validate() error {
	if err := errors.ValidateCanvas(float64(c.Canvas.Width), float64(c.Canvas.Height)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[canvas]")
	}
	if c.Playback.SpeedMs < playback.MinSpeedMs || c.Playback.SpeedMs > playback.MaxSpeedMs {
		return errors.New(errors.ErrCodeInvalidConfig, "[playback] speed_ms %d outside %d..%d",
			c.Playback.SpeedMs, playback.MinSpeedMs, playback.MaxSpeedMs)
	}
	if c.Playback.Animate < 0 || c.Playback.Animate > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "[playback] animate %.2f outside 0..1", c.Playback.Animate)
	}
	if _, err := viz.ParseGraphLayout(c.Layout.Graph); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[layout]")
	}
	if c.Layout.Iterations < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "[layout] iterations must not be negative")
	}
	_, err := c.BuildTheme()
	return err
}

// BuildTheme applies the [theme] section to the default theme. States are
// applied in name order so the result does not depend on map iteration.
func (c Config) BuildTheme() (*scene.Theme, error) {
	th := scene.DefaultTheme()
	if c.Theme.Background != "" {
		if err := th.SetBackground(c.Theme.Background); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "[theme] background")
		}
	}
	if c.Theme.Foreground != "" {
		fg, err := scene.ParseHex(c.Theme.Foreground)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "[theme] foreground")
		}
		th.Foreground = fg
	}
	names := make([]string, 0, len(c.Theme.States))
	for name := range c.Theme.States {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := th.Override(scene.State(name), c.Theme.States[name]); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "[theme.states] %s", name)
		}
	}
	return th, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
