package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stepviz/pkg/cache"
	"github.com/matzehuels/stepviz/pkg/pipeline"
	"github.com/matzehuels/stepviz/pkg/step"
)

// newTestCLI returns a CLI that reads no user config and caches nothing
// outside the test's temp directories.
func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	return New(io.Discard, log.InfoLevel)
}

func execute(t *testing.T, c *CLI, args ...string) (string, error) {
	t.Helper()
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCacheDir(t *testing.T) {
	c := newTestCLI(t)
	custom := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", custom)

	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	expected := filepath.Join(custom, appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirFromConfig(t *testing.T) {
	c := newTestCLI(t)
	c.Config.Cache.Dir = "/tmp/stepviz-frames"

	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/tmp/stepviz-frames" {
		t.Errorf("cacheDir() = %q, want config dir", dir)
	}
}

func TestNewCache(t *testing.T) {
	blocked := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocked, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		noCache bool
		cfg     func(c *CLI)
		check   func(cache.Cache) bool
	}{
		{"file", false, func(*CLI) {}, func(s cache.Cache) bool { _, ok := s.(*cache.FileCache); return ok }},
		{"no-cache flag", true, func(*CLI) {}, func(s cache.Cache) bool { _, ok := s.(cache.NullCache); return ok }},
		{"disabled", false, func(c *CLI) { c.Config.Cache.Disabled = true }, func(s cache.Cache) bool { _, ok := s.(cache.NullCache); return ok }},
		{"unusable dir", false, func(c *CLI) { c.Config.Cache.Dir = filepath.Join(blocked, "sub") }, func(s cache.Cache) bool { _, ok := s.(*cache.MemoryCache); return ok }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCLI(t)
			tt.cfg(c)
			store, err := c.newCache(tt.noCache)
			if err != nil {
				t.Fatal(err)
			}
			defer store.Close()
			if !tt.check(store) {
				t.Errorf("newCache() = %T", store)
			}
		})
	}
}

func TestNewCacheMemoryFallbackHoldsFrames(t *testing.T) {
	blocked := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocked, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	c := newTestCLI(t)
	c.Config.Cache.Dir = filepath.Join(blocked, "sub")

	store, err := c.newCache(false)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()
	frame := bytes.Repeat([]byte("<rect/>"), 4096/7+1)
	for i := range 300 {
		key := fmt.Sprintf("frame:%d", i)
		if err := store.Set(ctx, key, frame, cache.TTLFrame); err != nil {
			t.Fatalf("Set(%s): %v", key, err)
		}
	}
	for _, key := range []string{"frame:0", "frame:299"} {
		got, ok, err := store.Get(ctx, key)
		if err != nil || !ok {
			t.Fatalf("Get(%s) = ok %v, err %v; want a hit", key, ok, err)
		}
		if !bytes.Equal(got, frame) {
			t.Errorf("Get(%s) returned %d bytes, want %d", key, len(got), len(frame))
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to png", "", []string{"png"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,gif,json", []string{"svg", "gif", "json"}},
		{"spaces and case", " PNG , Txt ", []string{"png", "txt"}},
		{"empty entries dropped", "svg,,gif", []string{"svg", "gif"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestAlgorithmTableListsEveryAlgorithm(t *testing.T) {
	c := newTestCLI(t)
	out := algorithmTable(c.Registry.List())
	for _, a := range c.Registry.List() {
		if !strings.Contains(out, a.ID) {
			t.Errorf("table is missing %q", a.ID)
		}
	}
}

func TestRenderOptionsFlagsOverrideConfig(t *testing.T) {
	c := newTestCLI(t)
	c.Config.Canvas.Width = 640
	c.Config.Canvas.Height = 480
	c.Config.Layout.Graph = "circular"

	var opts renderOpts
	cmd := &cobra.Command{Use: "render"}
	cmd.Flags().IntVar(&opts.width, "width", 0, "")
	cmd.Flags().IntVar(&opts.height, "height", 0, "")
	cmd.Flags().StringVar(&opts.layout, "layout", "", "")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "")
	cmd.Flags().IntVar(&opts.iterations, "iterations", 0, "")
	if err := cmd.Flags().Parse([]string{"--width", "800"}); err != nil {
		t.Fatal(err)
	}

	popts, err := c.renderOptions(cmd, "bfs", &opts)
	if err != nil {
		t.Fatalf("renderOptions() error: %v", err)
	}
	if popts.Width != 800 {
		t.Errorf("Width = %d, want flag value 800", popts.Width)
	}
	if popts.Height != 480 {
		t.Errorf("Height = %d, want config value 480", popts.Height)
	}
	if popts.GraphLayout != "circular" {
		t.Errorf("GraphLayout = %q, want config value", popts.GraphLayout)
	}
	if !slices.Equal(popts.Formats, []string{pipeline.FormatPNG}) {
		t.Errorf("Formats = %v, want default png", popts.Formats)
	}
}

func TestRunCommandText(t *testing.T) {
	c := newTestCLI(t)
	out, err := execute(t, c, "run", "bubble", "--values", "3,1,2")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) == 0 {
		t.Fatal("run printed nothing")
	}
	last := lines[len(lines)-1]
	if !strings.Contains(last, string(step.KindPassComplete)) || !strings.Contains(last, "[1 2 3]") {
		t.Errorf("last line = %q, want the final pass_complete with the sorted snapshot", last)
	}
}

func TestRunCommandJSON(t *testing.T) {
	c := newTestCLI(t)
	out, err := execute(t, c, "run", "inorder", "--json")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	var records []step.Record
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(records) == 0 {
		t.Fatal("no records")
	}
	for i, r := range records {
		if r.Index != i {
			t.Errorf("records[%d].Index = %d", i, r.Index)
		}
	}
}

func TestRunCommandSummary(t *testing.T) {
	c := newTestCLI(t)
	out, err := execute(t, c, "run", "bfs", "--summary")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if !strings.Contains(out, "total") {
		t.Errorf("summary = %q, want a total line", out)
	}
}

func TestRunCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown algorithm", []string{"run", "quicksort"}},
		{"values for a graph", []string{"run", "bfs", "--values", "1,2"}},
		{"no numbers", []string{"run", "bubble", "--values", "a,b"}},
		{"missing file", []string{"run", "dfs", "--input", "/nonexistent/graph.json"}},
		{"two sources", []string{"run", "bubble", "--values", "1", "--data", "[1]"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, newTestCLI(t), tt.args...); err == nil {
				t.Errorf("%v: expected error", tt.args)
			}
		})
	}
}

func TestRenderCommandWritesFrames(t *testing.T) {
	c := newTestCLI(t)
	runOut, err := execute(t, c, "run", "bubble", "--values", "3,1,2")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	steps := len(strings.Split(strings.TrimSpace(runOut), "\n"))

	dir := t.TempDir()
	_, err = execute(t, c, "render", "bubble", "--values", "3,1,2", "--format", "json,gif", "-o", dir, "--width", "320", "--height", "200")
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	jsonFrames, _ := filepath.Glob(filepath.Join(dir, "bubble-*.json"))
	if len(jsonFrames) != steps+1 {
		t.Errorf("got %d json frames, want %d", len(jsonFrames), steps+1)
	}
	if _, err := os.Stat(filepath.Join(dir, "bubble.gif")); err != nil {
		t.Errorf("gif missing: %v", err)
	}
}

func TestRenderCommandRejectsDOTForArrays(t *testing.T) {
	c := newTestCLI(t)
	_, err := execute(t, c, "render", "bubble", "--format", "dot", "-o", t.TempDir(), "--no-cache")
	if err == nil {
		t.Fatal("expected an error for dot output of an array run")
	}
}

func TestCachePathCommand(t *testing.T) {
	c := newTestCLI(t)
	custom := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", custom)

	out, err := execute(t, c, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if strings.TrimSpace(out) != filepath.Join(custom, appName) {
		t.Errorf("cache path = %q", out)
	}
}

func TestConfigFlag(t *testing.T) {
	c := newTestCLI(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[canvas]\nwidth = 700\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, c, "--config", path, "list"); err != nil {
		t.Fatalf("list error: %v", err)
	}
	if c.Config.Canvas.Width != 700 {
		t.Errorf("Canvas.Width = %d, want 700 from --config", c.Config.Canvas.Width)
	}
}
