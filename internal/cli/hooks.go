package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stepviz/pkg/observability"
)

// logHooks reports pipeline and cache events to the CLI logger at debug
// level, so --verbose shows where a render spends its time.
type logHooks struct {
	logger *log.Logger
}

// RegisterHooks installs the CLI's observability hooks. Call it once from
// main before executing a command.
func (c *CLI) RegisterHooks() {
	h := logHooks{logger: c.Logger}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
}

func (h logHooks) OnRunStart(_ context.Context, algorithm string) {
	h.logger.Debug("run started", "algorithm", algorithm)
}

func (h logHooks) OnRunComplete(_ context.Context, algorithm string, steps int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("run failed", "algorithm", algorithm, "error", err)
		return
	}
	h.logger.Debug("run complete", "algorithm", algorithm, "steps", steps, "duration", d)
}

func (h logHooks) OnLayoutStart(_ context.Context, family string, elements int) {
	h.logger.Debug("layout started", "family", family, "elements", elements)
}

func (h logHooks) OnLayoutComplete(_ context.Context, family string, d time.Duration, err error) {
	h.logger.Debug("layout complete", "family", family, "duration", d, "error", err)
}

func (h logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render started", "formats", formats)
}

func (h logHooks) OnRenderComplete(_ context.Context, formats []string, frames int, d time.Duration, err error) {
	h.logger.Debug("render complete", "formats", formats, "frames", frames, "duration", d, "error", err)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
