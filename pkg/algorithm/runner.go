package algorithm

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stepviz/pkg/input"
	"github.com/matzehuels/stepviz/pkg/step"
)

// Runner resolves algorithm ids against a registry and computes step logs.
// It holds no per-run state and may be shared.
type Runner struct {
	registry *Registry
	logger   *log.Logger
}

// NewRunner creates a runner over registry. A nil logger discards output.
func NewRunner(registry *Registry, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{registry: registry, logger: logger}
}

// Registry returns the registry the runner resolves against.
func (r *Runner) Registry() *Registry { return r.registry }

// Run computes the full step log of algorithm id over data.
//
// Errors carry ALGORITHM_NOT_FOUND for unknown ids, FAMILY_MISMATCH when data
// belongs to another family, and INVALID_INPUT when data fails validation.
// On error no log is produced.
func (r *Runner) Run(id string, data input.Data) (step.Log, error) {
	alg, err := r.registry.Get(id)
	if err != nil {
		return step.Log{}, err
	}
	if data == nil {
		return step.Log{}, mismatch(alg.Family, nil)
	}
	if data.Family() != alg.Family {
		return step.Log{}, mismatch(alg.Family, data)
	}
	if err := data.Validate(); err != nil {
		return step.Log{}, err
	}

	start := time.Now()
	steps, err := alg.Run(data)
	if err != nil {
		return step.Log{}, err
	}
	r.logger.Debug("algorithm run complete", "algorithm", id, "steps", steps.Len(), "duration", time.Since(start))
	return steps, nil
}
