package viz

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/stepviz/pkg/errors"
	"github.com/matzehuels/stepviz/pkg/input"
	"github.com/matzehuels/stepviz/pkg/layout"
	"github.com/matzehuels/stepviz/pkg/scene"
	"github.com/matzehuels/stepviz/pkg/step"
)

// Array draws an integer array as bars.
type Array struct {
	base
	initial []int
	values  []int
	opts    layout.LinearOptions
}

// NewArray returns an empty array adapter.
func NewArray(opts ...Option) *Array {
	return &Array{base: newBase(opts), opts: layout.DefaultLinearOptions()}
}

// Family implements Adapter.
func (a *Array) Family() input.Family { return input.FamilyArray }

// Load implements Adapter.
func (a *Array) Load(data input.Data) error {
	arr, ok := data.(input.Array)
	if !ok {
		return errors.New(errors.ErrCodeFamilyMismatch, "array view cannot load %T", data)
	}
	if err := arr.Validate(); err != nil {
		return err
	}

	a.scene.Clear()
	a.initial = slices.Clone(arr.Values)
	a.values = slices.Clone(arr.Values)
	for i, v := range a.values {
		if _, err := a.scene.Add(scene.Bar(step.IndexID(i), v)); err != nil {
			return err
		}
	}
	a.resetText()
	a.relayout()
	return nil
}

// Layout implements Adapter.
func (a *Array) Layout(w, h float64) {
	a.resize(w, h)
	a.relayout()
}

func (a *Array) relayout() {
	for i, r := range layout.Linear(a.values, a.frame, a.opts) {
		id := step.IndexID(i)
		a.scene.SetPosition(id, r.X, r.Y)
		a.scene.SetSize(id, r.W, r.H)
	}
}

// Apply implements Adapter.
func (a *Array) Apply(s step.Step) {
	if !a.known(s) {
		return
	}
	if snap := step.Snapshot(s); snap != nil {
		a.sync(snap)
	}
	switch s := s.(type) {
	case step.Compare:
		a.clearTransient()
		a.mark(scene.StateComparing, s.I, s.J)
	case step.Swap:
		a.clearTransient()
		a.mark(scene.StateSwapping, s.I, s.J)
	case step.Select:
		a.clearTransient()
		a.mark(scene.StateSelected, s.Index)
	case step.PassComplete:
		a.clearTransient()
		a.mark(scene.StateCompleted, s.Indices...)
	case step.Sorted:
		for i := range a.values {
			a.scene.SetState(step.IndexID(i), scene.StateCompleted)
		}
	case step.Reset:
		a.Reset()
		return
	default:
		return
	}
	a.caption = s.Message()
}

// sync copies snapshot values onto the bars. Snapshots of another length
// belong to a different input and are ignored.
func (a *Array) sync(snap []int) {
	if len(snap) != len(a.values) || slices.Equal(snap, a.values) {
		return
	}
	copy(a.values, snap)
	for i, v := range a.values {
		a.scene.SetValue(step.IndexID(i), v)
	}
	a.relayout()
	a.aux = formatArray(a.values)
}

func (a *Array) clearTransient() {
	for i := range a.values {
		id := step.IndexID(i)
		if e, ok := a.scene.Get(id); ok && e.State != scene.StateCompleted {
			a.scene.SetState(id, scene.StateDefault)
		}
	}
}

func (a *Array) mark(state scene.State, idx ...int) {
	for _, i := range idx {
		a.scene.SetState(step.IndexID(i), state)
	}
}

// Reset implements Adapter. Bar values return to the loaded input.
func (a *Array) Reset() {
	a.scene.ResetStates()
	a.resetText()
	if !slices.Equal(a.values, a.initial) {
		copy(a.values, a.initial)
		for i, v := range a.values {
			a.scene.SetValue(step.IndexID(i), v)
		}
		a.relayout()
	}
}

// Values returns the currently displayed values.
func (a *Array) Values() []int { return slices.Clone(a.values) }

// Decorations implements Adapter.
func (a *Array) Decorations() scene.Decorations {
	return a.decorations([]scene.LegendEntry{
		{Label: "comparing", Kind: scene.KindBar, State: scene.StateComparing},
		{Label: "swapping", Kind: scene.KindBar, State: scene.StateSwapping},
		{Label: "selected", Kind: scene.KindBar, State: scene.StateSelected},
		{Label: "sorted", Kind: scene.KindBar, State: scene.StateCompleted},
	})
}

func formatArray(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return "Array: [" + strings.Join(parts, ", ") + "]"
}
