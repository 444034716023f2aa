package sink

import (
	"github.com/goccy/go-json"

	"github.com/matzehuels/stepviz/pkg/scene"
	"github.com/matzehuels/stepviz/pkg/step"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	record *step.Record
	hidden bool
}

// WithStep records the step that produced the frame.
func WithStep(r step.Record) JSONOption { return func(j *jsonRenderer) { j.record = &r } }

// WithHidden includes invisible elements.
func WithHidden() JSONOption { return func(j *jsonRenderer) { j.hidden = true } }

type jsonFrame struct {
	Title    string        `json:"title,omitempty"`
	Caption  string        `json:"caption,omitempty"`
	Aux      string        `json:"aux,omitempty"`
	Step     *step.Record  `json:"step,omitempty"`
	Elements []jsonElement `json:"elements"`
}

type jsonElement struct {
	ID       string  `json:"id"`
	Kind     string  `json:"kind"`
	State    string  `json:"state"`
	Label    string  `json:"label,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	W        float64 `json:"w,omitempty"`
	H        float64 `json:"h,omitempty"`
	R        float64 `json:"r,omitempty"`
	From     string  `json:"from,omitempty"`
	To       string  `json:"to,omitempty"`
	Directed bool    `json:"directed,omitempty"`
}

// RenderJSON exports the scene's elements and decorations for external
// tools. Element geometry is the stored geometry; tweens are not applied.
func RenderJSON(s *scene.Scene, d scene.Decorations, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonFrame{
		Title:    d.Title,
		Caption:  d.Caption,
		Aux:      d.Aux,
		Step:     r.record,
		Elements: []jsonElement{},
	}
	for _, e := range s.Elements() {
		if !e.Visible && !r.hidden {
			continue
		}
		out.Elements = append(out.Elements, jsonElement{
			ID:       e.ID,
			Kind:     e.Kind.String(),
			State:    string(e.State),
			Label:    e.Label,
			X:        e.X,
			Y:        e.Y,
			W:        e.W,
			H:        e.H,
			R:        e.R,
			From:     e.From,
			To:       e.To,
			Directed: e.Directed,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}
