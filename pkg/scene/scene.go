package scene

import (
	"slices"
	"strconv"

	"github.com/matzehuels/stepviz/pkg/errors"
)

// Scene owns a set of elements keyed by id, kept in insertion order.
//
// Setters return false for unknown ids and never panic, so steps that name
// stale elements degrade to no-ops. A Scene is not safe for concurrent use.
type Scene struct {
	theme    *Theme
	elements map[string]*Element
	order    []string
}

// New returns an empty scene colored by theme. A nil theme selects
// [DefaultTheme].
func New(theme *Theme) *Scene {
	if theme == nil {
		theme = DefaultTheme()
	}
	return &Scene{theme: theme, elements: make(map[string]*Element)}
}

// Theme returns the scene's theme.
func (s *Scene) Theme() *Theme { return s.theme }

// Len returns the number of elements.
func (s *Scene) Len() int { return len(s.order) }

// Add registers e. Duplicate ids are an error, as are edges whose endpoints
// are not already in the scene. An empty state is normalized to the rest
// state.
func (s *Scene) Add(e Element) (*Element, error) {
	if e.ID == "" {
		return nil, errors.New(errors.ErrCodeInvalidState, "element without id")
	}
	if _, dup := s.elements[e.ID]; dup {
		return nil, errors.New(errors.ErrCodeInvalidState, "duplicate element %q", e.ID)
	}
	if e.Kind == KindEdge {
		for _, end := range []string{e.From, e.To} {
			if n, ok := s.elements[end]; !ok || n.Kind == KindEdge {
				return nil, errors.New(errors.ErrCodeInvalidState, "edge %q: unknown endpoint %q", e.ID, end)
			}
		}
	}
	if e.Rest == "" {
		e.Rest = StateDefault
	}
	if e.State == "" || !s.theme.Has(e.Kind, e.State) {
		e.State = e.Rest
	}
	el := &e
	s.elements[e.ID] = el
	s.order = append(s.order, e.ID)
	return el, nil
}

// Get returns the element with id. The pointer stays valid until the element
// is removed; callers outside an adapter should treat it as read-only.
func (s *Scene) Get(id string) (*Element, bool) {
	e, ok := s.elements[id]
	return e, ok
}

// Has reports whether id names an element.
func (s *Scene) Has(id string) bool {
	_, ok := s.elements[id]
	return ok
}

// SetState changes the state of id. Unknown ids and states the element's
// palette does not define are ignored and report false.
func (s *Scene) SetState(id string, state State) bool {
	e, ok := s.elements[id]
	if !ok || !s.theme.Has(e.Kind, state) {
		return false
	}
	e.State = state
	return true
}

// SetRest changes the rest state of id and moves it there.
func (s *Scene) SetRest(id string, state State) bool {
	e, ok := s.elements[id]
	if !ok || !s.theme.Has(e.Kind, state) {
		return false
	}
	e.Rest, e.State = state, state
	return true
}

// SetPosition moves a bar or cell by its top-left corner.
func (s *Scene) SetPosition(id string, x, y float64) bool {
	return s.update(id, func(e *Element) { e.X, e.Y = x, y })
}

// SetCenter moves an element so its center lies at (x, y).
func (s *Scene) SetCenter(id string, x, y float64) bool {
	return s.update(id, func(e *Element) {
		if e.Kind == KindNode {
			e.X, e.Y = x, y
			return
		}
		e.X, e.Y = x-e.W/2, y-e.H/2
	})
}

// SetSize sets the width and height of a bar or cell.
func (s *Scene) SetSize(id string, w, h float64) bool {
	return s.update(id, func(e *Element) { e.W, e.H = w, h })
}

// SetRadius sets a node's radius.
func (s *Scene) SetRadius(id string, r float64) bool {
	return s.update(id, func(e *Element) { e.R = r })
}

// SetLabel sets the displayed label.
func (s *Scene) SetLabel(id, label string) bool {
	return s.update(id, func(e *Element) { e.Label = label })
}

// SetValue sets the displayed label to v.
func (s *Scene) SetValue(id string, v int) bool {
	return s.SetLabel(id, strconv.Itoa(v))
}

// SetOpacity sets opacity, clamped to [0, 1].
func (s *Scene) SetOpacity(id string, opacity float64) bool {
	return s.update(id, func(e *Element) { e.Opacity = max(0, min(1, opacity)) })
}

// SetVisible shows or hides id.
func (s *Scene) SetVisible(id string, visible bool) bool {
	return s.update(id, func(e *Element) { e.Visible = visible })
}

// SetGeometry applies g to id in one call.
func (s *Scene) SetGeometry(id string, g Geometry) bool {
	return s.update(id, func(e *Element) {
		e.X, e.Y, e.W, e.H, e.R = g.X, g.Y, g.W, g.H, g.R
		e.Opacity = max(0, min(1, g.Opacity))
	})
}

func (s *Scene) update(id string, fn func(*Element)) bool {
	e, ok := s.elements[id]
	if !ok {
		return false
	}
	fn(e)
	return true
}

// Remove deletes id. Removing a node first removes every edge incident to it.
func (s *Scene) Remove(id string) bool {
	e, ok := s.elements[id]
	if !ok {
		return false
	}
	if e.Kind != KindEdge {
		for _, edge := range s.incident(id) {
			delete(s.elements, edge)
		}
		s.order = slices.DeleteFunc(s.order, func(o string) bool { return !s.Has(o) })
	}
	delete(s.elements, id)
	s.order = slices.DeleteFunc(s.order, func(o string) bool { return o == id })
	return true
}

func (s *Scene) incident(id string) []string {
	var out []string
	for _, o := range s.order {
		if e := s.elements[o]; e.Kind == KindEdge && (e.From == id || e.To == id) {
			out = append(out, o)
		}
	}
	return out
}

// Clear removes every element, edges before anything else.
func (s *Scene) Clear() {
	for _, id := range s.order {
		if s.elements[id].Kind == KindEdge {
			delete(s.elements, id)
		}
	}
	clear(s.elements)
	s.order = s.order[:0]
}

// ResetStates returns every element to its rest state.
func (s *Scene) ResetStates() {
	for _, e := range s.elements {
		e.State = e.Rest
	}
}

// Elements returns copies of every element in insertion order.
func (s *Scene) Elements() []Element {
	out := make([]Element, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.elements[id])
	}
	return out
}

// IDs returns the element ids of kind in insertion order.
func (s *Scene) IDs(kind Kind) []string {
	var out []string
	for _, id := range s.order {
		if s.elements[id].Kind == kind {
			out = append(out, id)
		}
	}
	return out
}

// States returns the state of every element, keyed by id.
func (s *Scene) States() map[string]State {
	out := make(map[string]State, len(s.elements))
	for id, e := range s.elements {
		out[id] = e.State
	}
	return out
}

// EdgeBetween returns the edge joining a and b in either orientation.
func (s *Scene) EdgeBetween(a, b string) (*Element, bool) {
	for _, id := range []string{EdgeID(a, b, true), EdgeID(b, a, true), EdgeID(a, b, false)} {
		if e, ok := s.elements[id]; ok && e.Kind == KindEdge {
			return e, true
		}
	}
	return nil, false
}

// ElementAt returns the first visible non-edge element, by insertion order,
// containing (x, y).
func (s *Scene) ElementAt(x, y float64) (*Element, bool) {
	for _, id := range s.order {
		e := s.elements[id]
		if e.Visible && e.Contains(x, y) {
			return e, true
		}
	}
	return nil, false
}
