package step

// Record is the flat, inspection-only view of a step: kind, targets, optional
// array snapshot and caption. Logs never round-trip through Records.
type Record struct {
	Index    int      `json:"index"`
	Kind     Kind     `json:"kind"`
	Targets  []string `json:"targets,omitempty"`
	Snapshot []int    `json:"snapshot,omitempty"`
	Message  string   `json:"message"`
}

// ToRecord flattens s, which sits at position index of its log.
func ToRecord(index int, s Step) Record {
	return Record{
		Index:    index,
		Kind:     s.Kind(),
		Targets:  s.Targets(),
		Snapshot: Snapshot(s),
		Message:  s.Message(),
	}
}

// Records flattens every step of the log.
func (l Log) Records() []Record {
	out := make([]Record, len(l.steps))
	for i, s := range l.steps {
		out[i] = ToRecord(i, s)
	}
	return out
}

// Snapshot returns the array snapshot carried by sorting steps, or nil.
func Snapshot(s Step) []int {
	switch s := s.(type) {
	case Compare:
		return s.Snapshot
	case Swap:
		return s.Snapshot
	case Select:
		return s.Snapshot
	case PassComplete:
		return s.Snapshot
	case Sorted:
		return s.Snapshot
	default:
		return nil
	}
}
