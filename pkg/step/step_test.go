package step

import (
	"slices"
	"testing"
)

func TestTargets(t *testing.T) {
	tests := []struct {
		name string
		step Step
		kind Kind
		want []string
	}{
		{"Compare", Compare{I: 0, J: 1}, KindCompare, []string{"0", "1"}},
		{"Swap", Swap{I: 2, J: 3}, KindSwap, []string{"2", "3"}},
		{"Select", Select{Index: 4}, KindSelect, []string{"4"}},
		{"PassComplete", PassComplete{Indices: []int{3, 2}}, KindPassComplete, []string{"3", "2"}},
		{"Sorted", Sorted{Snapshot: []int{1, 2, 3}}, KindSorted, []string{"0", "1", "2"}},
		{"VisitRoot", Visit{ID: "A"}, KindVisit, []string{"A"}},
		{"VisitFrom", Visit{ID: "B", From: "A"}, KindVisit, []string{"A", "B"}},
		{"NotFoundNoTarget", NotFound{}, KindNotFound, nil},
		{"Explore", Explore{From: "r", To: "r.0"}, KindExplore, []string{"r", "r.0"}},
		{"Reset", Reset{}, KindReset, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.step.Kind(); got != tt.kind {
				t.Errorf("Kind() = %s, want %s", got, tt.kind)
			}
			if got := tt.step.Targets(); !slices.Equal(got, tt.want) {
				t.Errorf("Targets() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTargetsAreCopies(t *testing.T) {
	f := Frontier{IDs: []string{"A", "B"}}
	f.Targets()[0] = "Z"
	if f.IDs[0] != "A" {
		t.Errorf("Targets aliases step data: %v", f.IDs)
	}
}

func TestRecorder(t *testing.T) {
	var rec Recorder
	rec.Add(Start{Info: Info{Text: "start at A"}, ID: "A"})
	rec.Add(Current{ID: "A"})
	if rec.Len() != 2 {
		t.Fatalf("Len = %d, want 2", rec.Len())
	}

	log := rec.Log()
	if log.Len() != 2 || log.Empty() {
		t.Fatalf("log.Len = %d", log.Len())
	}
	if got := log.At(0).Message(); got != "start at A" {
		t.Errorf("message = %q", got)
	}
	if !slices.Equal(log.Kinds(), []Kind{KindStart, KindCurrent}) {
		t.Errorf("Kinds = %v", log.Kinds())
	}
	if log.Last().Kind() != KindCurrent {
		t.Errorf("Last = %v", log.Last())
	}

	defer func() {
		if recover() == nil {
			t.Error("Add after Log did not panic")
		}
	}()
	rec.Add(Reset{})
}

func TestLogIsReadOnly(t *testing.T) {
	log := NewLog(Reset{}, Reset{})
	steps := log.Steps()
	steps[0] = Start{ID: "X"}
	if log.At(0).Kind() != KindReset {
		t.Error("Steps() exposes the backing slice")
	}

	var empty Log
	if !empty.Empty() || empty.Last() != nil {
		t.Error("zero Log is not empty")
	}

	count := 0
	for i, s := range log.All() {
		if s.Kind() != KindReset || i != count {
			t.Errorf("All() yielded %d %v", i, s)
		}
		count++
	}
	if count != 2 {
		t.Errorf("All() yielded %d steps", count)
	}
}

func TestRecords(t *testing.T) {
	log := NewLog(
		Compare{Info: Info{Text: "compare"}, I: 0, J: 1, Snapshot: []int{5, 3}},
		Found{ID: "E"},
	)
	recs := log.Records()
	if len(recs) != 2 {
		t.Fatalf("len = %d", len(recs))
	}
	if recs[0].Kind != KindCompare || !slices.Equal(recs[0].Snapshot, []int{5, 3}) {
		t.Errorf("record 0 = %+v", recs[0])
	}
	if recs[1].Index != 1 || recs[1].Snapshot != nil || !slices.Equal(recs[1].Targets, []string{"E"}) {
		t.Errorf("record 1 = %+v", recs[1])
	}
}

func TestIDs(t *testing.T) {
	if got := IndexID(12); got != "12" {
		t.Errorf("IndexID = %q", got)
	}
	if got := CellID(2, 4); got != "2,4" {
		t.Errorf("CellID = %q", got)
	}
}
