package algorithm

import (
	"testing"

	"github.com/matzehuels/stepviz/pkg/errors"
	"github.com/matzehuels/stepviz/pkg/input"
	"github.com/matzehuels/stepviz/pkg/step"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r.Len() != 10 {
		t.Errorf("Len = %d, want 10", r.Len())
	}

	counts := map[input.Family]int{}
	for _, a := range r.List() {
		counts[a.Family]++
		if a.Name == "" || a.Summary == "" || a.Description == "" {
			t.Errorf("%s is missing metadata", a.ID)
		}
	}
	want := map[input.Family]int{
		input.FamilyArray: 3,
		input.FamilyGraph: 2,
		input.FamilyGrid:  1,
		input.FamilyTree:  4,
	}
	for f, n := range want {
		if counts[f] != n {
			t.Errorf("%s algorithms = %d, want %d", f, counts[f], n)
		}
		if got := len(r.ByFamily(f)); got != n {
			t.Errorf("ByFamily(%s) = %d, want %d", f, got, n)
		}
	}
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := NewRegistry(), New()
	if err := b.Register(Algorithm{ID: "noop", Family: input.FamilyArray, Run: noop}); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Get("noop"); err == nil {
		t.Error("registration leaked across registries")
	}
	if got, _ := b.Get("noop"); got.Name != "noop" {
		t.Errorf("default Name = %q, want id", got.Name)
	}
}

func TestRegisterErrors(t *testing.T) {
	r := New()
	if err := r.Register(Algorithm{ID: "x", Family: input.FamilyArray, Run: noop}); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		alg  Algorithm
	}{
		{"Duplicate", Algorithm{ID: "x", Family: input.FamilyArray, Run: noop}},
		{"BadID", Algorithm{ID: "Bad ID", Family: input.FamilyArray, Run: noop}},
		{"NoRun", Algorithm{ID: "y", Family: input.FamilyArray}},
		{"BadFamily", Algorithm{ID: "z", Family: "matrix", Run: noop}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := r.Register(tt.alg); err == nil {
				t.Error("Register succeeded")
			}
		})
	}
}

func TestRunnerErrors(t *testing.T) {
	runner := NewRunner(NewRegistry(), nil)
	tests := []struct {
		name string
		id   string
		data input.Data
		code errors.Code
	}{
		{"UnknownAlgorithm", "quicksort", input.Array{Values: []int{1}}, errors.ErrCodeAlgorithmNotFound},
		{"FamilyMismatch", "bfs", input.Array{Values: []int{1}}, errors.ErrCodeFamilyMismatch},
		{"InvalidInput", "bubble", input.Array{}, errors.ErrCodeInvalidInput},
		{"NilInput", "astar", nil, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := runner.Run(tt.id, tt.data)
			if !errors.Is(err, tt.code) {
				t.Fatalf("err = %v, want %s", err, tt.code)
			}
			if !log.Empty() {
				t.Errorf("log has %d steps alongside error", log.Len())
			}
		})
	}
}

func TestRunnerRunsEverySample(t *testing.T) {
	runner := NewRunner(NewRegistry(), nil)
	for _, a := range runner.Registry().List() {
		t.Run(a.ID, func(t *testing.T) {
			log, err := runner.Run(a.ID, input.Sample(a.Family))
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if log.Empty() {
				t.Fatal("empty log")
			}
		})
	}
}

func noop(input.Data) (step.Log, error) { return step.Log{}, nil }
