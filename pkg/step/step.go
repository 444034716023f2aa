package step

import (
	"slices"
	"strconv"
)

// Kind names a step variant. The set is closed: every Kind below has exactly
// one concrete type in this package.
type Kind string

const (
	KindCompare       Kind = "compare"
	KindSwap          Kind = "swap"
	KindSelect        Kind = "select"
	KindPassComplete  Kind = "pass_complete"
	KindSorted        Kind = "sorted"
	KindStart         Kind = "start"
	KindCurrent       Kind = "current"
	KindVisit         Kind = "visit"
	KindFrontier      Kind = "frontier"
	KindFound         Kind = "found"
	KindNotFound      Kind = "not_found"
	KindHighlightPath Kind = "highlight_path"
	KindExplore       Kind = "explore"
	KindBacktrack     Kind = "backtrack"
	KindEnqueue       Kind = "enqueue"
	KindComplete      Kind = "complete"
	KindReset         Kind = "reset"
)

// Step is one immutable, self-describing visual transition.
//
// Implementations are the struct types of this package; the unexported marker
// keeps the set closed so adapters can switch over it.
type Step interface {
	Kind() Kind
	Targets() []string
	Message() string
	isStep()
}

// Info carries the human-readable caption shared by every step.
type Info struct {
	Text string
}

// Message returns the step caption.
func (i Info) Message() string { return i.Text }

func (Info) isStep() {}

// =============================================================================
// Sorting steps
// =============================================================================

// Compare marks the bars at I and J as being compared.
type Compare struct {
	Info
	I, J     int
	Snapshot []int
}

func (Compare) Kind() Kind          { return KindCompare }
func (s Compare) Targets() []string { return indexIDs(s.I, s.J) }

// Swap records that the values at I and J were exchanged. Snapshot holds the
// array after the exchange.
type Swap struct {
	Info
	I, J     int
	Snapshot []int
}

func (Swap) Kind() Kind          { return KindSwap }
func (s Swap) Targets() []string { return indexIDs(s.I, s.J) }

// Select marks Index as the running minimum of a selection pass.
type Select struct {
	Info
	Index    int
	Snapshot []int
}

func (Select) Kind() Kind          { return KindSelect }
func (s Select) Targets() []string { return indexIDs(s.Index) }

// PassComplete pins Indices to their final positions. Indices[0] is the slot
// the pass settled; a swap-free bubble pass lists the whole unsorted prefix.
type PassComplete struct {
	Info
	Indices  []int
	Snapshot []int
}

func (PassComplete) Kind() Kind          { return KindPassComplete }
func (s PassComplete) Targets() []string { return indexIDs(s.Indices...) }

// Sorted marks every bar as completed.
type Sorted struct {
	Info
	Snapshot []int
}

func (Sorted) Kind() Kind          { return KindSorted }
func (s Sorted) Targets() []string { return indexIDs(rangeOf(len(s.Snapshot))...) }

// =============================================================================
// Search steps (graphs, grids and trees)
// =============================================================================

// Start marks the search origin.
type Start struct {
	Info
	ID string
}

func (Start) Kind() Kind          { return KindStart }
func (s Start) Targets() []string { return []string{s.ID} }

// Current marks ID as the element being processed. Any element previously
// marked current is demoted to visited.
type Current struct {
	Info
	ID string
}

func (Current) Kind() Kind          { return KindCurrent }
func (s Current) Targets() []string { return []string{s.ID} }

// Visit marks ID as visited. From names the element it was reached from and
// Order, when set, is the full visit sequence so far.
type Visit struct {
	Info
	ID    string
	From  string
	Order []string
}

func (Visit) Kind() Kind { return KindVisit }
func (s Visit) Targets() []string {
	if s.From == "" {
		return []string{s.ID}
	}
	return []string{s.From, s.ID}
}

// Frontier replaces the discovered-but-unprocessed set (queue, stack or open
// list) with IDs, in processing order.
type Frontier struct {
	Info
	IDs []string
}

func (Frontier) Kind() Kind          { return KindFrontier }
func (s Frontier) Targets() []string { return slices.Clone(s.IDs) }

// Found marks ID as the reached target.
type Found struct {
	Info
	ID string
}

func (Found) Kind() Kind          { return KindFound }
func (s Found) Targets() []string { return []string{s.ID} }

// NotFound reports that the target is unreachable.
type NotFound struct {
	Info
	Target string
}

func (NotFound) Kind() Kind { return KindNotFound }
func (s NotFound) Targets() []string {
	if s.Target == "" {
		return nil
	}
	return []string{s.Target}
}

// HighlightPath marks the start-to-end path.
type HighlightPath struct {
	Info
	Path []string
}

func (HighlightPath) Kind() Kind          { return KindHighlightPath }
func (s HighlightPath) Targets() []string { return slices.Clone(s.Path) }

// Explore records a descent from a tree node into its child.
type Explore struct {
	Info
	From, To string
}

func (Explore) Kind() Kind          { return KindExplore }
func (s Explore) Targets() []string { return []string{s.From, s.To} }

// Backtrack records a return from a child to its parent.
type Backtrack struct {
	Info
	From, To string
}

func (Backtrack) Kind() Kind          { return KindBacktrack }
func (s Backtrack) Targets() []string { return []string{s.From, s.To} }

// Enqueue replaces the level-order queue with IDs.
type Enqueue struct {
	Info
	IDs []string
}

func (Enqueue) Kind() Kind          { return KindEnqueue }
func (s Enqueue) Targets() []string { return slices.Clone(s.IDs) }

// Complete ends a traversal; Order is the final visit sequence.
type Complete struct {
	Info
	Order []string
}

func (Complete) Kind() Kind          { return KindComplete }
func (s Complete) Targets() []string { return slices.Clone(s.Order) }

// Reset returns every element to its rest state.
type Reset struct {
	Info
}

func (Reset) Kind() Kind        { return KindReset }
func (Reset) Targets() []string { return nil }

// =============================================================================
// Identifiers
// =============================================================================

// IndexID is the element identifier of array slot i.
func IndexID(i int) string { return strconv.Itoa(i) }

// CellID is the element identifier of grid cell (row, col).
func CellID(row, col int) string { return strconv.Itoa(row) + "," + strconv.Itoa(col) }

func indexIDs(idx ...int) []string {
	out := make([]string, len(idx))
	for i, v := range idx {
		out[i] = IndexID(v)
	}
	return out
}

func rangeOf(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
