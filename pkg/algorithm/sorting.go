package algorithm

import (
	"fmt"
	"slices"

	"github.com/matzehuels/stepviz/pkg/step"
)

// =============================================================================
// Bubble sort
// =============================================================================

// BubbleSort records a bubble sort of values. Every step carries a snapshot
// of the array at that moment; values itself is not modified.
//
// Each pass compares adjacent pairs, swaps inversions, and ends with a
// pass_complete step for the slot it settled. A pass without swaps proves the
// whole remaining prefix sorted: its pass_complete lists every index of that
// prefix and the run stops there.
func BubbleSort(values []int) step.Log {
	arr := slices.Clone(values)
	n := len(arr)
	var rec step.Recorder

	for i := 0; i < n; i++ {
		swapped := false
		for j := 0; j < n-i-1; j++ {
			rec.Add(step.Compare{
				Info:     info("Comparing elements at indices %d and %d", j, j+1),
				I:        j,
				J:        j + 1,
				Snapshot: slices.Clone(arr),
			})
			if arr[j] > arr[j+1] {
				arr[j], arr[j+1] = arr[j+1], arr[j]
				swapped = true
				rec.Add(step.Swap{
					Info:     info("Swapped elements at indices %d and %d", j, j+1),
					I:        j,
					J:        j + 1,
					Snapshot: slices.Clone(arr),
				})
			}
		}

		settled := []int{n - i - 1}
		msg := info("Pass %d complete. Element at index %d is in final position", i+1, n-i-1)
		if !swapped {
			settled = descending(n - i - 1)
			msg = info("Pass %d made no swaps. Indices 0 to %d are sorted", i+1, n-i-1)
		}
		rec.Add(step.PassComplete{Info: msg, Indices: settled, Snapshot: slices.Clone(arr)})

		if !swapped {
			break
		}
	}
	return rec.Log()
}

// =============================================================================
// Selection sort
// =============================================================================

// SelectionSort records a selection sort of values. Each pass selects the
// running minimum of the unsorted suffix, swaps it into place, and marks that
// slot complete.
func SelectionSort(values []int) step.Log {
	arr := slices.Clone(values)
	n := len(arr)
	var rec step.Recorder

	for i := 0; i < n; i++ {
		minIdx := i
		rec.Add(step.Select{
			Info:     info("Assume index %d holds the minimum", i),
			Index:    i,
			Snapshot: slices.Clone(arr),
		})
		for j := i + 1; j < n; j++ {
			rec.Add(step.Compare{
				Info:     info("Comparing minimum at index %d with index %d", minIdx, j),
				I:        minIdx,
				J:        j,
				Snapshot: slices.Clone(arr),
			})
			if arr[j] < arr[minIdx] {
				minIdx = j
				rec.Add(step.Select{
					Info:     info("New minimum %d at index %d", arr[j], j),
					Index:    j,
					Snapshot: slices.Clone(arr),
				})
			}
		}
		if minIdx != i {
			arr[i], arr[minIdx] = arr[minIdx], arr[i]
			rec.Add(step.Swap{
				Info:     info("Swapped elements at indices %d and %d", i, minIdx),
				I:        i,
				J:        minIdx,
				Snapshot: slices.Clone(arr),
			})
		}
		rec.Add(step.PassComplete{
			Info:     info("Pass %d complete. Element at index %d is in final position", i+1, i),
			Indices:  []int{i},
			Snapshot: slices.Clone(arr),
		})
	}
	return rec.Log()
}

// =============================================================================
// Insertion sort
// =============================================================================

// InsertionSort records an insertion sort of values. Each new value is
// swapped leftwards until the prefix is ordered; the run ends with a single
// sorted step since no slot is final before the last insertion.
func InsertionSort(values []int) step.Log {
	arr := slices.Clone(values)
	var rec step.Recorder

	for i := 1; i < len(arr); i++ {
		for j := i; j > 0; j-- {
			rec.Add(step.Compare{
				Info:     info("Comparing elements at indices %d and %d", j-1, j),
				I:        j - 1,
				J:        j,
				Snapshot: slices.Clone(arr),
			})
			if arr[j-1] <= arr[j] {
				break
			}
			arr[j-1], arr[j] = arr[j], arr[j-1]
			rec.Add(step.Swap{
				Info:     info("Swapped elements at indices %d and %d", j-1, j),
				I:        j - 1,
				J:        j,
				Snapshot: slices.Clone(arr),
			})
		}
	}
	rec.Add(step.Sorted{Info: info("Array sorted"), Snapshot: slices.Clone(arr)})
	return rec.Log()
}

// descending returns hi, hi-1, ..., 0.
func descending(hi int) []int {
	out := make([]int, 0, hi+1)
	for i := hi; i >= 0; i-- {
		out = append(out, i)
	}
	return out
}

func info(format string, args ...any) step.Info {
	return step.Info{Text: fmt.Sprintf(format, args...)}
}
