// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package searcher implements binary search instrumented with a step trace.
package searcher

// NotFound is the Result.Index of an unsuccessful search.
const NotFound = -1

// BinarySearch looks for target in values, which must be sorted ascending.
//
// # Description
//
// Halves the closed interval [low, high] until the middle element equals
// target or the interval is empty. Each iteration records a probe step;
// a miss is followed by a step naming the half that remains.
//
// # Inputs
//
//   - values: Sequence sorted ascending. Not validated and not modified.
//   - target: Value to find.
//
// # Outputs
//
//   - *Result: Index of a matching element (or NotFound) and the trace.
//
// # Limitations
//
//   - With duplicates, the index is whichever match the halving reaches
//     first, not necessarily the first or last occurrence.
//   - Unsorted input gives an unspecified answer but always terminates.
func BinarySearch(values []int, target int) *Result {
	res := &Result{Index: NotFound, Target: target}

	low, high := 0, len(values)-1
	iteration := 0

	for low <= high {
		mid := low + (high-low)/2
		iteration++

		window := make([]int, high-low+1)
		copy(window, values[low:high+1])

		res.record(Step{
			Kind:      StepProbe,
			Iteration: iteration,
			Low:       low,
			High:      high,
			Mid:       mid,
			MidValue:  values[mid],
			Target:    target,
			Window:    window,
		})

		switch {
		case values[mid] == target:
			res.Index = mid
			res.Found = true
			return res
		case values[mid] < target:
			res.record(Step{
				Kind: StepRight, Iteration: iteration,
				Low: low, High: high, Mid: mid, MidValue: values[mid], Target: target,
			})
			low = mid + 1
		default:
			res.record(Step{
				Kind: StepLeft, Iteration: iteration,
				Low: low, High: high, Mid: mid, MidValue: values[mid], Target: target,
			})
			high = mid - 1
		}
	}

	return res
}
