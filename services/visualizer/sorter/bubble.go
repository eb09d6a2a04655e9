// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package sorter implements bubble sort instrumented with a step trace.
package sorter

// BubbleSort sorts a copy of values in non-decreasing order.
//
// # Description
//
// Classic adjacent-pair bubble sort. Every comparison is recorded before it
// is made, every swap after it happens, and every pass that swapped at
// least once ends with a pass step. A pass with zero swaps stops the sort
// without recording a pass step.
//
// # Inputs
//
//   - values: The sequence to sort. Not modified.
//
// # Outputs
//
//   - *Result: The sorted sequence and its trace.
//   - error: ErrInvalidInput if values is empty.
//
// # Examples
//
//	res, err := sorter.BubbleSort([]int{5, 3, 8, 4, 2})
//	// res.Sorted == []int{2, 3, 4, 5, 8}
func BubbleSort(values []int) (*Result, error) {
	if len(values) == 0 {
		return nil, ErrInvalidInput
	}

	arr := make([]int, len(values))
	copy(arr, values)

	res := &Result{}
	res.record(Step{Kind: StepInitial, Index: -1, Snapshot: snapshot(arr)})

	n := len(arr)
	for i := 0; i < n-1; i++ {
		swapped := false

		for j := 0; j < n-i-1; j++ {
			res.record(Step{
				Kind:     StepCompare,
				Pass:     i + 1,
				Index:    j,
				Values:   []int{arr[j], arr[j+1]},
				Snapshot: snapshot(arr),
			})

			if arr[j] > arr[j+1] {
				arr[j], arr[j+1] = arr[j+1], arr[j]
				swapped = true

				res.record(Step{
					Kind:     StepSwap,
					Pass:     i + 1,
					Index:    j,
					Values:   []int{arr[j+1], arr[j]},
					Snapshot: snapshot(arr),
				})
			}
		}

		if !swapped {
			break
		}

		res.record(Step{Kind: StepPass, Pass: i + 1, Index: -1, Snapshot: snapshot(arr)})
	}

	res.Sorted = arr
	return res, nil
}

func snapshot(arr []int) []int {
	s := make([]int, len(arr))
	copy(s, arr)
	return s
}
