// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package sorter

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBubbleSort_Example(t *testing.T) {
	res, err := BubbleSort([]int{5, 3, 8, 4, 2})
	require.NoError(t, err)

	assert.Equal(t, []int{2, 3, 4, 5, 8}, res.Sorted)
	assert.Equal(t, 10, res.Comparisons())
	assert.Equal(t, 7, res.Swaps())
	assert.Equal(t, 4, res.Passes())
	require.Len(t, res.Steps, 22)

	last := res.Steps[len(res.Steps)-1]
	assert.Equal(t, StepPass, last.Kind)
	assert.Equal(t, res.Sorted, last.Snapshot)

	lines := res.Lines()
	assert.Equal(t, "Initial array: 5 3 8 4 2", lines[0])
	assert.Equal(t, "Comparing 5 and 3: [5 3] 8 4 2", lines[1])
	assert.Equal(t, "Swapped 5 and 3: [3 5] 8 4 2", lines[2])
	assert.Equal(t, "Comparing 5 and 8: 3 [5 8] 4 2", lines[3])
	assert.Equal(t, "After pass 1: 3 5 4 2 8", lines[8])
	assert.Equal(t, "After pass 4: 2 3 4 5 8", lines[21])
}

func TestBubbleSort_DoesNotModifyInput(t *testing.T) {
	in := []int{3, 1, 2}
	_, err := BubbleSort(in)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, in)
}

func TestBubbleSort_EmptyInput(t *testing.T) {
	for _, in := range [][]int{nil, {}} {
		res, err := BubbleSort(in)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Nil(t, res)
	}
}

func TestBubbleSort_SingleElement(t *testing.T) {
	res, err := BubbleSort([]int{42})
	require.NoError(t, err)

	assert.Equal(t, []int{42}, res.Sorted)
	assert.Equal(t, 0, res.Comparisons())
	require.Len(t, res.Steps, 1)
	assert.Equal(t, StepInitial, res.Steps[0].Kind)
}

func TestBubbleSort_EarlyExit(t *testing.T) {
	res, err := BubbleSort([]int{1, 2, 3, 4})
	require.NoError(t, err)

	// One full pass of comparisons, no swaps, no pass step.
	assert.Equal(t, 3, res.Comparisons())
	assert.Equal(t, 0, res.Swaps())
	assert.Equal(t, 0, res.Passes())
	assert.Len(t, res.Steps, 4)
}

func TestBubbleSort_EarlyExitAfterSomePasses(t *testing.T) {
	res, err := BubbleSort([]int{2, 1, 3, 4})
	require.NoError(t, err)

	// Pass 1 swaps once, pass 2 finds nothing and stops.
	assert.Equal(t, 3+2, res.Comparisons())
	assert.Equal(t, 1, res.Swaps())
	assert.Equal(t, 1, res.Passes())
}

func TestBubbleSort_StepInvariants(t *testing.T) {
	res, err := BubbleSort([]int{9, -1, 4, 4, 0})
	require.NoError(t, err)

	for i, s := range res.Steps {
		switch s.Kind {
		case StepCompare:
			require.Len(t, s.Values, 2)
			assert.Equal(t, s.Snapshot[s.Index], s.Values[0], "step %d", i)
			assert.Equal(t, s.Snapshot[s.Index+1], s.Values[1], "step %d", i)
		case StepSwap:
			require.Len(t, s.Values, 2)
			assert.Greater(t, s.Values[0], s.Values[1], "swap only when out of order")
			assert.Equal(t, StepCompare, res.Steps[i-1].Kind, "swap follows its comparison")
		case StepInitial, StepPass:
			assert.Equal(t, -1, s.Index)
		}
	}
}

func TestBubbleSort_PermutationAndOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 200; round++ {
		n := 1 + rng.Intn(30)
		in := make([]int, n)
		for i := range in {
			in[i] = rng.Intn(41) - 20
		}

		res, err := BubbleSort(in)
		require.NoError(t, err)

		want := append([]int(nil), in...)
		sort.Ints(want)
		require.Equal(t, want, res.Sorted)
		require.True(t, sort.IntsAreSorted(res.Sorted))
	}
}
