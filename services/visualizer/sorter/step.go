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
	"fmt"
	"strconv"
	"strings"
)

// StepKind identifies an observable event of a bubble sort run.
type StepKind string

const (
	// StepInitial carries the input sequence before any comparison.
	StepInitial StepKind = "initial"

	// StepCompare is recorded before two adjacent values are compared.
	StepCompare StepKind = "compare"

	// StepSwap is recorded after two adjacent values were exchanged.
	StepSwap StepKind = "swap"

	// StepPass is recorded at the end of a pass that swapped at least once.
	StepPass StepKind = "pass"
)

// Step is one entry of a sort trace.
type Step struct {
	// Kind is the event type.
	Kind StepKind `json:"kind"`

	// Pass is the 1-based pass number. Zero for StepInitial.
	Pass int `json:"pass"`

	// Index is the left index of the compared pair.
	// -1 for StepInitial and StepPass.
	Index int `json:"index"`

	// Values holds the pair's values at the time of the step.
	// For StepSwap they are listed in their pre-swap order.
	Values []int `json:"values,omitempty"`

	// Snapshot is the whole sequence at the time of the step.
	Snapshot []int `json:"snapshot"`
}

// String renders the step as a single human-readable line.
//
// # Examples
//
//	Initial array: 5 3 8 4 2
//	Comparing 5 and 3: [5 3] 8 4 2
//	Swapped 5 and 3: [3 5] 8 4 2
//	After pass 1: 3 5 4 2 8
func (s Step) String() string {
	switch s.Kind {
	case StepInitial:
		return "Initial array: " + joinInts(s.Snapshot)
	case StepCompare:
		return fmt.Sprintf("Comparing %d and %d: %s", s.Values[0], s.Values[1], highlightPair(s.Snapshot, s.Index))
	case StepSwap:
		return fmt.Sprintf("Swapped %d and %d: %s", s.Values[0], s.Values[1], highlightPair(s.Snapshot, s.Index))
	case StepPass:
		return fmt.Sprintf("After pass %d: %s", s.Pass, joinInts(s.Snapshot))
	default:
		return string(s.Kind)
	}
}

// Result is the outcome of BubbleSort.
type Result struct {
	// Sorted is the input in non-decreasing order.
	Sorted []int `json:"sorted"`

	// Steps is the trace, in the order the events happened.
	Steps []Step `json:"steps"`
}

func (r *Result) record(s Step) {
	r.Steps = append(r.Steps, s)
}

// Comparisons returns the number of compare steps.
func (r *Result) Comparisons() int {
	return r.count(StepCompare)
}

// Swaps returns the number of swap steps.
func (r *Result) Swaps() int {
	return r.count(StepSwap)
}

// Passes returns the number of completed pass steps.
func (r *Result) Passes() int {
	return r.count(StepPass)
}

// Lines renders every step with Step.String.
func (r *Result) Lines() []string {
	lines := make([]string, len(r.Steps))
	for i, s := range r.Steps {
		lines[i] = s.String()
	}
	return lines
}

func (r *Result) count(kind StepKind) int {
	n := 0
	for _, s := range r.Steps {
		if s.Kind == kind {
			n++
		}
	}
	return n
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

// highlightPair brackets the values at idx and idx+1.
func highlightPair(values []int, idx int) string {
	var sb strings.Builder
	for i, v := range values {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if i == idx {
			sb.WriteByte('[')
		}
		sb.WriteString(strconv.Itoa(v))
		if i == idx+1 {
			sb.WriteByte(']')
		}
	}
	return sb.String()
}
