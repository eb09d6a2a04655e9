// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package searcher

import (
	"fmt"
	"strconv"
	"strings"
)

// StepKind identifies an observable event of a binary search run.
type StepKind string

const (
	// StepProbe names the current sub-range and its middle element.
	StepProbe StepKind = "probe"

	// StepRight follows a probe whose middle value was below the target.
	StepRight StepKind = "right"

	// StepLeft follows a probe whose middle value was above the target.
	StepLeft StepKind = "left"
)

// Step is one entry of a search trace.
type Step struct {
	Kind      StepKind `json:"kind"`
	Iteration int      `json:"iteration"`
	Low       int      `json:"low"`
	High      int      `json:"high"`
	Mid       int      `json:"mid"`
	MidValue  int      `json:"mid_value"`
	Target    int      `json:"target"`

	// Window is values[Low..High]. Set on probe steps only.
	Window []int `json:"window,omitempty"`
}

// String renders the step as a single human-readable line.
//
// # Examples
//
//	Step 1: searching in [2 3 (4) 5 8], middle element 4, comparing 4 with target 5
//	Target 5 is greater than middle element 4, searching right half
func (s Step) String() string {
	switch s.Kind {
	case StepProbe:
		return fmt.Sprintf("Step %d: searching in [%s], middle element %d, comparing %d with target %d",
			s.Iteration, s.renderWindow(), s.MidValue, s.MidValue, s.Target)
	case StepRight:
		return fmt.Sprintf("Target %d is greater than middle element %d, searching right half", s.Target, s.MidValue)
	case StepLeft:
		return fmt.Sprintf("Target %d is less than middle element %d, searching left half", s.Target, s.MidValue)
	default:
		return string(s.Kind)
	}
}

// renderWindow joins the window, wrapping the middle element in parentheses.
func (s Step) renderWindow() string {
	parts := make([]string, len(s.Window))
	for i, v := range s.Window {
		if s.Low+i == s.Mid {
			parts[i] = "(" + strconv.Itoa(v) + ")"
		} else {
			parts[i] = strconv.Itoa(v)
		}
	}
	return strings.Join(parts, " ")
}

// Result is the outcome of BinarySearch.
type Result struct {
	// Index is the position of a matching element, or NotFound.
	Index int `json:"index"`

	// Found is true when Index is valid.
	Found bool `json:"found"`

	// Target is the searched value.
	Target int `json:"target"`

	// Steps is the trace, in the order the events happened.
	Steps []Step `json:"steps"`
}

func (r *Result) record(s Step) {
	r.Steps = append(r.Steps, s)
}

// Iterations returns the number of halving iterations (probe steps).
func (r *Result) Iterations() int {
	n := 0
	for _, s := range r.Steps {
		if s.Kind == StepProbe {
			n++
		}
	}
	return n
}

// Lines renders every step with Step.String.
func (r *Result) Lines() []string {
	lines := make([]string, len(r.Steps))
	for i, s := range r.Steps {
		lines[i] = s.String()
	}
	return lines
}

// Summary returns the one-line outcome shown under a trace.
func (r *Result) Summary() string {
	if !r.Found {
		return fmt.Sprintf("%d not found in the array", r.Target)
	}
	return fmt.Sprintf("%d found at index %d", r.Target, r.Index)
}
