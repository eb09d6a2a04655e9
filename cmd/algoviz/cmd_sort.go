// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/AleutianAI/AlgoViz/pkg/ux"
	"github.com/AleutianAI/AlgoViz/services/visualizer"
	"github.com/AleutianAI/AlgoViz/services/visualizer/input"
	"github.com/AleutianAI/AlgoViz/services/visualizer/sorter"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func runSort(cmd *cobra.Command, args []string) error {
	raw := defaultSortInput
	switch {
	case len(args) == 1:
		raw = args[0]
	case ux.IsInteractive():
		raw = ""
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Numbers to sort").
				Description("Comma-separated integers. Leave empty for the example.").
				Placeholder(defaultSortInput).
				Value(&raw).
				Validate(validateList),
		))
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("prompt: %w", err)
		}
		if raw == "" {
			raw = defaultSortInput
		}
	default:
		appLogger.Debug("No input given, using the example list", "input", raw)
	}

	resp, err := newService().Sort(cmd.Context(), raw)
	if err != nil {
		return err
	}
	return printSort(cmd.OutOrStdout(), resp, jsonOutput)
}

// validateList accepts an empty answer (the example is used) or any list
// with at least one integer.
func validateList(s string) error {
	if s == "" {
		return nil
	}
	_, err := input.ParseIntegers(s)
	return err
}

func printSort(w io.Writer, resp *visualizer.SortResponse, asJSON bool) error {
	if asJSON {
		return printJSON(w, resp)
	}
	ux.Trace(w, "Bubble Sort", sortTraceLines(resp.Steps))
	ux.Summary(w,
		ux.Field{Label: "comparisons", Value: resp.Comparisons},
		ux.Field{Label: "swaps", Value: resp.Swaps},
		ux.Field{Label: "passes", Value: resp.Passes},
	)
	ux.Success(w, "Sorted: "+input.Format(resp.Sorted))
	return nil
}

func sortTraceLines(steps []sorter.Step) []ux.TraceLine {
	lines := make([]ux.TraceLine, len(steps))
	for i, s := range steps {
		e := ux.EmphasisNone
		switch s.Kind {
		case sorter.StepCompare:
			e = ux.EmphasisCompare
		case sorter.StepSwap:
			e = ux.EmphasisSwap
		case sorter.StepInitial, sorter.StepPass:
			e = ux.EmphasisMilestone
		}
		lines[i] = ux.TraceLine{Emphasis: e, Text: s.String()}
	}
	return lines
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
